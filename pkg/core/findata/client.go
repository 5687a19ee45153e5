// Package findata is the data access layer for the upstream financial
// datasets HTTP API: financial metrics, statement line items, insider trades,
// and company news, all keyed by (ticker, endDate).
package findata

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"munger_agent/pkg/models"
)

// DefaultBaseURL is the production endpoint of the financial datasets API.
const DefaultBaseURL = "https://api.financialdatasets.ai"

// DataFetchError is returned whenever the upstream API answers with a
// non-success status. An empty result set on a 2xx response is NOT an error.
type DataFetchError struct {
	StatusCode int
	Status     string
	Body       string
	URL        string
}

func (e *DataFetchError) Error() string {
	return fmt.Sprintf("data fetch failed: %s %s (%s)", e.Status, e.URL, e.Body)
}

// Client talks to the financial datasets API. A missing API key produces
// unauthenticated requests, which is a valid (rate-limited) mode upstream,
// not a local failure.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// NewClient creates a client for the given base URL and API key.
// Empty baseURL selects DefaultBaseURL.
func NewClient(baseURL, apiKey string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		baseURL:    baseURL,
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// SetHTTPClient overrides the underlying HTTP client (used by tests).
func (c *Client) SetHTTPClient(hc *http.Client) {
	c.httpClient = hc
}

// doJSON executes a request and decodes the response body into out.
// Non-2xx responses become a *DataFetchError carrying status and body.
func (c *Client) doJSON(ctx context.Context, method, path string, query url.Values, body interface{}, out interface{}) error {
	fullURL := c.baseURL + path
	if len(query) > 0 {
		fullURL += "?" + query.Encode()
	}

	var reqBody io.Reader
	if body != nil {
		jsonBytes, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		reqBody = bytes.NewBuffer(jsonBytes)
	}

	req, err := http.NewRequestWithContext(ctx, method, fullURL, reqBody)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.apiKey != "" {
		req.Header.Set("X-API-KEY", c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &DataFetchError{
			StatusCode: resp.StatusCode,
			Status:     resp.Status,
			Body:       string(respBody),
			URL:        fullURL,
		}
	}

	if err := json.Unmarshal(respBody, out); err != nil {
		return fmt.Errorf("failed to decode response from %s: %w", fullURL, err)
	}
	return nil
}

// GetFinancialMetrics fetches ratio/metric records for a ticker up to endDate.
// The most recent record carries the market cap.
func (c *Client) GetFinancialMetrics(ctx context.Context, ticker, endDate, period string, limit int) ([]models.FinancialMetrics, error) {
	q := url.Values{}
	q.Set("ticker", ticker)
	q.Set("report_period_lte", endDate)
	q.Set("period", period)
	q.Set("limit", fmt.Sprintf("%d", limit))

	var envelope struct {
		FinancialMetrics []models.FinancialMetrics `json:"financial_metrics"`
	}
	if err := c.doJSON(ctx, http.MethodGet, "/financial-metrics", q, nil, &envelope); err != nil {
		return nil, err
	}
	return envelope.FinancialMetrics, nil
}

// SearchLineItems fetches one row per reporting period restricted to the
// requested statement fields.
func (c *Client) SearchLineItems(ctx context.Context, ticker string, fields []string, endDate, period string, limit int) ([]models.LineItem, error) {
	reqBody := map[string]interface{}{
		"tickers":    []string{ticker},
		"line_items": fields,
		"end_date":   endDate,
		"period":     period,
		"limit":      limit,
	}

	var envelope struct {
		SearchResults []models.LineItem `json:"search_results"`
	}
	if err := c.doJSON(ctx, http.MethodPost, "/financials/search/line-items", nil, reqBody, &envelope); err != nil {
		return nil, err
	}
	return envelope.SearchResults, nil
}

// GetInsiderTrades fetches insider transactions up to endDate. When startDate
// is non-empty and a page comes back full, it pages backward in time: each
// follow-up query uses the oldest filing date seen minus one day as the new
// end date, until a short page arrives or the window reaches startDate.
// Without a startDate a single page is fetched; the result may be incomplete.
// Pagination is inherently sequential and must not be parallelized.
func (c *Client) GetInsiderTrades(ctx context.Context, ticker, endDate, startDate string, limit int) ([]models.InsiderTrade, error) {
	var all []models.InsiderTrade
	currentEnd := endDate

	for {
		q := url.Values{}
		q.Set("ticker", ticker)
		q.Set("filing_date_lte", currentEnd)
		q.Set("limit", fmt.Sprintf("%d", limit))

		var envelope struct {
			InsiderTrades []models.InsiderTrade `json:"insider_trades"`
		}
		if err := c.doJSON(ctx, http.MethodGet, "/insider-trades", q, nil, &envelope); err != nil {
			return nil, err
		}
		page := envelope.InsiderTrades
		all = append(all, page...)

		// A short page means the upstream window is exhausted.
		if startDate == "" || len(page) < limit {
			break
		}

		oldest := oldestFilingDate(page)
		if oldest == "" || oldest <= startDate {
			break
		}
		next, err := dayBefore(oldest)
		if err != nil {
			return nil, fmt.Errorf("failed to page insider trades: %w", err)
		}
		currentEnd = next
	}

	return all, nil
}

// GetCompanyNews fetches a single page of news articles, no pagination.
func (c *Client) GetCompanyNews(ctx context.Context, ticker, endDate, startDate string, limit int) ([]models.NewsItem, error) {
	q := url.Values{}
	q.Set("ticker", ticker)
	q.Set("end_date", endDate)
	if startDate != "" {
		q.Set("start_date", startDate)
	}
	q.Set("limit", fmt.Sprintf("%d", limit))

	var envelope struct {
		News []models.NewsItem `json:"news"`
	}
	if err := c.doJSON(ctx, http.MethodGet, "/news", q, nil, &envelope); err != nil {
		return nil, err
	}
	return envelope.News, nil
}

// GetCompanyFacts fetches descriptive company information. Callers tolerate
// failure here: the memo falls back to the ticker as the company name.
func (c *Client) GetCompanyFacts(ctx context.Context, ticker string) (*models.CompanyFacts, error) {
	q := url.Values{}
	q.Set("ticker", ticker)

	var envelope struct {
		CompanyFacts models.CompanyFacts `json:"company_facts"`
	}
	if err := c.doJSON(ctx, http.MethodGet, "/company/facts", q, nil, &envelope); err != nil {
		return nil, err
	}
	return &envelope.CompanyFacts, nil
}

// oldestFilingDate returns the minimum filing date in a page (ISO dates
// compare lexicographically). Empty string if no trade carries a date.
func oldestFilingDate(page []models.InsiderTrade) string {
	oldest := ""
	for _, trade := range page {
		if trade.FilingDate == "" {
			continue
		}
		if oldest == "" || trade.FilingDate < oldest {
			oldest = trade.FilingDate
		}
	}
	return oldest
}

func dayBefore(isoDate string) (string, error) {
	t, err := time.Parse("2006-01-02", isoDate)
	if err != nil {
		return "", err
	}
	return t.AddDate(0, 0, -1).Format("2006-01-02"), nil
}
