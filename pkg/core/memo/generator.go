package memo

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"munger_agent/pkg/core/llm"
	"munger_agent/pkg/core/prompt"
	"munger_agent/pkg/core/utils"
	"munger_agent/pkg/models"
)

// Input carries everything the memo generator needs. News summaries must
// already be HTML-stripped by the caller.
type Input struct {
	CompanyName    string
	Ticker         string
	Analysis       models.AggregatedAnalysis
	News           []models.NewsItem
	IncludeSources bool
	ExtraDocuments []string
}

// Generator produces investment memos through an injected LLM provider.
type Generator struct {
	provider llm.Provider
}

func NewGenerator(provider llm.Provider) *Generator {
	return &Generator{provider: provider}
}

// Generate runs one LLM call per fixed section, a final call for the
// executive summary, and assembles the document. The five section calls are
// mutually independent but issued sequentially; any single failure aborts
// the memo (the caller converts it into the {error} result shape).
func (g *Generator) Generate(ctx context.Context, input Input) (*models.InvestmentMemo, error) {
	var sections []models.MemoSection
	for _, title := range models.MemoSectionTitles {
		systemPrompt, ok := prompt.MemoSectionSystemPrompts[title]
		if !ok {
			return nil, fmt.Errorf("no system prompt registered for section %q", title)
		}

		payload, err := g.sectionPayload(title, input)
		if err != nil {
			return nil, fmt.Errorf("failed to build payload for section %q: %w", title, err)
		}
		userPrompt := prompt.BuildSectionUserPrompt(input.CompanyName, input.Ticker, title, payload, input.ExtraDocuments)

		var options map[string]interface{}
		// Grounded search only for the risk section, where fresh outside
		// context is worth the extra latency.
		if input.IncludeSources && title == "Opportunities & Risks" {
			options = map[string]interface{}{"google_search": true}
		}

		fmt.Printf("[MEMO] Generating section %q for %s...\n", title, input.Ticker)
		resp, err := g.provider.GenerateResponse(ctx, userPrompt, systemPrompt, options)
		if err != nil {
			return nil, fmt.Errorf("section %q generation failed: %w", title, err)
		}

		sections = append(sections, models.MemoSection{
			Title:   title,
			Content: utils.CleanMarkdown(resp),
		})
	}

	// Executive summary over the assembled sections.
	var sectionTexts []string
	for _, s := range sections {
		sectionTexts = append(sectionTexts, fmt.Sprintf("## %s\n\n%s", s.Title, s.Content))
	}
	summaryPrompt := prompt.BuildSummaryUserPrompt(input.CompanyName, input.Ticker, sectionTexts)
	summaryResp, err := g.provider.GenerateResponse(ctx, summaryPrompt, prompt.MemoSummarySystemPrompt, nil)
	if err != nil {
		return nil, fmt.Errorf("executive summary generation failed: %w", err)
	}
	summary := utils.CleanMarkdown(summaryResp)

	content := Assemble(input.CompanyName, input.Ticker, summary, sections)

	return &models.InvestmentMemo{
		CompanyName:    input.CompanyName,
		Ticker:         input.Ticker,
		Title:          fmt.Sprintf("Investment Memo: %s (%s)", input.CompanyName, input.Ticker),
		GenerationDate: time.Now().UTC(),
		Summary:        summary,
		Content:        content,
		Sections:       sections,
	}, nil
}

// sectionPayload serializes the subset of fetched data relevant to one
// section as canonical field-ordered JSON.
func (g *Generator) sectionPayload(title string, input Input) (string, error) {
	var payload interface{}
	switch title {
	case "Business Description":
		payload = map[string]interface{}{
			"ticker": input.Ticker,
			"news":   input.News,
		}
	case "Competitive Landscape":
		payload = map[string]interface{}{
			"moat": input.Analysis.Moat,
		}
	case "Financial Analysis":
		payload = map[string]interface{}{
			"management": input.Analysis.Management,
			"valuation":  input.Analysis.Valuation,
		}
	case "Growth Prospects":
		payload = map[string]interface{}{
			"predictability": input.Analysis.Predictability,
			"valuation":      input.Analysis.Valuation,
		}
	case "Opportunities & Risks":
		payload = map[string]interface{}{
			"analysis": input.Analysis,
			"news":     input.News,
		}
	default:
		payload = input.Analysis
	}

	data, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return "", err
	}
	return string(data), nil
}
