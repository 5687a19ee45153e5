package prompt

import (
	"fmt"
	"strings"
)

// MemoSectionSystemPrompts maps each fixed memo section title to the system
// prompt of its dedicated LLM call.
var MemoSectionSystemPrompts = map[string]string{
	"Business Description": `You are a senior equity research analyst writing the Business Description section of an investment memo.
Describe what the company does, its products and services, customers, and how it makes money.
Write in clear professional prose. Return only the section body as Markdown, no heading.`,

	"Competitive Landscape": `You are a senior equity research analyst writing the Competitive Landscape section of an investment memo.
Assess the company's competitive position, moat indicators, and the structure of its industry.
Ground every claim in the supplied analysis data. Return only the section body as Markdown, no heading.`,

	"Financial Analysis": `You are a senior equity research analyst writing the Financial Analysis section of an investment memo.
Discuss profitability, cash generation, balance sheet strength, and capital allocation, citing the supplied metrics.
Return only the section body as Markdown, no heading.`,

	"Growth Prospects": `You are a senior equity research analyst writing the Growth Prospects section of an investment memo.
Evaluate revenue trajectory, reinvestment opportunities, and the durability of growth, citing the supplied data.
Return only the section body as Markdown, no heading.`,

	"Opportunities & Risks": `You are a senior equity research analyst writing the Opportunities & Risks section of an investment memo.
Lay out the bull case, the bear case, and the key uncertainties, grounded in the supplied analysis and news.
Return only the section body as Markdown, no heading.`,
}

// MemoSummarySystemPrompt drives the final executive-summary call over the
// assembled sections.
const MemoSummarySystemPrompt = `You are a senior equity research analyst writing the Executive Summary of an investment memo.
Condense the memo sections below into a tight summary: the thesis, the signal, and the two or three facts that matter most.
Return only the summary body as Markdown, no heading.`

// BuildSectionUserPrompt assembles the user prompt for one memo section.
// dataPayload is the serialized subset of fetched data relevant to the
// section; extraDocuments are caller-supplied context appended verbatim.
func BuildSectionUserPrompt(companyName, ticker, sectionTitle, dataPayload string, extraDocuments []string) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Write the %q section of an investment memo for %s (%s).\n", sectionTitle, companyName, ticker)

	if dataPayload != "" {
		sb.WriteString("\nAnalysis data:\n")
		sb.WriteString(dataPayload)
		sb.WriteString("\n")
	}

	for i, doc := range extraDocuments {
		fmt.Fprintf(&sb, "\n=== ADDITIONAL DOCUMENT %d ===\n%s\n=== END DOCUMENT ===\n", i+1, doc)
	}

	return sb.String()
}

// BuildSummaryUserPrompt assembles the user prompt for the executive summary
// from the already-generated sections.
func BuildSummaryUserPrompt(companyName, ticker string, sections []string) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Write the executive summary of the investment memo for %s (%s) from these sections:\n", companyName, ticker)
	for _, section := range sections {
		sb.WriteString("\n")
		sb.WriteString(section)
		sb.WriteString("\n")
	}
	return sb.String()
}
