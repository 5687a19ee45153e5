// Package memo generates and assembles the multi-section investment memo.
package memo

import (
	"fmt"
	"strings"

	"munger_agent/pkg/core/utils"
	"munger_agent/pkg/models"
)

// Assemble stitches the memo parts into one Markdown document: a title line,
// the executive summary, then each section under its own heading, all
// separated by blank lines. This exact textual template is a contract for
// markdown-export parity and must not change.
func Assemble(companyName, ticker, summary string, sections []models.MemoSection) string {
	parts := []string{
		fmt.Sprintf("# Investment Memo: %s (%s)", companyName, ticker),
		"## Executive Summary",
		summary,
	}
	for _, section := range sections {
		parts = append(parts, fmt.Sprintf("## %s", section.Title), section.Content)
	}

	content := strings.Join(parts, "\n\n")
	if !utils.ValidateMarkdown(content) {
		fmt.Printf("[MEMO] Warning: assembled memo for %s failed markdown validation\n", ticker)
	}
	return content
}
