package memo

import (
	"strings"
	"testing"

	"munger_agent/pkg/models"
)

func TestAssembleExactTemplate(t *testing.T) {
	// The assembled document layout is a fixed contract.
	sections := []models.MemoSection{{Title: "A", Content: "x"}}
	got := Assemble("Co", "T", "S", sections)

	want := "# Investment Memo: Co (T)\n\n## Executive Summary\n\nS\n\n## A\n\nx"
	if got != want {
		t.Errorf("Assembled memo mismatch:\ngot:  %q\nwant: %q", got, want)
	}
}

func TestAssembleSectionOrder(t *testing.T) {
	sections := []models.MemoSection{
		{Title: "First", Content: "one"},
		{Title: "Second", Content: "two"},
	}
	got := Assemble("Acme", "ACME", "summary", sections)

	if !strings.HasPrefix(got, "# Investment Memo: Acme (ACME)") {
		t.Errorf("Expected title line first, got %q", got)
	}
	first := strings.Index(got, "## First")
	second := strings.Index(got, "## Second")
	if first == -1 || second == -1 || first > second {
		t.Errorf("Sections out of order in:\n%s", got)
	}
}
