// Package narrative turns the aggregated quantitative analysis into the
// final LLM-phrased investment signal.
package narrative

import (
	"context"
	"fmt"

	"munger_agent/pkg/core/llm"
	"munger_agent/pkg/core/prompt"
	"munger_agent/pkg/core/utils"
	"munger_agent/pkg/models"
)

// FallbackReasoning is the fixed reasoning text of the neutral fallback.
const FallbackReasoning = "Error in analysis, defaulting to neutral"

// MungerOutput is the structured result the model must return for a signal
// narrative call.
type MungerOutput struct {
	Signal     models.Signal `json:"signal"`
	Confidence float64       `json:"confidence"`
	Reasoning  string        `json:"reasoning"`
}

// Generator phrases signals through an injected LLM provider.
type Generator struct {
	provider llm.Provider
}

func NewGenerator(provider llm.Provider) *Generator {
	return &Generator{provider: provider}
}

// fallbackOutput is returned for any provider or parse failure. The raw
// error never reaches the end user.
func fallbackOutput() MungerOutput {
	return MungerOutput{
		Signal:     models.SignalNeutral,
		Confidence: 0,
		Reasoning:  FallbackReasoning,
	}
}

// GenerateSignal runs the signal narrative call and parses the JSON response.
// It never fails: provider errors, non-text responses, and unparsable output
// all degrade to the neutral zero-confidence fallback.
func (g *Generator) GenerateSignal(ctx context.Context, analysis models.AggregatedAnalysis) MungerOutput {
	userPrompt, err := prompt.BuildSignalUserPrompt(analysis)
	if err != nil {
		fmt.Printf("[SIGNAL] Failed to build prompt for %s: %v\n", analysis.Ticker, err)
		return fallbackOutput()
	}

	options := map[string]interface{}{
		"response_format": map[string]interface{}{"type": "json_object"},
	}
	resp, err := g.provider.GenerateResponse(ctx, userPrompt, prompt.MungerSystemPrompt, options)
	if err != nil {
		fmt.Printf("[SIGNAL] LLM call failed for %s: %v\n", analysis.Ticker, err)
		return fallbackOutput()
	}

	cleaned := utils.StripCodeFences(resp)

	var output MungerOutput
	if err := utils.SmartParse(cleaned, &output); err != nil {
		fmt.Printf("[SIGNAL] Failed to parse LLM response for %s: %v\n", analysis.Ticker, err)
		return fallbackOutput()
	}

	// An empty signal means the model returned JSON of the wrong shape.
	switch output.Signal {
	case models.SignalBullish, models.SignalBearish, models.SignalNeutral:
		return output
	default:
		fmt.Printf("[SIGNAL] LLM returned unknown signal %q for %s\n", output.Signal, analysis.Ticker)
		return fallbackOutput()
	}
}
