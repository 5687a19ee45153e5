// Package utils holds small helpers for taming LLM output: JSON repair and
// lenient parsing, markdown cleanup, and HTML flattening.
package utils

import (
	"encoding/json"
	"fmt"
	"strings"

	jsonrepair "github.com/RealAlexandreAI/json-repair"
	hjson "github.com/hjson/hjson-go/v4"
)

// StripCodeFences removes a wrapping markdown code fence (``` or ```json)
// from a model response. Models routinely fence JSON even when told not to.
func StripCodeFences(input string) string {
	cleaned := strings.TrimSpace(input)
	if strings.HasPrefix(cleaned, "```") {
		cleaned = strings.TrimPrefix(cleaned, "```json")
		cleaned = strings.TrimPrefix(cleaned, "```")
		cleaned = strings.TrimSuffix(cleaned, "```")
		cleaned = strings.TrimSpace(cleaned)
	}
	return cleaned
}

// RepairJSON attempts to fix common JSON errors from LLM outputs: missing
// quotes around keys, single quotes, unclosed brackets, trailing commas.
func RepairJSON(malformedJSON string) (string, error) {
	repaired, err := jsonrepair.RepairJSON(malformedJSON)
	if err != nil {
		return "", fmt.Errorf("json repair failed: %w", err)
	}
	return repaired, nil
}

// ParseHJSON parses Human-friendly JSON (comments, unquoted keys, optional
// commas) and returns standard JSON. The most lenient parsing stage.
func ParseHJSON(hjsonData string) (string, error) {
	var result interface{}
	if err := hjson.Unmarshal([]byte(hjsonData), &result); err != nil {
		return "", fmt.Errorf("hjson parse error: %w", err)
	}
	jsonBytes, err := json.Marshal(result)
	if err != nil {
		return "", fmt.Errorf("json marshal error: %w", err)
	}
	return string(jsonBytes), nil
}

// SmartParse tries multiple parsing strategies to extract valid JSON into
// schema. Order of attempts: standard JSON, JSON repair, Hjson.
func SmartParse(input string, schema interface{}) error {
	if err := json.Unmarshal([]byte(input), schema); err == nil {
		return nil
	}

	if repaired, err := RepairJSON(input); err == nil {
		if err := json.Unmarshal([]byte(repaired), schema); err == nil {
			return nil
		}
	}

	if hjsonResult, err := ParseHJSON(input); err == nil {
		if err := json.Unmarshal([]byte(hjsonResult), schema); err == nil {
			return nil
		}
	}

	return fmt.Errorf("all parsing strategies failed for input")
}
