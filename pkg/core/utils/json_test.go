package utils

import "testing"

type signalShape struct {
	Signal     string  `json:"signal"`
	Confidence float64 `json:"confidence"`
}

func TestStripCodeFences(t *testing.T) {
	cases := []struct {
		input string
		want  string
	}{
		{"```json\n{\"a\": 1}\n```", `{"a": 1}`},
		{"```\n{\"a\": 1}\n```", `{"a": 1}`},
		{`{"a": 1}`, `{"a": 1}`},
		{"  {\"a\": 1}  ", `{"a": 1}`},
	}
	for _, c := range cases {
		if got := StripCodeFences(c.input); got != c.want {
			t.Errorf("StripCodeFences(%q) = %q, want %q", c.input, got, c.want)
		}
	}
}

func TestSmartParseValidJSON(t *testing.T) {
	var out signalShape
	if err := SmartParse(`{"signal": "bullish", "confidence": 80}`, &out); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if out.Signal != "bullish" || out.Confidence != 80 {
		t.Errorf("Unexpected result: %+v", out)
	}
}

func TestSmartParseRepairsTrailingComma(t *testing.T) {
	var out signalShape
	if err := SmartParse(`{"signal": "neutral", "confidence": 50,}`, &out); err != nil {
		t.Fatalf("Expected repair to handle trailing comma: %v", err)
	}
	if out.Signal != "neutral" {
		t.Errorf("Unexpected result: %+v", out)
	}
}

func TestSmartParseHjsonUnquotedKeys(t *testing.T) {
	var out signalShape
	if err := SmartParse("{\n  signal: bearish\n  confidence: 30\n}", &out); err != nil {
		t.Fatalf("Expected hjson stage to handle unquoted keys: %v", err)
	}
	if out.Signal != "bearish" || out.Confidence != 30 {
		t.Errorf("Unexpected result: %+v", out)
	}
}

func TestSmartParseProseFails(t *testing.T) {
	var out signalShape
	if err := SmartParse("This business looks attractive to me.", &out); err == nil {
		t.Error("Expected prose to fail every parsing stage")
	}
}
