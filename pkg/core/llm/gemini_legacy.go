package llm

import (
	"context"
	"fmt"
	"os"
	"strings"

	genai "github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// GeminiLegacyProvider implements the Provider interface through the older
// generative-ai-go SDK. Kept alongside GeminiProvider so deployments pinned
// to the legacy client keep working while the new SDK rolls out.
type GeminiLegacyProvider struct {
	Model string
}

var _ Provider = (*GeminiLegacyProvider)(nil)

// GenerateResponse sends the prompt through the legacy SDK. The legacy client
// has no separate system-instruction channel, so the system prompt is folded
// into the request text.
func (p *GeminiLegacyProvider) GenerateResponse(ctx context.Context, prompt string, systemPrompt string, options map[string]interface{}) (string, error) {
	apiKey := os.Getenv("GEMINI_API_KEY")
	if apiKey == "" {
		return "", fmt.Errorf("GEMINI_API_KEY environment variable not set")
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return "", fmt.Errorf("failed to create Gemini client: %w", err)
	}
	defer client.Close()

	modelName := p.Model
	if modelName == "" {
		modelName = "gemini-1.5-flash"
	}
	if val, ok := options["model"].(string); ok && val != "" {
		modelName = val
	}

	model := client.GenerativeModel(modelName)
	model.SetTemperature(0.1)

	fullPrompt := prompt
	if systemPrompt != "" {
		fullPrompt = fmt.Sprintf("%s\n\nTask: %s", systemPrompt, prompt)
	}

	resp, err := model.GenerateContent(ctx, genai.Text(fullPrompt))
	if err != nil {
		return "", fmt.Errorf("gemini generation failed: %w", err)
	}

	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", fmt.Errorf("gemini returned no candidates")
	}

	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if txt, ok := part.(genai.Text); ok {
			sb.WriteString(string(txt))
		}
	}
	return sb.String(), nil
}

func (p *GeminiLegacyProvider) AdaptInstructions(raw string) string {
	return raw
}
