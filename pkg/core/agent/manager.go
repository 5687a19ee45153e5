// Package agent routes prompt execution to a configured LLM provider.
package agent

import (
	"context"

	"munger_agent/pkg/core/llm"
)

// Config selects the active provider globally and per agent role.
type Config struct {
	ActiveProvider string                 `yaml:"active_provider"`
	Agents         map[string]AgentConfig `yaml:"agents"`
}

// AgentConfig allows a single role (e.g. "narrative", "memo") to override
// the global provider.
type AgentConfig struct {
	Provider    string `yaml:"provider"`
	Description string `yaml:"description"`
}

// Manager holds the provider registry and the active configuration.
type Manager struct {
	config    Config
	providers map[string]llm.Provider
}

func NewManager(config Config) *Manager {
	return &Manager{
		config: config,
		providers: map[string]llm.Provider{
			"gemini":        &llm.GeminiProvider{},
			"gemini-legacy": &llm.GeminiLegacyProvider{},
			"deepseek":      &llm.DeepSeekProvider{},
		},
	}
}

// Register adds or replaces a named provider in the registry.
func (m *Manager) Register(name string, provider llm.Provider) {
	m.providers[name] = provider
}

// GetProvider resolves the provider for an agent role: role override first,
// then the global active provider, then gemini as the fallback.
func (m *Manager) GetProvider(agentType string) llm.Provider {
	if agentConfig, ok := m.config.Agents[agentType]; ok && agentConfig.Provider != "" {
		if p, ok := m.providers[agentConfig.Provider]; ok {
			return p
		}
	}
	if p, ok := m.providers[m.config.ActiveProvider]; ok {
		return p
	}
	return m.providers["gemini"]
}

// ExecutePrompt adapts the system prompt for the resolved provider and runs
// the generation.
func (m *Manager) ExecutePrompt(ctx context.Context, agentType string, rawPrompt string, rawSystemPrompt string, options map[string]interface{}) (string, error) {
	provider := m.GetProvider(agentType)
	adaptedSystemPrompt := provider.AdaptInstructions(rawSystemPrompt)
	return provider.GenerateResponse(ctx, rawPrompt, adaptedSystemPrompt, options)
}

// RoleProvider binds a Manager to one agent role. Resolution happens per
// call, so configuration-driven provider overrides apply without rebuilding
// downstream components.
type RoleProvider struct {
	manager *Manager
	role    string
}

var _ llm.Provider = (*RoleProvider)(nil)

func (r *RoleProvider) GenerateResponse(ctx context.Context, prompt string, systemPrompt string, options map[string]interface{}) (string, error) {
	return r.manager.ExecutePrompt(ctx, r.role, prompt, systemPrompt, options)
}

func (r *RoleProvider) AdaptInstructions(raw string) string {
	return r.manager.GetProvider(r.role).AdaptInstructions(raw)
}

// Role returns a Provider bound to an agent role.
func (m *Manager) Role(role string) llm.Provider {
	return &RoleProvider{manager: m, role: role}
}
