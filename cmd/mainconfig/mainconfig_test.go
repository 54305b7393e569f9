package mainconfig

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/SteveHoareau18/timetravelagency/internal/advisor"
	appconfig "github.com/SteveHoareau18/timetravelagency/internal/config"
)

func TestAdvisorConfigGroq(t *testing.T) {
	cfg := &appconfig.Config{
		LLMProvider:    "groq",
		GroqAPIKey:     "gsk-test",
		GroqBaseURL:    "https://api.groq.com/openai/v1",
		GeminiAPIKey:   "ignored",
		LLMTemperature: 0.7,
		LLMMaxTokens:   500,
		LLMTopP:        1,
	}
	got := AdvisorConfig(cfg)
	assert.Equal(t, "gsk-test", got.APIKey)
	assert.Equal(t, "https://api.groq.com/openai/v1", got.BaseURL)
	assert.Equal(t, int32(500), got.MaxTokens)
	assert.True(t, got.Remote())
}

func TestAdvisorConfigGeminiDefaultsModel(t *testing.T) {
	got := AdvisorConfig(&appconfig.Config{LLMProvider: advisor.ProviderGemini, GeminiAPIKey: "g-key"})
	assert.Equal(t, "g-key", got.APIKey)
	assert.Equal(t, defaultGeminiModel, got.Model)
}

func TestAdvisorConfigBedrockUsesModelID(t *testing.T) {
	got := AdvisorConfig(&appconfig.Config{LLMProvider: advisor.ProviderBedrock, BedrockModelID: "anthropic.claude-3-haiku"})
	assert.Equal(t, "anthropic.claude-3-haiku", got.Model)
	assert.True(t, got.Remote())
}

func TestAdvisorConfigWithoutKeyStaysOnRules(t *testing.T) {
	got := AdvisorConfig(&appconfig.Config{LLMProvider: "groq"})
	assert.False(t, got.Remote())
}
