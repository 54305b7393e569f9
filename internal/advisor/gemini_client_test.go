package advisor

import (
	"context"
	"testing"

	"github.com/google/generative-ai-go/genai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGeminiResponseKeepsTextVerbatim(t *testing.T) {
	resp, err := geminiResponse(&genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{
			Content: &genai.Content{
				Role:  "model",
				Parts: []genai.Part{genai.Text("Le Crétacé "), genai.Text("vous attend.\n")},
			},
			FinishReason: genai.FinishReasonStop,
		}},
		UsageMetadata: &genai.UsageMetadata{PromptTokenCount: 40, CandidatesTokenCount: 9, TotalTokenCount: 49},
	})
	require.NoError(t, err)
	assert.Equal(t, "Le Crétacé vous attend.\n", resp.Text)
	assert.NotEmpty(t, resp.StopReason)
	assert.Equal(t, TokenUsage{InputTokens: 40, OutputTokens: 9, TotalTokens: 49}, resp.Usage)
}

func TestGeminiResponseWithoutCandidates(t *testing.T) {
	_, err := geminiResponse(&genai.GenerateContentResponse{})
	assert.Error(t, err)

	_, err = geminiResponse(&genai.GenerateContentResponse{Candidates: []*genai.Candidate{{}}})
	assert.Error(t, err)
}

func TestNewGeminiLLMClientRequiresKey(t *testing.T) {
	_, err := NewGeminiLLMClient(context.Background(), " ", "")
	assert.Error(t, err)
}
