package advisor

import (
	"context"
	"errors"
	"net/http"

	"google.golang.org/api/googleapi"
)

const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// ErrUnauthorized marks a remote failure caused by a rejected credential.
var ErrUnauthorized = errors.New("advisor: remote service rejected the credential")

// Turn is one prior exchange in a conversation.
type Turn struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type TokenUsage struct {
	InputTokens  int32
	OutputTokens int32
	TotalTokens  int32
}

type LLMRequest struct {
	Model       string
	System      []string
	Messages    []Turn
	MaxTokens   int32
	Temperature float32
	TopP        float32
}

type LLMResponse struct {
	Text       string
	Usage      TokenUsage
	StopReason string
}

type LLMClient interface {
	Complete(ctx context.Context, req LLMRequest) (LLMResponse, error)
}

// isAuthStatus reports whether an HTTP status means the credential was refused.
func isAuthStatus(code int) bool {
	return code == http.StatusUnauthorized || code == http.StatusForbidden
}

// statusFromError digs an HTTP status out of the provider SDK error types.
func statusFromError(err error) int {
	var gerr *googleapi.Error
	if errors.As(err, &gerr) {
		return gerr.Code
	}
	var httpCode interface{ HTTPCode() int }
	if errors.As(err, &httpCode) {
		return httpCode.HTTPCode()
	}
	var statusCode interface{ HTTPStatusCode() int }
	if errors.As(err, &statusCode) {
		return statusCode.HTTPStatusCode()
	}
	return 0
}

// classify wraps err with ErrUnauthorized when the provider refused the credential.
func classify(err error) error {
	if err == nil || errors.Is(err, ErrUnauthorized) {
		return err
	}
	if isAuthStatus(statusFromError(err)) {
		return errors.Join(ErrUnauthorized, err)
	}
	return err
}
