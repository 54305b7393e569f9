package advisor

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime"
)

const (
	ProviderGroq    = "groq"
	ProviderGemini  = "gemini"
	ProviderBedrock = "bedrock"

	DefaultModel       = "llama-3.3-70b-versatile"
	DefaultTemperature = 0.7
	DefaultMaxTokens   = 500
	DefaultTopP        = 1
)

// Config is resolved once by the host process and handed to the responder.
type Config struct {
	Provider    string
	APIKey      string
	BaseURL     string
	Model       string
	Temperature float32
	MaxTokens   int32
	TopP        float32
	Timeout     time.Duration
}

func (c Config) withDefaults() Config {
	c.Provider = strings.ToLower(strings.TrimSpace(c.Provider))
	if c.Provider == "" {
		c.Provider = ProviderGroq
	}
	if strings.TrimSpace(c.Model) == "" && c.Provider == ProviderGroq {
		c.Model = DefaultModel
	}
	if c.MaxTokens <= 0 {
		c.MaxTokens = DefaultMaxTokens
	}
	if c.TopP <= 0 {
		c.TopP = DefaultTopP
	}
	return c
}

// Remote reports whether the configuration enables remote-delegated mode.
func (c Config) Remote() bool {
	switch c.withDefaults().Provider {
	case ProviderBedrock:
		return strings.TrimSpace(c.Model) != ""
	default:
		return strings.TrimSpace(c.APIKey) != ""
	}
}

// NewClientFromConfig builds the provider client. It returns a nil client,
// and no error, when the configuration has no credential; the responder then
// runs on rules alone. awsCfg is only read for the bedrock provider.
func NewClientFromConfig(ctx context.Context, cfg Config, awsCfg *aws.Config) (LLMClient, error) {
	if !cfg.Remote() {
		return nil, nil
	}
	cfg = cfg.withDefaults()
	switch cfg.Provider {
	case ProviderGroq:
		client, err := NewOpenAICompatClient(OpenAICompatConfig{APIKey: cfg.APIKey, BaseURL: cfg.BaseURL, Timeout: cfg.Timeout})
		if err != nil {
			return nil, err
		}
		return client, nil
	case ProviderGemini:
		client, err := NewGeminiLLMClient(ctx, cfg.APIKey, cfg.Model)
		if err != nil {
			return nil, err
		}
		return client, nil
	case ProviderBedrock:
		if awsCfg == nil {
			return nil, errors.New("advisor: bedrock provider requires aws configuration")
		}
		return NewBedrockLLMClient(bedrockruntime.NewFromConfig(*awsCfg)), nil
	default:
		return nil, fmt.Errorf("advisor: unknown provider %q", cfg.Provider)
	}
}
