package mainconfig

import (
	"context"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/aws/aws-sdk-go-v2/service/sqs"

	"github.com/SteveHoareau18/timetravelagency/internal/advisor"
	appconfig "github.com/SteveHoareau18/timetravelagency/internal/config"
)

const defaultGeminiModel = "gemini-2.5-flash"

// LoadAWSConfig centralizes AWS SDK initialization so the API server and the
// advisor check share the same LocalStack/production wiring.
func LoadAWSConfig(ctx context.Context, cfg *appconfig.Config) (aws.Config, error) {
	loaders := []func(*config.LoadOptions) error{config.WithRegion(cfg.AWSRegion)}
	if strings.TrimSpace(cfg.AWSAccessKeyID) != "" && strings.TrimSpace(cfg.AWSSecretAccessKey) != "" {
		loaders = append(loaders, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AWSAccessKeyID, cfg.AWSSecretAccessKey, ""),
		))
	}

	awsCfg, err := config.LoadDefaultConfig(ctx, loaders...)
	if err != nil {
		return aws.Config{}, err
	}

	if endpoint := cfg.AWSEndpointOverride; endpoint != "" {
		awsCfg.EndpointResolverWithOptions = aws.EndpointResolverWithOptionsFunc(
			func(service, region string, _ ...interface{}) (aws.Endpoint, error) {
				switch service {
				case sqs.ServiceID, sesv2.ServiceID, bedrockruntime.ServiceID:
					return aws.Endpoint{
						URL:           endpoint,
						PartitionID:   "aws",
						SigningRegion: cfg.AWSRegion,
					}, nil
				default:
					return aws.Endpoint{}, &aws.EndpointNotFoundError{}
				}
			},
		)
	}

	return awsCfg, nil
}

// AdvisorConfig picks the credential and model matching the selected provider.
func AdvisorConfig(cfg *appconfig.Config) advisor.Config {
	out := advisor.Config{
		Provider:    cfg.LLMProvider,
		Model:       cfg.LLMModel,
		Temperature: float32(cfg.LLMTemperature),
		MaxTokens:   int32(cfg.LLMMaxTokens),
		TopP:        float32(cfg.LLMTopP),
		Timeout:     cfg.LLMTimeout,
	}
	switch cfg.LLMProvider {
	case advisor.ProviderGemini:
		out.APIKey = cfg.GeminiAPIKey
		if out.Model == "" {
			out.Model = defaultGeminiModel
		}
	case advisor.ProviderBedrock:
		if out.Model == "" {
			out.Model = cfg.BedrockModelID
		}
	default:
		out.APIKey = cfg.GroqAPIKey
		out.BaseURL = cfg.GroqBaseURL
	}
	return out
}
