package bootstrap

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"

	"github.com/SteveHoareau18/timetravelagency/internal/advisor"
	"github.com/SteveHoareau18/timetravelagency/internal/observability/metrics"
	"github.com/SteveHoareau18/timetravelagency/pkg/logging"
)

// BuildResponder wires the advisor. Without a usable credential the
// responder runs on keyword rules only.
func BuildResponder(ctx context.Context, cfg advisor.Config, awsCfg *aws.Config, m *metrics.AdvisorMetrics, logger *logging.Logger) (*advisor.Responder, error) {
	if logger == nil {
		logger = logging.Default()
	}
	if ctx == nil {
		ctx = context.Background()
	}

	client, err := advisor.NewClientFromConfig(ctx, cfg, awsCfg)
	if err != nil {
		return nil, fmt.Errorf("bootstrap: advisor client: %w", err)
	}

	responder := advisor.NewResponder(client, cfg, advisor.WithMetrics(m), advisor.WithLogger(logger))
	logger.Info("advisor configured", "mode", responder.Mode(), "provider", cfg.Provider, "model", cfg.Model)
	return responder, nil
}
