// Package app provides application-level wiring and dependency injection
// for the flowplan server and CLI.
package app

import (
	"context"
	"fmt"
	"log/slog"

	"flowplan/internal/config"
	"flowplan/internal/domain"
	"flowplan/internal/openapi"
	"flowplan/internal/sampling"
	"flowplan/internal/service/plan"
)

// Deps holds the external dependencies that main() must provide.
type Deps struct {
	Cfg    *config.Config
	Logger *slog.Logger
}

// Services groups the service pointers the API handlers and UI need.
type Services struct {
	Plan *plan.PlanService
}

// App holds the fully-wired application. Detector is exposed for the
// standalone sample-detection endpoint and the CLI detect command.
type App struct {
	Services Services
	Fetchers *sampling.Registry
	Detector *sampling.Detector
}

// New wires the sample fetchers, the schema detector, and the plan service
// from the provided deps. Cloud fetchers register only when their
// credentials are configured; local file sampling always works.
func New(ctx context.Context, deps Deps) (*App, error) {
	cfg := deps.Cfg

	fetchers := sampling.NewRegistry()

	if cfg.HasS3Config() {
		opts := sampling.S3Options{
			Region:       *cfg.S3Region,
			KeyID:        *cfg.S3KeyID,
			Secret:       *cfg.S3Secret,
			UsePathStyle: cfg.S3PathStyle,
		}
		if cfg.S3Endpoint != nil {
			opts.Endpoint = *cfg.S3Endpoint
		}
		fetchers.Register("s3", sampling.NewS3Fetcher(opts))
		deps.Logger.Info("s3 sample fetcher enabled", "region", *cfg.S3Region)
	}

	if cfg.GCSCredentialsFile != "" {
		gcs, err := sampling.NewGCSFetcher(ctx, cfg.GCSCredentialsFile)
		if err != nil {
			return nil, fmt.Errorf("gcs credentials: %w", err)
		}
		fetchers.Register("gs", gcs)
		deps.Logger.Info("gcs sample fetcher enabled")
	}

	if cfg.HasAzureConfig() {
		az, err := sampling.NewAzureFetcher(cfg.AzureAccountName, cfg.AzureAccountKey)
		if err != nil {
			return nil, fmt.Errorf("azure credentials: %w", err)
		}
		fetchers.Register("az", az)
		deps.Logger.Info("azure sample fetcher enabled", "account", cfg.AzureAccountName)
	}

	detector := sampling.NewDetector(fetchers, sampling.Limits{
		MaxBytes:   cfg.SampleMaxBytes,
		MaxRecords: cfg.SampleMaxRecords,
	})

	planSvc := plan.NewPlanService(detector, openapiDeriver{}, deps.Logger.With("component", "plan"))

	return &App{
		Services: Services{Plan: planSvc},
		Fetchers: fetchers,
		Detector: detector,
	}, nil
}

// openapiDeriver adapts the openapi package's file-based derivation to the
// plan.SchemaDeriver interface.
type openapiDeriver struct{}

func (openapiDeriver) DeriveFromFile(ctx context.Context, path, operationID string) (domain.Schema, error) {
	return openapi.DeriveFromFile(ctx, path, operationID)
}
