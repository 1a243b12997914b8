package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"

	"github.com/aws/aws-lambda-go/lambda"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/joeshaw/envdecode"

	"buyingagent"
	"buyingagent/coordinator"
	"buyingagent/llm/bedrock"
	"buyingagent/prompt"
	"buyingagent/tools"
	"buyingagent/tools/storage"
)

type Params struct {
	Task string `json:"task"`
}

type Results struct {
	Output any `json:"output"`
}

func main() {
	fn := func(ctx context.Context, params Params) (Results, error) {
		var modelConfig buyingagent.ModelConfig
		if err := envdecode.Decode(&modelConfig); err != nil {
			log.Fatalf("Failed to decode: %s", err)
		}

		var agentConfig buyingagent.AgentConfig
		if err := envdecode.Decode(&agentConfig); err != nil {
			log.Fatalf("Failed to decode: %s", err)
		}

		// S3 config from env
		s3Bucket := os.Getenv("ARTIFACTS_S3_BUCKET")
		inventoryKey := os.Getenv("ARTIFACTS_INVENTORY_S3_KEY")
		suppliersKey := os.Getenv("ARTIFACTS_SUPPLIERS_S3_KEY")
		ordersKey := os.Getenv("ARTIFACTS_ORDERS_S3_KEY")
		if s3Bucket == "" || inventoryKey == "" || suppliersKey == "" || ordersKey == "" {
			return Results{}, fmt.Errorf("missing S3 config: ARTIFACTS_S3_BUCKET, ARTIFACTS_INVENTORY_S3_KEY, ARTIFACTS_SUPPLIERS_S3_KEY, ARTIFACTS_ORDERS_S3_KEY must be set")
		}

		awsCfg, err := config.LoadDefaultConfig(ctx)
		if err != nil {
			return Results{}, fmt.Errorf("failed to load AWS config: %w", err)
		}
		s3Client := s3.NewFromConfig(awsCfg)

		inv := storage.NewS3InventoryState(s3Client, s3Bucket, inventoryKey)
		sup := storage.NewS3SupplierState(s3Client, s3Bucket, suppliersKey)
		ord := storage.NewS3OrderState(s3Client, s3Bucket, ordersKey)
		registry, err := tools.NewRegistry(inv, sup, ord)
		if err != nil {
			slog.Error("SETUP: Failed to create tool registry", "error", err)
			return Results{}, err
		}
		slog.Info("SETUP: S3 inventory, supplier, and order state initialized")

		analysisLogger := buyingagent.NewStdoutAnalysisLogger()

		brc, err := newBedrockRuntimeClient(ctx)
		if err != nil {
			slog.Error("SETUP: Failed to create Bedrock client", "error", err)
			return Results{}, err
		}

		llm := bedrock.NewLLMClient(brc, bedrock.LLMOptions{
			ModelID:     modelConfig.ModelID,
			MaxTokens:   modelConfig.MaxTokens,
			Temperature: modelConfig.Temperature,
			TopP:        modelConfig.TopP,
		})
		prompt.Configure(llm)

		tracerProvider, meterProvider, otelShutdown, err := buyingagent.InitOtel(ctx)
		if err != nil {
			slog.Error("SETUP: Failed to initialize OpenTelemetry", "error", err)
			return Results{}, err
		}
		_ = meterProvider
		defer func() {
			if err := otelShutdown(ctx); err != nil {
				slog.Error("SETUP: Failed to shutdown OpenTelemetry", "error", err)
			}
		}()

		cfg := coordinator.Config{
			ModelID:             llm.ModelID(),
			Budget:              agentConfig.Budget,
			VelocityWindowDays:  agentConfig.VelocityWindowDays,
			NegotiationRequired: agentConfig.NegotiationRequired,
		}

		report, err := coordinator.NewCoordinator(
			coordinator.NewModules(), registry, cfg, analysisLogger, nil, tracerProvider).Run(ctx, params.Task)
		if err != nil {
			slog.Error("RESULT: Error handling task", "error", err)
			return Results{}, err
		}

		return Results{Output: report}, nil
	}

	lambda.Start(fn)
}

func newBedrockRuntimeClient(ctx context.Context) (*bedrockruntime.Client, error) {
	awsCfg, err := config.LoadDefaultConfig(ctx, config.WithRetryMaxAttempts(5))
	if err != nil {
		return nil, err
	}
	return bedrockruntime.NewFromConfig(awsCfg), nil
}
