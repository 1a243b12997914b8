package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"os"

	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime"
	"github.com/joeshaw/envdecode"

	"buyingagent"
	"buyingagent/coordinator"
	"buyingagent/llm/bedrock"
	"buyingagent/prompt"
	"buyingagent/tools"
	"buyingagent/tools/storage"
)

func main() {
	ctx := context.Background()

	var modelConfig buyingagent.ModelConfig
	if err := envdecode.Decode(&modelConfig); err != nil {
		log.Fatalf("SETUP: Failed to decode: %s", err)
	}

	var agentConfig buyingagent.AgentConfig
	if err := envdecode.Decode(&agentConfig); err != nil {
		log.Fatalf("SETUP: Failed to decode: %s", err)
	}

	inv := storage.NewFileInventoryState(agentConfig.ArtifactsInventoryPath)
	sup := storage.NewFileSupplierState(agentConfig.ArtifactsSuppliersPath)
	ord := storage.NewFileOrderState(agentConfig.ArtifactsOrdersPath)
	registry, err := tools.NewRegistry(inv, sup, ord)
	if err != nil {
		slog.Error("SETUP: Failed to create tool registry", "error", err)
		return
	}
	slog.Info("SETUP: Static procurement data loaded at initialization")

	logger, cleanup, err := newAnalysisLogger(modelConfig.ModelID)
	if err != nil {
		slog.Error("SETUP: Failed to create analysis logger", "error", err)
		return
	}
	defer func() {
		if err := cleanup(); err != nil {
			slog.Error("SETUP: Failed to flush analysis log", "error", err)
		}
	}()

	task := argOr(1, "Run the weekly procurement analysis: evaluate supplier reliability, forecast stockouts, and recommend purchases within budget.")

	brc, err := newBedrockRuntimeClient(ctx)
	if err != nil {
		slog.Error("SETUP: Failed to create Bedrock client", "error", err)
		return
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
		return
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
	monitor := coordinator.NewDecisionMonitor()

	report, err := coordinator.NewCoordinator(
		coordinator.NewModules(), registry, cfg, logger, monitor, tracerProvider).Run(ctx, task)
	if err != nil {
		slog.Error("RESULT: Error handling task", "error", err)
		return
	}

	slog.Info("RESULT: Analysis complete",
		"run_id", report.RunID,
		"critical_skus", len(report.Stockout.CriticalSKUs),
		"within_budget", report.Budget.WithinBudget,
	)
}

func newBedrockRuntimeClient(ctx context.Context) (*bedrockruntime.Client, error) {
	awsCfg, err := config.LoadDefaultConfig(ctx, config.WithRetryMaxAttempts(5))
	if err != nil {
		return nil, err
	}
	return bedrockruntime.NewFromConfig(awsCfg), nil
}

func argOr(i int, def string) string {
	if len(os.Args) > i {
		return os.Args[i]
	}
	return def
}

func newAnalysisLogger(modelID string) (buyingagent.AnalysisLogger, func() error, error) {
	logFilePath := buyingagent.NewAnalysisLogFilePath(modelID)
	logFile, err := os.OpenFile(logFilePath, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
	if err != nil {
		return nil, func() error { return err }, fmt.Errorf("failed to open log file: %w", err)
	}

	logger := buyingagent.NewFileAnalysisLogger(logFile)
	cleanup := func() error {
		return errors.Join(logger.Flush(), logFile.Close())
	}
	return logger, cleanup, nil
}
