package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"

	"github.com/joeshaw/envdecode"
	"github.com/joho/godotenv"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"buyingagent"
	"buyingagent/coordinator"
	"buyingagent/llm/openai"
	"buyingagent/prompt"
	"buyingagent/slack"
	"buyingagent/tools"
	"buyingagent/tools/storage"
)

func main() {
	ctx := context.Background()

	if err := godotenv.Load(); err != nil {
		slog.Info("SETUP: No .env file found, relying on environment")
	}

	var modelConfig buyingagent.ModelConfig
	if err := envdecode.Decode(&modelConfig); err != nil {
		log.Fatalf("SETUP: Failed to decode: %s", err)
	}

	var agentConfig buyingagent.AgentConfig
	if err := envdecode.Decode(&agentConfig); err != nil {
		log.Fatalf("SETUP: Failed to decode: %s", err)
	}

	if agentConfig.RouterToken == "" {
		log.Fatalf("SETUP: HF_TOKEN must be set to reach the router")
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

	llm, err := openai.NewClient(openai.ClientOpts{
		BaseEndpoint: agentConfig.BaseRouterEndpoint,
		Token:        agentConfig.RouterToken,
		Model:        modelConfig,
		HTTPClient:   http.DefaultClient,
	})
	if err != nil {
		slog.Error("SETUP: Failed to create LLM client", "error", err)
		return
	}
	prompt.Configure(llm)

	tracerProvider, meterProvider, otelShutdown, err := buyingagent.InitOtel(ctx)
	if err != nil {
		slog.Error("SETUP: Failed to initialize OpenTelemetry", "error", err)
		return
	}
	defer func() {
		if err := otelShutdown(ctx); err != nil {
			slog.Error("SETUP: Failed to shutdown OpenTelemetry", "error", err)
		}
	}()

	tracer := tracerProvider.Tracer(buyingagent.TracerNameOpenAI)
	meter := meterProvider.Meter(buyingagent.TracerNameOpenAI)

	ctx, span := tracer.Start(ctx, buyingagent.TracerNameOpenAI, trace.WithAttributes(
		attribute.String("model.id", modelConfig.ModelID),
		attribute.Int("model.max_tokens", int(modelConfig.MaxTokens)),
		attribute.Float64("model.temperature", float64(modelConfig.Temperature)),
		attribute.Float64("model.top_p", float64(modelConfig.TopP)),
	))
	defer span.End()

	cfg := coordinator.Config{
		ModelID:             modelConfig.ModelID,
		Budget:              agentConfig.Budget,
		VelocityWindowDays:  agentConfig.VelocityWindowDays,
		NegotiationRequired: agentConfig.NegotiationRequired,
	}
	monitor := coordinator.NewDecisionMonitor()

	report, err := coordinator.NewInstrumentedCoordinator(
		coordinator.NewModules(), registry, cfg, logger, monitor, tracer, meter).Run(ctx, task)
	if err != nil {
		slog.Error("FAILURE: Error handling task", "error", err)
		return
	}

	testServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body := new(bytes.Buffer)
		body.ReadFrom(r.Body) // nolint: errcheck
		slog.Info("Received request",
			"method", r.Method,
			"path", r.URL.Path,
			"header", r.Header,
			"body", body.String(),
		)
		w.WriteHeader(http.StatusOK)
	}))
	defer testServer.Close()

	slackClient := slack.NewClient(testServer.URL, http.DefaultClient)
	if err := slackClient.PostMessage(ctx, "#procurement", slack.Summary(report)); err != nil {
		slog.Error("Failed to post result to Slack", "error", err)
	}

	if err := writeReport(report, modelConfig.ModelID); err != nil {
		slog.Error("RESULT: Failed to write report", "error", err)
	}
}

func writeReport(report *buyingagent.AnalysisReport, modelID string) error {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return err
	}
	path := buyingagent.NewAnalysisLogFilePath(modelID + ".report")
	if err := os.WriteFile(path, data, 0644); err != nil {
		return err
	}
	slog.Info("RESULT: Report written", "path", path)
	return nil
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
