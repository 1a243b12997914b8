package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"

	"github.com/joeshaw/envdecode"
	"github.com/joho/godotenv"

	"buyingagent"
	"buyingagent/llm/openai"
	"buyingagent/prompt"
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

	optimized, err := prompt.CompileAdvisor(ctx, llm)
	if err != nil {
		slog.Error("FAILURE: Compile failed", "error", err)
		return
	}

	// Exercise the compiled program on a fresh scenario so the bootstrapped
	// demonstration shows up in the trace.
	result, err := optimized.Execute(ctx, map[string]interface{}{
		"stockout_risk":      "SKU-310C: MEDIUM - 45 units left against a reorder level of 60, daily usage 3 units.",
		"supplier_scores":    "Acme Industrial: Tier 1, 95.2 reliability, 7 day lead time.",
		"budget_constraints": "Monthly procurement budget: $75,000. Current committed spend: $41,000.",
	})
	if err != nil {
		slog.Error("FAILURE: Optimized program failed", "error", err)
		return
	}

	buyingagent.Dump(result)
}
