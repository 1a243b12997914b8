package coordinator

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/sdk/trace"

	"buyingagent"
	"buyingagent/procure"
	"buyingagent/prompt"
)

// Consumer-side views of the prompt modules so the pipeline can be tested
// without a live model.
type supplierEvaluator interface {
	Evaluate(ctx context.Context, orderHistory, supplierInfo string) (prompt.SupplierAssessment, error)
}

type stockoutForecaster interface {
	Forecast(ctx context.Context, currentStock, consumptionPattern, leadTime string) (prompt.ItemForecast, error)
}

type purchaseAdvisor interface {
	Advise(ctx context.Context, stockoutRisk, supplierScores, budgetConstraints string) (prompt.PurchaseAdvice, error)
}

type negotiationPlanner interface {
	Plan(ctx context.Context, supplierProfile, orderRequirements, marketConditions string) (prompt.NegotiationPlan, error)
}

// Modules bundles the four prompt modules the pipeline runs.
type Modules struct {
	Evaluator  supplierEvaluator
	Forecaster stockoutForecaster
	Advisor    purchaseAdvisor
	Planner    negotiationPlanner
}

// NewModules wires up the default prompt modules.
func NewModules() Modules {
	return Modules{
		Evaluator:  prompt.NewSupplierEvaluator(),
		Forecaster: prompt.NewStockoutForecaster(),
		Advisor:    prompt.NewPurchaseAdvisor(),
		Planner:    prompt.NewNegotiationPlanner(),
	}
}

// Config carries the run parameters the pipeline needs.
type Config struct {
	ModelID             string
	Budget              float64
	VelocityWindowDays  int
	NegotiationRequired bool
}

// Coordinator runs the analysis pipeline: load data through tools, run the
// deterministic analytics, then sequence the prompt modules and check the
// result against the budget.
type Coordinator struct {
	modules        Modules
	toolProvider   buyingagent.ToolProvider
	cfg            Config
	logger         buyingagent.AnalysisLogger
	monitor        *DecisionMonitor
	tracerProvider *trace.TracerProvider
	now            func() time.Time
}

// NewCoordinator initializes a new coordinator. The monitor may be nil.
func NewCoordinator(modules Modules, tp buyingagent.ToolProvider, cfg Config, log buyingagent.AnalysisLogger, monitor *DecisionMonitor, tracerProvider *trace.TracerProvider) *Coordinator {
	return &Coordinator{
		modules:        modules,
		toolProvider:   tp,
		cfg:            cfg,
		logger:         log,
		monitor:        monitor,
		tracerProvider: tracerProvider,
		now:            time.Now,
	}
}

// sourceData is everything the pipeline loads through the tool layer.
type sourceData struct {
	inventory   []procure.InventoryItem
	orders      []procure.PurchaseOrder
	performance []procure.SupplierPerformance
}

// Run executes the full analysis for a given task.
func (c *Coordinator) Run(ctx context.Context, task string) (*buyingagent.AnalysisReport, error) {
	tracer := otel.Tracer(buyingagent.TracerNameOpenAI)
	if c.tracerProvider != nil {
		tracer = c.tracerProvider.Tracer(buyingagent.TracerNameBedrock)
	}
	ctx, span := tracer.Start(ctx, "Coordinator.Run")
	defer span.End()

	slog.Info("COORDINATOR: Starting run", "task", task, "model", c.cfg.ModelID)

	report := &buyingagent.AnalysisReport{
		RunID:     uuid.NewString(),
		Timestamp: c.now(),
		ModelID:   c.cfg.ModelID,
		Task:      task,
	}

	// 1) Load source data through the tool layer
	data, err := c.loadSourceData(ctx)
	if err != nil {
		c.logStep("load_data", task, nil, err)
		return nil, fmt.Errorf("failed to load source data: %w", err)
	}
	c.logStep("load_data", task, map[string]any{
		"inventory_items": len(data.inventory),
		"orders":          len(data.orders),
		"suppliers":       len(data.performance),
	}, nil)

	// 2) Deterministic analytics
	predictions := procure.PredictStockouts(data.inventory, data.orders, c.now(), c.cfg.VelocityWindowDays)
	atRisk := procure.AtRisk(predictions)
	perfByID := procure.PerformanceByID(data.performance)
	recommendations := procure.BuildRecommendations(atRisk, perfByID, data.orders)
	batches := procure.BatchOrders(recommendations)
	impact := procure.AssessImpact(recommendations, batches)
	report.Dashboard = procure.BuildDashboard(data.performance, data.inventory, predictions, recommendations, impact)
	c.logStep("analytics", "", map[string]any{
		"predictions":     len(predictions),
		"at_risk":         len(atRisk),
		"recommendations": len(recommendations),
	}, nil)

	// Benchmark the recommendation quality against the standing targets. The
	// results go to the step log for review, not into the report.
	targets := procure.DefaultBenchmarkTargets()
	c.logStep("benchmark_evaluation", "", map[string]any{
		"substitution_accuracy": procure.EvaluateSubstitutionAccuracy(recommendations, data.orders, targets),
		"supplier_quality":      procure.EvaluateSupplierQuality(recommendations, data.performance),
		"cost_impact":           procure.EvaluateCostImpact(recommendations, targets),
		"lead_times":            procure.EvaluateLeadTimes(recommendations, targets),
	}, nil)

	// 3) Supplier evaluation
	orderHistory := deliverySummary(data.orders)
	supplierInfo := mustJSON(data.performance)
	assessment, err := c.modules.Evaluator.Evaluate(ctx, orderHistory, supplierInfo)
	if err != nil {
		c.logStep("supplier_evaluation", orderHistory, nil, err)
		return nil, fmt.Errorf("supplier evaluation failed: %w", err)
	}
	report.Supplier = buyingagent.SupplierAssessment{
		ReliabilityScore: assessment.ReliabilityScore,
		RiskFactors:      assessment.RiskFactors,
		Reasoning:        assessment.Reasoning,
	}
	c.logStep("supplier_evaluation", orderHistory, report.Supplier, nil)

	// 4) Per-item stockout forecasts across the whole inventory
	report.Stockout, err = c.forecastStockouts(ctx, predictions, data.orders, perfByID)
	if err != nil {
		return nil, err
	}

	// 5) Purchase recommendation, fed from the previous modules' outputs
	budgetConstraints := fmt.Sprintf("Monthly procurement budget: $%.0f", c.cfg.Budget)
	advice, err := c.modules.Advisor.Advise(ctx, mustJSON(report.Stockout), mustJSON(report.Supplier), budgetConstraints)
	if err != nil {
		c.logStep("purchase_recommendation", budgetConstraints, nil, err)
		return nil, fmt.Errorf("purchase recommendation failed: %w", err)
	}
	report.Advice = buyingagent.PurchaseAdvice{
		RecommendedOrder: advice.RecommendedOrder,
		Justification:    advice.Justification,
		Reasoning:        advice.Reasoning,
	}
	c.logStep("purchase_recommendation", budgetConstraints, report.Advice, nil)

	// 6) Negotiation strategy, only when the run calls for it
	if c.cfg.NegotiationRequired {
		plan, err := c.modules.Planner.Plan(ctx,
			supplierSummary(data.performance),
			orderVolumeSummary(recommendations),
			"Standard market conditions, no unusual supply constraints reported.",
		)
		if err != nil {
			c.logStep("negotiation_strategy", "", nil, err)
			return nil, fmt.Errorf("negotiation planning failed: %w", err)
		}
		report.Negotiation = &buyingagent.NegotiationPlan{
			Strategy:        plan.Strategy,
			ExpectedOutcome: plan.ExpectedOutcome,
		}
		c.logStep("negotiation_strategy", "", report.Negotiation, nil)
	}

	// 7) Budget check over the recommended order text
	report.Budget = CheckBudget(advice.RecommendedOrder, c.cfg.Budget)
	c.logStep("budget_check", advice.RecommendedOrder, report.Budget, nil)

	if c.monitor != nil {
		c.monitor.Record(report)
	}

	slog.Info("COORDINATOR: Run complete",
		"run_id", report.RunID,
		"critical_skus", len(report.Stockout.CriticalSKUs),
		"within_budget", report.Budget.WithinBudget,
		"estimate_available", report.Budget.EstimateAvailable,
	)
	return report, nil
}

func (c *Coordinator) forecastStockouts(ctx context.Context, predictions []procure.StockoutPrediction, orders []procure.PurchaseOrder, perfByID map[string]procure.SupplierPerformance) (buyingagent.StockoutAssessment, error) {
	assessment := buyingagent.StockoutAssessment{
		Items:        make([]buyingagent.ItemForecast, 0, len(predictions)),
		CriticalSKUs: make([]string, 0),
	}

	for _, p := range predictions {
		forecast, err := c.modules.Forecaster.Forecast(ctx,
			fmt.Sprintf("%d", p.CurrentStock),
			procure.ConsumptionNarrative(p.VelocityPerDay),
			leadTimeNarrative(p.SKUID, orders, perfByID),
		)
		if err != nil {
			c.logStep("stockout_prediction", p.SKUID, nil, err)
			return assessment, fmt.Errorf("stockout forecast for %s failed: %w", p.SKUID, err)
		}

		assessment.Items = append(assessment.Items, buyingagent.ItemForecast{
			SKUID:               p.SKUID,
			CurrentStock:        p.CurrentStock,
			ReorderLevel:        p.ReorderLevel,
			StockoutProbability: forecast.StockoutProbability,
			DaysUntilStockout:   forecast.DaysUntilStockout,
		})
		// Critical means at or below the reorder level.
		if p.CurrentStock <= p.ReorderLevel {
			assessment.CriticalSKUs = append(assessment.CriticalSKUs, p.SKUID)
		}
	}

	assessment.Summary = fmt.Sprintf("Found %d critical items needing immediate attention", len(assessment.CriticalSKUs))
	c.logStep("stockout_prediction", "", assessment, nil)
	return assessment, nil
}

func (c *Coordinator) loadSourceData(ctx context.Context) (sourceData, error) {
	var data sourceData

	invOut, err := c.runTool(ctx, "inventory_get", map[string]any{})
	if err != nil {
		return data, err
	}
	var inv struct {
		Inventory struct {
			Items []procure.InventoryItem `json:"items"`
		} `json:"inventory"`
	}
	if err := remarshal(invOut, &inv); err != nil {
		return data, fmt.Errorf("decode inventory: %w", err)
	}
	data.inventory = inv.Inventory.Items

	ordOut, err := c.runTool(ctx, "order_history_get", map[string]any{})
	if err != nil {
		return data, err
	}
	var ord struct {
		Orders []procure.PurchaseOrder `json:"orders"`
	}
	if err := remarshal(ordOut, &ord); err != nil {
		return data, fmt.Errorf("decode order history: %w", err)
	}
	data.orders = ord.Orders

	perfOut, err := c.runTool(ctx, "supplier_performance_get", map[string]any{})
	if err != nil {
		return data, err
	}
	var perf struct {
		Suppliers []procure.SupplierPerformance `json:"suppliers"`
	}
	if err := remarshal(perfOut, &perf); err != nil {
		return data, fmt.Errorf("decode supplier performance: %w", err)
	}
	data.performance = perf.Suppliers

	return data, nil
}

func (c *Coordinator) runTool(ctx context.Context, name string, input map[string]any) (map[string]any, error) {
	tool, err := c.toolProvider.GetTool(name)
	if err != nil {
		return nil, fmt.Errorf("failed to get tool %q: %w", name, err)
	}
	out, err := tool.Run(ctx, input)
	if err != nil {
		return nil, fmt.Errorf("failed to run tool %q: %w", name, err)
	}
	slog.Info("COORDINATOR: Tool executed", "name", name)
	return out, nil
}

// logStep logs a stage using the configured logger, handling errors gracefully
func (c *Coordinator) logStep(stage, input string, output any, err error) {
	if c.logger == nil {
		return
	}
	step := buyingagent.StepLog{
		Stage:     stage,
		Timestamp: c.now(),
		Input:     input,
		Output:    output,
	}
	if err != nil {
		step.Error = err.Error()
	}
	if lerr := c.logger.LogStep(step); lerr != nil {
		slog.Error("Failed to log analysis step", "error", lerr, "stage", stage)
	}
}

func remarshal(in map[string]any, out any) error {
	b, err := json.Marshal(in)
	if err != nil {
		return err
	}
	return json.Unmarshal(b, out)
}

func mustJSON(v any) string {
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprintf("%v", v)
	}
	return string(b)
}

func deliverySummary(orders []procure.PurchaseOrder) string {
	completed, expedited, substituted := 0, 0, 0
	for _, o := range orders {
		if o.OrderStatus == procure.OrderStatusCompleted {
			completed++
		}
		if o.WasExpedited {
			expedited++
		}
		if o.WasSubstitution {
			substituted++
		}
	}
	return fmt.Sprintf("%d historical orders: %d completed, %d expedited, %d substituted", len(orders), completed, expedited, substituted)
}

func supplierSummary(perf []procure.SupplierPerformance) string {
	if len(perf) == 0 {
		return "No supplier performance data available."
	}
	summary := ""
	for i, p := range perf {
		if i > 0 {
			summary += " "
		}
		summary += fmt.Sprintf("%s: %s, %.1f reliability, %d day lead time.", p.SupplierName, p.Tier, p.ReliabilityScore, p.StandardLeadTimeDays)
	}
	return summary
}

// leadTimeNarrative reports the shortest standard lead time among suppliers
// that have shipped this SKU before.
func leadTimeNarrative(skuID string, orders []procure.PurchaseOrder, perfByID map[string]procure.SupplierPerformance) string {
	best := 0
	for _, o := range orders {
		if o.SKUID != skuID {
			continue
		}
		perf, ok := perfByID[o.SupplierID]
		if !ok {
			continue
		}
		if best == 0 || perf.StandardLeadTimeDays < best {
			best = perf.StandardLeadTimeDays
		}
	}
	if best == 0 {
		return "No supplier lead time on record"
	}
	return fmt.Sprintf("%d days standard lead time", best)
}

func orderVolumeSummary(recommendations []procure.Recommendation) string {
	units := 0
	for _, r := range recommendations {
		units += r.RecommendedQuantity
	}
	return fmt.Sprintf("%d recommended orders totaling %d units", len(recommendations), units)
}
