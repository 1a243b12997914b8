package coordinator

import (
	"context"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"buyingagent"
)

// InstrumentedCoordinator wraps the Coordinator with observability metrics
// around the full analysis run.
type InstrumentedCoordinator struct {
	inner  *Coordinator
	tracer trace.Tracer
	meter  metric.Meter
}

// NewInstrumentedCoordinator initializes a new instrumented coordinator.
func NewInstrumentedCoordinator(modules Modules, tp buyingagent.ToolProvider, cfg Config, log buyingagent.AnalysisLogger, monitor *DecisionMonitor, tracer trace.Tracer, meter metric.Meter) *InstrumentedCoordinator {
	return &InstrumentedCoordinator{
		inner:  NewCoordinator(modules, tp, cfg, log, monitor, nil),
		tracer: tracer,
		meter:  meter,
	}
}

// Run executes the analysis pipeline with full instrumentation.
func (c *InstrumentedCoordinator) Run(ctx context.Context, task string) (*buyingagent.AnalysisReport, error) {
	ctx, span := c.tracer.Start(ctx, "InstrumentedCoordinator.Run")
	defer span.End()

	slog.Info("COORDINATOR: Starting instrumented run", "task", task)

	runsCounter, _ := c.meter.Int64Counter("analysis_runs_total",
		metric.WithDescription("Total number of analysis runs started"))
	runsCompletedCounter, _ := c.meter.Int64Counter("analysis_runs_completed_total",
		metric.WithDescription("Total number of analysis runs completed successfully"))
	runsFailedCounter, _ := c.meter.Int64Counter("analysis_runs_failed_total",
		metric.WithDescription("Total number of analysis runs that failed"))
	budgetWithinCounter, _ := c.meter.Int64Counter("budget_within_total",
		metric.WithDescription("Total number of runs whose estimated spend stayed within budget"))
	budgetExceededCounter, _ := c.meter.Int64Counter("budget_exceeded_total",
		metric.WithDescription("Total number of runs whose estimated spend exceeded budget"))
	budgetUnknownCounter, _ := c.meter.Int64Counter("budget_unknown_total",
		metric.WithDescription("Total number of runs where no spend estimate could be extracted"))

	criticalSKUsGauge, _ := c.meter.Int64Gauge("critical_skus_count",
		metric.WithDescription("Number of critical SKUs found in the latest run"))
	itemsAnalyzedGauge, _ := c.meter.Int64Gauge("items_analyzed_count",
		metric.WithDescription("Number of inventory items forecast in the latest run"))
	recommendationsGauge, _ := c.meter.Int64Gauge("active_recommendations_count",
		metric.WithDescription("Number of active recommendations on the latest dashboard"))
	estimatedCostGauge, _ := c.meter.Float64Gauge("estimated_cost_dollars",
		metric.WithDescription("Estimated spend extracted from the latest recommendation"))

	runDurationHist, _ := c.meter.Float64Histogram("analysis_duration_seconds",
		metric.WithDescription("Total duration of the analysis run in seconds"))

	runsCounter.Add(ctx, 1)
	start := time.Now()

	report, err := c.inner.Run(ctx, task)
	runDurationHist.Record(ctx, time.Since(start).Seconds())

	if err != nil {
		runsFailedCounter.Add(ctx, 1)
		span.SetStatus(codes.Error, "Analysis run failed")
		span.RecordError(err)
		return nil, err
	}

	runsCompletedCounter.Add(ctx, 1)

	switch {
	case !report.Budget.EstimateAvailable:
		budgetUnknownCounter.Add(ctx, 1)
	case report.Budget.WithinBudget:
		budgetWithinCounter.Add(ctx, 1)
	default:
		budgetExceededCounter.Add(ctx, 1)
	}

	criticalSKUsGauge.Record(ctx, int64(len(report.Stockout.CriticalSKUs)))
	itemsAnalyzedGauge.Record(ctx, int64(len(report.Stockout.Items)))
	recommendationsGauge.Record(ctx, int64(report.Dashboard.SummaryMetrics.ActiveRecommendations))
	estimatedCostGauge.Record(ctx, report.Budget.EstimatedCost)

	span.SetAttributes(
		attribute.String("run_id", report.RunID),
		attribute.Int("critical_skus", len(report.Stockout.CriticalSKUs)),
		attribute.Bool("within_budget", report.Budget.WithinBudget),
		attribute.Bool("estimate_available", report.Budget.EstimateAvailable),
	)

	return report, nil
}
