package coordinator

import (
	"sync"
	"time"

	"buyingagent"
)

// DecisionRecord is one monitored analysis outcome.
type DecisionRecord struct {
	RunID             string    `json:"run_id"`
	Timestamp         time.Time `json:"timestamp"`
	RecommendedOrder  string    `json:"recommended_order"`
	EstimatedCost     float64   `json:"estimated_cost"`
	EstimateAvailable bool      `json:"estimate_available"`
	WithinBudget      bool      `json:"within_budget"`
	CriticalSKUs      int       `json:"critical_skus"`
}

// DecisionMonitor keeps an in-memory log of analysis outcomes so budget
// discipline can be tracked across runs. Safe for concurrent use.
type DecisionMonitor struct {
	mu      sync.Mutex
	records []DecisionRecord
}

func NewDecisionMonitor() *DecisionMonitor {
	return &DecisionMonitor{}
}

// Record captures the outcome of one analysis run.
func (m *DecisionMonitor) Record(report *buyingagent.AnalysisReport) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.records = append(m.records, DecisionRecord{
		RunID:             report.RunID,
		Timestamp:         report.Timestamp,
		RecommendedOrder:  report.Advice.RecommendedOrder,
		EstimatedCost:     report.Budget.EstimatedCost,
		EstimateAvailable: report.Budget.EstimateAvailable,
		WithinBudget:      report.Budget.WithinBudget,
		CriticalSKUs:      len(report.Stockout.CriticalSKUs),
	})
}

// Records returns a copy of the monitored outcomes.
func (m *DecisionMonitor) Records() []DecisionRecord {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]DecisionRecord, len(m.records))
	copy(out, m.records)
	return out
}

// WithinBudgetRatio returns the share of runs with a usable estimate that
// stayed within budget. Runs without an estimate don't count either way.
func (m *DecisionMonitor) WithinBudgetRatio() float64 {
	m.mu.Lock()
	defer m.mu.Unlock()

	withEstimate, within := 0, 0
	for _, r := range m.records {
		if !r.EstimateAvailable {
			continue
		}
		withEstimate++
		if r.WithinBudget {
			within++
		}
	}
	if withEstimate == 0 {
		return 0
	}
	return float64(within) / float64(withEstimate)
}
