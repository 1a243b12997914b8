package coordinator

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"buyingagent"
)

func testReport(runID string, withinBudget, estimateAvailable bool) *buyingagent.AnalysisReport {
	return &buyingagent.AnalysisReport{
		RunID:     runID,
		Timestamp: time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC),
		Advice: buyingagent.PurchaseAdvice{
			RecommendedOrder: "Order 160 units of SKU-205B",
		},
		Budget: buyingagent.BudgetCheck{
			Budget:            75000,
			EstimatedCost:     20000,
			EstimateAvailable: estimateAvailable,
			WithinBudget:      withinBudget,
		},
		Stockout: buyingagent.StockoutAssessment{
			CriticalSKUs: []string{"SKU-205B"},
		},
	}
}

func TestDecisionMonitor(t *testing.T) {
	m := NewDecisionMonitor()

	assert.Equal(t, 0.0, m.WithinBudgetRatio(), "no records yet")

	m.Record(testReport("run-1", true, true))
	m.Record(testReport("run-2", false, true))
	m.Record(testReport("run-3", true, true))
	m.Record(testReport("run-4", false, false)) // no estimate, excluded from ratio

	records := m.Records()
	require.Len(t, records, 4)
	assert.Equal(t, "run-1", records[0].RunID)
	assert.Equal(t, 1, records[0].CriticalSKUs)

	// 2 of the 3 runs with an estimate stayed within budget
	assert.InDelta(t, 2.0/3.0, m.WithinBudgetRatio(), 0.0001)
}

func TestDecisionMonitor_RecordsReturnsCopy(t *testing.T) {
	m := NewDecisionMonitor()
	m.Record(testReport("run-1", true, true))

	records := m.Records()
	records[0].RunID = "mutated"

	assert.Equal(t, "run-1", m.Records()[0].RunID)
}

func TestDecisionMonitor_ConcurrentUse(t *testing.T) {
	m := NewDecisionMonitor()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			m.Record(testReport(fmt.Sprintf("run-%d", i), i%2 == 0, true))
			_ = m.WithinBudgetRatio()
		}(i)
	}
	wg.Wait()

	assert.Len(t, m.Records(), 20)
	assert.InDelta(t, 0.5, m.WithinBudgetRatio(), 0.0001)
}
