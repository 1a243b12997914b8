package procure

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEstimateCostImpact(t *testing.T) {
	tests := []struct {
		name     string
		risk     StockoutRisk
		quantity int
		want     CostImpact
	}{
		{
			name:     "critical doubles and a half",
			risk:     RiskCritical,
			quantity: 100,
			want: CostImpact{
				NormalOrderCost:  5000,
				ExpeditedCost:    12500,
				CostPremium:      7500,
				StockoutRiskCost: 1500,
			},
		},
		{
			name:     "stable has no premium",
			risk:     RiskStable,
			quantity: 10,
			want: CostImpact{
				NormalOrderCost:  500,
				ExpeditedCost:    500,
				CostPremium:      0,
				StockoutRiskCost: 150,
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, EstimateCostImpact(tt.risk, tt.quantity))
		})
	}
}

func TestUrgencyScore(t *testing.T) {
	twoDays, tenDays, twentyDays := 2.0, 10.0, 20.0

	tests := []struct {
		name string
		p    StockoutPrediction
		want int
	}{
		{"critical caps at 100", StockoutPrediction{Risk: RiskCritical, DaysUntilStockout: &twoDays}, 100},
		{"high with short runway", StockoutPrediction{Risk: RiskHigh, DaysUntilStockout: &twoDays}, 100},
		{"medium with week runway", StockoutPrediction{Risk: RiskMedium, DaysUntilStockout: &tenDays}, 65},
		{"low with long runway", StockoutPrediction{Risk: RiskLow, DaysUntilStockout: &twentyDays}, 40},
		{"stable no runway", StockoutPrediction{Risk: RiskStable}, 20},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, UrgencyScore(tt.p))
		})
	}
}

func TestRecommendedQuantity(t *testing.T) {
	assert.Equal(t, 200, RecommendedQuantity(100))
	assert.Equal(t, 100, RecommendedQuantity(30), "floor applies to small reorder levels")
	assert.Equal(t, 100, RecommendedQuantity(0))
}

func TestBuildRecommendations(t *testing.T) {
	atRisk := []StockoutPrediction{
		{SKUID: "SKU-100A", Risk: RiskHigh, CurrentStock: 20, ReorderLevel: 50},
		{SKUID: "SKU-200B", Risk: RiskCritical, CurrentStock: 0, ReorderLevel: 80},
	}
	perfByID := map[string]SupplierPerformance{
		"SUP001": {SupplierID: "SUP001", SupplierName: "Acme", ReliabilityScore: 95, StandardLeadTimeDays: 7, Tier: Tier1},
		"SUP002": {SupplierID: "SUP002", SupplierName: "Globex", ReliabilityScore: 70, StandardLeadTimeDays: 10, Tier: Tier2},
	}
	orders := []PurchaseOrder{
		{SKUID: "SKU-100A", SupplierID: "SUP002", OrderDate: day(0)},
		{SKUID: "SKU-100A", SupplierID: "SUP001", OrderDate: day(1)},
		{SKUID: "SKU-100B", SupplierID: "SUP001", OrderDate: day(2)},
	}

	recs := BuildRecommendations(atRisk, perfByID, orders)
	require.Len(t, recs, 2)

	// critical item sorts first
	critical := recs[0]
	assert.Equal(t, "SKU-200B", critical.SKUID)
	assert.Equal(t, 100, critical.UrgencyScore)
	assert.Equal(t, 160, critical.RecommendedQuantity)
	assert.Nil(t, critical.PrimarySupplier, "no supplier has shipped this SKU")

	high := recs[1]
	assert.Equal(t, "SKU-100A", high.SKUID)
	require.NotNil(t, high.PrimarySupplier)
	assert.Equal(t, "SUP001", high.PrimarySupplier.SupplierID, "best score wins primary")
	require.Len(t, high.AlternativeSuppliers, 1)
	assert.Equal(t, "SUP002", high.AlternativeSuppliers[0].SupplierID)
	assert.Equal(t, []string{"SKU-100B"}, high.SubstitutionOptions)
	assert.Equal(t, 100*50*1.8, high.CostImpact.ExpeditedCost)
}

func TestBatchOrders(t *testing.T) {
	sup := &SupplierRef{SupplierID: "SUP001"}
	recs := []Recommendation{
		{SKUID: "A", PrimarySupplier: sup, UrgencyScore: 95},
		{SKUID: "B", PrimarySupplier: sup, UrgencyScore: 60},
		{SKUID: "C", PrimarySupplier: nil, UrgencyScore: 100}, // unbatchable
	}

	batches := BatchOrders(recs)
	require.Len(t, batches, 1)

	batch := batches["SUP001"]
	assert.Equal(t, 2, batch.TotalOrders)
	assert.Equal(t, 100.0, batch.EstimatedSavings)
	require.Len(t, batch.UrgentOrders, 1)
	assert.Equal(t, "A", batch.UrgentOrders[0].SKUID)
	require.Len(t, batch.StandardOrders, 1)
	assert.Equal(t, "B", batch.StandardOrders[0].SKUID)
}

func TestAssessImpact(t *testing.T) {
	recs := []Recommendation{
		{UrgencyScore: 90, CostImpact: CostImpact{ExpeditedCost: 1000}},
		{UrgencyScore: 50, CostImpact: CostImpact{ExpeditedCost: 400}},
	}
	batches := map[string]SupplierBatch{
		"SUP001": {EstimatedSavings: 100},
		"SUP002": {EstimatedSavings: 50},
	}

	impact := AssessImpact(recs, batches)
	assert.Equal(t, 2, impact.TotalItemsRequiringAction)
	assert.Equal(t, 1400.0, impact.EstimatedTotalCost)
	assert.Equal(t, 150.0, impact.PotentialBatchSavings)
	assert.Equal(t, 1, impact.HighUrgencyItems)
	assert.Equal(t, 2, impact.SuppliersInvolved)
}
