package procure

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEvaluateSubstitutionAccuracy(t *testing.T) {
	orders := []PurchaseOrder{
		{SKUID: "SKU-100A", WasSubstitution: true, SubstituteSKU: "SKU-100B"},
		{SKUID: "SKU-200A", WasSubstitution: true, SubstituteSKU: "SKU-200C"},
		{SKUID: "SKU-300A", WasSubstitution: false},
	}
	recs := []Recommendation{
		{SKUID: "SKU-100A", SubstitutionOptions: []string{"SKU-100B", "SKU-100C"}}, // hit
		{SKUID: "SKU-200A", SubstitutionOptions: []string{"SKU-200B"}},             // miss
		{SKUID: "SKU-300A"}, // no options, not counted
	}

	result := EvaluateSubstitutionAccuracy(recs, orders, DefaultBenchmarkTargets())
	assert.Equal(t, 2, result.TotalPredictions)
	assert.Equal(t, 1, result.CorrectPredictions)
	assert.Equal(t, 0.5, result.Accuracy)
	assert.Equal(t, 0.85, result.BenchmarkTarget)
	assert.False(t, result.MeetsBenchmark)
}

func TestEvaluateSubstitutionAccuracyEmpty(t *testing.T) {
	result := EvaluateSubstitutionAccuracy(nil, nil, DefaultBenchmarkTargets())
	assert.Equal(t, 0.0, result.Accuracy)
	assert.False(t, result.MeetsBenchmark)
}

func TestEvaluateSupplierQuality(t *testing.T) {
	recs := []Recommendation{
		{PrimarySupplier: &SupplierRef{ReliabilityScore: 90}},
		{PrimarySupplier: &SupplierRef{ReliabilityScore: 80}},
		{PrimarySupplier: nil},
	}
	perf := []SupplierPerformance{
		{ReliabilityScore: 90},
		{ReliabilityScore: 80},
		{ReliabilityScore: 40},
	}

	result := EvaluateSupplierQuality(recs, perf)
	assert.Equal(t, 2, result.RecommendationsCount)
	assert.Equal(t, 85.0, result.AvgRecommendedScore)
	assert.Equal(t, 70.0, result.OverallSupplierAvg)
	assert.Equal(t, 1.21, result.ImprovementFactor)
	assert.Equal(t, "B", result.QualityGrade)
}

func TestGradeFor(t *testing.T) {
	tests := []struct {
		score float64
		want  string
	}{
		{95, "A"}, {85, "B"}, {75, "C"}, {65, "D"}, {30, "F"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, gradeFor(tt.score))
	}
}

func TestEvaluateCostImpact(t *testing.T) {
	recs := []Recommendation{
		{CostImpact: CostImpact{NormalOrderCost: 1000, ExpeditedCost: 2500}},
		{CostImpact: CostImpact{NormalOrderCost: 500, ExpeditedCost: 500}},
	}

	result := EvaluateCostImpact(recs, DefaultBenchmarkTargets())
	assert.Equal(t, 1500.0, result.TotalNormalCost)
	assert.Equal(t, 3000.0, result.TotalExpeditedCost)
	assert.Equal(t, 1500.0, result.CostPremium)
	assert.Equal(t, 900.0, result.PotentialSavings)
	assert.Equal(t, 30.0, result.SavingsPercentage)
	assert.True(t, result.MeetsBenchmark)
}

func TestEvaluateLeadTimes(t *testing.T) {
	recs := []Recommendation{
		{PrimarySupplier: &SupplierRef{LeadTimeDays: 5}},
		{PrimarySupplier: &SupplierRef{LeadTimeDays: 10}},
		{PrimarySupplier: &SupplierRef{LeadTimeDays: 15}},
		{PrimarySupplier: nil},
	}

	result := EvaluateLeadTimes(recs, DefaultBenchmarkTargets())
	assert.Equal(t, 3, result.TotalItemsAnalyzed)
	assert.Equal(t, 10.0, result.AvgRecommendedLeadTime)
	assert.Equal(t, 5, result.MinLeadTime)
	assert.Equal(t, 15, result.MaxLeadTime)
	// (15 - 10) / 15
	assert.Equal(t, 0.33, result.OptimizationScore)
	assert.True(t, result.MeetsBenchmark)
}

func TestEvaluateLeadTimesEmpty(t *testing.T) {
	result := EvaluateLeadTimes(nil, DefaultBenchmarkTargets())
	assert.Zero(t, result.TotalItemsAnalyzed)
	assert.False(t, result.MeetsBenchmark)
}
