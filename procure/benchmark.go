package procure

// Benchmark targets for recommendation quality, taken from the business case.
type BenchmarkTargets struct {
	SubstitutionAccuracy float64 `json:"substitution_accuracy"`
	CostReduction        float64 `json:"cost_reduction"`
	LeadTimeImprovement  float64 `json:"lead_time_improvement"`
	StockoutPrevention   float64 `json:"stockout_prevention"`
}

// DefaultBenchmarkTargets returns the standing targets.
func DefaultBenchmarkTargets() BenchmarkTargets {
	return BenchmarkTargets{
		SubstitutionAccuracy: 0.85,
		CostReduction:        0.15,
		LeadTimeImprovement:  0.20,
		StockoutPrevention:   0.90,
	}
}

// SubstitutionAccuracyResult measures recommended substitutes against
// substitutions that actually happened.
type SubstitutionAccuracyResult struct {
	Accuracy           float64 `json:"accuracy"`
	BenchmarkTarget    float64 `json:"benchmark_target"`
	MeetsBenchmark     bool    `json:"meets_benchmark"`
	TotalPredictions   int     `json:"total_predictions"`
	CorrectPredictions int     `json:"correct_predictions"`
}

// EvaluateSubstitutionAccuracy checks whether the substitution options on each
// recommendation overlap with substitutes seen in the order history.
func EvaluateSubstitutionAccuracy(recommendations []Recommendation, orders []PurchaseOrder, targets BenchmarkTargets) SubstitutionAccuracyResult {
	historical := make(map[string]map[string]bool)
	for _, o := range orders {
		if !o.WasSubstitution || o.SubstituteSKU == "" {
			continue
		}
		if historical[o.SKUID] == nil {
			historical[o.SKUID] = make(map[string]bool)
		}
		historical[o.SKUID][o.SubstituteSKU] = true
	}

	result := SubstitutionAccuracyResult{BenchmarkTarget: targets.SubstitutionAccuracy}
	for _, rec := range recommendations {
		if len(rec.SubstitutionOptions) == 0 {
			continue
		}
		result.TotalPredictions++
		for _, sub := range rec.SubstitutionOptions {
			if historical[rec.SKUID][sub] {
				result.CorrectPredictions++
				break
			}
		}
	}

	if result.TotalPredictions > 0 {
		result.Accuracy = float64(result.CorrectPredictions) / float64(result.TotalPredictions)
	}
	result.MeetsBenchmark = result.Accuracy >= targets.SubstitutionAccuracy
	return result
}

// SupplierQualityResult compares recommended-supplier scores against the
// supplier population.
type SupplierQualityResult struct {
	AvgRecommendedScore  float64 `json:"avg_recommended_supplier_score"`
	OverallSupplierAvg   float64 `json:"overall_supplier_avg"`
	ImprovementFactor    float64 `json:"improvement_factor"`
	RecommendationsCount int     `json:"recommendations_count"`
	QualityGrade         string  `json:"quality_grade"`
}

// EvaluateSupplierQuality grades how much better the recommended suppliers are
// than the average of the whole pool.
func EvaluateSupplierQuality(recommendations []Recommendation, perf []SupplierPerformance) SupplierQualityResult {
	var recSum float64
	var recCount int
	for _, rec := range recommendations {
		if rec.PrimarySupplier != nil {
			recSum += rec.PrimarySupplier.ReliabilityScore
			recCount++
		}
	}

	var poolSum float64
	for _, p := range perf {
		poolSum += p.ReliabilityScore
	}

	result := SupplierQualityResult{RecommendationsCount: recCount, ImprovementFactor: 1.0}
	if recCount > 0 {
		result.AvgRecommendedScore = round2(recSum / float64(recCount))
	}
	if len(perf) > 0 {
		result.OverallSupplierAvg = round2(poolSum / float64(len(perf)))
	}
	if result.OverallSupplierAvg > 0 {
		result.ImprovementFactor = round2(result.AvgRecommendedScore / result.OverallSupplierAvg)
	}
	result.QualityGrade = gradeFor(result.AvgRecommendedScore)
	return result
}

func gradeFor(score float64) string {
	switch {
	case score >= 90:
		return "A"
	case score >= 80:
		return "B"
	case score >= 70:
		return "C"
	case score >= 60:
		return "D"
	default:
		return "F"
	}
}

// CostImpactResult estimates how much of the expedite premium better planning
// could claw back.
type CostImpactResult struct {
	TotalNormalCost    float64 `json:"total_normal_cost"`
	TotalExpeditedCost float64 `json:"total_expedited_cost"`
	CostPremium        float64 `json:"cost_premium"`
	PotentialSavings   float64 `json:"potential_savings"`
	SavingsPercentage  float64 `json:"savings_percentage"`
	MeetsBenchmark     bool    `json:"meets_cost_benchmark"`
}

// avoidablePremiumShare is the assumed share of expedite premiums that better
// planning could avoid.
const avoidablePremiumShare = 0.6

// EvaluateCostImpact totals normal vs expedited costs across recommendations.
func EvaluateCostImpact(recommendations []Recommendation, targets BenchmarkTargets) CostImpactResult {
	var result CostImpactResult
	for _, rec := range recommendations {
		result.TotalNormalCost += rec.CostImpact.NormalOrderCost
		result.TotalExpeditedCost += rec.CostImpact.ExpeditedCost
	}
	result.CostPremium = result.TotalExpeditedCost - result.TotalNormalCost
	result.PotentialSavings = result.CostPremium * avoidablePremiumShare

	if result.TotalExpeditedCost > 0 {
		ratio := result.PotentialSavings / result.TotalExpeditedCost
		result.SavingsPercentage = round2(ratio * 100)
		result.MeetsBenchmark = ratio >= targets.CostReduction
	}
	return result
}

// LeadTimeResult measures the spread of recommended-supplier lead times.
type LeadTimeResult struct {
	AvgRecommendedLeadTime float64 `json:"avg_recommended_lead_time"`
	MinLeadTime            int     `json:"min_lead_time"`
	MaxLeadTime            int     `json:"max_lead_time"`
	OptimizationScore      float64 `json:"optimization_score"`
	MeetsBenchmark         bool    `json:"meets_benchmark"`
	TotalItemsAnalyzed     int     `json:"total_items_analyzed"`
}

// EvaluateLeadTimes scores how much lead time the supplier selection leaves on
// the table relative to the slowest option in use.
func EvaluateLeadTimes(recommendations []Recommendation, targets BenchmarkTargets) LeadTimeResult {
	var leadTimes []int
	for _, rec := range recommendations {
		if rec.PrimarySupplier != nil {
			leadTimes = append(leadTimes, rec.PrimarySupplier.LeadTimeDays)
		}
	}
	if len(leadTimes) == 0 {
		return LeadTimeResult{}
	}

	result := LeadTimeResult{
		MinLeadTime:        leadTimes[0],
		MaxLeadTime:        leadTimes[0],
		TotalItemsAnalyzed: len(leadTimes),
	}
	sum := 0
	for _, lt := range leadTimes {
		sum += lt
		if lt < result.MinLeadTime {
			result.MinLeadTime = lt
		}
		if lt > result.MaxLeadTime {
			result.MaxLeadTime = lt
		}
	}
	result.AvgRecommendedLeadTime = round2(float64(sum) / float64(len(leadTimes)))

	if result.MaxLeadTime > 0 {
		result.OptimizationScore = round2((float64(result.MaxLeadTime) - result.AvgRecommendedLeadTime) / float64(result.MaxLeadTime))
	}
	result.MeetsBenchmark = result.OptimizationScore >= targets.LeadTimeImprovement
	return result
}
