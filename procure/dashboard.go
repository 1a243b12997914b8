package procure

import "fmt"

// Alert severities on the executive dashboard.
const (
	AlertCritical = "CRITICAL"
	AlertWarning  = "WARNING"
	AlertInfo     = "INFO"
)

// Alert is one actionable dashboard entry.
type Alert struct {
	Type           string `json:"type"`
	Title          string `json:"title"`
	Message        string `json:"message"`
	ActionRequired string `json:"action_required"`
}

// SummaryMetrics is the headline row of the dashboard.
type SummaryMetrics struct {
	TotalSuppliers        int     `json:"total_suppliers"`
	Tier1Suppliers        int     `json:"tier_1_suppliers"`
	TotalInventoryItems   int     `json:"total_inventory_items"`
	CriticalStockouts     int     `json:"critical_stockouts"`
	HighRiskItems         int     `json:"high_risk_items"`
	ActiveRecommendations int     `json:"active_recommendations"`
	EstimatedCostImpact   float64 `json:"estimated_cost_impact"`
	PotentialSavings      float64 `json:"potential_savings"`
}

// SupplierSummary surfaces the best and worst performers.
type SupplierSummary struct {
	BestPerformer      string  `json:"best_performer"`
	BestScore          float64 `json:"best_score"`
	WorstPerformer     string  `json:"worst_performer"`
	WorstScore         float64 `json:"worst_score"`
	AverageReliability float64 `json:"average_reliability"`
	AverageLeadTime    float64 `json:"average_lead_time"`
}

// ROIProjection is the standing business-case projection. The savings figures
// come from the original case (1 FTE buyer automation plus the midpoint of the
// stockout-reduction range).
type ROIProjection struct {
	BuyerAutomationSavings  float64 `json:"buyer_automation_savings"`
	StockoutReductionSavings float64 `json:"stockout_reduction_savings"`
	TotalProjectedSavings   float64 `json:"total_projected_savings"`
	ImplementationCost      float64 `json:"implementation_cost"`
	PaybackPeriodMonths     float64 `json:"payback_period_months"`
	ROIPercentage           float64 `json:"roi_percentage"`
}

// NextAction is a prioritized follow-up for the procurement team.
type NextAction struct {
	Priority    int    `json:"priority"`
	Action      string `json:"action"`
	Details     string `json:"details"`
	Timeline    string `json:"timeline"`
	Responsible string `json:"responsible"`
}

// Dashboard is the executive view assembled from one analysis run.
type Dashboard struct {
	SummaryMetrics     SummaryMetrics   `json:"summary_metrics"`
	KeyAlerts          []Alert          `json:"key_alerts"`
	TopRecommendations []Recommendation `json:"top_recommendations"`
	SupplierSummary    SupplierSummary  `json:"supplier_performance_summary"`
	ROIProjection      ROIProjection    `json:"roi_projection"`
	NextActions        []NextAction     `json:"next_actions"`
}

const (
	buyerAutomationSavings   = 36000
	stockoutReductionSavings = 63000
	implementationCostPerRec = 100
	highPremiumThreshold     = 1000
)

// BuildDashboard assembles the executive dashboard.
func BuildDashboard(
	perf []SupplierPerformance,
	inventory []InventoryItem,
	predictions []StockoutPrediction,
	recommendations []Recommendation,
	impact BusinessImpact,
) Dashboard {
	criticalCount := RiskCount(predictions, RiskCritical)
	highCount := RiskCount(predictions, RiskHigh)

	top := recommendations
	if len(top) > 5 {
		top = top[:5]
	}

	return Dashboard{
		SummaryMetrics: SummaryMetrics{
			TotalSuppliers:        len(perf),
			Tier1Suppliers:        TierCount(perf, Tier1),
			TotalInventoryItems:   len(inventory),
			CriticalStockouts:     criticalCount,
			HighRiskItems:         highCount,
			ActiveRecommendations: len(recommendations),
			EstimatedCostImpact:   impact.EstimatedTotalCost,
			PotentialSavings:      impact.PotentialBatchSavings,
		},
		KeyAlerts:          buildAlerts(perf, recommendations, criticalCount),
		TopRecommendations: top,
		SupplierSummary:    summarizeSuppliers(perf),
		ROIProjection:      projectROI(len(recommendations)),
		NextActions:        nextActions(perf, recommendations),
	}
}

func buildAlerts(perf []SupplierPerformance, recommendations []Recommendation, criticalCount int) []Alert {
	var alerts []Alert

	if criticalCount > 0 {
		alerts = append(alerts, Alert{
			Type:           AlertCritical,
			Title:          "Immediate Stockout Risk",
			Message:        fmt.Sprintf("%d items are completely out of stock", criticalCount),
			ActionRequired: "Expedite orders immediately",
		})
	}

	if tier3 := TierCount(perf, Tier3); tier3 > 0 {
		alerts = append(alerts, Alert{
			Type:           AlertWarning,
			Title:          "Supplier Performance Issues",
			Message:        fmt.Sprintf("%d suppliers are performing below standards", tier3),
			ActionRequired: "Review supplier contracts and consider alternatives",
		})
	}

	highPremium := 0
	for _, rec := range recommendations {
		if rec.CostImpact.CostPremium > highPremiumThreshold {
			highPremium++
		}
	}
	if highPremium > 0 {
		alerts = append(alerts, Alert{
			Type:           AlertInfo,
			Title:          "High Cost Impact Items",
			Message:        fmt.Sprintf("%d items will require expedited shipping premiums", highPremium),
			ActionRequired: "Consider negotiating expedite rates with suppliers",
		})
	}

	return alerts
}

func summarizeSuppliers(perf []SupplierPerformance) SupplierSummary {
	if len(perf) == 0 {
		return SupplierSummary{}
	}

	summary := SupplierSummary{
		BestPerformer:  perf[0].SupplierName,
		BestScore:      perf[0].ReliabilityScore,
		WorstPerformer: perf[0].SupplierName,
		WorstScore:     perf[0].ReliabilityScore,
	}

	var scoreSum, leadSum float64
	for _, p := range perf {
		scoreSum += p.ReliabilityScore
		leadSum += float64(p.StandardLeadTimeDays)
		if p.ReliabilityScore > summary.BestScore {
			summary.BestPerformer = p.SupplierName
			summary.BestScore = p.ReliabilityScore
		}
		if p.ReliabilityScore < summary.WorstScore {
			summary.WorstPerformer = p.SupplierName
			summary.WorstScore = p.ReliabilityScore
		}
	}
	summary.AverageReliability = round2(scoreSum / float64(len(perf)))
	summary.AverageLeadTime = round1(leadSum / float64(len(perf)))
	return summary
}

func projectROI(recommendationCount int) ROIProjection {
	total := float64(buyerAutomationSavings + stockoutReductionSavings)
	implementation := float64(recommendationCount * implementationCostPerRec)

	projection := ROIProjection{
		BuyerAutomationSavings:   buyerAutomationSavings,
		StockoutReductionSavings: stockoutReductionSavings,
		TotalProjectedSavings:    total,
		ImplementationCost:       implementation,
	}

	if implementation > 0 {
		payback := implementation / (total / 12)
		if payback < 1 {
			payback = 1
		}
		projection.PaybackPeriodMonths = round1(payback)
		projection.ROIPercentage = round1((total - implementation) / implementation * 100)
	}
	return projection
}

func nextActions(perf []SupplierPerformance, recommendations []Recommendation) []NextAction {
	var actions []NextAction

	critical := 0
	for _, rec := range recommendations {
		if rec.Risk == RiskCritical {
			critical++
		}
	}
	if critical > 0 {
		actions = append(actions, NextAction{
			Priority:    1,
			Action:      "Place emergency orders",
			Details:     fmt.Sprintf("Process %d critical stockout orders immediately", critical),
			Timeline:    "Today",
			Responsible: "Procurement Team",
		})
	}

	if tier3 := TierCount(perf, Tier3); tier3 > 0 {
		actions = append(actions, NextAction{
			Priority:    2,
			Action:      "Review underperforming suppliers",
			Details:     fmt.Sprintf("Evaluate %d Tier 3 suppliers for contract renegotiation", tier3),
			Timeline:    "This week",
			Responsible: "Supplier Relations",
		})
	}

	actions = append(actions, NextAction{
		Priority:    3,
		Action:      "Implement automated monitoring",
		Details:     "Set up daily stockout prediction runs and alerts",
		Timeline:    "Next 2 weeks",
		Responsible: "IT/Procurement",
	})

	return actions
}
