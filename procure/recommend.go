package procure

import "sort"

// Cost model used for impact estimates. Placeholder economics from the
// business case, not live pricing.
const (
	baseCostPerUnit     = 50.0
	stockoutRiskMarkup  = 0.3
	batchSavingPerOrder = 50.0
	urgentThreshold     = 80
)

func expediteMultiplier(risk StockoutRisk) float64 {
	switch risk {
	case RiskCritical:
		return 2.5
	case RiskHigh:
		return 1.8
	case RiskMedium:
		return 1.2
	default:
		return 1.0
	}
}

// EstimateCostImpact prices an order at normal and expedited rates.
func EstimateCostImpact(risk StockoutRisk, quantity int) CostImpact {
	normal := float64(quantity) * baseCostPerUnit
	expedited := normal * expediteMultiplier(risk)
	return CostImpact{
		NormalOrderCost:  normal,
		ExpeditedCost:    expedited,
		CostPremium:      expedited - normal,
		StockoutRiskCost: normal * stockoutRiskMarkup,
	}
}

// UrgencyScore combines risk level with runway, capped at 100.
func UrgencyScore(p StockoutPrediction) int {
	base := 20
	switch p.Risk {
	case RiskCritical:
		base = 100
	case RiskHigh:
		base = 80
	case RiskMedium:
		base = 60
	case RiskLow:
		base = 40
	}

	if p.DaysUntilStockout != nil {
		switch d := *p.DaysUntilStockout; {
		case d <= 3:
			base += 20
		case d <= 7:
			base += 10
		case d <= 14:
			base += 5
		}
	}

	if base > 100 {
		base = 100
	}
	return base
}

// RecommendedQuantity restocks to twice the reorder level, with a floor so
// tiny reorder levels still produce a worthwhile order.
func RecommendedQuantity(reorderLevel int) int {
	qty := reorderLevel * 2
	if qty < 100 {
		qty = 100
	}
	return qty
}

// BuildRecommendations turns at-risk predictions into supplier-ranked
// procurement actions, most urgent first.
func BuildRecommendations(atRisk []StockoutPrediction, perfByID map[string]SupplierPerformance, orders []PurchaseOrder) []Recommendation {
	recommendations := make([]Recommendation, 0, len(atRisk))

	for _, p := range atRisk {
		options := supplierOptions(p.SKUID, perfByID, orders)

		rec := Recommendation{
			SKUID:               p.SKUID,
			Risk:                p.Risk,
			CurrentStock:        p.CurrentStock,
			DaysUntilStockout:   p.DaysUntilStockout,
			RecommendedQuantity: RecommendedQuantity(p.ReorderLevel),
			SubstitutionOptions: SubstituteCandidates(p.SKUID, orders),
			UrgencyScore:        UrgencyScore(p),
		}
		rec.CostImpact = EstimateCostImpact(p.Risk, rec.RecommendedQuantity)

		if len(options) > 0 {
			primary := options[0]
			rec.PrimarySupplier = &primary
			if len(options) > 1 {
				end := len(options)
				if end > 3 {
					end = 3
				}
				rec.AlternativeSuppliers = options[1:end]
			}
		}

		recommendations = append(recommendations, rec)
	}

	sort.SliceStable(recommendations, func(i, j int) bool {
		return recommendations[i].UrgencyScore > recommendations[j].UrgencyScore
	})
	return recommendations
}

// supplierOptions ranks suppliers that have shipped this SKU before by
// reliability score.
func supplierOptions(skuID string, perfByID map[string]SupplierPerformance, orders []PurchaseOrder) []SupplierRef {
	seen := map[string]bool{}
	var options []SupplierRef
	for _, o := range orders {
		if o.SKUID != skuID || seen[o.SupplierID] {
			continue
		}
		seen[o.SupplierID] = true

		perf, ok := perfByID[o.SupplierID]
		if !ok {
			continue
		}
		options = append(options, SupplierRef{
			SupplierID:       perf.SupplierID,
			SupplierName:     perf.SupplierName,
			ReliabilityScore: perf.ReliabilityScore,
			LeadTimeDays:     perf.StandardLeadTimeDays,
			Tier:             perf.Tier,
		})
	}

	sort.SliceStable(options, func(i, j int) bool {
		return options[i].ReliabilityScore > options[j].ReliabilityScore
	})
	return options
}

// BatchOrders groups recommendations by primary supplier and splits each
// group into urgent and standard orders.
func BatchOrders(recommendations []Recommendation) map[string]SupplierBatch {
	grouped := make(map[string][]Recommendation)
	for _, rec := range recommendations {
		if rec.PrimarySupplier == nil {
			continue
		}
		id := rec.PrimarySupplier.SupplierID
		grouped[id] = append(grouped[id], rec)
	}

	batches := make(map[string]SupplierBatch, len(grouped))
	for id, recs := range grouped {
		sort.SliceStable(recs, func(i, j int) bool {
			return recs[i].UrgencyScore > recs[j].UrgencyScore
		})

		batch := SupplierBatch{
			TotalOrders:      len(recs),
			EstimatedSavings: float64(len(recs)) * batchSavingPerOrder,
		}
		for _, r := range recs {
			if r.UrgencyScore >= urgentThreshold {
				batch.UrgentOrders = append(batch.UrgentOrders, r)
			} else {
				batch.StandardOrders = append(batch.StandardOrders, r)
			}
		}
		batches[id] = batch
	}
	return batches
}

// AssessImpact rolls recommendations and batches up into business totals.
func AssessImpact(recommendations []Recommendation, batches map[string]SupplierBatch) BusinessImpact {
	impact := BusinessImpact{
		TotalItemsRequiringAction: len(recommendations),
		SuppliersInvolved:         len(batches),
	}
	for _, r := range recommendations {
		impact.EstimatedTotalCost += r.CostImpact.ExpeditedCost
		if r.UrgencyScore >= urgentThreshold {
			impact.HighUrgencyItems++
		}
	}
	for _, b := range batches {
		impact.PotentialBatchSavings += b.EstimatedSavings
	}
	return impact
}
