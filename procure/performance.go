package procure

import (
	"math"
	"sort"
)

// Reliability score weights. On-time delivery dominates, then delay size,
// then how often the supplier substituted or needed expedited handling.
const (
	weightOnTime       = 0.4
	weightDelay        = 0.3
	weightSubstitution = 0.2
	weightExpedited    = 0.1
)

// BuildPerformance aggregates the order book into per-supplier delivery
// performance. Suppliers with no orders are skipped; an analysis over an empty
// order history has nothing to score.
func BuildPerformance(suppliers []Supplier, orders []PurchaseOrder) []SupplierPerformance {
	bySupplier := make(map[string][]PurchaseOrder)
	for _, o := range orders {
		bySupplier[o.SupplierID] = append(bySupplier[o.SupplierID], o)
	}

	perf := make([]SupplierPerformance, 0, len(suppliers))
	for _, s := range suppliers {
		supplierOrders := bySupplier[s.SupplierID]
		if len(supplierOrders) == 0 {
			continue
		}

		p := SupplierPerformance{
			SupplierID:           s.SupplierID,
			SupplierName:         s.SupplierName,
			Country:              s.Country,
			StandardLeadTimeDays: s.StandardLeadTimeDays,
			TotalOrders:          len(supplierOrders),
		}

		var onTime int
		var delaySum float64
		var delayCount int
		for _, o := range supplierOrders {
			if o.WasExpedited {
				p.ExpeditedOrders++
			}
			if o.WasSubstitution {
				p.Substitutions++
			}
			if o.OrderStatus != OrderStatusCompleted {
				continue
			}
			p.CompletedOrders++
			if o.ActualDeliveryDate == nil {
				continue
			}
			delay := o.ActualDeliveryDate.Sub(o.ExpectedDeliveryDate).Hours() / 24
			delaySum += delay
			delayCount++
			if !o.ActualDeliveryDate.After(o.ExpectedDeliveryDate) {
				onTime++
			}
		}

		if p.CompletedOrders > 0 {
			p.OnTimeRate = round2(float64(onTime) / float64(p.CompletedOrders) * 100)
		}
		if delayCount > 0 {
			p.AvgDelayDays = round2(delaySum / float64(delayCount))
		}

		p.ReliabilityScore = reliabilityScore(p)
		p.Tier = tierFor(p.ReliabilityScore)
		perf = append(perf, p)
	}

	return perf
}

// reliabilityScore folds delivery metrics into a 0-100 score.
func reliabilityScore(p SupplierPerformance) float64 {
	delayPenalty := clamp(p.AvgDelayDays*5, 0, 100)

	subsRate := 0.0
	expeditedRate := 0.0
	if p.TotalOrders > 0 {
		subsRate = float64(p.Substitutions) / float64(p.TotalOrders) * 100
		expeditedRate = float64(p.ExpeditedOrders) / float64(p.TotalOrders) * 100
	}

	score := p.OnTimeRate*weightOnTime +
		(100-delayPenalty)*weightDelay +
		(100-subsRate)*weightSubstitution +
		(100-expeditedRate)*weightExpedited

	return round2(clamp(score, 0, 100))
}

func tierFor(score float64) string {
	switch {
	case score >= 80:
		return Tier1
	case score >= 60:
		return Tier2
	default:
		return Tier3
	}
}

// RankBySupplierScore returns performances sorted by reliability score,
// best first. Ties break on shorter standard lead time.
func RankBySupplierScore(perf []SupplierPerformance) []SupplierPerformance {
	ranked := make([]SupplierPerformance, len(perf))
	copy(ranked, perf)
	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].ReliabilityScore != ranked[j].ReliabilityScore {
			return ranked[i].ReliabilityScore > ranked[j].ReliabilityScore
		}
		return ranked[i].StandardLeadTimeDays < ranked[j].StandardLeadTimeDays
	})
	return ranked
}

// PerformanceByID indexes performances by supplier id.
func PerformanceByID(perf []SupplierPerformance) map[string]SupplierPerformance {
	byID := make(map[string]SupplierPerformance, len(perf))
	for _, p := range perf {
		byID[p.SupplierID] = p
	}
	return byID
}

// TierCount returns how many suppliers fall into the given tier.
func TierCount(perf []SupplierPerformance, tier string) int {
	n := 0
	for _, p := range perf {
		if p.Tier == tier {
			n++
		}
	}
	return n
}

func clamp(v, lo, hi float64) float64 {
	return math.Min(math.Max(v, lo), hi)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
