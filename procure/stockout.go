package procure

import (
	"fmt"
	"sort"
	"time"
)

// DefaultVelocityWindowDays is the trailing window for consumption velocity.
const DefaultVelocityWindowDays = 30

// Velocity returns the average daily consumption of an SKU, derived from
// quantities received over the trailing window ending at now.
func Velocity(skuID string, orders []PurchaseOrder, now time.Time, windowDays int) float64 {
	if windowDays <= 0 {
		windowDays = DefaultVelocityWindowDays
	}
	cutoff := now.AddDate(0, 0, -windowDays)

	total := 0
	for _, o := range orders {
		if o.SKUID != skuID || o.OrderDate.Before(cutoff) {
			continue
		}
		total += o.QuantityReceived
	}
	return float64(total) / float64(windowDays)
}

// PredictStockouts computes per-SKU risk, sorted by priority (most urgent
// first). DaysUntilStockout is nil when no consumption has been observed.
func PredictStockouts(inventory []InventoryItem, orders []PurchaseOrder, now time.Time, windowDays int) []StockoutPrediction {
	predictions := make([]StockoutPrediction, 0, len(inventory))

	for _, item := range inventory {
		velocity := Velocity(item.SKUID, orders, now, windowDays)

		var daysLeft *float64
		if velocity > 0 {
			d := round1(float64(item.StockQuantity) / velocity)
			daysLeft = &d
		}

		risk, priority := classifyRisk(item, daysLeft)

		predictions = append(predictions, StockoutPrediction{
			SKUID:             item.SKUID,
			CurrentStock:      item.StockQuantity,
			ReorderLevel:      item.ReorderLevel,
			VelocityPerDay:    round2(velocity),
			DaysUntilStockout: daysLeft,
			Risk:              risk,
			Priority:          priority,
			RecommendedAction: recommendedAction(risk),
		})
	}

	sort.SliceStable(predictions, func(i, j int) bool {
		return predictions[i].Priority < predictions[j].Priority
	})
	return predictions
}

func classifyRisk(item InventoryItem, daysLeft *float64) (StockoutRisk, int) {
	switch {
	case item.StockQuantity <= 0:
		return RiskCritical, 1
	case float64(item.StockQuantity) <= float64(item.ReorderLevel)*0.5:
		return RiskHigh, 2
	case item.StockQuantity <= item.ReorderLevel:
		return RiskMedium, 3
	case daysLeft != nil && *daysLeft <= 14:
		return RiskLow, 4
	default:
		return RiskStable, 5
	}
}

func recommendedAction(risk StockoutRisk) string {
	switch risk {
	case RiskCritical:
		return "IMMEDIATE ORDER - Stock depleted"
	case RiskHigh:
		return "URGENT ORDER - Stock critically low"
	case RiskMedium:
		return "ORDER SOON - Below reorder level"
	case RiskLow:
		return "MONITOR - May need ordering within 2 weeks"
	default:
		return "STABLE - No immediate action needed"
	}
}

// AtRisk filters predictions down to the levels that require action.
func AtRisk(predictions []StockoutPrediction) []StockoutPrediction {
	out := make([]StockoutPrediction, 0, len(predictions))
	for _, p := range predictions {
		if p.Risk == RiskCritical || p.Risk == RiskHigh {
			out = append(out, p)
		}
	}
	return out
}

// RiskCount returns how many predictions carry the given risk level.
func RiskCount(predictions []StockoutPrediction, risk StockoutRisk) int {
	n := 0
	for _, p := range predictions {
		if p.Risk == risk {
			n++
		}
	}
	return n
}

// SubstituteCandidates returns up to three SKUs from the same category that
// have shipped before. Category here is the SKU id minus its last character;
// real product-similarity data would replace this.
func SubstituteCandidates(skuID string, orders []PurchaseOrder) []string {
	if len(skuID) < 2 {
		return nil
	}
	category := skuID[:len(skuID)-1]

	seen := map[string]bool{skuID: true}
	var candidates []string
	for _, o := range orders {
		if !seen[o.SKUID] && len(o.SKUID) >= len(category) && o.SKUID[:len(category)] == category {
			seen[o.SKUID] = true
			candidates = append(candidates, o.SKUID)
			if len(candidates) == 3 {
				break
			}
		}
	}
	return candidates
}

// ConsumptionNarrative renders an SKU's usage pattern as prompt-ready text.
func ConsumptionNarrative(velocity float64) string {
	weekly := int(velocity * 7)
	return fmt.Sprintf("Average %d units per week based on historical orders", weekly)
}
