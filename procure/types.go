package procure

import "time"

// Supplier is one row of the supplier master data.
type Supplier struct {
	SupplierID           string `json:"supplier_id"`
	SupplierName         string `json:"supplier_name"`
	Country              string `json:"country"`
	StandardLeadTimeDays int    `json:"standard_lead_time_days"`
}

// InventoryItem is one row of the inventory snapshot.
type InventoryItem struct {
	SKUID         string    `json:"sku_id"`
	StockQuantity int       `json:"stock_quantity"`
	ReorderLevel  int       `json:"reorder_level"`
	LastUpdated   time.Time `json:"last_updated,omitempty"`
}

// PurchaseOrder is one row of the historical order book.
// ActualDeliveryDate is nil for orders that never arrived (open or cancelled).
type PurchaseOrder struct {
	OrderID              string     `json:"order_id"`
	SKUID                string     `json:"sku_id"`
	SupplierID           string     `json:"supplier_id"`
	OrderDate            time.Time  `json:"order_date"`
	ExpectedDeliveryDate time.Time  `json:"expected_delivery_date"`
	ActualDeliveryDate   *time.Time `json:"actual_delivery_date,omitempty"`
	QuantityOrdered      int        `json:"quantity_ordered"`
	QuantityReceived     int        `json:"quantity_received"`
	OrderStatus          string     `json:"order_status"`
	WasExpedited         bool       `json:"was_expedited"`
	WasSubstitution      bool       `json:"was_substitution"`
	SubstituteSKU        string     `json:"substitute_sku,omitempty"`
}

// OrderStatusCompleted marks orders that count toward delivery performance.
const OrderStatusCompleted = "Completed"

// SupplierPerformance aggregates delivery performance for one supplier.
type SupplierPerformance struct {
	SupplierID           string  `json:"supplier_id"`
	SupplierName         string  `json:"supplier_name"`
	Country              string  `json:"country"`
	StandardLeadTimeDays int     `json:"standard_lead_time_days"`
	TotalOrders          int     `json:"total_orders"`
	CompletedOrders      int     `json:"completed_orders"`
	OnTimeRate           float64 `json:"on_time_rate"`
	AvgDelayDays         float64 `json:"avg_delay_days"`
	ExpeditedOrders      int     `json:"expedited_orders"`
	Substitutions        int     `json:"substitutions"`
	ReliabilityScore     float64 `json:"reliability_score"`
	Tier                 string  `json:"supplier_tier"`
}

// Supplier tiers by reliability score.
const (
	Tier1 = "Tier 1"
	Tier2 = "Tier 2"
	Tier3 = "Tier 3"
)

// StockoutRisk classifies how close an SKU is to running out.
type StockoutRisk string

const (
	RiskCritical StockoutRisk = "CRITICAL"
	RiskHigh     StockoutRisk = "HIGH"
	RiskMedium   StockoutRisk = "MEDIUM"
	RiskLow      StockoutRisk = "LOW"
	RiskStable   StockoutRisk = "STABLE"
)

// StockoutPrediction is the deterministic risk read for one SKU.
type StockoutPrediction struct {
	SKUID             string       `json:"sku_id"`
	CurrentStock      int          `json:"current_stock"`
	ReorderLevel      int          `json:"reorder_level"`
	VelocityPerDay    float64      `json:"velocity_per_day"`
	DaysUntilStockout *float64     `json:"days_until_stockout,omitempty"`
	Risk              StockoutRisk `json:"risk_level"`
	Priority          int          `json:"priority"`
	RecommendedAction string       `json:"recommended_action"`
}

// SupplierRef is a ranked supplier option attached to a recommendation.
type SupplierRef struct {
	SupplierID       string  `json:"supplier_id"`
	SupplierName     string  `json:"supplier_name"`
	ReliabilityScore float64 `json:"reliability_score"`
	LeadTimeDays     int     `json:"lead_time_days"`
	Tier             string  `json:"tier"`
}

// CostImpact estimates what an order will cost at normal vs expedited rates.
type CostImpact struct {
	NormalOrderCost  float64 `json:"normal_order_cost"`
	ExpeditedCost    float64 `json:"expedited_cost"`
	CostPremium      float64 `json:"cost_premium"`
	StockoutRiskCost float64 `json:"stockout_risk_cost"`
}

// Recommendation is one procurement action for an at-risk SKU.
type Recommendation struct {
	SKUID                string        `json:"sku_id"`
	Risk                 StockoutRisk  `json:"risk_level"`
	CurrentStock         int           `json:"current_stock"`
	DaysUntilStockout    *float64      `json:"days_until_stockout,omitempty"`
	RecommendedQuantity  int           `json:"recommended_quantity"`
	PrimarySupplier      *SupplierRef  `json:"primary_supplier,omitempty"`
	AlternativeSuppliers []SupplierRef `json:"alternative_suppliers,omitempty"`
	SubstitutionOptions  []string      `json:"substitution_options,omitempty"`
	UrgencyScore         int           `json:"urgency_score"`
	CostImpact           CostImpact    `json:"estimated_cost_impact"`
}

// SupplierBatch groups recommendations routed to one supplier.
type SupplierBatch struct {
	UrgentOrders     []Recommendation `json:"urgent_orders"`
	StandardOrders   []Recommendation `json:"standard_orders"`
	TotalOrders      int              `json:"total_orders"`
	EstimatedSavings float64          `json:"estimated_savings"`
}

// BusinessImpact rolls recommendations up into cost and savings totals.
type BusinessImpact struct {
	TotalItemsRequiringAction int     `json:"total_items_requiring_action"`
	EstimatedTotalCost        float64 `json:"estimated_total_cost"`
	PotentialBatchSavings     float64 `json:"potential_batch_savings"`
	HighUrgencyItems          int     `json:"high_urgency_items"`
	SuppliersInvolved         int     `json:"suppliers_involved"`
}
