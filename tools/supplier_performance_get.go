package tools

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/jsonschema"

	"buyingagent/procure"
	"buyingagent/tools/storage"
)

type SupplierPerformanceGet struct {
	suppliers storage.SupplierState
	orders    storage.OrderState
}

func NewSupplierPerformanceGet(suppliers storage.SupplierState, orders storage.OrderState) *SupplierPerformanceGet {
	return &SupplierPerformanceGet{suppliers: suppliers, orders: orders}
}

func (t *SupplierPerformanceGet) Name() string  { return "supplier_performance_get" }
func (t *SupplierPerformanceGet) Title() string { return "Get Supplier Performance" }
func (t *SupplierPerformanceGet) Description() string {
	return "Returns per-supplier delivery performance (on-time rate, delays, reliability score, tier) computed from the order history, optionally filtered by tier."
}

func (t *SupplierPerformanceGet) InputSchema() *jsonschema.Schema {
	return &jsonschema.Schema{
		Type: "object",
		Properties: map[string]*jsonschema.Schema{
			"tier": {
				Type: "string",
				Enum: []any{procure.Tier1, procure.Tier2, procure.Tier3},
			},
		},
	}
}

func (t *SupplierPerformanceGet) OutputSchema() *jsonschema.Schema {
	minScore := 0.0
	maxScore := 100.0
	return &jsonschema.Schema{
		Type: "object",
		Properties: map[string]*jsonschema.Schema{
			"suppliers": {
				Type: "array",
				Items: &jsonschema.Schema{
					Type: "object",
					Properties: map[string]*jsonschema.Schema{
						"supplier_id":       {Type: "string"},
						"supplier_name":     {Type: "string"},
						"on_time_rate":      {Type: "number", Minimum: &minScore, Maximum: &maxScore},
						"reliability_score": {Type: "number", Minimum: &minScore, Maximum: &maxScore},
						"supplier_tier":     {Type: "string"},
					},
					Required: []string{"supplier_id", "supplier_name", "reliability_score", "supplier_tier"},
				},
			},
		},
		Required: []string{"suppliers"},
	}
}

func (t *SupplierPerformanceGet) Run(ctx context.Context, input map[string]any) (map[string]any, error) {
	suppliers, orders, err := t.load(ctx)
	if err != nil {
		return nil, err
	}

	perf := procure.RankBySupplierScore(procure.BuildPerformance(suppliers, orders))

	tier, _ := input["tier"].(string)
	out := make([]procure.SupplierPerformance, 0, len(perf))
	for _, p := range perf {
		if tier != "" && p.Tier != tier {
			continue
		}
		out = append(out, p)
	}

	b, _ := json.Marshal(struct {
		Suppliers []procure.SupplierPerformance `json:"suppliers"`
	}{Suppliers: out})
	var m map[string]any
	_ = json.Unmarshal(b, &m)
	return m, nil
}

func (t *SupplierPerformanceGet) load(ctx context.Context) ([]procure.Supplier, []procure.PurchaseOrder, error) {
	sb, err := t.suppliers.Load(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("read suppliers: %w", err)
	}
	var suppliers []procure.Supplier
	if err := json.Unmarshal(sb, &suppliers); err != nil {
		return nil, nil, fmt.Errorf("parse suppliers: %w", err)
	}

	ob, err := t.orders.Load(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("read order history: %w", err)
	}
	var orders []procure.PurchaseOrder
	if err := json.Unmarshal(ob, &orders); err != nil {
		return nil, nil, fmt.Errorf("parse order history: %w", err)
	}
	return suppliers, orders, nil
}
