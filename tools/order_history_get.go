package tools

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/jsonschema"

	"buyingagent/procure"
	"buyingagent/tools/storage"
)

type OrderHistoryGet struct{ state storage.OrderState }

func NewOrderHistoryGet(state storage.OrderState) *OrderHistoryGet {
	return &OrderHistoryGet{state: state}
}

func (t *OrderHistoryGet) Name() string  { return "order_history_get" }
func (t *OrderHistoryGet) Title() string { return "Get Order History" }
func (t *OrderHistoryGet) Description() string {
	return "Returns historical purchase orders, optionally filtered by SKU or supplier."
}

func (t *OrderHistoryGet) InputSchema() *jsonschema.Schema {
	return &jsonschema.Schema{
		Type: "object",
		Properties: map[string]*jsonschema.Schema{
			"sku_id":      {Type: "string"},
			"supplier_id": {Type: "string"},
		},
	}
}

func (t *OrderHistoryGet) OutputSchema() *jsonschema.Schema {
	return &jsonschema.Schema{
		Type: "object",
		Properties: map[string]*jsonschema.Schema{
			"orders": {
				Type: "array",
				Items: &jsonschema.Schema{
					Type: "object",
					// keep schema open to accept the order book JSON as-is
				},
			},
			"count": {Type: "integer"},
		},
		Required: []string{"orders", "count"},
	}
}

func (t *OrderHistoryGet) Run(ctx context.Context, input map[string]any) (map[string]any, error) {
	orders, err := t.load(ctx)
	if err != nil {
		return nil, err
	}

	skuID, _ := input["sku_id"].(string)
	supplierID, _ := input["supplier_id"].(string)

	out := make([]procure.PurchaseOrder, 0, len(orders))
	for _, o := range orders {
		if skuID != "" && o.SKUID != skuID {
			continue
		}
		if supplierID != "" && o.SupplierID != supplierID {
			continue
		}
		out = append(out, o)
	}

	b, _ := json.Marshal(struct {
		Orders []procure.PurchaseOrder `json:"orders"`
		Count  int                     `json:"count"`
	}{Orders: out, Count: len(out)})
	var m map[string]any
	_ = json.Unmarshal(b, &m)
	return m, nil
}

func (t *OrderHistoryGet) load(ctx context.Context) ([]procure.PurchaseOrder, error) {
	b, err := t.state.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("read order history: %w", err)
	}
	var orders []procure.PurchaseOrder
	if err := json.Unmarshal(b, &orders); err != nil {
		return nil, fmt.Errorf("parse order history: %w", err)
	}
	return orders, nil
}
