package tools

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/jsonschema"

	"buyingagent/procure"
	"buyingagent/tools/storage"
)

type InventoryGet struct{ state storage.InventoryState }

func NewInventoryGet(state storage.InventoryState) *InventoryGet {
	return &InventoryGet{state: state}
}

func (t *InventoryGet) Name() string  { return "inventory_get" }
func (t *InventoryGet) Title() string { return "Get Inventory Snapshot" }
func (t *InventoryGet) Description() string {
	return "Returns current stock levels and reorder levels per SKU, optionally filtered to items at or below reorder level."
}

func (t *InventoryGet) InputSchema() *jsonschema.Schema {
	return &jsonschema.Schema{
		Type: "object",
		Properties: map[string]*jsonschema.Schema{
			"low_stock_only": {
				Type: "boolean",
			},
		},
	}
}

func (t *InventoryGet) OutputSchema() *jsonschema.Schema {
	minQty := 0.0
	return &jsonschema.Schema{
		Type: "object",
		Properties: map[string]*jsonschema.Schema{
			"inventory": {
				Type: "object",
				Properties: map[string]*jsonschema.Schema{
					"items": {
						Type: "array",
						Items: &jsonschema.Schema{
							Type: "object",
							Properties: map[string]*jsonschema.Schema{
								"sku_id":         {Type: "string"},
								"stock_quantity": {Type: "integer"},
								"reorder_level":  {Type: "integer", Minimum: &minQty},
							},
							Required: []string{"sku_id", "stock_quantity", "reorder_level"},
						},
					},
					"total_items": {Type: "integer"},
				},
				Required: []string{"items", "total_items"},
			},
		},
		Required: []string{"inventory"},
	}
}

func (t *InventoryGet) Run(ctx context.Context, input map[string]any) (map[string]any, error) {
	lowOnly, _ := input["low_stock_only"].(bool)

	items, err := t.load(ctx)
	if err != nil {
		return nil, err
	}

	out := struct {
		Inventory struct {
			Items      []procure.InventoryItem `json:"items"`
			TotalItems int                     `json:"total_items"`
		} `json:"inventory"`
	}{}

	// Initialize items slice to prevent nil when empty
	out.Inventory.Items = make([]procure.InventoryItem, 0, len(items))

	for _, it := range items {
		if lowOnly && it.StockQuantity > it.ReorderLevel {
			continue
		}
		out.Inventory.Items = append(out.Inventory.Items, it)
	}
	out.Inventory.TotalItems = len(out.Inventory.Items)

	// marshal -> map[string]any to keep outputs uniform
	b, _ := json.Marshal(out)
	var m map[string]any
	_ = json.Unmarshal(b, &m)
	return m, nil
}

func (t *InventoryGet) load(ctx context.Context) ([]procure.InventoryItem, error) {
	b, err := t.state.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("read inventory: %w", err)
	}
	var items []procure.InventoryItem
	if err := json.Unmarshal(b, &items); err != nil {
		return nil, fmt.Errorf("parse inventory: %w", err)
	}
	return items, nil
}
