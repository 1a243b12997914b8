package tools

import (
	"context"
	"encoding/json"
	"testing"

	"buyingagent/procure"
	"buyingagent/tools/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOrderHistoryGet_Run(t *testing.T) {
	orders := []procure.PurchaseOrder{
		{OrderID: "PO-1", SKUID: "SKU-100A", SupplierID: "SUP001"},
		{OrderID: "PO-2", SKUID: "SKU-100A", SupplierID: "SUP002"},
		{OrderID: "PO-3", SKUID: "SKU-200B", SupplierID: "SUP001"},
	}
	data, err := json.Marshal(orders)
	require.NoError(t, err)

	tests := []struct {
		name     string
		input    map[string]any
		wantIDs  []string
	}{
		{
			name:    "no filters returns everything",
			input:   map[string]any{},
			wantIDs: []string{"PO-1", "PO-2", "PO-3"},
		},
		{
			name:    "filter by sku",
			input:   map[string]any{"sku_id": "SKU-100A"},
			wantIDs: []string{"PO-1", "PO-2"},
		},
		{
			name:    "filter by supplier",
			input:   map[string]any{"supplier_id": "SUP001"},
			wantIDs: []string{"PO-1", "PO-3"},
		},
		{
			name:    "combined filters",
			input:   map[string]any{"sku_id": "SKU-100A", "supplier_id": "SUP002"},
			wantIDs: []string{"PO-2"},
		},
		{
			name:    "no matches",
			input:   map[string]any{"sku_id": "SKU-404X"},
			wantIDs: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tool := NewOrderHistoryGet(storage.NewTestOrderState(data))
			result, err := tool.Run(context.Background(), tt.input)
			require.NoError(t, err)

			assert.Equal(t, float64(len(tt.wantIDs)), result["count"])

			list, ok := result["orders"].([]any)
			require.True(t, ok)
			var ids []string
			for _, o := range list {
				ids = append(ids, o.(map[string]any)["order_id"].(string))
			}
			assert.Equal(t, tt.wantIDs, ids)
		})
	}

	t.Run("missing order data", func(t *testing.T) {
		tool := NewOrderHistoryGet(storage.NewTestOrderStateWithError())
		_, err := tool.Run(context.Background(), map[string]any{})
		assert.Error(t, err)
	})
}

func TestOrderHistoryGet_ToolMethods(t *testing.T) {
	tool := NewOrderHistoryGet(storage.NewTestOrderState([]byte(`[]`)))

	assert.Equal(t, "order_history_get", tool.Name())
	assert.Equal(t, "Get Order History", tool.Title())
	assert.Contains(t, tool.InputSchema().Properties, "sku_id")
	assert.Contains(t, tool.InputSchema().Properties, "supplier_id")
	assert.Contains(t, tool.OutputSchema().Properties, "orders")
}

func TestRegistry(t *testing.T) {
	registry, err := NewRegistry(
		storage.NewTestInventoryState([]byte(`[]`)),
		storage.NewTestSupplierState([]byte(`[]`)),
		storage.NewTestOrderState([]byte(`[]`)),
	)
	require.NoError(t, err)

	assert.Len(t, registry.GetTools(), 3)

	tool, err := registry.GetTool("inventory_get")
	require.NoError(t, err)
	assert.Equal(t, "inventory_get", tool.Name())

	_, err = registry.GetTool("does_not_exist")
	assert.Error(t, err)
}
