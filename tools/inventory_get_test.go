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

func TestInventoryGet_Run(t *testing.T) {
	inventory := []procure.InventoryItem{
		{SKUID: "SKU-100A", StockQuantity: 120, ReorderLevel: 50},
		{SKUID: "SKU-100B", StockQuantity: 30, ReorderLevel: 50},
		{SKUID: "SKU-200A", StockQuantity: 0, ReorderLevel: 80},
	}

	tests := []struct {
		name      string
		input     map[string]any
		wantSKUs  []string
		wantTotal float64
	}{
		{
			name:      "all items by default",
			input:     map[string]any{},
			wantSKUs:  []string{"SKU-100A", "SKU-100B", "SKU-200A"},
			wantTotal: 3,
		},
		{
			name:      "low stock only",
			input:     map[string]any{"low_stock_only": true},
			wantSKUs:  []string{"SKU-100B", "SKU-200A"},
			wantTotal: 2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := json.Marshal(inventory)
			require.NoError(t, err)

			tool := NewInventoryGet(storage.NewTestInventoryState(data))
			result, err := tool.Run(context.Background(), tt.input)
			require.NoError(t, err)

			inv, ok := result["inventory"].(map[string]any)
			require.True(t, ok)
			assert.Equal(t, tt.wantTotal, inv["total_items"])

			items, ok := inv["items"].([]any)
			require.True(t, ok)
			var skus []string
			for _, it := range items {
				skus = append(skus, it.(map[string]any)["sku_id"].(string))
			}
			assert.Equal(t, tt.wantSKUs, skus)
		})
	}

	t.Run("empty inventory keeps items non-nil", func(t *testing.T) {
		tool := NewInventoryGet(storage.NewTestInventoryState([]byte(`[]`)))
		result, err := tool.Run(context.Background(), map[string]any{})
		require.NoError(t, err)

		inv := result["inventory"].(map[string]any)
		assert.Equal(t, []any{}, inv["items"])
		assert.Equal(t, 0.0, inv["total_items"])
	})

	t.Run("missing inventory data", func(t *testing.T) {
		tool := NewInventoryGet(storage.NewTestInventoryStateWithError())
		_, err := tool.Run(context.Background(), map[string]any{})
		assert.Error(t, err)
	})

	t.Run("corrupted inventory data", func(t *testing.T) {
		tool := NewInventoryGet(storage.NewTestInventoryState([]byte("invalid json")))
		_, err := tool.Run(context.Background(), map[string]any{})
		assert.Error(t, err)
	})
}

func TestInventoryGet_ToolMethods(t *testing.T) {
	tool := NewInventoryGet(storage.NewTestInventoryState([]byte(`[]`)))

	assert.Equal(t, "inventory_get", tool.Name())
	assert.Equal(t, "Get Inventory Snapshot", tool.Title())
	assert.Contains(t, tool.Description(), "reorder")

	inputSchema := tool.InputSchema()
	require.NotNil(t, inputSchema)
	assert.Equal(t, "object", inputSchema.Type)
	assert.Contains(t, inputSchema.Properties, "low_stock_only")

	outputSchema := tool.OutputSchema()
	require.NotNil(t, outputSchema)
	assert.Contains(t, outputSchema.Properties, "inventory")
}
