package tools

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"buyingagent/procure"
	"buyingagent/tools/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testOrder(supplierID, skuID string, delayDays int) procure.PurchaseOrder {
	ordered := time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC)
	expected := ordered.AddDate(0, 0, 7)
	actual := expected.AddDate(0, 0, delayDays)
	return procure.PurchaseOrder{
		OrderID:              "PO-" + supplierID,
		SKUID:                skuID,
		SupplierID:           supplierID,
		OrderDate:            ordered,
		ExpectedDeliveryDate: expected,
		ActualDeliveryDate:   &actual,
		QuantityOrdered:      100,
		QuantityReceived:     100,
		OrderStatus:          procure.OrderStatusCompleted,
	}
}

func TestSupplierPerformanceGet_Run(t *testing.T) {
	suppliers := []procure.Supplier{
		{SupplierID: "SUP001", SupplierName: "Acme Industrial", StandardLeadTimeDays: 7},
		{SupplierID: "SUP002", SupplierName: "Globex Supply", StandardLeadTimeDays: 10},
	}
	orders := []procure.PurchaseOrder{
		testOrder("SUP001", "SKU-100A", 0),
		testOrder("SUP002", "SKU-200A", 12),
	}

	supplierData, err := json.Marshal(suppliers)
	require.NoError(t, err)
	orderData, err := json.Marshal(orders)
	require.NoError(t, err)

	newTool := func() *SupplierPerformanceGet {
		return NewSupplierPerformanceGet(
			storage.NewTestSupplierState(supplierData),
			storage.NewTestOrderState(orderData),
		)
	}

	t.Run("ranked performance for all suppliers", func(t *testing.T) {
		result, err := newTool().Run(context.Background(), map[string]any{})
		require.NoError(t, err)

		list, ok := result["suppliers"].([]any)
		require.True(t, ok)
		require.Len(t, list, 2)

		first := list[0].(map[string]any)
		assert.Equal(t, "SUP001", first["supplier_id"], "on-time supplier ranks first")
		assert.Equal(t, procure.Tier1, first["supplier_tier"])
		assert.Equal(t, 100.0, first["on_time_rate"])

		second := list[1].(map[string]any)
		assert.Equal(t, "SUP002", second["supplier_id"])
		assert.Equal(t, 0.0, second["on_time_rate"])
	})

	t.Run("tier filter", func(t *testing.T) {
		result, err := newTool().Run(context.Background(), map[string]any{"tier": procure.Tier1})
		require.NoError(t, err)

		list := result["suppliers"].([]any)
		require.Len(t, list, 1)
		assert.Equal(t, "SUP001", list[0].(map[string]any)["supplier_id"])
	})

	t.Run("missing supplier data", func(t *testing.T) {
		tool := NewSupplierPerformanceGet(
			storage.NewTestSupplierStateWithError(),
			storage.NewTestOrderState(orderData),
		)
		_, err := tool.Run(context.Background(), map[string]any{})
		assert.Error(t, err)
	})

	t.Run("corrupted order data", func(t *testing.T) {
		tool := NewSupplierPerformanceGet(
			storage.NewTestSupplierState(supplierData),
			storage.NewTestOrderState([]byte("not json")),
		)
		_, err := tool.Run(context.Background(), map[string]any{})
		assert.Error(t, err)
	})
}

func TestSupplierPerformanceGet_ToolMethods(t *testing.T) {
	tool := NewSupplierPerformanceGet(
		storage.NewTestSupplierState([]byte(`[]`)),
		storage.NewTestOrderState([]byte(`[]`)),
	)

	assert.Equal(t, "supplier_performance_get", tool.Name())
	assert.Contains(t, tool.Description(), "reliability")
	assert.Contains(t, tool.InputSchema().Properties, "tier")
	assert.Contains(t, tool.OutputSchema().Properties, "suppliers")
}
