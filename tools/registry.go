package tools

import (
	"fmt"

	"buyingagent/tools/storage"
)

// Registry maps tool names to implementations
type Registry map[string]Tool

// NewRegistry creates a new tool registry over the given inventory, supplier,
// and order history states.
func NewRegistry(inventory storage.InventoryState, suppliers storage.SupplierState, orders storage.OrderState) (*Registry, error) {
	tools := map[string]Tool{
		"inventory_get":            NewInventoryGet(inventory),
		"supplier_performance_get": NewSupplierPerformanceGet(suppliers, orders),
		"order_history_get":        NewOrderHistoryGet(orders),
	}

	registry := Registry(tools)
	return &registry, nil
}

// GetTools returns all tools in the registry as a slice
func (r *Registry) GetTools() []Tool {
	tools := make([]Tool, 0, len(*r))
	for _, tool := range *r {
		tools = append(tools, tool)
	}
	return tools
}

// GetTool retrieves a tool by name from the registry
func (r Registry) GetTool(name string) (Tool, error) {
	tool, exists := r[name]
	if !exists {
		return nil, fmt.Errorf("tool %q not found in registry", name)
	}
	return tool, nil
}
