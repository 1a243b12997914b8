package storage

import (
	"context"
	"errors"
)

type InventoryState interface {
	Load(ctx context.Context) ([]byte, error)
}

type SupplierState interface {
	Load(ctx context.Context) ([]byte, error)
}

type OrderState interface {
	Load(ctx context.Context) ([]byte, error)
}

// TestInventoryState is a simple in-memory implementation for testing
type TestInventoryState struct {
	data []byte
	err  error
}

func NewTestInventoryState(data []byte) *TestInventoryState {
	return &TestInventoryState{data: data}
}

func NewTestInventoryStateWithError() *TestInventoryState {
	return &TestInventoryState{err: errors.New("not found")}
}

func (t *TestInventoryState) Load(ctx context.Context) ([]byte, error) {
	if t.err != nil {
		return nil, t.err
	}
	return t.data, nil
}

// TestSupplierState is a simple in-memory implementation for testing
type TestSupplierState struct {
	data []byte
	err  error
}

func NewTestSupplierState(data []byte) *TestSupplierState {
	return &TestSupplierState{data: data}
}

func NewTestSupplierStateWithError() *TestSupplierState {
	return &TestSupplierState{err: errors.New("not found")}
}

func (t *TestSupplierState) Load(ctx context.Context) ([]byte, error) {
	if t.err != nil {
		return nil, t.err
	}
	return t.data, nil
}

// TestOrderState is a simple in-memory implementation for testing
type TestOrderState struct {
	data []byte
	err  error
}

func NewTestOrderState(data []byte) *TestOrderState {
	return &TestOrderState{data: data}
}

func NewTestOrderStateWithError() *TestOrderState {
	return &TestOrderState{err: errors.New("not found")}
}

func (t *TestOrderState) Load(ctx context.Context) ([]byte, error) {
	if t.err != nil {
		return nil, t.err
	}
	return t.data, nil
}
