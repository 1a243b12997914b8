package storage

import (
	"context"
	"os"
)

type FileInventoryState struct {
	FilePath string
}

func NewFileInventoryState(filePath string) *FileInventoryState {
	return &FileInventoryState{FilePath: filePath}
}

func (s *FileInventoryState) Load(ctx context.Context) ([]byte, error) {
	return os.ReadFile(s.FilePath)
}

type FileSupplierState struct {
	FilePath string
}

func NewFileSupplierState(filePath string) *FileSupplierState {
	return &FileSupplierState{FilePath: filePath}
}

func (s *FileSupplierState) Load(ctx context.Context) ([]byte, error) {
	return os.ReadFile(s.FilePath)
}

type FileOrderState struct {
	FilePath string
}

func NewFileOrderState(filePath string) *FileOrderState {
	return &FileOrderState{FilePath: filePath}
}

func (s *FileOrderState) Load(ctx context.Context) ([]byte, error) {
	return os.ReadFile(s.FilePath)
}
