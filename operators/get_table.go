package operators

import (
	"fmt"

	"columnstore/storage"
	"columnstore/storagemanager"
)

// GetTable names the source table for a pipeline. On Execute it resolves
// the name through a StorageManager and returns the table unchanged,
// failing if the name is unknown.
type GetTable struct {
	manager *storagemanager.Manager
	name    string
}

// NewGetTable returns a GetTable for name, resolved against manager. A
// nil manager resolves against storagemanager.Default().
func NewGetTable(manager *storagemanager.Manager, name string) *GetTable {
	if manager == nil {
		manager = storagemanager.Default()
	}
	return &GetTable{manager: manager, name: name}
}

// TableName returns the name this operator resolves.
func (op *GetTable) TableName() string {
	return op.name
}

// Execute resolves op.name through the StorageManager.
func (op *GetTable) Execute() (*storage.Table, error) {
	table, err := op.manager.GetTable(op.name)
	if err != nil {
		return nil, fmt.Errorf("operators: get_table: %w", err)
	}
	return table, nil
}
