package ppcollect

import (
	"context"
)

// SchemaManager defines the interface for the export database schema.
// It uses GORM AutoMigrate, so Create is idempotent.
type SchemaManager interface {
	// Create creates or updates the power_plants table.
	Create(ctx context.Context) error
}
