package domain

import (
	"context"
)

// DatasetSource loads the measurement table.
// Domain defines the interface, repositories implement it.
type DatasetSource interface {
	// Load reads the full dataset. Each call returns a new Dataset value.
	Load(ctx context.Context) (Dataset, error)

	// Describe names the source for logs and responses
	Describe() string

	// Health checks that the source is reachable
	Health(ctx context.Context) error
}
