package repository

import (
	"context"

	"netconfig/internal/domain"
)

// Repository defines persistent storage for network configurations.
// Get returns nil, nil when the ID is unknown.
type Repository interface {
	// Read operations
	GetNetwork(ctx context.Context, id int) (*domain.Configuration, error)
	ListNetworks(ctx context.Context) ([]*domain.Configuration, error)
	MaxNetworkID(ctx context.Context) (int, error)

	// Write operations
	UpsertNetwork(ctx context.Context, cfg *domain.Configuration) error
	DeleteNetwork(ctx context.Context, id int) (bool, error)

	// Bulk operations
	ReplaceNetworks(ctx context.Context, cfgs []*domain.Configuration) error

	// Close releases resources
	Close() error
}
