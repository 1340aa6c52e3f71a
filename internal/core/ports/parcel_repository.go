// Package ports defines the persistence contracts of the delivery network core.
// The domain and application layers depend on these interfaces; adapters in
// internal/adapters implement them.
package ports

import (
	"context"

	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/core/domain/model/parcel"
)

// ParcelRepository stores Parcel aggregates together with their issues and
// tracking history.
type ParcelRepository interface {
	// Add persists a new parcel.
	Add(ctx context.Context, aggregate *parcel.Parcel) error

	// Update persists changes to an existing parcel. New tracking events are
	// appended; existing ones are never rewritten. When the stored version no
	// longer matches the one the parcel was loaded with, a conflict error is
	// returned and nothing is written.
	Update(ctx context.Context, aggregate *parcel.Parcel) error

	// Get retrieves a parcel by id.
	Get(ctx context.Context, id kernel.UUID) (*parcel.Parcel, error)
}
