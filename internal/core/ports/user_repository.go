package ports

import (
	"context"
	"time"

	"shipping/internal/core/domain/model/kernel"
)

// UserRepository touches user records owned by the identity system.
type UserRepository interface {
	// RecordShipment notes that client shipped a package at the given time.
	// It fails with a not-found error when the user does not exist.
	RecordShipment(ctx context.Context, clientID kernel.UUID, at time.Time) error
}
