package ports

import (
	"context"

	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/core/domain/model/route"
)

// RouteRepository stores Route aggregates with their stops. The packages of
// every stop are also indexed so routes can be found by package.
type RouteRepository interface {
	Add(ctx context.Context, aggregate *route.Route) error

	// Update fails with a conflict error when the route was changed since it was loaded.
	Update(ctx context.Context, aggregate *route.Route) error

	Get(ctx context.Context, id kernel.UUID) (*route.Route, error)
}
