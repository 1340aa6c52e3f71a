package commands

import (
	"errors"

	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/pkg/errs"
	"shipping/internal/pkg/guard"
)

var ErrReorderStopsCommandIsNotConstructed = errors.New(
	"ReorderStopsCommand must be created via NewReorderStopsCommand constructor",
)

// ReorderStopsCommand carries a permutation of the current stop positions.
type ReorderStopsCommand struct { //nolint:recvcheck //using for validation
	routeID  kernel.UUID
	newOrder []int

	guard guard.ConstructorGuard
}

func NewReorderStopsCommand(routeID kernel.UUID, newOrder []int) (ReorderStopsCommand, error) {
	cmd := ReorderStopsCommand{guard: guard.NewConstructorGuard()}

	var orderErr error
	if len(newOrder) == 0 {
		orderErr = errs.NewValueIsRequiredError("newOrder")
	}
	if err := errors.Join(requiredID("routeId", routeID), orderErr); err != nil {
		return ReorderStopsCommand{}, err
	}
	cmd.routeID = routeID
	cmd.newOrder = append([]int(nil), newOrder...)

	return cmd, nil
}

func (c ReorderStopsCommand) Validate() error {
	return c.guard.Validate(ErrReorderStopsCommandIsNotConstructed)
}

func (c ReorderStopsCommand) RouteID() kernel.UUID { return c.routeID }
func (c ReorderStopsCommand) NewOrder() []int      { return append([]int(nil), c.newOrder...) }
