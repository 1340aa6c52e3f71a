package branch

import (
	"fmt"

	"shipping/internal/pkg/errs"
)

// Status is the operational state of a branch. Branch lifecycle is owned by an
// external collaborator; the core only reads it.
type Status string

const (
	Active      Status = "active"
	Inactive    Status = "inactive"
	Maintenance Status = "maintenance"
)

func validStatuses() map[Status]struct{} {
	return map[Status]struct{}{
		Active:      {},
		Inactive:    {},
		Maintenance: {},
	}
}

// Validate rejects any value other than active, inactive and maintenance.
func (s Status) Validate() error {
	if _, ok := validStatuses()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%q is not a valid branch status", string(s)))
	}
	return nil
}

func (s Status) String() string {
	return string(s)
}
