package branch

import (
	"errors"
	"fmt"
	"strings"

	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/pkg/errs"
	"shipping/internal/pkg/guard"
)

var (
	// ErrBranchIsNotConstructed is returned for a Branch not built by NewBranch or RestoreBranch.
	ErrBranchIsNotConstructed = errors.New("Branch must be created via NewBranch constructor")

	// ErrBranchInactive is the admission failure for a branch whose status is not active.
	ErrBranchInactive = errors.New("branch is not active")

	// ErrBranchAtCapacity is the admission failure for a branch whose load reached its limit.
	ErrBranchAtCapacity = errors.New("branch is at full capacity")

	// ErrCapacityBelowLoad is returned when a new limit would be lower than the current load.
	ErrCapacityBelowLoad = errors.New("capacity limit is lower than current load")
)

// Branch is the capacity ledger entry of one branch of a company.
//
// Branch follows these invariants:
//   - currentLoad is never negative
//   - with a capacity limit, currentLoad never exceeds it
//   - the load only changes through Admit and Release
type Branch struct {
	id            kernel.UUID
	companyID     kernel.UUID
	name          string
	status        Status
	capacityLimit *int
	currentLoad   int
	version       int
	guard         guard.ConstructorGuard
}

// NewBranch creates an active branch with no load. capacityLimit may be nil for
// an unlimited branch.
func NewBranch(id, companyID kernel.UUID, name string, capacityLimit *int) (*Branch, error) {
	b := &Branch{
		status: Active,
		guard:  guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		b.setID(id),
		b.setCompanyID(companyID),
		b.setName(name),
		b.setCapacityLimit(capacityLimit),
	); err != nil {
		return nil, err
	}

	return b, nil
}

// RestoreBranch rebuilds a Branch from persisted state and rejects states that
// violate the ledger invariants.
func RestoreBranch(
	id, companyID kernel.UUID,
	name string,
	status Status,
	capacityLimit *int,
	currentLoad int,
	version int,
) (*Branch, error) {
	b := &Branch{
		version: version,
		guard:   guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		b.setID(id),
		b.setCompanyID(companyID),
		b.setName(name),
		b.setStatus(status),
		b.setCapacityLimit(capacityLimit),
	); err != nil {
		return nil, err
	}

	if err := b.setCurrentLoad(currentLoad); err != nil {
		return nil, err
	}

	return b, nil
}

// Validate ensures the branch was built through a constructor.
func (b *Branch) Validate() error {
	if b == nil {
		return ErrBranchIsNotConstructed
	}
	return b.guard.Validate(ErrBranchIsNotConstructed)
}

func (b *Branch) ID() kernel.UUID        { return b.id }
func (b *Branch) CompanyID() kernel.UUID { return b.companyID }
func (b *Branch) Name() string           { return b.name }
func (b *Branch) Status() Status         { return b.status }
func (b *Branch) CurrentLoad() int       { return b.currentLoad }
func (b *Branch) Version() int           { return b.version }

// CapacityLimit returns the configured limit, or nil when the branch is unlimited.
func (b *Branch) CapacityLimit() *int {
	if b.capacityLimit == nil {
		return nil
	}
	limit := *b.capacityLimit
	return &limit
}

// IsFull reports whether a limited branch has no room left.
func (b *Branch) IsFull() bool {
	return b.capacityLimit != nil && b.currentLoad >= *b.capacityLimit
}

// AvailableCapacity returns the remaining room and false for unlimited branches.
func (b *Branch) AvailableCapacity() (int, bool) {
	if b.capacityLimit == nil {
		return 0, false
	}
	return max(*b.capacityLimit-b.currentLoad, 0), true
}

// UtilizationPercentage returns currentLoad/capacityLimit in percent, 0 when unlimited.
func (b *Branch) UtilizationPercentage() float64 {
	if b.capacityLimit == nil || *b.capacityLimit == 0 {
		return 0
	}
	return float64(b.currentLoad) / float64(*b.capacityLimit) * 100
}

// CheckAdmission tells whether one more package may be admitted, without
// changing the load. The returned error wraps ErrBranchInactive or
// ErrBranchAtCapacity so callers can tell the two apart.
func (b *Branch) CheckAdmission() error {
	if b.status != Active {
		return errs.NewPreconditionFailedErrorWithCause(
			"admit package",
			fmt.Sprintf("branch %s is %s", b.id, b.status),
			ErrBranchInactive,
		)
	}
	if b.IsFull() {
		return errs.NewPreconditionFailedErrorWithCause(
			"admit package",
			fmt.Sprintf("branch %s load %d reached limit %d", b.id, b.currentLoad, *b.capacityLimit),
			ErrBranchAtCapacity,
		)
	}
	return nil
}

// Admit adds one package to the load when CheckAdmission allows it.
func (b *Branch) Admit() error {
	if err := b.CheckAdmission(); err != nil {
		return err
	}
	b.currentLoad++
	return nil
}

// Release removes one package from the load. It reports false, leaving the load
// at zero, when there was nothing to release.
func (b *Branch) Release() bool {
	if b.currentLoad == 0 {
		return false
	}
	b.currentLoad--
	return true
}

// UpdateCapacity replaces the capacity limit. nil removes the limit.
func (b *Branch) UpdateCapacity(limit *int) error {
	if limit != nil && *limit < b.currentLoad {
		return errs.NewPreconditionFailedErrorWithCause(
			"update capacity",
			fmt.Sprintf("limit %d is lower than current load %d", *limit, b.currentLoad),
			ErrCapacityBelowLoad,
		)
	}
	return b.setCapacityLimit(limit)
}

func (b *Branch) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	b.id = id
	return nil
}

func (b *Branch) setCompanyID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	b.companyID = id
	return nil
}

func (b *Branch) setName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return errs.NewValueIsRequiredError("name")
	}
	b.name = name
	return nil
}

func (b *Branch) setStatus(status Status) error {
	if err := status.Validate(); err != nil {
		return err
	}
	b.status = status
	return nil
}

func (b *Branch) setCapacityLimit(limit *int) error {
	if limit == nil {
		b.capacityLimit = nil
		return nil
	}
	if *limit < 0 {
		return errs.NewValueIsInvalidErrorWithCause("capacityLimit", fmt.Errorf("%d is negative", *limit))
	}
	l := *limit
	b.capacityLimit = &l
	return nil
}

func (b *Branch) setCurrentLoad(load int) error {
	if load < 0 {
		return errs.NewValueIsOutOfRangeError("currentLoad", load, 0, "unlimited")
	}
	if b.capacityLimit != nil && load > *b.capacityLimit {
		return errs.NewValueIsOutOfRangeError("currentLoad", load, 0, *b.capacityLimit)
	}
	b.currentLoad = load
	return nil
}
