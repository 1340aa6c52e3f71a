package parcel

import (
	"fmt"

	"shipping/internal/pkg/errs"
)

// Status is the lifecycle state of a parcel. The string values are part of the
// persisted format and are matched literally by downstream consumers.
//
// Happy path:
//
//	pending -> accepted -> at_origin_branch -> in_transit_to_branch ->
//	at_destination_branch -> out_for_delivery -> delivered
//
// Side branches: failed_delivery, rescheduled, on_hold, damaged, lost,
// returned, cancelled.
type Status string

const (
	Pending             Status = "pending"
	Accepted            Status = "accepted"
	AtOriginBranch      Status = "at_origin_branch"
	InTransitToBranch   Status = "in_transit_to_branch"
	AtDestinationBranch Status = "at_destination_branch"
	OutForDelivery      Status = "out_for_delivery"
	Delivered           Status = "delivered"
	FailedDelivery      Status = "failed_delivery"
	Rescheduled         Status = "rescheduled"
	OnHold              Status = "on_hold"
	Damaged             Status = "damaged"
	Lost                Status = "lost"
	Returned            Status = "returned"
	Cancelled           Status = "cancelled"
)

func validStatuses() map[Status]struct{} {
	return map[Status]struct{}{
		Pending:             {},
		Accepted:            {},
		AtOriginBranch:      {},
		InTransitToBranch:   {},
		AtDestinationBranch: {},
		OutForDelivery:      {},
		Delivered:           {},
		FailedDelivery:      {},
		Rescheduled:         {},
		OnHold:              {},
		Damaged:             {},
		Lost:                {},
		Returned:            {},
		Cancelled:           {},
	}
}

// Validate rejects values outside the status enumeration.
func (s Status) Validate() error {
	if _, ok := validStatuses()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%q is not a valid package status", string(s)))
	}
	return nil
}

func (s Status) String() string {
	return string(s)
}

// IsTerminal reports whether s ends the normal flow: delivered, cancelled,
// returned or lost.
func (s Status) IsTerminal() bool {
	switch s {
	case Delivered, Cancelled, Returned, Lost:
		return true
	default:
		return false
	}
}

// isClosed reports whether s rejects every ordinary transition.
func (s Status) isClosed() bool {
	return s == Delivered || s == Cancelled || s == Returned
}

// isException reports whether s is one of the issue-driven holding states that
// resolving all issues releases.
func (s Status) isException() bool {
	return s == Damaged || s == Lost || s == OnHold
}

// PaymentStatus is the settlement state of the parcel price.
type PaymentStatus string

const (
	PaymentPending  PaymentStatus = "pending"
	PaymentPaid     PaymentStatus = "paid"
	PaymentRefunded PaymentStatus = "refunded"
	PaymentFailed   PaymentStatus = "failed"
)

// Validate rejects values outside the payment status enumeration.
func (s PaymentStatus) Validate() error {
	switch s {
	case PaymentPending, PaymentPaid, PaymentRefunded, PaymentFailed:
		return nil
	default:
		return errs.NewValueIsInvalidErrorWithCause("paymentStatus", fmt.Errorf("%q is not a valid payment status", string(s)))
	}
}

// PaymentMethod is how the parcel price is settled.
type PaymentMethod string

const (
	PaymentCash           PaymentMethod = "cash"
	PaymentCard           PaymentMethod = "card"
	PaymentTransfer       PaymentMethod = "transfer"
	PaymentCashOnDelivery PaymentMethod = "cash_on_delivery"
)

// Validate rejects values outside the payment method enumeration.
func (m PaymentMethod) Validate() error {
	switch m {
	case PaymentCash, PaymentCard, PaymentTransfer, PaymentCashOnDelivery:
		return nil
	default:
		return errs.NewValueIsInvalidErrorWithCause("paymentMethod", fmt.Errorf("%q is not a valid payment method", string(m)))
	}
}

// DeliveryType tells whether the parcel is carried to the door or collected at a branch.
type DeliveryType string

const (
	DeliveryHome         DeliveryType = "home"
	DeliveryBranchPickup DeliveryType = "branch_pickup"
)

// Validate rejects values outside the delivery type enumeration.
func (d DeliveryType) Validate() error {
	switch d {
	case DeliveryHome, DeliveryBranchPickup:
		return nil
	default:
		return errs.NewValueIsInvalidErrorWithCause("deliveryType", fmt.Errorf("%q is not a valid delivery type", string(d)))
	}
}
