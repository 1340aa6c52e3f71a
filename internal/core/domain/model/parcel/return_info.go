package parcel

import (
	"fmt"
	"time"

	"shipping/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// RefundStatus is the state of the money owed back for a returned parcel.
type RefundStatus string

const (
	RefundNone      RefundStatus = "none"
	RefundPending   RefundStatus = "pending"
	RefundProcessed RefundStatus = "processed"
)

// Validate rejects values outside the refund status enumeration.
func (s RefundStatus) Validate() error {
	switch s {
	case RefundNone, RefundPending, RefundProcessed:
		return nil
	default:
		return errs.NewValueIsInvalidErrorWithCause("refundStatus", fmt.Errorf("%q is not a valid refund status", string(s)))
	}
}

// ReasonMaxAttemptsReached is the system reason recorded when failed delivery
// attempts exhaust maxAttempts.
const ReasonMaxAttemptsReached = "maximum delivery attempts reached"

// ReturnInfo describes why and when a parcel went back to its sender, and
// where its refund stands.
type ReturnInfo struct {
	IsReturn     bool
	Reason       string
	RequestedAt  *time.Time
	RefundStatus RefundStatus
	RefundAmount decimal.Decimal
	RefundedAt   *time.Time
}

func noReturn() ReturnInfo {
	return ReturnInfo{RefundStatus: RefundNone, RefundAmount: decimal.Zero}
}
