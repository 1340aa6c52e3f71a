package parcel

import (
	"errors"
	"time"

	"shipping/internal/core/domain/model/kernel"
)

// TrackingEvent is one immutable entry of a parcel's audit history.
// A nil user means the change was made by the system itself.
type TrackingEvent struct {
	id        kernel.UUID
	status    Status
	branchID  *kernel.UUID
	userID    *kernel.UUID
	notes     string
	timestamp time.Time
}

// RestoreTrackingEvent rebuilds a persisted tracking event.
func RestoreTrackingEvent(
	id kernel.UUID,
	status Status,
	branchID, userID *kernel.UUID,
	notes string,
	timestamp time.Time,
) (TrackingEvent, error) {
	if err := errors.Join(id.Validate(), status.Validate()); err != nil {
		return TrackingEvent{}, err
	}

	return TrackingEvent{
		id:        id,
		status:    status,
		branchID:  copyID(branchID),
		userID:    copyID(userID),
		notes:     notes,
		timestamp: timestamp,
	}, nil
}

func (e TrackingEvent) ID() kernel.UUID        { return e.id }
func (e TrackingEvent) Status() Status         { return e.status }
func (e TrackingEvent) BranchID() *kernel.UUID { return copyID(e.branchID) }
func (e TrackingEvent) UserID() *kernel.UUID   { return copyID(e.userID) }
func (e TrackingEvent) Notes() string          { return e.notes }
func (e TrackingEvent) Timestamp() time.Time   { return e.timestamp }
