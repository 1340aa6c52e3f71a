// Package parcel implements the package state machine of the delivery network:
// the Parcel aggregate (persisted as a "package"), its issue and exception
// sub-states, its return/refund state and its append-only tracking history.
//
// Key business rules:
//   - A parcel is created pending, already admitted into its origin branch
//   - delivered, cancelled and returned accept no further status transition;
//     lost only moves on through a return
//   - every accepted change appends a TrackingEvent; events are never edited
//   - a failed delivery consumes an attempt, and the attempt that reaches
//     maxAttempts escalates the parcel to returned in the same operation
//   - reporting damage, loss or a delay forces the matching exception status;
//     resolving the last open issue lands the parcel at its destination branch
//   - leaving the pipeline (delivered, returned, cancelled) gives back the
//     branch admission exactly once, announced through AdmissionReleasedEvent
//
// The word "package" is reserved in Go, hence the name of this package.
package parcel
