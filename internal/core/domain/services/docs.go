// Package services provides domain services that coordinate more than one
// aggregate of the delivery network.
//
// The package includes:
//   - StopOutcomeDispatcher: turns what happened on a route into package
//     status transitions
//
// Routes only keep their own bookkeeping; the dispatcher is the single place
// where stop actions and outcomes are mapped to package statuses.
package services
