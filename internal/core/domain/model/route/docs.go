// Package route implements the route execution engine: a Route aggregate that
// owns an ordered list of Stops and walks a vehicle through them.
//
// The package includes:
//   - Route: the aggregate root holding schedule, assignment, progress counters
//     and performance figures
//   - Stop: one visit of the route, carrying the packages handled there
//   - Status and StopStatus: state machines for the route and its stops
//
// Key business rules:
//   - stop order values are unique; stops are kept sorted by order
//   - stops are resolved strictly in order; an out-of-order request is rejected
//   - a failed or skipped stop still advances the route
//   - the route records outcomes only; turning them into package status
//     changes is the job of the caller (see the services package)
//   - past the last stop there is no current or next stop
package route
