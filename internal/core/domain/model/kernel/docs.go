// Package kernel provides the value objects shared by every aggregate of the
// shipping core.
//
// The package includes:
//   - UUID: identifiers for packages, branches, routes, issues and external references
//   - GeoPoint: a validated latitude/longitude pair
//   - Address: a postal destination with an optional GeoPoint
//
// All values are immutable and carry a constructor guard, so a zero value is
// always detectable through Validate.
package kernel
