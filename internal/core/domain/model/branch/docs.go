// Package branch models the branch capacity ledger: the load counter of a
// branch and the rules that gate package admission against it.
//
// Key business rules:
//   - Only an active branch admits packages
//   - When a capacity limit is set, 0 <= currentLoad <= capacityLimit
//   - Admission adds one to the load, release removes one and never goes below zero
//   - The capacity limit can not be lowered below the current load
//
// The aggregate expresses these rules; the persistence adapter applies the
// same guards in a single conditional UPDATE so that concurrent admissions
// can not lose increments.
package branch
