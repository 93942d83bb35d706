// Package allocator splits a fixed quantity of one item type across a roster
// of beneficiaries in proportion to a need score.
//
// The package is pure: it performs no I/O, keeps no state between calls and
// never logs. Plan always hands out exactly the requested total; Validate is
// the check that a plan fits the stock actually on hand and must pass before
// a plan is committed.
package allocator
