// Package volunteer provides the Volunteer aggregate: the matching-relevant
// subset of a volunteer account.
//
// The aggregate tracks the volunteer's home address reference (the matching
// origin) and a denormalized count of active assignments. The counter is
// mutated only by claim and completion flows, keeping the capacity admission
// check O(1) instead of counting requests at read time.
package volunteer
