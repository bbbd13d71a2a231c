// Package lifecycle holds the mission status state machine. Every status a
// mission can carry and every legal transition between them is enumerated
// here, so services never compare raw strings.
package lifecycle

import "errors"

// Status is a mission lifecycle state.
type Status string

const (
	StatusDraft     Status = "DRAFT"
	StatusPending   Status = "PENDING"
	StatusPublished Status = "PUBLISHED"
	StatusRejected  Status = "REJECTED"
	StatusAssigned  Status = "ASSIGNED"
	StatusClosed    Status = "CLOSED"
)

// ErrInvalidTransition is returned when an operation is requested on a
// mission whose current status does not permit it.
var ErrInvalidTransition = errors.New("mission status does not permit this transition")

// all enumerates every valid status.
var all = map[Status]bool{
	StatusDraft:     true,
	StatusPending:   true,
	StatusPublished: true,
	StatusRejected:  true,
	StatusAssigned:  true,
	StatusClosed:    true,
}

// Valid reports whether s is a known mission status.
func (s Status) Valid() bool { return all[s] }

// transitions enumerates every legal edge of the state machine.
//
// The graph is intentionally permissive in three places, preserving the
// behavior the dashboard frontends rely on:
//   - operators may force-publish from any status,
//   - a creator may (re)submit for review from any status, which lets a
//     REJECTED mission go back to PENDING after editing,
//   - assignment carries no status guard, so racing accepts resolve as
//     last-writer-wins.
//
// Only REJECTED is strictly gated: it is reachable from PENDING alone.
var transitions = map[Status][]Status{
	StatusDraft:     {StatusPending, StatusPublished, StatusAssigned, StatusClosed},
	StatusPending:   {StatusPending, StatusPublished, StatusRejected, StatusAssigned, StatusClosed},
	StatusPublished: {StatusPending, StatusPublished, StatusAssigned, StatusClosed},
	StatusRejected:  {StatusPending, StatusPublished, StatusAssigned, StatusClosed},
	StatusAssigned:  {StatusPending, StatusPublished, StatusAssigned, StatusClosed},
	StatusClosed:    {StatusPending, StatusPublished, StatusAssigned, StatusClosed},
}

// CanTransition reports whether the edge from → to exists in the table.
func CanTransition(from, to Status) bool {
	for _, t := range transitions[from] {
		if t == to {
			return true
		}
	}
	return false
}

// PublishAs resolves the dual-branch publish operation: an operator
// force-publishes the mission, anyone else (the creator, checked by the
// caller) parks it in PENDING for operator review.
func PublishAs(operator bool) Status {
	if operator {
		return StatusPublished
	}
	return StatusPending
}

// Review resolves an operator decision on a pending mission. An empty reason
// publishes, a non-empty one rejects. Reviewing a mission in any other status
// is an invalid transition.
func Review(current Status, reason string) (Status, error) {
	if current != StatusPending {
		return current, ErrInvalidTransition
	}
	if reason != "" {
		return StatusRejected, nil
	}
	return StatusPublished, nil
}

// Assign moves a mission to ASSIGNED when one of its proposals is accepted.
func Assign(Status) Status { return StatusAssigned }

// Close moves a mission to CLOSED. Closing an already closed mission is a
// no-op by design.
func Close(Status) Status { return StatusClosed }
