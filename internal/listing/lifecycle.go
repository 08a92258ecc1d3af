package listing

import (
	"fmt"
)

// InvalidTransitionError is returned when a lifecycle transition is requested
// that the state machine does not allow from the listing's current state.
type InvalidTransitionError struct {
	From Status
	To   Status
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("cannot transition listing from %q to %q", e.From, e.To)
}

// transitions holds every legal lifecycle edge. Anything not listed here is
// rejected, which makes the terminal states (sold, removed, expired) terminal
// by omission.
var transitions = map[Status][]Status{
	StatusDraft:    {StatusPending, StatusRemoved},
	StatusPending:  {StatusApproved, StatusRejected, StatusRemoved},
	StatusApproved: {StatusPending, StatusSold, StatusReserved, StatusSuspended, StatusRemoved, StatusExpired},
	StatusRejected: {StatusPending, StatusRemoved},
	StatusReserved: {StatusApproved, StatusSold},
	// A suspended listing comes back once the seller's quota allows it again.
	StatusSuspended: {StatusApproved, StatusRemoved},
}

// CanTransition reports whether the edge from → to exists.
func CanTransition(from, to Status) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// Transition validates the edge from → to and returns the approval status the
// listing must carry after the move. The caller persists both axes in the same
// write; CheckAxes guards the joint invariant.
func Transition(from, to Status, approval ApprovalStatus) (ApprovalStatus, error) {
	if !CanTransition(from, to) {
		return approval, &InvalidTransitionError{From: from, To: to}
	}

	next := approval
	switch to {
	case StatusPending:
		// Both fresh submissions and significant edits of an approved listing
		// re-enter the moderation queue.
		next = ApprovalPending
	case StatusRejected:
		next = ApprovalRejected
	case StatusApproved:
		if from == StatusPending {
			next = ApprovalApproved
		}
	case StatusRemoved:
		// A removed listing keeps no live verdict; re-listing goes back
		// through moderation.
		if approval == ApprovalApproved {
			next = ApprovalNeedsRevision
		}
	}

	if err := CheckAxes(to, next); err != nil {
		return approval, err
	}
	return next, nil
}

// significantFields are the listing fields whose edit forces re-moderation of
// an already-approved listing. Price is included to prevent bait-and-switch
// listings bypassing moderation.
var significantFields = map[string]bool{
	"title":       true,
	"description": true,
	"price":       true,
	"brand_id":    true,
	"model_id":    true,
	"year":        true,
}

// IsSignificantField reports whether editing the named field triggers
// re-approval.
func IsSignificantField(name string) bool {
	return significantFields[name]
}

// RequiresReapproval reports whether an edit touching the given fields must
// send an approved listing back to the moderation queue.
func RequiresReapproval(current Status, changed []string) bool {
	if current != StatusApproved {
		return false
	}
	for _, f := range changed {
		if significantFields[f] {
			return true
		}
	}
	return false
}
