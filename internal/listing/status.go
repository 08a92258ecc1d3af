package listing

import (
	"fmt"
)

// Status is the lifecycle state of a listing.
type Status string

const (
	StatusDraft     Status = "draft"
	StatusPending   Status = "pending"
	StatusApproved  Status = "approved"
	StatusRejected  Status = "rejected"
	StatusSold      Status = "sold"
	StatusReserved  Status = "reserved"
	StatusRemoved   Status = "removed"
	StatusExpired   Status = "expired"
	StatusSuspended Status = "suspended"
)

// ApprovalStatus is the moderation verdict, tracked independently of Status.
type ApprovalStatus string

const (
	ApprovalPending       ApprovalStatus = "pending"
	ApprovalApproved      ApprovalStatus = "approved"
	ApprovalRejected      ApprovalStatus = "rejected"
	ApprovalNeedsRevision ApprovalStatus = "needs_revision"
)

var allStatuses = map[Status]bool{
	StatusDraft:     true,
	StatusPending:   true,
	StatusApproved:  true,
	StatusRejected:  true,
	StatusSold:      true,
	StatusReserved:  true,
	StatusRemoved:   true,
	StatusExpired:   true,
	StatusSuspended: true,
}

var allApprovalStatuses = map[ApprovalStatus]bool{
	ApprovalPending:       true,
	ApprovalApproved:      true,
	ApprovalRejected:      true,
	ApprovalNeedsRevision: true,
}

func IsValidStatus(value string) error {
	if !allStatuses[Status(value)] {
		return fmt.Errorf("invalid listing status %q", value)
	}
	return nil
}

func IsValidApprovalStatus(value string) error {
	if !allApprovalStatuses[ApprovalStatus(value)] {
		return fmt.Errorf("invalid approval status %q", value)
	}
	return nil
}

// IsTerminal reports whether no further lifecycle transitions are allowed out of s.
func (s Status) IsTerminal() bool {
	switch s {
	case StatusSold, StatusRemoved, StatusExpired:
		return true
	}
	return false
}

// ConsumesQuota reports whether a listing in this state occupies one of the
// seller's subscription slots. Pending listings occupy a slot even before going
// live, otherwise a seller could flood moderation past their plan limit.
func (s Status) ConsumesQuota() bool {
	switch s {
	case StatusPending, StatusApproved, StatusReserved:
		return true
	}
	return false
}

// PubliclyVisible reports whether a listing in state s with the given approval
// verdict is a candidate for public search. Approval alone is necessary but not
// sufficient.
func PubliclyVisible(s Status, a ApprovalStatus) bool {
	return s == StatusApproved && a == ApprovalApproved
}

// CheckAxes validates the joint invariant between the two state axes: a listing
// can never carry an approved verdict while its lifecycle state is one that a
// moderator has never seen or has explicitly taken out of circulation.
func CheckAxes(s Status, a ApprovalStatus) error {
	if a == ApprovalApproved {
		switch s {
		case StatusDraft, StatusRejected, StatusRemoved:
			return fmt.Errorf("approval status %q is not allowed while listing status is %q", a, s)
		}
	}
	return nil
}
