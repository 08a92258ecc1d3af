package listing

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCanTransition(t *testing.T) {
	testCases := []struct {
		from    Status
		to      Status
		allowed bool
	}{
		{StatusDraft, StatusPending, true},
		{StatusDraft, StatusRemoved, true},
		{StatusDraft, StatusApproved, false},
		{StatusPending, StatusApproved, true},
		{StatusPending, StatusRejected, true},
		{StatusPending, StatusDraft, false},
		{StatusApproved, StatusSold, true},
		{StatusApproved, StatusReserved, true},
		{StatusApproved, StatusPending, true},
		{StatusApproved, StatusExpired, true},
		{StatusApproved, StatusSuspended, true},
		{StatusRejected, StatusPending, true},
		{StatusRejected, StatusApproved, false},
		{StatusReserved, StatusApproved, true},
		{StatusReserved, StatusSold, true},
		{StatusReserved, StatusRemoved, false},
		{StatusSuspended, StatusApproved, true},
	}

	for _, tc := range testCases {
		require.Equal(t, tc.allowed, CanTransition(tc.from, tc.to), "%s -> %s", tc.from, tc.to)
	}
}

func TestTerminalStatesHaveNoExits(t *testing.T) {
	for _, terminal := range []Status{StatusSold, StatusRemoved, StatusExpired} {
		require.True(t, terminal.IsTerminal())
		for target := range allStatuses {
			require.False(t, CanTransition(terminal, target), "%s -> %s must stay blocked", terminal, target)
		}
	}
}

func TestTransitionApprovalPropagation(t *testing.T) {
	testCases := []struct {
		name     string
		from     Status
		to       Status
		approval ApprovalStatus
		want     ApprovalStatus
	}{
		{
			name:     "submitting a draft enters the moderation queue",
			from:     StatusDraft,
			to:       StatusPending,
			approval: ApprovalPending,
			want:     ApprovalPending,
		},
		{
			name:     "moderator approval publishes the verdict",
			from:     StatusPending,
			to:       StatusApproved,
			approval: ApprovalPending,
			want:     ApprovalApproved,
		},
		{
			name:     "moderator rejection records the verdict",
			from:     StatusPending,
			to:       StatusRejected,
			approval: ApprovalPending,
			want:     ApprovalRejected,
		},
		{
			name:     "significant edit drops the approved verdict",
			from:     StatusApproved,
			to:       StatusPending,
			approval: ApprovalApproved,
			want:     ApprovalPending,
		},
		{
			name:     "removing an approved listing voids the verdict",
			from:     StatusApproved,
			to:       StatusRemoved,
			approval: ApprovalApproved,
			want:     ApprovalNeedsRevision,
		},
		{
			name:     "suspension keeps the verdict for later restore",
			from:     StatusApproved,
			to:       StatusSuspended,
			approval: ApprovalApproved,
			want:     ApprovalApproved,
		},
		{
			name:     "restoring a suspended listing keeps the verdict",
			from:     StatusSuspended,
			to:       StatusApproved,
			approval: ApprovalApproved,
			want:     ApprovalApproved,
		},
		{
			name:     "selling keeps the verdict as history",
			from:     StatusApproved,
			to:       StatusSold,
			approval: ApprovalApproved,
			want:     ApprovalApproved,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := Transition(tc.from, tc.to, tc.approval)
			require.NoError(t, err)
			require.Equal(t, tc.want, got)
		})
	}
}

func TestTransitionRejectsIllegalEdge(t *testing.T) {
	got, err := Transition(StatusDraft, StatusApproved, ApprovalPending)
	require.Error(t, err)

	var invalidErr *InvalidTransitionError
	require.True(t, errors.As(err, &invalidErr))
	require.Equal(t, StatusDraft, invalidErr.From)
	require.Equal(t, StatusApproved, invalidErr.To)

	// The approval axis is untouched on failure.
	require.Equal(t, ApprovalPending, got)
}

func TestCheckAxes(t *testing.T) {
	require.Error(t, CheckAxes(StatusDraft, ApprovalApproved))
	require.Error(t, CheckAxes(StatusRejected, ApprovalApproved))
	require.Error(t, CheckAxes(StatusRemoved, ApprovalApproved))

	require.NoError(t, CheckAxes(StatusApproved, ApprovalApproved))
	require.NoError(t, CheckAxes(StatusDraft, ApprovalPending))
	require.NoError(t, CheckAxes(StatusExpired, ApprovalApproved))
}

func TestRequiresReapproval(t *testing.T) {
	require.True(t, RequiresReapproval(StatusApproved, []string{"price"}))
	require.True(t, RequiresReapproval(StatusApproved, []string{"mileage", "title"}))

	// Insignificant edits keep the listing live.
	require.False(t, RequiresReapproval(StatusApproved, []string{"mileage"}))
	require.False(t, RequiresReapproval(StatusApproved, []string{"exterior_color", "owner_count"}))
	require.False(t, RequiresReapproval(StatusApproved, nil))

	// Only approved listings can be sent back to moderation by an edit.
	require.False(t, RequiresReapproval(StatusDraft, []string{"price"}))
	require.False(t, RequiresReapproval(StatusPending, []string{"title"}))
}

func TestConsumesQuota(t *testing.T) {
	consuming := map[Status]bool{
		StatusPending:  true,
		StatusApproved: true,
		StatusReserved: true,
	}
	for status := range allStatuses {
		require.Equal(t, consuming[status], status.ConsumesQuota(), "status %s", status)
	}
}

func TestPubliclyVisible(t *testing.T) {
	require.True(t, PubliclyVisible(StatusApproved, ApprovalApproved))

	require.False(t, PubliclyVisible(StatusReserved, ApprovalApproved))
	require.False(t, PubliclyVisible(StatusSuspended, ApprovalApproved))
	require.False(t, PubliclyVisible(StatusApproved, ApprovalPending))
	require.False(t, PubliclyVisible(StatusPending, ApprovalPending))
}
