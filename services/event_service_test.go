package services

import (
	"testing"

	"playdates_server/models"

	"github.com/stretchr/testify/require"
)

func eventWithCapacity(capacity int, attendees ...string) models.CommunityEvent {
	return models.CommunityEvent{
		ID:          "event-1",
		OrganizerID: "organizer",
		Capacity:    capacity,
		AttendeeIDs: attendees,
		WaitlistIDs: []string{},
	}
}

func TestApplyRSVPTakesSeat(t *testing.T) {
	event := eventWithCapacity(3, "a")

	next, changed := ApplyRSVP(event, "b")
	require.True(t, changed)
	require.Equal(t, []string{"a", "b"}, next.AttendeeIDs)
	require.Empty(t, next.WaitlistIDs)
}

func TestApplyRSVPFullEventWaitlists(t *testing.T) {
	event := eventWithCapacity(2, "a", "b")

	next, changed := ApplyRSVP(event, "c")
	require.True(t, changed)
	require.Equal(t, []string{"a", "b"}, next.AttendeeIDs)
	require.Equal(t, []string{"c"}, next.WaitlistIDs)
}

func TestApplyRSVPIdempotent(t *testing.T) {
	event := eventWithCapacity(2, "a")

	next, changed := ApplyRSVP(event, "a")
	require.False(t, changed)
	require.Equal(t, []string{"a"}, next.AttendeeIDs)

	// Waitlisted user RSVPing again is a no-op too.
	full := eventWithCapacity(1, "a")
	full.WaitlistIDs = []string{"b"}
	next, changed = ApplyRSVP(full, "b")
	require.False(t, changed)
	require.Equal(t, []string{"b"}, next.WaitlistIDs)
}

func TestApplyRSVPUnlimitedCapacity(t *testing.T) {
	event := eventWithCapacity(0, "a", "b", "c")

	next, changed := ApplyRSVP(event, "d")
	require.True(t, changed)
	require.Contains(t, next.AttendeeIDs, "d")
	require.Empty(t, next.WaitlistIDs)
}

func TestApplyCancelRSVPPromotesWaitlistFIFO(t *testing.T) {
	// Scenario: full event, two waitlisted users, an attendee cancels.
	event := eventWithCapacity(2, "a", "b")
	event.WaitlistIDs = []string{"first", "second"}

	next, changed := ApplyCancelRSVP(event, "a")
	require.True(t, changed)
	require.Equal(t, []string{"b", "first"}, next.AttendeeIDs)
	require.Equal(t, []string{"second"}, next.WaitlistIDs)
}

func TestApplyCancelRSVPFromWaitlistDoesNotPromote(t *testing.T) {
	event := eventWithCapacity(2, "a", "b")
	event.WaitlistIDs = []string{"first", "second"}

	next, changed := ApplyCancelRSVP(event, "first")
	require.True(t, changed)
	require.Equal(t, []string{"a", "b"}, next.AttendeeIDs)
	require.Equal(t, []string{"second"}, next.WaitlistIDs)
}

func TestApplyCancelRSVPUnknownUserIsNoOp(t *testing.T) {
	event := eventWithCapacity(2, "a")

	next, changed := ApplyCancelRSVP(event, "stranger")
	require.False(t, changed)
	require.Equal(t, []string{"a"}, next.AttendeeIDs)
}

func TestRSVPCancelRoundTrip(t *testing.T) {
	// Full event: c waitlists, a cancels, c gets the seat, a re-RSVPs and
	// lands on the waitlist behind nobody.
	event := eventWithCapacity(2, "a", "b")

	event, changed := ApplyRSVP(event, "c")
	require.True(t, changed)
	require.Equal(t, []string{"c"}, event.WaitlistIDs)

	event, changed = ApplyCancelRSVP(event, "a")
	require.True(t, changed)
	require.Equal(t, []string{"b", "c"}, event.AttendeeIDs)
	require.Empty(t, event.WaitlistIDs)

	event, changed = ApplyRSVP(event, "a")
	require.True(t, changed)
	require.Equal(t, []string{"a"}, event.WaitlistIDs)
}
