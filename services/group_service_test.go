package services

import (
	"testing"

	"playdates_server/models"

	"github.com/stretchr/testify/require"
)

func publicGroup(members ...string) models.Group {
	return models.Group{
		ID:        "group-1",
		Privacy:   models.GroupPrivacyPublic,
		MemberIDs: members,
	}
}

func TestApplyJoinGroupPublicAdmitsDirectly(t *testing.T) {
	group := publicGroup("a")

	next, changed := ApplyJoinGroup(group, "b")
	require.True(t, changed)
	require.Equal(t, []string{"a", "b"}, next.MemberIDs)
	require.Empty(t, next.PendingMemberIDs)
}

func TestApplyJoinGroupPrivateGoesPending(t *testing.T) {
	group := publicGroup("a")
	group.Privacy = models.GroupPrivacyPrivate

	next, changed := ApplyJoinGroup(group, "b")
	require.True(t, changed)
	require.Equal(t, []string{"a"}, next.MemberIDs)
	require.Equal(t, []string{"b"}, next.PendingMemberIDs)

	// Asking again while pending changes nothing.
	again, changed := ApplyJoinGroup(next, "b")
	require.False(t, changed)
	require.Equal(t, []string{"b"}, again.PendingMemberIDs)
}

func TestApplyJoinGroupMemberIsNoOp(t *testing.T) {
	group := publicGroup("a")

	_, changed := ApplyJoinGroup(group, "a")
	require.False(t, changed)
}

func TestApplyLeaveGroupStripsAllRoles(t *testing.T) {
	group := models.Group{
		ID:               "group-1",
		Privacy:          models.GroupPrivacyPublic,
		MemberIDs:        []string{"a", "b"},
		AdminIDs:         []string{"a"},
		ModeratorIDs:     []string{"a"},
		PendingMemberIDs: []string{},
	}

	next, changed := ApplyLeaveGroup(group, "a")
	require.True(t, changed)
	require.Equal(t, []string{"b"}, next.MemberIDs)
	require.Empty(t, next.AdminIDs)
	require.Empty(t, next.ModeratorIDs)
}

func TestApplyLeaveGroupNonMemberIsNoOp(t *testing.T) {
	group := publicGroup("a")

	_, changed := ApplyLeaveGroup(group, "stranger")
	require.False(t, changed)
}

func TestApplyToggleLike(t *testing.T) {
	post := models.GroupPost{ID: "post-1", LikedByIDs: []string{"a"}}

	liked := ApplyToggleLike(post, "b")
	require.Equal(t, []string{"a", "b"}, liked.LikedByIDs)

	unliked := ApplyToggleLike(liked, "b")
	require.Equal(t, []string{"a"}, unliked.LikedByIDs)
}

func pollPost() models.GroupPost {
	return models.GroupPost{
		ID: "post-1",
		PollOptions: []models.PollOption{
			{ID: "opt-1", Text: "Saturday", VotedByIDs: []string{"a"}},
			{ID: "opt-2", Text: "Sunday", VotedByIDs: []string{}},
		},
	}
}

func TestApplyVoteSingleVoteAcrossOptions(t *testing.T) {
	post := pollPost()

	// a moves their vote from opt-1 to opt-2.
	next, changed, err := ApplyVote(post, "opt-2", "a")
	require.NoError(t, err)
	require.True(t, changed)
	require.Empty(t, next.PollOptions[0].VotedByIDs)
	require.Equal(t, []string{"a"}, next.PollOptions[1].VotedByIDs)

	// Total appearances of a across all options is exactly one.
	count := 0
	for _, option := range next.PollOptions {
		for _, id := range option.VotedByIDs {
			if id == "a" {
				count++
			}
		}
	}
	require.Equal(t, 1, count)
}

func TestApplyVoteUnknownOption(t *testing.T) {
	_, _, err := ApplyVote(pollPost(), "opt-missing", "a")
	require.ErrorIs(t, err, models.ErrInvalidState)
}

func TestApplyVoteNonPoll(t *testing.T) {
	post := models.GroupPost{ID: "post-1"}
	_, _, err := ApplyVote(post, "opt-1", "a")
	require.ErrorIs(t, err, models.ErrInvalidState)
}
