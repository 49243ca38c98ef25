package models

import (
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/stretchr/testify/require"
)

func s(v string) types.AttributeValue { return &types.AttributeValueMemberS{Value: v} }
func n(v string) types.AttributeValue { return &types.AttributeValueMemberN{Value: v} }

func TestDecodeActivityCoercesMessyFields(t *testing.T) {
	// name stored as a number, count as a numeric string, timestamp as
	// epoch millis: the kind of drift real records accumulate.
	item := map[string]types.AttributeValue{
		"activityId": s("act-1"),
		"actorId":    s("user-1"),
		"actorName":  n("42"),
		"likeCount":  s("7"),
		"createdAt":  n("1767225600000"),
	}

	activity, err := DecodeActivity(item)
	require.NoError(t, err)
	require.Equal(t, "42", activity.ActorName)
	require.Equal(t, 7, activity.LikeCount)
	require.Equal(t, time.UnixMilli(1767225600000).UTC(), activity.Timestamp.UTC())
	require.Equal(t, DefaultActivityType, activity.Type)
	require.Equal(t, DefaultDisplayName, activity.Title)
}

func TestDecodeActivityMissingIdentityFails(t *testing.T) {
	_, err := DecodeActivity(map[string]types.AttributeValue{
		"actorId": s("user-1"),
	})
	require.ErrorIs(t, err, ErrDecodeFailure)

	_, err = DecodeActivity(map[string]types.AttributeValue{
		"activityId": s("act-1"),
	})
	require.ErrorIs(t, err, ErrDecodeFailure)

	_, err = DecodeActivity(nil)
	require.ErrorIs(t, err, ErrDecodeFailure)
}

func TestDecodeActivitiesDropsBadRecordsAndKeepsRest(t *testing.T) {
	items := make([]map[string]types.AttributeValue, 0, 10)
	for i := 0; i < 7; i++ {
		items = append(items, map[string]types.AttributeValue{
			"activityId": s(string(rune('a' + i))),
			"actorId":    s("user-1"),
			"createdAt":  s("2026-03-01T10:00:00Z"),
		})
	}
	// Three unusable records mixed in.
	items = append(items, nil)
	items = append(items, map[string]types.AttributeValue{"actorId": s("user-1")})
	items = append(items, map[string]types.AttributeValue{"activityId": s("orphan")})

	activities, dropped := DecodeActivities(items)
	require.Len(t, activities, 7)
	require.Equal(t, 3, dropped)
}

func TestDecodePlaydateCoercesLocation(t *testing.T) {
	item := map[string]types.AttributeValue{
		"playdateId": s("pd-1"),
		"hostId":     s("host-1"),
		"isPublic":   n("1"),
		"location": &types.AttributeValueMemberM{Value: map[string]types.AttributeValue{
			"latitude":  s("40.78"),
			"longitude": n("-73.96"),
		}},
	}

	playdate, err := DecodePlaydate(item)
	require.NoError(t, err)
	require.True(t, playdate.IsPublic)
	require.NotNil(t, playdate.Location)
	require.Equal(t, DefaultLocationName, playdate.Location.Name)
	require.Equal(t, 40.78, playdate.Location.Latitude)
	require.Equal(t, -73.96, playdate.Location.Longitude)
	require.NotNil(t, playdate.AttendeeIDs, "required list defaults to empty, not nil")
}

func TestDecodePlaydateMissingLocationIsNil(t *testing.T) {
	playdate, err := DecodePlaydate(map[string]types.AttributeValue{
		"playdateId": s("pd-1"),
	})
	require.NoError(t, err)
	require.Nil(t, playdate.Location)
}

func TestDecodeCommunityEventListsNeverNil(t *testing.T) {
	event, err := DecodeCommunityEvent(map[string]types.AttributeValue{
		"eventId":  s("ev-1"),
		"capacity": s("25"),
	})
	require.NoError(t, err)
	require.Equal(t, 25, event.Capacity)
	require.NotNil(t, event.AttendeeIDs)
	require.NotNil(t, event.WaitlistIDs)
}

func TestDecodeUserProfileAvatarFallsBackToFirstPhoto(t *testing.T) {
	profile, err := DecodeUserProfile(map[string]types.AttributeValue{
		"userId": s("user-1"),
		"photos": &types.AttributeValueMemberL{Value: []types.AttributeValue{
			s("https://cdn.test/p1.jpg"),
			s("https://cdn.test/p2.jpg"),
		}},
	})
	require.NoError(t, err)
	require.Equal(t, "https://cdn.test/p1.jpg", profile.AvatarURL)
	require.Equal(t, DefaultDisplayName, profile.Name)
}
