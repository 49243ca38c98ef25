package services

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"playdates_server/models"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/stretchr/testify/require"
)

// stubActivityStore serves canned activity items per actor and counts scans.
type stubActivityStore struct {
	mu           sync.Mutex
	scans        int
	itemsByActor map[string][]map[string]types.AttributeValue
	failActors   map[string]bool
	putItems     []interface{}
}

func (s *stubActivityStore) ScanItems(ctx context.Context, tableName, filterExpression string, values map[string]types.AttributeValue, names map[string]string, limit int32) ([]map[string]types.AttributeValue, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.scans++

	var items []map[string]types.AttributeValue
	for _, attr := range values {
		actorID := attr.(*types.AttributeValueMemberS).Value
		if s.failActors[actorID] {
			return nil, errors.New("store unavailable")
		}
		items = append(items, s.itemsByActor[actorID]...)
	}
	return items, nil
}

func (s *stubActivityStore) PutItem(ctx context.Context, tableName string, item interface{}) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.putItems = append(s.putItems, item)
	return nil
}

func (s *stubActivityStore) scanCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.scans
}

func activityItem(id, actorID string, ts time.Time) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		"activityId": &types.AttributeValueMemberS{Value: id},
		"actorId":    &types.AttributeValueMemberS{Value: actorID},
		"type":       &types.AttributeValueMemberS{Value: models.ActivityTypeNewPlaydate},
		"title":      &types.AttributeValueMemberS{Value: "Park morning"},
		"createdAt":  &types.AttributeValueMemberS{Value: ts.Format(time.RFC3339)},
	}
}

func TestRefreshDeduplicatesAcrossChunks(t *testing.T) {
	base := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	shared := activityItem("act-shared", "friend-1", base)

	store := &stubActivityStore{
		itemsByActor: map[string][]map[string]types.AttributeValue{
			"me":       {shared},
			"friend-1": {shared, activityItem("act-2", "friend-1", base.Add(time.Minute))},
		},
	}
	feed := NewFeedService(store)
	feed.ChunkSize = 1 // force the shared activity into two separate chunks

	require.NoError(t, feed.SetUser(context.Background(), "me"))
	require.NoError(t, feed.UpdateFriends(context.Background(), []string{"friend-1"}))
	require.NoError(t, feed.Refresh(context.Background()))

	activities := feed.Activities()
	seen := make(map[string]int)
	for _, a := range activities {
		seen[a.ID]++
	}
	require.Equal(t, 1, seen["act-shared"])
	require.Equal(t, 1, seen["act-2"])
}

func TestRefreshOrdersNewestFirst(t *testing.T) {
	base := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	store := &stubActivityStore{
		itemsByActor: map[string][]map[string]types.AttributeValue{
			"me": {
				activityItem("old", "me", base),
				activityItem("newest", "me", base.Add(2*time.Hour)),
				activityItem("middle", "me", base.Add(time.Hour)),
			},
		},
	}
	feed := NewFeedService(store)

	require.NoError(t, feed.SetUser(context.Background(), "me"))

	activities := feed.Activities()
	require.Len(t, activities, 3)
	require.Equal(t, "newest", activities[0].ID)
	require.Equal(t, "middle", activities[1].ID)
	require.Equal(t, "old", activities[2].ID)
}

func TestRefreshTruncatesToLimit(t *testing.T) {
	base := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	store := &stubActivityStore{
		itemsByActor: map[string][]map[string]types.AttributeValue{
			"me": {
				activityItem("a", "me", base.Add(3*time.Minute)),
				activityItem("b", "me", base.Add(2*time.Minute)),
				activityItem("c", "me", base.Add(time.Minute)),
			},
		},
	}
	feed := NewFeedService(store)
	feed.Limit = 2

	require.NoError(t, feed.SetUser(context.Background(), "me"))

	activities := feed.Activities()
	require.Len(t, activities, 2)
	require.Equal(t, "a", activities[0].ID)
	require.Equal(t, "b", activities[1].ID)
}

func TestSignOutClearsWithoutQuerying(t *testing.T) {
	store := &stubActivityStore{
		itemsByActor: map[string][]map[string]types.AttributeValue{
			"me": {activityItem("act-1", "me", time.Now())},
		},
	}
	feed := NewFeedService(store)

	require.NoError(t, feed.SetUser(context.Background(), "me"))
	require.NotEmpty(t, feed.Activities())
	before := store.scanCount()

	require.NoError(t, feed.SetUser(context.Background(), ""))
	require.Empty(t, feed.Activities())
	require.False(t, feed.Loading())
	require.Equal(t, before, store.scanCount())
}

func TestFirstFriendEmissionAfterLoginDoesNotRefetch(t *testing.T) {
	store := &stubActivityStore{
		itemsByActor: map[string][]map[string]types.AttributeValue{
			"me": {activityItem("act-1", "me", time.Now())},
		},
	}
	feed := NewFeedService(store)

	require.NoError(t, feed.SetUser(context.Background(), "me"))
	afterLogin := store.scanCount()
	require.Equal(t, 1, afterLogin)

	// The login fetch already ran; the first friend emission only records.
	require.NoError(t, feed.UpdateFriends(context.Background(), []string{"friend-1"}))
	require.Equal(t, afterLogin, store.scanCount())

	// A genuine friend-set change refetches.
	require.NoError(t, feed.UpdateFriends(context.Background(), []string{"friend-1", "friend-2"}))
	require.Greater(t, store.scanCount(), afterLogin)
}

func TestFriendChangeWhileSignedOutNeverFetches(t *testing.T) {
	store := &stubActivityStore{itemsByActor: map[string][]map[string]types.AttributeValue{}}
	feed := NewFeedService(store)

	require.NoError(t, feed.SetUser(context.Background(), ""))
	require.NoError(t, feed.UpdateFriends(context.Background(), []string{"friend-1"}))
	require.NoError(t, feed.UpdateFriends(context.Background(), []string{"friend-2"}))
	require.Equal(t, 0, store.scanCount())
}

func TestRefreshPartialChunkFailureKeepsSurvivors(t *testing.T) {
	base := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	store := &stubActivityStore{
		itemsByActor: map[string][]map[string]types.AttributeValue{
			"me": {activityItem("mine", "me", base)},
		},
		failActors: map[string]bool{"friend-bad": true},
	}
	feed := NewFeedService(store)
	feed.ChunkSize = 1

	require.NoError(t, feed.SetUser(context.Background(), "me"))
	require.NoError(t, feed.UpdateFriends(context.Background(), nil))

	feed.mu.Lock()
	feed.friendIDs = []string{"friend-bad"}
	feed.mu.Unlock()

	err := feed.Refresh(context.Background())
	require.Error(t, err)

	// The succeeding chunk's results are still installed.
	activities := feed.Activities()
	require.Len(t, activities, 1)
	require.Equal(t, "mine", activities[0].ID)
	require.False(t, feed.Loading())
}

func TestRefreshRequiresUser(t *testing.T) {
	feed := NewFeedService(&stubActivityStore{})
	err := feed.Refresh(context.Background())
	require.ErrorIs(t, err, models.ErrUnauthenticated)
}

func TestPostActivityFillsDefaults(t *testing.T) {
	store := &stubActivityStore{}
	feed := NewFeedService(store)

	err := feed.PostActivity(context.Background(), models.Activity{
		Type:    models.ActivityTypeCheckIn,
		ActorID: "me",
	})
	require.NoError(t, err)
	require.Len(t, store.putItems, 1)

	item := store.putItems[0].(map[string]interface{})
	require.NotEmpty(t, item["activityId"])
	require.NotEmpty(t, item["createdAt"])
	require.Equal(t, "me", item["actorId"])
}

func TestChunkIDs(t *testing.T) {
	ids := []string{"a", "b", "c", "d", "e"}
	chunks := chunkIDs(ids, 2)
	require.Len(t, chunks, 3)
	require.Equal(t, []string{"a", "b"}, chunks[0])
	require.Equal(t, []string{"c", "d"}, chunks[1])
	require.Equal(t, []string{"e"}, chunks[2])
}
