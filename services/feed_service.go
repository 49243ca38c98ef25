package services

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"playdates_server/models"
	"playdates_server/utils"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/google/uuid"
)

// DefaultActorChunkSize caps how many actor IDs go into one membership
// predicate, mirroring the store's IN-cardinality limit.
const DefaultActorChunkSize = 30

// DefaultFeedLimit is the overall feed size after merge.
const DefaultFeedLimit = 50

// ActivityStore is the slice of the document store the feed depends on.
// *DynamoService satisfies it; tests substitute a stub.
type ActivityStore interface {
	ScanItems(ctx context.Context, tableName, filterExpression string, expressionAttributeValues map[string]types.AttributeValue, expressionAttributeNames map[string]string, limit int32) ([]map[string]types.AttributeValue, error)
	PutItem(ctx context.Context, tableName string, item interface{}) error
}

// FeedService computes the activity feed visible to the signed-in user by
// fanning out one query per chunk of self plus friends, merging, and
// deduplicating. All mutable state is guarded by mu; chunk queries run on
// their own goroutines and marshal results back under the lock.
type FeedService struct {
	Store ActivityStore

	ChunkSize int
	Limit     int

	mu            sync.Mutex
	userID        string
	friendIDs     []string
	friendsPrimed bool
	generation    uint64
	loading       bool
	activities    []models.Activity
}

// NewFeedService creates a feed service with default chunking limits.
func NewFeedService(store ActivityStore) *FeedService {
	return &FeedService{
		Store:     store,
		ChunkSize: DefaultActorChunkSize,
		Limit:     DefaultFeedLimit,
	}
}

// SetUser switches the authenticated identity. Login triggers a fetch;
// logout clears the feed without querying. Any in-flight refresh from the
// previous identity is invalidated.
func (fs *FeedService) SetUser(ctx context.Context, userID string) error {
	fs.mu.Lock()
	fs.userID = userID
	fs.generation++
	fs.friendsPrimed = false
	if userID == "" {
		fs.activities = nil
		fs.loading = false
		fs.mu.Unlock()
		return nil
	}
	fs.mu.Unlock()

	return fs.Refresh(ctx)
}

// UpdateFriends records the new friend set and refreshes the feed. The very
// first emission after an identity change is recorded without fetching:
// login already fetched, so refetching would be a redundant duplicate. A
// friend-set change while signed out never fetches.
func (fs *FeedService) UpdateFriends(ctx context.Context, friendIDs []string) error {
	fs.mu.Lock()
	fs.friendIDs = append([]string(nil), friendIDs...)
	if !fs.friendsPrimed {
		fs.friendsPrimed = true
		fs.mu.Unlock()
		return nil
	}
	signedIn := fs.userID != ""
	fs.mu.Unlock()

	if !signedIn {
		return nil
	}
	return fs.Refresh(ctx)
}

// Refresh recomputes the feed. Chunk queries run concurrently; a chunk
// failure does not cancel the others: results from succeeding chunks are
// still merged and installed, and the first chunk error is returned.
// Stale completions are discarded by generation. The loading flag is
// cleared on every path owned by the current generation.
func (fs *FeedService) Refresh(ctx context.Context) error {
	fs.mu.Lock()
	if fs.userID == "" {
		fs.mu.Unlock()
		return models.ErrUnauthenticated
	}
	fs.generation++
	gen := fs.generation
	fs.loading = true
	actorIDs := utils.AppendUnique(append([]string(nil), fs.friendIDs...), fs.userID)
	limit := fs.Limit
	chunkSize := fs.ChunkSize
	fs.mu.Unlock()

	chunks := chunkIDs(actorIDs, chunkSize)
	results := make([][]models.Activity, len(chunks))
	errs := make([]error, len(chunks))

	var wg sync.WaitGroup
	for i, chunk := range chunks {
		wg.Add(1)
		go func(i int, chunk []string) {
			defer wg.Done()
			results[i], errs[i] = fs.fetchChunk(ctx, chunk, limit)
		}(i, chunk)
	}
	wg.Wait()

	// First-seen wins: iterate chunk results in original order.
	seen := make(map[string]struct{})
	var merged []models.Activity
	for _, chunkActivities := range results {
		for _, activity := range chunkActivities {
			if _, dup := seen[activity.ID]; dup {
				continue
			}
			seen[activity.ID] = struct{}{}
			merged = append(merged, activity)
		}
	}

	sort.SliceStable(merged, func(i, j int) bool {
		return merged[i].Timestamp.After(merged[j].Timestamp)
	})
	if len(merged) > limit {
		merged = merged[:limit]
	}

	var firstErr error
	for _, err := range errs {
		if err != nil {
			firstErr = err
			break
		}
	}

	fs.mu.Lock()
	defer fs.mu.Unlock()
	if gen != fs.generation {
		// A newer run owns the feed now; drop this completion.
		return nil
	}
	fs.activities = merged
	fs.loading = false
	return firstErr
}

// fetchChunk queries activities whose actor is in the chunk, newest first,
// dropping records that fail to decode.
func (fs *FeedService) fetchChunk(ctx context.Context, chunk []string, limit int) ([]models.Activity, error) {
	placeholders := make([]string, len(chunk))
	values := make(map[string]types.AttributeValue, len(chunk))
	for i, actorID := range chunk {
		placeholder := fmt.Sprintf(":a%d", i)
		placeholders[i] = placeholder
		values[placeholder] = &types.AttributeValueMemberS{Value: actorID}
	}
	filter := fmt.Sprintf("actorId IN (%s)", strings.Join(placeholders, ", "))

	items, err := fs.Store.ScanItems(ctx, models.ActivitiesTable, filter, values, nil, int32(limit))
	if err != nil {
		return nil, fmt.Errorf("failed to fetch activity chunk: %w", err)
	}

	activities, _ := models.DecodeActivities(items)
	sort.SliceStable(activities, func(i, j int) bool {
		return activities[i].Timestamp.After(activities[j].Timestamp)
	})
	if len(activities) > limit {
		activities = activities[:limit]
	}
	return activities, nil
}

// Activities returns a snapshot of the current feed.
func (fs *FeedService) Activities() []models.Activity {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	return append([]models.Activity(nil), fs.activities...)
}

// Loading reports whether a refresh is in progress.
func (fs *FeedService) Loading() bool {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	return fs.loading
}

// PostActivity writes a new activity record for an actor. Missing IDs and
// timestamps are filled in.
func (fs *FeedService) PostActivity(ctx context.Context, activity models.Activity) error {
	if activity.ID == "" {
		activity.ID = uuid.NewString()
	}
	createdAt := activity.Timestamp
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}

	item := map[string]interface{}{
		"activityId":      activity.ID,
		"type":            activity.Type,
		"title":           activity.Title,
		"description":     activity.Description,
		"createdAt":       createdAt.Format(time.RFC3339),
		"actorId":         activity.ActorID,
		"actorName":       activity.ActorName,
		"actorAvatarUrl":  activity.ActorAvatarURL,
		"relatedEntityId": activity.RelatedEntityID,
		"contentImageUrl": activity.ContentImageURL,
		"likeCount":       activity.LikeCount,
		"commentCount":    activity.CommentCount,
	}

	if err := fs.Store.PutItem(ctx, models.ActivitiesTable, item); err != nil {
		return fmt.Errorf("failed to post activity: %w", err)
	}
	return nil
}

// chunkIDs partitions ids into slices of at most size elements.
func chunkIDs(ids []string, size int) [][]string {
	if size <= 0 {
		size = DefaultActorChunkSize
	}
	var chunks [][]string
	for start := 0; start < len(ids); start += size {
		end := start + size
		if end > len(ids) {
			end = len(ids)
		}
		chunks = append(chunks, ids[start:end])
	}
	return chunks
}
