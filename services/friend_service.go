package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"playdates_server/models"
	"playdates_server/utils"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/google/uuid"
)

// Notifier pushes real-time events to a user's socket room. The socket
// package provides the implementation; a nil Notifier disables pushes.
type Notifier interface {
	NotifyUser(userID, event string, payload interface{})
}

// FriendService manages friendships: request, accept, decline, block. A
// friendship record is symmetric; either side can be "the user".
type FriendService struct {
	Dynamo *DynamoService
	Feed   *FeedService
	Notify Notifier
}

// NewFriendService creates a FriendService.
func NewFriendService(dynamo *DynamoService, feed *FeedService, notify Notifier) *FriendService {
	return &FriendService{Dynamo: dynamo, Feed: feed, Notify: notify}
}

// SendFriendRequest creates a pending friendship from userID to friendID.
// An existing relation in any status short-circuits: pending is returned
// as-is (idempotent), anything else is an invalid state for a new request.
func (fs *FriendService) SendFriendRequest(ctx context.Context, userID, friendID string) (*models.Friendship, error) {
	if userID == "" || friendID == "" || userID == friendID {
		return nil, fmt.Errorf("invalid friend request pair: %w", models.ErrInvalidState)
	}

	existing, err := fs.findFriendship(ctx, userID, friendID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		if existing.Status == models.StatusPending {
			return existing, nil
		}
		return nil, fmt.Errorf("friendship already %s: %w", existing.Status, models.ErrInvalidState)
	}

	friendship := models.Friendship{
		ID:        uuid.NewString(),
		UserID:    userID,
		FriendID:  friendID,
		Status:    models.StatusPending,
		CreatedAt: time.Now().UTC().Format(time.RFC3339),
	}
	if err := fs.Dynamo.PutItem(ctx, models.FriendshipsTable, friendship); err != nil {
		return nil, fmt.Errorf("failed to create friend request: %w", err)
	}

	if fs.Notify != nil {
		fs.Notify.NotifyUser(friendID, "friendRequest", map[string]string{
			"friendshipId": friendship.ID,
			"fromUserId":   userID,
		})
	}
	return &friendship, nil
}

// AcceptFriendRequest moves a pending request to accepted. Only the
// recipient may accept. Both profiles' denormalized friend lists are
// updated and a newFriend activity is posted.
func (fs *FriendService) AcceptFriendRequest(ctx context.Context, friendshipID, responderID, responderName string) (*models.Friendship, error) {
	friendship, err := fs.respond(ctx, friendshipID, responderID, models.StatusAccepted)
	if err != nil {
		return nil, err
	}

	other := friendship.Counterpart(responderID)
	if err := fs.addProfileFriend(ctx, responderID, other); err != nil {
		log.Printf("Failed to update friend list for %s: %v", responderID, err)
	}
	if err := fs.addProfileFriend(ctx, other, responderID); err != nil {
		log.Printf("Failed to update friend list for %s: %v", other, err)
	}

	if fs.Feed != nil {
		activity := models.Activity{
			Type:            models.ActivityTypeNewFriend,
			Title:           fmt.Sprintf("%s made a new friend", responderName),
			ActorID:         responderID,
			ActorName:       responderName,
			RelatedEntityID: other,
		}
		if err := fs.Feed.PostActivity(ctx, activity); err != nil {
			log.Printf("Failed to post friendship activity: %v", err)
		}
	}
	return friendship, nil
}

// DeclineFriendRequest moves a pending request to declined.
func (fs *FriendService) DeclineFriendRequest(ctx context.Context, friendshipID, responderID string) (*models.Friendship, error) {
	return fs.respond(ctx, friendshipID, responderID, models.StatusDeclined)
}

// respond applies a status change to a pending request under the store
// transaction. Only the recipient of the request may respond.
func (fs *FriendService) respond(ctx context.Context, friendshipID, responderID, status string) (*models.Friendship, error) {
	result, err := fs.Dynamo.TransactUpdateItem(ctx, models.FriendshipsTable, BuildStringKey("friendshipId", friendshipID),
		func(item map[string]types.AttributeValue) (interface{}, error) {
			var friendship models.Friendship
			if err := attributevalue.UnmarshalMap(item, &friendship); err != nil {
				return nil, fmt.Errorf("friendship %s: %w: %v", friendshipID, models.ErrDecodeFailure, err)
			}
			if friendship.Status == status {
				return nil, nil
			}
			if friendship.Status != models.StatusPending {
				return nil, fmt.Errorf("friendship is %s, not pending: %w", friendship.Status, models.ErrInvalidState)
			}
			if friendship.FriendID != responderID {
				return nil, fmt.Errorf("only the recipient may respond: %w", models.ErrInvalidState)
			}
			friendship.Status = status
			return friendship, nil
		})
	if err != nil {
		return nil, err
	}

	var friendship models.Friendship
	if err := attributevalue.UnmarshalMap(result, &friendship); err != nil {
		return nil, fmt.Errorf("friendship %s: %w: %v", friendshipID, models.ErrDecodeFailure, err)
	}
	return &friendship, nil
}

// BlockUser blocks the counterpart. An existing relation is overwritten to
// blocked; absent one, a blocked record is created outright.
func (fs *FriendService) BlockUser(ctx context.Context, userID, blockedID string) (*models.Friendship, error) {
	existing, err := fs.findFriendship(ctx, userID, blockedID)
	if err != nil {
		return nil, err
	}

	if existing == nil {
		friendship := models.Friendship{
			ID:        uuid.NewString(),
			UserID:    userID,
			FriendID:  blockedID,
			Status:    models.StatusBlocked,
			CreatedAt: time.Now().UTC().Format(time.RFC3339),
		}
		if err := fs.Dynamo.PutItem(ctx, models.FriendshipsTable, friendship); err != nil {
			return nil, fmt.Errorf("failed to block user: %w", err)
		}
		return &friendship, nil
	}

	result, err := fs.Dynamo.TransactUpdateItem(ctx, models.FriendshipsTable, BuildStringKey("friendshipId", existing.ID),
		func(item map[string]types.AttributeValue) (interface{}, error) {
			var friendship models.Friendship
			if err := attributevalue.UnmarshalMap(item, &friendship); err != nil {
				return nil, fmt.Errorf("friendship %s: %w: %v", existing.ID, models.ErrDecodeFailure, err)
			}
			if friendship.Status == models.StatusBlocked {
				return nil, nil
			}
			friendship.Status = models.StatusBlocked
			return friendship, nil
		})
	if err != nil {
		return nil, err
	}

	var friendship models.Friendship
	if err := attributevalue.UnmarshalMap(result, &friendship); err != nil {
		return nil, fmt.Errorf("friendship: %w: %v", models.ErrDecodeFailure, err)
	}
	return &friendship, nil
}

// ListFriendIDs returns the accepted counterparts of userID, the input to
// the feed fan-out.
func (fs *FriendService) ListFriendIDs(ctx context.Context, userID string) ([]string, error) {
	filter := "#s = :accepted AND (userId = :u OR friendId = :u)"
	values := map[string]types.AttributeValue{
		":accepted": &types.AttributeValueMemberS{Value: models.StatusAccepted},
		":u":        &types.AttributeValueMemberS{Value: userID},
	}
	names := map[string]string{"#s": "status"}

	items, err := fs.Dynamo.ScanItems(ctx, models.FriendshipsTable, filter, values, names, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to list friendships: %w", err)
	}

	var friendIDs []string
	for _, item := range items {
		var friendship models.Friendship
		if err := attributevalue.UnmarshalMap(item, &friendship); err != nil {
			log.Printf("Skipping undecodable friendship: %v", err)
			continue
		}
		if other := friendship.Counterpart(userID); other != "" {
			friendIDs = utils.AppendUnique(friendIDs, other)
		}
	}
	return friendIDs, nil
}

// ListPendingRequests returns pending requests addressed to userID.
func (fs *FriendService) ListPendingRequests(ctx context.Context, userID string) ([]models.Friendship, error) {
	filter := "#s = :pending AND friendId = :u"
	values := map[string]types.AttributeValue{
		":pending": &types.AttributeValueMemberS{Value: models.StatusPending},
		":u":       &types.AttributeValueMemberS{Value: userID},
	}
	names := map[string]string{"#s": "status"}

	items, err := fs.Dynamo.ScanItems(ctx, models.FriendshipsTable, filter, values, names, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to list pending requests: %w", err)
	}

	var requests []models.Friendship
	if err := attributevalue.UnmarshalListOfMaps(items, &requests); err != nil {
		return nil, fmt.Errorf("failed to unmarshal requests: %w", err)
	}
	return requests, nil
}

// ListFriendProfiles enriches the friend IDs with profile data, skipping
// profiles that fail to load.
func (fs *FriendService) ListFriendProfiles(ctx context.Context, userID string) ([]models.UserProfile, error) {
	friendIDs, err := fs.ListFriendIDs(ctx, userID)
	if err != nil {
		return nil, err
	}

	profiles := make([]models.UserProfile, 0, len(friendIDs))
	for _, friendID := range friendIDs {
		item, err := fs.Dynamo.GetItem(ctx, models.UserProfilesTable, BuildStringKey("userId", friendID))
		if err != nil {
			continue
		}
		profile, err := models.DecodeUserProfile(item)
		if err != nil {
			continue
		}
		profiles = append(profiles, *profile)
	}
	return profiles, nil
}

// findFriendship locates the relation between two users in either
// direction, or nil.
func (fs *FriendService) findFriendship(ctx context.Context, userA, userB string) (*models.Friendship, error) {
	filter := "(userId = :a AND friendId = :b) OR (userId = :b AND friendId = :a)"
	values := map[string]types.AttributeValue{
		":a": &types.AttributeValueMemberS{Value: userA},
		":b": &types.AttributeValueMemberS{Value: userB},
	}

	items, err := fs.Dynamo.ScanItems(ctx, models.FriendshipsTable, filter, values, nil, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to look up friendship: %w", err)
	}
	if len(items) == 0 {
		return nil, nil
	}

	var friendship models.Friendship
	if err := attributevalue.UnmarshalMap(items[0], &friendship); err != nil {
		return nil, fmt.Errorf("friendship: %w: %v", models.ErrDecodeFailure, err)
	}
	return &friendship, nil
}

// addProfileFriend appends friendID to a profile's denormalized friend
// list, preserving the no-duplicates invariant.
func (fs *FriendService) addProfileFriend(ctx context.Context, userID, friendID string) error {
	_, err := fs.Dynamo.TransactUpdateItem(ctx, models.UserProfilesTable, BuildStringKey("userId", userID),
		func(item map[string]types.AttributeValue) (interface{}, error) {
			var profile models.UserProfile
			if err := attributevalue.UnmarshalMap(item, &profile); err != nil {
				return nil, fmt.Errorf("profile %s: %w: %v", userID, models.ErrDecodeFailure, err)
			}
			if utils.ContainsID(profile.FriendIDs, friendID) {
				return nil, nil
			}
			profile.FriendIDs = append(profile.FriendIDs, friendID)
			profile.PendingFriendRequestIDs = utils.RemoveID(
				append([]string(nil), profile.PendingFriendRequestIDs...), friendID)
			return profile, nil
		})
	return err
}
