package services

import (
	"context"
	"fmt"
	"sort"
	"time"

	"playdates_server/models"
	"playdates_server/utils"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/google/uuid"
)

// GroupService manages community groups and their posts. Membership and
// post mutations are pure transitions run under the store transaction.
type GroupService struct {
	Dynamo *DynamoService
}

// NewGroupService creates a GroupService.
func NewGroupService(dynamo *DynamoService) *GroupService {
	return &GroupService{Dynamo: dynamo}
}

// CreateGroup stores a new group. The creator becomes member and admin.
func (gs *GroupService) CreateGroup(ctx context.Context, group models.Group, creatorID string) (*models.Group, error) {
	if creatorID == "" {
		return nil, fmt.Errorf("group requires a creator: %w", models.ErrInvalidState)
	}
	if group.ID == "" {
		group.ID = uuid.NewString()
	}
	if group.Privacy == "" {
		group.Privacy = models.GroupPrivacyPublic
	}
	group.MemberIDs = utils.AppendUnique(group.MemberIDs, creatorID)
	group.AdminIDs = utils.AppendUnique(group.AdminIDs, creatorID)
	if group.ModeratorIDs == nil {
		group.ModeratorIDs = []string{}
	}
	if group.PendingMemberIDs == nil {
		group.PendingMemberIDs = []string{}
	}
	if group.CreatedAt == "" {
		group.CreatedAt = time.Now().UTC().Format(time.RFC3339)
	}

	if err := gs.Dynamo.PutItem(ctx, models.GroupsTable, group); err != nil {
		return nil, fmt.Errorf("failed to create group: %w", err)
	}
	return &group, nil
}

// GetGroup fetches a single group.
func (gs *GroupService) GetGroup(ctx context.Context, groupID string) (*models.Group, error) {
	item, err := gs.Dynamo.GetItem(ctx, models.GroupsTable, BuildStringKey("groupId", groupID))
	if err != nil {
		return nil, err
	}

	var group models.Group
	if err := attributevalue.UnmarshalMap(item, &group); err != nil {
		return nil, fmt.Errorf("group %s: %w: %v", groupID, models.ErrDecodeFailure, err)
	}
	return &group, nil
}

// JoinGroup adds userID to the group. Private and invite-only groups gate
// the join through the pending list; public groups admit directly.
func (gs *GroupService) JoinGroup(ctx context.Context, groupID, userID string) (*models.Group, error) {
	return gs.transactGroup(ctx, groupID, func(group models.Group) (models.Group, bool) {
		return ApplyJoinGroup(group, userID)
	})
}

// ApproveMember moves a pending user into full membership.
func (gs *GroupService) ApproveMember(ctx context.Context, groupID, userID string) (*models.Group, error) {
	return gs.transactGroup(ctx, groupID, func(group models.Group) (models.Group, bool) {
		if !utils.ContainsID(group.PendingMemberIDs, userID) {
			return group, false
		}
		group.PendingMemberIDs = utils.RemoveID(append([]string(nil), group.PendingMemberIDs...), userID)
		group.MemberIDs = utils.AppendUnique(append([]string(nil), group.MemberIDs...), userID)
		return group, true
	})
}

// LeaveGroup removes userID from the group. Elevated roles are dropped in
// the same write: a user who left cannot remain admin or moderator.
func (gs *GroupService) LeaveGroup(ctx context.Context, groupID, userID string) (*models.Group, error) {
	return gs.transactGroup(ctx, groupID, func(group models.Group) (models.Group, bool) {
		return ApplyLeaveGroup(group, userID)
	})
}

func (gs *GroupService) transactGroup(ctx context.Context, groupID string, transition func(models.Group) (models.Group, bool)) (*models.Group, error) {
	result, err := gs.Dynamo.TransactUpdateItem(ctx, models.GroupsTable, BuildStringKey("groupId", groupID),
		func(item map[string]types.AttributeValue) (interface{}, error) {
			var group models.Group
			if err := attributevalue.UnmarshalMap(item, &group); err != nil {
				return nil, fmt.Errorf("group %s: %w: %v", groupID, models.ErrDecodeFailure, err)
			}
			next, changed := transition(group)
			if !changed {
				return nil, nil
			}
			return next, nil
		})
	if err != nil {
		return nil, err
	}

	var group models.Group
	if err := attributevalue.UnmarshalMap(result, &group); err != nil {
		return nil, fmt.Errorf("group %s: %w: %v", groupID, models.ErrDecodeFailure, err)
	}
	return &group, nil
}

// ApplyJoinGroup is the pure join transition.
func ApplyJoinGroup(group models.Group, userID string) (models.Group, bool) {
	if group.IsMember(userID) {
		return group, false
	}

	if group.RequiresApproval() {
		if utils.ContainsID(group.PendingMemberIDs, userID) {
			return group, false
		}
		group.PendingMemberIDs = append(append([]string(nil), group.PendingMemberIDs...), userID)
		return group, true
	}

	group.MemberIDs = utils.AppendUnique(append([]string(nil), group.MemberIDs...), userID)
	return group, true
}

// ApplyLeaveGroup is the pure leave transition.
func ApplyLeaveGroup(group models.Group, userID string) (models.Group, bool) {
	if !group.IsMember(userID) &&
		!utils.ContainsID(group.AdminIDs, userID) &&
		!utils.ContainsID(group.ModeratorIDs, userID) &&
		!utils.ContainsID(group.PendingMemberIDs, userID) {
		return group, false
	}

	group.MemberIDs = utils.RemoveID(append([]string(nil), group.MemberIDs...), userID)
	group.AdminIDs = utils.RemoveID(append([]string(nil), group.AdminIDs...), userID)
	group.ModeratorIDs = utils.RemoveID(append([]string(nil), group.ModeratorIDs...), userID)
	group.PendingMemberIDs = utils.RemoveID(append([]string(nil), group.PendingMemberIDs...), userID)
	return group, true
}

// CreatePost stores a new post inside a group. Poll options get IDs and
// empty vote lists.
func (gs *GroupService) CreatePost(ctx context.Context, post models.GroupPost) (*models.GroupPost, error) {
	if post.GroupID == "" || post.AuthorID == "" {
		return nil, fmt.Errorf("post requires group and author: %w", models.ErrInvalidState)
	}
	if post.ID == "" {
		post.ID = uuid.NewString()
	}
	if post.CreatedAt == "" {
		post.CreatedAt = time.Now().UTC().Format(time.RFC3339)
	}
	if post.LikedByIDs == nil {
		post.LikedByIDs = []string{}
	}
	if post.CommentIDs == nil {
		post.CommentIDs = []string{}
	}
	for i := range post.PollOptions {
		if post.PollOptions[i].ID == "" {
			post.PollOptions[i].ID = uuid.NewString()
		}
		if post.PollOptions[i].VotedByIDs == nil {
			post.PollOptions[i].VotedByIDs = []string{}
		}
	}

	if err := gs.Dynamo.PutItem(ctx, models.GroupPostsTable, post); err != nil {
		return nil, fmt.Errorf("failed to create post: %w", err)
	}
	return &post, nil
}

// ListGroupPosts returns the posts of a group, newest first.
func (gs *GroupService) ListGroupPosts(ctx context.Context, groupID string, limit int32) ([]models.GroupPost, error) {
	filter := "groupId = :g"
	values := map[string]types.AttributeValue{
		":g": &types.AttributeValueMemberS{Value: groupID},
	}

	items, err := gs.Dynamo.ScanItems(ctx, models.GroupPostsTable, filter, values, nil, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list posts for group %s: %w", groupID, err)
	}

	var posts []models.GroupPost
	if err := attributevalue.UnmarshalListOfMaps(items, &posts); err != nil {
		return nil, fmt.Errorf("failed to unmarshal posts: %w", err)
	}
	sort.SliceStable(posts, func(i, j int) bool {
		return posts[i].CreatedAt > posts[j].CreatedAt
	})
	return posts, nil
}

// ToggleLike flips userID's membership in the post's liked set.
func (gs *GroupService) ToggleLike(ctx context.Context, postID, userID string) (*models.GroupPost, error) {
	return gs.transactPost(ctx, postID, func(post models.GroupPost) (models.GroupPost, bool, error) {
		return ApplyToggleLike(post, userID), true, nil
	})
}

// VoteOnPoll records userID's vote for optionID, clearing any previous vote
// so a user holds at most one vote across all options. Fails with
// ErrInvalidState if the post carries no poll or the option is unknown.
func (gs *GroupService) VoteOnPoll(ctx context.Context, postID, optionID, userID string) (*models.GroupPost, error) {
	return gs.transactPost(ctx, postID, func(post models.GroupPost) (models.GroupPost, bool, error) {
		return ApplyVote(post, optionID, userID)
	})
}

func (gs *GroupService) transactPost(ctx context.Context, postID string, transition func(models.GroupPost) (models.GroupPost, bool, error)) (*models.GroupPost, error) {
	result, err := gs.Dynamo.TransactUpdateItem(ctx, models.GroupPostsTable, BuildStringKey("postId", postID),
		func(item map[string]types.AttributeValue) (interface{}, error) {
			var post models.GroupPost
			if err := attributevalue.UnmarshalMap(item, &post); err != nil {
				return nil, fmt.Errorf("post %s: %w: %v", postID, models.ErrDecodeFailure, err)
			}
			next, changed, err := transition(post)
			if err != nil {
				return nil, err
			}
			if !changed {
				return nil, nil
			}
			return next, nil
		})
	if err != nil {
		return nil, err
	}

	var post models.GroupPost
	if err := attributevalue.UnmarshalMap(result, &post); err != nil {
		return nil, fmt.Errorf("post %s: %w: %v", postID, models.ErrDecodeFailure, err)
	}
	return &post, nil
}

// ApplyToggleLike is the pure like-toggle transition.
func ApplyToggleLike(post models.GroupPost, userID string) models.GroupPost {
	liked := append([]string(nil), post.LikedByIDs...)
	if utils.ContainsID(liked, userID) {
		post.LikedByIDs = utils.RemoveID(liked, userID)
	} else {
		post.LikedByIDs = append(liked, userID)
	}
	return post
}

// ApplyVote is the pure poll-vote transition.
func ApplyVote(post models.GroupPost, optionID, userID string) (models.GroupPost, bool, error) {
	if len(post.PollOptions) == 0 {
		return post, false, fmt.Errorf("post %s is not a poll: %w", post.ID, models.ErrInvalidState)
	}

	target := -1
	options := make([]models.PollOption, len(post.PollOptions))
	for i, option := range post.PollOptions {
		options[i] = option
		options[i].VotedByIDs = utils.RemoveID(append([]string(nil), option.VotedByIDs...), userID)
		if option.ID == optionID {
			target = i
		}
	}
	if target < 0 {
		return post, false, fmt.Errorf("poll option %s not found on post %s: %w", optionID, post.ID, models.ErrInvalidState)
	}

	options[target].VotedByIDs = append(options[target].VotedByIDs, userID)
	post.PollOptions = options
	return post, true, nil
}
