package models

import (
	"fmt"
	"log"
	"time"

	"playdates_server/utils"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// Tolerant decoders: convert loosely-typed attribute maps into domain
// entities. A record fails only when its identity is unrecoverable or the
// payload is not a map at all; every other shape mismatch coerces or falls
// back to a documented default. Batch decoders drop bad records and keep
// going; a single malformed document must never abort a list render.

// DecodeActivity decodes a feed activity record.
func DecodeActivity(item map[string]types.AttributeValue) (*Activity, error) {
	if item == nil {
		return nil, fmt.Errorf("%w: activity payload is not a map", ErrDecodeFailure)
	}
	id := utils.ExtractString(item, "activityId")
	if id == "" {
		return nil, fmt.Errorf("%w: activity missing activityId", ErrDecodeFailure)
	}
	actorID := utils.ExtractString(item, "actorId")
	if actorID == "" {
		return nil, fmt.Errorf("%w: activity %s missing actorId", ErrDecodeFailure, id)
	}

	return &Activity{
		ID:              id,
		Type:            utils.ExtractStringOr(item, "type", DefaultActivityType),
		Title:           utils.ExtractStringOr(item, "title", DefaultDisplayName),
		Description:     utils.ExtractString(item, "description"),
		Timestamp:       utils.ExtractTime(item, "createdAt", time.Now()),
		ActorID:         actorID,
		ActorName:       utils.ExtractStringOr(item, "actorName", DefaultDisplayName),
		ActorAvatarURL:  utils.ExtractString(item, "actorAvatarUrl"),
		RelatedEntityID: utils.ExtractString(item, "relatedEntityId"),
		ContentImageURL: utils.ExtractString(item, "contentImageUrl"),
		LikeCount:       utils.ExtractInt(item, "likeCount"),
		CommentCount:    utils.ExtractInt(item, "commentCount"),
	}, nil
}

// DecodeActivities decodes a batch, dropping records that fail and
// reporting how many were dropped.
func DecodeActivities(items []map[string]types.AttributeValue) ([]Activity, int) {
	activities := make([]Activity, 0, len(items))
	dropped := 0
	for _, item := range items {
		activity, err := DecodeActivity(item)
		if err != nil {
			log.Printf("Dropping undecodable activity: %v", err)
			dropped++
			continue
		}
		activities = append(activities, *activity)
	}
	return activities, dropped
}

// DecodePlaydate decodes a playdate record.
func DecodePlaydate(item map[string]types.AttributeValue) (*Playdate, error) {
	if item == nil {
		return nil, fmt.Errorf("%w: playdate payload is not a map", ErrDecodeFailure)
	}
	id := utils.ExtractString(item, "playdateId")
	if id == "" {
		return nil, fmt.Errorf("%w: playdate missing playdateId", ErrDecodeFailure)
	}

	return &Playdate{
		ID:           id,
		HostID:       utils.ExtractString(item, "hostId"),
		Title:        utils.ExtractStringOr(item, "title", DefaultDisplayName),
		Description:  utils.ExtractString(item, "description"),
		ActivityType: utils.ExtractString(item, "activityType"),
		Location:     decodeLocation(utils.ExtractMap(item, "location")),
		Address:      utils.ExtractString(item, "address"),
		StartTime:    utils.ExtractString(item, "startTime"),
		EndTime:      utils.ExtractString(item, "endTime"),
		MinAge:       utils.ExtractInt(item, "minAge"),
		MaxAge:       utils.ExtractInt(item, "maxAge"),
		AttendeeIDs:  utils.ExtractRequiredStringList(item, "attendeeIds"),
		IsPublic:     utils.ExtractBool(item, "isPublic"),
		CreatedAt:    utils.ExtractString(item, "createdAt"),
	}, nil
}

// DecodePlaydates decodes a batch of playdates, dropping bad records.
func DecodePlaydates(items []map[string]types.AttributeValue) ([]Playdate, int) {
	playdates := make([]Playdate, 0, len(items))
	dropped := 0
	for _, item := range items {
		playdate, err := DecodePlaydate(item)
		if err != nil {
			log.Printf("Dropping undecodable playdate: %v", err)
			dropped++
			continue
		}
		playdates = append(playdates, *playdate)
	}
	return playdates, dropped
}

// decodeLocation decodes an embedded location. The location field itself is
// optional, so a missing map yields nil; a present-but-broken map yields a
// placeholder rather than failing the parent record.
func decodeLocation(m map[string]types.AttributeValue) *PlaydateLocation {
	if m == nil {
		return nil
	}
	name := utils.ExtractStringOr(m, "name", DefaultLocationName)
	return &PlaydateLocation{
		Name:      name,
		Latitude:  utils.ExtractFloat(m, "latitude"),
		Longitude: utils.ExtractFloat(m, "longitude"),
	}
}

// DecodeCommunityEvent decodes a community event record.
func DecodeCommunityEvent(item map[string]types.AttributeValue) (*CommunityEvent, error) {
	if item == nil {
		return nil, fmt.Errorf("%w: event payload is not a map", ErrDecodeFailure)
	}
	id := utils.ExtractString(item, "eventId")
	if id == "" {
		return nil, fmt.Errorf("%w: event missing eventId", ErrDecodeFailure)
	}

	return &CommunityEvent{
		ID:          id,
		OrganizerID: utils.ExtractString(item, "organizerId"),
		Title:       utils.ExtractStringOr(item, "title", DefaultDisplayName),
		Description: utils.ExtractString(item, "description"),
		StartDate:   utils.ExtractString(item, "startDate"),
		EndDate:     utils.ExtractString(item, "endDate"),
		IsPublic:    utils.ExtractBool(item, "isPublic"),
		Capacity:    utils.ExtractInt(item, "capacity"),
		AttendeeIDs: utils.ExtractRequiredStringList(item, "attendeeIds"),
		WaitlistIDs: utils.ExtractRequiredStringList(item, "waitlistIds"),
		Category:    utils.ExtractString(item, "category"),
		AgeMin:      utils.ExtractInt(item, "ageMin"),
		AgeMax:      utils.ExtractInt(item, "ageMax"),
		IsFree:      utils.ExtractBool(item, "isFree"),
		CreatedAt:   utils.ExtractString(item, "createdAt"),
	}, nil
}

// DecodeCommunityEvents decodes a batch of events, dropping bad records.
func DecodeCommunityEvents(items []map[string]types.AttributeValue) ([]CommunityEvent, int) {
	events := make([]CommunityEvent, 0, len(items))
	dropped := 0
	for _, item := range items {
		event, err := DecodeCommunityEvent(item)
		if err != nil {
			log.Printf("Dropping undecodable event: %v", err)
			dropped++
			continue
		}
		events = append(events, *event)
	}
	return events, dropped
}

// DecodeUserProfile decodes a user profile record.
func DecodeUserProfile(item map[string]types.AttributeValue) (*UserProfile, error) {
	if item == nil {
		return nil, fmt.Errorf("%w: profile payload is not a map", ErrDecodeFailure)
	}
	id := utils.ExtractString(item, "userId")
	if id == "" {
		return nil, fmt.Errorf("%w: profile missing userId", ErrDecodeFailure)
	}

	avatar := utils.ExtractString(item, "avatarUrl")
	if avatar == "" {
		avatar = utils.ExtractFirstPhoto(item, "photos")
	}

	return &UserProfile{
		UserID:                  id,
		Name:                    utils.ExtractStringOr(item, "name", DefaultDisplayName),
		NameLowercase:           utils.ExtractString(item, "nameLowercase"),
		EmailID:                 utils.ExtractString(item, "emailId"),
		Bio:                     utils.ExtractString(item, "bio"),
		AvatarURL:               avatar,
		Photos:                  utils.ExtractStringList(item, "photos"),
		Latitude:                utils.ExtractFloat(item, "latitude"),
		Longitude:               utils.ExtractFloat(item, "longitude"),
		ChildIDs:                utils.ExtractStringList(item, "childIds"),
		FriendIDs:               utils.ExtractStringList(item, "friendIds"),
		PendingFriendRequestIDs: utils.ExtractStringList(item, "pendingFriendRequestIds"),
		FavoriteActivityIDs:     utils.ExtractStringList(item, "favoriteActivityIds"),
		WishlistActivityIDs:     utils.ExtractStringList(item, "wishlistActivityIds"),
	}, nil
}
