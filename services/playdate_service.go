package services

import (
	"context"
	"fmt"
	"log"
	"sort"
	"time"

	"playdates_server/models"
	"playdates_server/utils"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/google/uuid"
)

// PlaydateService manages playdates. Creating one also posts a feed
// activity so friends see it.
type PlaydateService struct {
	Dynamo *DynamoService
	Feed   *FeedService
}

// NewPlaydateService creates a PlaydateService.
func NewPlaydateService(dynamo *DynamoService, feed *FeedService) *PlaydateService {
	return &PlaydateService{Dynamo: dynamo, Feed: feed}
}

// CreatePlaydate stores a new playdate. The host always attends their own
// playdate.
func (ps *PlaydateService) CreatePlaydate(ctx context.Context, playdate models.Playdate, hostName string) (*models.Playdate, error) {
	if playdate.HostID == "" {
		return nil, fmt.Errorf("playdate requires a host: %w", models.ErrInvalidState)
	}
	if playdate.ID == "" {
		playdate.ID = uuid.NewString()
	}
	if playdate.CreatedAt == "" {
		playdate.CreatedAt = time.Now().UTC().Format(time.RFC3339)
	}
	playdate.AttendeeIDs = utils.AppendUnique(playdate.AttendeeIDs, playdate.HostID)

	if err := ps.Dynamo.PutItem(ctx, models.PlaydatesTable, playdate); err != nil {
		return nil, fmt.Errorf("failed to create playdate: %w", err)
	}

	if ps.Feed != nil {
		activity := models.Activity{
			Type:            models.ActivityTypeNewPlaydate,
			Title:           playdate.Title,
			Description:     playdate.Description,
			ActorID:         playdate.HostID,
			ActorName:       hostName,
			RelatedEntityID: playdate.ID,
		}
		if err := ps.Feed.PostActivity(ctx, activity); err != nil {
			// The playdate itself is saved; a missing feed entry is not fatal.
			log.Printf("Failed to post playdate activity: %v", err)
		}
	}

	return &playdate, nil
}

// GetPlaydate fetches a single playdate, tolerantly decoded.
func (ps *PlaydateService) GetPlaydate(ctx context.Context, playdateID string) (*models.Playdate, error) {
	item, err := ps.Dynamo.GetItem(ctx, models.PlaydatesTable, BuildStringKey("playdateId", playdateID))
	if err != nil {
		return nil, err
	}
	return models.DecodePlaydate(item)
}

// UpdatePlaydate lets the host edit details. Attendee membership is not
// editable here; Join/Leave own that.
func (ps *PlaydateService) UpdatePlaydate(ctx context.Context, playdateID, hostID string, updates map[string]string) (*models.Playdate, error) {
	current, err := ps.GetPlaydate(ctx, playdateID)
	if err != nil {
		return nil, err
	}
	if current.HostID != hostID {
		return nil, fmt.Errorf("only the host may edit a playdate: %w", models.ErrInvalidState)
	}

	allowed := map[string]bool{
		"title": true, "description": true, "activityType": true,
		"address": true, "startTime": true, "endTime": true,
	}
	updateExpression := "SET"
	expressionAttributeValues := make(map[string]types.AttributeValue)
	expressionAttributeNames := make(map[string]string)
	for k, v := range updates {
		if !allowed[k] {
			continue
		}
		placeholder := ":" + k
		attributeName := "#" + k
		updateExpression += " " + attributeName + " = " + placeholder + ","
		expressionAttributeValues[placeholder] = &types.AttributeValueMemberS{Value: v}
		expressionAttributeNames[attributeName] = k
	}
	if len(expressionAttributeValues) == 0 {
		return current, nil
	}
	updateExpression = updateExpression[:len(updateExpression)-1]

	item, err := ps.Dynamo.UpdateItem(ctx, models.PlaydatesTable, updateExpression,
		BuildStringKey("playdateId", playdateID), expressionAttributeValues, expressionAttributeNames)
	if err != nil {
		return nil, err
	}
	return models.DecodePlaydate(item)
}

// JoinPlaydate adds userID to the attendee set.
func (ps *PlaydateService) JoinPlaydate(ctx context.Context, playdateID, userID string) (*models.Playdate, error) {
	return ps.transactPlaydate(ctx, playdateID, func(playdate models.Playdate) (models.Playdate, bool) {
		if utils.ContainsID(playdate.AttendeeIDs, userID) {
			return playdate, false
		}
		playdate.AttendeeIDs = append(append([]string(nil), playdate.AttendeeIDs...), userID)
		return playdate, true
	})
}

// LeavePlaydate removes userID from the attendee set. The host cannot
// leave their own playdate; hostID stays in attendeeIDs for the lifetime
// of the record.
func (ps *PlaydateService) LeavePlaydate(ctx context.Context, playdateID, userID string) (*models.Playdate, error) {
	return ps.transactPlaydate(ctx, playdateID, func(playdate models.Playdate) (models.Playdate, bool) {
		if playdate.HostID == userID {
			return playdate, false
		}
		if !utils.ContainsID(playdate.AttendeeIDs, userID) {
			return playdate, false
		}
		playdate.AttendeeIDs = utils.RemoveID(append([]string(nil), playdate.AttendeeIDs...), userID)
		return playdate, true
	})
}

func (ps *PlaydateService) transactPlaydate(ctx context.Context, playdateID string, transition func(models.Playdate) (models.Playdate, bool)) (*models.Playdate, error) {
	result, err := ps.Dynamo.TransactUpdateItem(ctx, models.PlaydatesTable, BuildStringKey("playdateId", playdateID),
		func(item map[string]types.AttributeValue) (interface{}, error) {
			var playdate models.Playdate
			if err := attributevalue.UnmarshalMap(item, &playdate); err != nil {
				return nil, fmt.Errorf("playdate %s: %w: %v", playdateID, models.ErrDecodeFailure, err)
			}
			next, changed := transition(playdate)
			if !changed {
				return nil, nil
			}
			return next, nil
		})
	if err != nil {
		return nil, err
	}

	var playdate models.Playdate
	if err := attributevalue.UnmarshalMap(result, &playdate); err != nil {
		return nil, fmt.Errorf("playdate %s: %w: %v", playdateID, models.ErrDecodeFailure, err)
	}
	return &playdate, nil
}

// ListPublicPlaydates returns public playdates, soonest start first.
func (ps *PlaydateService) ListPublicPlaydates(ctx context.Context, limit int32) ([]models.Playdate, error) {
	filter := "isPublic = :pub"
	values := map[string]types.AttributeValue{
		":pub": &types.AttributeValueMemberBOOL{Value: true},
	}

	items, err := ps.Dynamo.ScanItems(ctx, models.PlaydatesTable, filter, values, nil, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list playdates: %w", err)
	}

	playdates, _ := models.DecodePlaydates(items)
	sort.SliceStable(playdates, func(i, j int) bool {
		return playdates[i].StartTime < playdates[j].StartTime
	})
	return playdates, nil
}

// ListNearbyPlaydates is the documented fallback when the places API is
// unavailable: a bounding-box pass over stored public playdates.
func (ps *PlaydateService) ListNearbyPlaydates(ctx context.Context, lat, lng, radiusKm float64, limit int) ([]models.Playdate, error) {
	playdates, err := ps.ListPublicPlaydates(ctx, 0)
	if err != nil {
		return nil, err
	}

	var nearby []models.Playdate
	for _, playdate := range playdates {
		if playdate.Location == nil {
			continue
		}
		distance := utils.CalculateDistance(lat, lng, playdate.Location.Latitude, playdate.Location.Longitude)
		if distance <= radiusKm {
			nearby = append(nearby, playdate)
		}
		if limit > 0 && len(nearby) >= limit {
			break
		}
	}
	return nearby, nil
}
