package services

import (
	"context"
	"fmt"
	"time"

	"playdates_server/models"
	"playdates_server/utils"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/google/uuid"
)

// EventService manages community events. RSVP state changes are pure
// transitions applied under the store's read-modify-write transaction, so
// concurrent callers on the same event serialize through the version check.
type EventService struct {
	Dynamo *DynamoService
}

// NewEventService creates an EventService.
func NewEventService(dynamo *DynamoService) *EventService {
	return &EventService{Dynamo: dynamo}
}

// CreateEvent stores a new community event.
func (es *EventService) CreateEvent(ctx context.Context, event models.CommunityEvent) (*models.CommunityEvent, error) {
	if event.OrganizerID == "" {
		return nil, fmt.Errorf("event requires an organizer: %w", models.ErrInvalidState)
	}
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.CreatedAt == "" {
		event.CreatedAt = time.Now().UTC().Format(time.RFC3339)
	}
	if event.AttendeeIDs == nil {
		event.AttendeeIDs = []string{}
	}
	if event.WaitlistIDs == nil {
		event.WaitlistIDs = []string{}
	}

	if err := es.Dynamo.PutItem(ctx, models.CommunityEventsTable, event); err != nil {
		return nil, fmt.Errorf("failed to create event: %w", err)
	}
	return &event, nil
}

// GetEvent fetches a single event.
func (es *EventService) GetEvent(ctx context.Context, eventID string) (*models.CommunityEvent, error) {
	item, err := es.Dynamo.GetItem(ctx, models.CommunityEventsTable, BuildStringKey("eventId", eventID))
	if err != nil {
		return nil, err
	}
	return models.DecodeCommunityEvent(item)
}

// ListUpcomingEvents returns public events whose end date has not passed,
// optionally filtered by category. Bad records are dropped, not fatal.
func (es *EventService) ListUpcomingEvents(ctx context.Context, category string, limit int32) ([]models.CommunityEvent, error) {
	now := time.Now().UTC().Format(time.RFC3339)
	filter := "isPublic = :pub AND endDate >= :now"
	values := map[string]types.AttributeValue{
		":pub": &types.AttributeValueMemberBOOL{Value: true},
		":now": &types.AttributeValueMemberS{Value: now},
	}
	if category != "" {
		filter += " AND category = :cat"
		values[":cat"] = &types.AttributeValueMemberS{Value: category}
	}

	items, err := es.Dynamo.ScanItems(ctx, models.CommunityEventsTable, filter, values, nil, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list events: %w", err)
	}

	events, _ := models.DecodeCommunityEvents(items)
	return events, nil
}

// RSVP adds userID to the event, spilling onto the waitlist when the event
// is at capacity. Idempotent: repeating the call leaves the state unchanged.
func (es *EventService) RSVP(ctx context.Context, eventID, userID string) (*models.CommunityEvent, error) {
	return es.transactEvent(ctx, eventID, func(event models.CommunityEvent) (models.CommunityEvent, bool) {
		return ApplyRSVP(event, userID)
	})
}

// CancelRSVP removes userID from both the attendee and waitlist sets. If an
// attendee seat was freed, the earliest-added waitlisted user is promoted.
func (es *EventService) CancelRSVP(ctx context.Context, eventID, userID string) (*models.CommunityEvent, error) {
	return es.transactEvent(ctx, eventID, func(event models.CommunityEvent) (models.CommunityEvent, bool) {
		return ApplyCancelRSVP(event, userID)
	})
}

// transactEvent runs a pure transition under the store transaction.
// Decoding inside the transaction is strict: a coerced read here could
// corrupt the transition's preconditions.
func (es *EventService) transactEvent(ctx context.Context, eventID string, transition func(models.CommunityEvent) (models.CommunityEvent, bool)) (*models.CommunityEvent, error) {
	result, err := es.Dynamo.TransactUpdateItem(ctx, models.CommunityEventsTable, BuildStringKey("eventId", eventID),
		func(item map[string]types.AttributeValue) (interface{}, error) {
			var event models.CommunityEvent
			if err := attributevalue.UnmarshalMap(item, &event); err != nil {
				return nil, fmt.Errorf("event %s: %w: %v", eventID, models.ErrDecodeFailure, err)
			}
			next, changed := transition(event)
			if !changed {
				return nil, nil
			}
			return next, nil
		})
	if err != nil {
		return nil, err
	}

	var event models.CommunityEvent
	if err := attributevalue.UnmarshalMap(result, &event); err != nil {
		return nil, fmt.Errorf("event %s: %w: %v", eventID, models.ErrDecodeFailure, err)
	}
	return &event, nil
}

// ApplyRSVP is the pure RSVP transition. Attendee already: no-op. Event
// full: append to the waitlist (idempotent). Otherwise take a seat and drop
// any stale waitlist entry.
func ApplyRSVP(event models.CommunityEvent, userID string) (models.CommunityEvent, bool) {
	if event.IsAttendee(userID) {
		return event, false
	}

	attendees := append([]string(nil), event.AttendeeIDs...)
	waitlist := append([]string(nil), event.WaitlistIDs...)

	if event.IsFull() {
		if utils.ContainsID(waitlist, userID) {
			return event, false
		}
		event.WaitlistIDs = append(waitlist, userID)
		return event, true
	}

	event.AttendeeIDs = utils.AppendUnique(attendees, userID)
	event.WaitlistIDs = utils.RemoveID(waitlist, userID)
	return event, true
}

// ApplyCancelRSVP is the pure cancellation transition. When a confirmed
// attendee leaves and a seat is open, the head of the waitlist (earliest
// added, FIFO) is promoted.
func ApplyCancelRSVP(event models.CommunityEvent, userID string) (models.CommunityEvent, bool) {
	wasAttendee := event.IsAttendee(userID)
	wasWaitlisted := utils.ContainsID(event.WaitlistIDs, userID)
	if !wasAttendee && !wasWaitlisted {
		return event, false
	}

	event.AttendeeIDs = utils.RemoveID(append([]string(nil), event.AttendeeIDs...), userID)
	event.WaitlistIDs = utils.RemoveID(append([]string(nil), event.WaitlistIDs...), userID)

	if wasAttendee && !event.IsFull() && len(event.WaitlistIDs) > 0 {
		promoted := event.WaitlistIDs[0]
		event.WaitlistIDs = event.WaitlistIDs[1:]
		event.AttendeeIDs = utils.AppendUnique(event.AttendeeIDs, promoted)
	}
	return event, true
}
