package services

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"playdates_server/models"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/google/uuid"
)

// ChatService handles direct messages between two users. Conversation IDs
// are derived from the sorted pair of participant IDs so both sides land in
// the same thread.
type ChatService struct {
	Dynamo *DynamoService
	Notify Notifier
}

// NewChatService creates a ChatService.
func NewChatService(dynamo *DynamoService, notify Notifier) *ChatService {
	return &ChatService{Dynamo: dynamo, Notify: notify}
}

// ConversationID returns the canonical thread ID for a pair of users.
func ConversationID(userA, userB string) string {
	if userA > userB {
		userA, userB = userB, userA
	}
	return userA + "#" + userB
}

// SendMessage stores a message and pushes it to the recipient's socket room.
func (cs *ChatService) SendMessage(ctx context.Context, senderID, recipientID, content string) (*models.Message, error) {
	if senderID == "" || recipientID == "" {
		return nil, fmt.Errorf("message requires sender and recipient: %w", models.ErrInvalidState)
	}
	if strings.TrimSpace(content) == "" {
		return nil, fmt.Errorf("message content is empty: %w", models.ErrInvalidState)
	}

	message := models.Message{
		MessageID:      uuid.NewString(),
		ConversationID: ConversationID(senderID, recipientID),
		SenderID:       senderID,
		Content:        content,
		CreatedAt:      time.Now().UTC().Format(time.RFC3339),
		IsUnread:       true,
	}

	if err := cs.Dynamo.PutItem(ctx, models.MessagesTable, message); err != nil {
		return nil, fmt.Errorf("failed to send message: %w", err)
	}

	if cs.Notify != nil {
		cs.Notify.NotifyUser(recipientID, "newMessage", message)
	}
	return &message, nil
}

// ListMessages returns a conversation's messages, newest first.
func (cs *ChatService) ListMessages(ctx context.Context, userA, userB string, limit int32) ([]models.Message, error) {
	filter := "conversationId = :c"
	values := map[string]types.AttributeValue{
		":c": &types.AttributeValueMemberS{Value: ConversationID(userA, userB)},
	}

	items, err := cs.Dynamo.ScanItems(ctx, models.MessagesTable, filter, values, nil, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list messages: %w", err)
	}

	var messages []models.Message
	if err := attributevalue.UnmarshalListOfMaps(items, &messages); err != nil {
		return nil, fmt.Errorf("failed to unmarshal messages: %w", err)
	}
	sort.SliceStable(messages, func(i, j int) bool {
		return messages[i].CreatedAt > messages[j].CreatedAt
	})
	return messages, nil
}

// MarkMessagesRead clears the unread flag on every message the other side
// sent to readerID in this conversation.
func (cs *ChatService) MarkMessagesRead(ctx context.Context, readerID, otherID string) error {
	filter := "conversationId = :c AND senderId = :other AND isUnread = :unread"
	values := map[string]types.AttributeValue{
		":c":      &types.AttributeValueMemberS{Value: ConversationID(readerID, otherID)},
		":other":  &types.AttributeValueMemberS{Value: otherID},
		":unread": &types.AttributeValueMemberBOOL{Value: true},
	}

	items, err := cs.Dynamo.ScanItems(ctx, models.MessagesTable, filter, values, nil, 0)
	if err != nil {
		return fmt.Errorf("failed to find unread messages: %w", err)
	}

	updateExpression := "SET isUnread = :read"
	updateValues := map[string]types.AttributeValue{
		":read": &types.AttributeValueMemberBOOL{Value: false},
	}
	for _, item := range items {
		var message models.Message
		if err := attributevalue.UnmarshalMap(item, &message); err != nil {
			continue
		}
		if _, err := cs.Dynamo.UpdateItem(ctx, models.MessagesTable, updateExpression,
			BuildStringKey("messageId", message.MessageID), updateValues, nil); err != nil {
			return fmt.Errorf("failed to mark message %s read: %w", message.MessageID, err)
		}
	}
	return nil
}

// UnreadCount returns how many unread messages readerID has across all
// conversations.
func (cs *ChatService) UnreadCount(ctx context.Context, readerID string) (int, error) {
	filter := "isUnread = :unread AND senderId <> :reader AND contains(conversationId, :reader)"
	values := map[string]types.AttributeValue{
		":unread": &types.AttributeValueMemberBOOL{Value: true},
		":reader": &types.AttributeValueMemberS{Value: readerID},
	}

	items, err := cs.Dynamo.ScanItems(ctx, models.MessagesTable, filter, values, nil, 0)
	if err != nil {
		return 0, fmt.Errorf("failed to count unread messages: %w", err)
	}
	return len(items), nil
}
