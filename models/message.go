package models

// Message is a chat message inside a conversation between two friends.
type Message struct {
	MessageID      string `dynamodbav:"messageId" json:"messageId"`
	ConversationID string `dynamodbav:"conversationId" json:"conversationId"`
	SenderID       string `dynamodbav:"senderId" json:"senderId"`
	Content        string `dynamodbav:"content" json:"content"`
	CreatedAt      string `dynamodbav:"createdAt" json:"createdAt"`
	IsUnread       bool   `dynamodbav:"isUnread" json:"isUnread"`
}
