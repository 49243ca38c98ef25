package models

import "time"

// Activity is a single entry in the social feed, created when an actor does
// something their friends can see (new playdate, new friend, comment, ...).
// Immutable after creation except LikeCount/CommentCount.
type Activity struct {
	ID              string    `dynamodbav:"activityId" json:"activityId"`
	Type            string    `dynamodbav:"type" json:"type"`
	Title           string    `dynamodbav:"title" json:"title"`
	Description     string    `dynamodbav:"description,omitempty" json:"description,omitempty"`
	Timestamp       time.Time `dynamodbav:"-" json:"timestamp"`
	ActorID         string    `dynamodbav:"actorId" json:"actorId"`
	ActorName       string    `dynamodbav:"actorName" json:"actorName"`
	ActorAvatarURL  string    `dynamodbav:"actorAvatarUrl,omitempty" json:"actorAvatarUrl,omitempty"`
	RelatedEntityID string    `dynamodbav:"relatedEntityId,omitempty" json:"relatedEntityId,omitempty"`
	ContentImageURL string    `dynamodbav:"contentImageUrl,omitempty" json:"contentImageUrl,omitempty"`
	LikeCount       int       `dynamodbav:"likeCount" json:"likeCount"`
	CommentCount    int       `dynamodbav:"commentCount" json:"commentCount"`
}
