package models

// Friendship is a conceptually symmetric relation stored as a single record:
// UserID sent the request, FriendID received it.
type Friendship struct {
	ID        string `dynamodbav:"friendshipId" json:"friendshipId"`
	UserID    string `dynamodbav:"userId" json:"userId"`
	FriendID  string `dynamodbav:"friendId" json:"friendId"`
	Status    string `dynamodbav:"status" json:"status"`
	CreatedAt string `dynamodbav:"createdAt" json:"createdAt"`
}

// Involves reports whether userID is either side of the relation.
func (f *Friendship) Involves(userID string) bool {
	return f.UserID == userID || f.FriendID == userID
}

// Counterpart returns the other side of the relation, or "" if userID is not
// involved at all.
func (f *Friendship) Counterpart(userID string) string {
	switch userID {
	case f.UserID:
		return f.FriendID
	case f.FriendID:
		return f.UserID
	}
	return ""
}
