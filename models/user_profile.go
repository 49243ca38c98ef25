package models

import "strings"

// UserProfile defines the structure for user profiles. NameLowercase is a
// denormalized index field kept in sync with Name; the store has no
// full-text search, so prefix search runs against it.
type UserProfile struct {
	UserID                  string   `dynamodbav:"userId,omitempty" json:"userId"`
	Name                    string   `dynamodbav:"name,omitempty" json:"name"`
	NameLowercase           string   `dynamodbav:"nameLowercase,omitempty" json:"-"`
	EmailID                 string   `dynamodbav:"emailId,omitempty" json:"emailId"`
	Bio                     string   `dynamodbav:"bio,omitempty" json:"bio,omitempty"`
	AvatarURL               string   `dynamodbav:"avatarUrl,omitempty" json:"avatarUrl,omitempty"`
	Photos                  []string `dynamodbav:"photos,omitempty" json:"photos,omitempty"`
	Latitude                float64  `dynamodbav:"latitude,omitempty" json:"latitude,omitempty"`
	Longitude               float64  `dynamodbav:"longitude,omitempty" json:"longitude,omitempty"`
	ChildIDs                []string `dynamodbav:"childIds,omitempty" json:"childIds,omitempty"`
	FriendIDs               []string `dynamodbav:"friendIds,omitempty" json:"friendIds,omitempty"`
	PendingFriendRequestIDs []string `dynamodbav:"pendingFriendRequestIds,omitempty" json:"pendingFriendRequestIds,omitempty"`
	FavoriteActivityIDs     []string `dynamodbav:"favoriteActivityIds,omitempty" json:"favoriteActivityIds,omitempty"`
	WishlistActivityIDs     []string `dynamodbav:"wishlistActivityIds,omitempty" json:"wishlistActivityIds,omitempty"`
}

// Normalize recomputes derived fields. Must be called whenever Name changes.
func (p *UserProfile) Normalize() {
	p.NameLowercase = strings.ToLower(p.Name)
}
