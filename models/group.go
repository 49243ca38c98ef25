package models

// Group is a community group. Joining a private or invite-only group parks
// the user on PendingMemberIDs until an admin approves.
type Group struct {
	ID               string   `dynamodbav:"groupId" json:"groupId"`
	Name             string   `dynamodbav:"name" json:"name"`
	Description      string   `dynamodbav:"description,omitempty" json:"description,omitempty"`
	Privacy          string   `dynamodbav:"privacy" json:"privacy"`
	MemberIDs        []string `dynamodbav:"memberIds" json:"memberIds"`
	AdminIDs         []string `dynamodbav:"adminIds" json:"adminIds"`
	ModeratorIDs     []string `dynamodbav:"moderatorIds" json:"moderatorIds"`
	PendingMemberIDs []string `dynamodbav:"pendingMemberIds" json:"pendingMemberIds"`
	CreatedAt        string   `dynamodbav:"createdAt" json:"createdAt"`
}

// IsMember reports whether userID is a full member.
func (g *Group) IsMember(userID string) bool {
	for _, id := range g.MemberIDs {
		if id == userID {
			return true
		}
	}
	return false
}

// RequiresApproval reports whether joining goes through the pending list.
func (g *Group) RequiresApproval() bool {
	return g.Privacy == GroupPrivacyPrivate || g.Privacy == GroupPrivacyInviteOnly
}

// PollOption is one choice on a group post poll. A user's ID appears in at
// most one option's VotedByIDs across the whole poll.
type PollOption struct {
	ID         string   `dynamodbav:"optionId" json:"optionId"`
	Text       string   `dynamodbav:"text" json:"text"`
	VotedByIDs []string `dynamodbav:"votedByIds" json:"votedByIds"`
}

// GroupPost is a post inside a group, optionally carrying a poll.
type GroupPost struct {
	ID          string       `dynamodbav:"postId" json:"postId"`
	GroupID     string       `dynamodbav:"groupId" json:"groupId"`
	AuthorID    string       `dynamodbav:"authorId" json:"authorId"`
	Content     string       `dynamodbav:"content,omitempty" json:"content,omitempty"`
	ImageURL    string       `dynamodbav:"imageUrl,omitempty" json:"imageUrl,omitempty"`
	LikedByIDs  []string     `dynamodbav:"likedByIds" json:"likedByIds"`
	CommentIDs  []string     `dynamodbav:"commentIds" json:"commentIds"`
	PollOptions []PollOption `dynamodbav:"pollOptions,omitempty" json:"pollOptions,omitempty"`
	CreatedAt   string       `dynamodbav:"createdAt" json:"createdAt"`
}
