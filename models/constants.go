package models

// DynamoDB table names
const (
	UserProfilesTable    = "UserProfiles"
	ActivitiesTable      = "Activities"
	PlaydatesTable       = "Playdates"
	CommunityEventsTable = "CommunityEvents"
	GroupsTable          = "Groups"
	GroupPostsTable      = "GroupPosts"
	FriendshipsTable     = "Friendships"
	MessagesTable        = "Messages"
)

// Activity types
const (
	ActivityTypeNewPlaydate = "newPlaydate"
	ActivityTypeNewFriend   = "newFriend"
	ActivityTypeComment     = "comment"
	ActivityTypeCheckIn     = "checkIn"
	ActivityTypeGroupPost   = "groupPost"
	ActivityTypeNewEvent    = "newEvent"
)

// Friendship statuses
const (
	StatusPending  = "pending"
	StatusAccepted = "accepted"
	StatusDeclined = "declined"
	StatusBlocked  = "blocked"
)

// Group privacy levels
const (
	GroupPrivacyPublic     = "public"
	GroupPrivacyPrivate    = "private"
	GroupPrivacyInviteOnly = "invite-only"
)

// Defaults substituted by the tolerant decoder for missing display fields.
const (
	DefaultDisplayName  = "Unknown"
	DefaultActivityType = "unknown"
	DefaultLocationName = "Unknown Location"
)
