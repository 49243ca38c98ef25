package models

// PlaydateLocation is the embedded place a playdate happens at.
type PlaydateLocation struct {
	Name      string  `dynamodbav:"name" json:"name"`
	Latitude  float64 `dynamodbav:"latitude" json:"latitude"`
	Longitude float64 `dynamodbav:"longitude" json:"longitude"`
}

// Playdate is an outing organized by a host. The host is always present in
// AttendeeIDs; AttendeeIDs is an ordered set (no duplicates).
type Playdate struct {
	ID           string            `dynamodbav:"playdateId" json:"playdateId"`
	HostID       string            `dynamodbav:"hostId" json:"hostId"`
	Title        string            `dynamodbav:"title" json:"title"`
	Description  string            `dynamodbav:"description,omitempty" json:"description,omitempty"`
	ActivityType string            `dynamodbav:"activityType,omitempty" json:"activityType,omitempty"`
	Location     *PlaydateLocation `dynamodbav:"location,omitempty" json:"location,omitempty"`
	Address      string            `dynamodbav:"address,omitempty" json:"address,omitempty"`
	StartTime    string            `dynamodbav:"startTime" json:"startTime"`
	EndTime      string            `dynamodbav:"endTime" json:"endTime"`
	MinAge       int               `dynamodbav:"minAge,omitempty" json:"minAge,omitempty"`
	MaxAge       int               `dynamodbav:"maxAge,omitempty" json:"maxAge,omitempty"`
	AttendeeIDs  []string          `dynamodbav:"attendeeIds" json:"attendeeIds"`
	IsPublic     bool              `dynamodbav:"isPublic" json:"isPublic"`
	CreatedAt    string            `dynamodbav:"createdAt" json:"createdAt"`
}
