package models

// CommunityEvent is an organizer-run event with bounded capacity. Overflow
// RSVPs land on WaitlistIDs in arrival order; when a seat frees up the head
// of the waitlist is promoted.
type CommunityEvent struct {
	ID          string   `dynamodbav:"eventId" json:"eventId"`
	OrganizerID string   `dynamodbav:"organizerId" json:"organizerId"`
	Title       string   `dynamodbav:"title" json:"title"`
	Description string   `dynamodbav:"description,omitempty" json:"description,omitempty"`
	StartDate   string   `dynamodbav:"startDate" json:"startDate"`
	EndDate     string   `dynamodbav:"endDate" json:"endDate"`
	IsPublic    bool     `dynamodbav:"isPublic" json:"isPublic"`
	Capacity    int      `dynamodbav:"capacity" json:"capacity"`
	AttendeeIDs []string `dynamodbav:"attendeeIds" json:"attendeeIds"`
	WaitlistIDs []string `dynamodbav:"waitlistIds" json:"waitlistIds"`
	Category    string   `dynamodbav:"category,omitempty" json:"category,omitempty"`
	AgeMin      int      `dynamodbav:"ageMin,omitempty" json:"ageMin,omitempty"`
	AgeMax      int      `dynamodbav:"ageMax,omitempty" json:"ageMax,omitempty"`
	IsFree      bool     `dynamodbav:"isFree" json:"isFree"`
	CreatedAt   string   `dynamodbav:"createdAt" json:"createdAt"`
}

// IsAttendee reports whether userID holds a confirmed seat.
func (e *CommunityEvent) IsAttendee(userID string) bool {
	for _, id := range e.AttendeeIDs {
		if id == userID {
			return true
		}
	}
	return false
}

// IsFull reports whether all seats are taken. A capacity of zero or below
// means unlimited.
func (e *CommunityEvent) IsFull() bool {
	return e.Capacity > 0 && len(e.AttendeeIDs) >= e.Capacity
}
