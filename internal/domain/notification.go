package domain

import "time"

// NotificationKind describes what happened in the referenced match.
type NotificationKind string

const (
	NotificationGoal     NotificationKind = "goal"
	NotificationStart    NotificationKind = "start"
	NotificationEnd      NotificationKind = "end"
	NotificationUpcoming NotificationKind = "upcoming"
)

func (k NotificationKind) IsValid() bool {
	switch k {
	case NotificationGoal, NotificationStart, NotificationEnd, NotificationUpcoming:
		return true
	}
	return false
}

// Notification is a per-user inbox entry. Only the Read flag is ever mutated.
type Notification struct {
	ID        string           `json:"id"`
	UserID    string           `json:"user_id"`
	MatchID   string           `json:"match_id"`
	Kind      NotificationKind `json:"type"`
	Read      bool             `json:"read"`
	CreatedAt time.Time        `json:"created_at"`
}
