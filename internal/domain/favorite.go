package domain

import (
	"strings"
	"time"
)

// Favorite is a user's declared interest in a team, keyed by free-text name.
// The same (user, team) pair may appear more than once.
type Favorite struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	TeamName  string    `json:"team_name"`
	CreatedAt time.Time `json:"created_at"`
}

// AddFavoriteRequest is the inbound payload for starring a team.
type AddFavoriteRequest struct {
	TeamName string `json:"team_name" validate:"required,max=100"`
}

// Normalize trims surrounding whitespace. Case is preserved because team
// names are matched exactly against the feed.
func (r *AddFavoriteRequest) Normalize() {
	r.TeamName = strings.TrimSpace(r.TeamName)
}
