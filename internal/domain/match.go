package domain

import "time"

// MatchStatus tracks where a fixture is in its lifecycle: upcoming -> live -> finished.
type MatchStatus string

const (
	MatchUpcoming MatchStatus = "upcoming"
	MatchLive     MatchStatus = "live"
	MatchFinished MatchStatus = "finished"
)

func (s MatchStatus) IsValid() bool {
	switch s {
	case MatchUpcoming, MatchLive, MatchFinished:
		return true
	}
	return false
}

// Odds is the decimal home/draw/away price triple. Each value is positive.
type Odds struct {
	Home float64 `json:"home"`
	Draw float64 `json:"draw"`
	Away float64 `json:"away"`
}

// Match is a stored fixture. Scores are nil until the match has started.
type Match struct {
	ID        string      `json:"id"`
	League    string      `json:"league"`
	HomeTeam  string      `json:"home_team"`
	AwayTeam  string      `json:"away_team"`
	ScoreHome *int        `json:"score_home"`
	ScoreAway *int        `json:"score_away"`
	StartTime time.Time   `json:"start_time"`
	Status    MatchStatus `json:"status"`
	Odds      Odds        `json:"odds"`
	CreatedAt time.Time   `json:"created_at"`
	UpdatedAt time.Time   `json:"updated_at"`
}

// HasScore reports whether both score columns are populated.
func (m *Match) HasScore() bool {
	return m.ScoreHome != nil && m.ScoreAway != nil
}

// MatchFilter holds the optional filters accepted by match listing.
type MatchFilter struct {
	League *string
	Status *MatchStatus
	// OrderByStart sorts by start_time ascending instead of the default.
	OrderByStart bool
}
