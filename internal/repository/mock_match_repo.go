package repository

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/scoreline/score-sync/internal/domain"
)

// MockMatchRepository is an in-memory MatchRepository for unit tests.
// Ordering mirrors the pg queries.
type MockMatchRepository struct {
	mu      sync.RWMutex
	matches map[string]*domain.Match

	// Error overrides for failure-path tests.
	FindErr   error
	UpdateErr error
	// UpdateErrFor fails UpdateScore only for the listed match IDs.
	UpdateErrFor map[string]error

	// Writes counts successful UpdateScore calls.
	Writes int
}

func NewMockMatchRepository() *MockMatchRepository {
	return &MockMatchRepository{matches: make(map[string]*domain.Match)}
}

// Add stores a copy of m, standing in for the external ingestion process.
func (m *MockMatchRepository) Add(match *domain.Match) {
	m.mu.Lock()
	defer m.mu.Unlock()
	clone := cloneMatch(match)
	m.matches[match.ID] = clone
}

// Get returns a copy of the stored match, or nil.
func (m *MockMatchRepository) Get(id string) *domain.Match {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if match, ok := m.matches[id]; ok {
		return cloneMatch(match)
	}
	return nil
}

func (m *MockMatchRepository) List(_ context.Context, f domain.MatchFilter) ([]*domain.Match, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	result := []*domain.Match{}
	for _, match := range m.matches {
		if f.League != nil && match.League != *f.League {
			continue
		}
		if f.Status != nil && match.Status != *f.Status {
			continue
		}
		result = append(result, cloneMatch(match))
	}
	sortMatches(result, f.OrderByStart)
	return result, nil
}

func (m *MockMatchRepository) Search(_ context.Context, query string) ([]*domain.Match, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	q := strings.ToLower(query)
	result := []*domain.Match{}
	for _, match := range m.matches {
		if strings.Contains(strings.ToLower(match.HomeTeam), q) || strings.Contains(strings.ToLower(match.AwayTeam), q) {
			result = append(result, cloneMatch(match))
		}
	}
	sortMatches(result, false)
	return result, nil
}

func (m *MockMatchRepository) FindLiveByTeams(_ context.Context, homeTeam, awayTeam string, limit int) ([]*domain.Match, error) {
	if m.FindErr != nil {
		return nil, m.FindErr
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	result := []*domain.Match{}
	for _, match := range m.matches {
		if match.HomeTeam == homeTeam && match.AwayTeam == awayTeam && match.Status == domain.MatchLive {
			result = append(result, cloneMatch(match))
		}
	}
	sortMatches(result, true)
	if limit > 0 && len(result) > limit {
		result = result[:limit]
	}
	return result, nil
}

func (m *MockMatchRepository) UpdateScore(_ context.Context, id string, home, away int) error {
	if m.UpdateErr != nil {
		return m.UpdateErr
	}
	if err, ok := m.UpdateErrFor[id]; ok {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	match, ok := m.matches[id]
	if !ok {
		return domain.ErrNotFound
	}
	match.ScoreHome = &home
	match.ScoreAway = &away
	match.UpdatedAt = time.Now().UTC()
	m.Writes++
	return nil
}

func cloneMatch(match *domain.Match) *domain.Match {
	clone := *match
	if match.ScoreHome != nil {
		v := *match.ScoreHome
		clone.ScoreHome = &v
	}
	if match.ScoreAway != nil {
		v := *match.ScoreAway
		clone.ScoreAway = &v
	}
	return &clone
}

// sortMatches mirrors the pg ordering: ascending start when asc, else descending.
func sortMatches(matches []*domain.Match, asc bool) {
	sort.SliceStable(matches, func(i, j int) bool {
		a, b := matches[i], matches[j]
		if !a.StartTime.Equal(b.StartTime) {
			if asc {
				return a.StartTime.Before(b.StartTime)
			}
			return a.StartTime.After(b.StartTime)
		}
		return a.ID < b.ID
	})
}
