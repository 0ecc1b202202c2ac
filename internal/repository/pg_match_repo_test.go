package repository

import (
	"context"
	"reflect"
	"testing"

	"github.com/scoreline/score-sync/internal/domain"
)

func TestBuildMatchWhere(t *testing.T) {
	league := "Premier League"
	live := domain.MatchLive

	tests := []struct {
		name      string
		filter    domain.MatchFilter
		wantWhere string
		wantArgs  []any
	}{
		{"no filter", domain.MatchFilter{}, "", nil},
		{"league only", domain.MatchFilter{League: &league}, " WHERE league = $1", []any{league}},
		{"status only", domain.MatchFilter{Status: &live}, " WHERE status = $1", []any{live}},
		{"both", domain.MatchFilter{League: &league, Status: &live}, " WHERE league = $1 AND status = $2", []any{league, live}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			where, args := buildMatchWhere(tt.filter)
			if where != tt.wantWhere {
				t.Errorf("where = %q, want %q", where, tt.wantWhere)
			}
			if !reflect.DeepEqual(args, tt.wantArgs) {
				t.Errorf("args = %v, want %v", args, tt.wantArgs)
			}
		})
	}
}

func TestEscapeLike(t *testing.T) {
	tests := map[string]string{
		"arsenal":    "arsenal",
		"100%":       `100\%`,
		"real_mad":   `real\_mad`,
		`back\slash`: `back\\slash`,
	}
	for in, want := range tests {
		if got := escapeLike(in); got != want {
			t.Errorf("escapeLike(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestMockMatchRepository_FindLiveByTeamsOrdering(t *testing.T) {
	repo := NewMockMatchRepository()
	repo.Add(&domain.Match{ID: "b", HomeTeam: "A", AwayTeam: "B", Status: domain.MatchLive})
	repo.Add(&domain.Match{ID: "a", HomeTeam: "A", AwayTeam: "B", Status: domain.MatchLive})
	repo.Add(&domain.Match{ID: "c", HomeTeam: "A", AwayTeam: "B", Status: domain.MatchFinished})

	found, err := repo.FindLiveByTeams(context.Background(), "A", "B", 1)
	if err != nil {
		t.Fatal(err)
	}
	if len(found) != 1 || found[0].ID != "a" {
		t.Errorf("expected match a first, got %+v", found)
	}
}
