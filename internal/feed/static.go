package feed

import (
	"context"
	"os"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"

	"github.com/scoreline/score-sync/internal/domain"
)

// StaticAdapter replays a fixed snapshot. It backs explicit snapshot input
// and the demo provider.
type StaticAdapter struct {
	records []domain.FeedRecord
}

func NewStaticAdapter(records []domain.FeedRecord) *StaticAdapter {
	cp := make([]domain.FeedRecord, len(records))
	copy(cp, records)
	return &StaticAdapter{records: cp}
}

func (a *StaticAdapter) FetchLiveScores(_ context.Context) ([]domain.FeedRecord, error) {
	cp := make([]domain.FeedRecord, len(a.records))
	copy(cp, a.records)
	return cp, nil
}

// DemoRecords is the snapshot served by the demo provider.
func DemoRecords() []domain.FeedRecord {
	return []domain.FeedRecord{
		{HomeTeam: "Arsenal", AwayTeam: "Manchester United", ScoreHome: 2, ScoreAway: 1},
		{HomeTeam: "Barcelona", AwayTeam: "Real Madrid", ScoreHome: 1, ScoreAway: 1},
	}
}

// FileAdapter reads a snapshot file of the form {"records": [...]} on every
// call, so the file can be edited between runs.
type FileAdapter struct {
	path string
}

func NewFileAdapter(path string) *FileAdapter {
	return &FileAdapter{path: path}
}

func (a *FileAdapter) FetchLiveScores(_ context.Context) ([]domain.FeedRecord, error) {
	raw, err := os.ReadFile(a.path)
	if err != nil {
		return nil, crerr.Mark(crerr.Wrapf(err, "read snapshot %s", a.path), domain.ErrFeedUnavailable)
	}

	var snap domain.Snapshot
	if err := sonic.Unmarshal(raw, &snap); err != nil {
		return nil, crerr.Mark(crerr.Wrapf(err, "decode snapshot %s", a.path), domain.ErrFeedUnavailable)
	}
	return snap.Records, nil
}

var (
	_ Adapter = (*StaticAdapter)(nil)
	_ Adapter = (*FileAdapter)(nil)
)
