package feed

import (
	"context"
	"io"
	"net/http"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"golang.org/x/time/rate"

	"github.com/scoreline/score-sync/internal/domain"
)

const maxFeedBody = 4 << 20

// liveEnvelope is the provider's GET /live response body.
type liveEnvelope struct {
	Data []liveFixture `json:"data"`
}

type liveFixture struct {
	MatchID   string `json:"match_id"`
	HomeTeam  string `json:"home_team"`
	AwayTeam  string `json:"away_team"`
	ScoreHome int    `json:"score_home"`
	ScoreAway int    `json:"score_away"`
}

// HTTPAdapter pulls the live snapshot from a JSON score provider.
// The base URL is injected from config so tests can point to a local mock.
type HTTPAdapter struct {
	baseURL    string
	token      string
	httpClient *http.Client
	limiter    *rate.Limiter
}

// NewHTTPAdapter creates an adapter that issues at most ratePerSec requests
// per second against baseURL.
func NewHTTPAdapter(baseURL, token string, timeout time.Duration, ratePerSec int) *HTTPAdapter {
	if ratePerSec < 1 {
		ratePerSec = 1
	}
	return &HTTPAdapter{
		baseURL: strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		token:   strings.TrimSpace(token),
		httpClient: &http.Client{
			Timeout: timeout,
		},
		limiter: rate.NewLimiter(rate.Limit(ratePerSec), ratePerSec),
	}
}

// FetchLiveScores GETs {baseURL}/live and expects 200 with a JSON body of
// the form {"data": [...]}. Every failure is marked with
// domain.ErrFeedUnavailable.
func (a *HTTPAdapter) FetchLiveScores(ctx context.Context) ([]domain.FeedRecord, error) {
	if err := a.limiter.Wait(ctx); err != nil {
		return nil, crerr.Mark(crerr.Wrap(err, "wait for feed rate limiter"), domain.ErrFeedUnavailable)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, a.baseURL+"/live", nil)
	if err != nil {
		return nil, crerr.Mark(crerr.Wrap(err, "build feed request"), domain.ErrFeedUnavailable)
	}
	req.Header.Set("Accept", "application/json")
	if a.token != "" {
		req.Header.Set("Authorization", "Bearer "+a.token)
	}

	resp, err := a.httpClient.Do(req)
	if err != nil {
		return nil, crerr.Mark(crerr.Wrap(err, "send feed request"), domain.ErrFeedUnavailable)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxFeedBody))
	if err != nil {
		return nil, crerr.Mark(crerr.Wrap(err, "read feed response"), domain.ErrFeedUnavailable)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, crerr.Mark(crerr.Newf("unexpected feed status: %d", resp.StatusCode), domain.ErrFeedUnavailable)
	}

	var envelope liveEnvelope
	if err := sonic.Unmarshal(raw, &envelope); err != nil {
		return nil, crerr.Mark(crerr.Wrap(err, "decode feed payload"), domain.ErrFeedUnavailable)
	}

	records := make([]domain.FeedRecord, 0, len(envelope.Data))
	for _, item := range envelope.Data {
		records = append(records, domain.FeedRecord{
			HomeTeam:  strings.TrimSpace(item.HomeTeam),
			AwayTeam:  strings.TrimSpace(item.AwayTeam),
			ScoreHome: item.ScoreHome,
			ScoreAway: item.ScoreAway,
		})
	}
	return records, nil
}

// compile-time check that HTTPAdapter implements Adapter
var _ Adapter = (*HTTPAdapter)(nil)
