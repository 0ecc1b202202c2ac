package feed_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	crerr "github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scoreline/score-sync/internal/config"
	"github.com/scoreline/score-sync/internal/domain"
	"github.com/scoreline/score-sync/internal/feed"
)

func TestHTTPAdapter_FetchLiveScores(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/live", r.URL.Path)
		assert.Equal(t, "Bearer secret-token", r.Header.Get("Authorization"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"data":[
			{"match_id":"123","home_team":"Arsenal","away_team":"Manchester United","score_home":2,"score_away":1},
			{"match_id":"456","home_team":" Barcelona ","away_team":"Real Madrid","score_home":1,"score_away":1}
		]}`))
	}))
	defer srv.Close()

	a := feed.NewHTTPAdapter(srv.URL+"/", "secret-token", time.Second, 5)
	records, err := a.FetchLiveScores(context.Background())
	require.NoError(t, err)
	require.Len(t, records, 2)

	assert.Equal(t, domain.FeedRecord{HomeTeam: "Arsenal", AwayTeam: "Manchester United", ScoreHome: 2, ScoreAway: 1}, records[0])
	assert.Equal(t, "Barcelona", records[1].HomeTeam)
}

func TestHTTPAdapter_NonOKStatusIsFeedFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	a := feed.NewHTTPAdapter(srv.URL, "", time.Second, 5)
	_, err := a.FetchLiveScores(context.Background())
	require.Error(t, err)
	assert.True(t, crerr.Is(err, domain.ErrFeedUnavailable))
}

func TestHTTPAdapter_MalformedBodyIsFeedFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"data": [`))
	}))
	defer srv.Close()

	a := feed.NewHTTPAdapter(srv.URL, "", time.Second, 5)
	_, err := a.FetchLiveScores(context.Background())
	require.Error(t, err)
	assert.True(t, crerr.Is(err, domain.ErrFeedUnavailable))
}

func TestHTTPAdapter_UnreachableIsFeedFailure(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	a := feed.NewHTTPAdapter(url, "", 200*time.Millisecond, 5)
	_, err := a.FetchLiveScores(context.Background())
	require.Error(t, err)
}

func TestStaticAdapter_ReturnsCopy(t *testing.T) {
	a := feed.NewStaticAdapter(feed.DemoRecords())

	first, err := a.FetchLiveScores(context.Background())
	require.NoError(t, err)
	first[0].ScoreHome = 99

	second, err := a.FetchLiveScores(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, second[0].ScoreHome)
}

func TestFileAdapter(t *testing.T) {
	path := filepath.Join(t.TempDir(), "snapshot.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"records":[{"home_team":"Ajax","away_team":"PSV","score_home":0,"score_away":3}]}`), 0o600))

	records, err := feed.NewFileAdapter(path).FetchLiveScores(context.Background())
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, 3, records[0].ScoreAway)

	_, err = feed.NewFileAdapter(filepath.Join(t.TempDir(), "missing.json")).FetchLiveScores(context.Background())
	require.Error(t, err)
	assert.True(t, crerr.Is(err, domain.ErrFeedUnavailable))
}

func TestNew_SelectsProvider(t *testing.T) {
	a, err := feed.New(&config.Config{FeedProvider: feed.ProviderDemo})
	require.NoError(t, err)
	assert.IsType(t, &feed.StaticAdapter{}, a)

	a, err = feed.New(&config.Config{FeedProvider: feed.ProviderHTTP, FeedBaseURL: "http://localhost", FeedTimeout: time.Second})
	require.NoError(t, err)
	assert.IsType(t, &feed.HTTPAdapter{}, a)

	_, err = feed.New(&config.Config{FeedProvider: "carrier-pigeon"})
	require.Error(t, err)
}
