package feed

import (
	"context"
	"fmt"

	"github.com/scoreline/score-sync/internal/config"
	"github.com/scoreline/score-sync/internal/domain"
)

// Adapter abstracts retrieval of live scores from an external provider.
// Each call returns one complete snapshot; there is no pagination. Any error
// means the snapshot must not be used at all.
type Adapter interface {
	FetchLiveScores(ctx context.Context) ([]domain.FeedRecord, error)
}

// AdapterFunc lets a plain function satisfy Adapter.
type AdapterFunc func(ctx context.Context) ([]domain.FeedRecord, error)

func (f AdapterFunc) FetchLiveScores(ctx context.Context) ([]domain.FeedRecord, error) {
	return f(ctx)
}

const (
	ProviderHTTP = "http"
	ProviderDemo = "demo"
)

// New builds the adapter selected by FEED_PROVIDER.
func New(cfg *config.Config) (Adapter, error) {
	switch cfg.FeedProvider {
	case ProviderHTTP:
		return NewHTTPAdapter(cfg.FeedBaseURL, cfg.FeedAPIToken, cfg.FeedTimeout, cfg.FeedRateLimit), nil
	case ProviderDemo:
		return NewStaticAdapter(DemoRecords()), nil
	default:
		return nil, fmt.Errorf("unknown feed provider %q", cfg.FeedProvider)
	}
}
