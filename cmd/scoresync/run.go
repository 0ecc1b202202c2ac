package main

import (
	"fmt"
	"strings"

	"github.com/scoreline/score-sync/internal/config"
	"github.com/scoreline/score-sync/internal/domain"
	"github.com/scoreline/score-sync/internal/feed"
)

// runOptions carries the flags of the run command.
type runOptions struct {
	Snapshot   string
	NotifyMode string
}

// prepareRun applies the run flags to cfg and picks the feed source. A
// snapshot file wins over the configured provider.
func prepareRun(cfg *config.Config, opts runOptions) (feed.Adapter, error) {
	if opts.NotifyMode != "" {
		mode := domain.NotifyMode(strings.ToLower(strings.TrimSpace(opts.NotifyMode)))
		if !mode.IsValid() {
			return nil, fmt.Errorf("--notify-mode must be %q or %q", domain.NotifyOnDelta, domain.NotifyEveryPoll)
		}
		cfg.NotifyMode = mode
	}

	if opts.Snapshot != "" {
		return feed.NewFileAdapter(opts.Snapshot), nil
	}
	return feed.New(cfg)
}
