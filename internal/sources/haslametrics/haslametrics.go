// Package haslametrics scrapes projected scores from the Haslametrics
// upcoming-games board. The site renders its projections with
// JavaScript, so the page goes through a headless browser before the
// HTML is parsed.
package haslametrics

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/hoopcast/hoopcast/internal/pkg/config"
	"github.com/hoopcast/hoopcast/internal/pkg/models"
	"github.com/hoopcast/hoopcast/internal/pkg/teams"
	"github.com/hoopcast/hoopcast/internal/sources"
)

const sourceName = "haslametrics"

func init() {
	sources.Register(sourceName, func(cfg *config.Config, resolver *teams.Resolver) (sources.Source, error) {
		return New(cfg, resolver), nil
	})
}

type Haslametrics struct {
	cfg      *config.HaslametricsConfig
	resolver *teams.Resolver

	// fetch is swapped out in tests to avoid a real browser.
	fetch func(ctx context.Context, date string) (string, error)
}

func New(cfg *config.Config, resolver *teams.Resolver) *Haslametrics {
	h := &Haslametrics{
		cfg:      &cfg.Haslametrics,
		resolver: resolver,
	}
	h.fetch = h.fetchRendered
	return h
}

func (h *Haslametrics) Name() string { return sourceName }

// Predict renders the board for the requested date and matches scraped
// games against the slate by canonical team pair. The date comes from
// the run, not from game timestamps: ESPN start times are UTC, so an
// evening game already carries the next day's date. Slate entries the
// board does not list are skipped for this source only.
func (h *Haslametrics) Predict(ctx context.Context, date time.Time, slate []models.Matchup) ([]models.SourcePrediction, []models.SkippedMatchup, error) {
	if len(slate) == 0 {
		return nil, nil, nil
	}

	html, err := h.fetch(ctx, date.Format("20060102"))
	if err != nil {
		return nil, nil, fmt.Errorf("render upcoming board: %w", err)
	}

	games, err := parseUpcoming(html, h.resolver)
	if err != nil {
		return nil, nil, err
	}
	slog.Info("Parsed Haslametrics board", "games", len(games))

	byKey := make(map[models.MatchupKey]scrapedGame, len(games))
	for _, g := range games {
		byKey[models.MatchupKey{Home: g.Home, Away: g.Away}] = g
	}

	var preds []models.SourcePrediction
	var skipped []models.SkippedMatchup

	for _, m := range slate {
		g, ok := byKey[m.Key()]
		if !ok {
			skipped = append(skipped, models.SkippedMatchup{
				Matchup: m,
				Source:  models.SourceHaslametrics,
				Reason:  "not listed on upcoming board",
			})
			continue
		}
		preds = append(preds, models.SourcePrediction{
			Matchup:   m,
			Source:    models.SourceHaslametrics,
			HomeScore: g.HomeScore,
			AwayScore: g.AwayScore,
		})
	}

	return preds, skipped, nil
}
