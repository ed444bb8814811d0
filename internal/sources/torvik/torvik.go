// Package torvik produces predictions from the Bart Torvik team-slice
// JSON feed.
package torvik

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/hoopcast/hoopcast/internal/pkg/config"
	"github.com/hoopcast/hoopcast/internal/pkg/httpclient"
	"github.com/hoopcast/hoopcast/internal/pkg/models"
	"github.com/hoopcast/hoopcast/internal/pkg/teams"
	"github.com/hoopcast/hoopcast/internal/predictor/model"
	"github.com/hoopcast/hoopcast/internal/sources"
)

const sourceName = "torvik"

func init() {
	sources.Register(sourceName, func(cfg *config.Config, resolver *teams.Resolver) (sources.Source, error) {
		return New(cfg, resolver)
	})
}

type Torvik struct {
	http     *httpclient.Client
	cfg      *config.TorvikConfig
	resolver *teams.Resolver
	hca      map[string]float64
}

func New(cfg *config.Config, resolver *teams.Resolver) (*Torvik, error) {
	hca, err := teams.LoadHCA(cfg.Teams.HCAFile)
	if err != nil {
		return nil, fmt.Errorf("load HCA table: %w", err)
	}

	return &Torvik{
		http:     httpclient.New(cfg.Sources.Timeout, cfg.Sources.UserAgent),
		cfg:      &cfg.Torvik,
		resolver: resolver,
		hca:      hca,
	}, nil
}

func (t *Torvik) Name() string { return sourceName }

func (t *Torvik) Predict(ctx context.Context, _ time.Time, slate []models.Matchup) ([]models.SourcePrediction, []models.SkippedMatchup, error) {
	ratings, err := t.fetchRatings(ctx)
	if err != nil {
		return nil, nil, err
	}
	slog.Info("Fetched Torvik ratings", "teams", len(ratings))

	var preds []models.SourcePrediction
	var skipped []models.SkippedMatchup

	for _, m := range slate {
		pred, ok := model.ProjectMatchup(m, ratings, models.SourceTorvik, model.TorvikParams)
		if !ok {
			skipped = append(skipped, models.SkippedMatchup{
				Matchup: m,
				Source:  models.SourceTorvik,
				Reason:  "missing rating data",
			})
			continue
		}
		preds = append(preds, pred)
	}

	return preds, skipped, nil
}

func (t *Torvik) fetchRatings(ctx context.Context) (map[string]models.TeamRating, error) {
	u := fmt.Sprintf("%s/teamslicejson.php?year=%d&json=1", t.cfg.BaseURL, t.cfg.Season)

	body, err := t.http.Get(ctx, u, nil)
	if err != nil {
		return nil, fmt.Errorf("fetch team slice: %w", err)
	}

	return parseTeamSlice(body, t.resolver, t.hca)
}
