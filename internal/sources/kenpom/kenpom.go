// Package kenpom produces predictions from the Kenpom ratings API.
package kenpom

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"time"

	"github.com/hoopcast/hoopcast/internal/pkg/config"
	"github.com/hoopcast/hoopcast/internal/pkg/httpclient"
	"github.com/hoopcast/hoopcast/internal/pkg/models"
	"github.com/hoopcast/hoopcast/internal/pkg/teams"
	"github.com/hoopcast/hoopcast/internal/predictor/model"
	"github.com/hoopcast/hoopcast/internal/sources"
)

const sourceName = "kenpom"

func init() {
	sources.Register(sourceName, func(cfg *config.Config, resolver *teams.Resolver) (sources.Source, error) {
		return New(cfg, resolver)
	})
}

type Kenpom struct {
	http     *httpclient.Client
	cfg      *config.KenpomConfig
	resolver *teams.Resolver
	hca      map[string]float64
}

func New(cfg *config.Config, resolver *teams.Resolver) (*Kenpom, error) {
	if cfg.Kenpom.APIKey == "" {
		return nil, fmt.Errorf("kenpom.api_key is required")
	}

	hca, err := teams.LoadHCA(cfg.Teams.HCAFile)
	if err != nil {
		return nil, fmt.Errorf("load HCA table: %w", err)
	}

	return &Kenpom{
		http:     httpclient.New(cfg.Sources.Timeout, cfg.Sources.UserAgent),
		cfg:      &cfg.Kenpom,
		resolver: resolver,
		hca:      hca,
	}, nil
}

func (k *Kenpom) Name() string { return sourceName }

// Predict fetches the current ratings and projects every matchup both
// teams are rated for. Matchups with a missing or unusable rating are
// skipped for this source only.
func (k *Kenpom) Predict(ctx context.Context, _ time.Time, slate []models.Matchup) ([]models.SourcePrediction, []models.SkippedMatchup, error) {
	ratings, err := k.fetchRatings(ctx)
	if err != nil {
		return nil, nil, err
	}
	slog.Info("Fetched Kenpom ratings", "teams", len(ratings))

	var preds []models.SourcePrediction
	var skipped []models.SkippedMatchup

	for _, m := range slate {
		pred, ok := model.ProjectMatchup(m, ratings, models.SourceKenpom, model.KenpomParams)
		if !ok {
			skipped = append(skipped, models.SkippedMatchup{
				Matchup: m,
				Source:  models.SourceKenpom,
				Reason:  "missing rating data",
			})
			continue
		}
		preds = append(preds, pred)
	}

	return preds, skipped, nil
}

func (k *Kenpom) fetchRatings(ctx context.Context) (map[string]models.TeamRating, error) {
	u := fmt.Sprintf("%s?%s", k.cfg.BaseURL, url.Values{
		"endpoint": {"ratings"},
		"y":        {fmt.Sprintf("%d", k.cfg.Season)},
	}.Encode())
	headers := map[string]string{
		"Authorization": "Bearer " + k.cfg.APIKey,
	}

	var rows []ratingRow
	if err := k.http.GetJSON(ctx, u, headers, &rows); err != nil {
		return nil, fmt.Errorf("fetch ratings: %w", err)
	}

	return buildRatings(rows, k.resolver, k.hca), nil
}
