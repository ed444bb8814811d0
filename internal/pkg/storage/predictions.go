// Package storage persists consensus predictions to PostgreSQL so past
// slates can be compared against final scores.
package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"strings"
	"time"

	_ "github.com/lib/pq"

	"github.com/hoopcast/hoopcast/internal/pkg/config"
	"github.com/hoopcast/hoopcast/internal/pkg/models"
)

type PredictionStore struct {
	db *sql.DB
}

func NewPredictionStore(cfg *config.PostgresConfig) (*PredictionStore, error) {
	if cfg.DSN == "" {
		return nil, fmt.Errorf("postgres DSN is required")
	}

	db, err := sql.Open("postgres", cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("failed to open postgres connection: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("failed to ping postgres: %w", err)
	}

	store := &PredictionStore{db: db}
	if err := store.initSchema(ctx); err != nil {
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	slog.Info("PostgreSQL prediction store initialized")
	return store, nil
}

func (s *PredictionStore) initSchema(ctx context.Context) error {
	query := `
	CREATE TABLE IF NOT EXISTS consensus_predictions (
		id SERIAL PRIMARY KEY,
		game_date DATE NOT NULL,
		game_id VARCHAR(50) NOT NULL DEFAULT '',
		home_team VARCHAR(200) NOT NULL,
		away_team VARCHAR(200) NOT NULL,
		neutral_site BOOLEAN NOT NULL DEFAULT FALSE,
		home_score INTEGER NOT NULL,
		away_score INTEGER NOT NULL,
		sources VARCHAR(500) NOT NULL,
		created_at TIMESTAMP NOT NULL DEFAULT NOW(),
		UNIQUE(game_date, home_team, away_team)
	);

	CREATE INDEX IF NOT EXISTS idx_consensus_predictions_game_date ON consensus_predictions(game_date);
	`

	_, err := s.db.ExecContext(ctx, query)
	return err
}

// SaveConsensus upserts the slate's consensus predictions. Rerunning the
// pipeline for the same date overwrites the previous run's numbers.
func (s *PredictionStore) SaveConsensus(ctx context.Context, date time.Time, preds []models.ConsensusPrediction) error {
	query := `
	INSERT INTO consensus_predictions
		(game_date, game_id, home_team, away_team, neutral_site, home_score, away_score, sources)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	ON CONFLICT (game_date, home_team, away_team) DO UPDATE SET
		game_id = EXCLUDED.game_id,
		neutral_site = EXCLUDED.neutral_site,
		home_score = EXCLUDED.home_score,
		away_score = EXCLUDED.away_score,
		sources = EXCLUDED.sources,
		created_at = NOW()
	`

	for _, p := range preds {
		names := make([]string, len(p.Sources))
		for i, src := range p.Sources {
			names[i] = string(src)
		}

		_, err := s.db.ExecContext(ctx, query,
			date, p.Matchup.GameID, p.Matchup.HomeTeam, p.Matchup.AwayTeam,
			p.Matchup.NeutralSite, p.HomeScore, p.AwayScore, strings.Join(names, ","))
		if err != nil {
			return fmt.Errorf("save prediction %s vs %s: %w", p.Matchup.HomeTeam, p.Matchup.AwayTeam, err)
		}
	}

	slog.Info("Saved consensus predictions", "date", date.Format("2006-01-02"), "count", len(preds))
	return nil
}

func (s *PredictionStore) Close() error {
	return s.db.Close()
}
