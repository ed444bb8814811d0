// Package predictor wires the schedule, the prediction sources and the
// aggregator into one daily pipeline run.
package predictor

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/hoopcast/hoopcast/internal/notify"
	"github.com/hoopcast/hoopcast/internal/pkg/config"
	"github.com/hoopcast/hoopcast/internal/pkg/models"
	"github.com/hoopcast/hoopcast/internal/pkg/storage"
	"github.com/hoopcast/hoopcast/internal/pkg/teams"
	"github.com/hoopcast/hoopcast/internal/predictor/combine"
	"github.com/hoopcast/hoopcast/internal/render"
	"github.com/hoopcast/hoopcast/internal/sources"
	"github.com/hoopcast/hoopcast/internal/sources/espn"
)

// Runner executes the full pipeline for one date.
type Runner struct {
	cfg      *config.Config
	resolver *teams.Resolver
	schedule *espn.Client
	sources  []sources.Source
	store    *storage.PredictionStore
	notifier *notify.TelegramNotifier
}

// RunReport summarizes one pipeline run.
type RunReport struct {
	Date       time.Time
	Matchups   int
	Consensus  []models.ConsensusPrediction // sorted by home team
	PerSource  map[models.Source]int
	Skipped    []models.SkippedMatchup
	Unmapped   []string
	Excluded   int // matchups no source could predict
	ReportPath string
}

func NewRunner(cfg *config.Config) (*Runner, error) {
	table, err := teams.LoadTable(cfg.Teams.MappingFile)
	if err != nil {
		return nil, fmt.Errorf("load team mapping: %w", err)
	}
	resolver := teams.NewResolver(table)

	selected, err := sources.Select(cfg, resolver)
	if err != nil {
		return nil, err
	}

	r := &Runner{
		cfg:      cfg,
		resolver: resolver,
		schedule: espn.NewClient(&cfg.Schedule, cfg.Sources.UserAgent, resolver),
		sources:  selected,
	}

	if cfg.Postgres.DSN != "" {
		store, err := storage.NewPredictionStore(&cfg.Postgres)
		if err != nil {
			return nil, fmt.Errorf("init prediction store: %w", err)
		}
		r.store = store
	}
	if cfg.Telegram.BotToken != "" {
		r.notifier = notify.NewTelegramNotifier(cfg.Telegram.BotToken, cfg.Telegram.ChatID)
	}

	return r, nil
}

func (r *Runner) Close() {
	if r.store != nil {
		if err := r.store.Close(); err != nil {
			slog.Error("Failed to close prediction store", "error", err)
		}
	}
}

// Run fetches the slate for the date, queries every source in parallel
// and writes the consensus out. A source failure drops that source from
// the day's consensus, it does not fail the run.
func (r *Runner) Run(ctx context.Context, date time.Time) (*RunReport, error) {
	slate, err := r.schedule.DailyMatchups(ctx, date.Format("20060102"))
	if err != nil {
		return nil, fmt.Errorf("fetch schedule: %w", err)
	}
	if len(slate) == 0 {
		return nil, fmt.Errorf("no games scheduled for %s", date.Format("2006-01-02"))
	}
	slog.Info("Fetched slate", "date", date.Format("2006-01-02"), "games", len(slate))

	preds, skipped := r.collect(ctx, date, slate)

	byMatchup := combine.Group(preds)
	// Keep every scheduled matchup visible to the aggregator so
	// zero-source games are counted as excluded, not silently lost.
	for _, m := range slate {
		if _, ok := byMatchup[m.Key()]; !ok {
			byMatchup[m.Key()] = nil
		}
	}

	consensus, err := combine.Combine(byMatchup)
	if err != nil {
		return nil, err
	}

	report := &RunReport{
		Date:      date,
		Matchups:  len(slate),
		PerSource: make(map[models.Source]int),
		Skipped:   skipped,
		Unmapped:  r.resolver.Unmapped(),
		Excluded:  len(slate) - len(consensus),
	}
	for _, p := range preds {
		report.PerSource[p.Source]++
	}

	for _, m := range slate {
		if c, ok := consensus[m.Key()]; ok {
			report.Consensus = append(report.Consensus, c)
		}
	}
	sort.Slice(report.Consensus, func(i, j int) bool {
		return report.Consensus[i].Matchup.HomeTeam < report.Consensus[j].Matchup.HomeTeam
	})

	logos := render.LoadLogoMap(r.cfg.Teams.LogoFile)
	path, err := render.WriteReport(r.cfg.Render.OutputDir, date, report.Consensus, logos)
	if err != nil {
		return nil, err
	}
	report.ReportPath = path

	if r.store != nil {
		if err := r.store.SaveConsensus(ctx, date, report.Consensus); err != nil {
			slog.Error("Failed to save predictions", "error", err)
		}
	}
	if r.notifier != nil {
		if err := r.notifier.SendDailySlate(date, report.Consensus); err != nil {
			slog.Error("Failed to send telegram slate", "error", err)
		}
	}

	logReport(report)
	return report, nil
}

// collect runs every source against the slate in parallel. Sources are
// independent; one failing or hanging source must not take the others
// down with it.
func (r *Runner) collect(ctx context.Context, date time.Time, slate []models.Matchup) ([]models.SourcePrediction, []models.SkippedMatchup) {
	var mu sync.Mutex
	var preds []models.SourcePrediction
	var skipped []models.SkippedMatchup

	var wg sync.WaitGroup
	for _, src := range r.sources {
		wg.Add(1)
		go func(src sources.Source) {
			defer wg.Done()
			slog.Info("Querying source", "source", src.Name())

			p, s, err := src.Predict(ctx, date, slate)
			if err != nil && ctx.Err() == nil {
				slog.Error("Source failed", "source", src.Name(), "error", err)
				return
			}

			mu.Lock()
			preds = append(preds, p...)
			skipped = append(skipped, s...)
			mu.Unlock()
		}(src)
	}
	wg.Wait()

	return preds, skipped
}

func logReport(r *RunReport) {
	slog.Info("Pipeline run complete",
		"date", r.Date.Format("2006-01-02"),
		"matchups", r.Matchups,
		"consensus", len(r.Consensus),
		"excluded", r.Excluded,
		"skipped", len(r.Skipped),
		"report", r.ReportPath)

	for src, n := range r.PerSource {
		slog.Info("Source contribution", "source", src, "predictions", n)
	}
	if len(r.Unmapped) > 0 {
		slog.Warn("Unmapped team names this run", "count", len(r.Unmapped), "names", r.Unmapped)
	}
}
