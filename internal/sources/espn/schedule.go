// Package espn fetches the daily slate of games from the ESPN scoreboard
// API. ESPN is the schedule feed, not a prediction source: the matchups
// it produces are read-only inputs for every rating source.
package espn

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
)

type Client struct {
	http     *httpclient.Client
	cfg      *config.ScheduleConfig
	resolver *teams.Resolver
}

func NewClient(cfg *config.ScheduleConfig, userAgent string, resolver *teams.Resolver) *Client {
	return &Client{
		http:     httpclient.New(cfg.Timeout, userAgent),
		cfg:      cfg,
		resolver: resolver,
	}
}

type scoreboardResponse struct {
	Events []event `json:"events"`
}

type event struct {
	ID           string        `json:"id"`
	Date         string        `json:"date"`
	Status       eventStatus   `json:"status"`
	Competitions []competition `json:"competitions"`
}

type eventStatus struct {
	Type struct {
		Description string `json:"description"`
	} `json:"type"`
}

type competition struct {
	Venue struct {
		FullName string `json:"fullName"`
	} `json:"venue"`
	NeutralSite bool         `json:"neutralSite"`
	Competitors []competitor `json:"competitors"`
}

type competitor struct {
	HomeAway string `json:"homeAway"`
	Team     struct {
		DisplayName string `json:"displayName"`
	} `json:"team"`
}

// DailyMatchups fetches all Division I games for a date (YYYYMMDD).
func (c *Client) DailyMatchups(ctx context.Context, date string) ([]models.Matchup, error) {
	u := fmt.Sprintf("%s/scoreboard?%s", c.cfg.BaseURL, url.Values{
		"dates":  {date},
		"limit":  {fmt.Sprintf("%d", c.cfg.Limit)},
		"groups": {c.cfg.Groups},
	}.Encode())

	var resp scoreboardResponse
	if err := c.http.GetJSON(ctx, u, nil, &resp); err != nil {
		return nil, fmt.Errorf("fetch scoreboard: %w", err)
	}

	matchups := c.parseEvents(resp.Events)
	slog.Info("Fetched daily slate", "date", date, "games", len(matchups))
	return matchups, nil
}

func (c *Client) parseEvents(events []event) []models.Matchup {
	var matchups []models.Matchup

	for _, ev := range events {
		if len(ev.Competitions) == 0 {
			continue
		}
		comp := ev.Competitions[0]
		if len(comp.Competitors) != 2 {
			continue
		}

		var homeRaw, awayRaw string
		for _, ct := range comp.Competitors {
			if ct.HomeAway == "home" {
				homeRaw = ct.Team.DisplayName
			} else {
				awayRaw = ct.Team.DisplayName
			}
		}
		if homeRaw == "" || awayRaw == "" {
			continue
		}

		home, _ := c.resolver.Canonicalize(homeRaw, models.SourceESPN)
		away, _ := c.resolver.Canonicalize(awayRaw, models.SourceESPN)

		start, err := time.Parse("2006-01-02T15:04Z", ev.Date)
		if err != nil {
			slog.Warn("Unparseable game time, keeping zero time", "game_id", ev.ID, "date", ev.Date)
		}

		matchups = append(matchups, models.Matchup{
			GameID:      ev.ID,
			HomeTeam:    home,
			AwayTeam:    away,
			StartTime:   start,
			Venue:       comp.Venue.FullName,
			NeutralSite: comp.NeutralSite,
			Status:      ev.Status.Type.Description,
		})
	}

	return matchups
}
