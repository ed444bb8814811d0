package models

import (
	"time"
)

// Source identifies one of the external data feeds.
type Source string

const (
	SourceESPN         Source = "espn"
	SourceKenpom       Source = "kenpom"
	SourceTorvik       Source = "torvik"
	SourceHaslametrics Source = "haslametrics"
)

// TeamRating holds one source's efficiency ratings for a single team.
// Ratings are fetched fresh each run and discarded afterwards.
type TeamRating struct {
	Team     string  `json:"team"`
	AdjOff   float64 `json:"adj_off"`   // adjusted offensive efficiency (points per 100 possessions)
	AdjDef   float64 `json:"adj_def"`   // adjusted defensive efficiency
	AdjTempo float64 `json:"adj_tempo"` // possessions per 40 minutes
	SOS      float64 `json:"sos"`       // strength of schedule
	HCA      float64 `json:"hca"`       // home-court advantage in points
}

// Matchup represents one scheduled game. Team names are canonical.
type Matchup struct {
	GameID      string    `json:"game_id"`
	HomeTeam    string    `json:"home_team"`
	AwayTeam    string    `json:"away_team"`
	StartTime   time.Time `json:"start_time"`
	Venue       string    `json:"venue"`
	NeutralSite bool      `json:"neutral_site"`
	Status      string    `json:"status"`
}

// MatchupKey groups predictions from different sources for the same game.
type MatchupKey struct {
	Home string
	Away string
}

func (m Matchup) Key() MatchupKey {
	return MatchupKey{Home: m.HomeTeam, Away: m.AwayTeam}
}

// SourcePrediction is one source's projected final score for a matchup.
// Scores are unrounded so averaging across sources stays unbiased.
type SourcePrediction struct {
	Matchup   Matchup `json:"matchup"`
	Source    Source  `json:"source"`
	HomeScore float64 `json:"home_score"`
	AwayScore float64 `json:"away_score"`
}

// SkippedMatchup records a game a source could not predict (missing or
// unusable rating data). Non-fatal, reported in aggregate.
type SkippedMatchup struct {
	Matchup Matchup `json:"matchup"`
	Source  Source  `json:"source"`
	Reason  string  `json:"reason"`
}

// ConsensusPrediction is the averaged, rounded score pair for a matchup.
// Sources lists which feeds contributed.
type ConsensusPrediction struct {
	Matchup   Matchup  `json:"matchup"`
	HomeScore int      `json:"home_score"`
	AwayScore int      `json:"away_score"`
	Sources   []Source `json:"sources"`
}

// Outcome of a consensus prediction. Equal rounded scores are a tie and
// must never be defaulted to either side.
type Outcome int

const (
	OutcomeTie Outcome = iota
	OutcomeHomeWin
	OutcomeAwayWin
)

func (c ConsensusPrediction) Outcome() Outcome {
	switch {
	case c.HomeScore > c.AwayScore:
		return OutcomeHomeWin
	case c.AwayScore > c.HomeScore:
		return OutcomeAwayWin
	default:
		return OutcomeTie
	}
}
