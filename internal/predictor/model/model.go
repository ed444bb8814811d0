// Package model implements the efficiency-based score projection shared
// by the numeric rating sources.
package model

import (
	"github.com/hoopcast/hoopcast/internal/pkg/models"
)

// DefaultHCA is the league-average home-court advantage in points. The
// rating loaders assign it when a team has no entry in the HCA table;
// Project applies whatever HCA the rating carries, so an explicit 0.0
// table value is honored.
const DefaultHCA = 3.0

// Params holds a rating source's published Division I averages. They are
// fixed per source methodology and must not be recomputed from fetched
// data at runtime.
type Params struct {
	AvgTempo  float64 // league-average possessions per 40 minutes
	AvgDefEff float64 // league-average defensive efficiency
}

var (
	TorvikParams = Params{AvgTempo: 67.6, AvgDefEff: 110.3}
	KenpomParams = Params{AvgTempo: 67.6, AvgDefEff: 104.6}
)

// Project computes the projected final score for both teams.
//
// The game tempo is the product of both adjusted tempos over the league
// average. Each side's points are offense x opposing defense x tempo,
// normalized by the league defensive efficiency. The home side gets its
// HCA added unless the game is at a neutral site; the away side never
// does. Scores are left unrounded: the aggregator rounds after averaging
// across sources.
func Project(home, away models.TeamRating, neutralSite bool, p Params) (homeScore, awayScore float64) {
	tempo := (home.AdjTempo * away.AdjTempo) / p.AvgTempo

	homeScore = (home.AdjOff * away.AdjDef * tempo) / (p.AvgDefEff * 100)
	if !neutralSite {
		homeScore += home.HCA
	}

	awayScore = (away.AdjOff * home.AdjDef * tempo) / (p.AvgDefEff * 100)

	return homeScore, awayScore
}

// ProjectMatchup looks both teams up in a source's rating table and
// projects the matchup. ok is false when either rating is missing: the
// source must decline rather than emit a zero or default score.
func ProjectMatchup(m models.Matchup, ratings map[string]models.TeamRating, src models.Source, p Params) (models.SourcePrediction, bool) {
	home, okHome := ratings[m.HomeTeam]
	away, okAway := ratings[m.AwayTeam]
	if !okHome || !okAway {
		return models.SourcePrediction{}, false
	}

	homeScore, awayScore := Project(home, away, m.NeutralSite, p)
	return models.SourcePrediction{
		Matchup:   m,
		Source:    src,
		HomeScore: homeScore,
		AwayScore: awayScore,
	}, true
}
