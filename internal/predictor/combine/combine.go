// Package combine merges per-source predictions into one consensus score
// pair per matchup.
package combine

import (
	"errors"
	"math"

	"github.com/hoopcast/hoopcast/internal/pkg/models"
)

// ErrNoPredictions is returned when no source produced a usable
// prediction for any matchup in the slate.
var ErrNoPredictions = errors.New("no usable predictions for any matchup")

// Combine averages the available source predictions per matchup and
// rounds to whole points. Averaging is skip-aware: a source with no
// prediction for a matchup simply does not participate, it never counts
// as zero. Matchups with zero source coverage are excluded from the
// result rather than emitted with placeholders.
func Combine(preds map[models.MatchupKey][]models.SourcePrediction) (map[models.MatchupKey]models.ConsensusPrediction, error) {
	out := make(map[models.MatchupKey]models.ConsensusPrediction, len(preds))

	for key, list := range preds {
		if len(list) == 0 {
			continue
		}

		var homeSum, awaySum float64
		sources := make([]models.Source, 0, len(list))
		for _, p := range list {
			homeSum += p.HomeScore
			awaySum += p.AwayScore
			sources = append(sources, p.Source)
		}

		n := float64(len(list))
		out[key] = models.ConsensusPrediction{
			Matchup:   list[0].Matchup,
			HomeScore: int(math.Round(homeSum / n)),
			AwayScore: int(math.Round(awaySum / n)),
			Sources:   sources,
		}
	}

	if len(out) == 0 {
		return nil, ErrNoPredictions
	}
	return out, nil
}

// Group indexes a flat prediction list by matchup for Combine.
func Group(preds []models.SourcePrediction) map[models.MatchupKey][]models.SourcePrediction {
	grouped := make(map[models.MatchupKey][]models.SourcePrediction)
	for _, p := range preds {
		key := p.Matchup.Key()
		grouped[key] = append(grouped[key], p)
	}
	return grouped
}
