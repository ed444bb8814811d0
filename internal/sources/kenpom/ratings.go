package kenpom

import (
	"encoding/json"
	"log/slog"

	"github.com/hoopcast/hoopcast/internal/pkg/models"
	"github.com/hoopcast/hoopcast/internal/pkg/teams"
	"github.com/hoopcast/hoopcast/internal/predictor/model"
)

// ratingRow is one team's entry in the ratings endpoint response.
// Numeric fields stay raw until buildRatings so one malformed value
// (e.g. "n/a") drops that row instead of failing the whole decode.
type ratingRow struct {
	TeamName string          `json:"TeamName"`
	AdjOE    json.RawMessage `json:"AdjOE"`
	AdjDE    json.RawMessage `json:"AdjDE"`
	AdjTempo json.RawMessage `json:"AdjTempo"`
	SOS      json.RawMessage `json:"SOS"`
}

func buildRatings(rows []ratingRow, resolver *teams.Resolver, hca map[string]float64) map[string]models.TeamRating {
	ratings := make(map[string]models.TeamRating, len(rows))
	dropped := 0

	for _, row := range rows {
		if row.TeamName == "" {
			continue
		}

		adjO, errO := numberField(row.AdjOE)
		adjD, errD := numberField(row.AdjDE)
		adjT, errT := numberField(row.AdjTempo)
		if errO != nil || errD != nil || errT != nil {
			// Unusable record, same treatment as a missing team.
			dropped++
			continue
		}
		sos, err := numberField(row.SOS)
		if err != nil {
			sos = 0
		}

		team, _ := resolver.Canonicalize(row.TeamName, models.SourceKenpom)
		h, ok := hca[team]
		if !ok {
			h = model.DefaultHCA
		}
		ratings[team] = models.TeamRating{
			Team:     team,
			AdjOff:   adjO,
			AdjDef:   adjD,
			AdjTempo: adjT,
			SOS:      sos,
			HCA:      h,
		}
	}

	if dropped > 0 {
		slog.Warn("Dropped teams with non-numeric Kenpom ratings", "count", dropped)
	}
	return ratings
}

// numberField accepts both bare numbers and string-encoded numbers; the
// API has shipped both.
func numberField(raw json.RawMessage) (float64, error) {
	var n json.Number
	if err := json.Unmarshal(raw, &n); err == nil {
		return n.Float64()
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return 0, err
	}
	return json.Number(s).Float64()
}
