package torvik

import (
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/hoopcast/hoopcast/internal/pkg/models"
	"github.com/hoopcast/hoopcast/internal/pkg/teams"
	"github.com/hoopcast/hoopcast/internal/predictor/model"
)

// Column positions in the teamslicejson feed. Each row is a positional
// array, not an object.
const (
	colTeam     = 0
	colAdjOff   = 1
	colAdjDef   = 2
	colAdjTempo = 26
)

// parseTeamSlice decodes the positional-array ratings feed. Rows with a
// missing team name or a non-numeric rating cell are dropped, the same
// treatment an unrated team gets.
func parseTeamSlice(body []byte, resolver *teams.Resolver, hca map[string]float64) (map[string]models.TeamRating, error) {
	var rows [][]json.RawMessage
	if err := json.Unmarshal(body, &rows); err != nil {
		return nil, fmt.Errorf("decode team slice: %w", err)
	}

	ratings := make(map[string]models.TeamRating, len(rows))
	dropped := 0

	for _, row := range rows {
		if len(row) <= colAdjTempo {
			dropped++
			continue
		}

		var name string
		if err := json.Unmarshal(row[colTeam], &name); err != nil || name == "" {
			dropped++
			continue
		}

		adjO, errO := numberCell(row[colAdjOff])
		adjD, errD := numberCell(row[colAdjDef])
		adjT, errT := numberCell(row[colAdjTempo])
		if errO != nil || errD != nil || errT != nil {
			dropped++
			continue
		}

		team, _ := resolver.Canonicalize(name, models.SourceTorvik)
		h, ok := hca[team]
		if !ok {
			h = model.DefaultHCA
		}
		ratings[team] = models.TeamRating{
			Team:     team,
			AdjOff:   adjO,
			AdjDef:   adjD,
			AdjTempo: adjT,
			HCA:      h,
		}
	}

	if dropped > 0 {
		slog.Warn("Dropped unusable Torvik rows", "count", dropped)
	}
	return ratings, nil
}

// numberCell accepts both bare numbers and string-encoded numbers, which
// the feed mixes freely.
func numberCell(raw json.RawMessage) (float64, error) {
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
