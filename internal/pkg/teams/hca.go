package teams

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// LoadHCA reads a two-column CSV (Team,HCA) keyed by canonical team name.
// Teams absent from the file get the model's default home-court advantage.
func LoadHCA(path string) (map[string]float64, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open HCA file: %w", err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = 2

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse HCA file: %w", err)
	}

	out := make(map[string]float64, len(records))
	for i, rec := range records {
		team := strings.TrimSpace(rec[0])
		if i == 0 && strings.EqualFold(team, "team") {
			continue // header row
		}
		value, err := strconv.ParseFloat(strings.TrimSpace(rec[1]), 64)
		if err != nil {
			// Unusable row, same treatment as a missing team.
			continue
		}
		out[team] = value
	}
	return out, nil
}
