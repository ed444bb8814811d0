package render

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/hoopcast/hoopcast/internal/pkg/models"
)

func TestWriteReport(t *testing.T) {
	dir := t.TempDir()
	date := time.Date(2026, 2, 4, 0, 0, 0, 0, time.UTC)

	preds := []models.ConsensusPrediction{
		{
			Matchup:   models.Matchup{HomeTeam: "Purdue", AwayTeam: "Connecticut", Venue: "Mackey Arena"},
			HomeScore: 75,
			AwayScore: 70,
			Sources:   []models.Source{models.SourceKenpom, models.SourceTorvik},
		},
		{
			Matchup:   models.Matchup{HomeTeam: "Duke", AwayTeam: "Kansas", NeutralSite: true},
			HomeScore: 71,
			AwayScore: 71,
			Sources:   []models.Source{models.SourceHaslametrics},
		},
	}
	logos := map[string]string{"Purdue": "https://example.com/purdue.png"}

	path, err := WriteReport(dir, date, preds, logos)
	if err != nil {
		t.Fatalf("WriteReport: %v", err)
	}
	if filepath.Base(path) != "20260204.html" {
		t.Errorf("report path = %s", path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read report: %v", err)
	}
	html := string(data)

	for _, want := range []string{
		"Purdue", "Connecticut", "Mackey Arena",
		"https://example.com/purdue.png",
		"neutral site",
		"consensus has no leader",
		"kenpom, torvik",
	} {
		if !strings.Contains(html, want) {
			t.Errorf("report missing %q", want)
		}
	}

	if _, err := os.Stat(filepath.Join(dir, "index.html")); err != nil {
		t.Errorf("index.html not written: %v", err)
	}
}

func TestLoadLogoMapMissingFile(t *testing.T) {
	logos := LoadLogoMap(filepath.Join(t.TempDir(), "nope.json"))
	if logos == nil || len(logos) != 0 {
		t.Errorf("missing file should yield an empty map, got %v", logos)
	}
}
