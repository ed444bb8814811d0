package haslametrics

import (
	"context"
	"testing"
	"time"

	"github.com/hoopcast/hoopcast/internal/pkg/models"
	"github.com/hoopcast/hoopcast/internal/pkg/teams"
)

const boardHTML = `<html><body><table>
<tr>
  <td id="tdUpcoming_0_1"><a href="ratings2.php?t=123">Connecticut 5</a></td>
  <td id="tdUpcoming_0_1_sc">71.4</td>
</tr>
<tr>
  <td id="tdUpcoming_0_2"><a href="ratings2.php?t=456">Purdue 3</a></td>
  <td id="tdUpcoming_0_2_sc">74.9</td>
</tr>
<tr>
  <td id="tdUpcoming_1_1"><a href="ratings2.php?t=789">Kansas</a></td>
  <td id="tdUpcoming_1_1_sc"></td>
</tr>
<tr>
  <td id="tdUpcoming_1_2"><a href="ratings2.php?t=790">Duke</a></td>
  <td id="tdUpcoming_1_2_sc">80.1</td>
</tr>
</table></body></html>`

func testResolver() *teams.Resolver {
	return teams.NewResolver(teams.Table{
		models.SourceHaslametrics: {
			"Connecticut": "Connecticut",
			"Purdue":      "Purdue",
		},
	})
}

func TestParseUpcoming(t *testing.T) {
	games, err := parseUpcoming(boardHTML, testResolver())
	if err != nil {
		t.Fatalf("parseUpcoming: %v", err)
	}

	if len(games) != 1 {
		t.Fatalf("got %d games, want 1 (game with empty score cell dropped)", len(games))
	}

	g := games[0]
	if g.Home != "Purdue" || g.Away != "Connecticut" {
		t.Errorf("teams = %s vs %s, want Purdue vs Connecticut (ranks stripped)", g.Home, g.Away)
	}
	if g.HomeScore != 74.9 || g.AwayScore != 71.4 {
		t.Errorf("scores = %.1f-%.1f, want 74.9-71.4", g.HomeScore, g.AwayScore)
	}
}

func TestPredictMatchesSlate(t *testing.T) {
	var fetchedDate string
	h := &Haslametrics{
		resolver: testResolver(),
		fetch: func(_ context.Context, date string) (string, error) {
			fetchedDate = date
			return boardHTML, nil
		},
	}

	// Evening games carry next-day UTC timestamps; the board must still
	// be rendered for the run's requested date.
	date := time.Date(2026, 2, 4, 0, 0, 0, 0, time.UTC)
	slate := []models.Matchup{
		{HomeTeam: "Purdue", AwayTeam: "Connecticut", StartTime: time.Date(2026, 2, 5, 0, 30, 0, 0, time.UTC)},
		{HomeTeam: "Gonzaga", AwayTeam: "Baylor", StartTime: time.Date(2026, 2, 5, 2, 0, 0, 0, time.UTC)},
	}

	preds, skipped, err := h.Predict(context.Background(), date, slate)
	if err != nil {
		t.Fatalf("Predict: %v", err)
	}

	if fetchedDate != "20260204" {
		t.Errorf("board rendered for %q, want requested date 20260204", fetchedDate)
	}

	if len(preds) != 1 {
		t.Fatalf("got %d predictions, want 1", len(preds))
	}
	if preds[0].Source != models.SourceHaslametrics {
		t.Errorf("source = %s", preds[0].Source)
	}
	if preds[0].HomeScore != 74.9 || preds[0].AwayScore != 71.4 {
		t.Errorf("scores = %.1f-%.1f", preds[0].HomeScore, preds[0].AwayScore)
	}

	if len(skipped) != 1 {
		t.Fatalf("got %d skipped, want 1", len(skipped))
	}
	if skipped[0].Matchup.HomeTeam != "Gonzaga" {
		t.Errorf("skipped matchup = %+v", skipped[0].Matchup)
	}
	if skipped[0].Reason == "" {
		t.Error("skip reason must be recorded")
	}
}

func TestDateLabels(t *testing.T) {
	labels, err := dateLabels("20260204")
	if err != nil {
		t.Fatalf("dateLabels: %v", err)
	}
	if labels[0] != "Wednesday, February 4, 2026" {
		t.Errorf("unpadded label = %q", labels[0])
	}
	if labels[1] != "Wednesday, February 04, 2026" {
		t.Errorf("padded label = %q", labels[1])
	}

	if _, err := dateLabels("not-a-date"); err == nil {
		t.Error("expected error for malformed date")
	}
}
