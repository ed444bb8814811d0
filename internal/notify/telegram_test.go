package notify

import (
	"strings"
	"testing"
	"time"

	"github.com/hoopcast/hoopcast/internal/pkg/models"
)

func TestEscapeMarkdown(t *testing.T) {
	got := escapeMarkdown("Texas A&M-Corpus Christi (CC)")
	want := "Texas A&M\\-Corpus Christi \\(CC\\)"
	if got != want {
		t.Errorf("escapeMarkdown = %q, want %q", got, want)
	}
}

func TestFormatGame(t *testing.T) {
	base := models.Matchup{HomeTeam: "Purdue", AwayTeam: "Connecticut"}

	homeWin := formatGame(models.ConsensusPrediction{Matchup: base, HomeScore: 75, AwayScore: 70})
	if !strings.HasPrefix(homeWin, "*Purdue 75*") {
		t.Errorf("home win not bolded: %q", homeWin)
	}

	awayWin := formatGame(models.ConsensusPrediction{Matchup: base, HomeScore: 68, AwayScore: 71})
	if !strings.Contains(awayWin, "*Connecticut 71*") {
		t.Errorf("away win not bolded: %q", awayWin)
	}

	tie := formatGame(models.ConsensusPrediction{Matchup: base, HomeScore: 70, AwayScore: 70})
	if !strings.Contains(tie, "even") {
		t.Errorf("tie not marked: %q", tie)
	}
}

func TestNilNotifierIsSafe(t *testing.T) {
	var n *TelegramNotifier
	if err := n.SendDailySlate(time.Now(), nil); err != nil {
		t.Errorf("nil notifier must be a no-op, got %v", err)
	}
}
