package haslametrics

import (
	"fmt"
	"log/slog"
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/hoopcast/hoopcast/internal/pkg/models"
	"github.com/hoopcast/hoopcast/internal/pkg/teams"
)

// Cell ids look like tdUpcoming_17_1 (team) and tdUpcoming_17_1_sc
// (score). Slot 1 is the visiting team, slot 2 the home team.
var cellID = regexp.MustCompile(`^tdUpcoming_(\d+)_([12])(_sc)?$`)

type scrapedGame struct {
	Home      string
	Away      string
	HomeScore float64
	AwayScore float64
}

type gameCells struct {
	team  [3]string
	score [3]float64
	has   [3]bool
}

// parseUpcoming extracts projected games from the rendered board.
// Games with a missing team or score cell are dropped with a warning.
func parseUpcoming(html string, resolver *teams.Resolver) ([]scrapedGame, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("parse board HTML: %w", err)
	}

	cells := make(map[int]*gameCells)

	doc.Find(`td[id^="tdUpcoming_"]`).Each(func(_ int, s *goquery.Selection) {
		id, _ := s.Attr("id")
		m := cellID.FindStringSubmatch(id)
		if m == nil {
			return
		}
		idx, _ := strconv.Atoi(m[1])
		slot, _ := strconv.Atoi(m[2])

		g := cells[idx]
		if g == nil {
			g = &gameCells{}
			cells[idx] = g
		}

		if m[3] == "_sc" {
			text := strings.TrimSpace(s.Text())
			score, err := strconv.ParseFloat(text, 64)
			if err != nil {
				return
			}
			g.score[slot] = score
			g.has[slot] = true
			return
		}

		name := strings.TrimSpace(s.Find(`a[href*="ratings2.php"]`).First().Text())
		if name == "" {
			name = strings.TrimSpace(s.Text())
		}
		g.team[slot] = name
	})

	var games []scrapedGame
	dropped := 0
	for _, g := range cells {
		if g.team[1] == "" || g.team[2] == "" || !g.has[1] || !g.has[2] {
			dropped++
			continue
		}
		away, _ := resolver.Canonicalize(g.team[1], models.SourceHaslametrics)
		home, _ := resolver.Canonicalize(g.team[2], models.SourceHaslametrics)
		games = append(games, scrapedGame{
			Home:      home,
			Away:      away,
			HomeScore: g.score[2],
			AwayScore: g.score[1],
		})
	}

	if dropped > 0 {
		slog.Warn("Dropped incomplete Haslametrics games", "count", dropped)
	}
	return games, nil
}
