// Package render writes the daily slate as a static HTML report.
package render

import (
	"encoding/json"
	"fmt"
	"html/template"
	"os"
	"path/filepath"
	"time"

	"github.com/hoopcast/hoopcast/internal/pkg/models"
)

// Page is the template input for one day's report.
type Page struct {
	Date  string
	Games []Game
}

type Game struct {
	HomeTeam   string
	AwayTeam   string
	HomeScore  int
	AwayScore  int
	HomeLogo   string
	AwayLogo   string
	HomeWins   bool
	AwayWins   bool
	Tie        bool
	Venue      string
	Neutral    bool
	StartTime  string
	SourceList string
}

// LoadLogoMap reads the canonical-name -> logo URL file produced by the
// fetch-logos tool. A missing file just means no logos in the report.
func LoadLogoMap(path string) map[string]string {
	data, err := os.ReadFile(path)
	if err != nil {
		return map[string]string{}
	}
	var logos map[string]string
	if err := json.Unmarshal(data, &logos); err != nil {
		return map[string]string{}
	}
	return logos
}

// WriteReport renders the slate to <outputDir>/<yyyymmdd>.html and
// refreshes index.html to the same content.
func WriteReport(outputDir string, date time.Time, preds []models.ConsensusPrediction, logos map[string]string) (string, error) {
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return "", fmt.Errorf("create output dir: %w", err)
	}

	page := Page{Date: date.Format("Monday, January 2, 2006")}
	for _, p := range preds {
		outcome := p.Outcome()
		var sources string
		for i, src := range p.Sources {
			if i > 0 {
				sources += ", "
			}
			sources += string(src)
		}

		start := ""
		if !p.Matchup.StartTime.IsZero() {
			start = p.Matchup.StartTime.Format("3:04 PM MST")
		}

		page.Games = append(page.Games, Game{
			HomeTeam:   p.Matchup.HomeTeam,
			AwayTeam:   p.Matchup.AwayTeam,
			HomeScore:  p.HomeScore,
			AwayScore:  p.AwayScore,
			HomeLogo:   logos[p.Matchup.HomeTeam],
			AwayLogo:   logos[p.Matchup.AwayTeam],
			HomeWins:   outcome == models.OutcomeHomeWin,
			AwayWins:   outcome == models.OutcomeAwayWin,
			Tie:        outcome == models.OutcomeTie,
			Venue:      p.Matchup.Venue,
			Neutral:    p.Matchup.NeutralSite,
			StartTime:  start,
			SourceList: sources,
		})
	}

	path := filepath.Join(outputDir, date.Format("20060102")+".html")
	if err := writePage(path, page); err != nil {
		return "", err
	}
	if err := writePage(filepath.Join(outputDir, "index.html"), page); err != nil {
		return "", err
	}
	return path, nil
}

func writePage(path string, page Page) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create report file: %w", err)
	}
	defer f.Close()

	if err := reportTemplate.Execute(f, page); err != nil {
		return fmt.Errorf("render report: %w", err)
	}
	return nil
}

var reportTemplate = template.Must(template.New("report").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>College Basketball Predictions — {{.Date}}</title>
<style>
body { font-family: -apple-system, "Segoe UI", Roboto, sans-serif; background: #f4f4f6; margin: 0; padding: 1.5rem; }
h1 { text-align: center; font-size: 1.4rem; }
.games { max-width: 640px; margin: 0 auto; }
.game { background: #fff; border-radius: 8px; box-shadow: 0 1px 3px rgba(0,0,0,.12); margin-bottom: .75rem; padding: .75rem 1rem; }
.row { display: flex; align-items: center; justify-content: space-between; padding: .25rem 0; }
.team { display: flex; align-items: center; gap: .5rem; }
.team img { width: 28px; height: 28px; object-fit: contain; }
.winner { font-weight: 700; }
.score { font-variant-numeric: tabular-nums; font-size: 1.1rem; }
.meta { color: #777; font-size: .78rem; margin-top: .35rem; }
.tie { color: #b25c00; font-size: .78rem; }
</style>
</head>
<body>
<h1>{{.Date}}</h1>
<div class="games">
{{range .Games}}
<div class="game">
	<div class="row{{if .AwayWins}} winner{{end}}">
		<span class="team">{{if .AwayLogo}}<img src="{{.AwayLogo}}" alt="">{{end}}{{.AwayTeam}}</span>
		<span class="score">{{.AwayScore}}</span>
	</div>
	<div class="row{{if .HomeWins}} winner{{end}}">
		<span class="team">{{if .HomeLogo}}<img src="{{.HomeLogo}}" alt="">{{end}}{{.HomeTeam}}</span>
		<span class="score">{{.HomeScore}}</span>
	</div>
	{{if .Tie}}<div class="tie">Even — consensus has no leader</div>{{end}}
	<div class="meta">{{if .StartTime}}{{.StartTime}}{{end}}{{if .Venue}} · {{.Venue}}{{end}}{{if .Neutral}} · neutral site{{end}}{{if .SourceList}} · {{.SourceList}}{{end}}</div>
</div>
{{else}}
<p>No games with usable predictions.</p>
{{end}}
</div>
</body>
</html>
`))
