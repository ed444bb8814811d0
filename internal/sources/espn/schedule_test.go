package espn

import (
	"encoding/json"
	"testing"

	"github.com/hoopcast/hoopcast/internal/pkg/config"
	"github.com/hoopcast/hoopcast/internal/pkg/models"
	"github.com/hoopcast/hoopcast/internal/pkg/teams"
)

const scoreboardJSON = `{
  "events": [
    {
      "id": "401700001",
      "date": "2026-02-04T00:00Z",
      "status": {"type": {"description": "Scheduled"}},
      "competitions": [
        {
          "venue": {"fullName": "Mackey Arena"},
          "neutralSite": false,
          "competitors": [
            {"homeAway": "home", "team": {"displayName": "Purdue Boilermakers"}},
            {"homeAway": "away", "team": {"displayName": "UConn Huskies"}}
          ]
        }
      ]
    },
    {
      "id": "401700002",
      "date": "2026-02-04T01:30Z",
      "status": {"type": {"description": "Scheduled"}},
      "competitions": [
        {
          "venue": {"fullName": "Neutral Dome"},
          "neutralSite": true,
          "competitors": [
            {"homeAway": "home", "team": {"displayName": "Duke Blue Devils"}},
            {"homeAway": "away", "team": {"displayName": "Kansas Jayhawks"}}
          ]
        }
      ]
    },
    {
      "id": "401700003",
      "date": "2026-02-04T02:00Z",
      "status": {"type": {"description": "Scheduled"}},
      "competitions": [
        {"venue": {"fullName": "Broken"}, "competitors": [{"homeAway": "home", "team": {"displayName": "Lonely"}}]}
      ]
    }
  ]
}`

func testClient() *Client {
	resolver := teams.NewResolver(teams.Table{
		models.SourceESPN: {
			"Purdue Boilermakers": "Purdue",
			"UConn Huskies":       "Connecticut",
			"Duke Blue Devils":    "Duke",
			"Kansas Jayhawks":     "Kansas",
		},
	})
	return NewClient(&config.ScheduleConfig{}, "", resolver)
}

func TestParseEvents(t *testing.T) {
	var resp scoreboardResponse
	if err := json.Unmarshal([]byte(scoreboardJSON), &resp); err != nil {
		t.Fatalf("unmarshal fixture: %v", err)
	}

	c := testClient()
	matchups := c.parseEvents(resp.Events)

	if len(matchups) != 2 {
		t.Fatalf("parsed %d matchups, want 2 (one-competitor event dropped)", len(matchups))
	}

	first := matchups[0]
	if first.HomeTeam != "Purdue" || first.AwayTeam != "Connecticut" {
		t.Errorf("teams not canonicalized: %s vs %s", first.HomeTeam, first.AwayTeam)
	}
	if first.NeutralSite {
		t.Error("first game should not be neutral site")
	}
	if first.Venue != "Mackey Arena" {
		t.Errorf("venue = %q", first.Venue)
	}
	if first.StartTime.IsZero() {
		t.Error("start time not parsed")
	}

	if !matchups[1].NeutralSite {
		t.Error("second game should be neutral site")
	}
}
