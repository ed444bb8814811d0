package espn

import (
	"context"
	"fmt"

	"github.com/hoopcast/hoopcast/internal/pkg/models"
)

// LogoInfo describes one team's ESPN identity, keyed by canonical name
// in the logo map file the renderer consumes.
type LogoInfo struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	ESPNName     string `json:"espn_name"`
	ShortName    string `json:"short_name"`
	Abbreviation string `json:"abbreviation"`
	LogoURL      string `json:"logo_url"`
}

type teamsResponse struct {
	Sports []struct {
		Leagues []struct {
			Teams []struct {
				Team struct {
					ID               string `json:"id"`
					DisplayName      string `json:"displayName"`
					ShortDisplayName string `json:"shortDisplayName"`
					Abbreviation     string `json:"abbreviation"`
				} `json:"team"`
			} `json:"teams"`
		} `json:"leagues"`
	} `json:"sports"`
}

// TeamLogos fetches every team's logo URL keyed by canonical name.
func (c *Client) TeamLogos(ctx context.Context) (map[string]LogoInfo, error) {
	u := fmt.Sprintf("%s/teams?limit=400", c.cfg.BaseURL)

	var resp teamsResponse
	if err := c.http.GetJSON(ctx, u, nil, &resp); err != nil {
		return nil, fmt.Errorf("fetch teams: %w", err)
	}

	logos := make(map[string]LogoInfo)
	for _, sport := range resp.Sports {
		for _, league := range sport.Leagues {
			for _, t := range league.Teams {
				team := t.Team
				if team.ID == "" || team.DisplayName == "" {
					continue
				}
				canonical, _ := c.resolver.Canonicalize(team.DisplayName, models.SourceESPN)
				logos[canonical] = LogoInfo{
					ID:           team.ID,
					Name:         canonical,
					ESPNName:     team.DisplayName,
					ShortName:    team.ShortDisplayName,
					Abbreviation: team.Abbreviation,
					LogoURL:      fmt.Sprintf("https://a.espncdn.com/i/teamlogos/ncaa/500/%s.png", team.ID),
				}
			}
		}
	}
	return logos, nil
}
