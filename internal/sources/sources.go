// Package sources defines the prediction-source interface and the
// registry the pipeline selects enabled sources from.
package sources

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/hoopcast/hoopcast/internal/pkg/config"
	"github.com/hoopcast/hoopcast/internal/pkg/models"
	"github.com/hoopcast/hoopcast/internal/pkg/teams"
)

// Source produces score predictions for a day's slate of matchups.
// date is the run's requested slate date, not derived from individual
// game timestamps (evening games carry next-day UTC times). A source
// that is missing data for a matchup skips it (reported via
// SkippedMatchup), it never fabricates a score. A returned error means
// the whole source failed this run; the pipeline continues without it.
type Source interface {
	Name() string
	Predict(ctx context.Context, date time.Time, slate []models.Matchup) ([]models.SourcePrediction, []models.SkippedMatchup, error)
}

type Factory func(cfg *config.Config, resolver *teams.Resolver) (Source, error)

var (
	registryMu sync.RWMutex
	registry   = map[string]Factory{}
)

func Register(name string, f Factory) {
	n := strings.ToLower(strings.TrimSpace(name))
	if n == "" {
		panic("sources: empty name in Register")
	}
	if f == nil {
		panic("sources: nil factory in Register for " + n)
	}

	registryMu.Lock()
	defer registryMu.Unlock()
	if _, exists := registry[n]; exists {
		panic("sources: duplicate registration for " + n)
	}
	registry[n] = f
}

func Available() map[string]Factory {
	registryMu.RLock()
	defer registryMu.RUnlock()
	out := make(map[string]Factory, len(registry))
	for k, v := range registry {
		out[k] = v
	}
	return out
}

func AvailableNames() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()
	out := make([]string, 0, len(registry))
	for k := range registry {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// Select builds the enabled sources. An empty enabled list selects every
// registered source; unknown names are an error.
func Select(cfg *config.Config, resolver *teams.Resolver) ([]Source, error) {
	available := Available()

	enabledSet := make(map[string]bool)
	for _, name := range cfg.Sources.Enabled {
		n := strings.ToLower(strings.TrimSpace(name))
		if n == "" {
			continue
		}
		if _, ok := available[n]; !ok {
			return nil, fmt.Errorf("unknown source %q in sources.enabled (available: %v)", n, AvailableNames())
		}
		enabledSet[n] = true
	}

	var selected []Source
	for _, name := range AvailableNames() {
		if len(enabledSet) > 0 && !enabledSet[name] {
			continue
		}
		src, err := available[name](cfg, resolver)
		if err != nil {
			return nil, fmt.Errorf("create source %s: %w", name, err)
		}
		selected = append(selected, src)
	}

	if len(selected) == 0 {
		return nil, fmt.Errorf("no sources selected (sources.enabled=%v)", cfg.Sources.Enabled)
	}
	return selected, nil
}
