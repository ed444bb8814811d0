package teams

import (
	"encoding/json"
	"fmt"
	"os"
	"regexp"
	"sort"
	"strings"
	"sync"

	"github.com/hoopcast/hoopcast/internal/pkg/models"
)

// Table maps (source, raw spelling) -> canonical team name. It is loaded
// once per run and treated as an immutable snapshot; updating the mapping
// means constructing a new Resolver.
type Table map[models.Source]map[string]string

// rankSuffix matches the ranking number the Haslametrics board appends
// to team names, e.g. "Purdue 3".
var rankSuffix = regexp.MustCompile(`\s*\d+$`)

// rankedSources lists feeds that append a ranking number to names.
// Stripping must not run for the rest: a schedule or API spelling that
// legitimately ends in digits would be mangled before lookup.
var rankedSources = map[models.Source]bool{
	models.SourceHaslametrics: true,
}

// Resolver maps source-specific team spellings to canonical identities.
// Lookup is exact-match only: ambiguous spellings must be added to the
// mapping table by hand, never guessed.
type Resolver struct {
	table Table

	mu       sync.Mutex
	unmapped map[string]struct{}
}

func NewResolver(table Table) *Resolver {
	return &Resolver{
		table:    table,
		unmapped: make(map[string]struct{}),
	}
}

// LoadTable reads a mapping file of the form
// {"espn": {"UConn Huskies": "Connecticut"}, "torvik": {...}, ...}.
func LoadTable(path string) (Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read team mapping file: %w", err)
	}

	var raw map[string]map[string]string
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse team mapping file: %w", err)
	}

	table := make(Table, len(raw))
	for src, entries := range raw {
		table[models.Source(src)] = entries
	}
	return table, nil
}

// Canonicalize maps a raw team name from the given source to its canonical
// identity. For sources that append a ranking number the trailing rank is
// stripped before lookup. Unknown names fall back to the (rank-stripped)
// raw name itself so downstream stages still have a usable key; the miss
// is recorded for the unmapped report and ok is false.
func (r *Resolver) Canonicalize(raw string, src models.Source) (string, bool) {
	name := strings.TrimSpace(raw)
	if rankedSources[src] {
		name = strings.TrimSpace(rankSuffix.ReplaceAllString(name, ""))
	}
	if name == "" {
		return "", false
	}

	if byName, ok := r.table[src]; ok {
		if canonical, ok := byName[name]; ok {
			return canonical, true
		}
	}

	r.mu.Lock()
	r.unmapped[name] = struct{}{}
	r.mu.Unlock()

	return name, false
}

// Unmapped returns every name that missed the mapping table this run,
// sorted, each exactly once no matter how many matchups referenced it.
func (r *Resolver) Unmapped() []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]string, 0, len(r.unmapped))
	for name := range r.unmapped {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}
