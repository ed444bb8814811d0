package teams

import (
	"testing"

	"github.com/hoopcast/hoopcast/internal/pkg/models"
)

func testTable() Table {
	return Table{
		models.SourceESPN: {
			"UConn Huskies":    "Connecticut",
			"St. John's (NY)":  "St. John's",
			"Purdue Boilers.":  "Purdue",
		},
		models.SourceTorvik: {
			"Connecticut": "Connecticut",
		},
		models.SourceHaslametrics: {
			"Connecticut": "Connecticut",
			"Purdue":      "Purdue",
		},
	}
}

func TestCanonicalize_ExactMatchPerSource(t *testing.T) {
	r := NewResolver(testTable())

	tests := []struct {
		raw    string
		src    models.Source
		want   string
		mapped bool
	}{
		{"UConn Huskies", models.SourceESPN, "Connecticut", true},
		{"St. John's (NY)", models.SourceESPN, "St. John's", true},
		{"Connecticut", models.SourceTorvik, "Connecticut", true},
		// Same spelling, different source: ESPN table has no "Connecticut" entry.
		{"Connecticut", models.SourceESPN, "Connecticut", false},
	}
	for _, tt := range tests {
		got, ok := r.Canonicalize(tt.raw, tt.src)
		if got != tt.want || ok != tt.mapped {
			t.Errorf("Canonicalize(%q, %s) = (%q, %v), want (%q, %v)",
				tt.raw, tt.src, got, ok, tt.want, tt.mapped)
		}
	}
}

func TestCanonicalize_Deterministic(t *testing.T) {
	r := NewResolver(testTable())

	first, ok1 := r.Canonicalize("UConn Huskies", models.SourceESPN)
	for i := 0; i < 10; i++ {
		got, ok := r.Canonicalize("UConn Huskies", models.SourceESPN)
		if got != first || ok != ok1 {
			t.Fatalf("resolution changed between calls: (%q, %v) vs (%q, %v)", got, ok, first, ok1)
		}
	}
}

func TestCanonicalize_StripsTrailingRank(t *testing.T) {
	r := NewResolver(testTable())

	got, ok := r.Canonicalize("Purdue 3", models.SourceHaslametrics)
	if !ok || got != "Purdue" {
		t.Errorf("Canonicalize(%q) = (%q, %v), want (Purdue, true)", "Purdue 3", got, ok)
	}
}

func TestCanonicalize_NoRankStripForUnrankedSources(t *testing.T) {
	// Only the scraped board appends ranking numbers; a schedule or API
	// spelling that ends in digits must survive lookup untouched.
	r := NewResolver(Table{
		models.SourceESPN: {"Team USA U19": "Team USA U19"},
	})

	got, ok := r.Canonicalize("Team USA U19", models.SourceESPN)
	if !ok || got != "Team USA U19" {
		t.Errorf("Canonicalize(%q) = (%q, %v), want exact match", "Team USA U19", got, ok)
	}
}

func TestCanonicalize_UnknownNameFallsBackToRaw(t *testing.T) {
	r := NewResolver(testTable())

	got, ok := r.Canonicalize("Directional State 12", models.SourceHaslametrics)
	if ok {
		t.Errorf("unknown name reported as mapped")
	}
	if got != "Directional State" {
		t.Errorf("fallback key = %q, want rank-stripped raw name", got)
	}
}

func TestUnmapped_ReportedOncePerName(t *testing.T) {
	r := NewResolver(testTable())

	// Same unknown team referenced by several matchups, plus one more miss.
	for i := 0; i < 5; i++ {
		r.Canonicalize("Directional State", models.SourceESPN)
	}
	r.Canonicalize("Another Unknown", models.SourceTorvik)
	r.Canonicalize("UConn Huskies", models.SourceESPN) // mapped, must not appear

	got := r.Unmapped()
	want := []string{"Another Unknown", "Directional State"}
	if len(got) != len(want) {
		t.Fatalf("Unmapped() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Unmapped()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}
