package kenpom

import (
	"encoding/json"
	"testing"

	"github.com/hoopcast/hoopcast/internal/pkg/models"
	"github.com/hoopcast/hoopcast/internal/pkg/teams"
	"github.com/hoopcast/hoopcast/internal/predictor/model"
)

const ratingsJSON = `[
  {"TeamName": "Connecticut", "AdjOE": 122.3, "AdjDE": 94.1, "AdjTempo": 65.8, "SOS": 10.2},
  {"TeamName": "Purdue", "AdjOE": "120.1", "AdjDE": "96.4", "AdjTempo": "67.3", "SOS": "8.9"},
  {"TeamName": "Broken U", "AdjOE": "n/a", "AdjDE": 100.0, "AdjTempo": 66.0, "SOS": 0},
  {"TeamName": "Null U", "AdjOE": 110.0, "AdjDE": null, "AdjTempo": 66.0, "SOS": 0},
  {"TeamName": "Army", "AdjOE": 104.5, "AdjDE": 103.2, "AdjTempo": 64.1, "SOS": -2.0}
]`

func TestBuildRatings(t *testing.T) {
	// Decoding must survive rows with non-numeric cells; only the
	// affected rows are dropped.
	var rows []ratingRow
	if err := json.Unmarshal([]byte(ratingsJSON), &rows); err != nil {
		t.Fatalf("unmarshal fixture: %v", err)
	}

	resolver := teams.NewResolver(teams.Table{
		models.SourceKenpom: {
			"Connecticut": "Connecticut",
			"Purdue":      "Purdue",
			"Army":        "Army",
		},
	})
	hca := map[string]float64{"Connecticut": 2.8, "Army": 0}

	ratings := buildRatings(rows, resolver, hca)

	if len(ratings) != 3 {
		t.Fatalf("got %d ratings, want 3 (malformed rows dropped)", len(ratings))
	}

	uconn := ratings["Connecticut"]
	if uconn.AdjOff != 122.3 || uconn.AdjDef != 94.1 || uconn.AdjTempo != 65.8 {
		t.Errorf("Connecticut rating = %+v", uconn)
	}
	if uconn.HCA != 2.8 {
		t.Errorf("Connecticut HCA = %.1f, want 2.8", uconn.HCA)
	}

	// String-encoded numbers are accepted.
	purdue := ratings["Purdue"]
	if purdue.AdjOff != 120.1 {
		t.Errorf("Purdue AdjOff = %.1f, want 120.1", purdue.AdjOff)
	}
	if purdue.HCA != model.DefaultHCA {
		t.Errorf("Purdue HCA = %.1f, want default %.1f (no table entry)", purdue.HCA, model.DefaultHCA)
	}

	// An explicit 0.0 entry is a real value, not missing data.
	if army := ratings["Army"]; army.HCA != 0 {
		t.Errorf("Army HCA = %.1f, want explicit 0", army.HCA)
	}

	for _, name := range []string{"Broken U", "Null U"} {
		if _, ok := ratings[name]; ok {
			t.Errorf("row %q with unusable rating must be dropped", name)
		}
	}
}

func TestNumberField(t *testing.T) {
	if v, err := numberField(json.RawMessage(`104.6`)); err != nil || v != 104.6 {
		t.Errorf("bare number = (%v, %v)", v, err)
	}
	if v, err := numberField(json.RawMessage(`"104.6"`)); err != nil || v != 104.6 {
		t.Errorf("string number = (%v, %v)", v, err)
	}
	if _, err := numberField(json.RawMessage(`"n/a"`)); err == nil {
		t.Error("expected error for non-numeric string")
	}
	if _, err := numberField(nil); err == nil {
		t.Error("expected error for absent field")
	}
}
