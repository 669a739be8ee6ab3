package conformance

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
	"testing"

	"github.com/sebdah/goldie/v2"

	"github.com/oising/itc4net/itc"
)

// snapshot is the canonical, deterministically-ordered view of a
// scenario's final participants, used for golden comparison. Map
// iteration order is not stable, so the names are sorted before
// marshaling.
type snapshot struct {
	ScenarioName string            `json:"scenario_name"`
	Participants []participantView `json:"participants"`
}

type participantView struct {
	Name  string `json:"name"`
	Stamp string `json:"stamp"`
}

func newSnapshot(scenarioName string, stamps map[string]itc.Stamp) snapshot {
	names := make([]string, 0, len(stamps))
	for name := range stamps {
		names = append(names, name)
	}
	sort.Strings(names)

	views := make([]participantView, 0, len(names))
	for _, name := range names {
		views = append(views, participantView{Name: name, Stamp: stamps[name].String()})
	}

	return snapshot{ScenarioName: scenarioName, Participants: views}
}

// AssertGolden runs scenario and compares its final participants
// against a golden fixture named after the scenario. Golden files live
// under testdata/golden; regenerate them with:
//
//	go test ./internal/conformance -update
func AssertGolden(t *testing.T, scenario *Scenario) {
	t.Helper()

	result, err := Run(scenario)
	if err != nil {
		t.Fatalf("running scenario %q: %v", scenario.Name, err)
	}
	for _, failure := range result.Failures {
		t.Errorf("scenario %q: assertion failed: %s", scenario.Name, failure)
	}

	snap := newSnapshot(scenario.Name, result.Stamps)
	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		t.Fatalf("marshaling snapshot for %q: %v", scenario.Name, err)
	}

	fixturePath := filepath.Join("testdata", "golden", scenario.Name+".golden")
	if _, statErr := os.Stat(fixturePath); os.IsNotExist(statErr) {
		logger.Warn("golden fixture missing, will be written on -update",
			"scenario", scenario.Name, "path", fixturePath)
	}

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, scenario.Name, data)
}
