package telemetry

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pthm-cable/trophic/species"
	"github.com/pthm-cable/trophic/systems"
)

func testTable(t *testing.T) *species.Table {
	t.Helper()
	base := species.Genotype{
		InitialCarbon: 1, MinCarbon: 0.1, MaxCarbon: 5, BreedCarbon: 2,
		SmallMeal: 0.1, BigMeal: 0.5,
	}
	grass := base
	grass.Name = "grass"
	rabbit := base
	rabbit.Name = "rabbit"
	rabbit.Kingdom = species.KingdomAnimal
	rabbit.Diet = species.DietHerbivore
	fox := base
	fox.Name = "fox"
	fox.Kingdom = species.KingdomAnimal
	fox.Diet = species.DietCarnivore

	table, err := species.NewTable([]*species.Genotype{&grass, &rabbit, &fox})
	if err != nil {
		t.Fatalf("NewTable() error = %v", err)
	}
	return table
}

func readLines(t *testing.T, path string) []string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading %s: %v", path, err)
	}
	return strings.Split(strings.TrimSpace(string(data)), "\n")
}

func TestNilOutputManagerDiscards(t *testing.T) {
	var om *OutputManager
	if err := om.WriteOrganisms(0, nil); err != nil {
		t.Errorf("nil manager WriteOrganisms() error = %v", err)
	}
	if err := om.AppendCensus(nil); err != nil {
		t.Errorf("nil manager AppendCensus() error = %v", err)
	}
	om.Close()
}

func TestWriteOrganisms(t *testing.T) {
	dir := t.TempDir()
	om, err := NewOutputManager(dir)
	if err != nil {
		t.Fatalf("NewOutputManager() error = %v", err)
	}
	defer om.Close()

	rows := []OrganismRow{
		{X: 1.5, Y: 2.5, Species: "grass", Carbon: 1.25, Age: 3},
		{X: 4, Y: 5, Species: "rabbit", Carbon: 0.8, Age: 1},
	}
	if err := om.WriteOrganisms(40, rows); err != nil {
		t.Fatalf("WriteOrganisms() error = %v", err)
	}

	lines := readLines(t, filepath.Join(dir, "organisms_000040.tsv"))
	if len(lines) != 3 {
		t.Fatalf("got %d lines, want header + 2 rows", len(lines))
	}
	if lines[0] != "x\ty\tspecies\tcarbon\tage" {
		t.Errorf("header = %q", lines[0])
	}
	if !strings.Contains(lines[1], "grass") || !strings.Contains(lines[1], "\t") {
		t.Errorf("row = %q, want tab-delimited grass row", lines[1])
	}
}

func TestAppendCensusWritesHeaderOnce(t *testing.T) {
	dir := t.TempDir()
	om, err := NewOutputManager(dir)
	if err != nil {
		t.Fatalf("NewOutputManager() error = %v", err)
	}

	first := []CensusRow{
		{Step: 10, Species: "grass", Count: 50},
		{Step: 10, Species: "rabbit", Count: 0},
	}
	second := []CensusRow{
		{Step: 20, Species: "grass", Count: 55},
		{Step: 20, Species: "rabbit", Count: 0},
	}
	if err := om.AppendCensus(first); err != nil {
		t.Fatalf("AppendCensus() error = %v", err)
	}
	if err := om.AppendCensus(second); err != nil {
		t.Fatalf("AppendCensus() error = %v", err)
	}
	om.Close()

	lines := readLines(t, filepath.Join(dir, "census.tsv"))
	if len(lines) != 5 {
		t.Fatalf("got %d lines, want header + 4 rows", len(lines))
	}
	for _, line := range lines[1:] {
		if strings.Contains(line, "step") {
			t.Errorf("header repeated: %q", line)
		}
	}
	// Zero-count species stay in the census.
	if !strings.Contains(lines[2], "rabbit") {
		t.Errorf("line = %q, want rabbit row", lines[2])
	}
}

func TestWriteMatrix(t *testing.T) {
	dir := t.TempDir()
	om, err := NewOutputManager(dir)
	if err != nil {
		t.Fatalf("NewOutputManager() error = %v", err)
	}
	defer om.Close()

	table := testTable(t)
	ledger := systems.NewLedger(table)
	ledger.Record(0, 1) // rabbit ate grass
	ledger.Record(0, 1)
	ledger.Record(1, 2) // fox ate rabbit

	if err := om.WriteMatrix(table, ledger); err != nil {
		t.Fatalf("WriteMatrix() error = %v", err)
	}

	lines := readLines(t, filepath.Join(dir, "predation_matrix.tsv"))
	want := []string{
		"victim\trabbit\tfox",
		"grass\t2\t0",
		"rabbit\t0\t1",
		"fox\t0\t0",
	}
	if len(lines) != len(want) {
		t.Fatalf("got %d lines, want %d", len(lines), len(want))
	}
	for i := range want {
		if lines[i] != want[i] {
			t.Errorf("line %d = %q, want %q", i, lines[i], want[i])
		}
	}
}

func TestWriteSnapshot(t *testing.T) {
	dir := t.TempDir()
	om, err := NewOutputManager(dir)
	if err != nil {
		t.Fatalf("NewOutputManager() error = %v", err)
	}
	defer om.Close()

	snap := &Snapshot{
		Seed: 42, Step: 100,
		XLength: 10, YLength: 10, NX: 2, NY: 2,
		CellFreeCarbon: []float64{1, 2, 3, 4},
		Organisms: []OrganismState{
			{Species: "grass", X: 1, Y: 1, Carbon: 1.5, Age: 10, Cell: 0},
		},
	}
	if err := om.WriteSnapshot(snap); err != nil {
		t.Fatalf("WriteSnapshot() error = %v", err)
	}

	data, err := os.ReadFile(filepath.Join(dir, "snapshot.json"))
	if err != nil {
		t.Fatalf("reading snapshot: %v", err)
	}
	for _, needle := range []string{`"version": 1`, `"seed": 42`, `"species": "grass"`} {
		if !strings.Contains(string(data), needle) {
			t.Errorf("snapshot missing %s", needle)
		}
	}
}
