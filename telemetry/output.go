package telemetry

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"github.com/gocarina/gocsv"

	"github.com/pthm-cable/trophic/species"
	"github.com/pthm-cable/trophic/systems"
)

func init() {
	// All tabular output is tab-delimited, matching the input files.
	gocsv.SetCSVWriter(func(out io.Writer) *gocsv.SafeCSVWriter {
		w := csv.NewWriter(out)
		w.Comma = '\t'
		return gocsv.NewSafeCSVWriter(w)
	})
}

// OrganismRow is one line of the per-organism dump.
type OrganismRow struct {
	X       float64 `csv:"x"`
	Y       float64 `csv:"y"`
	Species string  `csv:"species"`
	Carbon  float64 `csv:"carbon"`
	Age     int     `csv:"age"`
}

// CellRow is one line of the per-cell summary. BoundCarbon is refreshed by
// the engine immediately before emission.
type CellRow struct {
	X           float64 `csv:"x"`
	Y           float64 `csv:"y"`
	FreeCarbon  float64 `csv:"free_carbon"`
	BoundCarbon float64 `csv:"bound_carbon"`
	Animals     int     `csv:"animals"`
	Plants      int     `csv:"plants"`
}

// CensusRow is one species' living count at one emission step. Species with
// zero living individuals are included.
type CensusRow struct {
	Step    int    `csv:"step"`
	Species string `csv:"species"`
	Count   int    `csv:"count"`
}

// OutputManager writes run output below a single directory. A nil manager
// discards everything, so the engine can call it unconditionally.
type OutputManager struct {
	dir string

	censusFile          *os.File
	censusHeaderWritten bool

	statsFile          *os.File
	statsHeaderWritten bool
}

// NewOutputManager creates the output directory and the cumulative files.
// Returns nil if dir is empty (output disabled).
func NewOutputManager(dir string) (*OutputManager, error) {
	if dir == "" {
		return nil, nil
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	om := &OutputManager{dir: dir}

	f, err := os.Create(filepath.Join(dir, "census.tsv"))
	if err != nil {
		return nil, fmt.Errorf("creating census.tsv: %w", err)
	}
	om.censusFile = f

	f, err = os.Create(filepath.Join(dir, "stats.tsv"))
	if err != nil {
		om.censusFile.Close()
		return nil, fmt.Errorf("creating stats.tsv: %w", err)
	}
	om.statsFile = f

	return om, nil
}

// Close releases the cumulative output files.
func (om *OutputManager) Close() {
	if om == nil {
		return
	}
	om.censusFile.Close()
	om.statsFile.Close()
}

// WriteOrganisms dumps every living organism at the given step to its own
// step-stamped file.
func (om *OutputManager) WriteOrganisms(step int, rows []OrganismRow) error {
	if om == nil {
		return nil
	}
	path := filepath.Join(om.dir, fmt.Sprintf("organisms_%06d.tsv", step))
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating organism dump: %w", err)
	}
	defer f.Close()
	if err := gocsv.Marshal(rows, f); err != nil {
		return fmt.Errorf("writing organism dump: %w", err)
	}
	return nil
}

// WriteCells writes the per-cell summary for one step.
func (om *OutputManager) WriteCells(step int, rows []CellRow) error {
	if om == nil {
		return nil
	}
	path := filepath.Join(om.dir, fmt.Sprintf("cells_%06d.tsv", step))
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating cell summary: %w", err)
	}
	defer f.Close()
	if err := gocsv.Marshal(rows, f); err != nil {
		return fmt.Errorf("writing cell summary: %w", err)
	}
	return nil
}

// AppendCensus appends one emission's census rows to the cumulative file.
func (om *OutputManager) AppendCensus(rows []CensusRow) error {
	if om == nil {
		return nil
	}
	if !om.censusHeaderWritten {
		if err := gocsv.Marshal(rows, om.censusFile); err != nil {
			return fmt.Errorf("writing census: %w", err)
		}
		om.censusHeaderWritten = true
		return nil
	}
	if err := gocsv.MarshalWithoutHeaders(rows, om.censusFile); err != nil {
		return fmt.Errorf("writing census: %w", err)
	}
	return nil
}

// AppendStats appends one window's stats record to the cumulative file.
func (om *OutputManager) AppendStats(stats WindowStats) error {
	if om == nil {
		return nil
	}
	records := []WindowStats{stats}
	if !om.statsHeaderWritten {
		if err := gocsv.Marshal(records, om.statsFile); err != nil {
			return fmt.Errorf("writing stats: %w", err)
		}
		om.statsHeaderWritten = true
		return nil
	}
	if err := gocsv.MarshalWithoutHeaders(records, om.statsFile); err != nil {
		return fmt.Errorf("writing stats: %w", err)
	}
	return nil
}

// WriteMatrix writes the accumulated predation matrix: one row per victim
// species, one column per animal species. The column set is dynamic, so this
// goes through encoding/csv directly rather than gocsv struct tags.
func (om *OutputManager) WriteMatrix(table *species.Table, ledger *systems.Ledger) error {
	if om == nil {
		return nil
	}
	f, err := os.Create(filepath.Join(om.dir, "predation_matrix.tsv"))
	if err != nil {
		return fmt.Errorf("creating predation matrix: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	w.Comma = '\t'

	header := []string{"victim"}
	for _, id := range ledger.EaterIDs() {
		header = append(header, table.Get(id).Name)
	}
	if err := w.Write(header); err != nil {
		return fmt.Errorf("writing predation matrix header: %w", err)
	}

	for victimID, g := range table.All() {
		record := []string{g.Name}
		for _, n := range ledger.Row(victimID) {
			record = append(record, strconv.Itoa(n))
		}
		if err := w.Write(record); err != nil {
			return fmt.Errorf("writing predation matrix row: %w", err)
		}
	}

	w.Flush()
	return w.Error()
}
