package config

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"

	"github.com/gocarina/gocsv"

	"github.com/pthm-cable/trophic/species"
)

func init() {
	// Input files are tab-delimited.
	gocsv.SetCSVReader(func(in io.Reader) gocsv.CSVReader {
		r := csv.NewReader(in)
		r.Comma = '\t'
		return r
	})
}

// Grid holds the domain extent and cell counts read from the grid file.
type Grid struct {
	XLength float64 `csv:"x_length"`
	YLength float64 `csv:"y_length"`
	NX      int     `csv:"num_x"`
	NY      int     `csv:"num_y"`
}

// Settings holds the global run parameters read from the settings file.
type Settings struct {
	TotalCarbon   float64 `csv:"total_carbon"`
	PrintInterval int     `csv:"print_interval"`
	NumSteps      int     `csv:"num_steps"`
}

// genotypeRow is one line of the genotype table.
type genotypeRow struct {
	Species       string  `csv:"species"`
	Kingdom       string  `csv:"kingdom"`
	Diet          string  `csv:"diet"`
	InitialCarbon float64 `csv:"initial_carbon"`
	MinCarbon     float64 `csv:"min_carbon"`
	MaxCarbon     float64 `csv:"max_carbon"`
	BreedCarbon   float64 `csv:"breed_carbon"`
	Burn          float64 `csv:"burn"`
	SmallMeal     float64 `csv:"small_meal"`
	BigMeal       float64 `csv:"big_meal"`
	Mobility      float64 `csv:"mobility"`
	SpawnProb     float64 `csv:"spawn_prob"`
	Count         int     `csv:"count"`
}

// ReadGrid parses and validates the grid file.
func ReadGrid(path string) (*Grid, error) {
	rows, err := readRows[Grid](path)
	if err != nil {
		return nil, err
	}
	if len(rows) != 1 {
		return nil, fmt.Errorf("grid file %s: want exactly one row, got %d", path, len(rows))
	}
	g := &rows[0]
	if g.XLength <= 0 || g.YLength <= 0 {
		return nil, fmt.Errorf("grid file %s: extent must be positive, got %g x %g", path, g.XLength, g.YLength)
	}
	if g.NX <= 0 || g.NY <= 0 {
		return nil, fmt.Errorf("grid file %s: cell counts must be positive, got %d x %d", path, g.NX, g.NY)
	}
	return g, nil
}

// ReadSettings parses and validates the settings file.
func ReadSettings(path string) (*Settings, error) {
	rows, err := readRows[Settings](path)
	if err != nil {
		return nil, err
	}
	if len(rows) != 1 {
		return nil, fmt.Errorf("settings file %s: want exactly one row, got %d", path, len(rows))
	}
	s := &rows[0]
	if s.TotalCarbon <= 0 {
		return nil, fmt.Errorf("settings file %s: total carbon must be positive, got %g", path, s.TotalCarbon)
	}
	if s.PrintInterval <= 0 {
		return nil, fmt.Errorf("settings file %s: print interval must be positive, got %d", path, s.PrintInterval)
	}
	if s.NumSteps <= 0 {
		return nil, fmt.Errorf("settings file %s: step count must be positive, got %d", path, s.NumSteps)
	}
	return s, nil
}

// ReadGenotypes parses the genotype table into a validated species table and
// the per-species initial population counts, in dense-ID order.
func ReadGenotypes(path string) (*species.Table, []int, error) {
	rows, err := readRows[genotypeRow](path)
	if err != nil {
		return nil, nil, err
	}
	if len(rows) == 0 {
		return nil, nil, fmt.Errorf("genotype table %s: no species defined", path)
	}

	genotypes := make([]*species.Genotype, 0, len(rows))
	counts := make([]int, 0, len(rows))
	for _, row := range rows {
		kingdom, err := species.ParseKingdom(row.Kingdom)
		if err != nil {
			return nil, nil, fmt.Errorf("genotype table %s, species %s: %w", path, row.Species, err)
		}
		diet, err := species.ParseDiet(row.Diet)
		if err != nil {
			return nil, nil, fmt.Errorf("genotype table %s, species %s: %w", path, row.Species, err)
		}
		if row.Count < 0 {
			return nil, nil, fmt.Errorf("genotype table %s, species %s: negative count %d", path, row.Species, row.Count)
		}
		genotypes = append(genotypes, &species.Genotype{
			Name:          row.Species,
			Kingdom:       kingdom,
			Diet:          diet,
			InitialCarbon: row.InitialCarbon,
			MinCarbon:     row.MinCarbon,
			MaxCarbon:     row.MaxCarbon,
			BreedCarbon:   row.BreedCarbon,
			Burn:          row.Burn,
			SmallMeal:     row.SmallMeal,
			BigMeal:       row.BigMeal,
			Mobility:      row.Mobility,
			SpawnProb:     row.SpawnProb,
		})
		counts = append(counts, row.Count)
	}

	table, err := species.NewTable(genotypes)
	if err != nil {
		return nil, nil, fmt.Errorf("genotype table %s: %w", path, err)
	}
	return table, counts, nil
}

// readRows unmarshals one tab-delimited file into typed rows.
func readRows[T any](path string) ([]T, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	var rows []T
	if err := gocsv.Unmarshal(f, &rows); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return rows, nil
}
