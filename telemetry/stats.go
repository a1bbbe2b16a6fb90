// Package telemetry accumulates run statistics and writes the tabular
// outputs: per-organism dumps, per-cell summaries, the species census and
// the predation matrix.
package telemetry

import (
	"log/slog"

	"gonum.org/v1/gonum/stat"
)

// WindowStats aggregates one emission window for logging and CSV output.
type WindowStats struct {
	Step int `csv:"step"`

	// Population at window end
	Animals int `csv:"animals"`
	Plants  int `csv:"plants"`

	// Carbon pools at window end
	FreeCarbon  float64 `csv:"free_carbon"`
	BoundCarbon float64 `csv:"bound_carbon"`
	TotalCarbon float64 `csv:"total_carbon"`

	// Organism carbon distribution
	CarbonMean float64 `csv:"carbon_mean"`
	CarbonStd  float64 `csv:"carbon_std"`

	// Events during the window
	Kills        int `csv:"kills"`
	Starved      int `csv:"starved"`
	AnimalBirths int `csv:"animal_births"`
	PlantBirths  int `csv:"plant_births"`
}

// ComputeCarbonStats returns mean and standard deviation of the sampled
// organism carbon values. Empty input yields zeros.
func ComputeCarbonStats(carbon []float64) (mean, std float64) {
	if len(carbon) == 0 {
		return 0, 0
	}
	mean = stat.Mean(carbon, nil)
	if len(carbon) > 1 {
		std = stat.StdDev(carbon, nil)
	}
	return mean, std
}

// Log emits the window via slog.
func (ws WindowStats) Log() {
	slog.Info("window_stats",
		"step", ws.Step,
		"animals", ws.Animals,
		"plants", ws.Plants,
		"free_carbon", ws.FreeCarbon,
		"bound_carbon", ws.BoundCarbon,
		"total_carbon", ws.TotalCarbon,
		"carbon_mean", ws.CarbonMean,
		"carbon_std", ws.CarbonStd,
		"kills", ws.Kills,
		"starved", ws.Starved,
		"animal_births", ws.AnimalBirths,
		"plant_births", ws.PlantBirths,
	)
}
