package sim

import (
	"log/slog"

	"github.com/pthm-cable/trophic/species"
	"github.com/pthm-cable/trophic/telemetry"
)

// Advance runs one step and performs any emission that falls due. When the
// configured step count is reached it writes the final ledger and snapshot.
// Emission reads state but never mutates it.
func (e *Engine) Advance(om *telemetry.OutputManager) error {
	if e.Done() {
		return nil
	}
	e.Step()

	if e.step%e.opts.PrintInterval == 0 || e.Done() {
		if err := e.emit(om); err != nil {
			return err
		}
	}

	if e.Done() {
		if err := om.WriteMatrix(e.table, e.ledger); err != nil {
			return err
		}
		if err := om.WriteSnapshot(e.snapshot()); err != nil {
			return err
		}
		slog.Info("run complete", "steps", e.step, "interactions", e.ledger.Total())
	}
	return nil
}

// Run drives the engine to completion in headless mode.
func (e *Engine) Run(om *telemetry.OutputManager) error {
	for !e.Done() {
		if err := e.Advance(om); err != nil {
			return err
		}
	}
	return nil
}

// emit hands the full cell/organism state to the output writers.
func (e *Engine) emit(om *telemetry.OutputManager) error {
	orgRows, cellRows, carbon := e.stateRows()

	if err := om.WriteOrganisms(e.step, orgRows); err != nil {
		return err
	}
	if err := om.WriteCells(e.step, cellRows); err != nil {
		return err
	}

	census := e.Census()
	censusRows := make([]telemetry.CensusRow, 0, e.table.Len())
	animals, plants := 0, 0
	for id, g := range e.table.All() {
		censusRows = append(censusRows, telemetry.CensusRow{
			Step:    e.step,
			Species: g.Name,
			Count:   census[id],
		})
		if g.Kingdom == species.KingdomAnimal {
			animals += census[id]
		} else {
			plants += census[id]
		}
	}
	if err := om.AppendCensus(censusRows); err != nil {
		return err
	}

	stats := telemetry.WindowStats{
		Step:    e.step,
		Animals: animals,
		Plants:  plants,
	}
	for i := range e.cells {
		stats.FreeCarbon += e.cells[i].FreeCarbon
		stats.BoundCarbon += e.cells[i].BoundCarbon
	}
	stats.TotalCarbon = stats.FreeCarbon + stats.BoundCarbon
	stats.CarbonMean, stats.CarbonStd = telemetry.ComputeCarbonStats(carbon)
	e.collector.Drain(&stats)

	if e.opts.LogStats {
		stats.Log()
	}
	return om.AppendStats(stats)
}

// stateRows materializes writer rows for every living organism and cell,
// refreshing each cell's bound carbon first. It also collects the organism
// carbon sample for the window stats.
func (e *Engine) stateRows() ([]telemetry.OrganismRow, []telemetry.CellRow, []float64) {
	var orgRows []telemetry.OrganismRow
	var carbon []float64

	query := e.filter.Query()
	for query.Next() {
		pos, org := query.Get()
		if !org.Alive {
			continue
		}
		orgRows = append(orgRows, telemetry.OrganismRow{
			X:       pos.X,
			Y:       pos.Y,
			Species: org.Genotype.Name,
			Carbon:  org.Carbon,
			Age:     org.Age,
		})
		carbon = append(carbon, org.Carbon)
	}

	cellRows := make([]telemetry.CellRow, 0, len(e.cells))
	for i := range e.cells {
		cell := &e.cells[i]
		for j := range cell.Plants {
			p := &cell.Plants[j]
			if !p.Alive {
				continue
			}
			orgRows = append(orgRows, telemetry.OrganismRow{
				X:       p.X,
				Y:       p.Y,
				Species: p.Genotype.Name,
				Carbon:  p.Carbon,
				Age:     p.Age,
			})
			carbon = append(carbon, p.Carbon)
		}

		cell.RefreshBoundCarbon(e.orgMap)
		nAnimals, nPlants := cell.LivingCounts(e.orgMap)
		cellRows = append(cellRows, telemetry.CellRow{
			X:           (cell.X0 + cell.X1) / 2,
			Y:           (cell.Y0 + cell.Y1) / 2,
			FreeCarbon:  cell.FreeCarbon,
			BoundCarbon: cell.BoundCarbon,
			Animals:     nAnimals,
			Plants:      nPlants,
		})
	}
	return orgRows, cellRows, carbon
}

// snapshot captures the end-of-run world state.
func (e *Engine) snapshot() *telemetry.Snapshot {
	snap := &telemetry.Snapshot{
		Seed:    e.opts.Seed,
		Step:    e.step,
		XLength: e.domain.XLength,
		YLength: e.domain.YLength,
		NX:      e.domain.NX,
		NY:      e.domain.NY,
	}
	snap.CellFreeCarbon = make([]float64, len(e.cells))
	for i := range e.cells {
		snap.CellFreeCarbon[i] = e.cells[i].FreeCarbon
	}

	query := e.filter.Query()
	for query.Next() {
		pos, org := query.Get()
		if !org.Alive {
			continue
		}
		snap.Organisms = append(snap.Organisms, telemetry.OrganismState{
			Species: org.Genotype.Name,
			X:       pos.X,
			Y:       pos.Y,
			Carbon:  org.Carbon,
			Age:     org.Age,
			Cell:    org.Cell,
		})
	}
	for ci := range e.cells {
		for j := range e.cells[ci].Plants {
			p := &e.cells[ci].Plants[j]
			if !p.Alive {
				continue
			}
			snap.Organisms = append(snap.Organisms, telemetry.OrganismState{
				Species: p.Genotype.Name,
				X:       p.X,
				Y:       p.Y,
				Carbon:  p.Carbon,
				Age:     p.Age,
				Cell:    ci,
			})
		}
	}
	return snap
}
