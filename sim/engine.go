// Package sim orchestrates the simulation: it owns the world, the cells and
// the per-step pipeline that advances global state.
package sim

import (
	"fmt"
	"math/rand"

	"github.com/mlange-42/ark/ecs"
	"gonum.org/v1/gonum/floats"

	"github.com/pthm-cable/trophic/components"
	"github.com/pthm-cable/trophic/species"
	"github.com/pthm-cable/trophic/systems"
	"github.com/pthm-cable/trophic/telemetry"
)

// Options configures a run.
type Options struct {
	Seed          int64
	TotalCarbon   float64 // starting carbon across organisms and pools
	Steps         int     // fixed run length; extinction does not stop early
	PrintInterval int     // emit state every N steps
	LogStats      bool    // log window stats via slog
}

// Engine drives the full per-step pipeline across all cells.
type Engine struct {
	world  *ecs.World
	rng    *rand.Rand
	domain *systems.Domain
	table  *species.Table

	cells  []systems.Cell
	ledger *systems.Ledger

	mapper *ecs.Map2[components.Position, components.Organism]
	posMap *ecs.Map1[components.Position]
	orgMap *ecs.Map1[components.Organism]
	filter *ecs.Filter2[components.Position, components.Organism]

	feeding   *systems.FeedingSystem
	photo     *systems.PhotosynthesisSystem
	breeding  *systems.BreedingSystem
	movement  *systems.MovementSystem
	collector *telemetry.Collector

	opts Options
	step int
}

// New builds a world from the domain, species table and per-species initial
// population counts, then seeds it. Counts are indexed by dense species ID.
func New(domain *systems.Domain, table *species.Table, counts []int, opts Options) (*Engine, error) {
	if len(counts) != table.Len() {
		return nil, fmt.Errorf("got %d population counts for %d species", len(counts), table.Len())
	}
	if opts.Steps <= 0 {
		return nil, fmt.Errorf("step count must be positive, got %d", opts.Steps)
	}
	if opts.PrintInterval <= 0 {
		return nil, fmt.Errorf("print interval must be positive, got %d", opts.PrintInterval)
	}

	world := ecs.NewWorld()
	rng := rand.New(rand.NewSource(opts.Seed))

	e := &Engine{
		world:     world,
		rng:       rng,
		domain:    domain,
		table:     table,
		cells:     systems.NewCells(domain),
		ledger:    systems.NewLedger(table),
		mapper:    ecs.NewMap2[components.Position, components.Organism](world),
		posMap:    ecs.NewMap1[components.Position](world),
		orgMap:    ecs.NewMap1[components.Organism](world),
		filter:    ecs.NewFilter2[components.Position, components.Organism](world),
		feeding:   systems.NewFeedingSystem(world, rng),
		photo:     systems.NewPhotosynthesisSystem(rng),
		breeding:  systems.NewBreedingSystem(world, rng),
		movement:  systems.NewMovementSystem(world, rng),
		collector: telemetry.NewCollector(),
		opts:      opts,
	}

	if err := e.seed(counts); err != nil {
		return nil, err
	}
	return e, nil
}

// seed places the initial populations at uniform random positions and splits
// the leftover starting carbon evenly across the cells' free pools.
func (e *Engine) seed(counts []int) error {
	bound := 0.0
	for id, n := range counts {
		g := e.table.Get(id)
		for i := 0; i < n; i++ {
			x := e.rng.Float64() * e.domain.XLength
			y := e.rng.Float64() * e.domain.YLength
			ci := e.domain.CellIndexOf(x, y)
			cell := &e.cells[ci]

			if g.Kingdom == species.KingdomPlant {
				cell.Plants = append(cell.Plants, systems.Plant{
					X:         x,
					Y:         y,
					Carbon:    g.InitialCarbon,
					Alive:     true,
					Genotype:  g,
					SpeciesID: id,
				})
			} else {
				pos := components.Position{X: x, Y: y}
				org := components.Organism{
					Genotype:  g,
					SpeciesID: id,
					Carbon:    g.InitialCarbon,
					Cell:      ci,
					Alive:     true,
				}
				entity := e.mapper.NewEntity(&pos, &org)
				cell.Animals = append(cell.Animals, entity)
			}
			bound += g.InitialCarbon
		}
	}

	free := e.opts.TotalCarbon - bound
	if free < 0 {
		return fmt.Errorf("total carbon %g cannot cover %g of seeded organisms", e.opts.TotalCarbon, bound)
	}
	perCell := free / float64(len(e.cells))
	for i := range e.cells {
		e.cells[i].FreeCarbon = perCell
	}
	return nil
}

// Tick returns the number of completed steps.
func (e *Engine) Tick() int { return e.step }

// Done reports whether the configured step count has been reached.
func (e *Engine) Done() bool { return e.step >= e.opts.Steps }

// Domain returns the grid geometry.
func (e *Engine) Domain() *systems.Domain { return e.domain }

// Table returns the species table.
func (e *Engine) Table() *species.Table { return e.table }

// Ledger returns the accumulated predation ledger.
func (e *Engine) Ledger() *systems.Ledger { return e.ledger }

// Cells returns the cell collection. Callers must not mutate it.
func (e *Engine) Cells() []systems.Cell { return e.cells }

// Census counts living organisms per species across all cells, indexed by
// dense species ID. Unseeded and extinct species report zero.
func (e *Engine) Census() []int {
	counts := make([]int, e.table.Len())

	query := e.filter.Query()
	for query.Next() {
		_, org := query.Get()
		if org.Alive {
			counts[org.SpeciesID]++
		}
	}
	for ci := range e.cells {
		for i := range e.cells[ci].Plants {
			if e.cells[ci].Plants[i].Alive {
				counts[e.cells[ci].Plants[i].SpeciesID]++
			}
		}
	}
	return counts
}

// VisitOrganisms calls fn for every living organism. The viewer uses this;
// fn must not mutate state.
func (e *Engine) VisitOrganisms(fn func(x, y float64, g *species.Genotype)) {
	query := e.filter.Query()
	for query.Next() {
		pos, org := query.Get()
		if org.Alive {
			fn(pos.X, pos.Y, org.Genotype)
		}
	}
	for ci := range e.cells {
		for i := range e.cells[ci].Plants {
			p := &e.cells[ci].Plants[i]
			if p.Alive {
				fn(p.X, p.Y, p.Genotype)
			}
		}
	}
}

// TotalCarbon sums all free-pool and organism carbon. Conservation holds
// across steps to within floating-point tolerance.
func (e *Engine) TotalCarbon() float64 {
	free := make([]float64, len(e.cells))
	for i := range e.cells {
		free[i] = e.cells[i].FreeCarbon
	}
	total := floats.Sum(free)
	for i := range e.cells {
		total += e.cells[i].RefreshBoundCarbon(e.orgMap)
	}
	return total
}
