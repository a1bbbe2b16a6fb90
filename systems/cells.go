package systems

import (
	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/trophic/components"
	"github.com/pthm-cable/trophic/species"
)

// Plant is an immobile organism resident in one cell. Plants never relocate,
// so they live in plain per-cell slices instead of the ECS.
type Plant struct {
	X, Y   float64
	Carbon float64
	Age    int
	Alive  bool

	Genotype  *species.Genotype
	SpeciesID int
}

// Cell owns the organisms spatially located within it plus a free-carbon
// pool. Animals and Plants are disjoint; every resident's cell index equals
// Index, and an organism belongs to exactly one cell at a time.
type Cell struct {
	Index          int
	X0, Y0, X1, Y1 float64

	Animals []ecs.Entity
	Plants  []Plant

	FreeCarbon float64

	// BoundCarbon is derived on demand by RefreshBoundCarbon and is not
	// authoritative between refreshes.
	BoundCarbon float64
}

// NewCells builds one empty cell per domain index.
func NewCells(d *Domain) []Cell {
	cells := make([]Cell, d.NumCells())
	for i := range cells {
		x0, y0, x1, y1 := d.CellBounds(i)
		cells[i] = Cell{Index: i, X0: x0, Y0: y0, X1: x1, Y1: y1}
	}
	return cells
}

// RefreshBoundCarbon recomputes the total carbon held by living residents.
func (c *Cell) RefreshBoundCarbon(orgMap *ecs.Map1[components.Organism]) float64 {
	total := 0.0
	for _, e := range c.Animals {
		org := orgMap.Get(e)
		if org.Alive {
			total += org.Carbon
		}
	}
	for i := range c.Plants {
		if c.Plants[i].Alive {
			total += c.Plants[i].Carbon
		}
	}
	c.BoundCarbon = total
	return total
}

// LivingCounts returns the number of living animals and plants.
func (c *Cell) LivingCounts(orgMap *ecs.Map1[components.Organism]) (animals, plants int) {
	for _, e := range c.Animals {
		if orgMap.Get(e).Alive {
			animals++
		}
	}
	for i := range c.Plants {
		if c.Plants[i].Alive {
			plants++
		}
	}
	return animals, plants
}
