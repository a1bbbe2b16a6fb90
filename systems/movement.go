package systems

import (
	"math/rand"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/trophic/components"
)

// MovementSystem jitters animals around the domain. Plants never move.
type MovementSystem struct {
	posMap *ecs.Map1[components.Position]
	orgMap *ecs.Map1[components.Organism]
	rng    *rand.Rand
}

// NewMovementSystem creates a movement system sharing the run's RNG.
func NewMovementSystem(w *ecs.World, rng *rand.Rand) *MovementSystem {
	return &MovementSystem{
		posMap: ecs.NewMap1[components.Position](w),
		orgMap: ecs.NewMap1[components.Organism](w),
		rng:    rng,
	}
}

// Move applies one random walk step to a single animal: an independent
// uniform draw in [-mobility, mobility] per axis, reflected elastically off
// the domain boundary so the final coordinate stays inside. The cell index
// is recomputed afterwards and the moved flag set, so the step orchestrator
// never moves the same animal twice in one phase. Returns the new cell
// index.
func (s *MovementSystem) Move(e ecs.Entity, d *Domain) int {
	pos := s.posMap.Get(e)
	org := s.orgMap.Get(e)
	m := org.Genotype.Mobility

	dx := (s.rng.Float64()*2 - 1) * m
	dy := (s.rng.Float64()*2 - 1) * m

	pos.X += reflect(pos.X, dx, d.XLength)
	pos.Y += reflect(pos.Y, dy, d.YLength)

	org.Cell = d.CellIndexOf(pos.X, pos.Y)
	org.Moved = true
	return org.Cell
}

// reflect bounces a displacement off the [0, length] interval. The reflected
// displacement is -delta-coord for a lower-bound violation and the symmetric
// expression for the upper bound; with mobility below the domain length the
// result always lands inside.
func reflect(coord, delta, length float64) float64 {
	if coord+delta < 0 {
		return -delta - coord
	}
	if coord+delta > length {
		return -delta + (length - coord)
	}
	return delta
}
