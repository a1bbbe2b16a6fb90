package systems

import (
	"math/rand"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/trophic/components"
)

// BreedingSystem splits sufficiently fed organisms by budding: the parent
// keeps half its carbon and a daughter with the other half appears in the
// same cell at a jittered position.
type BreedingSystem struct {
	mapper *ecs.Map2[components.Position, components.Organism]
	orgMap *ecs.Map1[components.Organism]
	rng    *rand.Rand
}

// NewBreedingSystem creates a breeding system sharing the run's RNG.
func NewBreedingSystem(w *ecs.World, rng *rand.Rand) *BreedingSystem {
	return &BreedingSystem{
		mapper: ecs.NewMap2[components.Position, components.Organism](w),
		orgMap: ecs.NewMap1[components.Organism](w),
		rng:    rng,
	}
}

// BreedAnimals runs one budding pass over a cell's animals. Decisions are
// independent per organism: one uniform draw against the spawn probability,
// gated on carbon reaching the breeding minimum. Daughter entities are
// committed only after the full pass so they never breed in the same call.
// Returns the number of daughters born.
func (s *BreedingSystem) BreedAnimals(cell *Cell) int {
	type bud struct {
		pos components.Position
		org components.Organism
	}
	var buds []bud

	for _, e := range cell.Animals {
		org := s.orgMap.Get(e)
		if s.rng.Float64() < org.Genotype.SpawnProb && org.Carbon >= org.Genotype.BreedCarbon {
			org.Carbon /= 2
			buds = append(buds, bud{
				pos: s.jitter(cell),
				org: components.Organism{
					Genotype:  org.Genotype,
					SpeciesID: org.SpeciesID,
					Carbon:    org.Carbon,
					Cell:      cell.Index,
					Alive:     true,
				},
			})
		}
	}

	for i := range buds {
		e := s.mapper.NewEntity(&buds[i].pos, &buds[i].org)
		cell.Animals = append(cell.Animals, e)
	}
	return len(buds)
}

// BreedPlants is the plant-side budding pass, identical in semantics.
func (s *BreedingSystem) BreedPlants(cell *Cell) int {
	var buds []Plant

	for i := range cell.Plants {
		p := &cell.Plants[i]
		if s.rng.Float64() < p.Genotype.SpawnProb && p.Carbon >= p.Genotype.BreedCarbon {
			p.Carbon /= 2
			pos := s.jitter(cell)
			buds = append(buds, Plant{
				X:         pos.X,
				Y:         pos.Y,
				Carbon:    p.Carbon,
				Alive:     true,
				Genotype:  p.Genotype,
				SpeciesID: p.SpeciesID,
			})
		}
	}

	cell.Plants = append(cell.Plants, buds...)
	return len(buds)
}

// jitter places a daughter uniformly within the cell's bounds, so parent and
// daughter never coincide exactly (visible as artifacts for immobile plants).
func (s *BreedingSystem) jitter(cell *Cell) components.Position {
	return components.Position{
		X: cell.X0 + s.rng.Float64()*(cell.X1-cell.X0),
		Y: cell.Y0 + s.rng.Float64()*(cell.Y1-cell.Y0),
	}
}
