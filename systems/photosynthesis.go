package systems

import "math/rand"

// PhotosynthesisSystem grows a cell's plants from its free-carbon pool.
type PhotosynthesisSystem struct {
	rng *rand.Rand
}

// NewPhotosynthesisSystem creates a photosynthesis system sharing the run's
// RNG.
func NewPhotosynthesisSystem(rng *rand.Rand) *PhotosynthesisSystem {
	return &PhotosynthesisSystem{rng: rng}
}

// Update runs one growth pass. Plants draw in a fresh random permutation
// because they compete for the same finite pool; each takes
// min(pool, carbon × smallMeal), and the pool is repaid whatever Metabolize
// releases. Must run strictly after feeding so plants only see the carbon
// animals left behind.
func (s *PhotosynthesisSystem) Update(cell *Cell) {
	order := s.rng.Perm(len(cell.Plants))

	for _, i := range order {
		p := &cell.Plants[i]
		if !p.Alive {
			continue
		}

		growth := p.Carbon * p.Genotype.SmallMeal
		if growth > cell.FreeCarbon {
			growth = cell.FreeCarbon
		}

		carbon, released, dead := Metabolize(p.Genotype, p.Carbon, growth)
		p.Carbon = carbon
		if dead {
			p.Alive = false
		}
		cell.FreeCarbon += released - growth
	}
}
