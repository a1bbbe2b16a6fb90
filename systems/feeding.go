package systems

import (
	"math/rand"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/trophic/components"
	"github.com/pthm-cable/trophic/species"
)

// FeedingSystem runs one feeding pass over a cell's animals.
type FeedingSystem struct {
	orgMap *ecs.Map1[components.Organism]
	rng    *rand.Rand
}

// NewFeedingSystem creates a feeding system sharing the run's RNG.
func NewFeedingSystem(w *ecs.World, rng *rand.Rand) *FeedingSystem {
	return &FeedingSystem{
		orgMap: ecs.NewMap1[components.Organism](w),
		rng:    rng,
	}
}

// Update feeds every living animal in the cell, in a fresh uniformly random
// permutation so storage order never decides who gets scarce prey. Each
// predator picks one menu candidate uniformly at random and swallows its
// full carbon; an empty menu still costs the metabolic burn. Whatever
// Metabolize returns to the environment lands in the cell's free pool.
func (s *FeedingSystem) Update(cell *Cell, ledger *Ledger) {
	order := s.rng.Perm(len(cell.Animals))

	for _, i := range order {
		pred := s.orgMap.Get(cell.Animals[i])
		if !pred.Alive {
			continue
		}

		meal := 0.0
		switch pred.Genotype.Diet {
		case species.DietHerbivore:
			if j := s.pickPlant(cell, pred); j >= 0 {
				prey := &cell.Plants[j]
				meal = prey.Carbon
				prey.Carbon = 0
				prey.Alive = false
				ledger.Record(prey.SpeciesID, pred.SpeciesID)
			}
		case species.DietCarnivore:
			if prey := s.pickAnimal(cell, cell.Animals[i], pred); prey != nil {
				meal = prey.Carbon
				prey.Carbon = 0
				prey.Alive = false
				ledger.Record(prey.SpeciesID, pred.SpeciesID)
			}
		}

		carbon, released, dead := Metabolize(pred.Genotype, pred.Carbon, meal)
		pred.Carbon = carbon
		if dead {
			pred.Alive = false
		}
		cell.FreeCarbon += released
	}
}

// pickPlant returns the index of a uniformly chosen living plant within the
// predator's meal-size window, or -1 if none qualifies.
func (s *FeedingSystem) pickPlant(cell *Cell, pred *components.Organism) int {
	lo := pred.Carbon * pred.Genotype.SmallMeal
	hi := pred.Carbon * pred.Genotype.BigMeal

	var menu []int
	for j := range cell.Plants {
		p := &cell.Plants[j]
		if p.Alive && p.Carbon >= lo && p.Carbon <= hi {
			menu = append(menu, j)
		}
	}
	if len(menu) == 0 {
		return -1
	}
	return menu[s.rng.Intn(len(menu))]
}

// pickAnimal returns a uniformly chosen living animal of a different species
// within the meal-size window. Cannibalism is categorically excluded, which
// also rules out the predator itself.
func (s *FeedingSystem) pickAnimal(cell *Cell, self ecs.Entity, pred *components.Organism) *components.Organism {
	lo := pred.Carbon * pred.Genotype.SmallMeal
	hi := pred.Carbon * pred.Genotype.BigMeal

	var menu []*components.Organism
	for _, e := range cell.Animals {
		if e == self {
			continue
		}
		org := s.orgMap.Get(e)
		if org.Alive && org.SpeciesID != pred.SpeciesID && org.Carbon >= lo && org.Carbon <= hi {
			menu = append(menu, org)
		}
	}
	if len(menu) == 0 {
		return nil
	}
	return menu[s.rng.Intn(len(menu))]
}
