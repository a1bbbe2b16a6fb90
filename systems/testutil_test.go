package systems

import (
	"math/rand"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/trophic/components"
	"github.com/pthm-cable/trophic/species"
)

// testWorld bundles the ECS plumbing the system tests share.
type testWorld struct {
	world  *ecs.World
	mapper *ecs.Map2[components.Position, components.Organism]
	orgMap *ecs.Map1[components.Organism]
	posMap *ecs.Map1[components.Position]
	rng    *rand.Rand
}

func newTestWorld(seed int64) *testWorld {
	w := ecs.NewWorld()
	return &testWorld{
		world:  w,
		mapper: ecs.NewMap2[components.Position, components.Organism](w),
		orgMap: ecs.NewMap1[components.Organism](w),
		posMap: ecs.NewMap1[components.Position](w),
		rng:    rand.New(rand.NewSource(seed)),
	}
}

func (tw *testWorld) addAnimal(cell *Cell, g *species.Genotype, id int, x, y, carbon float64) ecs.Entity {
	pos := components.Position{X: x, Y: y}
	org := components.Organism{
		Genotype:  g,
		SpeciesID: id,
		Carbon:    carbon,
		Cell:      cell.Index,
		Alive:     true,
	}
	e := tw.mapper.NewEntity(&pos, &org)
	cell.Animals = append(cell.Animals, e)
	return e
}

func addPlant(cell *Cell, g *species.Genotype, id int, x, y, carbon float64) {
	cell.Plants = append(cell.Plants, Plant{
		X: x, Y: y,
		Carbon:    carbon,
		Alive:     true,
		Genotype:  g,
		SpeciesID: id,
	})
}

func herbivoreGenotype() *species.Genotype {
	g := testGenotype()
	return g
}

func carnivoreGenotype(name string) *species.Genotype {
	g := testGenotype()
	g.Name = name
	g.Diet = species.DietCarnivore
	return g
}

func plantGenotype() *species.Genotype {
	g := testGenotype()
	g.Name = "grass"
	g.Kingdom = species.KingdomPlant
	g.Diet = species.DietNone
	g.Mobility = 0
	return g
}

// testTable builds grass/rabbit/fox with IDs 0/1/2.
func testTable() *species.Table {
	fox := carnivoreGenotype("fox")
	table, err := species.NewTable([]*species.Genotype{plantGenotype(), herbivoreGenotype(), fox})
	if err != nil {
		panic(err)
	}
	return table
}
