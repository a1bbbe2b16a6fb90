// Package components defines the ECS components carried by animal entities.
// Plants are lightweight per-cell values (see systems.Plant) and stay outside
// the ECS.
package components

import "github.com/pthm-cable/trophic/species"

// Position is an animal's continuous location within the domain.
type Position struct {
	X, Y float64
}

// Organism holds an animal's mutable life state. Genotype is a shared
// read-only handle; SpeciesID is its dense table index, duplicated here so
// the feeding loop and ledger never touch the name string.
type Organism struct {
	Genotype  *species.Genotype
	SpeciesID int

	Carbon float64
	Age    int
	Cell   int // index of the owning cell

	Alive bool
	Moved bool // set when moved this step; cleared at the next movement phase
}
