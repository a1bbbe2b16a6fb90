// Package species defines the immutable per-species parameter records and
// the run-wide species table with dense integer IDs.
package species

import "fmt"

// Kingdom is the coarse organism category.
type Kingdom uint8

const (
	KingdomPlant Kingdom = iota
	KingdomAnimal
)

// String returns the kingdom name.
func (k Kingdom) String() string {
	if k == KingdomPlant {
		return "plant"
	}
	return "animal"
}

// ParseKingdom converts a config token to a Kingdom.
func ParseKingdom(s string) (Kingdom, error) {
	switch s {
	case "plant":
		return KingdomPlant, nil
	case "animal":
		return KingdomAnimal, nil
	}
	return 0, fmt.Errorf("unknown kingdom %q", s)
}

// Diet determines which menu a species draws its meals from.
type Diet uint8

const (
	DietNone Diet = iota
	DietHerbivore
	DietCarnivore
)

// String returns the diet name.
func (d Diet) String() string {
	switch d {
	case DietHerbivore:
		return "herbivore"
	case DietCarnivore:
		return "carnivore"
	}
	return "none"
}

// ParseDiet converts a config token to a Diet.
func ParseDiet(s string) (Diet, error) {
	switch s {
	case "none":
		return DietNone, nil
	case "herbivore":
		return DietHerbivore, nil
	case "carnivore":
		return DietCarnivore, nil
	}
	return 0, fmt.Errorf("unknown diet %q", s)
}

// Genotype holds the immutable parameters of one species. All organisms of a
// species share one Genotype by pointer; nothing mutates it after load.
type Genotype struct {
	Name    string
	Kingdom Kingdom
	Diet    Diet

	// Carbon thresholds
	InitialCarbon float64 // carbon at birth / seeding
	MinCarbon     float64 // starvation floor
	MaxCarbon     float64 // obesity ceiling
	BreedCarbon   float64 // minimum carbon to split

	// Rates
	Burn      float64 // metabolic carbon loss per step
	SmallMeal float64 // smallest acceptable prey, fraction of own carbon
	BigMeal   float64 // largest acceptable prey, fraction of own carbon
	Mobility  float64 // max per-axis step distance
	SpawnProb float64 // budding probability per step
}

// Validate checks the threshold ordering invariants. Violations are fatal at
// startup, before the step loop begins.
func (g *Genotype) Validate() error {
	if g.Name == "" {
		return fmt.Errorf("genotype with empty species name")
	}
	if g.MinCarbon > g.InitialCarbon {
		return fmt.Errorf("species %s: min carbon %g exceeds initial carbon %g", g.Name, g.MinCarbon, g.InitialCarbon)
	}
	if g.InitialCarbon > g.BreedCarbon {
		return fmt.Errorf("species %s: initial carbon %g exceeds breeding carbon %g", g.Name, g.InitialCarbon, g.BreedCarbon)
	}
	if g.BreedCarbon > g.MaxCarbon {
		return fmt.Errorf("species %s: breeding carbon %g exceeds max carbon %g", g.Name, g.BreedCarbon, g.MaxCarbon)
	}
	if g.SmallMeal > g.BigMeal {
		return fmt.Errorf("species %s: small meal fraction %g exceeds big meal fraction %g", g.Name, g.SmallMeal, g.BigMeal)
	}
	if g.Kingdom == KingdomPlant && g.Diet != DietNone {
		return fmt.Errorf("species %s: plants cannot have diet %s", g.Name, g.Diet)
	}
	if g.Kingdom == KingdomAnimal && g.Diet == DietNone {
		return fmt.Errorf("species %s: animals need a diet", g.Name)
	}
	return nil
}

// Table is the run-wide species registry. IDs are dense indices assigned in
// load order so hot-loop lookups (ledger, census) avoid string keys.
type Table struct {
	genotypes []*Genotype
	byName    map[string]int
}

// NewTable builds a table from validated genotypes. Duplicate names are
// rejected.
func NewTable(genotypes []*Genotype) (*Table, error) {
	t := &Table{
		genotypes: genotypes,
		byName:    make(map[string]int, len(genotypes)),
	}
	for i, g := range genotypes {
		if err := g.Validate(); err != nil {
			return nil, err
		}
		if _, dup := t.byName[g.Name]; dup {
			return nil, fmt.Errorf("duplicate species name %q", g.Name)
		}
		t.byName[g.Name] = i
	}
	return t, nil
}

// Len returns the number of species.
func (t *Table) Len() int { return len(t.genotypes) }

// Get returns the genotype with the given dense ID.
func (t *Table) Get(id int) *Genotype { return t.genotypes[id] }

// All returns the genotypes in ID order.
func (t *Table) All() []*Genotype { return t.genotypes }

// AnimalIDs returns the dense IDs of all animal species, in ID order. The
// predation ledger restricts its eater axis to these.
func (t *Table) AnimalIDs() []int {
	var ids []int
	for i, g := range t.genotypes {
		if g.Kingdom == KingdomAnimal {
			ids = append(ids, i)
		}
	}
	return ids
}
