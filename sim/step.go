package sim

// Step advances the simulation by one step. The phase order is fixed and
// each phase finishes across every cell before the next begins globally:
// feeding + photosynthesis, death sweep, breeding, movement, aging.
func (e *Engine) Step() {
	killsBefore := e.ledger.Total()

	// 1. Feeding, then photosynthesis on whatever carbon is left.
	for i := range e.cells {
		e.feeding.Update(&e.cells[i], e.ledger)
		e.photo.Update(&e.cells[i])
	}

	// 2. Death sweep. Organisms marked dead during feeding stay in their
	// cell lists until here.
	deaths := e.sweepDead()
	kills := e.ledger.Total() - killsBefore
	e.collector.RecordKills(kills)
	e.collector.RecordStarved(deaths - kills)

	// 3. Breeding, animals then plants, daughters committed per cell.
	for i := range e.cells {
		e.collector.RecordAnimalBirths(e.breeding.BreedAnimals(&e.cells[i]))
		e.collector.RecordPlantBirths(e.breeding.BreedPlants(&e.cells[i]))
	}

	// 4. Movement with cross-cell relocation. Plants are immobile.
	e.moveAnimals()

	// 5. Aging.
	e.ageOrganisms()

	e.step++
}

// sweepDead removes every organism marked dead from its cell's collection.
// Dead organisms carry zero carbon by the time they get here, so removal
// does not touch the balance. Returns the number removed.
func (e *Engine) sweepDead() int {
	removed := 0
	for ci := range e.cells {
		cell := &e.cells[ci]

		for i := len(cell.Animals) - 1; i >= 0; i-- {
			entity := cell.Animals[i]
			if !e.orgMap.Get(entity).Alive {
				e.mapper.Remove(entity)
				cell.Animals[i] = cell.Animals[len(cell.Animals)-1]
				cell.Animals = cell.Animals[:len(cell.Animals)-1]
				removed++
			}
		}

		for i := len(cell.Plants) - 1; i >= 0; i-- {
			if !cell.Plants[i].Alive {
				cell.Plants[i] = cell.Plants[len(cell.Plants)-1]
				cell.Plants = cell.Plants[:len(cell.Plants)-1]
				removed++
			}
		}
	}
	return removed
}

// moveAnimals jitters every animal once and relocates the ones whose new
// position falls in another cell. The moved flag, set by Move, keeps an
// animal relocated into a not-yet-visited cell from moving again; flags are
// cleared here at the start of the phase, not at the end of the step.
func (e *Engine) moveAnimals() {
	query := e.filter.Query()
	for query.Next() {
		_, org := query.Get()
		org.Moved = false
	}

	for ci := range e.cells {
		cell := &e.cells[ci]
		for i := 0; i < len(cell.Animals); {
			entity := cell.Animals[i]
			if e.orgMap.Get(entity).Moved {
				i++
				continue
			}
			dest := e.movement.Move(entity, e.domain)
			if dest == ci {
				i++
				continue
			}
			cell.Animals[i] = cell.Animals[len(cell.Animals)-1]
			cell.Animals = cell.Animals[:len(cell.Animals)-1]
			e.cells[dest].Animals = append(e.cells[dest].Animals, entity)
		}
	}
}

// ageOrganisms increments age for every survivor.
func (e *Engine) ageOrganisms() {
	query := e.filter.Query()
	for query.Next() {
		_, org := query.Get()
		if org.Alive {
			org.Age++
		}
	}
	for ci := range e.cells {
		for i := range e.cells[ci].Plants {
			if e.cells[ci].Plants[i].Alive {
				e.cells[ci].Plants[i].Age++
			}
		}
	}
}
