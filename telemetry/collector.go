package telemetry

// Collector counts simulation events between emission windows.
type Collector struct {
	kills        int
	starved      int
	animalBirths int
	plantBirths  int
}

// NewCollector creates an empty collector.
func NewCollector() *Collector {
	return &Collector{}
}

// RecordKills notes predation events.
func (c *Collector) RecordKills(n int) { c.kills += n }

// RecordStarved notes starvation deaths.
func (c *Collector) RecordStarved(n int) { c.starved += n }

// RecordAnimalBirths notes budded animal daughters.
func (c *Collector) RecordAnimalBirths(n int) { c.animalBirths += n }

// RecordPlantBirths notes budded plant daughters.
func (c *Collector) RecordPlantBirths(n int) { c.plantBirths += n }

// Drain copies the window's event counts into stats and resets them.
func (c *Collector) Drain(stats *WindowStats) {
	stats.Kills = c.kills
	stats.Starved = c.starved
	stats.AnimalBirths = c.animalBirths
	stats.PlantBirths = c.plantBirths
	c.kills = 0
	c.starved = 0
	c.animalBirths = 0
	c.plantBirths = 0
}
