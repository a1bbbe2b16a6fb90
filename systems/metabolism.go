package systems

import "github.com/pthm-cable/trophic/species"

// Metabolize applies one step of carbon turnover to an organism holding
// carbon, after it ingested meal. The order is fixed: burn, then intake,
// then obesity clipping, then the starvation check. Released is every unit
// of carbon returned to the environment (burn + clipped waste + any
// remainder released on death), so that carbon + meal before the call equals
// newCarbon + released after it. A dead organism ends with exactly zero
// carbon.
func Metabolize(g *species.Genotype, carbon, meal float64) (newCarbon, released float64, dead bool) {
	carbon -= g.Burn
	released = g.Burn

	carbon += meal

	if carbon > g.MaxCarbon {
		released += carbon - g.MaxCarbon
		carbon = g.MaxCarbon
	}

	if carbon < g.MinCarbon {
		// Starvation: whatever is left, even a burn overshoot below zero,
		// goes back to the environment so the balance closes.
		released += carbon
		carbon = 0
		dead = true
	}

	return carbon, released, dead
}
