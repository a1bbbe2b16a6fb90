package systems

import "github.com/pthm-cable/trophic/species"

// Ledger accumulates the victim×eater interaction counts realized during a
// run. Rows cover every species, columns only animal species. Counts are
// zero-initialized, monotonically incremented, never reset.
type Ledger struct {
	eaters   []int       // animal species IDs, column order
	eaterCol map[int]int // species ID -> column
	counts   [][]int     // [victim ID][column]
}

// NewLedger builds a zeroed ledger over the full species table.
func NewLedger(table *species.Table) *Ledger {
	eaters := table.AnimalIDs()
	eaterCol := make(map[int]int, len(eaters))
	for col, id := range eaters {
		eaterCol[id] = col
	}
	counts := make([][]int, table.Len())
	for i := range counts {
		counts[i] = make([]int, len(eaters))
	}
	return &Ledger{eaters: eaters, eaterCol: eaterCol, counts: counts}
}

// Record increments the count for one feeding event.
func (l *Ledger) Record(victimID, eaterID int) {
	l.counts[victimID][l.eaterCol[eaterID]]++
}

// Count returns the accumulated count for a victim/eater species pair.
func (l *Ledger) Count(victimID, eaterID int) int {
	return l.counts[victimID][l.eaterCol[eaterID]]
}

// Total returns the sum of all interaction counts.
func (l *Ledger) Total() int {
	total := 0
	for _, row := range l.counts {
		for _, n := range row {
			total += n
		}
	}
	return total
}

// EaterIDs returns the animal species IDs forming the column axis.
func (l *Ledger) EaterIDs() []int { return l.eaters }

// Row returns the counts for one victim species across all eater columns.
func (l *Ledger) Row(victimID int) []int { return l.counts[victimID] }
