package telemetry

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// SnapshotVersion is incremented when the format changes.
const SnapshotVersion = 1

// Snapshot holds the full world state at the end of a run, for post-hoc
// analysis. It has no effect on simulation state.
type Snapshot struct {
	Version int   `json:"version"`
	Seed    int64 `json:"seed"`
	Step    int   `json:"step"`

	XLength float64 `json:"x_length"`
	YLength float64 `json:"y_length"`
	NX      int     `json:"nx"`
	NY      int     `json:"ny"`

	CellFreeCarbon []float64       `json:"cell_free_carbon"`
	Organisms      []OrganismState `json:"organisms"`
}

// OrganismState is one living organism in a snapshot.
type OrganismState struct {
	Species string  `json:"species"`
	X       float64 `json:"x"`
	Y       float64 `json:"y"`
	Carbon  float64 `json:"carbon"`
	Age     int     `json:"age"`
	Cell    int     `json:"cell"`
}

// WriteSnapshot serializes the snapshot as indented JSON.
func (om *OutputManager) WriteSnapshot(snap *Snapshot) error {
	if om == nil {
		return nil
	}
	snap.Version = SnapshotVersion
	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling snapshot: %w", err)
	}
	path := filepath.Join(om.dir, "snapshot.json")
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing snapshot: %w", err)
	}
	return nil
}
