// Package app wires configuration, generation, persistence and the viewer together.
package app

// State records where the current world came from and whether it has been saved since.
type State int

const (
	// StateGenerated is a freshly generated world that has not been saved.
	StateGenerated State = iota
	// StateLoaded is a world restored from a save.
	StateLoaded
	// StateSaved is a world written to the store since it was generated or loaded.
	StateSaved
)

// String returns a human-readable state name.
func (s State) String() string {
	switch s {
	case StateGenerated:
		return "unsaved"
	case StateLoaded:
		return "loaded"
	case StateSaved:
		return "saved"
	default:
		return "unknown"
	}
}
