package extract

// State is one of the four extraction-engine states (spec §4.3).
type State int

const (
	// StateModelSetup is the initial state: records define the mesh,
	// sets, and alias table. The first endIncrement seen in this state
	// commits the mesh and emits geometry, but does not leave the state —
	// only a genuine startIncrement does that.
	StateModelSetup State = iota

	// StateSurfaceDefinition is entered on a surfaceDefHeader record; its
	// body, and any facet records that follow, are ignored. It exists
	// only so an endIncrement seen here is not mistaken for a mesh or
	// increment commit.
	StateSurfaceDefinition

	// StateIncrementParsing is entered by startIncrement: output records
	// accumulate into the open increment until endIncrement commits it.
	StateIncrementParsing

	// StateDone is terminal: reached when the input ends without a tail
	// lock file.
	StateDone
)

func (s State) String() string {
	switch s {
	case StateModelSetup:
		return "model_setup"
	case StateSurfaceDefinition:
		return "surface_definition"
	case StateIncrementParsing:
		return "increment_parsing"
	case StateDone:
		return "done"
	default:
		return "unknown"
	}
}
