package domain

// PenState distinguishes non-marking travel from marking draw motion.
type PenState uint8

const (
	PenUp PenState = iota
	PenDown
)

func (s PenState) String() string {
	if s == PenDown {
		return "down"
	}
	return "up"
}

// ToolpathSegment is one motion to a destination in bed coordinates.
// The first segment of every path transition is pen-up travel; all
// interior segments are pen-down draws.
type ToolpathSegment struct {
	Pen PenState
	To  Point
}

// InstructionKind classifies one emitted motion command. The textual
// machine dialect is owned by the adapter that renders instructions;
// the core only guarantees kind and ordering.
type InstructionKind uint8

const (
	InstrTravel InstructionKind = iota // rapid pen-up move
	InstrDraw                          // controlled pen-down move
	InstrDwell                         // pause for settle
	InstrSpeed                         // axis speed preset
	InstrEnd                           // end of program
)

func (k InstructionKind) String() string {
	switch k {
	case InstrTravel:
		return "travel"
	case InstrDraw:
		return "draw"
	case InstrDwell:
		return "dwell"
	case InstrSpeed:
		return "speed"
	case InstrEnd:
		return "end"
	}
	return "unknown"
}

// Instruction is one motion command derived from a single toolpath
// segment or maintenance action.
type Instruction struct {
	Kind    InstructionKind
	Target  Point   // Travel/Draw destination in bed units
	DwellMS int     // Dwell only
	Feed    float64 // axis speed; preset value for Speed, feed rate for moves
}
