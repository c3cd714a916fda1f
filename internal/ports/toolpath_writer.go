package ports

import "github.com/PhysCorp/MarbleMachine/internal/domain"

// ToolpathWriter renders an instruction sequence to the machine's
// textual dialect and persists it.
type ToolpathWriter interface {
	Write(path string, instructions []domain.Instruction) error
}
