// Package gcode renders the semantic instruction sequence into the
// rig's G-code dialect, one command per line:
//
//	G0 X.. Y.. [F..]   rapid pen-up travel
//	G1 X.. Y.. [F..]   controlled pen-down draw
//	G4 P..             dwell (milliseconds)
//	M203 X.. Y..       axis speed preset
//	M2                 end of program
//
// Coordinates are fixed to three decimals so identical runs produce
// byte-identical programs.
package gcode

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/PhysCorp/MarbleMachine/internal/domain"
	"github.com/PhysCorp/MarbleMachine/internal/ports"
)

type Writer struct{}

func NewWriter() *Writer {
	return &Writer{}
}

var _ ports.ToolpathWriter = (*Writer)(nil)

// Write renders the program and persists it atomically enough for a
// batch tool: the file only appears with its full content.
func (w *Writer) Write(path string, instructions []domain.Instruction) error {
	var buf bytes.Buffer
	if err := Encode(&buf, instructions); err != nil {
		return err
	}

	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return &domain.OpError{
			Op:   "gcode.write",
			Kind: domain.KindExecution,
			Path: path,
			Err:  err,
		}
	}
	return nil
}

// Encode renders instructions to w, one line each.
func Encode(w io.Writer, instructions []domain.Instruction) error {
	bw := bufio.NewWriter(w)

	for _, in := range instructions {
		switch in.Kind {
		case domain.InstrTravel:
			writeMove(bw, "G0", in)
		case domain.InstrDraw:
			writeMove(bw, "G1", in)
		case domain.InstrDwell:
			fmt.Fprintf(bw, "G4 P%d\n", in.DwellMS)
		case domain.InstrSpeed:
			feed := formatFeed(in.Feed)
			fmt.Fprintf(bw, "M203 X%s Y%s\n", feed, feed)
		case domain.InstrEnd:
			fmt.Fprintln(bw, "M2")
		default:
			return &domain.OpError{
				Op:   "gcode.encode",
				Kind: domain.KindExecution,
				Err:  fmt.Errorf("unknown instruction kind %d", in.Kind),
			}
		}
	}

	return bw.Flush()
}

func writeMove(w io.Writer, op string, in domain.Instruction) {
	if in.Feed > 0 {
		fmt.Fprintf(w, "%s X%.3f Y%.3f F%s\n", op, in.Target.X, in.Target.Y, formatFeed(in.Feed))
		return
	}
	fmt.Fprintf(w, "%s X%.3f Y%.3f\n", op, in.Target.X, in.Target.Y)
}

func formatFeed(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
