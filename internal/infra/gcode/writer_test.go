package gcode

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/PhysCorp/MarbleMachine/internal/domain"
)

func program() []domain.Instruction {
	return []domain.Instruction{
		{Kind: domain.InstrSpeed, Feed: 5000},
		{Kind: domain.InstrTravel, Target: domain.Point{X: 50, Y: 498}, Feed: 5000},
		{Kind: domain.InstrDraw, Target: domain.Point{X: 120.5, Y: 498}, Feed: 3000},
		{Kind: domain.InstrDraw, Target: domain.Point{X: 120.5, Y: 400.1234}},
		{Kind: domain.InstrDwell, DwellMS: 800},
		{Kind: domain.InstrTravel, Target: domain.Point{X: 0, Y: 0}},
		{Kind: domain.InstrEnd},
	}
}

func TestEncodeDialect(t *testing.T) {
	var buf bytes.Buffer
	if err := Encode(&buf, program()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := "M203 X5000 Y5000\n" +
		"G0 X50.000 Y498.000 F5000\n" +
		"G1 X120.500 Y498.000 F3000\n" +
		"G1 X120.500 Y400.123\n" +
		"G4 P800\n" +
		"G0 X0.000 Y0.000\n" +
		"M2\n"

	if buf.String() != want {
		t.Fatalf("dialect mismatch:\ngot:\n%s\nwant:\n%s", buf.String(), want)
	}
}

func TestEncodeDeterministic(t *testing.T) {
	var a, b bytes.Buffer
	if err := Encode(&a, program()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := Encode(&b, program()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !bytes.Equal(a.Bytes(), b.Bytes()) {
		t.Fatalf("expected byte-identical renders")
	}
}

func TestWriteFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.gcode")

	if err := NewWriter().Write(path, []domain.Instruction{{Kind: domain.InstrEnd}}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if string(b) != "M2\n" {
		t.Fatalf("unexpected file content: %q", string(b))
	}
}

func TestWriteBadDirectory(t *testing.T) {
	err := NewWriter().Write(filepath.Join(t.TempDir(), "absent", "out.gcode"), []domain.Instruction{{Kind: domain.InstrEnd}})
	if !domain.IsKind(err, domain.KindExecution) {
		t.Fatalf("expected execution error, got=%v", err)
	}
}
