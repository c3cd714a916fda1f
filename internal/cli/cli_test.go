package cli

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/PhysCorp/MarbleMachine/internal/domain"
)

// --- parseQuad ---

func TestParseQuad_Empty(t *testing.T) {
	q, err := parseQuad("")
	if err != nil {
		t.Fatalf("parseQuad(\"\") error: %v", err)
	}
	if q != nil {
		t.Fatalf("expected nil quad for empty input, got=%v", q)
	}
}

func TestParseQuad_FourCorners(t *testing.T) {
	q, err := parseQuad("10,20; 620,15 ;610.5,470;8,465")
	if err != nil {
		t.Fatalf("parseQuad error: %v", err)
	}
	if q == nil {
		t.Fatal("expected a quad")
	}
	want := domain.Quad{
		{X: 10, Y: 20},
		{X: 620, Y: 15},
		{X: 610.5, Y: 470},
		{X: 8, Y: 465},
	}
	if *q != want {
		t.Fatalf("expected %v, got=%v", want, *q)
	}
}

func TestParseQuad_Invalid(t *testing.T) {
	cases := []string{
		"10,20;30,40;50,60",
		"10,20;30,40;50,60;70,80;90,100",
		"10;30,40;50,60;70,80",
		"a,b;30,40;50,60;70,80",
	}
	for _, in := range cases {
		if _, err := parseQuad(in); err == nil {
			t.Errorf("parseQuad(%q): expected error", in)
		}
	}
}

// --- defaultOutputPath ---

func TestDefaultOutputPath(t *testing.T) {
	cases := []struct {
		input string
		want  string
	}{
		{"board.png", "board.gcode"},
		{"sketches/monday.jpeg", "sketches/monday.gcode"},
		{"noext", "noext.gcode"},
	}
	for _, c := range cases {
		if got := defaultOutputPath(c.input); got != c.want {
			t.Errorf("defaultOutputPath(%q) = %q, want %q", c.input, got, c.want)
		}
	}
}

// --- printReport ---

func sampleReport() domain.RunReport {
	start := time.Date(2026, 2, 3, 10, 11, 12, 0, time.UTC)
	return domain.RunReport{
		InputPath:      "board.png",
		OutputPath:     "board.gcode",
		Profile:        "marble-bed",
		StartedAt:      start,
		FinishedAt:     start.Add(420 * time.Millisecond),
		CanvasWidth:    1000,
		CanvasHeight:   1000,
		CurvesTraced:   9,
		PathsMerged:    2,
		PathsPlanned:   7,
		ClosedPaths:    1,
		Instructions:   61,
		TravelDistance: 123.4,
		DrawDistance:   987.6,
	}
}

func TestPrintReport_JSON(t *testing.T) {
	var buf bytes.Buffer
	if err := printReport(&buf, sampleReport(), "json"); err != nil {
		t.Fatalf("printReport error: %v", err)
	}

	var got domain.RunReport
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if got.PathsPlanned != 7 || got.Profile != "marble-bed" {
		t.Fatalf("round-trip mismatch: got=%+v", got)
	}
}

func TestPrintReport_Pretty(t *testing.T) {
	var buf bytes.Buffer
	if err := printReport(&buf, sampleReport(), "pretty"); err != nil {
		t.Fatalf("printReport error: %v", err)
	}
	out := buf.String()

	for _, want := range []string{"board.png", "board.gcode", "marble-bed", "7", "61"} {
		if !strings.Contains(out, want) {
			t.Errorf("pretty output missing %q:\n%s", want, out)
		}
	}
}

func TestPrintReport_PrettyBlank(t *testing.T) {
	report := sampleReport()
	report.CurvesTraced = 0
	report.PathsPlanned = 0
	report.Instructions = 1

	var buf bytes.Buffer
	if err := printReport(&buf, report, "pretty"); err != nil {
		t.Fatalf("printReport error: %v", err)
	}
	if !strings.Contains(buf.String(), "blank board") {
		t.Fatalf("expected blank-board notice, got:\n%s", buf.String())
	}
}

func TestPrintReport_UnsupportedFormat(t *testing.T) {
	var buf bytes.Buffer
	if err := printReport(&buf, sampleReport(), "xml"); err == nil {
		t.Fatal("expected error for unsupported format")
	}
}
