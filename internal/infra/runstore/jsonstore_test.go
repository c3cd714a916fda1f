package runstore

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/PhysCorp/MarbleMachine/internal/domain"
)

func TestSaveReport_CreatesJSONFile(t *testing.T) {
	tmp := t.TempDir()
	store := NewJSONStore(tmp)

	start := time.Date(2026, 2, 3, 10, 11, 12, 0, time.UTC)
	report := domain.RunReport{
		InputPath:    "boards/Morning Sketch.png",
		OutputPath:   "out/sketch.gcode",
		Profile:      "default",
		StartedAt:    start,
		FinishedAt:   start.Add(2 * time.Second),
		CanvasWidth:  1000,
		CanvasHeight: 1000,
		CurvesTraced: 12,
		PathsPlanned: 5,
		ClosedPaths:  1,
		Instructions: 40,
	}

	id, err := store.SaveReport(report)
	if err != nil {
		t.Fatalf("SaveReport error: %v", err)
	}

	wantFile := filepath.Join(tmp, "reports", "20260203T101112Z_morning-sketch.json")
	if _, err := os.Stat(wantFile); err != nil {
		t.Fatalf("expected file at %s, stat err=%v (id=%s)", wantFile, err, id)
	}
	if id != "20260203T101112Z_morning-sketch" {
		t.Fatalf("unexpected id: %s", id)
	}

	b, err := os.ReadFile(wantFile)
	if err != nil {
		t.Fatalf("read saved report: %v", err)
	}
	var got domain.RunReport
	if err := json.Unmarshal(b, &got); err != nil {
		t.Fatalf("saved report is not valid JSON: %v", err)
	}
	if got.PathsPlanned != 5 || got.InputPath != report.InputPath {
		t.Fatalf("round-trip mismatch: got=%+v", got)
	}
}

func TestSaveReport_ZeroStartUsesClock(t *testing.T) {
	tmp := t.TempDir()
	fixed := time.Date(2026, 5, 6, 7, 8, 9, 0, time.UTC)
	store := NewJSONStore(tmp, WithNow(func() time.Time { return fixed }))

	id, err := store.SaveReport(domain.RunReport{InputPath: "board.png"})
	if err != nil {
		t.Fatalf("SaveReport error: %v", err)
	}
	if !strings.HasPrefix(id, "20260506T070809Z_") {
		t.Fatalf("expected id from injected clock, got=%s", id)
	}

	b, err := os.ReadFile(filepath.Join(tmp, "reports", id+".json"))
	if err != nil {
		t.Fatalf("read saved report: %v", err)
	}
	var got domain.RunReport
	if err := json.Unmarshal(b, &got); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !got.StartedAt.Equal(fixed) {
		t.Fatalf("expected StartedAt backfilled to %v, got=%v", fixed, got.StartedAt)
	}
}

func TestSaveReport_WritesIndex(t *testing.T) {
	tmp := t.TempDir()
	store := NewJSONStore(tmp, WithIndex(true))

	start := time.Date(2026, 2, 3, 10, 11, 12, 0, time.UTC)
	if _, err := store.SaveReport(domain.RunReport{InputPath: "a.png", StartedAt: start, PathsPlanned: 2}); err != nil {
		t.Fatalf("SaveReport error: %v", err)
	}
	if _, err := store.SaveReport(domain.RunReport{InputPath: "b.png", StartedAt: start.Add(time.Second), PathsPlanned: 3}); err != nil {
		t.Fatalf("SaveReport error: %v", err)
	}

	b, err := os.ReadFile(filepath.Join(tmp, "reports", "index.jsonl"))
	if err != nil {
		t.Fatalf("read index: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(string(b)), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 index lines, got=%d", len(lines))
	}
	var entry struct {
		ID    string `json:"id"`
		Paths int    `json:"paths"`
	}
	if err := json.Unmarshal([]byte(lines[1]), &entry); err != nil {
		t.Fatalf("index line is not valid JSON: %v", err)
	}
	if entry.Paths != 3 {
		t.Fatalf("expected paths=3 in last index line, got=%d", entry.Paths)
	}
}

func TestSlugify(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"Morning Sketch", "morning-sketch"},
		{"  board__01  ", "board-01"},
		{"***", ""},
		{"already-clean", "already-clean"},
	}
	for _, c := range cases {
		if got := slugify(c.in); got != c.want {
			t.Fatalf("slugify(%q): expected %q, got=%q", c.in, c.want, got)
		}
	}
}
