package emit

import (
	"testing"

	"github.com/PhysCorp/MarbleMachine/internal/domain"
)

func bed() domain.BedConfig {
	return domain.BedConfig{Width: 600, Height: 500, Origin: domain.OriginBottomLeft}
}

func openPath(order int, pts ...domain.Point) domain.PlannedPath {
	return domain.PlannedPath{VectorPath: domain.VectorPath{Points: pts}, Order: order}
}

func TestProgramBlankDrawing(t *testing.T) {
	res := Program(nil, bed(), domain.ShakeOptions{})

	if len(res.Instructions) != 1 || res.Instructions[0].Kind != domain.InstrEnd {
		t.Fatalf("expected end marker only, got=%v", res.Instructions)
	}
	if res.TravelDistance != 0 || res.DrawDistance != 0 {
		t.Fatalf("expected zero distances for blank drawing")
	}
}

func TestProgramSinglePath(t *testing.T) {
	p := openPath(0,
		domain.Point{X: 100, Y: 100},
		domain.Point{X: 200, Y: 100},
		domain.Point{X: 200, Y: 200},
	)

	res := Program([]domain.PlannedPath{p}, bed(), domain.ShakeOptions{})

	kinds := make([]domain.InstructionKind, len(res.Instructions))
	for i, in := range res.Instructions {
		kinds[i] = in.Kind
	}

	want := []domain.InstructionKind{
		domain.InstrTravel, // to first point
		domain.InstrDraw,
		domain.InstrDraw,
		domain.InstrTravel, // home
		domain.InstrEnd,
	}
	if len(kinds) != len(want) {
		t.Fatalf("expected %d instructions, got=%d: %v", len(want), len(kinds), kinds)
	}
	for i := range want {
		if kinds[i] != want[i] {
			t.Fatalf("instruction %d: expected %s, got=%s", i, want[i], kinds[i])
		}
	}

	if res.DrawDistance != 200 {
		t.Fatalf("expected draw distance 200, got=%v", res.DrawDistance)
	}
}

func TestProgramEmitsSpeedPreset(t *testing.T) {
	b := bed()
	b.PresetSpeed = 5000

	p := openPath(0, domain.Point{X: 10, Y: 10}, domain.Point{X: 20, Y: 10})
	res := Program([]domain.PlannedPath{p}, b, domain.ShakeOptions{})

	if res.Instructions[0].Kind != domain.InstrSpeed || res.Instructions[0].Feed != 5000 {
		t.Fatalf("expected leading speed preset, got=%+v", res.Instructions[0])
	}
}

func TestProgramClosedPathClosesLoop(t *testing.T) {
	square := domain.PlannedPath{
		VectorPath: domain.VectorPath{Points: []domain.Point{
			{X: 100, Y: 100},
			{X: 200, Y: 100},
			{X: 200, Y: 200},
			{X: 100, Y: 200},
		}},
		Closed: true,
	}

	segs := Segments(square)
	if len(segs) != 5 {
		t.Fatalf("expected closing segment appended, got=%d", len(segs))
	}
	last := segs[len(segs)-1]
	if last.Pen != domain.PenDown || last.To != (domain.Point{X: 100, Y: 100}) {
		t.Fatalf("expected pen-down close back to start, got=%+v", last)
	}
}

func TestProgramPenStateCorrectness(t *testing.T) {
	paths := []domain.PlannedPath{
		openPath(0, domain.Point{X: 10, Y: 10}, domain.Point{X: 20, Y: 10}),
		openPath(1, domain.Point{X: 30, Y: 30}, domain.Point{X: 40, Y: 30}),
		openPath(2, domain.Point{X: 60, Y: 60}, domain.Point{X: 70, Y: 60}),
	}
	shake := domain.ShakeOptions{Enabled: true, Interval: 1, Cycles: 4, Amplitude: 5, SettleMS: 500}

	res := Program(paths, bed(), shake)

	// a draw may only follow a travel or another draw
	prev := domain.InstrEnd
	for i, in := range res.Instructions {
		if in.Kind == domain.InstrDraw {
			if prev != domain.InstrTravel && prev != domain.InstrDraw {
				t.Fatalf("draw at %d follows %s without travel", i, prev)
			}
		}
		prev = in.Kind
	}

	if res.SettleCycles != 2 {
		t.Fatalf("expected settle cycle before paths 1 and 2, got=%d", res.SettleCycles)
	}
}

func TestProgramSettleCycleShape(t *testing.T) {
	paths := []domain.PlannedPath{
		openPath(0, domain.Point{X: 10, Y: 10}, domain.Point{X: 20, Y: 10}),
		openPath(1, domain.Point{X: 30, Y: 30}, domain.Point{X: 40, Y: 30}),
	}
	shake := domain.ShakeOptions{Enabled: true, Interval: 1, Cycles: 4, Amplitude: 5, SettleMS: 750}

	res := Program(paths, bed(), shake)

	// find the dwell; it must be preceded by oscillation travels and
	// followed by the next path's travel
	dwellIdx := -1
	for i, in := range res.Instructions {
		if in.Kind == domain.InstrDwell {
			dwellIdx = i
			break
		}
	}
	if dwellIdx < 0 {
		t.Fatalf("expected a dwell instruction: %v", res.Instructions)
	}
	if res.Instructions[dwellIdx].DwellMS != 750 {
		t.Fatalf("expected settle dwell of 750ms, got=%d", res.Instructions[dwellIdx].DwellMS)
	}
	for i := dwellIdx - 5; i < dwellIdx; i++ {
		if res.Instructions[i].Kind != domain.InstrTravel {
			t.Fatalf("expected pen-up oscillation before dwell, got %s at %d", res.Instructions[i].Kind, i)
		}
	}
	if res.Instructions[dwellIdx+1].Kind != domain.InstrTravel {
		t.Fatalf("expected travel to resume after dwell, got=%s", res.Instructions[dwellIdx+1].Kind)
	}
}

func TestProgramShakeStaysOnBed(t *testing.T) {
	// pen near the bed corner: oscillation base must be clamped inward
	paths := []domain.PlannedPath{
		openPath(0, domain.Point{X: 1, Y: 1}, domain.Point{X: 2, Y: 1}),
		openPath(1, domain.Point{X: 30, Y: 30}, domain.Point{X: 40, Y: 30}),
	}
	shake := domain.ShakeOptions{Enabled: true, Interval: 1, Cycles: 8, Amplitude: 10, SettleMS: 100}

	res := Program(paths, bed(), shake)
	for _, in := range res.Instructions {
		if in.Kind != domain.InstrTravel && in.Kind != domain.InstrDraw {
			continue
		}
		if in.Target.X < 0 || in.Target.X > 600 || in.Target.Y < 0 || in.Target.Y > 500 {
			t.Fatalf("instruction leaves the bed: %+v", in)
		}
	}
}

func TestProgramEndsIdlePenUp(t *testing.T) {
	p := openPath(0, domain.Point{X: 10, Y: 10}, domain.Point{X: 20, Y: 20})
	res := Program([]domain.PlannedPath{p}, bed(), domain.ShakeOptions{})

	n := len(res.Instructions)
	if res.Instructions[n-1].Kind != domain.InstrEnd {
		t.Fatalf("expected end marker last")
	}
	if res.Instructions[n-2].Kind != domain.InstrTravel {
		t.Fatalf("expected pen-up travel before end, got=%s", res.Instructions[n-2].Kind)
	}
}
