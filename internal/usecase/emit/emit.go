// Package emit serializes ordered, bed-mapped paths into the semantic
// instruction sequence, optionally interleaving bed-settling maintenance
// cycles.
package emit

import "github.com/PhysCorp/MarbleMachine/internal/domain"

// Result is the emitted program plus emission statistics.
type Result struct {
	Instructions []domain.Instruction
	SettleCycles int

	TravelDistance float64 // pen-up, bed units
	DrawDistance   float64 // pen-down, bed units
}

// Segments expands one planned path into toolpath segments: a pen-up
// travel to its first point, then pen-down draws. A closed path whose
// walk does not already return to its start gets a closing draw.
func Segments(p domain.PlannedPath) []domain.ToolpathSegment {
	segs := make([]domain.ToolpathSegment, 0, len(p.Points)+1)
	segs = append(segs, domain.ToolpathSegment{Pen: domain.PenUp, To: p.Points[0]})
	for _, pt := range p.Points[1:] {
		segs = append(segs, domain.ToolpathSegment{Pen: domain.PenDown, To: pt})
	}
	if p.Closed && p.End() != p.Start() {
		segs = append(segs, domain.ToolpathSegment{Pen: domain.PenDown, To: p.Start()})
	}
	return segs
}

// Program emits the full instruction sequence for a conversion run. A
// blank drawing yields only the end marker (a valid no-op program);
// otherwise the program is: speed preset (if configured), then per path
// a travel plus draws, a settle cycle before every shake.Interval-th
// path when enabled, and finally a pen-up return home and the end
// marker. Emission always terminates idle with the pen up.
func Program(paths []domain.PlannedPath, bed domain.BedConfig, shake domain.ShakeOptions) Result {
	var res Result

	if len(paths) == 0 {
		res.Instructions = []domain.Instruction{{Kind: domain.InstrEnd}}
		return res
	}

	pen := domain.Point{} // home
	if bed.PresetSpeed > 0 {
		res.Instructions = append(res.Instructions, domain.Instruction{
			Kind: domain.InstrSpeed,
			Feed: bed.PresetSpeed,
		})
	}

	for i, p := range paths {
		if shake.Enabled && shake.Interval > 0 && i > 0 && i%shake.Interval == 0 {
			pen = settleCycle(&res, pen, bed, shake)
		}

		for _, seg := range Segments(p) {
			kind := domain.InstrTravel
			feed := bed.TravelSpeed
			if seg.Pen == domain.PenDown {
				kind = domain.InstrDraw
				feed = bed.DrawSpeed
			}

			d := pen.Dist(seg.To)
			if seg.Pen == domain.PenDown {
				res.DrawDistance += d
			} else {
				res.TravelDistance += d
			}

			res.Instructions = append(res.Instructions, domain.Instruction{Kind: kind, Target: seg.To, Feed: feed})
			pen = seg.To
		}
	}

	home := domain.Point{}
	res.TravelDistance += pen.Dist(home)
	res.Instructions = append(res.Instructions,
		domain.Instruction{Kind: domain.InstrTravel, Target: home, Feed: bed.TravelSpeed},
		domain.Instruction{Kind: domain.InstrEnd},
	)
	return res
}

// settle cycle states
type settleState uint8

const (
	stateIdle settleState = iota
	stateShake
	stateSettle
)

// settleCycle emits one IDLE→SHAKE→SETTLE→IDLE maintenance block: pen-up
// oscillation moves of fixed amplitude across both bed axes around the
// current position, then a dwell so loose media can settle. Returns the
// pen position afterwards.
func settleCycle(res *Result, pen domain.Point, bed domain.BedConfig, shake domain.ShakeOptions) domain.Point {
	base := clampToBed(pen, bed, shake.Amplitude)

	offsets := [4]domain.Point{
		{X: shake.Amplitude},
		{X: -shake.Amplitude},
		{Y: shake.Amplitude},
		{Y: -shake.Amplitude},
	}

	state := stateIdle
	for {
		switch state {
		case stateIdle:
			state = stateShake

		case stateShake:
			for i := 0; i < shake.Cycles; i++ {
				target := base.Add(offsets[i%4])
				res.TravelDistance += pen.Dist(target)
				res.Instructions = append(res.Instructions, domain.Instruction{
					Kind:   domain.InstrTravel,
					Target: target,
					Feed:   bed.TravelSpeed,
				})
				pen = target
			}
			// recentre before pausing
			res.TravelDistance += pen.Dist(base)
			res.Instructions = append(res.Instructions, domain.Instruction{
				Kind:   domain.InstrTravel,
				Target: base,
				Feed:   bed.TravelSpeed,
			})
			pen = base
			state = stateSettle

		case stateSettle:
			res.Instructions = append(res.Instructions, domain.Instruction{
				Kind:    domain.InstrDwell,
				DwellMS: shake.SettleMS,
			})
			res.SettleCycles++
			return pen
		}
	}
}

// clampToBed keeps the oscillation inside the bed for any amplitude.
func clampToBed(p domain.Point, bed domain.BedConfig, amp float64) domain.Point {
	clamp := func(v, lo, hi float64) float64 {
		if lo > hi {
			return (lo + hi) / 2
		}
		if v < lo {
			return lo
		}
		if v > hi {
			return hi
		}
		return v
	}
	return domain.Point{
		X: clamp(p.X, amp, bed.Width-amp),
		Y: clamp(p.Y, amp, bed.Height-amp),
	}
}
