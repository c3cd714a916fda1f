package config

import (
	"fmt"
	"strings"

	"github.com/PhysCorp/MarbleMachine/internal/domain"
)

// MapProfile overlays the DTO onto the stock profile and validates the
// result.
func MapProfile(path string, dto YAMLProfile) (domain.Profile, error) {
	p := domain.DefaultProfile()

	if strings.TrimSpace(dto.Name) != "" {
		p.Name = dto.Name
	}

	setF := func(dst *float64, src *float64) {
		if src != nil {
			*dst = *src
		}
	}
	setI := func(dst *int, src *int) {
		if src != nil {
			*dst = *src
		}
	}

	setF(&p.Bed.Width, dto.Bed.Width)
	setF(&p.Bed.Height, dto.Bed.Height)
	setF(&p.Bed.Margin, dto.Bed.Margin)
	setF(&p.Bed.TravelSpeed, dto.Speed.Travel)
	setF(&p.Bed.DrawSpeed, dto.Speed.Draw)
	setF(&p.Bed.PresetSpeed, dto.Speed.Preset)

	if dto.Bed.Origin != "" {
		switch domain.OriginMode(dto.Bed.Origin) {
		case domain.OriginTopLeft, domain.OriginBottomLeft:
			p.Bed.Origin = domain.OriginMode(dto.Bed.Origin)
		default:
			return domain.Profile{}, invalidField(path, "bed.origin",
				fmt.Sprintf("unknown origin %q (expected top_left|bottom_left)", dto.Bed.Origin))
		}
	}

	setI(&p.Run.CanvasSize, dto.Image.CanvasSize)
	setI(&p.Run.MinStrokePx, dto.Image.MinStrokePx)
	setF(&p.Run.Tolerance, dto.Vectorize.Tolerance)
	setF(&p.Run.Snap, dto.Plan.Snap)

	if dto.Image.Threshold.Mode != "" {
		switch domain.ThresholdMode(dto.Image.Threshold.Mode) {
		case domain.ThresholdGlobal, domain.ThresholdAdaptive:
			p.Run.Threshold.Mode = domain.ThresholdMode(dto.Image.Threshold.Mode)
		default:
			return domain.Profile{}, invalidField(path, "image.threshold.mode",
				fmt.Sprintf("unknown mode %q (expected global|adaptive)", dto.Image.Threshold.Mode))
		}
	}
	if v := dto.Image.Threshold.Value; v != nil {
		if *v < 0 || *v > 255 {
			return domain.Profile{}, invalidField(path, "image.threshold.value", "must be in 0..255")
		}
		p.Run.Threshold.Value = uint8(*v)
	}
	setI(&p.Run.Threshold.Window, dto.Image.Threshold.Window)
	setI(&p.Run.Threshold.Bias, dto.Image.Threshold.Bias)

	if dto.Shake.Enabled != nil {
		p.Run.Shake.Enabled = *dto.Shake.Enabled
	}
	setI(&p.Run.Shake.Interval, dto.Shake.Interval)
	setI(&p.Run.Shake.Cycles, dto.Shake.Cycles)
	setF(&p.Run.Shake.Amplitude, dto.Shake.Amplitude)
	setI(&p.Run.Shake.SettleMS, dto.Shake.SettleMS)

	if err := validate(path, p); err != nil {
		return domain.Profile{}, err
	}
	return p, nil
}

func validate(path string, p domain.Profile) error {
	b := p.Bed
	switch {
	case b.Width <= 0 || b.Height <= 0:
		return invalidField(path, "bed", "width and height must be positive")
	case b.Margin < 0:
		return invalidField(path, "bed.margin", "must not be negative")
	case 2*b.Margin >= b.Width || 2*b.Margin >= b.Height:
		return invalidField(path, "bed.margin", "leaves no drawable area")
	case b.TravelSpeed < 0 || b.DrawSpeed < 0 || b.PresetSpeed < 0:
		return invalidField(path, "speed", "must not be negative")
	}

	r := p.Run
	switch {
	case r.CanvasSize < 2:
		return invalidField(path, "image.canvas_size", "must be at least 2")
	case r.MinStrokePx < 1:
		return invalidField(path, "image.min_stroke_px", "must be at least 1")
	case r.Threshold.Window < 3:
		return invalidField(path, "image.threshold.window", "must be at least 3")
	case r.Tolerance < 0:
		return invalidField(path, "vectorize.tolerance", "must not be negative")
	case r.Snap < 0:
		return invalidField(path, "plan.snap", "must not be negative")
	}

	s := r.Shake
	if s.Enabled {
		switch {
		case s.Interval < 1:
			return invalidField(path, "shake.interval", "must be at least 1")
		case s.Cycles < 1:
			return invalidField(path, "shake.cycles", "must be at least 1")
		case s.Amplitude < 0:
			return invalidField(path, "shake.amplitude", "must not be negative")
		case s.SettleMS < 0:
			return invalidField(path, "shake.settle_ms", "must not be negative")
		case s.Amplitude*2 >= p.Bed.Width || s.Amplitude*2 >= p.Bed.Height:
			return invalidField(path, "shake.amplitude", "too large for the bed")
		}
	}

	return nil
}

func invalidField(path, field, msg string) error {
	return &domain.OpError{
		Op:   "config.map_profile",
		Kind: domain.KindInvalidConfig,
		Path: path,
		Err:  fmt.Errorf("%s: %s", field, msg),
	}
}
