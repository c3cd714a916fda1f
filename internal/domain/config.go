package domain

// OriginMode names the bed's coordinate origin convention. Vector space
// is always top-left y-down (image convention); the bed mapper flips the
// vertical axis for bottom-left beds.
type OriginMode string

const (
	OriginTopLeft    OriginMode = "top_left"
	OriginBottomLeft OriginMode = "bottom_left"
)

// BedConfig describes the physical drawing bed. Read-only for the
// duration of one conversion run.
type BedConfig struct {
	Width  float64 // bed units (mm)
	Height float64
	Origin OriginMode
	Margin float64 // kept clear on all four sides

	TravelSpeed float64
	DrawSpeed   float64
	PresetSpeed float64 // emitted as a speed preset at program start; 0 disables
}

// ThresholdMode selects how ink is separated from background.
type ThresholdMode string

const (
	ThresholdGlobal   ThresholdMode = "global"   // fixed cutoff, flat digital images
	ThresholdAdaptive ThresholdMode = "adaptive" // local mean, uneven camera lighting
)

type ThresholdOptions struct {
	Mode   ThresholdMode
	Value  uint8 // global: intensities at or below Value are ink
	Window int   // adaptive: odd neighbourhood size
	Bias   int   // adaptive: subtracted from the local mean
}

// ShakeOptions configures the bed-settling maintenance interleave.
type ShakeOptions struct {
	Enabled   bool
	Interval  int     // insert a settle cycle every Interval paths
	Cycles    int     // oscillation moves per settle cycle
	Amplitude float64 // oscillation amplitude in bed units
	SettleMS  int     // dwell after shaking
}

// Options are the per-run pipeline knobs.
type Options struct {
	CanvasSize  int // canonical raster is CanvasSize x CanvasSize
	Threshold   ThresholdOptions
	MinStrokePx int     // pixel curves shorter than this are noise specks
	Tolerance   float64 // simplification tolerance, canvas pixels
	Snap        float64 // endpoint merge distance, canvas pixels
	Shake       ShakeOptions
}

// Profile bundles the machine description with run defaults, typically
// loaded from a YAML machine profile.
type Profile struct {
	Name string
	Bed  BedConfig
	Run  Options
}

// DefaultProfile returns the stock marble bed profile. The numbers are
// the rig's measured working envelope and the tuning that ships with it.
func DefaultProfile() Profile {
	return Profile{
		Name: "marble-bed",
		Bed: BedConfig{
			Width:       613,
			Height:      548,
			Origin:      OriginBottomLeft,
			Margin:      50,
			TravelSpeed: 5000,
			DrawSpeed:   3000,
			PresetSpeed: 5000,
		},
		Run: Options{
			CanvasSize: 1000,
			Threshold: ThresholdOptions{
				Mode:   ThresholdGlobal,
				Value:  127,
				Window: 15,
				Bias:   2,
			},
			MinStrokePx: 3,
			Tolerance:   1.5,
			Snap:        3,
			Shake: ShakeOptions{
				Enabled:   false,
				Interval:  5,
				Cycles:    6,
				Amplitude: 4,
				SettleMS:  800,
			},
		},
	}
}
