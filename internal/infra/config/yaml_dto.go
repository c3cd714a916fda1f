package config

// YAMLProfile mirrors the machine profile file. Every field is optional;
// absent fields keep the stock profile's value.
type YAMLProfile struct {
	Name string `yaml:"name"`

	Bed       YAMLBed       `yaml:"bed"`
	Speed     YAMLSpeed     `yaml:"speed"`
	Image     YAMLImage     `yaml:"image"`
	Vectorize YAMLVectorize `yaml:"vectorize"`
	Plan      YAMLPlan      `yaml:"plan"`
	Shake     YAMLShake     `yaml:"shake"`
}

type YAMLBed struct {
	Width  *float64 `yaml:"width"`
	Height *float64 `yaml:"height"`
	Origin string   `yaml:"origin"` // top_left | bottom_left
	Margin *float64 `yaml:"margin"`
}

type YAMLSpeed struct {
	Travel *float64 `yaml:"travel"`
	Draw   *float64 `yaml:"draw"`
	Preset *float64 `yaml:"preset"`
}

type YAMLImage struct {
	CanvasSize  *int          `yaml:"canvas_size"`
	Threshold   YAMLThreshold `yaml:"threshold"`
	MinStrokePx *int          `yaml:"min_stroke_px"`
}

type YAMLThreshold struct {
	Mode   string `yaml:"mode"` // global | adaptive
	Value  *int   `yaml:"value"`
	Window *int   `yaml:"window"`
	Bias   *int   `yaml:"bias"`
}

type YAMLVectorize struct {
	Tolerance *float64 `yaml:"tolerance"`
}

type YAMLPlan struct {
	Snap *float64 `yaml:"snap"`
}

type YAMLShake struct {
	Enabled   *bool    `yaml:"enabled"`
	Interval  *int     `yaml:"interval"`
	Cycles    *int     `yaml:"cycles"`
	Amplitude *float64 `yaml:"amplitude"`
	SettleMS  *int     `yaml:"settle_ms"`
}
