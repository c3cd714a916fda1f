package domain

import "time"

// RunReport summarizes one conversion run for reproducibility. Discarded
// specks and degenerate curves are diagnostics, not failures; they are
// counted here and logged, never returned as errors.
type RunReport struct {
	InputPath  string `json:"input_path"`
	OutputPath string `json:"output_path"`
	Profile    string `json:"profile"`

	StartedAt  time.Time `json:"started_at"`
	FinishedAt time.Time `json:"finished_at"`

	CanvasWidth  int `json:"canvas_width"`
	CanvasHeight int `json:"canvas_height"`

	CurvesTraced      int `json:"curves_traced"`
	SpecksDiscarded   int `json:"specks_discarded"`
	DegenerateDropped int `json:"degenerate_dropped"`
	PathsMerged       int `json:"paths_merged"`
	PathsPlanned      int `json:"paths_planned"`
	ClosedPaths       int `json:"closed_paths"`
	SettleCycles      int `json:"settle_cycles"`
	Instructions      int `json:"instructions"`

	TravelDistance float64 `json:"travel_distance"` // pen-up, bed units
	DrawDistance   float64 `json:"draw_distance"`   // pen-down, bed units
}

// Empty reports whether the run produced a no-op program (blank input).
func (r RunReport) Empty() bool {
	return r.PathsPlanned == 0
}
