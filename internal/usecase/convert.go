package usecase

import (
	"context"
	"log/slog"
	"time"

	"github.com/PhysCorp/MarbleMachine/internal/domain"
	"github.com/PhysCorp/MarbleMachine/internal/ports"
	"github.com/PhysCorp/MarbleMachine/internal/usecase/bedmap"
	"github.com/PhysCorp/MarbleMachine/internal/usecase/emit"
	"github.com/PhysCorp/MarbleMachine/internal/usecase/extract"
	"github.com/PhysCorp/MarbleMachine/internal/usecase/plan"
	"github.com/PhysCorp/MarbleMachine/internal/usecase/rectify"
	"github.com/PhysCorp/MarbleMachine/internal/usecase/vectorize"
)

// Convert runs the full vision-to-toolpath pipeline for one image:
// rectify, extract strokes, vectorize, plan, map to the bed, emit, and
// write the program. One run is a pure sequential batch; the only state
// it reads beyond its inputs is the read-only machine profile.
type Convert struct {
	images ports.ImageSource
	writer ports.ToolpathWriter
	store  ports.ArtifactStore // optional
	log    *slog.Logger
}

func NewConvert(is ports.ImageSource, tw ports.ToolpathWriter, store ports.ArtifactStore, log *slog.Logger) *Convert {
	if log == nil {
		log = slog.Default()
	}
	return &Convert{
		images: is,
		writer: tw,
		store:  store,
		log:    log,
	}
}

// ConvertRequest describes one conversion run. Quad is nil for
// already-flat digital images.
type ConvertRequest struct {
	InputPath  string
	OutputPath string
	Quad       *domain.Quad
	Profile    domain.Profile
}

// Execute performs the run. Fatal errors (unreadable input, degenerate
// calibration, a drawing that cannot fit the bed) abort with no partial
// output; discarded specks and degenerate curves are absorbed as
// diagnostics and only counted in the report.
func (uc *Convert) Execute(ctx context.Context, req ConvertRequest) (domain.RunReport, error) {
	report := domain.RunReport{
		InputPath:  req.InputPath,
		OutputPath: req.OutputPath,
		Profile:    req.Profile.Name,
		StartedAt:  time.Now(),
	}

	raster, err := uc.images.Load(req.InputPath)
	if err != nil {
		return report, err
	}

	opts := req.Profile.Run

	canvas, err := rectify.Rectify(raster, req.Quad, opts.CanvasSize)
	if err != nil {
		return report, err
	}
	report.CanvasWidth = canvas.Width
	report.CanvasHeight = canvas.Height

	curves, specks := extract.Strokes(canvas, opts.Threshold, opts.MinStrokePx)
	report.CurvesTraced = len(curves)
	report.SpecksDiscarded = specks
	if specks > 0 {
		uc.log.Debug("convert.specks_discarded", "count", specks, "min_stroke_px", opts.MinStrokePx)
	}

	paths, degenerate := vectorize.SimplifyAll(curves, opts.Tolerance)
	report.DegenerateDropped = degenerate
	if degenerate > 0 {
		uc.log.Debug("convert.degenerate_curves_dropped", "count", degenerate)
	}

	planned := plan.Plan(paths, opts.Snap)
	report.PathsMerged = planned.Merged
	report.PathsPlanned = len(planned.Paths)
	for _, p := range planned.Paths {
		if p.Closed {
			report.ClosedPaths++
		}
	}

	mapped, err := bedmap.Map(planned.Paths, req.Profile.Bed)
	if err != nil {
		return report, err
	}

	program := emit.Program(mapped, req.Profile.Bed, opts.Shake)
	report.SettleCycles = program.SettleCycles
	report.Instructions = len(program.Instructions)
	report.TravelDistance = program.TravelDistance
	report.DrawDistance = program.DrawDistance

	if err := uc.writer.Write(req.OutputPath, program.Instructions); err != nil {
		return report, err
	}

	report.FinishedAt = time.Now()

	uc.log.Info("convert.done",
		"input", req.InputPath,
		"output", req.OutputPath,
		"paths", report.PathsPlanned,
		"instructions", report.Instructions,
	)

	if uc.store != nil {
		if _, serr := uc.store.SaveReport(report); serr != nil {
			// the program file is already written; a failed artifact save
			// is not worth failing the run over
			uc.log.Warn("convert.report_save_failed", "err", serr)
		}
	}

	return report, nil
}
