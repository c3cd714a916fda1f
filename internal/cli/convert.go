package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/PhysCorp/MarbleMachine/internal/domain"
	"github.com/PhysCorp/MarbleMachine/internal/infra/config"
	"github.com/PhysCorp/MarbleMachine/internal/infra/gcode"
	"github.com/PhysCorp/MarbleMachine/internal/infra/imagefile"
	"github.com/PhysCorp/MarbleMachine/internal/infra/logger"
	"github.com/PhysCorp/MarbleMachine/internal/infra/runstore"
	"github.com/PhysCorp/MarbleMachine/internal/usecase"
)

func convertCmd(debug *bool) *cobra.Command {
	var input string
	var output string
	var profilePath string
	var quadArg string
	var shake bool
	var tolerance float64
	var snap float64
	var noSave bool
	var format string

	c := &cobra.Command{
		Use:   "convert",
		Short: "Convert a board image into a toolpath program",
		RunE: func(cmd *cobra.Command, _ []string) error {
			profile, err := config.LoadProfileOrDefault(profilePath)
			if err != nil {
				return err
			}
			if shake {
				profile.Run.Shake.Enabled = true
			}
			if tolerance > 0 {
				profile.Run.Tolerance = tolerance
			}
			if snap > 0 {
				profile.Run.Snap = snap
			}

			quad, err := parseQuad(quadArg)
			if err != nil {
				return err
			}

			if output == "" {
				output = defaultOutputPath(input)
			}

			wd, err := os.Getwd()
			if err != nil {
				wd = "."
			}
			cleanup, _ := logger.Setup(logger.Config{
				Root:  wd,
				Debug: *debug,
			})
			if cleanup != nil {
				defer func() { _ = cleanup() }()
			}

			var store *runstore.JSONStore
			if !noSave {
				store = runstore.NewJSONStore(wd)
			}

			uc := newConvertUsecase(store)

			report, err := uc.Execute(cmd.Context(), usecase.ConvertRequest{
				InputPath:  input,
				OutputPath: output,
				Quad:       quad,
				Profile:    profile,
			})
			if err != nil {
				return err
			}

			return printReport(os.Stdout, report, format)
		},
	}

	c.Flags().StringVarP(&input, "input", "i", "", "Board image to convert (png, jpeg, gif, bmp) (required)")
	c.Flags().StringVarP(&output, "output", "o", "", "Toolpath output file (default: input name with .gcode)")
	c.Flags().StringVarP(&profilePath, "profile", "p", "", "Machine profile YAML (optional; stock profile if omitted)")
	c.Flags().StringVar(&quadArg, "quad", "", `Board corners "x,y;x,y;x,y;x,y" clockwise from top-left (optional; whole image if omitted)`)
	c.Flags().BoolVar(&shake, "shake", false, "Interleave bed-settling cycles between paths")
	c.Flags().Float64Var(&tolerance, "tolerance", 0, "Simplification tolerance in canvas pixels (0: profile value)")
	c.Flags().Float64Var(&snap, "snap", 0, "Endpoint merge distance in canvas pixels (0: profile value)")
	c.Flags().BoolVar(&noSave, "no-save", false, "Do not save a run report under reports/")
	c.Flags().StringVar(&format, "format", "pretty", "Report format: pretty|json")

	_ = c.MarkFlagRequired("input")
	return c
}

// newConvertUsecase wires the file-based adapters. Split out so the
// store can be nil without a typed-nil interface sneaking in.
func newConvertUsecase(store *runstore.JSONStore) *usecase.Convert {
	if store == nil {
		return usecase.NewConvert(imagefile.NewLoader(), gcode.NewWriter(), nil, logger.L())
	}
	return usecase.NewConvert(imagefile.NewLoader(), gcode.NewWriter(), store, logger.L())
}

func defaultOutputPath(input string) string {
	base := strings.TrimSuffix(input, filepath.Ext(input))
	if base == "" {
		base = "out"
	}
	return base + ".gcode"
}

// parseQuad parses "x,y;x,y;x,y;x,y", four corners clockwise from
// top-left. An empty string means no rectification quad.
func parseQuad(s string) (*domain.Quad, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}

	parts := strings.Split(s, ";")
	if len(parts) != 4 {
		return nil, fmt.Errorf("quad needs 4 corners, got %d", len(parts))
	}

	var q domain.Quad
	for i, part := range parts {
		xy := strings.Split(strings.TrimSpace(part), ",")
		if len(xy) != 2 {
			return nil, fmt.Errorf("quad corner %d: expected \"x,y\", got %q", i+1, part)
		}
		x, err := strconv.ParseFloat(strings.TrimSpace(xy[0]), 64)
		if err != nil {
			return nil, fmt.Errorf("quad corner %d: bad x %q", i+1, xy[0])
		}
		y, err := strconv.ParseFloat(strings.TrimSpace(xy[1]), 64)
		if err != nil {
			return nil, fmt.Errorf("quad corner %d: bad y %q", i+1, xy[1])
		}
		q[i] = domain.Point{X: x, Y: y}
	}
	return &q, nil
}

func printReport(w io.Writer, report domain.RunReport, format string) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(report)
	case "pretty", "":
		printPrettyReport(w, report)
		return nil
	default:
		return fmt.Errorf("unsupported format %q (expected pretty|json)", format)
	}
}

func printPrettyReport(w io.Writer, report domain.RunReport) {
	th := defaultTheme()

	total := report.FinishedAt.Sub(report.StartedAt)
	if report.StartedAt.IsZero() || report.FinishedAt.IsZero() {
		total = 0
	}

	fmt.Fprintln(w, th.Title.Render("Conversion complete"))
	fmt.Fprintf(w, "%s %s\n", th.Label.Render("Input:"), report.InputPath)
	fmt.Fprintf(w, "%s %s\n", th.Label.Render("Output:"), report.OutputPath)
	fmt.Fprintf(w, "%s %s\n", th.Label.Render("Profile:"), report.Profile)
	fmt.Fprintf(w, "%s %s\n", th.Label.Render("Duration:"), total.Round(time.Millisecond))
	fmt.Fprintln(w)

	if report.Empty() {
		fmt.Fprintln(w, th.Warn.Render("blank board: program contains only an end marker"))
		return
	}

	fmt.Fprintf(w, "%s %d (%d discarded as specks)\n", th.Label.Render("Curves traced:"), report.CurvesTraced, report.SpecksDiscarded)
	fmt.Fprintf(w, "%s %d (%d closed, %d merged, %d degenerate dropped)\n",
		th.Label.Render("Paths planned:"), report.PathsPlanned, report.ClosedPaths, report.PathsMerged, report.DegenerateDropped)
	fmt.Fprintf(w, "%s %d\n", th.Label.Render("Instructions:"), report.Instructions)
	if report.SettleCycles > 0 {
		fmt.Fprintf(w, "%s %d\n", th.Label.Render("Settle cycles:"), report.SettleCycles)
	}
	fmt.Fprintf(w, "%s travel %.1f / draw %.1f bed units\n",
		th.Label.Render("Pen distance:"), report.TravelDistance, report.DrawDistance)
}
