package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/PhysCorp/MarbleMachine/internal/infra/config"
)

func validateCmd() *cobra.Command {
	var profilePath string

	c := &cobra.Command{
		Use:   "validate",
		Short: "Validate a machine profile (no conversion)",
		RunE: func(_ *cobra.Command, _ []string) error {
			profile, err := config.LoadProfile(profilePath)
			if err != nil {
				return err
			}

			fmt.Printf("OK: %s (bed %.0fx%.0f %s, margin %.0f)\n",
				profile.Name, profile.Bed.Width, profile.Bed.Height, profile.Bed.Origin, profile.Bed.Margin)
			return nil
		},
	}

	c.Flags().StringVarP(&profilePath, "profile", "p", "", "Machine profile YAML (required)")

	_ = c.MarkFlagRequired("profile")
	return c
}
