package cli

import (
	"os"

	"github.com/spf13/cobra"
)

func Execute() {
	cmd := newRootCmd()
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var debug bool

	cmd := &cobra.Command{
		Use:          "marblemachine",
		Short:        "MarbleMachine — whiteboard images to drawing-rig toolpaths",
		SilenceUsage: true,
	}

	cmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable verbose logging to logs/marblemachine.log")

	cmd.AddCommand(convertCmd(&debug))
	cmd.AddCommand(validateCmd())
	cmd.AddCommand(versionCmd())
	return cmd
}
