// Package cli implements the mongoose-sep command-line driver: a thin
// cobra front end over the separator/condition/mtx packages, used for
// demo runs and as a reproducibility harness against the property tests.
package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/nsep/mongoose/utils"
)

// Execute runs the mongoose-sep CLI and returns an error if the invoked
// command fails.
func Execute() error {
	var verbose bool

	root := &cobra.Command{
		Use:          "mongoose-sep",
		Short:        "Two-way edge-separator engine for sparse graphs",
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := 0
			if verbose {
				level = 1
			}
			utils.SetLevel(level)
		},
	}
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	root.AddCommand(newPartitionCmd())
	root.AddCommand(newConditionCmd())

	return root.ExecuteContext(context.Background())
}
