package cli

import (
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/nsep/mongoose/condition"
	"github.com/nsep/mongoose/mtx"
	"github.com/nsep/mongoose/utils"
)

func newConditionCmd() *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:   "condition <file.mtx>",
		Short: "Run only the sanitization pipeline and print the resulting graph's stats",
		Args:  cobra.ExactArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			return runCondition(args[0], out)
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", "", "write the conditioned graph to this path as Matrix Market")

	return cmd
}

func runCondition(path string, out string) error {
	raw, err := mtx.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}

	g := condition.Condition(raw.N, raw.Entries, nil)
	log.Info().
		Int("rawN", raw.N).
		Int("n", g.N).
		Int("nz", g.Nz).
		Float64("wTotal", g.WTotal).
		Float64("xTotal", g.XTotal).
		Msg("conditioned graph")

	if out == "" {
		return nil
	}
	file := utils.CreateFile(out)
	defer file.Close()
	return mtx.WriteMatrix(file, g)
}
