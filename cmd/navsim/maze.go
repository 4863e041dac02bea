package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/lixenwraith/navgrid/navigation"
	"github.com/lixenwraith/navgrid/surface"
	"github.com/lixenwraith/navgrid/surface/maze"
)

func newMazeCmd(_ *options) *cobra.Command {
	var (
		mc   maze.Config
		cell float64
		out  string
	)
	cmd := &cobra.Command{
		Use:   "maze",
		Short: "Generate a braided maze and write it as a scene file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if cell <= 0 {
				return fmt.Errorf("%w: cell size must be positive", navigation.ErrConfiguration)
			}
			if mc.Braiding < 0 || mc.Braiding > 1 {
				return fmt.Errorf("%w: braiding must be within [0, 1]", navigation.ErrConfiguration)
			}

			m := maze.Generate(mc)
			scene := surface.FromMaze(m, cell)
			data, err := scene.Marshal()
			if err != nil {
				return err
			}

			slog.Info("maze generated",
				"width", m.Width(), "height", m.Height(), "solution", len(m.Solution), "out", out)

			if out == "" {
				_, err = cmd.OutOrStdout().Write(data)
				return err
			}
			return os.WriteFile(out, data, 0o644)
		},
	}
	flags := cmd.Flags()
	flags.IntVar(&mc.Width, "width", 31, "maze columns, rounded up to odd")
	flags.IntVar(&mc.Height, "height", 15, "maze rows, rounded up to odd")
	flags.Float64Var(&mc.Braiding, "braid", 0.3, "share of dead ends removed, 0 to 1")
	flags.BoolVar(&mc.OpenBorder, "open-border", false, "open the outer ring")
	flags.Int64Var(&mc.Seed, "seed", 0, "generator seed, 0 seeds from the clock")
	flags.Float64Var(&cell, "cell", 2, "world size of one maze cell")
	flags.StringVarP(&out, "out", "o", "", "output file (default stdout)")
	return cmd
}
