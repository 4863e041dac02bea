package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/lixenwraith/navgrid/engine"
	"github.com/lixenwraith/navgrid/navigation"
	"github.com/lixenwraith/navgrid/render"
	"github.com/lixenwraith/navgrid/surface"
	"github.com/lixenwraith/navgrid/vmath"
)

func newFindCmd(o *options) *cobra.Command {
	var (
		from, to []float64
		plain    bool
	)
	cmd := &cobra.Command{
		Use:   "find",
		Short: "Run one search and print the grid with its path",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			grid, _, err := engine.BuildGrid(o.cfg, o.scene)
			if err != nil {
				return err
			}
			start, goal, err := endpoints(grid, o.scene, from, to)
			if err != nil {
				return err
			}

			finder := navigation.NewFinder(grid,
				navigation.WithOptions(o.cfg.SearchOptions()),
				navigation.WithLogger(slog.Default()))
			res := finder.FindPath(start, goal)

			out := cmd.OutOrStdout()
			if plain {
				for _, line := range render.ASCIIMap(grid, res) {
					fmt.Fprintln(out, line)
				}
				fmt.Fprintln(out, render.Summary(res))
			} else {
				fmt.Fprintln(out, render.StyledMap(grid, res))
			}

			if !res.Success {
				return fmt.Errorf("search failed: %w", res.Err)
			}
			return nil
		},
	}
	cmd.Flags().Float64SliceVar(&from, "from", nil, "start point x,y in world units (default scene start)")
	cmd.Flags().Float64SliceVar(&to, "to", nil, "goal point x,y in world units (default scene target)")
	cmd.Flags().BoolVar(&plain, "plain", false, "print without colors or frame")
	return cmd
}

// endpoints resolves flag points, then scene points, then opposite grid corners
func endpoints(g *navigation.Grid, scene *surface.Scene, from, to []float64) (vmath.Vec2F, vmath.Vec2F, error) {
	start := g.WorldFromCell(0, 0)
	goal := g.WorldFromCell(g.Width()-1, g.Height()-1)
	if scene != nil {
		if scene.Start != nil {
			start = *scene.Start
		}
		if scene.Target != nil {
			goal = *scene.Target
		}
	}

	var err error
	if start, err = flagPoint(from, start); err != nil {
		return start, goal, err
	}
	goal, err = flagPoint(to, goal)
	return start, goal, err
}

func flagPoint(v []float64, fallback vmath.Vec2F) (vmath.Vec2F, error) {
	switch len(v) {
	case 0:
		return fallback, nil
	case 2:
		return vmath.V2F(v[0], v[1]), nil
	}
	return fallback, fmt.Errorf("%w: point needs exactly x,y, got %v", navigation.ErrConfiguration, v)
}
