package main

import (
	"fmt"
	"log/slog"
	"math/rand"
	"time"

	"github.com/spf13/cobra"

	"github.com/lixenwraith/navgrid/engine"
	"github.com/lixenwraith/navgrid/navigation"
)

func newBenchCmd(o *options) *cobra.Command {
	var (
		count   int
		seed    int64
		workers int
	)
	cmd := &cobra.Command{
		Use:   "bench",
		Short: "Search between random walkable cells in parallel and report timings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if count <= 0 {
				return fmt.Errorf("%w: count must be positive", navigation.ErrConfiguration)
			}
			if !cmd.Flags().Changed("workers") {
				workers = o.cfg.Search.Workers
			}

			grid, _, err := engine.BuildGrid(o.cfg, o.scene)
			if err != nil {
				return err
			}

			var open []int
			for i := 0; i < grid.Size(); i++ {
				if grid.CellAt(i).Walkable {
					open = append(open, i)
				}
			}
			if len(open) == 0 {
				return fmt.Errorf("%w: no walkable cells", navigation.ErrInvalidEndpoint)
			}

			rng := rand.New(rand.NewSource(seed))
			reqs := make([]navigation.PathRequest, count)
			for i := range reqs {
				a := grid.CellAt(open[rng.Intn(len(open))])
				b := grid.CellAt(open[rng.Intn(len(open))])
				reqs[i] = navigation.NewPathRequest(grid.WorldFromCell(a.X, a.Y), grid.WorldFromCell(b.X, b.Y), nil)
			}

			began := time.Now()
			results, err := navigation.FindAll(cmd.Context(), grid, reqs, workers,
				navigation.WithOptions(o.cfg.SearchOptions()))
			if err != nil {
				return err
			}
			wall := time.Since(began)

			var (
				found          int
				cost, expanded int
				searchTime     time.Duration
				slowest        time.Duration
			)
			for _, res := range results {
				searchTime += res.Elapsed
				slowest = max(slowest, res.Elapsed)
				expanded += res.Expanded
				if res.Success {
					found++
					cost += res.Cost
				}
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "grid          %dx%d (%d walkable)\n", grid.Width(), grid.Height(), len(open))
			fmt.Fprintf(out, "searches      %d (found %d)\n", count, found)
			fmt.Fprintf(out, "wall time     %v\n", wall.Round(time.Microsecond))
			fmt.Fprintf(out, "mean search   %v (slowest %v)\n",
				(searchTime / time.Duration(count)).Round(time.Microsecond), slowest.Round(time.Microsecond))
			fmt.Fprintf(out, "mean expanded %d\n", expanded/count)
			if found > 0 {
				fmt.Fprintf(out, "mean cost     %d\n", cost/found)
			}

			slog.Info("bench complete", "searches", count, "found", found, "wall", wall)
			return nil
		},
	}
	cmd.Flags().IntVarP(&count, "count", "n", 200, "number of searches")
	cmd.Flags().Int64Var(&seed, "seed", 1, "endpoint selection seed")
	cmd.Flags().IntVarP(&workers, "workers", "w", 0, "parallel searches, 0 uses GOMAXPROCS (default from config)")
	return cmd
}
