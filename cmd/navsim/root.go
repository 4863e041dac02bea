package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/lixenwraith/navgrid/config"
	"github.com/lixenwraith/navgrid/surface"
)

// options holds global flags and the session they resolve to
type options struct {
	configPath string
	scenePath  string
	debug      bool

	cfg     *config.Config
	scene   *surface.Scene
	logFile *os.File
}

// Execute runs the root command with signal handling
func Execute(ctx context.Context) error {
	ctx, cancel := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	return newRootCmd().ExecuteContext(ctx)
}

func newRootCmd() *cobra.Command {
	o := &options{}
	root := &cobra.Command{
		Use:   "navsim",
		Short: "Grid pathfinding and steering simulator",
		Long: `navsim samples a scene into a weighted navigation grid, searches it with A*
and steers an agent along the smoothed path toward a movable target.

Run without a subcommand to start the interactive terminal view.`,
		PersistentPreRunE: o.load,
		PersistentPostRun: func(*cobra.Command, []string) { o.close() },
		SilenceUsage:      true,
		SilenceErrors:     true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runInteractive(cmd.Context(), o)
		},
	}

	flags := root.PersistentFlags()
	flags.StringVarP(&o.configPath, "config", "c", "", "YAML config file, watched for changes in run mode")
	flags.StringVarP(&o.scenePath, "scene", "s", "", "scene file, overrides the config scene")
	flags.BoolVar(&o.debug, "debug", false, "write logs to the configured log file")

	root.AddCommand(
		newRunCmd(o),
		newFindCmd(o),
		newBenchCmd(o),
		newMazeCmd(o),
	)
	return root
}

// load resolves config, logging and scene before any command runs
func (o *options) load(cmd *cobra.Command, _ []string) error {
	cfg := config.Default()
	if o.configPath != "" {
		var err error
		if cfg, err = config.Load(o.configPath); err != nil {
			return err
		}
	}
	o.cfg = cfg
	o.logFile = setupLogging(o.debug, cfg.Log.File, parseLevel(cfg.Log.Level))

	path := o.scenePath
	if path == "" {
		path = cfg.Scene
	}
	if path != "" {
		scene, err := surface.LoadScene(path)
		if err != nil {
			return err
		}
		o.scene = scene
	}

	slog.Info("session loaded", "command", cmd.Name(), "config", o.configPath, "scene", path)
	return nil
}

func (o *options) close() {
	if o.logFile != nil {
		_ = o.logFile.Close()
		o.logFile = nil
	}
}
