// Package config loads and validates navsim settings from YAML
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/lixenwraith/navgrid/audio"
	"github.com/lixenwraith/navgrid/navigation"
	"github.com/lixenwraith/navgrid/parameter"
	"github.com/lixenwraith/navgrid/steering"
	"github.com/lixenwraith/navgrid/vmath"
)

// Config is the full simulation configuration
type Config struct {
	Grid   GridConfig   `yaml:"grid"`
	Agent  AgentConfig  `yaml:"agent"`
	Search SearchConfig `yaml:"search"`
	Sim    SimConfig    `yaml:"sim"`
	Audio  AudioConfig  `yaml:"audio"`
	Log    LogConfig    `yaml:"log"`

	// Scene is an optional scene file; relative paths resolve against the working directory
	Scene string `yaml:"scene,omitempty"`
}

type GridConfig struct {
	CellRadius               float64 `yaml:"cell_radius"`
	WorldWidth               float64 `yaml:"world_width"`
	WorldHeight              float64 `yaml:"world_height"`
	OriginX                  float64 `yaml:"origin_x"`
	OriginY                  float64 `yaml:"origin_y"`
	BlurRadius               int     `yaml:"blur_radius"`
	ObstacleProximityPenalty int     `yaml:"obstacle_proximity_penalty"`
}

type AgentConfig struct {
	Speed             float64       `yaml:"speed"`
	TurnSpeed         float64       `yaml:"turn_speed"`
	TurnDistance      float64       `yaml:"turn_distance"`
	StoppingDistance  float64       `yaml:"stopping_distance"`
	MinUpdateInterval time.Duration `yaml:"min_update_interval"`
	MoveThreshold     float64       `yaml:"move_threshold"`
	StartupDelay      time.Duration `yaml:"startup_delay"`
}

type SearchConfig struct {
	AllowDiagonal bool `yaml:"allow_diagonal"`
	CornerCutting bool `yaml:"corner_cutting"`
	Workers       int  `yaml:"workers"`
}

type SimConfig struct {
	TickInterval      time.Duration `yaml:"tick_interval"`
	TraceEnabled      bool          `yaml:"trace_enabled"`
	TraceDrainPerTick int           `yaml:"trace_drain_per_tick"`
}

type AudioConfig struct {
	Enabled bool    `yaml:"enabled"`
	Volume  float64 `yaml:"volume"`
}

type LogConfig struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"`
}

// Default returns the stock configuration
func Default() *Config {
	return &Config{
		Grid: GridConfig{
			CellRadius:               parameter.GridCellRadius,
			WorldWidth:               parameter.GridWorldWidth,
			WorldHeight:              parameter.GridWorldHeight,
			BlurRadius:               parameter.GridBlurRadius,
			ObstacleProximityPenalty: parameter.GridObstacleProximityPenalty,
		},
		Agent: AgentConfig{
			Speed:             parameter.AgentSpeed,
			TurnSpeed:         parameter.AgentTurnSpeed,
			TurnDistance:      parameter.AgentTurnDistance,
			StoppingDistance:  parameter.AgentStoppingDistance,
			MinUpdateInterval: parameter.AgentMinPathUpdateTime,
			MoveThreshold:     parameter.AgentPathUpdateMoveThreshold,
			StartupDelay:      parameter.AgentStartupDelay,
		},
		Search: SearchConfig{
			AllowDiagonal: parameter.SearchAllowDiagonal,
			CornerCutting: parameter.SearchCornerCutting,
			Workers:       parameter.SearchBatchWorkers,
		},
		Sim: SimConfig{
			TickInterval:      parameter.TickInterval,
			TraceEnabled:      true,
			TraceDrainPerTick: parameter.TraceDrainPerTick,
		},
		Audio: AudioConfig{
			Enabled: false,
			Volume:  parameter.AudioMasterVolume,
		},
		Log: LogConfig{
			Level: "info",
			File:  parameter.LogFile,
		},
	}
}

// Load reads and validates the file at path
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("config: %s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes YAML over the defaults and validates the result
// Unknown keys are rejected; an empty document yields the defaults
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: %v", navigation.ErrConfiguration, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Marshal encodes cfg as YAML
func (c *Config) Marshal() ([]byte, error) {
	return yaml.Marshal(c)
}

// Validate reports the first out-of-range option wrapped in navigation.ErrConfiguration
func (c *Config) Validate() error {
	checks := []struct {
		ok  bool
		msg string
	}{
		{c.Grid.CellRadius > 0, "grid.cell_radius must be positive"},
		{c.Grid.WorldWidth > 0 && c.Grid.WorldHeight > 0, "grid world size must be positive"},
		{c.Grid.WorldWidth >= 2*c.Grid.CellRadius && c.Grid.WorldHeight >= 2*c.Grid.CellRadius, "grid world size smaller than one cell"},
		{c.Grid.BlurRadius >= 0, "grid.blur_radius must not be negative"},
		{c.Grid.ObstacleProximityPenalty >= 0, "grid.obstacle_proximity_penalty must not be negative"},
		{c.Agent.Speed > 0, "agent.speed must be positive"},
		{c.Agent.TurnSpeed > 0, "agent.turn_speed must be positive"},
		{c.Agent.TurnDistance >= 0, "agent.turn_distance must not be negative"},
		{c.Agent.StoppingDistance >= 0, "agent.stopping_distance must not be negative"},
		{c.Agent.MinUpdateInterval >= 0, "agent.min_update_interval must not be negative"},
		{c.Agent.MoveThreshold >= 0, "agent.move_threshold must not be negative"},
		{c.Agent.StartupDelay >= 0, "agent.startup_delay must not be negative"},
		{c.Search.Workers >= 0, "search.workers must not be negative"},
		{c.Sim.TickInterval > 0, "sim.tick_interval must be positive"},
		{c.Sim.TraceDrainPerTick > 0, "sim.trace_drain_per_tick must be positive"},
		{c.Audio.Volume >= 0 && c.Audio.Volume <= 1, "audio.volume must be within [0, 1]"},
		{validLevel(c.Log.Level), "log.level must be debug, info, warn or error"},
	}
	for _, chk := range checks {
		if !chk.ok {
			return fmt.Errorf("%w: %s", navigation.ErrConfiguration, chk.msg)
		}
	}
	return nil
}

func validLevel(l string) bool {
	switch l {
	case "debug", "info", "warn", "error":
		return true
	}
	return false
}

// GridSpec converts the grid section for navigation.NewGrid
func (c *Config) GridSpec() navigation.GridSpec {
	return navigation.GridSpec{
		Origin:                   vmath.V2F(c.Grid.OriginX, c.Grid.OriginY),
		WorldSize:                vmath.V2F(c.Grid.WorldWidth, c.Grid.WorldHeight),
		CellRadius:               c.Grid.CellRadius,
		ObstacleProximityPenalty: c.Grid.ObstacleProximityPenalty,
	}
}

// SearchOptions converts the search section
func (c *Config) SearchOptions() navigation.Options {
	return navigation.Options{
		AllowDiagonal: c.Search.AllowDiagonal,
		CornerCutting: c.Search.CornerCutting,
	}
}

// Steering converts the agent section
func (c *Config) Steering() steering.AgentConfig {
	return steering.AgentConfig{
		Params: steering.Params{
			Speed:            c.Agent.Speed,
			TurnSpeed:        c.Agent.TurnSpeed,
			StoppingDistance: c.Agent.StoppingDistance,
			ArriveEpsilon:    parameter.AgentArriveEpsilon,
		},
		TurnDistance:      c.Agent.TurnDistance,
		MinUpdateInterval: c.Agent.MinUpdateInterval,
		MoveThreshold:     c.Agent.MoveThreshold,
		StartupDelay:      c.Agent.StartupDelay,
	}
}

// Sound converts the audio section
func (c *Config) Sound() *audio.AudioConfig {
	a := audio.DefaultAudioConfig()
	a.Enabled = c.Audio.Enabled
	a.MasterVolume = c.Audio.Volume
	return a
}
