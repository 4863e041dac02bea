package surface

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/lixenwraith/navgrid/navigation"
	"github.com/lixenwraith/navgrid/vmath"
)

// Rect is an axis-aligned box given by its minimum corner and size
type Rect struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
	W float64 `yaml:"w"`
	H float64 `yaml:"h"`
}

// Contains reports whether p lies inside r, edges included
func (r Rect) Contains(p vmath.Vec2F) bool {
	return p.X >= r.X && p.X <= r.X+r.W && p.Y >= r.Y && p.Y <= r.Y+r.H
}

type Circle struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
	R float64 `yaml:"r"`
}

// Obstacle is exactly one of a box or a circle
type Obstacle struct {
	Box    *Rect   `yaml:"box,omitempty"`
	Circle *Circle `yaml:"circle,omitempty"`
}

// Terrain marks a walkable region with a movement penalty
type Terrain struct {
	Name    string `yaml:"name,omitempty"`
	Box     Rect   `yaml:"box"`
	Penalty int    `yaml:"penalty"`
}

// Scene describes the world surface a grid is sampled from
type Scene struct {
	Name      string       `yaml:"name,omitempty"`
	Size      *vmath.Vec2F `yaml:"size,omitempty"` // World size override, centered on the grid origin
	Obstacles []Obstacle   `yaml:"obstacles,omitempty"`
	Terrain   []Terrain    `yaml:"terrain,omitempty"`
	Start     *vmath.Vec2F `yaml:"start,omitempty"`
	Target    *vmath.Vec2F `yaml:"target,omitempty"`
}

// LoadScene reads and validates a scene file
func LoadScene(path string) (*Scene, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	s, err := ParseScene(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

// ParseScene decodes scene YAML; unknown keys are rejected
func ParseScene(data []byte) (*Scene, error) {
	s := &Scene{}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(s); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: scene: %v", navigation.ErrConfiguration, err)
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

// Marshal encodes the scene as YAML
func (s *Scene) Marshal() ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(s); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (s *Scene) Validate() error {
	if s.Size != nil && (s.Size.X <= 0 || s.Size.Y <= 0) {
		return fmt.Errorf("%w: scene size must be positive", navigation.ErrConfiguration)
	}
	for i, o := range s.Obstacles {
		switch {
		case o.Box == nil && o.Circle == nil:
			return fmt.Errorf("%w: obstacle %d has no shape", navigation.ErrConfiguration, i)
		case o.Box != nil && o.Circle != nil:
			return fmt.Errorf("%w: obstacle %d has both box and circle", navigation.ErrConfiguration, i)
		case o.Box != nil && (o.Box.W <= 0 || o.Box.H <= 0):
			return fmt.Errorf("%w: obstacle %d box size must be positive", navigation.ErrConfiguration, i)
		case o.Circle != nil && o.Circle.R <= 0:
			return fmt.Errorf("%w: obstacle %d circle radius must be positive", navigation.ErrConfiguration, i)
		}
	}
	for i, t := range s.Terrain {
		if t.Box.W <= 0 || t.Box.H <= 0 {
			return fmt.Errorf("%w: terrain %d box size must be positive", navigation.ErrConfiguration, i)
		}
		if t.Penalty < 0 {
			return fmt.Errorf("%w: terrain %d penalty must be >= 0", navigation.ErrConfiguration, i)
		}
	}
	return nil
}
