package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/navgrid/navigation"
	"github.com/lixenwraith/navgrid/surface"
)

const smallConfigYAML = `
grid:
  world_width: 20
  world_height: 10
  cell_radius: 0.5
  blur_radius: 0
`

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := newRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestFindPlain(t *testing.T) {
	cfg := writeFile(t, "navsim.yaml", smallConfigYAML)

	out, err := execute(t, "--config", cfg, "find", "--plain", "--from=-8,-3", "--to=8,3")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, lines, 11)
	for _, l := range lines[:10] {
		assert.Len(t, l, 20)
	}
	// Cell (2,2) sits on row 10-1-2 counted from the top
	assert.Equal(t, byte('S'), lines[7][2])
	assert.Equal(t, byte('E'), lines[1][18])
	assert.Contains(t, lines[10], "cost")
}

func TestFindStyled(t *testing.T) {
	cfg := writeFile(t, "navsim.yaml", smallConfigYAML)

	out, err := execute(t, "--config", cfg, "find")
	require.NoError(t, err)
	assert.Contains(t, out, "waypoints")
}

func TestFindUnreachableScene(t *testing.T) {
	scene := writeFile(t, "wall.yaml", `
size: {x: 20, y: 10}
obstacles:
  - box: {x: -10, y: -0.5, w: 20, h: 1}
start: {x: -5, y: -3}
target: {x: -5, y: 3}
`)

	out, err := execute(t, "--scene", scene, "find", "--plain")
	assert.ErrorIs(t, err, navigation.ErrUnreachable)
	assert.Contains(t, out, "no path")
}

func TestFindRejectsBadPoint(t *testing.T) {
	_, err := execute(t, "find", "--from=1,2,3")
	assert.ErrorIs(t, err, navigation.ErrConfiguration)
}

func TestRejectsInvalidConfig(t *testing.T) {
	cfg := writeFile(t, "navsim.yaml", "agent:\n  speed: 0\n")
	_, err := execute(t, "--config", cfg, "find")
	assert.ErrorIs(t, err, navigation.ErrConfiguration)
}

func TestMazeToStdout(t *testing.T) {
	out, err := execute(t, "maze", "--width", "7", "--height", "5", "--seed", "3")
	require.NoError(t, err)

	scene, err := surface.ParseScene([]byte(out))
	require.NoError(t, err)
	require.NotNil(t, scene.Size)
	assert.Equal(t, 14.0, scene.Size.X)
	assert.Equal(t, 10.0, scene.Size.Y)
	assert.NotEmpty(t, scene.Obstacles)
}

func TestMazeSceneIsSolvable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "maze.yaml")
	_, err := execute(t, "maze", "--width", "11", "--height", "11", "--seed", "7", "--cell", "1", "--out", path)
	require.NoError(t, err)

	scene, err := surface.LoadScene(path)
	require.NoError(t, err)
	require.NotNil(t, scene.Start)
	require.NotNil(t, scene.Target)

	out, err := execute(t, "--scene", path, "find", "--plain")
	require.NoError(t, err)
	assert.Contains(t, out, "S")
	assert.Contains(t, out, "E")
}

func TestMazeRejectsBadFlags(t *testing.T) {
	_, err := execute(t, "maze", "--cell", "0")
	assert.ErrorIs(t, err, navigation.ErrConfiguration)

	_, err = execute(t, "maze", "--braid", "1.5")
	assert.ErrorIs(t, err, navigation.ErrConfiguration)
}

func TestBench(t *testing.T) {
	cfg := writeFile(t, "navsim.yaml", smallConfigYAML)

	out, err := execute(t, "--config", cfg, "bench", "-n", "20", "--seed", "3", "-w", "2")
	require.NoError(t, err)
	assert.Contains(t, out, "grid          20x10 (200 walkable)")
	assert.Contains(t, out, "searches      20 (found 20)")
	assert.Contains(t, out, "mean cost")

	_, err = execute(t, "bench", "-n", "0")
	assert.ErrorIs(t, err, navigation.ErrConfiguration)
}
