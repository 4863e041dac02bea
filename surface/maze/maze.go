// Package maze generates braided grid mazes for navigation scenes
package maze

import (
	"math/rand"
	"time"
)

// Point is a maze cell coordinate, row 0 on top
type Point struct {
	X int `yaml:"x"`
	Y int `yaml:"y"`
}

var (
	orthoSteps = [4]Point{{0, -1}, {0, 1}, {-1, 0}, {1, 0}}
	carveSteps = [4]Point{{0, -2}, {0, 2}, {-2, 0}, {2, 0}}
)

type Config struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`

	// 0 yields a perfect maze, 1 removes every dead end the topology rules allow
	Braiding float64 `yaml:"braiding"`

	// Open the outer ring so paths can run around the maze
	OpenBorder bool `yaml:"open_border"`

	Start *Point `yaml:"start,omitempty"` // nil picks a corner
	End   *Point `yaml:"end,omitempty"`
	Seed  int64  `yaml:"seed,omitempty"` // 0 seeds from the clock
}

// Maze is a generated wall layout with its reference solution
type Maze struct {
	Walls      [][]bool // Walls[y][x]
	Start, End Point
	Solution   []Point // BFS shortest path, nil when Start and End are disconnected
}

func (m *Maze) Width() int {
	return len(m.Walls[0])
}

func (m *Maze) Height() int {
	return len(m.Walls)
}

func (m *Maze) IsWall(x, y int) bool {
	if x < 0 || y < 0 || y >= len(m.Walls) || x >= len(m.Walls[0]) {
		return true
	}
	return m.Walls[y][x]
}

// Generate carves a maze with a recursive backtracker, then braids dead ends
// Dimensions are rounded down to odd values of at least 3
func Generate(cfg Config) *Maze {
	rows, cols := oddDim(cfg.Height), oddDim(cfg.Width)

	walls := make([][]bool, rows)
	for y := range walls {
		walls[y] = make([]bool, cols)
		for x := range walls[y] {
			walls[y][x] = true
		}
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))

	startDef, endDef := Point{1, 1}, Point{cols - 2, rows - 2}
	if cfg.OpenBorder {
		startDef = Point{(cols / 2) | 1, (rows / 2) | 1}
		endDef = Point{cols - 1, (rows / 2) | 1}
	}
	start := clampPoint(cfg.Start, startDef, cols, rows)
	end := clampPoint(cfg.End, endDef, cols, rows)

	carve(walls, start, rng)

	// Border goes first so braiding sees the outer connections
	if cfg.OpenBorder {
		openBorder(walls)
	}
	if cfg.Braiding > 0 {
		braid(walls, cfg.Braiding, rng)
	}

	if cfg.OpenBorder {
		walls[start.Y][start.X] = false
		walls[end.Y][end.X] = false
	} else {
		ensureOpen(walls, start)
		ensureOpen(walls, end)
	}

	return &Maze{
		Walls:    walls,
		Start:    start,
		End:      end,
		Solution: solve(walls, start, end),
	}
}

func carve(walls [][]bool, start Point, rng *rand.Rand) {
	rows, cols := len(walls), len(walls[0])
	if start.X <= 0 || start.X >= cols-1 || start.Y <= 0 || start.Y >= rows-1 {
		start = Point{1, 1}
	}

	walls[start.Y][start.X] = false
	stack := []Point{start}
	options := make([]Point, 0, 4)

	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		options = options[:0]
		for _, d := range carveSteps {
			nx, ny := cur.X+d.X, cur.Y+d.Y
			if nx > 0 && nx < cols-1 && ny > 0 && ny < rows-1 && walls[ny][nx] {
				options = append(options, d)
			}
		}

		if len(options) == 0 {
			stack = stack[:len(stack)-1]
			continue
		}

		d := options[rng.Intn(len(options))]
		walls[cur.Y+d.Y/2][cur.X+d.X/2] = false
		next := Point{cur.X + d.X, cur.Y + d.Y}
		walls[next.Y][next.X] = false
		stack = append(stack, next)
	}
}

// braid knocks one wall out of each dead end with the given probability
func braid(walls [][]bool, probability float64, rng *rand.Rand) {
	rows, cols := len(walls), len(walls[0])
	options := make([]Point, 0, 4)

	for y := 1; y < rows-1; y += 2 {
		for x := 1; x < cols-1; x += 2 {
			if walls[y][x] {
				continue
			}

			exits := 0
			for _, d := range orthoSteps {
				if !walls[y+d.Y][x+d.X] {
					exits++
				}
			}
			if exits != 1 || rng.Float64() >= probability {
				continue
			}

			options = options[:0]
			for _, d := range carveSteps {
				nx, ny := x+d.X, y+d.Y
				wx, wy := x+d.X/2, y+d.Y/2
				if nx < 0 || nx >= cols || ny < 0 || ny >= rows {
					continue
				}
				if !walls[ny][nx] && walls[wy][wx] && safeToOpen(walls, wx, wy) {
					options = append(options, Point{wx, wy})
				}
			}
			if len(options) > 0 {
				p := options[rng.Intn(len(options))]
				walls[p.Y][p.X] = false
			}
		}
	}
}

// safeToOpen rejects openings that would create a 2x2 open plaza or a free-standing pillar
func safeToOpen(walls [][]bool, x, y int) bool {
	rows, cols := len(walls), len(walls[0])
	open := func(px, py int) bool {
		return px >= 0 && px < cols && py >= 0 && py < rows && !walls[py][px]
	}

	for _, q := range [4][2]int{{-1, -1}, {1, -1}, {-1, 1}, {1, 1}} {
		if open(x+q[0], y) && open(x, y+q[1]) && open(x+q[0], y+q[1]) {
			return false
		}
	}

	for _, d := range orthoSteps {
		nx, ny := x+d.X, y+d.Y
		if nx < 0 || nx >= cols || ny < 0 || ny >= rows || !walls[ny][nx] {
			continue
		}
		links := 0
		for _, d2 := range orthoSteps {
			ax, ay := nx+d2.X, ny+d2.Y
			if ax == x && ay == y {
				continue
			}
			if ax >= 0 && ax < cols && ay >= 0 && ay < rows && walls[ay][ax] {
				links++
			}
		}
		if links == 0 {
			return false
		}
	}
	return true
}

func openBorder(walls [][]bool) {
	rows, cols := len(walls), len(walls[0])
	for x := 0; x < cols; x++ {
		walls[0][x] = false
		walls[rows-1][x] = false
	}
	for y := 0; y < rows; y++ {
		walls[y][0] = false
		walls[y][cols-1] = false
	}
}

// ensureOpen clears p and, when boxed in, one interior neighbor
func ensureOpen(walls [][]bool, p Point) {
	rows, cols := len(walls), len(walls[0])
	walls[p.Y][p.X] = false

	for _, d := range orthoSteps {
		nx, ny := p.X+d.X, p.Y+d.Y
		if nx >= 0 && nx < cols && ny >= 0 && ny < rows && !walls[ny][nx] {
			return
		}
	}
	for _, d := range orthoSteps {
		nx, ny := p.X+d.X, p.Y+d.Y
		if nx > 0 && nx < cols-1 && ny > 0 && ny < rows-1 {
			walls[ny][nx] = false
			return
		}
	}
}

// solve returns the 4-connected BFS path from start to end inclusive
func solve(walls [][]bool, start, end Point) []Point {
	rows, cols := len(walls), len(walls[0])
	if walls[start.Y][start.X] || walls[end.Y][end.X] {
		return nil
	}

	from := make([]int, rows*cols)
	for i := range from {
		from[i] = -1
	}
	idx := func(p Point) int { return p.Y*cols + p.X }
	from[idx(start)] = idx(start)

	queue := []Point{start}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]

		if cur == end {
			var path []Point
			for i := idx(cur); ; i = from[i] {
				path = append(path, Point{i % cols, i / cols})
				if i == idx(start) {
					break
				}
			}
			for l, r := 0, len(path)-1; l < r; l, r = l+1, r-1 {
				path[l], path[r] = path[r], path[l]
			}
			return path
		}

		for _, d := range orthoSteps {
			next := Point{cur.X + d.X, cur.Y + d.Y}
			if next.X < 0 || next.X >= cols || next.Y < 0 || next.Y >= rows {
				continue
			}
			if walls[next.Y][next.X] || from[idx(next)] != -1 {
				continue
			}
			from[idx(next)] = idx(cur)
			queue = append(queue, next)
		}
	}
	return nil
}

func oddDim(n int) int {
	if n < 3 {
		return 3
	}
	if n%2 == 0 {
		return n - 1
	}
	return n
}

func clampPoint(p *Point, def Point, cols, rows int) Point {
	if p == nil {
		return def
	}
	return Point{min(max(p.X, 0), cols-1), min(max(p.Y, 0), rows-1)}
}
