package maze

import (
	"sort"

	"github.com/zyedidia/generic/mapset"
)

// RandomSource supplies uniform integers in [0, n). *math/rand.Rand and rng.FastRand satisfy it.
type RandomSource interface {
	Intn(n int) int
}

// Carving is the outcome of one randomized Prim pass
type Carving struct {
	// OpenWalls holds wall indices in the order they were opened
	OpenWalls []int
	// Start is the room index the carve grew from, -1 when there were no rooms
	Start int
	// Visited holds room indices in the order they joined the maze, Start first
	Visited []int
}

// adjacency is the bipartite room/wall relation under 4-connectivity
type adjacency struct {
	wallRooms [][]int // ascending room indices per wall
	roomWalls [][]int // ascending wall indices per room
}

func buildAdjacency(walls []Wall, rooms []Coordinate) adjacency {
	roomAt := make(map[Coordinate]int, len(rooms))
	for i, r := range rooms {
		roomAt[r] = i
	}

	adj := adjacency{
		wallRooms: make([][]int, len(walls)),
		roomWalls: make([][]int, len(rooms)),
	}

	seen := make(map[int]struct{}, 8)
	for w, wall := range walls {
		clear(seen)
		for _, cell := range wall.Cells {
			for _, d := range orthogonal {
				r, ok := roomAt[Coordinate{cell.Row + d.Row, cell.Col + d.Col}]
				if !ok {
					continue
				}
				if _, dup := seen[r]; dup {
					continue
				}
				seen[r] = struct{}{}
				adj.wallRooms[w] = append(adj.wallRooms[w], r)
			}
		}
		sort.Ints(adj.wallRooms[w])

		// Walls are visited in ascending order, so each room's list stays sorted
		for _, r := range adj.wallRooms[w] {
			adj.roomWalls[r] = append(adj.roomWalls[r], w)
		}
	}
	return adj
}

// Carve runs randomized Prim over the rooms and returns the wall indices to open
func Carve(walls []Wall, rooms []Coordinate, src RandomSource) []int {
	return CarvePaths(walls, rooms, src).OpenWalls
}

// CarvePaths runs randomized Prim and reports the full carving.
//
// The frontier is a multiset: a wall queued from two rooms appears twice and is
// twice as likely to be drawn. A drawn wall opens only when exactly two rooms touch it
// and exactly one of them is unvisited; either way every copy of it leaves the frontier.
func CarvePaths(walls []Wall, rooms []Coordinate, src RandomSource) Carving {
	result := Carving{Start: -1}
	if len(rooms) == 0 {
		return result
	}

	adj := buildAdjacency(walls, rooms)
	visited := mapset.New[int]()

	start := src.Intn(len(rooms))
	result.Start = start
	result.Visited = append(result.Visited, start)
	visited.Put(start)

	frontier := make([]int, 0, len(adj.roomWalls[start])*4)
	frontier = append(frontier, adj.roomWalls[start]...)

	for len(frontier) > 0 {
		wallIdx := frontier[src.Intn(len(frontier))]

		if adjRooms := adj.wallRooms[wallIdx]; len(adjRooms) == 2 {
			next, unvisited := -1, 0
			for _, r := range adjRooms {
				if !visited.Has(r) {
					next = r
					unvisited++
				}
			}
			if unvisited == 1 {
				result.OpenWalls = append(result.OpenWalls, wallIdx)
				result.Visited = append(result.Visited, next)
				visited.Put(next)
				frontier = append(frontier, adj.roomWalls[next]...)
			}
		}

		frontier = removeAll(frontier, wallIdx)
	}

	return result
}

// removeAll filters every occurrence of v in place, preserving order
func removeAll(s []int, v int) []int {
	out := s[:0]
	for _, x := range s {
		if x != v {
			out = append(out, x)
		}
	}
	return out
}
