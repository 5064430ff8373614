package nav

import (
	"container/heap"
	"math"
)

// Coord is an integer cell index into the occupancy grid.
type Coord struct {
	X, Z int
}

// pathNode represents a node in the A* search graph.
type pathNode struct {
	x, z  int
	gCost float64 // actual cost from start
	fCost float64 // gCost + heuristic
	index int     // heap index
}

// searchPath runs A* between two grid cells under 8-directional movement.
// Orthogonal moves cost 1.0, diagonal moves cost sqrt(2). Diagonal moves
// are not corner-checked: a diagonal step past two blocked orthogonal
// neighbors is allowed (see the corner-cutting test for the rationale).
//
// Returns the cell sequence from start to goal inclusive, or nil when
// start/goal is out of bounds or blocked, the goal is unreachable, or the
// width*height iteration cap is hit.
func (g *Grid) searchPath(start, goal Coord) []Coord {
	if !g.IsWalkable(start.X, start.Z) || !g.IsWalkable(goal.X, goal.Z) {
		return nil
	}

	// Per-search state, sized to the grid and discarded afterwards.
	gScore := make([]float64, g.width*g.height)
	parent := make([]int32, g.width*g.height)
	closed := make([]bool, g.width*g.height)
	for i := range gScore {
		gScore[i] = infCost
		parent[i] = -1
	}

	startIdx := start.Z*g.width + start.X
	gScore[startIdx] = 0

	openList := &nodeHeap{}
	heap.Init(openList)
	heap.Push(openList, &pathNode{
		x:     start.X,
		z:     start.Z,
		fCost: heuristic(start.X, start.Z, goal.X, goal.Z),
	})

	// Safety bound against pathological inputs; must never bind on a
	// finite grid with these costs, but is a hard stop regardless.
	// Counts expansions, not pops: stale duplicates on the heap must not
	// eat into the cap.
	maxIterations := g.width * g.height

	iterations := 0
	for openList.Len() > 0 && iterations < maxIterations {
		current := heap.Pop(openList).(*pathNode)

		if current.x == goal.X && current.z == goal.Z {
			return g.reconstructPath(parent, goal)
		}

		idx := current.z*g.width + current.x
		if closed[idx] {
			continue
		}
		closed[idx] = true
		iterations++

		g.expandNeighbors(current, goal, gScore, parent, closed, openList)
	}

	return nil
}

// expandNeighbors pushes improved paths to the 8 adjacent cells onto the
// open list.
func (g *Grid) expandNeighbors(
	current *pathNode,
	goal Coord,
	gScore []float64,
	parent []int32,
	closed []bool,
	openList *nodeHeap,
) {
	currentIdx := current.z*g.width + current.x

	for dx := -1; dx <= 1; dx++ {
		for dz := -1; dz <= 1; dz++ {
			if dx == 0 && dz == 0 {
				continue
			}

			nx := current.x + dx
			nz := current.z + dz
			if !g.IsWalkable(nx, nz) {
				continue
			}

			nIdx := nz*g.width + nx
			if closed[nIdx] {
				continue
			}

			moveCost := CostOrthogonal
			if dx != 0 && dz != 0 {
				moveCost = CostDiagonal
			}

			tentativeG := current.gCost + moveCost
			if tentativeG >= gScore[nIdx] {
				continue
			}

			gScore[nIdx] = tentativeG
			parent[nIdx] = int32(currentIdx)
			heap.Push(openList, &pathNode{
				x:     nx,
				z:     nz,
				gCost: tentativeG,
				fCost: tentativeG + heuristic(nx, nz, goal.X, goal.Z),
			})
		}
	}
}

// reconstructPath walks parent links from goal back to start, then
// reverses so the path runs start -> goal.
func (g *Grid) reconstructPath(parent []int32, goal Coord) []Coord {
	path := make([]Coord, 0, 32)

	idx := int32(goal.Z*g.width + goal.X)
	for idx >= 0 {
		path = append(path, Coord{X: int(idx) % g.width, Z: int(idx) / g.width})
		idx = parent[idx]
	}

	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}

// heuristic is the Euclidean distance to the goal cell. Consistent with
// the 1.0/sqrt(2) edge costs (a Manhattan estimate overshoots diagonal
// moves and can surrender shortest-path guarantees), so A* stays optimal.
func heuristic(x, z, tx, tz int) float64 {
	dx := float64(x - tx)
	dz := float64(z - tz)
	return math.Sqrt(dx*dx + dz*dz)
}

const infCost = 1e18

// nodeHeap implements container/heap for the A* open list (min-heap by fCost).
type nodeHeap []*pathNode

func (h nodeHeap) Len() int           { return len(h) }
func (h nodeHeap) Less(i, j int) bool { return h[i].fCost < h[j].fCost }
func (h nodeHeap) Swap(i, j int)      { h[i], h[j] = h[j], h[i]; h[i].index = i; h[j].index = j }
func (h *nodeHeap) Push(x any)        { n := x.(*pathNode); n.index = len(*h); *h = append(*h, n) }
func (h *nodeHeap) Pop() any {
	old := *h
	n := len(old)
	node := old[n-1]
	old[n-1] = nil // GC
	node.index = -1
	*h = old[:n-1]
	return node
}
