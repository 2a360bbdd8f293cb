package spatial

import (
	"container/list"

	"github.com/ndsquared/snakecore/internal/geometry"
	"github.com/ndsquared/snakecore/internal/snake"
)

// Territory runs the competitive multi-source BFS from every live agent's
// head simultaneously. ControlledSquares[i] is the set of cells agent i's
// BFS reaches strictly before any other agent's; cells tied in distance
// between two or more agents are awarded to none (contested). The
// returned sets are pairwise disjoint by construction.
func Territory(b *snake.Board, wrap bool) (controlled []map[geometry.Coordinate]bool) {
	bounds := b.Bounds()
	n := len(b.Agents)
	controlled = make([]map[geometry.Coordinate]bool, n)
	for i := range controlled {
		controlled[i] = make(map[geometry.Coordinate]bool)
	}
	if n == 0 {
		return controlled
	}

	type cell struct {
		owner    int // -1 = contested
		distance int
	}
	dist := make(map[geometry.Coordinate]cell)
	queue := list.New()

	type node struct {
		c      geometry.Coordinate
		owner  int
		depth  int
	}
	for i, a := range b.Agents {
		head := a.Head()
		if existing, ok := dist[head]; ok {
			if existing.distance == 0 {
				dist[head] = cell{owner: -1, distance: 0}
			}
			continue
		}
		dist[head] = cell{owner: i, distance: 0}
		queue.PushBack(node{c: head, owner: i, depth: 0})
	}

	for queue.Len() > 0 {
		front := queue.Front()
		queue.Remove(front)
		cur := front.Value.(node)
		curCell := dist[cur.c]
		if curCell.owner == -1 || curCell.owner != cur.owner {
			// this entry lost a tie after being queued; skip it
			continue
		}
		for _, d := range geometry.AllDirections {
			next := geometry.Adjacent(cur.c, d, bounds, wrap)
			if !wrap && !bounds.InBounds(next) {
				continue
			}
			if b.Obstacles[next] {
				continue
			}
			nd := cur.depth + 1
			if existing, seen := dist[next]; seen {
				if existing.distance == nd && existing.owner != cur.owner && existing.owner != -1 {
					dist[next] = cell{owner: -1, distance: nd}
				}
				continue
			}
			dist[next] = cell{owner: cur.owner, distance: nd}
			queue.PushBack(node{c: next, owner: cur.owner, depth: nd})
		}
	}

	for c, cl := range dist {
		if cl.owner >= 0 {
			controlled[cl.owner][c] = true
		}
	}
	return controlled
}

// AvailableSquares floods out from `from` treating only Obstacles (and
// board bounds, under the active wrap rule) as blocking, ignoring any
// competition from other agents' heads.
func AvailableSquares(b *snake.Board, wrap bool, from geometry.Coordinate) map[geometry.Coordinate]bool {
	bounds := b.Bounds()
	visited := map[geometry.Coordinate]bool{from: true}
	queue := []geometry.Coordinate{from}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, d := range geometry.AllDirections {
			next := geometry.Adjacent(cur, d, bounds, wrap)
			if !wrap && !bounds.InBounds(next) {
				continue
			}
			if b.Obstacles[next] || visited[next] {
				continue
			}
			visited[next] = true
			queue = append(queue, next)
		}
	}
	return visited
}
