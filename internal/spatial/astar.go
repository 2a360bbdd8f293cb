// Package spatial implements the shortest-path and flood-fill analyses
// the evaluator and search rely on: A* distance, closest-food distance,
// and the two-pass territory/reachability flood fill.
package spatial

import (
	"container/heap"

	"github.com/ndsquared/snakecore/internal/geometry"
	"github.com/ndsquared/snakecore/internal/snake"
)

// ShortestDistance returns the length of the shortest 4-connected path from
// from to to, or ok=false if no path exists. Obstacles (snake.Board's
// derived Obstacles index) and out-of-bounds cells are impassable; ties in
// the open set are broken by discovery order via a stable min-heap.
func ShortestDistance(b *snake.Board, wrap bool, from, to geometry.Coordinate) (dist int, ok bool) {
	if from == to {
		return 0, true
	}
	bounds := b.Bounds()
	open := &pqueue{}
	heap.Init(open)
	heap.Push(open, pqItem{c: from, g: 0, f: geometry.ManhattanDistance(from, to)})

	best := map[geometry.Coordinate]int{from: 0}
	seq := 0

	for open.Len() > 0 {
		cur := heap.Pop(open).(pqItem)
		if cur.c == to {
			return cur.g, true
		}
		if g, seen := best[cur.c]; seen && cur.g > g {
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
			ng := cur.g + 1
			if g, seen := best[next]; seen && g <= ng {
				continue
			}
			best[next] = ng
			seq++
			heap.Push(open, pqItem{c: next, g: ng, f: ng + geometry.ManhattanDistance(next, to), order: seq})
		}
	}
	return 0, false
}

// ClosestFoodDistance returns the minimum shortest distance from `from` to
// any coordinate in food, or ok=false if food is empty or none is reachable.
func ClosestFoodDistance(b *snake.Board, wrap bool, from geometry.Coordinate, food []geometry.Coordinate) (dist int, ok bool) {
	best := -1
	for _, f := range food {
		d, reachable := ShortestDistance(b, wrap, from, f)
		if !reachable {
			continue
		}
		if best == -1 || d < best {
			best = d
		}
	}
	if best == -1 {
		return 0, false
	}
	return best, true
}

type pqItem struct {
	c     geometry.Coordinate
	g     int
	f     int
	order int
}

type pqueue []pqItem

func (q pqueue) Len() int { return len(q) }
func (q pqueue) Less(i, j int) bool {
	if q[i].f != q[j].f {
		return q[i].f < q[j].f
	}
	return q[i].order < q[j].order
}
func (q pqueue) Swap(i, j int)      { q[i], q[j] = q[j], q[i] }
func (q *pqueue) Push(x interface{}) { *q = append(*q, x.(pqItem)) }
func (q *pqueue) Pop() interface{} {
	old := *q
	n := len(old)
	item := old[n-1]
	*q = old[:n-1]
	return item
}
