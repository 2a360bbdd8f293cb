// Package search implements the time-bounded, iterative-deepening
// alpha-beta search over agent-major plies described in spec.md §4.6.
package search

import (
	"fmt"
	"math"
	"time"

	"github.com/ndsquared/snakecore/internal/eval"
	"github.com/ndsquared/snakecore/internal/geometry"
	"github.com/ndsquared/snakecore/internal/snake"
)

// Options are the boot-time tunables from spec.md §6.
type Options struct {
	SafetyMargin time.Duration
	MaxDepth     int
}

// DefaultOptions returns the spec's documented defaults: a 75ms safety
// margin and a depth cap of 50.
func DefaultOptions() Options {
	return Options{SafetyMargin: 75 * time.Millisecond, MaxDepth: 50}
}

// Result is what the driver receives back from one make_move call.
type Result struct {
	Direction    geometry.Direction
	Score        int64
	DeepestDepth int
	Elapsed      time.Duration
	Diagnostic   string
}

const (
	minRank = int64(math.MinInt64)
	maxRank = int64(math.MaxInt64)
)

// worker holds the state of one iterative-deepening run. It is not
// safe for concurrent use; spec.md §5 is strictly single-threaded.
type worker struct {
	s           *snake.GameState
	order       []string // fixed agent ordering, controlled agent first
	n           int
	deadline    time.Time
	rootDepth   int
	deadlineHit bool
}

// Search runs iterative deepening up to opts.MaxDepth or until timeout
// minus the safety margin elapses, and returns the best direction found.
func Search(s *snake.GameState, timeout time.Duration, opts Options) Result {
	start := time.Now()
	deadline := start.Add(timeout - opts.SafetyMargin)

	order := buildOrder(s)
	w := &worker{s: s, order: order, n: len(order), deadline: deadline}

	var bestDir geometry.Direction
	var bestRank int64
	deepest := 0
	advancedEver := false

	for depth := 1; depth <= opts.MaxDepth; depth++ {
		if !time.Now().Before(deadline) {
			break
		}
		w.rootDepth = depth
		w.deadlineHit = false
		dir, rank, advanced := w.rootSearch(depth, minRank, maxRank)
		if advanced {
			bestDir, bestRank, deepest, advancedEver = dir, rank, depth, true
		}
		if w.deadlineHit {
			break
		}
	}

	hint := ""
	if !advancedEver {
		bestDir = fallbackDirection(s, order[0])
		hint = "; no advances completed"
	}

	return Result{
		Direction:    bestDir,
		Score:        bestRank,
		DeepestDepth: deepest,
		Elapsed:      time.Since(start),
		Diagnostic:   fmt.Sprintf("dir=%s score=%d depth=%d elapsed=%s%s", bestDir, bestRank, deepest, time.Since(start), hint),
	}
}

// buildOrder fixes the agent-major ordering for the whole search: the
// controlled agent first, then the remaining live agents in their
// appearance order on the board. This ordering does not change even as
// agents are eliminated mid-search (spec.md §9, joint-move batching).
func buildOrder(s *snake.GameState) []string {
	order := make([]string, 0, len(s.Board.Agents))
	order = append(order, s.YouID)
	for _, a := range s.Board.Agents {
		if a.ID != s.YouID {
			order = append(order, a.ID)
		}
	}
	return order
}

// fallbackDirection is the deterministic choice used when no iteration
// completed a single advance: the first viable direction, or the first
// enumerated direction if none are viable (spec.md §4.8).
func fallbackDirection(s *snake.GameState, youID string) geometry.Direction {
	you := s.Board.AgentByID(youID)
	if you == nil {
		return geometry.AllDirections[0]
	}
	bounds := s.Board.Bounds()
	wrap := s.Wrapped()
	for _, d := range geometry.AllDirections {
		next := geometry.Adjacent(you.Head(), d, bounds, wrap)
		if !wrap && !bounds.InBounds(next) {
			continue
		}
		if s.Board.Obstacles[next] {
			continue
		}
		return d
	}
	return geometry.AllDirections[0]
}

// rootSearch is the controlled agent's ply at the root of one
// iterative-deepening iteration. It tracks the argmax direction
// separately from the generic recursion because only the root needs to
// report a direction, not just a score (spec.md §4.6 clause 6).
func (w *worker) rootSearch(depth int, alpha, beta int64) (bestDir geometry.Direction, bestRank int64, advancedAny bool) {
	you := w.s.Board.AgentByID(w.order[0])
	bounds := w.s.Board.Bounds()
	wrap := w.s.Wrapped()
	head := you.Head()

	dirs := viableDirections(w.s, head, bounds, wrap)
	if len(dirs) == 0 {
		dirs = geometry.AllDirections[:]
	}

	bestRank = minRank
	for _, d := range dirs {
		if !time.Now().Before(w.deadline) {
			w.deadlineHit = true
			break
		}
		next := geometry.Adjacent(head, d, bounds, wrap)
		pending := snake.JointMove{{AgentID: you.ID, NewHead: next}}
		score, advanced := w.continuePly(0, depth, pending, alpha, beta)
		if advanced && (!advancedAny || score > bestRank) {
			advancedAny = true
			bestRank = score
			bestDir = d
		}
		if score > alpha {
			alpha = score
		}
		if alpha >= beta {
			break
		}
	}
	if !advancedAny {
		bestDir = dirs[0]
	}
	return bestDir, bestRank, advancedAny
}

// search evaluates one ply for the agent at turnIdx%n, at agent-ply
// depth `depth` (iterative-deepening counts one unit per agent ply, not
// per round; see spec.md §4.6 clause 4). pending is the joint move
// accumulated so far this round.
func (w *worker) search(turnIdx, depth int, pending snake.JointMove, alpha, beta int64) (int64, bool) {
	if !time.Now().Before(w.deadline) {
		w.deadlineHit = true
		return minRank, false
	}
	if depth <= 0 {
		return eval.Evaluate(w.s, w.rootDepth-depth).Rank(), false
	}

	agentID := w.order[turnIdx%w.n]
	a := w.s.Board.AgentByID(agentID)

	if a == nil {
		// Eliminated mid-search: push a single placeholder move so ply
		// parity is preserved; Advance ignores moves for dead agents.
		np := clonePending(pending)
		np = append(np, snake.AgentMove{AgentID: agentID})
		return w.continuePly(turnIdx, depth, np, alpha, beta)
	}

	maximizing := turnIdx%w.n == 0
	bounds := w.s.Board.Bounds()
	wrap := w.s.Wrapped()
	head := a.Head()

	dests := viableCoordinates(w.s, head, bounds, wrap)
	if len(dests) == 0 {
		// Cornered: must still submit a move. Moving into the current
		// head is a doomed placeholder that Advance will resolve as a
		// self-collision.
		dests = []geometry.Coordinate{head}
	}

	best := minRank
	if !maximizing {
		best = maxRank
	}
	anyAdvanced := false
	for _, next := range dests {
		np := clonePending(pending)
		np = append(np, snake.AgentMove{AgentID: agentID, NewHead: next})
		score, advanced := w.continuePly(turnIdx, depth, np, alpha, beta)
		if advanced {
			anyAdvanced = true
		}
		if maximizing {
			if score > best {
				best = score
			}
			if best > alpha {
				alpha = best
			}
		} else {
			if score < best {
				best = score
			}
			if best < beta {
				beta = best
			}
		}
		if alpha >= beta {
			break
		}
	}
	return best, anyAdvanced
}

// continuePly closes out a round (advance/recurse/undo) once pending
// holds one move per agent in the fixed ordering, or otherwise hands off
// to the next agent in the same round.
func (w *worker) continuePly(turnIdx, depth int, pending snake.JointMove, alpha, beta int64) (int64, bool) {
	if len(pending) == w.n {
		snake.Advance(w.s, pending)
		score, _ := w.search(turnIdx+1, depth-1, nil, alpha, beta)
		snake.Undo(w.s)
		return score, true
	}
	return w.search(turnIdx+1, depth-1, pending, alpha, beta)
}

func viableDirections(s *snake.GameState, head geometry.Coordinate, bounds geometry.Bounds, wrap bool) []geometry.Direction {
	var dirs []geometry.Direction
	for _, d := range geometry.AllDirections {
		next := geometry.Adjacent(head, d, bounds, wrap)
		if !wrap && !bounds.InBounds(next) {
			continue
		}
		if s.Board.Obstacles[next] {
			continue
		}
		dirs = append(dirs, d)
	}
	return dirs
}

func viableCoordinates(s *snake.GameState, head geometry.Coordinate, bounds geometry.Bounds, wrap bool) []geometry.Coordinate {
	var dests []geometry.Coordinate
	for _, d := range geometry.AllDirections {
		next := geometry.Adjacent(head, d, bounds, wrap)
		if !wrap && !bounds.InBounds(next) {
			continue
		}
		if s.Board.Obstacles[next] {
			continue
		}
		dests = append(dests, next)
	}
	return dests
}

func clonePending(p snake.JointMove) snake.JointMove {
	cp := make(snake.JointMove, len(p))
	copy(cp, p)
	return cp
}
