// Package mcts implements the optional joint-move Monte Carlo tree search
// variant described in spec.md §4.7: a single-threaded, cooperative
// alternative to the alpha-beta search in internal/search, operating over
// the same snake.GameState and transition functions.
package mcts

import (
	"fmt"
	"math"
	"math/rand"
	"time"

	"github.com/ndsquared/snakecore/internal/geometry"
	"github.com/ndsquared/snakecore/internal/snake"
)

// Options are the boot-time tunables from spec.md §6.
type Options struct {
	Exploration     float64 // UCB1 constant c; default 1.0
	MaxPlayoutTurns int     // K; default 20
	MaxIterations   int     // safety cap; 0 means unbounded (deadline only)
}

// DefaultOptions returns the spec's documented defaults.
func DefaultOptions() Options {
	return Options{Exploration: 1.0, MaxPlayoutTurns: 20}
}

// Result is what the driver receives back from one search run.
type Result struct {
	Direction  geometry.Direction
	Visits     int
	Iterations int
	Diagnostic string
}

// node is a joint-move node: the move that produced it, and the usual
// visit/score accumulators.
type node struct {
	parent   *node
	move     snake.JointMove // empty for the root
	children []*node
	untried  []snake.JointMove
	visits   int
	total    float64
}

func newNode(parent *node, move snake.JointMove, s *snake.GameState) *node {
	return &node{parent: parent, move: move, untried: enumerateJointMoves(s)}
}

// Search runs iterations of select/expand/simulate/backpropagate until
// timeout elapses (or MaxIterations is hit, if set), then returns the
// root's most-visited child converted to a direction for the controlled
// agent.
func Search(s *snake.GameState, timeout time.Duration, opts Options) Result {
	start := time.Now()
	deadline := start.Add(timeout)
	root := newNode(nil, nil, s)

	iterations := 0
	for time.Now().Before(deadline) {
		if opts.MaxIterations > 0 && iterations >= opts.MaxIterations {
			break
		}
		iterate(s, root, opts)
		iterations++
	}

	best := mostVisitedChild(root)
	you := s.Board.AgentByID(s.YouID)
	if best == nil || you == nil {
		return Result{
			Direction:  geometry.AllDirections[0],
			Iterations: iterations,
			Diagnostic: fmt.Sprintf("mcts: no iterations completed after %s", time.Since(start)),
		}
	}

	dest, ok := youDestination(best.move, s.YouID)
	dir := geometry.AllDirections[0]
	if ok {
		if d, found := geometry.DirectionTo(you.Head(), dest, s.Board.Bounds(), s.Wrapped()); found {
			dir = d
		}
	}

	return Result{
		Direction:  dir,
		Visits:     best.visits,
		Iterations: iterations,
		Diagnostic: fmt.Sprintf("mcts: dir=%s visits=%d iterations=%d elapsed=%s", dir, best.visits, iterations, time.Since(start)),
	}
}

// iterate runs one select -> expand -> simulate -> backpropagate pass.
// All Advance calls it makes (selection, expansion, and simulation) are
// undone before it returns, leaving s exactly as it was found.
func iterate(s *snake.GameState, root *node, opts Options) {
	path := []*node{root}
	advances := 0
	cur := root

	for len(cur.untried) == 0 && len(cur.children) > 0 {
		cur = selectChild(cur, opts.Exploration)
		snake.Advance(s, cur.move)
		advances++
		path = append(path, cur)
	}

	if len(cur.untried) > 0 {
		mv := cur.untried[0]
		cur.untried = cur.untried[1:]
		snake.Advance(s, mv)
		advances++
		child := newNode(cur, mv, s)
		cur.children = append(cur.children, child)
		path = append(path, child)
		cur = child
	}

	simAdvances := 0
	for t := 0; t < opts.MaxPlayoutTurns; t++ {
		if terminal(s) {
			break
		}
		mv := randomJointMove(s)
		if len(mv) == 0 {
			break
		}
		snake.Advance(s, mv)
		simAdvances++
	}
	score := terminalScore(s)
	for i := 0; i < simAdvances; i++ {
		snake.Undo(s)
	}

	for _, n := range path {
		n.visits++
		n.total += score
	}
	for i := 0; i < advances; i++ {
		snake.Undo(s)
	}
}

// selectChild picks the child maximizing the canonical UCB1 formula
// c*sqrt(ln(N)/n) + W/n, where N is the parent's visit count and n the
// child's own (spec.md §9 open question: canonical over the non-canonical
// child-visits-only variant). Unvisited children are returned immediately.
func selectChild(parent *node, c float64) *node {
	for _, ch := range parent.children {
		if ch.visits == 0 {
			return ch
		}
	}
	best := parent.children[0]
	bestVal := ucb1(parent, best, c)
	for _, ch := range parent.children[1:] {
		v := ucb1(parent, ch, c)
		if v > bestVal {
			bestVal = v
			best = ch
		}
	}
	return best
}

func ucb1(parent, ch *node, c float64) float64 {
	exploitation := ch.total / float64(ch.visits)
	exploration := c * math.Sqrt(math.Log(float64(parent.visits))/float64(ch.visits))
	return exploitation + exploration
}

// mostVisitedChild is the robust root selection: pick the child played
// out the most, rather than the one with the best average score.
func mostVisitedChild(root *node) *node {
	var best *node
	for _, ch := range root.children {
		if best == nil || ch.visits > best.visits {
			best = ch
		}
	}
	return best
}

// terminal reports whether s has reached a decided outcome: everyone
// dead, or (outside solo mode) a single survivor left.
func terminal(s *snake.GameState) bool {
	if len(s.Board.Agents) == 0 {
		return true
	}
	return s.Game.Mode != snake.Solo && len(s.Board.Agents) == 1
}

// terminalScore is the backpropagated reward from the controlled agent's
// perspective: +1 sole survivor, -1 controlled agent eliminated, 0 if
// every agent died together, ~0 otherwise (simulation budget exhausted
// without a decided outcome).
func terminalScore(s *snake.GameState) float64 {
	you := s.Board.AgentByID(s.YouID)
	if you == nil {
		if len(s.Board.Agents) == 0 {
			return 0
		}
		return -1
	}
	if s.Game.Mode != snake.Solo && len(s.Board.Agents) == 1 {
		return 1
	}
	return 0
}

func youDestination(move snake.JointMove, youID string) (geometry.Coordinate, bool) {
	for _, m := range move {
		if m.AgentID == youID {
			return m.NewHead, true
		}
	}
	return geometry.Coordinate{}, false
}

// enumerateJointMoves is the Cartesian product of every live agent's
// viable moves (falling back to the agent's current head when none are
// viable), sized at most 4^n for n live
// agents (spec.md §4.6, "joint-move enumeration").
func enumerateJointMoves(s *snake.GameState) []snake.JointMove {
	agents := s.Board.Agents
	if len(agents) == 0 {
		return nil
	}
	perAgent := make([][]snake.AgentMove, len(agents))
	for i, a := range agents {
		perAgent[i] = candidateMoves(s, a)
	}

	var combos []snake.JointMove
	var build func(idx int, acc snake.JointMove)
	build = func(idx int, acc snake.JointMove) {
		if idx == len(perAgent) {
			combo := make(snake.JointMove, len(acc))
			copy(combo, acc)
			combos = append(combos, combo)
			return
		}
		for _, m := range perAgent[idx] {
			build(idx+1, append(acc, m))
		}
	}
	build(0, snake.JointMove{})
	return combos
}

func candidateMoves(s *snake.GameState, a *snake.Agent) []snake.AgentMove {
	bounds := s.Board.Bounds()
	wrap := s.Wrapped()
	head := a.Head()
	var moves []snake.AgentMove
	for _, d := range geometry.AllDirections {
		next := geometry.Adjacent(head, d, bounds, wrap)
		if !wrap && !bounds.InBounds(next) {
			continue
		}
		if s.Board.Obstacles[next] {
			continue
		}
		moves = append(moves, snake.AgentMove{AgentID: a.ID, NewHead: next})
	}
	if len(moves) == 0 {
		moves = append(moves, snake.AgentMove{AgentID: a.ID, NewHead: head})
	}
	return moves
}

// randomJointMove picks one random candidate move per live agent, used by
// the simulation phase's random playouts.
func randomJointMove(s *snake.GameState) snake.JointMove {
	agents := s.Board.Agents
	if len(agents) == 0 {
		return nil
	}
	move := make(snake.JointMove, 0, len(agents))
	for _, a := range agents {
		candidates := candidateMoves(s, a)
		move = append(move, candidates[rand.Intn(len(candidates))])
	}
	return move
}
