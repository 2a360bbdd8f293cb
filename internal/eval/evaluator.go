// Package eval converts a leaf GameState into a scalar score the search
// can order moves by, per spec.md §4.5.
package eval

import (
	"math"

	"github.com/ndsquared/snakecore/internal/geometry"
	"github.com/ndsquared/snakecore/internal/snake"
	"github.com/ndsquared/snakecore/internal/spatial"
)

// Saturation overrides a Score's numeric sum when the position is a known
// win or loss, so pruning still gets a hard ordering while the feature
// breakdown stays available for diagnostics.
type Saturation int

const (
	NotSaturated Saturation = iota
	SaturatedMin
	SaturatedMax
)

// Features is the per-feature breakdown contributing to a Score's sum,
// kept around for diagnostics even when the score is saturated.
type Features struct {
	CenterDist   int64
	SnakeAvoids  int64
	SnakeStomps  int64
	BoardControl int64
	TailDist     int64
	FoodDist     int64
	Length       int64
	Survival     int64
}

func (f Features) sum() int64 {
	return f.CenterDist + f.SnakeAvoids + f.SnakeStomps + f.BoardControl +
		f.TailDist + f.FoodDist + f.Length + f.Survival
}

// Score is the evaluator's output: a saturation flag plus the feature
// breakdown that produced (or would have produced) its sum.
type Score struct {
	Saturation Saturation
	Features   Features
}

// Rank converts a Score to an orderable int64 for alpha-beta comparisons:
// math.MinInt64/MaxInt64 for saturated scores, the feature sum otherwise.
func (s Score) Rank() int64 {
	switch s.Saturation {
	case SaturatedMin:
		return math.MinInt64
	case SaturatedMax:
		return math.MaxInt64
	default:
		return s.Features.sum()
	}
}

// ManhattanOnlyThreshold is the default live-agent count above which the
// cheaper, flood-fill-free evaluator variant is used (spec.md §4.5, §6).
const ManhattanOnlyThreshold = 4

// Evaluate scores s from the perspective of the controlled agent. depth is
// the search depth already reached below this leaf (used by the survival
// feature); it is the caller's iterative-deepening ply count, not a
// property of the state itself.
func Evaluate(s *snake.GameState, depth int) Score {
	you := s.You()
	if you == nil {
		return Score{Saturation: SaturatedMin}
	}
	if s.Game.Mode != snake.Solo && len(s.Board.Agents) == 1 {
		return Score{Saturation: SaturatedMax}
	}

	cheap := len(s.Board.Agents) > ManhattanOnlyThreshold
	if cheap {
		return evaluateManhattan(s, you, depth)
	}
	return evaluateFull(s, you, depth)
}

func boardCenter(b *snake.Board) geometry.Coordinate {
	return geometry.Coordinate{X: b.Width / 2, Y: b.Height / 2}
}

func evaluateFull(s *snake.GameState, you *snake.Agent, depth int) Score {
	b := &s.Board
	wrap := s.Wrapped()
	head := you.Head()
	var f Features

	f.CenterDist = -100 * int64(geometry.ManhattanDistance(head, boardCenter(b)))

	if b.Avoids[head] {
		f.SnakeAvoids = -5000
	}
	if b.Stomps[head] {
		f.SnakeStomps = 5000
	}

	controlled := spatial.Territory(b, wrap)
	available := spatial.AvailableSquares(b, wrap, head)
	youControlled := 0
	if idx, ok := b.SnakeIndex[you.ID]; ok && idx < len(controlled) {
		youControlled = len(controlled[idx])
	}
	if len(available) <= you.Length() {
		f.BoardControl = -10000
	} else {
		f.BoardControl = 10 * int64(youControlled)
	}

	tail := you.Body[len(you.Body)-1]
	if tail != head {
		if d, ok := spatial.ShortestDistance(b, wrap, head, tail); ok {
			f.TailDist = -100 * int64(d)
		} else {
			f.TailDist = -1000
		}
	}

	f.FoodDist = foodDistFeature(func() (int, bool) {
		return spatial.ClosestFoodDistance(b, wrap, head, b.Food)
	}, you.Health)

	f.Length = 10000 * int64(you.Length())
	f.Survival = 10000*int64(depth) + 100*int64(you.Health)

	return Score{Saturation: NotSaturated, Features: f}
}

// evaluateManhattan is the cheaper variant used once more than
// ManhattanOnlyThreshold agents are alive: it drops the flood-fill
// territory/reachability passes and approximates tail/food distance with
// raw Manhattan distance.
func evaluateManhattan(s *snake.GameState, you *snake.Agent, depth int) Score {
	b := &s.Board
	head := you.Head()
	var f Features

	f.CenterDist = -100 * int64(geometry.ManhattanDistance(head, boardCenter(b)))
	if b.Avoids[head] {
		f.SnakeAvoids = -5000
	}
	if b.Stomps[head] {
		f.SnakeStomps = 5000
	}
	// No flood fill in the cheap variant: board_control is left at 0.

	tail := you.Body[len(you.Body)-1]
	if tail != head {
		f.TailDist = -100 * int64(geometry.ManhattanDistance(head, tail))
	}

	f.FoodDist = foodDistFeature(func() (int, bool) {
		best := -1
		for _, food := range b.Food {
			d := geometry.ManhattanDistance(head, food)
			if best == -1 || d < best {
				best = d
			}
		}
		if best == -1 {
			return 0, false
		}
		return best, true
	}, you.Health)

	f.Length = 10000 * int64(you.Length())
	f.Survival = 10000*int64(depth) + 100*int64(you.Health)

	return Score{Saturation: NotSaturated, Features: f}
}

// foodDistFeature implements the recommended (open-question-resolved)
// food_dist variant: an inverse-proportional reward clamped to [0,9999]
// rather than a linear distance*health penalty. When no food is reachable
// and health is critically low, the position is penalized instead.
func foodDistFeature(closest func() (int, bool), health int) int64 {
	d, ok := closest()
	if !ok {
		if health < 20 {
			return -5000
		}
		return 0
	}
	if d <= 0 {
		return 9999
	}
	reward := 9999 / int64(d)
	if reward > 9999 {
		reward = 9999
	}
	if reward < 0 {
		reward = 0
	}
	return reward
}
