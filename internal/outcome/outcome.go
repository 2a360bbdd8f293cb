// Package outcome classifies a finished game for logging/diagnostics,
// adapted from the teacher's describeGameOutcome. It works off the final
// wire snapshot (which still lists eliminated agents with their last
// known position and health) rather than the internal snake.GameState,
// which drops eliminated agents entirely after Advance.
package outcome

import (
	"fmt"

	"github.com/ndsquared/snakecore/internal/geometry"
)

// Outcome is the result of a finished game from the controlled agent's
// perspective.
type Outcome int

const (
	Win Outcome = iota
	Draw
	Loss
)

func (o Outcome) String() string {
	switch o {
	case Win:
		return "win"
	case Draw:
		return "draw"
	default:
		return "loss"
	}
}

// AgentSnapshot is one agent's last known state in the final frame the
// driver received from its source, whether or not that agent survived.
type AgentSnapshot struct {
	ID     string
	Head   geometry.Coordinate
	Body   []geometry.Coordinate
	Health int
	// OnHazard reports whether the agent's head occupied a hazard cell in
	// this frame, so a health-depleted death can be attributed to hazard
	// damage rather than ordinary starvation.
	OnHazard bool
}

// Describe classifies the final frame and returns both the enum and a
// human-readable reason, checking in order: wall, collision,
// self-collision, hazard, starvation, win. It returns Win or Loss only;
// Draw is never returned.
func Describe(bounds geometry.Bounds, you AgentSnapshot, others []AgentSnapshot) (Outcome, string) {
	if !bounds.InBounds(you.Head) {
		return Loss, "crashed into a wall"
	}

	for _, other := range others {
		for _, segment := range other.Body {
			if you.Head == segment {
				return Loss, fmt.Sprintf("collided with %s", other.ID)
			}
		}
	}
	for _, segment := range selfBodyMinusHead(you.Body) {
		if you.Head == segment {
			return Loss, "ran into itself"
		}
	}

	if you.Health <= 0 {
		if you.OnHazard {
			return Loss, "died in a hazard"
		}
		return Loss, "starved to death"
	}

	// You survived every loss check above, so you are alive here; the
	// draw case (mirroring the teacher's equivalent check) only applies
	// when every opponent is also still alive but none of the checks
	// above fired, which cannot happen once those checks have passed.
	for _, other := range others {
		if other.Health <= 0 {
			return Win, fmt.Sprintf("%s starved", other.ID)
		}
	}
	return Win, "won"
}

func selfBodyMinusHead(body []geometry.Coordinate) []geometry.Coordinate {
	if len(body) <= 1 {
		return nil
	}
	return body[1:]
}
