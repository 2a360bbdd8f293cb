package snake

import "github.com/ndsquared/snakecore/internal/geometry"

// movedAgentFrame is the per-agent diff needed to reverse one Advance.
type movedAgentFrame struct {
	AgentID    string
	PoppedTail geometry.Coordinate
	PreHealth  int
	TailCopies int // duplicate tail cells appended this turn (constrictor growth + food growth)
}

// turnFrame is one journal entry: everything needed to reverse a single
// Advance call. Frames form a LIFO stack; Undo must be called in strict
// reverse order of Advance.
type turnFrame struct {
	moved          []movedAgentFrame
	eatenFood      []geometry.Coordinate
	eliminated     []*Agent // full pre-advance snapshots of agents removed this turn
	precedingOrder []string // live agent IDs, in order, immediately before this Advance
}

func liveAgent(agents []*Agent, id string) *Agent {
	for _, a := range agents {
		if a.ID == id {
			return a
		}
	}
	return nil
}

// Advance applies a joint move to the state in place, following the
// phases in spec.md §4.2: apply moves, feed, hazard tick, remove eaten
// food, eliminate, then recompute derived indexes. It pushes one frame
// onto the undo journal; the matching Undo call reverses it exactly.
//
// Agents referenced in moves that are not currently live are ignored.
// Live agents absent from moves are left unmoved.
func Advance(s *GameState, moves JointMove) {
	b := &s.Board
	frame := turnFrame{precedingOrder: make([]string, len(b.Agents))}
	for i, a := range b.Agents {
		frame.precedingOrder[i] = a.ID
	}

	preTurnSnapshots := make(map[string]*Agent, len(b.Agents))
	for _, a := range b.Agents {
		preTurnSnapshots[a.ID] = a.Clone()
	}

	moveByAgent := make(map[string]geometry.Coordinate, len(moves))
	for _, m := range moves {
		if liveAgent(b.Agents, m.AgentID) != nil {
			moveByAgent[m.AgentID] = m.NewHead
		}
	}

	// Phase 1: apply moves.
	for _, a := range b.Agents {
		newHead, ok := moveByAgent[a.ID]
		if !ok {
			continue
		}
		mf := movedAgentFrame{AgentID: a.ID, PreHealth: a.Health}
		mf.PoppedTail = a.Body[len(a.Body)-1]
		a.Body = append([]geometry.Coordinate{newHead}, a.Body[:len(a.Body)-1]...)
		if s.Game.Mode == Constrictor {
			a.Body = append(a.Body, a.Body[len(a.Body)-1])
			mf.TailCopies++
		} else {
			a.Health--
		}
		frame.moved = append(frame.moved, mf)
	}

	// Phase 2: feed.
	eaten := make(map[geometry.Coordinate]bool)
	for i := range frame.moved {
		mf := &frame.moved[i]
		a := liveAgent(b.Agents, mf.AgentID)
		head := a.Head()
		for _, f := range b.Food {
			if f == head && !eaten[f] {
				eaten[f] = true
				a.Health = 100
				a.Body = append(a.Body, a.Body[len(a.Body)-1])
				mf.TailCopies++
				break
			}
		}
	}

	// Phase 3: hazard tick.
	for i := range frame.moved {
		mf := &frame.moved[i]
		a := liveAgent(b.Agents, mf.AgentID)
		if dmg, ok := b.HazardDamage[a.Head()]; ok {
			a.Health -= dmg
		}
	}

	// Phase 4: remove eaten food.
	if len(eaten) > 0 {
		remaining := b.Food[:0]
		for _, f := range b.Food {
			if eaten[f] {
				frame.eatenFood = append(frame.eatenFood, f)
				continue
			}
			remaining = append(remaining, f)
		}
		b.Food = remaining
	}

	// Phase 5: eliminate, independently per agent.
	headAt := make(map[geometry.Coordinate][]*Agent)
	for _, a := range b.Agents {
		headAt[a.Head()] = append(headAt[a.Head()], a)
	}
	bounds := b.Bounds()
	wrapped := s.Wrapped()
	for _, a := range b.Agents {
		switch {
		case a.Health <= 0:
			a.Eliminated = true
			continue
		case !wrapped && !bounds.InBounds(a.Head()):
			a.Eliminated = true
			continue
		}
		for _, other := range headAt[a.Head()] {
			if other.ID != a.ID && a.Length() <= other.Length() {
				a.Eliminated = true
				break
			}
		}
		if a.Eliminated {
			continue
		}
		for _, other := range b.Agents {
			for _, c := range other.Body[1:] {
				if c == a.Head() {
					a.Eliminated = true
					break
				}
			}
			if a.Eliminated {
				break
			}
		}
	}

	survivors := b.Agents[:0]
	for _, a := range b.Agents {
		if a.Eliminated {
			frame.eliminated = append(frame.eliminated, preTurnSnapshots[a.ID])
			continue
		}
		survivors = append(survivors, a)
	}
	b.Agents = survivors

	s.journal = append(s.journal, frame)
	deriveIndexes(s)
}
