// Package snake implements the game snapshot data model, the derived
// board indexes, and the reversible turn transition. It is the state
// model that internal/search, internal/mcts, internal/spatial and
// internal/eval all operate on.
package snake

import "github.com/ndsquared/snakecore/internal/geometry"

// GameMode tags which rule variant is active. Only the subset that
// affects core logic (Standard, Solo, Constrictor, Wrapped) changes
// transition/evaluator behavior; the rest fall through to standard rules.
type GameMode string

const (
	Standard   GameMode = "standard"
	Solo       GameMode = "solo"
	Royale     GameMode = "royale"
	Squad      GameMode = "squad"
	Constrictor GameMode = "constrictor"
	Wrapped    GameMode = "wrapped"
)

// Ruleset carries the game-wide tunables that affect transition and the
// per-turn deadline.
type Ruleset struct {
	Mode                GameMode
	HazardDamagePerTurn int
	TimeoutMS           int
}

// Agent is one live (or just-eliminated) snake.
type Agent struct {
	ID     string
	Body   []geometry.Coordinate // head first, tail last; duplicate tail entries are meaningful growth markers
	Health int
	// Eliminated is transient: false outside of a call to Advance, set on
	// agents removed from the live list during that call's elimination phase.
	Eliminated bool
}

// Head returns the agent's head coordinate. Panics if the body is empty,
// which should never happen for a live agent.
func (a *Agent) Head() geometry.Coordinate {
	return a.Body[0]
}

// Length is the agent's body size.
func (a *Agent) Length() int {
	return len(a.Body)
}

// Clone returns a deep copy of the agent, safe to mutate independently.
func (a *Agent) Clone() *Agent {
	body := make([]geometry.Coordinate, len(a.Body))
	copy(body, a.Body)
	return &Agent{ID: a.ID, Body: body, Health: a.Health, Eliminated: a.Eliminated}
}

// Board is the board geometry plus the mutable game objects living on it.
type Board struct {
	Width   int
	Height  int
	Food    []geometry.Coordinate // set semantics; order is not meaningful
	Hazards []geometry.Coordinate // ordered multiset: a cell may repeat, stacking damage
	Agents  []*Agent              // live agents only

	// Derived indexes, recomputed after every transition by deriveIndexes.
	Obstacles    map[geometry.Coordinate]bool
	HazardDamage map[geometry.Coordinate]int
	Stomps       map[geometry.Coordinate]bool
	Avoids       map[geometry.Coordinate]bool
	SnakeIndex   map[string]int
}

// Bounds adapts the board's dimensions to geometry.Bounds.
func (b *Board) Bounds() geometry.Bounds {
	return geometry.Bounds{Width: b.Width, Height: b.Height}
}

// AgentByID returns the live agent with the given id, or nil.
func (b *Board) AgentByID(id string) *Agent {
	if idx, ok := b.SnakeIndex[id]; ok {
		return b.Agents[idx]
	}
	return nil
}

// GameState is the full per-turn snapshot the core operates on: the
// ruleset, the current turn counter, the board, the id of the controlled
// agent, and the undo journal backing Advance/Undo.
type GameState struct {
	Game    Ruleset
	Turn    int
	Board   Board
	YouID   string
	journal []turnFrame
}

// You returns the controlled agent, or nil if it has been eliminated.
func (s *GameState) You() *Agent {
	return s.Board.AgentByID(s.YouID)
}

// Wrapped reports whether the active mode wraps coordinates at the edges.
func (s *GameState) Wrapped() bool {
	return s.Game.Mode == Wrapped
}

// AgentMove is one agent's chosen destination for the joint move applied
// by Advance.
type AgentMove struct {
	AgentID string
	NewHead geometry.Coordinate
}

// JointMove is the set of (agent, destination) pairs applied atomically.
type JointMove []AgentMove

// New builds an initialized GameState from an external snapshot: derived
// indexes are populated and the undo journal is empty. Callers should not
// construct GameState directly so that this invariant always holds.
func New(game Ruleset, turn int, board Board, youID string) *GameState {
	s := &GameState{Game: game, Turn: turn, Board: board, YouID: youID}
	deriveIndexes(s)
	return s
}
