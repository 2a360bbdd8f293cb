// Package main is the HTTP driver: it decodes the external wire format,
// builds a snake.GameState, runs the search, and reports the chosen
// direction back over the wire. Wire types here mirror the teacher's
// api.go, which described the same public Battlesnake JSON contract.
package main

import (
	"fmt"

	"github.com/ndsquared/snakecore/internal/geometry"
	"github.com/ndsquared/snakecore/internal/outcome"
	"github.com/ndsquared/snakecore/internal/snake"
)

// WireGame is the "game" object of every request payload.
type WireGame struct {
	ID      string      `json:"id"`
	Ruleset WireRuleset `json:"ruleset"`
	Map     string      `json:"map"`
	Source  string      `json:"source"`
	Timeout int         `json:"timeout"`
}

type WireRuleset struct {
	Name     string        `json:"name"`
	Version  string        `json:"version"`
	Settings WireSettings  `json:"settings"`
}

type WireSettings struct {
	FoodSpawnChance     int `json:"foodSpawnChance"`
	MinimumFood         int `json:"minimumFood"`
	HazardDamagePerTurn int `json:"hazardDamagePerTurn"`
}

type WireBoard struct {
	Height  int         `json:"height"`
	Width   int         `json:"width"`
	Food    []WirePoint `json:"food"`
	Hazards []WirePoint `json:"hazards"`
	Snakes  []WireSnake `json:"snakes"`
}

type WirePoint struct {
	X int `json:"x"`
	Y int `json:"y"`
}

type WireSnake struct {
	ID             string            `json:"id"`
	Name           string            `json:"name"`
	Health         int               `json:"health"`
	Body           []WirePoint       `json:"body"`
	Latency        string            `json:"latency"`
	Head           WirePoint         `json:"head"`
	Length         int               `json:"length"`
	Shout          string            `json:"shout"`
	Customizations WireCustomization `json:"customizations"`
}

type WireCustomization struct {
	Color string `json:"color"`
	Head  string `json:"head"`
	Tail  string `json:"tail"`
}

// WireRequest is the full payload sent to /start, /move and /end.
type WireRequest struct {
	Game  WireGame  `json:"game"`
	Turn  int       `json:"turn"`
	Board WireBoard `json:"board"`
	You   WireSnake `json:"you"`
}

// modeFromRuleset maps the wire ruleset name to the internal GameMode.
// royale and squad keep their own tags (the core treats them like
// standard); any unrecognized name maps to Standard.
func modeFromRuleset(name string) snake.GameMode {
	switch name {
	case "solo":
		return snake.Solo
	case "constrictor":
		return snake.Constrictor
	case "wrapped":
		return snake.Wrapped
	case "royale":
		return snake.Royale
	case "squad":
		return snake.Squad
	default:
		return snake.Standard
	}
}

func toCoordinate(p WirePoint) geometry.Coordinate {
	return geometry.Coordinate{X: p.X, Y: p.Y}
}

func toCoordinates(ps []WirePoint) []geometry.Coordinate {
	out := make([]geometry.Coordinate, len(ps))
	for i, p := range ps {
		out[i] = toCoordinate(p)
	}
	return out
}

// toGameState converts one wire request into the internal state model.
// It returns an error rather than panicking so the HTTP handler can
// reject a malformed payload with a 400 instead of crashing the process;
// the core itself (per spec.md §7) treats a malformed snapshot as a
// fatal programmer error once past this boundary.
func toGameState(req WireRequest) (*snake.GameState, error) {
	if req.Board.Width <= 0 || req.Board.Height <= 0 {
		return nil, fmt.Errorf("wire: invalid board dimensions %dx%d", req.Board.Width, req.Board.Height)
	}

	var youFound bool
	agents := make([]*snake.Agent, 0, len(req.Board.Snakes))
	for _, s := range req.Board.Snakes {
		if s.ID == req.You.ID {
			youFound = true
		}
		agents = append(agents, &snake.Agent{
			ID:     s.ID,
			Body:   toCoordinates(s.Body),
			Health: s.Health,
		})
	}
	if !youFound {
		return nil, fmt.Errorf("wire: controlled agent %q not present in board snakes", req.You.ID)
	}

	board := snake.Board{
		Width:   req.Board.Width,
		Height:  req.Board.Height,
		Food:    toCoordinates(req.Board.Food),
		Hazards: toCoordinates(req.Board.Hazards),
		Agents:  agents,
	}
	ruleset := snake.Ruleset{
		Mode:                modeFromRuleset(req.Game.Ruleset.Name),
		HazardDamagePerTurn: req.Game.Ruleset.Settings.HazardDamagePerTurn,
		TimeoutMS:           req.Game.Timeout,
	}

	return snake.New(ruleset, req.Turn, board, req.You.ID), nil
}

// toBounds adapts a wire board's dimensions to geometry.Bounds, used by
// the /end handler to classify the final frame's wall-crash case.
func toBounds(b WireBoard) geometry.Bounds {
	return geometry.Bounds{Width: b.Width, Height: b.Height}
}

// toBoard adapts a wire board into a bare snake.Board suitable for
// rendering (internal/render needs only Agents/Food/Hazards/dimensions,
// not the derived indexes snake.New computes for the live search).
func toBoard(b WireBoard) *snake.Board {
	agents := make([]*snake.Agent, 0, len(b.Snakes))
	for _, s := range b.Snakes {
		agents = append(agents, &snake.Agent{ID: s.ID, Body: toCoordinates(s.Body), Health: s.Health})
	}
	return &snake.Board{
		Width:   b.Width,
		Height:  b.Height,
		Food:    toCoordinates(b.Food),
		Hazards: toCoordinates(b.Hazards),
		Agents:  agents,
	}
}

// toSnapshot adapts a wire snake into an outcome.AgentSnapshot, used by
// the /end handler to classify the final frame. hazards is the board's
// hazard set for that same frame, used to tell a hazard death apart from
// ordinary starvation.
func toSnapshot(s WireSnake, hazards []WirePoint) outcome.AgentSnapshot {
	head := toCoordinate(s.Head)
	onHazard := false
	for _, h := range hazards {
		if toCoordinate(h) == head {
			onHazard = true
			break
		}
	}
	return outcome.AgentSnapshot{
		ID:       s.ID,
		Head:     head,
		Body:     toCoordinates(s.Body),
		Health:   s.Health,
		OnHazard: onHazard,
	}
}
