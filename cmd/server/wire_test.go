package main

import (
	"testing"

	"github.com/ndsquared/snakecore/internal/geometry"
	"github.com/ndsquared/snakecore/internal/snake"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pt(x, y int) WirePoint { return WirePoint{X: x, Y: y} }

func sampleRequest() WireRequest {
	return WireRequest{
		Game: WireGame{
			ID:      "game-1",
			Timeout: 500,
			Ruleset: WireRuleset{
				Name:     "standard",
				Settings: WireSettings{HazardDamagePerTurn: 14},
			},
		},
		Turn: 3,
		Board: WireBoard{
			Width: 7, Height: 7,
			Food: []WirePoint{pt(1, 1)},
			Snakes: []WireSnake{
				{ID: "Y", Health: 90, Body: []WirePoint{pt(2, 2), pt(2, 1)}, Head: pt(2, 2)},
				{ID: "A", Health: 80, Body: []WirePoint{pt(4, 4), pt(4, 3)}, Head: pt(4, 4)},
			},
		},
		You: WireSnake{ID: "Y", Health: 90, Body: []WirePoint{pt(2, 2), pt(2, 1)}, Head: pt(2, 2)},
	}
}

func TestToGameStateBuildsExpectedBoard(t *testing.T) {
	s, err := toGameState(sampleRequest())
	require.NoError(t, err)
	assert.Equal(t, "Y", s.YouID)
	assert.Equal(t, snake.Standard, s.Game.Mode)
	assert.Equal(t, 14, s.Game.HazardDamagePerTurn)
	assert.Equal(t, 500, s.Game.TimeoutMS)
	require.Len(t, s.Board.Agents, 2)
	assert.Equal(t, geometry.Coordinate{X: 2, Y: 2}, s.You().Head())
}

func TestToGameStateMapsRulesetModes(t *testing.T) {
	req := sampleRequest()
	req.Game.Ruleset.Name = "wrapped"
	s, err := toGameState(req)
	require.NoError(t, err)
	assert.Equal(t, snake.Wrapped, s.Game.Mode)
}

func TestToGameStateRejectsInvalidDimensions(t *testing.T) {
	req := sampleRequest()
	req.Board.Width = 0
	_, err := toGameState(req)
	assert.Error(t, err)
}

func TestToGameStateRejectsMissingControlledAgent(t *testing.T) {
	req := sampleRequest()
	req.You.ID = "nope"
	_, err := toGameState(req)
	assert.Error(t, err)
}

func TestToSnapshotCopiesFields(t *testing.T) {
	snap := toSnapshot(WireSnake{ID: "Y", Health: 42, Head: pt(1, 2), Body: []WirePoint{pt(1, 2), pt(1, 1)}}, nil)
	assert.Equal(t, "Y", snap.ID)
	assert.Equal(t, 42, snap.Health)
	assert.Equal(t, geometry.Coordinate{X: 1, Y: 2}, snap.Head)
	assert.Equal(t, []geometry.Coordinate{{X: 1, Y: 2}, {X: 1, Y: 1}}, snap.Body)
	assert.False(t, snap.OnHazard)
}

func TestToSnapshotDetectsHazard(t *testing.T) {
	snap := toSnapshot(WireSnake{ID: "Y", Head: pt(1, 2)}, []WirePoint{pt(1, 2)})
	assert.True(t, snap.OnHazard)
}
