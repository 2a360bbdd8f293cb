package outcome

import (
	"testing"

	"github.com/ndsquared/snakecore/internal/geometry"
	"github.com/stretchr/testify/assert"
)

func c(x, y int) geometry.Coordinate { return geometry.Coordinate{X: x, Y: y} }

func TestDescribeWallCrash(t *testing.T) {
	bounds := geometry.Bounds{Width: 5, Height: 5}
	you := AgentSnapshot{ID: "Y", Head: c(-1, 2), Health: 50}
	o, reason := Describe(bounds, you, nil)
	assert.Equal(t, Loss, o)
	assert.Contains(t, reason, "wall")
}

func TestDescribeCollisionWithOpponent(t *testing.T) {
	bounds := geometry.Bounds{Width: 5, Height: 5}
	you := AgentSnapshot{ID: "Y", Head: c(2, 2), Health: 50}
	others := []AgentSnapshot{{ID: "A", Body: []geometry.Coordinate{c(2, 2), c(2, 1)}, Health: 80}}
	o, reason := Describe(bounds, you, others)
	assert.Equal(t, Loss, o)
	assert.Contains(t, reason, "A")
}

func TestDescribeSelfCollision(t *testing.T) {
	bounds := geometry.Bounds{Width: 5, Height: 5}
	you := AgentSnapshot{ID: "Y", Head: c(2, 2), Body: []geometry.Coordinate{c(2, 2), c(2, 1), c(2, 2)}, Health: 50}
	o, reason := Describe(bounds, you, nil)
	assert.Equal(t, Loss, o)
	assert.Contains(t, reason, "itself")
}

func TestDescribeStarvation(t *testing.T) {
	bounds := geometry.Bounds{Width: 5, Height: 5}
	you := AgentSnapshot{ID: "Y", Head: c(2, 2), Health: 0}
	o, _ := Describe(bounds, you, nil)
	assert.Equal(t, Loss, o)
}

func TestDescribeHazardDeathIsDistinctFromStarvation(t *testing.T) {
	bounds := geometry.Bounds{Width: 5, Height: 5}
	you := AgentSnapshot{ID: "Y", Head: c(2, 2), Health: 0, OnHazard: true}
	o, reason := Describe(bounds, you, nil)
	assert.Equal(t, Loss, o)
	assert.Contains(t, reason, "hazard")
}

func TestDescribeOwnStarvationTakesPriorityOverDraw(t *testing.T) {
	bounds := geometry.Bounds{Width: 5, Height: 5}
	you := AgentSnapshot{ID: "Y", Head: c(2, 2), Health: 0}
	others := []AgentSnapshot{{ID: "A", Health: 0}}
	o, _ := Describe(bounds, you, others)
	assert.Equal(t, Loss, o, "your own starvation is a loss even when every opponent also died")
}

func TestDescribeWinWhenOnlyOpponentsDied(t *testing.T) {
	bounds := geometry.Bounds{Width: 5, Height: 5}
	you := AgentSnapshot{ID: "Y", Head: c(2, 2), Health: 1}
	others := []AgentSnapshot{{ID: "A", Health: 0}, {ID: "B", Health: 0}}
	o, _ := Describe(bounds, you, others)
	assert.Equal(t, Win, o, "you're the sole survivor")
}

func TestDescribeWin(t *testing.T) {
	bounds := geometry.Bounds{Width: 5, Height: 5}
	you := AgentSnapshot{ID: "Y", Head: c(2, 2), Health: 80}
	others := []AgentSnapshot{{ID: "A", Health: 0}}
	o, reason := Describe(bounds, you, others)
	assert.Equal(t, Win, o)
	assert.Contains(t, reason, "A")
}
