// Package render provides diagnostic views of a board: ASCII dumps for
// logs, an animated GIF of a sequence of boards, and a websocket stream
// of search progress — adapted from the teacher's visuals.go and
// renderer.go, which rendered boards pulled from the public Battlesnake
// engine instead of boards owned by this module's own search.
package render

import (
	"strings"
	"unicode"

	"github.com/ndsquared/snakecore/internal/geometry"
	"github.com/ndsquared/snakecore/internal/snake"
)

// RenderASCII draws a text grid of the board: '.' empty, 'H' hazard,
// '♥' food, a letter per snake (uppercase head, lowercase body),
// bordered by 'x'. Snake letters are assigned in Board.Agents order.
func RenderASCII(b *snake.Board) string {
	if b.Height <= 0 || b.Width <= 0 {
		return "invalid board dimensions"
	}

	extH, extW := b.Height+2, b.Width+2
	grid := make([][]rune, extH)
	for i := range grid {
		grid[i] = make([]rune, extW)
		for j := range grid[i] {
			if i == 0 || i == extH-1 || j == 0 || j == extW-1 {
				grid[i][j] = 'x'
			} else {
				grid[i][j] = '.'
			}
		}
	}

	adjustY := func(y int) int {
		if y < 0 || y >= b.Height {
			return -1
		}
		return extH - 1 - (y + 1)
	}

	for _, f := range b.Food {
		if ay := adjustY(f.Y); ay != -1 && f.X+1 < extW {
			grid[ay][f.X+1] = '♥'
		}
	}
	for _, h := range b.Hazards {
		if ay := adjustY(h.Y); ay != -1 && h.X+1 < extW {
			grid[ay][h.X+1] = 'H'
		}
	}
	for i, a := range b.Agents {
		if len(a.Body) == 0 {
			continue
		}
		ch := rune('a' + i)
		if ch > 'z' {
			ch = '?'
		}
		head := a.Head()
		if ay := adjustY(head.Y); ay != -1 && head.X+1 < extW {
			grid[ay][head.X+1] = unicode.ToUpper(ch)
		}
		for _, part := range a.Body[1:] {
			if ay := adjustY(part.Y); ay != -1 && part.X+1 < extW {
				grid[ay][part.X+1] = ch
			}
		}
	}

	return renderGrid(grid)
}

// RenderTerritoryASCII draws controlled and unclaimed cells from
// spatial.Territory's output: a letter per controlling agent
// (Board.Agents order), '?' for every non-obstacle cell no agent
// controls (contested and unreachable cells alike), '.' for obstacles.
func RenderTerritoryASCII(b *snake.Board, controlled []map[geometry.Coordinate]bool) string {
	if b.Height <= 0 || b.Width <= 0 {
		return "invalid board dimensions"
	}

	extH, extW := b.Height+2, b.Width+2
	grid := make([][]rune, extH)
	for i := range grid {
		grid[i] = make([]rune, extW)
		for j := range grid[i] {
			if i == 0 || i == extH-1 || j == 0 || j == extW-1 {
				grid[i][j] = 'x'
			} else {
				grid[i][j] = '.'
			}
		}
	}
	adjustY := func(y int) int {
		if y < 0 || y >= b.Height {
			return -1
		}
		return extH - 1 - (y + 1)
	}

	owner := make(map[geometry.Coordinate]rune)
	for i, set := range controlled {
		ch := rune('a' + i)
		if ch > 'z' {
			ch = '?'
		}
		for cell := range set {
			owner[cell] = ch
		}
	}
	for y := 0; y < b.Height; y++ {
		for x := 0; x < b.Width; x++ {
			cell := geometry.Coordinate{X: x, Y: y}
			ay := adjustY(y)
			if ay == -1 {
				continue
			}
			if ch, ok := owner[cell]; ok {
				grid[ay][x+1] = ch
			} else if !b.Obstacles[cell] {
				grid[ay][x+1] = '?'
			}
		}
	}

	return renderGrid(grid)
}

func renderGrid(grid [][]rune) string {
	var sb strings.Builder
	for _, row := range grid {
		for _, cell := range row {
			sb.WriteRune(cell)
			sb.WriteString("  ")
		}
		sb.WriteString("\n")
	}
	return sb.String()
}
