package snake

import "github.com/ndsquared/snakecore/internal/geometry"

// deriveIndexes rebuilds every derived board index from the current live
// agents, food, and hazards. Called once after state construction and
// again after every Advance/Undo.
func deriveIndexes(s *GameState) {
	b := &s.Board

	b.SnakeIndex = make(map[string]int, len(b.Agents))
	for i, a := range b.Agents {
		b.SnakeIndex[a.ID] = i
	}

	b.HazardDamage = make(map[geometry.Coordinate]int, len(b.Hazards))
	for _, h := range b.Hazards {
		b.HazardDamage[h] += s.Game.HazardDamagePerTurn
	}

	you := s.You()
	var youHealth int
	if you != nil {
		youHealth = you.Health
	}

	b.Obstacles = make(map[geometry.Coordinate]bool)
	for _, a := range b.Agents {
		last := len(a.Body) - 1
		for i, c := range a.Body {
			if i == last {
				// each agent's own last tail cell is not an obstacle: it
				// vacates this turn unless the agent just ate or grew.
				continue
			}
			b.Obstacles[c] = true
		}
	}
	if you != nil {
		for c, dmg := range b.HazardDamage {
			if dmg >= youHealth {
				b.Obstacles[c] = true
			}
		}
	}

	b.Stomps = make(map[geometry.Coordinate]bool)
	b.Avoids = make(map[geometry.Coordinate]bool)
	if you != nil {
		youLen := you.Length()
		for _, a := range b.Agents {
			if a.ID == s.YouID {
				continue
			}
			target := b.Stomps
			if a.Length() >= youLen {
				target = b.Avoids
			}
			head := a.Head()
			for _, d := range geometry.AllDirections {
				target[geometry.Adjacent(head, d, b.Bounds(), s.Wrapped())] = true
			}
		}
	}
}
