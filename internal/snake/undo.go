package snake

// Undo pops the most recent Advance frame and reverses it exactly:
// eliminated agents are re-inserted in their pre-advance form, eaten food
// is restored, and each still-present (surviving) agent has its head
// popped, its growth-copies trimmed, its saved tail re-appended, and its
// saved health restored. Derived indexes are recomputed afterward.
//
// Calls must be strictly LIFO balanced with Advance; calling Undo with an
// empty journal is a programmer error.
func Undo(s *GameState) {
	b := &s.Board
	n := len(s.journal)
	if n == 0 {
		panic("snake: Undo called with an empty journal")
	}
	frame := s.journal[n-1]
	s.journal = s.journal[:n-1]

	b.Food = append(b.Food, frame.eatenFood...)

	byID := make(map[string]*Agent, len(b.Agents))
	for _, a := range b.Agents {
		byID[a.ID] = a
	}
	wasEliminated := make(map[string]bool, len(frame.eliminated))
	for _, restored := range frame.eliminated {
		byID[restored.ID] = restored
		wasEliminated[restored.ID] = true
	}

	for i := range frame.moved {
		mf := frame.moved[len(frame.moved)-1-i]
		if wasEliminated[mf.AgentID] {
			// Already fully reverted by re-inserting its pre-advance
			// snapshot above; re-applying the survivor diff would corrupt it.
			continue
		}
		a := byID[mf.AgentID]
		if a == nil {
			continue
		}
		a.Body = a.Body[1:] // pop the front (head)
		if mf.TailCopies > 0 {
			a.Body = a.Body[:len(a.Body)-mf.TailCopies]
		}
		a.Body = append(a.Body, mf.PoppedTail)
		a.Health = mf.PreHealth
		a.Eliminated = false
	}

	rebuilt := make([]*Agent, 0, len(frame.precedingOrder))
	for _, id := range frame.precedingOrder {
		if a, ok := byID[id]; ok {
			a.Eliminated = false
			rebuilt = append(rebuilt, a)
		}
	}
	b.Agents = rebuilt

	deriveIndexes(s)
}
