package rules

import "gift-swap/internal/db"

// State is the result of folding a game's event log from empty: who holds
// what, whose turn it is, and where the lifecycle stands. Replaying a log
// with Materialize must land exactly on the live rows, which is what the
// event-sourcing tests assert.
type State struct {
	Started        bool
	Finished       bool
	CurrentPlayer  *int64
	CurrentPresent *int64
	Holders        map[int64]int64 // present id -> holding player id
}

// Materialize folds events in commit order. The log has no action column;
// event shapes identify the transition:
//
//   - player only, log empty of player-only events so far: start marker
//   - player only, after a start marker: finish marker
//   - player + present, no from pair: draw
//   - player + present + from pair: steal
//
// players must be the game's roster in insertion order.
func Materialize(players []db.Player, events []db.PlayEvent) State {
	state := State{Holders: make(map[int64]int64)}
	for i := range events {
		event := &events[i]
		switch {
		case event.PresentID == nil:
			if !state.Started {
				state.Started = true
				playerID := event.PlayerID
				state.CurrentPlayer = &playerID
			} else {
				state.Finished = true
				state.CurrentPlayer = nil
				state.CurrentPresent = nil
			}
		default:
			state.Holders[*event.PresentID] = event.PlayerID
			presentID := *event.PresentID
			state.CurrentPresent = &presentID
			next := nextPlayer(players, event.PlayerID)
			state.CurrentPlayer = &next
		}
	}
	return state
}
