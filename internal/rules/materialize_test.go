package rules

import (
	"testing"

	"gift-swap/internal/db"

	"github.com/google/uuid"
)

func TestMaterializeEmptyLog(t *testing.T) {
	state := Materialize(nil, nil)
	if state.Started || state.Finished {
		t.Fatalf("expected pristine state, got %+v", state)
	}
	if len(state.Holders) != 0 {
		t.Fatalf("expected no holders, got %v", state.Holders)
	}
}

// Replays the draw-then-steal sequence: P1 draws X, P2 steals X from P1.
// Folding from empty state must land on holder = P2.
func TestMaterializeDrawThenSteal(t *testing.T) {
	gameID := uuid.New()
	players := testRoster(gameID, 1, 2)
	presentX := int64(10)

	events := []db.PlayEvent{
		{GameID: gameID, PlayerID: 1},
		{GameID: gameID, PlayerID: 1, PresentID: &presentX},
		{GameID: gameID, PlayerID: 2, PresentID: &presentX, FromPlayerID: i64(1), FromPresentID: &presentX},
	}

	state := Materialize(players, events)
	if !state.Started || state.Finished {
		t.Fatalf("expected in-progress game, got %+v", state)
	}
	if holder := state.Holders[presentX]; holder != 2 {
		t.Fatalf("expected present %d held by player 2, got %d", presentX, holder)
	}
	if state.CurrentPresent == nil || *state.CurrentPresent != presentX {
		t.Fatalf("expected current present %d, got %v", presentX, state.CurrentPresent)
	}
	if state.CurrentPlayer == nil || *state.CurrentPlayer != 1 {
		t.Fatalf("expected turn to wrap back to player 1, got %v", state.CurrentPlayer)
	}
}

func TestMaterializeFinishMarker(t *testing.T) {
	gameID := uuid.New()
	players := testRoster(gameID, 1, 2)
	presentX := int64(10)

	events := []db.PlayEvent{
		{GameID: gameID, PlayerID: 1},
		{GameID: gameID, PlayerID: 1, PresentID: &presentX},
		{GameID: gameID, PlayerID: 1},
	}

	state := Materialize(players, events)
	if !state.Started || !state.Finished {
		t.Fatalf("expected finished game, got %+v", state)
	}
	if state.CurrentPlayer != nil || state.CurrentPresent != nil {
		t.Fatalf("expected cleared turn pointers, got %+v", state)
	}
	if holder := state.Holders[presentX]; holder != 1 {
		t.Fatalf("expected present %d held by player 1, got %d", presentX, holder)
	}
}

// Every replay prefix must show at most one holder per present, and steals
// must move the holder rather than duplicate it.
func TestMaterializePrefixesSingleHolder(t *testing.T) {
	gameID := uuid.New()
	players := testRoster(gameID, 1, 2, 3)
	presentX := int64(10)
	presentY := int64(20)

	events := []db.PlayEvent{
		{GameID: gameID, PlayerID: 1},
		{GameID: gameID, PlayerID: 1, PresentID: &presentX},
		{GameID: gameID, PlayerID: 2, PresentID: &presentX, FromPlayerID: i64(1), FromPresentID: &presentX},
		{GameID: gameID, PlayerID: 3, PresentID: &presentY},
		{GameID: gameID, PlayerID: 1, PresentID: &presentX, FromPlayerID: i64(2), FromPresentID: &presentX},
	}

	wantHolderOfX := []int64{0, 0, 1, 2, 2, 1}
	for prefix := 0; prefix <= len(events); prefix++ {
		state := Materialize(players, events[:prefix])
		holder, held := state.Holders[presentX]
		if wantHolderOfX[prefix] == 0 {
			if held {
				t.Fatalf("prefix %d: expected present X unheld, got holder %d", prefix, holder)
			}
			continue
		}
		if holder != wantHolderOfX[prefix] {
			t.Fatalf("prefix %d: expected present X held by %d, got %d", prefix, wantHolderOfX[prefix], holder)
		}
	}
}

func TestMaterializeWithoutRoster(t *testing.T) {
	gameID := uuid.New()
	presentX := int64(10)
	events := []db.PlayEvent{
		{GameID: gameID, PlayerID: 1},
		{GameID: gameID, PlayerID: 1, PresentID: &presentX},
	}

	state := Materialize(nil, events)
	if holder := state.Holders[presentX]; holder != 1 {
		t.Fatalf("expected present %d held by player 1, got %d", presentX, holder)
	}
	if state.CurrentPlayer == nil || *state.CurrentPlayer != 1 {
		t.Fatalf("expected turn to stay with the acting player, got %v", state.CurrentPlayer)
	}
}

func TestMaterializeIsDeterministic(t *testing.T) {
	gameID := uuid.New()
	players := testRoster(gameID, 1, 2)
	presentX := int64(10)
	events := []db.PlayEvent{
		{GameID: gameID, PlayerID: 2},
		{GameID: gameID, PlayerID: 2, PresentID: &presentX},
	}

	first := Materialize(players, events)
	second := Materialize(players, events)
	if *first.CurrentPlayer != *second.CurrentPlayer || len(first.Holders) != len(second.Holders) {
		t.Fatalf("expected identical folds, got %+v and %+v", first, second)
	}
	if *first.CurrentPlayer != 1 {
		t.Fatalf("expected turn to pass to player 1, got %d", *first.CurrentPlayer)
	}
}
