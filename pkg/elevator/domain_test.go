package elevator

import "testing"

func TestTransition_Table(t *testing.T) {
	tests := []struct {
		name      string
		state     MovementState
		event     MoveEvent
		empty     bool
		wantState MovementState
		wantDelta int
	}{
		{"idle up", Idle, EventMoveUp, false, MovingUp, +1},
		{"idle down", Idle, EventMoveDown, false, MovingDown, -1},
		{"idle up empty queue", Idle, EventMoveUp, true, Idle, 0},
		{"idle down empty queue", Idle, EventMoveDown, true, Idle, 0},
		{"up keeps up", MovingUp, EventMoveUp, false, MovingUp, +1},
		{"up reverses", MovingUp, EventMoveDown, false, MovingDown, -1},
		{"up empty queue", MovingUp, EventMoveUp, true, MovingUp, 0},
		{"down keeps down", MovingDown, EventMoveDown, false, MovingDown, -1},
		{"down reverses", MovingDown, EventMoveUp, false, MovingUp, +1},
		{"stop from up", MovingUp, EventStop, false, Idle, 0},
		{"stop from down", MovingDown, EventStop, true, Idle, 0},
		{"stop from idle", Idle, EventStop, true, Idle, 0},
		{"assign up from idle", Idle, EventAssignUp, false, MovingUp, 0},
		{"assign down from up", MovingUp, EventAssignDown, false, MovingDown, 0},
		{"assign with empty queue", Idle, EventAssignUp, true, Idle, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			state, delta := transition(tt.state, tt.event, tt.empty)
			if state != tt.wantState || delta != tt.wantDelta {
				t.Errorf("transition(%s, %s, empty=%v) = (%s, %d), want (%s, %d)",
					tt.state, tt.event, tt.empty, state, delta, tt.wantState, tt.wantDelta)
			}
		})
	}
}

func TestMovementState_Direction(t *testing.T) {
	if Idle.Direction() != DirNone {
		t.Errorf("Expected Idle direction None, got %s", Idle.Direction())
	}
	if MovingUp.Direction() != DirUp {
		t.Errorf("Expected MovingUp direction Up, got %s", MovingUp.Direction())
	}
	if MovingDown.Direction() != DirDown {
		t.Errorf("Expected MovingDown direction Down, got %s", MovingDown.Direction())
	}
}

func TestMovementState_TextRoundTrip(t *testing.T) {
	for _, st := range []MovementState{Idle, MovingUp, MovingDown} {
		text, _ := st.MarshalText()
		var got MovementState
		if err := got.UnmarshalText(text); err != nil || got != st {
			t.Errorf("round trip %s: got %s (%v)", st, got, err)
		}
	}
	var bad MovementState
	if err := bad.UnmarshalText([]byte("Sideways")); err == nil {
		t.Error("Expected error for unknown state, got nil")
	}
}
