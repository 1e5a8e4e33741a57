package elevator

import "testing"

func TestExternalRequest_KeepsDirection(t *testing.T) {
	req := NewExternalRequest(DirDown, 7)

	if req.Kind() != KindExternal {
		t.Errorf("Expected External, got %s", req.Kind())
	}
	if req.Floor() != 7 || req.Direction() != DirDown {
		t.Errorf("Expected floor 7 Down, got %d %s", req.Floor(), req.Direction())
	}
}

func TestInternalRequest_DerivesDirection(t *testing.T) {
	car := NewCar(2, 10, 4)

	tests := []struct {
		floor int
		want  Direction
	}{
		{8, DirUp},
		{1, DirDown},
		{4, DirDown}, // same floor falls through to Down
	}
	for _, tt := range tests {
		req := NewInternalRequest(car, tt.floor)
		if req.Direction() != tt.want {
			t.Errorf("floor %d: expected %s, got %s", tt.floor, tt.want, req.Direction())
		}
		if req.CarID() != 2 || req.Kind() != KindInternal {
			t.Errorf("floor %d: unexpected request %s", tt.floor, req)
		}
	}

	if car.Floor() != 4 || car.State() != Idle || len(car.Destinations()) != 0 {
		t.Errorf("Request construction must not touch the car")
	}
}
