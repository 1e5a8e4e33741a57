package elevator

import (
	"reflect"
	"testing"
)

func TestCar_Init(t *testing.T) {
	car := NewCar(1, 10, 0)

	if car.Floor() != 0 {
		t.Errorf("Expected initial floor 0, got %d", car.Floor())
	}
	if car.State() != Idle {
		t.Errorf("Expected initial state Idle, got %s", car.State())
	}
	if len(car.Destinations()) != 0 {
		t.Errorf("Expected empty queue, got %v", car.Destinations())
	}
}

func TestCar_MoveWithEmptyQueueIsNoop(t *testing.T) {
	car := NewCar(1, 10, 3)

	car.MoveUp()
	car.MoveDown()

	if car.Floor() != 3 || car.State() != Idle {
		t.Errorf("Expected floor 3 Idle, got floor %d %s", car.Floor(), car.State())
	}
}

func TestCar_MoveTransitions(t *testing.T) {
	car := NewCar(1, 10, 5)
	car.SetDestination(9)

	car.MoveUp()
	if car.Floor() != 6 || car.State() != MovingUp {
		t.Errorf("Expected floor 6 MovingUp, got %d %s", car.Floor(), car.State())
	}

	car.MoveDown()
	if car.Floor() != 5 || car.State() != MovingDown {
		t.Errorf("Expected floor 5 MovingDown, got %d %s", car.Floor(), car.State())
	}

	car.Stop()
	if car.State() != Idle {
		t.Errorf("Expected Idle after Stop, got %s", car.State())
	}
	if !reflect.DeepEqual(car.Destinations(), []int{9}) {
		t.Errorf("Stop must not drop destinations, got %v", car.Destinations())
	}
}

func TestCar_StaysInsideBuilding(t *testing.T) {
	car := NewCar(1, 3, 2)
	car.SetDestination(0)

	car.MoveUp()
	if car.Floor() != 2 {
		t.Errorf("Expected car to stay at top floor 2, got %d", car.Floor())
	}

	bottom := NewCar(2, 3, 0)
	bottom.SetDestination(2)
	bottom.MoveDown()
	if bottom.Floor() != 0 {
		t.Errorf("Expected car to stay at floor 0, got %d", bottom.Floor())
	}
}

func TestCar_DestinationsIsCopy(t *testing.T) {
	car := NewCar(1, 10, 0)
	car.SetDestination(4)

	d := car.Destinations()
	d[0] = 8

	if front, _ := car.Front(); front != 4 {
		t.Errorf("Expected front 4 after mutating copy, got %d", front)
	}
}
