package elevator

import "time"

// EventType represents the category of an engine event.
// EventType는 엔진 이벤트의 카테고리를 나타냅니다.
type EventType string

const (
	EventAssigned    EventType = "Assigned"
	EventFloorChange EventType = "FloorChange"
	EventStateChange EventType = "StateChange"
	EventArrived     EventType = "Arrived"
)

// Event carries a state change of one car.
// Event는 카의 상태 변화 정보를 담고 있습니다.
type Event struct {
	Type      EventType
	CarID     int
	Payload   interface{}
	Timestamp time.Time
}

// AssignedPayload describes a destination added to a car.
type AssignedPayload struct {
	Kind      RequestKind
	Floor     int
	Direction Direction
}

// StateChangePayload describes a movement state transition.
type StateChangePayload struct {
	From MovementState
	To   MovementState
}

// ArrivedPayload describes a destination popped on arrival.
type ArrivedPayload struct {
	Floor     int
	Remaining int
}
