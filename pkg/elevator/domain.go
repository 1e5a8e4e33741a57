package elevator

import "fmt"

// --- Domain Entities & Value Objects ---

// Direction indicates the vertical movement vector.
// Direction은 수직 이동 벡터를 나타냅니다.
type Direction string

const (
	DirUp   Direction = "Up"
	DirDown Direction = "Down"
	DirNone Direction = "None"
)

// Valid reports whether d is a travel direction a hall call may carry.
func (d Direction) Valid() bool {
	return d == DirUp || d == DirDown
}

// MovementState is the car's position in the movement state machine.
// MovementState는 카의 이동 상태를 나타냅니다.
type MovementState int

const (
	Idle       MovementState = iota // 대기 (목적지 없음)
	MovingUp                        // 상승 중
	MovingDown                      // 하강 중
)

func (s MovementState) String() string {
	return [...]string{"Idle", "MovingUp", "MovingDown"}[s]
}

// MarshalText renders the state by name for JSON clients.
func (s MovementState) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText parses a state name produced by MarshalText.
func (s *MovementState) UnmarshalText(text []byte) error {
	switch string(text) {
	case "Idle":
		*s = Idle
	case "MovingUp":
		*s = MovingUp
	case "MovingDown":
		*s = MovingDown
	default:
		return fmt.Errorf("unknown movement state %q", text)
	}
	return nil
}

// Direction maps the movement state onto a travel direction.
// Idle has no direction.
func (s MovementState) Direction() Direction {
	switch s {
	case MovingUp:
		return DirUp
	case MovingDown:
		return DirDown
	default:
		return DirNone
	}
}

// MoveEvent is an input to the movement state machine.
// MoveEvent는 상태 머신의 입력 이벤트입니다.
type MoveEvent int

const (
	EventMoveUp     MoveEvent = iota // 한 층 위로 이동
	EventMoveDown                    // 한 층 아래로 이동
	EventAssignUp                    // 새 목표가 위쪽, 층 변화 없음
	EventAssignDown                  // 새 목표가 아래쪽, 층 변화 없음
	EventStop                        // 무조건 Idle 전환
)

func (e MoveEvent) String() string {
	return [...]string{"MoveUp", "MoveDown", "AssignUp", "AssignDown", "Stop"}[e]
}

// transition is the movement state machine.
// It returns the next state and the floor delta to apply.
// Move and assign events on an empty destination queue are no-ops; Stop always
// lands on Idle.
//
// transition은 상태 전이 함수입니다. 다음 상태와 층 변화량을 반환합니다.
func transition(state MovementState, event MoveEvent, queueEmpty bool) (MovementState, int) {
	if event == EventStop {
		return Idle, 0
	}
	if queueEmpty {
		return state, 0
	}

	switch event {
	case EventMoveUp:
		return MovingUp, +1
	case EventMoveDown:
		return MovingDown, -1
	case EventAssignUp:
		return MovingUp, 0
	case EventAssignDown:
		return MovingDown, 0
	}
	return state, 0
}

// headingFor returns the assign event that points a car at floor
// target from floor. A target that is not strictly above counts as down.
func headingFor(from, target int) MoveEvent {
	if target > from {
		return EventAssignUp
	}
	return EventAssignDown
}

// directionFor derives a travel direction from two floors with the same rule.
func directionFor(from, target int) Direction {
	if target > from {
		return DirUp
	}
	return DirDown
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
