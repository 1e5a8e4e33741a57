package elevator

import "fmt"

// RequestKind tags the two request variants.
// RequestKind는 요청 종류(홀 호출/카 호출)를 구분합니다.
type RequestKind string

const (
	KindExternal RequestKind = "External" // 홀 호출
	KindInternal RequestKind = "Internal" // 카 호출
)

// Request is an immutable floor-service request.
type Request interface {
	Kind() RequestKind
	Floor() int
	Direction() Direction
}

// ExternalRequest is a hall call. It carries the direction the caller pressed
// and is not bound to a car until the dispatcher assigns one.
type ExternalRequest struct {
	floor     int
	direction Direction
}

// NewExternalRequest keeps the caller-declared direction as-is.
func NewExternalRequest(direction Direction, floor int) ExternalRequest {
	return ExternalRequest{floor: floor, direction: direction}
}

func (r ExternalRequest) Kind() RequestKind    { return KindExternal }
func (r ExternalRequest) Floor() int           { return r.floor }
func (r ExternalRequest) Direction() Direction { return r.direction }

func (r ExternalRequest) String() string {
	return fmt.Sprintf("External{floor=%d dir=%s}", r.floor, r.direction)
}

// InternalRequest is a car call issued from inside a specific car.
type InternalRequest struct {
	carID     int
	floor     int
	direction Direction
}

// NewInternalRequest derives the direction from the car's floor at
// construction time: strictly above is Up, anything else is Down.
// It does not touch the car.
func NewInternalRequest(car *Car, floor int) InternalRequest {
	return InternalRequest{
		carID:     car.ID(),
		floor:     floor,
		direction: directionFor(car.Floor(), floor),
	}
}

func (r InternalRequest) Kind() RequestKind    { return KindInternal }
func (r InternalRequest) Floor() int           { return r.floor }
func (r InternalRequest) Direction() Direction { return r.direction }

// CarID returns the car the request was issued from.
func (r InternalRequest) CarID() int { return r.carID }

func (r InternalRequest) String() string {
	return fmt.Sprintf("Internal{car=%d floor=%d dir=%s}", r.carID, r.floor, r.direction)
}
