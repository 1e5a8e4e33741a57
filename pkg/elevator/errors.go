package elevator

import "errors"

// Caller-visible failures. None of them leave the engine in a changed state.
var (
	// ErrNoAvailableCar is returned when no car is en-route or idle for a hall call.
	ErrNoAvailableCar = errors.New("no available car")
	// ErrUnknownCar is returned when a car id does not exist.
	ErrUnknownCar = errors.New("unknown car")
	// ErrFloorOutOfRange is returned for floors outside [0, floors-1].
	ErrFloorOutOfRange = errors.New("floor out of range")
	// ErrInvalidDirection is returned for a hall call without Up or Down.
	ErrInvalidDirection = errors.New("invalid direction")
	// ErrInvalidConfig is returned by New when the configuration is rejected.
	ErrInvalidConfig = errors.New("invalid config")
)
