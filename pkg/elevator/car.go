package elevator

// Car is one elevator cabin.
// No mutex, No channel, No time: the owning System serializes every mutation.
//
// Car는 하나의 엘리베이터 카입니다. 잠금은 System이 담당합니다.
type Car struct {
	id     int
	floors int

	// State
	floor        int
	state        MovementState
	destinations []int // FIFO, front is the current travel target
}

// NewCar creates a car parked at startFloor in a building of floors floors.
func NewCar(id, floors, startFloor int) *Car {
	return &Car{
		id:     id,
		floors: floors,
		floor:  startFloor,
		state:  Idle,
	}
}

// ID returns the car's stable identifier.
func (c *Car) ID() int { return c.id }

// Floor returns the current floor.
func (c *Car) Floor() int { return c.floor }

// State returns the movement state.
func (c *Car) State() MovementState { return c.state }

// Direction returns the travel direction implied by the movement state.
func (c *Car) Direction() Direction { return c.state.Direction() }

// IsIdle reports whether the car has nothing to do.
func (c *Car) IsIdle() bool { return c.state == Idle }

// Destinations returns a copy of the pending destination queue.
func (c *Car) Destinations() []int {
	out := make([]int, len(c.destinations))
	copy(out, c.destinations)
	return out
}

// Front returns the current travel target.
func (c *Car) Front() (int, bool) {
	if len(c.destinations) == 0 {
		return 0, false
	}
	return c.destinations[0], true
}

// SetDestination appends floor to the queue. It is legal in every state.
// SetDestination은 상태와 관계없이 목적지를 큐 끝에 추가합니다.
func (c *Car) SetDestination(floor int) {
	c.destinations = append(c.destinations, floor)
}

// MoveUp advances the car one floor up.
func (c *Car) MoveUp() { c.apply(EventMoveUp) }

// MoveDown advances the car one floor down.
func (c *Car) MoveDown() { c.apply(EventMoveDown) }

// Stop forces the car to Idle regardless of remaining destinations.
func (c *Car) Stop() { c.apply(EventStop) }

// apply feeds event to the state machine and reports whether anything changed.
// A move that would leave the building is dropped.
func (c *Car) apply(event MoveEvent) bool {
	next, delta := transition(c.state, event, len(c.destinations) == 0)
	floor := c.floor + delta
	if floor < 0 || floor >= c.floors {
		return false
	}
	changed := next != c.state || delta != 0
	c.state = next
	c.floor = floor
	return changed
}

// aim points the car at its queue front without moving it.
func (c *Car) aim() bool {
	front, ok := c.Front()
	if !ok {
		return false
	}
	return c.apply(headingFor(c.floor, front))
}

// popFront removes the current travel target.
func (c *Car) popFront() (int, bool) {
	front, ok := c.Front()
	if !ok {
		return 0, false
	}
	c.destinations = c.destinations[1:]
	if len(c.destinations) == 0 {
		c.destinations = nil
	}
	return front, true
}

// passes reports whether a car moving in dir would still pass floor.
func (c *Car) passes(floor int, dir Direction) bool {
	switch dir {
	case DirUp:
		return c.state == MovingUp && c.floor < floor
	case DirDown:
		return c.state == MovingDown && c.floor > floor
	}
	return false
}
