// Package elevator implements a multi-car elevator dispatch and movement engine.
// 이 패키지는 여러 대의 엘리베이터를 배차하고 이산 시간 단위로 이동시키는 엔진을 구현합니다.
// 시간의 흐름은 외부 드라이버가 Step 호출로 결정합니다.
package elevator

import (
	"fmt"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/tiendc/go-deepcopy"
)

// CarConfig describes one car at construction.
type CarConfig struct {
	ID         int
	StartFloor int
}

// Config holds immutable configuration parameters.
// Config는 시스템 생성 시 설정되며, 런타임 중에 변경되지 않습니다.
type Config struct {
	Floors      int         // 건물 층 수, 유효 층은 [0, Floors-1]
	Cars        []CarConfig // 카 목록
	EventBuffer int         // 이벤트 채널 버퍼 크기 (0이면 기본값)
}

const defaultEventBuffer = 1000

// CarStatus is a read-only view of one car.
type CarStatus struct {
	ID           int           `json:"id"`
	Floor        int           `json:"floor"`
	State        MovementState `json:"state"`
	Direction    Direction     `json:"direction"`
	Destinations []int         `json:"destinations"`
}

// System is the aggregate that owns every car and the dispatcher.
// All mutations are protected by one mutex so assignment and movement observe
// a consistent view of the building; changes are propagated via the Event channel.
//
// System은 모든 카와 디스패처를 소유합니다. 하나의 Mutex로 모든 상태 변경을 보호합니다.
type System struct {
	mu     sync.RWMutex
	Config Config

	cars       []*Car      // ascending id
	index      map[int]int // id -> slot in cars
	dispatcher *Dispatcher
	ticks      uint64

	// --- Observability ---
	logger            *slog.Logger
	eventCh           chan Event
	droppedEventCount uint64
}

// New initializes a System with strict validation.
// 잘못된 설정이 감지되면 즉시 에러를 반환합니다 (Fail Fast).
func New(config Config) (*System, error) {
	if config.Floors < 1 {
		return nil, fmt.Errorf("%w: floors must be positive, got %d", ErrInvalidConfig, config.Floors)
	}
	if len(config.Cars) == 0 {
		return nil, fmt.Errorf("%w: at least one car is required", ErrInvalidConfig)
	}
	if config.EventBuffer <= 0 {
		config.EventBuffer = defaultEventBuffer
	}

	cfgs := make([]CarConfig, len(config.Cars))
	copy(cfgs, config.Cars)
	sort.SliceStable(cfgs, func(i, j int) bool { return cfgs[i].ID < cfgs[j].ID })

	s := &System{
		Config:     config,
		cars:       make([]*Car, 0, len(cfgs)),
		index:      make(map[int]int, len(cfgs)),
		dispatcher: NewDispatcher(),
		logger:     slog.Default().With("component", "system"),
		eventCh:    make(chan Event, config.EventBuffer),
	}

	for _, cc := range cfgs {
		if _, dup := s.index[cc.ID]; dup {
			return nil, fmt.Errorf("%w: duplicate car id %d", ErrInvalidConfig, cc.ID)
		}
		if cc.StartFloor < 0 || cc.StartFloor >= config.Floors {
			return nil, fmt.Errorf("%w: car %d start floor %d outside [0, %d]",
				ErrInvalidConfig, cc.ID, cc.StartFloor, config.Floors-1)
		}
		s.index[cc.ID] = len(s.cars)
		s.cars = append(s.cars, NewCar(cc.ID, config.Floors, cc.StartFloor))
	}

	s.logger.Info("Elevator system initialized",
		"floors", config.Floors,
		"cars", len(s.cars),
	)
	return s, nil
}

// Events returns the read-only channel for state change notifications.
// Events는 상태 변경 알림을 위한 읽기 전용 채널을 반환합니다.
func (s *System) Events() <-chan Event {
	return s.eventCh
}

// DroppedEventCount returns diagnostic metric for channel health.
func (s *System) DroppedEventCount() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.droppedEventCount
}

// Ticks returns how many times Step has run.
func (s *System) Ticks() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.ticks
}

// PendingRequests returns the hall calls still waiting in the dispatch queue.
// Assignment is synchronous, so outside RequestElevator this is always zero.
func (s *System) PendingRequests() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.dispatcher.Pending()
}

// publishEvent sends an event without blocking the engine.
// 채널이 가득 차면 이벤트를 버리고 메트릭을 증가시킵니다.
func (s *System) publishEvent(eventType EventType, carID int, payload interface{}) {
	event := Event{
		Type:      eventType,
		CarID:     carID,
		Payload:   payload,
		Timestamp: time.Now(),
	}

	select {
	case s.eventCh <- event:
	default:
		s.droppedEventCount++
		if s.droppedEventCount%100 == 1 {
			s.logger.Error("Event Channel Saturated", "dropped", s.droppedEventCount, "type", eventType)
		}
	}
}

func (s *System) checkFloor(floor int) error {
	if floor < 0 || floor >= s.Config.Floors {
		return fmt.Errorf("floor %d outside [0, %d]: %w", floor, s.Config.Floors-1, ErrFloorOutOfRange)
	}
	return nil
}

// RequestElevator registers a hall call and assigns it to a car immediately.
// It returns the id of the assigned car. A failed assignment changes nothing.
// RequestElevator는 홀 호출을 등록하고 즉시 카를 배정합니다.
func (s *System) RequestElevator(floor int, direction Direction) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.checkFloor(floor); err != nil {
		s.logger.Warn("RequestElevator failed", "floor", floor, "error", err)
		return 0, err
	}
	if !direction.Valid() {
		s.logger.Warn("RequestElevator failed: invalid direction", "floor", floor, "direction", direction)
		return 0, fmt.Errorf("hall call at floor %d: %q: %w", floor, direction, ErrInvalidDirection)
	}

	s.dispatcher.Enqueue(NewExternalRequest(direction, floor))
	car, req, err := s.dispatcher.Assign(s.cars)
	if err != nil {
		s.logger.Warn("Hall call rejected", "floor", floor, "direction", direction, "error", err)
		return 0, err
	}

	s.logger.Info("Hall call assigned", "car", car.ID(), "floor", floor, "direction", direction)
	s.afterAppend(car, req)
	return car.ID(), nil
}

// SelectFloor registers a car call on the car with the given id.
// SelectFloor는 특정 카 내부에서 목적지 층을 등록합니다.
func (s *System) SelectFloor(carID, floor int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	car, ok := s.lookup(carID)
	if !ok {
		s.logger.Warn("SelectFloor failed: unknown car", "car", carID)
		return fmt.Errorf("select floor %d on car %d: %w", floor, carID, ErrUnknownCar)
	}
	if err := s.checkFloor(floor); err != nil {
		s.logger.Warn("SelectFloor failed", "car", carID, "floor", floor, "error", err)
		return err
	}

	req := NewInternalRequest(car, floor)
	car.SetDestination(req.Floor())
	s.logger.Info("Car call registered", "car", carID, "floor", floor, "direction", req.Direction())
	s.afterAppend(car, req)
	return nil
}

// afterAppend publishes the assignment and wakes an idle car toward its new target.
func (s *System) afterAppend(car *Car, req Request) {
	s.publishEvent(EventAssigned, car.ID(), AssignedPayload{
		Kind:      req.Kind(),
		Floor:     req.Floor(),
		Direction: req.Direction(),
	})
	if car.IsIdle() {
		s.applyAndPublish(car, car.aim)
	}
}

// Step advances every car by at most one floor.
// Cars are visited in ascending id order; each one only depends on its own queue.
// Step은 모든 카를 최대 한 층 이동시킵니다 (한 틱).
func (s *System) Step() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.ticks++
	for _, car := range s.cars {
		s.stepCar(car)
	}
}

func (s *System) stepCar(car *Car) {
	front, ok := car.Front()
	if !ok {
		return
	}

	// 1. 목표 방향으로 한 층 이동
	switch {
	case front > car.Floor():
		s.applyAndPublish(car, func() bool { return car.apply(EventMoveUp) })
	case front < car.Floor():
		s.applyAndPublish(car, func() bool { return car.apply(EventMoveDown) })
	}

	// 2. 도착 처리
	if car.Floor() != front {
		return
	}
	car.popFront()
	remaining := len(car.destinations)
	s.logger.Info("Arrived at floor", "car", car.ID(), "floor", front, "remaining", remaining)
	s.publishEvent(EventArrived, car.ID(), ArrivedPayload{Floor: front, Remaining: remaining})

	// 3. 큐가 비면 정지, 아니면 다음 목표로 방향 재설정
	if remaining == 0 {
		s.applyAndPublish(car, func() bool { return car.apply(EventStop) })
		return
	}
	s.applyAndPublish(car, car.aim)
}

// applyAndPublish runs a car mutation and emits floor/state events for what changed.
func (s *System) applyAndPublish(car *Car, mutate func() bool) {
	prevFloor, prevState := car.Floor(), car.State()
	if !mutate() {
		return
	}
	if car.Floor() != prevFloor {
		s.logger.Debug("Moving", "car", car.ID(), "floor", car.Floor(), "state", car.State())
		s.publishEvent(EventFloorChange, car.ID(), car.Floor())
	}
	if car.State() != prevState {
		s.logger.Info("State Changed", "car", car.ID(), "from", prevState, "to", car.State())
		s.publishEvent(EventStateChange, car.ID(), StateChangePayload{From: prevState, To: car.State()})
	}
}

func (s *System) lookup(id int) (*Car, bool) {
	i, ok := s.index[id]
	if !ok {
		return nil, false
	}
	return s.cars[i], true
}

// Car returns the status of a single car.
func (s *System) Car(id int) (CarStatus, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	car, ok := s.lookup(id)
	if !ok {
		return CarStatus{}, fmt.Errorf("car %d: %w", id, ErrUnknownCar)
	}
	return statusOf(car), nil
}

// CarIDs returns every car id in ascending order.
func (s *System) CarIDs() []int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ids := make([]int, len(s.cars))
	for i, c := range s.cars {
		ids[i] = c.ID()
	}
	return ids
}

// Snapshot returns a deep copy of every car's status, ordered by id.
// Snapshot은 모든 카 상태의 깊은 복사본을 반환합니다.
func (s *System) Snapshot() ([]CarStatus, error) {
	s.mu.RLock()
	statuses := make([]CarStatus, len(s.cars))
	for i, car := range s.cars {
		statuses[i] = CarStatus{
			ID:           car.ID(),
			Floor:        car.Floor(),
			State:        car.State(),
			Direction:    car.Direction(),
			Destinations: car.destinations,
		}
	}
	var out []CarStatus
	err := deepcopy.Copy(&out, &statuses)
	s.mu.RUnlock()
	if err != nil {
		return nil, fmt.Errorf("snapshot: %w", err)
	}
	return out, nil
}

func statusOf(car *Car) CarStatus {
	return CarStatus{
		ID:           car.ID(),
		Floor:        car.Floor(),
		State:        car.State(),
		Direction:    car.Direction(),
		Destinations: car.Destinations(),
	}
}
