package elevator

import (
	"fmt"
	"math"
)

// Dispatcher picks the car that services a hall call.
// It owns the FIFO of pending hall calls; each entry leaves the queue exactly
// once, at assignment time, and is never re-enqueued.
//
// Dispatcher는 홀 호출을 처리할 카를 선택합니다.
type Dispatcher struct {
	queue []ExternalRequest
}

// NewDispatcher returns a dispatcher with an empty queue.
func NewDispatcher() *Dispatcher {
	return &Dispatcher{}
}

// Enqueue appends a hall call to the dispatch queue.
func (d *Dispatcher) Enqueue(req ExternalRequest) {
	d.queue = append(d.queue, req)
}

// Pending returns the number of hall calls awaiting assignment.
func (d *Dispatcher) Pending() int {
	return len(d.queue)
}

// Assign dequeues the oldest hall call and hands it to a car.
// On success the car's destination queue gains the requested floor.
// On failure the request is dropped and no car is touched.
func (d *Dispatcher) Assign(cars []*Car) (*Car, ExternalRequest, error) {
	if len(d.queue) == 0 {
		return nil, ExternalRequest{}, fmt.Errorf("assign: dispatch queue empty: %w", ErrNoAvailableCar)
	}
	req := d.queue[0]
	d.queue = d.queue[1:]

	car, ok := Select(cars, req)
	if !ok {
		return nil, req, fmt.Errorf("assign %s: %w", req, ErrNoAvailableCar)
	}
	car.SetDestination(req.Floor())
	return car, req, nil
}

// Select applies the two-phase policy without side effects.
// cars must be in ascending id order; on equal distance the earlier car wins.
//
//  1. En-route: a car moving in the request's direction that will still pass
//     the requested floor, nearest first.
//  2. Nearest idle car.
func Select(cars []*Car, req ExternalRequest) (*Car, bool) {
	// Phase 1: En-route preference
	// 같은 방향으로 이동 중이며 요청 층을 아직 지나지 않은 카 우선
	var selected *Car
	minDist := math.MaxInt
	for _, c := range cars {
		if !c.passes(req.Floor(), req.Direction()) {
			continue
		}
		if dist := abs(req.Floor() - c.Floor()); dist < minDist {
			minDist = dist
			selected = c
		}
	}
	if selected != nil {
		return selected, true
	}

	// Phase 2: Nearest idle fallback
	minDist = math.MaxInt
	for _, c := range cars {
		if !c.IsIdle() {
			continue
		}
		if dist := abs(req.Floor() - c.Floor()); dist < minDist {
			minDist = dist
			selected = c
		}
	}
	return selected, selected != nil
}
