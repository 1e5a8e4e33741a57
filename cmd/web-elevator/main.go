package main

import (
	"context"
	"embed"
	"encoding/json"
	"errors"
	"io/fs"
	"log"
	"log/slog"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"go-elevator-dispatch/pkg/config"
	"go-elevator-dispatch/pkg/elevator"

	"github.com/gorilla/websocket"
)

//go:embed static/*
var staticFiles embed.FS

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow all origins for development
	},
}

// Message types
// 메시지 타입 정의
type ClientMessage struct {
	Action    string           `json:"action"`
	Building  *config.Building `json:"building,omitempty"`
	Car       int              `json:"car,omitempty"`
	Floor     int              `json:"floor"`
	Direction string           `json:"direction,omitempty"`
}

type ServerMessage struct {
	Type      string               `json:"type"`
	EventType string               `json:"eventType,omitempty"`
	CarID     int                  `json:"carId,omitempty"`
	Payload   interface{}          `json:"payload,omitempty"`
	Timestamp string               `json:"timestamp,omitempty"`
	Error     string               `json:"error,omitempty"`
	Floors    int                  `json:"floors,omitempty"`
	Ticks     uint64               `json:"ticks"`
	Running   bool                 `json:"running"`
	Cars      []elevator.CarStatus `json:"cars,omitempty"`
}

// ElevatorSession manages a WebSocket connection with one building.
// The session is the external driver: it owns the clock and decides when to Step.
// ElevatorSession은 WebSocket 연결과 건물 인스턴스를 관리합니다.
type ElevatorSession struct {
	conn     *websocket.Conn
	app      *config.AppConfig
	system   *elevator.System
	mu       sync.Mutex
	writeMu  sync.Mutex
	done     chan struct{}
	stopSys  context.CancelFunc // stops the event listener of the current system
	stopTick context.CancelFunc // stops the clock, nil when paused
	running  atomic.Bool
}

func NewElevatorSession(conn *websocket.Conn, app *config.AppConfig) *ElevatorSession {
	return &ElevatorSession{
		conn: conn,
		app:  app,
		done: make(chan struct{}),
	}
}

func (s *ElevatorSession) HandleMessages() {
	slog.Info("Session started", "remote_addr", s.conn.RemoteAddr())
	defer func() {
		close(s.done)
		s.mu.Lock()
		s.shutdown()
		s.mu.Unlock()
		_ = s.conn.Close()
		slog.Info("Session ended", "remote_addr", s.conn.RemoteAddr())
	}()

	for {
		_, message, err := s.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				slog.Error("WebSocket read error", "error", err)
			}
			return
		}

		var msg ClientMessage
		if err := json.Unmarshal(message, &msg); err != nil {
			slog.Warn("Failed to parse message", "error", err)
			s.sendError(err)
			continue
		}

		s.handleAction(msg)
	}
}

func (s *ElevatorSession) handleAction(msg ClientMessage) {
	s.mu.Lock()
	defer s.mu.Unlock()

	slog.Debug("Action received", "action", msg.Action, "payload", msg)

	if msg.Action == "init" {
		s.initSystem(msg.Building)
		return
	}
	if s.system == nil {
		s.sendError(errors.New("not initialized"))
		return
	}

	switch msg.Action {
	case "requestElevator":
		if _, err := s.system.RequestElevator(msg.Floor, elevator.Direction(msg.Direction)); err != nil {
			// The driver decides whether to retry; we only report.
			slog.Warn("Hall call failed via WS", "floor", msg.Floor, "direction", msg.Direction, "error", err)
			s.sendError(err)
		}
		s.sendState(s.system)
	case "selectFloor":
		if err := s.system.SelectFloor(msg.Car, msg.Floor); err != nil {
			slog.Warn("Car call failed via WS", "car", msg.Car, "floor", msg.Floor, "error", err)
			s.sendError(err)
		}
		s.sendState(s.system)
	case "step":
		s.system.Step()
		s.sendState(s.system)
	case "start":
		s.startClock()
		s.sendState(s.system)
	case "stop":
		s.stopClock()
		s.sendState(s.system)
	case "getState":
		s.sendState(s.system)
	default:
		s.sendError(errors.New("unknown action " + msg.Action))
	}
}

// initSystem replaces the building. Without a payload the configured building is used.
func (s *ElevatorSession) initSystem(b *config.Building) {
	building := config.DefaultBuilding()
	if b != nil {
		building = *b
	} else if s.app != nil {
		loaded, err := s.app.LoadBuilding()
		if err != nil {
			slog.Error("Failed to load building", "error", err)
			s.sendError(err)
			return
		}
		building = loaded
	}

	sys, err := elevator.New(building.ElevatorConfig())
	if err != nil {
		slog.Error("Failed to initialize system", "error", err)
		s.sendError(err)
		return
	}

	// Stop existing system if any
	s.shutdown()
	s.system = sys

	// Subscribe to events
	// 이벤트 구독
	ctx, cancel := context.WithCancel(context.Background())
	s.stopSys = cancel
	go s.eventListener(ctx, sys)

	slog.Info("System initialized", "floors", building.Floors, "cars", len(building.Cars))

	s.sendState(sys)
}

// shutdown stops the clock and the event listener. Caller holds s.mu.
func (s *ElevatorSession) shutdown() {
	s.stopClock()
	if s.stopSys != nil {
		s.stopSys()
		s.stopSys = nil
	}
}

// startClock begins calling Step at the configured interval. Caller holds s.mu.
func (s *ElevatorSession) startClock() {
	if s.stopTick != nil {
		return
	}
	interval := time.Second
	if s.app != nil {
		interval = s.app.TickInterval
	}

	ctx, cancel := context.WithCancel(context.Background())
	s.stopTick = cancel
	s.running.Store(true)
	go s.runClock(ctx, s.system, interval)
	slog.Info("Clock started", "interval", interval)
}

// stopClock pauses the clock. Caller holds s.mu.
func (s *ElevatorSession) stopClock() {
	if s.stopTick == nil {
		return
	}
	s.stopTick()
	s.stopTick = nil
	s.running.Store(false)
	slog.Info("Clock stopped")
}

// runClock drives the engine until ctx is cancelled.
func (s *ElevatorSession) runClock(ctx context.Context, sys *elevator.System, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			sys.Step()
			s.sendState(sys)
		}
	}
}

func (s *ElevatorSession) eventListener(ctx context.Context, sys *elevator.System) {
	eventCh := sys.Events()
	for {
		select {
		case <-s.done:
			return
		case <-ctx.Done():
			return
		case event := <-eventCh:
			s.sendEvent(event)
		}
	}
}

func (s *ElevatorSession) sendState(sys *elevator.System) {
	if sys == nil {
		return
	}

	cars, err := sys.Snapshot()
	if err != nil {
		slog.Error("Failed to snapshot system", "error", err)
		return
	}

	msg := ServerMessage{
		Type:    "state",
		Floors:  sys.Config.Floors,
		Ticks:   sys.Ticks(),
		Running: s.running.Load(),
		Cars:    cars,
	}

	s.writeJSON(msg)
}

func (s *ElevatorSession) sendEvent(event elevator.Event) {
	msg := ServerMessage{
		Type:      "event",
		EventType: string(event.Type),
		CarID:     event.CarID,
		Payload:   event.Payload,
		Timestamp: event.Timestamp.Format("15:04:05"),
	}

	s.writeJSON(msg)
}

func (s *ElevatorSession) sendError(err error) {
	s.writeJSON(ServerMessage{Type: "error", Error: err.Error()})
}

// writeJSON serializes writers; gorilla connections allow one concurrent writer.
func (s *ElevatorSession) writeJSON(msg ServerMessage) {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()
	if err := s.conn.WriteJSON(msg); err != nil {
		slog.Error("Failed to write JSON message", "error", err)
	}
}

func newHandler(app *config.AppConfig) (http.Handler, error) {
	// Serve static files from embedded filesystem
	staticFS, err := fs.Sub(staticFiles, "static")
	if err != nil {
		return nil, err
	}

	mux := http.NewServeMux()
	mux.Handle("/", http.FileServer(http.FS(staticFS)))
	mux.HandleFunc("/ws", func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			slog.Error("WebSocket upgrade failed", "error", err)
			return
		}

		session := NewElevatorSession(conn, app)
		session.HandleMessages()
	})
	return mux, nil
}

func main() {
	cfg, err := config.LoadApp(".env")
	if err != nil {
		log.Fatal(err)
	}

	handler, err := newHandler(cfg)
	if err != nil {
		log.Fatal(err)
	}

	addr := ":" + cfg.Port
	slog.Info("Starting elevator dispatch server", "addr", addr, "tick", cfg.TickInterval)
	slog.Info("Open http://localhost:" + cfg.Port + " in your browser")

	if err := http.ListenAndServe(addr, handler); err != nil {
		log.Fatal(err)
	}
}
