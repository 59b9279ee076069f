package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"

	"github.com/zeusync/collider/internal/core/observability/log"
)

// Config holds viewer hub configuration
type Config struct {
	// Network settings
	ListenAddr string `json:"listen_addr" yaml:"listen_addr"`
	Path       string `json:"path" yaml:"path"`
	MaxViewers int    `json:"max_viewers" yaml:"max_viewers"`

	// Message settings
	WriteTimeout      time.Duration `json:"write_timeout" yaml:"write_timeout"`
	MessageBufferSize int           `json:"message_buffer_size" yaml:"message_buffer_size"`
}

// DefaultConfig returns default hub configuration
func DefaultConfig() Config {
	return Config{
		ListenAddr:        "127.0.0.1:8080",
		Path:              "/ws",
		MaxViewers:        256,
		WriteTimeout:      5 * time.Second,
		MessageBufferSize: 16,
	}
}

// Stats holds hub counters
type Stats struct {
	Viewers       int    `json:"viewers"`
	FramesSent    uint64 `json:"frames_sent"`
	FramesDropped uint64 `json:"frames_dropped"`
}

type viewer struct {
	conn *websocket.Conn
	send chan []byte
	once sync.Once
}

func (v *viewer) close() {
	v.once.Do(func() {
		close(v.send)
	})
}

// Hub streams JSON frames to every connected websocket viewer. Viewers only
// receive; anything they send is read and discarded.
type Hub struct {
	config   Config
	logger   log.Log
	upgrader websocket.Upgrader

	mu        sync.RWMutex
	viewers   map[*viewer]struct{}
	lastFrame []byte

	httpServer *http.Server
	listener   net.Listener
	running    int32
	closed     int32

	framesSent    atomic.Uint64
	framesDropped atomic.Uint64
}

func NewHub(config Config, logger log.Log) *Hub {
	if logger == nil {
		logger = log.Provide()
	}
	if config.MessageBufferSize <= 0 {
		config.MessageBufferSize = 1
	}
	return &Hub{
		config: config,
		logger: logger.With(log.String("component", "server.hub")),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(*http.Request) bool { return true },
		},
		viewers: make(map[*viewer]struct{}),
	}
}

// ServeHTTP upgrades the request and keeps the viewer until it disconnects.
// A new viewer immediately receives the most recent frame.
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if atomic.LoadInt32(&h.closed) == 1 {
		http.Error(w, ErrServerClosed.Error(), http.StatusServiceUnavailable)
		return
	}
	if h.config.MaxViewers > 0 && h.Viewers() >= h.config.MaxViewers {
		http.Error(w, ErrMaxViewersReached.Error(), http.StatusServiceUnavailable)
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("Upgrade failed", log.Error(err))
		return
	}

	v := &viewer{
		conn: conn,
		send: make(chan []byte, h.config.MessageBufferSize),
	}

	h.mu.Lock()
	h.viewers[v] = struct{}{}
	if h.lastFrame != nil {
		v.send <- h.lastFrame
	}
	count := len(h.viewers)
	h.mu.Unlock()

	h.logger.Debug("Viewer connected",
		log.String("remote_addr", conn.RemoteAddr().String()),
		log.Int("viewers", count))

	go h.writeLoop(v)
	h.readLoop(v)
}

func (h *Hub) readLoop(v *viewer) {
	defer h.drop(v)
	for {
		if _, _, err := v.conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (h *Hub) writeLoop(v *viewer) {
	defer func() {
		_ = v.conn.Close()
	}()
	for frame := range v.send {
		if h.config.WriteTimeout > 0 {
			_ = v.conn.SetWriteDeadline(time.Now().Add(h.config.WriteTimeout))
		}
		if err := v.conn.WriteMessage(websocket.TextMessage, frame); err != nil {
			h.logger.Debug("Write failed", log.Error(err))
			h.drop(v)
			return
		}
		h.framesSent.Add(1)
	}
	_ = v.conn.WriteControl(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
		time.Now().Add(time.Second))
}

func (h *Hub) drop(v *viewer) {
	h.mu.Lock()
	_, ok := h.viewers[v]
	delete(h.viewers, v)
	h.mu.Unlock()
	if ok {
		v.close()
		h.logger.Debug("Viewer disconnected", log.String("remote_addr", v.conn.RemoteAddr().String()))
	}
}

// Broadcast encodes v once and queues it for every viewer. Viewers whose
// buffer is full skip the frame.
func (h *Hub) Broadcast(v any) error {
	frame, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode frame: %w", err)
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	h.lastFrame = frame
	for vw := range h.viewers {
		select {
		case vw.send <- frame:
		default:
			h.framesDropped.Add(1)
		}
	}
	return nil
}

func (h *Hub) Viewers() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.viewers)
}

func (h *Hub) Stats() Stats {
	return Stats{
		Viewers:       h.Viewers(),
		FramesSent:    h.framesSent.Load(),
		FramesDropped: h.framesDropped.Load(),
	}
}

// Addr returns the bound listener address, or nil before Start.
func (h *Hub) Addr() net.Addr {
	h.mu.RLock()
	defer h.mu.RUnlock()
	if h.listener == nil {
		return nil
	}
	return h.listener.Addr()
}

// Start listens on the configured address and serves viewers in the background.
func (h *Hub) Start(_ context.Context) error {
	if atomic.LoadInt32(&h.closed) == 1 {
		return ErrServerClosed
	}
	if h.config.Path == "" {
		return fmt.Errorf("%w: empty path", ErrInvalidConfig)
	}
	if !atomic.CompareAndSwapInt32(&h.running, 0, 1) {
		return ErrServerAlreadyRunning
	}

	listener, err := net.Listen("tcp", h.config.ListenAddr)
	if err != nil {
		atomic.StoreInt32(&h.running, 0)
		h.logger.Error("Failed to create listener", log.Error(err))
		return fmt.Errorf("%w: %w", ErrListenerFailed, err)
	}

	mux := http.NewServeMux()
	mux.Handle(h.config.Path, h)

	h.mu.Lock()
	h.listener = listener
	h.httpServer = &http.Server{Handler: mux, ReadHeaderTimeout: 5 * time.Second}
	srv := h.httpServer
	h.mu.Unlock()

	go func() {
		if err := srv.Serve(listener); err != nil && err != http.ErrServerClosed {
			h.logger.Error("Serve failed", log.Error(err))
		}
	}()

	h.logger.Info("Hub listening",
		log.String("addr", listener.Addr().String()),
		log.String("path", h.config.Path))
	return nil
}

// Stop shuts the listener down and disconnects every viewer.
func (h *Hub) Stop(ctx context.Context) error {
	if !atomic.CompareAndSwapInt32(&h.running, 1, 0) {
		return ErrServerNotRunning
	}

	h.logger.Info("Stopping hub")

	h.mu.RLock()
	srv := h.httpServer
	h.mu.RUnlock()

	h.disconnectAll()
	err := srv.Shutdown(ctx)

	h.logger.Info("Hub stopped", log.Uint64("frames_sent", h.framesSent.Load()))
	return err
}

// Close stops the hub if needed and rejects further viewers.
func (h *Hub) Close() error {
	if !atomic.CompareAndSwapInt32(&h.closed, 0, 1) {
		return nil
	}
	if atomic.LoadInt32(&h.running) == 1 {
		_ = h.Stop(context.Background())
	}
	h.disconnectAll()
	return nil
}

func (h *Hub) disconnectAll() {
	h.mu.Lock()
	viewers := h.viewers
	h.viewers = make(map[*viewer]struct{})
	h.mu.Unlock()

	for v := range viewers {
		v.close()
	}
}
