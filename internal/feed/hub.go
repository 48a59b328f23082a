package feed

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"slices"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"
	"github.com/pkg/errors"

	"github.com/zeusync/hoopbot/internal/core/events/bus"
	"github.com/zeusync/hoopbot/internal/core/observability/log"
	"github.com/zeusync/hoopbot/pkg/generic"
)

var buffers = generic.NewPool(func() *bytes.Buffer { return new(bytes.Buffer) }, (*bytes.Buffer).Reset)

// Message is the JSON envelope sent to viewers for every bus event.
type Message struct {
	Type   string    `json:"type"`
	Source string    `json:"source"`
	Time   time.Time `json:"time"`
	Data   any       `json:"data"`
}

// Options configures the hub.
type Options struct {
	// AllowedOrigins restricts the Origin header; empty accepts any origin.
	AllowedOrigins []string
	WriteTimeout   time.Duration
	// SendBuffer is the per-viewer queue length. A viewer whose queue is full
	// is disconnected.
	SendBuffer int
}

func DefaultOptions() Options {
	return Options{
		WriteTimeout: 5 * time.Second,
		SendBuffer:   256,
	}
}

// Hub fans bus events out to websocket viewers.
type Hub struct {
	logger   log.Log
	opts     Options
	upgrader websocket.Upgrader

	mu      sync.RWMutex
	clients map[string]*connection
	events  bus.EventBus
	sub     bus.Subscription
	wg      sync.WaitGroup

	broadcasts uint64
	dropped    uint64
}

func NewHub(logger log.Log, opts Options) *Hub {
	if logger == nil {
		logger = log.NewNop()
	}
	if opts.SendBuffer <= 0 {
		opts.SendBuffer = DefaultOptions().SendBuffer
	}
	h := &Hub{
		logger:  logger,
		opts:    opts,
		clients: make(map[string]*connection),
	}
	h.upgrader = websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 4096,
		CheckOrigin:     h.checkOrigin,
	}
	return h
}

// Attach subscribes the hub to every event on events.
func (h *Hub) Attach(events bus.EventBus) error {
	sub, err := events.SubscribeAll(h.handle)
	if err != nil {
		return errors.Wrap(err, "subscribe feed")
	}
	h.mu.Lock()
	h.events, h.sub = events, sub
	h.mu.Unlock()
	return nil
}

func (h *Hub) handle(event bus.Event) error {
	return h.Broadcast(Message{
		Type:   event.Type(),
		Source: event.Source(),
		Time:   event.Timestamp(),
		Data:   event.Data(),
	})
}

// Broadcast encodes msg once and queues it for every viewer. Slow viewers are
// dropped rather than stalling the caller.
func (h *Hub) Broadcast(msg Message) error {
	buf := buffers.Get()
	defer buffers.Put(buf)
	if err := json.NewEncoder(buf).Encode(msg); err != nil {
		return errors.Wrapf(err, "encode %s", msg.Type)
	}
	// Every viewer queue keeps the slice, so it must not alias the pooled buffer.
	data := bytes.Clone(bytes.TrimSuffix(buf.Bytes(), []byte("\n")))
	atomic.AddUint64(&h.broadcasts, 1)

	var slow []*connection
	h.mu.RLock()
	for _, c := range h.clients {
		if !c.enqueue(data) {
			slow = append(slow, c)
		}
	}
	h.mu.RUnlock()

	for _, c := range slow {
		atomic.AddUint64(&h.dropped, 1)
		h.logger.Warn("dropping slow viewer", log.String("client_id", c.id))
		h.remove(c)
	}
	return nil
}

// ServeHTTP upgrades the request and registers the viewer.
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ws, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("websocket upgrade failed",
			log.String("remote", r.RemoteAddr),
			log.Error(err),
		)
		return
	}

	c := newConnection(ws, h.opts.SendBuffer, h.opts.WriteTimeout)
	h.mu.Lock()
	h.clients[c.id] = c
	h.mu.Unlock()
	h.logger.Info("viewer connected",
		log.String("client_id", c.id),
		log.String("remote", ws.RemoteAddr().String()),
	)

	h.wg.Add(2)
	go func() {
		defer h.wg.Done()
		if err := c.writeLoop(); err != nil {
			h.logger.Debug("viewer write ended", log.String("client_id", c.id), log.Error(err))
		}
		h.remove(c)
	}()
	go func() {
		defer h.wg.Done()
		if err := c.readLoop(); err != nil && !c.IsClosed() {
			h.logger.Debug("viewer read ended", log.String("client_id", c.id), log.Error(err))
		}
		h.remove(c)
	}()
}

func (h *Hub) remove(c *connection) {
	h.mu.Lock()
	_, ok := h.clients[c.id]
	delete(h.clients, c.id)
	h.mu.Unlock()
	if !ok {
		return
	}
	c.Close()
	h.logger.Info("viewer disconnected",
		log.String("client_id", c.id),
		log.Uint64("messages", atomic.LoadUint64(&c.messagesSent)),
		log.Duration("connected", time.Since(c.connectedAt)),
	)
}

// Clients is the number of connected viewers.
func (h *Hub) Clients() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// Stats returns the number of broadcasts and of dropped viewers.
func (h *Hub) Stats() (broadcasts, dropped uint64) {
	return atomic.LoadUint64(&h.broadcasts), atomic.LoadUint64(&h.dropped)
}

// Close detaches from the bus and disconnects every viewer.
func (h *Hub) Close() error {
	h.mu.Lock()
	events, sub := h.events, h.sub
	h.events, h.sub = nil, nil
	clients := make([]*connection, 0, len(h.clients))
	for _, c := range h.clients {
		clients = append(clients, c)
	}
	h.mu.Unlock()

	if events != nil {
		if err := events.Unsubscribe(sub); err != nil {
			h.logger.Warn("feed unsubscribe failed", log.Error(err))
		}
	}
	for _, c := range clients {
		h.remove(c)
	}
	h.wg.Wait()
	return nil
}

func (h *Hub) checkOrigin(r *http.Request) bool {
	if len(h.opts.AllowedOrigins) == 0 {
		return true
	}
	origin := r.Header.Get("Origin")
	return origin == "" || slices.Contains(h.opts.AllowedOrigins, origin)
}

// Serve runs an HTTP server exposing hub at path until ctx is done.
func Serve(ctx context.Context, addr, path string, hub *Hub, logger log.Log) error {
	if logger == nil {
		logger = log.NewNop()
	}
	mux := http.NewServeMux()
	mux.Handle(path, hub)
	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("feed listening", log.String("addr", addr), log.String("path", path))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return errors.Wrap(err, "feed server")
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return errors.Wrap(err, "shutdown feed")
	}
	if err := hub.Close(); err != nil {
		return err
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return errors.Wrap(err, "feed server")
	}
	return nil
}
