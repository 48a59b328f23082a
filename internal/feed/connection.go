package feed

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/pkg/errors"
)

// connection is one websocket viewer. Every write, the close frame included,
// happens on the writeLoop goroutine.
type connection struct {
	id          string
	conn        *websocket.Conn
	send        chan []byte
	connectedAt time.Time

	writeTimeout time.Duration
	closed       int32
	closeOnce    sync.Once
	done         chan struct{}

	messagesSent uint64
}

func newConnection(conn *websocket.Conn, buffer int, writeTimeout time.Duration) *connection {
	return &connection{
		id:           uuid.New().String(),
		conn:         conn,
		send:         make(chan []byte, buffer),
		connectedAt:  time.Now(),
		writeTimeout: writeTimeout,
		done:         make(chan struct{}),
	}
}

func (c *connection) IsClosed() bool {
	return atomic.LoadInt32(&c.closed) == 1
}

// enqueue hands data to the writer without blocking. It reports false when
// the queue is full.
func (c *connection) enqueue(data []byte) bool {
	if c.IsClosed() {
		return false
	}
	select {
	case c.send <- data:
		return true
	default:
		return false
	}
}

// writeLoop sends queued messages until Close is called or a write fails,
// then closes the socket.
func (c *connection) writeLoop() error {
	defer func() { _ = c.conn.Close() }()
	for {
		select {
		case <-c.done:
			_ = c.conn.SetWriteDeadline(time.Now().Add(time.Second))
			_ = c.conn.WriteMessage(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
			return nil
		case data := <-c.send:
			if err := c.write(data); err != nil {
				return err
			}
			atomic.AddUint64(&c.messagesSent, 1)
		}
	}
}

func (c *connection) write(data []byte) error {
	if c.writeTimeout > 0 {
		_ = c.conn.SetWriteDeadline(time.Now().Add(c.writeTimeout))
	}
	return errors.Wrap(c.conn.WriteMessage(websocket.TextMessage, data), "failed to write message")
}

// readLoop drains the socket so control frames are processed. Viewers never
// send anything meaningful; the loop only ends when the peer goes away.
func (c *connection) readLoop() error {
	c.conn.SetReadLimit(512)
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				return nil
			}
			return errors.Wrap(err, "failed to read message")
		}
	}
}

// Close stops the writer without blocking; writeLoop sends the close frame
// and releases the socket.
func (c *connection) Close() {
	c.closeOnce.Do(func() {
		atomic.StoreInt32(&c.closed, 1)
		close(c.done)
	})
}
