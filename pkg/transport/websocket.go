package transport

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/coder/websocket"

	"github.com/northbeam/website/pkg/logging"
	"github.com/northbeam/website/pkg/protocol"
)

// WebSocket is the server side of one live page's socket. Frames are
// encoded with the codec negotiated at upgrade time.
type WebSocket struct {
	*mailbox

	cfg    Config
	codec  protocol.Codec
	logger logging.Logger

	mu   sync.Mutex
	conn *websocket.Conn
}

// NewWebSocket prepares a transport; Upgrade connects it. A nil codec
// means the registry default.
func NewWebSocket(cfg Config, codec protocol.Codec) *WebSocket {
	if codec == nil {
		codec = protocol.DefaultCodecRegistry.Default()
	}
	return &WebSocket{
		mailbox: newMailbox(cfg.SendBuffer, cfg.ReceiveBuffer),
		cfg:     cfg,
		codec:   codec,
		logger:  logging.NopLogger{},
	}
}

func (t *WebSocket) SetLogger(logger logging.Logger) {
	if logger != nil {
		t.logger = logger
	}
}

func (t *WebSocket) Codec() protocol.Codec {
	return t.codec
}

// originAllowed accepts a missing Origin, the request's own host, and
// anything in AllowedOrigins matched by full origin or by host.
func (t *WebSocket) originAllowed(origin, host string) bool {
	if t.cfg.InsecureDevMode || origin == "" {
		return true
	}
	u, err := url.Parse(origin)
	if err != nil {
		return false
	}
	if u.Host == host {
		return true
	}
	for _, allowed := range t.cfg.AllowedOrigins {
		if allowed == "*" || allowed == origin {
			return true
		}
		if a, err := url.Parse(allowed); err == nil && a.Host != "" && a.Host == u.Host {
			return true
		}
	}
	return false
}

// Upgrade accepts the socket and starts its read, write and ping loops.
func (t *WebSocket) Upgrade(w http.ResponseWriter, r *http.Request) error {
	if !t.originAllowed(r.Header.Get("Origin"), r.Host) {
		http.Error(w, "origin not allowed", http.StatusForbidden)
		return ErrOriginNotAllowed
	}

	// The origin policy above replaces the library's own check.
	conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{InsecureSkipVerify: true})
	if err != nil {
		return fmt.Errorf("accept websocket: %w", err)
	}
	conn.SetReadLimit(t.cfg.MaxMessageSize)

	t.mu.Lock()
	t.conn = conn
	t.mu.Unlock()

	go t.readLoop(conn)
	go t.writeLoop(conn)
	go t.pingLoop(conn)
	return nil
}

// Send queues msg, waiting at most the write timeout for buffer room.
func (t *WebSocket) Send(msg *protocol.Message) error {
	if t.current() == nil {
		return ErrNotConnected
	}
	return t.enqueue(msg, t.cfg.WriteTimeout)
}

// Close flushes queued messages and sends a normal closure, waiting for
// the browser's reply. Further calls do nothing.
func (t *WebSocket) Close() error {
	return t.close(func(conn *websocket.Conn) error {
		return conn.Close(websocket.StatusNormalClosure, "closing")
	})
}

// CloseNow flushes queued messages and drops the connection without a
// close handshake.
func (t *WebSocket) CloseNow() error {
	return t.close((*websocket.Conn).CloseNow)
}

func (t *WebSocket) close(fn func(*websocket.Conn) error) error {
	if !t.shut() {
		return nil
	}
	t.mu.Lock()
	conn := t.conn
	t.conn = nil
	t.mu.Unlock()

	if conn == nil {
		return nil
	}
	<-t.flushed
	return fn(conn)
}

func (t *WebSocket) current() *websocket.Conn {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.conn
}

func (t *WebSocket) readLoop(conn *websocket.Conn) {
	defer t.Close()

	for {
		ctx, cancel := context.WithTimeout(context.Background(), t.cfg.ReadTimeout)
		_, data, err := conn.Read(ctx)
		cancel()
		if err != nil {
			switch websocket.CloseStatus(err) {
			case websocket.StatusNormalClosure, websocket.StatusGoingAway:
			default:
				t.logger.Debug("websocket read ended", logging.Err(err))
			}
			return
		}

		msg, err := t.codec.Decode(data)
		if err != nil {
			t.logger.Debug("dropping undecodable frame", logging.String("codec", t.codec.Name()), logging.Err(err))
			continue
		}

		switch err := t.deliver(msg); err {
		case nil:
		case ErrConnectionClosed:
			return
		default:
			t.logger.Warn("receive buffer full, dropping message", logging.String("event", msg.Event))
		}
	}
}

// writeLoop sends queued messages. Once the transport is closed it sends
// whatever is still queued and stops.
func (t *WebSocket) writeLoop(conn *websocket.Conn) {
	defer close(t.flushed)

	for {
		select {
		case msg := <-t.out:
			if err := t.writeMessage(conn, msg); err != nil {
				t.shut()
				conn.CloseNow()
				return
			}
		case <-t.done:
			for {
				select {
				case msg := <-t.out:
					if err := t.writeMessage(conn, msg); err != nil {
						return
					}
				default:
					return
				}
			}
		}
	}
}

func (t *WebSocket) writeMessage(conn *websocket.Conn, msg *protocol.Message) error {
	data, err := t.codec.Encode(msg)
	if err != nil {
		t.logger.Error("encode outgoing message", logging.String("event", msg.Event), logging.Err(err))
		return nil
	}
	frame := websocket.MessageText
	if t.codec.Binary() {
		frame = websocket.MessageBinary
	}
	return t.write(func(ctx context.Context) error { return conn.Write(ctx, frame, data) })
}

// pingLoop keeps proxies from idling the socket out.
func (t *WebSocket) pingLoop(conn *websocket.Conn) {
	if t.cfg.PingInterval <= 0 {
		return
	}
	ticker := time.NewTicker(t.cfg.PingInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if err := t.write(conn.Ping); err != nil {
				t.logger.Debug("websocket ping failed", logging.Err(err))
			}
		case <-t.done:
			return
		}
	}
}

func (t *WebSocket) write(fn func(context.Context) error) error {
	ctx, cancel := context.WithTimeout(context.Background(), t.cfg.WriteTimeout)
	defer cancel()
	return fn(ctx)
}
