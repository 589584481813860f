// Package transport carries protocol messages between a browser tab and
// its live page.
package transport

import (
	"errors"
	"sync"
	"time"

	"github.com/northbeam/website/pkg/protocol"
)

var (
	ErrNotConnected     = errors.New("transport not connected")
	ErrConnectionClosed = errors.New("connection closed")
	ErrSendTimeout      = errors.New("send timeout")
	ErrTransportFull    = errors.New("transport buffer full")
	ErrOriginNotAllowed = errors.New("origin not allowed")
)

// Transport is a bidirectional message stream to a single browser tab.
type Transport interface {
	Send(msg *protocol.Message) error
	// Receive is never closed; select on Done as well.
	Receive() <-chan *protocol.Message
	Done() <-chan struct{}
	// Close sends what is queued, then closes with a handshake.
	Close() error
	// CloseNow sends what is queued, then drops the connection.
	CloseNow() error
}

// Config bounds a connection's frames and buffers and says which origins
// may open one.
type Config struct {
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	PingInterval time.Duration

	MaxMessageSize int64
	SendBuffer     int
	ReceiveBuffer  int

	// AllowedOrigins may connect besides the request's own host. "*"
	// allows any.
	AllowedOrigins []string
	// InsecureDevMode skips the origin check.
	InsecureDevMode bool
}

func DefaultConfig() Config {
	return Config{
		ReadTimeout:    time.Minute,
		WriteTimeout:   10 * time.Second,
		PingInterval:   30 * time.Second,
		MaxMessageSize: 64 * 1024,
		SendBuffer:     64,
		ReceiveBuffer:  64,
	}
}

// mailbox holds the queues and close signal behind a Transport.
type mailbox struct {
	out  chan *protocol.Message
	in   chan *protocol.Message
	done chan struct{}
	once sync.Once

	// flushed is closed once the writer has stopped.
	flushed chan struct{}
}

func newMailbox(send, receive int) *mailbox {
	return &mailbox{
		out:     make(chan *protocol.Message, send),
		in:      make(chan *protocol.Message, receive),
		done:    make(chan struct{}),
		flushed: make(chan struct{}),
	}
}

func (m *mailbox) Receive() <-chan *protocol.Message { return m.in }

func (m *mailbox) Done() <-chan struct{} { return m.done }

func (m *mailbox) closed() bool {
	select {
	case <-m.done:
		return true
	default:
		return false
	}
}

// shut closes done once and reports whether this call did it.
func (m *mailbox) shut() bool {
	first := false
	m.once.Do(func() {
		close(m.done)
		first = true
	})
	return first
}

// deliver queues an incoming message without blocking.
func (m *mailbox) deliver(msg *protocol.Message) error {
	if m.closed() {
		return ErrConnectionClosed
	}
	select {
	case m.in <- msg:
		return nil
	default:
		return ErrTransportFull
	}
}

// enqueue waits up to timeout for room in the outgoing queue.
func (m *mailbox) enqueue(msg *protocol.Message, timeout time.Duration) error {
	if m.closed() {
		return ErrConnectionClosed
	}
	timer := time.NewTimer(timeout)
	defer timer.Stop()
	select {
	case m.out <- msg:
		return nil
	case <-m.done:
		return ErrConnectionClosed
	case <-timer.C:
		return ErrSendTimeout
	}
}
