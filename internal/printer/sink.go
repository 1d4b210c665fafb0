// Package printer transmits rendered labels to a network label printer over a raw
// TCP socket (port 9100 by convention).
package printer

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"strconv"
	"time"
)

// DefaultPort is the conventional raw-socket printing port.
const DefaultPort = 9100

const defaultTimeout = 5 * time.Second

// Dialer opens network connections. *net.Dialer satisfies it.
type Dialer interface {
	DialContext(ctx context.Context, network, address string) (net.Conn, error)
}

// Sink sends documents to a single printer. Each call opens its own connection.
type Sink struct {
	addr    string
	timeout time.Duration
	dialer  Dialer
	log     *slog.Logger
}

// NewSink creates a Sink for host:port. A non-positive timeout falls back to five seconds.
func NewSink(host string, port int, timeout time.Duration, log *slog.Logger) *Sink {
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	return NewSinkWithDialer(&net.Dialer{Timeout: timeout}, host, port, timeout, log)
}

// NewSinkWithDialer allows injecting a custom dialer.
func NewSinkWithDialer(dialer Dialer, host string, port int, timeout time.Duration, log *slog.Logger) *Sink {
	if port <= 0 {
		port = DefaultPort
	}
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	return &Sink{
		addr:    net.JoinHostPort(host, strconv.Itoa(port)),
		timeout: timeout,
		dialer:  dialer,
		log:     log,
	}
}

// Addr returns the printer address.
func (s *Sink) Addr() string {
	return s.addr
}

// Send writes payload to the printer in full. It reports false on any connection or
// write failure; the cause is logged, never returned.
func (s *Sink) Send(ctx context.Context, payload []byte) bool {
	if err := s.send(ctx, payload); err != nil {
		s.log.ErrorContext(ctx, "Printing error", "printer", s.addr, "bytes", len(payload), "error", err)
		return false
	}

	s.log.DebugContext(ctx, "Document sent to printer", "printer", s.addr, "bytes", len(payload))

	return true
}

// Probe checks that the printer accepts connections.
func (s *Sink) Probe(ctx context.Context) error {
	conn, err := s.dial(ctx)
	if err != nil {
		return err
	}

	return conn.Close()
}

func (s *Sink) send(ctx context.Context, payload []byte) error {
	conn, err := s.dial(ctx)
	if err != nil {
		return err
	}
	defer conn.Close()

	if err = conn.SetWriteDeadline(time.Now().Add(s.timeout)); err != nil {
		return fmt.Errorf("failed to set write deadline: %w", err)
	}

	// net.Conn.Write returns an error for any short write.
	if _, err = conn.Write(payload); err != nil {
		return fmt.Errorf("failed to write to printer: %w", err)
	}

	return nil
}

func (s *Sink) dial(ctx context.Context) (net.Conn, error) {
	dialCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	conn, err := s.dialer.DialContext(dialCtx, "tcp", s.addr)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to printer %s: %w", s.addr, err)
	}

	return conn, nil
}
