// File: internal/transport/transport_other.go
//go:build !linux

// Package transport, portable fallback on net with deadline-emulated
// non-blocking calls.
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package transport

import (
	"errors"
	"net"
	"time"

	"github.com/momentics/wireserve/api"
)

// Listen binds a TCP listening socket on addr. Would-block conditions are
// emulated with immediate deadlines; WaitReady degrades to a timed sleep.
func Listen(addr string) (api.Listener, error) {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, err
	}
	return &netListener{ln: ln.(*net.TCPListener)}, nil
}

type netListener struct {
	ln *net.TCPListener
}

func (l *netListener) Accept() (api.Conn, error) {
	if err := l.ln.SetDeadline(time.Now()); err != nil {
		return nil, err
	}
	conn, err := l.ln.AcceptTCP()
	if err != nil {
		return nil, mapNetErr(err)
	}
	return &netConn{conn: conn}, nil
}

func (l *netListener) WaitReady(timeout time.Duration) error {
	time.Sleep(timeout)
	return nil
}

func (l *netListener) Addr() string {
	return l.ln.Addr().String()
}

func (l *netListener) Close() error {
	return l.ln.Close()
}

type netConn struct {
	conn *net.TCPConn
}

func (c *netConn) Read(p []byte) (int, error) {
	if err := c.conn.SetReadDeadline(time.Now()); err != nil {
		return 0, err
	}
	n, err := c.conn.Read(p)
	if n > 0 {
		return n, nil
	}
	if err != nil {
		return 0, mapNetErr(err)
	}
	return n, nil
}

func (c *netConn) Write(p []byte) (int, error) {
	if err := c.conn.SetWriteDeadline(time.Time{}); err != nil {
		return 0, err
	}
	return c.conn.Write(p)
}

func (c *netConn) WaitReady(timeout time.Duration) error {
	time.Sleep(timeout)
	return nil
}

func (c *netConn) RemoteAddr() string {
	return c.conn.RemoteAddr().String()
}

// Shutdown closes both directions while keeping the descriptor.
func (c *netConn) Shutdown() error {
	return errors.Join(c.conn.CloseRead(), c.conn.CloseWrite())
}

func (c *netConn) Close() error {
	return c.conn.Close()
}

// mapNetErr folds net's timeout and closed-connection errors into the
// transport sentinels.
func mapNetErr(err error) error {
	var ne net.Error
	if errors.As(err, &ne) && ne.Timeout() {
		return api.ErrWouldBlock
	}
	if errors.Is(err, net.ErrClosed) {
		return api.ErrListenerClosed
	}
	return err
}
