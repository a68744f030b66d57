// File: api/transport.go
// Package api
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package api

import "time"

// Conn is one accepted, non-blocking TCP connection. Each Conn is exclusively
// owned by a single handler task; none of the methods are safe for concurrent
// use.
type Conn interface {
	// Read fills p with whatever bytes are available. It returns
	// ErrWouldBlock when no data is ready and io.EOF when the peer has
	// performed an orderly close.
	Read(p []byte) (int, error)

	// Write sends all of p, waiting out transient would-block conditions
	// internally. A short write is always accompanied by an error.
	Write(p []byte) (int, error)

	// WaitReady blocks until the connection is readable or timeout elapses,
	// whichever comes first.
	WaitReady(timeout time.Duration) error

	// RemoteAddr reports the peer address, for diagnostics only.
	RemoteAddr() string

	// Shutdown closes both directions of the connection while keeping the
	// descriptor open.
	Shutdown() error

	Close() error
}

// Listener is a bound, non-blocking TCP listening socket.
type Listener interface {
	// Accept returns the next pending connection, ErrWouldBlock when none is
	// ready, or ErrListenerClosed once the listener has been closed.
	Accept() (Conn, error)

	// WaitReady blocks until a connection is pending or timeout elapses.
	WaitReady(timeout time.Duration) error

	// Addr reports the bound listen address.
	Addr() string

	Close() error
}
