// Package api
// Author: momentics <momentics@gmail.com>
//
// Common error values shared by transports and the server.

package api

import "errors"

var (
	// ErrWouldBlock reports that a non-blocking accept or read found no
	// connection or data ready. It is an expected condition, not a failure.
	ErrWouldBlock = errors.New("operation would block")

	// ErrListenerClosed reports an accept attempt on a closed listener.
	ErrListenerClosed = errors.New("listener is closed")
)
