// File: server/options.go
// Package server defines functional options for the Server.
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package server

import (
	"time"

	"github.com/charmbracelet/log"
)

// Option customizes a Server at construction.
type Option func(*Server)

// WithLogger replaces the default logger.
func WithLogger(l *log.Logger) Option {
	return func(s *Server) {
		s.log = l
	}
}

// WithReadBufferSize overrides the per-connection read buffer size.
func WithReadBufferSize(n int) Option {
	return func(s *Server) {
		s.cfg.ReadBufferSize = n
	}
}

// WithPollInterval overrides the readiness-wait cap.
func WithPollInterval(d time.Duration) Option {
	return func(s *Server) {
		s.cfg.PollInterval = d
	}
}
