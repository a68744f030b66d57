// File: server/types.go
// Package server implements the wireserve connection-lifecycle and dispatch
// engine: accept loop, per-connection handler tasks, and cooperative
// shutdown that drains every task.
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package server

import (
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"

	"github.com/momentics/wireserve/api"
)

// Config holds server tuning parameters.
type Config struct {
	// ReadBufferSize is the per-connection read buffer. One read is expected
	// to carry one whole encoded message.
	ReadBufferSize int

	// PollInterval caps every readiness wait, and with it the shutdown
	// latency of idle tasks.
	PollInterval time.Duration
}

// DefaultConfig returns the stock parameters.
func DefaultConfig() *Config {
	return &Config{
		ReadBufferSize: 512,
		PollInterval:   10 * time.Millisecond,
	}
}

// Server owns the listening socket, the running flag, and the registry of
// live connection tasks. Construct with New; a zero Server is not usable.
type Server struct {
	cfg      *Config
	log      *log.Logger
	listener api.Listener
	registry *registry

	running atomic.Bool
	done    chan struct{}
}
