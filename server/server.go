// File: server/server.go
// Package server
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package server

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/momentics/wireserve/api"
	"github.com/momentics/wireserve/internal/transport"
)

// ErrAlreadyRunning reports a second Run on a running server.
var ErrAlreadyRunning = errors.New("server already running")

// New binds a listening socket on addr and returns a stopped server.
// Binding failures (unparsable address, port in use) surface here,
// synchronously, before Run is ever called.
func New(addr string, opts ...Option) (*Server, error) {
	ln, err := transport.Listen(addr)
	if err != nil {
		return nil, err
	}
	s := &Server{
		cfg:      DefaultConfig(),
		log:      log.Default(),
		listener: ln,
		registry: newRegistry(),
		done:     make(chan struct{}),
	}
	for _, o := range opts {
		o(s)
	}
	return s, nil
}

// Addr reports the bound listen address.
func (s *Server) Addr() string {
	return s.listener.Addr()
}

// Run accepts connections until Stop is called, spawning one handler task per
// connection and registering its handle. Accept failures other than
// would-block are logged and retried; they never end the loop. Run blocks
// the caller until shutdown and then closes the listening socket.
func (s *Server) Run() error {
	if !s.running.CompareAndSwap(false, true) {
		return ErrAlreadyRunning
	}
	s.log.Info("server running", "addr", s.listener.Addr())

	for {
		select {
		case <-s.done:
			s.log.Info("server stopped")
			return s.listener.Close()
		default:
		}

		sock, err := s.listener.Accept()
		switch {
		case errors.Is(err, api.ErrWouldBlock):
			if err := s.listener.WaitReady(s.cfg.PollInterval); err != nil {
				s.log.Error("listener wait failed", "err", err)
			}
			continue
		case err != nil:
			s.log.Error("failed to accept connection", "err", err)
			continue
		}

		s.log.Info("client connected", "peer", sock.RemoteAddr())
		s.registry.add(s.spawn(sock))
	}
}

// Stop clears the running flag, then drains the registry and joins every
// previously spawned connection task. It returns only once all of them have
// exited. Stopping a server that is not running is a warning no-op.
func (s *Server) Stop() {
	if !s.running.CompareAndSwap(true, false) {
		s.log.Warn("server already stopped or never started")
		return
	}
	close(s.done)
	s.log.Info("shutdown signal sent")

	for _, h := range s.registry.drain() {
		if err := h.join(); err != nil {
			s.log.Error("connection task terminated abnormally", "err", err)
		}
	}
	s.log.Info("all connection tasks joined")
}

// spawn starts the handler task for sock and returns its join handle. Serve
// errors are logged here; only a panic counts as an abnormal termination for
// the joiner.
func (s *Server) spawn(sock api.Conn) *handle {
	h := newHandle()
	go func() {
		defer h.finish()
		defer func() {
			if r := recover(); r != nil {
				h.err = fmt.Errorf("handler panic: %v", r)
			}
		}()
		c := newConn(sock, s.cfg, s.log)
		if err := c.serve(s.done); err != nil {
			s.log.Error("connection failed", "peer", sock.RemoteAddr(), "err", err)
		}
	}()
	return h
}
