// File: server/conn.go
// Package server
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package server

import (
	"errors"
	"io"

	"github.com/charmbracelet/log"

	"github.com/momentics/wireserve/api"
	"github.com/momentics/wireserve/protocol"
)

// conn owns one accepted socket and runs its receive-decode-dispatch-respond
// cycle. Requests are served strictly in order: a response is fully written
// before the next read.
type conn struct {
	sock api.Conn
	cfg  *Config
	log  *log.Logger
}

func newConn(sock api.Conn, cfg *Config, logger *log.Logger) *conn {
	return &conn{
		sock: sock,
		cfg:  cfg,
		log:  logger.With("peer", sock.RemoteAddr()),
	}
}

// serve loops until the peer disconnects, an I/O error occurs, or done is
// closed. Decode failures are logged and skipped; the connection stays open
// and no response is sent for them.
//
// One read is assumed to carry exactly one encoded message; there is no
// length prefix on the wire.
func (c *conn) serve(done <-chan struct{}) error {
	defer c.teardown()

	buf := make([]byte, c.cfg.ReadBufferSize)
	for {
		select {
		case <-done:
			return nil
		default:
		}

		n, err := c.sock.Read(buf)
		switch {
		case errors.Is(err, api.ErrWouldBlock):
			if err := c.sock.WaitReady(c.cfg.PollInterval); err != nil {
				return err
			}
			continue
		case errors.Is(err, io.EOF):
			c.log.Info("client disconnected")
			return nil
		case err != nil:
			return err
		}

		req, err := protocol.DecodeRequest(buf[:n])
		if err != nil {
			c.log.Error("failed to decode request", "err", err)
			continue
		}
		resp := c.dispatch(req)
		if resp == nil {
			c.log.Error("request carries no recognized payload")
			continue
		}
		if _, err := c.sock.Write(protocol.EncodeResponse(resp)); err != nil {
			return err
		}
	}
}

// dispatch maps one recognized request to its response. The empty request
// maps to nil: no response is owed.
func (c *conn) dispatch(req *protocol.Request) *protocol.Response {
	switch {
	case req.Echo != nil:
		c.log.Debug("echo request", "content", req.Echo.Content)
		return &protocol.Response{Echo: req.Echo}
	case req.Add != nil:
		c.log.Debug("add request", "a", req.Add.A, "b", req.Add.B)
		// int32 addition wraps, matching the schema's 32-bit width.
		return &protocol.Response{Add: &protocol.AddResponse{Result: req.Add.A + req.Add.B}}
	}
	return nil
}

// teardown shuts the socket down in both directions and releases it.
// Shutdown failures are logged, never propagated.
func (c *conn) teardown() {
	if err := c.sock.Shutdown(); err != nil {
		c.log.Error("failed to shut down socket", "err", err)
	}
	if err := c.sock.Close(); err != nil {
		c.log.Error("failed to close socket", "err", err)
	}
}
