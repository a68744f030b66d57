// File: client/client.go
// Package client is a small synchronous client for the wireserve protocol,
// intended for tests and examples. One request is answered by one response;
// the client never pipelines.
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package client

import (
	"errors"
	"fmt"
	"net"
	"time"

	"github.com/momentics/wireserve/protocol"
)

const readBufferSize = 512

// ErrNotConnected reports use of a client before Connect or after
// Disconnect.
var ErrNotConnected = errors.New("client is not connected")

// Client speaks the wireserve request/response protocol over one TCP
// connection. The configured timeout applies to connect, send, and receive
// individually.
type Client struct {
	addr    string
	timeout time.Duration
	conn    net.Conn
}

// New returns an unconnected client for addr.
func New(addr string, timeout time.Duration) *Client {
	return &Client{addr: addr, timeout: timeout}
}

// Connect dials the server.
func (c *Client) Connect() error {
	conn, err := net.DialTimeout("tcp", c.addr, c.timeout)
	if err != nil {
		return fmt.Errorf("connect %s: %w", c.addr, err)
	}
	c.conn = conn
	return nil
}

// Send encodes req and writes it as one message.
func (c *Client) Send(req *protocol.Request) error {
	if c.conn == nil {
		return ErrNotConnected
	}
	if err := c.conn.SetWriteDeadline(time.Now().Add(c.timeout)); err != nil {
		return err
	}
	if _, err := c.conn.Write(protocol.EncodeRequest(req)); err != nil {
		return fmt.Errorf("send: %w", err)
	}
	return nil
}

// Receive reads one response message, waiting up to the configured timeout.
func (c *Client) Receive() (*protocol.Response, error) {
	if c.conn == nil {
		return nil, ErrNotConnected
	}
	if err := c.conn.SetReadDeadline(time.Now().Add(c.timeout)); err != nil {
		return nil, err
	}
	buf := make([]byte, readBufferSize)
	n, err := c.conn.Read(buf)
	if err != nil {
		return nil, fmt.Errorf("receive: %w", err)
	}
	return protocol.DecodeResponse(buf[:n])
}

// Disconnect closes the connection. Subsequent sends and receives fail with
// ErrNotConnected.
func (c *Client) Disconnect() error {
	if c.conn == nil {
		return nil
	}
	err := c.conn.Close()
	c.conn = nil
	return err
}
