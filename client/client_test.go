// File: client/client_test.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package client

import (
	"errors"
	"testing"
	"time"

	"github.com/momentics/wireserve/protocol"
)

func TestUnconnectedClient(t *testing.T) {
	c := New("127.0.0.1:1", time.Second)

	err := c.Send(&protocol.Request{Echo: &protocol.EchoMessage{Content: "hi"}})
	if !errors.Is(err, ErrNotConnected) {
		t.Errorf("Send = %v, want ErrNotConnected", err)
	}

	if _, err := c.Receive(); !errors.Is(err, ErrNotConnected) {
		t.Errorf("Receive = %v, want ErrNotConnected", err)
	}

	if err := c.Disconnect(); err != nil {
		t.Errorf("Disconnect of unconnected client = %v, want nil", err)
	}
}

func TestConnectRefused(t *testing.T) {
	// Nothing listens on the discard port.
	c := New("127.0.0.1:1", 100*time.Millisecond)
	if err := c.Connect(); err == nil {
		t.Error("Connect succeeded against a closed port")
	}
}
