// File: server/server_test.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package server

import (
	"errors"
	"io"
	"math"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/momentics/wireserve/protocol"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.ReadBufferSize != 512 {
		t.Errorf("ReadBufferSize = %d, want 512", cfg.ReadBufferSize)
	}
	if cfg.PollInterval != 10*time.Millisecond {
		t.Errorf("PollInterval = %v, want 10ms", cfg.PollInterval)
	}
}

func TestRegistryDrainLeavesEmpty(t *testing.T) {
	r := newRegistry()
	for i := 0; i < 3; i++ {
		r.add(newHandle())
	}
	if got := r.size(); got != 3 {
		t.Fatalf("size = %d, want 3", got)
	}

	handles := r.drain()
	if len(handles) != 3 {
		t.Errorf("drained %d handles, want 3", len(handles))
	}
	if got := r.size(); got != 0 {
		t.Errorf("size after drain = %d, want 0", got)
	}
	if again := r.drain(); len(again) != 0 {
		t.Errorf("second drain returned %d handles, want 0", len(again))
	}
}

func TestHandleJoinReturnsRecordedError(t *testing.T) {
	h := newHandle()
	want := errors.New("boom")
	go func() {
		h.err = want
		h.finish()
	}()
	if got := h.join(); !errors.Is(got, want) {
		t.Errorf("join = %v, want %v", got, want)
	}

	clean := newHandle()
	go clean.finish()
	if got := clean.join(); got != nil {
		t.Errorf("join of clean handle = %v, want nil", got)
	}
}

func TestDispatch(t *testing.T) {
	c := &conn{log: log.New(io.Discard)}

	tests := []struct {
		name string
		req  *protocol.Request
		want *protocol.Response
	}{
		{
			"echo returns payload verbatim",
			&protocol.Request{Echo: &protocol.EchoMessage{Content: "Hello, World!"}},
			&protocol.Response{Echo: &protocol.EchoMessage{Content: "Hello, World!"}},
		},
		{
			"add",
			&protocol.Request{Add: &protocol.AddRequest{A: 10, B: 20}},
			&protocol.Response{Add: &protocol.AddResponse{Result: 30}},
		},
		{
			"add negatives",
			&protocol.Request{Add: &protocol.AddRequest{A: -10, B: -20}},
			&protocol.Response{Add: &protocol.AddResponse{Result: -30}},
		},
		{
			"add wraps on overflow",
			&protocol.Request{Add: &protocol.AddRequest{A: math.MaxInt32, B: 1}},
			&protocol.Response{Add: &protocol.AddResponse{Result: math.MinInt32}},
		},
		{
			"empty request owes no response",
			&protocol.Request{},
			nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := c.dispatch(tt.req)
			if tt.want == nil {
				if got != nil {
					t.Fatalf("dispatch = %+v, want nil", got)
				}
				return
			}
			if got == nil {
				t.Fatal("dispatch = nil, want response")
			}
			switch {
			case tt.want.Echo != nil:
				if got.Echo == nil || got.Echo.Content != tt.want.Echo.Content {
					t.Errorf("dispatch echo = %+v, want %+v", got.Echo, tt.want.Echo)
				}
			case tt.want.Add != nil:
				if got.Add == nil || got.Add.Result != tt.want.Add.Result {
					t.Errorf("dispatch add = %+v, want %+v", got.Add, tt.want.Add)
				}
			}
		})
	}
}

func TestNewRejectsBadAddress(t *testing.T) {
	if _, err := New("not-an-address", WithLogger(log.New(io.Discard))); err == nil {
		t.Error("New accepted an unparsable address")
	}
}

func TestNewRejectsPortInUse(t *testing.T) {
	first, err := New("127.0.0.1:0", WithLogger(log.New(io.Discard)))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if _, err := New(first.Addr(), WithLogger(log.New(io.Discard))); err == nil {
		t.Errorf("New accepted address %s twice", first.Addr())
	}
}

func TestStopWithoutRunIsNoOp(t *testing.T) {
	s, err := New("127.0.0.1:0", WithLogger(log.New(io.Discard)))
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	finished := make(chan struct{})
	go func() {
		s.Stop()
		s.Stop()
		close(finished)
	}()

	select {
	case <-finished:
	case <-time.After(time.Second):
		t.Fatal("Stop on a never-run server blocked")
	}
	if got := s.registry.size(); got != 0 {
		t.Errorf("registry size = %d, want 0", got)
	}
}
