// File: server/registry.go
// Package server
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package server

import (
	"sync"

	"github.com/eapache/queue"
)

// handle is the join handle of one connection task.
type handle struct {
	done chan struct{}
	err  error // abnormal-exit cause, written by the task before finish
}

func newHandle() *handle {
	return &handle{done: make(chan struct{})}
}

// finish marks the task as exited.
func (h *handle) finish() {
	close(h.done)
}

// join blocks until the task has exited and returns its abnormal-exit error,
// if any.
func (h *handle) join() error {
	<-h.done
	return h.err
}

// registry is the mutex-guarded collection of live task handles. It exists
// solely so Stop can wait for every spawned task; a joined handle is never
// left behind.
type registry struct {
	mu sync.Mutex
	q  *queue.Queue
}

func newRegistry() *registry {
	return &registry{q: queue.New()}
}

func (r *registry) add(h *handle) {
	r.mu.Lock()
	r.q.Add(h)
	r.mu.Unlock()
}

// drain removes and returns every registered handle, leaving the registry
// empty.
func (r *registry) drain() []*handle {
	r.mu.Lock()
	defer r.mu.Unlock()
	handles := make([]*handle, 0, r.q.Length())
	for r.q.Length() > 0 {
		handles = append(handles, r.q.Remove().(*handle))
	}
	return handles
}

func (r *registry) size() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.q.Length()
}
