// File: internal/transport/transport_linux.go
//go:build linux

// Package transport, Linux implementation on raw non-blocking descriptors.
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package transport

import (
	"fmt"
	"io"
	"net"
	"os"
	"strconv"
	"time"

	"golang.org/x/sys/unix"

	"github.com/momentics/wireserve/api"
)

const listenBacklog = 128

// writeStallWait bounds one readiness wait while draining a blocked write.
const writeStallWait = 100 * time.Millisecond

// Listen binds a non-blocking TCP listening socket on addr ("host:port").
// Unparsable addresses and ports already in use fail here, synchronously.
func Listen(addr string) (api.Listener, error) {
	tcpAddr, err := net.ResolveTCPAddr("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("resolve %s: %w", addr, err)
	}
	domain, sa := sockaddrFor(tcpAddr)

	fd, err := unix.Socket(domain, unix.SOCK_STREAM|unix.SOCK_NONBLOCK|unix.SOCK_CLOEXEC, 0)
	if err != nil {
		return nil, os.NewSyscallError("socket", err)
	}
	if err := unix.SetsockoptInt(fd, unix.SOL_SOCKET, unix.SO_REUSEADDR, 1); err != nil {
		unix.Close(fd)
		return nil, os.NewSyscallError("setsockopt", err)
	}
	if err := unix.Bind(fd, sa); err != nil {
		unix.Close(fd)
		return nil, fmt.Errorf("bind %s: %w", addr, err)
	}
	if err := unix.Listen(fd, listenBacklog); err != nil {
		unix.Close(fd)
		return nil, os.NewSyscallError("listen", err)
	}
	return &sockListener{fd: fd}, nil
}

func sockaddrFor(a *net.TCPAddr) (int, unix.Sockaddr) {
	ip := a.IP
	if ip == nil {
		ip = net.IPv4zero
	}
	if ip4 := ip.To4(); ip4 != nil {
		sa := &unix.SockaddrInet4{Port: a.Port}
		copy(sa.Addr[:], ip4)
		return unix.AF_INET, sa
	}
	sa := &unix.SockaddrInet6{Port: a.Port}
	copy(sa.Addr[:], ip.To16())
	return unix.AF_INET6, sa
}

type sockListener struct {
	fd int
}

func (l *sockListener) Accept() (api.Conn, error) {
	for {
		nfd, sa, err := unix.Accept4(l.fd, unix.SOCK_NONBLOCK|unix.SOCK_CLOEXEC)
		switch err {
		case nil:
			return &sockConn{fd: nfd, peer: sockaddrString(sa)}, nil
		case unix.EINTR:
			continue
		case unix.EAGAIN:
			return nil, api.ErrWouldBlock
		case unix.EBADF, unix.EINVAL:
			return nil, api.ErrListenerClosed
		default:
			return nil, os.NewSyscallError("accept", err)
		}
	}
}

func (l *sockListener) WaitReady(timeout time.Duration) error {
	return waitFor(l.fd, unix.POLLIN, timeout)
}

func (l *sockListener) Addr() string {
	sa, err := unix.Getsockname(l.fd)
	if err != nil {
		return ""
	}
	return sockaddrString(sa)
}

func (l *sockListener) Close() error {
	return unix.Close(l.fd)
}

// sockConn is one accepted non-blocking connection.
type sockConn struct {
	fd   int
	peer string
}

func (c *sockConn) Read(p []byte) (int, error) {
	for {
		n, err := unix.Read(c.fd, p)
		switch err {
		case nil:
			if n == 0 {
				return 0, io.EOF
			}
			return n, nil
		case unix.EINTR:
			continue
		case unix.EAGAIN:
			return 0, api.ErrWouldBlock
		default:
			return 0, os.NewSyscallError("read", err)
		}
	}
}

// Write sends all of p. Transient would-block conditions are waited out in
// poll(2) rather than surfaced.
func (c *sockConn) Write(p []byte) (int, error) {
	written := 0
	for written < len(p) {
		n, err := unix.Write(c.fd, p[written:])
		switch err {
		case nil:
			written += n
		case unix.EINTR:
		case unix.EAGAIN:
			if werr := waitFor(c.fd, unix.POLLOUT, writeStallWait); werr != nil {
				return written, werr
			}
		default:
			return written, os.NewSyscallError("write", err)
		}
	}
	return written, nil
}

func (c *sockConn) WaitReady(timeout time.Duration) error {
	return waitFor(c.fd, unix.POLLIN, timeout)
}

func (c *sockConn) RemoteAddr() string {
	return c.peer
}

// Shutdown closes both directions while keeping the descriptor.
func (c *sockConn) Shutdown() error {
	if err := unix.Shutdown(c.fd, unix.SHUT_RDWR); err != nil {
		return os.NewSyscallError("shutdown", err)
	}
	return nil
}

func (c *sockConn) Close() error {
	return unix.Close(c.fd)
}

// waitFor parks in poll(2) until fd reports events or timeout elapses.
// Returning on timeout is not an error; the caller's loop decides what next.
func waitFor(fd int, events int16, timeout time.Duration) error {
	fds := []unix.PollFd{{Fd: int32(fd), Events: events}}
	_, err := unix.Poll(fds, int(timeout.Milliseconds()))
	if err != nil && err != unix.EINTR {
		return os.NewSyscallError("poll", err)
	}
	return nil
}

func sockaddrString(sa unix.Sockaddr) string {
	switch a := sa.(type) {
	case *unix.SockaddrInet4:
		return net.JoinHostPort(net.IP(a.Addr[:]).String(), strconv.Itoa(a.Port))
	case *unix.SockaddrInet6:
		return net.JoinHostPort(net.IP(a.Addr[:]).String(), strconv.Itoa(a.Port))
	default:
		return ""
	}
}
