// File: internal/transport/doc.go
// Package transport
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Non-blocking TCP transport for wireserve, strictly separated by build tags.
// The Linux implementation works on raw descriptors via golang.org/x/sys/unix
// and waits for readiness in poll(2); other platforms fall back to net with
// deadline-emulated non-blocking calls.

package transport
