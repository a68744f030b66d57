// File: api/doc.go
// Package api
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Shared interfaces and sentinel errors for wireserve. The package carries no
// implementation: transports satisfy the contracts, the server consumes them.

package api
