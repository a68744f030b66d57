// File: protocol/message.go
// Package protocol
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package protocol

// EchoMessage carries an arbitrary text payload, echoed back verbatim.
type EchoMessage struct {
	Content string
}

// AddRequest asks the server to add two 32-bit signed integers.
type AddRequest struct {
	A int32
	B int32
}

// AddResponse carries the 32-bit sum of an AddRequest. Overflow wraps.
type AddResponse struct {
	Result int32
}

// Request is one decoded client message. At most one variant is set; a
// Request with no variant set decoded successfully but carried no recognized
// payload.
type Request struct {
	Echo *EchoMessage
	Add  *AddRequest
}

// Empty reports whether the request carries no recognized variant.
func (r *Request) Empty() bool {
	return r.Echo == nil && r.Add == nil
}

// Response is one server message. Exactly one variant is set by the server.
type Response struct {
	Echo *EchoMessage
	Add  *AddResponse
}

// Empty reports whether the response carries no recognized variant.
func (r *Response) Empty() bool {
	return r.Echo == nil && r.Add == nil
}
