// File: protocol/doc.go
// Package protocol
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Message schema and binary codec for wireserve. Messages travel in the
// protobuf wire format so peers generated from the same schema interoperate:
// a request is a one-of over EchoMessage and AddRequest, a response is a
// one-of over EchoMessage and AddResponse. There is no framing layer; one
// encoded message is expected per socket read.

package protocol
