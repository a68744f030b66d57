// File: protocol/wire.go
// Package protocol implements the low-level protobuf wire primitives.
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package protocol

import "errors"

// ErrMalformed reports bytes that do not form a valid wire-format message.
var ErrMalformed = errors.New("protocol: malformed message")

// Wire types, per the protobuf encoding.
const (
	wireVarint = 0
	wireI64    = 1
	wireBytes  = 2
	wireSGroup = 3
	wireEGroup = 4
	wireI32    = 5
)

const maxVarintLen = 10

// appendVarint appends v in base-128 varint form.
func appendVarint(dst []byte, v uint64) []byte {
	for v >= 0x80 {
		dst = append(dst, byte(v)|0x80)
		v >>= 7
	}
	return append(dst, byte(v))
}

// appendKey appends the field key (field number and wire type).
func appendKey(dst []byte, field, wire int) []byte {
	return appendVarint(dst, uint64(field)<<3|uint64(wire))
}

// appendInt32 appends an int32 field. Zero values are omitted, negative
// values are sign-extended to ten bytes, both per the wire format.
func appendInt32(dst []byte, field int, v int32) []byte {
	if v == 0 {
		return dst
	}
	dst = appendKey(dst, field, wireVarint)
	return appendVarint(dst, uint64(int64(v)))
}

// appendString appends a string field, omitting empty values.
func appendString(dst []byte, field int, s string) []byte {
	if s == "" {
		return dst
	}
	dst = appendKey(dst, field, wireBytes)
	dst = appendVarint(dst, uint64(len(s)))
	return append(dst, s...)
}

// appendMessage appends an embedded message field. The field is emitted even
// when body is empty: a set one-of variant is always present on the wire.
func appendMessage(dst []byte, field int, body []byte) []byte {
	dst = appendKey(dst, field, wireBytes)
	dst = appendVarint(dst, uint64(len(body)))
	return append(dst, body...)
}

// readVarint decodes one varint from b, returning the value and the number of
// bytes consumed.
func readVarint(b []byte) (uint64, int, error) {
	var v uint64
	for i := 0; i < len(b) && i < maxVarintLen; i++ {
		v |= uint64(b[i]&0x7F) << (7 * i)
		if b[i] < 0x80 {
			return v, i + 1, nil
		}
	}
	return 0, 0, ErrMalformed
}

// readBytes decodes one length-delimited payload from b, returning the
// payload and the total number of bytes consumed.
func readBytes(b []byte) ([]byte, int, error) {
	size, n, err := readVarint(b)
	if err != nil {
		return nil, 0, err
	}
	if size > uint64(len(b)-n) {
		return nil, 0, ErrMalformed
	}
	end := n + int(size)
	return b[n:end], end, nil
}

// readKey decodes one field key. Field number zero is invalid.
func readKey(b []byte) (field, wire, n int, err error) {
	key, n, err := readVarint(b)
	if err != nil {
		return 0, 0, 0, err
	}
	field = int(key >> 3)
	wire = int(key & 7)
	if field == 0 {
		return 0, 0, 0, ErrMalformed
	}
	return field, wire, n, nil
}

// skipField consumes one unknown field of the given wire type. Group wire
// types are rejected.
func skipField(b []byte, wire int) (int, error) {
	switch wire {
	case wireVarint:
		_, n, err := readVarint(b)
		return n, err
	case wireI64:
		if len(b) < 8 {
			return 0, ErrMalformed
		}
		return 8, nil
	case wireBytes:
		_, n, err := readBytes(b)
		return n, err
	case wireI32:
		if len(b) < 4 {
			return 0, ErrMalformed
		}
		return 4, nil
	default:
		return 0, ErrMalformed
	}
}
