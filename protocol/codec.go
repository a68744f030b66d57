// File: protocol/codec.go
// Package protocol implements encoding and decoding of wireserve messages.
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package protocol

// Field numbers of the message schema.
const (
	fieldRequestEcho  = 1 // Request one-of: EchoMessage
	fieldRequestAdd   = 2 // Request one-of: AddRequest
	fieldResponseEcho = 1 // Response one-of: EchoMessage
	fieldResponseAdd  = 2 // Response one-of: AddResponse

	fieldEchoContent = 1
	fieldAddA        = 1
	fieldAddB        = 2
	fieldAddResult   = 1
)

// EncodeRequest serializes req into its wire form.
func EncodeRequest(req *Request) []byte {
	buf := make([]byte, 0, 64)
	switch {
	case req.Echo != nil:
		buf = appendMessage(buf, fieldRequestEcho, encodeEcho(req.Echo))
	case req.Add != nil:
		buf = appendMessage(buf, fieldRequestAdd, encodeAddRequest(req.Add))
	}
	return buf
}

// EncodeResponse serializes resp into its wire form.
func EncodeResponse(resp *Response) []byte {
	buf := make([]byte, 0, 64)
	switch {
	case resp.Echo != nil:
		buf = appendMessage(buf, fieldResponseEcho, encodeEcho(resp.Echo))
	case resp.Add != nil:
		buf = appendMessage(buf, fieldResponseAdd, encodeAddResponse(resp.Add))
	}
	return buf
}

// DecodeRequest parses raw as one request message. Unknown fields are
// skipped; when two one-of variants appear, the last wins. An empty body
// decodes to the empty request.
func DecodeRequest(raw []byte) (*Request, error) {
	req := &Request{}
	err := decodeFields(raw, func(field, wire int, b []byte) (int, error) {
		switch field {
		case fieldRequestEcho:
			body, n, err := readVariant(b, wire)
			if err != nil {
				return 0, err
			}
			echo, err := decodeEcho(body)
			if err != nil {
				return 0, err
			}
			req.Echo, req.Add = echo, nil
			return n, nil
		case fieldRequestAdd:
			body, n, err := readVariant(b, wire)
			if err != nil {
				return 0, err
			}
			add, err := decodeAddRequest(body)
			if err != nil {
				return 0, err
			}
			req.Echo, req.Add = nil, add
			return n, nil
		}
		return skipField(b, wire)
	})
	if err != nil {
		return nil, err
	}
	return req, nil
}

// DecodeResponse parses raw as one response message, with the same field
// handling rules as DecodeRequest.
func DecodeResponse(raw []byte) (*Response, error) {
	resp := &Response{}
	err := decodeFields(raw, func(field, wire int, b []byte) (int, error) {
		switch field {
		case fieldResponseEcho:
			body, n, err := readVariant(b, wire)
			if err != nil {
				return 0, err
			}
			echo, err := decodeEcho(body)
			if err != nil {
				return 0, err
			}
			resp.Echo, resp.Add = echo, nil
			return n, nil
		case fieldResponseAdd:
			body, n, err := readVariant(b, wire)
			if err != nil {
				return 0, err
			}
			add, err := decodeAddResponse(body)
			if err != nil {
				return 0, err
			}
			resp.Echo, resp.Add = nil, add
			return n, nil
		}
		return skipField(b, wire)
	})
	if err != nil {
		return nil, err
	}
	return resp, nil
}

// readVariant reads the body of a one-of variant, which must be
// length-delimited.
func readVariant(b []byte, wire int) ([]byte, int, error) {
	if wire != wireBytes {
		return nil, 0, ErrMalformed
	}
	return readBytes(b)
}

func encodeEcho(m *EchoMessage) []byte {
	return appendString(nil, fieldEchoContent, m.Content)
}

func encodeAddRequest(m *AddRequest) []byte {
	buf := appendInt32(nil, fieldAddA, m.A)
	return appendInt32(buf, fieldAddB, m.B)
}

func encodeAddResponse(m *AddResponse) []byte {
	return appendInt32(nil, fieldAddResult, m.Result)
}

func decodeEcho(raw []byte) (*EchoMessage, error) {
	m := &EchoMessage{}
	err := decodeFields(raw, func(field, wire int, b []byte) (int, error) {
		if field == fieldEchoContent {
			if wire != wireBytes {
				return 0, ErrMalformed
			}
			body, n, err := readBytes(b)
			if err != nil {
				return 0, err
			}
			m.Content = string(body)
			return n, nil
		}
		return skipField(b, wire)
	})
	if err != nil {
		return nil, err
	}
	return m, nil
}

func decodeAddRequest(raw []byte) (*AddRequest, error) {
	m := &AddRequest{}
	err := decodeFields(raw, func(field, wire int, b []byte) (int, error) {
		switch field {
		case fieldAddA:
			v, n, err := readInt32(b, wire)
			if err != nil {
				return 0, err
			}
			m.A = v
			return n, nil
		case fieldAddB:
			v, n, err := readInt32(b, wire)
			if err != nil {
				return 0, err
			}
			m.B = v
			return n, nil
		}
		return skipField(b, wire)
	})
	if err != nil {
		return nil, err
	}
	return m, nil
}

func decodeAddResponse(raw []byte) (*AddResponse, error) {
	m := &AddResponse{}
	err := decodeFields(raw, func(field, wire int, b []byte) (int, error) {
		if field == fieldAddResult {
			v, n, err := readInt32(b, wire)
			if err != nil {
				return 0, err
			}
			m.Result = v
			return n, nil
		}
		return skipField(b, wire)
	})
	if err != nil {
		return nil, err
	}
	return m, nil
}

// decodeFields walks raw field by field, delegating each to on. The callback
// returns the number of body bytes it consumed.
func decodeFields(raw []byte, on func(field, wire int, b []byte) (int, error)) error {
	for off := 0; off < len(raw); {
		field, wire, n, err := readKey(raw[off:])
		if err != nil {
			return err
		}
		off += n
		n, err = on(field, wire, raw[off:])
		if err != nil {
			return err
		}
		off += n
	}
	return nil
}

// readInt32 decodes a varint-encoded int32 field, truncating to the low 32
// bits as the wire format prescribes.
func readInt32(b []byte, wire int) (int32, int, error) {
	if wire != wireVarint {
		return 0, 0, ErrMalformed
	}
	v, n, err := readVarint(b)
	if err != nil {
		return 0, 0, err
	}
	return int32(uint32(v)), n, nil
}
