// Copyright 2026 The jdwp-go Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package jdwperr defines the structured error categories surfaced by the
// framing, codec, transport and client layers.
//
// Each category is its own type rather than a sentinel, mirroring how
// cloudwego/gopkg's protocol/thrift/exception.go tells TransportException,
// ProtocolException and ApplicationException apart: callers that need to
// distinguish "the peer is gone" from "the peer sent garbage" from "the peer
// rejected the request" can type-switch or errors.As instead of string
// matching.
package jdwperr

import "fmt"

// FramingError reports a malformed packet envelope: an oversized or
// undersized length prefix. An EOF part-way through a packet is not wrapped
// in a FramingError; wire.DecodeFrom returns the stream's own read error.
type FramingError struct {
	Reason string
}

func (e *FramingError) Error() string { return "jdwp: framing error: " + e.Reason }

func NewFramingError(reason string) *FramingError { return &FramingError{Reason: reason} }

// HandshakeError reports a failed JDWP-Handshake exchange.
type HandshakeError struct {
	Reason string
}

func (e *HandshakeError) Error() string { return "jdwp: handshake error: " + e.Reason }

func NewHandshakeError(reason string) *HandshakeError { return &HandshakeError{Reason: reason} }

// DecodeError wraps a typed-value decode failure (§4.2): not
// enough bytes, a negative length, an illegal tag byte, or invalid UTF-8.
type DecodeError struct {
	Reason string
	Err    error
}

func (e *DecodeError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("jdwp: decode error: %s: %s", e.Reason, e.Err.Error())
	}
	return "jdwp: decode error: " + e.Reason
}

func (e *DecodeError) Unwrap() error { return e.Err }

func NewDecodeError(reason string, err error) *DecodeError {
	return &DecodeError{Reason: reason, Err: err}
}

// JdwpError is a non-zero JDWP error code returned by the peer in a reply
// packet's variable header field. It is distinct from I/O and decode
// failures: the packet itself was well-formed, the peer just refused the
// command.
type JdwpError struct {
	Code    uint16
	Message string
}

func (e *JdwpError) Error() string {
	return fmt.Sprintf("jdwp: peer error %d (%s)", e.Code, e.Message)
}

// UsageError reports a caller mistake: Invoke on a Client after Dispose or
// Close. Connect does not return it; a stream that is already drained fails
// the handshake with the stream's own read or write error.
type UsageError struct {
	Reason string
}

func (e *UsageError) Error() string { return "jdwp: usage error: " + e.Reason }

func NewUsageError(reason string) *UsageError { return &UsageError{Reason: reason} }

// ErrBrokenPipe is returned to every pending Invoke caller once the receive
// pump has observed the transport terminate (framing error or peer close),
// and to every later Invoke on a Client that was not disposed or closed.
var ErrBrokenPipe = fmt.Errorf("jdwp: broken pipe")
