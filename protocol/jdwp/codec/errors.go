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

package codec

import "fmt"

// ErrNotEnoughBytes is returned by any decode that needs more bytes than the
// cursor currently holds. It is the codec-level analogue of wire.ErrShortBuffer
// but never means "read more from the socket" — by the time the codec runs,
// a reply or event payload has already been framed in full; running out of
// bytes mid-decode means the payload itself was malformed or the decoder
// was handed the wrong shape.
var ErrNotEnoughBytes = fmt.Errorf("jdwp codec: not enough bytes")

// ErrUnexpectedNegativeInt is returned when a length-prefixed field (string
// byte length, Vec element count) decodes to a negative int32.
type ErrUnexpectedNegativeInt struct {
	Value int32
}

func (e *ErrUnexpectedNegativeInt) Error() string {
	return fmt.Sprintf("jdwp codec: unexpected negative int %d", e.Value)
}

// ErrIllegalByteTag is returned when a one-byte discriminator (Tag, TypeTag)
// doesn't match any known variant.
type ErrIllegalByteTag struct {
	Tag byte
}

func (e *ErrIllegalByteTag) Error() string {
	return fmt.Sprintf("jdwp codec: illegal byte tag %#x", e.Tag)
}

// ErrUtf8Decode wraps a UTF-8 validation failure on a decoded String.
type ErrUtf8Decode struct {
	Err error
}

func (e *ErrUtf8Decode) Error() string {
	return fmt.Sprintf("jdwp codec: invalid utf-8: %s", e.Err.Error())
}

func (e *ErrUtf8Decode) Unwrap() error { return e.Err }
