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

// Package command declares the JDWP command catalog (§4.3): for each
// command-set/command opcode pair, an input shape that encodes in
// declaration order and a reply shape that decodes in declaration order.
//
// The catalog is grounded on cloudwego/gopkg's protocol/thrift/base
// generated-struct idiom: a plain struct per message, named Encode/Decode methods
// operating on the shared codec cursor types rather than reflection. Go has
// no thriftgo to generate these from an IDL, so the catalog is hand-written,
// but the shape — one opcode, one input struct, one reply struct, each with
// its own Encode/Decode — is exactly the "declare fields, inherit
// encode/decode" contract §4.3 asks an implementation to keep purely
// declarative.
package command

import "github.com/jdwp-go/jdwp/protocol/jdwp/codec"

// Opcode identifies a command by its command-set/command pair.
type Opcode struct {
	CommandSet uint8
	Command    uint8
}

// Command is anything the client can send: it knows its own opcode and can
// encode its input fields onto an outbound payload.
type Command interface {
	Opcode() Opcode
	Encode(w *codec.Writer)
}

// Reply is anything decodable from a command's reply payload.
type Reply interface {
	Decode(r *codec.Reader) error
}
