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

package command

import (
	"github.com/jdwp-go/jdwp/protocol/jdwp/codec"
	"github.com/jdwp-go/jdwp/protocol/jdwp/ids"
)

// SetEventRequest is EventRequest.Set (15/1), added beyond the base
// command catalog: event subscription (§4.6) needs a way to ask the peer
// to start sending a given EventKind, and Set is that ask.
//
// JDWP's real Set carries a vector of typed modifiers (count filters,
// class-pattern filters, location filters, and so on) after the fixed
// eventKind/suspendPolicy pair. This catalog entry only wires the
// zero-modifier case (an unconditional subscription to every occurrence of
// EventKind) — the modifier variants are a closed, JDWP-defined union with
// no analogue in the source this module was built from, so they're left as
// a documented gap rather than guessed at.
type SetEventRequest struct {
	EventKind     ids.EventKind
	SuspendPolicy ids.SuspendPolicy
}

func (SetEventRequest) Opcode() Opcode { return Opcode{CommandSet: 15, Command: 1} }
func (s SetEventRequest) Encode(w *codec.Writer) {
	w.WriteByte(byte(s.EventKind))
	w.WriteByte(byte(s.SuspendPolicy))
	w.WriteInt(0) // modifier count: unconditional subscription
}

type SetEventRequestReply struct {
	RequestID int32
}

func (r *SetEventRequestReply) Decode(c *codec.Reader) error {
	id, err := c.ReadInt()
	if err != nil {
		return err
	}
	r.RequestID = id
	return nil
}

// ClearEventRequest is EventRequest.Clear (15/2).
type ClearEventRequest struct {
	EventKind ids.EventKind
	RequestID int32
}

func (ClearEventRequest) Opcode() Opcode { return Opcode{CommandSet: 15, Command: 2} }
func (c ClearEventRequest) Encode(w *codec.Writer) {
	w.WriteByte(byte(c.EventKind))
	w.WriteInt(c.RequestID)
}

type ClearEventRequestReply struct{}

func (r *ClearEventRequestReply) Decode(c *codec.Reader) error { return nil }
