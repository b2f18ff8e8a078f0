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

// Name is ThreadReference.Name (11/1), added beyond the base command
// catalog: AllThreads returns bare ThreadIds, and Name is the natural
// follow-up to turn one into a human-readable label.
type Name struct {
	Thread ids.ThreadID
}

func (Name) Opcode() Opcode { return Opcode{CommandSet: 11, Command: 1} }
func (n Name) Encode(w *codec.Writer) {
	w.WriteThreadID(n.Thread)
}

type NameReply struct {
	ThreadName string
}

func (r *NameReply) Decode(c *codec.Reader) error {
	name, err := c.ReadString()
	if err != nil {
		return err
	}
	r.ThreadName = name
	return nil
}

// Suspend is ThreadReference.Suspend (11/2).
type Suspend struct {
	Thread ids.ThreadID
}

func (Suspend) Opcode() Opcode { return Opcode{CommandSet: 11, Command: 2} }
func (s Suspend) Encode(w *codec.Writer) {
	w.WriteThreadID(s.Thread)
}

type SuspendReply struct{}

func (r *SuspendReply) Decode(c *codec.Reader) error { return nil }

// Resume is ThreadReference.Resume (11/3).
type Resume struct {
	Thread ids.ThreadID
}

func (Resume) Opcode() Opcode { return Opcode{CommandSet: 11, Command: 3} }
func (r Resume) Encode(w *codec.Writer) {
	w.WriteThreadID(r.Thread)
}

type ResumeReply struct{}

func (r *ResumeReply) Decode(c *codec.Reader) error { return nil }

// Status is ThreadReference.Status (11/6).
type Status struct {
	Thread ids.ThreadID
}

func (Status) Opcode() Opcode { return Opcode{CommandSet: 11, Command: 6} }
func (s Status) Encode(w *codec.Writer) {
	w.WriteThreadID(s.Thread)
}

type StatusReply struct {
	ThreadStatus  int32
	SuspendStatus int32
}

func (r *StatusReply) Decode(c *codec.Reader) error {
	var err error
	if r.ThreadStatus, err = c.ReadInt(); err != nil {
		return err
	}
	if r.SuspendStatus, err = c.ReadInt(); err != nil {
		return err
	}
	return nil
}
