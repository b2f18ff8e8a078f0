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

// Version is VirtualMachine.Version (1/1): no input, returns the peer's
// version strings.
type Version struct{}

func (Version) Opcode() Opcode        { return Opcode{CommandSet: 1, Command: 1} }
func (Version) Encode(w *codec.Writer) {}

type VersionReply struct {
	Description string
	Major       int32
	Minor       int32
	VMVersion   string
	VMName      string
}

func (r *VersionReply) Decode(c *codec.Reader) error {
	var err error
	if r.Description, err = c.ReadString(); err != nil {
		return err
	}
	if r.Major, err = c.ReadInt(); err != nil {
		return err
	}
	if r.Minor, err = c.ReadInt(); err != nil {
		return err
	}
	if r.VMVersion, err = c.ReadString(); err != nil {
		return err
	}
	if r.VMName, err = c.ReadString(); err != nil {
		return err
	}
	return nil
}

// ClassesBySignature is VirtualMachine.ClassesBySignature (1/2).
type ClassesBySignature struct {
	Signature string
}

func (ClassesBySignature) Opcode() Opcode { return Opcode{CommandSet: 1, Command: 2} }
func (c ClassesBySignature) Encode(w *codec.Writer) {
	w.WriteString(c.Signature)
}

// ClassInfo is the (TypeTag, ReferenceTypeId, ClassStatus) triple shared by
// ClassesBySignature and AllClasses.
type ClassInfo struct {
	TypeTag         ids.TypeTag
	ReferenceTypeID ids.ReferenceTypeID
	Status          ids.ClassStatus
}

func decodeClassInfo(r *codec.Reader) (ClassInfo, error) {
	tag, err := r.ReadTypeTag()
	if err != nil {
		return ClassInfo{}, err
	}
	rt, err := r.ReadReferenceTypeID()
	if err != nil {
		return ClassInfo{}, err
	}
	status, err := r.ReadInt()
	if err != nil {
		return ClassInfo{}, err
	}
	return ClassInfo{TypeTag: tag, ReferenceTypeID: rt, Status: ids.ClassStatus(status)}, nil
}

type ClassesBySignatureReply struct {
	Classes []ClassInfo
}

func (r *ClassesBySignatureReply) Decode(c *codec.Reader) error {
	classes, err := codec.DecodeVec(c, decodeClassInfo)
	if err != nil {
		return err
	}
	r.Classes = classes
	return nil
}

// AllClasses is VirtualMachine.AllClasses (1/3).
type AllClasses struct{}

func (AllClasses) Opcode() Opcode        { return Opcode{CommandSet: 1, Command: 3} }
func (AllClasses) Encode(w *codec.Writer) {}

// ClassInfoWithSignature is AllClasses's per-entry shape: ClassInfo plus the
// class's signature string, interleaved per §4.3's declared field order.
type ClassInfoWithSignature struct {
	TypeTag         ids.TypeTag
	ReferenceTypeID ids.ReferenceTypeID
	Signature       string
	Status          ids.ClassStatus
}

func decodeClassInfoWithSignature(r *codec.Reader) (ClassInfoWithSignature, error) {
	tag, err := r.ReadTypeTag()
	if err != nil {
		return ClassInfoWithSignature{}, err
	}
	rt, err := r.ReadReferenceTypeID()
	if err != nil {
		return ClassInfoWithSignature{}, err
	}
	sig, err := r.ReadString()
	if err != nil {
		return ClassInfoWithSignature{}, err
	}
	status, err := r.ReadInt()
	if err != nil {
		return ClassInfoWithSignature{}, err
	}
	return ClassInfoWithSignature{TypeTag: tag, ReferenceTypeID: rt, Signature: sig, Status: ids.ClassStatus(status)}, nil
}

type AllClassesReply struct {
	Classes []ClassInfoWithSignature
}

func (r *AllClassesReply) Decode(c *codec.Reader) error {
	classes, err := codec.DecodeVec(c, decodeClassInfoWithSignature)
	if err != nil {
		return err
	}
	r.Classes = classes
	return nil
}

// AllThreads is VirtualMachine.AllThreads (1/4).
type AllThreads struct{}

func (AllThreads) Opcode() Opcode        { return Opcode{CommandSet: 1, Command: 4} }
func (AllThreads) Encode(w *codec.Writer) {}

type AllThreadsReply struct {
	Threads []ids.ThreadID
}

func (r *AllThreadsReply) Decode(c *codec.Reader) error {
	threads, err := codec.DecodeVec(c, (*codec.Reader).ReadThreadID)
	if err != nil {
		return err
	}
	r.Threads = threads
	return nil
}

// TopLevelThreadGroups is VirtualMachine.TopLevelThreadGroups (1/5).
type TopLevelThreadGroups struct{}

func (TopLevelThreadGroups) Opcode() Opcode        { return Opcode{CommandSet: 1, Command: 5} }
func (TopLevelThreadGroups) Encode(w *codec.Writer) {}

type TopLevelThreadGroupsReply struct {
	Groups []ids.ThreadGroupID
}

func (r *TopLevelThreadGroupsReply) Decode(c *codec.Reader) error {
	groups, err := codec.DecodeVec(c, (*codec.Reader).ReadThreadGroupID)
	if err != nil {
		return err
	}
	r.Groups = groups
	return nil
}

// Dispose is VirtualMachine.Dispose (1/6): empty input, empty reply.
type Dispose struct{}

func (Dispose) Opcode() Opcode        { return Opcode{CommandSet: 1, Command: 6} }
func (Dispose) Encode(w *codec.Writer) {}

type DisposeReply struct{}

func (r *DisposeReply) Decode(c *codec.Reader) error { return nil }

// IdSizes is VirtualMachine.IdSizes (1/7): issued once during negotiation,
// always against the pre-negotiation default widths.
type IdSizes struct{}

func (IdSizes) Opcode() Opcode        { return Opcode{CommandSet: 1, Command: 7} }
func (IdSizes) Encode(w *codec.Writer) {}

// IdSizesReply decodes the five negotiated widths. The field order on the
// wire is fieldIdSize, methodIdSize, objectIdSize, referenceTypeIdSize,
// frameIdSize — not the textbook JDWP ordering. This implementation follows
// the non-canonical order to match the reference client this module was
// built from; interop with a peer expecting the canonical order would need
// this revisited.
type IdSizesReply struct {
	FieldIDSize         int32
	MethodIDSize        int32
	ObjectIDSize        int32
	ReferenceTypeIDSize int32
	FrameIDSize         int32
}

func (r *IdSizesReply) Decode(c *codec.Reader) error {
	var err error
	if r.FieldIDSize, err = c.ReadInt(); err != nil {
		return err
	}
	if r.MethodIDSize, err = c.ReadInt(); err != nil {
		return err
	}
	if r.ObjectIDSize, err = c.ReadInt(); err != nil {
		return err
	}
	if r.ReferenceTypeIDSize, err = c.ReadInt(); err != nil {
		return err
	}
	if r.FrameIDSize, err = c.ReadInt(); err != nil {
		return err
	}
	return nil
}

// Widths converts the reply into the codec's width table shape. Widths are
// always small (1..=8 per §3), so the int32-to-byte narrowing is lossless
// for any conformant peer.
func (r *IdSizesReply) Widths() ids.IDSizes {
	return ids.IDSizes{
		ObjectIDSize: byte(r.ObjectIDSize),
		MethodIDSize: byte(r.MethodIDSize),
		FieldIDSize:  byte(r.FieldIDSize),
		FrameIDSize:  byte(r.FrameIDSize),
	}
}
