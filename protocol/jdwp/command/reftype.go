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

// Signature is ReferenceType.Signature (2/1), added beyond the base
// command catalog: a reference type's JNI-style signature string is the
// natural follow-up to ClassesBySignature/AllClasses once a caller has a
// ReferenceTypeID in hand.
type Signature struct {
	RefType ids.ReferenceTypeID
}

func (Signature) Opcode() Opcode { return Opcode{CommandSet: 2, Command: 1} }
func (s Signature) Encode(w *codec.Writer) {
	w.WriteReferenceTypeID(s.RefType)
}

type SignatureReply struct {
	Signature string
}

func (r *SignatureReply) Decode(c *codec.Reader) error {
	sig, err := c.ReadString()
	if err != nil {
		return err
	}
	r.Signature = sig
	return nil
}

// ClassLoaderCmd is ReferenceType.ClassLoader (2/2).
type ClassLoaderCmd struct {
	RefType ids.ReferenceTypeID
}

func (ClassLoaderCmd) Opcode() Opcode { return Opcode{CommandSet: 2, Command: 2} }
func (c ClassLoaderCmd) Encode(w *codec.Writer) {
	w.WriteReferenceTypeID(c.RefType)
}

type ClassLoaderCmdReply struct {
	ClassLoader ids.ClassLoaderID
}

func (r *ClassLoaderCmdReply) Decode(c *codec.Reader) error {
	cl, err := c.ReadClassLoaderID()
	if err != nil {
		return err
	}
	r.ClassLoader = cl
	return nil
}

// FieldInfo is one declared field, shared by the Fields command's reply.
type FieldInfo struct {
	Field     ids.FieldID
	Name      string
	Signature string
	ModBits   int32
}

func decodeFieldInfo(r *codec.Reader) (FieldInfo, error) {
	id, err := r.ReadFieldID()
	if err != nil {
		return FieldInfo{}, err
	}
	name, err := r.ReadString()
	if err != nil {
		return FieldInfo{}, err
	}
	sig, err := r.ReadString()
	if err != nil {
		return FieldInfo{}, err
	}
	mod, err := r.ReadInt()
	if err != nil {
		return FieldInfo{}, err
	}
	return FieldInfo{Field: id, Name: name, Signature: sig, ModBits: mod}, nil
}

// Fields is ReferenceType.Fields (2/4).
type Fields struct {
	RefType ids.ReferenceTypeID
}

func (Fields) Opcode() Opcode { return Opcode{CommandSet: 2, Command: 4} }
func (f Fields) Encode(w *codec.Writer) {
	w.WriteReferenceTypeID(f.RefType)
}

type FieldsReply struct {
	Declared []FieldInfo
}

func (r *FieldsReply) Decode(c *codec.Reader) error {
	fields, err := codec.DecodeVec(c, decodeFieldInfo)
	if err != nil {
		return err
	}
	r.Declared = fields
	return nil
}

// MethodInfo is one declared method, shared by the Methods command's reply.
type MethodInfo struct {
	Method    ids.MethodID
	Name      string
	Signature string
	ModBits   int32
}

func decodeMethodInfo(r *codec.Reader) (MethodInfo, error) {
	id, err := r.ReadMethodID()
	if err != nil {
		return MethodInfo{}, err
	}
	name, err := r.ReadString()
	if err != nil {
		return MethodInfo{}, err
	}
	sig, err := r.ReadString()
	if err != nil {
		return MethodInfo{}, err
	}
	mod, err := r.ReadInt()
	if err != nil {
		return MethodInfo{}, err
	}
	return MethodInfo{Method: id, Name: name, Signature: sig, ModBits: mod}, nil
}

// Methods is ReferenceType.Methods (2/9).
type Methods struct {
	RefType ids.ReferenceTypeID
}

func (Methods) Opcode() Opcode { return Opcode{CommandSet: 2, Command: 9} }
func (m Methods) Encode(w *codec.Writer) {
	w.WriteReferenceTypeID(m.RefType)
}

type MethodsReply struct {
	Declared []MethodInfo
}

func (r *MethodsReply) Decode(c *codec.Reader) error {
	methods, err := codec.DecodeVec(c, decodeMethodInfo)
	if err != nil {
		return err
	}
	r.Declared = methods
	return nil
}
