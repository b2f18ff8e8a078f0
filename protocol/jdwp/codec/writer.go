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

import (
	"encoding/binary"
	"math"

	"github.com/bytedance/gopkg/lang/mcache"

	"github.com/jdwp-go/jdwp/protocol/jdwp/ids"
)

// Writer accumulates an outbound command's payload before wire.EncodeCommand
// can compute the packet length for the header, so unlike BufferWriter it
// never writes through to a live bufiox.Writer — it owns a growable byte
// slice end to end. The backing array comes from mcache (also a bufiox
// dependency) rather than a bare make([]byte, 0, n): command
// payloads are built and torn down constantly on the hot send path, and
// mcache.Malloc/Free recycles that churn instead of handing every send its
// own garbage-collected slab.
type Writer struct {
	buf   []byte
	table *Table
}

// NewWriter returns a Writer with an mcache-backed initial buffer.
func NewWriter(table *Table) *Writer {
	return &Writer{buf: mcache.Malloc(0, 64), table: table}
}

// Bytes returns the accumulated payload. Valid until the next Release.
func (w *Writer) Bytes() []byte { return w.buf }

// Release returns the backing buffer to the pool. The Writer must not be
// used afterward.
func (w *Writer) Release() {
	if w.buf != nil {
		mcache.Free(w.buf)
		w.buf = nil
	}
}

func (w *Writer) grow(n int) []byte {
	off := len(w.buf)
	if cap(w.buf)-off >= n {
		w.buf = w.buf[:off+n]
	} else {
		grown := mcache.Malloc(off+n, (off+n)*2)
		copy(grown, w.buf)
		mcache.Free(w.buf)
		w.buf = grown
	}
	return w.buf[off : off+n]
}

func (w *Writer) WriteByte(v byte) {
	w.grow(1)[0] = v
}

func (w *Writer) WriteBool(v bool) {
	if v {
		w.WriteByte(1)
	} else {
		w.WriteByte(0)
	}
}

func (w *Writer) WriteChar(v uint16) {
	binary.BigEndian.PutUint16(w.grow(2), v)
}

func (w *Writer) WriteShort(v int16) {
	binary.BigEndian.PutUint16(w.grow(2), uint16(v))
}

func (w *Writer) WriteInt(v int32) {
	binary.BigEndian.PutUint32(w.grow(4), uint32(v))
}

func (w *Writer) WriteLong(v int64) {
	binary.BigEndian.PutUint64(w.grow(8), uint64(v))
}

func (w *Writer) WriteFloat(v float32) {
	binary.BigEndian.PutUint32(w.grow(4), math.Float32bits(v))
}

func (w *Writer) WriteDouble(v float64) {
	binary.BigEndian.PutUint64(w.grow(8), math.Float64bits(v))
}

// WriteString writes a length-prefixed (i32) UTF-8 string (§4.2). Callers
// are expected to hand in a valid Go string; Go strings carrying invalid
// UTF-8 are written byte-for-byte rather than rejected, matching
// encoding/binary's own "no implicit validation on encode" convention.
func (w *Writer) WriteString(s string) {
	w.WriteInt(int32(len(s)))
	copy(w.grow(len(s)), s)
}

// WriteID writes an identifier at the given byte width (§4.2), truncating
// to the low-order width bytes if the value doesn't fit.
func (w *Writer) WriteID(width byte, v ids.Id) {
	b := w.grow(int(width))
	u := uint64(v)
	for i := int(width) - 1; i >= 0; i-- {
		b[i] = byte(u)
		u >>= 8
	}
}

func (w *Writer) WriteObjectID(v ids.ObjectID) {
	w.WriteID(w.table.Load().ObjectIDSize, ids.Id(v))
}

func (w *Writer) WriteThreadID(v ids.ThreadID) {
	w.WriteID(w.table.Load().ObjectIDSize, ids.Id(v))
}

func (w *Writer) WriteThreadGroupID(v ids.ThreadGroupID) {
	w.WriteID(w.table.Load().ObjectIDSize, ids.Id(v))
}

func (w *Writer) WriteStringID(v ids.StringID) {
	w.WriteID(w.table.Load().ObjectIDSize, ids.Id(v))
}

func (w *Writer) WriteClassLoaderID(v ids.ClassLoaderID) {
	w.WriteID(w.table.Load().ObjectIDSize, ids.Id(v))
}

func (w *Writer) WriteClassObjectID(v ids.ClassObjectID) {
	w.WriteID(w.table.Load().ObjectIDSize, ids.Id(v))
}

func (w *Writer) WriteArrayID(v ids.ArrayID) {
	w.WriteID(w.table.Load().ObjectIDSize, ids.Id(v))
}

func (w *Writer) WriteReferenceTypeID(v ids.ReferenceTypeID) {
	w.WriteID(w.table.Load().ObjectIDSize, ids.Id(v))
}

func (w *Writer) WriteClassID(v ids.ClassID) {
	w.WriteID(w.table.Load().ObjectIDSize, ids.Id(v))
}

func (w *Writer) WriteInterfaceID(v ids.InterfaceID) {
	w.WriteID(w.table.Load().ObjectIDSize, ids.Id(v))
}

func (w *Writer) WriteArrayTypeID(v ids.ArrayTypeID) {
	w.WriteID(w.table.Load().ObjectIDSize, ids.Id(v))
}

func (w *Writer) WriteMethodID(v ids.MethodID) {
	w.WriteID(w.table.Load().MethodIDSize, ids.Id(v))
}

func (w *Writer) WriteFieldID(v ids.FieldID) {
	w.WriteID(w.table.Load().FieldIDSize, ids.Id(v))
}

func (w *Writer) WriteFrameID(v ids.FrameID) {
	w.WriteID(w.table.Load().FrameIDSize, ids.Id(v))
}

func (w *Writer) WriteTypeTag(t ids.TypeTag) { w.WriteByte(byte(t)) }
func (w *Writer) WriteTag(t ids.Tag)         { w.WriteByte(byte(t)) }

func (w *Writer) WriteLocation(l Location) {
	w.WriteTypeTag(l.Tag)
	w.WriteClassID(l.Class)
	w.WriteMethodID(l.Method)
	w.WriteLong(int64(l.Offset))
}

func (w *Writer) WriteTaggedObjectId(t ids.TaggedObjectId) {
	w.WriteTag(t.Tag)
	w.WriteObjectID(t.Id)
}

// WriteValue writes a Value: its Tag byte followed by the payload the Tag
// prescribes (§3). It panics if v.Tag is not one of the known Tag constants
// — a Value is always constructed by this package's own decode or by a
// caller setting Tag from the ids.Tag* constants, never from untrusted
// wire bytes, so an unknown Tag here is a programming error, not a
// decode-time failure.
func (w *Writer) WriteValue(v Value) {
	w.WriteTag(v.Tag)
	switch v.Tag {
	case ids.TagByte:
		w.WriteByte(v.Byte)
	case ids.TagBoolean:
		w.WriteBool(v.Bool)
	case ids.TagChar:
		w.WriteChar(v.Char)
	case ids.TagShort:
		w.WriteShort(v.Short)
	case ids.TagInt:
		w.WriteInt(v.Int)
	case ids.TagLong:
		w.WriteLong(v.Long)
	case ids.TagFloat:
		w.WriteFloat(v.Float)
	case ids.TagDouble:
		w.WriteDouble(v.Double)
	case ids.TagVoid:
		// no payload
	case ids.TagObject, ids.TagArray, ids.TagString, ids.TagThread,
		ids.TagThreadGroup, ids.TagClassLoader, ids.TagClassObject:
		w.WriteObjectID(v.Object)
	default:
		panic(&ErrIllegalByteTag{Tag: byte(v.Tag)})
	}
}

// EncodeVec writes a length-prefixed (i32) homogeneous vector (§4.2).
func EncodeVec[T any](w *Writer, items []T, elem func(*Writer, T)) {
	w.WriteInt(int32(len(items)))
	for _, it := range items {
		elem(w, it)
	}
}
