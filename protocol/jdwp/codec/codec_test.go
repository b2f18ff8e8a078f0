package codec_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jdwp-go/jdwp/protocol/jdwp/codec"
	"github.com/jdwp-go/jdwp/protocol/jdwp/ids"
)

func TestPrimitiveRoundTrip(t *testing.T) {
	table := codec.NewTable()
	w := codec.NewWriter(table)
	defer w.Release()

	w.WriteByte(0xAB)
	w.WriteBool(true)
	w.WriteChar(0x4E2D)
	w.WriteShort(-7)
	w.WriteInt(-123456)
	w.WriteLong(math.MinInt64)
	w.WriteFloat(3.5)
	w.WriteDouble(-2.25)
	w.WriteString("hello, jdwp")

	r := codec.NewReader(w.Bytes(), table)
	b, err := r.ReadByte()
	require.NoError(t, err)
	assert.Equal(t, byte(0xAB), b)

	bo, err := r.ReadBool()
	require.NoError(t, err)
	assert.True(t, bo)

	c, err := r.ReadChar()
	require.NoError(t, err)
	assert.Equal(t, uint16(0x4E2D), c)

	sh, err := r.ReadShort()
	require.NoError(t, err)
	assert.Equal(t, int16(-7), sh)

	i, err := r.ReadInt()
	require.NoError(t, err)
	assert.Equal(t, int32(-123456), i)

	l, err := r.ReadLong()
	require.NoError(t, err)
	assert.Equal(t, int64(math.MinInt64), l)

	f, err := r.ReadFloat()
	require.NoError(t, err)
	assert.Equal(t, float32(3.5), f)

	d, err := r.ReadDouble()
	require.NoError(t, err)
	assert.Equal(t, -2.25, d)

	s, err := r.ReadString()
	require.NoError(t, err)
	assert.Equal(t, "hello, jdwp", s)

	assert.Equal(t, 0, r.Remaining())
}

func TestIdentifierDefaultWidthIsEight(t *testing.T) {
	table := codec.NewTable()
	w := codec.NewWriter(table)
	defer w.Release()

	w.WriteObjectID(ids.ObjectID(0x1122334455667788))
	assert.Len(t, w.Bytes(), 8)

	r := codec.NewReader(w.Bytes(), table)
	got, err := r.ReadObjectID()
	require.NoError(t, err)
	assert.Equal(t, ids.ObjectID(0x1122334455667788), got)
}

// TestIdentifierTruncatesAtNegotiatedWidth exercises the exact property
// named for IdSizes negotiation: encoding ^uint64(0) at width 6 and decoding
// it back yields (1<<48)-1, not the original 64-bit value — the negotiated
// width is a hard truncation, not a variable-length encoding.
func TestIdentifierTruncatesAtNegotiatedWidth(t *testing.T) {
	table := codec.NewTable()
	table.Set(ids.IDSizes{ObjectIDSize: 6, MethodIDSize: 8, FieldIDSize: 8, FrameIDSize: 8})

	w := codec.NewWriter(table)
	defer w.Release()
	w.WriteObjectID(ids.ObjectID(math.MaxUint64))
	assert.Len(t, w.Bytes(), 6)

	r := codec.NewReader(w.Bytes(), table)
	got, err := r.ReadObjectID()
	require.NoError(t, err)
	assert.Equal(t, ids.ObjectID((uint64(1)<<48)-1), got)
}

func TestMethodFieldFrameIdsUseTheirOwnWidths(t *testing.T) {
	table := codec.NewTable()
	table.Set(ids.IDSizes{ObjectIDSize: 8, MethodIDSize: 4, FieldIDSize: 2, FrameIDSize: 1})

	w := codec.NewWriter(table)
	defer w.Release()
	w.WriteMethodID(ids.MethodID(0xFFFFFFFFFF))
	w.WriteFieldID(ids.FieldID(0xFFFF))
	w.WriteFrameID(ids.FrameID(0xFF))
	assert.Len(t, w.Bytes(), 4+2+1)

	r := codec.NewReader(w.Bytes(), table)
	m, err := r.ReadMethodID()
	require.NoError(t, err)
	assert.Equal(t, ids.MethodID(0xFFFFFFFF), m)

	fl, err := r.ReadFieldID()
	require.NoError(t, err)
	assert.Equal(t, ids.FieldID(0xFFFF), fl)

	fr, err := r.ReadFrameID()
	require.NoError(t, err)
	assert.Equal(t, ids.FrameID(0xFF), fr)
}

func TestStringRejectsNegativeLength(t *testing.T) {
	table := codec.NewTable()
	buf := []byte{0xFF, 0xFF, 0xFF, 0xFF} // i32 length = -1
	r := codec.NewReader(buf, table)
	_, err := r.ReadString()
	require.Error(t, err)
	var neg *codec.ErrUnexpectedNegativeInt
	require.ErrorAs(t, err, &neg)
	assert.Equal(t, int32(-1), neg.Value)
}

func TestReadTagRejectsUnknownByte(t *testing.T) {
	table := codec.NewTable()
	r := codec.NewReader([]byte{0x01}, table)
	_, err := r.ReadTag()
	require.Error(t, err)
	var bad *codec.ErrIllegalByteTag
	require.ErrorAs(t, err, &bad)
	assert.Equal(t, byte(0x01), bad.Tag)
}

func TestValueRoundTripPrimitiveAndObjectLike(t *testing.T) {
	table := codec.NewTable()
	w := codec.NewWriter(table)
	defer w.Release()

	intVal := codec.Value{Tag: ids.TagInt, Int: 42}
	voidVal := codec.Value{Tag: ids.TagVoid}
	objVal := codec.Value{Tag: ids.TagThread, Object: ids.ObjectID(7)}

	w.WriteValue(intVal)
	w.WriteValue(voidVal)
	w.WriteValue(objVal)

	r := codec.NewReader(w.Bytes(), table)
	gotInt, err := r.ReadValue()
	require.NoError(t, err)
	assert.Equal(t, intVal, gotInt)

	gotVoid, err := r.ReadValue()
	require.NoError(t, err)
	assert.Equal(t, voidVal, gotVoid)

	gotObj, err := r.ReadValue()
	require.NoError(t, err)
	assert.Equal(t, objVal, gotObj)
}

func TestLocationRoundTrip(t *testing.T) {
	table := codec.NewTable()
	w := codec.NewWriter(table)
	defer w.Release()

	loc := codec.Location{
		Tag:    ids.TypeTagClass,
		Class:  ids.ClassID(100),
		Method: ids.MethodID(200),
		Offset: 300,
	}
	w.WriteLocation(loc)

	r := codec.NewReader(w.Bytes(), table)
	got, err := r.ReadLocation()
	require.NoError(t, err)
	assert.Equal(t, loc, got)
}

func TestTaggedObjectIdRoundTrip(t *testing.T) {
	table := codec.NewTable()
	w := codec.NewWriter(table)
	defer w.Release()

	toi := ids.TaggedObjectId{Tag: ids.TagArray, Id: ids.ObjectID(55)}
	w.WriteTaggedObjectId(toi)

	r := codec.NewReader(w.Bytes(), table)
	got, err := r.ReadTaggedObjectId()
	require.NoError(t, err)
	assert.Equal(t, toi, got)
}

func TestVecRoundTrip(t *testing.T) {
	table := codec.NewTable()
	w := codec.NewWriter(table)
	defer w.Release()

	items := []int32{1, 2, 3, 4, 5}
	codec.EncodeVec(w, items, func(w *codec.Writer, v int32) { w.WriteInt(v) })

	r := codec.NewReader(w.Bytes(), table)
	got, err := codec.DecodeVec(r, func(r *codec.Reader) (int32, error) { return r.ReadInt() })
	require.NoError(t, err)
	assert.Equal(t, items, got)
}

func TestVecEmpty(t *testing.T) {
	table := codec.NewTable()
	w := codec.NewWriter(table)
	defer w.Release()

	codec.EncodeVec[int32](w, nil, func(w *codec.Writer, v int32) { w.WriteInt(v) })

	r := codec.NewReader(w.Bytes(), table)
	got, err := codec.DecodeVec(r, func(r *codec.Reader) (int32, error) { return r.ReadInt() })
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestDecodeVecRejectsNegativeCount(t *testing.T) {
	table := codec.NewTable()
	buf := []byte{0xFF, 0xFF, 0xFF, 0xFF}
	r := codec.NewReader(buf, table)
	_, err := codec.DecodeVec(r, func(r *codec.Reader) (byte, error) { return r.ReadByte() })
	require.Error(t, err)
	var neg *codec.ErrUnexpectedNegativeInt
	require.ErrorAs(t, err, &neg)
}

func TestReadExhaustedBufferReturnsErrNotEnoughBytes(t *testing.T) {
	table := codec.NewTable()
	r := codec.NewReader([]byte{1, 2}, table)
	_, err := r.ReadInt()
	assert.ErrorIs(t, err, codec.ErrNotEnoughBytes)
}
