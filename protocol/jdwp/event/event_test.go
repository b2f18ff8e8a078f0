package event_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jdwp-go/jdwp/protocol/jdwp/codec"
	"github.com/jdwp-go/jdwp/protocol/jdwp/event"
	"github.com/jdwp-go/jdwp/protocol/jdwp/ids"
)

func TestDecodeCompositeThreadStartAndBreakpoint(t *testing.T) {
	table := codec.NewTable()
	w := codec.NewWriter(table)
	defer w.Release()

	w.WriteByte(byte(ids.SuspendPolicyAll))
	w.WriteInt(2) // two events

	w.WriteByte(byte(ids.EventKindThreadStart))
	w.WriteInt(1)
	w.WriteThreadID(ids.ThreadID(5))

	w.WriteByte(byte(ids.EventKindBreakpoint))
	w.WriteInt(2)
	w.WriteThreadID(ids.ThreadID(5))
	w.WriteLocation(codec.Location{Tag: ids.TypeTagClass, Class: ids.ClassID(1), Method: ids.MethodID(2), Offset: 0})

	r := codec.NewReader(w.Bytes(), table)
	composite, err := event.DecodeComposite(r)
	require.NoError(t, err)
	assert.Equal(t, ids.SuspendPolicyAll, composite.SuspendPolicy)
	require.Len(t, composite.Events, 2)

	assert.Equal(t, ids.EventKindThreadStart, composite.Events[0].Kind)
	assert.Equal(t, int32(1), composite.Events[0].RequestID)
	assert.Equal(t, ids.ThreadID(5), composite.Events[0].Thread)

	assert.Equal(t, ids.EventKindBreakpoint, composite.Events[1].Kind)
	assert.True(t, composite.Events[1].HasLocation)
	assert.Equal(t, ids.ClassID(1), composite.Events[1].Location.Class)
}

func TestDecodeEventFramePopHasNoPayload(t *testing.T) {
	table := codec.NewTable()
	w := codec.NewWriter(table)
	defer w.Release()

	w.WriteByte(byte(ids.SuspendPolicyNone))
	w.WriteInt(1)
	w.WriteByte(byte(ids.EventKindFramePop))

	r := codec.NewReader(w.Bytes(), table)
	composite, err := event.DecodeComposite(r)
	require.NoError(t, err)
	require.Len(t, composite.Events, 1)
	assert.Equal(t, ids.EventKindFramePop, composite.Events[0].Kind)
	assert.Equal(t, 0, r.Remaining())
}

func TestDecodeEventUnknownKindFails(t *testing.T) {
	table := codec.NewTable()
	w := codec.NewWriter(table)
	defer w.Release()

	w.WriteByte(byte(ids.SuspendPolicyNone))
	w.WriteInt(1)
	w.WriteByte(200) // not a valid EventKind

	r := codec.NewReader(w.Bytes(), table)
	_, err := event.DecodeComposite(r)
	require.Error(t, err)
	var bad *codec.ErrIllegalByteTag
	require.ErrorAs(t, err, &bad)
}

func TestDecodeEventFieldModificationCarriesValue(t *testing.T) {
	table := codec.NewTable()
	w := codec.NewWriter(table)
	defer w.Release()

	w.WriteByte(byte(ids.SuspendPolicyEventThread))
	w.WriteInt(1)
	w.WriteByte(byte(ids.EventKindFieldModification))
	w.WriteInt(9)
	w.WriteThreadID(ids.ThreadID(1))
	w.WriteTypeTag(ids.TypeTagClass)
	w.WriteReferenceTypeID(ids.ReferenceTypeID(3))
	w.WriteFieldID(ids.FieldID(4))
	w.WriteObjectID(ids.ObjectID(5))
	w.WriteValue(codec.Value{Tag: ids.TagInt, Int: 77})

	r := codec.NewReader(w.Bytes(), table)
	composite, err := event.DecodeComposite(r)
	require.NoError(t, err)
	require.Len(t, composite.Events, 1)
	ev := composite.Events[0]
	assert.True(t, ev.HasFieldRef)
	assert.True(t, ev.HasValue)
	assert.Equal(t, int32(77), ev.Value.Int)
}
