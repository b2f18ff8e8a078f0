package command_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jdwp-go/jdwp/protocol/jdwp/codec"
	"github.com/jdwp-go/jdwp/protocol/jdwp/command"
	"github.com/jdwp-go/jdwp/protocol/jdwp/ids"
)

func TestVersionOpcodeAndEmptyEncode(t *testing.T) {
	table := codec.NewTable()
	w := codec.NewWriter(table)
	defer w.Release()

	v := command.Version{}
	assert.Equal(t, command.Opcode{CommandSet: 1, Command: 1}, v.Opcode())
	v.Encode(w)
	assert.Empty(t, w.Bytes())
}

func TestVersionReplyDecode(t *testing.T) {
	table := codec.NewTable()
	w := codec.NewWriter(table)
	defer w.Release()
	w.WriteString("a jvm")
	w.WriteInt(11)
	w.WriteInt(0)
	w.WriteString("11.0.2")
	w.WriteString("OpenJDK")

	var reply command.VersionReply
	r := codec.NewReader(w.Bytes(), table)
	require.NoError(t, reply.Decode(r))
	assert.Equal(t, "a jvm", reply.Description)
	assert.Equal(t, int32(11), reply.Major)
	assert.Equal(t, int32(0), reply.Minor)
	assert.Equal(t, "11.0.2", reply.VMVersion)
	assert.Equal(t, "OpenJDK", reply.VMName)
}

func TestClassesBySignatureEncodeAndReplyDecode(t *testing.T) {
	table := codec.NewTable()
	w := codec.NewWriter(table)
	defer w.Release()

	cmd := command.ClassesBySignature{Signature: "Ljava/lang/String;"}
	assert.Equal(t, command.Opcode{CommandSet: 1, Command: 2}, cmd.Opcode())
	cmd.Encode(w)

	r := codec.NewReader(w.Bytes(), table)
	got, err := r.ReadString()
	require.NoError(t, err)
	assert.Equal(t, "Ljava/lang/String;", got)

	rw := codec.NewWriter(table)
	defer rw.Release()
	codec.EncodeVec(rw, []command.ClassInfo{
		{TypeTag: ids.TypeTagClass, ReferenceTypeID: ids.ReferenceTypeID(9), Status: ids.ClassStatusPrepared | ids.ClassStatusVerified},
	}, func(w *codec.Writer, ci command.ClassInfo) {
		w.WriteTypeTag(ci.TypeTag)
		w.WriteReferenceTypeID(ci.ReferenceTypeID)
		w.WriteInt(int32(ci.Status))
	})

	var reply command.ClassesBySignatureReply
	rr := codec.NewReader(rw.Bytes(), table)
	require.NoError(t, reply.Decode(rr))
	require.Len(t, reply.Classes, 1)
	assert.Equal(t, ids.TypeTagClass, reply.Classes[0].TypeTag)
	assert.True(t, reply.Classes[0].Status.Prepared())
	assert.True(t, reply.Classes[0].Status.Verified())
}

func TestIdSizesReplyDecodeOrder(t *testing.T) {
	table := codec.NewTable()
	w := codec.NewWriter(table)
	defer w.Release()
	// field, method, object, referenceType, frame
	w.WriteInt(4)
	w.WriteInt(8)
	w.WriteInt(8)
	w.WriteInt(8)
	w.WriteInt(2)

	var reply command.IdSizesReply
	r := codec.NewReader(w.Bytes(), table)
	require.NoError(t, reply.Decode(r))
	assert.Equal(t, int32(4), reply.FieldIDSize)
	assert.Equal(t, int32(8), reply.MethodIDSize)
	assert.Equal(t, int32(8), reply.ObjectIDSize)
	assert.Equal(t, int32(8), reply.ReferenceTypeIDSize)
	assert.Equal(t, int32(2), reply.FrameIDSize)

	widths := reply.Widths()
	assert.Equal(t, byte(8), widths.ObjectIDSize)
	assert.Equal(t, byte(8), widths.MethodIDSize)
	assert.Equal(t, byte(4), widths.FieldIDSize)
	assert.Equal(t, byte(2), widths.FrameIDSize)
}

func TestDisposeEmptyReply(t *testing.T) {
	var reply command.DisposeReply
	r := codec.NewReader(nil, codec.NewTable())
	require.NoError(t, reply.Decode(r))
}

func TestSetEventRequestEncode(t *testing.T) {
	table := codec.NewTable()
	w := codec.NewWriter(table)
	defer w.Release()

	cmd := command.SetEventRequest{EventKind: ids.EventKindBreakpoint, SuspendPolicy: ids.SuspendPolicyAll}
	cmd.Encode(w)

	r := codec.NewReader(w.Bytes(), table)
	kind, err := r.ReadByte()
	require.NoError(t, err)
	assert.Equal(t, byte(ids.EventKindBreakpoint), kind)
	policy, err := r.ReadByte()
	require.NoError(t, err)
	assert.Equal(t, byte(ids.SuspendPolicyAll), policy)
	modCount, err := r.ReadInt()
	require.NoError(t, err)
	assert.Equal(t, int32(0), modCount)
}
