package client_test

import (
	"context"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cloudwego/gopkg/bufiox"

	jdwpclient "github.com/jdwp-go/jdwp/client"
	"github.com/jdwp-go/jdwp/protocol/jdwp/command"
	"github.com/jdwp-go/jdwp/protocol/jdwp/event"
	"github.com/jdwp-go/jdwp/protocol/jdwp/ids"
	"github.com/jdwp-go/jdwp/protocol/jdwp/wire"
)

// fakePeer emulates just enough of a JVM's side of the handshake,
// negotiation, and command/reply cycle for the client to be tested without
// a live JVM, per §9's integration tests being out of unit-CI scope.
type fakePeer struct {
	conn   net.Conn
	reader bufiox.Reader
}

func newFakePeer(t *testing.T, conn net.Conn) *fakePeer {
	t.Helper()
	buf := make([]byte, 14)
	_, err := readFull(conn, buf)
	require.NoError(t, err)
	require.Equal(t, "JDWP-Handshake", string(buf))
	_, err = conn.Write([]byte("JDWP-Handshake"))
	require.NoError(t, err)
	return &fakePeer{conn: conn, reader: bufiox.NewDefaultReader(conn)}
}

func readFull(conn net.Conn, buf []byte) (int, error) {
	total := 0
	for total < len(buf) {
		n, err := conn.Read(buf[total:])
		total += n
		if err != nil {
			return total, err
		}
	}
	return total, nil
}

func (p *fakePeer) nextCommand(t *testing.T) *wire.RawCommandPacket {
	t.Helper()
	pkt, err := wire.DecodeFrom(p.reader)
	require.NoError(t, err)
	require.NotNil(t, pkt.Command)
	return pkt.Command
}

func (p *fakePeer) reply(id uint32, data []byte) {
	_, _ = p.conn.Write(wire.EncodeReply(wire.RawReplyPacket{ID: id, ErrorCode: 0, Data: data}))
}

func (p *fakePeer) replyError(id uint32, code uint16) {
	_, _ = p.conn.Write(wire.EncodeReply(wire.RawReplyPacket{ID: id, ErrorCode: code}))
}

func (p *fakePeer) sendEventComposite(data []byte) {
	_, _ = p.conn.Write(wire.EncodeCommand(wire.RawCommandPacket{
		CommandSet: event.CommandSet, Command: event.Command, Data: data,
	}))
}

// negotiateDefault replies to the client's IdSizes negotiation command with
// default 8-byte widths in the source's field order.
func (p *fakePeer) negotiateDefault(t *testing.T) {
	t.Helper()
	cmd := p.nextCommand(t)
	require.Equal(t, uint8(1), cmd.CommandSet)
	require.Equal(t, uint8(7), cmd.Command)

	w := encodeIdSizesReply(8, 8, 8, 8, 8)
	p.reply(cmd.ID, w)
}

func encodeIdSizesReply(field, method, object, refType, frame int32) []byte {
	buf := make([]byte, 0, 20)
	put := func(v int32) {
		buf = append(buf, byte(v>>24), byte(v>>16), byte(v>>8), byte(v))
	}
	put(field)
	put(method)
	put(object)
	put(refType)
	put(frame)
	return buf
}

func dialPipe(t *testing.T) (net.Conn, net.Conn) {
	t.Helper()
	a, b := net.Pipe()
	t.Cleanup(func() { a.Close(); b.Close() })
	return a, b
}

func connect(t *testing.T) (*jdwpclient.Client, *fakePeer) {
	t.Helper()
	clientConn, peerConn := dialPipe(t)

	type result struct {
		c   *jdwpclient.Client
		err error
	}
	done := make(chan result, 1)
	go func() {
		c, err := jdwpclient.Connect(clientConn, jdwpclient.DefaultOptions())
		done <- result{c, err}
	}()

	peer := newFakePeer(t, peerConn)
	peer.negotiateDefault(t)

	res := <-done
	require.NoError(t, res.err)
	return res.c, peer
}

func TestConnectNegotiatesIdSizes(t *testing.T) {
	c, _ := connect(t)
	require.NotNil(t, c)
}

func TestInvokeVersionRoundTrip(t *testing.T) {
	c, peer := connect(t)

	var reply command.VersionReply
	done := make(chan error, 1)
	go func() { done <- jdwpclient.Invoke(c, command.Version{}, &reply) }()

	cmd := peer.nextCommand(t)
	assert.Equal(t, uint8(1), cmd.CommandSet)
	assert.Equal(t, uint8(1), cmd.Command)

	w := []byte{}
	appendString := func(s string) {
		n := int32(len(s))
		w = append(w, byte(n>>24), byte(n>>16), byte(n>>8), byte(n))
		w = append(w, s...)
	}
	appendInt := func(v int32) {
		w = append(w, byte(v>>24), byte(v>>16), byte(v>>8), byte(v))
	}
	appendString("fake jvm")
	appendInt(11)
	appendInt(0)
	appendString("11.0.2")
	appendString("FakeJVM")
	peer.reply(cmd.ID, w)

	require.NoError(t, <-done)
	assert.Equal(t, "fake jvm", reply.Description)
	assert.Equal(t, int32(11), reply.Major)
}

func TestInvokeSurfacesJdwpError(t *testing.T) {
	c, peer := connect(t)

	var reply command.VersionReply
	done := make(chan error, 1)
	go func() { done <- jdwpclient.Invoke(c, command.Version{}, &reply) }()

	cmd := peer.nextCommand(t)
	peer.replyError(cmd.ID, uint16(ids.ErrVmDead))

	err := <-done
	require.Error(t, err)
	assert.Contains(t, err.Error(), "VM_DEAD")
}

func TestDisposeThenSendFailsFast(t *testing.T) {
	c, peer := connect(t)

	done := make(chan error, 1)
	go func() { done <- c.Dispose(context.Background()) }()

	cmd := peer.nextCommand(t)
	assert.Equal(t, uint8(1), cmd.CommandSet)
	assert.Equal(t, uint8(6), cmd.Command)
	peer.reply(cmd.ID, nil)
	require.NoError(t, <-done)

	var reply command.VersionReply
	err := jdwpclient.Invoke(c, command.Version{}, &reply)
	require.Error(t, err)
}

func TestEventDispatchBuffersUntilFirstHandler(t *testing.T) {
	c, peer := connect(t)

	w := []byte{}
	appendInt := func(v int32) {
		w = append(w, byte(v>>24), byte(v>>16), byte(v>>8), byte(v))
	}
	w = append(w, byte(ids.SuspendPolicyNone))
	appendInt(1) // one event
	w = append(w, byte(ids.EventKindThreadStart))
	appendInt(7) // request id
	w = append(w, 0, 0, 0, 0, 0, 0, 0, 9) // thread id, 8 bytes wide

	peer.sendEventComposite(w)

	received := make(chan event.Event, 1)
	// Give the composite time to arrive and buffer before any handler exists.
	time.Sleep(50 * time.Millisecond)
	c.OnEvent(func(policy ids.SuspendPolicy, ev event.Event) error {
		received <- ev
		return nil
	})

	select {
	case ev := <-received:
		assert.Equal(t, ids.EventKindThreadStart, ev.Kind)
		assert.Equal(t, int32(7), ev.RequestID)
		assert.Equal(t, ids.ThreadID(9), ev.Thread)
	case <-time.After(2 * time.Second):
		t.Fatal("buffered event was never delivered to the first handler")
	}
}
