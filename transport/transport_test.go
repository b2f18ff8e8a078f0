package transport_test

import (
	"io"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jdwp-go/jdwp/protocol/jdwp/wire"
	"github.com/jdwp-go/jdwp/transport"
)

func TestSendWritesFramedPacket(t *testing.T) {
	client, peer := net.Pipe()
	defer client.Close()
	defer peer.Close()

	tr := transport.Wrap(client)
	p := wire.RawCommandPacket{ID: 3, CommandSet: 1, Command: 1, Data: []byte("abc")}

	done := make(chan error, 1)
	go func() { done <- tr.Send(p) }()

	buf := make([]byte, wire.HeaderSize+len(p.Data))
	_, err := io.ReadFull(peer, buf)
	require.NoError(t, err)
	require.NoError(t, <-done)

	got, _, err := wire.Decode(buf)
	require.NoError(t, err)
	require.NotNil(t, got.Command)
	assert.Equal(t, p.Data, got.Command.Data)
}

func TestRecvDecodesInboundReply(t *testing.T) {
	client, peer := net.Pipe()
	defer client.Close()
	defer peer.Close()

	tr := transport.Wrap(client)

	reply := wire.RawReplyPacket{ID: 9, ErrorCode: 0, Data: []byte("hi")}
	go func() {
		_, _ = peer.Write(wire.EncodeReply(reply))
	}()

	pkt, err := tr.Recv()
	require.NoError(t, err)
	require.NotNil(t, pkt.Reply)
	assert.Equal(t, reply.ID, pkt.Reply.ID)
	assert.Equal(t, reply.Data, pkt.Reply.Data)
}

func TestRecvSurfacesPeerCloseAsTerminalError(t *testing.T) {
	client, peer := net.Pipe()
	defer client.Close()

	tr := transport.Wrap(client)
	peer.Close()

	done := make(chan struct{})
	var err error
	go func() {
		_, err = tr.Recv()
		close(done)
	}()

	select {
	case <-done:
		assert.Error(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("Recv did not return after peer close")
	}
}
