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

// Package client implements the JDWP multiplexing client (§4.5): the
// handshake, id-size negotiation, the pending-reply correlation table, and
// the public send/event-subscription surface.
//
// There is no direct analogue for this component in cloudwego/gopkg —
// generated RPC clients don't own a persistent connection's receive pump the
// way a JDWP client must — so its shape is assembled from secondary
// patterns already present elsewhere in cloudwego/gopkg: gopool's
// CtxGo/panic-recovery idiom for background dispatch, bufiox's "one
// mutex-guarded writer" discipline for the outbound sink (here via
// transport.Transport), and thrift/exception.go's structured-error
// taxonomy for failure reporting.
package client

import (
	"context"
	"fmt"
	"log"
	"net"
	"sync"
	"sync/atomic"
	"time"

	"github.com/jdwp-go/jdwp/protocol/jdwp/codec"
	"github.com/jdwp-go/jdwp/protocol/jdwp/command"
	"github.com/jdwp-go/jdwp/protocol/jdwp/event"
	"github.com/jdwp-go/jdwp/protocol/jdwp/ids"
	"github.com/jdwp-go/jdwp/protocol/jdwp/jdwperr"
	"github.com/jdwp-go/jdwp/protocol/jdwp/wire"
	"github.com/jdwp-go/jdwp/transport"
)

const handshakeMagic = "JDWP-Handshake"

// pendingResult is what a send() caller's single-shot channel carries: a
// decodable reply payload plus its error code, or a terminal error if the
// receive pump exited before a reply arrived.
type pendingResult struct {
	data    []byte
	errCode uint16
	err     error
}

// Client is a single JDWP connection: one outbound sink, one pending-reply
// table, one codec table, one monotonic request counter, and the
// background receive pump and event dispatcher (§4.5).
type Client struct {
	transport *transport.Transport
	table     *codec.Table

	nextID atomic.Uint32

	pendingMu sync.Mutex
	pending   map[uint32]chan pendingResult

	disposed atomic.Bool

	dispatcher *dispatcher
}

// Connect performs the handshake, wraps conn in a Transport, negotiates
// identifier widths, and starts the background receive pump and event
// dispatcher. The returned Client is ready for Send/OnEvent calls.
func Connect(conn net.Conn, opts Options) (*Client, error) {
	opts = opts.withDefaults()

	if opts.HandshakeTimeout > 0 {
		if err := conn.SetDeadline(time.Now().Add(opts.HandshakeTimeout)); err != nil {
			return nil, err
		}
		defer conn.SetDeadline(time.Time{})
	}
	if err := handshake(conn); err != nil {
		return nil, err
	}

	c := &Client{
		transport: transport.Wrap(conn),
		table:     codec.NewTable(),
		pending:   make(map[uint32]chan pendingResult),
	}
	c.nextID.Store(1) // request ids start at 1, per §4.5
	c.dispatcher = newDispatcher(opts.EventQueueSize)

	go c.recvLoop()

	var sizes command.IdSizesReply
	if err := Invoke(c, command.IdSizes{}, &sizes); err != nil {
		c.transport.Close()
		return nil, fmt.Errorf("jdwp: id-sizes negotiation: %w", err)
	}
	c.table.Set(sizes.Widths())

	return c, nil
}

func handshake(conn net.Conn) error {
	if _, err := conn.Write([]byte(handshakeMagic)); err != nil {
		return err
	}
	buf := make([]byte, len(handshakeMagic))
	if _, err := readFull(conn, buf); err != nil {
		return err
	}
	if string(buf) != handshakeMagic {
		return jdwperr.NewHandshakeError(fmt.Sprintf("expected JDWP handshake, got %q", buf))
	}
	return nil
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

// Invoke sends cmd and decodes its reply into reply, returning once a
// matching reply has been received and decoded (§4.5 send() contract).
// reply is typically a pointer to one of the command package's *Reply
// types, e.g. &command.VersionReply{}.
func Invoke[R command.Reply](c *Client, cmd command.Command, reply R) error {
	data, err := c.send(cmd)
	if err != nil {
		return err
	}
	r := codec.NewReader(data, c.table)
	if err := reply.Decode(r); err != nil {
		return jdwperr.NewDecodeError("reply decode failed", err)
	}
	return nil
}

func (c *Client) send(cmd command.Command) ([]byte, error) {
	if c.disposed.Load() {
		return nil, jdwperr.NewUsageError("client is disposed")
	}

	id := c.nextID.Add(1) - 1
	w := codec.NewWriter(c.table)
	cmd.Encode(w)
	payload := append([]byte(nil), w.Bytes()...)
	w.Release()

	ch := make(chan pendingResult, 1)
	c.pendingMu.Lock()
	if c.pending == nil {
		// The receive pump has exited; no reply can ever arrive.
		c.pendingMu.Unlock()
		return nil, jdwperr.ErrBrokenPipe
	}
	c.pending[id] = ch
	c.pendingMu.Unlock()

	op := cmd.Opcode()
	pkt := wire.RawCommandPacket{ID: id, CommandSet: op.CommandSet, Command: op.Command, Data: payload}
	if err := c.transport.Send(pkt); err != nil {
		c.pendingMu.Lock()
		delete(c.pending, id)
		c.pendingMu.Unlock()
		return nil, err
	}

	result := <-ch
	if result.err != nil {
		return nil, result.err
	}
	if result.errCode != 0 {
		code := ids.ErrorConstant(result.errCode)
		return nil, &jdwperr.JdwpError{Code: result.errCode, Message: code.Name()}
	}
	return result.data, nil
}

func (c *Client) recvLoop() {
	for {
		pkt, err := c.transport.Recv()
		if err != nil {
			c.failAllPending()
			c.dispatcher.close()
			return
		}
		if pkt.IsReply() {
			c.deliverReply(pkt.Reply)
			continue
		}
		c.handleInboundCommand(pkt.Command)
	}
}

func (c *Client) deliverReply(rep *wire.RawReplyPacket) {
	c.pendingMu.Lock()
	ch, ok := c.pending[rep.ID]
	if ok {
		delete(c.pending, rep.ID)
	}
	c.pendingMu.Unlock()
	if !ok {
		log.Printf("jdwp: dropping reply for unknown request id %d", rep.ID)
		return
	}
	ch <- pendingResult{data: rep.Data, errCode: rep.ErrorCode}
}

func (c *Client) handleInboundCommand(cmd *wire.RawCommandPacket) {
	if cmd.CommandSet != event.CommandSet || cmd.Command != event.Command {
		log.Printf("jdwp: dropping unknown peer command %d/%d", cmd.CommandSet, cmd.Command)
		return
	}
	r := codec.NewReader(cmd.Data, c.table)
	composite, err := event.DecodeComposite(r)
	if err != nil {
		log.Printf("jdwp: dropping malformed event composite: %v", err)
		return
	}
	c.dispatcher.submit(composite)
}

func (c *Client) failAllPending() {
	c.pendingMu.Lock()
	pending := c.pending
	c.pending = nil
	c.pendingMu.Unlock()

	for _, ch := range pending {
		ch <- pendingResult{err: jdwperr.ErrBrokenPipe}
	}
}

// Dispose sends the Dispose command (1/6), waits for its empty reply, and
// marks the client so that subsequent Send/Invoke calls fail fast with a
// Usage error rather than hang on a peer that will not reply (§9 "Dispose
// under contention").
func (c *Client) Dispose(ctx context.Context) error {
	var reply command.DisposeReply
	err := Invoke(c, command.Dispose{}, &reply)
	c.disposed.Store(true)
	return err
}

// OnEvent registers a handler for every subsequently dispatched event
// composite (§4.6). See dispatcher for buffering/ordering guarantees.
func (c *Client) OnEvent(h EventHandler) {
	c.dispatcher.addHandler(h)
}

// Close tears down the connection without issuing Dispose. The receive
// pump and event dispatcher drain and exit on their own once the
// underlying connection's read fails.
func (c *Client) Close() error {
	c.disposed.Store(true)
	return c.transport.Close()
}
