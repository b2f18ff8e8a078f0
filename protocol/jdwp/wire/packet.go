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

// Package wire implements the length-prefixed JDWP packet envelope: the
// 11-byte fixed header (length, id, flags, command-set/command or error
// code), plus incremental encode/decode with the same "need more / one
// packet + residual / protocol error" contract cloudwego/gopkg's
// protocol/ttheader.Decode uses for its own length-prefixed envelope.
package wire

import (
	"encoding/binary"

	"github.com/cloudwego/gopkg/bufiox"

	"github.com/jdwp-go/jdwp/protocol/jdwp/jdwperr"
)

const (
	// HeaderSize is the fixed envelope header: length(4) + id(4) + flags(1) + variable(2).
	HeaderSize = 11

	// MaxPacketSize is the 4 MiB ceiling on a packet's advertised length (§3).
	MaxPacketSize = 1 << 22

	// replyFlag is bit 7 of the flags byte; all other bits are reserved zero.
	replyFlag = 0x80
)

// RawCommandPacket is an undecoded command packet, either outbound (built by
// the client) or inbound (a peer-originated command, almost always an event
// composite at command-set 64/command 100).
type RawCommandPacket struct {
	ID         uint32
	CommandSet uint8
	Command    uint8
	Data       []byte
}

// RawReplyPacket is an undecoded reply packet correlated to a prior command
// by ID.
type RawReplyPacket struct {
	ID        uint32
	ErrorCode uint16
	Data      []byte
}

// AnyRawPacket is the sum type yielded by the raw transport's inbound
// stream: every packet read off the wire is either a command or a reply,
// distinguished by the flags byte.
type AnyRawPacket struct {
	Command *RawCommandPacket
	Reply   *RawReplyPacket
}

// IsReply reports whether this packet carries a reply payload.
func (p AnyRawPacket) IsReply() bool { return p.Reply != nil }

// ErrShortBuffer is returned by Decode when buf does not yet contain a
// complete packet. The caller (transport) should read more bytes and retry;
// Decode performs no partial consumption in this case.
var ErrShortBuffer = jdwperr.NewFramingError("need more bytes")

// Decode parses exactly one packet from the front of buf.
//
// On success it returns the decoded packet and the number of bytes consumed
// from buf (always equal to the packet's advertised length). On a short
// buffer it returns ErrShortBuffer and consumed == 0. A malformed length
// prefix (too small or too large) is a terminal *jdwperr.FramingError,
// distinct from ErrShortBuffer.
func Decode(buf []byte) (pkt AnyRawPacket, consumed int, err error) {
	if len(buf) < 4 {
		return AnyRawPacket{}, 0, ErrShortBuffer
	}
	length := binary.BigEndian.Uint32(buf[:4])
	if length > MaxPacketSize {
		return AnyRawPacket{}, 0, jdwperr.NewFramingError("oversized packet")
	}
	if length < HeaderSize {
		return AnyRawPacket{}, 0, jdwperr.NewFramingError("undersized packet")
	}
	if uint32(len(buf)) < length {
		return AnyRawPacket{}, 0, ErrShortBuffer
	}

	id := binary.BigEndian.Uint32(buf[4:8])
	flags := buf[8]
	data := buf[HeaderSize:length]
	// Copy the payload out: buf is a caller-owned scratch buffer that will
	// be reused/grown on the next read.
	payload := make([]byte, len(data))
	copy(payload, data)

	if flags&replyFlag != 0 {
		errCode := binary.BigEndian.Uint16(buf[9:11])
		return AnyRawPacket{Reply: &RawReplyPacket{ID: id, ErrorCode: errCode, Data: payload}}, int(length), nil
	}
	cmdSet, cmd := buf[9], buf[10]
	return AnyRawPacket{Command: &RawCommandPacket{ID: id, CommandSet: cmdSet, Command: cmd, Data: payload}}, int(length), nil
}

// DecodeFrom reads exactly one packet off a bufiox.Reader, the same
// Next(n)-then-parse shape protocol/ttheader.Decode uses for its own
// length-prefixed envelope: read the fixed header in one Next, inspect its
// length prefix, then Next the exact payload length. Unlike Decode, this
// never returns ErrShortBuffer — Next blocks until the underlying stream
// has delivered enough bytes, or returns the stream's own error (including
// io.EOF on a clean peer close).
func DecodeFrom(r bufiox.Reader) (AnyRawPacket, error) {
	header, err := r.Next(HeaderSize)
	if err != nil {
		return AnyRawPacket{}, err
	}
	length := binary.BigEndian.Uint32(header[:4])
	if length > MaxPacketSize {
		return AnyRawPacket{}, jdwperr.NewFramingError("oversized packet")
	}
	if length < HeaderSize {
		return AnyRawPacket{}, jdwperr.NewFramingError("undersized packet")
	}

	id := binary.BigEndian.Uint32(header[4:8])
	flags := header[8]

	payloadLen := int(length) - HeaderSize
	var payload []byte
	if payloadLen > 0 {
		data, err := r.Next(payloadLen)
		if err != nil {
			return AnyRawPacket{}, err
		}
		payload = make([]byte, payloadLen)
		copy(payload, data)
	}

	if flags&replyFlag != 0 {
		errCode := binary.BigEndian.Uint16(header[9:11])
		return AnyRawPacket{Reply: &RawReplyPacket{ID: id, ErrorCode: errCode, Data: payload}}, nil
	}
	cmdSet, cmd := header[9], header[10]
	return AnyRawPacket{Command: &RawCommandPacket{ID: id, CommandSet: cmdSet, Command: cmd, Data: payload}}, nil
}

// EncodeCommand serializes an outbound command packet in the wire order
// defined by §3: length, id, flags(=0), command-set, command, payload.
func EncodeCommand(p RawCommandPacket) []byte {
	buf := make([]byte, HeaderSize+len(p.Data))
	binary.BigEndian.PutUint32(buf[0:4], uint32(HeaderSize+len(p.Data)))
	binary.BigEndian.PutUint32(buf[4:8], p.ID)
	buf[8] = 0 // command packet: flags reserved bits are 0, reply bit unset
	buf[9] = p.CommandSet
	buf[10] = p.Command
	copy(buf[HeaderSize:], p.Data)
	return buf
}

// EncodeReply serializes a reply packet. The client never emits replies —
// this exists for round-trip test symmetry with Decode and for anything
// that wants to fake a peer in tests.
func EncodeReply(p RawReplyPacket) []byte {
	buf := make([]byte, HeaderSize+len(p.Data))
	binary.BigEndian.PutUint32(buf[0:4], uint32(HeaderSize+len(p.Data)))
	binary.BigEndian.PutUint32(buf[4:8], p.ID)
	buf[8] = replyFlag
	binary.BigEndian.PutUint16(buf[9:11], p.ErrorCode)
	copy(buf[HeaderSize:], p.Data)
	return buf
}
