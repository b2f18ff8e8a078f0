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

package transport

import (
	"sync"

	"github.com/jdwp-go/jdwp/protocol/jdwp/wire"
)

// packetQueue is the transport's inbound channel (§4.4): unbounded because
// the receive pump must drain it continuously and must never be able to
// block the reader goroutine. None of cloudwego/gopkg's own channel-shaped
// types (bufiox, gopool) model an unbounded producer/consumer queue — they
// all operate on already-sized buffers or fixed worker pools — so this is
// a stdlib sync.Mutex/sync.Cond queue rather than an adaptation of an
// existing type.
type packetQueue struct {
	mu     sync.Mutex
	cond   *sync.Cond
	items  []wire.AnyRawPacket
	err    error
	closed bool
}

func newPacketQueue() *packetQueue {
	q := &packetQueue{}
	q.cond = sync.NewCond(&q.mu)
	return q
}

func (q *packetQueue) push(p wire.AnyRawPacket) {
	q.mu.Lock()
	q.items = append(q.items, p)
	q.mu.Unlock()
	q.cond.Signal()
}

// close records the terminal error from the reader goroutine and wakes
// every blocked popper; subsequent pops drain whatever was queued before
// returning err.
func (q *packetQueue) close(err error) {
	q.mu.Lock()
	if !q.closed {
		q.closed = true
		q.err = err
	}
	q.mu.Unlock()
	q.cond.Broadcast()
}

func (q *packetQueue) pop() (wire.AnyRawPacket, error) {
	q.mu.Lock()
	defer q.mu.Unlock()
	for len(q.items) == 0 {
		if q.closed {
			return wire.AnyRawPacket{}, q.err
		}
		q.cond.Wait()
	}
	p := q.items[0]
	q.items = q.items[1:]
	return p, nil
}
