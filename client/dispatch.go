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

package client

import (
	"context"
	"log"
	"sync"

	"github.com/cloudwego/gopkg/concurrency/gopool"

	"github.com/jdwp-go/jdwp/protocol/jdwp/event"
	"github.com/jdwp-go/jdwp/protocol/jdwp/ids"
)

// EventHandler is an asynchronously-invokable callback taking the
// composite's suspend policy and one decoded Event (§4.6). A handler may be
// invoked concurrently with itself across different composites only if it
// is registered more than once; a single registration's deliveries are
// strictly ordered (see dispatcher).
type EventHandler func(policy ids.SuspendPolicy, ev event.Event) error

type dispatchItem struct {
	policy ids.SuspendPolicy
	ev     event.Event
}

// handlerWorker drains one handler's ordered delivery queue on its own
// long-lived goroutine, started once via gopool.CtxGo. This is how the
// ordering guarantee in §5 ("events preserve wire order when dispatched to
// a single handler") is reconciled with §4.6's "spawn one task per
// (handler × event) pair": the logical unit of work is still exactly one
// handler invocation per delivered event, but it is scheduled onto a
// per-handler sequential worker rather than an ad hoc goroutine, so two
// events destined for the same handler can never race each other.
type handlerWorker struct {
	handler EventHandler
	queue   chan dispatchItem
}

func newHandlerWorker(h EventHandler, bufSize int) *handlerWorker {
	w := &handlerWorker{handler: h, queue: make(chan dispatchItem, bufSize)}
	gopool.CtxGo(context.Background(), w.run)
	return w
}

func (w *handlerWorker) run() {
	for item := range w.queue {
		if err := w.handler(item.policy, item.ev); err != nil {
			log.Printf("jdwp: event handler error: %v", err)
		}
	}
}

// dispatcher is the client's event-dispatch task (§4.6): a single goroutine
// drains composites off an internal queue in arrival order (so composites
// are never reordered relative to each other) and fans each composite's
// events out to every currently-registered handler's worker, in wire order.
//
// Composites that arrive before any handler is registered are buffered and
// flushed, once, in order, to the first handler registered — see addHandler.
type dispatcher struct {
	queue chan event.Composite

	mu       sync.Mutex
	workers  []*handlerWorker
	buffered []event.Composite
	bufSize  int
}

func newDispatcher(queueSize int) *dispatcher {
	d := &dispatcher{queue: make(chan event.Composite, queueSize), bufSize: queueSize}
	go d.run()
	return d
}

func (d *dispatcher) run() {
	for composite := range d.queue {
		d.mu.Lock()
		workers := d.workers
		if len(workers) == 0 {
			d.buffered = append(d.buffered, composite)
			d.mu.Unlock()
			continue
		}
		d.mu.Unlock()
		fanOut(workers, composite)
	}
}

// submit enqueues a decoded composite from the receive pump. It blocks if
// the queue is full — see Options.EventQueueSize.
func (d *dispatcher) submit(composite event.Composite) {
	d.queue <- composite
}

func (d *dispatcher) addHandler(h EventHandler) {
	w := newHandlerWorker(h, d.bufSize)

	d.mu.Lock()
	first := len(d.workers) == 0
	d.workers = append(d.workers, w)
	if first {
		// Flush under the lock so run() cannot hand w a later composite
		// ahead of the buffered backlog.
		for _, composite := range d.buffered {
			fanOut([]*handlerWorker{w}, composite)
		}
		d.buffered = nil
	}
	d.mu.Unlock()
}

// close stops accepting new composites. Already-queued composites continue
// to drain to their handlers (§4.5 "Event dispatch continues until its
// queue drains").
func (d *dispatcher) close() {
	close(d.queue)
}

func fanOut(workers []*handlerWorker, composite event.Composite) {
	for _, ev := range composite.Events {
		for _, w := range workers {
			w.queue <- dispatchItem{policy: composite.SuspendPolicy, ev: ev}
		}
	}
}
