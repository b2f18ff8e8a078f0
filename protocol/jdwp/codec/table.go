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
	"sync/atomic"

	"github.com/jdwp-go/jdwp/protocol/jdwp/ids"
)

// Table holds the connection's current identifier byte-widths behind an
// atomic snapshot pointer.
//
// IdSizes negotiation completing must happen-before every subsequent
// encode/decode, serialized against concurrent codec reads (§5). Nothing in
// cloudwego/gopkg models an analogous mutable, read-mostly, negotiated-once
// piece of state, but the write-once/read-often shape is exactly what a
// snapshot pointer is for: negotiation does one atomic.Pointer.Store, every
// decode does one atomic.Pointer.Load, and there is never a reader blocked
// behind a writer. A sync.RWMutex would also satisfy the requirement but
// pays a lock/unlock on every single decoded identifier for a table that,
// in practice, is written exactly once per connection.
type Table struct {
	sizes atomic.Pointer[ids.IDSizes]
}

// NewTable returns a Table initialized to the pre-negotiation default
// (every width 8 bytes, per §3).
func NewTable() *Table {
	t := &Table{}
	d := ids.DefaultIDSizes()
	t.sizes.Store(&d)
	return t
}

// Load returns the current width snapshot.
func (t *Table) Load() ids.IDSizes {
	return *t.sizes.Load()
}

// Set replaces the width table. Called exactly once, by the client after
// the IdSizes command's reply arrives during negotiation (§4.5).
func (t *Table) Set(sizes ids.IDSizes) {
	s := sizes
	t.sizes.Store(&s)
}
