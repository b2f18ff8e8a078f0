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

// Package event decodes the JDWP event composite: the inbound command at
// (command-set=64, command=100), a SuspendPolicy byte followed by a vector
// of individually-tagged Events (§4.6).
//
// The per-kind payload shapes are grounded the same way the command catalog
// is: plain structs decoded field-by-field in declaration order off a
// codec.Reader, in the style of cloudwego/gopkg's protocol/thrift/base
// generated structs, adapted by hand since there is no JDWP IDL to generate from.
package event

import (
	"github.com/jdwp-go/jdwp/protocol/jdwp/codec"
	"github.com/jdwp-go/jdwp/protocol/jdwp/ids"
)

const (
	// CommandSet and Command identify the event composite among inbound
	// peer-originated commands (§4.5 receive pump, §4.6).
	CommandSet = 64
	Command    = 100
)

// Event is one entry within a composite: Kind discriminates which of the
// typed payload fields below is populated.
type Event struct {
	Kind ids.EventKind

	RequestID int32

	Thread ids.ThreadID
	HasThread bool

	Location    codec.Location
	HasLocation bool

	Exception     ids.TaggedObjectId
	CatchLocation codec.Location
	HasException  bool

	RefTypeTag ids.TypeTag
	TypeID     ids.ReferenceTypeID
	Signature  string
	Status     ids.ClassStatus
	HasClassInfo bool

	Field  ids.FieldID
	Object ids.ObjectID
	HasFieldRef bool

	Value    codec.Value
	HasValue bool

	MonitorObject ids.TaggedObjectId
	HasMonitor    bool

	Timeout int64
	HasTimeout bool

	TimedOut bool
	HasTimedOut bool
}

// Composite is the full inbound event command payload (§4.6).
type Composite struct {
	SuspendPolicy ids.SuspendPolicy
	Events        []Event
}

// DecodeComposite decodes an event composite's payload. Any EventKind not
// in the §4.6 table is an ErrIllegalByteTag, matching every other closed
// discriminator in this codec.
func DecodeComposite(r *codec.Reader) (Composite, error) {
	policyByte, err := r.ReadByte()
	if err != nil {
		return Composite{}, err
	}
	events, err := codec.DecodeVec(r, decodeEvent)
	if err != nil {
		return Composite{}, err
	}
	return Composite{SuspendPolicy: ids.SuspendPolicy(policyByte), Events: events}, nil
}

func decodeEvent(r *codec.Reader) (Event, error) {
	kindByte, err := r.ReadByte()
	if err != nil {
		return Event{}, err
	}
	kind := ids.EventKind(kindByte)

	var e Event
	e.Kind = kind

	switch kind {
	case ids.EventKindSingleStep, ids.EventKindBreakpoint, ids.EventKindMethodEntry,
		ids.EventKindMethodExit:
		if err = readRequestIDAndThread(r, &e); err != nil {
			return Event{}, err
		}
		e.Location, err = r.ReadLocation()
		e.HasLocation = true

	case ids.EventKindMethodExitWithReturnValue:
		if err = readRequestIDAndThread(r, &e); err != nil {
			return Event{}, err
		}
		if e.Location, err = r.ReadLocation(); err != nil {
			return Event{}, err
		}
		e.HasLocation = true
		e.Value, err = r.ReadValue()
		e.HasValue = true

	case ids.EventKindFramePop, ids.EventKindUserDefined, ids.EventKindClassLoad,
		ids.EventKindExceptionCatch, ids.EventKindVmDisconnected:
		// no payload

	case ids.EventKindException:
		if err = readRequestIDAndThread(r, &e); err != nil {
			return Event{}, err
		}
		if e.Location, err = r.ReadLocation(); err != nil {
			return Event{}, err
		}
		e.HasLocation = true
		if e.Exception, err = r.ReadTaggedObjectId(); err != nil {
			return Event{}, err
		}
		e.CatchLocation, err = r.ReadLocation()
		e.HasException = true

	case ids.EventKindThreadStart, ids.EventKindThreadDeath, ids.EventKindVmStart:
		err = readRequestIDAndThread(r, &e)

	case ids.EventKindClassPrepare:
		if e.RequestID, err = r.ReadInt(); err != nil {
			return Event{}, err
		}
		if e.Thread, err = r.ReadThreadID(); err != nil {
			return Event{}, err
		}
		e.HasThread = true
		if e.RefTypeTag, err = r.ReadTypeTag(); err != nil {
			return Event{}, err
		}
		if e.TypeID, err = r.ReadReferenceTypeID(); err != nil {
			return Event{}, err
		}
		if e.Signature, err = r.ReadString(); err != nil {
			return Event{}, err
		}
		status, statusErr := r.ReadInt()
		err = statusErr
		e.Status = ids.ClassStatus(status)
		e.HasClassInfo = true

	case ids.EventKindClassUnload:
		if e.RequestID, err = r.ReadInt(); err != nil {
			return Event{}, err
		}
		e.Signature, err = r.ReadString()

	case ids.EventKindFieldAccess, ids.EventKindFieldModification:
		if err = readRequestIDAndThread(r, &e); err != nil {
			return Event{}, err
		}
		if e.RefTypeTag, err = r.ReadTypeTag(); err != nil {
			return Event{}, err
		}
		if e.TypeID, err = r.ReadReferenceTypeID(); err != nil {
			return Event{}, err
		}
		if e.Field, err = r.ReadFieldID(); err != nil {
			return Event{}, err
		}
		if e.Object, err = r.ReadObjectID(); err != nil {
			return Event{}, err
		}
		e.HasFieldRef = true
		if kind == ids.EventKindFieldModification {
			e.Value, err = r.ReadValue()
			e.HasValue = true
		}

	case ids.EventKindMonitorContendedEnter, ids.EventKindMonitorContendedEntered:
		if err = readRequestIDAndThread(r, &e); err != nil {
			return Event{}, err
		}
		if e.MonitorObject, err = r.ReadTaggedObjectId(); err != nil {
			return Event{}, err
		}
		e.HasMonitor = true
		e.Location, err = r.ReadLocation()
		e.HasLocation = true

	case ids.EventKindMonitorWait:
		if err = readRequestIDAndThread(r, &e); err != nil {
			return Event{}, err
		}
		if e.MonitorObject, err = r.ReadTaggedObjectId(); err != nil {
			return Event{}, err
		}
		e.HasMonitor = true
		if e.Location, err = r.ReadLocation(); err != nil {
			return Event{}, err
		}
		e.HasLocation = true
		e.Timeout, err = r.ReadLong()
		e.HasTimeout = true

	case ids.EventKindMonitorWaited:
		if err = readRequestIDAndThread(r, &e); err != nil {
			return Event{}, err
		}
		if e.MonitorObject, err = r.ReadTaggedObjectId(); err != nil {
			return Event{}, err
		}
		e.HasMonitor = true
		if e.Location, err = r.ReadLocation(); err != nil {
			return Event{}, err
		}
		e.HasLocation = true
		timedOut, toErr := r.ReadBool()
		err = toErr
		e.TimedOut = timedOut
		e.HasTimedOut = true

	case ids.EventKindVmDeath:
		e.RequestID, err = r.ReadInt()

	default:
		return Event{}, &codec.ErrIllegalByteTag{Tag: kindByte}
	}
	if err != nil {
		return Event{}, err
	}
	return e, nil
}

func readRequestIDAndThread(r *codec.Reader, e *Event) error {
	id, err := r.ReadInt()
	if err != nil {
		return err
	}
	e.RequestID = id
	thread, err := r.ReadThreadID()
	if err != nil {
		return err
	}
	e.Thread = thread
	e.HasThread = true
	return nil
}
