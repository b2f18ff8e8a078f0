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

// Package ids implements the JDWP identifier and tag type system: the
// phantom-namespaced object/method/field/frame identifiers, the tagged
// union discriminators (Tag, TypeTag, SuspendPolicy, EventKind), the JDWP
// error-code enum, and the ClassStatus bitfield.
//
// Go has no direct equivalent of jdb-rs's generic Id<T> phantom type, so
// each namespace gets its own named type over a shared 64-bit payload —
// the same trick cloudwego/gopkg uses for TType/TMessageType in
// protocol/thrift/binary.go: distinct named types instead of a shared int,
// so the compiler catches a ThreadID passed where a FieldID is expected.
package ids

import "fmt"

// Id is the shared 64-bit payload underlying every namespace. Namespace
// types below are defined `type XID Id` so conversions between namespaces
// must be explicit.
type Id uint64

// Namespaces sized by the connection's ObjectIdSize (8 bytes before
// negotiation).
type (
	ObjectID      Id
	ThreadID      Id
	ThreadGroupID Id
	StringID      Id
	ClassLoaderID Id
	ClassObjectID Id
	ArrayID       Id
	ReferenceTypeID Id
	ClassID       Id
	InterfaceID   Id
	ArrayTypeID   Id
)

// Width-specific namespaces.
type (
	MethodID Id // sized by MethodIdSize
	FieldID  Id // sized by FieldIdSize
	FrameID  Id // sized by FrameIdSize
)

// TypeTag discriminates a reference type (§3).
type TypeTag byte

const (
	TypeTagClass     TypeTag = 1
	TypeTagInterface TypeTag = 2
	TypeTagArray     TypeTag = 3
)

func (t TypeTag) String() string {
	switch t {
	case TypeTagClass:
		return "Class"
	case TypeTagInterface:
		return "Interface"
	case TypeTagArray:
		return "Array"
	default:
		return fmt.Sprintf("TypeTag(%d)", byte(t))
	}
}

// ParseTypeTag coerces a wire byte into a TypeTag, per §4.2's
// "unknown ⇒ IllegalByteTag" rule.
func ParseTypeTag(b byte) (TypeTag, bool) {
	switch TypeTag(b) {
	case TypeTagClass, TypeTagInterface, TypeTagArray:
		return TypeTag(b), true
	default:
		return 0, false
	}
}

// Tag is the per-value discriminator byte for the Value sum type (§3).
type Tag byte

const (
	TagArray       Tag = 91
	TagByte        Tag = 66
	TagChar        Tag = 67
	TagObject      Tag = 76
	TagFloat       Tag = 70
	TagDouble      Tag = 68
	TagInt         Tag = 73
	TagLong        Tag = 74
	TagShort       Tag = 83
	TagVoid        Tag = 86
	TagBoolean     Tag = 90
	TagString      Tag = 115
	TagThread      Tag = 116
	TagThreadGroup Tag = 103
	TagClassLoader Tag = 108
	TagClassObject Tag = 99
)

var validTags = map[Tag]string{
	TagArray: "Array", TagByte: "Byte", TagChar: "Char", TagObject: "Object",
	TagFloat: "Float", TagDouble: "Double", TagInt: "Int", TagLong: "Long",
	TagShort: "Short", TagVoid: "Void", TagBoolean: "Boolean", TagString: "String",
	TagThread: "Thread", TagThreadGroup: "ThreadGroup", TagClassLoader: "ClassLoader",
	TagClassObject: "ClassObject",
}

func (t Tag) String() string {
	if name, ok := validTags[t]; ok {
		return name
	}
	return fmt.Sprintf("Tag(%d)", byte(t))
}

// ParseTag coerces a wire byte into a Tag, or reports it unknown.
func ParseTag(b byte) (Tag, bool) {
	_, ok := validTags[Tag(b)]
	return Tag(b), ok
}

// IsObjectLike reports whether t decodes as a TaggedObjectId payload
// (Object, Array, String, Thread, ThreadGroup, ClassLoader, ClassObject).
func (t Tag) IsObjectLike() bool {
	switch t {
	case TagObject, TagArray, TagString, TagThread, TagThreadGroup, TagClassLoader, TagClassObject:
		return true
	default:
		return false
	}
}

// TaggedObjectId is (Tag, Id) where Tag is restricted to the object-like
// subset of Tag (§3).
type TaggedObjectId struct {
	Tag Tag
	Id  ObjectID
}

// SuspendPolicy indicates which threads are suspended when an event fires.
type SuspendPolicy byte

const (
	SuspendPolicyNone        SuspendPolicy = 0
	SuspendPolicyEventThread SuspendPolicy = 1
	SuspendPolicyAll         SuspendPolicy = 2
)

func (p SuspendPolicy) String() string {
	switch p {
	case SuspendPolicyNone:
		return "None"
	case SuspendPolicyEventThread:
		return "EventThread"
	case SuspendPolicyAll:
		return "All"
	default:
		return fmt.Sprintf("SuspendPolicy(%d)", byte(p))
	}
}

// EventKind discriminates an individual Event within an event composite (§4.6).
type EventKind byte

const (
	EventKindSingleStep                 EventKind = 1
	EventKindBreakpoint                 EventKind = 2
	EventKindFramePop                    EventKind = 3
	EventKindException                  EventKind = 4
	EventKindUserDefined                 EventKind = 5
	EventKindThreadStart                EventKind = 6
	EventKindThreadDeath                EventKind = 7
	EventKindClassPrepare                EventKind = 8
	EventKindClassUnload                EventKind = 9
	EventKindClassLoad                  EventKind = 10
	EventKindFieldAccess                EventKind = 20
	EventKindFieldModification          EventKind = 21
	EventKindExceptionCatch             EventKind = 30
	EventKindMethodEntry                EventKind = 40
	EventKindMethodExit                 EventKind = 41
	EventKindMethodExitWithReturnValue  EventKind = 42
	EventKindMonitorContendedEnter      EventKind = 43
	EventKindMonitorContendedEntered    EventKind = 44
	EventKindMonitorWait                EventKind = 45
	EventKindMonitorWaited              EventKind = 46
	EventKindVmStart                    EventKind = 90
	EventKindVmDeath                    EventKind = 99
	EventKindVmDisconnected             EventKind = 100
)

func (k EventKind) String() string {
	switch k {
	case EventKindSingleStep:
		return "SingleStep"
	case EventKindBreakpoint:
		return "Breakpoint"
	case EventKindFramePop:
		return "FramePop"
	case EventKindException:
		return "Exception"
	case EventKindUserDefined:
		return "UserDefined"
	case EventKindThreadStart:
		return "ThreadStart"
	case EventKindThreadDeath:
		return "ThreadDeath"
	case EventKindClassPrepare:
		return "ClassPrepare"
	case EventKindClassUnload:
		return "ClassUnload"
	case EventKindClassLoad:
		return "ClassLoad"
	case EventKindFieldAccess:
		return "FieldAccess"
	case EventKindFieldModification:
		return "FieldModification"
	case EventKindExceptionCatch:
		return "ExceptionCatch"
	case EventKindMethodEntry:
		return "MethodEntry"
	case EventKindMethodExit:
		return "MethodExit"
	case EventKindMethodExitWithReturnValue:
		return "MethodExitWithReturnValue"
	case EventKindMonitorContendedEnter:
		return "MonitorContendedEnter"
	case EventKindMonitorContendedEntered:
		return "MonitorContendedEntered"
	case EventKindMonitorWait:
		return "MonitorWait"
	case EventKindMonitorWaited:
		return "MonitorWaited"
	case EventKindVmStart:
		return "VmStart"
	case EventKindVmDeath:
		return "VmDeath"
	case EventKindVmDisconnected:
		return "VmDisconnected"
	default:
		return fmt.Sprintf("EventKind(%d)", byte(k))
	}
}

// ClassStatus is a bitfield decoded verbatim; unused bits are preserved.
type ClassStatus uint32

const (
	ClassStatusVerified    ClassStatus = 1 << 0
	ClassStatusPrepared    ClassStatus = 1 << 1
	ClassStatusInitialized ClassStatus = 1 << 2
	ClassStatusError       ClassStatus = 1 << 3
)

func (s ClassStatus) Verified() bool    { return s&ClassStatusVerified != 0 }
func (s ClassStatus) Prepared() bool    { return s&ClassStatusPrepared != 0 }
func (s ClassStatus) Initialized() bool { return s&ClassStatusInitialized != 0 }
func (s ClassStatus) Error() bool       { return s&ClassStatusError != 0 }

// ErrorConstant is the JDWP error-code enum carried in a reply packet's
// variable header field.
type ErrorConstant uint16

const (
	ErrNone                      ErrorConstant = 0
	ErrInvalidThread             ErrorConstant = 10
	ErrInvalidThreadGroup        ErrorConstant = 11
	ErrInvalidPriority           ErrorConstant = 12
	ErrThreadNotSuspended        ErrorConstant = 13
	ErrThreadSuspended           ErrorConstant = 14
	ErrThreadNotAlive            ErrorConstant = 15
	ErrInvalidObject             ErrorConstant = 20
	ErrInvalidClass              ErrorConstant = 21
	ErrClassNotPrepared          ErrorConstant = 22
	ErrInvalidMethodid           ErrorConstant = 23
	ErrInvalidLocation           ErrorConstant = 24
	ErrInvalidFieldid            ErrorConstant = 25
	ErrInvalidFrameid            ErrorConstant = 30
	ErrNoMoreFrames              ErrorConstant = 31
	ErrOpaqueFrame               ErrorConstant = 32
	ErrNotCurrentFrame           ErrorConstant = 33
	ErrTypeMismatch              ErrorConstant = 34
	ErrInvalidSlot               ErrorConstant = 35
	ErrDuplicate                 ErrorConstant = 40
	ErrNotFound                  ErrorConstant = 41
	ErrInvalidMonitor            ErrorConstant = 50
	ErrNotMonitorOwner           ErrorConstant = 51
	ErrInterrupt                 ErrorConstant = 52
	ErrInvalidClassFormat        ErrorConstant = 60
	ErrCircularClassDefinition   ErrorConstant = 61
	ErrFailsVerification         ErrorConstant = 62
	ErrAddMethodNotImplemented   ErrorConstant = 63
	ErrSchemaChangeNotImplemented ErrorConstant = 64
	ErrInvalidTypestate          ErrorConstant = 65
	ErrHierarchyChangeNotImplemented ErrorConstant = 66
	ErrDeleteMethodNotImplemented ErrorConstant = 67
	ErrUnsupportedVersion        ErrorConstant = 68
	ErrNamesDontMatch            ErrorConstant = 69
	ErrClassModifiersChangeNotImplemented ErrorConstant = 70
	ErrMethodModifiersChangeNotImplemented ErrorConstant = 71
	ErrNotImplemented            ErrorConstant = 99
	ErrNullPointer               ErrorConstant = 100
	ErrAbsentInformation         ErrorConstant = 101
	ErrInvalidEventType          ErrorConstant = 102
	ErrIllegalArgument           ErrorConstant = 103
	ErrOutOfMemory               ErrorConstant = 110
	ErrAccessDenied              ErrorConstant = 111
	ErrVmDead                    ErrorConstant = 112
	ErrInternal                  ErrorConstant = 113
	ErrUnattachedThread          ErrorConstant = 115
	ErrInvalidTag                ErrorConstant = 500
	ErrAlreadyInvoking           ErrorConstant = 502
	ErrInvalidIndex              ErrorConstant = 503
	ErrInvalidLength             ErrorConstant = 504
	ErrInvalidString             ErrorConstant = 506
	ErrInvalidClassLoader        ErrorConstant = 507
	ErrInvalidArray              ErrorConstant = 508
	ErrTransportLoad             ErrorConstant = 509
	ErrTransportInit             ErrorConstant = 510
	ErrNativeMethod              ErrorConstant = 511
	ErrInvalidCount              ErrorConstant = 512
)

var errorNames = map[ErrorConstant]string{
	ErrNone: "NONE", ErrInvalidThread: "INVALID_THREAD", ErrInvalidThreadGroup: "INVALID_THREAD_GROUP",
	ErrInvalidPriority: "INVALID_PRIORITY", ErrThreadNotSuspended: "THREAD_NOT_SUSPENDED",
	ErrThreadSuspended: "THREAD_SUSPENDED", ErrThreadNotAlive: "THREAD_NOT_ALIVE",
	ErrInvalidObject: "INVALID_OBJECT", ErrInvalidClass: "INVALID_CLASS",
	ErrClassNotPrepared: "CLASS_NOT_PREPARED", ErrInvalidMethodid: "INVALID_METHODID",
	ErrInvalidLocation: "INVALID_LOCATION", ErrInvalidFieldid: "INVALID_FIELDID",
	ErrInvalidFrameid: "INVALID_FRAMEID", ErrNoMoreFrames: "NO_MORE_FRAMES",
	ErrOpaqueFrame: "OPAQUE_FRAME", ErrNotCurrentFrame: "NOT_CURRENT_FRAME",
	ErrTypeMismatch: "TYPE_MISMATCH", ErrInvalidSlot: "INVALID_SLOT",
	ErrDuplicate: "DUPLICATE", ErrNotFound: "NOT_FOUND",
	ErrInvalidMonitor: "INVALID_MONITOR", ErrNotMonitorOwner: "NOT_MONITOR_OWNER",
	ErrInterrupt: "INTERRUPT", ErrInvalidClassFormat: "INVALID_CLASS_FORMAT",
	ErrCircularClassDefinition: "CIRCULAR_CLASS_DEFINITION", ErrFailsVerification: "FAILS_VERIFICATION",
	ErrAddMethodNotImplemented: "ADD_METHOD_NOT_IMPLEMENTED", ErrSchemaChangeNotImplemented: "SCHEMA_CHANGE_NOT_IMPLEMENTED",
	ErrInvalidTypestate: "INVALID_TYPESTATE", ErrHierarchyChangeNotImplemented: "HIERARCHY_CHANGE_NOT_IMPLEMENTED",
	ErrDeleteMethodNotImplemented: "DELETE_METHOD_NOT_IMPLEMENTED", ErrUnsupportedVersion: "UNSUPPORTED_VERSION",
	ErrNamesDontMatch: "NAMES_DONT_MATCH", ErrClassModifiersChangeNotImplemented: "CLASS_MODIFIERS_CHANGE_NOT_IMPLEMENTED",
	ErrMethodModifiersChangeNotImplemented: "METHOD_MODIFIERS_CHANGE_NOT_IMPLEMENTED",
	ErrNotImplemented: "NOT_IMPLEMENTED", ErrNullPointer: "NULL_POINTER",
	ErrAbsentInformation: "ABSENT_INFORMATION", ErrInvalidEventType: "INVALID_EVENT_TYPE",
	ErrIllegalArgument: "ILLEGAL_ARGUMENT", ErrOutOfMemory: "OUT_OF_MEMORY",
	ErrAccessDenied: "ACCESS_DENIED", ErrVmDead: "VM_DEAD", ErrInternal: "INTERNAL",
	ErrUnattachedThread: "UNATTACHED_THREAD", ErrInvalidTag: "INVALID_TAG",
	ErrAlreadyInvoking: "ALREADY_INVOKING", ErrInvalidIndex: "INVALID_INDEX",
	ErrInvalidLength: "INVALID_LENGTH", ErrInvalidString: "INVALID_STRING",
	ErrInvalidClassLoader: "INVALID_CLASS_LOADER", ErrInvalidArray: "INVALID_ARRAY",
	ErrTransportLoad: "TRANSPORT_LOAD", ErrTransportInit: "TRANSPORT_INIT",
	ErrNativeMethod: "NATIVE_METHOD", ErrInvalidCount: "INVALID_COUNT",
}

// Name returns the JDWP error-constant name, or a generic fallback for an
// unrecognized code (unrecognized codes are not a decode failure — the
// reply's variable header is just a uint16, §3 — only the reply *payload*
// decode fails closed on an unknown tag).
func (e ErrorConstant) Name() string {
	if name, ok := errorNames[e]; ok {
		return name
	}
	return fmt.Sprintf("ERROR_%d", uint16(e))
}

// IDSizes is the four negotiated identifier byte-widths (§3). All widths
// default to 8 before the IdSizes command completes.
type IDSizes struct {
	ObjectIDSize byte
	MethodIDSize byte
	FieldIDSize  byte
	FrameIDSize  byte
}

// DefaultIDSizes is the pre-negotiation width table: every identifier is
// assumed to be a full 8 bytes wide until the peer says otherwise.
func DefaultIDSizes() IDSizes {
	return IDSizes{ObjectIDSize: 8, MethodIDSize: 8, FieldIDSize: 8, FrameIDSize: 8}
}
