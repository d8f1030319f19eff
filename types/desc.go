package types

import "github.com/Hong-Xiang/dynwinrt/abi"

// Kind discriminates the closed set of descriptor types.
type Kind uint8

const (
	KindI32 Kind = iota
	KindI64
	KindObject      // opaque component handle
	KindHString     // platform reference-counted string
	KindHResult     // platform status code as data
	KindOutSlot     // by-pointer parameter whose pointee is Elem
	KindAsyncOp     // handle implementing the async-operation interface IID
	KindObjectArray // length-prefixed out-array of handles
)

var kindNames = [...]string{
	KindI32:         "i32",
	KindI64:         "i64",
	KindObject:      "object",
	KindHString:     "hstring",
	KindHResult:     "hresult",
	KindOutSlot:     "out-slot",
	KindAsyncOp:     "async-op",
	KindObjectArray: "object-array",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown"
}

// Desc is a high-level type descriptor. Use the package constructors; the
// zero Desc is a valid i32 descriptor.
type Desc struct {
	elem *Desc
	iid  GUID
	kind Kind
}

func I32() Desc     { return Desc{kind: KindI32} }
func I64() Desc     { return Desc{kind: KindI64} }
func Object() Desc  { return Desc{kind: KindObject} }
func HString() Desc { return Desc{kind: KindHString} }
func Status() Desc  { return Desc{kind: KindHResult} }

// OutSlot describes a by-pointer parameter whose pointee has type elem.
func OutSlot(elem Desc) Desc {
	e := elem
	return Desc{kind: KindOutSlot, elem: &e}
}

// AsyncOp describes a handle known to implement the async-operation
// interface identified by iid; the identity is retained for the later
// get-results dispatch.
func AsyncOp(iid GUID) Desc {
	return Desc{kind: KindAsyncOp, iid: iid}
}

// ObjectArray describes a length-prefixed out-array of component handles.
func ObjectArray() Desc { return Desc{kind: KindObjectArray} }

func (d Desc) Kind() Kind { return d.kind }

// Elem returns the pointee descriptor of an out-slot. ok is false for any
// other kind.
func (d Desc) Elem() (Desc, bool) {
	if d.kind != KindOutSlot || d.elem == nil {
		return Desc{}, false
	}
	return *d.elem, true
}

// IID returns the concrete async-operation identity of an async-op
// descriptor; the zero GUID otherwise.
func (d Desc) IID() GUID { return d.iid }

// ABIKind maps the descriptor to the single machine kind it presents to the
// calling convention. The mapping is total.
func (d Desc) ABIKind() abi.Kind {
	switch d.kind {
	case KindI32, KindHResult:
		return abi.KindI32
	case KindI64:
		return abi.KindI64
	default:
		return abi.KindPtr
	}
}

// Equal reports structural equality of two descriptors.
func (d Desc) Equal(o Desc) bool {
	if d.kind != o.kind || d.iid != o.iid {
		return false
	}
	de, dok := d.Elem()
	oe, ook := o.Elem()
	if dok != ook {
		return false
	}
	if dok {
		return de.Equal(oe)
	}
	return true
}

func (d Desc) String() string {
	switch d.kind {
	case KindOutSlot:
		if e, ok := d.Elem(); ok {
			return "out-slot<" + e.String() + ">"
		}
		return "out-slot"
	case KindAsyncOp:
		return "async-op<" + d.iid.String() + ">"
	default:
		return d.kind.String()
	}
}
