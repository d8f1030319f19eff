//go:build windows

package value

import (
	"github.com/Hong-Xiang/dynwinrt/abi"
	"github.com/Hong-Xiang/dynwinrt/call"
	"github.com/Hong-Xiang/dynwinrt/errors"
	"github.com/Hong-Xiang/dynwinrt/hstring"
	"github.com/Hong-Xiang/dynwinrt/types"
)

// Value is a tagged engine value. The zero Value is an i32 zero.
type Value struct {
	arr  []uintptr
	desc types.Desc
	num  uint64
	ptr  uintptr
}

// NewI32 wraps a 32-bit integer.
func NewI32(v int32) Value {
	return Value{desc: types.I32(), num: uint64(uint32(v))}
}

// NewI64 wraps a 64-bit integer.
func NewI64(v int64) Value {
	return Value{desc: types.I64(), num: uint64(v)}
}

// NewStatus wraps a platform status code as plain data.
func NewStatus(hr types.HResult) Value {
	return Value{desc: types.Status(), num: uint64(uint32(int32(hr)))}
}

// ObjectFromRaw adopts an already-incremented reference on a component
// handle. The new value owns that reference; no additional one is taken.
func ObjectFromRaw(p uintptr) Value {
	return Value{desc: types.Object(), ptr: p}
}

// NewString creates a platform string with the contents of s and wraps the
// resulting reference.
func NewString(s string) (Value, error) {
	h, err := hstring.New(s)
	if err != nil {
		return Value{}, err
	}
	return Value{desc: types.HString(), ptr: h.Raw()}, nil
}

// StringFromRaw adopts an already-incremented platform-string reference.
func StringFromRaw(p uintptr) Value {
	return Value{desc: types.HString(), ptr: p}
}

// AsyncOpFromRaw adopts a handle known to implement the async-operation
// interface identified by iid.
func AsyncOpFromRaw(p uintptr, iid types.GUID) Value {
	return Value{desc: types.AsyncOp(iid), ptr: p}
}

// objectArrayOwned adopts a slice of handle references; used by the
// dispatch layer when materializing a received array.
func objectArrayOwned(handles []uintptr) Value {
	return Value{desc: types.ObjectArray(), arr: handles}
}

// Desc returns the value's type descriptor.
func (v *Value) Desc() types.Desc {
	return v.desc
}

// I32 reads an i32 payload.
func (v *Value) I32() (int32, bool) {
	if v.desc.Kind() != types.KindI32 {
		return 0, false
	}
	return int32(uint32(v.num)), true
}

// I64 reads an i64 payload.
func (v *Value) I64() (int64, bool) {
	if v.desc.Kind() != types.KindI64 {
		return 0, false
	}
	return int64(v.num), true
}

// Status reads a status payload.
func (v *Value) Status() (types.HResult, bool) {
	if v.desc.Kind() != types.KindHResult {
		return 0, false
	}
	return types.HResult(int32(uint32(v.num))), true
}

// Raw returns the wrapped handle or string reference without transferring
// ownership. ok is false for non-resource kinds.
func (v *Value) Raw() (uintptr, bool) {
	switch v.desc.Kind() {
	case types.KindObject, types.KindHString, types.KindAsyncOp:
		return v.ptr, true
	}
	return 0, false
}

// Object returns the wrapped component handle without transferring
// ownership.
func (v *Value) Object() (uintptr, bool) {
	switch v.desc.Kind() {
	case types.KindObject, types.KindAsyncOp:
		return v.ptr, true
	}
	return 0, false
}

// Str reads the contents of a platform-string value.
func (v *Value) Str() (string, bool) {
	if v.desc.Kind() != types.KindHString {
		return "", false
	}
	return hstring.FromRaw(v.ptr).String(), true
}

// Array borrows the handles of an object-array value.
func (v *Value) Array() ([]uintptr, bool) {
	if v.desc.Kind() != types.KindObjectArray {
		return nil, false
	}
	return v.arr, true
}

// Clone takes an additional reference on the wrapped resource. Plain-data
// values are copied. Clone of a platform string can fail if the platform
// refuses to duplicate the reference.
func (v *Value) Clone() (Value, error) {
	switch v.desc.Kind() {
	case types.KindObject, types.KindAsyncOp:
		if v.ptr != 0 {
			call.AddRef(v.ptr)
		}
		return Value{desc: v.desc, ptr: v.ptr}, nil
	case types.KindHString:
		dup, err := hstring.FromRaw(v.ptr).Clone()
		if err != nil {
			return Value{}, err
		}
		return Value{desc: v.desc, ptr: dup.Raw()}, nil
	case types.KindObjectArray:
		handles := make([]uintptr, len(v.arr))
		for i, h := range v.arr {
			if h != 0 {
				call.AddRef(h)
			}
			handles[i] = h
		}
		return Value{desc: v.desc, arr: handles}, nil
	default:
		return *v, nil
	}
}

// Close releases the owned reference exactly once. Closing again, or
// closing a plain-data value, is a no-op. The release runs on the calling
// thread; apartment affinity is the caller's concern.
func (v *Value) Close() {
	switch v.desc.Kind() {
	case types.KindObject, types.KindAsyncOp:
		if v.ptr != 0 {
			call.Release(v.ptr)
			v.ptr = 0
		}
	case types.KindHString:
		if v.ptr != 0 {
			hstring.FromRaw(v.ptr).Delete()
			v.ptr = 0
		}
	case types.KindObjectArray:
		for _, h := range v.arr {
			if h != 0 {
				call.Release(h)
			}
		}
		v.arr = nil
	}
}

// ToCell writes the value's machine representation into a cell of matching
// kind. Resource values are written as borrowed pointers: the value keeps
// its reference for the call's duration.
func (v *Value) ToCell(c *abi.Cell) error {
	if c.Kind() != v.desc.ABIKind() {
		return errors.TypeMismatch(errors.PhaseMarshal,
			"cell kind %s does not fit value of type %s", c.Kind(), v.desc)
	}
	w, err := v.abiWord()
	if err != nil {
		return err
	}
	c.SetWord(w)
	return nil
}

// ToWord returns the machine word an in-parameter contributes to an
// argument vector. Resource values are borrowed: the word carries no
// ownership and the value must stay alive for the call's duration.
func (v *Value) ToWord() (uint64, error) {
	return v.abiWord()
}

// abiWord returns the representation an in-parameter contributes to the
// argument vector.
func (v *Value) abiWord() (uint64, error) {
	switch v.desc.Kind() {
	case types.KindI32, types.KindI64, types.KindHResult:
		return v.num, nil
	case types.KindObject, types.KindHString, types.KindAsyncOp:
		return uint64(v.ptr), nil
	default:
		return 0, errors.TypeMismatch(errors.PhaseMarshal,
			"%s cannot be passed as an in-parameter", v.desc)
	}
}

// FromCell synthesizes a value from a post-call out-cell. For resource
// kinds the cell contents are a reference the callee transferred to the
// caller; the new value adopts it without incrementing.
func FromCell(c *abi.Cell, desc types.Desc) (Value, error) {
	switch desc.Kind() {
	case types.KindI32, types.KindHResult:
		n, ok := c.I32()
		if !ok {
			return Value{}, cellMismatch(c, desc)
		}
		if desc.Kind() == types.KindHResult {
			return NewStatus(types.HResult(n)), nil
		}
		return NewI32(n), nil
	case types.KindI64:
		n, ok := c.I64()
		if !ok {
			return Value{}, cellMismatch(c, desc)
		}
		return NewI64(n), nil
	case types.KindObject:
		p, ok := c.Ptr()
		if !ok {
			return Value{}, cellMismatch(c, desc)
		}
		return ObjectFromRaw(p), nil
	case types.KindHString:
		p, ok := c.Ptr()
		if !ok {
			return Value{}, cellMismatch(c, desc)
		}
		return StringFromRaw(p), nil
	case types.KindAsyncOp:
		p, ok := c.Ptr()
		if !ok {
			return Value{}, cellMismatch(c, desc)
		}
		return AsyncOpFromRaw(p, desc.IID()), nil
	default:
		return Value{}, errors.TypeMismatch(errors.PhaseMarshal,
			"%s cannot be materialized from a single cell", desc)
	}
}

// FromArrayCells materializes a received handle array from its count and
// buffer cells. The handles are copied into engine-owned storage and the
// callee's buffer is freed; each copied handle keeps the single reference
// the callee transferred.
func FromArrayCells(count, buf *abi.Cell) (Value, error) {
	n, ok := count.I32()
	if !ok {
		return Value{}, errors.TypeMismatch(errors.PhaseMarshal,
			"array count cell has kind %s, want i32", count.Kind())
	}
	p, ok := buf.Ptr()
	if !ok {
		return Value{}, errors.TypeMismatch(errors.PhaseMarshal,
			"array buffer cell has kind %s, want ptr", buf.Kind())
	}
	handles := readHandleBuffer(p, int(n))
	call.FreeTaskMem(p)
	return objectArrayOwned(handles), nil
}

func cellMismatch(c *abi.Cell, desc types.Desc) error {
	return errors.TypeMismatch(errors.PhaseMarshal,
		"cell kind %s does not produce %s", c.Kind(), desc)
}
