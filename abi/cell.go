package abi

import "unsafe"

// Cell is a caller-owned storage slot for one out-parameter in its machine
// representation. The word is large enough for any Kind; the tag records
// which accessor is valid after the call.
//
// The callee writes the cell through Addr. Cells allocated by the dispatch
// layer escape into the indirect call and are therefore heap-resident and
// address-stable for the call's duration; the caller must keep the cell
// reachable until the call returns.
type Cell struct {
	word uint64
	kind Kind
}

// NewCell returns a zero-initialized cell tagged with the given kind.
func NewCell(k Kind) Cell {
	return Cell{kind: k}
}

// Kind returns the cell's tag.
func (c *Cell) Kind() Kind {
	return c.kind
}

// Addr returns the address the callee writes through. The returned pointer
// is valid as long as the cell is reachable.
func (c *Cell) Addr() unsafe.Pointer {
	return unsafe.Pointer(&c.word)
}

// I32 reads the cell as a 32-bit integer. ok is false when the tag
// disagrees.
func (c *Cell) I32() (int32, bool) {
	if c.kind != KindI32 {
		return 0, false
	}
	return int32(uint32(c.word)), true
}

// I64 reads the cell as a 64-bit integer. ok is false when the tag
// disagrees.
func (c *Cell) I64() (int64, bool) {
	if c.kind != KindI64 {
		return 0, false
	}
	return int64(c.word), true
}

// Ptr reads the cell as a machine-word pointer. ok is false when the tag
// disagrees.
func (c *Cell) Ptr() (uintptr, bool) {
	if c.kind != KindPtr {
		return 0, false
	}
	return uintptr(c.word), true
}

// SetWord stores a raw machine word. It exists for the in-parameter path,
// where the dispatch layer stages a value's representation without going
// through the callee; the tag is not consulted.
func (c *Cell) SetWord(w uint64) {
	c.word = w
}

// Word returns the raw stored machine word regardless of tag.
func (c *Cell) Word() uint64 {
	return c.word
}
