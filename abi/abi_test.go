package abi

import (
	"testing"
	"unsafe"
)

func TestKindString(t *testing.T) {
	tests := []struct {
		kind Kind
		want string
	}{
		{KindI32, "i32"},
		{KindI64, "i64"},
		{KindPtr, "ptr"},
		{Kind(200), "unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := tt.kind.String(); got != tt.want {
				t.Errorf("Kind(%d).String() = %q, want %q", tt.kind, got, tt.want)
			}
		})
	}
}

func TestKindSize(t *testing.T) {
	if KindI32.Size() != 4 {
		t.Errorf("KindI32.Size() = %d, want 4", KindI32.Size())
	}
	if KindI64.Size() != 8 {
		t.Errorf("KindI64.Size() = %d, want 8", KindI64.Size())
	}
	if KindPtr.Size() != 8 {
		t.Errorf("KindPtr.Size() = %d, want 8", KindPtr.Size())
	}
}

func TestNewCellZeroInitialized(t *testing.T) {
	for _, k := range []Kind{KindI32, KindI64, KindPtr} {
		t.Run(k.String(), func(t *testing.T) {
			c := NewCell(k)
			if c.Word() != 0 {
				t.Errorf("fresh cell word = %d, want 0", c.Word())
			}
			if c.Kind() != k {
				t.Errorf("fresh cell kind = %v, want %v", c.Kind(), k)
			}
		})
	}
}

func TestCellReadAfterCalleeWrite(t *testing.T) {
	t.Run("i32", func(t *testing.T) {
		c := NewCell(KindI32)
		*(*int32)(c.Addr()) = -443
		got, ok := c.I32()
		if !ok || got != -443 {
			t.Errorf("I32() = %d, %v, want -443, true", got, ok)
		}
	})

	t.Run("i64", func(t *testing.T) {
		c := NewCell(KindI64)
		*(*int64)(c.Addr()) = -1 << 40
		got, ok := c.I64()
		if !ok || got != -1<<40 {
			t.Errorf("I64() = %d, %v, want %d, true", got, ok, int64(-1<<40))
		}
	})

	t.Run("ptr", func(t *testing.T) {
		c := NewCell(KindPtr)
		var target int
		p := uintptr(unsafe.Pointer(&target))
		*(*uintptr)(c.Addr()) = p
		got, ok := c.Ptr()
		if !ok || got != p {
			t.Errorf("Ptr() = %#x, %v, want %#x, true", got, ok, p)
		}
	})
}

func TestCellKindMismatch(t *testing.T) {
	c := NewCell(KindI32)
	if _, ok := c.I64(); ok {
		t.Error("I64() on an i32 cell should report !ok")
	}
	if _, ok := c.Ptr(); ok {
		t.Error("Ptr() on an i32 cell should report !ok")
	}
}

func TestCellAddrStable(t *testing.T) {
	c := NewCell(KindPtr)
	a1 := c.Addr()
	c.SetWord(7)
	a2 := c.Addr()
	if a1 != a2 {
		t.Error("cell address changed between creation and read")
	}
}
