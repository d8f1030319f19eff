//go:build windows

package signature

import (
	"errors"
	"syscall"
	"testing"
	"unsafe"

	"golang.org/x/sys/windows"

	dynerr "github.com/Hong-Xiang/dynwinrt/errors"
	"github.com/Hong-Xiang/dynwinrt/hstring"
	"github.com/Hong-Xiang/dynwinrt/internal/comfake"
	"github.com/Hong-Xiang/dynwinrt/types"
	"github.com/Hong-Xiang/dynwinrt/value"
)

func ownedObject(t *testing.T, o *comfake.Object) value.Value {
	t.Helper()
	o.AddRef()
	return value.ObjectFromRaw(o.Raw())
}

func TestCallDynamicArgumentOrder(t *testing.T) {
	o := comfake.New("obj", 7)
	var gotA, gotB uintptr
	o.SetSlot3(6, func(this, a, b, out uintptr) uintptr {
		gotA, gotB = a, b
		*(*uintptr)(unsafe.Pointer(out)) = 0
		return 0
	})
	recv := ownedObject(t, o)
	defer recv.Close()

	m := NewMethod().In(types.I32()).In(types.I64()).Out(types.I32()).Build(6)
	outs, err := m.CallDynamic(&recv, []value.Value{value.NewI32(17), value.NewI64(99)})
	if err != nil {
		t.Fatalf("CallDynamic failed: %v", err)
	}
	if len(outs) != 1 {
		t.Fatalf("got %d out-values, want 1", len(outs))
	}
	if int32(gotA) != 17 {
		t.Errorf("first argument = %d, want 17", int32(gotA))
	}
	if int64(gotB) != 99 {
		t.Errorf("second argument = %d, want 99", int64(gotB))
	}
}

func TestCallDynamicTypeMismatch(t *testing.T) {
	o := comfake.New("obj", 7)
	called := false
	o.SetSlot1(6, func(this, a uintptr) uintptr {
		called = true
		return 0
	})
	recv := ownedObject(t, o)
	defer recv.Close()

	m := NewMethod().In(types.I32()).Build(6)

	str, err := value.NewString("not an i32")
	if err != nil {
		t.Fatalf("NewString failed: %v", err)
	}
	defer str.Close()

	_, err = m.CallDynamic(&recv, []value.Value{str})
	if !errors.Is(err, &dynerr.Error{Phase: dynerr.PhaseDispatch, Kind: dynerr.KindTypeMismatch}) {
		t.Fatalf("error = %v, want type_mismatch", err)
	}
	if called {
		t.Error("no indirect call may happen on a type mismatch")
	}

	_, err = m.CallDynamic(&recv, nil)
	if !errors.Is(err, &dynerr.Error{Phase: dynerr.PhaseDispatch, Kind: dynerr.KindTypeMismatch}) {
		t.Fatalf("error on wrong count = %v, want type_mismatch", err)
	}
	if called {
		t.Error("no indirect call may happen on a count mismatch")
	}
}

func TestCallDynamicFailureLeavesCellsUnread(t *testing.T) {
	leaked := comfake.New("leaked", 6)
	o := comfake.New("obj", 7)
	o.SetSlot1(6, func(this, out uintptr) uintptr {
		// Scribble a handle, then fail: the engine must ignore it.
		*(*uintptr)(unsafe.Pointer(out)) = leaked.Raw()
		hr := types.EFail
		return uintptr(uint32(int32(hr)))
	})
	recv := ownedObject(t, o)
	defer recv.Close()

	m := NewMethod().Out(types.Object()).Build(6)
	_, err := m.CallDynamic(&recv, nil)
	var de *dynerr.Error
	if !errors.As(err, &de) || de.Kind != dynerr.KindPlatformStatus {
		t.Fatalf("error = %v, want platform_status", err)
	}
	if leaked.Refs() != 1 {
		t.Errorf("scribbled handle refs = %d, want 1 (cell must not be read)", leaked.Refs())
	}
}

// Round-trip: a method accepting T and returning T must hand back an equal
// value — identical pointer for handles, identical contents for strings.
func TestCallDynamicRoundTrip(t *testing.T) {
	t.Run("i32", func(t *testing.T) {
		o := comfake.New("obj", 7)
		o.SetSlot2(6, func(this, in, out uintptr) uintptr {
			*(*int32)(unsafe.Pointer(out)) = int32(in)
			return 0
		})
		recv := ownedObject(t, o)
		defer recv.Close()

		m := NewMethod().In(types.I32()).Out(types.I32()).Build(6)
		outs, err := m.CallDynamic(&recv, []value.Value{value.NewI32(-12345)})
		if err != nil {
			t.Fatalf("CallDynamic failed: %v", err)
		}
		if got, _ := outs[0].I32(); got != -12345 {
			t.Errorf("round trip = %d, want -12345", got)
		}
	})

	t.Run("i64", func(t *testing.T) {
		o := comfake.New("obj", 7)
		o.SetSlot2(6, func(this, in, out uintptr) uintptr {
			*(*int64)(unsafe.Pointer(out)) = int64(in)
			return 0
		})
		recv := ownedObject(t, o)
		defer recv.Close()

		m := NewMethod().In(types.I64()).Out(types.I64()).Build(6)
		outs, err := m.CallDynamic(&recv, []value.Value{value.NewI64(-1 << 40)})
		if err != nil {
			t.Fatalf("CallDynamic failed: %v", err)
		}
		if got, _ := outs[0].I64(); got != -1<<40 {
			t.Errorf("round trip = %d, want %d", got, int64(-1<<40))
		}
	})

	t.Run("hstring", func(t *testing.T) {
		o := comfake.New("obj", 7)
		o.SetSlot2(6, func(this, in, out uintptr) uintptr {
			dup, err := hstring.FromRaw(in).Clone()
			if err != nil {
				hr := types.EFail
				return uintptr(uint32(int32(hr)))
			}
			*(*uintptr)(unsafe.Pointer(out)) = dup.Raw()
			return 0
		})
		recv := ownedObject(t, o)
		defer recv.Close()

		in, err := value.NewString("round trip contents")
		if err != nil {
			t.Fatalf("NewString failed: %v", err)
		}
		defer in.Close()

		m := NewMethod().In(types.HString()).Out(types.HString()).Build(6)
		outs, err := m.CallDynamic(&recv, []value.Value{in})
		if err != nil {
			t.Fatalf("CallDynamic failed: %v", err)
		}
		defer outs[0].Close()
		if got, _ := outs[0].Str(); got != "round trip contents" {
			t.Errorf("round trip = %q", got)
		}
	})

	t.Run("object", func(t *testing.T) {
		passed := comfake.New("passed", 6)
		o := comfake.New("obj", 7)
		o.SetSlot2(6, func(this, in, out uintptr) uintptr {
			// Echo the handle back with a reference for the caller.
			comfakeAddRef(in)
			*(*uintptr)(unsafe.Pointer(out)) = in
			return 0
		})
		recv := ownedObject(t, o)
		defer recv.Close()

		arg := ownedObject(t, passed)
		defer arg.Close()

		m := NewMethod().In(types.Object()).Out(types.Object()).Build(6)
		outs, err := m.CallDynamic(&recv, []value.Value{arg})
		if err != nil {
			t.Fatalf("CallDynamic failed: %v", err)
		}
		got, _ := outs[0].Object()
		if got != passed.Raw() {
			t.Errorf("round trip handle = %#x, want %#x", got, passed.Raw())
		}
		outs[0].Close()
		if passed.Refs() != 2 {
			t.Errorf("refs = %d, want 2 (balanced)", passed.Refs())
		}
	})
}

// comfakeAddRef bumps the fake's count through its own vtable, the way a
// callee taking a reference would.
func comfakeAddRef(raw uintptr) {
	vtbl := *(*uintptr)(unsafe.Pointer(raw))
	fn := *(*uintptr)(unsafe.Pointer(vtbl + unsafe.Sizeof(uintptr(0))*uintptr(types.SlotAddRef)))
	syscall.SyscallN(fn, raw)
}

func TestCallDynamicReceivedArray(t *testing.T) {
	a := comfake.New("a", 6)
	b := comfake.New("b", 6)

	o := comfake.New("obj", 7)
	o.SetSlot2(6, func(this, countOut, bufOut uintptr) uintptr {
		buf := coTaskMemAlloc(2 * unsafe.Sizeof(uintptr(0)))
		if buf == 0 {
			hr := types.EFail
			return uintptr(uint32(int32(hr)))
		}
		slots := unsafe.Slice((*uintptr)(unsafe.Pointer(buf)), 2)
		comfakeAddRef(a.Raw())
		comfakeAddRef(b.Raw())
		slots[0] = a.Raw()
		slots[1] = b.Raw()
		*(*int32)(unsafe.Pointer(countOut)) = 2
		*(*uintptr)(unsafe.Pointer(bufOut)) = buf
		return 0
	})
	recv := ownedObject(t, o)
	defer recv.Close()

	m := NewMethod().Out(types.ObjectArray()).Build(6)
	outs, err := m.CallDynamic(&recv, nil)
	if err != nil {
		t.Fatalf("CallDynamic failed: %v", err)
	}
	handles, ok := outs[0].Array()
	if !ok || len(handles) != 2 {
		t.Fatalf("Array() = %v, %v", handles, ok)
	}
	if handles[0] != a.Raw() || handles[1] != b.Raw() {
		t.Error("array handles do not match")
	}
	if a.Refs() != 2 || b.Refs() != 2 {
		t.Fatalf("refs = %d/%d, want 2/2", a.Refs(), b.Refs())
	}
	outs[0].Close()
	if a.Refs() != 1 || b.Refs() != 1 {
		t.Errorf("refs after close = %d/%d, want 1/1", a.Refs(), b.Refs())
	}
}

var (
	modole32Test       = windows.NewLazySystemDLL("ole32.dll")
	procCoTaskMemAlloc = modole32Test.NewProc("CoTaskMemAlloc")
)

func coTaskMemAlloc(n uintptr) uintptr {
	r1, _, _ := procCoTaskMemAlloc.Call(n)
	return r1
}
