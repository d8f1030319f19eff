//go:build windows

package call

import (
	"syscall"
	"unsafe"

	"golang.org/x/sys/windows"

	"github.com/Hong-Xiang/dynwinrt/types"
)

var (
	modole32          = windows.NewLazySystemDLL("ole32.dll")
	procCoTaskMemFree = modole32.NewProc("CoTaskMemFree")
)

const ptrSize = unsafe.Sizeof(uintptr(0))

// VTableFunc returns the function pointer stored at the given slot of the
// receiver's vtable. A component handle is a pointer whose first word points
// to an array of function pointers.
func VTableFunc(obj uintptr, slot int) uintptr {
	vtbl := *(*uintptr)(unsafe.Pointer(obj))
	return *(*uintptr)(unsafe.Pointer(vtbl + uintptr(slot)*ptrSize))
}

// Invoke performs the indirect call. args must already include the receiver
// as its first element; the return word is interpreted as a platform status.
func Invoke(fn uintptr, args ...uintptr) types.HResult {
	r1, _, _ := syscall.SyscallN(fn, args...)
	return types.HResult(int32(uint32(r1)))
}

// Slot looks up the receiver's vtable entry and invokes it with the
// receiver prepended. This is the generalized path; the call descriptor
// built by the signature layer determines what args contains.
func Slot(obj uintptr, slot int, args ...uintptr) types.HResult {
	fn := VTableFunc(obj, slot)
	full := make([]uintptr, 0, len(args)+1)
	full = append(full, obj)
	full = append(full, args...)
	hr := Invoke(fn, full...)
	debugf("slot %d call returned %s", slot, hr)
	return hr
}

// Fixed-shape wrappers for hot paths: receiver plus k raw words. They avoid
// the argument-vector allocation of Slot; callers pass out-pointers
// directly.

func Call0(obj uintptr, slot int) types.HResult {
	r1, _, _ := syscall.SyscallN(VTableFunc(obj, slot), obj)
	return types.HResult(int32(uint32(r1)))
}

func Call1(obj uintptr, slot int, a1 uintptr) types.HResult {
	r1, _, _ := syscall.SyscallN(VTableFunc(obj, slot), obj, a1)
	return types.HResult(int32(uint32(r1)))
}

func Call2(obj uintptr, slot int, a1, a2 uintptr) types.HResult {
	r1, _, _ := syscall.SyscallN(VTableFunc(obj, slot), obj, a1, a2)
	return types.HResult(int32(uint32(r1)))
}

func Call3(obj uintptr, slot int, a1, a2, a3 uintptr) types.HResult {
	r1, _, _ := syscall.SyscallN(VTableFunc(obj, slot), obj, a1, a2, a3)
	return types.HResult(int32(uint32(r1)))
}

// QueryInterface asks the receiver for another identity through slot 0.
// On success the returned handle carries a reference the caller owns.
func QueryInterface(obj uintptr, iid types.GUID) (uintptr, types.HResult) {
	var out uintptr
	hr := Call2(obj, types.SlotQueryInterface,
		uintptr(unsafe.Pointer(&iid)),
		uintptr(unsafe.Pointer(&out)))
	if hr.Failed() {
		return 0, hr
	}
	return out, hr
}

// AddRef takes a reference through slot 1 and returns the new count.
func AddRef(obj uintptr) uint32 {
	r1, _, _ := syscall.SyscallN(VTableFunc(obj, types.SlotAddRef), obj)
	return uint32(r1)
}

// Release drops a reference through slot 2 and returns the remaining count.
func Release(obj uintptr) uint32 {
	r1, _, _ := syscall.SyscallN(VTableFunc(obj, types.SlotRelease), obj)
	return uint32(r1)
}

// FreeTaskMem releases a callee-allocated buffer, such as the backing store
// of a received handle array.
func FreeTaskMem(p uintptr) {
	if p != 0 {
		procCoTaskMemFree.Call(p)
	}
}
