//go:build windows

package hstring

import (
	"unicode/utf16"
	"unsafe"

	"golang.org/x/sys/windows"

	"github.com/Hong-Xiang/dynwinrt/errors"
	"github.com/Hong-Xiang/dynwinrt/types"
)

var (
	modcombase = windows.NewLazySystemDLL("combase.dll")

	procWindowsCreateString       = modcombase.NewProc("WindowsCreateString")
	procWindowsDeleteString       = modcombase.NewProc("WindowsDeleteString")
	procWindowsDuplicateString    = modcombase.NewProc("WindowsDuplicateString")
	procWindowsGetStringRawBuffer = modcombase.NewProc("WindowsGetStringRawBuffer")
)

// HString is an owned reference to a platform string. The zero value is the
// empty string.
type HString uintptr

// New creates a platform string with the contents of s.
func New(s string) (HString, error) {
	if s == "" {
		return 0, nil
	}
	buf := utf16.Encode([]rune(s))
	var h HString
	r1, _, _ := procWindowsCreateString.Call(
		uintptr(unsafe.Pointer(&buf[0])),
		uintptr(len(buf)),
		uintptr(unsafe.Pointer(&h)),
	)
	if hr := types.HResult(int32(uint32(r1))); hr.Failed() {
		return 0, errors.PlatformStatus(errors.PhaseMarshal, int32(hr))
	}
	return h, nil
}

// FromRaw adopts an already-incremented reference, typically one written by
// a callee into an out-cell. No additional reference is taken.
func FromRaw(p uintptr) HString {
	return HString(p)
}

// Raw returns the underlying handle without transferring ownership.
func (h HString) Raw() uintptr {
	return uintptr(h)
}

// Clone takes an additional reference on the string resource.
func (h HString) Clone() (HString, error) {
	if h == 0 {
		return 0, nil
	}
	var dup HString
	r1, _, _ := procWindowsDuplicateString.Call(uintptr(h), uintptr(unsafe.Pointer(&dup)))
	if hr := types.HResult(int32(uint32(r1))); hr.Failed() {
		return 0, errors.PlatformStatus(errors.PhaseMarshal, int32(hr))
	}
	return dup, nil
}

// Delete releases the reference. Safe on the zero value.
func (h HString) Delete() {
	if h == 0 {
		return
	}
	procWindowsDeleteString.Call(uintptr(h))
}

// String reads the contents. The platform buffer is only borrowed for the
// duration of the decode.
func (h HString) String() string {
	if h == 0 {
		return ""
	}
	var length uint32
	r1, _, _ := procWindowsGetStringRawBuffer.Call(uintptr(h), uintptr(unsafe.Pointer(&length)))
	if r1 == 0 || length == 0 {
		return ""
	}
	buf := unsafe.Slice((*uint16)(unsafe.Pointer(r1)), length)
	return string(utf16.Decode(buf))
}
