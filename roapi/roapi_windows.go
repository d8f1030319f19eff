//go:build windows

package roapi

import (
	"unsafe"

	"go.uber.org/zap"
	"golang.org/x/sys/windows"

	"github.com/Hong-Xiang/dynwinrt/errors"
	"github.com/Hong-Xiang/dynwinrt/hstring"
	"github.com/Hong-Xiang/dynwinrt/types"
)

var (
	modcombase = windows.NewLazySystemDLL("combase.dll")

	procRoInitialize           = modcombase.NewProc("RoInitialize")
	procRoGetActivationFactory = modcombase.NewProc("RoGetActivationFactory")
)

// Apartment model passed to RoInitialize.
const roInitMultithreaded = 1

// Initialize prepares the calling thread for component-runtime calls. It is
// idempotent: initializing an already-initialized thread succeeds. A thread
// previously initialized under a different apartment model is surfaced as a
// platform status; the engine cannot change the apartment on the caller's
// behalf.
func Initialize() error {
	r1, _, _ := procRoInitialize.Call(uintptr(roInitMultithreaded))
	hr := types.HResult(int32(uint32(r1)))
	if hr.Failed() {
		return errors.PlatformStatus(errors.PhaseInit, int32(hr))
	}
	Logger().Debug("runtime initialized", zap.Stringer("status", hr))
	return nil
}

// GetActivationFactory acquires the activation factory for the named
// runtime class. On success the returned handle carries a reference the
// caller owns.
func GetActivationFactory(className string) (uintptr, error) {
	name, err := hstring.New(className)
	if err != nil {
		return 0, err
	}
	defer name.Delete()

	iid := types.IIDIActivationFactory
	var factory uintptr
	r1, _, _ := procRoGetActivationFactory.Call(
		name.Raw(),
		uintptr(unsafe.Pointer(&iid)),
		uintptr(unsafe.Pointer(&factory)),
	)
	hr := types.HResult(int32(uint32(r1)))
	if hr.Failed() {
		if hr == types.RegDBClassNotReg {
			return 0, errors.ClassNotRegistered(className, int32(hr))
		}
		return 0, errors.ActivationFailed(className, int32(hr))
	}
	Logger().Debug("activation factory acquired", zap.String("class", className))
	return factory, nil
}
