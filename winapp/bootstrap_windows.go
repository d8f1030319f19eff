//go:build windows

package winapp

import (
	"unsafe"

	"golang.org/x/sys/windows"

	"github.com/Hong-Xiang/dynwinrt/errors"
	"github.com/Hong-Xiang/dynwinrt/roapi"
	"github.com/Hong-Xiang/dynwinrt/types"
)

const (
	initializeEntrypoint = "MddBootstrapInitialize2"
	shutdownEntrypoint   = "MddBootstrapShutdown"
)

// Context is a live bootstrap session. Shutdown releases it.
type Context struct {
	dll *windows.DLL
}

// Initialize loads the bootstrap DLL, initializes the component runtime for
// the calling thread, and binds the process to the requested extension
// release. Any load, resolution, or entrypoint failure surfaces as
// BootstrapFailed.
func Initialize(opts Options) (*Context, error) {
	if opts.DLLPath == "" {
		return nil, errors.BootstrapFailed("bootstrap dll path is required", nil)
	}

	dll, err := windows.LoadDLL(opts.DLLPath)
	if err != nil {
		return nil, errors.BootstrapFailed("load bootstrap dll", err)
	}

	proc, err := dll.FindProc(initializeEntrypoint)
	if err != nil {
		dll.Release()
		return nil, errors.BootstrapFailed("resolve "+initializeEntrypoint, err)
	}

	if err := roapi.Initialize(); err != nil {
		dll.Release()
		return nil, err
	}

	emptyTag, err := windows.UTF16PtrFromString("")
	if err != nil {
		dll.Release()
		return nil, errors.BootstrapFailed("encode version tag", err)
	}

	r1, _, _ := proc.Call(
		uintptr(opts.packedMajorMinor()),
		uintptr(unsafe.Pointer(emptyTag)),
		uintptr(opts.packedQuad()),
		0,
	)
	if hr := types.HResult(int32(uint32(r1))); hr.Failed() {
		dll.Release()
		return nil, errors.BootstrapFailed("initialize extension runtime",
			errors.PlatformStatus(errors.PhaseBootstrap, int32(hr)))
	}

	return &Context{dll: dll}, nil
}

// Shutdown unbinds the process from the extension release and unloads the
// bootstrap DLL. Safe to call once per Context.
func (c *Context) Shutdown() error {
	if c.dll == nil {
		return errors.InvalidState(errors.PhaseBootstrap, "bootstrap already shut down")
	}
	if proc, err := c.dll.FindProc(shutdownEntrypoint); err == nil {
		proc.Call()
	}
	err := c.dll.Release()
	c.dll = nil
	if err != nil {
		return errors.BootstrapFailed("unload bootstrap dll", err)
	}
	return nil
}
