//go:build windows

package value

import (
	"github.com/Hong-Xiang/dynwinrt/call"
	"github.com/Hong-Xiang/dynwinrt/errors"
	"github.com/Hong-Xiang/dynwinrt/roapi"
	"github.com/Hong-Xiang/dynwinrt/types"
)

// Cast asks the wrapped component for another identity. On success the
// returned value owns the reference the component produced; the receiver is
// untouched either way.
func (v *Value) Cast(iid types.GUID) (Value, error) {
	obj, ok := v.Object()
	if !ok {
		return Value{}, errors.TypeMismatch(errors.PhaseDispatch,
			"cast requires an object value, got %s", v.desc)
	}
	out, hr := call.QueryInterface(obj, iid)
	if hr.Failed() {
		if hr == types.ENoInterface {
			return Value{}, errors.NoInterface(iid.String())
		}
		return Value{}, errors.PlatformStatus(errors.PhaseDispatch, int32(hr))
	}
	return ObjectFromRaw(out), nil
}

// ActivationFactory acquires the activation factory for a fully-qualified
// runtime class name and wraps it as an object value.
func ActivationFactory(className string) (Value, error) {
	raw, err := roapi.GetActivationFactory(className)
	if err != nil {
		return Value{}, err
	}
	return ObjectFromRaw(raw), nil
}

// RuntimeClassName reads the inspection slot that names the component's
// concrete runtime class. The receiver must be an extended-interface
// reference.
func (v *Value) RuntimeClassName() (string, error) {
	obj, ok := v.Object()
	if !ok {
		return "", errors.TypeMismatch(errors.PhaseDispatch,
			"runtime class name requires an object value, got %s", v.desc)
	}
	out, err := callSingleOutRaw(obj, types.SlotGetRuntimeClassName, types.HString(), nil)
	if err != nil {
		return "", err
	}
	defer out.Close()
	s, _ := out.Str()
	return s, nil
}
