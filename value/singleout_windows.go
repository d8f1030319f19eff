//go:build windows

package value

import (
	"runtime"

	"github.com/Hong-Xiang/dynwinrt/abi"
	"github.com/Hong-Xiang/dynwinrt/call"
	"github.com/Hong-Xiang/dynwinrt/errors"
	"github.com/Hong-Xiang/dynwinrt/types"
)

// CallSingleOut invokes the method at the given vtable slot with up to two
// in-values and a single out-parameter of the given type. It is the fast
// path for getters and simple factory methods; no descriptor is built and
// no argument vector is allocated.
func (v *Value) CallSingleOut(slot int, out types.Desc, in ...Value) (Value, error) {
	obj, ok := v.Object()
	if !ok {
		return Value{}, errors.TypeMismatch(errors.PhaseDispatch,
			"receiver must be an object value, got %s", v.desc)
	}
	return callSingleOutRaw(obj, slot, out, in)
}

func callSingleOutRaw(obj uintptr, slot int, out types.Desc, in []Value) (Value, error) {
	if out.Kind() == types.KindObjectArray {
		return Value{}, errors.TypeMismatch(errors.PhaseDispatch,
			"received arrays need the descriptor-driven path")
	}
	cell := abi.NewCell(out.ABIKind())
	outAddr := uintptr(cell.Addr())

	var hr types.HResult
	switch len(in) {
	case 0:
		hr = call.Call1(obj, slot, outAddr)
	case 1:
		w, err := in[0].abiWord()
		if err != nil {
			return Value{}, err
		}
		hr = call.Call2(obj, slot, uintptr(w), outAddr)
	case 2:
		w0, err := in[0].abiWord()
		if err != nil {
			return Value{}, err
		}
		w1, err := in[1].abiWord()
		if err != nil {
			return Value{}, err
		}
		hr = call.Call3(obj, slot, uintptr(w0), uintptr(w1), outAddr)
	default:
		return Value{}, errors.TypeMismatch(errors.PhaseDispatch,
			"single-out fast path supports at most 2 in-values, got %d", len(in))
	}
	runtime.KeepAlive(&cell)

	if hr.Failed() {
		// The cell may have been scribbled on; it is dead either way.
		return Value{}, errors.PlatformStatus(errors.PhaseDispatch, int32(hr))
	}
	return FromCell(&cell, out)
}
