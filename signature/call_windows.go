//go:build windows

package signature

import (
	"runtime"

	"github.com/Hong-Xiang/dynwinrt/abi"
	"github.com/Hong-Xiang/dynwinrt/call"
	"github.com/Hong-Xiang/dynwinrt/errors"
	"github.com/Hong-Xiang/dynwinrt/types"
	"github.com/Hong-Xiang/dynwinrt/value"
)

// CallDynamic dispatches the method on a receiver value with the given
// in-values, in declaration order. On success it returns one value per
// out-parameter, also in declaration order, each owning whatever reference
// the callee transferred.
//
// In-values are borrowed for the duration of the call; the caller keeps
// ownership of them either way.
func (m *Method) CallDynamic(receiver *value.Value, in []value.Value) ([]value.Value, error) {
	obj, ok := receiver.Object()
	if !ok {
		return nil, errors.TypeMismatch(errors.PhaseDispatch,
			"receiver must be an object value, got %s", receiver.Desc())
	}
	return m.callDynamicRaw(obj, in)
}

// CallDynamicRaw is CallDynamic for callers holding a raw borrowed handle.
func (m *Method) CallDynamicRaw(receiver uintptr, in []value.Value) ([]value.Value, error) {
	return m.callDynamicRaw(receiver, in)
}

func (m *Method) callDynamicRaw(receiver uintptr, in []value.Value) ([]value.Value, error) {
	if err := m.checkArgs(in); err != nil {
		return nil, err
	}

	// One zero-initialized cell per physical out slot, allocated before the
	// call and kept reachable across it.
	cells := make([]abi.Cell, 0, m.outCount+1)
	cellOf := make([]int, len(m.params))
	for idx, p := range m.params {
		if !p.Out {
			continue
		}
		cellOf[idx] = len(cells)
		if p.Pointee().Kind() == types.KindObjectArray {
			cells = append(cells, abi.NewCell(abi.KindI32), abi.NewCell(abi.KindPtr))
			continue
		}
		cells = append(cells, abi.NewCell(p.Pointee().ABIKind()))
	}

	args := make([]uintptr, 0, len(m.callKinds))
	for idx, p := range m.params {
		if p.Out {
			c := cellOf[idx]
			args = append(args, uintptr(cells[c].Addr()))
			if p.Pointee().Kind() == types.KindObjectArray {
				args = append(args, uintptr(cells[c+1].Addr()))
			}
			continue
		}
		w, err := in[p.valueIndex].ToWord()
		if err != nil {
			return nil, err
		}
		args = append(args, uintptr(w))
	}

	hr := call.Slot(receiver, m.slot, args...)
	runtime.KeepAlive(cells)
	if hr.Failed() {
		// Out-cells are treated as uninitialized on failure and never read.
		return nil, errors.PlatformStatus(errors.PhaseDispatch, int32(hr))
	}

	outs := make([]value.Value, 0, m.outCount)
	for idx, p := range m.params {
		if !p.Out {
			continue
		}
		c := cellOf[idx]
		var (
			v   value.Value
			err error
		)
		if p.Pointee().Kind() == types.KindObjectArray {
			v, err = value.FromArrayCells(&cells[c], &cells[c+1])
		} else {
			v, err = value.FromCell(&cells[c], p.Pointee())
		}
		if err != nil {
			for i := range outs {
				outs[i].Close()
			}
			return nil, err
		}
		outs = append(outs, v)
	}
	return outs, nil
}

func (m *Method) checkArgs(in []value.Value) error {
	if len(in) != m.inCount {
		return errors.TypeMismatch(errors.PhaseDispatch,
			"method takes %d in-values, got %d", m.inCount, len(in))
	}
	for _, p := range m.params {
		if p.Out {
			continue
		}
		got := in[p.valueIndex].Desc()
		if !inCompatible(got, p.Desc) {
			return errors.TypeMismatch(errors.PhaseDispatch,
				"argument %d: expected %s, got %s", p.valueIndex, p.Desc, got)
		}
	}
	return nil
}

// inCompatible accepts an exact kind match, plus an async-operation handle
// wherever a plain object is expected.
func inCompatible(got, want types.Desc) bool {
	if got.Kind() == want.Kind() {
		return true
	}
	return got.Kind() == types.KindAsyncOp && want.Kind() == types.KindObject
}
