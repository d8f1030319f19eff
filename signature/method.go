package signature

import (
	"github.com/Hong-Xiang/dynwinrt/abi"
	"github.com/Hong-Xiang/dynwinrt/types"
)

// Param is one parameter of a method descriptor. Out-parameters are stored
// as out-slots of their pointee type, so Desc.ABIKind is pointer for them
// by construction.
type Param struct {
	Desc types.Desc
	Out  bool

	// valueIndex addresses the in-value list for in-parameters and the
	// out-cell block for out-parameters.
	valueIndex int
}

// Pointee returns the materialized type of an out-parameter, or the
// parameter's own type for in-parameters.
func (p Param) Pointee() types.Desc {
	if e, ok := p.Desc.Elem(); ok {
		return e
	}
	return p.Desc
}

// MethodBuilder accumulates parameters in call order.
type MethodBuilder struct {
	params   []Param
	inCount  int
	outCount int
}

// NewMethod returns an empty builder.
func NewMethod() *MethodBuilder {
	return &MethodBuilder{}
}

// In appends an in-parameter of the given type.
func (b *MethodBuilder) In(d types.Desc) *MethodBuilder {
	b.params = append(b.params, Param{Desc: d, valueIndex: b.inCount})
	b.inCount++
	return b
}

// Out appends an out-parameter whose pointee has the given type.
func (b *MethodBuilder) Out(d types.Desc) *MethodBuilder {
	b.params = append(b.params, Param{Desc: types.OutSlot(d), Out: true, valueIndex: b.outCount})
	b.outCount++
	return b
}

// Build finalizes the descriptor with its vtable slot and precomputes the
// call descriptor. Builders are single-use.
func (b *MethodBuilder) Build(slot int) Method {
	kinds := make([]abi.Kind, 0, len(b.params)+2)
	kinds = append(kinds, abi.KindPtr) // receiver
	for _, p := range b.params {
		if p.Out && p.Pointee().Kind() == types.KindObjectArray {
			// Received arrays occupy a count/buffer pair on the wire.
			kinds = append(kinds, abi.KindPtr, abi.KindPtr)
			continue
		}
		kinds = append(kinds, p.Desc.ABIKind())
	}
	return Method{
		slot:      slot,
		params:    b.params,
		inCount:   b.inCount,
		outCount:  b.outCount,
		callKinds: kinds,
	}
}

// Method is a finalized method descriptor.
type Method struct {
	params    []Param
	callKinds []abi.Kind
	slot      int
	inCount   int
	outCount  int
}

// Slot returns the vtable index the method dispatches through.
func (m *Method) Slot() int { return m.slot }

// NumIn returns the number of in-parameters.
func (m *Method) NumIn() int { return m.inCount }

// NumOut returns the number of out-parameters.
func (m *Method) NumOut() int { return m.outCount }

// Params returns the parameter list in call order. The slice is shared; do
// not modify it.
func (m *Method) Params() []Param { return m.params }

// CallKinds returns a copy of the precomputed call descriptor: receiver
// first, then one entry per physical argument word.
func (m *Method) CallKinds() []abi.Kind {
	kinds := make([]abi.Kind, len(m.callKinds))
	copy(kinds, m.callKinds)
	return kinds
}
