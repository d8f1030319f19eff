package signature

import "github.com/Hong-Xiang/dynwinrt/types"

// InterfaceKind selects how many vtable slots precede the first user
// method.
type InterfaceKind uint8

const (
	// PlainInterface reserves the base-component trio
	// (QueryInterface, AddRef, Release).
	PlainInterface InterfaceKind = iota
	// ExtendedInterface additionally reserves the three inspection slots
	// (iids, runtime-class-name, trust-level).
	ExtendedInterface
)

// BaseSlot returns the vtable index of the first user method.
func (k InterfaceKind) BaseSlot() int {
	if k == ExtendedInterface {
		return 6
	}
	return 3
}

func (k InterfaceKind) String() string {
	if k == ExtendedInterface {
		return "extended"
	}
	return "plain"
}

// Interface is an interface descriptor: identity, kind, ordered methods.
type Interface struct {
	Name    string
	iid     types.GUID
	methods []Method
	kind    InterfaceKind
}

// NewInterface starts an interface descriptor. Methods are appended with
// AddMethod; their slots are assigned sequentially from the kind's base.
func NewInterface(name string, iid types.GUID, kind InterfaceKind) *Interface {
	return &Interface{Name: name, iid: iid, kind: kind}
}

// AddMethod finalizes the builder at the next slot and appends it.
// It returns the interface for chaining.
func (i *Interface) AddMethod(b *MethodBuilder) *Interface {
	slot := i.kind.BaseSlot() + len(i.methods)
	i.methods = append(i.methods, b.Build(slot))
	return i
}

// IID returns the interface identity.
func (i *Interface) IID() types.GUID { return i.iid }

// Kind returns the interface kind.
func (i *Interface) Kind() InterfaceKind { return i.kind }

// NumMethods returns the number of user methods declared.
func (i *Interface) NumMethods() int { return len(i.methods) }

// Method returns the nth user method in declaration order.
func (i *Interface) Method(n int) *Method { return &i.methods[n] }

// Equal reports whether two descriptors name the same contract. Equality
// is by identity GUID only.
func (i *Interface) Equal(o *Interface) bool {
	return o != nil && i.iid == o.iid
}
