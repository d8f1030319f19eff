//go:build windows

package comfake

import (
	"sync"
	"sync/atomic"
	"syscall"
	"unsafe"

	"github.com/Hong-Xiang/dynwinrt/types"
)

// Object is an in-process fake component: a real vtable whose entries are
// Go callbacks, good enough to be called through the engine's dispatch
// path. Slots 0..2 implement the base-component trio with a live reference
// count; remaining slots must be installed with SetSlot before use.
type Object struct {
	refs atomic.Int32

	name  string
	slots []uintptr
	vtbl  *uintptr
	self  uintptr

	// casts maps an identity to the object QueryInterface hands out for
	// it. An object always answers to IUnknown with itself.
	casts map[types.GUID]*Object
}

var (
	registryMu sync.Mutex
	registry   = map[uintptr]*Object{}
)

func lookup(this uintptr) *Object {
	registryMu.Lock()
	defer registryMu.Unlock()
	return registry[this]
}

// New builds a fake component with the given number of vtable slots
// (including the base trio) and an initial reference count of one.
func New(name string, numSlots int) *Object {
	o := &Object{
		name:  name,
		slots: make([]uintptr, numSlots),
		casts: map[types.GUID]*Object{},
	}
	o.refs.Store(1)

	o.vtbl = new(uintptr)
	*o.vtbl = uintptr(unsafe.Pointer(&o.slots[0]))
	o.self = uintptr(unsafe.Pointer(o.vtbl))

	registryMu.Lock()
	registry[o.self] = o
	registryMu.Unlock()

	o.slots[types.SlotQueryInterface] = qiCallback()
	o.slots[types.SlotAddRef] = addRefCallback()
	o.slots[types.SlotRelease] = releaseCallback()
	o.casts[types.IIDIUnknown] = o
	return o
}

// Raw returns the component handle. The fake keeps its own initial
// reference; callers adopting the handle must AddRef first.
func (o *Object) Raw() uintptr {
	return o.self
}

// Refs returns the current reference count.
func (o *Object) Refs() int32 {
	return o.refs.Load()
}

// AddRef increments the fake's count directly, for handing an owned
// reference to engine code under test.
func (o *Object) AddRef() {
	o.refs.Add(1)
}

// AddCast makes QueryInterface answer the given identity with target.
func (o *Object) AddCast(iid types.GUID, target *Object) {
	o.casts[iid] = target
}

// SetSlot installs a raw callback pointer.
func (o *Object) SetSlot(slot int, fn uintptr) {
	o.slots[slot] = fn
}

// SetSlot0 installs a method taking only the receiver.
func (o *Object) SetSlot0(slot int, f func(this uintptr) uintptr) {
	o.slots[slot] = syscall.NewCallback(f)
}

// SetSlot1 installs a method taking the receiver and one word.
func (o *Object) SetSlot1(slot int, f func(this, a uintptr) uintptr) {
	o.slots[slot] = syscall.NewCallback(f)
}

// SetSlot2 installs a method taking the receiver and two words.
func (o *Object) SetSlot2(slot int, f func(this, a, b uintptr) uintptr) {
	o.slots[slot] = syscall.NewCallback(f)
}

// SetSlot3 installs a method taking the receiver and three words.
func (o *Object) SetSlot3(slot int, f func(this, a, b, c uintptr) uintptr) {
	o.slots[slot] = syscall.NewCallback(f)
}

const hrNoInterface = uintptr(0x80004002)

var (
	qiOnce      sync.Once
	qiPtr       uintptr
	addRefOnce  sync.Once
	addRefPtr   uintptr
	releaseOnce sync.Once
	releasePtr  uintptr
)

func qiCallback() uintptr {
	qiOnce.Do(func() {
		qiPtr = syscall.NewCallback(func(this, piid, ppv uintptr) uintptr {
			o := lookup(this)
			if o == nil || piid == 0 || ppv == 0 {
				return hrNoInterface
			}
			iid := *(*types.GUID)(unsafe.Pointer(piid))
			target, ok := o.casts[iid]
			if !ok {
				*(*uintptr)(unsafe.Pointer(ppv)) = 0
				return hrNoInterface
			}
			target.refs.Add(1)
			*(*uintptr)(unsafe.Pointer(ppv)) = target.self
			return 0
		})
	})
	return qiPtr
}

func addRefCallback() uintptr {
	addRefOnce.Do(func() {
		addRefPtr = syscall.NewCallback(func(this uintptr) uintptr {
			o := lookup(this)
			if o == nil {
				return 0
			}
			return uintptr(uint32(o.refs.Add(1)))
		})
	})
	return addRefPtr
}

func releaseCallback() uintptr {
	releaseOnce.Do(func() {
		releasePtr = syscall.NewCallback(func(this uintptr) uintptr {
			o := lookup(this)
			if o == nil {
				return 0
			}
			return uintptr(uint32(o.refs.Add(-1)))
		})
	})
	return releasePtr
}
