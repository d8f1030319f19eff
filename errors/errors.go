package errors

import (
	"fmt"
	"strings"
)

// Phase indicates where in processing the error occurred
type Phase string

const (
	PhaseInit       Phase = "init"       // per-thread runtime initialization
	PhaseActivation Phase = "activation" // activation-factory acquisition
	PhaseMarshal    Phase = "marshal"    // value <-> ABI cell conversion
	PhaseDispatch   Phase = "dispatch"   // descriptor-driven indirect calls
	PhaseAsync      Phase = "async"      // async-operation bridging
	PhaseBootstrap  Phase = "bootstrap"  // optional platform-extension bootstrap
)

// Kind categorizes the error
type Kind string

const (
	KindPlatformStatus     Kind = "platform_status"      // failing HRESULT from the platform
	KindNoInterface        Kind = "no_interface"         // QueryInterface refused the identity
	KindClassNotRegistered Kind = "class_not_registered" // activation class unknown to the registry
	KindActivationFailed   Kind = "activation_failed"    // factory acquisition failed for another reason
	KindTypeMismatch       Kind = "type_mismatch"        // value shape disagrees with descriptor
	KindBootstrapFailed    Kind = "bootstrap_failed"     // extension DLL load or entrypoint failed
	KindCanceled           Kind = "canceled"             // async operation terminated as canceled
	KindInvalidState       Kind = "invalid_state"        // operation on a value in an unusable state
)

// Error is the structured error type used throughout dynwinrt
type Error struct {
	Cause   error
	Phase   Phase
	Kind    Kind
	Class   string // fully-qualified runtime class name, when relevant
	IID     string // interface identity in canonical GUID text, when relevant
	Detail  string
	HResult int32 // originating platform status, 0 when none
}

// Error implements the error interface
func (e *Error) Error() string {
	var b strings.Builder

	b.WriteByte('[')
	b.WriteString(string(e.Phase))
	b.WriteString("] ")
	b.WriteString(string(e.Kind))

	if e.Class != "" {
		b.WriteString(" class ")
		b.WriteString(e.Class)
	}
	if e.IID != "" {
		b.WriteString(" iid ")
		b.WriteString(e.IID)
	}
	if e.HResult != 0 {
		fmt.Fprintf(&b, " hresult 0x%08X", uint32(e.HResult))
	}

	if e.Detail != "" {
		b.WriteString(": ")
		b.WriteString(e.Detail)
	}

	if e.Cause != nil {
		b.WriteString(" (caused by: ")
		b.WriteString(e.Cause.Error())
		b.WriteByte(')')
	}

	return b.String()
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Phase == t.Phase && e.Kind == t.Kind
	}
	return false
}

// Builder provides structured error construction
type Builder struct {
	err Error
}

// New creates a new error builder
func New(phase Phase, kind Kind) *Builder {
	return &Builder{
		err: Error{
			Phase: phase,
			Kind:  kind,
		},
	}
}

// HResult sets the originating platform status
func (b *Builder) HResult(hr int32) *Builder {
	b.err.HResult = hr
	return b
}

// Class sets the runtime class name
func (b *Builder) Class(name string) *Builder {
	b.err.Class = name
	return b
}

// IID sets the interface identity
func (b *Builder) IID(iid string) *Builder {
	b.err.IID = iid
	return b
}

// Cause sets the underlying error
func (b *Builder) Cause(err error) *Builder {
	b.err.Cause = err
	return b
}

// Detail sets the human-readable detail message
func (b *Builder) Detail(msg string, args ...any) *Builder {
	if len(args) > 0 {
		b.err.Detail = fmt.Sprintf(msg, args...)
	} else {
		b.err.Detail = msg
	}
	return b
}

// Build returns the constructed error
func (b *Builder) Build() *Error {
	return &b.err
}

// PlatformStatus creates an error carrying a failing HRESULT verbatim
func PlatformStatus(phase Phase, hr int32) *Error {
	return &Error{
		Phase:   phase,
		Kind:    KindPlatformStatus,
		HResult: hr,
	}
}

// NoInterface creates a failed-cast error for the given identity
func NoInterface(iid string) *Error {
	return &Error{
		Phase: PhaseDispatch,
		Kind:  KindNoInterface,
		IID:   iid,
	}
}

// ClassNotRegistered creates an activation error for an unknown class
func ClassNotRegistered(class string, hr int32) *Error {
	return &Error{
		Phase:   PhaseActivation,
		Kind:    KindClassNotRegistered,
		Class:   class,
		HResult: hr,
	}
}

// ActivationFailed creates an activation error for platform failures other
// than an unregistered class
func ActivationFailed(class string, hr int32) *Error {
	return &Error{
		Phase:   PhaseActivation,
		Kind:    KindActivationFailed,
		Class:   class,
		HResult: hr,
	}
}

// TypeMismatch creates a descriptor/value disagreement error
func TypeMismatch(phase Phase, detail string, args ...any) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindTypeMismatch,
		Detail: fmt.Sprintf(detail, args...),
	}
}

// BootstrapFailed creates an extension-bootstrap error
func BootstrapFailed(detail string, cause error) *Error {
	return &Error{
		Phase:  PhaseBootstrap,
		Kind:   KindBootstrapFailed,
		Detail: detail,
		Cause:  cause,
	}
}

// Canceled creates an async-cancellation error
func Canceled() *Error {
	return &Error{
		Phase: PhaseAsync,
		Kind:  KindCanceled,
	}
}

// InvalidState creates a misuse error
func InvalidState(phase Phase, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindInvalidState,
		Detail: detail,
	}
}

// Wrap wraps an existing error with additional context
func Wrap(phase Phase, kind Kind, cause error, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   kind,
		Detail: detail,
		Cause:  cause,
	}
}
