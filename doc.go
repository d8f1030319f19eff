// Package dynwinrt is a runtime projection engine for the Windows Runtime
// component object model.
//
// Interfaces are described as data — an identity GUID, an ordered method
// list, per-method parameter shapes — and any method can then be invoked on
// a live component handle without interface-specific code generation. The
// engine preserves the platform's calling convention, manages caller-owned
// storage for out-parameters whose types are only known at run time, casts
// between interface identities, and exposes long-running async operations
// as pollable futures.
//
// # Architecture Overview
//
// The library is organized into several packages with distinct responsibilities:
//
//	dynwinrt/            Root package documentation and end-to-end tests
//	├── abi/             Machine-level parameter kinds and out-parameter cells
//	├── types/           Type descriptors, GUIDs, platform status codes
//	├── hstring/         Platform string resource wrappers
//	├── call/            Vtable lookup and indirect-call primitives
//	├── value/           Tagged values with reference-count ownership
//	├── signature/       Interface and method descriptors, dynamic dispatch
//	├── roapi/           Per-thread runtime init and activation factories
//	├── winapp/          Optional platform-extension bootstrap
//	├── dasync/          Async-operation to pollable-future bridge
//	└── errors/          Structured error types for debugging
//
// # Quick Start
//
// Describe a method, activate a class, and call dynamically:
//
//	if err := roapi.Initialize(); err != nil {
//	    log.Fatal(err)
//	}
//
//	factory, err := value.ActivationFactory("Windows.Foundation.Uri")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer factory.Close()
//
//	uriFactory, err := factory.Cast(types.MustGUID("44a9796f-723e-4fdf-a218-033e75b0c084"))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer uriFactory.Close()
//
//	createUri := signature.NewMethod().
//	    In(types.HString()).
//	    Out(types.Object()).
//	    Build(6)
//
//	arg, _ := value.NewString("https://example.com/path")
//	defer arg.Close()
//	outs, err := createUri.CallDynamic(&uriFactory, []value.Value{arg})
//
// Dispatch works on any thread that has initialized the runtime; the engine
// itself holds no state between calls.
package dynwinrt
