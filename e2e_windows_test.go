//go:build windows

package dynwinrt_test

import (
	"errors"
	"testing"

	dynerr "github.com/Hong-Xiang/dynwinrt/errors"
	"github.com/Hong-Xiang/dynwinrt/roapi"
	"github.com/Hong-Xiang/dynwinrt/signature"
	"github.com/Hong-Xiang/dynwinrt/types"
	"github.com/Hong-Xiang/dynwinrt/value"
)

var (
	iidUriRuntimeClass        = types.MustGUID("9e365e57-48b2-4160-956f-c7385120bbfc")
	iidUriRuntimeClassFactory = types.MustGUID("44a9796f-723e-4fdf-a218-033e75b0c084")
)

const (
	slotCreateUri = 6  // IUriRuntimeClassFactory.CreateUri
	slotGetHost   = 11 // IUriRuntimeClass.get_Host
	slotGetPort   = 19 // IUriRuntimeClass.get_Port
)

// uriInterface declares IUriRuntimeClass the way the metadata lays it out:
// extended kind, getters from slot 6 up.
func uriInterface() *signature.Interface {
	iface := signature.NewInterface("Windows.Foundation.IUriRuntimeClass",
		iidUriRuntimeClass, signature.ExtendedInterface)
	iface.AddMethod(signature.NewMethod().Out(types.HString())) // 6 get_AbsoluteUri
	iface.AddMethod(signature.NewMethod().Out(types.HString())) // 7 get_DisplayUri
	iface.AddMethod(signature.NewMethod().Out(types.HString())) // 8 get_Domain
	iface.AddMethod(signature.NewMethod().Out(types.HString())) // 9 get_Extension
	iface.AddMethod(signature.NewMethod().Out(types.HString())) // 10 get_Fragment
	iface.AddMethod(signature.NewMethod().Out(types.HString())) // 11 get_Host
	iface.AddMethod(signature.NewMethod().Out(types.HString())) // 12 get_Password
	iface.AddMethod(signature.NewMethod().Out(types.HString())) // 13 get_Path
	iface.AddMethod(signature.NewMethod().Out(types.HString())) // 14 get_Query
	iface.AddMethod(signature.NewMethod().Out(types.Object()))  // 15 get_QueryParsed
	iface.AddMethod(signature.NewMethod().Out(types.HString())) // 16 get_RawUri
	iface.AddMethod(signature.NewMethod().Out(types.HString())) // 17 get_SchemeName
	iface.AddMethod(signature.NewMethod().Out(types.HString())) // 18 get_UserName
	iface.AddMethod(signature.NewMethod().Out(types.I32()))     // 19 get_Port
	return iface
}

func uriFactoryInterface() *signature.Interface {
	iface := signature.NewInterface("Windows.Foundation.IUriRuntimeClassFactory",
		iidUriRuntimeClassFactory, signature.ExtendedInterface)
	iface.AddMethod(signature.NewMethod().In(types.HString()).Out(types.Object())) // 6 CreateUri
	return iface
}

// makeUri activates the Uri class and constructs an instance through the
// factory's CreateUri via the fast path.
func makeUri(t *testing.T, raw string) value.Value {
	t.Helper()
	if err := roapi.Initialize(); err != nil {
		t.Skipf("component runtime unavailable: %v", err)
	}
	factory, err := value.ActivationFactory("Windows.Foundation.Uri")
	if err != nil {
		t.Skipf("Uri class unavailable: %v", err)
	}
	defer factory.Close()

	uriFactory, err := factory.Cast(iidUriRuntimeClassFactory)
	if err != nil {
		t.Fatalf("cast to factory interface failed: %v", err)
	}
	defer uriFactory.Close()

	arg, err := value.NewString(raw)
	if err != nil {
		t.Fatalf("NewString failed: %v", err)
	}
	defer arg.Close()

	uri, err := uriFactory.CallSingleOut(slotCreateUri, types.Object(), arg)
	if err != nil {
		t.Fatalf("CreateUri failed: %v", err)
	}
	return uri
}

func TestUriHostFastPath(t *testing.T) {
	uri := makeUri(t, "https://example.com/path")
	defer uri.Close()

	host, err := uri.CallSingleOut(slotGetHost, types.HString())
	if err != nil {
		t.Fatalf("get_Host failed: %v", err)
	}
	defer host.Close()

	if got, _ := host.Str(); got != "example.com" {
		t.Errorf("host = %q, want example.com", got)
	}
}

// The fully descriptor-driven path must produce the same bytes as the fast
// path.
func TestUriDynamicPathEquivalence(t *testing.T) {
	if err := roapi.Initialize(); err != nil {
		t.Skipf("component runtime unavailable: %v", err)
	}
	factory, err := value.ActivationFactory("Windows.Foundation.Uri")
	if err != nil {
		t.Skipf("Uri class unavailable: %v", err)
	}
	defer factory.Close()

	uriFactory, err := factory.Cast(uriFactoryInterface().IID())
	if err != nil {
		t.Fatalf("cast to factory interface failed: %v", err)
	}
	defer uriFactory.Close()

	arg, err := value.NewString("https://example.com/path")
	if err != nil {
		t.Fatalf("NewString failed: %v", err)
	}
	defer arg.Close()

	outs, err := uriFactoryInterface().Method(0).CallDynamic(&uriFactory, []value.Value{arg})
	if err != nil {
		t.Fatalf("dynamic CreateUri failed: %v", err)
	}
	uri := outs[0]
	defer uri.Close()

	iface := uriInterface()
	getHost := iface.Method(slotGetHost - signature.ExtendedInterface.BaseSlot())
	hostOuts, err := getHost.CallDynamic(&uri, nil)
	if err != nil {
		t.Fatalf("dynamic get_Host failed: %v", err)
	}
	defer hostOuts[0].Close()

	fastUri := makeUri(t, "https://example.com/path")
	defer fastUri.Close()
	fastHost, err := fastUri.CallSingleOut(slotGetHost, types.HString())
	if err != nil {
		t.Fatalf("fast get_Host failed: %v", err)
	}
	defer fastHost.Close()

	dyn, _ := hostOuts[0].Str()
	fast, _ := fastHost.Str()
	if dyn != fast {
		t.Errorf("dynamic host %q differs from fast-path host %q", dyn, fast)
	}

	getPort := iface.Method(slotGetPort - signature.ExtendedInterface.BaseSlot())
	portOuts, err := getPort.CallDynamic(&uri, nil)
	if err != nil {
		t.Fatalf("dynamic get_Port failed: %v", err)
	}
	if port, _ := portOuts[0].I32(); port != 443 {
		t.Errorf("port = %d, want 443", port)
	}
}

func TestUriFailingCastKeepsHandleValid(t *testing.T) {
	uri := makeUri(t, "https://example.com/path")
	defer uri.Close()

	unrelated := types.MustGUID("deadbeef-0000-4000-8000-000000000001")
	_, err := uri.Cast(unrelated)
	if !errors.Is(err, &dynerr.Error{Phase: dynerr.PhaseDispatch, Kind: dynerr.KindNoInterface}) {
		t.Fatalf("error = %v, want no_interface", err)
	}

	// The original handle still answers.
	host, err := uri.CallSingleOut(slotGetHost, types.HString())
	if err != nil {
		t.Fatalf("get_Host after failed cast: %v", err)
	}
	defer host.Close()
	if got, _ := host.Str(); got != "example.com" {
		t.Errorf("host = %q, want example.com", got)
	}
}

func TestInitializeIdempotent(t *testing.T) {
	if err := roapi.Initialize(); err != nil {
		t.Skipf("component runtime unavailable: %v", err)
	}
	for i := 0; i < 3; i++ {
		if err := roapi.Initialize(); err != nil {
			t.Fatalf("repeat Initialize %d failed: %v", i, err)
		}
	}
	// The runtime is still usable afterwards.
	uri := makeUri(t, "https://example.com/")
	uri.Close()
}
