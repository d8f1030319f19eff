//go:build windows

package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/Hong-Xiang/dynwinrt/call"
	"github.com/Hong-Xiang/dynwinrt/dasync"
	"github.com/Hong-Xiang/dynwinrt/roapi"
	"github.com/Hong-Xiang/dynwinrt/signature"
	"github.com/Hong-Xiang/dynwinrt/types"
	"github.com/Hong-Xiang/dynwinrt/value"
	"github.com/Hong-Xiang/dynwinrt/winapp"
)

// The bootstrap DLL path is consumer configuration, not engine state.
const bootstrapEnv = "WINAPPSDK_BOOTSTRAP_DLL_PATH"

func main() {
	var (
		className   = flag.String("class", "", "Fully-qualified runtime class name")
		iidText     = flag.String("iid", "", "Interface GUID to cast the factory to (optional)")
		slot        = flag.Int("slot", -1, "Vtable slot of the method to invoke")
		shape       = flag.String("shape", ":object", "Method shape, in-types:out-types (i32,i64,hstring,object)")
		argList     = flag.String("args", "", "Comma-separated argument values matching the in-types")
		describe    = flag.Bool("describe", false, "Print the factory's runtime class name and exit")
		bootstrap   = flag.String("bootstrap", "", "WinAppSDK bootstrap DLL path (default $"+bootstrapEnv+")")
		interactive = flag.Bool("i", false, "Interactive mode with TUI")
		verbose     = flag.Bool("v", false, "Verbose engine logging")
	)
	flag.Parse()

	if *verbose {
		logger, err := zap.NewDevelopment()
		if err == nil {
			call.SetLogger(logger)
			roapi.SetLogger(logger)
			dasync.SetLogger(logger)
		}
	}

	if *interactive {
		if !term.IsTerminal(int(os.Stdout.Fd())) {
			fmt.Fprintln(os.Stderr, "interactive mode requires a terminal")
			os.Exit(1)
		}
		if err := runInteractive(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	if *className == "" {
		fmt.Fprintln(os.Stderr, "Usage: dyncall -class <Namespace.Class> [-iid guid] -slot <n> [-shape in,..:out,..] [-args v,..]")
		fmt.Fprintln(os.Stderr, "       dyncall -class <Namespace.Class> -describe")
		fmt.Fprintln(os.Stderr, "       dyncall -i  (interactive mode)")
		os.Exit(1)
	}

	if err := run(*className, *iidText, *slot, *shape, *argList, *bootstrap, *describe); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(className, iidText string, slot int, shape, argList, bootstrapPath string, describe bool) error {
	if bootstrapPath == "" {
		bootstrapPath = os.Getenv(bootstrapEnv)
	}
	if bootstrapPath != "" {
		ctx, err := winapp.Initialize(winapp.Options{DLLPath: bootstrapPath, Major: 1, Minor: 8})
		if err != nil {
			return err
		}
		defer ctx.Shutdown()
	}

	if err := roapi.Initialize(); err != nil {
		return err
	}

	recv, err := value.ActivationFactory(className)
	if err != nil {
		return err
	}
	defer recv.Close()

	if iidText != "" {
		iid, err := types.GUIDFromString(iidText)
		if err != nil {
			return err
		}
		cast, err := recv.Cast(iid)
		if err != nil {
			return err
		}
		recv.Close()
		recv = cast
	}

	if describe {
		name, err := recv.RuntimeClassName()
		if err != nil {
			return err
		}
		fmt.Printf("%s\n", name)
		return nil
	}

	if slot < 0 {
		return fmt.Errorf("a method slot is required; pass -slot")
	}

	method, inDescs, err := buildMethod(shape, slot)
	if err != nil {
		return err
	}

	args, cleanup, err := parseArgs(inDescs, argList)
	if err != nil {
		return err
	}
	defer cleanup()

	outs, err := method.CallDynamic(&recv, args)
	if err != nil {
		return err
	}
	for i := range outs {
		fmt.Printf("out[%d] = %s\n", i, formatValue(&outs[i]))
		outs[i].Close()
	}
	return nil
}

// buildMethod parses "in,..:out,.." into a finalized descriptor.
func buildMethod(shape string, slot int) (signature.Method, []types.Desc, error) {
	inPart, outPart, found := strings.Cut(shape, ":")
	if !found {
		return signature.Method{}, nil, fmt.Errorf("shape %q needs an in:out separator", shape)
	}

	b := signature.NewMethod()
	var inDescs []types.Desc
	for _, name := range splitList(inPart) {
		d, err := descByName(name)
		if err != nil {
			return signature.Method{}, nil, err
		}
		inDescs = append(inDescs, d)
		b.In(d)
	}
	for _, name := range splitList(outPart) {
		d, err := descByName(name)
		if err != nil {
			return signature.Method{}, nil, err
		}
		b.Out(d)
	}
	return b.Build(slot), inDescs, nil
}

func splitList(s string) []string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}

func descByName(name string) (types.Desc, error) {
	switch name {
	case "i32":
		return types.I32(), nil
	case "i64":
		return types.I64(), nil
	case "hstring":
		return types.HString(), nil
	case "object":
		return types.Object(), nil
	case "object-array":
		return types.ObjectArray(), nil
	default:
		return types.Desc{}, fmt.Errorf("unknown type %q (want i32, i64, hstring, object, object-array)", name)
	}
}

// parseArgs turns textual arguments into engine values. The cleanup closes
// every value it created.
func parseArgs(descs []types.Desc, argList string) ([]value.Value, func(), error) {
	parts := splitList(argList)
	if len(parts) != len(descs) {
		return nil, nil, fmt.Errorf("shape has %d in-parameters but %d arguments given", len(descs), len(parts))
	}

	vals := make([]value.Value, 0, len(descs))
	cleanup := func() {
		for i := range vals {
			vals[i].Close()
		}
	}
	for i, d := range descs {
		switch d.Kind() {
		case types.KindI32:
			n, err := strconv.ParseInt(parts[i], 10, 32)
			if err != nil {
				cleanup()
				return nil, nil, fmt.Errorf("argument %d: %w", i, err)
			}
			vals = append(vals, value.NewI32(int32(n)))
		case types.KindI64:
			n, err := strconv.ParseInt(parts[i], 10, 64)
			if err != nil {
				cleanup()
				return nil, nil, fmt.Errorf("argument %d: %w", i, err)
			}
			vals = append(vals, value.NewI64(n))
		case types.KindHString:
			v, err := value.NewString(parts[i])
			if err != nil {
				cleanup()
				return nil, nil, err
			}
			vals = append(vals, v)
		default:
			cleanup()
			return nil, nil, fmt.Errorf("argument %d: cannot parse a %s from text", i, d)
		}
	}
	return vals, cleanup, nil
}

func formatValue(v *value.Value) string {
	switch v.Desc().Kind() {
	case types.KindI32:
		n, _ := v.I32()
		return fmt.Sprintf("i32 %d", n)
	case types.KindI64:
		n, _ := v.I64()
		return fmt.Sprintf("i64 %d", n)
	case types.KindHResult:
		hr, _ := v.Status()
		return "hresult " + hr.String()
	case types.KindHString:
		s, _ := v.Str()
		return fmt.Sprintf("hstring %q", s)
	case types.KindObject, types.KindAsyncOp:
		p, _ := v.Object()
		if name, err := v.RuntimeClassName(); err == nil && name != "" {
			return fmt.Sprintf("object %#x (%s)", p, name)
		}
		return fmt.Sprintf("object %#x", p)
	case types.KindObjectArray:
		arr, _ := v.Array()
		return fmt.Sprintf("object-array of %d", len(arr))
	default:
		return v.Desc().String()
	}
}
