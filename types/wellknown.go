package types

// Identities every component-model object answers to.
var (
	IIDIUnknown           = MustGUID("00000000-0000-0000-c000-000000000046")
	IIDIInspectable       = MustGUID("af86e2e0-b12d-4c6a-9c5a-d7aa65101e90")
	IIDIActivationFactory = MustGUID("00000035-0000-0000-c000-000000000046")
	IIDIAsyncInfo         = MustGUID("00000036-0000-0000-c000-000000000046")
	IIDIAgileObject       = MustGUID("94ea2b94-e9cc-49e0-c0ff-ee64ca8f5b90")
)

// Base-component trio, present at the head of every vtable.
const (
	SlotQueryInterface = 0
	SlotAddRef         = 1
	SlotRelease        = 2
)

// Inspection trio of extended interfaces.
const (
	SlotGetIids             = 3
	SlotGetRuntimeClassName = 4
	SlotGetTrustLevel       = 5
)

// IAsyncInfo user methods (extended interface, first user slot 6).
const (
	SlotAsyncInfoID        = 6
	SlotAsyncInfoStatus    = 7
	SlotAsyncInfoErrorCode = 8
	SlotAsyncInfoCancel    = 9
	SlotAsyncInfoClose     = 10
)

// GetResults slot of a concrete async-operation interface
// (extended: 6 put_Completed, 7 get_Completed, 8 GetResults).
const SlotAsyncOperationGetResults = 8

// AsyncStatus is the platform's async-operation state word.
type AsyncStatus int32

const (
	AsyncStarted   AsyncStatus = 0
	AsyncCompleted AsyncStatus = 1
	AsyncCanceled  AsyncStatus = 2
	AsyncError     AsyncStatus = 3
)

var asyncStatusNames = [...]string{
	AsyncStarted:   "started",
	AsyncCompleted: "completed",
	AsyncCanceled:  "canceled",
	AsyncError:     "error",
}

func (s AsyncStatus) String() string {
	if s >= 0 && int(s) < len(asyncStatusNames) {
		return asyncStatusNames[s]
	}
	return "unknown"
}

// Terminal reports whether the status ends the polling loop.
func (s AsyncStatus) Terminal() bool {
	return s != AsyncStarted
}
