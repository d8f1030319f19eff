package types

import (
	"encoding/binary"
	"fmt"

	"github.com/google/uuid"
)

// GUID is a 128-bit interface or class identity in the platform's native
// layout: the first three fields are little-endian on the wire, the final
// eight bytes are stored as written. This matches the in-memory shape the
// platform expects when an identity is passed by pointer.
type GUID struct {
	Data1 uint32
	Data2 uint16
	Data3 uint16
	Data4 [8]byte
}

// GUIDFromString parses a canonical textual GUID
// ("xxxxxxxx-xxxx-xxxx-xxxx-xxxxxxxxxxxx", braces and urn prefixes
// accepted) into the native layout.
func GUIDFromString(s string) (GUID, error) {
	u, err := uuid.Parse(s)
	if err != nil {
		return GUID{}, fmt.Errorf("parse guid %q: %w", s, err)
	}
	return guidFromUUID(u), nil
}

// MustGUID is GUIDFromString for compile-time-known literals; it panics on
// malformed input.
func MustGUID(s string) GUID {
	g, err := GUIDFromString(s)
	if err != nil {
		panic(err)
	}
	return g
}

func guidFromUUID(u uuid.UUID) GUID {
	var g GUID
	g.Data1 = binary.BigEndian.Uint32(u[0:4])
	g.Data2 = binary.BigEndian.Uint16(u[4:6])
	g.Data3 = binary.BigEndian.Uint16(u[6:8])
	copy(g.Data4[:], u[8:16])
	return g
}

func (g GUID) uuid() uuid.UUID {
	var u uuid.UUID
	binary.BigEndian.PutUint32(u[0:4], g.Data1)
	binary.BigEndian.PutUint16(u[4:6], g.Data2)
	binary.BigEndian.PutUint16(u[6:8], g.Data3)
	copy(u[8:16], g.Data4[:])
	return u
}

// String renders the identity in canonical lowercase text.
func (g GUID) String() string {
	return g.uuid().String()
}

// IsZero reports whether the identity is the all-zero GUID.
func (g GUID) IsZero() bool {
	return g == GUID{}
}
