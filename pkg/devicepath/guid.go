/*
Copyright © 2026 efibootkit authors

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package devicepath

import (
	"encoding/binary"
	"fmt"

	"github.com/google/uuid"

	"github.com/elemental-efi/efibootkit/internal/bkerror"
)

// GUID is a 128-bit identifier in EFI_GUID wire order: the first three
// fields (A, B, C) are stored little-endian, matching how firmware lays
// them out in memory; the last two fields (D, E) are plain byte strings.
// This differs from the RFC 4122 byte order that google/uuid.UUID uses
// internally, so converting between the two requires swapping the first
// eight bytes.
type GUID [16]byte

func (g GUID) a() uint32 { return binary.LittleEndian.Uint32(g[0:4]) }
func (g GUID) b() uint16 { return binary.LittleEndian.Uint16(g[4:6]) }
func (g GUID) c() uint16 { return binary.LittleEndian.Uint16(g[6:8]) }
func (g GUID) d() uint16 { return binary.BigEndian.Uint16(g[8:10]) }
func (g GUID) e() [6]byte {
	var e [6]byte
	copy(e[:], g[10:16])
	return e
}

// String renders the canonical lowercase 8-4-4-4-12 hex form.
func (g GUID) String() string {
	return fmt.Sprintf("%08x-%04x-%04x-%04x-%012x", g.a(), g.b(), g.c(), g.d(), g.e())
}

// toUUID converts the wire-order GUID to google/uuid's RFC 4122 byte
// order, swapping the byte order of the first three fields.
func (g GUID) toUUID() uuid.UUID {
	var u uuid.UUID
	binary.BigEndian.PutUint32(u[0:4], g.a())
	binary.BigEndian.PutUint16(u[4:6], g.b())
	binary.BigEndian.PutUint16(u[6:8], g.c())
	copy(u[8:10], g[8:10])
	copy(u[10:16], g[10:16])
	return u
}

// fromUUID converts a google/uuid value into wire-order GUID bytes.
func fromUUID(u uuid.UUID) GUID {
	var g GUID
	binary.LittleEndian.PutUint32(g[0:4], binary.BigEndian.Uint32(u[0:4]))
	binary.LittleEndian.PutUint16(g[4:6], binary.BigEndian.Uint16(u[4:6]))
	binary.LittleEndian.PutUint16(g[6:8], binary.BigEndian.Uint16(u[6:8]))
	copy(g[8:10], u[8:10])
	copy(g[10:16], u[10:16])
	return g
}

// ParseGUID decodes a GUID from its canonical 8-4-4-4-12 textual form.
// Surrounding braces are tolerated; hex casing is not significant.
// Validation (length, hex digits, group boundaries) is delegated to
// google/uuid rather than a hand-rolled regexp.
func ParseGUID(s string) (GUID, error) {
	u, err := uuid.Parse(s)
	if err != nil {
		return GUID{}, bkerror.Wrap(bkerror.Invalid, err, "malformed GUID "+s)
	}
	return fromUUID(u), nil
}

// MustParseGUID is ParseGUID but panics on error; used for well-known
// constant GUIDs at init time.
func MustParseGUID(s string) GUID {
	g, err := ParseGUID(s)
	if err != nil {
		panic(err)
	}
	return g
}
