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

// Package loadoption encodes and decodes the EFI_LOAD_OPTION record
// carried by Boot####, Driver####, and SysPrep#### variables.
package loadoption

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/elemental-efi/efibootkit/internal/bkerror"
	"github.com/elemental-efi/efibootkit/pkg/devicepath"
)

// Attributes is the EFI_LOAD_OPTION attributes bitmask.
type Attributes uint32

const (
	Active         Attributes = 0x00000001
	ForceReconnect Attributes = 0x00000002
	Hidden         Attributes = 0x00000008
	CategoryMask   Attributes = 0x00001F00
	CategoryBoot   Attributes = 0x00000000
	CategoryApp    Attributes = 0x00000100
)

// IsActive reports whether the Active bit is set.
func (a Attributes) IsActive() bool { return a&Active != 0 }

// IsHidden reports whether the Hidden bit is set.
func (a Attributes) IsHidden() bool { return a&Hidden != 0 }

// IsAppCategory reports whether the attributes select the app load
// option category rather than the boot category.
func (a Attributes) IsAppCategory() bool { return a&CategoryMask == CategoryApp }

// LoadOption is the decoded form of an EFI_LOAD_OPTION record: a set
// of attributes, a human-readable description, one or more device
// paths, and an opaque trailer of optional data.
type LoadOption struct {
	Attributes   Attributes
	Description  string
	Paths        []devicepath.Chain
	OptionalData []byte
}

// Decode parses a raw EFI_LOAD_OPTION record.
func Decode(data []byte) (*LoadOption, error) {
	if len(data) < 6 {
		return nil, bkerror.New(bkerror.Invalid, "load option record shorter than 6 bytes")
	}
	attrs := Attributes(binary.LittleEndian.Uint32(data[0:4]))
	fplLen := int(binary.LittleEndian.Uint16(data[4:6]))

	nulAt := -1
	for i := 6; i+1 < len(data); i += 2 {
		if data[i] == 0 && data[i+1] == 0 {
			nulAt = i
			break
		}
	}
	if nulAt < 0 {
		return nil, bkerror.New(bkerror.Invalid, "load option description has no NUL terminator")
	}
	description := devicepath.ConvertUCS2LEToUTF8(data[6:nulAt])
	pathStart := nulAt + 2

	if fplLen == 0 {
		return nil, bkerror.New(bkerror.Invalid, "load option has an empty device path list")
	}
	pathEnd := pathStart + fplLen
	if pathEnd > len(data) {
		return nil, bkerror.New(bkerror.Invalid, "load option device path list overruns the record")
	}

	var paths []devicepath.Chain
	rest := data[pathStart:pathEnd]
	for len(rest) > 0 {
		chain, consumed, err := devicepath.DecodeOne(rest)
		if err != nil {
			return nil, bkerror.Wrap(bkerror.Invalid, err, "decoding load option device path")
		}
		paths = append(paths, chain)
		rest = rest[consumed:]
	}
	if len(paths) == 0 {
		return nil, bkerror.New(bkerror.Invalid, "load option device path list decoded to zero chains")
	}

	return &LoadOption{
		Attributes:   attrs,
		Description:  description,
		Paths:        paths,
		OptionalData: append([]byte(nil), data[pathEnd:]...),
	}, nil
}

// Encode serializes the load option back to its wire form.
func (o *LoadOption) Encode() ([]byte, error) {
	if len(o.Paths) == 0 {
		return nil, bkerror.New(bkerror.Invalid, "load option has no device paths")
	}

	var pathBytes []byte
	for _, chain := range o.Paths {
		pathBytes = append(pathBytes, chain.Encode()...)
	}
	if len(pathBytes) > math.MaxUint16 {
		return nil, bkerror.New(bkerror.Invalid, "load option device path list is too large")
	}

	wideDescription := devicepath.ConvertUTF8ToUCS2LE(o.Description + "\x00")

	out := make([]byte, 0, 6+len(wideDescription)+len(pathBytes)+len(o.OptionalData))
	var header [6]byte
	binary.LittleEndian.PutUint32(header[0:4], uint32(o.Attributes))
	binary.LittleEndian.PutUint16(header[4:6], uint16(len(pathBytes)))
	out = append(out, header[:]...)
	out = append(out, wideDescription...)
	out = append(out, pathBytes...)
	out = append(out, o.OptionalData...)
	return out, nil
}

// String implements fmt.Stringer for debugging and logging.
func (o *LoadOption) String() string {
	return fmt.Sprintf("LoadOption{Attributes: %#x, Description: %q, Paths: %d, OptionalData: %d bytes}",
		uint32(o.Attributes), o.Description, len(o.Paths), len(o.OptionalData))
}
