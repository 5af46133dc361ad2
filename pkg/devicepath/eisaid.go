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
	"errors"
	"fmt"
)

// EISAID is a compressed EISA PNP ID as used in ACPI device path HID/CID
// fields: a 3-letter vendor code packed into 15 bits plus a 16-bit
// product code.
type EISAID uint32

// Vendor returns the 3-letter vendor code.
func (id EISAID) Vendor() string {
	return fmt.Sprintf("%c%c%c",
		((id>>10)&0x1f)+'A'-1,
		((id>>5)&0x1f)+'A'-1,
		(id&0x1f)+'A'-1)
}

// Product returns the 16-bit product code.
func (id EISAID) Product() uint16 {
	return uint16(id >> 16)
}

func (id EISAID) String() string {
	if id == 0 {
		return "0"
	}
	return fmt.Sprintf("%s%04X", id.Vendor(), id.Product())
}

// NewEISAID packs a 3-letter vendor code and product code into an
// EISAID.
func NewEISAID(vendor string, product uint16) (EISAID, error) {
	if len(vendor) != 3 {
		return 0, errors.New("vendor code must be 3 letters")
	}
	var out EISAID
	out |= EISAID((vendor[0]-'A'+1)&0x1f) << 10
	out |= EISAID((vendor[1]-'A'+1)&0x1f) << 5
	out |= EISAID((vendor[2]-'A'+1)&0x1f)
	out |= EISAID(product) << 16
	return out, nil
}

var (
	hidPciRoot      = mustEISAID("PNP", 0x0a03)
	hidPcieRoot     = mustEISAID("PNP", 0x0a08)
	hidFloppy       = mustEISAID("PNP", 0x0604)
	hidKeyboard     = mustEISAID("PNP", 0x0301)
	hidSerial       = mustEISAID("PNP", 0x0501)
	hidParallelPort = mustEISAID("PNP", 0x0401)
)

func mustEISAID(vendor string, product uint16) EISAID {
	id, err := NewEISAID(vendor, product)
	if err != nil {
		panic(err)
	}
	return id
}
