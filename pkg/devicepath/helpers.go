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
	"encoding/hex"
	"errors"
	"strconv"
	"strings"
)

func appendU16(b []byte, v uint16) []byte {
	var tmp [2]byte
	binary.LittleEndian.PutUint16(tmp[:], v)
	return append(b, tmp[:]...)
}

func appendU32(b []byte, v uint32) []byte {
	var tmp [4]byte
	binary.LittleEndian.PutUint32(tmp[:], v)
	return append(b, tmp[:]...)
}

func appendU64(b []byte, v uint64) []byte {
	var tmp [8]byte
	binary.LittleEndian.PutUint64(tmp[:], v)
	return append(b, tmp[:]...)
}

// upperHex renders a numeric device-path argument the way the textual
// grammar expects: a lowercase "0x" prefix followed by uppercase hex
// digits (e.g. 0x12C000), as distinct from a GUID's all-lowercase form.
func upperHex(v uint64) string {
	return "0x" + strings.ToUpper(strconv.FormatUint(v, 16))
}

// upperHexBytes renders a byte blob as unseparated, uppercase hex with
// no 0x prefix, the form the generic Path() fallback and raw vendor
// data use.
func upperHexBytes(b []byte) string {
	return strings.ToUpper(hex.EncodeToString(b))
}

// upperGUID renders g the way the textual grammar expects a GUID
// argument: GUID.String()'s canonical form is all-lowercase, but every
// node that embeds one in its Name(args) form (HD, Fv, FvFile, Ven*)
// uppercases it.
func upperGUID(g GUID) string {
	return strings.ToUpper(g.String())
}

func readU16(b []byte) uint16 { return binary.LittleEndian.Uint16(b) }
func readU32(b []byte) uint32 { return binary.LittleEndian.Uint32(b) }
func readU64(b []byte) uint64 { return binary.LittleEndian.Uint64(b) }

func indexByte(b []byte, c byte) int {
	for i, v := range b {
		if v == c {
			return i
		}
	}
	return -1
}

// parseHex parses a decimal or 0x-prefixed hex literal into a uint32.
func parseHex(s string) (uint32, error) {
	s = strings.TrimSpace(s)
	v, err := strconv.ParseUint(s, 0, 32)
	if err != nil {
		return 0, errors.New("bad numeric argument " + s)
	}
	return uint32(v), nil
}

func parseHex64(s string) (uint64, error) {
	s = strings.TrimSpace(s)
	v, err := strconv.ParseUint(s, 0, 64)
	if err != nil {
		return 0, errors.New("bad numeric argument " + s)
	}
	return v, nil
}

func parseOneHex(args []string) (uint32, error) {
	if len(args) != 1 {
		return 0, errors.New("expected exactly one argument")
	}
	return parseHex(args[0])
}

func parseTwoHex(args []string) (uint32, uint32, error) {
	if len(args) != 2 {
		return 0, 0, errors.New("expected exactly two arguments")
	}
	a, err := parseHex(args[0])
	if err != nil {
		return 0, 0, err
	}
	b, err := parseHex(args[1])
	if err != nil {
		return 0, 0, err
	}
	return a, b, nil
}

// parseEISAIDText parses either a bare EISAID string ("PNP0A03") or a
// numeric HID value.
func parseEISAIDText(s string) (EISAID, error) {
	s = strings.TrimSpace(s)
	if len(s) >= 7 && isAlpha3(s[:3]) {
		product, err := strconv.ParseUint(s[3:], 16, 16)
		if err != nil {
			return 0, errors.New("bad EISAID " + s)
		}
		return NewEISAID(strings.ToUpper(s[:3]), uint16(product))
	}
	v, err := parseHex(s)
	if err != nil {
		return 0, err
	}
	return EISAID(v), nil
}

func isAlpha3(s string) bool {
	if len(s) != 3 {
		return false
	}
	for _, c := range s {
		if (c < 'A' || c > 'Z') && (c < 'a' || c > 'z') {
			return false
		}
	}
	return true
}

// parseHexBlob decodes a bare hex string (no 0x prefix, as rendered by
// %x) into bytes.
func parseHexBlob(s string) ([]byte, error) {
	s = strings.TrimPrefix(strings.TrimSpace(s), "0x")
	if len(s)%2 != 0 {
		s = "0" + s
	}
	b, err := hex.DecodeString(s)
	if err != nil {
		return nil, errors.New("bad hex blob " + s)
	}
	return b, nil
}
