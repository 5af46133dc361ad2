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

import "unicode/utf16"

// ConvertUTF8ToUCS2LE encodes s as UCS-2LE (UTF-16LE restricted to the
// BMP, which is all UEFI ever emits). Callers that need a NUL
// terminator append it to s before calling.
func ConvertUTF8ToUCS2LE(s string) []byte {
	units := utf16.Encode([]rune(s))
	out := make([]byte, 0, len(units)*2)
	for _, u := range units {
		out = appendU16(out, u)
	}
	return out
}

// ConvertUCS2LEToUTF8 decodes a UCS-2LE byte slice (an even length is
// assumed; a trailing odd byte is ignored) into a UTF-8 string.
func ConvertUCS2LEToUTF8(b []byte) string {
	units := make([]uint16, 0, len(b)/2)
	for i := 0; i+1 < len(b); i += 2 {
		units = append(units, readU16(b[i:i+2]))
	}
	return string(utf16.Decode(units))
}
