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

package loadoption_test

import (
	"encoding/hex"
	"strings"
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/elemental-efi/efibootkit/pkg/devicepath"
	"github.com/elemental-efi/efibootkit/pkg/loadoption"
)

func TestLoadOption(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "loadoption test suite")
}

func mustHex(s string) []byte {
	b, err := hex.DecodeString(strings.ReplaceAll(s, " ", ""))
	Expect(err).NotTo(HaveOccurred())
	return b
}

var _ = Describe("LoadOption", Label("loadoption"), func() {
	It("decodes and re-encodes the Fedora boot entry exactly", func() {
		raw := mustHex(
			"01 00 00 00 62 00 46 00 65 00 64 00 6F 00 72 00 61 00 00 00 04 01 2A 00 01 00 00 00 00 08 00 00 " +
				"00 00 00 00 00 C0 12 00 00 00 00 00 09 79 F5 C8 89 D5 A1 41 99 58 44 C7 F2 29 E1 50 02 02 04 04 " +
				"34 00 5C 00 45 00 46 00 49 00 5C 00 66 00 65 00 64 00 6F 00 72 00 61 00 5C 00 73 00 68 00 69 00 " +
				"6D 00 78 00 36 00 34 00 2E 00 65 00 66 00 69 00 00 00 7F FF 04 00")

		opt, err := loadoption.Decode(raw)
		Expect(err).NotTo(HaveOccurred())

		Expect(opt.Attributes).To(Equal(loadoption.Active))
		Expect(opt.Description).To(Equal("Fedora"))
		Expect(opt.OptionalData).To(BeEmpty())
		Expect(opt.Paths).To(HaveLen(1))

		text := devicepath.ToText(opt.Paths[0], false, false)
		Expect(text).To(Equal(`HD(1,GPT,C8F57909-D589-41A1-9958-44C7F229E150,0x800,0x12C000)/\EFI\fedora\shimx64.efi`))

		reencoded, err := opt.Encode()
		Expect(err).NotTo(HaveOccurred())
		Expect(reencoded).To(Equal(raw))
	})

	Describe("boundary rejections", func() {
		It("rejects records shorter than 6 bytes", func() {
			_, err := loadoption.Decode([]byte{1, 2, 3})
			Expect(err).To(HaveOccurred())
		})

		It("rejects an unterminated description", func() {
			raw := mustHex("01 00 00 00 04 00 41 00")
			_, err := loadoption.Decode(raw)
			Expect(err).To(HaveOccurred())
		})

		It("rejects a path-list length that overruns the record", func() {
			raw := mustHex("01 00 00 00 FF 00 00 00 7F FF 04 00")
			_, err := loadoption.Decode(raw)
			Expect(err).To(HaveOccurred())
		})

		It("rejects a zero-length path list", func() {
			raw := mustHex("01 00 00 00 00 00 00 00")
			_, err := loadoption.Decode(raw)
			Expect(err).To(HaveOccurred())
		})

		It("still parses when optional data trails an intact path region", func() {
			header := mustHex("01 00 00 00 0C 00 00 00")
			chain := mustHex("03 01 08 00 00 00 00 00 7F FF 04 00")
			trailer := []byte{0xAA, 0xBB, 0xCC}
			raw := append(append(header, chain...), trailer...)

			opt, err := loadoption.Decode(raw)
			Expect(err).NotTo(HaveOccurred())
			Expect(opt.OptionalData).To(Equal(trailer))
		})
	})
})
