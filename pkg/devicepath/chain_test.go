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

package devicepath_test

import (
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/elemental-efi/efibootkit/internal/bkerror"
	"github.com/elemental-efi/efibootkit/pkg/devicepath"
)

func TestDevicePath(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "devicepath test suite")
}

var _ = Describe("Device path text/binary round-trips", Label("devicepath"), func() {
	It("round-trips a PCI/ATA hard-drive chain", func() {
		text := "PciRoot(0x0)/Pci(0x1,0x1)/Ata(0x0)"
		expected := []byte{
			0x02, 0x01, 0x0C, 0x00, 0xD0, 0x41, 0x03, 0x0A, 0x00, 0x00, 0x00, 0x00,
			0x01, 0x01, 0x06, 0x00, 0x01, 0x01,
			0x03, 0x01, 0x08, 0x00, 0x00, 0x00, 0x00, 0x00,
			0x7F, 0xFF, 0x04, 0x00,
		}

		chain, err := devicepath.ParseText(text, false)
		Expect(err).NotTo(HaveOccurred())
		Expect(chain.Encode()).To(Equal(expected))

		decoded, err := devicepath.Decode(expected)
		Expect(err).NotTo(HaveOccurred())
		Expect(devicepath.ToText(decoded, false, false)).To(Equal(text))
	})

	It("round-trips a MAC address chain", func() {
		text := "PciRoot(0x0)/Pci(0x3,0x0)/MAC(525400123456,0x1)"
		chain, err := devicepath.ParseText(text, false)
		Expect(err).NotTo(HaveOccurred())

		decoded, err := devicepath.Decode(chain.Encode())
		Expect(err).NotTo(HaveOccurred())
		Expect(devicepath.ToText(decoded, false, false)).To(Equal(text))
	})

	It("decodes both the short and long IPv4/URI forms to the same chain", func() {
		short := "IPv4(0.0.0.0)/Uri(http://boot.ipxe.org/ipxe.efi)"
		long := "IPv4(0.0.0.0,0x0,DHCP,0.0.0.0,0.0.0.0,0.0.0.0)/Uri(http://boot.ipxe.org/ipxe.efi)"

		shortChain, err := devicepath.ParseText(short, false)
		Expect(err).NotTo(HaveOccurred())
		longChain, err := devicepath.ParseText(long, false)
		Expect(err).NotTo(HaveOccurred())

		Expect(shortChain.Encode()).To(Equal(longChain.Encode()))
	})

	It("round-trips a firmware volume / firmware volume file chain", func() {
		text := "Fv(7CB8BDC9-F8EB-4F34-AAEA-3EE4AF6516A1)/FvFile(7C04A583-9E3E-4F1C-AD65-E05268D0B4D1)"
		chain, err := devicepath.ParseText(text, false)
		Expect(err).NotTo(HaveOccurred())

		decoded, err := devicepath.Decode(chain.Encode())
		Expect(err).NotTo(HaveOccurred())
		Expect(devicepath.ToText(decoded, false, false)).To(Equal(text))
	})

	Describe("plausibility checking", func() {
		It("parses a correctly cased URI node", func() {
			chain, err := devicepath.ParseText("Uri(http://x)", false)
			Expect(err).NotTo(HaveOccurred())
			Expect(chain).To(HaveLen(1))
			Expect(chain[0]).To(BeAssignableToTypeOf(&devicepath.URINode{}))
		})

		It("rejects a wrong-cased URI node as implausible by default", func() {
			_, err := devicepath.ParseText("URI(http://x)", false)
			Expect(err).To(HaveOccurred())
			Expect(bkerror.Is(err, bkerror.Implausible)).To(BeTrue())
		})

		It("embeds the wrong-cased segment as a file-path node when allowed", func() {
			chain, err := devicepath.ParseText("URI(http://x)", true)
			Expect(err).NotTo(HaveOccurred())
			Expect(chain).To(HaveLen(1))
			fp, ok := chain[0].(*devicepath.FilePathNode)
			Expect(ok).To(BeTrue())
			Expect(fp.Path).To(Equal("URI(http://x)"))
		})
	})

	Describe("boundary rejections", func() {
		It("rejects a node whose length field is smaller than the header", func() {
			data := []byte{0x01, 0x01, 0x02, 0x00, 0x7F, 0xFF, 0x04, 0x00}
			_, err := devicepath.Decode(data)
			Expect(err).To(HaveOccurred())
		})

		It("rejects a node whose length overruns the remaining bytes", func() {
			data := []byte{0x01, 0x01, 0xFF, 0x00, 0x7F, 0xFF, 0x04, 0x00}
			_, err := devicepath.Decode(data)
			Expect(err).To(HaveOccurred())
		})

		It("rejects a chain with no End-Entire terminator", func() {
			data := []byte{0x7F, 0x01, 0x04, 0x00}
			_, err := devicepath.Decode(data)
			Expect(err).To(HaveOccurred())
		})

		It("rejects trailing bytes after the End-Entire node", func() {
			data := []byte{0x01, 0x01, 0x06, 0x00, 0x01, 0x01, 0x7F, 0xFF, 0x04, 0x00, 0x00}
			_, err := devicepath.Decode(data)
			Expect(err).To(HaveOccurred())
		})

		It("rejects a chain with zero non-End nodes", func() {
			data := []byte{0x7F, 0xFF, 0x04, 0x00}
			_, err := devicepath.Decode(data)
			Expect(err).To(HaveOccurred())
		})
	})
})
