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

package variables

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/twpayne/go-vfs/v4/vfst"

	"github.com/elemental-efi/efibootkit/internal/bkerror"
	"github.com/elemental-efi/efibootkit/internal/log"
)

// This exercises LinuxStore against a real, temporary on-disk filesystem
// rather than efivarfs: it cannot see the immutable-inode-flag dance that
// efivarfs itself performs, only the plain read/write/delete surface
// that a vfs.FS substitution is meant to isolate.
var _ = Describe("LinuxStore", Label("variables", "linux"), func() {
	var (
		store   *LinuxStore
		cleanup func()
	)

	BeforeEach(func() {
		fs, c, err := vfst.NewTestFS(map[string]interface{}{})
		Expect(err).NotTo(HaveOccurred())
		cleanup = c
		store = newLinuxStoreFS(fs, "/", log.NewNullLogger())
	})

	AfterEach(func() {
		cleanup()
	})

	It("reports a never-written variable as absent", func() {
		Expect(store.Exists("BootOrder")).To(BeFalse())
		_, _, err := store.Read("BootOrder")
		Expect(bkerror.Is(err, bkerror.NotFound)).To(BeTrue())
	})

	It("round-trips a write through read and exists", func() {
		Expect(store.Write("Boot0000", []byte{0xDE, 0xAD, 0xBE, 0xEF})).NotTo(HaveOccurred())
		Expect(store.Exists("Boot0000")).To(BeTrue())

		data, attrs, err := store.Read("Boot0000")
		Expect(err).NotTo(HaveOccurred())
		Expect(data).To(Equal([]byte{0xDE, 0xAD, 0xBE, 0xEF}))
		Expect(attrs).To(Equal(DefaultAttributes))
	})

	It("fails to delete a variable that was never written", func() {
		err := store.Delete("Boot0000")
		Expect(bkerror.Is(err, bkerror.NotFound)).To(BeTrue())
	})
})
