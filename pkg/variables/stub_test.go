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
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/elemental-efi/efibootkit/internal/bkerror"
	"github.com/elemental-efi/efibootkit/internal/log"
)

func TestVariables(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "variables test suite")
}

var _ = Describe("StubStore", Label("variables", "stub"), func() {
	var store *StubStore

	BeforeEach(func() {
		store = NewStubStore(log.NewNullLogger())
	})

	It("fails every mutating and reading operation as unsupported", func() {
		_, _, err := store.Read("Boot0000")
		Expect(bkerror.Is(err, bkerror.Unsupported)).To(BeTrue())

		err = store.Write("Boot0000", []byte{1})
		Expect(bkerror.Is(err, bkerror.Unsupported)).To(BeTrue())

		err = store.Delete("Boot0000")
		Expect(bkerror.Is(err, bkerror.Unsupported)).To(BeTrue())
	})

	It("always reports a variable as absent", func() {
		Expect(store.Exists("Boot0000")).To(BeFalse())
	})
})
