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
	"github.com/elemental-efi/efibootkit/internal/bkerror"
	"github.com/elemental-efi/efibootkit/internal/log"
)

// StubStore is a VariableStore back-end for platforms with no firmware
// variable API. Every operation but Exists fails with Unsupported.
type StubStore struct {
	log log.Logger
}

// NewStubStore returns a StubStore that logs through logger.
func NewStubStore(logger log.Logger) *StubStore {
	return &StubStore{log: logger}
}

func (s *StubStore) Read(name string) ([]byte, Attributes, error) {
	s.log.Debugf("stub store: read %q unsupported", name)
	return nil, 0, bkerror.New(bkerror.Unsupported, "no firmware variable API on this platform")
}

func (s *StubStore) Write(name string, _ []byte) error {
	s.log.Debugf("stub store: write %q unsupported", name)
	return bkerror.New(bkerror.Unsupported, "no firmware variable API on this platform")
}

func (s *StubStore) Delete(name string) error {
	s.log.Debugf("stub store: delete %q unsupported", name)
	return bkerror.New(bkerror.Unsupported, "no firmware variable API on this platform")
}

func (s *StubStore) Exists(_ string) bool {
	return false
}
