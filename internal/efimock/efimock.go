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

// Package efimock provides an in-memory variables.Store for tests,
// with injectable forced errors on read and write.
package efimock

import (
	"github.com/elemental-efi/efibootkit/internal/bkerror"
	"github.com/elemental-efi/efibootkit/pkg/variables"
)

type entry struct {
	data  []byte
	attrs variables.Attributes
}

// Store is an in-memory variables.Store. The zero value is not usable;
// construct with New.
type Store struct {
	entries map[string]entry

	readErr  error
	writeErr error
}

// New returns an empty Store.
func New() *Store {
	return &Store{entries: make(map[string]entry)}
}

// WithReadError makes every subsequent Read fail with err.
func (s *Store) WithReadError(err error) *Store {
	s.readErr = err
	return s
}

// WithWriteError makes every subsequent Write fail with err.
func (s *Store) WithWriteError(err error) *Store {
	s.writeErr = err
	return s
}

// Seed pre-populates name with data and attrs, bypassing Write and any
// forced write error. Tests use this to set up fixtures such as
// pre-existing Boot#### entries before exercising AUTO assignment.
func (s *Store) Seed(name string, data []byte, attrs variables.Attributes) {
	s.entries[name] = entry{data: data, attrs: attrs}
}

func (s *Store) Read(name string) ([]byte, variables.Attributes, error) {
	if s.readErr != nil {
		return nil, 0, s.readErr
	}
	e, ok := s.entries[name]
	if !ok {
		return nil, 0, bkerror.Newf(bkerror.NotFound, "variable %s does not exist", name)
	}
	return e.data, e.attrs, nil
}

func (s *Store) Write(name string, data []byte) error {
	if s.writeErr != nil {
		return s.writeErr
	}
	if len(data) == 0 {
		delete(s.entries, name)
		return nil
	}
	s.entries[name] = entry{data: data, attrs: variables.DefaultAttributes}
	return nil
}

func (s *Store) Delete(name string) error {
	if _, ok := s.entries[name]; !ok {
		return bkerror.Newf(bkerror.NotFound, "variable %s does not exist", name)
	}
	delete(s.entries, name)
	return nil
}

func (s *Store) Exists(name string) bool {
	_, ok := s.entries[name]
	return ok
}
