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

package bootentry

import (
	"encoding/binary"
	"fmt"

	units "github.com/docker/go-units"
	"github.com/hashicorp/go-multierror"

	"github.com/elemental-efi/efibootkit/internal/bkerror"
	"github.com/elemental-efi/efibootkit/internal/log"
	"github.com/elemental-efi/efibootkit/pkg/loadoption"
	"github.com/elemental-efi/efibootkit/pkg/variables"
)

const maxEntries = 0x10000

// Manager loads, saves, reorders, and deletes boot, driver, and
// system-preparation entries against a variables.Store. It is
// single-threaded and synchronous: callers must serialize their own
// access if they share a Manager across goroutines.
type Manager struct {
	store variables.Store
	log   log.Logger
}

// NewManager returns a Manager backed by store, logging through logger
// (which may be nil for a discarded logger).
func NewManager(store variables.Store, logger log.Logger) *Manager {
	if logger == nil {
		logger = log.NewNullLogger()
	}
	return &Manager{store: store, log: logger}
}

// LoadAll reads the ordering variable for typ and every entry it names,
// returning them in listed order. A missing ordering variable is
// treated as an empty list; an index listed in the ordering variable
// whose backing variable is missing is a fatal error, and every entry
// already decoded is discarded.
func (m *Manager) LoadAll(typ Type) ([]*Entry, error) {
	if !typ.valid() {
		return nil, bkerror.Newf(bkerror.Invalid, "unknown boot entry type %d", int(typ))
	}

	indices, err := m.loadOrder(typ)
	if err != nil {
		return nil, err
	}

	entries := make([]*Entry, 0, len(indices))
	for _, index := range indices {
		name := fmt.Sprintf("%s%04X", typ.prefix(), uint16(index))
		data, _, err := m.store.Read(name)
		if err != nil {
			return nil, bkerror.Wrap(bkerror.Invalid, err, "loading "+name)
		}
		opt, err := loadoption.Decode(data)
		if err != nil {
			return nil, bkerror.Wrap(bkerror.Invalid, err, "decoding "+name)
		}
		entries = append(entries, newFromLoad(typ, index, opt))
	}
	m.log.Debugf("loaded %d %s entries", len(entries), typ.prefix())
	return entries, nil
}

func (m *Manager) loadOrder(typ Type) ([]int, error) {
	data, _, err := m.store.Read(typ.OrderVariableName())
	if err != nil {
		if bkerror.Is(err, bkerror.NotFound) {
			return nil, nil
		}
		return nil, bkerror.Wrap(bkerror.Invalid, err, "loading "+typ.OrderVariableName())
	}
	if len(data)%2 != 0 {
		return nil, bkerror.Newf(bkerror.Invalid, "%s has an odd length", typ.OrderVariableName())
	}
	indices := make([]int, len(data)/2)
	for i := range indices {
		indices[i] = int(binary.LittleEndian.Uint16(data[2*i : 2*i+2]))
	}
	return indices, nil
}

// SaveAll resolves any AUTO indices among entries, persists each one,
// and rewrites the ordering variable to reflect exactly the entries
// presented, in the order presented. Every entry must have typ.
func (m *Manager) SaveAll(typ Type, entries []*Entry) error {
	if !typ.valid() {
		return bkerror.Newf(bkerror.Invalid, "unknown boot entry type %d", int(typ))
	}
	for _, e := range entries {
		if e.Type() != typ {
			return bkerror.New(bkerror.Invalid, "entry type does not match the requested type")
		}
	}

	for _, e := range entries {
		if err := m.Save(e); err != nil {
			return err
		}
	}

	order := make([]byte, 0, 2*len(entries))
	for _, e := range entries {
		var buf [2]byte
		binary.LittleEndian.PutUint16(buf[:], uint16(e.Index()))
		order = append(order, buf[:]...)
	}
	if err := m.store.Write(typ.OrderVariableName(), order); err != nil {
		return bkerror.Wrap(bkerror.Io, err, "writing "+typ.OrderVariableName())
	}
	return nil
}

// Save persists a single entry. If the entry is unmodified, Save is a
// no-op. If the entry's index is AUTO, Save scans for the first free
// index in [0, 0xFFFF], re-reading exists for each candidate rather
// than trusting any cached view of the store, and fails with NoSpace
// if every slot is taken.
func (m *Manager) Save(e *Entry) error {
	if !e.Modified() {
		return nil
	}

	if e.Index() == AUTO {
		index, err := m.nextFreeIndex(e.Type())
		if err != nil {
			return err
		}
		if err := e.SetIndex(index); err != nil {
			return err
		}
	}

	m.log.Tracef("encoding entry: %s", e.Dump())
	data, err := e.loadOption().Encode()
	if err != nil {
		return err
	}
	if err := m.store.Write(e.Name(), data); err != nil {
		return bkerror.Wrap(bkerror.Io, err, "writing "+e.Name())
	}
	e.modified = false
	m.log.Debugf("saved %s (%s)", e.Name(), units.BytesSize(float64(len(data))))
	return nil
}

// nextFreeIndex scans indices 0..0xFFFF for the first not currently
// present in the store, per entry's own type prefix.
func (m *Manager) nextFreeIndex(typ Type) (int, error) {
	for i := 0; i < maxEntries; i++ {
		name := fmt.Sprintf("%s%04X", typ.prefix(), uint16(i))
		if !m.store.Exists(name) {
			return i, nil
		}
	}
	return 0, bkerror.New(bkerror.NoSpace, "no free boot entry index")
}

// Del removes the variable backing e, if it has a concrete name. It
// does not touch the ordering variable; callers that want e removed
// from the boot order must also rewrite the order via SaveAll.
func (m *Manager) Del(e *Entry) error {
	if e.Name() == "" {
		return nil
	}
	if err := m.store.Delete(e.Name()); err != nil {
		return err
	}
	return nil
}

// Delete removes entries[i] from entries, rewrites the ordering
// variable for typ to reflect the remaining entries via SaveAll, then
// deletes the removed entry's backing variable. It returns the
// updated slice.
func (m *Manager) Delete(typ Type, entries []*Entry, i int) ([]*Entry, error) {
	if i < 0 || i >= len(entries) {
		return entries, bkerror.Newf(bkerror.Invalid, "entry index %d out of range", i)
	}
	removed := entries[i]
	remaining := append(append([]*Entry(nil), entries[:i]...), entries[i+1:]...)

	if err := m.SaveAll(typ, remaining); err != nil {
		return entries, err
	}
	if err := m.Del(removed); err != nil {
		return remaining, err
	}
	return remaining, nil
}

// DeleteAll deletes the backing variable of every entry in entries,
// aggregating failures via a multierror instead of aborting at the
// first one, since each delete is independent.
func (m *Manager) DeleteAll(entries []*Entry) error {
	var result *multierror.Error
	for _, e := range entries {
		if err := m.Del(e); err != nil {
			result = multierror.Append(result, err)
		}
	}
	return result.ErrorOrNil()
}
