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

// Package bootentry models the boot, driver, and system-preparation
// entries firmware stores in NVRAM, and manages their lifecycle against
// a variables.Store.
package bootentry

import (
	"fmt"

	"github.com/sanity-io/litter"

	"github.com/elemental-efi/efibootkit/internal/bkerror"
	"github.com/elemental-efi/efibootkit/pkg/devicepath"
	"github.com/elemental-efi/efibootkit/pkg/loadoption"
)

// Type selects which variable family an entry belongs to.
type Type int

const (
	Boot Type = iota
	Driver
	SysPrep
)

func (t Type) prefix() string {
	switch t {
	case Boot:
		return "Boot"
	case Driver:
		return "Driver"
	case SysPrep:
		return "SysPrep"
	default:
		return ""
	}
}

// OrderVariableName returns the ordering variable name for t (e.g.
// "BootOrder").
func (t Type) OrderVariableName() string {
	return t.prefix() + "Order"
}

func (t Type) valid() bool {
	switch t {
	case Boot, Driver, SysPrep:
		return true
	default:
		return false
	}
}

// AUTO is the sentinel index meaning "assign the next free slot at
// save time".
const AUTO = -1

// Entry is the in-memory, mutable representation of one boot, driver,
// or system-preparation entry: its identity (type, index, derived
// variable name), its load-option payload (attributes, description,
// device paths, optional data), and a dirty flag tracking whether the
// in-memory state has diverged from what was last persisted.
//
// All mutation goes through setters, which mark the entry modified and
// invalidate any cached path text. Getters return views that remain
// valid until the next mutation.
type Entry struct {
	typ   Type
	index int
	name  string

	attributes  loadoption.Attributes
	description string
	paths       []devicepath.Chain
	pathText    []*string
	data        []byte

	modified bool
}

// New constructs an entry of the given type with the defaults the spec
// assigns a freshly created entry: ACTIVE attributes, description
// "Unknown", a singleton placeholder path, AUTO index, and modified set.
func New(typ Type) *Entry {
	e := &Entry{
		typ:         typ,
		index:       AUTO,
		attributes:  loadoption.Active,
		description: "Unknown",
		modified:    true,
	}
	e.setPathsLocked([]devicepath.Chain{{}})
	return e
}

// newFromLoad is used by the manager to reconstruct an entry read from
// the store; unlike New, it starts out unmodified.
func newFromLoad(typ Type, index int, opt *loadoption.LoadOption) *Entry {
	e := &Entry{typ: typ, index: index}
	e.attributes = opt.Attributes
	e.description = opt.Description
	e.setPathsLocked(opt.Paths)
	e.data = opt.OptionalData
	e.recomputeName()
	e.modified = false
	return e
}

func (e *Entry) recomputeName() {
	if e.index == AUTO {
		e.name = ""
		return
	}
	e.name = fmt.Sprintf("%s%04X", e.typ.prefix(), uint16(e.index))
}

// Type returns the entry's variable family.
func (e *Entry) Type() Type { return e.typ }

// SetType updates the entry's variable family and marks it modified.
func (e *Entry) SetType(typ Type) {
	e.typ = typ
	e.recomputeName()
	e.modified = true
}

// Index returns the entry's index, or AUTO.
func (e *Entry) Index() int { return e.index }

// SetIndex sets the entry's index to AUTO or a concrete value in
// [0, 0xFFFF], recomputing the derived variable name.
func (e *Entry) SetIndex(index int) error {
	if index != AUTO && (index < 0 || index > 0xFFFF) {
		return bkerror.Newf(bkerror.Invalid, "boot entry index %d out of range", index)
	}
	e.index = index
	e.recomputeName()
	e.modified = true
	return nil
}

// Name returns the derived variable name, or "" while index is AUTO.
func (e *Entry) Name() string { return e.name }

// Attributes returns the load-option attributes.
func (e *Entry) Attributes() loadoption.Attributes { return e.attributes }

// SetAttributes replaces the load-option attributes.
func (e *Entry) SetAttributes(attrs loadoption.Attributes) {
	e.attributes = attrs
	e.modified = true
}

// Description returns the entry's human-readable description.
func (e *Entry) Description() string { return e.description }

// SetDescription replaces the description, which must be valid UTF-8.
func (e *Entry) SetDescription(desc string) {
	e.description = desc
	e.modified = true
}

// Paths returns the entry's device-path chains.
func (e *Entry) Paths() []devicepath.Chain { return e.paths }

// SetPaths replaces the entire path list, which must be non-empty.
func (e *Entry) SetPaths(paths []devicepath.Chain) error {
	if len(paths) == 0 {
		return bkerror.New(bkerror.Invalid, "boot entry must have at least one device path")
	}
	e.setPathsLocked(paths)
	e.modified = true
	return nil
}

func (e *Entry) setPathsLocked(paths []devicepath.Chain) {
	e.paths = paths
	e.pathText = make([]*string, len(paths))
}

// SetPath replaces the chain at index i.
func (e *Entry) SetPath(i int, chain devicepath.Chain) error {
	if i < 0 || i >= len(e.paths) {
		return bkerror.Newf(bkerror.Invalid, "path index %d out of range", i)
	}
	e.paths[i] = chain
	e.pathText[i] = nil
	e.modified = true
	return nil
}

// SetPathsText parses each element of texts with devicepath.ParseText
// and installs the result as the entry's full path list.
func (e *Entry) SetPathsText(texts []string, allowImplausible bool) error {
	if len(texts) == 0 {
		return bkerror.New(bkerror.Invalid, "boot entry must have at least one device path")
	}
	chains := make([]devicepath.Chain, len(texts))
	for i, text := range texts {
		chain, err := devicepath.ParseText(text, allowImplausible)
		if err != nil {
			return err
		}
		chains[i] = chain
	}
	return e.SetPaths(chains)
}

// SetPathText parses text and installs it as the chain at index i.
func (e *Entry) SetPathText(i int, text string, allowImplausible bool) error {
	chain, err := devicepath.ParseText(text, allowImplausible)
	if err != nil {
		return err
	}
	return e.SetPath(i, chain)
}

// PathText materialises and caches the textual rendering of the chain
// at index i, using the canonical non-display, no-shortcut form.
func (e *Entry) PathText(i int) (string, error) {
	if i < 0 || i >= len(e.paths) {
		return "", bkerror.Newf(bkerror.Invalid, "path index %d out of range", i)
	}
	if e.pathText[i] != nil {
		return *e.pathText[i], nil
	}
	text := devicepath.ToText(e.paths[i], false, false)
	e.pathText[i] = &text
	return text, nil
}

// Data returns the entry's optional data, which may be nil.
func (e *Entry) Data() []byte { return e.data }

// SetData replaces the entry's optional data.
func (e *Entry) SetData(data []byte) {
	e.data = data
	e.modified = true
}

// ClearData removes the entry's optional data.
func (e *Entry) ClearData() {
	e.SetData(nil)
}

// Modified reports whether the in-memory entry has diverged from what
// was last persisted.
func (e *Entry) Modified() bool { return e.modified }

// loadOption renders the entry's current state as a loadoption.LoadOption
// ready for encoding.
func (e *Entry) loadOption() *loadoption.LoadOption {
	return &loadoption.LoadOption{
		Attributes:   e.attributes,
		Description:  e.description,
		Paths:        e.paths,
		OptionalData: e.data,
	}
}

// Dump renders the entry's full internal state for trace-level logging
// and test failure messages.
func (e *Entry) Dump() string {
	return litter.Sdump(e.loadOption())
}
