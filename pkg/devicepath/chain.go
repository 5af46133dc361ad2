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
	"github.com/elemental-efi/efibootkit/internal/bkerror"
)

// EndEntireNode terminates a device-path chain. It carries no data.
type EndEntireNode struct{}

func (EndEntireNode) Type() NodeType   { return TypeEnd }
func (EndEntireNode) SubType() SubType { return subEndEntire }
func (EndEntireNode) Encode() []byte   { return header(TypeEnd, subEndEntire, 4) }
func (EndEntireNode) Text(_, _ bool) string { return "" }

// EndInstanceNode separates successive path instances within a single
// multi-instance device path. efibootkit treats every decoded chain as
// a single instance and rejects this node (see Decode).
type EndInstanceNode struct{}

func (EndInstanceNode) Type() NodeType   { return TypeEnd }
func (EndInstanceNode) SubType() SubType { return subEndInstance }
func (EndInstanceNode) Encode() []byte   { return header(TypeEnd, subEndInstance, 4) }
func (EndInstanceNode) Text(_, _ bool) string { return "," }

// Chain is an ordered sequence of device-path nodes, not including the
// terminating End-Entire node.
type Chain []Node

// Length returns the total wire length of the chain, including the
// 4-byte End-Entire terminator.
func (c Chain) Length() int {
	total := 4
	for _, n := range c {
		total += len(n.Encode())
	}
	return total
}

// Encode serializes the chain to its binary wire form, appending the
// End-Entire terminator.
func (c Chain) Encode() []byte {
	out := make([]byte, 0, c.Length())
	for _, n := range c {
		out = append(out, n.Encode()...)
	}
	return append(out, EndEntireNode{}.Encode()...)
}

// Decode parses a binary device-path chain. It requires a well-formed
// End-Entire terminator, rejects multi-instance paths (an End-Instance
// node before End-Entire), requires at least one non-End node, and
// rejects any trailing bytes after the terminator.
func Decode(data []byte) (Chain, error) {
	chain, consumed, err := DecodeOne(data)
	if err != nil {
		return nil, err
	}
	if consumed != len(data) {
		return nil, bkerror.New(bkerror.Invalid, "trailing data after end-entire node")
	}
	return chain, nil
}

// DecodeOne parses a single device-path chain from the start of data,
// stopping at its own End-Entire terminator, and reports how many
// bytes it consumed. Unlike Decode, it tolerates trailing bytes
// belonging to a subsequent chain — used by the load-option codec to
// walk a concatenated list of device paths.
func DecodeOne(data []byte) (Chain, int, error) {
	var chain Chain
	rest := data
	consumed := 0
	for {
		if len(rest) < 4 {
			return nil, 0, bkerror.New(bkerror.Invalid, "truncated device-path node header")
		}
		t := NodeType(rest[0])
		s := SubType(rest[1])
		length := int(rest[2]) | int(rest[3])<<8
		if length < 4 {
			return nil, 0, bkerror.Newf(bkerror.Invalid, "node length %d is smaller than the header", length)
		}
		if length > len(rest) {
			return nil, 0, bkerror.New(bkerror.Invalid, "node length overruns remaining data")
		}
		payload := rest[4:length]
		rest = rest[length:]
		consumed += length

		if t == TypeEnd {
			switch s {
			case subEndEntire:
				if len(chain) == 0 {
					return nil, 0, bkerror.New(bkerror.Invalid, "device path has no nodes")
				}
				return chain, consumed, nil
			case subEndInstance:
				return nil, 0, bkerror.New(bkerror.Unsupported, "multi-instance device paths are not supported")
			default:
				return nil, 0, bkerror.Newf(bkerror.Invalid, "unknown end sub-type %#x", uint8(s))
			}
		}

		n, err := decodeNode(t, s, payload)
		if err != nil {
			return nil, 0, err
		}
		chain = append(chain, n)
	}
}

// Validate reports whether data is a well-formed device-path chain no
// longer than maxLen bytes (0 disables the limit).
func Validate(data []byte, maxLen int) error {
	if maxLen > 0 && len(data) > maxLen {
		return bkerror.Newf(bkerror.Invalid, "device path is %d bytes, exceeds limit of %d", len(data), maxLen)
	}
	_, err := Decode(data)
	return err
}

// String renders the chain using the canonical non-display, no-shortcut
// form, matching ToText(c, false, false).
func (c Chain) String() string {
	return ToText(c, false, false)
}
