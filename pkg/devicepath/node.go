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

// Package devicepath implements the UEFI device-path codec: binary
// validation, length computation, and round-trip conversion to and
// from the canonical textual representation.
package devicepath

import (
	"fmt"

	"github.com/elemental-efi/efibootkit/internal/bkerror"
)

// NodeType is the first byte of a device-path node header.
type NodeType uint8

const (
	TypeHardware  NodeType = 0x01
	TypeACPI      NodeType = 0x02
	TypeMessaging NodeType = 0x03
	TypeMedia     NodeType = 0x04
	TypeBBS       NodeType = 0x05
	TypeEnd       NodeType = 0x7F
)

func (t NodeType) String() string {
	switch t {
	case TypeHardware:
		return "HardwarePath"
	case TypeACPI:
		return "AcpiPath"
	case TypeMessaging:
		return "Msg"
	case TypeMedia:
		return "MediaPath"
	case TypeBBS:
		return "BbsPath"
	default:
		return fmt.Sprintf("Path[%02x]", uint8(t))
	}
}

// SubType is the second byte of a device-path node header; its meaning
// depends on NodeType.
type SubType uint8

const (
	subHWPCI    SubType = 0x01
	subHWVendor SubType = 0x04

	subACPI         SubType = 0x01
	subACPIExtended SubType = 0x02

	subMsgATAPI             SubType = 0x01
	subMsgSCSI              SubType = 0x02
	subMsgUSB               SubType = 0x05
	subMsgVendor            SubType = 0x0a
	subMsgMACAddr           SubType = 0x0b
	subMsgIPv4              SubType = 0x0c
	subMsgIPv6              SubType = 0x0d
	subMsgUSBClass          SubType = 0x0f
	subMsgUSBWWID           SubType = 0x10
	subMsgDeviceLogicalUnit SubType = 0x11
	subMsgSATA              SubType = 0x12
	subMsgNVMENamespace     SubType = 0x17
	subMsgURI               SubType = 0x18

	subMediaHardDrive           SubType = 0x01
	subMediaCDROM               SubType = 0x02
	subMediaVendor              SubType = 0x03
	subMediaFilePath            SubType = 0x04
	subMediaFwFile              SubType = 0x06
	subMediaFwVol               SubType = 0x07
	subMediaRelativeOffsetRange SubType = 0x08

	subEndInstance SubType = 0x01
	subEndEntire   SubType = 0xFF
)

// compoundType packs a (NodeType, SubType) pair into a single
// comparable map key.
type compoundType uint16

func compound(t NodeType, s SubType) compoundType {
	return compoundType(t)<<8 | compoundType(s)
}

// Node is one element of a device-path chain.
type Node interface {
	// Type returns the node's header type byte.
	Type() NodeType
	// SubType returns the node's header sub-type byte.
	SubType() SubType
	// Encode returns the node's complete wire representation,
	// header included.
	Encode() []byte
	// Text renders the node's canonical textual form. Nodes with a
	// shorter display form use it when displayOnly is set; no node in
	// this package changes its rendering for allowShortcuts.
	Text(displayOnly, allowShortcuts bool) string
}

// header builds the 4-byte Type|SubType|Length prefix for a node whose
// total encoded length (header included) is length.
func header(t NodeType, s SubType, length int) []byte {
	return []byte{byte(t), byte(s), byte(length), byte(length >> 8)}
}

// GenericNode is the fallback for any (Type, SubType) this package does
// not otherwise model. It never panics on unknown input; it just carries
// the opaque payload. A payload that a registered decoder rejects does
// not fall back to GenericNode: decodeNode fails with Invalid instead.
type GenericNode struct {
	NType    NodeType
	NSubType SubType
	Data     []byte
}

func (n *GenericNode) Type() NodeType       { return n.NType }
func (n *GenericNode) SubType() SubType     { return n.NSubType }

func (n *GenericNode) Encode() []byte {
	out := header(n.NType, n.NSubType, 4+len(n.Data))
	return append(out, n.Data...)
}

func (n *GenericNode) Text(_, _ bool) string {
	return fmt.Sprintf("Path(%d,%d,%s)", uint8(n.NType), uint8(n.NSubType), upperHexBytes(n.Data))
}

// decodeFunc parses a node's payload (the bytes after the 4-byte
// header, up to the declared length) into a concrete Node.
type decodeFunc func(payload []byte) (Node, error)

// decodeTable maps (Type, SubType) to the routine that can decode it.
// Unknown pairs fall through to GenericNode; this table is consulted
// by decodeNode below and is never mutated after init.
var decodeTable = map[compoundType]decodeFunc{}

func registerDecoder(t NodeType, s SubType, fn decodeFunc) {
	decodeTable[compound(t, s)] = fn
}

func decodeNode(t NodeType, s SubType, payload []byte) (Node, error) {
	if fn, ok := decodeTable[compound(t, s)]; ok {
		n, err := fn(payload)
		if err != nil {
			return nil, bkerror.Wrap(bkerror.Invalid, err, "decoding node")
		}
		return n, nil
	}
	data := make([]byte, len(payload))
	copy(data, payload)
	return &GenericNode{NType: t, NSubType: s, Data: data}, nil
}
