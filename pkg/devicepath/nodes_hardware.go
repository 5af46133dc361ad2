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
	"errors"
	"fmt"
)

func init() {
	registerDecoder(TypeHardware, subHWPCI, decodePCINode)
	registerDecoder(TypeHardware, subHWVendor, decodeVendorNode(TypeHardware))
	registerDecoder(TypeACPI, subACPI, decodeACPINode)
	registerDecoder(TypeACPI, subACPIExtended, decodeACPIExtendedNode)

	registerTextParser("PciRoot", parsePciRoot)
	registerTextParser("PcieRoot", parsePcieRoot)
	registerTextParser("Floppy", parseAcpiNamed(hidFloppy))
	registerTextParser("Keyboard", parseAcpiNamed(hidKeyboard))
	registerTextParser("Serial", parseAcpiNamed(hidSerial))
	registerTextParser("ParallelPort", parseAcpiNamed(hidParallelPort))
	registerTextParser("Acpi", parseAcpiGeneric)
	registerTextParser("AcpiEx", parseAcpiExtended)
	registerTextParser("Pci", parsePci)
	registerTextParser("VenHw", parseVendorText(TypeHardware))
}

// PCINode identifies a device by its PCI function and device number
// on a parent bus.
type PCINode struct {
	Device   uint8
	Function uint8
}

func (n *PCINode) Type() NodeType   { return TypeHardware }
func (n *PCINode) SubType() SubType { return subHWPCI }

func (n *PCINode) Encode() []byte {
	out := header(n.Type(), n.SubType(), 6)
	return append(out, n.Function, n.Device)
}

func (n *PCINode) Text(_, _ bool) string {
	return fmt.Sprintf("Pci(%s,%s)", upperHex(uint64(n.Device)), upperHex(uint64(n.Function)))
}

func decodePCINode(payload []byte) (Node, error) {
	if len(payload) != 2 {
		return nil, errors.New("bad Pci payload length")
	}
	return &PCINode{Function: payload[0], Device: payload[1]}, nil
}

func parsePci(args []string) (Node, error) {
	dev, fn, err := parseTwoHex(args)
	if err != nil {
		return nil, err
	}
	return &PCINode{Device: uint8(dev), Function: uint8(fn)}, nil
}

// ACPINode identifies a device with a compressed EISA PNP HID and a
// unique instance ID.
type ACPINode struct {
	HID EISAID
	UID uint32
}

func (n *ACPINode) Type() NodeType   { return TypeACPI }
func (n *ACPINode) SubType() SubType { return subACPI }

func (n *ACPINode) Encode() []byte {
	out := header(n.Type(), n.SubType(), 12)
	out = appendU32(out, uint32(n.HID))
	out = appendU32(out, n.UID)
	return out
}

func (n *ACPINode) Text(_, _ bool) string {
	switch {
	case n.HID == hidPciRoot:
		return fmt.Sprintf("PciRoot(%s)", upperHex(uint64(n.UID)))
	case n.HID == hidPcieRoot:
		return fmt.Sprintf("PcieRoot(%s)", upperHex(uint64(n.UID)))
	case n.HID == hidFloppy:
		return fmt.Sprintf("Floppy(%s)", upperHex(uint64(n.UID)))
	case n.HID == hidKeyboard:
		return fmt.Sprintf("Keyboard(%s)", upperHex(uint64(n.UID)))
	case n.HID == hidSerial:
		return fmt.Sprintf("Serial(%s)", upperHex(uint64(n.UID)))
	case n.HID == hidParallelPort:
		return fmt.Sprintf("ParallelPort(%s)", upperHex(uint64(n.UID)))
	default:
		return fmt.Sprintf("Acpi(%s,%s)", n.HID, upperHex(uint64(n.UID)))
	}
}

func decodeACPINode(payload []byte) (Node, error) {
	if len(payload) != 8 {
		return nil, errors.New("bad Acpi payload length")
	}
	return &ACPINode{HID: EISAID(readU32(payload[0:4])), UID: readU32(payload[4:8])}, nil
}

func parsePciRoot(args []string) (Node, error) {
	uid, err := parseOneHex(args)
	if err != nil {
		return nil, err
	}
	return &ACPINode{HID: hidPciRoot, UID: uid}, nil
}

func parsePcieRoot(args []string) (Node, error) {
	uid, err := parseOneHex(args)
	if err != nil {
		return nil, err
	}
	return &ACPINode{HID: hidPcieRoot, UID: uid}, nil
}

func parseAcpiNamed(hid EISAID) textParseFunc {
	return func(args []string) (Node, error) {
		uid, err := parseOneHex(args)
		if err != nil {
			return nil, err
		}
		return &ACPINode{HID: hid, UID: uid}, nil
	}
}

func parseAcpiGeneric(args []string) (Node, error) {
	if len(args) != 2 {
		return nil, errors.New("Acpi() takes 2 arguments")
	}
	hid, err := parseEISAIDText(args[0])
	if err != nil {
		return nil, err
	}
	uid, err := parseHex(args[1])
	if err != nil {
		return nil, err
	}
	return &ACPINode{HID: hid, UID: uid}, nil
}

// ACPIExtendedNode is the extended ACPI form carrying optional string
// overrides for HID, UID, and CID.
type ACPIExtendedNode struct {
	HID    EISAID
	UID    uint32
	CID    EISAID
	HIDStr string
	UIDStr string
	CIDStr string
}

func (n *ACPIExtendedNode) Type() NodeType   { return TypeACPI }
func (n *ACPIExtendedNode) SubType() SubType { return subACPIExtended }

func (n *ACPIExtendedNode) Encode() []byte {
	length := 16 + len(n.HIDStr) + 1 + len(n.UIDStr) + 1 + len(n.CIDStr) + 1
	out := header(n.Type(), n.SubType(), length)
	out = appendU32(out, uint32(n.HID))
	out = appendU32(out, n.UID)
	out = appendU32(out, uint32(n.CID))
	for _, s := range []string{n.HIDStr, n.UIDStr, n.CIDStr} {
		out = append(out, []byte(s)...)
		out = append(out, 0)
	}
	return out
}

func (n *ACPIExtendedNode) Text(displayOnly, _ bool) string {
	hidText, cidText, uidText := n.HID.String(), n.CID.String(), n.UIDStr
	if n.HIDStr != "" {
		hidText = n.HIDStr
	}
	if n.CIDStr != "" {
		cidText = n.CIDStr
	}
	if !displayOnly {
		return fmt.Sprintf("AcpiEx(%s,%s,%s,%q,%q,%q)", n.HID, n.CID, upperHex(uint64(n.UID)), n.HIDStr, n.UIDStr, n.CIDStr)
	}
	if uidText != "" {
		return fmt.Sprintf("AcpiEx(%s,%s,%s)", hidText, cidText, uidText)
	}
	return fmt.Sprintf("AcpiEx(%s,%s,%s)", hidText, cidText, upperHex(uint64(n.UID)))
}

func decodeACPIExtendedNode(payload []byte) (Node, error) {
	if len(payload) < 12 {
		return nil, errors.New("bad AcpiEx payload length")
	}
	n := &ACPIExtendedNode{
		HID: EISAID(readU32(payload[0:4])),
		UID: readU32(payload[4:8]),
		CID: EISAID(readU32(payload[8:12])),
	}
	rest := payload[12:]
	strs := make([]string, 0, 3)
	for i := 0; i < 3; i++ {
		nul := indexByte(rest, 0)
		if nul < 0 {
			return nil, errors.New("unterminated AcpiEx string field")
		}
		strs = append(strs, string(rest[:nul]))
		rest = rest[nul+1:]
	}
	n.HIDStr, n.UIDStr, n.CIDStr = strs[0], strs[1], strs[2]
	return n, nil
}

// VendorNode carries vendor-defined data qualified by a GUID, valid
// under the hardware, messaging, and media top-level types.
type VendorNode struct {
	NType NodeType
	GUID  GUID
	Data  []byte
}

func (n *VendorNode) Type() NodeType { return n.NType }
func (n *VendorNode) SubType() SubType {
	switch n.NType {
	case TypeMedia:
		return subMediaVendor
	case TypeMessaging:
		return subMsgVendor
	default:
		return subHWVendor
	}
}

func (n *VendorNode) Encode() []byte {
	out := header(n.Type(), n.SubType(), 20+len(n.Data))
	out = append(out, n.GUID[:]...)
	return append(out, n.Data...)
}

func (n *VendorNode) Text(_, _ bool) string {
	var kind string
	switch n.NType {
	case TypeHardware:
		kind = "Hw"
	case TypeMessaging:
		kind = "Msg"
	case TypeMedia:
		kind = "Media"
	default:
		kind = "?"
	}
	if len(n.Data) > 0 {
		return fmt.Sprintf("Ven%s(%s,%s)", kind, upperGUID(n.GUID), upperHexBytes(n.Data))
	}
	return fmt.Sprintf("Ven%s(%s)", kind, upperGUID(n.GUID))
}

func decodeVendorNode(t NodeType) decodeFunc {
	return func(payload []byte) (Node, error) {
		if len(payload) < 16 {
			return nil, errors.New("bad vendor payload length")
		}
		var g GUID
		copy(g[:], payload[:16])
		data := make([]byte, len(payload)-16)
		copy(data, payload[16:])
		return &VendorNode{NType: t, GUID: g, Data: data}, nil
	}
}

func parseAcpiExtended(args []string) (Node, error) {
	switch len(args) {
	case 6:
		hid, err := parseEISAIDText(args[0])
		if err != nil {
			return nil, err
		}
		cid, err := parseEISAIDText(args[1])
		if err != nil {
			return nil, err
		}
		uid, err := parseHex(args[2])
		if err != nil {
			return nil, err
		}
		return &ACPIExtendedNode{
			HID: hid, CID: cid, UID: uid,
			HIDStr: unquote(args[3]), UIDStr: unquote(args[4]), CIDStr: unquote(args[5]),
		}, nil
	case 3:
		n := &ACPIExtendedNode{HIDStr: args[0], CIDStr: args[1]}
		if hid, err := parseEISAIDText(args[0]); err == nil {
			n.HID = hid
		}
		if cid, err := parseEISAIDText(args[1]); err == nil {
			n.CID = cid
		}
		if uid, err := parseHex(args[2]); err == nil {
			n.UID = uid
		} else {
			n.UIDStr = args[2]
		}
		return n, nil
	default:
		return nil, errors.New("AcpiEx() takes 3 or 6 arguments")
	}
}

func parseVendorText(t NodeType) textParseFunc {
	return func(args []string) (Node, error) {
		if len(args) < 1 {
			return nil, errors.New("Ven*() requires a GUID argument")
		}
		g, err := ParseGUID(args[0])
		if err != nil {
			return nil, err
		}
		var data []byte
		if len(args) > 1 {
			data, err = parseHexBlob(args[1])
			if err != nil {
				return nil, err
			}
		}
		return &VendorNode{NType: t, GUID: g, Data: data}, nil
	}
}
