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
	"net"
	"strconv"
	"strings"
)

func init() {
	registerDecoder(TypeMessaging, subMsgATAPI, decodeATAPINode)
	registerDecoder(TypeMessaging, subMsgSCSI, decodeSCSINode)
	registerDecoder(TypeMessaging, subMsgUSB, decodeUSBNode)
	registerDecoder(TypeMessaging, subMsgVendor, decodeVendorNode(TypeMessaging))
	registerDecoder(TypeMessaging, subMsgMACAddr, decodeMACNode)
	registerDecoder(TypeMessaging, subMsgIPv4, decodeIPv4Node)
	registerDecoder(TypeMessaging, subMsgDeviceLogicalUnit, decodeDeviceLogicalUnitNode)
	registerDecoder(TypeMessaging, subMsgSATA, decodeSATANode)
	registerDecoder(TypeMessaging, subMsgNVMENamespace, decodeNVMENamespaceNode)
	registerDecoder(TypeMessaging, subMsgURI, decodeURINode)

	registerTextParser("Ata", parseAta)
	registerTextParser("Scsi", parseScsi)
	registerTextParser("USB", parseUSB)
	registerTextParser("VenMsg", parseVendorText(TypeMessaging))
	registerTextParser("MAC", parseMAC)
	registerTextParser("IPv4", parseIPv4)
	registerTextParser("Unit", parseDeviceLogicalUnit)
	registerTextParser("Sata", parseSata)
	registerTextParser("NVMe", parseNVMe)
	registerRawTextParser("Uri", parseURI)
}

// ATAPINode identifies an ATA/ATAPI device by controller role, drive
// role, and logical unit number.
type ATAPINode struct {
	Primary bool // true = primary controller, false = secondary
	Master  bool // true = master drive, false = slave
	LUN     uint16
}

func (n *ATAPINode) Type() NodeType   { return TypeMessaging }
func (n *ATAPINode) SubType() SubType { return subMsgATAPI }

func (n *ATAPINode) Encode() []byte {
	out := header(n.Type(), n.SubType(), 8)
	out = append(out, boolByte(!n.Primary), boolByte(!n.Master))
	return appendU16(out, n.LUN)
}

func (n *ATAPINode) Text(displayOnly, _ bool) string {
	if displayOnly {
		return fmt.Sprintf("Ata(%s)", upperHex(uint64(n.LUN)))
	}
	return fmt.Sprintf("Ata(%s,%s,%s)", ctrlRoleString(n.Primary), driveRoleString(n.Master), upperHex(uint64(n.LUN)))
}

func boolByte(b bool) byte {
	if b {
		return 1
	}
	return 0
}

func ctrlRoleString(primary bool) string {
	if primary {
		return "Primary"
	}
	return "Secondary"
}

func driveRoleString(master bool) string {
	if master {
		return "Master"
	}
	return "Slave"
}

func decodeATAPINode(payload []byte) (Node, error) {
	if len(payload) != 4 {
		return nil, errors.New("bad Ata payload length")
	}
	return &ATAPINode{Primary: payload[0] == 0, Master: payload[1] == 0, LUN: readU16(payload[2:4])}, nil
}

func parseAta(args []string) (Node, error) {
	switch len(args) {
	case 1:
		lun, err := parseHex(args[0])
		if err != nil {
			return nil, err
		}
		return &ATAPINode{Primary: true, Master: true, LUN: uint16(lun)}, nil
	case 3:
		primary, err := parseRole(args[0], "Primary", "Secondary")
		if err != nil {
			return nil, err
		}
		master, err := parseRole(args[1], "Master", "Slave")
		if err != nil {
			return nil, err
		}
		lun, err := parseHex(args[2])
		if err != nil {
			return nil, err
		}
		return &ATAPINode{Primary: primary, Master: master, LUN: uint16(lun)}, nil
	default:
		return nil, errors.New("Ata() takes 1 or 3 arguments")
	}
}

func parseRole(s, trueName, falseName string) (bool, error) {
	switch s {
	case trueName:
		return true, nil
	case falseName:
		return false, nil
	default:
		v, err := parseHex(s)
		if err != nil {
			return false, errors.New("bad role " + s)
		}
		return v == 0, nil
	}
}

// SCSINode identifies a device by SCSI target and logical unit number.
type SCSINode struct {
	PUN uint16
	LUN uint16
}

func (n *SCSINode) Type() NodeType   { return TypeMessaging }
func (n *SCSINode) SubType() SubType { return subMsgSCSI }

func (n *SCSINode) Encode() []byte {
	out := header(n.Type(), n.SubType(), 8)
	out = appendU16(out, n.PUN)
	return appendU16(out, n.LUN)
}

func (n *SCSINode) Text(_, _ bool) string {
	return fmt.Sprintf("Scsi(%s,%s)", upperHex(uint64(n.PUN)), upperHex(uint64(n.LUN)))
}

func decodeSCSINode(payload []byte) (Node, error) {
	if len(payload) != 4 {
		return nil, errors.New("bad Scsi payload length")
	}
	return &SCSINode{PUN: readU16(payload[0:2]), LUN: readU16(payload[2:4])}, nil
}

func parseScsi(args []string) (Node, error) {
	pun, lun, err := parseTwoHex(args)
	if err != nil {
		return nil, err
	}
	return &SCSINode{PUN: uint16(pun), LUN: uint16(lun)}, nil
}

// USBNode identifies a USB device by its parent hub port and interface
// number.
type USBNode struct {
	ParentPortNumber uint8
	InterfaceNumber  uint8
}

func (n *USBNode) Type() NodeType   { return TypeMessaging }
func (n *USBNode) SubType() SubType { return subMsgUSB }

func (n *USBNode) Encode() []byte {
	out := header(n.Type(), n.SubType(), 6)
	return append(out, n.ParentPortNumber, n.InterfaceNumber)
}

func (n *USBNode) Text(_, _ bool) string {
	return fmt.Sprintf("USB(%s,%s)", upperHex(uint64(n.ParentPortNumber)), upperHex(uint64(n.InterfaceNumber)))
}

func decodeUSBNode(payload []byte) (Node, error) {
	if len(payload) != 2 {
		return nil, errors.New("bad USB payload length")
	}
	return &USBNode{ParentPortNumber: payload[0], InterfaceNumber: payload[1]}, nil
}

func parseUSB(args []string) (Node, error) {
	port, iface, err := parseTwoHex(args)
	if err != nil {
		return nil, err
	}
	return &USBNode{ParentPortNumber: uint8(port), InterfaceNumber: uint8(iface)}, nil
}

// NetworkInterfaceType identifies the network interface class carried
// by a MACAddrNode.
type NetworkInterfaceType uint8

const (
	NetworkInterfaceReserved NetworkInterfaceType = 0
	NetworkInterfaceEthernet NetworkInterfaceType = 1
)

// MACAddrNode identifies a network interface by its MAC address.
type MACAddrNode struct {
	Address [32]byte
	IfType  NetworkInterfaceType
}

func (n *MACAddrNode) Type() NodeType   { return TypeMessaging }
func (n *MACAddrNode) SubType() SubType { return subMsgMACAddr }

func (n *MACAddrNode) Encode() []byte {
	out := header(n.Type(), n.SubType(), 37)
	out = append(out, n.Address[:]...)
	return append(out, byte(n.IfType))
}

func (n *MACAddrNode) Text(_, _ bool) string {
	sz := len(n.Address)
	if n.IfType == NetworkInterfaceReserved || n.IfType == NetworkInterfaceEthernet {
		sz = 6
	}
	return fmt.Sprintf("MAC(%s,%s)", upperHexBytes(n.Address[:sz]), upperHex(uint64(n.IfType)))
}

func decodeMACNode(payload []byte) (Node, error) {
	if len(payload) != 33 {
		return nil, errors.New("bad MAC payload length")
	}
	n := &MACAddrNode{IfType: NetworkInterfaceType(payload[32])}
	copy(n.Address[:], payload[:32])
	return n, nil
}

func parseMAC(args []string) (Node, error) {
	if len(args) != 2 {
		return nil, errors.New("MAC() takes 2 arguments")
	}
	raw := strings.TrimPrefix(args[0], "0x")
	if len(raw)%2 != 0 {
		return nil, errors.New("bad MAC address " + args[0])
	}
	var addr [32]byte
	n := 0
	for i := 0; i+1 < len(raw) && n < 32; i += 2 {
		b, err := strconv.ParseUint(raw[i:i+2], 16, 8)
		if err != nil {
			return nil, errors.New("bad MAC address " + args[0])
		}
		addr[n] = byte(b)
		n++
	}
	ifType, err := parseHex(args[1])
	if err != nil {
		return nil, err
	}
	return &MACAddrNode{Address: addr, IfType: NetworkInterfaceType(ifType)}, nil
}

// IPProtocol is the transport protocol carried over an IP device path
// node.
type IPProtocol uint16

func (p IPProtocol) String() string {
	switch p {
	case 6:
		return "TCP"
	case 17:
		return "UDP"
	default:
		return upperHex(uint64(p))
	}
}

// IPv4AddressOrigin records whether the local address of an IPv4Node
// was configured statically or obtained via DHCP.
type IPv4AddressOrigin bool

func (o IPv4AddressOrigin) String() string {
	if o {
		return "Static"
	}
	return "DHCP"
}

// IPv4Node identifies an endpoint reachable over IPv4.
type IPv4Node struct {
	LocalAddress   [4]byte
	RemoteAddress  [4]byte
	LocalPort      uint16
	RemotePort     uint16
	Protocol       IPProtocol
	StaticAddress  IPv4AddressOrigin
	GatewayAddress [4]byte
	SubnetMask     [4]byte
}

func (n *IPv4Node) Type() NodeType   { return TypeMessaging }
func (n *IPv4Node) SubType() SubType { return subMsgIPv4 }

func (n *IPv4Node) Encode() []byte {
	out := header(n.Type(), n.SubType(), 27)
	out = append(out, n.LocalAddress[:]...)
	out = append(out, n.RemoteAddress[:]...)
	out = appendU16(out, n.LocalPort)
	out = appendU16(out, n.RemotePort)
	out = appendU16(out, uint16(n.Protocol))
	out = append(out, boolByte(bool(n.StaticAddress)))
	out = append(out, n.GatewayAddress[:]...)
	out = append(out, n.SubnetMask[:]...)
	return out
}

func (n *IPv4Node) Text(displayOnly, _ bool) string {
	if displayOnly {
		return fmt.Sprintf("IPv4(%s)", ipString(n.RemoteAddress))
	}
	return fmt.Sprintf("IPv4(%s,%s,%s,%s,%s,%s)",
		ipString(n.RemoteAddress), n.Protocol, n.StaticAddress,
		ipString(n.LocalAddress), ipString(n.GatewayAddress), ipString(n.SubnetMask))
}

func ipString(a [4]byte) string {
	return net.IPv4(a[0], a[1], a[2], a[3]).String()
}

func parseIPv4Addr(s string) ([4]byte, error) {
	var out [4]byte
	ip := net.ParseIP(strings.TrimSpace(s))
	if ip == nil {
		return out, errors.New("bad IPv4 address " + s)
	}
	v4 := ip.To4()
	if v4 == nil {
		return out, errors.New("not an IPv4 address " + s)
	}
	copy(out[:], v4)
	return out, nil
}

func decodeIPv4Node(payload []byte) (Node, error) {
	if len(payload) != 23 {
		return nil, errors.New("bad IPv4 payload length")
	}
	n := &IPv4Node{
		LocalPort:  readU16(payload[8:10]),
		RemotePort: readU16(payload[10:12]),
		Protocol:   IPProtocol(readU16(payload[12:14])),
	}
	copy(n.LocalAddress[:], payload[0:4])
	copy(n.RemoteAddress[:], payload[4:8])
	n.StaticAddress = IPv4AddressOrigin(payload[14] != 0)
	copy(n.GatewayAddress[:], payload[15:19])
	copy(n.SubnetMask[:], payload[19:23])
	return n, nil
}

func parseIPv4(args []string) (Node, error) {
	switch len(args) {
	case 1:
		remote, err := parseIPv4Addr(args[0])
		if err != nil {
			return nil, err
		}
		return &IPv4Node{RemoteAddress: remote}, nil
	case 6:
		remote, err := parseIPv4Addr(args[0])
		if err != nil {
			return nil, err
		}
		proto, err := parseHex(args[1])
		if err != nil {
			return nil, err
		}
		origin, err := parseIPv4Origin(args[2])
		if err != nil {
			return nil, err
		}
		local, err := parseIPv4Addr(args[3])
		if err != nil {
			return nil, err
		}
		gw, err := parseIPv4Addr(args[4])
		if err != nil {
			return nil, err
		}
		mask, err := parseIPv4Addr(args[5])
		if err != nil {
			return nil, err
		}
		return &IPv4Node{
			LocalAddress: local, RemoteAddress: remote, Protocol: IPProtocol(proto),
			StaticAddress: origin, GatewayAddress: gw, SubnetMask: mask,
		}, nil
	default:
		return nil, errors.New("IPv4() takes 1 or 6 arguments")
	}
}

func parseIPv4Origin(s string) (IPv4AddressOrigin, error) {
	switch s {
	case "DHCP":
		return IPv4AddressOrigin(false), nil
	case "Static":
		return IPv4AddressOrigin(true), nil
	default:
		return false, errors.New("bad IPv4 address origin " + s)
	}
}

// DeviceLogicalUnitNode selects a specific logical unit of the
// preceding node.
type DeviceLogicalUnitNode struct {
	LUN uint8
}

func (n *DeviceLogicalUnitNode) Type() NodeType   { return TypeMessaging }
func (n *DeviceLogicalUnitNode) SubType() SubType { return subMsgDeviceLogicalUnit }

func (n *DeviceLogicalUnitNode) Encode() []byte {
	return append(header(n.Type(), n.SubType(), 5), n.LUN)
}

func (n *DeviceLogicalUnitNode) Text(_, _ bool) string {
	return fmt.Sprintf("Unit(%s)", upperHex(uint64(n.LUN)))
}

func decodeDeviceLogicalUnitNode(payload []byte) (Node, error) {
	if len(payload) != 1 {
		return nil, errors.New("bad Unit payload length")
	}
	return &DeviceLogicalUnitNode{LUN: payload[0]}, nil
}

func parseDeviceLogicalUnit(args []string) (Node, error) {
	lun, err := parseOneHex(args)
	if err != nil {
		return nil, err
	}
	return &DeviceLogicalUnitNode{LUN: uint8(lun)}, nil
}

// SATANode identifies a device on a SATA HBA port, optionally behind a
// port multiplier.
type SATANode struct {
	HBAPortNumber            uint16
	PortMultiplierPortNumber uint16
	LUN                      uint16
}

func (n *SATANode) Type() NodeType   { return TypeMessaging }
func (n *SATANode) SubType() SubType { return subMsgSATA }

func (n *SATANode) Encode() []byte {
	out := header(n.Type(), n.SubType(), 10)
	out = appendU16(out, n.HBAPortNumber)
	out = appendU16(out, n.PortMultiplierPortNumber)
	return appendU16(out, n.LUN)
}

func (n *SATANode) Text(_, _ bool) string {
	return fmt.Sprintf("Sata(%s,%s,%s)", upperHex(uint64(n.HBAPortNumber)), upperHex(uint64(n.PortMultiplierPortNumber)), upperHex(uint64(n.LUN)))
}

func decodeSATANode(payload []byte) (Node, error) {
	if len(payload) != 6 {
		return nil, errors.New("bad Sata payload length")
	}
	return &SATANode{
		HBAPortNumber:            readU16(payload[0:2]),
		PortMultiplierPortNumber: readU16(payload[2:4]),
		LUN:                      readU16(payload[4:6]),
	}, nil
}

func parseSata(args []string) (Node, error) {
	if len(args) != 3 {
		return nil, errors.New("Sata() takes 3 arguments")
	}
	hba, err := parseHex(args[0])
	if err != nil {
		return nil, err
	}
	pmp, err := parseHex(args[1])
	if err != nil {
		return nil, err
	}
	lun, err := parseHex(args[2])
	if err != nil {
		return nil, err
	}
	return &SATANode{HBAPortNumber: uint16(hba), PortMultiplierPortNumber: uint16(pmp), LUN: uint16(lun)}, nil
}

// NVMENamespaceNode identifies a namespace on an NVMe controller.
type NVMENamespaceNode struct {
	NamespaceID   uint32
	NamespaceUUID [8]byte
}

func (n *NVMENamespaceNode) Type() NodeType   { return TypeMessaging }
func (n *NVMENamespaceNode) SubType() SubType { return subMsgNVMENamespace }

func (n *NVMENamespaceNode) Encode() []byte {
	out := header(n.Type(), n.SubType(), 16)
	out = appendU32(out, n.NamespaceID)
	return append(out, n.NamespaceUUID[:]...)
}

func (n *NVMENamespaceNode) Text(_, _ bool) string {
	return fmt.Sprintf("NVMe(%s,%02X-%02X-%02X-%02X-%02X-%02X-%02X-%02X)", upperHex(uint64(n.NamespaceID)),
		n.NamespaceUUID[0], n.NamespaceUUID[1], n.NamespaceUUID[2], n.NamespaceUUID[3],
		n.NamespaceUUID[4], n.NamespaceUUID[5], n.NamespaceUUID[6], n.NamespaceUUID[7])
}

func decodeNVMENamespaceNode(payload []byte) (Node, error) {
	if len(payload) != 12 {
		return nil, errors.New("bad NVMe payload length")
	}
	n := &NVMENamespaceNode{NamespaceID: readU32(payload[0:4])}
	copy(n.NamespaceUUID[:], payload[4:12])
	return n, nil
}

func parseNVMe(args []string) (Node, error) {
	if len(args) != 2 {
		return nil, errors.New("NVMe() takes 2 arguments")
	}
	nsid, err := parseHex(args[0])
	if err != nil {
		return nil, err
	}
	parts := strings.Split(args[1], "-")
	if len(parts) != 8 {
		return nil, errors.New("bad NVMe namespace UUID " + args[1])
	}
	var uuid [8]byte
	for i, p := range parts {
		v, err := strconv.ParseUint(p, 16, 8)
		if err != nil {
			return nil, errors.New("bad NVMe namespace UUID " + args[1])
		}
		uuid[i] = byte(v)
	}
	return &NVMENamespaceNode{NamespaceID: uint32(nsid), NamespaceUUID: uuid}, nil
}

// URINode carries a URI referencing a network-bootable resource. The
// wire payload is the raw URI text with no length prefix or
// terminator, so its length is implied entirely by the node header.
type URINode struct {
	URI string
}

func (n *URINode) Type() NodeType   { return TypeMessaging }
func (n *URINode) SubType() SubType { return subMsgURI }

func (n *URINode) Encode() []byte {
	out := header(n.Type(), n.SubType(), 4+len(n.URI))
	return append(out, []byte(n.URI)...)
}

func (n *URINode) Text(_, _ bool) string {
	return fmt.Sprintf("Uri(%s)", n.URI)
}

func decodeURINode(payload []byte) (Node, error) {
	return &URINode{URI: string(payload)}, nil
}

func parseURI(raw string) (Node, error) {
	return &URINode{URI: raw}, nil
}
