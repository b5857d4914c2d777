// Copyright 2026 The dexray Authors. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package dex

import "fmt"

// Header is the fixed 0x70-byte DEX header (spec §4.2).
type Header struct {
	Magic         [8]byte  `json:"magic"`
	Checksum      uint32   `json:"checksum"`
	Signature     [20]byte `json:"signature"`
	FileSize      uint32   `json:"file_size"`
	HeaderSize    uint32   `json:"header_size"`
	EndianTag     uint32   `json:"endian_tag"`
	LinkSize      uint32   `json:"link_size"`
	LinkOff       uint32   `json:"link_off"`
	MapOff        uint32   `json:"map_off"`
	StringIDsSize uint32   `json:"string_ids_size"`
	StringIDsOff  uint32   `json:"string_ids_off"`
	TypeIDsSize   uint32   `json:"type_ids_size"`
	TypeIDsOff    uint32   `json:"type_ids_off"`
	ProtoIDsSize  uint32   `json:"proto_ids_size"`
	ProtoIDsOff   uint32   `json:"proto_ids_off"`
	FieldIDsSize  uint32   `json:"field_ids_size"`
	FieldIDsOff   uint32   `json:"field_ids_off"`
	MethodIDsSize uint32   `json:"method_ids_size"`
	MethodIDsOff  uint32   `json:"method_ids_off"`
	ClassDefsSize uint32   `json:"class_defs_size"`
	ClassDefsOff  uint32   `json:"class_defs_off"`
	DataSize      uint32   `json:"data_size"`
	DataOff       uint32   `json:"data_off"`
}

// Version returns the 3-digit version string encoded in bytes [4:7) of
// the magic ("dex\nMMM\0").
func (h Header) Version() string {
	return string(h.Magic[4:7])
}

// parseHeader decodes and validates the fixed header at the start of
// the image (spec §4.2). It never trusts the content beyond bounds that
// are checked here; later accessors re-validate their own offsets.
func (d *File) parseHeader() error {
	c := d.cursor

	raw, err := c.bytes(0, HeaderSize)
	if err != nil {
		return err
	}
	if len(raw) < HeaderSize {
		return fmt.Errorf("%w: image smaller than header", ErrBadFileSize)
	}

	var h Header
	copy(h.Magic[:], raw[0:8])
	h.Checksum = leU32(raw[8:12])
	copy(h.Signature[:], raw[12:32])
	h.FileSize = leU32(raw[32:36])
	h.HeaderSize = leU32(raw[36:40])
	h.EndianTag = leU32(raw[40:44])
	h.LinkSize = leU32(raw[44:48])
	h.LinkOff = leU32(raw[48:52])
	h.MapOff = leU32(raw[52:56])
	h.StringIDsSize = leU32(raw[56:60])
	h.StringIDsOff = leU32(raw[60:64])
	h.TypeIDsSize = leU32(raw[64:68])
	h.TypeIDsOff = leU32(raw[68:72])
	h.ProtoIDsSize = leU32(raw[72:76])
	h.ProtoIDsOff = leU32(raw[76:80])
	h.FieldIDsSize = leU32(raw[80:84])
	h.FieldIDsOff = leU32(raw[84:88])
	h.MethodIDsSize = leU32(raw[88:92])
	h.MethodIDsOff = leU32(raw[92:96])
	h.ClassDefsSize = leU32(raw[96:100])
	h.ClassDefsOff = leU32(raw[100:104])
	h.DataSize = leU32(raw[104:108])
	h.DataOff = leU32(raw[108:112])

	if h.Magic[0] != dexMagic[0] || h.Magic[1] != dexMagic[1] ||
		h.Magic[2] != dexMagic[2] || h.Magic[3] != dexMagic[3] {
		return ErrBadMagic
	}

	versionOK := false
	for _, v := range supportedVersions {
		if h.Magic[4] == v[0] && h.Magic[5] == v[1] && h.Magic[6] == v[2] && h.Magic[7] == 0x00 {
			versionOK = true
			break
		}
	}
	if !versionOK {
		return fmt.Errorf("%w: %q", ErrBadVersion, h.Version())
	}

	if h.EndianTag == ReverseEndianConstant {
		return fmt.Errorf("%w: big-endian dex images are not supported", ErrBadEndianTag)
	}
	if h.EndianTag != EndianConstant {
		return ErrBadEndianTag
	}

	if h.HeaderSize != HeaderSize {
		return ErrBadHeaderSize
	}

	if h.FileSize != c.len() {
		return fmt.Errorf("%w: header.file_size=%d, image length=%d", ErrBadFileSize, h.FileSize, c.len())
	}

	if err := checkRange("data", h.DataOff, h.DataSize, 1, h.FileSize); err != nil {
		return err
	}
	if err := checkRange("string_ids", h.StringIDsOff, h.StringIDsSize, stringIDSize, h.FileSize); err != nil {
		return err
	}
	if err := checkRange("type_ids", h.TypeIDsOff, h.TypeIDsSize, typeIDSize, h.FileSize); err != nil {
		return err
	}
	if err := checkRange("proto_ids", h.ProtoIDsOff, h.ProtoIDsSize, protoIDSize, h.FileSize); err != nil {
		return err
	}
	if err := checkRange("field_ids", h.FieldIDsOff, h.FieldIDsSize, fieldIDSize, h.FileSize); err != nil {
		return err
	}
	if err := checkRange("method_ids", h.MethodIDsOff, h.MethodIDsSize, methodIDSize, h.FileSize); err != nil {
		return err
	}
	if err := checkRange("class_defs", h.ClassDefsOff, h.ClassDefsSize, classDefSize, h.FileSize); err != nil {
		return err
	}
	if h.LinkSize > 0 && (h.LinkOff == 0 || uint64(h.LinkOff)+uint64(h.LinkSize) > uint64(h.FileSize)) {
		return fmt.Errorf("%w: link_off/link_size inconsistent with file_size", ErrBadFileSize)
	}

	d.header = h
	return nil
}

// checkRange validates that an ID table of count entries of recordSize
// bytes each, starting at off, fits within [0, fileSize). A zero count
// with a zero offset (table absent) is allowed.
func checkRange(name string, off, count, recordSize, fileSize uint32) error {
	if count == 0 {
		return nil
	}
	end := uint64(off) + uint64(count)*uint64(recordSize)
	if end > uint64(fileSize) {
		return fmt.Errorf("%w: %s table [%d,%d) exceeds file_size %d", ErrBadFileSize, name, off, end, fileSize)
	}
	return nil
}

func leU32(b []byte) uint32 {
	return uint32(b[0]) | uint32(b[1])<<8 | uint32(b[2])<<16 | uint32(b[3])<<24
}
