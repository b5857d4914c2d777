// Copyright 2026 The dexray Authors. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package dex

import (
	"crypto/sha1"
	"encoding/binary"
	"hash/adler32"
)

// dexBuilder assembles a minimal, well-formed DEX byte image for tests.
// Real DEX files are produced by a compiler; synthesizing them here
// keeps the test suite independent of binary fixtures.
type dexBuilder struct {
	strings []string
	types   []uint32 // string index per type
	protos  []protoSpec
	fields  []fieldSpec
	methods []methodSpec
	classes []classSpec
}

type protoSpec struct {
	shortyStrIdx int
	returnType   uint32
	params       []uint32
}

type fieldSpec struct {
	classType, type_, name uint32
}

type methodSpec struct {
	classType, proto, name uint32
}

type classSpec struct {
	classType      uint32
	accessFlags    uint32
	superclass     uint32
	sourceFile     uint32
	classDataBytes []byte // pre-encoded class_data_item, or nil
}

func newDexBuilder() *dexBuilder {
	return &dexBuilder{}
}

func (b *dexBuilder) addString(s string) uint32 {
	b.strings = append(b.strings, s)
	return uint32(len(b.strings) - 1)
}

func (b *dexBuilder) addType(descriptor string) uint32 {
	idx := b.addString(descriptor)
	b.types = append(b.types, idx)
	return uint32(len(b.types) - 1)
}

func uleb128Encode(v uint32) []byte {
	var out []byte
	for {
		b := byte(v & 0x7f)
		v >>= 7
		if v != 0 {
			out = append(out, b|0x80)
		} else {
			out = append(out, b)
			break
		}
	}
	return out
}

func sleb128Encode(v int32) []byte {
	var out []byte
	more := true
	for more {
		b := byte(v & 0x7f)
		v >>= 7
		if (v == 0 && b&0x40 == 0) || (v == -1 && b&0x40 != 0) {
			more = false
		} else {
			b |= 0x80
		}
		out = append(out, b)
	}
	return out
}

func mutf8Encode(s string) []byte {
	runes := []rune(s)
	out := uleb128Encode(uint32(len(runes)))
	for _, r := range runes {
		switch {
		case r > 0 && r < 0x80:
			out = append(out, byte(r))
		case r < 0x800:
			out = append(out, byte(0xC0|(r>>6)), byte(0x80|(r&0x3f)))
		default:
			out = append(out, byte(0xE0|(r>>12)), byte(0x80|((r>>6)&0x3f)), byte(0x80|(r&0x3f)))
		}
	}
	out = append(out, 0x00)
	return out
}

// build assembles the complete image and returns it.
func (b *dexBuilder) build() []byte {
	var stringData [][]byte
	for _, s := range b.strings {
		stringData = append(stringData, mutf8Encode(s))
	}

	// Layout: header(0x70) | string_ids | type_ids | proto_ids |
	// field_ids | method_ids | class_defs | string_data... | class_data... | map_list
	headerSize := uint32(HeaderSize)
	stringIDsOff := headerSize
	stringIDsSize := uint32(len(b.strings))
	typeIDsOff := stringIDsOff + stringIDsSize*4
	typeIDsSize := uint32(len(b.types))
	protoIDsOff := typeIDsOff + typeIDsSize*4
	protoIDsSize := uint32(len(b.protos))
	fieldIDsOff := protoIDsOff + protoIDsSize*12
	fieldIDsSize := uint32(len(b.fields))
	methodIDsOff := fieldIDsOff + fieldIDsSize*8
	methodIDsSize := uint32(len(b.methods))
	classDefsOff := methodIDsOff + methodIDsSize*8
	classDefsSize := uint32(len(b.classes))

	dataOff := classDefsOff + classDefsSize*32

	buf := make([]byte, dataOff)

	// string_data region, recording each offset.
	stringDataOffs := make([]uint32, len(b.strings))
	pos := dataOff
	for i, sd := range stringData {
		buf = append(buf, sd...)
		stringDataOffs[i] = pos
		pos += uint32(len(sd))
	}

	// class_data region for any class that carries one.
	classDataOffs := make([]uint32, len(b.classes))
	for i, cs := range b.classes {
		if cs.classDataBytes == nil {
			continue
		}
		classDataOffs[i] = pos
		buf = append(buf, cs.classDataBytes...)
		pos += uint32(len(cs.classDataBytes))
	}

	mapOff := pos

	putU32 := func(off uint32, v uint32) {
		binary.LittleEndian.PutUint32(buf[off:], v)
	}
	putU16 := func(off uint32, v uint16) {
		binary.LittleEndian.PutUint16(buf[off:], v)
	}

	// string_ids
	for i, off := range stringDataOffs {
		putU32(stringIDsOff+uint32(i)*4, off)
	}
	// type_ids
	for i, strIdx := range b.types {
		putU32(typeIDsOff+uint32(i)*4, strIdx)
	}
	// proto_ids (parameters_off always 0: no params in tests so far)
	for i, p := range b.protos {
		base := protoIDsOff + uint32(i)*12
		putU32(base, uint32(p.shortyStrIdx))
		putU32(base+4, p.returnType)
		putU32(base+8, 0)
	}
	// field_ids
	for i, f := range b.fields {
		base := fieldIDsOff + uint32(i)*8
		putU16(base, uint16(f.classType))
		putU16(base+2, uint16(f.type_))
		putU32(base+4, f.name)
	}
	// method_ids
	for i, m := range b.methods {
		base := methodIDsOff + uint32(i)*8
		putU16(base, uint16(m.classType))
		putU16(base+2, uint16(m.proto))
		putU32(base+4, m.name)
	}
	// class_defs
	for i, cs := range b.classes {
		base := classDefsOff + uint32(i)*32
		putU32(base, cs.classType)
		putU32(base+4, cs.accessFlags)
		putU32(base+8, cs.superclass)
		putU32(base+12, 0) // interfaces_off
		putU32(base+16, cs.sourceFile)
		putU32(base+20, 0) // annotations_off
		putU32(base+24, classDataOffs[i])
		putU32(base+28, 0) // static_values_off
	}

	// map_list: header_item, then string_id_item, type_id_item and
	// class_def_item (each only when its table is non-empty), then
	// map_list.
	mapEntries := []MapItem{
		{Type: TypeHeaderItem, Size: 1, Offset: 0},
	}
	if stringIDsSize > 0 {
		mapEntries = append(mapEntries, MapItem{Type: TypeStringIDItem, Size: stringIDsSize, Offset: stringIDsOff})
	}
	if typeIDsSize > 0 {
		mapEntries = append(mapEntries, MapItem{Type: TypeTypeIDItem, Size: typeIDsSize, Offset: typeIDsOff})
	}
	if classDefsSize > 0 {
		mapEntries = append(mapEntries, MapItem{Type: TypeClassDefItem, Size: classDefsSize, Offset: classDefsOff})
	}
	mapEntries = append(mapEntries, MapItem{Type: TypeMapList, Size: 1, Offset: mapOff})

	mapBytes := make([]byte, 4+len(mapEntries)*12)
	binary.LittleEndian.PutUint32(mapBytes, uint32(len(mapEntries)))
	for i, e := range mapEntries {
		base := 4 + i*12
		binary.LittleEndian.PutUint16(mapBytes[base:], uint16(e.Type))
		binary.LittleEndian.PutUint16(mapBytes[base+2:], e.Unused)
		binary.LittleEndian.PutUint32(mapBytes[base+4:], e.Size)
		binary.LittleEndian.PutUint32(mapBytes[base+8:], e.Offset)
	}
	buf = append(buf, mapBytes...)

	fileSize := uint32(len(buf))

	// header
	copy(buf[0:4], dexMagic[:])
	copy(buf[4:7], "035")
	buf[7] = 0x00
	binary.LittleEndian.PutUint32(buf[32:], fileSize)
	binary.LittleEndian.PutUint32(buf[36:], headerSize)
	binary.LittleEndian.PutUint32(buf[40:], EndianConstant)
	binary.LittleEndian.PutUint32(buf[44:], 0) // link_size
	binary.LittleEndian.PutUint32(buf[48:], 0) // link_off
	binary.LittleEndian.PutUint32(buf[52:], mapOff)
	binary.LittleEndian.PutUint32(buf[56:], stringIDsSize)
	binary.LittleEndian.PutUint32(buf[60:], stringIDsOff)
	binary.LittleEndian.PutUint32(buf[64:], typeIDsSize)
	binary.LittleEndian.PutUint32(buf[68:], typeIDsOff)
	binary.LittleEndian.PutUint32(buf[72:], protoIDsSize)
	binary.LittleEndian.PutUint32(buf[76:], protoIDsOff)
	binary.LittleEndian.PutUint32(buf[80:], fieldIDsSize)
	binary.LittleEndian.PutUint32(buf[84:], fieldIDsOff)
	binary.LittleEndian.PutUint32(buf[88:], methodIDsSize)
	binary.LittleEndian.PutUint32(buf[92:], methodIDsOff)
	binary.LittleEndian.PutUint32(buf[96:], classDefsSize)
	binary.LittleEndian.PutUint32(buf[100:], classDefsOff)
	binary.LittleEndian.PutUint32(buf[104:], 0) // data_size
	binary.LittleEndian.PutUint32(buf[108:], dataOff)

	sig := sha1.Sum(buf[32:])
	copy(buf[12:32], sig[:])

	sum := adler32.Checksum(buf[12:])
	binary.LittleEndian.PutUint32(buf[8:], sum)

	return buf
}
