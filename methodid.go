// Copyright 2026 The dexray Authors. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package dex

import "fmt"

// MethodID is a decoded method_id_item: a reference to a method by its
// declaring class, prototype, and name.
type MethodID struct {
	ClassIdx uint32 `json:"class_idx"`
	ProtoIdx uint32 `json:"proto_idx"`
	NameIdx  uint32 `json:"name_idx"`
}

// MethodByIndex resolves method_ids[idx].
func (d *File) MethodByIndex(idx uint32) (MethodID, error) {
	if idx >= d.header.MethodIDsSize {
		return MethodID{}, fmt.Errorf("%w: method_ids[%d], size %d", ErrIndexOutOfRange, idx, d.header.MethodIDsSize)
	}
	base := d.header.MethodIDsOff + idx*methodIDSize
	classIdx, err := d.cursor.u16(base)
	if err != nil {
		return MethodID{}, err
	}
	protoIdx, err := d.cursor.u16(base + 2)
	if err != nil {
		return MethodID{}, err
	}
	nameIdx, err := d.cursor.u32(base + 4)
	if err != nil {
		return MethodID{}, err
	}
	return MethodID{ClassIdx: uint32(classIdx), ProtoIdx: uint32(protoIdx), NameIdx: nameIdx}, nil
}

// MethodName resolves a MethodID's name string.
func (d *File) MethodName(m MethodID) (string, error) {
	return d.StringByIndex(m.NameIdx)
}

// MethodClassType resolves a MethodID's declaring class descriptor.
func (d *File) MethodClassType(m MethodID) (string, error) {
	return d.TypeByIndex(m.ClassIdx)
}

// MethodProto resolves a MethodID's prototype.
func (d *File) MethodProto(m MethodID) (ProtoID, error) {
	return d.ProtoByIndex(m.ProtoIdx)
}
