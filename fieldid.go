// Copyright 2026 The dexray Authors. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package dex

import "fmt"

// FieldID is a decoded field_id_item: a reference to a field by its
// declaring class, type, and name.
type FieldID struct {
	ClassIdx uint32 `json:"class_idx"`
	TypeIdx  uint32 `json:"type_idx"`
	NameIdx  uint32 `json:"name_idx"`
}

// FieldByIndex resolves field_ids[idx].
func (d *File) FieldByIndex(idx uint32) (FieldID, error) {
	if idx >= d.header.FieldIDsSize {
		return FieldID{}, fmt.Errorf("%w: field_ids[%d], size %d", ErrIndexOutOfRange, idx, d.header.FieldIDsSize)
	}
	base := d.header.FieldIDsOff + idx*fieldIDSize
	classIdx, err := d.cursor.u16(base)
	if err != nil {
		return FieldID{}, err
	}
	typeIdx, err := d.cursor.u16(base + 2)
	if err != nil {
		return FieldID{}, err
	}
	nameIdx, err := d.cursor.u32(base + 4)
	if err != nil {
		return FieldID{}, err
	}
	return FieldID{ClassIdx: uint32(classIdx), TypeIdx: uint32(typeIdx), NameIdx: nameIdx}, nil
}

// FieldName resolves a FieldID's name string.
func (d *File) FieldName(f FieldID) (string, error) {
	return d.StringByIndex(f.NameIdx)
}

// FieldClassType resolves a FieldID's declaring class descriptor.
func (d *File) FieldClassType(f FieldID) (string, error) {
	return d.TypeByIndex(f.ClassIdx)
}

// FieldType resolves a FieldID's value type descriptor.
func (d *File) FieldType(f FieldID) (string, error) {
	return d.TypeByIndex(f.TypeIdx)
}
