// Copyright 2026 The dexray Authors. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package dex

import "fmt"

// MethodHandleKind identifies what a method_handle_item refers to.
type MethodHandleKind uint16

// Method handle kinds, per the DEX invoke-custom extension.
const (
	MethodHandleStaticPut         MethodHandleKind = 0x00
	MethodHandleStaticGet         MethodHandleKind = 0x01
	MethodHandleInstancePut       MethodHandleKind = 0x02
	MethodHandleInstanceGet       MethodHandleKind = 0x03
	MethodHandleInvokeStatic      MethodHandleKind = 0x04
	MethodHandleInvokeInstance    MethodHandleKind = 0x05
	MethodHandleInvokeConstructor MethodHandleKind = 0x06
	MethodHandleInvokeDirect      MethodHandleKind = 0x07
	MethodHandleInvokeInterface   MethodHandleKind = 0x08
)

// String returns the human-readable name of a method handle kind.
func (k MethodHandleKind) String() string {
	switch k {
	case MethodHandleStaticPut:
		return "static-put"
	case MethodHandleStaticGet:
		return "static-get"
	case MethodHandleInstancePut:
		return "instance-put"
	case MethodHandleInstanceGet:
		return "instance-get"
	case MethodHandleInvokeStatic:
		return "invoke-static"
	case MethodHandleInvokeInstance:
		return "invoke-instance"
	case MethodHandleInvokeConstructor:
		return "invoke-constructor"
	case MethodHandleInvokeDirect:
		return "invoke-direct"
	case MethodHandleInvokeInterface:
		return "invoke-interface"
	default:
		return "?"
	}
}

// isField reports whether this kind's FieldOrMethodIdx refers to
// field_ids rather than method_ids.
func (k MethodHandleKind) isField() bool {
	switch k {
	case MethodHandleStaticPut, MethodHandleStaticGet, MethodHandleInstancePut, MethodHandleInstanceGet:
		return true
	default:
		return false
	}
}

// MethodHandle is a decoded method_handle_item.
type MethodHandle struct {
	Kind             MethodHandleKind `json:"kind"`
	FieldOrMethodIdx uint32           `json:"field_or_method_idx"`
}

// methodHandles locates the method_handle_items region via the map_list
// (like call sites, invoke-custom support post-dates the fixed header).
func (d *File) methodHandles() (off, size uint32, ok bool) {
	item, found := d.mapList.ByType(TypeMethodHandleItem)
	if !found {
		return 0, 0, false
	}
	return item.Offset, item.Size, true
}

// MethodHandleByIndex resolves a method_handle_item by its index in the
// method_handles region located via the map_list.
func (d *File) MethodHandleByIndex(idx uint32) (MethodHandle, error) {
	off, size, ok := d.methodHandles()
	if !ok || idx >= size {
		return MethodHandle{}, fmt.Errorf("%w: method_handles[%d]", ErrIndexOutOfRange, idx)
	}
	base := off + idx*methodHandleSize
	kind, err := d.cursor.u16(base)
	if err != nil {
		return MethodHandle{}, err
	}
	fieldOrMethodIdx, err := d.cursor.u16(base + 4)
	if err != nil {
		return MethodHandle{}, err
	}
	return MethodHandle{Kind: MethodHandleKind(kind), FieldOrMethodIdx: uint32(fieldOrMethodIdx)}, nil
}

// MethodHandleTarget resolves the field or method that a method handle refers to,
// returning whichever applies and a boolean indicating which it is.
func (d *File) MethodHandleTarget(mh MethodHandle) (field FieldID, method MethodID, isField bool, err error) {
	if mh.Kind.isField() {
		f, err := d.FieldByIndex(mh.FieldOrMethodIdx)
		return f, MethodID{}, true, err
	}
	m, err := d.MethodByIndex(mh.FieldOrMethodIdx)
	return FieldID{}, m, false, err
}
