// Copyright 2026 The dexray Authors. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package dex

import "fmt"

// EncodedField is one decoded field entry of a class_data_item, with
// its field_idx already delta-decoded back to an absolute index into
// field_ids.
type EncodedField struct {
	FieldIdx    uint32 `json:"field_idx"`
	AccessFlags uint32 `json:"access_flags"`
}

// EncodedMethod is one decoded method entry of a class_data_item, with
// its method_idx already delta-decoded back to an absolute index into
// method_ids.
type EncodedMethod struct {
	MethodIdx   uint32 `json:"method_idx"`
	AccessFlags uint32 `json:"access_flags"`
	CodeOff     uint32 `json:"code_off"`
}

// ClassData is the decoded class_data_item: the four field/method
// groups of a class, each delta-encoded by field_idx/method_idx but
// exposed here with absolute indices.
type ClassData struct {
	StaticFields   []EncodedField  `json:"static_fields"`
	InstanceFields []EncodedField  `json:"instance_fields"`
	DirectMethods  []EncodedMethod `json:"direct_methods"`
	VirtualMethods []EncodedMethod `json:"virtual_methods"`
}

// ClassData decodes the class_data_item at off (spec §4.4). field_idx
// and method_idx values are stored as ULEB128 deltas from the previous
// entry in the same group, restarting at 0 for the first entry of each
// group; a non-positive delta past the first entry is rejected as
// ErrMalformedClassData, since the format guarantees strictly
// increasing indices within a group.
func (d *File) ClassData(off uint32) (ClassData, error) {
	c := d.cursor

	staticFieldsSize, pos, err := c.uleb128(off)
	if err != nil {
		return ClassData{}, fmt.Errorf("class_data_item.static_fields_size: %w", err)
	}
	instanceFieldsSize, pos, err := c.uleb128(pos)
	if err != nil {
		return ClassData{}, fmt.Errorf("class_data_item.instance_fields_size: %w", err)
	}
	directMethodsSize, pos, err := c.uleb128(pos)
	if err != nil {
		return ClassData{}, fmt.Errorf("class_data_item.direct_methods_size: %w", err)
	}
	virtualMethodsSize, pos, err := c.uleb128(pos)
	if err != nil {
		return ClassData{}, fmt.Errorf("class_data_item.virtual_methods_size: %w", err)
	}

	staticFields, pos, err := d.decodeEncodedFields(pos, staticFieldsSize)
	if err != nil {
		return ClassData{}, err
	}
	instanceFields, pos, err := d.decodeEncodedFields(pos, instanceFieldsSize)
	if err != nil {
		return ClassData{}, err
	}
	directMethods, pos, err := d.decodeEncodedMethods(pos, directMethodsSize)
	if err != nil {
		return ClassData{}, err
	}
	virtualMethods, _, err := d.decodeEncodedMethods(pos, virtualMethodsSize)
	if err != nil {
		return ClassData{}, err
	}

	return ClassData{
		StaticFields:   staticFields,
		InstanceFields: instanceFields,
		DirectMethods:  directMethods,
		VirtualMethods: virtualMethods,
	}, nil
}

func (d *File) decodeEncodedFields(off, count uint32) ([]EncodedField, uint32, error) {
	c := d.cursor
	fields := make([]EncodedField, 0, d.capHint(off, count, 2))
	pos := off
	var idx uint32
	for i := uint32(0); i < count; i++ {
		delta, next, err := c.uleb128(pos)
		if err != nil {
			return nil, 0, fmt.Errorf("encoded_field[%d].field_idx_diff: %w", i, err)
		}
		pos = next
		if i > 0 && delta == 0 {
			return nil, 0, fmt.Errorf("%w: encoded_field[%d] has non-increasing field_idx", ErrMalformedClassData, i)
		}
		idx += delta
		accessFlags, next, err := c.uleb128(pos)
		if err != nil {
			return nil, 0, fmt.Errorf("encoded_field[%d].access_flags: %w", i, err)
		}
		pos = next
		fields = append(fields, EncodedField{FieldIdx: idx, AccessFlags: accessFlags})
	}
	return fields, pos, nil
}

func (d *File) decodeEncodedMethods(off, count uint32) ([]EncodedMethod, uint32, error) {
	c := d.cursor
	methods := make([]EncodedMethod, 0, d.capHint(off, count, 3))
	pos := off
	var idx uint32
	for i := uint32(0); i < count; i++ {
		delta, next, err := c.uleb128(pos)
		if err != nil {
			return nil, 0, fmt.Errorf("encoded_method[%d].method_idx_diff: %w", i, err)
		}
		pos = next
		if i > 0 && delta == 0 {
			return nil, 0, fmt.Errorf("%w: encoded_method[%d] has non-increasing method_idx", ErrMalformedClassData, i)
		}
		idx += delta
		accessFlags, next, err := c.uleb128(pos)
		if err != nil {
			return nil, 0, fmt.Errorf("encoded_method[%d].access_flags: %w", i, err)
		}
		pos = next
		codeOff, next, err := c.uleb128(pos)
		if err != nil {
			return nil, 0, fmt.Errorf("encoded_method[%d].code_off: %w", i, err)
		}
		pos = next

		if codeOff != 0 && (accessFlags&(AccNative|AccAbstract) != 0) {
			d.addAnomaly(AnoNativeMethodHasCode)
		}

		methods = append(methods, EncodedMethod{MethodIdx: idx, AccessFlags: accessFlags, CodeOff: codeOff})
	}
	return methods, pos, nil
}
