// Copyright 2026 The dexray Authors. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package dex

import "fmt"

// ValueType identifies the kind of data an encoded_value holds.
type ValueType byte

// encoded_value type codes, per the DEX spec's value formats table.
const (
	ValueByte         ValueType = 0x00
	ValueShort        ValueType = 0x02
	ValueChar         ValueType = 0x03
	ValueInt          ValueType = 0x04
	ValueLong         ValueType = 0x06
	ValueFloat        ValueType = 0x10
	ValueDouble       ValueType = 0x11
	ValueMethodType   ValueType = 0x15
	ValueMethodHandle ValueType = 0x16
	ValueString       ValueType = 0x17
	ValueType_        ValueType = 0x18
	ValueField        ValueType = 0x19
	ValueMethod       ValueType = 0x1a
	ValueEnum         ValueType = 0x1b
	ValueArray        ValueType = 0x1c
	ValueAnnotation   ValueType = 0x1d
	ValueNull         ValueType = 0x1e
	ValueBoolean      ValueType = 0x1f
)

// EncodedValue is a decoded encoded_value: a tagged union over every
// value format the DEX encoding supports. Exactly one of the typed
// fields is meaningful, selected by Type.
type EncodedValue struct {
	Type ValueType `json:"type"`

	Int    int64   `json:"int,omitempty"` // Byte, Short, Char, Int, Long, Enum (as index), MethodHandle/MethodType/String/Type/Field/Method (as index)
	Float  float32 `json:"float,omitempty"`
	Double float64 `json:"double,omitempty"`
	Bool   bool    `json:"bool,omitempty"`

	Array      []EncodedValue     `json:"array,omitempty"`
	Annotation *EncodedAnnotation `json:"annotation,omitempty"`
}

// EncodedAnnotation is a decoded encoded_annotation: a type plus a list
// of name/value element pairs.
type EncodedAnnotation struct {
	TypeIdx  uint32                     `json:"type_idx"`
	Elements []EncodedAnnotationElement `json:"elements"`
}

// EncodedAnnotationElement is one name/value pair of an
// encoded_annotation.
type EncodedAnnotationElement struct {
	NameIdx uint32       `json:"name_idx"`
	Value   EncodedValue `json:"value"`
}

// EncodedArray decodes an encoded_array_item at off: a ULEB128 size
// followed by that many encoded_value entries.
func (d *File) EncodedArray(off uint32) ([]EncodedValue, error) {
	size, pos, err := d.cursor.uleb128(off)
	if err != nil {
		return nil, fmt.Errorf("encoded_array size: %w", err)
	}
	values := make([]EncodedValue, 0, d.capHint(pos, size, 1))
	for i := uint32(0); i < size; i++ {
		v, next, err := d.decodeEncodedValue(pos)
		if err != nil {
			return nil, fmt.Errorf("encoded_array[%d]: %w", i, err)
		}
		values = append(values, v)
		pos = next
	}
	return values, nil
}

// decodeEncodedValue decodes one encoded_value at off, returning the
// value and the offset immediately past it.
func (d *File) decodeEncodedValue(off uint32) (EncodedValue, uint32, error) {
	tagByte, err := d.cursor.u8(off)
	if err != nil {
		return EncodedValue{}, 0, err
	}
	valueType := ValueType(tagByte & 0x1f)
	valueArg := uint(tagByte >> 5)
	pos := off + 1

	switch valueType {
	case ValueByte:
		b, next, err := d.readSizedInt(pos, valueArg+1, true)
		return EncodedValue{Type: valueType, Int: b}, next, err
	case ValueShort, ValueInt, ValueLong:
		v, next, err := d.readSizedInt(pos, valueArg+1, true)
		return EncodedValue{Type: valueType, Int: v}, next, err
	case ValueChar:
		v, next, err := d.readSizedInt(pos, valueArg+1, false)
		return EncodedValue{Type: valueType, Int: v}, next, err
	case ValueFloat:
		v, next, err := d.readSizedFloat(pos, valueArg+1)
		return EncodedValue{Type: valueType, Float: v}, next, err
	case ValueDouble:
		v, next, err := d.readSizedDouble(pos, valueArg+1)
		return EncodedValue{Type: valueType, Double: v}, next, err
	case ValueMethodType, ValueMethodHandle, ValueString, ValueType_, ValueField, ValueMethod, ValueEnum:
		v, next, err := d.readSizedInt(pos, valueArg+1, false)
		return EncodedValue{Type: valueType, Int: v}, next, err
	case ValueArray:
		size, next, err := d.cursor.uleb128(pos)
		if err != nil {
			return EncodedValue{}, 0, fmt.Errorf("%w: array size: %v", ErrMalformedEncodedValue, err)
		}
		items := make([]EncodedValue, 0, d.capHint(next, size, 1))
		for i := uint32(0); i < size; i++ {
			v, n, err := d.decodeEncodedValue(next)
			if err != nil {
				return EncodedValue{}, 0, err
			}
			items = append(items, v)
			next = n
		}
		return EncodedValue{Type: valueType, Array: items}, next, nil
	case ValueAnnotation:
		ann, next, err := d.decodeEncodedAnnotation(pos)
		if err != nil {
			return EncodedValue{}, 0, err
		}
		return EncodedValue{Type: valueType, Annotation: &ann}, next, nil
	case ValueNull:
		return EncodedValue{Type: valueType}, pos, nil
	case ValueBoolean:
		return EncodedValue{Type: valueType, Bool: valueArg != 0}, pos, nil
	default:
		return EncodedValue{}, 0, fmt.Errorf("%w: unknown value type 0x%02x at offset %d", ErrMalformedEncodedValue, valueType, off)
	}
}

// decodeEncodedAnnotation decodes an encoded_annotation at off.
func (d *File) decodeEncodedAnnotation(off uint32) (EncodedAnnotation, uint32, error) {
	typeIdx, pos, err := d.cursor.uleb128(off)
	if err != nil {
		return EncodedAnnotation{}, 0, fmt.Errorf("%w: annotation type_idx: %v", ErrMalformedEncodedValue, err)
	}
	size, pos, err := d.cursor.uleb128(pos)
	if err != nil {
		return EncodedAnnotation{}, 0, fmt.Errorf("%w: annotation size: %v", ErrMalformedEncodedValue, err)
	}
	elems := make([]EncodedAnnotationElement, 0, d.capHint(pos, size, 2))
	for i := uint32(0); i < size; i++ {
		nameIdx, next, err := d.cursor.uleb128(pos)
		if err != nil {
			return EncodedAnnotation{}, 0, fmt.Errorf("%w: element[%d] name_idx: %v", ErrMalformedEncodedValue, i, err)
		}
		val, next2, err := d.decodeEncodedValue(next)
		if err != nil {
			return EncodedAnnotation{}, 0, err
		}
		elems = append(elems, EncodedAnnotationElement{NameIdx: nameIdx, Value: val})
		pos = next2
	}
	return EncodedAnnotation{TypeIdx: typeIdx, Elements: elems}, pos, nil
}

// readSizedInt reads a little-endian integer of byteCount bytes
// (1..8), zero- or sign-extending per signed, as used by the
// variable-width int/long/char/index encoded_value formats.
func (d *File) readSizedInt(off uint32, byteCount uint, signed bool) (int64, uint32, error) {
	if byteCount == 0 || byteCount > 8 {
		return 0, 0, fmt.Errorf("%w: bad sized-int width %d at offset %d", ErrMalformedEncodedValue, byteCount, off)
	}
	var result int64
	var last byte
	for i := uint(0); i < byteCount; i++ {
		b, err := d.cursor.u8(off + uint32(i))
		if err != nil {
			return 0, 0, err
		}
		result |= int64(b) << (8 * i)
		last = b
	}
	if signed && byteCount < 8 && last&0x80 != 0 {
		result |= -1 << (8 * byteCount)
	}
	return result, off + uint32(byteCount), nil
}

func (d *File) readSizedFloat(off uint32, byteCount uint) (float32, uint32, error) {
	v, next, err := d.readSizedRightZeroExtended(off, byteCount, 4)
	return float32FromBits(uint32(v)), next, err
}

func (d *File) readSizedDouble(off uint32, byteCount uint) (float64, uint32, error) {
	v, next, err := d.readSizedRightZeroExtended(off, byteCount, 8)
	return float64FromBits(v), next, err
}

// readSizedRightZeroExtended reads byteCount bytes little-endian, then
// zero-extends on the right (low-order side) up to width bytes, as
// required for the VALUE_FLOAT/VALUE_DOUBLE encodings which store only
// the most significant bytes of the IEEE 754 representation.
func (d *File) readSizedRightZeroExtended(off uint32, byteCount uint, width uint) (uint64, uint32, error) {
	if byteCount == 0 || byteCount > width {
		return 0, 0, fmt.Errorf("%w: bad sized-float width %d at offset %d", ErrMalformedEncodedValue, byteCount, off)
	}
	var result uint64
	for i := uint(0); i < byteCount; i++ {
		b, err := d.cursor.u8(off + uint32(i))
		if err != nil {
			return 0, 0, err
		}
		shift := 8 * (width - byteCount + i)
		result |= uint64(b) << shift
	}
	return result, off + uint32(byteCount), nil
}
