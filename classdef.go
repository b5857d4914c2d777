// Copyright 2026 The dexray Authors. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package dex

import "fmt"

// ClassDef is a decoded class_def_item.
type ClassDef struct {
	ClassIdx        uint32 `json:"class_idx"`
	AccessFlags     uint32 `json:"access_flags"`
	SuperclassIdx   uint32 `json:"superclass_idx"`
	InterfacesOff   uint32 `json:"interfaces_off"`
	SourceFileIdx   uint32 `json:"source_file_idx"`
	AnnotationsOff  uint32 `json:"annotations_off"`
	ClassDataOff    uint32 `json:"class_data_off"`
	StaticValuesOff uint32 `json:"static_values_off"`
}

// ClassDefByIndex resolves class_defs[idx].
func (d *File) ClassDefByIndex(idx uint32) (ClassDef, error) {
	if idx >= d.header.ClassDefsSize {
		return ClassDef{}, fmt.Errorf("%w: class_defs[%d], size %d", ErrIndexOutOfRange, idx, d.header.ClassDefsSize)
	}
	base := d.header.ClassDefsOff + idx*classDefSize
	c := d.cursor

	classIdx, err := c.u32(base)
	if err != nil {
		return ClassDef{}, err
	}
	accessFlags, err := c.u32(base + 4)
	if err != nil {
		return ClassDef{}, err
	}
	superclassIdx, err := c.u32(base + 8)
	if err != nil {
		return ClassDef{}, err
	}
	interfacesOff, err := c.u32(base + 12)
	if err != nil {
		return ClassDef{}, err
	}
	sourceFileIdx, err := c.u32(base + 16)
	if err != nil {
		return ClassDef{}, err
	}
	annotationsOff, err := c.u32(base + 20)
	if err != nil {
		return ClassDef{}, err
	}
	classDataOff, err := c.u32(base + 24)
	if err != nil {
		return ClassDef{}, err
	}
	staticValuesOff, err := c.u32(base + 28)
	if err != nil {
		return ClassDef{}, err
	}

	return ClassDef{
		ClassIdx:        classIdx,
		AccessFlags:     accessFlags,
		SuperclassIdx:   superclassIdx,
		InterfacesOff:   interfacesOff,
		SourceFileIdx:   sourceFileIdx,
		AnnotationsOff:  annotationsOff,
		ClassDataOff:    classDataOff,
		StaticValuesOff: staticValuesOff,
	}, nil
}

// ClassType resolves a ClassDef's own type descriptor.
func (d *File) ClassType(cd ClassDef) (string, error) {
	return d.TypeByIndex(cd.ClassIdx)
}

// SuperclassType resolves a ClassDef's superclass descriptor, or "" if
// it has none (java.lang.Object, encoded as NO_INDEX).
func (d *File) SuperclassType(cd ClassDef) (string, error) {
	if cd.SuperclassIdx == NoIndex {
		return "", nil
	}
	return d.TypeByIndex(cd.SuperclassIdx)
}

// Interfaces resolves a ClassDef's implemented interface descriptors.
func (d *File) Interfaces(cd ClassDef) ([]string, error) {
	tl, err := d.typeListAt(cd.InterfacesOff)
	if err != nil {
		return nil, err
	}
	return d.Types(tl)
}

// SourceFile resolves a ClassDef's source file name, or "" if absent
// (source_file_idx == NO_INDEX).
func (d *File) SourceFile(cd ClassDef) (string, error) {
	if cd.SourceFileIdx == NoIndex {
		return "", nil
	}
	return d.StringByIndex(cd.SourceFileIdx)
}

// StaticValues resolves a ClassDef's static field initial values, if
// any (static_values_off == 0 means all static fields get type-default
// values).
func (d *File) StaticValues(cd ClassDef) ([]EncodedValue, error) {
	if cd.StaticValuesOff == 0 {
		return nil, nil
	}
	return d.EncodedArray(cd.StaticValuesOff)
}
