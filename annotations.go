// Copyright 2026 The dexray Authors. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package dex

import "fmt"

// Visibility identifies when an annotation is intended to be observed.
type Visibility byte

// Annotation visibility values.
const (
	VisibilityBuild   Visibility = 0x00
	VisibilityRuntime Visibility = 0x01
	VisibilitySystem  Visibility = 0x02
)

// AnnotationItem is a decoded annotation_item: a visibility plus one
// encoded_annotation.
type AnnotationItem struct {
	Visibility Visibility        `json:"visibility"`
	Annotation EncodedAnnotation `json:"annotation"`
}

// AnnotationItem decodes the annotation_item at off.
func (d *File) AnnotationItem(off uint32) (AnnotationItem, error) {
	vis, err := d.cursor.u8(off)
	if err != nil {
		return AnnotationItem{}, fmt.Errorf("annotation_item.visibility: %w", err)
	}
	ann, _, err := d.decodeEncodedAnnotation(off + 1)
	if err != nil {
		return AnnotationItem{}, err
	}
	return AnnotationItem{Visibility: Visibility(vis), Annotation: ann}, nil
}

// AnnotationSetItem decodes an annotation_set_item at off: a u32 size
// followed by that many u32 offsets to annotation_item.
func (d *File) AnnotationSetItem(off uint32) ([]AnnotationItem, error) {
	if off == 0 {
		return nil, nil
	}
	size, err := d.cursor.u32(off)
	if err != nil {
		return nil, fmt.Errorf("%w: annotation_set_item size: %v", ErrMalformedAnnotations, err)
	}
	items := make([]AnnotationItem, 0, d.capHint(off+4, size, 4))
	pos := off + 4
	for i := uint32(0); i < size; i++ {
		itemOff, err := d.cursor.u32(pos)
		if err != nil {
			return nil, fmt.Errorf("%w: annotation_set_item entry[%d]: %v", ErrMalformedAnnotations, i, err)
		}
		ann, err := d.AnnotationItem(itemOff)
		if err != nil {
			return nil, err
		}
		items = append(items, ann)
		pos += 4
	}
	return items, nil
}

// AnnotationSetRefList decodes an annotation_set_ref_list at off: a u32
// size followed by that many u32 offsets to annotation_set_item (one
// per method parameter).
func (d *File) AnnotationSetRefList(off uint32) ([][]AnnotationItem, error) {
	if off == 0 {
		return nil, nil
	}
	size, err := d.cursor.u32(off)
	if err != nil {
		return nil, fmt.Errorf("%w: annotation_set_ref_list size: %v", ErrMalformedAnnotations, err)
	}
	lists := make([][]AnnotationItem, 0, d.capHint(off+4, size, 4))
	pos := off + 4
	for i := uint32(0); i < size; i++ {
		setOff, err := d.cursor.u32(pos)
		if err != nil {
			return nil, fmt.Errorf("%w: annotation_set_ref_list entry[%d]: %v", ErrMalformedAnnotations, i, err)
		}
		set, err := d.AnnotationSetItem(setOff)
		if err != nil {
			return nil, err
		}
		lists = append(lists, set)
		pos += 4
	}
	return lists, nil
}

// FieldAnnotation, MethodAnnotation, and ParameterAnnotation pair an
// absolute field_ids/method_ids index with its annotation set, as
// stored in an annotations_directory_item.
type FieldAnnotation struct {
	FieldIdx         uint32 `json:"field_idx"`
	AnnotationSetOff uint32 `json:"annotation_set_off"`
}

type MethodAnnotation struct {
	MethodIdx        uint32 `json:"method_idx"`
	AnnotationSetOff uint32 `json:"annotation_set_off"`
}

type ParameterAnnotation struct {
	MethodIdx      uint32 `json:"method_idx"`
	AnnotationsOff uint32 `json:"annotations_off"`
}

// AnnotationsDirectoryItem is a decoded annotations_directory_item: a
// class-level annotation set plus per-field, per-method, and
// per-parameter annotation lists.
type AnnotationsDirectoryItem struct {
	ClassAnnotationsOff  uint32                `json:"class_annotations_off"`
	FieldAnnotations     []FieldAnnotation     `json:"field_annotations"`
	MethodAnnotations    []MethodAnnotation    `json:"method_annotations"`
	ParameterAnnotations []ParameterAnnotation `json:"parameter_annotations"`
}

// AnnotationsDirectory decodes the annotations_directory_item at off.
func (d *File) AnnotationsDirectory(off uint32) (AnnotationsDirectoryItem, error) {
	c := d.cursor

	classAnnotationsOff, err := c.u32(off)
	if err != nil {
		return AnnotationsDirectoryItem{}, fmt.Errorf("annotations_directory_item.class_annotations_off: %w", err)
	}
	fieldsSize, err := c.u32(off + 4)
	if err != nil {
		return AnnotationsDirectoryItem{}, err
	}
	methodsSize, err := c.u32(off + 8)
	if err != nil {
		return AnnotationsDirectoryItem{}, err
	}
	parametersSize, err := c.u32(off + 12)
	if err != nil {
		return AnnotationsDirectoryItem{}, err
	}

	pos := off + 16
	fields := make([]FieldAnnotation, 0, d.capHint(pos, fieldsSize, 8))
	for i := uint32(0); i < fieldsSize; i++ {
		idx, err := c.u32(pos)
		if err != nil {
			return AnnotationsDirectoryItem{}, err
		}
		setOff, err := c.u32(pos + 4)
		if err != nil {
			return AnnotationsDirectoryItem{}, err
		}
		fields = append(fields, FieldAnnotation{FieldIdx: idx, AnnotationSetOff: setOff})
		pos += 8
	}

	methods := make([]MethodAnnotation, 0, d.capHint(pos, methodsSize, 8))
	for i := uint32(0); i < methodsSize; i++ {
		idx, err := c.u32(pos)
		if err != nil {
			return AnnotationsDirectoryItem{}, err
		}
		setOff, err := c.u32(pos + 4)
		if err != nil {
			return AnnotationsDirectoryItem{}, err
		}
		methods = append(methods, MethodAnnotation{MethodIdx: idx, AnnotationSetOff: setOff})
		pos += 8
	}

	params := make([]ParameterAnnotation, 0, d.capHint(pos, parametersSize, 8))
	for i := uint32(0); i < parametersSize; i++ {
		idx, err := c.u32(pos)
		if err != nil {
			return AnnotationsDirectoryItem{}, err
		}
		annOff, err := c.u32(pos + 4)
		if err != nil {
			return AnnotationsDirectoryItem{}, err
		}
		params = append(params, ParameterAnnotation{MethodIdx: idx, AnnotationsOff: annOff})
		pos += 8
	}

	return AnnotationsDirectoryItem{
		ClassAnnotationsOff:  classAnnotationsOff,
		FieldAnnotations:     fields,
		MethodAnnotations:    methods,
		ParameterAnnotations: params,
	}, nil
}
