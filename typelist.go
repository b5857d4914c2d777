// Copyright 2026 The dexray Authors. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package dex

import "fmt"

// TypeList is a decoded type_list: an array of type_ids table indices,
// used for a method's parameter types and a class's interfaces list.
type TypeList struct {
	TypeIndices []uint32 `json:"type_indices"`
}

// typeListAt decodes a type_list at off. A zero off denotes an absent
// list (empty parameters or no interfaces) and yields a TypeList with
// no entries.
func (d *File) typeListAt(off uint32) (TypeList, error) {
	if off == 0 {
		return TypeList{}, nil
	}
	size, err := d.cursor.u32(off)
	if err != nil {
		return TypeList{}, fmt.Errorf("type_list size: %w", err)
	}
	indices := make([]uint32, 0, d.capHint(off+4, size, 2))
	pos := off + 4
	for i := uint32(0); i < size; i++ {
		v, err := d.cursor.u16(pos)
		if err != nil {
			return TypeList{}, fmt.Errorf("type_list[%d]: %w", i, err)
		}
		indices = append(indices, uint32(v))
		pos += 2
	}
	return TypeList{TypeIndices: indices}, nil
}

// Types resolves every index in the list to its descriptor string.
func (d *File) Types(tl TypeList) ([]string, error) {
	out := make([]string, 0, len(tl.TypeIndices))
	for _, idx := range tl.TypeIndices {
		s, err := d.TypeByIndex(idx)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, nil
}
