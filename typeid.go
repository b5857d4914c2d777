// Copyright 2026 The dexray Authors. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package dex

import "fmt"

// TypeByIndex resolves type_ids[idx] to its descriptor string (e.g.
// "Ljava/lang/String;" or "I"), by way of string_ids[descriptor_idx].
func (d *File) TypeByIndex(idx uint32) (string, error) {
	if idx == NoIndex {
		return "", nil
	}
	if idx >= d.header.TypeIDsSize {
		return "", fmt.Errorf("%w: type_ids[%d], size %d", ErrIndexOutOfRange, idx, d.header.TypeIDsSize)
	}
	descIdx, err := d.cursor.u32(d.header.TypeIDsOff + idx*typeIDSize)
	if err != nil {
		return "", err
	}
	return d.StringByIndex(descIdx)
}
