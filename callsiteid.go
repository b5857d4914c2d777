// Copyright 2026 The dexray Authors. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package dex

import "fmt"

// callSiteIDsOff/callSiteIDsSize are not carried in the fixed header;
// they are located via the map_list (spec's supplemented call site
// support, since invoke-custom support post-dates the original header
// layout).
func (d *File) callSiteIDs() (off, size uint32, ok bool) {
	item, found := d.mapList.ByType(TypeCallSiteIDItem)
	if !found {
		return 0, 0, false
	}
	return item.Offset, item.Size, true
}

// CallSiteByIndex resolves call_site_ids[idx] to the offset of its
// call_site_item, which is itself an encoded_array_item of bootstrap
// arguments. Decode it with EncodedArray.
func (d *File) CallSiteByIndex(idx uint32) (uint32, error) {
	off, size, ok := d.callSiteIDs()
	if !ok || idx >= size {
		return 0, fmt.Errorf("%w: call_site_ids[%d]", ErrIndexOutOfRange, idx)
	}
	return d.cursor.u32(off + idx*callSiteSize)
}
