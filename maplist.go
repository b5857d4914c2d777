// Copyright 2026 The dexray Authors. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package dex

import "fmt"

// MapItem is one entry of the map_list: the type, count, and offset of
// one DEX item region.
type MapItem struct {
	Type   MapItemType `json:"type"`
	Unused uint16      `json:"unused"`
	Size   uint32      `json:"size"`
	Offset uint32      `json:"offset"`
}

// MapList is the decoded map_list item referenced by header.map_off. It
// is used only for presence detection and for locating item kinds whose
// counts are not carried in the fixed header (spec §4.2); the header's
// own *_off/*_size fields remain authoritative for the ID tables.
type MapList struct {
	Items []MapItem `json:"items"`
}

// ByType returns the first map_list entry of the given type, if present.
func (m MapList) ByType(t MapItemType) (MapItem, bool) {
	for _, it := range m.Items {
		if it.Type == t {
			return it, true
		}
	}
	return MapItem{}, false
}

// mandatoryMapTypes are the item kinds every well-formed DEX's map_list
// must list at least once.
var mandatoryMapTypes = []MapItemType{
	TypeHeaderItem,
	TypeStringIDItem,
	TypeTypeIDItem,
	TypeMapList,
}

// parseMapList decodes the map_list at header.map_off: a u32 size
// followed by size map_item records (spec §4.2). Map items are not
// required to be in offset order by this parser; an out-of-order
// offset is recorded as an anomaly rather than rejected.
func (d *File) parseMapList() error {
	c := d.cursor

	size, err := c.u32(d.header.MapOff)
	if err != nil {
		return fmt.Errorf("map_list size: %w", err)
	}

	items := make([]MapItem, 0, d.capHint(d.header.MapOff+4, size, 12))
	pos := d.header.MapOff + 4
	lastOffset := uint32(0)
	for i := uint32(0); i < size; i++ {
		typ, err := c.u16(pos)
		if err != nil {
			return fmt.Errorf("map_item[%d].type: %w", i, err)
		}
		unused, err := c.u16(pos + 2)
		if err != nil {
			return fmt.Errorf("map_item[%d].unused: %w", i, err)
		}
		itemSize, err := c.u32(pos + 4)
		if err != nil {
			return fmt.Errorf("map_item[%d].size: %w", i, err)
		}
		offset, err := c.u32(pos + 8)
		if err != nil {
			return fmt.Errorf("map_item[%d].offset: %w", i, err)
		}
		pos += 12

		if i > 0 && offset < lastOffset {
			d.addAnomaly(fmt.Sprintf("%s: map_item[%d] offset 0x%x (previous 0x%x)", AnoMapOutOfOrder, i, offset, lastOffset))
		}
		lastOffset = offset

		items = append(items, MapItem{
			Type:   MapItemType(typ),
			Unused: unused,
			Size:   itemSize,
			Offset: offset,
		})
	}

	for _, want := range mandatoryMapTypes {
		found := false
		for _, it := range items {
			if it.Type == want {
				found = true
				break
			}
		}
		if !found {
			d.addAnomaly(fmt.Sprintf("%s: %s", AnoMapMissingMandatory, want.String()))
		}
	}

	d.mapList = MapList{Items: items}
	return nil
}
