// Copyright 2026 The dexray Authors. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package dex

import "fmt"

// TryItem describes one try block's code unit range and the offset,
// relative to the start of the handler list, of its catch handlers.
type TryItem struct {
	StartAddr  uint32 `json:"start_addr"`
	InsnCount  uint16 `json:"insn_count"`
	HandlerOff uint16 `json:"handler_off"`
}

// TypeAddrPair associates a caught exception type with the code unit
// address of its handler.
type TypeAddrPair struct {
	TypeIdx uint32 `json:"type_idx"`
	Addr    uint32 `json:"addr"`
}

// EncodedCatchHandler is one decoded encoded_catch_handler: the typed
// handlers for specific exception types, plus an optional catch-all
// handler address (CatchAllAddr == 0 with HasCatchAll == false means
// there is none).
type EncodedCatchHandler struct {
	Handlers     []TypeAddrPair `json:"handlers"`
	HasCatchAll  bool           `json:"has_catch_all"`
	CatchAllAddr uint32         `json:"catch_all_addr"`
}

// decodeTryItems reads count try_item records starting at off (fixed
// 8 bytes each, spec's try_item format).
func (d *File) decodeTryItems(off uint32, count uint32) ([]TryItem, error) {
	c := d.cursor
	items := make([]TryItem, 0, d.capHint(off, count, 8))
	pos := off
	for i := uint32(0); i < count; i++ {
		startAddr, err := c.u32(pos)
		if err != nil {
			return nil, fmt.Errorf("try_item[%d].start_addr: %w", i, err)
		}
		insnCount, err := c.u16(pos + 4)
		if err != nil {
			return nil, fmt.Errorf("try_item[%d].insn_count: %w", i, err)
		}
		handlerOff, err := c.u16(pos + 6)
		if err != nil {
			return nil, fmt.Errorf("try_item[%d].handler_off: %w", i, err)
		}
		items = append(items, TryItem{StartAddr: startAddr, InsnCount: insnCount, HandlerOff: handlerOff})
		pos += 8
	}
	return items, nil
}

// decodeEncodedCatchHandlerList decodes the encoded_catch_handler_list
// starting at off: a ULEB128 size, then that many
// encoded_catch_handlers. It returns them indexed by their byte offset
// relative to the start of the list, matching how try_item.handler_off
// references them.
func (d *File) decodeEncodedCatchHandlerList(off uint32) (map[uint16]EncodedCatchHandler, error) {
	c := d.cursor

	size, pos, err := c.uleb128(off)
	if err != nil {
		return nil, fmt.Errorf("%w: encoded_catch_handler_list size: %v", ErrMalformedCodeItem, err)
	}

	result := make(map[uint16]EncodedCatchHandler, d.capHint(pos, size, 1))
	for i := uint32(0); i < size; i++ {
		handlerStart := pos - off
		handlersSize, next, err := c.sleb128(pos)
		if err != nil {
			return nil, fmt.Errorf("%w: encoded_catch_handler[%d].size: %v", ErrMalformedCodeItem, i, err)
		}
		pos = next

		absCount := handlersSize
		if absCount < 0 {
			absCount = -absCount
		}

		handlers := make([]TypeAddrPair, 0, d.capHint(pos, uint32(absCount), 2))
		for j := int32(0); j < absCount; j++ {
			typeIdx, n1, err := c.uleb128(pos)
			if err != nil {
				return nil, fmt.Errorf("%w: encoded_type_addr_pair[%d].type_idx: %v", ErrMalformedCodeItem, j, err)
			}
			addr, n2, err := c.uleb128(n1)
			if err != nil {
				return nil, fmt.Errorf("%w: encoded_type_addr_pair[%d].addr: %v", ErrMalformedCodeItem, j, err)
			}
			handlers = append(handlers, TypeAddrPair{TypeIdx: typeIdx, Addr: addr})
			pos = n2
		}

		ch := EncodedCatchHandler{Handlers: handlers}
		if handlersSize <= 0 {
			catchAllAddr, next, err := c.uleb128(pos)
			if err != nil {
				return nil, fmt.Errorf("%w: encoded_catch_handler[%d].catch_all_addr: %v", ErrMalformedCodeItem, i, err)
			}
			ch.HasCatchAll = true
			ch.CatchAllAddr = catchAllAddr
			pos = next
		}

		result[uint16(handlerStart)] = ch
	}

	return result, nil
}
