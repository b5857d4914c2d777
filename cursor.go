// Copyright 2026 The dexray Authors. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package dex

import (
	"encoding/binary"
	"fmt"
)

// cursor reads fixed-width little-endian scalars and variable-length
// integers from a borrowed byte image, bounds-checking every access
// against the image length. It never copies the image; bytes returns a
// sub-slice directly into it.
type cursor struct {
	data []byte
}

func newCursor(data []byte) *cursor {
	return &cursor{data: data}
}

func (c *cursor) len() uint32 {
	return uint32(len(c.data))
}

// u8 reads a byte at off.
func (c *cursor) u8(off uint32) (uint8, error) {
	if off >= c.len() {
		return 0, fmt.Errorf("%w: offset %d (u8)", ErrOutOfBounds, off)
	}
	return c.data[off], nil
}

// u16 reads a little-endian uint16 at off.
func (c *cursor) u16(off uint32) (uint16, error) {
	if off+2 > c.len() || off+2 < off {
		return 0, fmt.Errorf("%w: offset %d (u16)", ErrOutOfBounds, off)
	}
	return binary.LittleEndian.Uint16(c.data[off:]), nil
}

// u32 reads a little-endian uint32 at off.
func (c *cursor) u32(off uint32) (uint32, error) {
	if off+4 > c.len() || off+4 < off {
		return 0, fmt.Errorf("%w: offset %d (u32)", ErrOutOfBounds, off)
	}
	return binary.LittleEndian.Uint32(c.data[off:]), nil
}

// u64 reads a little-endian uint64 at off.
func (c *cursor) u64(off uint32) (uint64, error) {
	if off+8 > c.len() || off+8 < off {
		return 0, fmt.Errorf("%w: offset %d (u64)", ErrOutOfBounds, off)
	}
	return binary.LittleEndian.Uint64(c.data[off:]), nil
}

// capHint returns a safe capacity hint for preallocating count elements
// of at least minElemSize bytes each, starting at off. Preallocation is
// only ever a hint: callers still bounds-check every read during the
// loop that follows, so an undersized hint at worst costs a reallocation.
// This keeps one bogus ULEB128/u32 count field from requesting a
// multi-gigabyte slice up front before the first bounds check ever runs.
func (c *cursor) capHint(off, count, minElemSize uint32) uint32 {
	if minElemSize == 0 {
		minElemSize = 1
	}
	var remaining uint32
	if off <= c.len() {
		remaining = c.len() - off
	}
	if byRemaining := remaining / minElemSize; byRemaining < count {
		return byRemaining
	}
	return count
}

// bytes borrows the sub-slice [off, off+length) without copying.
func (c *cursor) bytes(off, length uint32) ([]byte, error) {
	end := off + length
	if end < off || off > c.len() || end > c.len() {
		return nil, fmt.Errorf("%w: range [%d,%d)", ErrOutOfBounds, off, end)
	}
	return c.data[off:end], nil
}

// uleb128 decodes an unsigned LEB128 value starting at off, returning
// the value and the offset immediately past it. At most 5 bytes are
// consumed; a longer encoding fails with ErrOverflow.
func (c *cursor) uleb128(off uint32) (uint32, uint32, error) {
	var result uint32
	var shift uint
	pos := off
	for i := 0; i < 5; i++ {
		b, err := c.u8(pos)
		if err != nil {
			return 0, 0, err
		}
		pos++
		result |= uint32(b&0x7f) << shift
		if b&0x80 == 0 {
			return result, pos, nil
		}
		shift += 7
	}
	return 0, 0, fmt.Errorf("%w: uleb128 at offset %d", ErrOverflow, off)
}

// uleb128p1 decodes a ULEB128p1 value: ULEB128(x+1)-1, so 0 represents
// -1 (an absent value in several DEX contexts).
func (c *cursor) uleb128p1(off uint32) (int32, uint32, error) {
	v, next, err := c.uleb128(off)
	if err != nil {
		return 0, 0, err
	}
	return int32(v) - 1, next, nil
}

// sleb128 decodes a signed LEB128 value starting at off.
func (c *cursor) sleb128(off uint32) (int32, uint32, error) {
	var result int32
	var shift uint
	pos := off
	var b byte
	var err error
	for i := 0; i < 5; i++ {
		b, err = c.u8(pos)
		if err != nil {
			return 0, 0, err
		}
		pos++
		result |= int32(b&0x7f) << shift
		shift += 7
		if b&0x80 == 0 {
			// Sign-extend if the sign bit of the last group is set and
			// there is room left in the 32-bit result.
			if shift < 32 && b&0x40 != 0 {
				result |= -1 << shift
			}
			return result, pos, nil
		}
	}
	return 0, 0, fmt.Errorf("%w: sleb128 at offset %d", ErrOverflow, off)
}

// mutf8String decodes a string_data_item body: a ULEB128 utf16_len
// followed by Modified UTF-8 bytes terminated by a NUL byte. It returns
// the decoded text, the raw MUTF-8 body (excluding the terminator), and
// the offset immediately past the terminator.
func (c *cursor) mutf8String(off uint32) (text string, raw []byte, next uint32, err error) {
	utf16Len, pos, err := c.uleb128(off)
	if err != nil {
		return "", nil, 0, err
	}

	runes := make([]rune, 0, c.capHint(pos, utf16Len, 1))
	start := pos
	for {
		b0, err := c.u8(pos)
		if err != nil {
			return "", nil, 0, err
		}
		if b0 == 0x00 {
			pos++
			break
		}

		var r rune
		switch {
		case b0&0x80 == 0x00:
			// 1-byte form: 0xxxxxxx
			r = rune(b0)
			pos++
		case b0&0xE0 == 0xC0:
			// 2-byte form: 110xxxxx 10xxxxxx
			b1, err := c.u8(pos + 1)
			if err != nil {
				return "", nil, 0, err
			}
			if b1&0xC0 != 0x80 {
				return "", nil, 0, fmt.Errorf("%w: bad mutf8 continuation at offset %d", ErrBadEncoding, pos+1)
			}
			r = rune(b0&0x1F)<<6 | rune(b1&0x3F)
			pos += 2
		case b0&0xF0 == 0xE0:
			// 3-byte form: 1110xxxx 10xxxxxx 10xxxxxx
			b1, err := c.u8(pos + 1)
			if err != nil {
				return "", nil, 0, err
			}
			b2, err := c.u8(pos + 2)
			if err != nil {
				return "", nil, 0, err
			}
			if b1&0xC0 != 0x80 || b2&0xC0 != 0x80 {
				return "", nil, 0, fmt.Errorf("%w: bad mutf8 continuation at offset %d", ErrBadEncoding, pos+1)
			}
			r = rune(b0&0x0F)<<12 | rune(b1&0x3F)<<6 | rune(b2&0x3F)
			pos += 3
		default:
			// 4-byte UTF-8 forms are not part of the MUTF-8 subset:
			// reject rather than best-effort-decode (spec open question 2).
			return "", nil, 0, fmt.Errorf("%w: 4-byte utf8 sequence at offset %d not valid mutf8", ErrBadEncoding, pos)
		}
		runes = append(runes, r)
	}

	raw, err = c.bytes(start, pos-1-start)
	if err != nil {
		return "", nil, 0, err
	}

	text = string(runes)
	if uint32(len(runes)) != utf16Len {
		return "", nil, 0, fmt.Errorf("%w: declared utf16_len %d, decoded %d code units at offset %d",
			ErrBadEncoding, utf16Len, len(runes), off)
	}

	return text, raw, pos, nil
}
