// Copyright 2026 The dexray Authors. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package dex

import "fmt"

// StringByIndex resolves string_ids[idx] to its decoded text. The
// string_data_item is read lazily: string_ids only stores an offset,
// so nothing beyond the table of offsets is touched until this call
// (spec §4.4).
func (d *File) StringByIndex(idx uint32) (string, error) {
	off, err := d.stringDataOff(idx)
	if err != nil {
		return "", err
	}
	text, _, _, err := d.cursor.mutf8String(off)
	if err != nil {
		return "", fmt.Errorf("string_ids[%d]: %w", idx, err)
	}
	return text, nil
}

// StringDataOffsetByIndex returns the string_data_item offset for
// string_ids[idx] without decoding it.
func (d *File) StringDataOffsetByIndex(idx uint32) (uint32, error) {
	return d.stringDataOff(idx)
}

// StringDataBytes resolves string_ids[idx] to the raw MUTF-8 body of
// its string_data_item, excluding the NUL terminator. Unlike
// StringByIndex, the returned bytes are borrowed directly from the
// underlying image rather than converted to UTF-8, so they round-trip
// byte-for-byte with what a writer would re-encode (spec §8 round-trip
// property). The body is still decoded once to find its end and check
// it, so malformed MUTF-8 yields an error here as well.
func (d *File) StringDataBytes(idx uint32) ([]byte, error) {
	off, err := d.stringDataOff(idx)
	if err != nil {
		return nil, err
	}
	_, raw, _, err := d.cursor.mutf8String(off)
	if err != nil {
		return nil, fmt.Errorf("string_ids[%d]: %w", idx, err)
	}
	return raw, nil
}

func (d *File) stringDataOff(idx uint32) (uint32, error) {
	if idx >= d.header.StringIDsSize {
		return 0, fmt.Errorf("%w: string_ids[%d], size %d", ErrIndexOutOfRange, idx, d.header.StringIDsSize)
	}
	return d.cursor.u32(d.header.StringIDsOff + idx*stringIDSize)
}
