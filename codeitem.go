// Copyright 2026 The dexray Authors. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package dex

import "fmt"

// CodeItemAccessor is a lazy view over one code_item: the fixed header
// fields are decoded eagerly, while the instruction stream and the
// try/catch region are decoded only when asked for (spec §4.4, §4.5).
type CodeItemAccessor struct {
	RegistersSize uint16 `json:"registers_size"`
	InsSize       uint16 `json:"ins_size"`
	OutsSize      uint16 `json:"outs_size"`
	TriesSize     uint16 `json:"tries_size"`
	debugInfoOff  uint32
	insnsSize     uint32

	units       []uint16
	triesOff    uint32
	handlersOff uint32

	file *File
}

// CodeItem decodes the code_item header at off and captures enough
// bookkeeping to lazily decode instructions and try/catch data on
// request.
func (d *File) CodeItem(off uint32) (*CodeItemAccessor, error) {
	c := d.cursor

	registersSize, err := c.u16(off)
	if err != nil {
		return nil, fmt.Errorf("code_item.registers_size: %w", err)
	}
	insSize, err := c.u16(off + 2)
	if err != nil {
		return nil, fmt.Errorf("code_item.ins_size: %w", err)
	}
	outsSize, err := c.u16(off + 4)
	if err != nil {
		return nil, fmt.Errorf("code_item.outs_size: %w", err)
	}
	triesSize, err := c.u16(off + 6)
	if err != nil {
		return nil, fmt.Errorf("code_item.tries_size: %w", err)
	}
	debugInfoOff, err := c.u32(off + 8)
	if err != nil {
		return nil, fmt.Errorf("code_item.debug_info_off: %w", err)
	}
	insnsSize, err := c.u32(off + 12)
	if err != nil {
		return nil, fmt.Errorf("code_item.insns_size: %w", err)
	}

	insnsOff := off + 16

	// insns_size is attacker-controlled and measured in 16-bit code
	// units: compute its byte length in 64-bit arithmetic and bound it
	// against what remains of the image before ever allocating, so a
	// declaration near 2^32 can't wrap to a tiny byte length (passing a
	// truncated bounds check) while insns_size itself still drives a
	// multi-gigabyte []uint16 allocation and an out-of-range fill loop.
	var remaining uint64
	if uint64(insnsOff) <= uint64(c.len()) {
		remaining = uint64(c.len()) - uint64(insnsOff)
	}
	byteLen := uint64(insnsSize) * 2
	if byteLen > remaining {
		return nil, fmt.Errorf("%w: code_item.insns_size %d exceeds remaining image", ErrMalformedCodeItem, insnsSize)
	}

	rawInsns, err := c.bytes(insnsOff, uint32(byteLen))
	if err != nil {
		return nil, fmt.Errorf("%w: code_item.insns: %v", ErrMalformedCodeItem, err)
	}
	units := make([]uint16, insnsSize)
	for i := range units {
		units[i] = uint16(rawInsns[2*i]) | uint16(rawInsns[2*i+1])<<8
	}

	triesOff := insnsOff + insnsSize*2
	if triesSize > 0 && insnsSize%2 != 0 {
		// tries are 4-byte aligned; a padding u16 follows an odd-length
		// insns stream.
		triesOff += 2
	}
	var handlersOff uint32
	if triesSize > 0 {
		handlersOff = triesOff + uint32(triesSize)*8
	}

	return &CodeItemAccessor{
		RegistersSize: registersSize,
		InsSize:       insSize,
		OutsSize:      outsSize,
		TriesSize:     triesSize,
		debugInfoOff:  debugInfoOff,
		insnsSize:     insnsSize,
		units:         units,
		triesOff:      triesOff,
		handlersOff:   handlersOff,
		file:          d,
	}, nil
}

// InsnsRaw returns the raw little-endian instruction stream bytes.
func (c *CodeItemAccessor) InsnsRaw() []byte {
	out := make([]byte, len(c.units)*2)
	for i, u := range c.units {
		out[2*i] = byte(u)
		out[2*i+1] = byte(u >> 8)
	}
	return out
}

// InsnsSizeInCodeUnits returns the declared length of the instruction
// stream in 16-bit code units.
func (c *CodeItemAccessor) InsnsSizeInCodeUnits() uint32 {
	return c.insnsSize
}

// InstAt decodes the single instruction or payload pseudo-instruction
// starting at code unit pc.
func (c *CodeItemAccessor) InstAt(pc uint32) (Instruction, error) {
	return decodeAt(unitReader{units: c.units}, pc)
}

// Insns decodes and returns every instruction in the stream, in
// address order. Decoding stops at the first error encountered so that
// callers see a partial, still-useful stream rather than nothing; it
// never panics on malformed input (spec §8 fuzz property).
func (c *CodeItemAccessor) Insns() []Instruction {
	r := unitReader{units: c.units}
	var out []Instruction
	pc := uint32(0)
	for pc < uint32(len(c.units)) {
		in, err := decodeAt(r, pc)
		if err != nil {
			break
		}
		out = append(out, in)
		if in.Units == 0 {
			break
		}
		pc += uint32(in.Units)
	}
	return out
}

// TryItems decodes the tries array following the instruction stream.
func (c *CodeItemAccessor) TryItems() ([]TryItem, error) {
	if c.TriesSize == 0 {
		return nil, nil
	}
	return c.file.decodeTryItems(c.triesOff, uint32(c.TriesSize))
}

// CatchHandlers decodes the encoded_catch_handler_list following the
// tries array, indexed by byte offset relative to its own start (the
// same addressing TryItem.HandlerOff uses).
func (c *CodeItemAccessor) CatchHandlers() (map[uint16]EncodedCatchHandler, error) {
	if c.TriesSize == 0 {
		return nil, nil
	}
	return c.file.decodeEncodedCatchHandlerList(c.handlersOff)
}

// DebugInfoOffset returns the raw debug_info_off, 0 if this code_item
// carries no debug_info_item. The debug_info_item's DBG_* opcode
// stream itself is outside this package's decode surface.
func (c *CodeItemAccessor) DebugInfoOffset() uint32 {
	return c.debugInfoOff
}
