// Copyright 2026 The dexray Authors. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package dex

import "fmt"

// Instruction is one decoded Dalvik instruction or payload pseudo-
// instruction (spec §4.5). Not every field is meaningful for every
// format; which ones are is determined by Format.
type Instruction struct {
	PC          uint32      `json:"pc"` // offset from the start of insns, in 16-bit code units
	Opcode      byte        `json:"opcode"`
	Name        string      `json:"name"`
	Format      Format      `json:"format"`
	IndexKind   IndexKind   `json:"index_kind"`
	VerifyFlags VerifyFlags `json:"verify_flags"`
	Units       uint16      `json:"units"` // size in 16-bit code units

	A, B, C uint32 `json:"-"`

	Literal      int64  `json:"literal,omitempty"`
	BranchOffset int32  `json:"branch_offset,omitempty"`
	Index        uint32 `json:"index,omitempty"`
	Index2       uint32 `json:"index2,omitempty"` // proto index, k45cc/k4rcc only

	RegStart uint32   `json:"reg_start,omitempty"` // k3rc/k4rcc
	RegCount uint32   `json:"reg_count,omitempty"`
	Regs     []uint32 `json:"regs,omitempty"` // k35c/k45cc, in invocation order C,D,E,F,G

	// Payload is non-nil only for the three payload pseudo-instructions,
	// holding one of *PackedSwitchPayload, *SparseSwitchPayload, or
	// *FillArrayDataPayload.
	Payload interface{} `json:"payload,omitempty"`
}

// PackedSwitchPayload is the packed-switch-payload pseudo-instruction:
// a contiguous run of keys starting at FirstKey, each mapped to a
// branch target relative to the switch instruction's address.
type PackedSwitchPayload struct {
	FirstKey int32   `json:"first_key"`
	Targets  []int32 `json:"targets"`
}

// SparseSwitchPayload is the sparse-switch-payload pseudo-instruction:
// explicit key/target pairs, sorted by key.
type SparseSwitchPayload struct {
	Keys    []int32 `json:"keys"`
	Targets []int32 `json:"targets"`
}

// FillArrayDataPayload is the fill-array-data-payload pseudo-
// instruction: raw element data for fill-array-data.
type FillArrayDataPayload struct {
	ElementWidth uint16 `json:"element_width"`
	Data         []byte `json:"data"`
}

// SizeInCodeUnits returns the number of 16-bit code units this
// instruction occupies, equal to Units.
func (in Instruction) SizeInCodeUnits() uint16 {
	return in.Units
}

// unitReader reads little-endian 16-bit code units from a borrowed
// instruction stream, bounds-checked against its length.
type unitReader struct {
	units []uint16
}

func (u unitReader) u16(pc uint32) (uint16, error) {
	if pc >= uint32(len(u.units)) {
		return 0, fmt.Errorf("%w: code unit %d (insns length %d)", ErrOutOfBounds, pc, len(u.units))
	}
	return u.units[pc], nil
}

func (u unitReader) u32(pc uint32) (uint32, error) {
	lo, err := u.u16(pc)
	if err != nil {
		return 0, err
	}
	hi, err := u.u16(pc + 1)
	if err != nil {
		return 0, err
	}
	return uint32(lo) | uint32(hi)<<16, nil
}

func (u unitReader) u64(pc uint32) (uint64, error) {
	lo, err := u.u32(pc)
	if err != nil {
		return 0, err
	}
	hi, err := u.u32(pc + 2)
	if err != nil {
		return 0, err
	}
	return uint64(lo) | uint64(hi)<<32, nil
}

// orderedArgRegs returns the first count registers of c,d,e,f,g, the
// order in which k35c/k45cc formats pass call arguments.
func orderedArgRegs(count, c, d, e, f, g uint32) []uint32 {
	all := [5]uint32{c, d, e, f, g}
	if count > 5 {
		count = 5
	}
	return append([]uint32(nil), all[:count]...)
}

// decodeAt decodes one instruction or payload pseudo-instruction
// starting at code unit pc (spec §4.5 steps 1-7).
func decodeAt(r unitReader, pc uint32) (Instruction, error) {
	first, err := r.u16(pc)
	if err != nil {
		return Instruction{}, err
	}

	op := byte(first & 0xff)

	// A "nop" opcode byte followed by a recognizable ident word in the
	// high byte introduces a payload pseudo-instruction rather than a
	// real nop (spec §4.5 step 7).
	if op == 0x00 && first != 0x0000 {
		switch first {
		case identPackedSwitchPayload:
			return decodePackedSwitchPayload(r, pc)
		case identSparseSwitchPayload:
			return decodeSparseSwitchPayload(r, pc)
		case identFillArrayDataPayload:
			return decodeFillArrayDataPayload(r, pc)
		}
	}

	format := GetFormatOf(op)
	if format == kInvalidFormat {
		return Instruction{}, fmt.Errorf("%w: opcode 0x%02x at code unit %d", ErrBadOpcode, op, pc)
	}

	in := Instruction{
		PC:          pc,
		Opcode:      op,
		Name:        GetNameOf(op),
		Format:      format,
		IndexKind:   GetIndexTypeOf(op),
		VerifyFlags: GetVerifyFlagsOf(op),
	}

	switch format {
	case k10x:
		in.Units = 1

	case k12x, k11n:
		in.A = uint32(first>>8) & 0xf
		in.B = uint32(first>>12) & 0xf
		if format == k11n {
			in.Literal = int64(int8(in.B<<4) >> 4)
		}
		in.Units = 1

	case k11x:
		in.A = uint32(first >> 8)
		in.Units = 1

	case k10t:
		in.BranchOffset = int32(int8(first >> 8))
		in.Units = 1

	case k20t:
		v, err := r.u16(pc + 1)
		if err != nil {
			return Instruction{}, err
		}
		in.BranchOffset = int32(int16(v))
		in.Units = 2

	case k22x:
		in.A = uint32(first >> 8)
		v, err := r.u16(pc + 1)
		if err != nil {
			return Instruction{}, err
		}
		in.B = uint32(v)
		in.Units = 2

	case k21t, k21s, k21h, k21c:
		in.A = uint32(first >> 8)
		v, err := r.u16(pc + 1)
		if err != nil {
			return Instruction{}, err
		}
		switch format {
		case k21t:
			in.BranchOffset = int32(int16(v))
		case k21s:
			in.Literal = int64(int16(v))
		case k21h:
			in.Literal = int64(int16(v))
		case k21c:
			in.Index = uint32(v)
		}
		in.Units = 2

	case k23x:
		in.A = uint32(first >> 8)
		v, err := r.u16(pc + 1)
		if err != nil {
			return Instruction{}, err
		}
		in.B = uint32(v & 0xff)
		in.C = uint32(v >> 8)
		in.Units = 2

	case k22b:
		in.A = uint32(first >> 8)
		v, err := r.u16(pc + 1)
		if err != nil {
			return Instruction{}, err
		}
		in.B = uint32(v & 0xff)
		in.Literal = int64(int8(v >> 8))
		in.Units = 2

	case k22t, k22s, k22c:
		in.A = uint32(first>>8) & 0xf
		in.B = uint32(first>>12) & 0xf
		v, err := r.u16(pc + 1)
		if err != nil {
			return Instruction{}, err
		}
		switch format {
		case k22t:
			in.BranchOffset = int32(int16(v))
		case k22s:
			in.Literal = int64(int16(v))
		case k22c:
			in.Index = uint32(v)
		}
		in.Units = 2

	case k30t:
		v, err := r.u32(pc + 1)
		if err != nil {
			return Instruction{}, err
		}
		in.BranchOffset = int32(v)
		in.Units = 3

	case k32x:
		a, err := r.u16(pc + 1)
		if err != nil {
			return Instruction{}, err
		}
		b, err := r.u16(pc + 2)
		if err != nil {
			return Instruction{}, err
		}
		in.A = uint32(a)
		in.B = uint32(b)
		in.Units = 3

	case k31i, k31t:
		v, err := r.u32(pc + 1)
		if err != nil {
			return Instruction{}, err
		}
		in.A = uint32(first >> 8)
		if format == k31i {
			in.Literal = int64(int32(v))
		} else {
			in.BranchOffset = int32(v)
		}
		in.Units = 3

	case k31c:
		v, err := r.u32(pc + 1)
		if err != nil {
			return Instruction{}, err
		}
		in.A = uint32(first >> 8)
		in.Index = v
		in.Units = 3

	case k35c:
		v, err := r.u16(pc + 1)
		if err != nil {
			return Instruction{}, err
		}
		regsUnit, err := r.u16(pc + 2)
		if err != nil {
			return Instruction{}, err
		}
		count := uint32(first >> 12)
		g := uint32(first>>8) & 0xf
		c := uint32(regsUnit) & 0xf
		d := uint32(regsUnit>>4) & 0xf
		e := uint32(regsUnit>>8) & 0xf
		f := uint32(regsUnit>>12) & 0xf
		in.RegCount = count
		in.Index = uint32(v)
		in.Regs = orderedArgRegs(count, c, d, e, f, g)
		in.Units = 3

	case k3rc:
		v, err := r.u16(pc + 1)
		if err != nil {
			return Instruction{}, err
		}
		regStart, err := r.u16(pc + 2)
		if err != nil {
			return Instruction{}, err
		}
		in.RegCount = uint32(first >> 8)
		in.Index = uint32(v)
		in.RegStart = uint32(regStart)
		in.Units = 3

	case k45cc:
		v, err := r.u16(pc + 1)
		if err != nil {
			return Instruction{}, err
		}
		regsUnit, err := r.u16(pc + 2)
		if err != nil {
			return Instruction{}, err
		}
		protoIdx, err := r.u16(pc + 3)
		if err != nil {
			return Instruction{}, err
		}
		count := uint32(first >> 12)
		g := uint32(first>>8) & 0xf
		c := uint32(regsUnit) & 0xf
		d := uint32(regsUnit>>4) & 0xf
		e := uint32(regsUnit>>8) & 0xf
		f := uint32(regsUnit>>12) & 0xf
		in.RegCount = count
		in.Index = uint32(v)
		in.Regs = orderedArgRegs(count, c, d, e, f, g)
		in.Index2 = uint32(protoIdx)
		in.Units = 4

	case k4rcc:
		v, err := r.u16(pc + 1)
		if err != nil {
			return Instruction{}, err
		}
		regStart, err := r.u16(pc + 2)
		if err != nil {
			return Instruction{}, err
		}
		protoIdx, err := r.u16(pc + 3)
		if err != nil {
			return Instruction{}, err
		}
		in.RegCount = uint32(first >> 8)
		in.Index = uint32(v)
		in.RegStart = uint32(regStart)
		in.Index2 = uint32(protoIdx)
		in.Units = 4

	case k51l:
		v, err := r.u64(pc + 1)
		if err != nil {
			return Instruction{}, err
		}
		in.A = uint32(first >> 8)
		in.Literal = int64(v)
		in.Units = 5

	default:
		return Instruction{}, fmt.Errorf("%w: unhandled format for opcode 0x%02x", ErrBadOpcode, op)
	}

	return in, nil
}

func decodePackedSwitchPayload(r unitReader, pc uint32) (Instruction, error) {
	size, err := r.u16(pc + 1)
	if err != nil {
		return Instruction{}, err
	}
	firstKeyLo, err := r.u16(pc + 2)
	if err != nil {
		return Instruction{}, err
	}
	firstKeyHi, err := r.u16(pc + 3)
	if err != nil {
		return Instruction{}, err
	}
	firstKey := int32(uint32(firstKeyLo) | uint32(firstKeyHi)<<16)

	targets := make([]int32, 0, size)
	base := pc + 4
	for i := uint16(0); i < size; i++ {
		lo, err := r.u16(base + uint32(i)*2)
		if err != nil {
			return Instruction{}, err
		}
		hi, err := r.u16(base + uint32(i)*2 + 1)
		if err != nil {
			return Instruction{}, err
		}
		targets = append(targets, int32(uint32(lo)|uint32(hi)<<16))
	}

	return Instruction{
		PC:      pc,
		Opcode:  0x00,
		Name:    "packed-switch-payload",
		Format:  kInvalidFormat,
		Units:   uint16(4 + 2*size),
		Payload: &PackedSwitchPayload{FirstKey: firstKey, Targets: targets},
	}, nil
}

func decodeSparseSwitchPayload(r unitReader, pc uint32) (Instruction, error) {
	size, err := r.u16(pc + 1)
	if err != nil {
		return Instruction{}, err
	}

	keys := make([]int32, 0, size)
	keyBase := pc + 2
	for i := uint16(0); i < size; i++ {
		lo, err := r.u16(keyBase + uint32(i)*2)
		if err != nil {
			return Instruction{}, err
		}
		hi, err := r.u16(keyBase + uint32(i)*2 + 1)
		if err != nil {
			return Instruction{}, err
		}
		keys = append(keys, int32(uint32(lo)|uint32(hi)<<16))
	}

	targetBase := keyBase + uint32(size)*2
	targets := make([]int32, 0, size)
	for i := uint16(0); i < size; i++ {
		lo, err := r.u16(targetBase + uint32(i)*2)
		if err != nil {
			return Instruction{}, err
		}
		hi, err := r.u16(targetBase + uint32(i)*2 + 1)
		if err != nil {
			return Instruction{}, err
		}
		targets = append(targets, int32(uint32(lo)|uint32(hi)<<16))
	}

	return Instruction{
		PC:      pc,
		Opcode:  0x00,
		Name:    "sparse-switch-payload",
		Format:  kInvalidFormat,
		Units:   uint16(2 + 4*size),
		Payload: &SparseSwitchPayload{Keys: keys, Targets: targets},
	}, nil
}

func decodeFillArrayDataPayload(r unitReader, pc uint32) (Instruction, error) {
	elementWidth, err := r.u16(pc + 1)
	if err != nil {
		return Instruction{}, err
	}
	sizeLo, err := r.u16(pc + 2)
	if err != nil {
		return Instruction{}, err
	}
	sizeHi, err := r.u16(pc + 3)
	if err != nil {
		return Instruction{}, err
	}
	size := uint32(sizeLo) | uint32(sizeHi)<<16

	totalBytes := uint64(elementWidth) * uint64(size)
	dataUnits := (totalBytes + 1) / 2
	base := pc + 4

	// totalBytes is attacker-controlled (element_width * size, both read
	// straight off the wire); cap the allocation hint to what the
	// instruction stream actually has left so a bogus huge declaration
	// can't force a multi-gigabyte allocation before the per-unit bounds
	// check below ever runs.
	var availableUnits uint64
	if base < uint32(len(r.units)) {
		availableUnits = uint64(len(r.units)) - uint64(base)
	}
	allocHint := totalBytes
	if availableUnits*2 < allocHint {
		allocHint = availableUnits * 2
	}
	data := make([]byte, 0, allocHint)
	var consumed uint64
	for i := uint64(0); i < dataUnits && consumed < totalBytes; i++ {
		v, err := r.u16(base + uint32(i))
		if err != nil {
			return Instruction{}, err
		}
		data = append(data, byte(v&0xff))
		consumed++
		if consumed < totalBytes {
			data = append(data, byte(v>>8))
			consumed++
		}
	}

	return Instruction{
		PC:      pc,
		Opcode:  0x00,
		Name:    "fill-array-data-payload",
		Format:  kInvalidFormat,
		Units:   uint16(4 + dataUnits),
		Payload: &FillArrayDataPayload{ElementWidth: elementWidth, Data: data},
	}, nil
}
