// Copyright 2026 The dexray Authors. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package dex

import "testing"

func TestDecodePackedSwitchPayload(t *testing.T) {
	// ident, size=3, first_key (lo,hi), 3 targets.
	units := []uint16{
		identPackedSwitchPayload,
		3,
		0x0000, 0x0000, // first_key = 0
		0x0010, 0x0000, // target 0
		0x0020, 0x0000, // target 1
		0x0030, 0x0000, // target 2
	}
	in, err := decodeAt(unitReader{units: units}, 0)
	if err != nil {
		t.Fatalf("decodeAt failed: %v", err)
	}
	if in.Units != 4+2*3 {
		t.Errorf("Units = %d, want %d", in.Units, 4+2*3)
	}
	p, ok := in.Payload.(*PackedSwitchPayload)
	if !ok {
		t.Fatalf("Payload is %T, want *PackedSwitchPayload", in.Payload)
	}
	if len(p.Targets) != 3 {
		t.Errorf("len(Targets) = %d, want 3", len(p.Targets))
	}
	if p.Targets[1] != 0x20 {
		t.Errorf("Targets[1] = %d, want 0x20", p.Targets[1])
	}
}

func TestDecodeFillArrayDataPayload(t *testing.T) {
	// element_width=2, size=6 -> 12 bytes of data -> ceil(12/2)=6 units.
	units := []uint16{
		identFillArrayDataPayload,
		2,
		6, 0,
		0x0001, 0x0002, 0x0003, 0x0004, 0x0005, 0x0006,
	}
	in, err := decodeAt(unitReader{units: units}, 0)
	if err != nil {
		t.Fatalf("decodeAt failed: %v", err)
	}
	if in.Units != 4+6 {
		t.Errorf("Units = %d, want %d", in.Units, 4+6)
	}
	p, ok := in.Payload.(*FillArrayDataPayload)
	if !ok {
		t.Fatalf("Payload is %T, want *FillArrayDataPayload", in.Payload)
	}
	if len(p.Data) != 12 {
		t.Errorf("len(Data) = %d, want 12", len(p.Data))
	}
}

func TestDecodeConst4(t *testing.T) {
	// const/4 v0, #5: opcode 0x12, A=0 (reg), B=5 (literal nibble).
	units := []uint16{0x5012}
	in, err := decodeAt(unitReader{units: units}, 0)
	if err != nil {
		t.Fatalf("decodeAt failed: %v", err)
	}
	if in.Name != "const/4" {
		t.Errorf("Name = %q, want const/4", in.Name)
	}
	if in.Literal != 5 {
		t.Errorf("Literal = %d, want 5", in.Literal)
	}
	if in.Units != 1 {
		t.Errorf("Units = %d, want 1", in.Units)
	}
}

func TestDecodeReturnVoid(t *testing.T) {
	units := []uint16{0x000e}
	in, err := decodeAt(unitReader{units: units}, 0)
	if err != nil {
		t.Fatalf("decodeAt failed: %v", err)
	}
	if in.Name != "return-void" {
		t.Errorf("Name = %q, want return-void", in.Name)
	}
}

func TestDecodeInvalidOpcode(t *testing.T) {
	// 0x73 is unused by the ISA.
	units := []uint16{0x0073}
	_, err := decodeAt(unitReader{units: units}, 0)
	if err == nil {
		t.Errorf("expected ErrBadOpcode for unused opcode 0x73, got nil")
	}
}
