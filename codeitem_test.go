// Copyright 2026 The dexray Authors. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package dex

import (
	"encoding/binary"
	"errors"
	"testing"
)

func buildCodeItemHeader(registersSize, insSize, outsSize, triesSize uint16, debugInfoOff, insnsSize uint32) []byte {
	buf := make([]byte, 16)
	binary.LittleEndian.PutUint16(buf[0:], registersSize)
	binary.LittleEndian.PutUint16(buf[2:], insSize)
	binary.LittleEndian.PutUint16(buf[4:], outsSize)
	binary.LittleEndian.PutUint16(buf[6:], triesSize)
	binary.LittleEndian.PutUint32(buf[8:], debugInfoOff)
	binary.LittleEndian.PutUint32(buf[12:], insnsSize)
	return buf
}

func TestCodeItemDecode(t *testing.T) {
	header := buildCodeItemHeader(2, 0, 0, 0, 0, 2)
	data := append(header, 0x0e, 0x00, 0x00, 0x00) // return-void, nop padding
	f := &File{cursor: newCursor(data)}

	ci, err := f.CodeItem(0)
	if err != nil {
		t.Fatalf("CodeItem failed: %v", err)
	}
	if ci.RegistersSize != 2 {
		t.Errorf("RegistersSize = %d, want 2", ci.RegistersSize)
	}
	insns := ci.Insns()
	if len(insns) == 0 || insns[0].Name != "return-void" {
		t.Errorf("Insns()[0] = %+v, want return-void", insns)
	}
}

// A declared insns_size that claims far more code units than remain in
// the image must fail cleanly, not panic: it exercises both the
// insns_size*2 overflow-near-2^32 case and the ordinary
// too-big-for-the-image case.
func TestCodeItemInsnsSizeExceedsImageFails(t *testing.T) {
	header := buildCodeItemHeader(1, 0, 0, 0, 0, 0xfffffff0)
	f := &File{cursor: newCursor(header)}

	_, err := f.CodeItem(0)
	if !errors.Is(err, ErrMalformedCodeItem) {
		t.Errorf("CodeItem with oversized insns_size: got %v, want ErrMalformedCodeItem", err)
	}
}

func TestCodeItemInsnsSizeNearUint32OverflowFails(t *testing.T) {
	// insns_size * 2 overflows uint32 back to a small number; the fix
	// must catch this in 64-bit arithmetic before trusting it.
	header := buildCodeItemHeader(1, 0, 0, 0, 0, 0x80000001)
	f := &File{cursor: newCursor(header)}

	_, err := f.CodeItem(0)
	if !errors.Is(err, ErrMalformedCodeItem) {
		t.Errorf("CodeItem with overflowing insns_size: got %v, want ErrMalformedCodeItem", err)
	}
}
