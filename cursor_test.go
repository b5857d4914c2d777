// Copyright 2026 The dexray Authors. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package dex

import (
	"errors"
	"testing"
)

func TestCursorULEB128(t *testing.T) {
	tests := []struct {
		in  []byte
		out uint32
	}{
		{[]byte{0x00}, 0},
		{[]byte{0x7f}, 0x7f},
		{[]byte{0x80, 0x01}, 0x80},
		{[]byte{0xff, 0xff, 0xff, 0xff, 0x0f}, 0xffffffff},
	}
	for _, tt := range tests {
		c := newCursor(tt.in)
		v, _, err := c.uleb128(0)
		if err != nil {
			t.Fatalf("uleb128(%v) failed: %v", tt.in, err)
		}
		if v != tt.out {
			t.Errorf("uleb128(%v) = %d, want %d", tt.in, v, tt.out)
		}
	}
}

func TestCursorULEB128Overflow(t *testing.T) {
	c := newCursor([]byte{0x80, 0x80, 0x80, 0x80, 0x80, 0x01})
	_, _, err := c.uleb128(0)
	if !errors.Is(err, ErrOverflow) {
		t.Errorf("uleb128 overlong encoding: got %v, want ErrOverflow", err)
	}
}

func TestCursorSLEB128Negative(t *testing.T) {
	c := newCursor(sleb128Encode(-2))
	v, _, err := c.sleb128(0)
	if err != nil {
		t.Fatalf("sleb128 failed: %v", err)
	}
	if v != -2 {
		t.Errorf("sleb128 = %d, want -2", v)
	}
}

func TestCursorMutf8String(t *testing.T) {
	raw := mutf8Encode("HelloWorld")
	c := newCursor(raw)
	text, _, next, err := c.mutf8String(0)
	if err != nil {
		t.Fatalf("mutf8String failed: %v", err)
	}
	if text != "HelloWorld" {
		t.Errorf("mutf8String = %q, want HelloWorld", text)
	}
	if next != uint32(len(raw)) {
		t.Errorf("next = %d, want %d", next, len(raw))
	}
}

func TestCursorOutOfBounds(t *testing.T) {
	c := newCursor([]byte{0x01, 0x02})
	_, err := c.u32(0)
	if !errors.Is(err, ErrOutOfBounds) {
		t.Errorf("u32 past end: got %v, want ErrOutOfBounds", err)
	}
}

func TestCursorCapHintBoundsAgainstRemainingImage(t *testing.T) {
	c := newCursor(make([]byte, 16))
	// A declared count that would need far more bytes than remain from
	// off must be capped down to what actually fits, never handed
	// through as a multi-gigabyte allocation hint.
	if got := c.capHint(0, 0xffffffff, 4); got != 4 {
		t.Errorf("capHint = %d, want 4 (16 bytes / 4-byte elements)", got)
	}
	// A count that already fits should pass through unchanged.
	if got := c.capHint(0, 2, 4); got != 2 {
		t.Errorf("capHint = %d, want 2", got)
	}
	// An off already past the end of the image must not underflow.
	if got := c.capHint(100, 5, 1); got != 0 {
		t.Errorf("capHint with off past end = %d, want 0", got)
	}
}
