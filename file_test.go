// Copyright 2026 The dexray Authors. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package dex

import (
	"errors"
	"testing"
)

func TestOpenBytesHelloWorld(t *testing.T) {
	b := newDexBuilder()
	helloIdx := b.addString("Hello, World")
	typeIdx := b.addType("LHelloWorld;")
	_ = helloIdx
	_ = typeIdx
	data := b.build()

	f, err := OpenBytes(data, &Options{VerifyPreset: VerifyPresetAll})
	if err != nil {
		t.Fatalf("OpenBytes failed: %v", err)
	}
	defer f.Close()

	h := f.Header()
	if h.Version() != "035" {
		t.Errorf("Version() = %q, want 035", h.Version())
	}
	if h.StringIDsSize != 2 {
		t.Errorf("StringIDsSize = %d, want 2", h.StringIDsSize)
	}

	s, err := f.StringByIndex(0)
	if err != nil {
		t.Fatalf("StringByIndex(0) failed: %v", err)
	}
	if s != "Hello, World" {
		t.Errorf("StringByIndex(0) = %q, want %q", s, "Hello, World")
	}

	ty, err := f.TypeByIndex(0)
	if err != nil {
		t.Fatalf("TypeByIndex(0) failed: %v", err)
	}
	if ty != "LHelloWorld;" {
		t.Errorf("TypeByIndex(0) = %q, want LHelloWorld;", ty)
	}
}

func TestOpenBytesBadMagic(t *testing.T) {
	data := newDexBuilder().build()
	data[0] = 'c' // "cex\n..." instead of "dex\n..."

	_, err := OpenBytes(data, &Options{})
	if !errors.Is(err, ErrBadMagic) {
		t.Errorf("OpenBytes with bad magic: got %v, want ErrBadMagic", err)
	}
}

func TestOpenBytesBadVersion(t *testing.T) {
	data := newDexBuilder().build()
	copy(data[4:7], "099")

	_, err := OpenBytes(data, &Options{})
	if !errors.Is(err, ErrBadVersion) {
		t.Errorf("OpenBytes with bad version: got %v, want ErrBadVersion", err)
	}
}

func TestOpenBytesVerifyPresetNoneSkipsChecksum(t *testing.T) {
	data := newDexBuilder().build()
	data[8] ^= 0xff // corrupt checksum

	if _, err := OpenBytes(data, &Options{VerifyPreset: VerifyPresetNone}); err != nil {
		t.Errorf("VerifyPresetNone should ignore a bad checksum, got %v", err)
	}

	_, err := OpenBytes(data, &Options{VerifyPreset: VerifyPresetChecksumOnly})
	if !errors.Is(err, ErrBadChecksum) {
		t.Errorf("VerifyPresetChecksumOnly with corrupted checksum: got %v, want ErrBadChecksum", err)
	}
}

func TestOpenBytesTruncatedFails(t *testing.T) {
	data := newDexBuilder().build()
	_, err := OpenBytes(data[:HeaderSize-1], &Options{})
	if err == nil {
		t.Errorf("expected an error opening a truncated image, got nil")
	}
}
