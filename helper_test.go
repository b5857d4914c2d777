// Copyright 2026 The dexray Authors. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package dex

import "testing"

func TestAccessFlagsString(t *testing.T) {
	tests := []struct {
		in  uint32
		out string
	}{
		{AccPublic | AccStatic | AccFinal, "public static final"},
		{AccPrivate, "private"},
		{0, ""},
		{AccInterface | AccAbstract, "interface abstract"},
	}

	for _, tt := range tests {
		if got := AccessFlagsString(tt.in); got != tt.out {
			t.Errorf("AccessFlagsString(0x%x) = %q, want %q", tt.in, got, tt.out)
		}
	}
}

func TestIsBitSet(t *testing.T) {
	if !IsBitSet(0x4, 2) {
		t.Errorf("IsBitSet(0x4, 2) = false, want true")
	}
	if IsBitSet(0x4, 1) {
		t.Errorf("IsBitSet(0x4, 1) = true, want false")
	}
}
