// Copyright 2026 The dexray Authors. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package dex

import "testing"

func TestGetVerifyFlagsOf(t *testing.T) {
	tests := []struct {
		name string
		op   byte
		want VerifyFlags
	}{
		{"const-string", 0x1a, VerifyRegA | VerifyRegBString},
		{"invoke-virtual", 0x6e, VerifyVarArg | VerifyRegBMethod},
		{"goto", 0x28, VerifyBranchTarget},
		{"new-instance", 0x22, VerifyRegA | VerifyRegBType | VerifyRegBNewInstance},
		{"nop", 0x00, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := GetVerifyFlagsOf(tt.op)
			if got != tt.want {
				t.Errorf("GetVerifyFlagsOf(0x%02x) = %v, want %v", tt.op, got, tt.want)
			}
		})
	}
}

func TestGetVerifyFlagsOfUnusedOpcode(t *testing.T) {
	if got := GetVerifyFlagsOf(0x73); got != 0 {
		t.Errorf("GetVerifyFlagsOf(0x73) = %v, want 0 for an unused opcode", got)
	}
}

func TestVerifyFlagsString(t *testing.T) {
	v := VerifyRegA | VerifyRegBString
	got := v.String()
	if got != "reg-a|reg-b-string" {
		t.Errorf("String() = %q, want %q", got, "reg-a|reg-b-string")
	}
}

func TestDecodeAtSetsVerifyFlags(t *testing.T) {
	units := []uint16{0x001a, 0x0005} // const-string v0, string@5
	in, err := decodeAt(unitReader{units: units}, 0)
	if err != nil {
		t.Fatalf("decodeAt failed: %v", err)
	}
	want := VerifyRegA | VerifyRegBString
	if in.VerifyFlags != want {
		t.Errorf("VerifyFlags = %v, want %v", in.VerifyFlags, want)
	}
}
