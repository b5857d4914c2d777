// Copyright 2026 The dexray Authors. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package dex

import (
	"errors"
	"testing"
)

func buildClassData(staticFields, instanceFields, directMethods, virtualMethods [][]uint32) []byte {
	var buf []byte
	buf = append(buf, uleb128Encode(uint32(len(staticFields)))...)
	buf = append(buf, uleb128Encode(uint32(len(instanceFields)))...)
	buf = append(buf, uleb128Encode(uint32(len(directMethods)))...)
	buf = append(buf, uleb128Encode(uint32(len(virtualMethods)))...)

	for _, f := range staticFields {
		buf = append(buf, uleb128Encode(f[0])...) // field_idx_diff
		buf = append(buf, uleb128Encode(f[1])...) // access_flags
	}
	for _, f := range instanceFields {
		buf = append(buf, uleb128Encode(f[0])...)
		buf = append(buf, uleb128Encode(f[1])...)
	}
	for _, m := range directMethods {
		buf = append(buf, uleb128Encode(m[0])...) // method_idx_diff
		buf = append(buf, uleb128Encode(m[1])...) // access_flags
		buf = append(buf, uleb128Encode(m[2])...) // code_off
	}
	for _, m := range virtualMethods {
		buf = append(buf, uleb128Encode(m[0])...)
		buf = append(buf, uleb128Encode(m[1])...)
		buf = append(buf, uleb128Encode(m[2])...)
	}
	return buf
}

func TestClassDataDecode(t *testing.T) {
	raw := buildClassData(
		nil,
		nil,
		[][]uint32{{1, AccPrivate, 0}, {2, AccPublic, 0x100}},
		nil,
	)
	data := make([]byte, len(raw)+8)
	copy(data[8:], raw)

	f := &File{cursor: newCursor(data)}
	cd, err := f.ClassData(8)
	if err != nil {
		t.Fatalf("ClassData failed: %v", err)
	}
	if len(cd.DirectMethods) != 2 {
		t.Fatalf("len(DirectMethods) = %d, want 2", len(cd.DirectMethods))
	}
	if cd.DirectMethods[0].MethodIdx != 1 || cd.DirectMethods[1].MethodIdx != 3 {
		t.Errorf("method indices = %v, want [1 3]", cd.DirectMethods)
	}
}

func TestClassDataMalformedNonIncreasing(t *testing.T) {
	raw := buildClassData(
		[][]uint32{{1, AccPublic}, {0, AccPrivate}}, // second diff 0: non-increasing
		nil, nil, nil,
	)
	data := make([]byte, len(raw))
	copy(data, raw)

	f := &File{cursor: newCursor(data)}
	_, err := f.ClassData(0)
	if !errors.Is(err, ErrMalformedClassData) {
		t.Errorf("ClassData with duplicate field_idx: got %v, want ErrMalformedClassData", err)
	}
}

func TestClassDataNativeMethodWithCodeAnomaly(t *testing.T) {
	raw := buildClassData(nil, nil, [][]uint32{{1, AccNative, 0x40}}, nil)
	data := make([]byte, len(raw))
	copy(data, raw)

	f := &File{cursor: newCursor(data)}
	_, err := f.ClassData(0)
	if err != nil {
		t.Fatalf("ClassData failed: %v", err)
	}
	if len(f.Anomalies) != 1 || f.Anomalies[0] != AnoNativeMethodHasCode {
		t.Errorf("Anomalies = %v, want [%s]", f.Anomalies, AnoNativeMethodHasCode)
	}
}
