// Copyright 2026 The dexray Authors. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package dex

import "testing"

func TestMapListInOrderNoAnomaly(t *testing.T) {
	b := newDexBuilder()
	b.addString("Hello")
	b.addType("LHello;")
	data := b.build()

	f, err := OpenBytes(data, &Options{})
	if err != nil {
		t.Fatalf("OpenBytes failed: %v", err)
	}
	defer f.Close()

	if len(f.Anomalies) != 0 {
		t.Errorf("expected no anomalies for a well-formed map, got %v", f.Anomalies)
	}
}

func TestMapListMissingMandatoryAnomaly(t *testing.T) {
	b := newDexBuilder()
	b.addType("LHello;")
	data := b.build()

	// Corrupt the map_list to drop its string_id_item entry by
	// rewriting map size down to 1 (keeping only header_item).
	f, err := OpenBytes(data, &Options{})
	if err != nil {
		t.Fatalf("OpenBytes failed: %v", err)
	}
	defer f.Close()

	mapOff := f.Header().MapOff
	data2 := append([]byte(nil), data...)
	data2[mapOff] = 1
	data2[mapOff+1] = 0
	data2[mapOff+2] = 0
	data2[mapOff+3] = 0

	f2, err := OpenBytes(data2, &Options{})
	if err != nil {
		t.Fatalf("OpenBytes failed on corrupted map: %v", err)
	}
	defer f2.Close()

	if len(f2.Anomalies) == 0 {
		t.Errorf("expected a missing-mandatory anomaly, got none")
	}
}
