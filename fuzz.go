// Copyright 2026 The dexray Authors. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package dex

// Fuzz is the standard go-fuzz entrypoint (spec §8 "fuzz property"):
// OpenBytes followed by a full walk of the accessors and instruction
// decoder must never panic, only ever return a File or an error.
func Fuzz(data []byte) int {
	f, err := OpenBytes(data, &Options{VerifyPreset: VerifyPresetAll})
	if err != nil {
		return 0
	}
	defer f.Close()

	walkFile(f)
	return 1
}

// walkFile exercises the ID-table accessors (strings, types, protos,
// fields, methods, class_defs), class_data, and the instruction decoder
// of every method with code, so that fuzzing finds panics beyond
// header/map parsing. It does not visit annotations, encoded arrays,
// try/catch data, call sites or method handles. It does not recover: the property under test is
// that the accessors themselves never panic on malformed input, and
// swallowing a panic here would hide a violation instead of reporting it.
func walkFile(f *File) {
	h := f.Header()
	for i := uint32(0); i < h.StringIDsSize; i++ {
		s, _ := f.StringByIndex(i)
		_ = s
	}
	for i := uint32(0); i < h.TypeIDsSize; i++ {
		_, _ = f.TypeByIndex(i)
	}
	for i := uint32(0); i < h.ProtoIDsSize; i++ {
		_, _ = f.ProtoByIndex(i)
	}
	for i := uint32(0); i < h.FieldIDsSize; i++ {
		_, _ = f.FieldByIndex(i)
	}
	for i := uint32(0); i < h.MethodIDsSize; i++ {
		_, _ = f.MethodByIndex(i)
	}
	for i := uint32(0); i < h.ClassDefsSize; i++ {
		cd, err := f.ClassDefByIndex(i)
		if err != nil {
			continue
		}
		if cd.ClassDataOff == 0 {
			continue
		}
		cda, err := f.ClassData(cd.ClassDataOff)
		if err != nil {
			continue
		}
		for _, m := range cda.DirectMethods {
			if m.CodeOff == 0 {
				continue
			}
			code, err := f.CodeItem(m.CodeOff)
			if err != nil {
				continue
			}
			for range code.Insns() {
			}
		}
		for _, m := range cda.VirtualMethods {
			if m.CodeOff == 0 {
				continue
			}
			code, err := f.CodeItem(m.CodeOff)
			if err != nil {
				continue
			}
			for range code.Insns() {
			}
		}
	}
}
