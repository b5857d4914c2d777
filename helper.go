// Copyright 2026 The dexray Authors. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package dex

import (
	"math"
	"strings"
)

// float32FromBits reinterprets a 32-bit pattern as an IEEE 754 float32.
func float32FromBits(bits uint32) float32 {
	return math.Float32frombits(bits)
}

// float64FromBits reinterprets a 64-bit pattern as an IEEE 754 float64.
func float64FromBits(bits uint64) float64 {
	return math.Float64frombits(bits)
}

// IsBitSet reports whether bit i is set in flags.
func IsBitSet(flags uint32, i uint) bool {
	return flags&(1<<i) != 0
}

// accessFlagNames pairs each access flag bit with its source name, in
// the canonical order dex tools print them.
var accessFlagNames = []struct {
	flag uint32
	name string
}{
	{AccPublic, "public"},
	{AccPrivate, "private"},
	{AccProtected, "protected"},
	{AccStatic, "static"},
	{AccFinal, "final"},
	{AccSynchronized, "synchronized"},
	{AccVolatile, "volatile"},
	{AccTransient, "transient"},
	{AccNative, "native"},
	{AccInterface, "interface"},
	{AccAbstract, "abstract"},
	{AccStrict, "strictfp"},
	{AccSynthetic, "synthetic"},
	{AccAnnotation, "annotation"},
	{AccEnum, "enum"},
	{AccConstructor, "constructor"},
	{AccDeclaredSynchronize, "declared-synchronized"},
}

// AccessFlagsString renders access_flags as a space-separated list of
// modifier names, in the order the DEX spec's ACC_* table lists them.
// Bits with no assigned name are ignored.
func AccessFlagsString(flags uint32) string {
	var b strings.Builder
	for _, af := range accessFlagNames {
		if flags&af.flag == af.flag {
			if b.Len() > 0 {
				b.WriteByte(' ')
			}
			b.WriteString(af.name)
		}
	}
	return b.String()
}
