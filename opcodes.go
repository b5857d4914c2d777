// Copyright 2026 The dexray Authors. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package dex

// Format identifies the instruction-unit layout of a Dalvik opcode: how
// many 16-bit code units it occupies and how its operands are packed
// into them (spec §4.5).
type Format byte

// Instruction formats, named after the Dalvik bytecode specification's
// own kFmt identifiers.
const (
	kInvalidFormat Format = iota
	k10x
	k12x
	k11n
	k11x
	k10t
	k20t
	k22x
	k21t
	k21s
	k21h
	k21c
	k23x
	k22b
	k22t
	k22s
	k22c
	k30t
	k32x
	k31i
	k31c
	k31t
	k35c
	k3rc
	k45cc
	k4rcc
	k51l
)

// IndexKind identifies what kind of constant pool a format's index
// operand(s) refer into.
type IndexKind byte

// Index kinds.
const (
	IndexNone IndexKind = iota
	IndexStringRef
	IndexTypeRef
	IndexFieldRef
	IndexMethodRef
	IndexMethodAndProtoRef
	IndexCallSiteRef
	IndexMethodHandleRef
	IndexProtoRef
)

// VerifyFlags is a bitmask describing what a verifier must check about
// an instruction's operands before it is safe to interpret: which
// register slots are in play, what kind of constant pool (if any) its
// index operand resolves into, and whether it carries a branch target
// or variable-length argument list (spec §4.5).
type VerifyFlags uint32

// Verify flag bits, named after the checks they gate rather than the
// opcode they appear on.
const (
	VerifyRegA VerifyFlags = 1 << iota
	VerifyRegB
	VerifyRegC
	VerifyRegAWide
	VerifyRegBField
	VerifyRegBMethod
	VerifyRegBNewInstance
	VerifyRegBString
	VerifyRegBType
	VerifyRegCNewArray
	VerifyBranchTarget
	VerifyArrayData
	VerifySwitchTargets
	VerifyVarArg
	VerifyVarArgRange
)

var verifyFlagNames = []struct {
	flag VerifyFlags
	name string
}{
	{VerifyRegA, "reg-a"},
	{VerifyRegB, "reg-b"},
	{VerifyRegC, "reg-c"},
	{VerifyRegAWide, "reg-a-wide"},
	{VerifyRegBField, "reg-b-field"},
	{VerifyRegBMethod, "reg-b-method"},
	{VerifyRegBNewInstance, "reg-b-new-instance"},
	{VerifyRegBString, "reg-b-string"},
	{VerifyRegBType, "reg-b-type"},
	{VerifyRegCNewArray, "reg-c-new-array"},
	{VerifyBranchTarget, "branch-target"},
	{VerifyArrayData, "array-data"},
	{VerifySwitchTargets, "switch-targets"},
	{VerifyVarArg, "var-arg"},
	{VerifyVarArgRange, "var-arg-range"},
}

// String renders a VerifyFlags value as a "|"-joined list of the checks
// it requires, e.g. "reg-a|reg-b-string".
func (v VerifyFlags) String() string {
	var out string
	for _, vf := range verifyFlagNames {
		if v&vf.flag == vf.flag {
			if out != "" {
				out += "|"
			}
			out += vf.name
		}
	}
	return out
}

type opcodeInfo struct {
	name        string
	format      Format
	indexKind   IndexKind
	verifyFlags VerifyFlags
}

// opcodeTable maps every defined Dalvik opcode byte to its name, unit
// format, index kind, and verify flags. Opcodes absent from this map
// are unused by the ISA and decode as kInvalidFormat (spec §4.5,
// ErrBadOpcode).
var opcodeTable = buildOpcodeTable()

// deriveVerifyFlags computes the verify flags implied by an opcode's
// unit format and index kind: the format determines which register
// slots and control-flow operands are present, the index kind
// determines what constant pool (if any) the index operand resolves
// into.
func deriveVerifyFlags(f Format, ik IndexKind, name string) VerifyFlags {
	var v VerifyFlags
	switch f {
	case k10x:
	case k12x, k11n, k11x:
		v |= VerifyRegA
	case k10t, k20t, k30t:
		v |= VerifyBranchTarget
	case k22x, k32x:
		v |= VerifyRegA | VerifyRegB
	case k21t:
		v |= VerifyRegA | VerifyBranchTarget
	case k21s, k21h, k21c, k31i, k31c:
		v |= VerifyRegA
	case k23x, k22b, k22s, k22c:
		v |= VerifyRegA | VerifyRegB
		if f == k23x {
			v |= VerifyRegC
		}
	case k22t:
		v |= VerifyRegA | VerifyRegB | VerifyBranchTarget
	case k31t:
		v |= VerifyRegA | VerifyArrayData | VerifySwitchTargets
	case k35c, k45cc:
		v |= VerifyVarArg
	case k3rc, k4rcc:
		v |= VerifyVarArgRange
	case k51l:
		v |= VerifyRegA | VerifyRegAWide
	}

	switch ik {
	case IndexStringRef:
		v |= VerifyRegBString
	case IndexTypeRef:
		v |= VerifyRegBType
	case IndexFieldRef:
		v |= VerifyRegBField
	case IndexMethodRef, IndexMethodAndProtoRef, IndexCallSiteRef, IndexMethodHandleRef, IndexProtoRef:
		v |= VerifyRegBMethod
	}

	switch name {
	case "new-instance":
		v |= VerifyRegBNewInstance
	case "new-array", "filled-new-array", "filled-new-array/range":
		v |= VerifyRegCNewArray
	}

	return v
}

func buildOpcodeTable() map[byte]opcodeInfo {
	t := make(map[byte]opcodeInfo, 256)
	add := func(op byte, name string, f Format, ik IndexKind) {
		t[op] = opcodeInfo{name: name, format: f, indexKind: ik, verifyFlags: deriveVerifyFlags(f, ik, name)}
	}
	addRange := func(start, end byte, names []string, f Format, ik IndexKind) {
		for i, n := range names {
			t[start+byte(i)] = opcodeInfo{name: n, format: f, indexKind: ik, verifyFlags: deriveVerifyFlags(f, ik, n)}
			_ = end
		}
	}

	add(0x00, "nop", k10x, IndexNone)
	add(0x01, "move", k12x, IndexNone)
	add(0x02, "move/from16", k22x, IndexNone)
	add(0x03, "move/16", k32x, IndexNone)
	add(0x04, "move-wide", k12x, IndexNone)
	add(0x05, "move-wide/from16", k22x, IndexNone)
	add(0x06, "move-wide/16", k32x, IndexNone)
	add(0x07, "move-object", k12x, IndexNone)
	add(0x08, "move-object/from16", k22x, IndexNone)
	add(0x09, "move-object/16", k32x, IndexNone)
	add(0x0a, "move-result", k11x, IndexNone)
	add(0x0b, "move-result-wide", k11x, IndexNone)
	add(0x0c, "move-result-object", k11x, IndexNone)
	add(0x0d, "move-exception", k11x, IndexNone)
	add(0x0e, "return-void", k10x, IndexNone)
	add(0x0f, "return", k11x, IndexNone)
	add(0x10, "return-wide", k11x, IndexNone)
	add(0x11, "return-object", k11x, IndexNone)
	add(0x12, "const/4", k11n, IndexNone)
	add(0x13, "const/16", k21s, IndexNone)
	add(0x14, "const", k31i, IndexNone)
	add(0x15, "const/high16", k21h, IndexNone)
	add(0x16, "const-wide/16", k21s, IndexNone)
	add(0x17, "const-wide/32", k31i, IndexNone)
	add(0x18, "const-wide", k51l, IndexNone)
	add(0x19, "const-wide/high16", k21h, IndexNone)
	add(0x1a, "const-string", k21c, IndexStringRef)
	add(0x1b, "const-string/jumbo", k31c, IndexStringRef)
	add(0x1c, "const-class", k21c, IndexTypeRef)
	add(0x1d, "monitor-enter", k11x, IndexNone)
	add(0x1e, "monitor-exit", k11x, IndexNone)
	add(0x1f, "check-cast", k21c, IndexTypeRef)
	add(0x20, "instance-of", k22c, IndexTypeRef)
	add(0x21, "array-length", k12x, IndexNone)
	add(0x22, "new-instance", k21c, IndexTypeRef)
	add(0x23, "new-array", k22c, IndexTypeRef)
	add(0x24, "filled-new-array", k35c, IndexTypeRef)
	add(0x25, "filled-new-array/range", k3rc, IndexTypeRef)
	add(0x26, "fill-array-data", k31t, IndexNone)
	add(0x27, "throw", k11x, IndexNone)
	add(0x28, "goto", k10t, IndexNone)
	add(0x29, "goto/16", k20t, IndexNone)
	add(0x2a, "goto/32", k30t, IndexNone)
	add(0x2b, "packed-switch", k31t, IndexNone)
	add(0x2c, "sparse-switch", k31t, IndexNone)

	addRange(0x2d, 0x31, []string{
		"cmpl-float", "cmpg-float", "cmpl-double", "cmpg-double", "cmp-long",
	}, k23x, IndexNone)

	addRange(0x32, 0x37, []string{
		"if-eq", "if-ne", "if-lt", "if-ge", "if-gt", "if-le",
	}, k22t, IndexNone)

	addRange(0x38, 0x3d, []string{
		"if-eqz", "if-nez", "if-ltz", "if-gez", "if-gtz", "if-lez",
	}, k21t, IndexNone)

	addRange(0x44, 0x51, []string{
		"aget", "aget-wide", "aget-object", "aget-boolean", "aget-byte", "aget-char", "aget-short",
		"aput", "aput-wide", "aput-object", "aput-boolean", "aput-byte", "aput-char", "aput-short",
	}, k23x, IndexNone)

	addRange(0x52, 0x5f, []string{
		"iget", "iget-wide", "iget-object", "iget-boolean", "iget-byte", "iget-char", "iget-short",
		"iput", "iput-wide", "iput-object", "iput-boolean", "iput-byte", "iput-char", "iput-short",
	}, k22c, IndexFieldRef)

	addRange(0x60, 0x6d, []string{
		"sget", "sget-wide", "sget-object", "sget-boolean", "sget-byte", "sget-char", "sget-short",
		"sput", "sput-wide", "sput-object", "sput-boolean", "sput-byte", "sput-char", "sput-short",
	}, k21c, IndexFieldRef)

	addRange(0x6e, 0x72, []string{
		"invoke-virtual", "invoke-super", "invoke-direct", "invoke-static", "invoke-interface",
	}, k35c, IndexMethodRef)

	addRange(0x74, 0x78, []string{
		"invoke-virtual/range", "invoke-super/range", "invoke-direct/range", "invoke-static/range", "invoke-interface/range",
	}, k3rc, IndexMethodRef)

	addRange(0x7b, 0x8f, []string{
		"neg-int", "not-int", "neg-long", "not-long", "neg-float", "neg-double",
		"int-to-long", "int-to-float", "int-to-double",
		"long-to-int", "long-to-float", "long-to-double",
		"float-to-int", "float-to-long", "float-to-double",
		"double-to-int", "double-to-long", "double-to-float",
		"int-to-byte", "int-to-char", "int-to-short",
	}, k12x, IndexNone)

	addRange(0x90, 0xaf, []string{
		"add-int", "sub-int", "mul-int", "div-int", "rem-int", "and-int", "or-int", "xor-int", "shl-int", "shr-int", "ushr-int",
		"add-long", "sub-long", "mul-long", "div-long", "rem-long", "and-long", "or-long", "xor-long", "shl-long", "shr-long", "ushr-long",
		"add-float", "sub-float", "mul-float", "div-float", "rem-float",
		"add-double", "sub-double", "mul-double", "div-double", "rem-double",
	}, k23x, IndexNone)

	addRange(0xb0, 0xcf, []string{
		"add-int/2addr", "sub-int/2addr", "mul-int/2addr", "div-int/2addr", "rem-int/2addr",
		"and-int/2addr", "or-int/2addr", "xor-int/2addr", "shl-int/2addr", "shr-int/2addr", "ushr-int/2addr",
		"add-long/2addr", "sub-long/2addr", "mul-long/2addr", "div-long/2addr", "rem-long/2addr",
		"and-long/2addr", "or-long/2addr", "xor-long/2addr", "shl-long/2addr", "shr-long/2addr", "ushr-long/2addr",
		"add-float/2addr", "sub-float/2addr", "mul-float/2addr", "div-float/2addr", "rem-float/2addr",
		"add-double/2addr", "sub-double/2addr", "mul-double/2addr", "div-double/2addr", "rem-double/2addr",
	}, k12x, IndexNone)

	addRange(0xd0, 0xd7, []string{
		"add-int/lit16", "rsub-int", "mul-int/lit16", "div-int/lit16", "rem-int/lit16", "and-int/lit16", "or-int/lit16", "xor-int/lit16",
	}, k22s, IndexNone)

	addRange(0xd8, 0xe2, []string{
		"add-int/lit8", "rsub-int/lit8", "mul-int/lit8", "div-int/lit8", "rem-int/lit8",
		"and-int/lit8", "or-int/lit8", "xor-int/lit8", "shl-int/lit8", "shr-int/lit8", "ushr-int/lit8",
	}, k22b, IndexNone)

	add(0xfa, "invoke-polymorphic", k45cc, IndexMethodAndProtoRef)
	add(0xfb, "invoke-polymorphic/range", k4rcc, IndexMethodAndProtoRef)
	add(0xfc, "invoke-custom", k35c, IndexCallSiteRef)
	add(0xfd, "invoke-custom/range", k3rc, IndexCallSiteRef)
	add(0xfe, "const-method-handle", k21c, IndexMethodHandleRef)
	add(0xff, "const-method-type", k21c, IndexProtoRef)

	return t
}

// GetNameOf returns the mnemonic of an opcode, or "" if it is unused by
// the ISA.
func GetNameOf(op byte) string {
	info, ok := opcodeTable[op]
	if !ok {
		return ""
	}
	return info.name
}

// GetFormatOf returns the unit layout of an opcode, or kInvalidFormat
// if it is unused by the ISA.
func GetFormatOf(op byte) Format {
	info, ok := opcodeTable[op]
	if !ok {
		return kInvalidFormat
	}
	return info.format
}

// GetIndexTypeOf returns the constant-pool kind an opcode's index
// operand refers into, or IndexNone if it has none.
func GetIndexTypeOf(op byte) IndexKind {
	info, ok := opcodeTable[op]
	if !ok {
		return IndexNone
	}
	return info.indexKind
}

// GetVerifyFlagsOf returns the verify flags of an opcode, or 0 if it is
// unused by the ISA.
func GetVerifyFlagsOf(op byte) VerifyFlags {
	info, ok := opcodeTable[op]
	if !ok {
		return 0
	}
	return info.verifyFlags
}

// payload pseudo-opcode idents: a payload's first code unit has the
// 0x00 ("nop") opcode byte with a non-zero high byte, and the whole unit
// equals one of these values (spec §4.5 step 7).
const (
	identPackedSwitchPayload  = 0x0100
	identSparseSwitchPayload  = 0x0200
	identFillArrayDataPayload = 0x0300
)
