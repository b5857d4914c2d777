// Copyright 2026 The dexray Authors. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package dex

import (
	"fmt"
	"strconv"
	"strings"
)

// ToString renders an instruction in a smali-like textual form,
// resolving its index operand (if any) through f's ID tables (spec
// §4.5's pretty-printer). It never fails: an unresolvable index is
// rendered as a raw numeric reference instead.
func ToString(f *File, in Instruction) string {
	if in.Payload != nil {
		return printPayload(in)
	}

	var b strings.Builder
	b.WriteString(in.Name)

	switch in.Format {
	case k10x:
		// no operands

	case k12x, k22x, k32x:
		fmt.Fprintf(&b, " v%d, v%d", in.A, in.B)

	case k11n, k21s, k21h, k31i, k51l:
		fmt.Fprintf(&b, " v%d, #%d", in.A, in.Literal)

	case k11x:
		fmt.Fprintf(&b, " v%d", in.A)

	case k10t, k20t, k30t:
		fmt.Fprintf(&b, " %+d", in.BranchOffset)

	case k21t:
		fmt.Fprintf(&b, " v%d, %+d", in.A, in.BranchOffset)

	case k22t:
		fmt.Fprintf(&b, " v%d, v%d, %+d", in.A, in.B, in.BranchOffset)

	case k23x:
		fmt.Fprintf(&b, " v%d, v%d, v%d", in.A, in.B, in.C)

	case k22b, k22s:
		fmt.Fprintf(&b, " v%d, v%d, #%d", in.A, in.B, in.Literal)

	case k21c:
		fmt.Fprintf(&b, " v%d, %s", in.A, resolveIndex(f, in.IndexKind, in.Index, 0))

	case k22c:
		fmt.Fprintf(&b, " v%d, v%d, %s", in.A, in.B, resolveIndex(f, in.IndexKind, in.Index, 0))

	case k31c:
		fmt.Fprintf(&b, " v%d, %s", in.A, resolveIndex(f, in.IndexKind, in.Index, 0))

	case k31t:
		fmt.Fprintf(&b, " v%d, %+d", in.A, in.BranchOffset)

	case k35c:
		b.WriteByte(' ')
		writeRegList(&b, in.Regs)
		fmt.Fprintf(&b, ", %s", resolveIndex(f, in.IndexKind, in.Index, 0))

	case k3rc:
		fmt.Fprintf(&b, " {v%d .. v%d}, %s", in.RegStart, in.RegStart+in.RegCount-1, resolveIndex(f, in.IndexKind, in.Index, 0))

	case k45cc:
		b.WriteByte(' ')
		writeRegList(&b, in.Regs)
		fmt.Fprintf(&b, ", %s", resolveIndex(f, in.IndexKind, in.Index, in.Index2))

	case k4rcc:
		fmt.Fprintf(&b, " {v%d .. v%d}, %s", in.RegStart, in.RegStart+in.RegCount-1, resolveIndex(f, in.IndexKind, in.Index, in.Index2))
	}

	return b.String()
}

func writeRegList(b *strings.Builder, regs []uint32) {
	b.WriteByte('{')
	for i, r := range regs {
		if i > 0 {
			b.WriteString(", ")
		}
		fmt.Fprintf(b, "v%d", r)
	}
	b.WriteByte('}')
}

func printPayload(in Instruction) string {
	switch p := in.Payload.(type) {
	case *PackedSwitchPayload:
		return fmt.Sprintf("packed-switch-payload first_key:%d targets:%d", p.FirstKey, len(p.Targets))
	case *SparseSwitchPayload:
		return fmt.Sprintf("sparse-switch-payload pairs:%d", len(p.Keys))
	case *FillArrayDataPayload:
		return fmt.Sprintf("fill-array-data-payload element_width:%d size:%d", p.ElementWidth, len(p.Data))
	default:
		return in.Name
	}
}

// resolveIndex renders an index operand through the ID table its
// IndexKind names. On any resolution failure it falls back to a raw
// numeric form rather than propagating the error, since a pretty-
// printer is diagnostic output, not a structural parse.
func resolveIndex(f *File, kind IndexKind, idx, idx2 uint32) string {
	switch kind {
	case IndexStringRef:
		s, err := f.StringByIndex(idx)
		if err != nil {
			return "string@" + strconv.Itoa(int(idx))
		}
		return strconv.Quote(s)

	case IndexTypeRef:
		s, err := f.TypeByIndex(idx)
		if err != nil {
			return "type@" + strconv.Itoa(int(idx))
		}
		return s

	case IndexFieldRef:
		fid, err := f.FieldByIndex(idx)
		if err != nil {
			return "field@" + strconv.Itoa(int(idx))
		}
		class, _ := f.FieldClassType(fid)
		name, _ := f.FieldName(fid)
		typ, _ := f.FieldType(fid)
		return fmt.Sprintf("%s->%s:%s", class, name, typ)

	case IndexMethodRef:
		mid, err := f.MethodByIndex(idx)
		if err != nil {
			return "method@" + strconv.Itoa(int(idx))
		}
		return methodSignature(f, mid)

	case IndexMethodAndProtoRef:
		mid, err := f.MethodByIndex(idx)
		if err != nil {
			return "method@" + strconv.Itoa(int(idx))
		}
		sig := methodSignature(f, mid)
		proto, err := f.ProtoByIndex(idx2)
		if err != nil {
			return sig
		}
		return sig + ", " + protoSignature(f, proto)

	case IndexCallSiteRef:
		return "call_site@" + strconv.Itoa(int(idx))

	case IndexMethodHandleRef:
		mh, err := f.MethodHandleByIndex(idx)
		if err != nil {
			return "method_handle@" + strconv.Itoa(int(idx))
		}
		return mh.Kind.String()

	case IndexProtoRef:
		proto, err := f.ProtoByIndex(idx)
		if err != nil {
			return "proto@" + strconv.Itoa(int(idx))
		}
		return protoSignature(f, proto)

	default:
		return strconv.Itoa(int(idx))
	}
}

func methodSignature(f *File, m MethodID) string {
	class, _ := f.MethodClassType(m)
	name, _ := f.MethodName(m)
	proto, err := f.MethodProto(m)
	if err != nil {
		return fmt.Sprintf("%s->%s", class, name)
	}
	return fmt.Sprintf("%s->%s%s", class, name, protoSignature(f, proto))
}

func protoSignature(f *File, p ProtoID) string {
	params, _ := f.Parameters(p)
	ret, _ := f.ReturnType(p)
	return "(" + strings.Join(params, "") + ")" + ret
}
