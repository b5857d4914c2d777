// Copyright 2026 The dexray Authors. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package dex

import "fmt"

// ProtoID is a decoded proto_id_item: a method prototype (return type
// plus parameter types), shared by every method_id with the same
// signature.
type ProtoID struct {
	ShortyIdx     uint32 `json:"shorty_idx"`
	ReturnTypeIdx uint32 `json:"return_type_idx"`
	ParametersOff uint32 `json:"parameters_off"`
}

// ProtoByIndex resolves proto_ids[idx].
func (d *File) ProtoByIndex(idx uint32) (ProtoID, error) {
	if idx >= d.header.ProtoIDsSize {
		return ProtoID{}, fmt.Errorf("%w: proto_ids[%d], size %d", ErrIndexOutOfRange, idx, d.header.ProtoIDsSize)
	}
	base := d.header.ProtoIDsOff + idx*protoIDSize
	shorty, err := d.cursor.u32(base)
	if err != nil {
		return ProtoID{}, err
	}
	retType, err := d.cursor.u32(base + 4)
	if err != nil {
		return ProtoID{}, err
	}
	paramsOff, err := d.cursor.u32(base + 8)
	if err != nil {
		return ProtoID{}, err
	}
	return ProtoID{ShortyIdx: shorty, ReturnTypeIdx: retType, ParametersOff: paramsOff}, nil
}

// Shorty resolves a ProtoID's short-form descriptor string.
func (d *File) Shorty(p ProtoID) (string, error) {
	return d.StringByIndex(p.ShortyIdx)
}

// ReturnType resolves a ProtoID's return type descriptor.
func (d *File) ReturnType(p ProtoID) (string, error) {
	return d.TypeByIndex(p.ReturnTypeIdx)
}

// Parameters resolves a ProtoID's parameter type descriptors, in order.
func (d *File) Parameters(p ProtoID) ([]string, error) {
	tl, err := d.typeListAt(p.ParametersOff)
	if err != nil {
		return nil, err
	}
	return d.Types(tl)
}
