// Copyright 2026 The dexray Authors. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package dex

// NoIndex is the sentinel marking an absent index in DEX records.
const NoIndex = 0xFFFFFFFF

// EndianConstant is the expected value of header.endian_tag for a
// little-endian DEX image. The reverse-endian constant identifies a
// big-endian image, which this package does not support (spec §4.2).
const (
	EndianConstant        = 0x12345678
	ReverseEndianConstant = 0x78563412
)

// HeaderSize is the fixed size, in bytes, of the DEX header.
const HeaderSize = 0x70

// dexMagic is the fixed 4-byte prefix every DEX image must start with.
var dexMagic = [4]byte{'d', 'e', 'x', '\n'}

// supportedVersions lists the version triplets this package accepts,
// encoded as their 3-byte ASCII form (e.g. "035").
var supportedVersions = [][3]byte{
	{'0', '3', '5'},
	{'0', '3', '7'},
	{'0', '3', '8'},
	{'0', '3', '9'},
}

// Fixed record sizes for the ID tables (spec §3).
const (
	stringIDSize     = 4
	typeIDSize       = 4
	protoIDSize      = 12
	fieldIDSize      = 8
	methodIDSize     = 8
	classDefSize     = 32
	callSiteSize     = 4 // call_site_ids is an array of u32 offsets.
	methodHandleSize = 8
)

// MapItemType identifies the kind of item a map_list entry describes.
type MapItemType uint16

// map_item type codes, per the AOSP DEX map_list specification.
const (
	TypeHeaderItem               MapItemType = 0x0000
	TypeStringIDItem             MapItemType = 0x0001
	TypeTypeIDItem               MapItemType = 0x0002
	TypeProtoIDItem              MapItemType = 0x0003
	TypeFieldIDItem              MapItemType = 0x0004
	TypeMethodIDItem             MapItemType = 0x0005
	TypeClassDefItem             MapItemType = 0x0006
	TypeCallSiteIDItem           MapItemType = 0x0007
	TypeMethodHandleItem         MapItemType = 0x0008
	TypeMapList                  MapItemType = 0x1000
	TypeTypeList                 MapItemType = 0x1001
	TypeAnnotationSetRefList     MapItemType = 0x1002
	TypeAnnotationSetItem        MapItemType = 0x1003
	TypeClassDataItem            MapItemType = 0x2000
	TypeCodeItem                 MapItemType = 0x2001
	TypeStringDataItem           MapItemType = 0x2002
	TypeDebugInfoItem            MapItemType = 0x2003
	TypeAnnotationItem           MapItemType = 0x2004
	TypeEncodedArrayItem         MapItemType = 0x2005
	TypeAnnotationsDirectoryItem MapItemType = 0x2006
	TypeHiddenapiClassDataItem   MapItemType = 0xF000
)

// String returns the human-readable name of a map item type.
func (t MapItemType) String() string {
	switch t {
	case TypeHeaderItem:
		return "header_item"
	case TypeStringIDItem:
		return "string_id_item"
	case TypeTypeIDItem:
		return "type_id_item"
	case TypeProtoIDItem:
		return "proto_id_item"
	case TypeFieldIDItem:
		return "field_id_item"
	case TypeMethodIDItem:
		return "method_id_item"
	case TypeClassDefItem:
		return "class_def_item"
	case TypeCallSiteIDItem:
		return "call_site_id_item"
	case TypeMethodHandleItem:
		return "method_handle_item"
	case TypeMapList:
		return "map_list"
	case TypeTypeList:
		return "type_list"
	case TypeAnnotationSetRefList:
		return "annotation_set_ref_list"
	case TypeAnnotationSetItem:
		return "annotation_set_item"
	case TypeClassDataItem:
		return "class_data_item"
	case TypeCodeItem:
		return "code_item"
	case TypeStringDataItem:
		return "string_data_item"
	case TypeDebugInfoItem:
		return "debug_info_item"
	case TypeAnnotationItem:
		return "annotation_item"
	case TypeEncodedArrayItem:
		return "encoded_array_item"
	case TypeAnnotationsDirectoryItem:
		return "annotations_directory_item"
	case TypeHiddenapiClassDataItem:
		return "hiddenapi_class_data_item"
	default:
		return "?"
	}
}

// Access flags for classes, fields, and methods, per the DEX spec.
const (
	AccPublic              = 0x1
	AccPrivate             = 0x2
	AccProtected           = 0x4
	AccStatic              = 0x8
	AccFinal               = 0x10
	AccSynchronized        = 0x20
	AccVolatile            = 0x40
	AccBridge              = 0x40
	AccTransient           = 0x80
	AccVarargs             = 0x80
	AccNative              = 0x100
	AccInterface           = 0x200
	AccAbstract            = 0x400
	AccStrict              = 0x800
	AccSynthetic           = 0x1000
	AccAnnotation          = 0x2000
	AccEnum                = 0x4000
	AccConstructor         = 0x10000
	AccDeclaredSynchronize = 0x20000
)
