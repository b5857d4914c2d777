// Copyright 2026 The dexray Authors. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package dex

import "errors"

// Error kinds. Apart from the operating-system errors Open passes
// through when the file cannot be opened or mapped, every fallible
// operation in this package returns one of these (or an error wrapping
// one with errors.Is/errors.As context), never a panic — malformed or adversarial input must always surface as
// an error value.
var (
	// ErrOutOfBounds is returned for any read past the image or a
	// declared sub-range.
	ErrOutOfBounds = errors.New("dex: read out of bounds")

	// ErrBadMagic is returned when the header magic prefix is not "dex\n".
	ErrBadMagic = errors.New("dex: bad magic")

	// ErrBadVersion is returned when the version triplet is not one of
	// the known 035/037/038/039.
	ErrBadVersion = errors.New("dex: unsupported dex version")

	// ErrBadEndianTag is returned when endian_tag is not 0x12345678.
	ErrBadEndianTag = errors.New("dex: bad endian tag")

	// ErrBadHeaderSize is returned when header_size is not 0x70.
	ErrBadHeaderSize = errors.New("dex: bad header size")

	// ErrBadFileSize is returned when file_size does not match the
	// image length, or a table offset/size overruns file_size.
	ErrBadFileSize = errors.New("dex: bad file size")

	// ErrBadChecksum is returned when the recomputed Adler-32 does not
	// match header.checksum (VerifyPresetChecksumOnly and above).
	ErrBadChecksum = errors.New("dex: checksum mismatch")

	// ErrBadSignature is returned when the recomputed SHA-1 does not
	// match header.signature (VerifyPresetAll).
	ErrBadSignature = errors.New("dex: signature mismatch")

	// ErrBadEncoding is returned by the MUTF-8 decoder on an invalid
	// byte sequence (a 4-byte form, a truncated multi-byte sequence, or
	// a decoded length mismatch).
	ErrBadEncoding = errors.New("dex: bad encoding")

	// ErrOverflow is returned when a ULEB128/SLEB128/ULEB128p1 value
	// consumes more than 5 bytes without terminating.
	ErrOverflow = errors.New("dex: varint overflow")

	// ErrIndexOutOfRange is returned when a table index is >= the
	// table's length, or NO_INDEX is used where a real index is
	// required.
	ErrIndexOutOfRange = errors.New("dex: index out of range")

	// ErrMalformedClassData is returned when a class_data_item's
	// delta-decoded field/method indices are not strictly increasing
	// within their group.
	ErrMalformedClassData = errors.New("dex: malformed class_data_item")

	// ErrMalformedCodeItem is returned on a structurally invalid
	// code_item (e.g. insns_size inconsistent with the try/handler
	// region that follows it).
	ErrMalformedCodeItem = errors.New("dex: malformed code_item")

	// ErrMalformedEncodedValue is returned on an invalid encoded_value
	// tag or a recursive array/annotation that does not terminate
	// within its declared bounds.
	ErrMalformedEncodedValue = errors.New("dex: malformed encoded_value")

	// ErrMalformedAnnotations is returned on a structurally invalid
	// annotations_directory_item or annotation_set_item.
	ErrMalformedAnnotations = errors.New("dex: malformed annotations")

	// ErrBadOpcode is returned when decoding an opcode whose format is
	// kInvalidFormat (unused by the Dalvik ISA).
	ErrBadOpcode = errors.New("dex: invalid opcode")
)
