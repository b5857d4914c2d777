// Copyright 2026 The dexray Authors. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package dex

import (
	"os"

	mmap "github.com/edsrzf/mmap-go"

	"github.com/dexray/dex/log"
)

// VerifyPreset selects how much integrity verification Open performs
// before handing back a File (spec §4.3).
type VerifyPreset int

const (
	// VerifyPresetNone skips checksum and signature verification.
	VerifyPresetNone VerifyPreset = iota

	// VerifyPresetChecksumOnly recomputes the Adler-32 checksum over
	// bytes [12, file_size) and compares it to header.checksum.
	VerifyPresetChecksumOnly

	// VerifyPresetAll additionally recomputes the SHA-1 signature over
	// bytes [32, file_size) and compares it to header.signature.
	VerifyPresetAll
)

// MaxDefaultItemCount is the default ceiling MaxItemCount normalizes to
// when left at its zero value.
const MaxDefaultItemCount = 0x100000

// Options configures Open/OpenBytes.
type Options struct {
	// VerifyPreset controls how much integrity verification Open
	// performs. Defaults to VerifyPresetNone.
	VerifyPreset VerifyPreset

	// Logger receives non-fatal parse diagnostics. Defaults to a
	// warn-and-above logger writing to stderr.
	Logger log.Logger

	// MaxItemCount caps how many elements any single lazily-materialized
	// list (class_data fields/methods, encoded_array/annotation entries,
	// try/catch handlers, annotation sets) will preallocate for, by
	// default (MaxDefaultItemCount). It only bounds the allocation hint,
	// never the actual count decoded: a declared count above this still
	// decodes in full, just without the up-front slice preallocation.
	MaxItemCount uint32
}

// File is the immutable, read-only DEX view (spec §3 "DEX view"). It
// owns the byte image handle, the parsed header, the parsed map list,
// and the cached offsets/lengths of every ID table. Every accessor
// returned from a File borrows from it; accessors must not outlive the
// File that produced them.
type File struct {
	header  Header
	mapList MapList

	cursor *cursor
	data   mmap.MMap // non-nil only when opened from a path
	f      *os.File  // non-nil only when opened from a path

	// Anomalies records non-fatal structural oddities observed while
	// opening and while decoding class_data items (spec §4.2, §9).
	Anomalies []string

	opts   *Options
	logger *log.Helper
}

func newLogger(opts *Options) *log.Helper {
	if opts != nil && opts.Logger != nil {
		return log.NewHelper(opts.Logger)
	}
	return log.NewHelper(log.DefaultLogger())
}

// Open memory-maps the file at path, read-only, and parses it into a
// DEX view per opts. The mapping is released by Close.
func Open(path string, opts *Options) (*File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}

	data, err := mmap.Map(f, mmap.RDONLY, 0)
	if err != nil {
		f.Close()
		return nil, err
	}

	d := &File{opts: normalizeOptions(opts), f: f, data: data}
	d.logger = newLogger(d.opts)
	d.cursor = newCursor(data)

	if err := d.open(); err != nil {
		d.Close()
		return nil, err
	}
	return d, nil
}

// OpenBytes adopts a caller-owned byte slice and parses it into a DEX
// view per opts. The slice must not be mutated while the returned File
// is alive; OpenBytes never copies it.
func OpenBytes(data []byte, opts *Options) (*File, error) {
	d := &File{opts: normalizeOptions(opts)}
	d.logger = newLogger(d.opts)
	d.cursor = newCursor(data)

	if err := d.open(); err != nil {
		return nil, err
	}
	return d, nil
}

func normalizeOptions(opts *Options) *Options {
	var cp Options
	if opts != nil {
		cp = *opts
	}
	if cp.MaxItemCount == 0 {
		cp.MaxItemCount = MaxDefaultItemCount
	}
	return &cp
}

// capHint returns a safe capacity hint for preallocating count elements
// of at least minElemSize bytes each, starting at off, additionally
// bounded by opts.MaxItemCount (spec §2's "max lazily-materialized item
// counts" guard, mirroring the teacher's MaxCOFFSymbolsCount).
func (d *File) capHint(off, count, minElemSize uint32) uint32 {
	hint := d.cursor.capHint(off, count, minElemSize)
	if d.opts != nil && d.opts.MaxItemCount > 0 && hint > d.opts.MaxItemCount {
		return d.opts.MaxItemCount
	}
	return hint
}

// open runs the structural parse and, per opts.VerifyPreset, the
// checksum/signature verification. It is atomic: either it returns a
// fully validated File with no partial state escaping, or it returns an
// error and the caller must not use the receiver further (spec §7).
func (d *File) open() error {
	if err := d.parseHeader(); err != nil {
		return err
	}
	if err := d.parseMapList(); err != nil {
		return err
	}
	if err := d.Verify(d.opts.VerifyPreset); err != nil {
		return err
	}
	return nil
}

// Verify re-runs checksum/signature verification against preset. It can
// be called again on an already-open File to escalate past the preset
// it was originally opened with, without re-parsing the header.
func (d *File) Verify(preset VerifyPreset) error {
	if preset >= VerifyPresetChecksumOnly {
		if err := d.verifyChecksum(); err != nil {
			return err
		}
	}
	if preset >= VerifyPresetAll {
		if err := d.verifySignature(); err != nil {
			return err
		}
	}
	return nil
}

// Close releases the underlying byte image. Accessors and instructions
// obtained from this File must not be used afterwards.
func (d *File) Close() error {
	if d.data != nil {
		_ = d.data.Unmap()
	}
	if d.f != nil {
		return d.f.Close()
	}
	return nil
}

// Header returns the parsed, validated DEX header.
func (d *File) Header() Header {
	return d.header
}

// MapList returns the parsed map_list.
func (d *File) MapList() MapList {
	return d.mapList
}

// Size returns the length of the underlying byte image.
func (d *File) Size() uint32 {
	return d.cursor.len()
}
