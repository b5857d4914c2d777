// Copyright 2026 The dexray Authors. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package dex

import (
	"bytes"
	"crypto/sha1"
	"fmt"
	"hash/adler32"

	"go.mozilla.org/pkcs7"
)

// verifyChecksum recomputes the Adler-32 checksum over bytes
// [12, file_size) and compares it to header.checksum (spec §4.3). The
// algorithm is mandated by the DEX format itself, not a free choice, so
// it is implemented with the standard library rather than a third-party
// digest package.
func (d *File) verifyChecksum() error {
	body, err := d.cursor.bytes(12, d.cursor.len()-12)
	if err != nil {
		return err
	}
	sum := adler32.Checksum(body)
	if sum != d.header.Checksum {
		return fmt.Errorf("%w: computed 0x%08x, header has 0x%08x", ErrBadChecksum, sum, d.header.Checksum)
	}
	return nil
}

// verifySignature recomputes the SHA-1 signature over bytes
// [32, file_size) and compares it to header.signature (spec §4.3). Like
// the checksum, the digest algorithm is fixed by the format.
func (d *File) verifySignature() error {
	body, err := d.cursor.bytes(32, d.cursor.len()-32)
	if err != nil {
		return err
	}
	sum := sha1.Sum(body)
	if !bytes.Equal(sum[:], d.header.Signature[:]) {
		return fmt.Errorf("%w: computed signature does not match header", ErrBadSignature)
	}
	return nil
}

// VerifyDetachedSignature validates a PKCS#7 detached signature covering
// the whole image, as produced by apksigner/jarsigner style distribution
// pipelines around a dex payload. It is supplemental to the format's own
// Adler-32/SHA-1 fields (spec §4.3) and is not required by Open; callers
// that receive DEX files bundled with such a signature can call it
// explicitly once the File is open.
func (d *File) VerifyDetachedSignature(sig []byte) error {
	p7, err := pkcs7.Parse(sig)
	if err != nil {
		return fmt.Errorf("%w: parsing pkcs7 signature: %v", ErrBadSignature, err)
	}
	p7.Content = d.cursor.data
	if err := p7.Verify(); err != nil {
		return fmt.Errorf("%w: %v", ErrBadSignature, err)
	}
	return nil
}
