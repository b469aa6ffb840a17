// Copyright 2026 The pptrec Authors. All rights reserved.
// Use of this source code is governed by the MIT License
// that can be found in the LICENSE file.

package pptrec

import (
	"bytes"
	"fmt"

	"github.com/dgryski/go-farm"
)

// Fingerprint returns a 64-bit content hash of the serialized document,
// cheap to compare across round trips.
func (d *Document) Fingerprint() uint64 {
	return farm.Hash64(d.Serialize())
}

// VerifyRoundTrip parses data in strict mode, re-serializes the
// unmodified tree, and confirms the output is byte-identical to the
// input.  Any structural error or divergence is returned; nil means the
// document round-trips exactly.
func VerifyRoundTrip(data []byte, opts ...Option) error {
	doc, err := Parse(data, append(opts, WithStrict())...)
	if err != nil {
		return fmt.Errorf("parse: %w", err)
	}
	out := doc.Serialize()
	if len(out) != len(data) {
		return fmt.Errorf("round trip changed size: %d bytes in, %d out", len(data), len(out))
	}
	if farm.Hash64(out) != farm.Hash64(data) || !bytes.Equal(out, data) {
		for i := range data {
			if out[i] != data[i] {
				return fmt.Errorf("round trip diverges at offset %d: 0x%02X became 0x%02X", i, data[i], out[i])
			}
		}
	}
	return nil
}
