// Copyright 2026 The pptrec Authors. All rights reserved.
// Use of this source code is governed by the MIT License
// that can be found in the LICENSE file.

// Package binutil provides bounds-checked little-endian reads over an
// in-memory buffer, with a sticky error instead of panics on short input.
package binutil

import (
	"encoding/binary"
	"fmt"
)

// Reader consumes little-endian values from a byte slice.  The first
// out-of-bounds read latches an error; subsequent reads return zero
// values and the latched error is reported by Err.
type Reader struct {
	buf []byte
	off int
	err error
}

func NewReader(buf []byte) *Reader {
	return &Reader{buf: buf}
}

func (r *Reader) fail(n int) {
	if r.err == nil {
		r.err = fmt.Errorf("short read: need %d bytes at offset %d, have %d", n, r.off, len(r.buf)-r.off)
	}
}

func (r *Reader) take(n int) []byte {
	if r.err != nil {
		return nil
	}
	if len(r.buf)-r.off < n {
		r.fail(n)
		return nil
	}
	b := r.buf[r.off : r.off+n]
	r.off += n
	return b
}

func (r *Reader) Uint16() uint16 {
	b := r.take(2)
	if b == nil {
		return 0
	}
	return binary.LittleEndian.Uint16(b)
}

func (r *Reader) Uint32() uint32 {
	b := r.take(4)
	if b == nil {
		return 0
	}
	return binary.LittleEndian.Uint32(b)
}

// Bytes returns the next n bytes without copying.
func (r *Reader) Bytes(n int) []byte {
	return r.take(n)
}

// Remaining reports the unread byte count.
func (r *Reader) Remaining() int {
	if r.err != nil {
		return 0
	}
	return len(r.buf) - r.off
}

// Err returns the first out-of-bounds error encountered, if any.
func (r *Reader) Err() error {
	return r.err
}
