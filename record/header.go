// Copyright 2026 The pptrec Authors. All rights reserved.
// Use of this source code is governed by the MIT License
// that can be found in the LICENSE file.

package record

import (
	"encoding/binary"
	"fmt"
)

const (
	// HeaderSize is the fixed size of every record header on the wire.
	HeaderSize = 8

	// containerVersion in the low nibble of the options word marks a
	// record whose payload is a sequence of child records.
	containerVersion = 0xF

	maxInstance = 0xFFF
)

// Header is the 8-byte prefix shared by every record: a packed
// version/instance word, the record type, and the payload length.
// Length counts payload bytes only, never the header itself; for
// containers it covers all nested child records.
type Header struct {
	Options uint16
	Type    uint16
	Length  uint32
}

// NewOptions packs a 4-bit version and 12-bit instance into an options word.
func NewOptions(version uint8, instance uint16) uint16 {
	return uint16(version&0xF) | (instance&maxInstance)<<4
}

func (h Header) Version() uint8 {
	return uint8(h.Options & 0xF)
}

func (h Header) Instance() uint16 {
	return h.Options >> 4
}

// IsContainer reports whether the version nibble carries the container
// marker.  Callers should also consult the type registry: a handful of
// document-stream container types predate the marker convention.
func (h Header) IsContainer() bool {
	return h.Version() == containerVersion
}

// ParseHeader decodes an 8-byte record header from the front of data.
func ParseHeader(data []byte) (Header, error) {
	if len(data) < HeaderSize {
		return Header{}, fmt.Errorf("header needs %d bytes, have %d", HeaderSize, len(data))
	}
	return Header{
		Options: binary.LittleEndian.Uint16(data[0:2]),
		Type:    binary.LittleEndian.Uint16(data[2:4]),
		Length:  binary.LittleEndian.Uint32(data[4:8]),
	}, nil
}

// AppendTo appends the encoded header to buf and returns the extended slice.
func (h Header) AppendTo(buf []byte) []byte {
	var b [HeaderSize]byte
	binary.LittleEndian.PutUint16(b[0:2], h.Options)
	binary.LittleEndian.PutUint16(b[2:4], h.Type)
	binary.LittleEndian.PutUint32(b[4:8], h.Length)
	return append(buf, b[:]...)
}
