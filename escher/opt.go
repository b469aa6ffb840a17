// Copyright 2026 The pptrec Authors. All rights reserved.
// Use of this source code is governed by the MIT License
// that can be found in the LICENSE file.

package escher

import (
	"encoding/binary"
	"fmt"

	"github.com/slidelab/pptrec/internal/binutil"
)

const (
	bagHeaderSize = 6
	entrySize     = 6
)

// PropertyBagFormatError reports a structurally invalid property bag
// payload.  Property-level errors are never silently recovered: guessing
// property boundaries risks corrupting styling data.
type PropertyBagFormatError struct {
	Reason string
}

func (e *PropertyBagFormatError) Error() string {
	return "property bag: " + e.Reason
}

func bagErrf(format string, args ...any) error {
	return &PropertyBagFormatError{Reason: fmt.Sprintf(format, args...)}
}

// PropertyBag is an ordered mapping from property ID to value, as stored
// in the payload of an Opt record.  Entry order is preserved across
// decode/encode: it is semantically significant for round-trip fidelity
// and is NOT sorted by ID.
type PropertyBag struct {
	props []Property
}

// DecodeBag parses an Opt record payload: a 6-byte header holding the
// entry count and the total complex-region size, the fixed-size entries,
// then the complex blobs in entry declaration order.
func DecodeBag(payload []byte) (*PropertyBag, error) {
	r := binutil.NewReader(payload)
	count := int(r.Uint16())
	complexSize := int(r.Uint32())
	if r.Err() != nil {
		return nil, bagErrf("payload %d bytes, need %d for header", len(payload), bagHeaderSize)
	}

	bag := &PropertyBag{props: make([]Property, 0, count)}
	isComplex := make([]bool, count)
	declared := 0
	for i := 0; i < count; i++ {
		idWord := r.Uint16()
		value := r.Uint32()
		if r.Err() != nil {
			return nil, bagErrf("entry %d of %d missing: %v", i, count, r.Err())
		}
		p := Property{
			ID:     PropertyID(idWord & idMask),
			BlipID: idWord&flagBlipID != 0,
			Value:  value,
		}
		if idWord&flagComplex != 0 {
			isComplex[i] = true
			declared += int(value)
		}
		bag.props = append(bag.props, p)
	}

	if r.Remaining() < declared {
		return nil, bagErrf("complex region is %d bytes, entries declare %d", r.Remaining(), declared)
	}
	if r.Remaining() != complexSize || declared != complexSize {
		return nil, bagErrf("complex region is %d bytes with %d declared, header says %d",
			r.Remaining(), declared, complexSize)
	}
	for i := range bag.props {
		if !isComplex[i] {
			continue
		}
		p := &bag.props[i]
		blob := r.Bytes(int(p.Value))
		if r.Err() != nil {
			return nil, bagErrf("complex blob for property 0x%04X: %v", p.ID, r.Err())
		}
		if blob == nil {
			blob = []byte{}
		}
		p.Blob = blob
	}
	return bag, nil
}

// Encode serializes the bag: header, simple entries in insertion order,
// then the complex blobs in the same order their entries appear.
func (b *PropertyBag) Encode() []byte {
	complexSize := 0
	for _, p := range b.props {
		complexSize += len(p.Blob)
	}
	buf := make([]byte, 0, b.EncodedSize())

	var head [bagHeaderSize]byte
	binary.LittleEndian.PutUint16(head[0:2], uint16(len(b.props)))
	binary.LittleEndian.PutUint32(head[2:6], uint32(complexSize))
	buf = append(buf, head[:]...)

	var entry [entrySize]byte
	for _, p := range b.props {
		value := p.Value
		if p.IsComplex() {
			value = uint32(len(p.Blob))
		}
		binary.LittleEndian.PutUint16(entry[0:2], p.idWord())
		binary.LittleEndian.PutUint32(entry[2:6], value)
		buf = append(buf, entry[:]...)
	}
	for _, p := range b.props {
		buf = append(buf, p.Blob...)
	}
	return buf
}

// EncodedSize returns the byte count Encode will produce.
func (b *PropertyBag) EncodedSize() int {
	n := bagHeaderSize + entrySize*len(b.props)
	for _, p := range b.props {
		n += len(p.Blob)
	}
	return n
}

// Len returns the number of properties in the bag.
func (b *PropertyBag) Len() int {
	return len(b.props)
}

// Properties returns the entries in declaration order.  The slice is
// shared with the bag; callers must not reorder it.
func (b *PropertyBag) Properties() []Property {
	return b.props
}

// Get looks up a property by ID.  Absence is reported by the bool, never
// by a zero sentinel: an explicitly-stored zero and a missing property
// are distinct results.
func (b *PropertyBag) Get(id PropertyID) (Property, bool) {
	for _, p := range b.props {
		if p.ID == id {
			return p, true
		}
	}
	return Property{}, false
}

// GetSimple returns the 32-bit value of a simple property.
func (b *PropertyBag) GetSimple(id PropertyID) (uint32, bool) {
	p, ok := b.Get(id)
	if !ok || p.IsComplex() {
		return 0, false
	}
	return p.Value, true
}

// GetColor returns a simple property's value as a packed color.
func (b *PropertyBag) GetColor(id PropertyID) (ColorRef, bool) {
	v, ok := b.GetSimple(id)
	return ColorRef(v), ok
}

// GetArray views a complex property's blob as a dense array of
// fixed-size elements.  Element size is a property-specific contract
// supplied by the caller, not stored in the bag.  The bool reports
// presence; a blob whose length is not a multiple of elemSize is an
// error.
func (b *PropertyBag) GetArray(id PropertyID, elemSize int) ([][]byte, bool, error) {
	p, ok := b.Get(id)
	if !ok {
		return nil, false, nil
	}
	if !p.IsComplex() {
		return nil, true, bagErrf("property 0x%04X is simple, not an array", id)
	}
	if elemSize <= 0 {
		return nil, true, bagErrf("invalid element size %d", elemSize)
	}
	if len(p.Blob)%elemSize != 0 {
		return nil, true, bagErrf("property 0x%04X blob of %d bytes is not a multiple of element size %d",
			id, len(p.Blob), elemSize)
	}
	elems := make([][]byte, 0, len(p.Blob)/elemSize)
	for off := 0; off < len(p.Blob); off += elemSize {
		elems = append(elems, p.Blob[off:off+elemSize])
	}
	return elems, true, nil
}

func (b *PropertyBag) set(p Property) {
	for i := range b.props {
		if b.props[i].ID == p.ID {
			b.props[i] = p
			return
		}
	}
	b.props = append(b.props, p)
}

// Set inserts or replaces a simple property.  Replacing a complex
// property with a simple one (or vice versa) rebuilds the complex-region
// layout on the next Encode; untouched entries keep their order.
func (b *PropertyBag) Set(id PropertyID, value uint32) {
	b.set(Property{ID: id, Value: value})
}

// SetColor inserts or replaces a packed-color property.
func (b *PropertyBag) SetColor(id PropertyID, c ColorRef) {
	b.Set(id, uint32(c))
}

// SetComplex inserts or replaces a complex property.  The blob is used
// as-is, not copied; a nil blob is stored as empty.
func (b *PropertyBag) SetComplex(id PropertyID, blob []byte) {
	if blob == nil {
		blob = []byte{}
	}
	b.set(Property{ID: id, Value: uint32(len(blob)), Blob: blob})
}

// Remove deletes a property by ID, reporting whether it was present.
func (b *PropertyBag) Remove(id PropertyID) bool {
	for i := range b.props {
		if b.props[i].ID == id {
			b.props = append(b.props[:i], b.props[i+1:]...)
			return true
		}
	}
	return false
}
