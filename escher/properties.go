// Copyright 2026 The pptrec Authors. All rights reserved.
// Use of this source code is governed by the MIT License
// that can be found in the LICENSE file.

// Package escher decodes and encodes the drawing-layer sub-structures
// nested inside specific records of the document stream: the per-shape
// property bag carried by Opt records, and the shape-ID bookkeeping
// carried by the drawing-group (Dgg) and per-drawing (Dg) atoms.
package escher

// PropertyID identifies one drawing property.  On the wire it occupies
// the low 14 bits of the entry's id word; the two high bits flag blip-ID
// references and complex (variable-length) values.
type PropertyID uint16

const (
	idMask      = 0x3FFF
	flagBlipID  = 0x4000
	flagComplex = 0x8000
)

// Well-known property IDs exercised by shape styling.
const (
	FillColor       PropertyID = 0x0181
	FillBackColor   PropertyID = 0x0183
	FillShadeColors PropertyID = 0x0197
	LineWidth       PropertyID = 0x01BF
	LineColor       PropertyID = 0x01C0
	LineBackColor   PropertyID = 0x01C1
	LineDashing     PropertyID = 0x01CE
	ShadowColor     PropertyID = 0x0201
)

// Property is one entry of a property bag: a 32-bit simple value, or a
// variable-length blob for complex entries (in which case the simple
// value on the wire is the blob's byte length).
type Property struct {
	ID     PropertyID
	BlipID bool
	Value  uint32
	// Blob is nil for simple properties.  A complex property with an
	// empty (but present) blob has a non-nil zero-length Blob.
	Blob []byte
}

// IsComplex reports whether the property carries a variable-length blob.
func (p Property) IsComplex() bool {
	return p.Blob != nil
}

// Color interprets the simple value as a packed color reference.
func (p Property) Color() ColorRef {
	return ColorRef(p.Value)
}

func (p Property) idWord() uint16 {
	w := uint16(p.ID) & idMask
	if p.BlipID {
		w |= flagBlipID
	}
	if p.IsComplex() {
		w |= flagComplex
	}
	return w
}

// ColorRef is a packed color: red, green and blue in the low three
// bytes, flag bits in the high byte (palette index, scheme index,
// system color markers).
type ColorRef uint32

func RGB(r, g, b uint8) ColorRef {
	return ColorRef(uint32(r) | uint32(g)<<8 | uint32(b)<<16)
}

func (c ColorRef) R() uint8 { return uint8(c) }
func (c ColorRef) G() uint8 { return uint8(c >> 8) }
func (c ColorRef) B() uint8 { return uint8(c >> 16) }

// Flags returns the high flag byte.
func (c ColorRef) Flags() uint8 { return uint8(c >> 24) }
