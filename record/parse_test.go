// Copyright 2026 The pptrec Authors. All rights reserved.
// Use of this source code is governed by the MIT License
// that can be found in the LICENSE file.

package record

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// rawRecord hand-assembles one record so tests can produce malformed
// streams the serializer refuses to.
func rawRecord(options, recType uint16, payload []byte) []byte {
	buf := make([]byte, HeaderSize+len(payload))
	binary.LittleEndian.PutUint16(buf[0:2], options)
	binary.LittleEndian.PutUint16(buf[2:4], recType)
	binary.LittleEndian.PutUint32(buf[4:8], uint32(len(payload)))
	copy(buf[HeaderSize:], payload)
	return buf
}

func TestParse_AtomAndContainer(t *testing.T) {
	sp := NewAtom(TypeSp, NewOptions(2, 0x5), []byte{1, 2, 3, 4, 5, 6, 7, 8})
	anchor := NewAtom(TypeClientAnchor, 0, []byte{9, 9, 9, 9})
	cont := NewContainer(TypeSpContainer, 0, sp, anchor)
	data := Serialize(cont)

	roots, err := Parse(data)
	require.NoError(t, err)
	require.Len(t, roots, 1)

	got := roots[0]
	assert.True(t, got.IsContainer())
	assert.Equal(t, TypeSpContainer, got.Type)
	require.Len(t, got.Children, 2)
	assert.Equal(t, TypeSp, got.Children[0].Type)
	assert.Equal(t, uint16(0x5), got.Children[0].Instance())
	assert.Equal(t, []byte{1, 2, 3, 4, 5, 6, 7, 8}, got.Children[0].Data)
	assert.Equal(t, TypeClientAnchor, got.Children[1].Type)
}

func TestParse_UnknownTypeRoundTrips(t *testing.T) {
	// a type without a registered interpreter is kept as an atom with
	// its raw payload, never dropped or reinterpreted
	data := rawRecord(0x0002, 0xABCD, []byte{0xDE, 0xAD, 0xBE, 0xEF})
	roots, err := Parse(data)
	require.NoError(t, err)
	require.Len(t, roots, 1)
	assert.False(t, roots[0].IsContainer())
	assert.Equal(t, uint16(0xABCD), roots[0].Type)
	assert.Equal(t, []byte{0xDE, 0xAD, 0xBE, 0xEF}, roots[0].Data)

	assert.Equal(t, data, SerializeAll(roots))
}

func TestParse_ZeroLengthAtom(t *testing.T) {
	data := rawRecord(0, TypeClientData, nil)
	roots, err := Parse(data, WithStrict())
	require.NoError(t, err)
	require.Len(t, roots, 1)
	assert.Equal(t, 0, roots[0].PayloadSize())
	assert.Equal(t, data, SerializeAll(roots))
}

func TestParse_RegistryContainerWithoutMarker(t *testing.T) {
	// Document-stream containers are recognized via the registry even
	// though their version nibble is not the container marker.
	child := rawRecord(0, TypeSlideAtom, []byte{1, 2, 3, 4})
	data := rawRecord(0x000F, TypeSlide, child) // marker form
	dataNoMarker := rawRecord(0x0000, TypeSlide, child)

	for _, stream := range [][]byte{data, dataNoMarker} {
		roots, err := Parse(stream, WithStrict())
		require.NoError(t, err)
		require.Len(t, roots, 1)
		require.True(t, roots[0].IsContainer())
		require.Len(t, roots[0].Children, 1)
		assert.Equal(t, stream, SerializeAll(roots))
	}
}

func TestParse_TruncatedStrict(t *testing.T) {
	data := rawRecord(0, TypeSp, []byte{1, 2, 3, 4})
	// declare more payload than the stream holds
	binary.LittleEndian.PutUint32(data[4:8], 100)

	_, err := Parse(data, WithStrict())
	require.Error(t, err)
	var trunc *TruncatedRecordError
	require.ErrorAs(t, err, &trunc)
	assert.Equal(t, TypeSp, trunc.Type)
	assert.Equal(t, uint32(100), trunc.Declared)
	assert.Equal(t, 4, trunc.Remaining)
}

func TestParse_TruncatedLenientKeepsBytes(t *testing.T) {
	good := rawRecord(0, TypeClientData, []byte{7, 7})
	bad := rawRecord(0, TypeSp, []byte{1, 2, 3, 4})
	binary.LittleEndian.PutUint32(bad[4:8], 100)
	data := append(append([]byte{}, good...), bad...)

	roots, err := Parse(data)
	require.NoError(t, err)
	require.Len(t, roots, 2)
	assert.False(t, roots[0].IsOpaque())
	assert.True(t, roots[1].IsOpaque())

	// degraded subtrees still round-trip verbatim
	assert.Equal(t, data, SerializeAll(roots))
}

func TestParse_TruncatedChildInsideContainer(t *testing.T) {
	child := rawRecord(0, TypeSp, []byte{1, 2, 3, 4})
	binary.LittleEndian.PutUint32(child[4:8], 100)
	sibling := rawRecord(0, TypeClientData, []byte{5})
	data := rawRecord(0x000F, TypeSpContainer, append(append([]byte{}, child...), sibling...))

	// lenient: the bad child degrades to one opaque record (its declared
	// span swallows the rest of the container) and the parent survives
	roots, err := Parse(data)
	require.NoError(t, err)
	require.Len(t, roots, 1)
	require.Len(t, roots[0].Children, 1)
	assert.True(t, roots[0].Children[0].IsOpaque())
	assert.Equal(t, data, SerializeAll(roots))

	// strict: the subtree error surfaces
	_, err = Parse(data, WithStrict())
	var trunc *TruncatedRecordError
	require.ErrorAs(t, err, &trunc)
}

func TestParse_ShortResidueBecomesTrailingPadding(t *testing.T) {
	// a container whose payload ends with bytes too short for a child
	// header keeps them as trailing padding, preserved verbatim
	child := rawRecord(0, TypeSp, []byte{1, 2})
	payload := append(append([]byte{}, child...), 0xAA, 0xBB, 0xCC)
	data := rawRecord(0x000F, TypeSpContainer, payload)

	roots, err := Parse(data, WithStrict())
	require.NoError(t, err)
	require.Len(t, roots, 1)
	require.Len(t, roots[0].Children, 1)
	assert.Equal(t, data, SerializeAll(roots))
}

func TestParse_DepthGuard(t *testing.T) {
	data := rawRecord(0, TypeSp, []byte{1})
	for i := 0; i < 6; i++ {
		data = rawRecord(0x000F, TypeSpgrContainer, data)
	}

	_, err := Parse(data, WithStrict(), WithMaxDepth(4))
	require.Error(t, err)
	var malformed *MalformedContainerError
	require.ErrorAs(t, err, &malformed)
	assert.Equal(t, 4, malformed.Depth)

	// lenient mode degrades the too-deep subtree and round-trips
	roots, err := Parse(data, WithMaxDepth(4))
	require.NoError(t, err)
	assert.Equal(t, data, SerializeAll(roots))

	// the default bound accepts it
	_, err = Parse(data, WithStrict())
	require.NoError(t, err)
}

func TestParse_TrailingGarbageAtTopLevel(t *testing.T) {
	data := append(rawRecord(0, TypeSp, []byte{1, 2}), 0x01, 0x02, 0x03)

	_, err := Parse(data, WithStrict())
	var trunc *TruncatedRecordError
	require.ErrorAs(t, err, &trunc)

	roots, err := Parse(data)
	require.NoError(t, err)
	require.Len(t, roots, 2)
	assert.True(t, roots[1].IsOpaque())
	assert.Equal(t, data, SerializeAll(roots))
}

func TestParse_ExtraContainerTypes(t *testing.T) {
	const synthetic = 0x4242
	child := rawRecord(0, TypeSp, []byte{9})
	data := rawRecord(0, synthetic, child)

	roots, err := Parse(data, WithStrict())
	require.NoError(t, err)
	assert.False(t, roots[0].IsContainer())

	roots, err = Parse(data, WithStrict(), WithContainerTypes(synthetic))
	require.NoError(t, err)
	require.True(t, roots[0].IsContainer())
	require.Len(t, roots[0].Children, 1)
	assert.Equal(t, data, SerializeAll(roots))
}

func TestParseOne_ReportsConsumed(t *testing.T) {
	first := rawRecord(0, TypeSp, []byte{1, 2, 3})
	second := rawRecord(0, TypeClientData, []byte{4})
	data := append(append([]byte{}, first...), second...)

	rec, n, err := ParseOne(data)
	require.NoError(t, err)
	assert.Equal(t, len(first), n)
	assert.Equal(t, TypeSp, rec.Type)

	rec, n, err = ParseOne(data[n:])
	require.NoError(t, err)
	assert.Equal(t, len(second), n)
	assert.Equal(t, TypeClientData, rec.Type)
}

func TestFindFirst_DocumentOrder(t *testing.T) {
	a := NewAtom(TypeSp, 0, []byte{1})
	b := NewAtom(TypeSp, 0, []byte{2})
	inner := NewContainer(TypeSpContainer, 0, a)
	outer := NewContainer(TypeDgContainer, 0, inner, b)

	// pre-order: the nested occurrence comes before the later sibling
	found := outer.FindFirst(TypeSp)
	require.NotNil(t, found)
	assert.Same(t, a, found)

	assert.Nil(t, outer.FindFirst(TypeOpt))

	forest := []*Record{NewAtom(TypeClientData, 0, nil), outer}
	assert.Same(t, a, FindFirst(forest, TypeSp))
	assert.Nil(t, FindFirst(forest, TypeDgg))
}

func TestRemoveChild(t *testing.T) {
	a := NewAtom(TypeSp, 0, []byte{1})
	b := NewAtom(TypeSp, 0, []byte{2})
	c := NewAtom(TypeClientData, 0, nil)
	cont := NewContainer(TypeSpContainer, 0, a, b, c)

	// identity, not equality: a distinct but equal record is not found
	assert.False(t, cont.RemoveChild(NewAtom(TypeSp, 0, []byte{1})))
	require.Len(t, cont.Children, 3)

	assert.True(t, cont.RemoveChild(b))
	require.Len(t, cont.Children, 2)
	assert.Same(t, a, cont.Children[0])
	assert.Same(t, c, cont.Children[1])

	assert.False(t, cont.RemoveChild(b))
}
