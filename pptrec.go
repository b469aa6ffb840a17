// Copyright 2026 The pptrec Authors. All rights reserved.
// Use of this source code is governed by the MIT License
// that can be found in the LICENSE file.

// Package pptrec reads and writes the record stream of legacy binary
// presentation documents.  A parsed Document is a tree of container and
// atom records; records the codec does not recognize are preserved
// verbatim, so an unmodified document serializes back to its exact input
// bytes.  The escher subpackage decodes the per-shape drawing-property
// bags and shape-ID counters nested inside specific records.
package pptrec

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/slidelab/pptrec/escher"
	"github.com/slidelab/pptrec/internal/mmapfile"
	"github.com/slidelab/pptrec/record"
)

// ErrUnsupportedLegacyFormat is returned when the input carries the
// compound-file signature: either a whole compound document or a
// pre-container-format file was passed instead of the extracted record
// stream.
var ErrUnsupportedLegacyFormat = errors.New("input is a compound/legacy document, not a record stream")

var compoundFileMagic = []byte{0xD0, 0xCF, 0x11, 0xE0, 0xA1, 0xB1, 0x1A, 0xE1}

// Document is a parsed record stream.  It exclusively owns its record
// tree: each record has at most one parent, and the document owns the
// top-level list.  A Document is not safe for concurrent mutation.
type Document struct {
	records []*record.Record
	mapping *mmapfile.File
}

// Parse builds a Document from an in-memory record stream.  The default
// mode is lenient: malformed subtrees are preserved as opaque records.
// Record payloads alias data; the caller must not mutate it afterwards.
func Parse(data []byte, opts ...Option) (*Document, error) {
	if bytes.HasPrefix(data, compoundFileMagic) {
		return nil, ErrUnsupportedLegacyFormat
	}
	roots, err := record.Parse(data, parseOptions(opts)...)
	if err != nil {
		return nil, err
	}
	return &Document{records: roots}, nil
}

// OpenFile memory-maps path and parses it.  Close the Document to
// release the mapping; the record tree is invalid afterwards.
func OpenFile(path string, opts ...Option) (*Document, error) {
	m, err := mmapfile.Open(path)
	if err != nil {
		return nil, fmt.Errorf("mmapfile.Open: %w", err)
	}
	doc, err := Parse(m.Data(), opts...)
	if err != nil {
		_ = m.Close()
		return nil, err
	}
	doc.mapping = m
	return doc, nil
}

// Close releases the file mapping, if any.
func (d *Document) Close() error {
	if d.mapping == nil {
		return nil
	}
	m := d.mapping
	d.mapping = nil
	d.records = nil
	return m.Close()
}

// Records returns the top-level record list.
func (d *Document) Records() []*record.Record {
	return d.records
}

// Serialize encodes the whole tree, recomputing every container's
// declared length from its current children.
func (d *Document) Serialize() []byte {
	return record.SerializeAll(d.records)
}

// FindFirst returns the first record of the given type in document
// order, or nil.
func (d *Document) FindFirst(recType uint16) *record.Record {
	return record.FindFirst(d.records, recType)
}

// ParentOf returns the container holding r, or nil if r is a top-level
// record or not part of this document.  Records carry no parent
// back-pointers; the relationship is recomputed by walking the tree.
func (d *Document) ParentOf(r *record.Record) *record.Record {
	var parent *record.Record
	for _, root := range d.records {
		root.Walk(func(rec *record.Record) bool {
			for _, c := range rec.Children {
				if c == r {
					parent = rec
					return false
				}
			}
			return true
		})
		if parent != nil {
			break
		}
	}
	return parent
}

// RemoveRecord removes r from wherever it sits in the tree, comparing by
// identity.  It reports whether r was found.  Sibling records are left
// untouched; container sizes adjust on the next Serialize.
func (d *Document) RemoveRecord(r *record.Record) bool {
	for i, root := range d.records {
		if root == r {
			d.records = append(d.records[:i], d.records[i+1:]...)
			return true
		}
	}
	if parent := d.ParentOf(r); parent != nil {
		return parent.RemoveChild(r)
	}
	return false
}

// ShapeOptions decodes the drawing-property bag of a shape container
// (or of any record subtree holding an Opt record).  It returns the Opt
// record alongside the decoded bag so edits can be written back with
// UpdateOptions.
func (d *Document) ShapeOptions(sp *record.Record) (*record.Record, *escher.PropertyBag, error) {
	opt := sp.FindFirst(record.TypeOpt)
	if opt == nil {
		return nil, nil, fmt.Errorf("no options record in %s container", record.TypeName(sp.Type))
	}
	bag, err := escher.DecodeBag(opt.Data)
	if err != nil {
		return nil, nil, fmt.Errorf("decode options of %s: %w", record.TypeName(sp.Type), err)
	}
	return opt, bag, nil
}

// UpdateOptions writes a property bag back into its Opt record, keeping
// the record's instance field in sync with the property count.
func UpdateOptions(opt *record.Record, bag *escher.PropertyBag) {
	opt.Data = bag.Encode()
	opt.SetInstance(uint16(bag.Len()))
}

// AllocateShapeID allocates the next document-unique shape ID against
// the document's drawing-group atom and the given drawing's atom,
// re-encoding both counter records in place.
func (d *Document) AllocateShapeID(dg *record.Record) (uint32, error) {
	if dg == nil || dg.Type != record.TypeDg {
		return 0, fmt.Errorf("not a per-drawing atom: %v", dg)
	}
	dggRec := d.FindFirst(record.TypeDgg)
	if dggRec == nil {
		return 0, errors.New("document has no drawing-group atom")
	}
	dggState, err := escher.DecodeDgg(dggRec.Data)
	if err != nil {
		return 0, fmt.Errorf("decode drawing-group atom: %w", err)
	}
	dgState, err := escher.DecodeDg(dg.Data)
	if err != nil {
		return 0, fmt.Errorf("decode per-drawing atom: %w", err)
	}

	id := escher.AllocateShapeID(dggState, dgState, uint32(dg.Instance()))

	dggRec.Data = dggState.Encode()
	dg.Data = dgState.Encode()
	return id, nil
}
