// Copyright 2026 The pptrec Authors. All rights reserved.
// Use of this source code is governed by the MIT License
// that can be found in the LICENSE file.

// Package record parses the hierarchical record stream of a legacy binary
// presentation document into a tree of typed container and atom records,
// and serializes the tree back to bytes.  Records of unrecognized types
// are carried verbatim so that an unmodified tree round-trips to the
// exact input bytes.
package record

// Record is a single node of the record tree: either an atom (opaque
// payload bytes) or a container (ordered child records).  Records hold no
// parent pointers; parent relationships are derived by walking from a
// root.
type Record struct {
	Type    uint16
	Options uint16

	// Data is the payload of an atom.  nil for containers.
	Data []byte

	// Children are the ordered child records of a container.
	Children []*Record

	container bool

	// trailing holds residual container payload bytes too short to form
	// a child header.  They are re-emitted verbatim after the children.
	trailing []byte

	// verbatim, when set, is the complete encoded form of the record
	// (header included) and is emitted untouched.  Used in lenient mode
	// for subtrees that failed to parse.
	verbatim []byte
}

// NewAtom builds a leaf record with the given payload.  The payload slice
// is used as-is, not copied.
func NewAtom(recType, options uint16, data []byte) *Record {
	return &Record{Type: recType, Options: options, Data: data}
}

// NewContainer builds a container record.  The options word's version
// nibble is forced to the container marker.
func NewContainer(recType uint16, instance uint16, children ...*Record) *Record {
	return &Record{
		Type:      recType,
		Options:   NewOptions(containerVersion, instance),
		Children:  children,
		container: true,
	}
}

// IsContainer reports whether r holds child records.
func (r *Record) IsContainer() bool {
	return r.container
}

// IsOpaque reports whether r is carried as verbatim bytes because its
// contents could not be parsed structurally.
func (r *Record) IsOpaque() bool {
	return r.verbatim != nil
}

func (r *Record) Version() uint8 {
	return uint8(r.Options & 0xF)
}

func (r *Record) Instance() uint16 {
	return r.Options >> 4
}

// SetInstance rewrites the instance portion of the options word.
func (r *Record) SetInstance(instance uint16) {
	r.Options = NewOptions(r.Version(), instance)
}

// AppendChild appends child to a container's child list.
func (r *Record) AppendChild(child *Record) {
	r.Children = append(r.Children, child)
}

// RemoveChild removes child from r's direct children, comparing by
// identity.  It reports whether the child was found.  Remaining children
// keep their order; container sizes are recomputed at serialize time.
func (r *Record) RemoveChild(child *Record) bool {
	for i, c := range r.Children {
		if c == child {
			r.Children = append(r.Children[:i], r.Children[i+1:]...)
			return true
		}
	}
	return false
}

// FindFirst returns the first record of the given type in a pre-order,
// depth-first walk of r's subtree (r itself included), or nil.
func (r *Record) FindFirst(recType uint16) *Record {
	if r.Type == recType {
		return r
	}
	for _, c := range r.Children {
		if found := c.FindFirst(recType); found != nil {
			return found
		}
	}
	return nil
}

// FindFirst returns the first record of the given type across a forest of
// root records, in document order, or nil.
func FindFirst(roots []*Record, recType uint16) *Record {
	for _, r := range roots {
		if found := r.FindFirst(recType); found != nil {
			return found
		}
	}
	return nil
}

// Walk visits r's subtree pre-order, stopping early if fn returns false.
func (r *Record) Walk(fn func(*Record) bool) bool {
	if !fn(r) {
		return false
	}
	for _, c := range r.Children {
		if !c.Walk(fn) {
			return false
		}
	}
	return true
}

// PayloadSize returns the record's payload byte count as it will be
// declared in the serialized header, recomputed from current contents.
func (r *Record) PayloadSize() int {
	if r.verbatim != nil {
		if n := len(r.verbatim); n >= HeaderSize {
			return n - HeaderSize
		}
		return 0
	}
	if !r.container {
		return len(r.Data)
	}
	n := 0
	for _, c := range r.Children {
		n += c.ByteSize()
	}
	return n + len(r.trailing)
}

// ByteSize returns the full encoded size of the record, header included.
func (r *Record) ByteSize() int {
	if r.verbatim != nil {
		return len(r.verbatim)
	}
	return HeaderSize + r.PayloadSize()
}
