// Copyright 2026 The pptrec Authors. All rights reserved.
// Use of this source code is governed by the MIT License
// that can be found in the LICENSE file.

package record

// Serialize encodes a record subtree.  Container lengths are recomputed
// bottom-up from current contents, so the declared length of every
// container always matches the exact byte count of its serialized
// children, no matter what was mutated since parse.
func Serialize(r *Record) []byte {
	return appendRecord(make([]byte, 0, r.ByteSize()), r)
}

// SerializeAll encodes a forest of top-level records in order.
func SerializeAll(roots []*Record) []byte {
	n := 0
	for _, r := range roots {
		n += r.ByteSize()
	}
	buf := make([]byte, 0, n)
	for _, r := range roots {
		buf = appendRecord(buf, r)
	}
	return buf
}

func appendRecord(buf []byte, r *Record) []byte {
	if r.verbatim != nil {
		return append(buf, r.verbatim...)
	}
	h := Header{
		Options: r.Options,
		Type:    r.Type,
		Length:  uint32(r.PayloadSize()),
	}
	buf = h.AppendTo(buf)
	if !r.container {
		return append(buf, r.Data...)
	}
	for _, c := range r.Children {
		buf = appendRecord(buf, c)
	}
	return append(buf, r.trailing...)
}
