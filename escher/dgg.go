// Copyright 2026 The pptrec Authors. All rights reserved.
// Use of this source code is governed by the MIT License
// that can be found in the LICENSE file.

package escher

import (
	"encoding/binary"
	"fmt"

	"github.com/slidelab/pptrec/internal/binutil"
)

// ClusterSize is the number of shape IDs each allocation cluster covers.
const ClusterSize = 1024

const (
	dggFixedSize   = 16
	clusterRecSize = 8
	dgSize         = 8
)

// IDCluster is one block of the document-wide shape-ID cluster table,
// tying a range of 1024 IDs to the drawing that allocates from it.
type IDCluster struct {
	DrawingID uint32
	NumUsed   uint32
}

// DggState mirrors the document-wide drawing-group atom: the upper bound
// on allocated shape IDs, shape and drawing counts, and the cluster
// table.  ShapeIDMax holds the highest allocated ID plus one.
type DggState struct {
	ShapeIDMax     uint32
	NumShapesSaved uint32
	NumDrawings    uint32
	Clusters       []IDCluster
}

// NewDggState returns the state of a fresh document with a single
// drawing and one pre-allocated ID cluster.
func NewDggState(drawingID uint32) *DggState {
	return &DggState{
		ShapeIDMax:  1,
		NumDrawings: 1,
		Clusters:    []IDCluster{{DrawingID: drawingID}},
	}
}

// NumIDClusters returns the current cluster-table length.
func (d *DggState) NumIDClusters() int {
	return len(d.Clusters)
}

func (d *DggState) capacity() uint32 {
	return uint32(len(d.Clusters)) * ClusterSize
}

// DecodeDgg parses a drawing-group atom payload.  On the wire the
// cluster-count field stores the table length plus one.
func DecodeDgg(payload []byte) (*DggState, error) {
	r := binutil.NewReader(payload)
	d := &DggState{
		ShapeIDMax: r.Uint32(),
	}
	wireClusters := r.Uint32()
	d.NumShapesSaved = r.Uint32()
	d.NumDrawings = r.Uint32()
	if r.Err() != nil {
		return nil, fmt.Errorf("drawing-group atom needs %d bytes, have %d", dggFixedSize, len(payload))
	}
	n := r.Remaining() / clusterRecSize
	if wireClusters > 0 && int(wireClusters-1) != n {
		return nil, fmt.Errorf("drawing-group atom declares %d clusters, payload holds %d", wireClusters-1, n)
	}
	d.Clusters = make([]IDCluster, 0, n)
	for i := 0; i < n; i++ {
		d.Clusters = append(d.Clusters, IDCluster{
			DrawingID: r.Uint32(),
			NumUsed:   r.Uint32(),
		})
	}
	return d, nil
}

// Encode serializes the drawing-group atom payload.
func (d *DggState) Encode() []byte {
	buf := make([]byte, dggFixedSize+clusterRecSize*len(d.Clusters))
	binary.LittleEndian.PutUint32(buf[0:4], d.ShapeIDMax)
	binary.LittleEndian.PutUint32(buf[4:8], uint32(len(d.Clusters))+1)
	binary.LittleEndian.PutUint32(buf[8:12], d.NumShapesSaved)
	binary.LittleEndian.PutUint32(buf[12:16], d.NumDrawings)
	off := dggFixedSize
	for _, c := range d.Clusters {
		binary.LittleEndian.PutUint32(buf[off:off+4], c.DrawingID)
		binary.LittleEndian.PutUint32(buf[off+4:off+8], c.NumUsed)
		off += clusterRecSize
	}
	return buf
}

// DgState mirrors a per-drawing atom: the drawing's shape count and the
// last shape ID allocated in it.  The drawing's own ID lives in the atom
// header's instance field, not the payload.
type DgState struct {
	NumShapes   uint32
	LastShapeID uint32
}

// DecodeDg parses a per-drawing atom payload.
func DecodeDg(payload []byte) (*DgState, error) {
	r := binutil.NewReader(payload)
	d := &DgState{
		NumShapes:   r.Uint32(),
		LastShapeID: r.Uint32(),
	}
	if r.Err() != nil {
		return nil, fmt.Errorf("per-drawing atom needs %d bytes, have %d", dgSize, len(payload))
	}
	return d, nil
}

// Encode serializes the per-drawing atom payload.
func (d *DgState) Encode() []byte {
	buf := make([]byte, dgSize)
	binary.LittleEndian.PutUint32(buf[0:4], d.NumShapes)
	binary.LittleEndian.PutUint32(buf[4:8], d.LastShapeID)
	return buf
}

// AllocateShapeID hands out the next document-unique shape ID for the
// drawing identified by drawingID, advancing both counter records as one
// logical step.  The cluster table grows by one 1024-ID block whenever
// the new ID exceeds current capacity.  The allocator itself is
// stateless: everything it needs and everything it changes lives in the
// two counter states.
func AllocateShapeID(dgg *DggState, dg *DgState, drawingID uint32) uint32 {
	id := dgg.ShapeIDMax
	if next := dg.LastShapeID + 1; next > id {
		id = next
	}
	if id == 0 {
		id = 1
	}

	if id > dgg.capacity() {
		dgg.Clusters = append(dgg.Clusters, IDCluster{DrawingID: drawingID})
	}
	cluster := int((id - 1) / ClusterSize)
	if cluster < len(dgg.Clusters) {
		dgg.Clusters[cluster].NumUsed++
	}

	dgg.ShapeIDMax = id + 1
	dgg.NumShapesSaved++
	dg.LastShapeID = id
	dg.NumShapes++
	return id
}
