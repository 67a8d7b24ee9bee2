// Copyright 2016 The IBAMR Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package field implements face-centered patch data: one local array per
// patch per spatial axis, covering the patch interior plus a ghost layer,
// with a configurable depth (number of vector components).
package field

import (
	"github.com/cpmech/gosl/chk"

	"github.com/ehsanakrami/IBAMR/grid"
)

// FaceField holds face-centered float64 data on all local patches of a level.
// Arrays for patches owned by other processors are allocated too, since the
// layout is replicated; only their interior values are meaningful after a
// synchronization. Storage per patch and axis is flat column-major over the
// ghosted face box, with depth as the slowest index.
type FaceField struct {
	Level *grid.Level
	Depth int
	Vals  [][][]float64 // [patch][axis][face*depth]
}

// FaceIndexField holds one integer per face with the same layout as FaceField
type FaceIndexField struct {
	Level *grid.Level
	Depth int
	Vals  [][][]int // [patch][axis][face*depth]
}

// NewFaceField allocates a face field with the given depth
func NewFaceField(level *grid.Level, depth int) (o *FaceField) {
	if depth < 1 {
		chk.Panic("face field depth must be at least 1. depth=%d is invalid", depth)
	}
	o = &FaceField{Level: level, Depth: depth}
	o.Vals = make([][][]float64, len(level.Patches))
	for i, p := range level.Patches {
		o.Vals[i] = make([][]float64, level.Ndim)
		for axis := 0; axis < level.Ndim; axis++ {
			n := GhostFaceBox(level, p, axis).Num()
			o.Vals[i][axis] = make([]float64, n*depth)
		}
	}
	return
}

// NewFaceIndexField allocates an integer face field with the given depth.
// All entries start at -1 (unset).
func NewFaceIndexField(level *grid.Level, depth int) (o *FaceIndexField) {
	if depth < 1 {
		chk.Panic("face index field depth must be at least 1. depth=%d is invalid", depth)
	}
	o = &FaceIndexField{Level: level, Depth: depth}
	o.Vals = make([][][]int, len(level.Patches))
	for i, p := range level.Patches {
		o.Vals[i] = make([][]int, level.Ndim)
		for axis := 0; axis < level.Ndim; axis++ {
			n := GhostFaceBox(level, p, axis).Num()
			o.Vals[i][axis] = make([]int, n*depth)
			for k := range o.Vals[i][axis] {
				o.Vals[i][axis][k] = -1
			}
		}
	}
	return
}

// GhostFaceBox returns the ghosted face box of patch p on the given axis
func GhostFaceBox(level *grid.Level, p *grid.Patch, axis int) grid.Box {
	return p.Box.Grow(level.Ghosts).FaceBox(axis)
}

// At returns the value at face iv (global index space) of patch p
func (o *FaceField) At(p *grid.Patch, axis int, iv []int, depth int) float64 {
	gbox := GhostFaceBox(o.Level, p, axis)
	return o.Vals[p.Id][axis][gbox.Index(iv)+depth*gbox.Num()]
}

// Set sets the value at face iv (global index space) of patch p
func (o *FaceField) Set(p *grid.Patch, axis int, iv []int, depth int, v float64) {
	gbox := GhostFaceBox(o.Level, p, axis)
	o.Vals[p.Id][axis][gbox.Index(iv)+depth*gbox.Num()] = v
}

// Clone returns a deep copy of the field
func (o *FaceField) Clone() (c *FaceField) {
	c = NewFaceField(o.Level, o.Depth)
	for i := range o.Vals {
		for axis := range o.Vals[i] {
			copy(c.Vals[i][axis], o.Vals[i][axis])
		}
	}
	return
}

// At returns the index at face iv (global index space) of patch p
func (o *FaceIndexField) At(p *grid.Patch, axis int, iv []int, depth int) int {
	gbox := GhostFaceBox(o.Level, p, axis)
	return o.Vals[p.Id][axis][gbox.Index(iv)+depth*gbox.Num()]
}

// Set sets the index at face iv (global index space) of patch p
func (o *FaceIndexField) Set(p *grid.Patch, axis int, iv []int, depth int, v int) {
	gbox := GhostFaceBox(o.Level, p, axis)
	o.Vals[p.Id][axis][gbox.Index(iv)+depth*gbox.Num()] = v
}
