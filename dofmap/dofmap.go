// Copyright 2016 The IBAMR Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package dofmap assigns a globally unique equation number to every owned
// face-centered unknown of a patch level and records the per-processor
// partition of the resulting degrees of freedom.
//
// A face shared by two abutting patches belongs to the patch that sees it as
// a lower-side face. Since the patch layout is replicated on every
// processor, each processor reproduces the full numbering locally; ghost
// entries therefore carry the owning patch's index without a communication
// round.
package dofmap

import (
	"github.com/cpmech/gosl/chk"

	"github.com/ehsanakrami/IBAMR/field"
	"github.com/ehsanakrami/IBAMR/grid"
)

// Partition holds the number of DOFs owned by each processor. The rank
// ranges concatenate to [0, Total) with no gaps: rank r owns indices
// [Offsets[r], Offsets[r]+Counts[r]).
type Partition struct {
	Counts  []int // [nproc] owned DOFs per rank
	Offsets []int // [nproc] first index per rank
	Total   int   // total number of DOFs
}

// OwnedBy returns the rank owning global index idx
func (o *Partition) OwnedBy(idx int) int {
	for r := len(o.Offsets) - 1; r >= 0; r-- {
		if idx >= o.Offsets[r] {
			return r
		}
	}
	return -1
}

// CanonicalFace maps face iv (normal to axis, possibly a ghost or a shared
// duplicate) to the patch owning it and the face position in that patch's
// index space. Returns nil when the face lies outside the physical domain.
func CanonicalFace(level *grid.Level, axis int, iv []int) (*grid.Patch, []int) {
	// upper-side cell first: the patch holding the cell above the face owns
	// it, which makes the face a lower-side face of its owner
	civ := make([]int, level.Ndim)
	copy(civ, iv)
	if p, ok := wrapCell(level, civ); ok {
		if p != nil {
			return p, civ
		}
	}
	// no upper cell: fall back to the patch holding the cell below
	copy(civ, iv)
	civ[axis] -= 1
	if p, ok := wrapCell(level, civ); ok {
		if p != nil {
			civ[axis] += 1
			return p, civ
		}
	}
	return nil, nil
}

// BuildLevelDOFIndices fills dofs with the global numbering and returns the
// DOF partition. Owned faces are numbered rank-major, then patch id, axis,
// column-major face order and depth; every other entry (ghost faces and
// upper-side duplicates) receives the owner's index, or -1 outside the
// physical domain.
func BuildLevelDOFIndices(dofs *field.FaceIndexField, level *grid.Level) (part *Partition, err error) {
	if dofs.Level != level {
		return nil, chk.Err("index field was allocated for a different level")
	}
	nproc := level.Nproc()
	part = &Partition{
		Counts:  make([]int, nproc),
		Offsets: make([]int, nproc),
	}

	// first pass: number owned faces
	eq := 0
	iv := make([]int, level.Ndim)
	for r := 0; r < nproc; r++ {
		part.Offsets[r] = eq
		for _, p := range level.Patches {
			if p.Proc != r {
				continue
			}
			for axis := 0; axis < level.Ndim; axis++ {
				fbox := p.Box.FaceBox(axis)
				for k := 0; k < fbox.Num(); k++ {
					fbox.KthPoint(k, iv)
					q, fiv := CanonicalFace(level, axis, iv)
					if q == nil || q.Id != p.Id || !sameIv(fiv, iv) {
						continue
					}
					for d := 0; d < dofs.Depth; d++ {
						dofs.Set(p, axis, iv, d, eq)
						eq += 1
					}
				}
			}
		}
		part.Counts[r] = eq - part.Offsets[r]
	}
	part.Total = eq

	// second pass: duplicates and ghosts copy the owner's index
	for _, p := range level.Patches {
		for axis := 0; axis < level.Ndim; axis++ {
			gbox := field.GhostFaceBox(level, p, axis)
			for k := 0; k < gbox.Num(); k++ {
				gbox.KthPoint(k, iv)
				q, fiv := CanonicalFace(level, axis, iv)
				if q == nil {
					continue // outside the physical domain
				}
				if q.Id == p.Id && sameIv(fiv, iv) {
					continue // already numbered
				}
				for d := 0; d < dofs.Depth; d++ {
					dofs.Set(p, axis, iv, d, dofs.At(q, axis, fiv, d))
				}
			}
		}
	}
	return
}

// auxiliary ////////////////////////////////////////////////////////////////

// wrapCell shifts cell civ into the domain along periodic directions and
// locates the patch containing it. ok is false when civ falls outside the
// domain on a non-periodic side.
func wrapCell(level *grid.Level, civ []int) (p *grid.Patch, ok bool) {
	for d := 0; d < level.Ndim; d++ {
		span := level.Domain.Hi[d] - level.Domain.Lo[d] + 1
		if civ[d] < level.Domain.Lo[d] || civ[d] > level.Domain.Hi[d] {
			if !level.Periodic[d] {
				return nil, false
			}
			for civ[d] < level.Domain.Lo[d] {
				civ[d] += span
			}
			for civ[d] > level.Domain.Hi[d] {
				civ[d] -= span
			}
		}
	}
	for _, q := range level.Patches {
		if q.Box.Contains(civ) {
			return q, true
		}
	}
	return nil, true // inside the domain but not covered by any patch
}

func sameIv(a, b []int) bool {
	for d := range a {
		if a[d] != b[d] {
			return false
		}
	}
	return true
}
