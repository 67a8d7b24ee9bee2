// Copyright 2016 The IBAMR Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package grid

import (
	"github.com/cpmech/gosl/chk"
)

// Patch is a rectangular sub-block of a level, owned by exactly one processor
type Patch struct {
	Id   int // patch id; unique within the level
	Proc int // owning processor
	Box  Box // cell index box (interior, without ghosts)
}

// Level holds one grid level: the domain box, the cell sizes, the periodic
// flags and the patches. All processors hold the same Level.
type Level struct {
	Ndim     int      // space dimension
	Domain   Box      // cell index box covering the whole level
	Dx       []float64 // [ndim] cell sizes
	Xlo      []float64 // [ndim] physical coordinates of the domain lower corner
	Periodic []bool   // [ndim] periodic directions
	Ghosts   int      // ghost width of face fields living on this level
	Patches  []*Patch // all patches, id == position in slice
}

// NewLevel returns a level without patches
func NewLevel(domain Box, dx, xlo []float64, periodic []bool, ghosts int) (o *Level) {
	ndim := domain.Ndim()
	chk.IntAssert(len(dx), ndim)
	chk.IntAssert(len(periodic), ndim)
	if ghosts < 1 {
		chk.Panic("face fields need a ghost width of at least 1. ghosts=%d is invalid", ghosts)
	}
	o = new(Level)
	o.Ndim = ndim
	o.Domain = domain.Clone()
	o.Dx = make([]float64, ndim)
	copy(o.Dx, dx)
	o.Xlo = make([]float64, ndim)
	if xlo != nil {
		copy(o.Xlo, xlo)
	}
	o.Periodic = make([]bool, ndim)
	copy(o.Periodic, periodic)
	o.Ghosts = ghosts
	return
}

// AddPatch appends a patch owned by processor proc. Patch boxes must be
// pairwise disjoint and contained in the domain.
func (o *Level) AddPatch(box Box, proc int) *Patch {
	if box.Empty() {
		chk.Panic("cannot add empty patch box to level")
	}
	if !o.Domain.Intersect(box).equalBounds(box) {
		chk.Panic("patch box is not contained in the level domain")
	}
	for _, p := range o.Patches {
		if !p.Box.Intersect(box).Empty() {
			chk.Panic("patch box overlaps patch %d", p.Id)
		}
	}
	p := &Patch{Id: len(o.Patches), Proc: proc, Box: box}
	o.Patches = append(o.Patches, p)
	return p
}

// Nproc returns the number of processors referenced by the layout
func (o *Level) Nproc() (n int) {
	n = 1
	for _, p := range o.Patches {
		if p.Proc+1 > n {
			n = p.Proc + 1
		}
	}
	return
}

// MyPatches returns the patches owned by processor proc
func (o *Level) MyPatches(proc int) (res []*Patch) {
	for _, p := range o.Patches {
		if p.Proc == proc {
			res = append(res, p)
		}
	}
	return
}

// IntersectsPhysicalBoundary tells whether patch p touches a non-periodic
// side of the domain
func (o *Level) IntersectsPhysicalBoundary(p *Patch) bool {
	for d := 0; d < o.Ndim; d++ {
		if o.Periodic[d] {
			continue
		}
		if p.Box.Lo[d] == o.Domain.Lo[d] || p.Box.Hi[d] == o.Domain.Hi[d] {
			return true
		}
	}
	return false
}

// PeriodicShifts returns the translation vectors mapping the level onto its
// periodic images, including the zero shift (first entry). Non-periodic
// directions never shift.
func (o *Level) PeriodicShifts() (shifts [][]int) {
	shifts = append(shifts, make([]int, o.Ndim))
	span := make([]int, o.Ndim)
	for d := 0; d < o.Ndim; d++ {
		span[d] = o.Domain.Hi[d] - o.Domain.Lo[d] + 1
	}
	// enumerate -1,0,+1 multiples per periodic direction
	nsh := 1
	for d := 0; d < o.Ndim; d++ {
		if o.Periodic[d] {
			nsh *= 3
		}
	}
	for k := 1; k < nsh; k++ {
		s := make([]int, o.Ndim)
		rem := k
		for d := 0; d < o.Ndim; d++ {
			if !o.Periodic[d] {
				continue
			}
			m := rem % 3 // 0, 1, 2 => 0, +1, -1
			rem /= 3
			switch m {
			case 1:
				s[d] = span[d]
			case 2:
				s[d] = -span[d]
			}
		}
		shifts = append(shifts, s)
	}
	return
}

// FaceX returns the physical coordinates of the center of face iv normal to
// the given axis
func (o *Level) FaceX(axis int, iv []int, x []float64) {
	for d := 0; d < o.Ndim; d++ {
		x[d] = o.Xlo[d] + float64(iv[d]-o.Domain.Lo[d])*o.Dx[d]
		if d != axis {
			x[d] += 0.5 * o.Dx[d]
		}
	}
}

// equalBounds compares bounds exactly
func (o Box) equalBounds(b Box) bool {
	for d := 0; d < o.Ndim(); d++ {
		if o.Lo[d] != b.Lo[d] || o.Hi[d] != b.Hi[d] {
			return false
		}
	}
	return true
}
