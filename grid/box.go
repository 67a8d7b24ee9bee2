// Copyright 2016 The IBAMR Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package grid implements integer box arithmetic and the patch-level layout
// consumed by the staggered-grid level solver. The layout metadata (boxes and
// processor ownership) is replicated on every processor; only field data is
// distributed.
package grid

import (
	"github.com/cpmech/gosl/chk"
)

// Box is a rectangular block of cell indices with inclusive bounds.
// An empty box has Hi[d] < Lo[d] for some d.
type Box struct {
	Lo []int // [ndim] lower cell index
	Hi []int // [ndim] upper cell index (inclusive)
}

// NewBox returns a box with copied bounds
func NewBox(lo, hi []int) Box {
	chk.IntAssert(len(lo), len(hi))
	b := Box{Lo: make([]int, len(lo)), Hi: make([]int, len(hi))}
	copy(b.Lo, lo)
	copy(b.Hi, hi)
	return b
}

// Ndim returns the number of spatial dimensions
func (o Box) Ndim() int { return len(o.Lo) }

// Clone returns a deep copy
func (o Box) Clone() Box { return NewBox(o.Lo, o.Hi) }

// Empty tells whether the box contains no points
func (o Box) Empty() bool {
	for d := 0; d < o.Ndim(); d++ {
		if o.Hi[d] < o.Lo[d] {
			return true
		}
	}
	return false
}

// Num returns the number of index points in the box (0 if empty)
func (o Box) Num() int {
	if o.Empty() {
		return 0
	}
	n := 1
	for d := 0; d < o.Ndim(); d++ {
		n *= o.Hi[d] - o.Lo[d] + 1
	}
	return n
}

// Contains tells whether point iv is inside the box
func (o Box) Contains(iv []int) bool {
	for d := 0; d < o.Ndim(); d++ {
		if iv[d] < o.Lo[d] || iv[d] > o.Hi[d] {
			return false
		}
	}
	return true
}

// Intersect returns the intersection with another box (possibly empty)
func (o Box) Intersect(b Box) Box {
	r := o.Clone()
	for d := 0; d < o.Ndim(); d++ {
		if b.Lo[d] > r.Lo[d] {
			r.Lo[d] = b.Lo[d]
		}
		if b.Hi[d] < r.Hi[d] {
			r.Hi[d] = b.Hi[d]
		}
	}
	return r
}

// Shift returns the box translated by vector s
func (o Box) Shift(s []int) Box {
	r := o.Clone()
	for d := 0; d < o.Ndim(); d++ {
		r.Lo[d] += s[d]
		r.Hi[d] += s[d]
	}
	return r
}

// Grow returns the box expanded by n index points on every side
func (o Box) Grow(n int) Box {
	r := o.Clone()
	for d := 0; d < o.Ndim(); d++ {
		r.Lo[d] -= n
		r.Hi[d] += n
	}
	return r
}

// FaceBox returns the index box of faces normal to the given axis.
// Faces on axis have one more index point than cells along that axis;
// face iv sits between cells iv-e_axis and iv.
func (o Box) FaceBox(axis int) Box {
	r := o.Clone()
	r.Hi[axis] += 1
	return r
}

// Index returns the flat column-major offset of point iv within the box.
// The first axis runs fastest; iv must be inside the box.
func (o Box) Index(iv []int) int {
	k := 0
	stride := 1
	for d := 0; d < o.Ndim(); d++ {
		k += (iv[d] - o.Lo[d]) * stride
		stride *= o.Hi[d] - o.Lo[d] + 1
	}
	return k
}

// KthPoint decodes the flat column-major offset k into point iv
func (o Box) KthPoint(k int, iv []int) {
	for d := 0; d < o.Ndim(); d++ {
		n := o.Hi[d] - o.Lo[d] + 1
		iv[d] = o.Lo[d] + k%n
		k /= n
	}
}
