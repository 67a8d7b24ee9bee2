// Copyright 2016 The IBAMR Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package grid

import (
	"testing"

	"github.com/cpmech/gosl/chk"
)

func Test_box01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("box01. box arithmetic")

	b := NewBox([]int{0, 0}, []int{3, 2})
	chk.IntAssert(b.Ndim(), 2)
	chk.IntAssert(b.Num(), 12)
	if b.Empty() {
		tst.Errorf("box must not be empty")
		return
	}
	if !b.Contains([]int{3, 0}) || b.Contains([]int{4, 0}) {
		tst.Errorf("Contains failed")
		return
	}

	// intersection
	ov := b.Intersect(NewBox([]int{2, 1}, []int{5, 5}))
	chk.Ints(tst, "ov.Lo", ov.Lo, []int{2, 1})
	chk.Ints(tst, "ov.Hi", ov.Hi, []int{3, 2})
	if !b.Intersect(NewBox([]int{4, 0}, []int{5, 2})).Empty() {
		tst.Errorf("disjoint boxes must have empty intersection")
		return
	}

	// face box: one more point along the normal axis
	fb := b.FaceBox(0)
	chk.IntAssert(fb.Num(), 15)
	chk.Ints(tst, "fb.Hi", fb.Hi, []int{4, 2})

	// grow and shift
	g := b.Grow(1)
	chk.Ints(tst, "g.Lo", g.Lo, []int{-1, -1})
	chk.Ints(tst, "g.Hi", g.Hi, []int{4, 3})
	s := b.Shift([]int{10, -2})
	chk.Ints(tst, "s.Lo", s.Lo, []int{10, -2})
	chk.Ints(tst, "s.Hi", s.Hi, []int{13, 0})
}

func Test_box02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("box02. flat index round trip")

	b := NewBox([]int{-1, 2, 0}, []int{2, 4, 1})
	iv := make([]int, 3)
	for k := 0; k < b.Num(); k++ {
		b.KthPoint(k, iv)
		if !b.Contains(iv) {
			tst.Errorf("point %v of k=%d is outside the box", iv, k)
			return
		}
		chk.IntAssert(b.Index(iv), k)
	}
}

func Test_level01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("level01. patches, ownership and boundaries")

	// 8x4 domain split into two side-by-side patches
	lev := NewLevel(NewBox([]int{0, 0}, []int{7, 3}), []float64{0.25, 0.25}, nil, []bool{false, false}, 1)
	a := lev.AddPatch(NewBox([]int{0, 0}, []int{3, 3}), 0)
	b := lev.AddPatch(NewBox([]int{4, 0}, []int{7, 3}), 1)
	chk.IntAssert(a.Id, 0)
	chk.IntAssert(b.Id, 1)
	chk.IntAssert(lev.Nproc(), 2)
	chk.IntAssert(len(lev.MyPatches(0)), 1)
	chk.IntAssert(len(lev.MyPatches(1)), 1)

	if !lev.IntersectsPhysicalBoundary(a) || !lev.IntersectsPhysicalBoundary(b) {
		tst.Errorf("both patches touch the physical boundary")
		return
	}

	// no periodic direction: only the zero shift
	chk.IntAssert(len(lev.PeriodicShifts()), 1)

	// face centers: x-normal faces sit on cell boundaries along x
	x := make([]float64, 2)
	lev.FaceX(0, []int{0, 0}, x)
	chk.Array(tst, "x(face 0,0)", 1e-15, x, []float64{0, 0.125})
	lev.FaceX(0, []int{8, 3}, x)
	chk.Array(tst, "x(face 8,3)", 1e-15, x, []float64{2, 0.875})
	lev.FaceX(1, []int{2, 4}, x)
	chk.Array(tst, "y-face", 1e-15, x, []float64{0.625, 1})
}

func Test_level02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("level02. periodic shifts")

	lev := NewLevel(NewBox([]int{0, 0}, []int{3, 3}), []float64{1, 1}, nil, []bool{true, false}, 1)
	sh := lev.PeriodicShifts()
	chk.IntAssert(len(sh), 3)
	chk.Ints(tst, "zero shift", sh[0], []int{0, 0})
	seen := map[int]bool{}
	for _, s := range sh[1:] {
		chk.IntAssert(s[1], 0)
		seen[s[0]] = true
	}
	if !seen[4] || !seen[-4] {
		tst.Errorf("expected shifts +4 and -4 along x. got %v", sh)
		return
	}

	// both directions periodic: 9 images
	lev2 := NewLevel(NewBox([]int{0, 0}, []int{3, 3}), []float64{1, 1}, nil, []bool{true, true}, 1)
	chk.IntAssert(len(lev2.PeriodicShifts()), 9)
}
