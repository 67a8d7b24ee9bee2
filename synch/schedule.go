// Copyright 2016 The IBAMR Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package synch implements the reusable communication schedules that keep
// duplicated face values consistent across abutting patches (data synch) and
// fill ghost layers from neighbour interiors (ghost fill). Building a
// schedule only computes the plan; Apply moves the data.
package synch

import (
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/mpi"

	"github.com/ehsanakrami/IBAMR/field"
	"github.com/ehsanakrami/IBAMR/grid"
)

// Transfer is one box-pair overlap: faces in DstBox (global index space, on
// the destination patch) receive the values the source patch holds at
// iv - Shift. Shift is zero except across periodic images.
type Transfer struct {
	Src    int      // source patch id
	Dst    int      // destination patch id
	Axis   int      // face normal axis
	DstBox grid.Box // destination face box
	Shift  []int    // periodic shift from source to destination
}

// Schedule is an immutable communication plan over one level
type Schedule struct {
	Level     *grid.Level
	Transfers []Transfer
}

// BuildDataSynch builds the plan that reconciles geometrically coincident
// faces held by two abutting patches. Destination boxes are restricted to
// the one-face-thick upper stencil box per axis, so the patch seeing the
// face as a lower-side face is authoritative. Shifts with a nonzero offset
// on a different axis cannot produce a coincident face and are skipped.
func BuildDataSynch(level *grid.Level) (o *Schedule) {
	o = &Schedule{Level: level}
	shifts := level.PeriodicShifts()
	for _, dst := range level.Patches {
		for axis := 0; axis < level.Ndim; axis++ {
			stencil := dst.Box.FaceBox(axis)
			stencil.Lo[axis] = stencil.Hi[axis]
			for _, src := range level.Patches {
				for _, s := range shifts {
					if src.Id == dst.Id && isZero(s) {
						continue
					}
					if skipAxis(s, axis) {
						continue
					}
					auth := src.Box.FaceBox(axis)
					auth.Hi[axis] -= 1 // faces the source sees as lower-side
					ov := stencil.Intersect(auth.Shift(s))
					if !ov.Empty() {
						o.Transfers = append(o.Transfers, Transfer{
							Src: src.Id, Dst: dst.Id, Axis: axis,
							DstBox: ov, Shift: cloneShift(s),
						})
					}
				}
			}
		}
	}
	return
}

// BuildGhostFill builds the plan that fills the ghost face layer of every
// patch from neighbour interiors and periodic images. It must be applied
// after data synch so that the pulled interiors are already reconciled.
func BuildGhostFill(level *grid.Level) (o *Schedule) {
	o = &Schedule{Level: level}
	shifts := level.PeriodicShifts()
	for _, dst := range level.Patches {
		for axis := 0; axis < level.Ndim; axis++ {
			gbox := field.GhostFaceBox(level, dst, axis)
			inner := dst.Box.FaceBox(axis)
			for _, src := range level.Patches {
				for _, s := range shifts {
					if src.Id == dst.Id && isZero(s) {
						continue
					}
					full := gbox.Intersect(src.Box.FaceBox(axis).Shift(s))
					if full.Empty() {
						continue
					}
					for _, ov := range boxDifference(full, inner) {
						o.Transfers = append(o.Transfers, Transfer{
							Src: src.Id, Dst: dst.Id, Axis: axis,
							DstBox: ov, Shift: cloneShift(s),
						})
					}
				}
			}
		}
	}
	return
}

// Apply executes the plan on a face field. comm may be nil for serial runs.
// Transfers whose two endpoints live on the same processor are direct copies
// done by that processor; the remaining transfers are joined across
// processors with one collective sum over a slot buffer, so every processor
// must call Apply in the same order. The split between the two legs depends
// only on the patch owners, never on the calling rank, so slot offsets and
// the collective itself agree on all processors.
func (o *Schedule) Apply(f *field.FaceField, comm *mpi.Communicator) (err error) {
	if f.Level != o.Level {
		return chk.Err("schedule and field live on different levels")
	}
	distr := comm != nil && comm.Size() > 1

	if !distr {
		for _, t := range o.Transfers {
			o.copyLocal(f, t)
		}
		return
	}
	myrank := comm.Rank()

	// local leg
	for _, t := range o.Transfers {
		src := o.Level.Patches[t.Src]
		dst := o.Level.Patches[t.Dst]
		if src.Proc == dst.Proc && src.Proc == myrank {
			o.copyLocal(f, t)
		}
	}
	nslots := o.collectiveSlots(f.Depth)
	if nslots == 0 {
		return
	}

	// remote leg: sources write their slots, everyone sums, destinations read
	buf := make([]float64, nslots)
	wrk := make([]float64, nslots)
	iv := make([]int, o.Level.Ndim)
	sv := make([]int, o.Level.Ndim)
	pos := 0
	for _, t := range o.Transfers {
		src := o.Level.Patches[t.Src]
		dst := o.Level.Patches[t.Dst]
		if src.Proc == dst.Proc {
			continue
		}
		n := t.DstBox.Num()
		if src.Proc == myrank {
			for d := 0; d < f.Depth; d++ {
				for k := 0; k < n; k++ {
					t.DstBox.KthPoint(k, iv)
					shiftBack(iv, t.Shift, sv)
					buf[pos+d*n+k] = f.At(src, t.Axis, sv, d)
				}
			}
		}
		pos += n * f.Depth
	}
	comm.AllReduceSum(wrk, buf)
	pos = 0
	for _, t := range o.Transfers {
		src := o.Level.Patches[t.Src]
		dst := o.Level.Patches[t.Dst]
		if src.Proc == dst.Proc {
			continue
		}
		n := t.DstBox.Num()
		if dst.Proc == myrank {
			for d := 0; d < f.Depth; d++ {
				for k := 0; k < n; k++ {
					t.DstBox.KthPoint(k, iv)
					f.Set(dst, t.Axis, iv, d, wrk[pos+d*n+k])
				}
			}
		}
		pos += n * f.Depth
	}
	return
}

// collectiveSlots counts the buffer slots of the transfers that enter the
// collective sum: exactly those whose endpoints live on different
// processors. The count is a function of the plan alone.
func (o *Schedule) collectiveSlots(depth int) (nslots int) {
	for _, t := range o.Transfers {
		if o.Level.Patches[t.Src].Proc != o.Level.Patches[t.Dst].Proc {
			nslots += t.DstBox.Num() * depth
		}
	}
	return
}

// copyLocal copies one transfer between two patch arrays in this process
func (o *Schedule) copyLocal(f *field.FaceField, t Transfer) {
	src := o.Level.Patches[t.Src]
	dst := o.Level.Patches[t.Dst]
	n := t.DstBox.Num()
	iv := make([]int, o.Level.Ndim)
	sv := make([]int, o.Level.Ndim)
	for d := 0; d < f.Depth; d++ {
		for k := 0; k < n; k++ {
			t.DstBox.KthPoint(k, iv)
			shiftBack(iv, t.Shift, sv)
			f.Set(dst, t.Axis, iv, d, f.At(src, t.Axis, sv, d))
		}
	}
}

// auxiliary ////////////////////////////////////////////////////////////////

func isZero(s []int) bool {
	for _, v := range s {
		if v != 0 {
			return false
		}
	}
	return true
}

// skipAxis tells whether shift s has an offset on an axis other than the
// face normal, in which case no coincident face can exist
func skipAxis(s []int, axis int) bool {
	for d, v := range s {
		if d != axis && v != 0 {
			return true
		}
	}
	return false
}

func cloneShift(s []int) []int {
	c := make([]int, len(s))
	copy(c, s)
	return c
}

func shiftBack(iv, s, out []int) {
	for d := range iv {
		out[d] = iv[d] - s[d]
	}
}

// boxDifference returns a minus b as a list of disjoint boxes
func boxDifference(a, b grid.Box) (res []grid.Box) {
	ov := a.Intersect(b)
	if ov.Empty() {
		return []grid.Box{a}
	}
	rem := a.Clone()
	for d := 0; d < a.Ndim(); d++ {
		if ov.Lo[d] > rem.Lo[d] {
			lo := rem.Clone()
			lo.Hi[d] = ov.Lo[d] - 1
			res = append(res, lo)
			rem.Lo[d] = ov.Lo[d]
		}
		if ov.Hi[d] < rem.Hi[d] {
			hi := rem.Clone()
			hi.Lo[d] = ov.Hi[d] + 1
			res = append(res, hi)
			rem.Hi[d] = ov.Hi[d]
		}
	}
	return
}
