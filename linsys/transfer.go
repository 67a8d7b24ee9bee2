// Copyright 2016 The IBAMR Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package linsys

import (
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/mpi"

	"github.com/ehsanakrami/IBAMR/dofmap"
	"github.com/ehsanakrami/IBAMR/field"
	"github.com/ehsanakrami/IBAMR/synch"
)

// NewVectors allocates the solution and right-hand-side vectors of the
// distributed system. As in the rest of this package, vectors are held at
// full global length on every processor with ownership recorded by the
// partition; only owned entries are written locally and cross-processor
// contributions are joined collectively.
func NewVectors(part *dofmap.Partition) (x, b []float64) {
	x = make([]float64, part.Total)
	b = make([]float64, part.Total)
	return
}

// CopyToVec scatters the locally owned interior face values of f into v at
// their global indices. Ghost and duplicate entries are never scattered, so
// the collective join cannot double-count. comm may be nil for serial runs;
// collective when running distributed.
func CopyToVec(f *field.FaceField, dofs *field.FaceIndexField, part *dofmap.Partition, v []float64, comm *mpi.Communicator) (err error) {
	if f.Depth != dofs.Depth {
		return chk.Err("field depth %d does not match index field depth %d", f.Depth, dofs.Depth)
	}
	if len(v) != part.Total {
		return chk.Err("vector length %d does not match the DOF partition total %d", len(v), part.Total)
	}
	level := f.Level
	distr := comm != nil && comm.Size() > 1
	myrank := 0
	if distr {
		myrank = comm.Rank()
	}
	for i := range v {
		v[i] = 0
	}
	iv := make([]int, level.Ndim)
	for _, p := range level.Patches {
		if distr && p.Proc != myrank {
			continue
		}
		for axis := 0; axis < level.Ndim; axis++ {
			fbox := p.Box.FaceBox(axis)
			for k := 0; k < fbox.Num(); k++ {
				fbox.KthPoint(k, iv)
				if !ownsFace(level, p, axis, iv) {
					continue
				}
				for d := 0; d < f.Depth; d++ {
					v[dofs.At(p, axis, iv, d)] = f.At(p, axis, iv, d)
				}
			}
		}
	}
	if distr {
		w := make([]float64, len(v))
		comm.AllReduceSum(w, v)
		copy(v, w)
	}
	return
}

// CopyFromVec gathers the values of v back into the owned interior faces of
// f, then applies the data-synch schedule (reconciling faces duplicated in
// two patches' interiors) and the ghost-fill schedule, in that order. After
// the call the field is ghost-consistent and stencil-ready.
func CopyFromVec(v []float64, f *field.FaceField, dofs *field.FaceIndexField, part *dofmap.Partition, dataSynch, ghostFill *synch.Schedule, comm *mpi.Communicator) (err error) {
	if f.Depth != dofs.Depth {
		return chk.Err("field depth %d does not match index field depth %d", f.Depth, dofs.Depth)
	}
	level := f.Level
	distr := comm != nil && comm.Size() > 1
	myrank := 0
	if distr {
		myrank = comm.Rank()
	}
	iv := make([]int, level.Ndim)
	for _, p := range level.Patches {
		if distr && p.Proc != myrank {
			continue
		}
		for axis := 0; axis < level.Ndim; axis++ {
			fbox := p.Box.FaceBox(axis)
			for k := 0; k < fbox.Num(); k++ {
				fbox.KthPoint(k, iv)
				if !ownsFace(level, p, axis, iv) {
					continue
				}
				for d := 0; d < f.Depth; d++ {
					f.Set(p, axis, iv, d, v[dofs.At(p, axis, iv, d)])
				}
			}
		}
	}
	err = dataSynch.Apply(f, comm)
	if err != nil {
		return chk.Err("data-synch application failed:\n%v", err)
	}
	err = ghostFill.Apply(f, comm)
	if err != nil {
		return chk.Err("ghost-fill application failed:\n%v", err)
	}
	return
}
