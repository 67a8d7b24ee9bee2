// Copyright 2016 The IBAMR Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package linsys

import (
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/la"
	"github.com/cpmech/gosl/mpi"

	"github.com/ehsanakrami/IBAMR/dofmap"
	"github.com/ehsanakrami/IBAMR/field"
	"github.com/ehsanakrami/IBAMR/grid"
)

// AssembleLaplacian builds the sparse operator  C·u + D·∇²u  on the faces of
// a level, one row per locally owned DOF, with global column indices taken
// from the index field (ghost entries provide the off-processor couplings).
// Rows of faces lying on a physical boundary discretize the boundary
// condition itself; tangential stencil legs crossing the boundary are folded
// into the diagonal using the condition's coefficients. comm may be nil for
// serial runs. The call is collective: processors owning zero DOFs still
// participate.
func AssembleLaplacian(level *grid.Level, dofs *field.FaceIndexField, part *dofmap.Partition, spec PoissonSpec, bcs BcCoefs, t float64, comm *mpi.Communicator) (K *la.Triplet, err error) {
	distr := comm != nil && comm.Size() > 1
	myrank := 0
	if distr {
		myrank = comm.Rank()
	}
	ndim := level.Ndim
	nloc := part.Counts[myrank]
	if !distr {
		nloc = part.Total
	}
	K = new(la.Triplet)
	K.Init(part.Total, part.Total, max1(nloc, 1)*(2*ndim+1))

	iv := make([]int, ndim)
	niv := make([]int, ndim)
	x := make([]float64, ndim)
	for _, p := range level.Patches {
		if distr && p.Proc != myrank {
			continue // this processor assembles only the rows it owns
		}
		for axis := 0; axis < ndim; axis++ {
			fbox := p.Box.FaceBox(axis)
			for k := 0; k < fbox.Num(); k++ {
				fbox.KthPoint(k, iv)
				if !ownsFace(level, p, axis, iv) {
					continue
				}
				for d := 0; d < dofs.Depth; d++ {
					row := dofs.At(p, axis, iv, d)
					if row < 0 {
						return nil, chk.Err("face of patch %d has no DOF index; the indexer must run first", p.Id)
					}

					// boundary face on its own normal axis: the row is the
					// discrete boundary condition α·u + β·(u-u_in)/h = g
					if side, onbnd := onPhysicalBoundary(level, axis, iv); onbnd {
						h := level.Dx[axis]
						level.FaceX(axis, iv, x)
						alpha, beta, _ := bcs.Coefs(axis, side, d, t, x)
						copy(niv, iv)
						if side == 0 {
							niv[axis] += 1
						} else {
							niv[axis] -= 1
						}
						in := dofs.At(p, axis, niv, d)
						K.Put(row, row, alpha+beta/h)
						if in >= 0 {
							K.Put(row, in, -beta/h)
						}
						continue
					}

					// interior Laplacian row
					diag := spec.C
					for dd := 0; dd < ndim; dd++ {
						h := level.Dx[dd]
						for _, sgn := range []int{-1, 1} {
							copy(niv, iv)
							niv[dd] += sgn
							diag -= spec.D / (h * h)
							col := dofs.At(p, axis, niv, d)
							if col >= 0 {
								K.Put(row, col, spec.D/(h*h))
								continue
							}
							// ghost beyond the physical boundary: eliminate
							// the ghost value with the boundary condition
							side := 0
							if sgn > 0 {
								side = 1
							}
							boundaryX(level, axis, dd, side, iv, x)
							alpha, beta, _ := bcs.Coefs(dd, side, d, t, x)
							denom := alpha/2 + beta/h
							if denom == 0 {
								return nil, chk.Err("boundary coefficients α=%g β=%g are singular on axis %d", alpha, beta, dd)
							}
							diag += spec.D / (h * h) * (beta/h - alpha/2) / denom
						}
					}
					K.Put(row, row, diag)
				}
			}
		}
	}
	return
}

// ownsFace tells whether patch p is the authoritative holder of face iv
func ownsFace(level *grid.Level, p *grid.Patch, axis int, iv []int) bool {
	q, fiv := dofmap.CanonicalFace(level, axis, iv)
	if q == nil || q.Id != p.Id {
		return false
	}
	for d := range iv {
		if fiv[d] != iv[d] {
			return false
		}
	}
	return true
}

// onPhysicalBoundary tells whether face iv (normal to axis) lies on a
// non-periodic side of the domain, and which side
func onPhysicalBoundary(level *grid.Level, axis int, iv []int) (side int, onbnd bool) {
	if level.Periodic[axis] {
		return
	}
	if iv[axis] == level.Domain.Lo[axis] {
		return 0, true
	}
	if iv[axis] == level.Domain.Hi[axis]+1 {
		return 1, true
	}
	return
}

// boundaryX computes the physical boundary point where a tangential stencil
// leg of face iv (normal to axis) crosses the domain side on direction dd
func boundaryX(level *grid.Level, axis, dd, side int, iv []int, x []float64) {
	level.FaceX(axis, iv, x)
	if side == 0 {
		x[dd] = level.Xlo[dd]
	} else {
		span := level.Domain.Hi[dd] - level.Domain.Lo[dd] + 1
		x[dd] = level.Xlo[dd] + float64(span)*level.Dx[dd]
	}
}

func max1(a, b int) int {
	if a > b {
		return a
	}
	return b
}
