// Copyright 2016 The IBAMR Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package linsys

import (
	"github.com/ehsanakrami/IBAMR/field"
	"github.com/ehsanakrami/IBAMR/grid"
)

// AdjustBoundaryRhs folds the boundary-condition contribution into the
// right-hand-side entries adjacent to the physical domain boundary. b must
// be a private clone of the caller's field: entries of boundary faces are
// overwritten with the prescribed value g and entries whose tangential
// stencil leg crosses the boundary lose the ghost-elimination constant.
// With homogeneous=true the boundary value itself is dropped (g treated as
// zero), leaving only the derivative coupling already present in the matrix.
// Patches not intersecting the physical boundary are left untouched.
func AdjustBoundaryRhs(level *grid.Level, b *field.FaceField, spec PoissonSpec, bcs BcCoefs, t float64, homogeneous bool) {
	ndim := level.Ndim
	iv := make([]int, ndim)
	niv := make([]int, ndim)
	x := make([]float64, ndim)
	for _, p := range level.Patches {
		if !level.IntersectsPhysicalBoundary(p) {
			continue
		}
		for axis := 0; axis < ndim; axis++ {
			fbox := p.Box.FaceBox(axis)
			for k := 0; k < fbox.Num(); k++ {
				fbox.KthPoint(k, iv)
				if !ownsFace(level, p, axis, iv) {
					continue
				}
				for d := 0; d < b.Depth; d++ {

					// face on its own normal boundary: rhs is the boundary
					// value itself
					if side, onbnd := onPhysicalBoundary(level, axis, iv); onbnd {
						g := 0.0
						if !homogeneous {
							level.FaceX(axis, iv, x)
							_, _, g = bcs.Coefs(axis, side, d, t, x)
						}
						b.Set(p, axis, iv, d, g)
						continue
					}

					// tangential legs crossing the boundary
					if homogeneous {
						continue
					}
					for dd := 0; dd < ndim; dd++ {
						if dd == axis || level.Periodic[dd] {
							continue
						}
						h := level.Dx[dd]
						for _, sgn := range []int{-1, 1} {
							copy(niv, iv)
							niv[dd] += sgn
							if niv[dd] >= level.Domain.Lo[dd] && niv[dd] <= level.Domain.Hi[dd] {
								continue // neighbour face is inside the domain
							}
							side := 0
							if sgn > 0 {
								side = 1
							}
							boundaryX(level, axis, dd, side, iv, x)
							alpha, beta, g := bcs.Coefs(dd, side, d, t, x)
							denom := alpha/2 + beta/h
							if denom == 0 {
								continue // assembly already rejected this
							}
							val := b.At(p, axis, iv, d)
							b.Set(p, axis, iv, d, val-spec.D/(h*h)*g/denom)
						}
					}
				}
			}
		}
	}
}
