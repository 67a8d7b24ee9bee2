// Copyright 2016 The IBAMR Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package linsys assembles the distributed linear system for a face-centered
// Poisson-type operator and copies data between patch face fields and the
// partitioned solution/right-hand-side vectors.
package linsys

import (
	"github.com/cpmech/gosl/fun/dbf"
)

// PoissonSpec holds the coefficients of the operator  C·u + D·∇²u
type PoissonSpec struct {
	C float64 // mass (damping) coefficient
	D float64 // diffusion coefficient
}

// BcCoefs evaluates boundary-condition coefficients on one side of the
// physical domain. The condition at a boundary point x with outward normal n
// reads
//
//   α·u + β·du/dn = g
//
// side is 0 for the lower and 1 for the upper side of the given axis; comp
// is the depth component of the unknown.
type BcCoefs interface {
	Coefs(axis, side, comp int, t float64, x []float64) (alpha, beta, g float64)
}

// DirichletBc prescribes u = g on every side
type DirichletBc struct {
	G dbf.T // boundary value g(t,x)
}

// Coefs returns α=1, β=0
func (o *DirichletBc) Coefs(axis, side, comp int, t float64, x []float64) (alpha, beta, g float64) {
	return 1, 0, o.G.F(t, x)
}

// NeumannBc prescribes du/dn = g on every side
type NeumannBc struct {
	G dbf.T // boundary flux g(t,x)
}

// Coefs returns α=0, β=1
func (o *NeumannBc) Coefs(axis, side, comp int, t float64, x []float64) (alpha, beta, g float64) {
	return 0, 1, o.G.F(t, x)
}

// RobinBc prescribes α·u + β·du/dn = g with constant α and β
type RobinBc struct {
	Alpha float64
	Beta  float64
	G     dbf.T
}

// Coefs returns the fixed α, β and the evaluated g
func (o *RobinBc) Coefs(axis, side, comp int, t float64, x []float64) (alpha, beta, g float64) {
	return o.Alpha, o.Beta, o.G.F(t, x)
}

// SideBcs selects a different condition per axis and side:
// Sides[2*axis+side]. Missing entries behave as homogeneous Dirichlet.
type SideBcs struct {
	Sides []BcCoefs // [2*ndim]
}

// Coefs dispatches to the per-side condition
func (o *SideBcs) Coefs(axis, side, comp int, t float64, x []float64) (alpha, beta, g float64) {
	k := 2*axis + side
	if k < len(o.Sides) && o.Sides[k] != nil {
		return o.Sides[k].Coefs(axis, side, comp, t, x)
	}
	return 1, 0, 0
}
