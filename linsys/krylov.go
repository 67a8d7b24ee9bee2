// Copyright 2016 The IBAMR Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package linsys

import (
	"gonum.org/v1/gonum/floats"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/la"
	"github.com/cpmech/gosl/mpi"
)

// Krylov implements the built-in iterative solvers: conjugate gradients for
// symmetric operators and BiCGStab for the general case (boundary-condition
// elimination makes the assembled operator mildly nonsymmetric). Each
// processor holds the rows it assembled; matrix-vector products are joined
// with a collective sum, so all vector recurrences stay identical on every
// processor.
type Krylov struct {
	Method string            // "cg" or "bicgstab"
	Tol    float64           // relative residual tolerance
	MaxIt  int               // maximum number of iterations (0: 2·n)
	Comm   *mpi.Communicator // nil for serial runs

	triplet *la.Triplet
	am      *la.CCMatrix
	n       int
	wrk     []float64
}

// Init stores the operator
func (o *Krylov) Init(K *la.Triplet, symmetric, verbose bool) (err error) {
	if o.Method == "" {
		o.Method = "bicgstab"
	}
	if o.Method != "cg" && o.Method != "bicgstab" {
		return chk.Err("unknown iterative method %q", o.Method)
	}
	o.am = nil
	o.triplet = K
	return
}

// Fact converts the triplet into its compressed form; the analogue of a
// factorisation for an iterative method
func (o *Krylov) Fact() (err error) {
	if o.triplet == nil {
		return chk.Err("Init must be called before Fact")
	}
	o.am = o.triplet.ToMatrix(nil)
	return
}

// Solve runs the selected Krylov method on K·x = b, using the current
// content of x as the initial guess
func (o *Krylov) Solve(x, b []float64) (st Status, err error) {
	if o.am == nil {
		err = o.Fact()
		if err != nil {
			return
		}
	}
	o.n = len(b)
	if len(o.wrk) != o.n {
		o.wrk = make([]float64, o.n)
	}
	tol := o.Tol
	if tol == 0 {
		tol = 1e-10
	}
	maxit := o.MaxIt
	if maxit == 0 {
		maxit = 2 * o.n
	}
	bnorm := floats.Norm(b, 2)
	if bnorm == 0 {
		bnorm = 1
	}
	switch o.Method {
	case "cg":
		st = o.cg(x, b, tol, maxit, bnorm)
	default:
		st = o.bicgstab(x, b, tol, maxit, bnorm)
	}
	return
}

// Free releases the compressed operator
func (o *Krylov) Free() {
	o.am = nil
	o.triplet = nil
	o.wrk = nil
}

// matVec computes y = K·x, joining row contributions across processors
func (o *Krylov) matVec(y, x []float64) {
	for i := range y {
		y[i] = 0
	}
	la.SpMatVecMulAdd(y, 1, o.am, x)
	if o.Comm != nil && o.Comm.Size() > 1 {
		o.Comm.AllReduceSum(o.wrk, y)
		copy(y, o.wrk)
	}
}

// cg is the conjugate-gradient recurrence
func (o *Krylov) cg(x, b []float64, tol float64, maxit int, bnorm float64) (st Status) {
	n := o.n
	r := make([]float64, n)
	p := make([]float64, n)
	q := make([]float64, n)
	o.matVec(r, x)
	floats.AddScaledTo(r, b, -1, r) // r = b - K·x
	copy(p, r)
	rho := floats.Dot(r, r)
	for it := 0; it < maxit; it++ {
		st.Iterations = it + 1
		o.matVec(q, p)
		den := floats.Dot(p, q)
		if den == 0 {
			break
		}
		alpha := rho / den
		floats.AddScaled(x, alpha, p)
		floats.AddScaled(r, -alpha, q)
		st.Residual = floats.Norm(r, 2) / bnorm
		if st.Residual < tol {
			st.Converged = true
			return
		}
		rho2 := floats.Dot(r, r)
		beta := rho2 / rho
		rho = rho2
		floats.AddScaledTo(p, r, beta, p) // p = r + β·p
	}
	st.Residual = floats.Norm(r, 2) / bnorm
	st.Converged = st.Residual < tol
	return
}

// bicgstab is the stabilised bi-conjugate-gradient recurrence
func (o *Krylov) bicgstab(x, b []float64, tol float64, maxit int, bnorm float64) (st Status) {
	n := o.n
	r := make([]float64, n)
	rhat := make([]float64, n)
	p := make([]float64, n)
	v := make([]float64, n)
	s := make([]float64, n)
	t := make([]float64, n)
	o.matVec(r, x)
	floats.AddScaledTo(r, b, -1, r) // r = b - K·x
	copy(rhat, r)
	rho, alpha, omega := 1.0, 1.0, 1.0
	for it := 0; it < maxit; it++ {
		st.Iterations = it + 1
		rho1 := floats.Dot(rhat, r)
		if rho1 == 0 {
			break
		}
		beta := (rho1 / rho) * (alpha / omega)
		for i := 0; i < n; i++ {
			p[i] = r[i] + beta*(p[i]-omega*v[i])
		}
		o.matVec(v, p)
		den := floats.Dot(rhat, v)
		if den == 0 {
			break
		}
		alpha = rho1 / den
		floats.AddScaledTo(s, r, -alpha, v) // s = r - α·v
		st.Residual = floats.Norm(s, 2) / bnorm
		if st.Residual < tol {
			floats.AddScaled(x, alpha, p)
			st.Converged = true
			return
		}
		o.matVec(t, s)
		tt := floats.Dot(t, t)
		if tt == 0 {
			break
		}
		omega = floats.Dot(t, s) / tt
		for i := 0; i < n; i++ {
			x[i] += alpha*p[i] + omega*s[i]
		}
		floats.AddScaledTo(r, s, -omega, t) // r = s - ω·t
		st.Residual = floats.Norm(r, 2) / bnorm
		if st.Residual < tol {
			st.Converged = true
			return
		}
		rho = rho1
	}
	st.Converged = st.Residual < tol
	return
}
