// Copyright 2016 The IBAMR Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package linsys

import (
	"github.com/cpmech/gosl/la"
	"github.com/cpmech/gosl/mpi"
)

// Status reports the outcome of one linear solve. A solver that runs to
// completion without meeting its tolerance returns Converged=false with a
// nil error; hard backend failures are returned as errors.
type Status struct {
	Converged  bool
	Iterations int
	Residual   float64
}

// SparseSolver is the external linear-solver collaborator: it receives the
// assembled operator once, may factorize or precompute, and then solves
// K·x = b repeatedly. Implementations must treat Init/Fact/Solve as
// collective calls when running distributed.
type SparseSolver interface {
	Init(K *la.Triplet, symmetric, verbose bool) error // set the operator
	Fact() error                                       // factorize / precompute
	Solve(x, b []float64) (Status, error)              // solve K·x = b
	Free()                                             // release backend handles
}

// GetSparseSolver returns a solver by name: "cg" and "bicgstab" are the
// built-in iterative methods; any other name is handed to the direct-solver
// backends ("umfpack", "mumps"). comm may be nil for serial runs.
func GetSparseSolver(name string, tol float64, maxIt int, comm *mpi.Communicator) SparseSolver {
	switch name {
	case "", "bicgstab":
		return &Krylov{Method: "bicgstab", Tol: tol, MaxIt: maxIt, Comm: comm}
	case "cg":
		return &Krylov{Method: "cg", Tol: tol, MaxIt: maxIt, Comm: comm}
	}
	return &Direct{Name: name, Comm: comm}
}

// Direct wraps the gosl direct solvers (umfpack in serial, mumps in
// distributed runs) behind the SparseSolver interface. A direct solve that
// completes is converged by definition.
type Direct struct {
	Name string // "umfpack" or "mumps"
	Comm *mpi.Communicator

	lis      la.SparseSolver
	factored bool
}

// Init hands the triplet to the backend
func (o *Direct) Init(K *la.Triplet, symmetric, verbose bool) (err error) {
	conf := la.NewSparseConfig(o.Comm)
	conf.Verbose = verbose
	o.lis = la.NewSparseSolver(o.Name)
	o.lis.Init(K, conf)
	o.factored = false
	return
}

// Fact performs the factorisation
func (o *Direct) Fact() (err error) {
	o.lis.Fact()
	o.factored = true
	return
}

// Solve solves using the previous factorisation
func (o *Direct) Solve(x, b []float64) (st Status, err error) {
	if !o.factored {
		err = o.Fact()
		if err != nil {
			return
		}
	}
	o.lis.Solve(la.Vector(x), la.Vector(b), false)
	st.Converged = true
	st.Iterations = 1
	return
}

// Free releases the backend handles
func (o *Direct) Free() {
	if o.lis != nil {
		o.lis.Free()
	}
}
