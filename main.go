// Copyright 2016 The IBAMR Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"github.com/cpmech/gosl/mpi"

	"github.com/ehsanakrami/IBAMR/field"
	"github.com/ehsanakrami/IBAMR/inp"
	"github.com/ehsanakrami/IBAMR/linsys"
	"github.com/ehsanakrami/IBAMR/solver"
)

func main() {

	// initialise MPI and the world communicator
	mpi.Start()
	comm := mpi.NewCommunicator(nil)

	// catch errors
	defer func() {
		if err := recover(); err != nil {
			if comm.Rank() == 0 {
				io.PfRed("\nERROR: %v", err)
				io.Pf("See location of error below:\n")
				chk.Verbose = true
				for i := 5; i > 3; i-- {
					chk.CallerInfo(i)
				}
			}
		}
		mpi.Stop()
	}()

	// read input parameters
	fnamepath, _ := io.ArgToFilename(0, "", ".sim", true)
	verbose := io.ArgToBool(1, true)

	// message
	if comm.Rank() == 0 && verbose {
		io.PfWhite("\nIBAMR Staggered Poisson Level Solver\n")
		io.Pf("Copyright 2016 The IBAMR Authors. All rights reserved.\n")
		io.Pf("Use of this source code is governed by a BSD-style\n")
		io.Pf("license that can be found in the LICENSE file.\n")

		io.Pf("\n%v\n", io.ArgsTable("INPUT ARGUMENTS",
			"filename path", "fnamepath", fnamepath,
			"show messages", "verbose", verbose,
		))
	}

	// simulation data
	sim := inp.ReadSim(fnamepath)
	level, err := sim.MakeLevel()
	if err != nil {
		chk.Panic("cannot build patch level:\n%v", err)
	}
	bcs, err := sim.MakeBcs()
	if err != nil {
		chk.Panic("cannot build boundary conditions:\n%v", err)
	}

	// level solver
	spec := linsys.PoissonSpec{C: sim.Poisson.C, D: sim.Poisson.D}
	lis := linsys.GetSparseSolver(sim.LinSol.Name, sim.LinSol.Tol, sim.LinSol.MaxIt, comm)
	o := solver.NewLevelSolver(sim.Key, level, spec, bcs, lis, comm)
	o.Verbose = verbose && sim.LinSol.Verbose
	o.HomogeneousBc = sim.Solver.Homogeneous
	o.InitialGuessNonzero = sim.Solver.NonzeroGuess
	o.Time = sim.Solver.Time
	switch sim.Solver.Policy {
	case "rebuild":
		o.Policy = solver.RebuildEachSolve
	case "refactorize":
		o.Policy = solver.ReuseOperatorRefactorize
	default:
		o.Policy = solver.ReuseOperatorReuseFactorization
	}

	// run solve
	u := field.NewFaceField(level, 1)
	f := field.NewFaceField(level, 1)
	err = o.Initialize(u, f)
	if err != nil {
		chk.Panic("Initialize failed:\n%v", err)
	}
	defer o.Deallocate()
	st, err := o.Solve(u, f)
	if err != nil {
		chk.Panic("Solve failed:\n%v", err)
	}
	if comm.Rank() == 0 && verbose {
		io.Pf("converged = %v  iterations = %d  residual = %g\n", st.Converged, st.Iterations, st.Residual)
	}
}
