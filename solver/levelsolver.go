// Copyright 2016 The IBAMR Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package solver implements the level solver façade: it owns the DOF index
// storage, the distributed matrix/vector handles and the synchronization
// schedules for one grid level, and sequences them through the
// initialize / solve / deallocate lifecycle.
package solver

import (
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"github.com/cpmech/gosl/la"
	"github.com/cpmech/gosl/mpi"

	"github.com/ehsanakrami/IBAMR/dofmap"
	"github.com/ehsanakrami/IBAMR/field"
	"github.com/ehsanakrami/IBAMR/grid"
	"github.com/ehsanakrami/IBAMR/linsys"
	"github.com/ehsanakrami/IBAMR/synch"
)

// ReusePolicy selects what survives between repeated solves with an
// unchanged operator
type ReusePolicy int

const (
	// RebuildEachSolve re-assembles the operator and re-initialises the
	// backend on every solve
	RebuildEachSolve ReusePolicy = iota

	// ReuseOperatorReuseFactorization keeps the operator and its
	// factorisation/compressed form across solves (only the RHS changes)
	ReuseOperatorReuseFactorization

	// ReuseOperatorRefactorize keeps the operator but refactorizes before
	// every solve
	ReuseOperatorRefactorize
)

// LevelSolver solves the face-centered Poisson-type system on one level
type LevelSolver struct {

	// configuration
	Name    string              // object name; prefixes registry entries
	Level   *grid.Level         // the patch level
	Spec    linsys.PoissonSpec  // operator coefficients
	Bcs     linsys.BcCoefs      // physical boundary conditions
	Lis     linsys.SparseSolver // external solver collaborator
	Comm    *mpi.Communicator   // nil for serial runs
	Policy  ReusePolicy         // operator/factorisation reuse across solves
	Verbose bool                // show messages (rank 0 only)

	// solve-time switches
	HomogeneousBc       bool    // drop boundary values, keep couplings
	InitialGuessNonzero bool    // reuse the distributed solution as guess
	Time                float64 // solution time for BC coefficient evaluation

	// state
	initialized bool
	proc        int
	reg         *field.Registry
	dofs        *field.FaceIndexField
	part        *dofmap.Partition
	kmat        *la.Triplet
	x, b        []float64
	dataSynch   *synch.Schedule
	ghostFill   *synch.Schedule
}

// NewLevelSolver returns a solver for one level. lis may be nil, in which
// case the built-in BiCGStab method is used; comm may be nil for serial runs.
func NewLevelSolver(name string, level *grid.Level, spec linsys.PoissonSpec, bcs linsys.BcCoefs, lis linsys.SparseSolver, comm *mpi.Communicator) (o *LevelSolver) {
	if lis == nil {
		lis = linsys.GetSparseSolver("", 0, 0, comm)
	}
	o = &LevelSolver{
		Name:  name,
		Level: level,
		Spec:  spec,
		Bcs:   bcs,
		Lis:   lis,
		Comm:  comm,
	}
	o.reg = field.NewRegistry(level)
	if comm != nil && comm.Size() > 1 {
		o.proc = comm.Rank()
	}
	return
}

// Initialize builds the DOF numbering, allocates and assembles the
// distributed system, and builds both synchronization schedules. The depth
// of the unknown is taken from u; u and f must have equal depth.
// Re-initialising an initialised solver deallocates the prior state first.
func (o *LevelSolver) Initialize(u, f *field.FaceField) (err error) {
	if o.initialized {
		o.Deallocate()
	}
	if u.Depth != f.Depth {
		return chk.Err("input and right-hand-side fields have mismatched depths: %d != %d", u.Depth, f.Depth)
	}

	// DOF index data
	name := o.Name + "::dof_index"
	o.reg.SetDefaultDepth(name, u.Depth)
	o.dofs, err = o.reg.Alloc(name)
	if err != nil {
		return chk.Err("cannot allocate DOF index storage:\n%v", err)
	}
	o.part, err = dofmap.BuildLevelDOFIndices(o.dofs, o.Level)
	if err != nil {
		return chk.Err("cannot build DOF indices:\n%v", err)
	}
	if o.Verbose && o.proc == 0 {
		io.Pf(">> Number of DOFs = %d over %d processors\n", o.part.Total, len(o.part.Counts))
	}

	// distributed system
	o.x, o.b = linsys.NewVectors(o.part)
	o.kmat, err = linsys.AssembleLaplacian(o.Level, o.dofs, o.part, o.Spec, o.Bcs, o.Time, o.Comm)
	if err != nil {
		return chk.Err("cannot assemble operator:\n%v", err)
	}
	err = o.Lis.Init(o.kmat, false, o.Verbose)
	if err != nil {
		return chk.Err("cannot initialise linear solver:\n%v", err)
	}
	err = o.Lis.Fact()
	if err != nil {
		return chk.Err("cannot factorise operator:\n%v", err)
	}

	// communication schedules
	o.dataSynch = synch.BuildDataSynch(o.Level)
	o.ghostFill = synch.BuildGhostFill(o.Level)

	o.initialized = true
	return
}

// Solve maps f into the distributed RHS (with boundary adjustment on a
// private clone), invokes the external solver and copies the solution back
// into u, leaving u ghost-consistent. The returned status is the solver's
// own convergence report, passed through unchanged.
func (o *LevelSolver) Solve(u, f *field.FaceField) (st linsys.Status, err error) {
	if !o.initialized {
		err = chk.Err("solver %q must be initialised before Solve", o.Name)
		return
	}

	// operator rebuild per policy
	if o.Policy == RebuildEachSolve {
		o.kmat, err = linsys.AssembleLaplacian(o.Level, o.dofs, o.part, o.Spec, o.Bcs, o.Time, o.Comm)
		if err != nil {
			err = chk.Err("cannot re-assemble operator:\n%v", err)
			return
		}
		err = o.Lis.Init(o.kmat, false, o.Verbose)
		if err != nil {
			return
		}
		err = o.Lis.Fact()
		if err != nil {
			return
		}
	} else if o.Policy == ReuseOperatorRefactorize {
		err = o.Lis.Fact()
		if err != nil {
			return
		}
	}

	// initial guess
	if !o.InitialGuessNonzero {
		err = linsys.CopyToVec(u, o.dofs, o.part, o.x, o.Comm)
		if err != nil {
			return
		}
	}

	// boundary-adjusted RHS on a private clone
	fadj := f.Clone()
	linsys.AdjustBoundaryRhs(o.Level, fadj, o.Spec, o.Bcs, o.Time, o.HomogeneousBc)
	err = linsys.CopyToVec(fadj, o.dofs, o.part, o.b, o.Comm)
	if err != nil {
		return
	}

	// external solve
	st, err = o.Lis.Solve(o.x, o.b)
	if err != nil {
		err = chk.Err("linear solve failed:\n%v", err)
		return
	}

	// copy back and synchronize
	err = linsys.CopyFromVec(o.x, u, o.dofs, o.part, o.dataSynch, o.ghostFill, o.Comm)
	return
}

// Deallocate releases the DOF index storage. The matrix, vectors and solver
// handles are kept when the reuse policy retains the operator; otherwise
// they are released too.
func (o *LevelSolver) Deallocate() {
	if !o.initialized {
		return
	}
	o.reg.Free(o.Name + "::dof_index")
	o.dofs = nil
	if o.Policy == RebuildEachSolve {
		o.Lis.Free()
		o.kmat = nil
		o.x = nil
		o.b = nil
	}
	o.dataSynch = nil
	o.ghostFill = nil
	o.initialized = false
}
