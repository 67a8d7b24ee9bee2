// Copyright 2016 The IBAMR Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package solver

import (
	"testing"

	"github.com/cpmech/gosl/chk"

	"github.com/ehsanakrami/IBAMR/field"
	"github.com/ehsanakrami/IBAMR/grid"
	"github.com/ehsanakrami/IBAMR/linsys"
)

// 4x4 unit square split into two abutting 2x4 patches
func twoPatchLevel() *grid.Level {
	lev := grid.NewLevel(grid.NewBox([]int{0, 0}, []int{3, 3}), []float64{0.25, 0.25}, nil, []bool{false, false}, 1)
	lev.AddPatch(grid.NewBox([]int{0, 0}, []int{1, 3}), 0)
	lev.AddPatch(grid.NewBox([]int{2, 0}, []int{3, 3}), 0)
	return lev
}

// linX prescribes u = x on every side
type linX struct{}

func (o linX) Coefs(axis, side, comp int, t float64, x []float64) (alpha, beta, g float64) {
	return 1, 0, x[0]
}

// setForcing writes C·u for the exact profile u = x on every interior face
func setForcing(f *field.FaceField, c float64) {
	lev := f.Level
	iv := make([]int, lev.Ndim)
	x := make([]float64, lev.Ndim)
	for _, p := range lev.Patches {
		for axis := 0; axis < lev.Ndim; axis++ {
			fbox := p.Box.FaceBox(axis)
			for k := 0; k < fbox.Num(); k++ {
				fbox.KthPoint(k, iv)
				lev.FaceX(axis, iv, x)
				f.Set(p, axis, iv, 0, c*x[0])
			}
		}
	}
}

func checkLinearSolution(tst *testing.T, u *field.FaceField, tol float64) {
	lev := u.Level
	iv := make([]int, 2)
	x := make([]float64, 2)
	for _, p := range lev.Patches {
		for axis := 0; axis < 2; axis++ {
			fbox := p.Box.FaceBox(axis)
			for k := 0; k < fbox.Num(); k++ {
				fbox.KthPoint(k, iv)
				lev.FaceX(axis, iv, x)
				chk.Float64(tst, "u = x", tol, u.At(p, axis, iv, 0), x[0])
			}
		}
	}
}

func Test_solver01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("solver01. initialize, solve, check solution")

	lev := twoPatchLevel()
	o := NewLevelSolver("vel", lev, linsys.PoissonSpec{C: 1, D: -1}, linX{}, nil, nil)

	u := field.NewFaceField(lev, 1)
	f := field.NewFaceField(lev, 1)
	setForcing(f, 1)

	if err := o.Initialize(u, f); err != nil {
		tst.Errorf("Initialize failed:\n%v", err)
		return
	}
	defer o.Deallocate()

	st, err := o.Solve(u, f)
	if err != nil {
		tst.Errorf("Solve failed:\n%v", err)
		return
	}
	if !st.Converged {
		tst.Errorf("solver did not converge. residual=%g after %d iterations", st.Residual, st.Iterations)
		return
	}
	checkLinearSolution(tst, u, 1e-7)

	// ghost values are stencil-ready, so both copies of the shared face agree
	a, b := lev.Patches[0], lev.Patches[1]
	for j := 0; j < 4; j++ {
		chk.Float64(tst, "shared face", 1e-15, u.At(a, 0, []int{2, j}, 0), u.At(b, 0, []int{2, j}, 0))
	}
}

func Test_solver02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("solver02. repeated solves and reuse policies")

	lev := twoPatchLevel()
	for _, policy := range []ReusePolicy{RebuildEachSolve, ReuseOperatorReuseFactorization, ReuseOperatorRefactorize} {
		o := NewLevelSolver("vel", lev, linsys.PoissonSpec{C: 1, D: -1}, linX{}, nil, nil)
		o.Policy = policy

		u := field.NewFaceField(lev, 1)
		f := field.NewFaceField(lev, 1)
		setForcing(f, 1)

		if err := o.Initialize(u, f); err != nil {
			tst.Errorf("Initialize failed:\n%v", err)
			return
		}
		for rep := 0; rep < 2; rep++ {
			st, err := o.Solve(u, f)
			if err != nil {
				tst.Errorf("Solve failed:\n%v", err)
				return
			}
			if !st.Converged {
				tst.Errorf("solver did not converge")
				return
			}
		}
		checkLinearSolution(tst, u, 1e-7)
		o.Deallocate()
	}
}

func Test_solver03(tst *testing.T) {

	//verbose()
	chk.PrintTitle("solver03. nonzero initial guess and re-initialization")

	lev := twoPatchLevel()
	o := NewLevelSolver("vel", lev, linsys.PoissonSpec{C: 1, D: -1}, linX{}, nil, nil)
	o.InitialGuessNonzero = true

	u := field.NewFaceField(lev, 1)
	f := field.NewFaceField(lev, 1)
	setForcing(f, 1)

	if err := o.Initialize(u, f); err != nil {
		tst.Errorf("Initialize failed:\n%v", err)
		return
	}
	st, err := o.Solve(u, f)
	if err != nil || !st.Converged {
		tst.Errorf("first solve failed. st=%+v err=%v", st, err)
		return
	}
	checkLinearSolution(tst, u, 1e-7)

	// warm restart from the previous distributed solution converges quickly
	st, err = o.Solve(u, f)
	if err != nil || !st.Converged {
		tst.Errorf("warm solve failed. st=%+v err=%v", st, err)
		return
	}
	if st.Iterations > 2 {
		tst.Errorf("warm restart took %d iterations", st.Iterations)
		return
	}

	// initializing again resets the state and still solves
	if err := o.Initialize(u, f); err != nil {
		tst.Errorf("re-Initialize failed:\n%v", err)
		return
	}
	st, err = o.Solve(u, f)
	if err != nil || !st.Converged {
		tst.Errorf("solve after re-initialize failed. st=%+v err=%v", st, err)
		return
	}
	o.Deallocate()

	// solving a deallocated solver is a configuration error
	if _, err := o.Solve(u, f); err == nil {
		tst.Errorf("Solve after Deallocate must fail")
		return
	}
}

func Test_solver04(tst *testing.T) {

	//verbose()
	chk.PrintTitle("solver04. mismatched depths are rejected")

	lev := twoPatchLevel()
	o := NewLevelSolver("vel", lev, linsys.PoissonSpec{C: 1, D: -1}, linX{}, nil, nil)
	u := field.NewFaceField(lev, 1)
	f := field.NewFaceField(lev, 2)
	if err := o.Initialize(u, f); err == nil {
		tst.Errorf("Initialize with mismatched depths must fail")
		return
	}
}

func Test_solver05(tst *testing.T) {

	//verbose()
	chk.PrintTitle("solver05. one patch covering the domain")

	// single 4x4 patch: empty data-synch plan, but the lifecycle and the
	// solution must be the same as on any split of the domain
	lev := grid.NewLevel(grid.NewBox([]int{0, 0}, []int{3, 3}), []float64{0.25, 0.25}, nil, []bool{false, false}, 1)
	lev.AddPatch(grid.NewBox([]int{0, 0}, []int{3, 3}), 0)
	o := NewLevelSolver("vel", lev, linsys.PoissonSpec{C: 1, D: -1}, linX{}, nil, nil)

	u := field.NewFaceField(lev, 1)
	f := field.NewFaceField(lev, 1)
	setForcing(f, 1)

	if err := o.Initialize(u, f); err != nil {
		tst.Errorf("Initialize failed:\n%v", err)
		return
	}
	defer o.Deallocate()

	st, err := o.Solve(u, f)
	if err != nil {
		tst.Errorf("Solve failed:\n%v", err)
		return
	}
	if !st.Converged {
		tst.Errorf("solver did not converge. residual=%g after %d iterations", st.Residual, st.Iterations)
		return
	}
	checkLinearSolution(tst, u, 1e-7)
}
