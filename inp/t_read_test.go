// Copyright 2016 The IBAMR Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package inp

import (
	"testing"

	"github.com/cpmech/gosl/chk"
)

func Test_read01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("read01. read and build a simulation")

	sim := ReadSim("data/square01.sim")
	chk.IntAssert(sim.Grid.Ndim, 2)
	if sim.Key != "square01" {
		tst.Errorf("key: %q is incorrect", sim.Key)
		return
	}
	if sim.EncType != "json" {
		tst.Errorf("enctype: %q is incorrect", sim.EncType)
		return
	}
	chk.Float64(tst, "C", 1e-17, sim.Poisson.C, 1)
	chk.Float64(tst, "D", 1e-17, sim.Poisson.D, -1)
	if sim.LinSol.Name != "bicgstab" {
		tst.Errorf("linsol name: %q is incorrect", sim.LinSol.Name)
		return
	}
	chk.Float64(tst, "tol", 1e-17, sim.LinSol.Tol, 1e-10)
	if sim.Solver.Policy != "reuse" {
		tst.Errorf("policy: %q is incorrect", sim.Solver.Policy)
		return
	}

	// level
	lev, err := sim.MakeLevel()
	if err != nil {
		tst.Errorf("MakeLevel failed:\n%v", err)
		return
	}
	chk.IntAssert(lev.Ndim, 2)
	chk.IntAssert(len(lev.Patches), 2)
	chk.IntAssert(lev.Ghosts, 1)
	chk.Ints(tst, "domain.Hi", lev.Domain.Hi, []int{3, 3})

	// boundary conditions
	bcs, err := sim.MakeBcs()
	if err != nil {
		tst.Errorf("MakeBcs failed:\n%v", err)
		return
	}
	x := []float64{0.5, 0.5}

	// x lower: u = 0
	alpha, beta, g := bcs.Coefs(0, 0, 0, 0, x)
	chk.Float64(tst, "x-lower alpha", 1e-17, alpha, 1)
	chk.Float64(tst, "x-lower beta", 1e-17, beta, 0)
	chk.Float64(tst, "x-lower g", 1e-17, g, 0)

	// x upper: u = 1
	_, _, g = bcs.Coefs(0, 1, 0, 0, x)
	chk.Float64(tst, "x-upper g", 1e-15, g, 1)

	// y lower: du/dn = 0
	alpha, beta, g = bcs.Coefs(1, 0, 0, 0, x)
	chk.Float64(tst, "y-lower alpha", 1e-17, alpha, 0)
	chk.Float64(tst, "y-lower beta", 1e-17, beta, 1)

	// y upper: robin with fixed coefficients
	alpha, beta, g = bcs.Coefs(1, 1, 0, 0, x)
	chk.Float64(tst, "y-upper alpha", 1e-17, alpha, 1)
	chk.Float64(tst, "y-upper beta", 1e-17, beta, 0.5)
	chk.Float64(tst, "y-upper g", 1e-15, g, 1)
}

func Test_read02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("read02. function database")

	sim := ReadSim("data/square01.sim")
	one, err := sim.Functions.Get("one")
	if err != nil {
		tst.Errorf("Get failed:\n%v", err)
		return
	}
	chk.Float64(tst, "one(0,x)", 1e-15, one.F(0, nil), 1)

	zero, err := sim.Functions.Get("zero")
	if err != nil {
		tst.Errorf("Get failed:\n%v", err)
		return
	}
	chk.Float64(tst, "zero(0,x)", 1e-17, zero.F(0, nil), 0)

	if _, err := sim.Functions.Get("missing"); err == nil {
		tst.Errorf("unknown function must fail")
		return
	}
}
