// Copyright 2016 The IBAMR Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package inp implements the input data read from JSON .sim files: grid
// layout, operator coefficients, boundary conditions and solver settings.
package inp

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"

	"github.com/ehsanakrami/IBAMR/grid"
	"github.com/ehsanakrami/IBAMR/linsys"
)

// Data holds global simulation data
type Data struct {
	Desc    string `json:"desc"`    // description of simulation
	DirOut  string `json:"dirout"`  // directory for output; e.g. /tmp/ibamr
	Encoder string `json:"encoder"` // encoder name; e.g. "gob" "json"
}

// LinSolData holds data for linear solvers
type LinSolData struct {
	Name      string  `json:"name"`      // "mumps", "umfpack", "cg" or "bicgstab"
	Symmetric bool    `json:"symmetric"` // use symmetric solver
	Verbose   bool    `json:"verbose"`   // verbose?
	Timing    bool    `json:"timing"`    // show timing statistics
	Tol       float64 `json:"tol"`       // iterative solver tolerance
	MaxIt     int     `json:"maxit"`     // iterative solver maximum number of iterations
}

// SetDefault sets default values
func (o *LinSolData) SetDefault() {
	o.Name = "bicgstab"
	o.Tol = 1e-10
}

// SolverData holds level solver settings
type SolverData struct {
	Policy       string  `json:"policy"`       // "rebuild", "reuse" or "refactorize"
	Homogeneous  bool    `json:"homogeneous"`  // drop boundary values, keep couplings
	NonzeroGuess bool    `json:"nonzeroguess"` // reuse the distributed solution as guess
	Time         float64 `json:"time"`         // solution time for BC evaluation
}

// SetDefault sets default values
func (o *SolverData) SetDefault() {
	o.Policy = "reuse"
}

// PatchData holds the extents and owner of one patch
type PatchData struct {
	Lo   []int `json:"lo"`   // lower cell bounds (inclusive)
	Hi   []int `json:"hi"`   // upper cell bounds (inclusive)
	Proc int   `json:"proc"` // owner processor
}

// GridData holds the level description
type GridData struct {
	Ndim     int          `json:"ndim"`     // space dimension
	Lo       []int        `json:"lo"`       // lower cell bounds of domain
	Hi       []int        `json:"hi"`       // upper cell bounds of domain
	Dx       []float64    `json:"dx"`       // cell sizes
	Xlo      []float64    `json:"xlo"`      // physical coordinates of domain lower corner
	Periodic []bool       `json:"periodic"` // per-axis periodic flags
	Ghosts   int          `json:"ghosts"`   // ghost width
	Patches  []*PatchData `json:"patches"`  // all patches of the level
}

// PoissonData holds the operator coefficients
type PoissonData struct {
	C float64 `json:"c"` // mass (damping) coefficient
	D float64 `json:"d"` // diffusion coefficient
}

// BcData holds one boundary condition: the side of the domain it applies to
// and the coefficients of  α·u + β·du/dn = g
type BcData struct {
	Axis  int     `json:"axis"`  // boundary normal axis
	Side  string  `json:"side"`  // "lower" or "upper"
	Kind  string  `json:"kind"`  // "dirichlet", "neumann" or "robin"
	Func  string  `json:"func"`  // name of g(t,x) in functions database
	Alpha float64 `json:"alpha"` // robin α
	Beta  float64 `json:"beta"`  // robin β
}

// Simulation holds all simulation data
type Simulation struct {

	// input
	Data      Data        `json:"data"`      // stores global simulation data
	Grid      GridData    `json:"grid"`      // level description
	Poisson   PoissonData `json:"poisson"`   // operator coefficients
	Bcs       []*BcData   `json:"bcs"`       // boundary conditions
	Functions FuncsData   `json:"functions"` // stores all boundary value functions
	LinSol    LinSolData  `json:"linsol"`    // linear solver data
	Solver    SolverData  `json:"solver"`    // level solver data

	// derived
	DirOut  string // directory to save results
	Key     string // simulation key; e.g. mysim01.sim => mysim01
	EncType string // encoder type
}

// ReadSim reads all simulation data from a .sim JSON file
func ReadSim(simfilepath string) *Simulation {

	// new sim
	var o Simulation

	// read file
	b := io.ReadFile(simfilepath)

	// set default values
	o.Solver.SetDefault()
	o.LinSol.SetDefault()

	// decode
	err := json.Unmarshal(b, &o)
	if err != nil {
		chk.Panic("ReadSim: cannot unmarshal simulation file %q", simfilepath)
	}

	// filename key
	fn := filepath.Base(os.ExpandEnv(simfilepath))
	o.Key = io.FnKey(fn)

	// output directory
	o.DirOut = o.Data.DirOut
	if o.DirOut == "" {
		o.DirOut = "/tmp/ibamr/" + o.Key
	}

	// encoder type
	o.EncType = o.Data.Encoder
	if o.EncType != "gob" && o.EncType != "json" {
		o.EncType = "gob"
	}
	return &o
}

// MakeLevel builds the patch level described by the grid data
func (o *Simulation) MakeLevel() (lev *grid.Level, err error) {
	g := &o.Grid
	if g.Ndim < 1 {
		return nil, chk.Err("grid data must set ndim")
	}
	if len(g.Lo) != g.Ndim || len(g.Hi) != g.Ndim || len(g.Dx) != g.Ndim {
		return nil, chk.Err("grid bounds and cell sizes must have ndim=%d entries", g.Ndim)
	}
	ghosts := g.Ghosts
	if ghosts == 0 {
		ghosts = 1
	}
	xlo := g.Xlo
	if xlo == nil {
		xlo = make([]float64, g.Ndim)
	}
	periodic := g.Periodic
	if periodic == nil {
		periodic = make([]bool, g.Ndim)
	}
	lev = grid.NewLevel(grid.NewBox(g.Lo, g.Hi), g.Dx, xlo, periodic, ghosts)
	for i, p := range g.Patches {
		if len(p.Lo) != g.Ndim || len(p.Hi) != g.Ndim {
			return nil, chk.Err("patch %d bounds must have ndim=%d entries", i, g.Ndim)
		}
		lev.AddPatch(grid.NewBox(p.Lo, p.Hi), p.Proc)
	}
	if len(lev.Patches) == 0 {
		return nil, chk.Err("grid data must set at least one patch")
	}
	return
}

// MakeBcs builds the per-side boundary conditions. Sides without an entry
// behave as homogeneous Dirichlet.
func (o *Simulation) MakeBcs() (bcs *linsys.SideBcs, err error) {
	bcs = &linsys.SideBcs{Sides: make([]linsys.BcCoefs, 2*o.Grid.Ndim)}
	for i, d := range o.Bcs {
		g, e := o.Functions.Get(d.Func)
		if e != nil {
			return nil, chk.Err("boundary condition %d: %v", i, e)
		}
		var bc linsys.BcCoefs
		switch d.Kind {
		case "dirichlet", "":
			bc = &linsys.DirichletBc{G: g}
		case "neumann":
			bc = &linsys.NeumannBc{G: g}
		case "robin":
			bc = &linsys.RobinBc{Alpha: d.Alpha, Beta: d.Beta, G: g}
		default:
			return nil, chk.Err("boundary condition %d has unknown kind %q", i, d.Kind)
		}
		side := 0
		switch d.Side {
		case "lower":
		case "upper":
			side = 1
		default:
			return nil, chk.Err("boundary condition %d has unknown side %q", i, d.Side)
		}
		if d.Axis < 0 || d.Axis >= o.Grid.Ndim {
			return nil, chk.Err("boundary condition %d has invalid axis %d", i, d.Axis)
		}
		bcs.Sides[2*d.Axis+side] = bc
	}
	return
}
