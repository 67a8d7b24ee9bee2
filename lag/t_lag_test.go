// Copyright 2016 The IBAMR Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package lag

import (
	"bytes"
	"testing"

	"github.com/cpmech/gosl/chk"
)

func Test_lag01(tst *testing.T) {

	//verbose()
	chk.PrintTitle("lag01. spring spec round trip")

	for _, enctype := range []string{"gob", "json"} {
		s := &SpringSpec{
			Master:    7,
			Slaves:    []int{8, 12, 13},
			ForceFcns: []int{0, 0, 2},
			Params:    [][]float64{{100, 0.25}, {100, 0.5}, {50, 0.1, 3}},
		}

		var buf bytes.Buffer
		if err := s.Pack(GetEncoder(&buf, enctype)); err != nil {
			tst.Errorf("Pack failed (%s):\n%v", enctype, err)
			return
		}

		var r SpringSpec
		if err := r.Unpack(GetDecoder(&buf, enctype)); err != nil {
			tst.Errorf("Unpack failed (%s):\n%v", enctype, err)
			return
		}
		chk.IntAssert(r.Master, 7)
		chk.IntAssert(r.Nlinks(), 3)
		chk.Ints(tst, "slaves", r.Slaves, s.Slaves)
		chk.Ints(tst, "force fcns", r.ForceFcns, s.ForceFcns)
		for k := range s.Params {
			chk.Array(tst, "params", 1e-17, r.Params[k], s.Params[k])
		}
	}
}

func Test_lag02(tst *testing.T) {

	//verbose()
	chk.PrintTitle("lag02. inconsistent spring spec is rejected")

	s := &SpringSpec{
		Master:    1,
		Slaves:    []int{2, 3},
		ForceFcns: []int{0},
		Params:    [][]float64{{1, 1}, {1, 1}},
	}
	var buf bytes.Buffer
	if err := s.Pack(GetEncoder(&buf, "gob")); err == nil {
		tst.Errorf("packing mismatched link arrays must fail")
		return
	}
}

func Test_lag03(tst *testing.T) {

	//verbose()
	chk.PrintTitle("lag03. target point round trip")

	s := &TargetPointSpec{Master: 42, Kappa: 1e4, Eta: 2.5, X0: []float64{0.5, 0.25, 1}}
	var buf bytes.Buffer
	if err := s.Pack(GetEncoder(&buf, "gob")); err != nil {
		tst.Errorf("Pack failed:\n%v", err)
		return
	}
	var r TargetPointSpec
	if err := r.Unpack(GetDecoder(&buf, "gob")); err != nil {
		tst.Errorf("Unpack failed:\n%v", err)
		return
	}
	chk.IntAssert(r.Master, 42)
	chk.Float64(tst, "kappa", 1e-17, r.Kappa, 1e4)
	chk.Float64(tst, "eta", 1e-17, r.Eta, 2.5)
	chk.Array(tst, "x0", 1e-17, r.X0, s.X0)
}

func Test_lag04(tst *testing.T) {

	//verbose()
	chk.PrintTitle("lag04. tagged record streams")

	specs := []interface{}{
		&SpringSpec{Master: 0, Slaves: []int{1}, ForceFcns: []int{0}, Params: [][]float64{{10, 0.1}}},
		&TargetPointSpec{Master: 1, Kappa: 100, Eta: 0, X0: []float64{0, 0}},
		&SpringSpec{Master: 2, Slaves: []int{}, ForceFcns: []int{}, Params: [][]float64{}},
	}

	for _, enctype := range []string{"gob", "json"} {
		var buf bytes.Buffer
		if err := PackAll(GetEncoder(&buf, enctype), specs); err != nil {
			tst.Errorf("PackAll failed (%s):\n%v", enctype, err)
			return
		}
		out, err := UnpackAll(GetDecoder(&buf, enctype))
		if err != nil {
			tst.Errorf("UnpackAll failed (%s):\n%v", enctype, err)
			return
		}
		chk.IntAssert(len(out), 3)
		sp, ok := out[0].(*SpringSpec)
		if !ok {
			tst.Errorf("record 0 must be a spring spec")
			return
		}
		chk.IntAssert(sp.Master, 0)
		tp, ok := out[1].(*TargetPointSpec)
		if !ok {
			tst.Errorf("record 1 must be a target point spec")
			return
		}
		chk.Float64(tst, "kappa", 1e-17, tp.Kappa, 100)
		sp2, ok := out[2].(*SpringSpec)
		if !ok {
			tst.Errorf("record 2 must be a spring spec")
			return
		}
		chk.IntAssert(sp2.Nlinks(), 0)
	}
}
