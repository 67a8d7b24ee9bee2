// Copyright 2016 The IBAMR Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package lag

import (
	"github.com/cpmech/gosl/chk"
)

// class tags identifying packed force-spec records in a stream
const (
	ClassSpring      = "spring"
	ClassTargetPoint = "target_point"
)

// SpringSpec describes the springs attached to one master marker. Each link
// k connects the master to Slaves[k] through force function ForceFcns[k]
// with parameters Params[k] (e.g. stiffness and rest length).
type SpringSpec struct {
	Master    int         // master marker index
	Slaves    []int       // slave marker index per link
	ForceFcns []int       // force function identifier per link
	Params    [][]float64 // parameter array per link
}

// TargetPointSpec penalises the displacement of one marker from a fixed
// target location with stiffness Kappa and damping Eta
type TargetPointSpec struct {
	Master int       // marker index
	Kappa  float64   // penalty stiffness
	Eta    float64   // penalty damping
	X0     []float64 // target location
}

// Nlinks returns the number of spring links
func (o *SpringSpec) Nlinks() int { return len(o.Slaves) }

// Pack encodes the spring spec: master index, then each per-link array
// prefixed by its element count so the unpacking side can pre-size storage
func (o *SpringSpec) Pack(enc Encoder) (err error) {
	if len(o.ForceFcns) != len(o.Slaves) || len(o.Params) != len(o.Slaves) {
		return chk.Err("spring spec of master %d has inconsistent link arrays: %d slaves, %d force functions, %d parameter sets",
			o.Master, len(o.Slaves), len(o.ForceFcns), len(o.Params))
	}
	err = enc.Encode(o.Master)
	if err != nil {
		return chk.Err("cannot encode master index\n%v", err)
	}
	err = enc.Encode(len(o.Slaves))
	if err != nil {
		return chk.Err("cannot encode number of links\n%v", err)
	}
	err = enc.Encode(o.Slaves)
	if err != nil {
		return chk.Err("cannot encode slave indices\n%v", err)
	}
	err = enc.Encode(o.ForceFcns)
	if err != nil {
		return chk.Err("cannot encode force function indices\n%v", err)
	}
	for k, prms := range o.Params {
		err = enc.Encode(len(prms))
		if err != nil {
			return chk.Err("cannot encode size of parameter set %d\n%v", k, err)
		}
		err = enc.Encode(prms)
		if err != nil {
			return chk.Err("cannot encode parameter set %d\n%v", k, err)
		}
	}
	return
}

// Unpack decodes a spring spec packed by Pack
func (o *SpringSpec) Unpack(dec Decoder) (err error) {
	err = dec.Decode(&o.Master)
	if err != nil {
		return chk.Err("cannot decode master index\n%v", err)
	}
	var nlinks int
	err = dec.Decode(&nlinks)
	if err != nil {
		return chk.Err("cannot decode number of links\n%v", err)
	}
	if nlinks < 0 {
		return chk.Err("invalid number of links: %d", nlinks)
	}
	o.Slaves = make([]int, nlinks)
	o.ForceFcns = make([]int, nlinks)
	o.Params = make([][]float64, nlinks)
	err = dec.Decode(&o.Slaves)
	if err != nil {
		return chk.Err("cannot decode slave indices\n%v", err)
	}
	err = dec.Decode(&o.ForceFcns)
	if err != nil {
		return chk.Err("cannot decode force function indices\n%v", err)
	}
	if len(o.Slaves) != nlinks || len(o.ForceFcns) != nlinks {
		return chk.Err("decoded link arrays do not match link count %d", nlinks)
	}
	for k := 0; k < nlinks; k++ {
		var nprms int
		err = dec.Decode(&nprms)
		if err != nil {
			return chk.Err("cannot decode size of parameter set %d\n%v", k, err)
		}
		o.Params[k] = make([]float64, nprms)
		err = dec.Decode(&o.Params[k])
		if err != nil {
			return chk.Err("cannot decode parameter set %d\n%v", k, err)
		}
	}
	return
}

// Pack encodes the target point spec: marker index, penalty coefficients,
// then the target location prefixed by its dimension
func (o *TargetPointSpec) Pack(enc Encoder) (err error) {
	err = enc.Encode(o.Master)
	if err != nil {
		return chk.Err("cannot encode marker index\n%v", err)
	}
	err = enc.Encode(o.Kappa)
	if err != nil {
		return chk.Err("cannot encode stiffness\n%v", err)
	}
	err = enc.Encode(o.Eta)
	if err != nil {
		return chk.Err("cannot encode damping\n%v", err)
	}
	err = enc.Encode(len(o.X0))
	if err != nil {
		return chk.Err("cannot encode target point dimension\n%v", err)
	}
	err = enc.Encode(o.X0)
	if err != nil {
		return chk.Err("cannot encode target location\n%v", err)
	}
	return
}

// Unpack decodes a target point spec packed by Pack
func (o *TargetPointSpec) Unpack(dec Decoder) (err error) {
	err = dec.Decode(&o.Master)
	if err != nil {
		return chk.Err("cannot decode marker index\n%v", err)
	}
	err = dec.Decode(&o.Kappa)
	if err != nil {
		return chk.Err("cannot decode stiffness\n%v", err)
	}
	err = dec.Decode(&o.Eta)
	if err != nil {
		return chk.Err("cannot decode damping\n%v", err)
	}
	var ndim int
	err = dec.Decode(&ndim)
	if err != nil {
		return chk.Err("cannot decode target point dimension\n%v", err)
	}
	o.X0 = make([]float64, ndim)
	err = dec.Decode(&o.X0)
	if err != nil {
		return chk.Err("cannot decode target location\n%v", err)
	}
	return
}

// PackAll encodes a mixed sequence of force specs as tagged records: the
// record count, then a class tag followed by the record body for each spec
func PackAll(enc Encoder, specs []interface{}) (err error) {
	err = enc.Encode(len(specs))
	if err != nil {
		return chk.Err("cannot encode number of records\n%v", err)
	}
	for i, s := range specs {
		switch spec := s.(type) {
		case *SpringSpec:
			err = enc.Encode(ClassSpring)
			if err == nil {
				err = spec.Pack(enc)
			}
		case *TargetPointSpec:
			err = enc.Encode(ClassTargetPoint)
			if err == nil {
				err = spec.Pack(enc)
			}
		default:
			return chk.Err("record %d has unknown force spec type %T", i, s)
		}
		if err != nil {
			return chk.Err("cannot encode record %d\n%v", i, err)
		}
	}
	return
}

// UnpackAll decodes a tagged sequence of force specs packed by PackAll
func UnpackAll(dec Decoder) (specs []interface{}, err error) {
	var n int
	err = dec.Decode(&n)
	if err != nil {
		return nil, chk.Err("cannot decode number of records\n%v", err)
	}
	if n < 0 {
		return nil, chk.Err("invalid number of records: %d", n)
	}
	specs = make([]interface{}, 0, n)
	for i := 0; i < n; i++ {
		var class string
		err = dec.Decode(&class)
		if err != nil {
			return nil, chk.Err("cannot decode class tag of record %d\n%v", i, err)
		}
		switch class {
		case ClassSpring:
			s := new(SpringSpec)
			err = s.Unpack(dec)
			specs = append(specs, s)
		case ClassTargetPoint:
			s := new(TargetPointSpec)
			err = s.Unpack(dec)
			specs = append(specs, s)
		default:
			return nil, chk.Err("record %d has unknown class tag %q", i, class)
		}
		if err != nil {
			return nil, chk.Err("cannot decode record %d\n%v", i, err)
		}
	}
	return
}
