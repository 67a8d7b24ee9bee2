// Copyright 2016 The IBAMR Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package field

import (
	"github.com/cpmech/gosl/chk"

	"github.com/ehsanakrami/IBAMR/grid"
)

// Registry maps quantity names to allocated face index fields. Each solver
// instance owns its own registry so that independent solvers on the same
// level never share or re-register index storage.
type Registry struct {
	level  *grid.Level
	depths map[string]int
	fields map[string]*FaceIndexField
}

// NewRegistry returns an empty registry bound to a level
func NewRegistry(level *grid.Level) *Registry {
	return &Registry{
		level:  level,
		depths: make(map[string]int),
		fields: make(map[string]*FaceIndexField),
	}
}

// SetDefaultDepth declares the depth a named quantity will be allocated with.
// Must be called before Alloc; re-declaring replaces any prior allocation.
func (o *Registry) SetDefaultDepth(name string, depth int) {
	if depth < 1 {
		chk.Panic("depth of %q must be at least 1. depth=%d is invalid", name, depth)
	}
	o.depths[name] = depth
	delete(o.fields, name)
}

// Alloc allocates (or returns the existing) index field for a named quantity
func (o *Registry) Alloc(name string) (*FaceIndexField, error) {
	depth, ok := o.depths[name]
	if !ok {
		return nil, chk.Err("depth of %q was not declared before allocation", name)
	}
	if f, ok := o.fields[name]; ok {
		return f, nil
	}
	f := NewFaceIndexField(o.level, depth)
	o.fields[name] = f
	return f, nil
}

// Get returns the allocated field for name, checking the expected depth
func (o *Registry) Get(name string, depth int) (*FaceIndexField, error) {
	f, ok := o.fields[name]
	if !ok {
		return nil, chk.Err("quantity %q is not allocated", name)
	}
	if f.Depth != depth {
		return nil, chk.Err("quantity %q has depth %d but depth %d was requested", name, f.Depth, depth)
	}
	return f, nil
}

// Free releases the storage of a named quantity
func (o *Registry) Free(name string) {
	delete(o.fields, name)
}
