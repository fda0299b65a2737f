// Copyright ©2025 curioloop. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package nlp

import "math"

type transformKind int

const (
	// fixVarsRemove eliminates fixed variables from the algorithm space and
	// holds them at their fixed value in user space.
	fixVarsRemove transformKind = iota
	// fixVarsRelax keeps fixed variables but perturbs their bounds outward;
	// the identity on every vector.
	fixVarsRelax
)

// transform is one reversible variable-space map. The closed set of kinds
// keeps application a plain switch instead of dynamic dispatch.
type transform struct {
	kind transformKind
	// idx holds the increasing indices, in this transform's user space, of
	// the entries it owns. Entries outside idx pass through untouched.
	idx []int
	// vals holds the values removed variables are pinned at (fixVarsRemove).
	vals []float64
	// bias is the additive objective adjustment applied going backward.
	// Removal pins variables inside the expanded evaluation point, so its
	// objective contribution is already part of the evaluated value and the
	// explicit bias stays zero.
	bias         float64
	nUser, nAlgo int
}

// pipeline is an ordered chain of reversible transforms between the
// algorithm's reduced variable space and the user's full variable space.
// Transforms apply to primal vectors in registration order and are undone
// in reverse order, a stack discipline. Application buffers are reused
// across calls; a pipeline instance is single-threaded like the
// formulation that owns it.
type pipeline struct {
	chain        []transform
	nUser, nAlgo int

	// scratch user-space and algorithm-space buffers
	ubuf, abuf []float64
}

// newPipeline starts an identity pipeline over n user-space entries.
func newPipeline(n int) *pipeline {
	return &pipeline{nUser: n, nAlgo: n}
}

// push registers t as the next stage. Its user space must match the
// algorithm space of the chain so far.
func (p *pipeline) push(t transform) {
	if t.nUser != p.nAlgo {
		panic("bound check error")
	}
	p.chain = append(p.chain, t)
	p.nAlgo = t.nAlgo
	if p.nAlgo != p.nUser {
		p.ubuf = make([]float64, p.nUser)
		p.abuf = make([]float64, p.nAlgo)
	}
}

// identity reports whether no registered transform changes any entry.
func (p *pipeline) identity() bool { return p.nAlgo == p.nUser }

// forward maps a user-space vector to algorithm space, applying the chain
// in registration order. When the pipeline is the identity the input is
// returned as is.
func (p *pipeline) forward(xUser []float64) []float64 {
	if len(xUser) != p.nUser {
		panic("bound check error")
	}
	if p.identity() {
		return xUser
	}
	x := xUser
	for i := range p.chain {
		x = p.chain[i].reduce(x, p.abuf[:p.chain[i].nAlgo])
	}
	return x
}

// backward maps an algorithm-space vector to user space, undoing the chain
// in reverse registration order. Entries owned by no transform come back
// bit-identical. When the pipeline is the identity the input is returned
// as is.
func (p *pipeline) backward(xAlgo []float64) []float64 {
	if len(xAlgo) != p.nAlgo {
		panic("bound check error")
	}
	if p.identity() {
		return xAlgo
	}
	x := xAlgo
	for i := len(p.chain) - 1; i >= 0; i-- {
		x = p.chain[i].expand(x, p.ubuf[:p.chain[i].nUser])
	}
	return x
}

// adjustObj applies the additive objective adjustment of the whole chain.
// Deterministic for fixed inputs.
func (p *pipeline) adjustObj(f float64) float64 {
	for i := range p.chain {
		f += p.chain[i].bias
	}
	return f
}

// reduceGrad maps a user-space gradient to algorithm space. Eliminated
// entries are dropped; their columns contribute nothing to the reduced
// problem.
func (p *pipeline) reduceGrad(gUser []float64) []float64 {
	return p.forward(gUser)
}

// reduceJacRows drops the eliminated columns from each of the rows of a
// row-major user-space Jacobian block, writing the algorithm-space block
// into dst. With an identity pipeline src is returned unchanged.
func (p *pipeline) reduceJacRows(rows int, src, dst []float64) []float64 {
	if p.identity() {
		return src
	}
	if len(src) != rows*p.nUser || len(dst) != rows*p.nAlgo {
		panic("bound check error")
	}
	for r := 0; r < rows; r++ {
		x := src[r*p.nUser : (r+1)*p.nUser]
		for i := range p.chain {
			buf := p.abuf[:p.chain[i].nAlgo]
			x = p.chain[i].reduce(x, buf)
		}
		copy(dst[r*p.nAlgo:(r+1)*p.nAlgo], x)
	}
	return dst
}

// scatterUser copies an algorithm-space vector into a freshly allocated
// user-space slice, placing fill at every entry owned by a removal stage.
// Used for non-primal quantities (bound multipliers) where the pinned
// primal value would be wrong.
func (p *pipeline) scatterUser(src []float64, fill float64) []float64 {
	if len(src) != p.nAlgo {
		panic("bound check error")
	}
	x := src
	for i := len(p.chain) - 1; i >= 0; i-- {
		t := &p.chain[i]
		if t.kind != fixVarsRemove {
			continue
		}
		dst := make([]float64, t.nUser)
		k, o := 0, 0
		for j := 0; j < t.nUser; j++ {
			if k < len(t.idx) && t.idx[k] == j {
				dst[j] = fill
				k++
				continue
			}
			dst[j] = x[o]
			o++
		}
		x = dst
	}
	out := make([]float64, p.nUser)
	copy(out, x)
	return out
}

// reduce drops the owned entries of t from src into dst (fixVarsRemove) or
// passes src through (fixVarsRelax).
func (t *transform) reduce(src, dst []float64) []float64 {
	if t.kind == fixVarsRelax {
		return src
	}
	k, o := 0, 0
	for i, v := range src {
		if k < len(t.idx) && t.idx[k] == i {
			k++
			continue
		}
		dst[o] = v
		o++
	}
	return dst
}

// expand reinserts the owned entries of t at their pinned values
// (fixVarsRemove) or passes src through (fixVarsRelax).
func (t *transform) expand(src, dst []float64) []float64 {
	if t.kind == fixVarsRelax {
		return src
	}
	// walk backwards so expansion stays correct when dst aliases src
	k, o := len(t.idx)-1, t.nAlgo-1
	for i := t.nUser - 1; i >= 0; i-- {
		if k >= 0 && t.idx[k] == i {
			dst[i] = t.vals[k]
			k--
			continue
		}
		dst[i] = src[o]
		o--
	}
	return dst
}

// fixedVarIndices detects the variables whose bounds coincide within tol
// (relative to the bound magnitude) on the local slice. Exact match when
// tol is zero.
func fixedVarIndices(xl, xu []float64, tol float64) []int {
	var idx []int
	for i, lo := range xl {
		up := xu[i]
		if !finiteLow(lo) || !finiteUpp(up) {
			continue
		}
		if up-lo <= tol*math.Max(1, math.Abs(lo)) {
			idx = append(idx, i)
		}
	}
	return idx
}

// newRemoveTransform builds the elimination stage for the given user-space
// dimension and fixed entries.
func newRemoveTransform(n int, idx []int, vals []float64) transform {
	return transform{
		kind: fixVarsRemove,
		idx:  idx, vals: vals,
		nUser: n, nAlgo: n - len(idx),
	}
}

// newRelaxTransform builds the relaxation stage and perturbs the bounds of
// the fixed entries outward in place, by tol scaled to the bound magnitude.
func newRelaxTransform(n int, idx []int, xl, xu []float64, tol float64) transform {
	for _, i := range idx {
		d := tol * math.Max(1, math.Abs(xl[i]))
		xl[i] -= d
		xu[i] += d
	}
	return transform{kind: fixVarsRelax, idx: idx, nUser: n, nAlgo: n}
}
