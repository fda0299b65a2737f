// Copyright ©2025 curioloop. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package nlp

import "github.com/curioloop/nlpform/linalg"

// Dimension accessors. All report algorithm-space quantities, valid after
// FinalizeInitialization.

// N reports the global variable count.
func (f *Formulation) N() int64 { return f.nVars }

// M reports the global constraint count.
func (f *Formulation) M() int64 { return f.nCons }

// MEq reports the equality-constraint count.
func (f *Formulation) MEq() int64 { return f.nConsEq }

// MIneq reports the inequality-constraint count.
func (f *Formulation) MIneq() int64 { return f.nConsIneq }

// NLow reports the global count of variables with a finite lower bound.
func (f *Formulation) NLow() int64 { return f.nBndsLow }

// NUpp reports the global count of variables with a finite upper bound.
func (f *Formulation) NUpp() int64 { return f.nBndsUpp }

// MIneqLow reports the inequality constraints with a finite lower bound.
func (f *Formulation) MIneqLow() int64 { return f.nIneqLow }

// MIneqUpp reports the inequality constraints with a finite upper bound.
func (f *Formulation) MIneqUpp() int64 { return f.nIneqUpp }

// NComplem reports the total number of complementarity pairs the algorithm
// drives to zero.
func (f *Formulation) NComplem() int64 {
	return f.nIneqLow + f.nIneqUpp + f.nBndsLow + f.nBndsUpp
}

// NLocal reports the locally owned variable count.
func (f *Formulation) NLocal() int { return f.nLocal }

// NLowLocal reports the local count of variables with a finite lower bound.
func (f *Formulation) NLowLocal() int64 { return f.nBndsLowLocal }

// NUppLocal reports the local count of variables with a finite upper bound.
func (f *Formulation) NUppLocal() int64 { return f.nBndsUppLocal }

// Bound and partition accessors. The returned handles and slices are owned
// by the formulation and must be treated as read-only.

// XLow returns the variable lower bounds.
func (f *Formulation) XLow() *linalg.Vector { return f.xl }

// XUpp returns the variable upper bounds.
func (f *Formulation) XUpp() *linalg.Vector { return f.xu }

// IxLow returns the 0/1 lower-bound finiteness indicators.
func (f *Formulation) IxLow() *linalg.Vector { return f.ixl }

// IxUpp returns the 0/1 upper-bound finiteness indicators.
func (f *Formulation) IxUpp() *linalg.Vector { return f.ixu }

// CRHS returns the equality right-hand sides, in equality-mapping order.
func (f *Formulation) CRHS() *linalg.Vector { return f.cRHS }

// DLow returns the inequality lower bounds, in inequality-mapping order.
func (f *Formulation) DLow() *linalg.Vector { return f.dl }

// DUpp returns the inequality upper bounds, in inequality-mapping order.
func (f *Formulation) DUpp() *linalg.Vector { return f.du }

// IdLow returns the 0/1 inequality lower-bound indicators.
func (f *Formulation) IdLow() *linalg.Vector { return f.idl }

// IdUpp returns the 0/1 inequality upper-bound indicators.
func (f *Formulation) IdUpp() *linalg.Vector { return f.idu }

// EqMapping returns the increasing indices of the equality constraints in
// the original user ordering.
func (f *Formulation) EqMapping() []int64 { return f.eqMap }

// IneqMapping returns the increasing indices of the inequality constraints
// in the original user ordering.
func (f *Formulation) IneqMapping() []int64 { return f.ineqMap }

// VarTypes returns the local variable nonlinearity tags.
func (f *Formulation) VarTypes() []Nonlinearity { return f.varTypes }

// ConsEqTypes returns the equality-constraint nonlinearity tags.
func (f *Formulation) ConsEqTypes() []Nonlinearity { return f.consEqType }

// ConsIneqTypes returns the inequality-constraint nonlinearity tags.
func (f *Formulation) ConsIneqTypes() []Nonlinearity { return f.consIneqTyp }

// Distribution returns the inter-process partition, nil for serial problems.
func (f *Formulation) Distribution() *Distribution { return f.distrib }
