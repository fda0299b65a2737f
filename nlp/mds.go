// Copyright ©2025 curioloop. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package nlp

import "github.com/curioloop/nlpform/linalg"

// evalJacMDS evaluates one constraint-partition Jacobian of the MDS
// variant. The factory guarantees the representation it allocates, so a
// wrong matrix type here is an internal-consistency violation, not a
// recoverable failure. The sparse buffers keep their allocated length
// across the call: the interface may overwrite the pattern and values but
// can never grow or shrink the declared nonzero count.
func (f *Formulation) evalJacMDS(x []float64, newX bool, idx []int64, jac linalg.Matrix) error {
	md, ok := jac.(*linalg.MDS)
	if !ok {
		panic("nlp: MDS formulation requires the matrix its factory allocates")
	}
	sp := md.Sparse()
	if rows, _ := md.Dims(); rows != len(idx) || md.NSparse() != int(f.nxSparse) || md.NDense() != int(f.nxDense) {
		panic("nlp: MDS Jacobian not allocated by this formulation")
	}
	return f.mds.EvalJacCons(f.pipe.backward(x), newX, idx,
		f.nxSparse, f.nxDense,
		sp.RowIdx(), sp.ColIdx(), sp.Values(),
		md.DenseBlock().RawData())
}

// evalHessMDS evaluates the Hessian of the Lagrangian of the MDS variant.
// The representation carries a sparse diagonal block and a dense diagonal
// block; the cross block is structurally empty, a deliberate restriction
// of this formulation rather than a general sparse-Hessian capability.
func (f *Formulation) evalHessMDS(x []float64, newX bool, objFactor float64,
	lambda []float64, newLambda bool, hess linalg.Matrix) error {
	hs, ok := hess.(*linalg.SymBlockDiagMDS)
	if !ok {
		panic("nlp: MDS formulation requires the matrix its factory allocates")
	}
	if hs.NSparse() != int(f.nxSparse) || hs.NDense() != int(f.nxDense) || hs.CrossNNZ() != 0 {
		panic("nlp: MDS Hessian not allocated by this formulation")
	}
	if int64(len(lambda)) != f.nCons {
		panic("nlp: multiplier dimension not match formulation")
	}
	sp := hs.Sparse()
	return f.mds.EvalHessLagr(f.pipe.backward(x), newX, objFactor, lambda, newLambda,
		f.nxSparse, f.nxDense,
		sp.RowIdx(), sp.ColIdx(), sp.Values(),
		hs.DenseBlock().RawData())
}
