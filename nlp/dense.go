// Copyright ©2025 curioloop. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package nlp

import (
	"fmt"

	"github.com/curioloop/nlpform/linalg"
)

// evalJacDense evaluates one constraint-partition Jacobian of the dense
// variant. The matrix argument comes from the caller, so a wrong
// representation is a recoverable evaluation failure: it is logged as an
// internal error and reported without touching any formulation state.
func (f *Formulation) evalJacDense(x []float64, newX bool, idx []int64, jac linalg.Matrix) error {
	de, ok := jac.(*linalg.Dense)
	if !ok {
		f.log.log(LogError, "[internal error] dense formulation works only with dense matrices\n")
		return fmt.Errorf("%w: got %T, want *linalg.Dense", ErrMatrixKind, jac)
	}
	rows, cols := de.Dims()
	if rows != len(idx) || cols != f.nLocal {
		f.log.log(LogError, "[internal error] dense Jacobian is %dx%d, want %dx%d\n",
			rows, cols, len(idx), f.nLocal)
		return fmt.Errorf("%w: dense Jacobian is %dx%d, want %dx%d",
			ErrMatrixKind, rows, cols, len(idx), f.nLocal)
	}

	xUser := f.pipe.backward(x)
	if f.pipe.identity() {
		return f.dense.EvalJacCons(xUser, newX, idx, de.RawData())
	}
	// Evaluate in user space, then drop the eliminated columns.
	buf := f.jacBuf[:rows*f.nLocalUser]
	if err := f.dense.EvalJacCons(xUser, newX, idx, buf); err != nil {
		return err
	}
	f.pipe.reduceJacRows(rows, buf, de.RawData())
	return nil
}
