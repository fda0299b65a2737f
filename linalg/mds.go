// Copyright ©2025 curioloop. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package linalg

// Triplet is a sparse block in coordinate format with a frozen pattern.
//
// The nonzero count is fixed at allocation: evaluation calls overwrite the
// row/column indices and values in place but never grow or shrink them.
type Triplet struct {
	rows, cols int
	irow, jcol []int32
	vals       []float64
}

// NewTriplet allocates a rows × cols sparse block holding exactly nnz entries.
func NewTriplet(rows, cols, nnz int) *Triplet {
	if rows < 0 || cols < 0 || nnz < 0 {
		panic("linalg: negative triplet dimension")
	}
	return &Triplet{
		rows: rows, cols: cols,
		irow: make([]int32, nnz),
		jcol: make([]int32, nnz),
		vals: make([]float64, nnz),
	}
}

// Dims reports the block shape.
func (t *Triplet) Dims() (rows, cols int) { return t.rows, t.cols }

// NNZ reports the fixed nonzero count.
func (t *Triplet) NNZ() int { return len(t.vals) }

// RowIdx exposes the row index buffer. The slice aliases the storage.
func (t *Triplet) RowIdx() []int32 { return t.irow }

// ColIdx exposes the column index buffer. The slice aliases the storage.
func (t *Triplet) ColIdx() []int32 { return t.jcol }

// Values exposes the value buffer. The slice aliases the storage.
func (t *Triplet) Values() []float64 { return t.vals }

// MDS is a Jacobian whose columns split into a sparse block over the first
// nSparse variables followed by a dense block over the remaining nDense.
type MDS struct {
	sp *Triplet
	de *Dense
}

// NewMDS allocates a rows × (nSparse+nDense) mixed matrix whose sparse block
// holds exactly nnz entries.
func NewMDS(rows, nSparse, nDense, nnz int) *MDS {
	return &MDS{
		sp: NewTriplet(rows, nSparse, nnz),
		de: NewDense(rows, nDense),
	}
}

// Dims reports the logical shape spanning both blocks.
func (m *MDS) Dims() (rows, cols int) {
	rows, cs := m.sp.Dims()
	_, cd := m.de.Dims()
	return rows, cs + cd
}

// NSparse reports the sparse-block column count.
func (m *MDS) NSparse() int { _, c := m.sp.Dims(); return c }

// NDense reports the dense-block column count.
func (m *MDS) NDense() int { _, c := m.de.Dims(); return c }

// Sparse exposes the sparse block.
func (m *MDS) Sparse() *Triplet { return m.sp }

// DenseBlock exposes the dense block.
func (m *MDS) DenseBlock() *Dense { return m.de }

// SymBlockDiagMDS is a symmetric Hessian-of-Lagrangian with a sparse
// nSparse × nSparse diagonal block and a dense nDense × nDense diagonal
// block. The cross sparse/dense block is structurally empty: its nonzero
// count is zero and stays zero for the lifetime of the matrix.
type SymBlockDiagMDS struct {
	sp *Triplet
	de *Dense
}

// NewSymBlockDiagMDS allocates the Hessian representation with nnz entries
// reserved for the sparse diagonal block.
func NewSymBlockDiagMDS(nSparse, nDense, nnz int) *SymBlockDiagMDS {
	return &SymBlockDiagMDS{
		sp: NewTriplet(nSparse, nSparse, nnz),
		de: NewDense(nDense, nDense),
	}
}

// Dims reports the logical shape spanning both diagonal blocks.
func (h *SymBlockDiagMDS) Dims() (rows, cols int) {
	rs, _ := h.sp.Dims()
	rd, _ := h.de.Dims()
	return rs + rd, rs + rd
}

// NSparse reports the sparse diagonal block dimension.
func (h *SymBlockDiagMDS) NSparse() int { r, _ := h.sp.Dims(); return r }

// NDense reports the dense diagonal block dimension.
func (h *SymBlockDiagMDS) NDense() int { r, _ := h.de.Dims(); return r }

// Sparse exposes the sparse diagonal block.
func (h *SymBlockDiagMDS) Sparse() *Triplet { return h.sp }

// DenseBlock exposes the dense diagonal block.
func (h *SymBlockDiagMDS) DenseBlock() *Dense { return h.de }

// CrossNNZ reports the cross-block nonzero count, zero by construction.
func (h *SymBlockDiagMDS) CrossNNZ() int { return 0 }
