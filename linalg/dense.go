// Copyright ©2025 curioloop. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package linalg

import (
	"gonum.org/v1/gonum/mat"
)

// Matrix is the representation-agnostic handle for factory-allocated
// derivative matrices. The concrete type is decided by the formulation
// variant that allocated it.
type Matrix interface {
	// Dims reports the logical row and column count.
	Dims() (rows, cols int)
}

// Dense is a row-major dense matrix with a pre-reserved row capacity.
//
// The backing storage holds maxRows rows so the active row count can grow
// up to that cap without reallocation. This serves limited-memory secant
// histories where the algorithm appends rows as iterations accumulate.
type Dense struct {
	rows, cols int
	maxRows    int
	m          *mat.Dense
}

// NewDense allocates a rows × cols dense matrix with no spare row capacity.
func NewDense(rows, cols int) *Dense {
	return NewDenseWithReserve(rows, rows, cols)
}

// NewDenseWithReserve allocates a rows × cols dense matrix whose backing
// storage can hold up to maxRows rows. maxRows below rows is clamped to rows.
func NewDenseWithReserve(rows, maxRows, cols int) *Dense {
	if rows < 0 || cols < 0 {
		panic("linalg: negative matrix dimension")
	}
	maxRows = max(maxRows, rows)
	var m *mat.Dense
	if maxRows > 0 && cols > 0 {
		m = mat.NewDense(maxRows, cols, nil)
	}
	return &Dense{rows: rows, cols: cols, maxRows: maxRows, m: m}
}

// Dims reports the active row count and the column count.
func (d *Dense) Dims() (rows, cols int) { return d.rows, d.cols }

// MaxRows reports the reserved row capacity.
func (d *Dense) MaxRows() int { return d.maxRows }

// Resize sets the active row count, which must not exceed the reserved
// capacity. Storage is never reallocated.
func (d *Dense) Resize(rows int) {
	if rows < 0 || rows > d.maxRows {
		panic("linalg: resize beyond reserved row capacity")
	}
	d.rows = rows
}

// RawData exposes the active rows as one contiguous row-major slice.
// The slice aliases the matrix storage.
func (d *Dense) RawData() []float64 {
	if d.m == nil {
		return nil
	}
	return d.m.RawMatrix().Data[:d.rows*d.cols]
}

// RowView exposes row i of the active block. The slice aliases the storage.
func (d *Dense) RowView(i int) []float64 {
	if i < 0 || i >= d.rows {
		panic("linalg: row index out of range")
	}
	return d.m.RawRowView(i)
}

// Mat exposes the active block as a gonum matrix view.
func (d *Dense) Mat() mat.Matrix {
	if d.rows == 0 || d.cols == 0 {
		return &mat.Dense{}
	}
	return d.m.Slice(0, d.rows, 0, d.cols)
}
