// Copyright ©2025 curioloop. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package linalg provides the vector and matrix handles allocated by the
// problem formulation layer and consumed by the interior-point algorithm.
//
// The package defines storage and addressing only. Vectors are contiguous
// float64 slices, optionally distributed across processes by an offsets
// array so that each process materializes just its local slice. Matrices
// come in three concrete representations:
//
//   - Dense: a row-major dense matrix with pre-reserved row capacity
//   - MDS: a Jacobian split column-wise into a sparse block and a dense block
//   - SymBlockDiagMDS: a symmetric Hessian with sparse and dense diagonal
//     blocks and a structurally empty cross block
//
// Which representation a formulation allocates is decided once at setup
// time; the evaluation contract expects exactly the representation its own
// factory produced.
package linalg
