// Copyright ©2025 curioloop. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package nlp

import "errors"

var (
	// ErrFinalized indicates FinalizeInitialization ran a second time on the
	// same formulation. The first committed state is left untouched.
	ErrFinalized = errors.New("nlp: formulation already finalized")
	// ErrNotFinalized indicates an evaluation or factory call ran before
	// FinalizeInitialization.
	ErrNotFinalized = errors.New("nlp: formulation not finalized")
	// ErrFixedVarsMode indicates an unrecognized or unsupported fixed
	// variable treatment. Finalize fails; the solve must not proceed.
	ErrFixedVarsMode = errors.New("nlp: invalid fixed variable mode")
	// ErrDimensionMismatch indicates a size or array reported by the user
	// interface is inconsistent with the declared problem dimensions.
	ErrDimensionMismatch = errors.New("nlp: interface dimension mismatch")
	// ErrMatrixKind indicates the matrix argument of a Jacobian evaluation
	// does not match the representation this formulation allocates. The
	// failure is recoverable: the formulation state is untouched.
	ErrMatrixKind = errors.New("nlp: matrix representation not match formulation")
)
