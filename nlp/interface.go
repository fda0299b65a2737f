// Copyright ©2025 curioloop. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package nlp

// Infinity is the sentinel magnitude encoding an absent bound. Any bound
// whose magnitude meets or exceeds it is treated as unbounded. The constant
// is a protocol value shared between the formulation and every interface
// implementation.
const Infinity = 1e20

// Nonlinearity tags one variable or constraint as linear or nonlinear.
type Nonlinearity int8

const (
	// Linear marks a quantity entering the problem linearly.
	Linear Nonlinearity = iota
	// Nonlinear marks a quantity entering the problem nonlinearly.
	Nonlinear
)

// SolveStatus is the outcome reported to the solution monitor.
type SolveStatus int

const (
	// SolveSucceeded the algorithm found a point satisfying the tolerances.
	SolveSucceeded SolveStatus = iota
	// SolveAcceptable the algorithm stopped at an acceptable-level point.
	SolveAcceptable
	// SolveInfeasible the algorithm converged to an infeasible stationary point.
	SolveInfeasible
	// SolveOverIterLimit the iteration limit was exhausted.
	SolveOverIterLimit
	// SolveUserStopped the iterate monitor requested early termination.
	SolveUserStopped
	// SolveError the algorithm failed.
	SolveError
)

// Interface is the capability contract every problem description implements.
//
// All Eval methods receive the point in user space. The newX flag signals
// whether x changed since the previous evaluation call; the formulation
// forwards it exactly as received and never caches results itself. A method
// reporting an error aborts the surrounding formulation call; the error
// value propagates to the algorithm unchanged.
//
// Bounds use the Infinity sentinel convention. For distributed problems the
// variable-indexed slices passed to VarsInfo and the x/grad slices of the
// evaluation calls cover only the local slice declared by VecDistribInfo.
type Interface interface {
	// ProbSizes reports the global variable and constraint counts.
	ProbSizes() (nVars, nCons int64, err error)
	// VarsInfo fills per-variable lower/upper bounds and nonlinearity tags.
	VarsInfo(xlow, xupp []float64, types []Nonlinearity) error
	// ConsInfo fills per-constraint lower/upper bounds and nonlinearity tags.
	ConsInfo(clow, cupp []float64, types []Nonlinearity) error

	// EvalF evaluates the objective at x. On distributed problems the
	// result is the rank-local partial sum; the formulation reduces the
	// partials into the global objective.
	EvalF(x []float64, newX bool) (obj float64, err error)
	// EvalGradF fills the objective gradient at x.
	EvalGradF(x []float64, newX bool, grad []float64) error
	// EvalCons evaluates the constraint subset selected by idx, in idx order.
	// The formulation queries the equality and inequality partitions through
	// separate calls, each with its own increasing index map.
	EvalCons(x []float64, newX bool, idx []int64, cons []float64) error
}

// DenseInterface describes problems whose constraint Jacobians are dense.
type DenseInterface interface {
	Interface
	// EvalJacCons fills the Jacobian rows of the constraint subset selected
	// by idx into jac, a row-major len(idx) × nVars block in user space.
	EvalJacCons(x []float64, newX bool, idx []int64, jac []float64) error
}

// MDSInterface describes problems whose derivatives split into a sparse
// block over the first nSparse variables and a dense block over the rest.
type MDSInterface interface {
	Interface
	// SparseBlockInfo reports the variable split and the fixed nonzero
	// counts of the sparse Jacobian blocks and of the sparse diagonal
	// Hessian block.
	SparseBlockInfo() (nSparse, nDense int64, nnzJacEq, nnzJacIneq, nnzHessSS int64, err error)
	// EvalJacCons fills both Jacobian blocks of the constraint subset
	// selected by idx in one combined call: the sparse triplet buffers
	// (iJac, jJac, mJac) and the row-major len(idx) × nDense block jacDense.
	// Only values may change; the declared pattern length is immutable.
	EvalJacCons(x []float64, newX bool, idx []int64,
		nSparse, nDense int64, iJac, jJac []int32, mJac []float64, jacDense []float64) error
	// EvalHessLagr fills the Hessian of the Lagrangian: the sparse diagonal
	// block triplets and the row-major nDense × nDense dense diagonal block.
	// The cross sparse/dense block is required to be structurally empty.
	EvalHessLagr(x []float64, newX bool, objFactor float64, lambda []float64, newLambda bool,
		nSparse, nDense int64, iHess, jHess []int32, mHess []float64, hessDense []float64) error
}

// StartingPointGiver is the optional capability of supplying an initial
// point. Returning false declines, in which case the formulation applies
// its documented deterministic fallback.
type StartingPointGiver interface {
	StartingPoint(x []float64) bool
}

// SolutionMonitor is the optional capability of observing the final solve
// outcome. Slices passed to the callback are flat user-space arrays valid
// only for the duration of the call.
type SolutionMonitor interface {
	SolutionCallback(status SolveStatus, x, zLow, zUpp, cons, lambda []float64, obj float64)
}

// IterateMonitor is the optional capability of observing each iteration.
// Returning false requests early termination of the solve.
type IterateMonitor interface {
	IterateCallback(iter int, obj float64, x, zLow, zUpp, cons, lambda []float64,
		infPr, infDu, mu, alphaDu, alphaPr float64, lsTrials int) bool
}

// Distributed is the optional capability of declaring an inter-process
// distribution of the variable space. The returned offsets array holds
// numRanks+1 increasing entries partitioning [0, nVars); rank r owns
// [offsets[r], offsets[r+1]). Returning ok=false keeps the problem serial.
type Distributed interface {
	VecDistribInfo(nVars int64) (offsets []int64, ok bool)
}
