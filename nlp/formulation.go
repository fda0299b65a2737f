// Copyright ©2025 curioloop. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package nlp

import (
	"fmt"
	"io"

	"github.com/curioloop/nlpform/linalg"
)

type formulationKind int

const (
	// denseConstraints all Jacobian data is dense; the Hessian is left to a
	// quasi-Newton approximation owned by the algorithm.
	denseConstraints formulationKind = iota
	// mixedSparseDense Jacobians and the Hessian split into a fixed sparse
	// block and a dense block.
	mixedSparseDense
)

// Formulation normalizes a user problem description into the internal
// representation the interior-point algorithm consumes: classified bounds,
// the equality/inequality constraint partition, the variable-space
// transformation pipeline, and a factory for correctly-shaped vectors and
// derivative matrices.
//
// The Dense and MDS derivative representations form a closed variant set
// selected once at construction by NewDense or NewMDS; everything else is
// shared bookkeeping.
//
// A formulation borrows its interface for its whole lifetime and never
// releases it. FinalizeInitialization must run exactly once, before any
// evaluation or factory call. Evaluation is strictly synchronous: no two
// calls on the same instance may run concurrently.
type Formulation struct {
	iface Interface
	kind  formulationKind
	dense DenseInterface
	mds   MDSInterface

	opts Options
	log  *Logger

	finalized bool

	// dimensions, algorithm space unless noted
	nVars, nCons         int64 // global
	nVarsUser            int64 // global, before the pipeline
	nConsEq, nConsIneq   int64
	nLocal, nLocalUser   int
	nBndsLow, nBndsUpp   int64 // global
	nBndsLowUpp          int64 // global
	nBndsLowLocal        int64
	nBndsUppLocal        int64
	nIneqLow, nIneqUpp   int64
	nIneqLowUpp          int64

	xl, xu, ixl, ixu *linalg.Vector
	varTypes         []Nonlinearity // local

	cRHS        *linalg.Vector
	consEqType  []Nonlinearity
	dl, du      *linalg.Vector
	idl, idu    *linalg.Vector
	consIneqTyp []Nonlinearity
	eqMap       []int64
	ineqMap     []int64

	pipe    *pipeline
	distrib *Distribution
	reducer Reducer

	// MDS block structure, fixed at finalize
	nxSparse, nxDense               int64
	nnzJacEq, nnzJacIneq, nnzHessSS int64

	// evaluation scratch, sized at finalize
	gradBuf []float64
	jacBuf  []float64
}

// NewDense creates a formulation over a problem with dense constraint
// Jacobians. The interface is borrowed, not owned: the caller keeps it
// alive for the formulation's lifetime.
func NewDense(iface DenseInterface, opts Options) *Formulation {
	return &Formulation{iface: iface, kind: denseConstraints, dense: iface, opts: opts, log: opts.Logger}
}

// NewMDS creates a formulation over a problem with mixed sparse-dense
// derivative blocks. The interface is borrowed, not owned.
func NewMDS(iface MDSInterface, opts Options) *Formulation {
	return &Formulation{iface: iface, kind: mixedSparseDense, mds: iface, opts: opts, log: opts.Logger}
}

// FinalizeInitialization queries the problem sizes, bounds and types,
// partitions the constraints into equality and inequality sets, classifies
// the bounds, and builds the transformation pipeline. It runs exactly once:
// a second call fails with ErrFinalized. On any interface failure or
// dimension inconsistency it returns the error without committing any
// state, and the solve must not proceed.
func (f *Formulation) FinalizeInitialization() error {
	if f.finalized {
		return ErrFinalized
	}

	opts, err := f.opts.withDefaults()
	if err != nil {
		return err
	}

	nVarsUser, nCons, err := f.iface.ProbSizes()
	if err != nil {
		return err
	}
	if nVarsUser < 0 || nCons < 0 {
		return fmt.Errorf("%w: negative problem size (%d, %d)", ErrDimensionMismatch, nVarsUser, nCons)
	}

	var distrib *Distribution
	if d, ok := f.iface.(Distributed); ok {
		if offsets, ok := d.VecDistribInfo(nVarsUser); ok {
			if distrib, err = newDistribution(nVarsUser, offsets, opts.Rank); err != nil {
				return err
			}
		}
	}

	nLocalUser := int(nVarsUser)
	if distrib != nil {
		nLocalUser = distrib.LocalSize()
	}

	xl := make([]float64, nLocalUser)
	xu := make([]float64, nLocalUser)
	varTypes := make([]Nonlinearity, nLocalUser)
	if err = f.iface.VarsInfo(xl, xu, varTypes); err != nil {
		return err
	}

	cl := make([]float64, nCons)
	cu := make([]float64, nCons)
	consTypes := make([]Nonlinearity, nCons)
	if err = f.iface.ConsInfo(cl, cu, consTypes); err != nil {
		return err
	}

	var nxSparse, nxDense, nnzJacEq, nnzJacIneq, nnzHessSS int64
	if f.kind == mixedSparseDense {
		nxSparse, nxDense, nnzJacEq, nnzJacIneq, nnzHessSS, err = f.mds.SparseBlockInfo()
		if err != nil {
			return err
		}
		switch {
		case nxSparse < 0 || nxDense < 0 || nxSparse+nxDense != nVarsUser:
			return fmt.Errorf("%w: sparse/dense split (%d, %d) not cover %d variables",
				ErrDimensionMismatch, nxSparse, nxDense, nVarsUser)
		case nnzJacEq < 0 || nnzJacIneq < 0 || nnzHessSS < 0:
			return fmt.Errorf("%w: negative nonzero count", ErrDimensionMismatch)
		}
	}

	// Build the transformation pipeline. Elimination re-dimensions the
	// variable space, which neither the frozen MDS sparsity pattern nor a
	// fixed inter-process partition can follow; those configurations take
	// the relax treatment instead.
	pipe := newPipeline(nLocalUser)
	switch opts.FixedVars {
	case FixedVarsRemove:
		if f.kind == mixedSparseDense {
			return fmt.Errorf("%w: %q not supported with mixed sparse-dense derivatives, use %q",
				ErrFixedVarsMode, FixedVarsRemove, FixedVarsRelax)
		}
		if distrib != nil {
			return fmt.Errorf("%w: %q not supported with distributed vectors, use %q",
				ErrFixedVarsMode, FixedVarsRemove, FixedVarsRelax)
		}
		if idx := fixedVarIndices(xl, xu, opts.FixedVarsTol); len(idx) > 0 {
			vals := make([]float64, len(idx))
			for k, i := range idx {
				vals[k] = xl[i]
			}
			t := newRemoveTransform(nLocalUser, idx, vals)
			pipe.push(t)
			xl = reduceCopy(&t, xl)
			xu = reduceCopy(&t, xu)
			varTypes = reduceTypes(&t, varTypes)
			f.log.log(LogSummary, "fixed variables: removed %d of %d\n", len(idx), nLocalUser)
		}
	case FixedVarsRelax:
		if idx := fixedVarIndices(xl, xu, opts.FixedVarsTol); len(idx) > 0 {
			pipe.push(newRelaxTransform(nLocalUser, idx, xl, xu, opts.FixedVarsTol))
			f.log.log(LogSummary, "fixed variables: relaxed %d of %d\n", len(idx), nLocalUser)
		}
	}

	nLocal := pipe.nAlgo
	nVars := nVarsUser - int64(nLocalUser-nLocal)

	newVec := func() (*linalg.Vector, error) {
		if distrib != nil {
			return linalg.NewDistributedVector(nVars, distrib.Offsets(), distrib.Rank())
		}
		return linalg.NewVector(nVars), nil
	}

	var bndVecs [4]*linalg.Vector
	for i := range bndVecs {
		if bndVecs[i], err = newVec(); err != nil {
			return err
		}
	}
	xlv, xuv, ixl, ixu := bndVecs[0], bndVecs[1], bndVecs[2], bndVecs[3]
	xlv.CopyFromSlice(xl)
	xuv.CopyFromSlice(xu)

	bnds := classifyBounds(xlv.LocalData(), xuv.LocalData(), ixl.LocalData(), ixu.LocalData())
	global, err := opts.Reducer.SumInt64([]int64{bnds.low, bnds.upp, bnds.lowUpp})
	if err != nil {
		return err
	}
	if len(global) != 3 {
		return fmt.Errorf("%w: reducer returned %d sums for 3 inputs", ErrDimensionMismatch, len(global))
	}

	// Partition the constraints: equality exactly when the two declared
	// bounds match, inequality otherwise with the bounds taken verbatim.
	// Both mappings stay increasing by construction.
	var eqMap, ineqMap []int64
	for j := int64(0); j < nCons; j++ {
		if cl[j] == cu[j] {
			eqMap = append(eqMap, j)
		} else {
			ineqMap = append(ineqMap, j)
		}
	}
	nConsEq, nConsIneq := int64(len(eqMap)), int64(len(ineqMap))

	cRHS := linalg.NewVector(nConsEq)
	consEqType := make([]Nonlinearity, nConsEq)
	for k, j := range eqMap {
		cRHS.LocalData()[k] = cl[j]
		consEqType[k] = consTypes[j]
	}

	dl := linalg.NewVector(nConsIneq)
	du := linalg.NewVector(nConsIneq)
	consIneqTyp := make([]Nonlinearity, nConsIneq)
	for k, j := range ineqMap {
		dl.LocalData()[k] = cl[j]
		du.LocalData()[k] = cu[j]
		consIneqTyp[k] = consTypes[j]
	}
	idl := linalg.NewVector(nConsIneq)
	idu := linalg.NewVector(nConsIneq)
	ineq := classifyBounds(dl.LocalData(), du.LocalData(), idl.LocalData(), idu.LocalData())

	// Commit. Nothing above mutated the receiver, so a failed finalize
	// leaves the formulation untouched.
	f.opts = opts
	f.nVars, f.nCons, f.nVarsUser = nVars, nCons, nVarsUser
	f.nConsEq, f.nConsIneq = nConsEq, nConsIneq
	f.nLocal, f.nLocalUser = nLocal, nLocalUser
	f.nBndsLowLocal, f.nBndsUppLocal = bnds.low, bnds.upp
	f.nBndsLow, f.nBndsUpp, f.nBndsLowUpp = global[0], global[1], global[2]
	f.nIneqLow, f.nIneqUpp, f.nIneqLowUpp = ineq.low, ineq.upp, ineq.lowUpp
	f.xl, f.xu, f.ixl, f.ixu = xlv, xuv, ixl, ixu
	f.varTypes = varTypes
	f.cRHS, f.consEqType = cRHS, consEqType
	f.dl, f.du, f.idl, f.idu = dl, du, idl, idu
	f.consIneqTyp = consIneqTyp
	f.eqMap, f.ineqMap = eqMap, ineqMap
	f.pipe, f.distrib, f.reducer = pipe, distrib, opts.Reducer
	f.nxSparse, f.nxDense = nxSparse, nxDense
	f.nnzJacEq, f.nnzJacIneq, f.nnzHessSS = nnzJacEq, nnzJacIneq, nnzHessSS

	if !pipe.identity() {
		f.gradBuf = make([]float64, nLocalUser)
		if f.kind == denseConstraints {
			f.jacBuf = make([]float64, int(max(nConsEq, nConsIneq))*nLocalUser)
		}
	}

	f.finalized = true
	f.Print(nil)
	return nil
}

func reduceCopy(t *transform, src []float64) []float64 {
	dst := make([]float64, t.nAlgo)
	return t.reduce(src, dst)
}

func reduceTypes(t *transform, src []Nonlinearity) []Nonlinearity {
	dst := make([]Nonlinearity, 0, t.nAlgo)
	k := 0
	for i, v := range src {
		if k < len(t.idx) && t.idx[k] == i {
			k++
			continue
		}
		dst = append(dst, v)
	}
	return dst
}

// EvalF evaluates the objective at the algorithm-space point x. The newX
// flag and any interface error pass through unchanged. On distributed
// problems the interface reports its rank-local partial sum and the global
// objective is produced here by one collective reduction per call.
func (f *Formulation) EvalF(x []float64, newX bool) (float64, error) {
	if !f.finalized {
		return 0, ErrNotFinalized
	}
	obj, err := f.iface.EvalF(f.pipe.backward(x), newX)
	if err != nil {
		return 0, err
	}
	if f.distrib != nil {
		sums, err := f.reducer.SumFloat64([]float64{obj})
		if err != nil {
			return 0, err
		}
		obj = sums[0]
	}
	return f.pipe.adjustObj(obj), nil
}

// EvalGradF fills the algorithm-space objective gradient at x.
func (f *Formulation) EvalGradF(x []float64, newX bool, grad []float64) error {
	if !f.finalized {
		return ErrNotFinalized
	}
	if len(grad) != f.nLocal {
		panic("nlp: gradient dimension not match formulation")
	}
	xUser := f.pipe.backward(x)
	if f.pipe.identity() {
		return f.iface.EvalGradF(xUser, newX, grad)
	}
	if err := f.iface.EvalGradF(xUser, newX, f.gradBuf); err != nil {
		return err
	}
	copy(grad, f.pipe.reduceGrad(f.gradBuf))
	return nil
}

// EvalC evaluates the equality-constraint body values at x, in the order of
// the equality mapping.
func (f *Formulation) EvalC(x []float64, newX bool, c []float64) error {
	if !f.finalized {
		return ErrNotFinalized
	}
	if int64(len(c)) != f.nConsEq {
		panic("nlp: constraint dimension not match formulation")
	}
	return f.iface.EvalCons(f.pipe.backward(x), newX, f.eqMap, c)
}

// EvalD evaluates the inequality-constraint body values at x, in the order
// of the inequality mapping.
func (f *Formulation) EvalD(x []float64, newX bool, d []float64) error {
	if !f.finalized {
		return ErrNotFinalized
	}
	if int64(len(d)) != f.nConsIneq {
		panic("nlp: constraint dimension not match formulation")
	}
	return f.iface.EvalCons(f.pipe.backward(x), newX, f.ineqMap, d)
}

// EvalJacC evaluates the equality-constraint Jacobian into jac, which must
// be the representation AllocJacC produces for this formulation.
func (f *Formulation) EvalJacC(x []float64, newX bool, jac linalg.Matrix) error {
	if !f.finalized {
		return ErrNotFinalized
	}
	switch f.kind {
	case mixedSparseDense:
		return f.evalJacMDS(x, newX, f.eqMap, jac)
	default:
		return f.evalJacDense(x, newX, f.eqMap, jac)
	}
}

// EvalJacD evaluates the inequality-constraint Jacobian into jac, which
// must be the representation AllocJacD produces for this formulation.
func (f *Formulation) EvalJacD(x []float64, newX bool, jac linalg.Matrix) error {
	if !f.finalized {
		return ErrNotFinalized
	}
	switch f.kind {
	case mixedSparseDense:
		return f.evalJacMDS(x, newX, f.ineqMap, jac)
	default:
		return f.evalJacDense(x, newX, f.ineqMap, jac)
	}
}

// EvalHessLagr evaluates the Hessian of the Lagrangian into hess. The
// lambda slice holds the constraint multipliers in the original user
// ordering, length m. Only the MDS variant supports analytic Hessians: the
// dense variant pairs with a quasi-Newton algorithm and panics here.
func (f *Formulation) EvalHessLagr(x []float64, newX bool, objFactor float64,
	lambda []float64, newLambda bool, hess linalg.Matrix) error {
	if !f.finalized {
		return ErrNotFinalized
	}
	if f.kind != mixedSparseDense {
		panic("nlp: dense formulation pairs with quasi-Newton, no analytic Hessian")
	}
	return f.evalHessMDS(x, newX, objFactor, lambda, newLambda, hess)
}

// StartingPoint fills x0 with the initial point. When the interface
// supplies one it is mapped through the pipeline; when it declines or has
// no such capability, the deterministic fallback applies per entry: the
// bound midpoint when both bounds are finite, the finite bound when only
// one is, zero when free.
func (f *Formulation) StartingPoint(x0 *linalg.Vector) error {
	if !f.finalized {
		return ErrNotFinalized
	}
	if x0.LocalSize() != f.nLocal || x0.Size() != f.nVars {
		panic("nlp: starting point vector not allocated by this formulation")
	}
	if g, ok := f.iface.(StartingPointGiver); ok {
		buf := make([]float64, f.nLocalUser)
		if g.StartingPoint(buf) {
			x0.CopyFromSlice(f.pipe.forward(buf))
			return nil
		}
	}
	xl, xu, dst := f.xl.LocalData(), f.xu.LocalData(), x0.LocalData()
	for i, lo := range xl {
		up := xu[i]
		l, u := finiteLow(lo), finiteUpp(up)
		switch {
		case l && u:
			dst[i] = 0.5 * (lo + up)
		case l:
			dst[i] = lo
		case u:
			dst[i] = up
		default:
			dst[i] = 0
		}
	}
	return nil
}

// AllocPrimalVec allocates a vector over the algorithm-space variables,
// partitioned like the problem when distributed. The caller owns it.
func (f *Formulation) AllocPrimalVec() *linalg.Vector {
	f.mustFinalized()
	if f.distrib != nil {
		v, err := linalg.NewDistributedVector(f.nVars, f.distrib.Offsets(), f.distrib.Rank())
		if err != nil {
			panic(err)
		}
		return v
	}
	return linalg.NewVector(f.nVars)
}

// AllocDualEqVec allocates a vector over the equality constraints.
func (f *Formulation) AllocDualEqVec() *linalg.Vector {
	f.mustFinalized()
	return linalg.NewVector(f.nConsEq)
}

// AllocDualIneqVec allocates a vector over the inequality constraints.
func (f *Formulation) AllocDualIneqVec() *linalg.Vector {
	f.mustFinalized()
	return linalg.NewVector(f.nConsIneq)
}

// AllocDualVec allocates a vector over all constraints.
func (f *Formulation) AllocDualVec() *linalg.Vector {
	f.mustFinalized()
	return linalg.NewVector(f.nCons)
}

// AllocJacC allocates the equality-constraint Jacobian in the
// representation this formulation's EvalJacC expects.
func (f *Formulation) AllocJacC() linalg.Matrix {
	f.mustFinalized()
	if f.kind == mixedSparseDense {
		return linalg.NewMDS(int(f.nConsEq), int(f.nxSparse), int(f.nxDense), int(f.nnzJacEq))
	}
	return linalg.NewDense(int(f.nConsEq), f.nLocal)
}

// AllocJacD allocates the inequality-constraint Jacobian in the
// representation this formulation's EvalJacD expects.
func (f *Formulation) AllocJacD() linalg.Matrix {
	f.mustFinalized()
	if f.kind == mixedSparseDense {
		return linalg.NewMDS(int(f.nConsIneq), int(f.nxSparse), int(f.nxDense), int(f.nnzJacIneq))
	}
	return linalg.NewDense(int(f.nConsIneq), f.nLocal)
}

// AllocHessLagr allocates the Hessian of the Lagrangian for the MDS
// variant. The dense variant has no analytic Hessian to allocate.
func (f *Formulation) AllocHessLagr() linalg.Matrix {
	f.mustFinalized()
	if f.kind != mixedSparseDense {
		panic("nlp: dense formulation pairs with quasi-Newton, no analytic Hessian")
	}
	return linalg.NewSymBlockDiagMDS(int(f.nxSparse), int(f.nxDense), int(f.nnzHessSS))
}

// AllocMultivectorPrimal allocates a dense matrix with the algorithm-space
// variable count as columns and rows active rows, reserving storage for up
// to maxRows so the row count can grow without reallocation (limited-memory
// secant histories). maxRows below rows reserves exactly rows. Dense
// variant only.
func (f *Formulation) AllocMultivectorPrimal(rows, maxRows int) *linalg.Dense {
	f.mustFinalized()
	if f.kind != denseConstraints {
		panic("nlp: multivector storage belongs to the dense formulation")
	}
	return linalg.NewDenseWithReserve(rows, maxRows, f.nLocal)
}

func (f *Formulation) mustFinalized() {
	if !f.finalized {
		panic(ErrNotFinalized)
	}
}

// UserObj maps an algorithm-space objective value back to user space.
func (f *Formulation) UserObj(obj float64) float64 {
	return f.pipe.adjustObj(obj)
}

// UserX maps an algorithm-space primal vector back into the user-space
// flat array dst, reinstating any eliminated variables at their values.
func (f *Formulation) UserX(x *linalg.Vector, dst []float64) {
	if x.LocalSize() != f.nLocal || len(dst) != f.nLocalUser {
		panic("nlp: vector not allocated by this formulation")
	}
	copy(dst, f.pipe.backward(x.LocalData()))
}

// CallbackSolution forwards the final solve outcome to the interface's
// solution monitor, if it has one. Constraint values and multipliers are
// reassembled into the original user ordering through the two mappings;
// primal quantities are mapped back to user space. The vectors must be the
// ones this formulation allocated.
func (f *Formulation) CallbackSolution(status SolveStatus,
	x, zLow, zUpp, c, d, yc, yd *linalg.Vector, obj float64) {
	f.mustFinalized()
	m, ok := f.iface.(SolutionMonitor)
	if !ok {
		return
	}
	xUser, zl, zu, cons, lambda := f.assembleUser(x, zLow, zUpp, c, d, yc, yd)
	m.SolutionCallback(status, xUser, zl, zu, cons, lambda, f.UserObj(obj))
}

// CallbackIterate forwards one iteration snapshot to the interface's
// iterate monitor, if it has one. Returns false when the monitor requests
// early termination; true otherwise.
func (f *Formulation) CallbackIterate(iter int, obj float64,
	x, zLow, zUpp, c, d, yc, yd *linalg.Vector,
	infPr, infDu, mu, alphaDu, alphaPr float64, lsTrials int) bool {
	f.mustFinalized()
	m, ok := f.iface.(IterateMonitor)
	if !ok {
		return true
	}
	xUser, zl, zu, cons, lambda := f.assembleUser(x, zLow, zUpp, c, d, yc, yd)
	return m.IterateCallback(iter, f.UserObj(obj), xUser, zl, zu, cons, lambda,
		infPr, infDu, mu, alphaDu, alphaPr, lsTrials)
}

// assembleUser flattens the internal vector handles into user-space arrays.
// A vector of the wrong size or partitioning here means the caller bypassed
// the factory, an invariant violation this layer refuses to paper over.
func (f *Formulation) assembleUser(x, zLow, zUpp, c, d, yc, yd *linalg.Vector) (
	xUser, zl, zu, cons, lambda []float64) {
	switch {
	case x.LocalSize() != f.nLocal || x.Size() != f.nVars,
		!zLow.SameKindAs(x) || !zUpp.SameKindAs(x):
		panic("nlp: callback vector not allocated by this formulation")
	case c.Size() != f.nConsEq || d.Size() != f.nConsIneq,
		yc.Size() != f.nConsEq || yd.Size() != f.nConsIneq:
		panic("nlp: callback vector not allocated by this formulation")
	}

	xUser = make([]float64, f.nLocalUser)
	copy(xUser, f.pipe.backward(x.LocalData()))
	// eliminated variables carry no bound multiplier
	zl = f.pipe.scatterUser(zLow.LocalData(), 0)
	zu = f.pipe.scatterUser(zUpp.LocalData(), 0)

	cons = make([]float64, f.nCons)
	lambda = make([]float64, f.nCons)
	for k, j := range f.eqMap {
		cons[j] = c.LocalData()[k]
		lambda[j] = yc.LocalData()[k]
	}
	for k, j := range f.ineqMap {
		cons[j] = d.LocalData()[k]
		lambda[j] = yd.LocalData()[k]
	}
	return
}

// Print writes a summary of the formulated problem: dimensions, the
// constraint partition and the complementarity counts. A nil writer routes
// through the configured logger at summary level. On distributed problems
// only rank 0 prints, whatever the destination.
func (f *Formulation) Print(w io.Writer) {
	if f.distrib != nil && f.distrib.Rank() != 0 {
		return
	}
	if w == nil {
		if !f.log.enable(LogSummary) {
			return
		}
		w = f.log.Msg
	}
	_, _ = fmt.Fprintf(w, "NLP formulation summary\n")
	_, _ = fmt.Fprintf(w, "  variables        n = %d (user %d)\n", f.nVars, f.nVarsUser)
	_, _ = fmt.Fprintf(w, "  constraints      m = %d (eq %d, ineq %d)\n", f.nCons, f.nConsEq, f.nConsIneq)
	_, _ = fmt.Fprintf(w, "  variable bounds  low %d, upp %d, both %d\n", f.nBndsLow, f.nBndsUpp, f.nBndsLowUpp)
	_, _ = fmt.Fprintf(w, "  ineq bounds      low %d, upp %d, both %d\n", f.nIneqLow, f.nIneqUpp, f.nIneqLowUpp)
	_, _ = fmt.Fprintf(w, "  complementarity  pairs %d\n", f.NComplem())
	if f.distrib != nil {
		_, _ = fmt.Fprintf(w, "  distribution     %d ranks\n", f.distrib.NumRanks())
	}
}
