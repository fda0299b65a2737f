// Copyright ©2025 curioloop. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package nlp

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/curioloop/nlpform/linalg"
)

func finalized(t *testing.T, opts Options) (*Formulation, *denseStub) {
	t.Helper()
	s := newDenseStub()
	f := NewDense(s, opts)
	require.NoError(t, f.FinalizeInitialization())
	return f, s
}

func TestFinalizePartition(t *testing.T) {
	f, _ := finalized(t, Options{})

	require.Equal(t, int64(5), f.N())
	require.Equal(t, int64(3), f.M())
	require.Equal(t, int64(2), f.MEq())
	require.Equal(t, int64(1), f.MIneq())

	// bounds (1,1) and (0,0) are equalities, (-inf,5) is an inequality
	require.Equal(t, []int64{0, 2}, f.EqMapping())
	require.Equal(t, []int64{1}, f.IneqMapping())
	require.Equal(t, []float64{1, 0}, f.CRHS().LocalData())
	require.Equal(t, []float64{-Infinity}, f.DLow().LocalData())
	require.Equal(t, []float64{5.0}, f.DUpp().LocalData())
	require.Equal(t, []float64{0}, f.IdLow().LocalData())
	require.Equal(t, []float64{1}, f.IdUpp().LocalData())

	// the two mappings partition the constraint set, each increasing
	seen := make(map[int64]int)
	for _, j := range f.EqMapping() {
		seen[j]++
	}
	for _, j := range f.IneqMapping() {
		seen[j]++
	}
	require.Len(t, seen, 3)
	for j, c := range seen {
		require.Equal(t, 1, c, "constraint %d", j)
	}

	// xl=[0,-inf,2,2,-1], xu=[10,5,2,inf,1]
	require.Equal(t, int64(4), f.NLow())
	require.Equal(t, int64(4), f.NUpp())
	require.Equal(t, int64(0), f.MIneqLow())
	require.Equal(t, int64(1), f.MIneqUpp())
	require.Equal(t, int64(9), f.NComplem())
}

func TestFinalizeTwiceFails(t *testing.T) {
	f, _ := finalized(t, Options{})
	err := f.FinalizeInitialization()
	require.ErrorIs(t, err, ErrFinalized)
	// the first committed state is intact
	require.Equal(t, int64(5), f.N())
}

func TestFinalizeBadModeFails(t *testing.T) {
	s := newDenseStub()
	f := NewDense(s, Options{FixedVars: "purge"})
	require.ErrorIs(t, f.FinalizeInitialization(), ErrFixedVarsMode)

	// nothing was committed: the formulation is still unusable
	_, err := f.EvalF([]float64{0, 0, 0, 0, 0}, true)
	require.ErrorIs(t, err, ErrNotFinalized)
}

func TestFinalizeSetupQueryFailure(t *testing.T) {
	boom := errors.New("backend exploded")
	stubs := map[string]*failingStub{
		"sizes": {denseStub: newDenseStub(), sizeErr: boom},
		"vars":  {denseStub: newDenseStub(), varsErr: boom},
		"cons":  {denseStub: newDenseStub(), consErr: boom},
	}
	for name, s := range stubs {
		t.Run(name, func(t *testing.T) {
			f := NewDense(s, Options{})
			require.Equal(t, boom, f.FinalizeInitialization()) // verbatim, not wrapped

			// nothing was committed: the formulation is still unusable
			_, err := f.EvalF(make([]float64, 5), true)
			require.ErrorIs(t, err, ErrNotFinalized)
			require.Panics(t, func() { f.AllocPrimalVec() })
		})
	}
}

func TestFinalizeQueryFailurePropagates(t *testing.T) {
	boom := errors.New("backend exploded")
	s := newDenseStub()
	s.evalErr = boom // denseStub wires the same error through every call
	f := NewDense(s, Options{})
	require.NoError(t, f.FinalizeInitialization()) // size/bounds queries are not gated by evalErr

	_, err := f.EvalF(make([]float64, 5), true)
	require.Equal(t, boom, err) // verbatim, not wrapped
	require.Equal(t, boom, f.EvalGradF(make([]float64, 5), true, make([]float64, 5)))
	require.Equal(t, boom, f.EvalC(make([]float64, 5), true, make([]float64, 2)))
}

func TestFixedVariableRemoval(t *testing.T) {
	f, _ := finalized(t, Options{FixedVars: FixedVarsRemove})

	// x2 has xl == xu == 2 and leaves the algorithm space
	require.Equal(t, int64(4), f.N())
	require.Equal(t, 4, f.NLocal())
	require.Equal(t, []float64{0, -Infinity, 2, -1}, f.XLow().LocalData())
	require.Equal(t, []float64{10, 5, Infinity, 1}, f.XUpp().LocalData())

	// counts follow the reduced space
	require.Equal(t, int64(3), f.NLow())
	require.Equal(t, int64(3), f.NUpp())
	require.Equal(t, int64(7), f.NComplem())

	// the pinned variable still contributes its value to the objective
	obj, err := f.EvalF([]float64{1, 1, 1, 1}, true)
	require.NoError(t, err)
	require.Equal(t, 6.0, obj) // 1+1+2+1+1

	grad := make([]float64, 4)
	require.NoError(t, f.EvalGradF([]float64{1, 1, 1, 1}, true, grad))
	require.Equal(t, []float64{1, 1, 1, 1}, grad)
}

func TestFixedVariableRelax(t *testing.T) {
	f, _ := finalized(t, Options{FixedVars: FixedVarsRelax, FixedVarsTol: 1e-8})

	// dimension unchanged, bounds of x2 pushed apart
	require.Equal(t, int64(5), f.N())
	xl, xu := f.XLow().LocalData(), f.XUpp().LocalData()
	require.Less(t, xl[2], 2.0)
	require.Greater(t, xu[2], 2.0)
	require.Equal(t, int64(9), f.NComplem()) // perturbation keeps both sides finite
}

func TestNewXPassthrough(t *testing.T) {
	f, s := finalized(t, Options{})
	x := make([]float64, 5)

	_, _ = f.EvalF(x, false)
	_, _ = f.EvalF(x, false)
	_, _ = f.EvalF(x, true)
	require.Equal(t, []bool{false, false, true}, s.newXLog)
}

func TestEvalConstraintPartitions(t *testing.T) {
	f, _ := finalized(t, Options{})
	x := []float64{1, 2, 3, 4, 5}

	c := make([]float64, 2)
	require.NoError(t, f.EvalC(x, true, c))
	require.Equal(t, []float64{1, 9}, c) // c_0 = 1·x0, c_2 = 3·x2

	d := make([]float64, 1)
	require.NoError(t, f.EvalD(x, true, d))
	require.Equal(t, []float64{4.0}, d) // c_1 = 2·x1
}

func TestStartingPointFallback(t *testing.T) {
	f, _ := finalized(t, Options{})
	x0 := f.AllocPrimalVec()
	require.NoError(t, f.StartingPoint(x0))
	// midpoint when both bounds are finite, the finite bound when one is,
	// zero when free; x1 has upper bound only, x3 lower only
	require.Equal(t, []float64{5, 5, 2, 2, 0}, x0.LocalData())

	// deterministic across calls
	again := f.AllocPrimalVec()
	require.NoError(t, f.StartingPoint(again))
	require.Equal(t, x0.LocalData(), again.LocalData())
}

func TestStartingPointFromInterface(t *testing.T) {
	s := newDenseStub()
	s.start = []float64{1, 2, 3, 4, 5}
	f := NewDense(s, Options{})
	require.NoError(t, f.FinalizeInitialization())

	x0 := f.AllocPrimalVec()
	require.NoError(t, f.StartingPoint(x0))
	require.Equal(t, s.start, x0.LocalData())
}

func TestStartingPointThroughPipeline(t *testing.T) {
	s := newDenseStub()
	s.start = []float64{1, 2, 3, 4, 5}
	f := NewDense(s, Options{FixedVars: FixedVarsRemove})
	require.NoError(t, f.FinalizeInitialization())

	x0 := f.AllocPrimalVec()
	require.NoError(t, f.StartingPoint(x0))
	require.Equal(t, []float64{1, 2, 4, 5}, x0.LocalData())
}

func TestFactorySizes(t *testing.T) {
	f, _ := finalized(t, Options{})

	require.Equal(t, int64(5), f.AllocPrimalVec().Size())
	require.Equal(t, int64(2), f.AllocDualEqVec().Size())
	require.Equal(t, int64(1), f.AllocDualIneqVec().Size())
	require.Equal(t, int64(3), f.AllocDualVec().Size())

	jc := f.AllocJacC().(*linalg.Dense)
	r, c := jc.Dims()
	require.Equal(t, 2, r)
	require.Equal(t, 5, c)

	mv := f.AllocMultivectorPrimal(2, 6)
	r, c = mv.Dims()
	require.Equal(t, 2, r)
	require.Equal(t, 5, c)
	require.Equal(t, 6, mv.MaxRows())
	mv.Resize(6)
	require.Panics(t, func() { mv.Resize(7) })
}

func TestFactoryBeforeFinalizePanics(t *testing.T) {
	f := NewDense(newDenseStub(), Options{})
	require.Panics(t, func() { f.AllocPrimalVec() })
}

func TestUserXAndObj(t *testing.T) {
	f, _ := finalized(t, Options{FixedVars: FixedVarsRemove})

	x := f.AllocPrimalVec()
	x.CopyFromSlice([]float64{7, 8, 9, 10})
	user := make([]float64, 5)
	f.UserX(x, user)
	require.Equal(t, []float64{7, 8, 2, 9, 10}, user)
	require.Equal(t, 3.5, f.UserObj(3.5))
}

func TestCallbackSolutionReassembly(t *testing.T) {
	s := &monitoredStub{denseStub: newDenseStub()}
	f := NewDense(s, Options{})
	require.NoError(t, f.FinalizeInitialization())

	x := f.AllocPrimalVec()
	x.CopyFromSlice([]float64{1, 2, 3, 4, 5})
	zl, zu := f.AllocPrimalVec(), f.AllocPrimalVec()
	c, d := f.AllocDualEqVec(), f.AllocDualIneqVec()
	c.CopyFromSlice([]float64{10, 30})
	d.CopyFromSlice([]float64{20})
	yc, yd := f.AllocDualEqVec(), f.AllocDualIneqVec()
	yc.CopyFromSlice([]float64{-1, -3})
	yd.CopyFromSlice([]float64{-2})

	f.CallbackSolution(SolveSucceeded, x, zl, zu, c, d, yc, yd, 42)

	require.Equal(t, SolveSucceeded, s.gotStatus)
	require.Equal(t, 42.0, s.gotObj)
	require.Equal(t, []float64{1, 2, 3, 4, 5}, s.gotX)
	// (c,d) interleaved back into user order through the mappings
	require.Equal(t, []float64{10, 20, 30}, s.gotCons)
	require.Equal(t, []float64{-1, -2, -3}, s.gotLambda)
}

func TestCallbackIterateEarlyStop(t *testing.T) {
	s := &monitoredStub{denseStub: newDenseStub()}
	f := NewDense(s, Options{})
	require.NoError(t, f.FinalizeInitialization())

	x := f.AllocPrimalVec()
	zl, zu := f.AllocPrimalVec(), f.AllocPrimalVec()
	c, d := f.AllocDualEqVec(), f.AllocDualIneqVec()
	yc, yd := f.AllocDualEqVec(), f.AllocDualIneqVec()

	s.goOn = false
	goOn := f.CallbackIterate(7, 1, x, zl, zu, c, d, yc, yd, 0, 0, 0, 0, 0, 1)
	require.False(t, goOn)
	require.Equal(t, 7, s.iterSeen)
}

func TestCallbackWithoutMonitorIsNoop(t *testing.T) {
	f, _ := finalized(t, Options{})
	x := f.AllocPrimalVec()
	zl, zu := f.AllocPrimalVec(), f.AllocPrimalVec()
	c, d := f.AllocDualEqVec(), f.AllocDualIneqVec()
	yc, yd := f.AllocDualEqVec(), f.AllocDualIneqVec()

	require.True(t, f.CallbackIterate(0, 0, x, zl, zu, c, d, yc, yd, 0, 0, 0, 0, 0, 0))
	f.CallbackSolution(SolveError, x, zl, zu, c, d, yc, yd, 0)
}

func TestCallbackVectorMismatchPanics(t *testing.T) {
	s := &monitoredStub{denseStub: newDenseStub()}
	f := NewDense(s, Options{})
	require.NoError(t, f.FinalizeInitialization())

	wrong := linalg.NewVector(4) // not a primal vector of this formulation
	zl, zu := f.AllocPrimalVec(), f.AllocPrimalVec()
	c, d := f.AllocDualEqVec(), f.AllocDualIneqVec()
	yc, yd := f.AllocDualEqVec(), f.AllocDualIneqVec()
	require.Panics(t, func() {
		f.CallbackSolution(SolveSucceeded, wrong, zl, zu, c, d, yc, yd, 0)
	})
}
