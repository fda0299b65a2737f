// Copyright ©2025 curioloop. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package nlp

// Test doubles shared by the package tests. The dense stub models
//
//	min Σᵢ xᵢ  s.t.  c_j(x) = (j+1)·x_j
//
// over five variables with one fixed variable (x₂ = 2), one equality pair
// and one genuinely two-sided inequality, covering every classification
// branch at once.

type denseStub struct {
	nVars, nCons int64
	xl, xu       []float64
	cl, cu       []float64

	evalErr error  // returned by every evaluation when set
	newXLog []bool // newX flags seen by EvalF
	start   []float64
}

func newDenseStub() *denseStub {
	return &denseStub{
		nVars: 5, nCons: 3,
		xl: []float64{0, -Infinity, 2, 2, -1},
		xu: []float64{10, 5, 2, Infinity, 1},
		cl: []float64{1, -Infinity, 0},
		cu: []float64{1, 5, 0},
	}
}

func (s *denseStub) ProbSizes() (int64, int64, error) { return s.nVars, s.nCons, nil }

func (s *denseStub) VarsInfo(xl, xu []float64, types []Nonlinearity) error {
	copy(xl, s.xl)
	copy(xu, s.xu)
	for i := range types {
		types[i] = Nonlinear
	}
	return nil
}

func (s *denseStub) ConsInfo(cl, cu []float64, types []Nonlinearity) error {
	copy(cl, s.cl)
	copy(cu, s.cu)
	for i := range types {
		types[i] = Linear
	}
	return nil
}

func (s *denseStub) EvalF(x []float64, newX bool) (float64, error) {
	if s.evalErr != nil {
		return 0, s.evalErr
	}
	s.newXLog = append(s.newXLog, newX)
	f := 0.0
	for _, v := range x {
		f += v
	}
	return f, nil
}

func (s *denseStub) EvalGradF(x []float64, newX bool, grad []float64) error {
	if s.evalErr != nil {
		return s.evalErr
	}
	for i := range grad {
		grad[i] = 1
	}
	return nil
}

func (s *denseStub) EvalCons(x []float64, newX bool, idx []int64, cons []float64) error {
	if s.evalErr != nil {
		return s.evalErr
	}
	for k, j := range idx {
		cons[k] = float64(j+1) * x[j]
	}
	return nil
}

func (s *denseStub) EvalJacCons(x []float64, newX bool, idx []int64, jac []float64) error {
	if s.evalErr != nil {
		return s.evalErr
	}
	n := int64(len(x))
	for i := range jac {
		jac[i] = 0
	}
	for k, j := range idx {
		jac[int64(k)*n+j] = float64(j + 1)
	}
	return nil
}

func (s *denseStub) StartingPoint(x []float64) bool {
	if s.start == nil {
		return false
	}
	copy(x, s.start)
	return true
}

// failingStub fails one of the setup queries.
type failingStub struct {
	*denseStub
	sizeErr, varsErr, consErr error
}

func (s *failingStub) ProbSizes() (int64, int64, error) {
	if s.sizeErr != nil {
		return 0, 0, s.sizeErr
	}
	return s.denseStub.ProbSizes()
}

func (s *failingStub) VarsInfo(xl, xu []float64, types []Nonlinearity) error {
	if s.varsErr != nil {
		return s.varsErr
	}
	return s.denseStub.VarsInfo(xl, xu, types)
}

func (s *failingStub) ConsInfo(cl, cu []float64, types []Nonlinearity) error {
	if s.consErr != nil {
		return s.consErr
	}
	return s.denseStub.ConsInfo(cl, cu, types)
}

// monitoredStub adds the optional monitoring capabilities.
type monitoredStub struct {
	*denseStub

	gotStatus SolveStatus
	gotObj    float64
	gotX      []float64
	gotCons   []float64
	gotLambda []float64
	gotZLow   []float64
	iterSeen  int
	goOn      bool
}

func (s *monitoredStub) SolutionCallback(status SolveStatus, x, zl, zu, cons, lambda []float64, obj float64) {
	s.gotStatus, s.gotObj = status, obj
	s.gotX = append([]float64(nil), x...)
	s.gotZLow = append([]float64(nil), zl...)
	s.gotCons = append([]float64(nil), cons...)
	s.gotLambda = append([]float64(nil), lambda...)
}

func (s *monitoredStub) IterateCallback(iter int, obj float64, x, zl, zu, cons, lambda []float64,
	infPr, infDu, mu, alphaDu, alphaPr float64, lsTrials int) bool {
	s.iterSeen = iter
	s.gotCons = append([]float64(nil), cons...)
	return s.goOn
}

// distStub declares a two-rank distribution of the variable space and
// serves only the local slice of rank 0.
type distStub struct {
	*denseStub
	offsets []int64
}

func (s *distStub) VecDistribInfo(n int64) ([]int64, bool) { return s.offsets, true }

// fakeReducer simulates an all-reduce where the remote rank contributes a
// fixed set of counts and partial sums.
type fakeReducer struct {
	remote  []int64
	remoteF []float64
}

func (r fakeReducer) SumInt64(vals []int64) ([]int64, error) {
	out := make([]int64, len(vals))
	for i, v := range vals {
		out[i] = v
		if i < len(r.remote) {
			out[i] += r.remote[i]
		}
	}
	return out, nil
}

func (r fakeReducer) SumFloat64(vals []float64) ([]float64, error) {
	out := make([]float64, len(vals))
	for i, v := range vals {
		out[i] = v
		if i < len(r.remoteF) {
			out[i] += r.remoteF[i]
		}
	}
	return out, nil
}
