// Copyright ©2025 curioloop. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package derivcheck validates user-supplied derivatives against finite
// differences before a solve. It compares the formulation's analytic
// objective gradient and constraint Jacobians with forward or central
// difference approximations of the corresponding value evaluations,
// entry by entry, and reports the worst relative disagreement.
package derivcheck

import (
	"errors"
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/curioloop/nlpform/linalg"
	"github.com/curioloop/nlpform/nlp"
)

var sqrtEps = math.Sqrt(math.Nextafter(1, 2) - 1)
var cubeEps = math.Pow(math.Nextafter(1, 2)-1, float64(1)/3)

// Method selects the finite difference scheme.
type Method int

const (
	// Forward use the first order accuracy forward difference.
	Forward Method = iota
	// Central use the second order accuracy central difference.
	Central
)

// Checker compares the analytic derivatives of a finalized formulation
// against finite differences around a given point. The point is perturbed
// in algorithm space, so eliminated variables are never stepped.
type Checker struct {
	// Form is the finalized formulation under test.
	Form *nlp.Formulation
	// Method is the finite difference scheme to use.
	Method Method
	// Tol is the relative error above which an entry counts as a
	// disagreement. Zero selects 1e-4.
	Tol float64
	// AbsStep overrides the automatic step size when nonzero.
	AbsStep float64
}

// Report summarizes one derivative comparison.
type Report struct {
	// OK reports whether every entry agreed within the tolerance.
	OK bool
	// MaxErr is the worst relative error observed.
	MaxErr float64
	// MaxAbsDiff is the largest absolute entry difference.
	MaxAbsDiff float64
	// Bad counts the entries whose relative error exceeded the tolerance.
	Bad int
	// Entries is the number of derivative entries compared.
	Entries int
}

func (c *Checker) tol() float64 {
	if c.Tol > 0 {
		return c.Tol
	}
	return 1e-4
}

// step selects the difference step for entry value v, following the scheme
// order: sqrt of machine eps for forward, cube root for central, sign and
// magnitude following v.
func (c *Checker) step(v float64) float64 {
	if c.AbsStep != 0 {
		return c.AbsStep
	}
	eps := sqrtEps
	if c.Method == Central {
		eps = cubeEps
	}
	return math.Copysign(eps, v) * math.Max(1, math.Abs(v))
}

// CheckGradF compares the analytic objective gradient at x against a
// finite difference of EvalF.
func (c *Checker) CheckGradF(x []float64) (*Report, error) {
	f := c.Form
	n := f.NLocal()
	if len(x) != n {
		return nil, errors.New("derivcheck: point dimension not match formulation")
	}

	analytic := make([]float64, n)
	if err := f.EvalGradF(x, true, analytic); err != nil {
		return nil, err
	}

	fd := make([]float64, n)
	eval := func(x []float64, newX bool, y []float64) error {
		v, err := f.EvalF(x, newX)
		y[0] = v
		return err
	}
	if err := c.diff(x, 1, eval, fd); err != nil {
		return nil, err
	}
	return compare(fd, analytic, c.tol()), nil
}

// CheckJacC compares the analytic equality-constraint Jacobian at x
// against a finite difference of EvalC.
func (c *Checker) CheckJacC(x []float64) (*Report, error) {
	return c.checkJac(x, int(c.Form.MEq()), c.Form.EvalC, c.Form.AllocJacC, c.Form.EvalJacC)
}

// CheckJacD compares the analytic inequality-constraint Jacobian at x
// against a finite difference of EvalD.
func (c *Checker) CheckJacD(x []float64) (*Report, error) {
	return c.checkJac(x, int(c.Form.MIneq()), c.Form.EvalD, c.Form.AllocJacD, c.Form.EvalJacD)
}

func (c *Checker) checkJac(x []float64, rows int,
	eval func([]float64, bool, []float64) error,
	alloc func() linalg.Matrix,
	evalJac func([]float64, bool, linalg.Matrix) error) (*Report, error) {

	f := c.Form
	n := f.NLocal()
	if len(x) != n {
		return nil, errors.New("derivcheck: point dimension not match formulation")
	}

	jac := alloc()
	if err := evalJac(x, true, jac); err != nil {
		return nil, err
	}
	analytic := flatten(jac, rows, n)

	fd := make([]float64, rows*n)
	if err := c.diff(x, rows, eval, fd); err != nil {
		return nil, err
	}
	return compare(fd, analytic, c.tol()), nil
}

// diff fills df, a row-major m × n block, with the finite difference of
// eval around x0. x0 is restored after every perturbation.
func (c *Checker) diff(x0 []float64, m int,
	eval func(x []float64, newX bool, y []float64) error, df []float64) error {

	n := len(x0)
	f0 := make([]float64, m)
	f1 := make([]float64, m)
	f2 := make([]float64, m)

	if c.Method == Forward {
		if err := eval(x0, true, f0); err != nil {
			return err
		}
	}
	for i := 0; i < n; i++ {
		t := x0[i]
		h := c.step(t)
		switch c.Method {
		case Central:
			x0[i] = t - h
			if err := eval(x0, true, f1); err != nil {
				x0[i] = t
				return err
			}
			x0[i] = t + h
			if err := eval(x0, true, f2); err != nil {
				x0[i] = t
				return err
			}
			d := 1 / (2 * h)
			for j := range f2 {
				df[j*n+i] = (f2[j] - f1[j]) * d
			}
		default:
			x0[i] = t + h
			if err := eval(x0, true, f1); err != nil {
				x0[i] = t
				return err
			}
			d := 1 / h
			for j := range f1 {
				df[j*n+i] = (f1[j] - f0[j]) * d
			}
		}
		x0[i] = t
	}
	return nil
}

// flatten materializes a factory-allocated Jacobian as one row-major dense
// block so both representations compare through the same path.
func flatten(jac linalg.Matrix, rows, cols int) []float64 {
	out := make([]float64, rows*cols)
	switch m := jac.(type) {
	case *linalg.Dense:
		copy(out, m.RawData())
	case *linalg.MDS:
		sp, off := m.Sparse(), m.NSparse()
		ir, jc, vals := sp.RowIdx(), sp.ColIdx(), sp.Values()
		for k, v := range vals {
			out[int(ir[k])*cols+int(jc[k])] += v
		}
		de := m.DenseBlock().RawData()
		nd := m.NDense()
		for r := 0; r < rows; r++ {
			copy(out[r*cols+off:r*cols+off+nd], de[r*nd:(r+1)*nd])
		}
	default:
		panic("derivcheck: unknown matrix representation")
	}
	return out
}

func compare(fd, analytic []float64, tol float64) *Report {
	r := &Report{Entries: len(fd)}
	if len(fd) > 0 {
		r.MaxAbsDiff = floats.Distance(fd, analytic, math.Inf(1))
	}
	for i, a := range analytic {
		e := math.Abs(fd[i]-a) / math.Max(1, math.Abs(a))
		if e > r.MaxErr {
			r.MaxErr = e
		}
		if e > tol {
			r.Bad++
		}
	}
	r.OK = r.Bad == 0
	return r
}
