// Copyright ©2025 curioloop. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package nlp

import "fmt"

// Fixed variable treatments recognized by Options.FixedVars.
const (
	// FixedVarsNone leaves fixed variables in place (identity pipeline).
	FixedVarsNone = "none"
	// FixedVarsRemove eliminates fixed variables from the algorithm space.
	FixedVarsRemove = "fixed"
	// FixedVarsRelax keeps fixed variables but perturbs their bounds
	// outward to avoid a degenerate complementarity pair.
	FixedVarsRelax = "relax"
)

// Options configures a formulation. The zero value is valid.
type Options struct {
	// FixedVars selects the treatment of variables whose lower and upper
	// bounds coincide within FixedVarsTol: one of "none", "fixed", "relax".
	// Empty selects "none". Any other string fails finalize.
	FixedVars string
	// FixedVarsTol is the detection tolerance for fixed variables and the
	// relative perturbation used by the "relax" treatment.
	FixedVarsTol float64
	// Rank is this process's rank when the interface declares a vector
	// distribution. Ignored for serial problems.
	Rank int
	// Reducer performs the collective reductions producing globally scoped
	// counts on distributed problems. Nil selects the serial reducer.
	Reducer Reducer
	// Logger receives formulation output. Nil disables logging.
	Logger *Logger
}

const defaultFixedVarsTol = 1e-8

// withDefaults resolves the option defaults and validates the mode string.
func (o Options) withDefaults() (Options, error) {
	if o.FixedVars == "" {
		o.FixedVars = FixedVarsNone
	}
	switch o.FixedVars {
	case FixedVarsNone, FixedVarsRemove, FixedVarsRelax:
	default:
		return o, fmt.Errorf("%w: %q", ErrFixedVarsMode, o.FixedVars)
	}
	if o.FixedVarsTol < 0 {
		return o, fmt.Errorf("%w: negative tolerance %g", ErrFixedVarsMode, o.FixedVarsTol)
	}
	if o.FixedVarsTol == 0 && o.FixedVars == FixedVarsRelax {
		o.FixedVarsTol = defaultFixedVarsTol
	}
	if o.Reducer == nil {
		o.Reducer = SerialReducer{}
	}
	return o, nil
}
