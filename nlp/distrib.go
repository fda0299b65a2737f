// Copyright ©2025 curioloop. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package nlp

import (
	"errors"
	"fmt"
)

// Reducer performs the collective reductions a distributed formulation
// needs: summing locally computed quantities across all ranks. The
// formulation invokes it at well-defined points only: once after finalize
// for the structural bound counts, and once per objective evaluation to
// combine the rank-local partial sums. Implementations wrap whatever
// transport the embedding application uses; the formulation ships only
// SerialReducer.
type Reducer interface {
	// SumInt64 element-wise sums vals across ranks and returns the global sums.
	SumInt64(vals []int64) ([]int64, error)
	// SumFloat64 element-wise sums vals across ranks and returns the global sums.
	SumFloat64(vals []float64) ([]float64, error)
}

// SerialReducer is the single-process reduction: local sums are global sums.
type SerialReducer struct{}

// SumInt64 returns vals unchanged.
func (SerialReducer) SumInt64(vals []int64) ([]int64, error) { return vals, nil }

// SumFloat64 returns vals unchanged.
func (SerialReducer) SumFloat64(vals []float64) ([]float64, error) { return vals, nil }

// Distribution records the inter-process partitioning of the variable space:
// an increasing array of numRanks+1 offsets over [0, nVars) and the rank of
// this process. Built once at finalize time, never mutated.
type Distribution struct {
	offsets []int64
	rank    int
}

func newDistribution(nVars int64, offsets []int64, rank int) (*Distribution, error) {
	switch {
	case len(offsets) < 2:
		return nil, errors.New("nlp: distribution offsets must hold at least 2 entries")
	case offsets[0] != 0 || offsets[len(offsets)-1] != nVars:
		return nil, fmt.Errorf("nlp: distribution offsets must span [0, %d)", nVars)
	case rank < 0 || rank >= len(offsets)-1:
		return nil, fmt.Errorf("nlp: rank %d out of range for %d ranks", rank, len(offsets)-1)
	}
	for i := 1; i < len(offsets); i++ {
		if offsets[i] < offsets[i-1] {
			return nil, errors.New("nlp: distribution offsets must be increasing")
		}
	}
	own := make([]int64, len(offsets))
	copy(own, offsets)
	return &Distribution{offsets: own, rank: rank}, nil
}

// NumRanks reports the number of processes in the partition.
func (d *Distribution) NumRanks() int { return len(d.offsets) - 1 }

// Rank reports the rank of this process.
func (d *Distribution) Rank() int { return d.rank }

// OwnedRange reports the half-open global index range owned by this rank.
func (d *Distribution) OwnedRange() (lo, hi int64) {
	return d.offsets[d.rank], d.offsets[d.rank+1]
}

// LocalSize reports the number of entries owned by this rank.
func (d *Distribution) LocalSize() int {
	lo, hi := d.OwnedRange()
	return int(hi - lo)
}

// Offsets returns a read-only view of the offsets array.
func (d *Distribution) Offsets() []int64 { return d.offsets }
