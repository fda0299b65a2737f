// Copyright ©2025 curioloop. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package linalg

import (
	"errors"
	"fmt"
)

// Vector is a dense float64 vector, optionally distributed across processes.
//
// A serial vector owns all of its entries. A distributed vector is described
// by an increasing offsets array of num_ranks+1 entries partitioning
// [0, size): rank r owns [offsets[r], offsets[r+1]) and materializes only
// that slice. The global size is fixed at allocation.
type Vector struct {
	size    int64
	rank    int
	offsets []int64
	data    []float64
}

// NewVector allocates a serial vector of the given global size.
func NewVector(size int64) *Vector {
	if size < 0 {
		panic("linalg: negative vector size")
	}
	return &Vector{size: size, data: make([]float64, size)}
}

// NewDistributedVector allocates the local slice of a distributed vector.
// The offsets array must be increasing, start at 0 and end at size.
func NewDistributedVector(size int64, offsets []int64, rank int) (*Vector, error) {
	if err := checkOffsets(size, offsets, rank); err != nil {
		return nil, err
	}
	own := make([]int64, len(offsets))
	copy(own, offsets)
	local := own[rank+1] - own[rank]
	return &Vector{size: size, rank: rank, offsets: own, data: make([]float64, local)}, nil
}

func checkOffsets(size int64, offsets []int64, rank int) error {
	switch {
	case size < 0:
		return errors.New("linalg: negative vector size")
	case len(offsets) < 2:
		return errors.New("linalg: offsets must hold at least 2 entries")
	case offsets[0] != 0:
		return errors.New("linalg: offsets must start at 0")
	case offsets[len(offsets)-1] != size:
		return errors.New("linalg: offsets must end at the global size")
	case rank < 0 || rank >= len(offsets)-1:
		return fmt.Errorf("linalg: rank %d out of range for %d ranks", rank, len(offsets)-1)
	}
	for i := 1; i < len(offsets); i++ {
		if offsets[i] < offsets[i-1] {
			return errors.New("linalg: offsets must be increasing")
		}
	}
	return nil
}

// Size reports the global dimension.
func (v *Vector) Size() int64 { return v.size }

// LocalSize reports the number of entries owned by this process.
func (v *Vector) LocalSize() int { return len(v.data) }

// Distributed reports whether the vector carries distribution metadata.
func (v *Vector) Distributed() bool { return v.offsets != nil }

// OwnedRange reports the half-open global index range [lo, hi) owned locally.
func (v *Vector) OwnedRange() (lo, hi int64) {
	if v.offsets == nil {
		return 0, v.size
	}
	return v.offsets[v.rank], v.offsets[v.rank+1]
}

// LocalData exposes the local slice. The slice aliases the vector storage.
func (v *Vector) LocalData() []float64 { return v.data }

// Clone allocates a vector of identical size and distribution with the
// local entries copied.
func (v *Vector) Clone() *Vector {
	w := v.NewOfSameKind()
	copy(w.data, v.data)
	return w
}

// NewOfSameKind allocates a zeroed vector of identical size and distribution.
func (v *Vector) NewOfSameKind() *Vector {
	w := &Vector{size: v.size, rank: v.rank, data: make([]float64, len(v.data))}
	if v.offsets != nil {
		w.offsets = make([]int64, len(v.offsets))
		copy(w.offsets, v.offsets)
	}
	return w
}

// CopyFromSlice fills the local slice from src, which must have local length.
func (v *Vector) CopyFromSlice(src []float64) {
	if len(src) != len(v.data) {
		panic("linalg: copy source length not match local size")
	}
	copy(v.data, src)
}

// Fill sets every local entry to c.
func (v *Vector) Fill(c float64) {
	for i := range v.data {
		v.data[i] = c
	}
}

// SameKindAs reports whether w shares size and distribution layout with v.
func (v *Vector) SameKindAs(w *Vector) bool {
	if v.size != w.size || len(v.data) != len(w.data) {
		return false
	}
	if (v.offsets == nil) != (w.offsets == nil) {
		return false
	}
	return true
}
