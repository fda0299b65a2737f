// Copyright ©2025 curioloop. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package nlp is the problem formulation layer of a nonlinear-optimization
// solver: it normalizes a user-supplied problem description into the
// internal representation an interior-point algorithm consumes.
//
// A Formulation wraps a user Interface and, at finalize time, classifies
// variable and constraint bounds against the Infinity sentinel, partitions
// the constraints into equality and inequality sets with increasing index
// maps back to the user ordering, builds a reversible chain of
// variable-space transformations (fixed-variable elimination or
// relaxation), and records any inter-process distribution of the variable
// vector. It then acts as a factory for the vectors and derivative
// matrices the algorithm works with, whose concrete representation depends
// on the formulation variant:
//
//   - NewDense: all Jacobian data is dense; the Hessian is left to the
//     algorithm's quasi-Newton approximation
//   - NewMDS: Jacobians and the Hessian split into a fixed sparse block
//     and a dense block
//
// Every evaluation call maps the algorithm-space point back to user space,
// invokes the interface, and maps the result forward again, so the
// algorithm never observes the user's variable ordering directly.
// Interface failures propagate to the caller unchanged: the formulation
// neither retries nor caches.
package nlp
