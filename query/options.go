// Package query is a batch-oriented orchestrator: build one LBVH per batch
// element, optionally Morton-reorder the queries for that element into the
// fixed [-1,1]^3 cube, traverse with either the stack or best-first
// algorithm, then scatter results back into the caller's original order.
package query

import "github.com/deadsy/bvhx/traverse"

// Traversal selects which traverse package algorithm Nearest/RayNearest
// uses; both are required to agree exactly, so the choice is purely a
// performance knob.
type Traversal int

const (
	Stack Traversal = iota
	BestFirst
)

// Options configures one batch call.
type Options struct {
	// Reorder, when true, sorts each batch element's queries by Morton
	// code before traversal and scatters results back through the inverse
	// permutation. Reordering must never change the result set, only the
	// order work is dispatched in.
	Reorder bool

	// Capacity bounds the traversal stack/heap; must be one of
	// traverse.Cap32...Cap1024.
	Capacity traverse.Capacity

	// Workers bounds the goroutine pool used for LBVH construction and
	// for dispatching queries across a batch element. <=0 means
	// runtime.NumCPU().
	Workers int

	// Traversal selects the stack or best-first algorithm.
	Traversal Traversal
}
