// Package lbvh builds a Linear Bounding Volume Hierarchy over a batch
// element's triangles: Morton-sort the centroids, build a Karras radix
// tree over the sorted keys, then fill bounding boxes bottom-up using one
// atomic per-parent counter per internal node.
package lbvh

import "github.com/deadsy/bvhx/vec3"

// noParent is the Parent/child-reference sentinel meaning "no such node"
// (the root has no parent; a never-filled child slot has no child).
const noParent int32 = -1

// encodeLeaf/encodeInternal/decodeRef implement the single int32 addressing
// scheme a Node's Left/Right/Parent fields use to refer into either of the
// tree's two node arrays: non-negative values index Internals directly;
// values <= -2 index Leaves via -(ref+2); -1 is reserved for "no
// parent"/"no child" so it never collides with leaf index 0.
func encodeLeaf(i int32) int32     { return -(i + 2) }
func encodeInternal(i int32) int32 { return i }

func isLeafRef(ref int32) bool { return ref <= -2 }
func leafIndexOf(ref int32) int32 {
	return -(ref + 2)
}

// Node is one node of the tree, internal or leaf.
type Node struct {
	Box vec3.Box

	// Left, Right are child references (encoded, see above); zero value on
	// a leaf node is meaningless and unused.
	Left, Right int32

	// Parent is this node's parent reference (always an internal-node
	// reference, or noParent for the root).
	Parent int32

	// Tri is, on a leaf, the index of the triangle it represents in the
	// caller's input batch. Unused on internal nodes.
	Tri int32

	// LeafIndex equals Tri for a leaf (the triangle id it represents, not
	// the leaf's position in Leaves, which follows Morton order). -1 on
	// internal nodes.
	LeafIndex int32

	IsLeaf bool
}

// Tree is the LBVH for one batch element: N leaves, N-1 internal nodes,
// Internals[0] the root by construction, unless N<=1 in which case there
// are no internal nodes and the single leaf (if any) is the root.
type Tree struct {
	Leaves    []Node
	Internals []Node
}

// Root returns the encoded reference to the tree's root node, or noParent
// if the tree has no nodes at all (an empty batch element).
func (t *Tree) Root() int32 {
	switch {
	case len(t.Internals) > 0:
		return encodeInternal(0)
	case len(t.Leaves) == 1:
		return encodeLeaf(0)
	default:
		return noParent
	}
}

// Get dereferences an encoded node reference into the node it names.
func (t *Tree) Get(ref int32) *Node {
	if isLeafRef(ref) {
		return &t.Leaves[leafIndexOf(ref)]
	}
	return &t.Internals[ref]
}
