// Package rbtree implements an intrusive, in-memory red-black tree: a
// sorted associative container mapping comparable user records to tree
// nodes, with O(log n) worst-case Insert/Find/Delete and O(1) amortized
// Min/Max/Next/Prev stepping.
//
// Nodes live in an internal arena (a growable slice) addressed by index
// rather than by pointer, so the tree never allocates per-node heap
// objects after the arena itself grows. Iterator is a (slot index, slot
// generation) pair: the generation is bumped whenever a slot is freed and
// reused, so a handle to a deleted node is detectable instead of silently
// aliasing whatever record a later Insert placed in the same slot.
//
// Tree is not safe for concurrent use. Every exported method, including
// read-only ones, must be externally synchronized if a *Tree is shared
// across goroutines — a concurrent writer's rotation can invalidate a
// reader's in-flight walk.
package rbtree
