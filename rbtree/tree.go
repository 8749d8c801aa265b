package rbtree

import (
	"errors"
	"fmt"
	"math"
)

// Sentinel errors of the rbtree package. They are never produced for
// ordinary not-found results — Find/Delete report absence through a
// boolean, not an error — only for precondition and consistency failures.
var (
	// ErrContainerNotEmpty is wrapped in the value Teardown panics with
	// when the container still holds live records.
	ErrContainerNotEmpty = errors.New("rbtree: container is not empty")

	// ErrForeignIterator names an Iterator that does not resolve to a
	// live slot of this Tree, either because it is stale (its node was
	// deleted) or it was never produced by this Tree. No Tree method
	// returns it: Record, Next, Prev and Delete report such an Iterator
	// through their boolean result.
	ErrForeignIterator = errors.New("rbtree: iterator does not belong to this container")

	// ErrInvariant is wrapped by Validate for every invariant violation
	// it detects.
	ErrInvariant = errors.New("rbtree: invariant violation")

	// ErrNilComparator is the value NewTree panics with when no
	// comparator is supplied.
	ErrNilComparator = errors.New("rbtree: comparator must not be nil")
)

type color uint8

const (
	black color = 0
	red   color = 1
)

// nilIdx is the arena index reserved for the tree's sentinel leaf. It is
// never allocated by malloc and stays black with no children — exactly
// the "leaf sentinel counts as black" invariant, for free. Its parent
// field may hold a stale index written by transplant; nothing reads it.
const nilIdx uint32 = 0

type slot[R any] struct {
	record                 R
	parent, left, right    uint32
	color                  color
	generation             uint32
	used                   bool
}

// Comparator supplies the two total orders a Tree needs: one between two
// records already destined for the tree, and one between a bare lookup
// key and a record. Both must return negative/zero/positive the way
// strings.Compare does.
type Comparator[K any, R any] interface {
	CompareRecords(a, b R) int
	CompareKeyRecord(key K, r R) int
}

// Iterator is a stable handle to a node. It remains valid across any
// mutation that does not delete the node it refers to; see the package
// doc for the generation mechanism that detects staleness.
type Iterator struct {
	idx        uint32
	generation uint32
}

// IsZero reports whether it is the zero Iterator, the value returned
// alongside a not-found result.
func (it Iterator) IsZero() bool { return it.idx == nilIdx }

// InsertStatus is the outcome of an Insert call.
type InsertStatus int

const (
	// InsertOK reports that a new node was linked into the tree.
	InsertOK InsertStatus = iota
	// InsertExists reports that a node with an equal record was already
	// present; the tree was not modified.
	InsertExists
	// InsertOutOfMemory reports that the arena has reached its MaxNodes
	// bound; the tree was not modified.
	InsertOutOfMemory
)

func (s InsertStatus) String() string {
	switch s {
	case InsertOK:
		return "ok"
	case InsertExists:
		return "exists"
	case InsertOutOfMemory:
		return "out of memory"
	default:
		return "unknown"
	}
}

// InsertResult is the sum type Insert returns: Ok/Exists carry the
// relevant node, OutOfMemory carries the zero Iterator.
type InsertResult[R any] struct {
	Status InsertStatus
	Node   Iterator
}

type options struct {
	maxNodes int
}

// Option configures a Tree at construction time.
type Option func(*options)

// WithMaxNodes bounds the number of live nodes the tree's arena will
// allocate. Once the bound is reached, Insert returns InsertOutOfMemory
// instead of growing further. A bound of 0 (the default) is unbounded.
func WithMaxNodes(n int) Option {
	return func(o *options) { o.maxNodes = n }
}

// Tree is a red-black tree: the container of spec.md's "ordered
// associative container." The zero value is not usable; construct with
// NewTree.
type Tree[K any, R any] struct {
	cmp      Comparator[K, R]
	slots    []slot[R]
	free     []uint32
	root     uint32
	count    int
	maxNodes int
}

// NewTree constructs an empty Tree using cmp for all ordering decisions.
func NewTree[K any, R any](cmp Comparator[K, R], opts ...Option) *Tree[K, R] {
	if cmp == nil {
		panic(ErrNilComparator)
	}
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	return &Tree[K, R]{
		cmp: cmp,
		// Index 0 is the permanent sentinel leaf; every real node lives
		// at index >= 1.
		slots:    make([]slot[R], 1),
		maxNodes: o.maxNodes,
	}
}

// Teardown clears the tree's comparator and releases its arena. It
// panics if the container is not empty — tearing down a non-empty
// container is a caller precondition violation (spec.md §7), not a
// recoverable error, but the panic carries ErrContainerNotEmpty so a
// caller that insists on catching it can with recover().
func (t *Tree[K, R]) Teardown() {
	if t.count != 0 {
		panic(fmt.Errorf("%w: %d live node(s)", ErrContainerNotEmpty, t.count))
	}
	t.slots = t.slots[:1]
	t.free = nil
	t.root = nilIdx
	t.cmp = nil
}

// IsEmpty reports whether the tree holds no records.
func (t *Tree[K, R]) IsEmpty() bool { return t.count == 0 }

// Len reports the number of records currently held.
func (t *Tree[K, R]) Len() int { return t.count }

// resolve maps an Iterator to a live arena index, rejecting stale or
// foreign handles.
func (t *Tree[K, R]) resolve(it Iterator) (uint32, bool) {
	if it.idx == nilIdx || int(it.idx) >= len(t.slots) {
		return 0, false
	}
	s := &t.slots[it.idx]
	if !s.used || s.generation != it.generation {
		return 0, false
	}
	return it.idx, true
}

// Record returns the user record attached to it, or the zero value and
// false if it is stale or foreign.
func (t *Tree[K, R]) Record(it Iterator) (R, bool) {
	idx, ok := t.resolve(it)
	if !ok {
		var zero R
		return zero, false
	}
	return t.slots[idx].record, true
}

func (t *Tree[K, R]) iterFor(idx uint32) Iterator {
	if idx == nilIdx {
		return Iterator{}
	}
	return Iterator{idx: idx, generation: t.slots[idx].generation}
}

// Find walks from the root choosing left/right by the sign of
// cmp.CompareKeyRecord(key, current), returning the first equal node.
func (t *Tree[K, R]) Find(key K) (Iterator, bool) {
	idx := t.root
	for idx != nilIdx {
		c := t.cmp.CompareKeyRecord(key, t.slots[idx].record)
		switch {
		case c < 0:
			idx = t.slots[idx].left
		case c > 0:
			idx = t.slots[idx].right
		default:
			return t.iterFor(idx), true
		}
	}
	return Iterator{}, false
}

func (t *Tree[K, R]) minFrom(idx uint32) uint32 {
	for idx != nilIdx && t.slots[idx].left != nilIdx {
		idx = t.slots[idx].left
	}
	return idx
}

func (t *Tree[K, R]) maxFrom(idx uint32) uint32 {
	for idx != nilIdx && t.slots[idx].right != nilIdx {
		idx = t.slots[idx].right
	}
	return idx
}

// Min returns the leftmost (smallest) node, or false if the tree is
// empty.
func (t *Tree[K, R]) Min() (Iterator, bool) {
	if t.root == nilIdx {
		return Iterator{}, false
	}
	return t.iterFor(t.minFrom(t.root)), true
}

// Max returns the rightmost (largest) node, or false if the tree is
// empty.
func (t *Tree[K, R]) Max() (Iterator, bool) {
	if t.root == nilIdx {
		return Iterator{}, false
	}
	return t.iterFor(t.maxFrom(t.root)), true
}

// Next returns the in-order successor of it, or false if it is the
// maximum (or it is stale/foreign).
func (t *Tree[K, R]) Next(it Iterator) (Iterator, bool) {
	idx, ok := t.resolve(it)
	if !ok {
		return Iterator{}, false
	}
	if r := t.slots[idx].right; r != nilIdx {
		return t.iterFor(t.minFrom(r)), true
	}
	cur, p := idx, t.slots[idx].parent
	for p != nilIdx && cur == t.slots[p].right {
		cur = p
		p = t.slots[p].parent
	}
	if p == nilIdx {
		return Iterator{}, false
	}
	return t.iterFor(p), true
}

// Prev returns the in-order predecessor of it, or false if it is the
// minimum (or it is stale/foreign).
func (t *Tree[K, R]) Prev(it Iterator) (Iterator, bool) {
	idx, ok := t.resolve(it)
	if !ok {
		return Iterator{}, false
	}
	if l := t.slots[idx].left; l != nilIdx {
		return t.iterFor(t.maxFrom(l)), true
	}
	cur, p := idx, t.slots[idx].parent
	for p != nilIdx && cur == t.slots[p].left {
		cur = p
		p = t.slots[p].parent
	}
	if p == nilIdx {
		return Iterator{}, false
	}
	return t.iterFor(p), true
}

func (t *Tree[K, R]) malloc() (uint32, bool) {
	if t.maxNodes > 0 && t.count >= t.maxNodes {
		return 0, false
	}
	if n := len(t.free); n > 0 {
		idx := t.free[n-1]
		t.free = t.free[:n-1]
		return idx, true
	}
	if len(t.slots) >= math.MaxUint32-1 {
		// [math.MaxUint32] is reserved the same way index 0 is; an arena
		// this large has no practical home anyway.
		return 0, false
	}
	t.slots = append(t.slots, slot[R]{})
	return uint32(len(t.slots) - 1), true
}

func (t *Tree[K, R]) freeSlot(idx uint32) {
	var zero slot[R]
	zero.generation = t.slots[idx].generation + 1
	t.slots[idx] = zero
	t.free = append(t.free, idx)
}
