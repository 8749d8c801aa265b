package rbtree

import "golang.org/x/exp/constraints"

// KeyFunc extracts the ordering key from a record.
type KeyFunc[K constraints.Ordered, R any] func(R) K

// OrderedComparator builds a Comparator[K, R] for the common case of a
// single constraints.Ordered key field, so callers whose records order
// by a plain int/string/float need not hand-write the two CompareX
// methods every NewTree call requires.
type OrderedComparator[K constraints.Ordered, R any] struct {
	Key KeyFunc[K, R]
}

func (c OrderedComparator[K, R]) CompareRecords(a, b R) int {
	return c.CompareKeyRecord(c.Key(a), b)
}

func (c OrderedComparator[K, R]) CompareKeyRecord(key K, r R) int {
	rk := c.Key(r)
	switch {
	case key < rk:
		return -1
	case key > rk:
		return 1
	default:
		return 0
	}
}
