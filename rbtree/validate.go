package rbtree

import "fmt"

// Validate asserts every invariant from spec.md §3 (BST order, two-color,
// leaf-black, red-property, black-height, root-black, parent linkage)
// plus that forward and backward traversal each visit every node exactly
// once in sorted/reverse-sorted order. It is intended for debug builds
// and tests (spec.md §4.1.1); recursion depth is O(tree height).
func (t *Tree[K, R]) Validate() error {
	if t.root != nilIdx {
		if t.slots[t.root].color != black {
			return fmt.Errorf("%w: root is not black", ErrInvariant)
		}
		if t.slots[t.root].parent != nilIdx {
			return fmt.Errorf("%w: root has a parent", ErrInvariant)
		}
	}

	count, _, err := t.validateSubtree(t.root, nil, nil)
	if err != nil {
		return err
	}
	if count != t.count {
		return fmt.Errorf("%w: reachable node count %d does not match tracked count %d", ErrInvariant, count, t.count)
	}

	return t.validateTraversal()
}

// validateSubtree walks the subtree rooted at idx, checking BST ordering
// against the open bounds (lo, hi), parent linkage, the red property, and
// returning (node count, black height, error). A leaf sentinel
// contributes a black height of 1 and is vacuously within any bounds.
func (t *Tree[K, R]) validateSubtree(idx uint32, lo, hi *R) (int, int, error) {
	if idx == nilIdx {
		return 0, 1, nil
	}
	s := &t.slots[idx]

	if lo != nil && t.cmp.CompareRecords(s.record, *lo) <= 0 {
		return 0, 0, fmt.Errorf("%w: node %d does not order after its lower bound", ErrInvariant, idx)
	}
	if hi != nil && t.cmp.CompareRecords(s.record, *hi) >= 0 {
		return 0, 0, fmt.Errorf("%w: node %d does not order before its upper bound", ErrInvariant, idx)
	}
	if s.left != nilIdx && t.slots[s.left].parent != idx {
		return 0, 0, fmt.Errorf("%w: node %d's left child has a broken parent link", ErrInvariant, idx)
	}
	if s.right != nilIdx && t.slots[s.right].parent != idx {
		return 0, 0, fmt.Errorf("%w: node %d's right child has a broken parent link", ErrInvariant, idx)
	}
	if s.color == red && (t.slots[s.left].color == red || t.slots[s.right].color == red) {
		return 0, 0, fmt.Errorf("%w: red node %d has a red child", ErrInvariant, idx)
	}

	lCount, lbh, err := t.validateSubtree(s.left, lo, &s.record)
	if err != nil {
		return 0, 0, err
	}
	rCount, rbh, err := t.validateSubtree(s.right, &s.record, hi)
	if err != nil {
		return 0, 0, err
	}
	if lbh != rbh {
		return 0, 0, fmt.Errorf("%w: node %d has unequal black heights on its two sides (%d vs %d)", ErrInvariant, idx, lbh, rbh)
	}

	bh := lbh
	if s.color == black {
		bh++
	}
	return lCount + rCount + 1, bh, nil
}

func (t *Tree[K, R]) validateTraversal() error {
	if err := t.validateOneDirection(true); err != nil {
		return err
	}
	return t.validateOneDirection(false)
}

func (t *Tree[K, R]) validateOneDirection(forward bool) error {
	var it Iterator
	var ok bool
	if forward {
		it, ok = t.Min()
	} else {
		it, ok = t.Max()
	}

	count := 0
	var prev R
	havePrev := false
	for ok {
		rec, _ := t.Record(it)
		if havePrev {
			c := t.cmp.CompareRecords(prev, rec)
			if (forward && c >= 0) || (!forward && c <= 0) {
				return fmt.Errorf("%w: traversal order broken (forward=%t)", ErrInvariant, forward)
			}
		}
		prev, havePrev = rec, true
		count++
		if forward {
			it, ok = t.Next(it)
		} else {
			it, ok = t.Prev(it)
		}
	}
	if count != t.count {
		return fmt.Errorf("%w: traversal (forward=%t) visited %d nodes, expected %d", ErrInvariant, forward, count, t.count)
	}
	return nil
}
