package rbtree

// transplant replaces the subtree rooted at u with the subtree rooted at
// v in u's parent (or the tree root), per spec.md §4.1.3. It does not
// touch u itself; the caller is responsible for freeing it. v may be
// nilIdx (the sentinel); writing a transient parent onto the sentinel
// slot is harmless because deleteFixup always tracks a node's parent
// explicitly rather than reading it back off of a possibly-sentinel
// child.
func (t *Tree[K, R]) transplant(u, v uint32) {
	t.relinkParent(u, v)
}

// Delete detaches the node it refers to, rebalances, frees its slot and
// returns the record it held. It reports false (with the zero record) if
// it is stale or foreign instead of panicking, since a harness driving
// many iterators concurrently with deletions is the expected caller.
func (t *Tree[K, R]) Delete(it Iterator) (R, bool) {
	idx, ok := t.resolve(it)
	if !ok {
		var zero R
		return zero, false
	}
	record := t.slots[idx].record

	y := idx
	yOriginalColor := t.slots[y].color
	var x, xParent uint32

	switch {
	case t.slots[idx].left == nilIdx:
		x = t.slots[idx].right
		xParent = t.slots[idx].parent
		t.transplant(idx, x)

	case t.slots[idx].right == nilIdx:
		x = t.slots[idx].left
		xParent = t.slots[idx].parent
		t.transplant(idx, x)

	default:
		// Two children: splice in the successor, which lies in idx's
		// right subtree and has no left child (spec.md §4.1.3).
		y = t.minFrom(t.slots[idx].right)
		yOriginalColor = t.slots[y].color
		x = t.slots[y].right

		if t.slots[y].parent == idx {
			xParent = y
		} else {
			xParent = t.slots[y].parent
			t.transplant(y, x)
			t.slots[y].right = t.slots[idx].right
			t.slots[t.slots[y].right].parent = y
		}
		t.transplant(idx, y)
		t.slots[y].left = t.slots[idx].left
		t.slots[t.slots[y].left].parent = y
		t.slots[y].color = t.slots[idx].color
	}

	t.freeSlot(idx)
	t.count--

	if yOriginalColor == black {
		t.deleteFixup(x, xParent)
	}

	return record, true
}

// deleteFixup repairs the black-height deficit left by removing a black
// node, walking up from the replacing child x (parent known explicitly,
// since x may be the shared sentinel). Cases 1-4 follow spec.md §4.1.3
// exactly; case 2 is the only one that continues the walk upward.
func (t *Tree[K, R]) deleteFixup(x, parent uint32) {
	for x != t.root && t.slots[x].color == black {
		if x == t.slots[parent].left {
			sib := t.slots[parent].right
			if t.slots[sib].color == red {
				// Case 1: sibling red.
				t.slots[sib].color = black
				t.slots[parent].color = red
				t.rotateLeft(parent)
				sib = t.slots[parent].right
			}
			if t.slots[t.slots[sib].left].color == black && t.slots[t.slots[sib].right].color == black {
				// Case 2: both of sibling's children are black.
				t.slots[sib].color = red
				x = parent
				parent = t.slots[x].parent
				continue
			}
			if t.slots[t.slots[sib].right].color == black {
				// Case 3: sibling's far child is black, near child red.
				t.slots[t.slots[sib].left].color = black
				t.slots[sib].color = red
				t.rotateRight(sib)
				sib = t.slots[parent].right
			}
			// Case 4: sibling's far child is red. Terminates the loop.
			t.slots[sib].color = t.slots[parent].color
			t.slots[parent].color = black
			t.slots[t.slots[sib].right].color = black
			t.rotateLeft(parent)
			x = t.root
			break
		}

		sib := t.slots[parent].left
		if t.slots[sib].color == red {
			t.slots[sib].color = black
			t.slots[parent].color = red
			t.rotateRight(parent)
			sib = t.slots[parent].left
		}
		if t.slots[t.slots[sib].right].color == black && t.slots[t.slots[sib].left].color == black {
			t.slots[sib].color = red
			x = parent
			parent = t.slots[x].parent
			continue
		}
		if t.slots[t.slots[sib].left].color == black {
			t.slots[t.slots[sib].right].color = black
			t.slots[sib].color = red
			t.rotateLeft(sib)
			sib = t.slots[parent].left
		}
		t.slots[sib].color = t.slots[parent].color
		t.slots[parent].color = black
		t.slots[t.slots[sib].left].color = black
		t.rotateRight(parent)
		x = t.root
		break
	}
	t.slots[x].color = black
}
