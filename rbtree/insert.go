package rbtree

// Insert performs a BST descent to find record's unique position using
// cmp.CompareRecords. If an equal record is already present, the tree is
// left unchanged and InsertExists is returned with the colliding node.
// Otherwise a new red leaf is linked in and insertFixup restores the
// red-black invariants (spec.md §4.1.2).
func (t *Tree[K, R]) Insert(record R) InsertResult[R] {
	var parent uint32
	goLeft := false
	cur := t.root

	for cur != nilIdx {
		c := t.cmp.CompareRecords(record, t.slots[cur].record)
		parent = cur
		switch {
		case c < 0:
			goLeft = true
			cur = t.slots[cur].left
		case c > 0:
			goLeft = false
			cur = t.slots[cur].right
		default:
			return InsertResult[R]{Status: InsertExists, Node: t.iterFor(cur)}
		}
	}

	idx, ok := t.malloc()
	if !ok {
		return InsertResult[R]{Status: InsertOutOfMemory}
	}

	s := &t.slots[idx]
	s.used = true
	s.record = record
	s.color = red
	s.parent = parent
	s.left, s.right = nilIdx, nilIdx

	switch {
	case parent == nilIdx:
		t.root = idx
	case goLeft:
		t.slots[parent].left = idx
	default:
		t.slots[parent].right = idx
	}
	t.count++

	t.insertFixup(idx)
	return InsertResult[R]{Status: InsertOK, Node: t.iterFor(idx)}
}

// insertFixup restores invariants 2, 4 and 6 after linking the red leaf
// z. It walks up at most O(log n) ancestors, performing case A
// (recolor-and-continue), case B (rotate z to the outer grandchild) and
// case C (recolor P/G and rotate at G, which terminates the loop) exactly
// as spec.md §4.1.2 describes them.
func (t *Tree[K, R]) insertFixup(z uint32) {
	for t.slots[t.slots[z].parent].color == red {
		p := t.slots[z].parent
		g := t.slots[p].parent

		if p == t.slots[g].left {
			u := t.slots[g].right
			if t.slots[u].color == red {
				// Case A: uncle is red; push the red up to the grandparent.
				t.slots[p].color = black
				t.slots[u].color = black
				t.slots[g].color = red
				z = g
				continue
			}
			if z == t.slots[p].right {
				// Case B: z is the inner grandchild; rotate it to outer.
				z = p
				t.rotateLeft(z)
				p = t.slots[z].parent
				g = t.slots[p].parent
			}
			// Case C: z is the outer grandchild.
			t.slots[p].color = black
			t.slots[g].color = red
			t.rotateRight(g)
			break
		}

		u := t.slots[g].left
		if t.slots[u].color == red {
			t.slots[p].color = black
			t.slots[u].color = black
			t.slots[g].color = red
			z = g
			continue
		}
		if z == t.slots[p].left {
			z = p
			t.rotateRight(z)
			p = t.slots[z].parent
			g = t.slots[p].parent
		}
		t.slots[p].color = black
		t.slots[g].color = red
		t.rotateLeft(g)
		break
	}
	t.slots[t.root].color = black
}
