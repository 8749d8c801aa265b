package rbtree

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"
)

// TestPropertyRandomSequenceStaysValid inserts and deletes a long random
// sequence of keys (with deliberate duplicates), validating invariants
// 1-7 and both traversal orders after every single mutation — spec.md
// §8's "for every sequence of operations applied to an initially empty
// container" property.
func TestPropertyRandomSequenceStaysValid(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	tr := newIntTree()
	live := map[int]bool{}

	const ops = 2000
	for i := 0; i < ops; i++ {
		key := rng.Intn(500) - 250

		if rng.Intn(3) == 0 && len(live) > 0 {
			// Delete a live key chosen at random.
			var victim int
			target := rng.Intn(len(live))
			n := 0
			for k := range live {
				if n == target {
					victim = k
					break
				}
				n++
			}
			it, ok := tr.Find(victim)
			require.True(t, ok, "find victim %d before delete", victim)
			_, ok = tr.Delete(it)
			require.True(t, ok, "delete victim %d", victim)
			delete(live, victim)
		} else {
			res := tr.Insert(record{key: key})
			if live[key] {
				require.Equal(t, InsertExists, res.Status, "re-inserting live key %d", key)
			} else {
				require.Equal(t, InsertOK, res.Status, "inserting fresh key %d", key)
				live[key] = true
			}
		}

		require.NoError(t, tr.Validate(), "invariants after op %d", i)
		require.Equal(t, len(live), tr.Len())
	}
}

// TestPropertyRoundTripForwardEmpty inserts a permutation of a key
// multiset (ignoring duplicates) and drains it via Min/Next, checking
// that the result is the sorted unique key sequence regardless of
// insertion order (spec.md §8 "Round-trip").
func TestPropertyRoundTripForwardEmpty(t *testing.T) {
	base := []int{7, 3, 9, 3, 1, 7, 5, 2, 9, 0, -4, 12, 3}
	unique := map[int]bool{}
	for _, k := range base {
		unique[k] = true
	}
	var sorted []int
	for k := range unique {
		sorted = append(sorted, k)
	}
	sortInts(sorted)

	rng := rand.New(rand.NewSource(2))
	for trial := 0; trial < 20; trial++ {
		perm := append([]int(nil), base...)
		rng.Shuffle(len(perm), func(i, j int) { perm[i], perm[j] = perm[j], perm[i] })

		tr := newIntTree()
		for _, k := range perm {
			tr.Insert(record{key: k})
		}
		require.NoError(t, tr.Validate())

		var drained []int
		it, ok := tr.Min()
		for ok {
			rec, _ := tr.Record(it)
			next, hasNext := tr.Next(it)
			_, deleted := tr.Delete(it)
			require.True(t, deleted)
			drained = append(drained, rec.key)
			it, ok = next, hasNext
		}
		require.NoError(t, tr.Validate())
		require.True(t, tr.IsEmpty())
		require.Equal(t, sorted, drained, "trial %d, perm %v", trial, perm)
	}
}

func sortInts(s []int) {
	for i := 1; i < len(s); i++ {
		for j := i; j > 0 && s[j-1] > s[j]; j-- {
			s[j-1], s[j] = s[j], s[j-1]
		}
	}
}
