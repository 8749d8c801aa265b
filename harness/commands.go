package harness

import (
	"fmt"

	"github.com/lersek/rbcontainer/rbtree"
)

// validateOrPanic runs the structural validator after every mutation
// (spec.md §4.2.1). A failure here means a container invariant broke,
// which spec.md §4.1.1/§7 treats as a debug-time assertion with no
// recoverable error path — so it panics rather than returning an error a
// caller might paper over.
func (h *Harness) validateOrPanic() {
	h.metrics.IncValidate()
	if err := h.tree.Validate(); err != nil {
		panic(fmt.Errorf("harness: invariant check failed: %w", err))
	}
}

func (h *Harness) cmdInsert(v int64) {
	h.metrics.IncInsert()
	res := h.tree.Insert(Record{Key: v})
	switch res.Status {
	case rbtree.InsertOK:
		fmt.Fprintf(h.out, "insert: %d: inserted\n", v)
		h.validateOrPanic()
	case rbtree.InsertExists:
		existing, _ := h.tree.Record(res.Node)
		fmt.Fprintf(h.out, "insert: %d: already exists\n", existing.Key)
	case rbtree.InsertOutOfMemory:
		fmt.Fprintf(h.out, "insert: %d: out of memory\n", v)
	}
}

func (h *Harness) cmdFind(v int64) {
	h.metrics.IncFind()
	if _, ok := h.tree.Find(v); ok {
		fmt.Fprintf(h.out, "find: %d: found\n", v)
	} else {
		fmt.Fprintf(h.out, "find: %d: not found\n", v)
	}
}

func (h *Harness) cmdDelete(v int64) {
	it, ok := h.tree.Find(v)
	if !ok {
		fmt.Fprintf(h.out, "delete: %d: not found\n", v)
		return
	}
	h.metrics.IncDelete()
	if _, ok := h.tree.Delete(it); ok {
		fmt.Fprintf(h.out, "delete: %d: removed\n", v)
		h.validateOrPanic()
	} else {
		fmt.Fprintf(h.out, "delete: %d: not found\n", v)
	}
}

// cmdForwardEmpty empties the container ascending, pre-fetching the next
// iterator before each delete so that the "iterators other than the one
// being deleted remain valid" contract is demonstrated rather than just
// assumed (spec.md §4.2.3).
func (h *Harness) cmdForwardEmpty() {
	it, ok := h.tree.Min()
	for ok {
		next, hasNext := h.tree.Next(it)
		rec, _ := h.tree.Record(it)
		h.tree.Delete(it)
		h.metrics.IncDelete()
		fmt.Fprintf(h.out, "forward-empty: %d: removed\n", rec.Key)
		h.validateOrPanic()
		it, ok = next, hasNext
	}
}

func (h *Harness) cmdBackwardEmpty() {
	it, ok := h.tree.Max()
	for ok {
		prev, hasPrev := h.tree.Prev(it)
		rec, _ := h.tree.Record(it)
		h.tree.Delete(it)
		h.metrics.IncDelete()
		fmt.Fprintf(h.out, "backward-empty: %d: removed\n", rec.Key)
		h.validateOrPanic()
		it, ok = prev, hasPrev
	}
}

func (h *Harness) cmdForwardList() {
	it, ok := h.tree.Min()
	for ok {
		rec, _ := h.tree.Record(it)
		fmt.Fprintf(h.out, "forward-list: %d\n", rec.Key)
		it, ok = h.tree.Next(it)
	}
}

func (h *Harness) cmdBackwardList() {
	it, ok := h.tree.Max()
	for ok {
		rec, _ := h.tree.Record(it)
		fmt.Fprintf(h.out, "backward-list: %d\n", rec.Key)
		it, ok = h.tree.Prev(it)
	}
}

func (h *Harness) cmdCount() {
	fmt.Fprintf(h.out, "count: %d\n", h.tree.Len())
}

func (h *Harness) cmdValidate() {
	if err := h.tree.Validate(); err != nil {
		fmt.Fprintf(h.out, "validate: %v\n", err)
		return
	}
	fmt.Fprintln(h.out, "validate: ok")
}
