package harness

import "github.com/lersek/rbcontainer/rbtree"

// Record is the user record the harness's container holds: an opaque
// (to rbtree) payload that embeds the ordering key, per spec.md §3.
type Record struct {
	Key int64
}

// comparator implements rbtree.Comparator[int64, Record] over Record's
// embedded key, via rbtree's generic single-key helper.
var comparator = rbtree.OrderedComparator[int64, Record]{
	Key: func(r Record) int64 { return r.Key },
}
