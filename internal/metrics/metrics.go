// Package metrics holds the small set of operation counters the harness
// exposes, which the rbharness CLI logs at shutdown, modeled on the
// teacher's per-package metrics.go counter-struct-with-atomics idiom
// (cmd/ubtconv/metrics.go).
package metrics

import "sync/atomic"

// Counters tracks how many times each container operation ran. The zero
// value is ready to use.
type Counters struct {
	inserts   atomic.Int64
	finds     atomic.Int64
	deletes   atomic.Int64
	validates atomic.Int64
}

func (c *Counters) IncInsert()   { c.inserts.Add(1) }
func (c *Counters) IncFind()     { c.finds.Add(1) }
func (c *Counters) IncDelete()   { c.deletes.Add(1) }
func (c *Counters) IncValidate() { c.validates.Add(1) }

// Snapshot is a point-in-time copy of the counters, safe to compare in
// tests without racing further increments.
type Snapshot struct {
	Inserts   int64
	Finds     int64
	Deletes   int64
	Validates int64
}

func (c *Counters) Snapshot() Snapshot {
	return Snapshot{
		Inserts:   c.inserts.Load(),
		Finds:     c.finds.Load(),
		Deletes:   c.deletes.Load(),
		Validates: c.validates.Load(),
	}
}
