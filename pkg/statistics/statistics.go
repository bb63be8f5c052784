// Package statistics provides thread-safe counters
// of emplace outcomes.
package statistics

import "sync/atomic"

// Outcome is the result of a single emplace operation.
type Outcome int8

const (
	_ Outcome = iota

	// Inserted means the key was absent and a value was inserted.
	Inserted

	// Updated means the key was present and its value was replaced.
	Updated

	// Read means the key was present and no update was requested.
	Read

	// Failed means the operation didn't complete.
	Failed
)

func (o Outcome) String() string {
	switch o {
	case Inserted:
		return "inserted"
	case Updated:
		return "updated"
	case Read:
		return "read"
	case Failed:
		return "failed"
	}
	return "unknown"
}

// Counters is safe for concurrent use.
type Counters struct {
	inserted int64
	updated  int64
	read     int64
	failed   int64
}

func New() *Counters { return &Counters{} }

// Record increments the counter of o.
// Unknown outcomes are ignored.
func (c *Counters) Record(o Outcome) {
	switch o {
	case Inserted:
		atomic.AddInt64(&c.inserted, 1)
	case Updated:
		atomic.AddInt64(&c.updated, 1)
	case Read:
		atomic.AddInt64(&c.read, 1)
	case Failed:
		atomic.AddInt64(&c.failed, 1)
	}
}

// Snapshot is a point-in-time copy of Counters.
type Snapshot struct {
	Inserted int64
	Updated  int64
	Read     int64
	Failed   int64
}

// Total returns the number of recorded operations.
func (s Snapshot) Total() int64 {
	return s.Inserted + s.Updated + s.Read + s.Failed
}

func (c *Counters) Snapshot() Snapshot {
	return Snapshot{
		Inserted: atomic.LoadInt64(&c.inserted),
		Updated:  atomic.LoadInt64(&c.updated),
		Read:     atomic.LoadInt64(&c.read),
		Failed:   atomic.LoadInt64(&c.failed),
	}
}

// Reset sets all counters to zero.
func (c *Counters) Reset() {
	atomic.StoreInt64(&c.inserted, 0)
	atomic.StoreInt64(&c.updated, 0)
	atomic.StoreInt64(&c.read, 0)
	atomic.StoreInt64(&c.failed, 0)
}
