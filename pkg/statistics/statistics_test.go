package statistics_test

import (
	"sync"
	"testing"

	"github.com/graph-guard/emplace/pkg/statistics"
	"github.com/stretchr/testify/require"
)

func TestRecord(t *testing.T) {
	c := statistics.New()
	c.Record(statistics.Inserted)
	c.Record(statistics.Inserted)
	c.Record(statistics.Updated)
	c.Record(statistics.Read)
	c.Record(statistics.Failed)
	c.Record(statistics.Outcome(0))

	s := c.Snapshot()
	require.Equal(t, statistics.Snapshot{
		Inserted: 2,
		Updated:  1,
		Read:     1,
		Failed:   1,
	}, s)
	require.Equal(t, int64(5), s.Total())

	c.Reset()
	require.Zero(t, c.Snapshot())
}

func TestRecordConcurrent(t *testing.T) {
	c := statistics.New()
	var wg sync.WaitGroup
	wg.Add(50)
	for g := 0; g < 50; g++ {
		go func() {
			defer wg.Done()
			for i := 0; i < 100; i++ {
				c.Record(statistics.Outcome(i%4 + 1))
			}
		}()
	}
	wg.Wait()

	require.Equal(t, statistics.Snapshot{
		Inserted: 1250,
		Updated:  1250,
		Read:     1250,
		Failed:   1250,
	}, c.Snapshot())
}

func TestOutcomeString(t *testing.T) {
	for o, s := range map[statistics.Outcome]string{
		statistics.Inserted:   "inserted",
		statistics.Updated:    "updated",
		statistics.Read:       "read",
		statistics.Failed:     "failed",
		statistics.Outcome(0): "unknown",
	} {
		require.Equal(t, s, o.String())
	}
}
