// Package runner executes scenarios against enumerable containers.
package runner

import (
	plog "github.com/phuslu/log"

	"github.com/graph-guard/emplace/pkg/container"
	"github.com/graph-guard/emplace/pkg/emplace"
	"github.com/graph-guard/emplace/pkg/scenario"
	"github.com/graph-guard/emplace/pkg/statistics"
)

// Map is the container type scenarios are executed against.
type Map = container.Mapper[string, int64]

// Result is the result of a single scenario operation.
type Result struct {
	Key     string
	Value   int64
	Outcome statistics.Outcome

	// Err is non-nil if Outcome is statistics.Failed.
	Err error
}

// Run sets the scenario entries in m and then executes every operation
// in order. A failing operation is logged and recorded but doesn't stop
// the run. stats may be nil.
func Run(
	s *scenario.Scenario,
	m Map,
	log plog.Logger,
	stats *statistics.Counters,
) []Result {
	for _, e := range s.Entries {
		m.Set(e.Key, e.Value)
	}
	log.Debug().Int("entries", len(s.Entries)).Msg("entries set")

	results := make([]Result, len(s.Operations))
	for i, o := range s.Operations {
		r := execute(m, o)
		results[i] = r
		if stats != nil {
			stats.Record(r.Outcome)
		}

		if r.Err != nil {
			log.Error().
				Int("operation", i).
				Str("key", r.Key).
				Err(r.Err).
				Msg("emplace failed")
			continue
		}
		log.Debug().
			Int("operation", i).
			Str("key", r.Key).
			Int64("value", r.Value).
			Str("outcome", r.Outcome.String()).
			Msg("")
	}
	return results
}

func execute(m Map, o scenario.Operation) Result {
	r := Result{Key: o.Key, Outcome: statistics.Read}

	var h emplace.Handler[string, int64, Map]
	if o.Insert != nil {
		v := *o.Insert
		h.Insert = func(string, Map) int64 {
			r.Outcome = statistics.Inserted
			return v
		}
	}
	if o.Update != nil {
		u := *o.Update
		h.Update = func(old int64, _ string, _ Map) int64 {
			r.Outcome = statistics.Updated
			return u.Apply(old)
		}
	}

	r.Value, r.Err = emplace.Map(m, o.Key, h)
	if r.Err != nil {
		r.Outcome = statistics.Failed
	}
	return r
}
