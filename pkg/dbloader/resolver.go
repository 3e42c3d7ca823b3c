package dbloader

import "github.com/giang-nguyentbk/configdb/internal/dbtrace"

// resolution names the tier and index a key resolved to.
type resolution struct {
	tier  Tier
	index int
	found bool
}

// resolve implements the Resolver (spec §4.4): tokenize, intersect
// per-segment buckets, overlay before base, emit a diagnostic and keep the
// lowest index on ambiguity. The caller must hold at least an RLock on
// both tiers' store/index mutexes.
func (l *Loader) resolve(key string) resolution {
	if res, ok := resolveInTier(l.overlay, Overlay, key, l.sink); ok {
		return res
	}

	if res, ok := resolveInTier(l.base, Base, key, l.sink); ok {
		return res
	}

	return resolution{found: false}
}

func resolveInTier(s *entryStore, tier Tier, key string, sink dbtrace.Sink) (resolution, bool) {
	matches := s.resolve(key)

	idx, ok := lowestOf(matches)
	if !ok {
		return resolution{}, false
	}

	if len(matches) > 1 {
		sink.Trace(dbtrace.ABN, "ambiguous key", "key", key, "tier", tier.String())
	}

	return resolution{tier: tier, index: idx, found: true}, true
}

func lowestOf(indices []int) (int, bool) {
	if len(indices) == 0 {
		return 0, false
	}

	min := indices[0]
	for _, idx := range indices[1:] {
		if idx < min {
			min = idx
		}
	}

	return min, true
}
