package dbloader

import "github.com/giang-nguyentbk/configdb/internal/dbwire"

// Tier names the store an entry or a resolution result lives in.
type Tier int

const (
	Base Tier = iota
	Overlay
)

func (t Tier) String() string {
	if t == Base {
		return "base"
	}

	return "overlay"
}

// entryStore is one tier's append-only entry vector plus its inverted
// index: path segment -> set of entry indices whose key contains that
// segment (spec §3, §4.3).
type entryStore struct {
	entries []dbwire.Entry
	index   map[string]map[int]struct{}
}

func newEntryStore() *entryStore {
	return &entryStore{index: make(map[string]map[int]struct{})}
}

// buildFrom replaces s's entries and rebuilds the index from scratch. Used
// at load time and whenever indices shift (restore, reset).
func (s *entryStore) buildFrom(entries []dbwire.Entry) {
	s.entries = entries
	s.index = make(map[string]map[int]struct{})

	for i, e := range entries {
		s.indexKey(e.Key, i)
	}
}

func (s *entryStore) indexKey(key string, idx int) {
	for _, segment := range dbwire.TokenizeKey(key) {
		bucket, ok := s.index[segment]
		if !ok {
			bucket = make(map[int]struct{})
			s.index[segment] = bucket
		}

		bucket[idx] = struct{}{}
	}
}

// append adds e to the store and indexes it, returning its new index.
func (s *entryStore) append(e dbwire.Entry) int {
	idx := len(s.entries)
	s.entries = append(s.entries, e)
	s.indexKey(e.Key, idx)

	return idx
}

// resolve returns the set of candidate indices for key: the intersection
// of the per-segment buckets. An empty or nil result means no match.
func (s *entryStore) resolve(key string) []int {
	segments := dbwire.TokenizeKey(key)
	if len(segments) == 0 {
		return nil
	}

	candidates, ok := s.index[segments[0]]
	if !ok {
		return nil
	}

	matches := make(map[int]struct{}, len(candidates))
	for idx := range candidates {
		matches[idx] = struct{}{}
	}

	for _, seg := range segments[1:] {
		bucket, ok := s.index[seg]
		if !ok {
			return nil
		}

		for idx := range matches {
			if _, found := bucket[idx]; !found {
				delete(matches, idx)
			}
		}
	}

	result := make([]int, 0, len(matches))
	for idx := range matches {
		result = append(result, idx)
	}

	return result
}

// snapshot returns the current entries, safe for encoding without holding
// the store's lock for the whole operation.
func (s *entryStore) snapshot() []dbwire.Entry {
	out := make([]dbwire.Entry, len(s.entries))
	copy(out, s.entries)

	return out
}
