// Package cache provides an explicit scenario cache keyed by a
// fingerprint of the normalized input specification. It is owned by the
// calling layer (the API handlers construct one); nothing here is
// process-global.
package cache

import (
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"math"
	"sync"

	"pv-feasibility/internal/model"
	"pv-feasibility/internal/scenario"
)

// Store is a bounded in-memory scenario cache with oldest-entry
// eviction. Safe for concurrent use.
type Store struct {
	mu      sync.RWMutex
	entries map[string]*scenario.Scenario
	order   []string
	limit   int
}

// New returns a store holding at most limit scenarios.
func New(limit int) *Store {
	if limit < 1 {
		limit = 1
	}
	return &Store{
		entries: make(map[string]*scenario.Scenario, limit),
		limit:   limit,
	}
}

// Get returns the cached scenario for key, if present.
func (s *Store) Get(key string) (*scenario.Scenario, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sc, ok := s.entries[key]
	return sc, ok
}

// Put stores a scenario, evicting the oldest entry when full.
func (s *Store) Put(key string, sc *scenario.Scenario) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.entries[key]; exists {
		s.entries[key] = sc
		return
	}
	for len(s.entries) >= s.limit && len(s.order) > 0 {
		oldest := s.order[0]
		s.order = s.order[1:]
		delete(s.entries, oldest)
	}
	s.entries[key] = sc
	s.order = append(s.order, key)
}

// Len returns the number of cached scenarios.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

// Fingerprint derives a deterministic cache key from every scalar
// parameter and both raw series of the spec. Two specs with identical
// contents always produce the same key.
func Fingerprint(in *model.InputSpec) string {
	h := sha256.New()

	writeF := func(v float64) {
		var buf [8]byte
		binary.LittleEndian.PutUint64(buf[:], uint64FromFloat(v))
		h.Write(buf[:])
	}
	writeI := func(v int) { writeF(float64(v)) }
	writeSeries := func(s model.HourlySeries) {
		writeI(len(s))
		for _, v := range s {
			writeF(v)
		}
	}

	writeSeries(in.Load.Value)
	writeSeries(in.RefYield.Value)
	writeF(in.RefCapacity.Value)
	writeF(in.PostprocLoss.Value)
	writeI(in.StudyPeriod.Value)
	writeF(in.DiscountRate.Value)
	writeF(in.PVCapacity.Value)
	writeF(in.PVDegradation.Value)
	h.Write([]byte(in.Currency.Value))
	writeF(in.DevEx.Value)
	writeF(in.CapEx.Value)
	writeF(in.OpEx.Value)
	writeF(in.OpExEscalation.Value)
	writeF(in.LoanFraction.Value)
	writeI(in.LoanPeriod.Value)
	writeF(in.LoanRate.Value)
	writeF(in.ImportTariff.Value)
	writeF(in.ExportTariff.Value)
	writeF(in.ImportEscalation.Value)
	writeF(in.ExportEscalation.Value)

	return hex.EncodeToString(h.Sum(nil))
}

func uint64FromFloat(v float64) uint64 {
	// Normalize -0 so it fingerprints like 0.
	if v == 0 {
		return 0
	}
	return math.Float64bits(v)
}
