// CohortPulse - Cohort Retention and Claims Payment Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cohortpulse

// Package store keeps uploaded claims datasets in memory, keyed by a
// server-assigned identifier, so waterfall queries can address a
// specific upload instead of a process-global "last upload". Entries
// expire after a TTL and the store caps how many uploads it retains,
// evicting the oldest first.
package store

import (
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/tomtom215/cohortpulse/internal/metrics"
	"github.com/tomtom215/cohortpulse/internal/models"
)

// Entry is one retained claims upload with its precomputed filter
// values.
type Entry struct {
	Claims       []models.Claim
	Payers       []string
	ServiceTypes []string
	UploadedAt   time.Time
	ExpiresAt    time.Time
}

// Stats tracks store activity for the health and metrics surfaces.
type Stats struct {
	mu          sync.RWMutex
	Hits        int64
	Misses      int64
	Evictions   int64
	TotalKeys   int64
	LastCleanup time.Time
}

// Store is a thread-safe in-memory upload store with TTL expiration
// and a bounded entry count.
type Store struct {
	mu        sync.RWMutex
	entries   map[string]Entry
	ttl       time.Duration
	maxStored int
	stats     Stats
	done      chan struct{}
	closeOnce sync.Once
}

// cleanupInterval is how often the background sweep removes expired
// uploads.
const cleanupInterval = 5 * time.Minute

// New creates a store retaining at most maxStored uploads, each for
// ttl. A background goroutine sweeps expired entries until Close is
// called.
func New(ttl time.Duration, maxStored int) *Store {
	s := &Store{
		entries:   make(map[string]Entry),
		ttl:       ttl,
		maxStored: maxStored,
		stats:     Stats{LastCleanup: time.Now()},
		done:      make(chan struct{}),
	}

	go s.cleanupLoop()

	return s
}

// Put stores a claims upload and returns its assigned identifier.
// When the store is at capacity the oldest upload is evicted first.
func (s *Store) Put(claims []models.Claim, payers, serviceTypes []string) string {
	id := uuid.New().String()
	now := time.Now()

	s.mu.Lock()
	if len(s.entries) >= s.maxStored {
		s.evictOldestLocked()
	}
	s.entries[id] = Entry{
		Claims:       claims,
		Payers:       payers,
		ServiceTypes: serviceTypes,
		UploadedAt:   now,
		ExpiresAt:    now.Add(s.ttl),
	}
	total := int64(len(s.entries))
	s.mu.Unlock()

	s.stats.mu.Lock()
	s.stats.TotalKeys = total
	s.stats.mu.Unlock()

	return id
}

// Get retrieves an upload by identifier. Expired entries are removed
// on access and reported as missing.
func (s *Store) Get(id string) (Entry, bool) {
	s.mu.RLock()
	entry, exists := s.entries[id]
	s.mu.RUnlock()

	if !exists {
		s.recordMiss()
		return Entry{}, false
	}

	if time.Now().After(entry.ExpiresAt) {
		s.mu.Lock()
		delete(s.entries, id)
		s.mu.Unlock()
		s.recordMiss()
		s.recordEviction()
		return Entry{}, false
	}

	s.recordHit()
	return entry, true
}

// Delete removes an upload by identifier. Safe to call with unknown
// identifiers.
func (s *Store) Delete(id string) {
	s.mu.Lock()
	delete(s.entries, id)
	s.mu.Unlock()

	s.recordEviction()
}

// Len returns the current number of retained uploads.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

// Close stops the background cleanup goroutine. The store remains
// usable but no longer sweeps expired entries.
func (s *Store) Close() {
	s.closeOnce.Do(func() {
		close(s.done)
	})
}

// GetStats returns a snapshot of store statistics.
func (s *Store) GetStats() Stats {
	s.stats.mu.RLock()
	defer s.stats.mu.RUnlock()

	return Stats{
		Hits:        s.stats.Hits,
		Misses:      s.stats.Misses,
		Evictions:   s.stats.Evictions,
		TotalKeys:   s.stats.TotalKeys,
		LastCleanup: s.stats.LastCleanup,
	}
}

// evictOldestLocked removes the upload with the earliest UploadedAt.
// Caller must hold the write lock.
func (s *Store) evictOldestLocked() {
	ids := make([]string, 0, len(s.entries))
	for id := range s.entries {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool {
		return s.entries[ids[i]].UploadedAt.Before(s.entries[ids[j]].UploadedAt)
	})
	if len(ids) > 0 {
		delete(s.entries, ids[0])
		s.recordEviction()
	}
}

// cleanupLoop periodically removes expired uploads until Close.
func (s *Store) cleanupLoop() {
	ticker := time.NewTicker(cleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.cleanup()
		case <-s.done:
			return
		}
	}
}

// cleanup removes all expired uploads.
func (s *Store) cleanup() {
	now := time.Now()
	s.mu.Lock()
	evictions := int64(0)
	for id, entry := range s.entries {
		if now.After(entry.ExpiresAt) {
			delete(s.entries, id)
			evictions++
		}
	}
	total := int64(len(s.entries))
	s.mu.Unlock()

	s.stats.mu.Lock()
	s.stats.Evictions += evictions
	s.stats.TotalKeys = total
	s.stats.LastCleanup = now
	s.stats.mu.Unlock()

	metrics.StoreEvictions.Add(float64(evictions))
}

func (s *Store) recordHit() {
	s.stats.mu.Lock()
	s.stats.Hits++
	s.stats.mu.Unlock()
}

func (s *Store) recordMiss() {
	s.stats.mu.Lock()
	s.stats.Misses++
	s.stats.mu.Unlock()
}

func (s *Store) recordEviction() {
	s.stats.mu.Lock()
	s.stats.Evictions++
	s.stats.mu.Unlock()

	metrics.StoreEvictions.Inc()
}
