// Package store implements the dual-backend session store shared by the
// interview, quiz and roadmap modules. Every record is always written to a
// process-local map; a durable backend is written to opportunistically and
// read from when the map misses. The map is lost on restart — that durability
// gap is deliberate and the durable backend exists to cover it.
package store

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"vidyamitra_backend/internal/model"
	"vidyamitra_backend/internal/util"
	"vidyamitra_backend/pkg/logger"

	"go.uber.org/zap"
)

// Record is the contract a session entity must satisfy to live in a
// SessionStore.
type Record interface {
	RecordID() string
	SetRecordID(id string)
	OwnerID() uint
	CreatedTime() time.Time
	SetCreatedTime(t time.Time)
}

// Backend is the durable side of the store. Implementations return
// util.ErrNotFound for a missing row and util.ErrUnavailable for any
// infrastructure failure; both are absorbed here and never reach callers.
type Backend[T Record] interface {
	Insert(ctx context.Context, rec T) (string, error)
	Update(ctx context.Context, rec T) error
	FindByIDAndUser(ctx context.Context, id string, userID uint) (T, error)
	ListByUser(ctx context.Context, userID uint) ([]T, error)
}

// SessionStore keeps one kind of session record in memory and mirrors it to
// the durable backend on a best-effort basis. The mutex only protects the map
// structure; concurrent mutation of the same record id remains
// last-write-wins.
type SessionStore[T Record] struct {
	kind    string
	backend Backend[T] // nil when the process runs without a durable store

	mu      sync.RWMutex
	records map[string]T
}

func NewSessionStore[T Record](kind string, backend Backend[T]) *SessionStore[T] {
	return &SessionStore[T]{
		kind:    kind,
		backend: backend,
		records: make(map[string]T),
	}
}

// Create registers the record under a locally generated id, attempts a durable
// insert, and returns whichever id is canonical afterwards. When the durable
// store issues a different id the in-memory entry is re-keyed so that all
// future lookups resolve under the persisted id.
func (s *SessionStore[T]) Create(ctx context.Context, rec T) string {
	localID := model.GenerateUUID()
	rec.SetRecordID(localID)
	// The creation time must be set here, not by the durable insert: a record
	// that never reaches the durable store still has to sort correctly in
	// History and carry a real timestamp in responses.
	if rec.CreatedTime().IsZero() {
		rec.SetCreatedTime(time.Now())
	}

	s.mu.Lock()
	s.records[localID] = rec
	s.mu.Unlock()

	if s.backend != nil {
		persistedID, err := s.backend.Insert(ctx, rec)
		switch {
		case err != nil:
			logger.Log.Warn("durable insert failed, record kept in memory only",
				zap.String("kind", s.kind), zap.String("id", localID), zap.Error(err))
		case persistedID != "" && persistedID != localID:
			s.reconcileID(rec, localID, persistedID)
		}
	}

	return rec.RecordID()
}

// reconcileID replaces the in-memory key and the record's own id with the
// durable-store-issued one. Lookups by the superseded id miss afterwards.
func (s *SessionStore[T]) reconcileID(rec T, oldID, newID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.records, oldID)
	rec.SetRecordID(newID)
	s.records[newID] = rec
}

// Get resolves a record by id for the claimed owner. The in-memory copy is
// authoritative when present; an owner mismatch there is an authorization
// failure regardless of durable-store state. On a memory miss the durable
// store is consulted by id+owner and a hit is mirrored back into memory.
// A durable-store outage is indistinguishable from "not found there".
func (s *SessionStore[T]) Get(ctx context.Context, id string, userID uint) (T, error) {
	var zero T

	s.mu.RLock()
	rec, ok := s.records[id]
	s.mu.RUnlock()

	if ok {
		if rec.OwnerID() != userID {
			return zero, util.ErrForbidden
		}
		return rec, nil
	}

	if s.backend == nil {
		return zero, util.ErrNotFound
	}

	rec, err := s.backend.FindByIDAndUser(ctx, id, userID)
	if err != nil {
		if errors.Is(err, util.ErrUnavailable) {
			logger.Log.Warn("durable lookup unavailable",
				zap.String("kind", s.kind), zap.String("id", id), zap.Error(err))
			return zero, util.ErrNotFound
		}
		return zero, util.ErrNotFound
	}

	s.mu.Lock()
	s.records[id] = rec
	s.mu.Unlock()

	return rec, nil
}

// Save writes the record to memory unconditionally and mirrors it to the
// durable store on a best-effort basis.
func (s *SessionStore[T]) Save(ctx context.Context, rec T) {
	s.mu.Lock()
	s.records[rec.RecordID()] = rec
	s.mu.Unlock()

	if s.backend == nil {
		return
	}
	if err := s.backend.Update(ctx, rec); err != nil {
		logger.Log.Warn("durable update failed, in-memory copy is current",
			zap.String("kind", s.kind), zap.String("id", rec.RecordID()), zap.Error(err))
	}
}

// History merges durable and in-memory records for one owner, deduplicated by
// id with the durable copy winning, newest first.
func (s *SessionStore[T]) History(ctx context.Context, userID uint) []T {
	var merged []T
	seen := make(map[string]bool)

	if s.backend != nil {
		durable, err := s.backend.ListByUser(ctx, userID)
		if err != nil {
			logger.Log.Warn("durable history unavailable, serving in-memory records",
				zap.String("kind", s.kind), zap.Error(err))
		} else {
			for _, rec := range durable {
				merged = append(merged, rec)
				seen[rec.RecordID()] = true
			}
		}
	}

	s.mu.RLock()
	var local []T
	for _, rec := range s.records {
		if rec.OwnerID() == userID && !seen[rec.RecordID()] {
			local = append(local, rec)
		}
	}
	s.mu.RUnlock()

	// Map iteration order is random; pin the in-memory portion before the
	// stable sort so equal timestamps keep a deterministic order.
	sort.Slice(local, func(i, j int) bool {
		if !local[i].CreatedTime().Equal(local[j].CreatedTime()) {
			return local[i].CreatedTime().After(local[j].CreatedTime())
		}
		return local[i].RecordID() < local[j].RecordID()
	})
	merged = append(merged, local...)

	sort.SliceStable(merged, func(i, j int) bool {
		return merged[i].CreatedTime().After(merged[j].CreatedTime())
	})

	return merged
}
