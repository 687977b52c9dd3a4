package sync

import (
	"context"
	stdsync "sync"

	"listsync/feature/lists"

	"go.uber.org/zap"
)

// Service exposes snapshot exchange: building this device's snapshot payload
// and applying a peer's payload to the local store.
type Service struct {
	store      lists.Store
	reconciler *Reconciler
	logger     *zap.Logger

	mu   stdsync.Mutex
	busy bool
}

// NewService creates a new sync service.
func NewService(store lists.Store, logger *zap.Logger) *Service {
	return &Service{
		store:      store,
		reconciler: NewReconciler(store, logger),
		logger:     logger,
	}
}

// BuildSnapshotPayload projects the full local state (archived lists
// included) and encodes it within the transport budget.
func (s *Service) BuildSnapshotPayload(ctx context.Context) ([]byte, error) {
	all, err := s.store.Lists(ctx, true)
	if err != nil {
		return nil, err
	}
	return EncodeSnapshot(ProjectAll(all))
}

// ApplySnapshotPayload decodes and applies a peer's snapshot payload.
//
// Interleaved reconciliations against the same store would violate the
// membership invariants, so a second invocation while one is in flight is
// rejected with ErrSyncInProgress.
func (s *Service) ApplySnapshotPayload(ctx context.Context, payload []byte) (*Result, error) {
	if !s.acquire() {
		return nil, ErrSyncInProgress
	}
	defer s.release()

	snapshot, err := DecodeSnapshot(payload)
	if err != nil {
		return nil, err
	}
	return s.reconciler.ApplySnapshot(ctx, snapshot)
}

func (s *Service) acquire() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.busy {
		return false
	}
	s.busy = true
	return true
}

func (s *Service) release() {
	s.mu.Lock()
	s.busy = false
	s.mu.Unlock()
}
