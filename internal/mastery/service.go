package mastery

import (
	"context"
	"fmt"
	"time"
)

// Store loads and saves mastery records. A missing record is (nil, nil).
type Store interface {
	Get(ctx context.Context, userID, vocabularyID string) (*Record, error)
	Upsert(ctx context.Context, r Record) error
}

// Service applies graded answers for one user through a Policy and persists
// the results.
type Service struct {
	store  Store
	policy Policy
	userID string
}

// NewService creates a mastery service. The policy must be chosen by the
// caller.
func NewService(store Store, policy Policy, userID string) *Service {
	return &Service{store: store, policy: policy, userID: userID}
}

// Policy returns the policy in use.
func (s *Service) Policy() Policy { return s.policy }

// RecordAnswer loads the prior record for the word, computes the next one,
// and saves it. The returned LevelChange is nil when the level did not move.
func (s *Service) RecordAnswer(ctx context.Context, vocabularyID, word string, correct bool, now time.Time) (Record, *LevelChange, error) {
	prior, err := s.store.Get(ctx, s.userID, vocabularyID)
	if err != nil {
		return Record{}, nil, fmt.Errorf("load mastery for %s: %w", vocabularyID, err)
	}

	next := s.policy.ComputeNext(prior, correct, now)
	next.UserID = s.userID
	next.VocabularyID = vocabularyID

	if err := s.store.Upsert(ctx, next); err != nil {
		return Record{}, nil, fmt.Errorf("save mastery for %s: %w", vocabularyID, err)
	}
	return next, changeFor(prior, next, word), nil
}

// Get returns the current record for a word, or nil if it has none.
func (s *Service) Get(ctx context.Context, vocabularyID string) (*Record, error) {
	return s.store.Get(ctx, s.userID, vocabularyID)
}
