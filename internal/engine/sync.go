package engine

import (
	"context"
	"fmt"

	"careertrack/internal/api"
)

// SyncOutcome is the result of a completed two-phase sync: the server's
// transient analysis plus the refreshed profile that replaces the caller's
// working copy.
type SyncOutcome struct {
	Result  *api.SyncResult
	Profile *api.Profile
}

// SyncInFlight reports whether a sync is currently running. Callers use it
// to disable the triggering control; the orchestrator itself stays correct
// if invoked twice, since both phases are idempotent per student id.
func (s *Service) SyncInFlight() bool {
	return s.syncing.Load()
}

// SyncCodingStats runs the two-phase sync workflow.
//
// Phase 1 asks the server to pull fresh platform stats and compute the
// analysis. Phase 2 refetches the profile: the sync response is not
// guaranteed to carry the full updated profile shape, so the refetch is the
// single source of truth for persisted fields. If phase 1 fails, phase 2
// never runs and the caller's held profile stays untouched.
func (s *Service) SyncCodingStats(ctx context.Context, studentID string) (*SyncOutcome, error) {
	if studentID == "" {
		return nil, ErrNoProfile
	}

	s.syncing.Store(true)
	defer s.syncing.Store(false)

	result, err := s.backend.SyncCodingStats(ctx, studentID)
	if err != nil {
		return nil, err
	}

	fresh, err := s.backend.Profile(ctx, studentID)
	if err != nil {
		return nil, fmt.Errorf("stats synced but profile refresh failed: %w", err)
	}

	return &SyncOutcome{Result: result, Profile: fresh}, nil
}

// LeetCodeWindow extracts the before/after leetcode solved counts from a
// sync result, when the server reported them.
func LeetCodeWindow(res *api.SyncResult) (api.StatWindow, bool) {
	if res == nil || res.StatsSummary == nil {
		return api.StatWindow{}, false
	}
	w, ok := res.StatsSummary["leetcode"]
	return w, ok
}
