// Package engine drives the client-side workflows: resolving which profile a
// view operates on, building what-if hypotheticals, the two-phase coding
// stats sync, and roster management. It talks to the API through the Backend
// seam so tests can substitute a fake.
package engine

import (
	"context"
	"sync/atomic"

	"careertrack/internal/api"
)

// Backend is the slice of the API client the engine depends on.
// *api.Client satisfies it.
type Backend interface {
	Profiles(ctx context.Context) ([]api.Profile, error)
	Profile(ctx context.Context, studentID string) (*api.Profile, error)
	SaveProfile(ctx context.Context, p *api.Profile) (*api.Profile, error)
	DeleteProfile(ctx context.Context, studentID string) error
	Predict(ctx context.Context, p *api.Profile) (*api.Prediction, error)
	Simulate(ctx context.Context, p *api.Profile) (*api.SimulationResult, error)
	SyncCodingStats(ctx context.Context, studentID string) (*api.SyncResult, error)
	CreateStudent(ctx context.Context, username, password string) error
	DailyChallenge(ctx context.Context) (*api.DailyChallenge, error)
}

type Service struct {
	backend Backend
	syncing atomic.Bool
}

func NewService(backend Backend) *Service {
	return &Service{backend: backend}
}

// Overview is a resolved profile plus its current prediction, the data a
// dashboard renders.
type Overview struct {
	Profile    *api.Profile
	Prediction *api.Prediction
}

// Overview resolves the target profile and scores it. A nil Profile with a
// nil error is the valid empty state (no profile exists yet). A prediction
// failure still returns the profile so the caller can render it and warn.
func (s *Service) Overview(ctx context.Context, routeID string, ident *api.Identity) (*Overview, error) {
	p, err := s.ResolveProfile(ctx, routeID, ident)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return &Overview{}, nil
	}
	pred, err := s.backend.Predict(ctx, p)
	if err != nil {
		return &Overview{Profile: p}, err
	}
	return &Overview{Profile: p, Prediction: pred}, nil
}

// SaveProfile upserts a profile and returns the stored record.
func (s *Service) SaveProfile(ctx context.Context, p *api.Profile) (*api.Profile, error) {
	return s.backend.SaveProfile(ctx, p)
}

func (s *Service) DailyChallenge(ctx context.Context) (*api.DailyChallenge, error) {
	return s.backend.DailyChallenge(ctx)
}
