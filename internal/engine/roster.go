package engine

import (
	"context"
	"errors"
	"fmt"

	"careertrack/internal/api"
)

// Roster lists all profiles the session can see. Scoping to self for
// student sessions is enforced server-side; the client does not filter.
func (s *Service) Roster(ctx context.Context) ([]api.Profile, error) {
	return s.backend.Profiles(ctx)
}

// CreateStudent registers a new student account. Hiding the control from
// non-admin sessions is presentation only; the server re-checks the role on
// every call, and must, since the client is never the enforcement point.
func (s *Service) CreateStudent(ctx context.Context, username, password string) error {
	if username == "" || password == "" {
		return errors.New("username and password are required")
	}
	return s.backend.CreateStudent(ctx, username, password)
}

// RemoveProfile deletes a profile and returns a fresh roster. Re-listing
// after the delete keeps the view consistent with concurrent admin edits
// instead of splicing locally. Interactive confirmation happens at the call
// site, before this runs.
func (s *Service) RemoveProfile(ctx context.Context, studentID string) ([]api.Profile, error) {
	if err := s.backend.DeleteProfile(ctx, studentID); err != nil {
		return nil, err
	}
	roster, err := s.backend.Profiles(ctx)
	if err != nil {
		return nil, fmt.Errorf("profile deleted but roster refresh failed: %w", err)
	}
	return roster, nil
}
