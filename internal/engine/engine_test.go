package engine

import (
	"context"
	"errors"
	"testing"

	"careertrack/internal/api"
)

// fakeBackend records calls and delegates to per-method funcs. A nil func
// means the call was not expected.
type fakeBackend struct {
	t     *testing.T
	calls []string

	profilesFn func(ctx context.Context) ([]api.Profile, error)
	profileFn  func(ctx context.Context, id string) (*api.Profile, error)
	saveFn     func(ctx context.Context, p *api.Profile) (*api.Profile, error)
	deleteFn   func(ctx context.Context, id string) error
	predictFn  func(ctx context.Context, p *api.Profile) (*api.Prediction, error)
	simulateFn func(ctx context.Context, p *api.Profile) (*api.SimulationResult, error)
	syncFn     func(ctx context.Context, id string) (*api.SyncResult, error)
	createFn   func(ctx context.Context, username, password string) error
	dailyFn    func(ctx context.Context) (*api.DailyChallenge, error)
}

func (f *fakeBackend) Profiles(ctx context.Context) ([]api.Profile, error) {
	f.calls = append(f.calls, "profiles")
	if f.profilesFn == nil {
		f.t.Fatal("unexpected Profiles call")
	}
	return f.profilesFn(ctx)
}

func (f *fakeBackend) Profile(ctx context.Context, id string) (*api.Profile, error) {
	f.calls = append(f.calls, "profile:"+id)
	if f.profileFn == nil {
		f.t.Fatal("unexpected Profile call")
	}
	return f.profileFn(ctx, id)
}

func (f *fakeBackend) SaveProfile(ctx context.Context, p *api.Profile) (*api.Profile, error) {
	f.calls = append(f.calls, "save")
	if f.saveFn == nil {
		f.t.Fatal("unexpected SaveProfile call")
	}
	return f.saveFn(ctx, p)
}

func (f *fakeBackend) DeleteProfile(ctx context.Context, id string) error {
	f.calls = append(f.calls, "delete:"+id)
	if f.deleteFn == nil {
		f.t.Fatal("unexpected DeleteProfile call")
	}
	return f.deleteFn(ctx, id)
}

func (f *fakeBackend) Predict(ctx context.Context, p *api.Profile) (*api.Prediction, error) {
	f.calls = append(f.calls, "predict")
	if f.predictFn == nil {
		f.t.Fatal("unexpected Predict call")
	}
	return f.predictFn(ctx, p)
}

func (f *fakeBackend) Simulate(ctx context.Context, p *api.Profile) (*api.SimulationResult, error) {
	f.calls = append(f.calls, "simulate")
	if f.simulateFn == nil {
		f.t.Fatal("unexpected Simulate call")
	}
	return f.simulateFn(ctx, p)
}

func (f *fakeBackend) SyncCodingStats(ctx context.Context, id string) (*api.SyncResult, error) {
	f.calls = append(f.calls, "sync:"+id)
	if f.syncFn == nil {
		f.t.Fatal("unexpected SyncCodingStats call")
	}
	return f.syncFn(ctx, id)
}

func (f *fakeBackend) CreateStudent(ctx context.Context, username, password string) error {
	f.calls = append(f.calls, "create:"+username)
	if f.createFn == nil {
		f.t.Fatal("unexpected CreateStudent call")
	}
	return f.createFn(ctx, username, password)
}

func (f *fakeBackend) DailyChallenge(ctx context.Context) (*api.DailyChallenge, error) {
	f.calls = append(f.calls, "daily")
	if f.dailyFn == nil {
		f.t.Fatal("unexpected DailyChallenge call")
	}
	return f.dailyFn(ctx)
}

func rosterOf(ids ...string) []api.Profile {
	out := make([]api.Profile, len(ids))
	for i, id := range ids {
		out[i] = api.Profile{StudentID: id, Name: "Student " + id}
	}
	return out
}

func TestResolveDirectFetch(t *testing.T) {
	fb := &fakeBackend{t: t}
	fb.profileFn = func(ctx context.Context, id string) (*api.Profile, error) {
		return &api.Profile{StudentID: id, Name: "Direct"}, nil
	}
	svc := NewService(fb)

	p, err := svc.ResolveProfile(context.Background(), "s-2", nil)
	if err != nil {
		t.Fatalf("ResolveProfile: %v", err)
	}
	if p.StudentID != "s-2" {
		t.Fatalf("resolved %q, want s-2", p.StudentID)
	}
	for _, c := range fb.calls {
		if c == "profiles" {
			t.Fatal("roster fetched even though direct fetch succeeded")
		}
	}
}

func TestResolveFallsBackToRosterMatch(t *testing.T) {
	fb := &fakeBackend{t: t}
	fb.profileFn = func(ctx context.Context, id string) (*api.Profile, error) {
		return nil, &api.Error{Status: 404, Message: "Student not found"}
	}
	fb.profilesFn = func(ctx context.Context) ([]api.Profile, error) {
		return rosterOf("s-1", "s-2", "s-3"), nil
	}
	svc := NewService(fb)

	p, err := svc.ResolveProfile(context.Background(), "s-2", nil)
	if err != nil {
		t.Fatalf("ResolveProfile: %v", err)
	}
	if p.StudentID != "s-2" {
		t.Fatalf("resolved %q, want roster match s-2", p.StudentID)
	}
}

func TestResolveUnmatchedIDReturnsFirstEntry(t *testing.T) {
	fb := &fakeBackend{t: t}
	fb.profileFn = func(ctx context.Context, id string) (*api.Profile, error) {
		return nil, errors.New("boom")
	}
	fb.profilesFn = func(ctx context.Context) ([]api.Profile, error) {
		return rosterOf("s-1", "s-2", "s-3"), nil
	}
	svc := NewService(fb)

	p, err := svc.ResolveProfile(context.Background(), "s-99", nil)
	if err != nil {
		t.Fatalf("ResolveProfile: %v", err)
	}
	if p == nil || p.StudentID != "s-1" {
		t.Fatalf("resolved %+v, want first roster entry s-1", p)
	}
}

func TestResolveMyProfileUsesSessionStudentID(t *testing.T) {
	fb := &fakeBackend{t: t}
	fb.profileFn = func(ctx context.Context, id string) (*api.Profile, error) {
		if id != "s-7" {
			t.Fatalf("fetched %q, want session student id s-7", id)
		}
		return &api.Profile{StudentID: id}, nil
	}
	svc := NewService(fb)

	ident := &api.Identity{Username: "priya", Role: api.RoleStudent, StudentID: "s-7"}
	p, err := svc.ResolveProfile(context.Background(), "", ident)
	if err != nil {
		t.Fatalf("ResolveProfile: %v", err)
	}
	if p.StudentID != "s-7" {
		t.Fatalf("resolved %q, want s-7", p.StudentID)
	}
}

func TestResolveWithoutTargetTakesFirstEntry(t *testing.T) {
	fb := &fakeBackend{t: t}
	fb.profilesFn = func(ctx context.Context) ([]api.Profile, error) {
		return rosterOf("s-a", "s-b"), nil
	}
	svc := NewService(fb)

	p, err := svc.ResolveProfile(context.Background(), "", &api.Identity{Username: "admin", Role: api.RoleAdmin})
	if err != nil {
		t.Fatalf("ResolveProfile: %v", err)
	}
	if p.StudentID != "s-a" {
		t.Fatalf("resolved %q, want s-a", p.StudentID)
	}
}

func TestResolveEmptyRosterIsValidEmptyState(t *testing.T) {
	fb := &fakeBackend{t: t}
	fb.profilesFn = func(ctx context.Context) ([]api.Profile, error) {
		return nil, nil
	}
	svc := NewService(fb)

	p, err := svc.ResolveProfile(context.Background(), "", nil)
	if err != nil {
		t.Fatalf("empty roster must not be an error, got %v", err)
	}
	if p != nil {
		t.Fatalf("resolved %+v, want nil", p)
	}
}

func TestSyncPhaseOneFailureSkipsRefetch(t *testing.T) {
	fb := &fakeBackend{t: t}
	fb.syncFn = func(ctx context.Context, id string) (*api.SyncResult, error) {
		return nil, &api.Error{Status: 502, Message: "scraper unavailable"}
	}
	svc := NewService(fb)

	held := baseProfile()
	out, err := svc.SyncCodingStats(context.Background(), held.StudentID)
	if err == nil {
		t.Fatal("expected phase 1 error")
	}
	if out != nil {
		t.Fatalf("outcome = %+v, want nil (no partial update)", out)
	}
	for _, c := range fb.calls {
		if c == "profile:"+held.StudentID {
			t.Fatal("profile refetch issued after phase 1 failure")
		}
	}
}

func TestSyncRefreshesProfileAfterSuccess(t *testing.T) {
	fb := &fakeBackend{t: t}
	fb.syncFn = func(ctx context.Context, id string) (*api.SyncResult, error) {
		return &api.SyncResult{
			StatsSummary:    map[string]api.StatWindow{"leetcode": {Old: 10, New: 25}},
			Analysis:        api.Analysis{DailyDelta: 15, Streak: 3},
			Recommendations: []string{"Great consistency today!"},
		}, nil
	}
	fb.profileFn = func(ctx context.Context, id string) (*api.Profile, error) {
		p := baseProfile()
		p.CodingHabits.LeetCodeProblems = 25
		return p, nil
	}
	svc := NewService(fb)

	out, err := svc.SyncCodingStats(context.Background(), "s-1")
	if err != nil {
		t.Fatalf("SyncCodingStats: %v", err)
	}
	if out.Profile.CodingHabits.LeetCodeProblems != 25 {
		t.Fatalf("refreshed profile not returned: %+v", out.Profile.CodingHabits)
	}
	w, ok := LeetCodeWindow(out.Result)
	if !ok || w.Old != 10 || w.New != 25 {
		t.Fatalf("leetcode window = %+v ok=%v", w, ok)
	}

	// Phase order: sync strictly before refetch.
	if len(fb.calls) != 2 || fb.calls[0] != "sync:s-1" || fb.calls[1] != "profile:s-1" {
		t.Fatalf("calls = %v", fb.calls)
	}
}

func TestSyncWithoutStudentID(t *testing.T) {
	svc := NewService(&fakeBackend{t: t})
	if _, err := svc.SyncCodingStats(context.Background(), ""); !errors.Is(err, ErrNoProfile) {
		t.Fatalf("err = %v, want ErrNoProfile", err)
	}
}

func TestRunSimulationStopsAfterPredictFailure(t *testing.T) {
	fb := &fakeBackend{t: t}
	fb.profileFn = func(ctx context.Context, id string) (*api.Profile, error) {
		return baseProfile(), nil
	}
	fb.predictFn = func(ctx context.Context, p *api.Profile) (*api.Prediction, error) {
		return nil, errors.New("model offline")
	}
	svc := NewService(fb)

	_, err := svc.RunSimulation(context.Background(), "s-1", nil, Delta{AddProblems: 10})
	if err == nil {
		t.Fatal("expected predict error")
	}
	for _, c := range fb.calls {
		if c == "simulate" {
			t.Fatal("simulate issued after predict failed")
		}
	}
}

func TestRunSimulationSendsCompleteHypothetical(t *testing.T) {
	fb := &fakeBackend{t: t}
	fb.profileFn = func(ctx context.Context, id string) (*api.Profile, error) {
		return baseProfile(), nil
	}
	fb.predictFn = func(ctx context.Context, p *api.Profile) (*api.Prediction, error) {
		return &api.Prediction{PlacementProbability: 0.40, RiskLevel: "Medium"}, nil
	}
	fb.simulateFn = func(ctx context.Context, p *api.Profile) (*api.SimulationResult, error) {
		// The payload must be a full profile, not a patch.
		if p.StudentID != "s-1" || p.Name != "Priya" || p.LeetCodeUsername != "priya_lc" {
			t.Fatalf("hypothetical is not a complete profile: %+v", p)
		}
		if p.CodingHabits.LeetCodeProblems != 40 {
			t.Fatalf("leetcode_problems = %d, want 40", p.CodingHabits.LeetCodeProblems)
		}
		return &api.SimulationResult{SimulatedProbability: 0.55, Improvements: []string{"x"}}, nil
	}
	svc := NewService(fb)

	run, err := svc.RunSimulation(context.Background(), "s-1", nil, Delta{AddProblems: 30})
	if err != nil {
		t.Fatalf("RunSimulation: %v", err)
	}
	if run.Outcome.DeltaPercent != 15 {
		t.Fatalf("DeltaPercent = %d, want 15", run.Outcome.DeltaPercent)
	}
}

func TestRunSimulationNoProfile(t *testing.T) {
	fb := &fakeBackend{t: t}
	fb.profilesFn = func(ctx context.Context) ([]api.Profile, error) { return nil, nil }
	svc := NewService(fb)

	if _, err := svc.RunSimulation(context.Background(), "", nil, Delta{}); !errors.Is(err, ErrNoProfile) {
		t.Fatalf("err = %v, want ErrNoProfile", err)
	}
}

func TestRemoveProfileRelists(t *testing.T) {
	fb := &fakeBackend{t: t}
	fb.deleteFn = func(ctx context.Context, id string) error { return nil }
	fb.profilesFn = func(ctx context.Context) ([]api.Profile, error) {
		return rosterOf("s-1", "s-3"), nil
	}
	svc := NewService(fb)

	roster, err := svc.RemoveProfile(context.Background(), "s-2")
	if err != nil {
		t.Fatalf("RemoveProfile: %v", err)
	}
	if len(roster) != 2 {
		t.Fatalf("roster len = %d, want 2", len(roster))
	}
	if fb.calls[0] != "delete:s-2" || fb.calls[1] != "profiles" {
		t.Fatalf("calls = %v, want delete then relist", fb.calls)
	}
}

func TestRemoveProfileDeleteFailureSkipsRelist(t *testing.T) {
	fb := &fakeBackend{t: t}
	fb.deleteFn = func(ctx context.Context, id string) error {
		return &api.Error{Status: 403, Message: "Unauthorized"}
	}
	svc := NewService(fb)

	if _, err := svc.RemoveProfile(context.Background(), "s-2"); err == nil {
		t.Fatal("expected delete error")
	}
	for _, c := range fb.calls {
		if c == "profiles" {
			t.Fatal("relist issued after failed delete")
		}
	}
}

func TestCreateStudentValidation(t *testing.T) {
	svc := NewService(&fakeBackend{t: t})
	if err := svc.CreateStudent(context.Background(), "", "pw"); err == nil {
		t.Fatal("expected error for empty username")
	}
	if err := svc.CreateStudent(context.Background(), "user", ""); err == nil {
		t.Fatal("expected error for empty password")
	}
}

func TestOverviewToleratesPredictionFailure(t *testing.T) {
	fb := &fakeBackend{t: t}
	fb.profileFn = func(ctx context.Context, id string) (*api.Profile, error) {
		return baseProfile(), nil
	}
	fb.predictFn = func(ctx context.Context, p *api.Profile) (*api.Prediction, error) {
		return nil, errors.New("model offline")
	}
	svc := NewService(fb)

	ov, err := svc.Overview(context.Background(), "s-1", nil)
	if err == nil {
		t.Fatal("expected prediction error to surface")
	}
	if ov == nil || ov.Profile == nil {
		t.Fatal("profile must still be returned so the view can render it")
	}
	if ov.Prediction != nil {
		t.Fatalf("prediction = %+v, want nil", ov.Prediction)
	}
}
