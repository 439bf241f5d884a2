package engine

import (
	"context"
	"encoding/json"
	"math"
	"strconv"
	"strings"

	"careertrack/internal/api"
)

// Delta is the user's hypothetical change set for a what-if run.
type Delta struct {
	AddSkills   string
	AddProjects int
	AddProblems int
}

// ParseDelta coerces raw user input into a Delta. Empty counts default to 0;
// anything that is not a non-negative whole number is rejected here, before
// a request payload exists to poison.
func ParseDelta(skills, projects, problems string) (Delta, error) {
	addProjects, err := parseCount("project count", projects)
	if err != nil {
		return Delta{}, err
	}
	addProblems, err := parseCount("problem count", problems)
	if err != nil {
		return Delta{}, err
	}
	return Delta{AddSkills: skills, AddProjects: addProjects, AddProblems: addProblems}, nil
}

func parseCount(field, raw string) (int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return 0, InvalidInputError{Field: field, Value: raw}
	}
	return n, nil
}

// SplitSkills splits a comma-separated skill list, trimming whitespace and
// dropping empty tokens. Duplicates survive: the downstream scorer may
// weight repeats, so the union is a sequence, not a set.
func SplitSkills(s string) []string {
	var out []string
	for _, tok := range strings.Split(s, ",") {
		tok = strings.TrimSpace(tok)
		if tok != "" {
			out = append(out, tok)
		}
	}
	return out
}

// BuildHypothetical derives a complete candidate profile from base plus the
// delta. The result has the same shape as a persisted profile: the model
// endpoints accept only full profiles, never patches. base is not mutated.
func BuildHypothetical(base *api.Profile, d Delta) *api.Profile {
	hyp := base.Clone()
	hyp.Skills = append(hyp.Skills, SplitSkills(d.AddSkills)...)
	// Project contents are irrelevant placeholders; only count is scored.
	for i := 0; i < d.AddProjects; i++ {
		hyp.Projects = append(hyp.Projects, json.RawMessage(`{}`))
	}
	hyp.CodingHabits.LeetCodeProblems += d.AddProblems
	return hyp
}

// Outcome is the interpreted comparison between the baseline prediction and
// a simulation run.
type Outcome struct {
	// DeltaPercent is the rounded percentage-point change in placement
	// probability. Sign preserved: callers must not present a negative
	// delta as an achievement.
	DeltaPercent int
	Improvements []string
}

func CompareOutcome(initial *api.Prediction, simulated *api.SimulationResult) Outcome {
	diff := (simulated.SimulatedProbability - initial.PlacementProbability) * 100
	return Outcome{
		DeltaPercent: int(math.Round(diff)),
		Improvements: simulated.Improvements,
	}
}

// SimulationRun is everything a what-if view renders.
type SimulationRun struct {
	Base      *api.Profile
	Initial   *api.Prediction
	Simulated *api.SimulationResult
	Outcome   Outcome
}

// RunSimulation executes the full what-if pipeline: resolve the base
// profile, score it, build the hypothetical, score that, and interpret the
// comparison. Each step runs only after the previous one resolved; a failure
// suspends the rest of the pipeline for this invocation.
func (s *Service) RunSimulation(ctx context.Context, routeID string, ident *api.Identity, d Delta) (*SimulationRun, error) {
	base, err := s.ResolveProfile(ctx, routeID, ident)
	if err != nil {
		return nil, err
	}
	if base == nil {
		return nil, ErrNoProfile
	}

	initial, err := s.backend.Predict(ctx, base)
	if err != nil {
		return nil, err
	}

	simulated, err := s.backend.Simulate(ctx, BuildHypothetical(base, d))
	if err != nil {
		return nil, err
	}

	return &SimulationRun{
		Base:      base,
		Initial:   initial,
		Simulated: simulated,
		Outcome:   CompareOutcome(initial, simulated),
	}, nil
}
