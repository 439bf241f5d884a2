package engine

import (
	"encoding/json"
	"errors"
	"reflect"
	"testing"

	"careertrack/internal/api"
)

func baseProfile() *api.Profile {
	return &api.Profile{
		StudentID: "s-1",
		Name:      "Priya",
		AcademicDetails: api.AcademicDetails{
			CGPA:     8.2,
			Backlogs: 0,
		},
		Skills:   []string{"Python"},
		Projects: []json.RawMessage{json.RawMessage(`{"title":"Portfolio"}`)},
		CodingHabits: api.CodingHabits{
			LeetCodeProblems:   10,
			LeetCodeEasy:       6,
			LeetCodeMedium:     3,
			LeetCodeHard:       1,
			HackerRankProblems: 4,
			GitHubStreak:       2,
		},
		LeetCodeUsername: "priya_lc",
	}
}

func TestBuildHypotheticalScenario(t *testing.T) {
	hyp := BuildHypothetical(baseProfile(), Delta{
		AddSkills:   "Go, Rust",
		AddProjects: 2,
		AddProblems: 30,
	})

	wantSkills := []string{"Python", "Go", "Rust"}
	if !reflect.DeepEqual(hyp.Skills, wantSkills) {
		t.Fatalf("skills = %v, want %v", hyp.Skills, wantSkills)
	}
	if len(hyp.Projects) != 3 {
		t.Fatalf("projects len = %d, want 3", len(hyp.Projects))
	}
	if hyp.CodingHabits.LeetCodeProblems != 40 {
		t.Fatalf("leetcode_problems = %d, want 40", hyp.CodingHabits.LeetCodeProblems)
	}
	// Every other habit field carries over unchanged.
	if hyp.CodingHabits.LeetCodeEasy != 6 || hyp.CodingHabits.HackerRankProblems != 4 || hyp.CodingHabits.GitHubStreak != 2 {
		t.Fatalf("unrelated habit fields changed: %+v", hyp.CodingHabits)
	}
	if hyp.StudentID != "s-1" || hyp.Name != "Priya" || hyp.AcademicDetails.CGPA != 8.2 {
		t.Fatalf("identity fields changed: %+v", hyp)
	}
}

func TestBuildHypotheticalEmptySkillsAddsNothing(t *testing.T) {
	for _, input := range []string{"", "  ", ",", " , ,, "} {
		hyp := BuildHypothetical(baseProfile(), Delta{AddSkills: input})
		if !reflect.DeepEqual(hyp.Skills, []string{"Python"}) {
			t.Fatalf("AddSkills=%q: skills = %v, want unchanged", input, hyp.Skills)
		}
	}
}

func TestBuildHypotheticalKeepsDuplicateSkills(t *testing.T) {
	hyp := BuildHypothetical(baseProfile(), Delta{AddSkills: "Python, Python"})
	want := []string{"Python", "Python", "Python"}
	if !reflect.DeepEqual(hyp.Skills, want) {
		t.Fatalf("skills = %v, want %v (duplicates preserved)", hyp.Skills, want)
	}
}

func TestBuildHypotheticalDoesNotMutateBase(t *testing.T) {
	base := baseProfile()
	_ = BuildHypothetical(base, Delta{AddSkills: "Go", AddProjects: 5, AddProblems: 100})

	if !reflect.DeepEqual(base, baseProfile()) {
		t.Fatalf("base profile mutated: %+v", base)
	}
}

func TestBuildHypotheticalZeroDeltaIsValid(t *testing.T) {
	base := baseProfile()
	hyp := BuildHypothetical(base, Delta{})
	if !reflect.DeepEqual(hyp, base) {
		t.Fatalf("no-op hypothetical differs from base:\n got %+v\nwant %+v", hyp, base)
	}
}

func TestParseDelta(t *testing.T) {
	d, err := ParseDelta("Go, Rust", "2", "30")
	if err != nil {
		t.Fatalf("ParseDelta: %v", err)
	}
	if d.AddProjects != 2 || d.AddProblems != 30 || d.AddSkills != "Go, Rust" {
		t.Fatalf("delta = %+v", d)
	}

	// Empty counts coerce to 0.
	d, err = ParseDelta("", "", "  ")
	if err != nil {
		t.Fatalf("ParseDelta empty: %v", err)
	}
	if d.AddProjects != 0 || d.AddProblems != 0 {
		t.Fatalf("empty delta = %+v, want zeros", d)
	}

	for _, bad := range []string{"abc", "-1", "2.5", "1e3", "NaN"} {
		if _, err := ParseDelta("", bad, "0"); err == nil {
			t.Fatalf("ParseDelta(projects=%q): expected error", bad)
		} else {
			var inv InvalidInputError
			if !errors.As(err, &inv) {
				t.Fatalf("ParseDelta(projects=%q): error %v is not InvalidInputError", bad, err)
			}
		}
	}
}

func TestCompareOutcomeScenario(t *testing.T) {
	initial := &api.Prediction{PlacementProbability: 0.40}
	simulated := &api.SimulationResult{
		SimulatedProbability: 0.55,
		Improvements:         []string{"More projects show applied skill"},
	}

	out := CompareOutcome(initial, simulated)
	if out.DeltaPercent != 15 {
		t.Fatalf("DeltaPercent = %d, want 15", out.DeltaPercent)
	}
	if len(out.Improvements) != 1 {
		t.Fatalf("Improvements = %v", out.Improvements)
	}
}

func TestCompareOutcomeAntiSymmetric(t *testing.T) {
	cases := []struct{ a, b float64 }{
		{0.40, 0.55},
		{0.80, 0.10},
		{0.33, 0.33},
		{0.0, 1.0},
	}
	for _, c := range cases {
		fwd := CompareOutcome(
			&api.Prediction{PlacementProbability: c.a},
			&api.SimulationResult{SimulatedProbability: c.b},
		)
		rev := CompareOutcome(
			&api.Prediction{PlacementProbability: c.b},
			&api.SimulationResult{SimulatedProbability: c.a},
		)
		if fwd.DeltaPercent != -rev.DeltaPercent {
			t.Fatalf("%.2f→%.2f: %d vs %d, not anti-symmetric", c.a, c.b, fwd.DeltaPercent, rev.DeltaPercent)
		}
	}
}

func TestCompareOutcomePreservesNegativeSign(t *testing.T) {
	out := CompareOutcome(
		&api.Prediction{PlacementProbability: 0.60},
		&api.SimulationResult{SimulatedProbability: 0.45},
	)
	if out.DeltaPercent != -15 {
		t.Fatalf("DeltaPercent = %d, want -15", out.DeltaPercent)
	}
}

func TestSplitSkills(t *testing.T) {
	got := SplitSkills(" React,  Docker ,,System Design, ")
	want := []string{"React", "Docker", "System Design"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("SplitSkills = %v, want %v", got, want)
	}
}
