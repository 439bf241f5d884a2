package api

import "encoding/json"

// Roles issued by the auth endpoints.
const (
	RoleAdmin   = "admin"
	RoleStudent = "student"
)

// Identity is the authenticated principal returned by POST /api/auth/login.
// The token is opaque to the client; only the server verifies it.
type Identity struct {
	Token     string `json:"token"`
	Username  string `json:"username"`
	Role      string `json:"role"`
	StudentID string `json:"student_id,omitempty"`
}

type AcademicDetails struct {
	CGPA     float64 `json:"cgpa"`
	Backlogs int     `json:"backlogs"`
}

type CodingHabits struct {
	LeetCodeProblems   int `json:"leetcode_problems"`
	LeetCodeEasy       int `json:"leetcode_easy"`
	LeetCodeMedium     int `json:"leetcode_medium"`
	LeetCodeHard       int `json:"leetcode_hard"`
	HackerRankProblems int `json:"hackerrank_problems"`
	HackerRankBadges   int `json:"hackerrank_badges"`
	GitHubStreak       int `json:"github_streak"`
}

// HistoryEntry is one append-only snapshot of synced platform stats.
// Stats are kept raw; the client only reads timestamps.
type HistoryEntry struct {
	Date      string          `json:"date"`
	Timestamp string          `json:"timestamp"`
	Stats     json.RawMessage `json:"stats,omitempty"`
}

// Profile is a student's tracked record, owned by the backing store. The
// client never mutates one in place; it derives candidate copies via Clone.
type Profile struct {
	StudentID       string          `json:"student_id"`
	Name            string          `json:"name"`
	Email           string          `json:"email,omitempty"`
	AcademicDetails AcademicDetails `json:"academic_details"`
	Skills          []string        `json:"skills"`
	// Projects are opaque records; only the count is a scoring input.
	Projects           []json.RawMessage `json:"projects"`
	CodingHabits       CodingHabits      `json:"coding_habits"`
	LeetCodeUsername   string            `json:"leetcode_username,omitempty"`
	HackerRankUsername string            `json:"hackerrank_username,omitempty"`
	CodingHistory      []HistoryEntry    `json:"coding_history,omitempty"`
	CreatedAt          string            `json:"created_at,omitempty"`
}

// Clone returns a deep copy safe to mutate independently of p.
func (p *Profile) Clone() *Profile {
	if p == nil {
		return nil
	}
	out := *p
	out.Skills = append([]string(nil), p.Skills...)
	if p.Projects != nil {
		out.Projects = make([]json.RawMessage, len(p.Projects))
		for i, raw := range p.Projects {
			out.Projects[i] = append(json.RawMessage(nil), raw...)
		}
	}
	if p.CodingHistory != nil {
		out.CodingHistory = make([]HistoryEntry, len(p.CodingHistory))
		for i, e := range p.CodingHistory {
			e.Stats = append(json.RawMessage(nil), e.Stats...)
			out.CodingHistory[i] = e
		}
	}
	return &out
}

// HasPlatformLinks reports whether any coding platform username is set.
func (p *Profile) HasPlatformLinks() bool {
	return p != nil && (p.LeetCodeUsername != "" || p.HackerRankUsername != "")
}

// Prediction is the model's scoring for a profile as-is. Transient,
// recomputed per profile state, never persisted by the client.
type Prediction struct {
	ReadinessScore       float64  `json:"readiness_score"`
	PlacementProbability float64  `json:"placement_probability"`
	RiskLevel            string   `json:"risk_level"`
	ReadinessDetails     []string `json:"readiness_details,omitempty"`
	MLMessage            string   `json:"ml_message,omitempty"`
}

// SimulationResult is the model's scoring for a hypothetical profile.
type SimulationResult struct {
	SimulatedScore       float64  `json:"simulated_score"`
	SimulatedProbability float64  `json:"simulated_probability"`
	Improvements         []string `json:"improvements"`
	RiskLevel            string   `json:"risk_level,omitempty"`
}

// StatWindow is a per-platform before/after solved count.
type StatWindow struct {
	Old int `json:"old"`
	New int `json:"new"`
}

type PlatformDelta struct {
	Daily  int `json:"daily"`
	Weekly int `json:"weekly"`
}

// Analysis is the server-derived activity breakdown for a sync. Session
// transient: only the refreshed profile carries durable state.
type Analysis struct {
	DailyDelta  int           `json:"daily_delta"`
	WeeklyDelta int           `json:"weekly_delta"`
	LeetCode    PlatformDelta `json:"leetcode"`
	HackerRank  PlatformDelta `json:"hackerrank"`
	Streak      int           `json:"streak"`
}

type SyncResult struct {
	Message           string                `json:"message"`
	StatsSummary      map[string]StatWindow `json:"stats_summary"`
	Analysis          Analysis              `json:"analysis"`
	Recommendations   []string              `json:"recommendations"`
	UpdatedHistoryLen int                   `json:"updated_history_len,omitempty"`
}

type DailyChallenge struct {
	Title      string `json:"title"`
	Difficulty string `json:"difficulty"`
	Link       string `json:"link"`
	Date       string `json:"date"`
}
