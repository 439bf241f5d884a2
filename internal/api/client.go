package api

import (
	"context"
	"net/http"
	"net/url"
)

// Client exposes the API endpoints as typed methods over a Gateway.
type Client struct {
	gw *Gateway
}

func NewClient(gw *Gateway) *Client {
	return &Client{gw: gw}
}

func (c *Client) Login(ctx context.Context, username, password string) (*Identity, error) {
	body := map[string]string{"username": username, "password": password}
	var ident Identity
	if err := c.gw.do(ctx, http.MethodPost, "/api/auth/login", body, &ident); err != nil {
		return nil, err
	}
	return &ident, nil
}

func (c *Client) Register(ctx context.Context, username, password string) error {
	body := map[string]string{"username": username, "password": password}
	return c.gw.do(ctx, http.MethodPost, "/api/auth/register", body, nil)
}

func (c *Client) Profiles(ctx context.Context) ([]Profile, error) {
	var out []Profile
	if err := c.gw.do(ctx, http.MethodGet, "/api/profiles", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) Profile(ctx context.Context, studentID string) (*Profile, error) {
	var out Profile
	if err := c.gw.do(ctx, http.MethodGet, "/api/profile/"+url.PathEscape(studentID), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// SaveProfile upserts a profile. The server echoes the stored record back
// under "student" (with a generated id on first save).
func (c *Client) SaveProfile(ctx context.Context, p *Profile) (*Profile, error) {
	var out struct {
		Message string  `json:"message"`
		Student Profile `json:"student"`
	}
	if err := c.gw.do(ctx, http.MethodPost, "/api/profile", p, &out); err != nil {
		return nil, err
	}
	return &out.Student, nil
}

func (c *Client) DeleteProfile(ctx context.Context, studentID string) error {
	return c.gw.do(ctx, http.MethodDelete, "/api/profile/"+url.PathEscape(studentID), nil, nil)
}

// Predict scores a profile as-is. The payload must be a complete profile;
// the model endpoint does not accept partial patches.
func (c *Client) Predict(ctx context.Context, p *Profile) (*Prediction, error) {
	var out Prediction
	if err := c.gw.do(ctx, http.MethodPost, "/api/predict", p, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Simulate scores a hypothetical profile. Same shape rule as Predict.
func (c *Client) Simulate(ctx context.Context, p *Profile) (*SimulationResult, error) {
	var out SimulationResult
	if err := c.gw.do(ctx, http.MethodPost, "/api/simulate", p, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) SyncCodingStats(ctx context.Context, studentID string) (*SyncResult, error) {
	body := map[string]string{"student_id": studentID}
	var out SyncResult
	if err := c.gw.do(ctx, http.MethodPost, "/api/student/sync-coding-stats", body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) CreateStudent(ctx context.Context, username, password string) error {
	body := map[string]string{"username": username, "password": password}
	return c.gw.do(ctx, http.MethodPost, "/api/admin/create-student", body, nil)
}

func (c *Client) DailyChallenge(ctx context.Context) (*DailyChallenge, error) {
	var out DailyChallenge
	if err := c.gw.do(ctx, http.MethodGet, "/api/practice/daily", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
