package gateway

import (
	"context"
	"net/http"

	"github.com/sideduran/homeboard/internal/domain"
)

// SecurityStatus fetches the site-wide arm state.
func (c *Client) SecurityStatus(ctx context.Context) (domain.SecurityStatus, error) {
	var out struct {
		Status domain.SecurityStatus `json:"status"`
	}
	if err := c.do(ctx, "get security status", "", http.MethodGet, "/api/security/status", nil, &out); err != nil {
		return "", err
	}
	return out.Status, nil
}

// Arm arms the security system.
func (c *Client) Arm(ctx context.Context) error {
	return c.do(ctx, "arm security", "", http.MethodPost, "/api/security/arm", nil, nil)
}

// Disarm disarms the security system.
func (c *Client) Disarm(ctx context.Context) error {
	return c.do(ctx, "disarm security", "", http.MethodPost, "/api/security/disarm", nil, nil)
}

// Activities fetches the activity log in chronological order.
func (c *Client) Activities(ctx context.Context) ([]domain.ActivityLog, error) {
	var out []domain.ActivityLog
	if err := c.do(ctx, "list activities", "", http.MethodGet, "/api/activities", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}
