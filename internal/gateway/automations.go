package gateway

import (
	"context"
	"net/http"
	"net/url"

	"github.com/sideduran/homeboard/internal/domain"
)

// Automations fetches every automation. Legacy flat-schema automations
// decode to the canonical action list (see domain.Automation.UnmarshalJSON).
func (c *Client) Automations(ctx context.Context) ([]domain.Automation, error) {
	var out []domain.Automation
	if err := c.do(ctx, "list automations", "", http.MethodGet, "/api/automations", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// CreateAutomation stores a new automation and returns the stored copy.
func (c *Client) CreateAutomation(ctx context.Context, a domain.Automation) (domain.Automation, error) {
	var out domain.Automation
	if err := c.do(ctx, "create automation", a.ID, http.MethodPost, "/api/automations", a, &out); err != nil {
		return domain.Automation{}, err
	}
	return out, nil
}

// UpdateAutomation replaces an automation's stored representation.
func (c *Client) UpdateAutomation(ctx context.Context, a domain.Automation) error {
	return c.do(ctx, "update automation", a.ID, http.MethodPut, "/api/automations/"+url.PathEscape(a.ID), a, nil)
}

// DeleteAutomation removes an automation.
func (c *Client) DeleteAutomation(ctx context.Context, id string) error {
	return c.do(ctx, "delete automation", id, http.MethodDelete, "/api/automations/"+url.PathEscape(id), nil, nil)
}
