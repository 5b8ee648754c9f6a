package gateway

import (
	"context"
	"net/http"
	"net/url"

	"github.com/sideduran/homeboard/internal/domain"
)

// Scenes fetches every scene. Legacy device-id-list scenes decode to the
// canonical action representation (see domain.Scene.UnmarshalJSON).
func (c *Client) Scenes(ctx context.Context) ([]domain.Scene, error) {
	var out []domain.Scene
	if err := c.do(ctx, "list scenes", "", http.MethodGet, "/api/scenes", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// CreateScene stores a new scene and returns the stored copy.
func (c *Client) CreateScene(ctx context.Context, s domain.Scene) (domain.Scene, error) {
	var out domain.Scene
	if err := c.do(ctx, "create scene", s.ID, http.MethodPost, "/api/scenes", s, &out); err != nil {
		return domain.Scene{}, err
	}
	return out, nil
}

// UpdateScene replaces a scene's stored representation.
func (c *Client) UpdateScene(ctx context.Context, s domain.Scene) error {
	return c.do(ctx, "update scene", s.ID, http.MethodPut, "/api/scenes/"+url.PathEscape(s.ID), s, nil)
}

// DeleteScene removes a scene.
func (c *Client) DeleteScene(ctx context.Context, id string) error {
	return c.do(ctx, "delete scene", id, http.MethodDelete, "/api/scenes/"+url.PathEscape(id), nil, nil)
}

// ActivateScene asks the backend to execute a scene's actions. The backend
// owns the resulting device states and the scene's active flag.
func (c *Client) ActivateScene(ctx context.Context, id string) error {
	return c.do(ctx, "activate scene", id, http.MethodPost, "/api/scenes/"+url.PathEscape(id)+"/activate", nil, nil)
}
