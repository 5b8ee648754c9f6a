package gateway

import (
	"context"
	"net/http"
	"net/url"

	"github.com/sideduran/homeboard/internal/domain"
)

// Rooms fetches every room.
func (c *Client) Rooms(ctx context.Context) ([]domain.Room, error) {
	var out []domain.Room
	if err := c.do(ctx, "list rooms", "", http.MethodGet, "/api/rooms", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// CreateRoom stores a new room and returns the stored copy.
func (c *Client) CreateRoom(ctx context.Context, r domain.Room) (domain.Room, error) {
	var out domain.Room
	if err := c.do(ctx, "create room", r.ID, http.MethodPost, "/api/rooms", r, &out); err != nil {
		return domain.Room{}, err
	}
	return out, nil
}

// AssignDevice moves a device into a room.
func (c *Client) AssignDevice(ctx context.Context, roomID, deviceID string) error {
	path := "/api/rooms/" + url.PathEscape(roomID) + "/devices/" + url.PathEscape(deviceID)
	return c.do(ctx, "assign device to room", deviceID, http.MethodPost, path, nil, nil)
}
