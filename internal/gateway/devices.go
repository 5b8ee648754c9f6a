package gateway

import (
	"context"
	"net/http"
	"net/url"

	"github.com/sideduran/homeboard/internal/domain"
)

// Devices fetches every device.
func (c *Client) Devices(ctx context.Context) ([]domain.Device, error) {
	var out []domain.Device
	if err := c.do(ctx, "list devices", "", http.MethodGet, "/api/devices", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// CreateDevice registers a new device and returns the stored copy.
func (c *Client) CreateDevice(ctx context.Context, d domain.Device) (domain.Device, error) {
	var out domain.Device
	if err := c.do(ctx, "create device", d.ID, http.MethodPost, "/api/devices", d, &out); err != nil {
		return domain.Device{}, err
	}
	return out, nil
}

// UpdateDevice replaces a device's stored representation.
func (c *Client) UpdateDevice(ctx context.Context, d domain.Device) error {
	return c.do(ctx, "update device", d.ID, http.MethodPut, "/api/devices/"+url.PathEscape(d.ID), d, nil)
}

// DeleteDevice removes a device.
func (c *Client) DeleteDevice(ctx context.Context, id string) error {
	return c.do(ctx, "delete device", id, http.MethodDelete, "/api/devices/"+url.PathEscape(id), nil, nil)
}

// TurnOnLight and its siblings hit the capability-specific action endpoints.
// They carry no body; the id in the path is the whole request.

func (c *Client) TurnOnLight(ctx context.Context, id string) error {
	return c.do(ctx, "turn on light", id, http.MethodPost, "/api/lights/"+url.PathEscape(id)+"/turn-on", nil, nil)
}

func (c *Client) TurnOffLight(ctx context.Context, id string) error {
	return c.do(ctx, "turn off light", id, http.MethodPost, "/api/lights/"+url.PathEscape(id)+"/turn-off", nil, nil)
}

func (c *Client) LockDoor(ctx context.Context, id string) error {
	return c.do(ctx, "lock door", id, http.MethodPost, "/api/locks/"+url.PathEscape(id)+"/lock", nil, nil)
}

func (c *Client) UnlockDoor(ctx context.Context, id string) error {
	return c.do(ctx, "unlock door", id, http.MethodPost, "/api/locks/"+url.PathEscape(id)+"/unlock", nil, nil)
}

func (c *Client) StartRecording(ctx context.Context, id string) error {
	return c.do(ctx, "start recording", id, http.MethodPost, "/api/cameras/"+url.PathEscape(id)+"/start-recording", nil, nil)
}

func (c *Client) StopRecording(ctx context.Context, id string) error {
	return c.do(ctx, "stop recording", id, http.MethodPost, "/api/cameras/"+url.PathEscape(id)+"/stop-recording", nil, nil)
}

// SetTargetHeat sets a thermostat's target temperature.
func (c *Client) SetTargetHeat(ctx context.Context, id string, target float64) error {
	body := struct {
		TargetTemperature float64 `json:"targetTemperature"`
	}{target}
	return c.do(ctx, "set target heat", id, http.MethodPost, "/api/thermostats/"+url.PathEscape(id)+"/set-target-heat", body, nil)
}
