// Package openrgb adapts an OpenRGB SDK server connection to the
// lights.Device interface.
package openrgb

import (
	"context"

	orgb "github.com/vilsol/openrgb-go"
	"go.uber.org/zap"

	"github.com/mariq/rgbctl/internal/lights"
	"github.com/mariq/rgbctl/internal/logging"
)

var logger = logging.New("openrgb")

type Client struct {
	conn *orgb.Client
}

// Connect dials the OpenRGB SDK server. The server owns device discovery
// and the hardware wire protocols; this process only pushes color buffers.
func Connect(host string, port int) (*Client, error) {
	conn, err := orgb.Connect(host, port)
	if err != nil {
		return nil, err
	}
	return &Client{conn: conn}, nil
}

// Devices enumerates the server's controllers. A controller that cannot be
// described is logged and skipped; it returns an error only when the count
// itself cannot be read.
func (c *Client) Devices() ([]lights.Device, error) {
	count, err := c.conn.GetControllerCount()
	if err != nil {
		return nil, err
	}

	devices := make([]lights.Device, 0, count)
	for i := 0; i < count; i++ {
		d, err := c.conn.GetDeviceController(i)
		if err != nil {
			logger.With(zap.Error(err), zap.Int("index", i)).
				Warn("Failed to describe device, skipping")
			continue
		}
		devices = append(devices, &device{
			conn:     c.conn,
			index:    i,
			name:     d.Name,
			ledCount: len(d.Colors),
		})
	}
	return devices, nil
}

type device struct {
	conn     *orgb.Client
	index    int
	name     string
	ledCount int
}

func (d *device) Name() string { return d.name }

func (d *device) LEDCount() int { return d.ledCount }

func (d *device) SetColors(_ context.Context, colors []lights.Color) error {
	buf := make([]orgb.Color, len(colors))
	for i, c := range colors {
		buf[i] = orgb.Color{Red: c.Red, Green: c.Green, Blue: c.Blue}
	}
	return d.conn.UpdateLeds(d.index, buf)
}
