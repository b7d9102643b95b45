package niri

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/monitoradlo/monitoradlo-go/internal/models"
)

// PreviewCommands returns the `niri msg output` invocations that apply req
// to connector, in the order they must run. Turning an output off skips
// every other setting.
func PreviewCommands(connector string, req models.PreviewRequest) [][]string {
	base := func(action string, values ...string) []string {
		return append([]string{"msg", "output", connector, action}, values...)
	}

	if req.On != nil && !*req.On {
		return [][]string{base("off")}
	}

	var cmds [][]string
	if req.On != nil {
		cmds = append(cmds, base("on"))
	}
	if req.Mode != "" {
		cmds = append(cmds, base("mode", req.Mode))
	}
	if req.Scale != nil {
		cmds = append(cmds, base("scale", strconv.FormatFloat(*req.Scale, 'f', -1, 64)))
	}
	if req.Transform != "" {
		cmds = append(cmds, base("transform", req.Transform))
	}
	if req.Position != nil {
		cmds = append(cmds, base("position", "set", strconv.Itoa(req.Position.X), strconv.Itoa(req.Position.Y)))
	}
	return cmds
}

// ApplyPreview applies temporary settings to connector. The change lasts
// until niri reloads its own configuration. Commands are rate limited.
func (c *Client) ApplyPreview(ctx context.Context, connector string, req models.PreviewRequest) error {
	cmds := PreviewCommands(connector, req)
	if len(cmds) == 0 {
		return models.ErrBadRequest("preview request has no settings")
	}
	for _, args := range cmds {
		if err := c.limiter.Wait(ctx); err != nil {
			return err
		}
		cctx, cancel := context.WithTimeout(ctx, c.timeout)
		_, err := c.run(cctx, args...)
		cancel()
		if err != nil {
			return fmt.Errorf("niri preview %s %s: %w", connector, args[3], err)
		}
		slog.Debug("niri: preview applied", "connector", connector, "args", args[3:])
	}
	return nil
}
