package misc

import (
	"context"
	"fmt"
	"time"

	"annobot/bot/commands"
)

// LatencySource reports the gateway heartbeat round trip
type LatencySource interface {
	HeartbeatLatency() time.Duration
}

// Feature provides small utility commands
type Feature struct {
	latency LatencySource
	version string
}

// NewFeature creates a new misc feature instance
func NewFeature(latency LatencySource, version string) *Feature {
	return &Feature{
		latency: latency,
		version: version,
	}
}

func (f *Feature) Commands() []*commands.Command {
	return []*commands.Command{
		{
			Name:        "ping",
			Brief:       "Check that the bot is alive",
			Description: "Replies with the current gateway latency.",
			Handler:     f.handlePing,
		},
		{
			Name:        "version",
			Aliases:     []string{"ver"},
			Brief:       "Show the bot version",
			Description: "Shows the version of the running bot.",
			Handler:     f.handleVersion,
		},
	}
}

func (f *Feature) handlePing(_ context.Context, _ *commands.Invocation) (*commands.Response, error) {
	latency := f.latency.HeartbeatLatency().Round(time.Millisecond)
	return &commands.Response{
		Title:       "🏓 Pong!",
		Description: fmt.Sprintf("Gateway latency: `%s`", latency),
		Color:       commands.ColorMisc,
	}, nil
}

func (f *Feature) handleVersion(_ context.Context, _ *commands.Invocation) (*commands.Response, error) {
	return &commands.Response{
		Title:       "🤖 Version",
		Description: fmt.Sprintf("Running version `%s`", f.version),
		Color:       commands.ColorMisc,
	}, nil
}
