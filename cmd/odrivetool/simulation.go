package main

import (
	"context"
	"log/slog"

	"github.com/odrive-go/odrive/internal/devicesim"
	"github.com/odrive-go/odrive/pkg/channel"
	"github.com/odrive-go/odrive/pkg/discovery"
	"github.com/odrive-go/odrive/pkg/log"
	"github.com/odrive-go/odrive/pkg/schema"
)

// simulatorSource returns a source with one simulated device, serving the
// schema in file or the built-in two-axis schema.
func simulatorSource(ctx context.Context, file string, logger *slog.Logger, protocol log.Logger) (discovery.Source, error) {
	entries := devicesim.DefaultSchema()
	if file != "" {
		var err error
		if entries, err = schema.LoadFile(file); err != nil {
			return nil, err
		}
	}
	sim, err := devicesim.New(entries, devicesim.WithLogger(logger))
	if err != nil {
		return nil, err
	}
	logger.Info("Simulation mode", "schema_bytes", len(sim.Schema()))

	return &discovery.StaticSource{
		Label: "simulator",
		List:  []discovery.Candidate{sim.Candidate(ctx, "simulated odrive", channel.WithLogger(protocol))},
	}, nil
}
