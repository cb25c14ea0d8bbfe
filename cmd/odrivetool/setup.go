package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/odrive-go/odrive/pkg/channel"
	"github.com/odrive-go/odrive/pkg/config"
	"github.com/odrive-go/odrive/pkg/discovery"
	"github.com/odrive-go/odrive/pkg/log"
	"github.com/odrive-go/odrive/pkg/transport"
)

// env holds everything run needs besides the device.
type env struct {
	finder  *discovery.Finder
	closers []func() error
}

func (e *env) Close() {
	for i := len(e.closers) - 1; i >= 0; i-- {
		_ = e.closers[i]()
	}
}

func setup(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*env, error) {
	e := &env{}

	protocol, err := protocolLogger(cfg.Log, logger, e)
	if err != nil {
		e.Close()
		return nil, err
	}

	fc := finderConfig(cfg)
	fc.Logger = protocol
	if cfg.Metrics.Addr != "" {
		reg := prometheus.NewRegistry()
		fc.Metrics = discovery.NewPromMetrics(reg)
		e.closers = append(e.closers, serveMetrics(cfg.Metrics.Addr, reg, logger))
	}

	wrap := func(s transport.Stream) channel.Channel {
		return channel.NewPacketChannel(s, channel.WithLogger(protocol))
	}
	if opts.Simulate {
		src, err := simulatorSource(ctx, opts.SchemaFile, logger, protocol)
		if err != nil {
			e.Close()
			return nil, err
		}
		fc.Sources = []discovery.Source{src}
	} else {
		if fc.Sources, err = hardwareSources(cfg.Discovery, wrap, e); err != nil {
			e.Close()
			return nil, err
		}
	}

	e.finder = discovery.NewFinder(fc)
	return e, nil
}

// protocolLogger sends protocol events to slog and, if configured, to an
// .olog file.
func protocolLogger(cfg config.LogConfig, logger *slog.Logger, e *env) (log.Logger, error) {
	adapter := log.NewSlogAdapter(logger)
	if cfg.ProtocolLog == "" {
		return adapter, nil
	}
	file, err := log.NewFileLogger(cfg.ProtocolLog)
	if err != nil {
		return nil, fmt.Errorf("protocol log: %w", err)
	}
	e.closers = append(e.closers, file.Close)
	logger.Info("Protocol log enabled", "path", cfg.ProtocolLog)
	return log.NewMultiLogger(adapter, file), nil
}

func hardwareSources(d config.DiscoveryConfig, wrap func(transport.Stream) channel.Channel, e *env) ([]discovery.Source, error) {
	var sources []discovery.Source
	if !d.DisableUSB {
		host := transport.NewUSBHost(transport.DefaultUSBConfig)
		e.closers = append(e.closers, host.Close)
		sources = append(sources, discovery.NewUSBSource(host, d.USBIDs(), wrap))
	}
	if !d.DisableSerial {
		pattern, err := d.Pattern()
		if err != nil {
			return nil, err
		}
		sources = append(sources, discovery.NewSerialSource(pattern, d.BaudRate, wrap))
	}
	return sources, nil
}

// serveMetrics starts the metrics server and returns its shutdown func.
func serveMetrics(addr string, reg *prometheus.Registry, logger *slog.Logger) func() error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg}))
	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	go func() {
		logger.Info("Serving metrics", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("metrics server failed", "error", err)
		}
	}()

	return func() error {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		return srv.Shutdown(ctx)
	}
}
