package discovery

import (
	"context"
	"errors"
	"fmt"
	"iter"
	"time"
	"unicode/utf8"

	"github.com/odrive-go/odrive/pkg/log"
	"github.com/odrive-go/odrive/pkg/model"
	"github.com/odrive-go/odrive/pkg/schema"
	"github.com/odrive-go/odrive/pkg/transport"
	"github.com/odrive-go/odrive/pkg/wire"
)

// RootNamespace is the namespace of every compiled device tree.
const RootNamespace = "odrive"

// ErrNotUTF8 indicates endpoint 0 returned bytes that are not valid UTF-8.
var ErrNotUTF8 = errors.New("schema is not valid UTF-8")

// Config configures a Finder.
type Config struct {
	// Sources are probed in order on every pass.
	Sources []Source

	// ProbeTimeout bounds the schema read of one candidate. Default: 2s.
	ProbeTimeout time.Duration

	// PollInterval is the wait between empty passes of FindAny. Default: 1s.
	PollInterval time.Duration

	// MaxPollInterval lets the wait double after each empty pass up to this
	// value. Zero keeps the interval fixed.
	MaxPollInterval time.Duration

	// ResponseTimeout bounds property reads when the caller's context has
	// no deadline. Zero blocks.
	ResponseTimeout time.Duration

	// Logger receives probe, schema and property events.
	Logger log.Logger

	// Metrics observes probes and passes.
	Metrics Metrics
}

// Finder runs discovery passes over its sources.
type Finder struct {
	cfg Config
}

// NewFinder creates a finder, applying defaults to cfg.
func NewFinder(cfg Config) *Finder {
	if cfg.ProbeTimeout <= 0 {
		cfg.ProbeTimeout = DefaultProbeTimeout
	}
	if cfg.PollInterval <= 0 {
		cfg.PollInterval = DefaultPollInterval
	}
	cfg.Logger = log.OrNoop(cfg.Logger)
	if cfg.Metrics == nil {
		cfg.Metrics = NoopMetrics{}
	}
	return &Finder{cfg: cfg}
}

// FindAll runs one pass and yields every compatible device. The pass is
// lazy: stopping the iteration stops probing. Devices handed to the caller
// are owned by the caller. Only passes that probe every source are reported
// to Metrics.ObservePass.
func (f *Finder) FindAll(ctx context.Context) iter.Seq[*Device] {
	return func(yield func(*Device) bool) {
		found := 0
		for _, src := range f.cfg.Sources {
			candidates, err := src.Candidates()
			if err != nil {
				f.diagnostic(src.Name(), fmt.Sprintf("enumerate: %v", err))
			}
			for _, c := range candidates {
				if ctx.Err() != nil {
					return
				}
				dev := f.probe(ctx, src.Name(), c)
				if dev == nil {
					continue
				}
				found++
				if !yield(dev) {
					return
				}
			}
		}
		f.cfg.Metrics.ObservePass(found)
	}
}

// FindAny blocks until a device is found or ctx ends, in which case the
// context error is returned.
func (f *Finder) FindAny(ctx context.Context) (*Device, error) {
	schedule := newPollSchedule(f.cfg.PollInterval, f.cfg.MaxPollInterval)
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		for dev := range f.FindAll(ctx) {
			return dev, nil
		}

		timer := time.NewTimer(schedule.Next())
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}
	}
}

// probe opens one candidate and turns it into a device, or returns nil
// after reporting why not.
func (f *Finder) probe(ctx context.Context, source string, c Candidate) *Device {
	start := time.Now()
	report := func(outcome log.ProbeOutcome, reason string) {
		f.cfg.Metrics.ObserveProbe(source, outcome, time.Since(start))
		f.cfg.Logger.Log(log.Event{
			Timestamp: time.Now(),
			Channel:   c.Name,
			Direction: log.DirectionNone,
			Layer:     log.LayerDiscovery,
			Category:  log.CategoryState,
			Probe: &log.ProbeEvent{
				Candidate: c.Name,
				Outcome:   outcome,
				Reason:    reason,
			},
		})
	}

	ch, err := c.Open()
	if err != nil {
		report(log.ProbeUnavailable, err.Error())
		return nil
	}

	deadline := time.Now().Add(f.cfg.ProbeTimeout)
	if d, ok := ctx.Deadline(); ok && d.Before(deadline) {
		deadline = d
	}

	blob, err := ch.ReadEndpoint(wire.SchemaEndpoint, deadline)
	if err != nil {
		closeChannel(ch)
		outcome := log.ProbeBroken
		if errors.Is(err, transport.ErrTimeout) {
			outcome = log.ProbeTimeout
		}
		report(outcome, "no response, probably incompatible: "+err.Error())
		return nil
	}

	if !utf8.Valid(blob) {
		closeChannel(ch)
		report(log.ProbeNotUTF8, ErrNotUTF8.Error())
		return nil
	}

	entries, err := schema.Parse(blob)
	if err != nil {
		closeChannel(ch)
		report(log.ProbeNotSchema, err.Error())
		return nil
	}

	connID := connectionID(ch)
	root := model.CompileWithOptions(entries, RootNamespace, ch, model.Options{
		Logger:          f.cfg.Logger,
		ConnectionID:    connID,
		ResponseTimeout: f.cfg.ResponseTimeout,
	})
	report(log.ProbeFound, fmt.Sprintf("%d members", root.Len()))

	return &Device{
		Name:         c.Name,
		ConnectionID: connID,
		Channel:      ch,
		Root:         root,
		Schema:       blob,
	}
}

func (f *Finder) diagnostic(source, msg string) {
	f.cfg.Logger.Log(log.Diagnostic(log.LayerDiscovery, "", source, msg))
}
