package devicesim

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/odrive-go/odrive/pkg/discovery"
	"github.com/odrive-go/odrive/pkg/log"
	"github.com/odrive-go/odrive/pkg/model"
	"github.com/odrive-go/odrive/pkg/schema"
)

func newDefault(t *testing.T, opts ...Option) *Device {
	t.Helper()
	d, err := New(DefaultSchema(), opts...)
	require.NoError(t, err)
	return d
}

func TestHandleLine(t *testing.T) {
	d := newDefault(t)

	resp, ok := d.HandleLine("r 1")
	assert.True(t, ok)
	assert.Equal(t, "0", resp)

	resp, ok = d.HandleLine("r 999")
	assert.True(t, ok)
	assert.Equal(t, InvalidPropertyResponse, resp)

	// vbus_voltage is read-only.
	_, ok = d.HandleLine("w 1 48")
	assert.False(t, ok)
	v, _ := d.Value("1")
	assert.Equal(t, "0", v)

	// axis0.config.startup_closed_loop_control is a bool.
	_, ok = d.HandleLine("w 13 true")
	assert.False(t, ok)
	v, _ = d.Value("13")
	assert.Equal(t, "1", v)

	_, ok = d.HandleLine("w 13 maybe")
	assert.False(t, ok)
	v, _ = d.Value("13")
	assert.Equal(t, "1", v)

	// axis0.requested_state is write-only.
	resp, ok = d.HandleLine("r 12")
	assert.True(t, ok)
	assert.Equal(t, InvalidPropertyResponse, resp)

	_, ok = d.HandleLine("bogus")
	assert.False(t, ok)
}

func TestSetPath(t *testing.T) {
	d := newDefault(t)
	require.NoError(t, d.SetPath("vbus_voltage", 24.5))
	v, _ := d.Value("1")
	assert.Equal(t, "24.5", v)

	assert.ErrorIs(t, d.SetPath("nope", 1.0), ErrUnknownProperty)
	assert.ErrorIs(t, d.SetPath("vbus_voltage", 24), schema.ErrValueType)
}

func TestEndToEndDiscovery(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	silent := newDefault(t, WithSilence())
	garbage := newDefault(t, WithSchemaBlob([]byte{0xc3, 0x28, 0xa0, 0xa1}))
	valid := newDefault(t, WithChunkSize(16))
	require.NoError(t, valid.SetPath("vbus_voltage", 23.9))

	logger := &recordingLogger{}
	f := discovery.NewFinder(discovery.Config{
		Sources: []discovery.Source{&discovery.StaticSource{Label: "sim", List: []discovery.Candidate{
			silent.Candidate(ctx, "sim-silent"),
			garbage.Candidate(ctx, "sim-garbage"),
			valid.Candidate(ctx, "sim-valid"),
		}}},
		ProbeTimeout:    100 * time.Millisecond,
		ResponseTimeout: time.Second,
		Logger:          logger,
	})

	var devices []*discovery.Device
	for dev := range f.FindAll(ctx) {
		devices = append(devices, dev)
	}
	require.Len(t, devices, 1)
	dev := devices[0]
	defer dev.Close()
	assert.Equal(t, "sim-valid", dev.Name)
	assert.Equal(t, valid.Schema(), dev.Schema)

	outcomes := logger.outcomes()
	assert.Equal(t, log.ProbeTimeout, outcomes["sim-silent"])
	assert.Equal(t, log.ProbeNotUTF8, outcomes["sim-garbage"])
	assert.Equal(t, log.ProbeFound, outcomes["sim-valid"])

	vbus, err := dev.Root.ResolveProperty("vbus_voltage")
	require.NoError(t, err)
	v, err := vbus.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, 23.9, v)

	var leaves int
	dev.Root.Walk(func(n model.Node) {
		if _, ok := n.(*model.Property); ok {
			leaves++
		}
	})
	assert.Equal(t, 4+2*13, leaves)
}

func TestSetThenGetOverPacketChannel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sim := newDefault(t)
	ch := sim.Connect(ctx, "sim")
	defer ch.Close()

	blob, err := ch.ReadEndpoint(0, time.Now().Add(time.Second))
	require.NoError(t, err)
	entries, err := schema.Parse(blob)
	require.NoError(t, err)
	root := model.CompileWithOptions(entries, "odrive", ch, model.Options{ResponseTimeout: time.Second})

	gain, err := root.ResolveProperty("axis0.controller.config.pos_gain")
	require.NoError(t, err)
	require.NoError(t, gain.Set(ctx, 3.14))

	v, err := gain.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3.14, v)

	stored, _ := sim.Value(gain.ID())
	assert.Equal(t, "3.14", stored)

	poles, err := root.ResolveProperty("axis1.motor.config.pole_pairs")
	require.NoError(t, err)
	require.NoError(t, poles.Set(ctx, uint16(7)))
	v, err = poles.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, uint16(7), v)

	enabled, err := root.ResolveProperty("axis0.config.startup_closed_loop_control")
	require.NoError(t, err)
	require.NoError(t, enabled.Set(ctx, true))
	v, err = enabled.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, true, v)
}

func TestConcurrentGetsOverPacketChannel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sim := newDefault(t)
	require.NoError(t, sim.SetPath("axis0.controller.config.vel_limit", 2.0))
	require.NoError(t, sim.SetPath("axis1.controller.config.vel_limit", 4.0))

	ch := sim.Connect(ctx, "sim")
	defer ch.Close()
	blob, err := ch.ReadEndpoint(0, time.Now().Add(time.Second))
	require.NoError(t, err)
	entries, err := schema.Parse(blob)
	require.NoError(t, err)
	root := model.CompileWithOptions(entries, "odrive", ch, model.Options{ResponseTimeout: time.Second})

	a, _ := root.ResolveProperty("axis0.controller.config.vel_limit")
	b, _ := root.ResolveProperty("axis1.controller.config.vel_limit")

	var wg sync.WaitGroup
	for i := range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			p, want := a, 2.0
			if i%2 == 1 {
				p, want = b, 4.0
			}
			for range 10 {
				v, err := p.Get(ctx)
				if err != nil {
					t.Errorf("Get: %v", err)
					return
				}
				if v != want {
					t.Errorf("Get %s = %v, want %v", p.Path(), v, want)
				}
			}
		}()
	}
	wg.Wait()
}

func TestServeStopsOnContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	sim := newDefault(t)
	ch := sim.Connect(ctx, "sim")
	defer ch.Close()

	cancel()
	time.Sleep(50 * time.Millisecond)
	_, err := ch.ReadEndpoint(0, time.Now().Add(500*time.Millisecond))
	assert.Error(t, err)
}

type recordingLogger struct {
	mu     sync.Mutex
	events []log.Event
}

func (r *recordingLogger) Log(e log.Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
}

func (r *recordingLogger) outcomes() map[string]log.ProbeOutcome {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make(map[string]log.ProbeOutcome)
	for _, e := range r.events {
		if e.Probe != nil {
			out[e.Probe.Candidate] = e.Probe.Outcome
		}
	}
	return out
}
