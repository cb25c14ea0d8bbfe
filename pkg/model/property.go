package model

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/odrive-go/odrive/pkg/channel"
	"github.com/odrive-go/odrive/pkg/log"
	"github.com/odrive-go/odrive/pkg/schema"
)

// link is the channel binding shared by all properties of one device.
type link struct {
	mu      sync.Mutex
	ch      channel.Channel
	timeout time.Duration
	logger  log.Logger
	connID  string

	// owed counts reads whose reply did not arrive in time. The device
	// still sends those replies, ahead of any later one.
	owed int
}

// deadline derives the transaction deadline. A context deadline wins over
// the default response timeout; with neither the read blocks.
func (l *link) deadline(ctx context.Context) time.Time {
	if d, ok := ctx.Deadline(); ok {
		return d
	}
	if l.timeout > 0 {
		return time.Now().Add(l.timeout)
	}
	return time.Time{}
}

// resync discards the lines owed to earlier reads that failed. No request
// is sent until it succeeds.
func (l *link) resync(deadline time.Time) error {
	for l.owed > 0 {
		if _, err := channel.ReadUntil(l.ch, '\n', deadline); err != nil {
			return fmt.Errorf("discarding %d late replies: %w", l.owed, err)
		}
		l.owed--
	}
	return nil
}

func (l *link) logLine(namespace string, dir log.Direction, text string) {
	l.logger.Log(log.Event{
		Timestamp:    time.Now(),
		ConnectionID: l.connID,
		Channel:      l.ch.Name(),
		Direction:    dir,
		Layer:        log.LayerProperty,
		Category:     log.CategoryMessage,
		Namespace:    namespace,
		Line:         &log.LineEvent{Text: text},
	})
}

// Property is a compiled schema leaf bound to a device channel.
type Property struct {
	name   string
	path   string
	id     schema.ID
	kind   schema.Kind
	access schema.Access
	link   *link
}

func (p *Property) node() {}

// Name returns the property name.
func (p *Property) Name() string { return p.name }

// Path returns the dotted path including the root namespace.
func (p *Property) Path() string { return p.path }

// ID returns the device identifier used on the wire.
func (p *Property) ID() schema.ID { return p.id }

// Kind returns the declared value kind.
func (p *Property) Kind() schema.Kind { return p.kind }

// Access returns the access flags.
func (p *Property) Access() schema.Access { return p.access }

// Get reads the current value from the device. The result has the Go type of
// the property's kind.
func (p *Property) Get(ctx context.Context) (any, error) {
	if !p.access.CanRead() {
		return nil, p.fail("get", ErrNotReadable)
	}
	if err := ctx.Err(); err != nil {
		return nil, p.fail("get", err)
	}

	request := "r " + string(p.id) + "\n"
	response, err := p.transact(ctx, request, true)
	if err != nil {
		return nil, p.fail("get", err)
	}

	v, err := p.kind.ParseValue(response)
	if err != nil {
		return nil, p.fail("get", fmt.Errorf("%w: %w", ErrMalformedResponse, err))
	}
	return v, nil
}

// Set writes v to the device. v must have exactly the property's Go type.
func (p *Property) Set(ctx context.Context, v any) error {
	if !p.access.CanWrite() {
		return p.fail("set", ErrNotWritable)
	}
	text, err := p.kind.FormatValue(v)
	if err != nil {
		return p.fail("set", fmt.Errorf("%w: %w", ErrTypeMismatch, err))
	}
	if err := ctx.Err(); err != nil {
		return p.fail("set", err)
	}

	if _, err := p.transact(ctx, "w "+string(p.id)+" "+text+"\n", false); err != nil {
		return p.fail("set", err)
	}
	return nil
}

// transact writes request and, if wantResponse, reads one line while holding
// the device lock.
func (p *Property) transact(ctx context.Context, request string, wantResponse bool) (string, error) {
	l := p.link
	l.mu.Lock()
	defer l.mu.Unlock()

	deadline := l.deadline(ctx)
	if wantResponse {
		if err := l.resync(deadline); err != nil {
			return "", err
		}
	}

	l.logLine(p.path, log.DirectionOut, request)
	if err := l.ch.Write([]byte(request)); err != nil {
		return "", err
	}
	if !wantResponse {
		return "", nil
	}

	line, err := channel.ReadLine(l.ch, deadline)
	if err != nil {
		// The rest of this reply, up to its newline, is still on its way.
		l.owed++
		return "", err
	}
	l.logLine(p.path, log.DirectionIn, line)
	return line, nil
}

func (p *Property) fail(op string, err error) error {
	return &PropertyError{Path: p.path, Op: op, Err: err}
}
