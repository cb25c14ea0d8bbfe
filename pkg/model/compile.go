package model

import (
	"fmt"
	"time"

	"github.com/odrive-go/odrive/pkg/channel"
	"github.com/odrive-go/odrive/pkg/log"
	"github.com/odrive-go/odrive/pkg/schema"
)

// Options configures compilation.
type Options struct {
	// Logger receives schema diagnostics and property line traffic.
	Logger log.Logger

	// ConnectionID tags log events.
	ConnectionID string

	// ResponseTimeout bounds Get when the caller's context has no deadline.
	// Zero blocks until the device answers.
	ResponseTimeout time.Duration
}

// Compile builds the tree for entries under namespace, binding every
// property to ch. It never fails; entries that cannot be compiled are
// skipped and reported to logger.
func Compile(entries []schema.Entry, namespace string, ch channel.Channel, logger log.Logger) *Object {
	return CompileWithOptions(entries, namespace, ch, Options{Logger: logger})
}

// CompileWithOptions is Compile with full options.
func CompileWithOptions(entries []schema.Entry, namespace string, ch channel.Channel, opts Options) *Object {
	c := &compiler{
		link: &link{
			ch:      ch,
			timeout: opts.ResponseTimeout,
			logger:  log.OrNoop(opts.Logger),
			connID:  opts.ConnectionID,
		},
	}
	return c.object(namespace, namespace, entries)
}

type compiler struct {
	link *link
}

func (c *compiler) object(name, namespace string, entries []schema.Entry) *Object {
	obj := newObject(name, namespace)
	for i := range entries {
		e := &entries[i]
		label := e.Name
		if label == "" {
			label = fmt.Sprintf("#%d", i)
		}

		if err := e.Validate(); err != nil {
			c.diagnose(namespace, label, fmt.Sprintf("skipped entry: %v", err))
			continue
		}

		// Validate guarantees a known kind.
		kind, _ := e.Kind()
		path := namespace + "." + e.Name

		var n Node
		if kind == schema.KindSubtree {
			n = c.object(e.Name, path, e.Content)
		} else {
			n = &Property{
				name:   e.Name,
				path:   path,
				id:     e.ID,
				kind:   kind,
				access: e.Access(),
				link:   c.link,
			}
		}

		if obj.set(n) {
			c.diagnose(namespace, e.Name, "duplicate name, keeping the last definition")
		}
	}
	return obj
}

func (c *compiler) diagnose(namespace, entry, msg string) {
	e := log.Diagnostic(log.LayerSchema, namespace, entry, msg)
	e.ConnectionID = c.link.connID
	if c.link.ch != nil {
		e.Channel = c.link.ch.Name()
	}
	c.link.logger.Log(e)
}
