package host

import (
	"github.com/arthur-debert/compinst/pkg/errors"
	"github.com/arthur-debert/compinst/pkg/types"
)

// EventPostAutoloadDump fires once after every package has been installed
// and linked.
const EventPostAutoloadDump = "post-autoload-dump"

// Event is passed to lifecycle handlers
type Event struct {
	Name string
	Host *Host
	IO   types.IO
}

// Handler reacts to a lifecycle event
type Handler func(event *Event) error

type namedHandler struct {
	name    string
	handler Handler
}

// EventDispatcher keeps, per event, an ordered list of named handlers.
type EventDispatcher struct {
	host     *Host
	handlers map[string][]namedHandler
}

// NewEventDispatcher creates a dispatcher bound to h
func NewEventDispatcher(h *Host) *EventDispatcher {
	return &EventDispatcher{
		host:     h,
		handlers: make(map[string][]namedHandler),
	}
}

// RegisterHandler adds handler under name for event. Registration merges:
// handlers registered under other names are kept, and registering an
// existing name replaces that handler in place.
func (d *EventDispatcher) RegisterHandler(event, name string, handler Handler) {
	list := d.handlers[event]
	for i := range list {
		if list[i].name == name {
			list[i].handler = handler
			return
		}
	}
	d.handlers[event] = append(list, namedHandler{name: name, handler: handler})
}

// Handlers returns the handler names registered for event, in order
func (d *EventDispatcher) Handlers(event string) []string {
	names := make([]string, 0, len(d.handlers[event]))
	for _, h := range d.handlers[event] {
		names = append(names, h.name)
	}
	return names
}

// Dispatch runs the handlers for event in registration order and stops at
// the first error.
func (d *EventDispatcher) Dispatch(event string) error {
	ev := &Event{Name: event, Host: d.host, IO: d.host.IO}
	for _, h := range d.handlers[event] {
		if err := h.handler(ev); err != nil {
			return errors.Wrapf(err, errors.GetErrorCode(err), "%s handler %q failed", event, h.name)
		}
	}
	return nil
}
