package gpalace

// EventDispatcher fans session events out to registered handlers.
// Registration is not synchronized; register everything before the
// client runs.
type EventDispatcher struct {
	handleMap map[EventKind][]func(Event)
}

func NewEventDispatcher() *EventDispatcher {
	return &EventDispatcher{
		handleMap: make(map[EventKind][]func(Event)),
	}
}

func (d *EventDispatcher) RegisterHandle(kind EventKind, handle func(Event)) {
	d.handleMap[kind] = append(d.handleMap[kind], handle)
}

func (d *EventDispatcher) Dispatch(ev Event) {
	for _, h := range d.handleMap[ev.EventKind()] {
		h(ev)
	}
}
