package document

import "go.uber.org/zap"

// EventKind identifies a registry change.
type EventKind int

// Registry change kinds.
const (
	MeshSetChanged EventKind = iota
	CurrentMeshChanged
	RasterSetChanged
	CurrentRasterChanged
)

func (k EventKind) String() string {
	switch k {
	case MeshSetChanged:
		return "mesh-set-changed"
	case CurrentMeshChanged:
		return "current-mesh-changed"
	case RasterSetChanged:
		return "raster-set-changed"
	case CurrentRasterChanged:
		return "current-raster-changed"
	default:
		return "unknown"
	}
}

// Event is delivered to subscribers. ID is the mesh or raster concerned,
// -1 when the current pointer was cleared.
type Event struct {
	Kind EventKind
	ID   int
}

type subscriber struct {
	ch chan Event
}

// Subscribe registers a listener with the given buffer size. Events that do
// not fit in the buffer are dropped: the registry never waits on a reader.
// The returned function unsubscribes and closes the channel.
func (d *Document) Subscribe(buffer int) (<-chan Event, func()) {
	s := &subscriber{ch: make(chan Event, buffer)}
	d.subs = append(d.subs, s)
	return s.ch, func() {
		for i, other := range d.subs {
			if other == s {
				d.subs = append(d.subs[:i], d.subs[i+1:]...)
				close(s.ch)
				return
			}
		}
	}
}

func (d *Document) emit(kind EventKind, id int) {
	ev := Event{Kind: kind, ID: id}
	for _, s := range d.subs {
		select {
		case s.ch <- ev:
		default:
			d.log.Debug("dropped event, subscriber is full", zap.Stringer("event", kind), zap.Int("id", id))
		}
	}
}
