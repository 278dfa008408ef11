// Package filter runs mesh filters against the layers of a document.
//
// A filter declares its capabilities (what it needs, what must already hold,
// what it changes); the Runner uses them to prepare the target mesh, check
// preconditions and set up derived attributes afterwards.
package filter

import (
	"errors"
	"fmt"
	"maps"
	"slices"

	"github.com/Faultbox/meshlayer/pkg/mesh"
)

// ErrPreconditions is returned when the target mesh lacks an attribute a
// filter needs and will not enable by itself.
var ErrPreconditions = errors.New("filter: preconditions not met")

// ErrUnknownFilter is returned by Registry.Lookup for an unregistered name.
var ErrUnknownFilter = errors.New("filter: unknown filter")

// Params holds the numeric parameters of one filter invocation.
type Params map[string]float64

// With returns a copy of p overridden by every value of over.
func (p Params) With(over Params) Params {
	out := maps.Clone(p)
	if out == nil {
		out = Params{}
	}
	maps.Copy(out, over)
	return out
}

// Filter is a mesh operation.
type Filter interface {
	mesh.Descriptor

	Name() string
	Description() string
	// DefaultParams lists every parameter the filter reads.
	DefaultParams() Params
	// Apply modifies m. cb is consulted between chunks of work; when it
	// returns false Apply stops and returns mesh.ErrCanceled.
	Apply(m *mesh.Mesh, p Params, cb mesh.CallBack) error
}

// Registry maps filter names to filters.
type Registry struct {
	filters map[string]Filter
}

// NewRegistry returns a registry holding the given filters.
func NewRegistry(filters ...Filter) *Registry {
	r := &Registry{filters: make(map[string]Filter)}
	for _, f := range filters {
		r.Register(f)
	}
	return r
}

// Register adds f, replacing any filter of the same name.
func (r *Registry) Register(f Filter) {
	r.filters[f.Name()] = f
}

// Lookup returns the filter registered under name.
func (r *Registry) Lookup(name string) (Filter, error) {
	f, ok := r.filters[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownFilter, name)
	}
	return f, nil
}

// Names returns the registered names, sorted.
func (r *Registry) Names() []string {
	return slices.Sorted(maps.Keys(r.filters))
}

// Builtin returns a registry with every filter shipped in this package.
func Builtin() *Registry {
	return NewRegistry(
		QualityFromHeight{},
		SelectByQuality{},
		Translate{},
		ColorizeQuality{},
		FaceColorFromVertex{},
		DeleteSelected{},
	)
}

// reportEvery is the number of elements processed between two progress
// reports.
const reportEvery = 1024

// report forwards progress for element i of n and reports whether to go on.
func report(cb mesh.CallBack, i, n int, msg string) bool {
	if cb == nil || n == 0 || i%reportEvery != 0 {
		return true
	}
	return cb(i*100/n, msg)
}
