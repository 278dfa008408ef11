// Package preview implements interactive filter previews: the filter runs
// on the real mesh, and a snapshot taken beforehand undoes it before every
// new preview, on cancel, and before the final run.
//
// A Session is not safe for concurrent use.
package preview

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/Faultbox/meshlayer/internal/document"
	"github.com/Faultbox/meshlayer/internal/filter"
	"github.com/Faultbox/meshlayer/internal/logger"
	"github.com/Faultbox/meshlayer/pkg/mesh"
)

var (
	// ErrNotDynamic is returned by Start for filters that change element
	// counts or do not declare what they modify.
	ErrNotDynamic = errors.New("preview: filter cannot be previewed")
	// ErrClosed is returned by every call on a session after Cancel or Close.
	ErrClosed = errors.New("preview: session closed")
)

// snapshotBuffers are the optional buffers a snapshot can only hold once
// they are enabled.
const snapshotBuffers = mesh.VertColor | mesh.VertQuality | mesh.FaceColor | mesh.FaceQuality

// Session previews one filter on one mesh at a time.
type Session struct {
	runner *filter.Runner
	filter filter.Filter
	target *document.MeshModel
	mask   mesh.Mask
	snap   mesh.Snapshot

	params    filter.Params
	previewed bool
	closed    bool

	log *zap.Logger
}

// Start opens a preview session for f on mm and captures the attributes f
// modifies.
func Start(r *filter.Runner, f filter.Filter, mm *document.MeshModel) (*Session, error) {
	post := f.Capabilities().PostConditions
	if !mesh.IsDynamic(post) {
		return nil, fmt.Errorf("%w: %s", ErrNotDynamic, f.Name())
	}
	s := &Session{
		runner: r,
		filter: f,
		mask:   post,
		log:    logger.Named("preview"),
	}
	if err := s.attach(mm); err != nil {
		return nil, err
	}
	s.log.Debug("preview started", zap.String("filter", f.Name()), zap.String("mesh", mm.Label()), zap.Stringer("mask", post))
	return s, nil
}

// attach prepares mm and captures it.
func (s *Session) attach(mm *document.MeshModel) error {
	if err := filter.Check(s.filter, mm.Mesh); err != nil {
		return err
	}
	mm.Mesh.Prepare(s.filter)
	mm.Mesh.Enable(s.mask & snapshotBuffers)
	s.target = mm
	s.snap.Capture(mm.Mesh, s.mask)
	s.previewed = false
	return nil
}

// Target returns the mesh being previewed.
func (s *Session) Target() *document.MeshModel { return s.target }

// Mask returns the attributes the session restores.
func (s *Session) Mask() mesh.Mask { return s.snap.Mask() }

// Preview undoes the previous preview and runs the filter with p.
func (s *Session) Preview(p filter.Params) error {
	if err := s.restore(); err != nil {
		return err
	}
	s.params = p
	// Set before running: a failed run may have modified the mesh halfway.
	s.previewed = true
	return s.runner.Preview(s.filter, s.target, p)
}

// Commit undoes the preview, runs the filter for real with p and captures
// the result, so later previews start from the committed state.
func (s *Session) Commit(p filter.Params) error {
	if err := s.restore(); err != nil {
		return err
	}
	if err := s.runner.RunOn(s.filter, s.target, p); err != nil {
		s.previewed = true
		return err
	}
	s.params = p
	s.snap.Capture(s.target.Mesh, s.mask)
	return nil
}

// SwitchMesh moves the session to mm: the current mesh is restored, mm is
// captured and, if a preview was showing, it is shown on mm with the same
// parameters.
func (s *Session) SwitchMesh(mm *document.MeshModel) error {
	if err := s.restore(); err != nil {
		return err
	}
	wasPreviewing := s.params != nil
	if err := s.attach(mm); err != nil {
		return err
	}
	s.log.Debug("preview moved", zap.String("filter", s.filter.Name()), zap.String("mesh", mm.Label()))
	if wasPreviewing {
		return s.Preview(s.params)
	}
	return nil
}

// Cancel undoes any preview and ends the session.
func (s *Session) Cancel() error {
	err := s.restore()
	s.Close()
	return err
}

// Close ends the session without touching the mesh.
func (s *Session) Close() {
	s.snap.Reset()
	s.closed = true
}

func (s *Session) restore() error {
	if s.closed {
		return ErrClosed
	}
	if !s.previewed {
		return nil
	}
	if s.target.Document() == nil {
		return fmt.Errorf("%w: mesh %d was removed during preview", document.ErrUnknownMesh, s.target.ID())
	}
	if err := s.snap.Apply(s.target.Mesh); err != nil {
		s.log.Warn("cannot restore mesh", zap.String("mesh", s.target.Label()), zap.Error(err))
		return err
	}
	s.previewed = false
	return nil
}
