package filter

import (
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/meshlayer/internal/config"
	"github.com/Faultbox/meshlayer/internal/document"
	"github.com/Faultbox/meshlayer/internal/logger"
	"github.com/Faultbox/meshlayer/internal/progress"
	"github.com/Faultbox/meshlayer/pkg/mesh"
)

// HistoryEntry records one committed filter run.
type HistoryEntry struct {
	Filter string
	MeshID int
	Params Params
}

// Runner applies filters to document meshes.
type Runner struct {
	doc      *document.Document
	progress *progress.Reporter
	history  []HistoryEntry
	log      *zap.Logger
}

// NewRunner creates a runner for doc. sink receives rate-limited progress
// reports and may be nil.
func NewRunner(doc *document.Document, cfg config.ProgressConfig, sink progress.Sink) *Runner {
	return &Runner{
		doc:      doc,
		progress: progress.New(cfg, sink),
		log:      logger.Named("filter"),
	}
}

// Progress returns the reporter used for runs, so a host can cancel them.
func (r *Runner) Progress() *progress.Reporter { return r.progress }

// Document returns the document the runner works on.
func (r *Runner) Document() *document.Document { return r.doc }

// History returns the committed runs, oldest first.
func (r *Runner) History() []HistoryEntry {
	return append([]HistoryEntry(nil), r.history...)
}

// Run applies f to the current mesh and records it in the history.
func (r *Runner) Run(f Filter, p Params) error {
	target := r.doc.Current()
	if target == nil {
		return fmt.Errorf("%s: %w: document has no current mesh", f.Name(), document.ErrUnknownMesh)
	}
	return r.execute(f, target, p, false)
}

// RunOn applies f to mm and records it in the history.
func (r *Runner) RunOn(f Filter, mm *document.MeshModel, p Params) error {
	return r.execute(f, mm, p, false)
}

// Preview applies f to mm without recording it.
func (r *Runner) Preview(f Filter, mm *document.MeshModel, p Params) error {
	return r.execute(f, mm, p, true)
}

// Check returns ErrPreconditions when mm does not satisfy f's preconditions.
func Check(f Filter, m *mesh.Mesh) error {
	missing := m.MissingItems(f.Capabilities().PreConditions)
	if len(missing) == 0 {
		return nil
	}
	return fmt.Errorf("%w: %s needs %s", ErrPreconditions, f.Name(), strings.Join(missing, ", "))
}

func (r *Runner) execute(f Filter, mm *document.MeshModel, p Params, preview bool) error {
	m := mm.Mesh
	if err := Check(f, m); err != nil {
		r.log.Warn("filter skipped", zap.String("filter", f.Name()), zap.Int("mesh", mm.ID()), zap.Error(err))
		return err
	}

	r.progress.Reset()
	if err := m.EnableWithProgress(f.Capabilities().Requirements, r.progress.CallBack()); err != nil {
		return fmt.Errorf("%s: preparing mesh: %w", f.Name(), err)
	}

	params := f.DefaultParams().With(p)
	start := time.Now()
	if err := f.Apply(m, params, r.progress.CallBack()); err != nil {
		r.log.Warn("filter failed", zap.String("filter", f.Name()), zap.Int("mesh", mm.ID()), zap.Error(err))
		return fmt.Errorf("%s: %w", f.Name(), err)
	}
	enableDerived(m, f.Capabilities())

	if preview {
		r.log.Debug("filter previewed", zap.String("filter", f.Name()), zap.Duration("took", time.Since(start)))
		return nil
	}
	r.history = append(r.history, HistoryEntry{Filter: f.Name(), MeshID: mm.ID(), Params: params})
	r.log.Info("filter applied",
		zap.String("filter", f.Name()),
		zap.String("mesh", mm.Label()),
		zap.Duration("took", time.Since(start)),
	)
	return nil
}

// enableDerived turns on the color storage implied by a filter's class and
// post-conditions.
func enableDerived(m *mesh.Mesh, caps mesh.Capabilities) {
	if caps.Class.Has(mesh.ClassFaceColoring) {
		m.Enable(mesh.FaceColor)
	}
	if caps.Class.Has(mesh.ClassVertexColoring) {
		m.Enable(mesh.VertColor)
	}
	if caps.PostConditions.Has(mesh.Color) {
		m.Enable(mesh.Color)
	}
}
