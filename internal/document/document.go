// Package document holds the layers of a project: the meshes and rasters a
// user works on, which of them is current, and the tags attached to them.
//
// A Document is not safe for concurrent use. All mutation is expected to
// happen on one goroutine, the one driving filters and previews.
package document

import (
	"fmt"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/Faultbox/meshlayer/internal/config"
	"github.com/Faultbox/meshlayer/internal/logger"
	"github.com/Faultbox/meshlayer/pkg/mesh"
)

// Document owns meshes, rasters and tags, and issues their ids.
type Document struct {
	path         string
	defaultLabel string

	meshes  []*MeshModel
	rasters []*RasterModel
	tags    []*Tag

	current       *MeshModel
	currentRaster *RasterModel

	nextMeshID   int
	nextRasterID int
	nextTagID    int

	subs []*subscriber
	log  *zap.Logger
}

// New creates an empty document rooted at cfg.Path.
func New(cfg config.DocumentConfig) *Document {
	d := &Document{
		path:         cfg.Path,
		defaultLabel: cfg.DefaultLabel,
		log:          logger.Named("document"),
	}
	if abs, err := filepath.Abs(cfg.Path); err == nil {
		d.path = abs
	}
	if d.defaultLabel == "" {
		d.defaultLabel = "Mesh"
	}
	return d
}

// Path returns the absolute project directory.
func (d *Document) Path() string { return d.path }

// AddMesh creates a mesh layer. A non-empty path is made absolute; an empty
// label defaults to the file name of path, or to the configured default
// label for meshes created from scratch. The label is disambiguated against
// the existing meshes.
func (d *Document) AddMesh(path, label string, setCurrent bool) *MeshModel {
	if path != "" {
		if abs, err := filepath.Abs(path); err == nil {
			path = abs
		} else {
			d.log.Warn("cannot make mesh path absolute", zap.String("path", path), zap.Error(err))
		}
	}
	if label == "" {
		label = d.defaultLabel
		if path != "" {
			label = filepath.Base(path)
		}
	}

	mm := &MeshModel{
		id:       d.nextMeshID,
		label:    disambiguate(label, func(s string) bool { return d.MeshByLabel(s) != nil }),
		fullPath: path,
		Visible:  true,
		Mesh:     mesh.New(),
		doc:      d,
	}
	d.nextMeshID++
	d.meshes = append(d.meshes, mm)

	d.log.Debug("mesh added", zap.Int("id", mm.id), zap.String("label", mm.label), zap.String("path", path))
	d.emit(MeshSetChanged, mm.id)

	if setCurrent {
		d.SetCurrentMesh(mm.id)
	}
	return mm
}

// RemoveMesh deletes a mesh layer. The last mesh of a document cannot be
// removed. When the current mesh is removed the first remaining mesh
// becomes current.
func (d *Document) RemoveMesh(id int) error {
	idx := d.meshIndex(id)
	if idx < 0 {
		return fmt.Errorf("%w: %d", ErrUnknownMesh, id)
	}
	if len(d.meshes) == 1 {
		return ErrLastMesh
	}

	removed := d.meshes[idx]
	d.meshes = append(d.meshes[:idx], d.meshes[idx+1:]...)
	removed.doc = nil

	d.log.Debug("mesh removed", zap.Int("id", id), zap.String("label", removed.label))
	d.emit(MeshSetChanged, id)

	if d.current == removed {
		d.SetCurrentMesh(d.meshes[0].id)
	}
	return nil
}

// SetCurrentMesh makes id the current mesh. Passing an id this document did
// not issue, or one already removed, is a programming error.
func (d *Document) SetCurrentMesh(id int) {
	idx := d.meshIndex(id)
	if idx < 0 {
		panic(fmt.Sprintf("document: SetCurrentMesh(%d): no such mesh", id))
	}
	d.current = d.meshes[idx]
	d.emit(CurrentMeshChanged, id)
}

// Current returns the current mesh, nil when the document is empty.
func (d *Document) Current() *MeshModel { return d.current }

// Mesh returns the mesh with the given id, or nil.
func (d *Document) Mesh(id int) *MeshModel {
	if idx := d.meshIndex(id); idx >= 0 {
		return d.meshes[idx]
	}
	return nil
}

// MeshByLabel returns the first mesh whose label is label, or nil.
func (d *Document) MeshByLabel(label string) *MeshModel {
	for _, mm := range d.meshes {
		if mm.label == label {
			return mm
		}
	}
	return nil
}

// MeshByFullPath returns the first mesh loaded from path, or nil.
func (d *Document) MeshByFullPath(path string) *MeshModel {
	for _, mm := range d.meshes {
		if mm.fullPath == path {
			return mm
		}
	}
	return nil
}

// Meshes returns the meshes in display order.
func (d *Document) Meshes() []*MeshModel {
	return append([]*MeshModel(nil), d.meshes...)
}

// MeshCount returns the number of meshes.
func (d *Document) MeshCount() int { return len(d.meshes) }

func (d *Document) meshIndex(id int) int {
	for i, mm := range d.meshes {
		if mm.id == id {
			return i
		}
	}
	return -1
}
