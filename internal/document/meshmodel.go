package document

import (
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/Faultbox/meshlayer/pkg/mesh"
)

// MeshModel is one mesh layer of a document.
type MeshModel struct {
	id       int
	label    string
	fullPath string

	Visible bool
	Mesh    *mesh.Mesh

	// doc does not own the model; it is cleared when the mesh is removed.
	doc *Document
}

// ID returns the id issued by the owning document.
func (mm *MeshModel) ID() int { return mm.id }

// Label returns the display name, unique among the document's meshes.
func (mm *MeshModel) Label() string { return mm.label }

// FullPath returns the absolute path the mesh was loaded from, empty for a
// mesh created from scratch.
func (mm *MeshModel) FullPath() string { return mm.fullPath }

// Document returns the owning document, nil once the mesh was removed.
func (mm *MeshModel) Document() *Document { return mm.doc }

// RelativePath returns FullPath relative to the document directory.
// Meshes stored outside that directory still get a relative path, but a
// warning is logged because the project will not be portable.
func (mm *MeshModel) RelativePath() string {
	if mm.fullPath == "" || mm.doc == nil {
		return mm.fullPath
	}
	rel, err := filepath.Rel(mm.doc.path, mm.fullPath)
	if err != nil {
		mm.doc.log.Warn("mesh path has no relative form", zap.String("path", mm.fullPath), zap.Error(err))
		return mm.fullPath
	}
	if rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		mm.doc.log.Warn("mesh is stored outside the document folder",
			zap.String("label", mm.label), zap.String("path", mm.fullPath), zap.String("document", mm.doc.path))
	}
	return rel
}
