package mesh

import (
	"fmt"

	"github.com/Faultbox/meshlayer/pkg/math"
)

// Mesh is a triangle mesh with tombstone deletion: deleted vertices and
// faces keep their slot, flagged FlagDeleted, until Compact is called.
//
// Optional attribute buffers are only allocated while their bit is enabled
// (see Enable and Disable) and always match the vertex or face count.
type Mesh struct {
	vert []Vertex
	face []Face

	// Tr is the layer transform.
	Tr math.Mat4
	// Shot is the camera record.
	Shot Shot
	// Color is the per-mesh color.
	Color Color4b
	// Bounds is refreshed by UpdateBounds.
	Bounds Box

	// SelectedVertices and SelectedFaces are refreshed by CountSelected.
	SelectedVertices int
	SelectedFaces    int

	enabled Mask
	// implied holds FaceFaceTopo while it is only enabled because a border
	// bit needed it.
	implied Mask

	vColor    optional[Color4b]
	vQuality  optional[float32]
	vTexCoord optional[TexCoord]
	vMark     optional[int]
	vCurv     optional[Curvature]
	vCurvDir  optional[CurvatureDir]
	vRadius   optional[float32]
	vVF       optional[Link]

	fColor       optional[Color4b]
	fQuality     optional[float32]
	fMark        optional[int]
	fWedgeTex    optional[[3]TexCoord]
	fWedgeColor  optional[[3]Color4b]
	fWedgeNormal optional[[3]math.Vec3]
	fFF          optional[[3]Link]
	fVF          optional[[3]Link]

	vcols map[Mask]column
	fcols map[Mask]column
}

// New returns an empty mesh with only the baseline attributes enabled and
// an identity transform.
func New() *Mesh {
	m := &Mesh{
		Tr:      math.Identity(),
		Shot:    DefaultShot(),
		Bounds:  emptyBox(),
		enabled: Baseline,
	}
	m.vVF.fill = noLink
	m.fFF.fill = [3]Link{noLink, noLink, noLink}
	m.fVF.fill = [3]Link{noLink, noLink, noLink}

	m.vcols = map[Mask]column{
		VertColor:    &m.vColor,
		VertQuality:  &m.vQuality,
		VertTexCoord: &m.vTexCoord,
		VertMark:     &m.vMark,
		VertCurv:     &m.vCurv,
		VertCurvDir:  &m.vCurvDir,
		VertRadius:   &m.vRadius,
		VertFaceTopo: &m.vVF,
	}
	m.fcols = map[Mask]column{
		FaceColor:    &m.fColor,
		FaceQuality:  &m.fQuality,
		FaceMark:     &m.fMark,
		WedgTexCoord: &m.fWedgeTex,
		WedgColor:    &m.fWedgeColor,
		WedgNormal:   &m.fWedgeNormal,
		FaceFaceTopo: &m.fFF,
		VertFaceTopo: &m.fVF,
	}
	return m
}

// VertexCount returns the number of vertex slots, deleted ones included.
func (m *Mesh) VertexCount() int { return len(m.vert) }

// FaceCount returns the number of face slots, deleted ones included.
func (m *Mesh) FaceCount() int { return len(m.face) }

// Vertex returns vertex i for in-place modification.
func (m *Mesh) Vertex(i int) *Vertex { return &m.vert[i] }

// Face returns face i for in-place modification.
func (m *Mesh) Face(i int) *Face { return &m.face[i] }

// LiveVertexCount returns the number of vertices not marked deleted.
func (m *Mesh) LiveVertexCount() int {
	n := 0
	for i := range m.vert {
		if !m.vert[i].IsDeleted() {
			n++
		}
	}
	return n
}

// LiveFaceCount returns the number of faces not marked deleted.
func (m *Mesh) LiveFaceCount() int {
	n := 0
	for i := range m.face {
		if !m.face[i].IsDeleted() {
			n++
		}
	}
	return n
}

// AddVertex appends a vertex at p and returns its index. Enabled optional
// vertex buffers grow with it.
func (m *Mesh) AddVertex(p math.Vec3) int {
	m.vert = append(m.vert, Vertex{P: p})
	for _, c := range m.vcols {
		c.grow()
	}
	return len(m.vert) - 1
}

// AddFace appends the triangle (a, b, c) and returns its index. The face
// normal is computed from the corner positions. Adjacency is not updated;
// call UpdateTopology after a batch of edits.
//
// Referencing a missing or deleted vertex is a programming error.
func (m *Mesh) AddFace(a, b, c int) int {
	idx := [3]int{a, b, c}
	for _, v := range idx {
		if v < 0 || v >= len(m.vert) || m.vert[v].IsDeleted() {
			panic(fmt.Sprintf("mesh: face references invalid vertex %d", v))
		}
	}
	m.face = append(m.face, Face{V: idx})
	fi := len(m.face) - 1
	m.face[fi].N = m.faceNormal(fi)
	for _, col := range m.fcols {
		col.grow()
	}
	return fi
}

// DeleteVertex marks vertex i deleted. Faces using it are left untouched.
func (m *Mesh) DeleteVertex(i int) {
	m.vert[i].Flags |= FlagDeleted
}

// DeleteFace marks face i deleted.
func (m *Mesh) DeleteFace(i int) {
	m.face[i].Flags |= FlagDeleted
}

// Compact physically removes deleted elements, remaps face indices and
// rebuilds every enabled derived structure. Live faces that reference a
// deleted vertex are removed too.
func (m *Mesh) Compact() {
	remap := make([]int, len(m.vert))
	keepV := make([]int, 0, len(m.vert))
	for i := range m.vert {
		if m.vert[i].IsDeleted() {
			remap[i] = -1
			continue
		}
		remap[i] = len(keepV)
		keepV = append(keepV, i)
	}

	keepF := make([]int, 0, len(m.face))
	for i := range m.face {
		f := &m.face[i]
		if f.IsDeleted() || remap[f.V[0]] < 0 || remap[f.V[1]] < 0 || remap[f.V[2]] < 0 {
			continue
		}
		keepF = append(keepF, i)
	}

	verts := make([]Vertex, len(keepV))
	for i, old := range keepV {
		verts[i] = m.vert[old]
	}
	faces := make([]Face, len(keepF))
	for i, old := range keepF {
		f := m.face[old]
		for z := range f.V {
			f.V[z] = remap[f.V[z]]
		}
		faces[i] = f
	}
	m.vert, m.face = verts, faces

	for _, c := range m.vcols {
		c.compact(keepV)
	}
	for _, c := range m.fcols {
		c.compact(keepF)
	}
	m.UpdateTopology()
	if m.enabled.HasAny(Border) {
		m.deriveBorders()
	}
}

// CountSelected refreshes SelectedVertices and SelectedFaces.
func (m *Mesh) CountSelected() {
	m.SelectedVertices, m.SelectedFaces = 0, 0
	for i := range m.vert {
		if v := &m.vert[i]; !v.IsDeleted() && v.IsSelected() {
			m.SelectedVertices++
		}
	}
	for i := range m.face {
		if f := &m.face[i]; !f.IsDeleted() && f.IsSelected() {
			m.SelectedFaces++
		}
	}
}

// UpdateBounds recomputes Bounds over live vertices.
func (m *Mesh) UpdateBounds() {
	b := emptyBox()
	for i := range m.vert {
		if m.vert[i].IsDeleted() {
			continue
		}
		b.Min = b.Min.Min(m.vert[i].P)
		b.Max = b.Max.Max(m.vert[i].P)
	}
	m.Bounds = b
}

func emptyBox() Box {
	const big = float32(1e30)
	return Box{
		Min: math.Vec3{X: big, Y: big, Z: big},
		Max: math.Vec3{X: -big, Y: -big, Z: -big},
	}
}

// Optional buffer accessors. Each returns nil while its attribute is
// disabled; the returned slice is indexed like the element container and
// may be modified in place.

// VertColors returns the per-vertex colors.
func (m *Mesh) VertColors() []Color4b { return m.vColor.slice() }

// VertQualities returns the per-vertex quality values.
func (m *Mesh) VertQualities() []float32 { return m.vQuality.slice() }

// VertTexCoords returns the per-vertex texture coordinates.
func (m *Mesh) VertTexCoords() []TexCoord { return m.vTexCoord.slice() }

// VertMarks returns the per-vertex marks.
func (m *Mesh) VertMarks() []int { return m.vMark.slice() }

// VertCurvatures returns the per-vertex curvature.
func (m *Mesh) VertCurvatures() []Curvature { return m.vCurv.slice() }

// VertCurvatureDirs returns the per-vertex principal curvature directions.
func (m *Mesh) VertCurvatureDirs() []CurvatureDir { return m.vCurvDir.slice() }

// VertRadii returns the per-vertex radius.
func (m *Mesh) VertRadii() []float32 { return m.vRadius.slice() }

// FaceColors returns the per-face colors.
func (m *Mesh) FaceColors() []Color4b { return m.fColor.slice() }

// FaceQualities returns the per-face quality values.
func (m *Mesh) FaceQualities() []float32 { return m.fQuality.slice() }

// FaceMarks returns the per-face marks.
func (m *Mesh) FaceMarks() []int { return m.fMark.slice() }

// WedgeTexCoords returns the per-corner texture coordinates.
func (m *Mesh) WedgeTexCoords() [][3]TexCoord { return m.fWedgeTex.slice() }

// WedgeColors returns the per-corner colors.
func (m *Mesh) WedgeColors() [][3]Color4b { return m.fWedgeColor.slice() }

// WedgeNormals returns the per-corner normals.
func (m *Mesh) WedgeNormals() [][3]math.Vec3 { return m.fWedgeNormal.slice() }
