package mesh

import (
	"cmp"
	"slices"

	"github.com/Faultbox/meshlayer/pkg/math"
)

// edge is a face edge keyed by its sorted vertex pair.
type edge struct {
	v0, v1 int
	f      int
	z      int8
}

func compareEdges(a, b edge) int {
	if c := cmp.Compare(a.v0, b.v0); c != 0 {
		return c
	}
	if c := cmp.Compare(a.v1, b.v1); c != 0 {
		return c
	}
	if c := cmp.Compare(a.f, b.f); c != 0 {
		return c
	}
	return cmp.Compare(a.z, b.z)
}

// sortedEdges returns every edge of every live face, sorted so that edges
// sharing the same vertex pair are contiguous.
func (m *Mesh) sortedEdges() []edge {
	edges := make([]edge, 0, 3*len(m.face))
	for fi := range m.face {
		f := &m.face[fi]
		if f.IsDeleted() {
			continue
		}
		for z := 0; z < 3; z++ {
			a, b := f.V[z], f.V[(z+1)%3]
			if a > b {
				a, b = b, a
			}
			edges = append(edges, edge{v0: a, v1: b, f: fi, z: int8(z)})
		}
	}
	slices.SortFunc(edges, compareEdges)
	return edges
}

// forEachEdgeGroup calls fn with each run of edges sharing a vertex pair.
func forEachEdgeGroup(edges []edge, fn func(group []edge)) {
	for start := 0; start < len(edges); {
		end := start + 1
		for end < len(edges) && edges[end].v0 == edges[start].v0 && edges[end].v1 == edges[start].v1 {
			end++
		}
		fn(edges[start:end])
		start = end
	}
}

// computeFaceFace links every face edge to the next face sharing it.
// Faces around a non-manifold edge form a ring; a border edge links to
// itself.
func (m *Mesh) computeFaceFace() {
	ff := m.fFF.data
	for i := range ff {
		ff[i] = m.fFF.fill
	}
	forEachEdgeGroup(m.sortedEdges(), func(group []edge) {
		for k, e := range group {
			next := group[(k+1)%len(group)]
			ff[e.f][e.z] = Link{F: next.f, Z: next.z}
		}
	})
}

// computeVertexFace threads, for every vertex, a list of its incident
// face corners: the head lives on the vertex, the next pointers on the
// faces.
func (m *Mesh) computeVertexFace() {
	head := m.vVF.data
	next := m.fVF.data
	for i := range head {
		head[i] = noLink
	}
	for i := range next {
		next[i] = m.fVF.fill
	}
	for fi := range m.face {
		f := &m.face[fi]
		if f.IsDeleted() {
			continue
		}
		for z := 0; z < 3; z++ {
			v := f.V[z]
			next[fi][z] = head[v]
			head[v] = Link{F: fi, Z: int8(z)}
		}
	}
}

// UpdateTopology recomputes every enabled adjacency structure. Call it after
// adding or deleting faces while topology is enabled.
func (m *Mesh) UpdateTopology() {
	if m.enabled.Has(FaceFaceTopo) {
		m.computeFaceFace()
	}
	if m.enabled.Has(VertFaceTopo) {
		m.computeVertexFace()
	}
}

// faceBorderFromTopology flags face edges whose face-face link points back
// to the face itself.
func (m *Mesh) faceBorderFromTopology() {
	ff := m.fFF.data
	for fi := range m.face {
		f := &m.face[fi]
		f.Flags &^= faceBorderFlags
		if f.IsDeleted() {
			continue
		}
		for z := 0; z < 3; z++ {
			if ff[fi][z].F == fi {
				f.Flags |= FlagBorder0 << z
			}
		}
	}
}

// faceBorderFromGeometry flags face edges used by exactly one live face,
// without needing adjacency storage.
func (m *Mesh) faceBorderFromGeometry() {
	for fi := range m.face {
		m.face[fi].Flags &^= faceBorderFlags
	}
	forEachEdgeGroup(m.sortedEdges(), func(group []edge) {
		if len(group) == 1 {
			e := group[0]
			m.face[e.f].Flags |= FlagBorder0 << e.z
		}
	})
}

// vertexBorderFromFace flags both ends of every face border edge.
func (m *Mesh) vertexBorderFromFace() {
	for vi := range m.vert {
		m.vert[vi].Flags &^= FlagBorder
	}
	for fi := range m.face {
		f := &m.face[fi]
		if f.IsDeleted() {
			continue
		}
		for z := 0; z < 3; z++ {
			if f.IsBorder(z) {
				m.vert[f.V[z]].Flags |= FlagBorder
				m.vert[f.V[(z+1)%3]].Flags |= FlagBorder
			}
		}
	}
}

// deriveBorders computes face border flags from face-face adjacency when it
// is allocated, falling back to the geometric pass otherwise, and then
// propagates them to vertices.
func (m *Mesh) deriveBorders() {
	if m.fFF.enabled() {
		m.faceBorderFromTopology()
	} else {
		m.faceBorderFromGeometry()
	}
	m.vertexBorderFromFace()
}

func (m *Mesh) clearBorders() {
	for vi := range m.vert {
		m.vert[vi].Flags &^= FlagBorder
	}
	for fi := range m.face {
		m.face[fi].Flags &^= faceBorderFlags
	}
}

// RefreshBorderFlags re-derives border flags after the mesh was edited.
// It uses face-face adjacency when enabled and the geometric pass otherwise.
func (m *Mesh) RefreshBorderFlags() {
	m.deriveBorders()
}

func (m *Mesh) faceNormal(fi int) math.Vec3 {
	f := &m.face[fi]
	p0, p1, p2 := m.vert[f.V[0]].P, m.vert[f.V[1]].P, m.vert[f.V[2]].P
	return p1.Sub(p0).Cross(p2.Sub(p0)).Normalize()
}

// UpdateFaceNormals recomputes normalized per-face normals for live faces.
func (m *Mesh) UpdateFaceNormals() {
	for fi := range m.face {
		if !m.face[fi].IsDeleted() {
			m.face[fi].N = m.faceNormal(fi)
		}
	}
}

// UpdateVertexNormals sets each live vertex normal to the normalized sum of
// the normals of its incident live faces, refreshing face normals first.
func (m *Mesh) UpdateVertexNormals() {
	m.UpdateFaceNormals()
	for vi := range m.vert {
		m.vert[vi].N = math.Vec3{}
	}
	for fi := range m.face {
		f := &m.face[fi]
		if f.IsDeleted() {
			continue
		}
		for _, v := range f.V {
			m.vert[v].N = m.vert[v].N.Add(f.N)
		}
	}
	for vi := range m.vert {
		m.vert[vi].N = m.vert[vi].N.Normalize()
	}
}

// FaceNeighbor returns the face and edge across edge z of face f, as
// recorded by face-face adjacency. A border edge returns f itself. The
// result is invalid when face-face adjacency is disabled.
func (m *Mesh) FaceNeighbor(f, z int) Link {
	if !m.fFF.enabled() {
		return noLink
	}
	return m.fFF.data[f][z]
}

// IncidentFaces walks vertex-face adjacency and returns the faces using
// vertex v, most recently linked first. It returns nil when vertex-face
// adjacency is disabled.
func (m *Mesh) IncidentFaces(v int) []int {
	if !m.vVF.enabled() {
		return nil
	}
	var out []int
	for l := m.vVF.data[v]; l.Valid(); l = m.fVF.data[l.F][l.Z] {
		out = append(out, l.F)
	}
	return out
}
