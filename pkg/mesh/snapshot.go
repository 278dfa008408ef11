package mesh

import (
	"fmt"

	"github.com/Faultbox/meshlayer/pkg/math"
)

// SnapshotMask is every attribute a Snapshot can capture.
const SnapshotMask = VertColor | VertQuality | VertCoord | VertNormal |
	VertFlagSelect | FaceFlagSelect | FaceColor | FaceQuality |
	TransfMatrix | Camera

// Snapshot is a point-in-time copy of a subset of the mutable attributes of
// one mesh. Values are stored per live element, in container order.
//
// A snapshot does not keep its mesh alive in any meaningful sense: it must
// not be applied after the mesh has been removed from its document.
type Snapshot struct {
	mesh *Mesh
	mask Mask

	vertColor   []Color4b
	vertQuality []float32
	vertCoord   []math.Vec3
	vertNormal  []math.Vec3
	vertSelect  []bool
	faceSelect  []bool
	faceColor   []Color4b
	faceQuality []float32

	tr   math.Mat4
	shot Shot
}

// Capture records the attributes of mask on m, replacing any previous
// capture. Bits outside SnapshotMask are ignored, as are optional buffers
// that are not enabled on m.
func (s *Snapshot) Capture(m *Mesh, mask Mask) {
	*s = Snapshot{mesh: m}
	mask &= SnapshotMask
	for _, opt := range []Mask{VertColor, VertQuality, FaceColor, FaceQuality} {
		if mask.Has(opt) && !m.enabled.Has(opt) {
			mask &^= opt
		}
	}
	s.mask = mask

	if mask.Has(VertColor) {
		s.vertColor = captureVerts(m, m.vColor.data)
	}
	if mask.Has(VertQuality) {
		s.vertQuality = captureVerts(m, m.vQuality.data)
	}
	if mask.Has(VertCoord) {
		s.vertCoord = captureVertField(m, func(v *Vertex) math.Vec3 { return v.P })
	}
	if mask.Has(VertNormal) {
		s.vertNormal = captureVertField(m, func(v *Vertex) math.Vec3 { return v.N })
	}
	if mask.Has(VertFlagSelect) {
		s.vertSelect = captureVertField(m, (*Vertex).IsSelected)
	}
	if mask.Has(FaceFlagSelect) {
		s.faceSelect = captureFaceField(m, (*Face).IsSelected)
	}
	if mask.Has(FaceColor) {
		s.faceColor = captureFaces(m, m.fColor.data)
	}
	if mask.Has(FaceQuality) {
		s.faceQuality = captureFaces(m, m.fQuality.data)
	}
	if mask.Has(TransfMatrix) {
		s.tr = m.Tr
	}
	if mask.Has(Camera) {
		s.shot = m.Shot
	}
}

// Captured reports whether the snapshot holds a capture.
func (s *Snapshot) Captured() bool { return s.mesh != nil }

// Mask returns the attributes actually captured.
func (s *Snapshot) Mask() Mask { return s.mask }

// Mesh returns the mesh the snapshot was captured from, nil when empty.
func (s *Snapshot) Mesh() *Mesh { return s.mesh }

// Reset discards the capture.
func (s *Snapshot) Reset() { *s = Snapshot{} }

// Apply writes the captured values back onto m. It fails without modifying
// m when the snapshot is empty, was captured from another mesh, or any
// captured array no longer matches the live element count. All checks run
// before the first write. Restoring normals also recomputes face normals;
// restoring selection only touches the selection flag.
func (s *Snapshot) Apply(m *Mesh) error {
	if err := s.check(m); err != nil {
		return err
	}

	if s.mask.Has(VertColor) {
		restoreVerts(m, m.vColor.data, s.vertColor)
	}
	if s.mask.Has(VertQuality) {
		restoreVerts(m, m.vQuality.data, s.vertQuality)
	}
	if s.mask.Has(VertCoord) {
		restoreVertField(m, s.vertCoord, func(v *Vertex, p math.Vec3) { v.P = p })
	}
	if s.mask.Has(VertNormal) {
		restoreVertField(m, s.vertNormal, func(v *Vertex, n math.Vec3) { v.N = n })
		m.UpdateFaceNormals()
	}
	if s.mask.Has(FaceColor) {
		restoreFaces(m, m.fColor.data, s.faceColor)
	}
	if s.mask.Has(FaceQuality) {
		restoreFaces(m, m.fQuality.data, s.faceQuality)
	}
	if s.mask.Has(VertFlagSelect) {
		restoreVertField(m, s.vertSelect, (*Vertex).SetSelected)
	}
	if s.mask.Has(FaceFlagSelect) {
		restoreFaceField(m, s.faceSelect, (*Face).SetSelected)
	}
	if s.mask.HasAny(VertFlagSelect | FaceFlagSelect) {
		m.CountSelected()
	}
	if s.mask.Has(TransfMatrix) {
		m.Tr = s.tr
	}
	if s.mask.Has(Camera) {
		m.Shot = s.shot
	}
	return nil
}

func (s *Snapshot) check(m *Mesh) error {
	if s.mesh == nil {
		return ErrSnapshotEmpty
	}
	if m != s.mesh {
		return ErrSnapshotMesh
	}
	for _, opt := range []Mask{VertColor, VertQuality, FaceColor, FaceQuality} {
		if s.mask.Has(opt) && !m.enabled.Has(opt) {
			return fmt.Errorf("%w: %s", ErrAttributeMissing, opt)
		}
	}

	nv, nf := m.LiveVertexCount(), m.LiveFaceCount()
	vertLens := map[Mask]int{
		VertColor:      len(s.vertColor),
		VertQuality:    len(s.vertQuality),
		VertCoord:      len(s.vertCoord),
		VertNormal:     len(s.vertNormal),
		VertFlagSelect: len(s.vertSelect),
	}
	faceLens := map[Mask]int{
		FaceFlagSelect: len(s.faceSelect),
		FaceColor:      len(s.faceColor),
		FaceQuality:    len(s.faceQuality),
	}
	for bit, n := range vertLens {
		if s.mask.Has(bit) && n != nv {
			return fmt.Errorf("%w: %s captured %d vertices, mesh has %d", ErrSizeMismatch, bit, n, nv)
		}
	}
	for bit, n := range faceLens {
		if s.mask.Has(bit) && n != nf {
			return fmt.Errorf("%w: %s captured %d faces, mesh has %d", ErrSizeMismatch, bit, n, nf)
		}
	}
	return nil
}

func captureVerts[T any](m *Mesh, col []T) []T {
	out := make([]T, 0, len(col))
	for i := range m.vert {
		if !m.vert[i].IsDeleted() {
			out = append(out, col[i])
		}
	}
	return out
}

func captureFaces[T any](m *Mesh, col []T) []T {
	out := make([]T, 0, len(col))
	for i := range m.face {
		if !m.face[i].IsDeleted() {
			out = append(out, col[i])
		}
	}
	return out
}

func captureVertField[T any](m *Mesh, get func(*Vertex) T) []T {
	out := make([]T, 0, len(m.vert))
	for i := range m.vert {
		if v := &m.vert[i]; !v.IsDeleted() {
			out = append(out, get(v))
		}
	}
	return out
}

func captureFaceField[T any](m *Mesh, get func(*Face) T) []T {
	out := make([]T, 0, len(m.face))
	for i := range m.face {
		if f := &m.face[i]; !f.IsDeleted() {
			out = append(out, get(f))
		}
	}
	return out
}

func restoreVerts[T any](m *Mesh, col, saved []T) {
	k := 0
	for i := range m.vert {
		if !m.vert[i].IsDeleted() {
			col[i] = saved[k]
			k++
		}
	}
}

func restoreFaces[T any](m *Mesh, col, saved []T) {
	k := 0
	for i := range m.face {
		if !m.face[i].IsDeleted() {
			col[i] = saved[k]
			k++
		}
	}
}

func restoreVertField[T any](m *Mesh, saved []T, set func(*Vertex, T)) {
	k := 0
	for i := range m.vert {
		if v := &m.vert[i]; !v.IsDeleted() {
			set(v, saved[k])
			k++
		}
	}
}

func restoreFaceField[T any](m *Mesh, saved []T, set func(*Face, T)) {
	k := 0
	for i := range m.face {
		if f := &m.face[i]; !f.IsDeleted() {
			set(f, saved[k])
			k++
		}
	}
}
