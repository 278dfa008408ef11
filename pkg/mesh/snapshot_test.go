package mesh

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/meshlayer/pkg/math"
)

// scramble overwrites every attribute a snapshot can hold.
func scramble(m *Mesh) {
	for i := 0; i < m.VertexCount(); i++ {
		v := m.Vertex(i)
		v.P = v.P.Add(math.Vec3{X: 3, Y: -2, Z: 7})
		v.N = math.Vec3{X: 1}
		v.SetSelected(!v.IsSelected())
	}
	for i := 0; i < m.FaceCount(); i++ {
		f := m.Face(i)
		f.SetSelected(!f.IsSelected())
	}
	for i := range m.VertColors() {
		m.VertColors()[i] = Color4b{9, 9, 9, 9}
	}
	for i := range m.VertQualities() {
		m.VertQualities()[i] = -1
	}
	for i := range m.FaceColors() {
		m.FaceColors()[i] = Color4b{1, 2, 3, 4}
	}
	for i := range m.FaceQualities() {
		m.FaceQualities()[i] = 42
	}
	m.Tr = math.Translate(5, 5, 5)
	m.Shot.Intrinsics.FocalMM = 99
}

type meshState struct {
	verts       []Vertex
	faces       []Face
	vertColor   []Color4b
	vertQuality []float32
	faceColor   []Color4b
	faceQuality []float32
	tr          math.Mat4
	shot        Shot
}

func stateOf(m *Mesh) meshState {
	return meshState{
		verts:       append([]Vertex(nil), m.vert...),
		faces:       append([]Face(nil), m.face...),
		vertColor:   append([]Color4b(nil), m.VertColors()...),
		vertQuality: append([]float32(nil), m.VertQualities()...),
		faceColor:   append([]Color4b(nil), m.FaceColors()...),
		faceQuality: append([]float32(nil), m.FaceQualities()...),
		tr:          m.Tr,
		shot:        m.Shot,
	}
}

func decoratedQuad() *Mesh {
	m := newQuad()
	m.Enable(VertColor | VertQuality | FaceColor | FaceQuality)
	m.VertColors()[1] = Color4b{255, 0, 0, 255}
	m.VertQualities()[2] = 0.5
	m.FaceColors()[0] = Color4b{0, 255, 0, 255}
	m.FaceQualities()[1] = 3
	m.Vertex(3).SetSelected(true)
	m.Face(1).SetSelected(true)
	m.Shot.Intrinsics.FocalMM = 35
	return m
}

func TestSnapshotRoundTrip(t *testing.T) {
	m := decoratedQuad()
	want := stateOf(m)

	var s Snapshot
	s.Capture(m, SnapshotMask)
	require.True(t, s.Captured())
	assert.Equal(t, SnapshotMask, s.Mask())

	scramble(m)
	require.NoError(t, s.Apply(m))

	got := stateOf(m)
	assert.Equal(t, want.vertColor, got.vertColor)
	assert.Equal(t, want.vertQuality, got.vertQuality)
	assert.Equal(t, want.faceColor, got.faceColor)
	assert.Equal(t, want.faceQuality, got.faceQuality)
	assert.Equal(t, want.tr, got.tr)
	assert.Equal(t, want.shot, got.shot)
	for i := range want.verts {
		assert.Equal(t, want.verts[i].P, got.verts[i].P)
		assert.Equal(t, want.verts[i].N, got.verts[i].N)
		assert.Equal(t, want.verts[i].IsSelected(), got.verts[i].IsSelected())
	}
	for i := range want.faces {
		assert.Equal(t, want.faces[i].IsSelected(), got.faces[i].IsSelected())
	}
}

func TestSnapshotApplyIsRepeatable(t *testing.T) {
	m := decoratedQuad()
	var s Snapshot
	s.Capture(m, VertColor|VertCoord)

	for i := 0; i < 3; i++ {
		scramble(m)
		require.NoError(t, s.Apply(m))
		assert.Equal(t, Color4b{255, 0, 0, 255}, m.VertColors()[1])
		assert.Equal(t, math.Vec3{X: 1, Y: 1, Z: 0}, m.Vertex(2).P)
	}
}

func TestSnapshotOnlyRestoresCapturedFields(t *testing.T) {
	m := decoratedQuad()
	var s Snapshot
	s.Capture(m, VertQuality)

	m.VertQualities()[2] = 7
	m.VertColors()[1] = Color4b{1, 1, 1, 1}
	require.NoError(t, s.Apply(m))

	assert.Equal(t, float32(0.5), m.VertQualities()[2])
	assert.Equal(t, Color4b{1, 1, 1, 1}, m.VertColors()[1])
}

func TestSnapshotEmptyMesh(t *testing.T) {
	m := New()
	var s Snapshot
	s.Capture(m, SnapshotMask)

	require.NoError(t, s.Apply(m))
}

func TestSnapshotSkipsDeletedElements(t *testing.T) {
	m := decoratedQuad()
	m.DeleteVertex(0)
	m.DeleteFace(0)

	var s Snapshot
	s.Capture(m, VertColor|FaceQuality|VertFlagSelect)
	assert.Len(t, s.vertColor, 3)
	assert.Len(t, s.faceQuality, 1)

	scramble(m)
	require.NoError(t, s.Apply(m))
	assert.Equal(t, Color4b{255, 0, 0, 255}, m.VertColors()[1])
	assert.Equal(t, float32(3), m.FaceQualities()[1])
	assert.True(t, m.Vertex(3).IsSelected())
	// The tombstone keeps whatever it had.
	assert.Equal(t, Color4b{9, 9, 9, 9}, m.VertColors()[0])
}

func TestSnapshotRejectsSizeChange(t *testing.T) {
	tests := []struct {
		name string
		edit func(m *Mesh)
	}{
		{"vertex deleted", func(m *Mesh) { m.DeleteVertex(2) }},
		{"vertex added", func(m *Mesh) { m.AddVertex(math.Vec3{X: 4}) }},
		{"face deleted", func(m *Mesh) { m.DeleteFace(0) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := decoratedQuad()
			var s Snapshot
			s.Capture(m, VertColor|VertCoord|FaceFlagSelect|TransfMatrix)

			tt.edit(m)
			m.VertColors()[1] = Color4b{7, 7, 7, 7}
			m.Tr = math.Translate(1, 2, 3)
			before := stateOf(m)

			err := s.Apply(m)
			require.ErrorIs(t, err, ErrSizeMismatch)
			assert.Equal(t, before, stateOf(m), "failed apply must not mutate")
		})
	}
}

func TestSnapshotRejectsOtherMesh(t *testing.T) {
	a, b := decoratedQuad(), decoratedQuad()
	var s Snapshot
	s.Capture(a, VertColor)

	b.VertColors()[0] = Color4b{5, 5, 5, 5}
	assert.ErrorIs(t, s.Apply(b), ErrSnapshotMesh)
	assert.Equal(t, Color4b{5, 5, 5, 5}, b.VertColors()[0])
}

func TestSnapshotEmpty(t *testing.T) {
	var s Snapshot
	assert.False(t, s.Captured())
	assert.ErrorIs(t, s.Apply(newQuad()), ErrSnapshotEmpty)

	m := newQuad()
	s.Capture(m, VertCoord)
	s.Reset()
	assert.ErrorIs(t, s.Apply(m), ErrSnapshotEmpty)
	assert.Nil(t, s.Mesh())
}

func TestSnapshotAttributeDisabledAfterCapture(t *testing.T) {
	m := decoratedQuad()
	var s Snapshot
	s.Capture(m, VertColor|VertCoord)

	m.Disable(VertColor)
	m.Vertex(0).P = math.Vec3{X: 10}

	assert.ErrorIs(t, s.Apply(m), ErrAttributeMissing)
	assert.Equal(t, math.Vec3{X: 10}, m.Vertex(0).P)
}

func TestSnapshotIgnoresDisabledBuffers(t *testing.T) {
	m := newQuad()
	var s Snapshot
	s.Capture(m, VertColor|VertCoord|Polygonal)
	assert.Equal(t, VertCoord, s.Mask())
}

func TestSnapshotSelectionKeepsOtherFlags(t *testing.T) {
	m := newFan()
	m.Enable(VertFlagBorder)
	var s Snapshot
	s.Capture(m, VertFlagSelect|FaceFlagSelect)

	m.Vertex(1).SetSelected(true)
	m.Face(2).SetSelected(true)
	require.NoError(t, s.Apply(m))

	assert.False(t, m.Vertex(1).IsSelected())
	assert.True(t, m.Vertex(1).IsBorder())
	assert.False(t, m.Face(2).IsSelected())
	assert.True(t, m.Face(2).IsBorder(1))
	assert.Equal(t, 0, m.SelectedVertices)
}

func TestSnapshotNormalsRecomputeFaceNormals(t *testing.T) {
	m := newQuad()
	var s Snapshot
	s.Capture(m, VertNormal)

	m.Face(0).N = math.Vec3{X: 1}
	require.NoError(t, s.Apply(m))

	assert.True(t, m.Face(0).N.ApproxEqual(math.Vec3{Z: 1}, 1e-6))
}

func TestSnapshotRecaptureOverwrites(t *testing.T) {
	a, b := decoratedQuad(), newFan()
	var s Snapshot
	s.Capture(a, VertColor)
	s.Capture(b, VertCoord)

	assert.Same(t, b, s.Mesh())
	assert.Equal(t, VertCoord, s.Mask())
	assert.ErrorIs(t, s.Apply(a), ErrSnapshotMesh)
}
