package filter

import (
	"fmt"

	"github.com/chewxy/math32"

	"github.com/Faultbox/meshlayer/pkg/math"
	"github.com/Faultbox/meshlayer/pkg/mesh"
)

// QualityFromHeight stores a vertex coordinate into vertex quality.
type QualityFromHeight struct{}

func (QualityFromHeight) Name() string { return "quality_from_height" }

func (QualityFromHeight) Description() string {
	return "Set vertex quality to the vertex coordinate along an axis (0=X, 1=Y, 2=Z)."
}

func (QualityFromHeight) DefaultParams() Params { return Params{"axis": 1} }

func (QualityFromHeight) Capabilities() mesh.Capabilities {
	return mesh.Capabilities{
		Requirements:   mesh.VertQuality,
		PostConditions: mesh.VertQuality,
		Class:          mesh.ClassQuality,
	}
}

func (QualityFromHeight) Apply(m *mesh.Mesh, p Params, cb mesh.CallBack) error {
	axis := int(p["axis"])
	if axis < 0 || axis > 2 {
		return fmt.Errorf("axis must be 0, 1 or 2, got %d", axis)
	}
	q := m.VertQualities()
	n := m.VertexCount()
	for i := 0; i < n; i++ {
		if !report(cb, i, n, "Computing quality") {
			return mesh.ErrCanceled
		}
		v := m.Vertex(i)
		if v.IsDeleted() {
			continue
		}
		q[i] = [3]float32{v.P.X, v.P.Y, v.P.Z}[axis]
	}
	return nil
}

// SelectByQuality selects vertices whose quality lies in [min, max] and the
// faces whose three vertices are all selected.
type SelectByQuality struct{}

func (SelectByQuality) Name() string { return "select_by_quality" }

func (SelectByQuality) Description() string {
	return "Select vertices with quality in [min, max] and faces made only of selected vertices."
}

func (SelectByQuality) DefaultParams() Params { return Params{"min": 0, "max": 1} }

func (SelectByQuality) Capabilities() mesh.Capabilities {
	return mesh.Capabilities{
		PreConditions:  mesh.VertQuality,
		PostConditions: mesh.VertFlagSelect | mesh.FaceFlagSelect,
		Class:          mesh.ClassSelection,
	}
}

func (SelectByQuality) Apply(m *mesh.Mesh, p Params, cb mesh.CallBack) error {
	lo, hi := float32(p["min"]), float32(p["max"])
	q := m.VertQualities()
	n := m.VertexCount()
	for i := 0; i < n; i++ {
		if !report(cb, i, n, "Selecting vertices") {
			return mesh.ErrCanceled
		}
		if v := m.Vertex(i); !v.IsDeleted() {
			v.SetSelected(q[i] >= lo && q[i] <= hi)
		}
	}
	for i := 0; i < m.FaceCount(); i++ {
		f := m.Face(i)
		if f.IsDeleted() {
			continue
		}
		f.SetSelected(m.Vertex(f.V[0]).IsSelected() && m.Vertex(f.V[1]).IsSelected() && m.Vertex(f.V[2]).IsSelected())
	}
	m.CountSelected()
	return nil
}

// Translate moves a mesh by changing its transform, leaving coordinates alone.
type Translate struct{}

func (Translate) Name() string { return "translate" }

func (Translate) Description() string { return "Translate the mesh transform by (x, y, z)." }

func (Translate) DefaultParams() Params { return Params{"x": 0, "y": 0, "z": 0} }

func (Translate) Capabilities() mesh.Capabilities {
	return mesh.Capabilities{
		PostConditions: mesh.TransfMatrix,
		Class:          mesh.ClassLayer,
	}
}

func (Translate) Apply(m *mesh.Mesh, p Params, _ mesh.CallBack) error {
	m.Tr = math.Translate(float32(p["x"]), float32(p["y"]), float32(p["z"])).Mul(m.Tr)
	return nil
}

// ColorizeQuality maps vertex quality onto a red-green-blue ramp. When min
// equals max the range of the live vertices is used.
type ColorizeQuality struct{}

func (ColorizeQuality) Name() string { return "colorize_quality" }

func (ColorizeQuality) Description() string {
	return "Color vertices by quality, red for min through green to blue for max."
}

func (ColorizeQuality) DefaultParams() Params { return Params{"min": 0, "max": 0} }

func (ColorizeQuality) Capabilities() mesh.Capabilities {
	return mesh.Capabilities{
		PreConditions:  mesh.VertQuality,
		Requirements:   mesh.VertColor,
		PostConditions: mesh.VertColor,
		Class:          mesh.ClassVertexColoring | mesh.ClassQuality,
	}
}

func (ColorizeQuality) Apply(m *mesh.Mesh, p Params, cb mesh.CallBack) error {
	lo, hi := float32(p["min"]), float32(p["max"])
	q := m.VertQualities()
	if lo == hi {
		lo, hi = qualityRange(m)
	}
	colors := m.VertColors()
	n := m.VertexCount()
	for i := 0; i < n; i++ {
		if !report(cb, i, n, "Colorizing") {
			return mesh.ErrCanceled
		}
		if m.Vertex(i).IsDeleted() {
			continue
		}
		colors[i] = Ramp(lo, hi, q[i])
	}
	return nil
}

func qualityRange(m *mesh.Mesh) (lo, hi float32) {
	lo, hi = math32.Inf(1), math32.Inf(-1)
	q := m.VertQualities()
	for i := range q {
		if m.Vertex(i).IsDeleted() {
			continue
		}
		lo, hi = math32.Min(lo, q[i]), math32.Max(hi, q[i])
	}
	if lo > hi {
		return 0, 0
	}
	return lo, hi
}

// Ramp returns the color of v on a red (lo) to green to blue (hi) ramp.
// Values outside the range are clamped; an empty range yields red.
func Ramp(lo, hi, v float32) mesh.Color4b {
	t := float32(0)
	if hi > lo {
		t = math32.Max(0, math32.Min(1, (v-lo)/(hi-lo)))
	}
	channel := func(x float32) uint8 { return uint8(math32.Round(x * 255)) }
	if t < 0.5 {
		s := t * 2
		return mesh.Color4b{channel(1 - s), channel(s), 0, 255}
	}
	s := (t - 0.5) * 2
	return mesh.Color4b{0, channel(1 - s), channel(s), 255}
}

// FaceColorFromVertex sets each face color to the average of its vertex
// colors.
type FaceColorFromVertex struct{}

func (FaceColorFromVertex) Name() string { return "face_color_from_vertex" }

func (FaceColorFromVertex) Description() string {
	return "Average the vertex colors of every face into the face color."
}

func (FaceColorFromVertex) DefaultParams() Params { return Params{} }

func (FaceColorFromVertex) Capabilities() mesh.Capabilities {
	return mesh.Capabilities{
		PreConditions:  mesh.VertColor,
		Requirements:   mesh.FaceColor,
		PostConditions: mesh.FaceColor,
		Class:          mesh.ClassFaceColoring,
	}
}

func (FaceColorFromVertex) Apply(m *mesh.Mesh, _ Params, cb mesh.CallBack) error {
	vc, fc := m.VertColors(), m.FaceColors()
	n := m.FaceCount()
	for i := 0; i < n; i++ {
		if !report(cb, i, n, "Averaging colors") {
			return mesh.ErrCanceled
		}
		f := m.Face(i)
		if f.IsDeleted() {
			continue
		}
		var sum [4]int
		for _, vi := range f.V {
			for c := range sum {
				sum[c] += int(vc[vi][c])
			}
		}
		for c := range sum {
			fc[i][c] = uint8(sum[c] / 3)
		}
	}
	return nil
}

// DeleteSelected removes selected faces, selected vertices with the faces
// around them, and vertices left without a face. It changes element counts, so it
// cannot be previewed.
type DeleteSelected struct{}

func (DeleteSelected) Name() string { return "delete_selected" }

func (DeleteSelected) Description() string {
	return "Delete the selected faces and vertices and compact the mesh."
}

func (DeleteSelected) DefaultParams() Params { return Params{} }

func (DeleteSelected) Capabilities() mesh.Capabilities {
	return mesh.Capabilities{
		PostConditions: mesh.VertNumber | mesh.FaceNumber | mesh.VertFlagSelect | mesh.FaceFlagSelect,
		Class:          mesh.ClassSelection,
	}
}

func (DeleteSelected) Apply(m *mesh.Mesh, _ Params, cb mesh.CallBack) error {
	for i := 0; i < m.FaceCount(); i++ {
		f := m.Face(i)
		if f.IsDeleted() {
			continue
		}
		if f.IsSelected() || m.Vertex(f.V[0]).IsSelected() || m.Vertex(f.V[1]).IsSelected() || m.Vertex(f.V[2]).IsSelected() {
			m.DeleteFace(i)
		}
	}
	used := make([]bool, m.VertexCount())
	for i := 0; i < m.FaceCount(); i++ {
		if f := m.Face(i); !f.IsDeleted() {
			for _, vi := range f.V {
				used[vi] = true
			}
		}
	}
	for i := range used {
		if v := m.Vertex(i); !v.IsDeleted() && (v.IsSelected() || !used[i]) {
			m.DeleteVertex(i)
		}
	}
	if cb != nil && !cb(50, "Compacting") {
		return mesh.ErrCanceled
	}
	m.Compact()
	m.UpdateBounds()
	m.CountSelected()
	return nil
}
