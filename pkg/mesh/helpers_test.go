package mesh

import "github.com/Faultbox/meshlayer/pkg/math"

// newQuad returns the unit square split along the (0,2) diagonal:
// 4 vertices, 2 faces, 4 border edges.
func newQuad() *Mesh {
	m := New()
	m.AddVertex(math.Vec3{X: 0, Y: 0, Z: 0})
	m.AddVertex(math.Vec3{X: 1, Y: 0, Z: 0})
	m.AddVertex(math.Vec3{X: 1, Y: 1, Z: 0})
	m.AddVertex(math.Vec3{X: 0, Y: 1, Z: 0})
	m.AddFace(0, 1, 2)
	m.AddFace(0, 2, 3)
	return m
}

// newFan returns four triangles around an interior vertex 0.
func newFan() *Mesh {
	m := New()
	m.AddVertex(math.Vec3{X: 0, Y: 0, Z: 0})
	m.AddVertex(math.Vec3{X: 1, Y: 0, Z: 0})
	m.AddVertex(math.Vec3{X: 0, Y: 1, Z: 0})
	m.AddVertex(math.Vec3{X: -1, Y: 0, Z: 0})
	m.AddVertex(math.Vec3{X: 0, Y: -1, Z: 0})
	m.AddFace(0, 1, 2)
	m.AddFace(0, 2, 3)
	m.AddFace(0, 3, 4)
	m.AddFace(0, 4, 1)
	return m
}
