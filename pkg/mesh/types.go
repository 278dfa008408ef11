package mesh

import "github.com/Faultbox/meshlayer/pkg/math"

// Flags holds per-element state bits.
type Flags uint32

// Element flags. FlagBorder marks a border vertex; FlagBorder0..2 mark the
// border edges of a face, edge i running from corner i to corner (i+1)%3.
const (
	FlagDeleted Flags = 1 << iota
	FlagSelected
	FlagBorder
	FlagBorder0
	FlagBorder1
	FlagBorder2
	FlagVisited

	faceBorderFlags = FlagBorder0 | FlagBorder1 | FlagBorder2
)

// Has reports whether every bit of f2 is set.
func (f Flags) Has(f2 Flags) bool { return f&f2 == f2 }

// Color4b is an RGBA color with 8 bits per channel.
type Color4b [4]uint8

// TexCoord is a texture coordinate with the index of the texture it refers to.
type TexCoord struct {
	UV    math.Vec2
	Index int16
}

// Curvature holds mean and Gaussian curvature.
type Curvature struct {
	Mean, Gaussian float32
}

// CurvatureDir holds principal curvature directions and magnitudes.
type CurvatureDir struct {
	Max, Min math.Vec3
	K1, K2   float32
}

// Link references corner Z of face F. F is -1 for no face.
type Link struct {
	F int
	Z int8
}

var noLink = Link{F: -1, Z: -1}

// Valid reports whether the link references a face.
func (l Link) Valid() bool { return l.F >= 0 }

// Vertex is a mesh vertex.
type Vertex struct {
	P     math.Vec3
	N     math.Vec3
	Flags Flags
}

// IsDeleted reports whether the vertex is a tombstone.
func (v *Vertex) IsDeleted() bool { return v.Flags.Has(FlagDeleted) }

// IsSelected reports whether the vertex is selected.
func (v *Vertex) IsSelected() bool { return v.Flags.Has(FlagSelected) }

// IsBorder reports whether the vertex lies on a mesh boundary.
func (v *Vertex) IsBorder() bool { return v.Flags.Has(FlagBorder) }

// SetSelected sets or clears the selection flag only.
func (v *Vertex) SetSelected(on bool) { v.Flags = setFlag(v.Flags, FlagSelected, on) }

// Face is a triangle referencing three vertices by index.
type Face struct {
	V     [3]int
	N     math.Vec3
	Flags Flags
}

// IsDeleted reports whether the face is a tombstone.
func (f *Face) IsDeleted() bool { return f.Flags.Has(FlagDeleted) }

// IsSelected reports whether the face is selected.
func (f *Face) IsSelected() bool { return f.Flags.Has(FlagSelected) }

// SetSelected sets or clears the selection flag only.
func (f *Face) SetSelected(on bool) { f.Flags = setFlag(f.Flags, FlagSelected, on) }

// IsBorder reports whether edge (0..2) of the face is a border edge.
func (f *Face) IsBorder(edge int) bool { return f.Flags.Has(FlagBorder0 << edge) }

// IsAnyBorder reports whether any edge of the face is a border edge.
func (f *Face) IsAnyBorder() bool { return f.Flags&faceBorderFlags != 0 }

func setFlag(f, bit Flags, on bool) Flags {
	if on {
		return f | bit
	}
	return f &^ bit
}

// Intrinsics describes the projection of a camera.
type Intrinsics struct {
	FocalMM     float32
	ViewportPx  [2]int
	PixelSizeMM math.Vec2
	CenterPx    math.Vec2
	Distortion  [2]float32
}

// Extrinsics places a camera in world space.
type Extrinsics struct {
	Rotation    math.Mat4
	Translation math.Vec3
}

// Shot is the camera record attached to a mesh or raster.
type Shot struct {
	Intrinsics Intrinsics
	Extrinsics Extrinsics
}

// DefaultShot returns a shot with an identity rotation.
func DefaultShot() Shot {
	return Shot{Extrinsics: Extrinsics{Rotation: math.Identity()}}
}

// Box is an axis-aligned bounding box. An empty box has Min > Max.
type Box struct {
	Min, Max math.Vec3
}

// IsEmpty reports whether the box contains no point.
func (b Box) IsEmpty() bool { return b.Min.X > b.Max.X }

// Diag returns the length of the box diagonal, 0 for an empty box.
func (b Box) Diag() float32 {
	if b.IsEmpty() {
		return 0
	}
	return b.Min.Distance(b.Max)
}
