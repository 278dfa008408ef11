// Package mesh provides a triangle mesh with optional per-element attribute
// buffers, the attribute mask that tracks which of them are allocated, and
// point-in-time snapshots of mutable attribute state.
//
// A Mesh is not safe for concurrent use. All mutation, attribute
// enabling/disabling and snapshot capture/apply are expected to run on a
// single goroutine; callers that share a mesh must serialize access.
package mesh

import (
	"math/bits"
	"strings"
)

// Mask is a set of mesh attributes and capabilities.
type Mask uint64

// Attribute bits. The enumeration is closed: any bit outside All is a
// programming error when passed to Enable or Disable.
const (
	VertCoord Mask = 1 << iota
	VertNormal
	VertFlag
	VertColor
	VertQuality
	VertMark
	VertFaceTopo
	VertCurv
	VertCurvDir
	VertRadius
	VertTexCoord
	VertNumber
	FaceVert
	FaceNormal
	FaceFlag
	FaceColor
	FaceQuality
	FaceMark
	FaceFaceTopo
	FaceNumber
	WedgTexCoord
	WedgNormal
	WedgColor
	Unknown
	VertFlagSelect
	FaceFlagSelect
	VertFlagBorder
	FaceFlagBorder
	Camera
	TransfMatrix
	Color
	Polygonal

	maskBitCount = iota
)

const (
	// None is the empty mask.
	None Mask = 0

	// Baseline holds the attributes every mesh carries; they are never optional.
	Baseline = VertCoord | VertNormal | VertFlag | FaceVert | FaceNormal | FaceFlag

	// All is every bit of the closed enumeration.
	All Mask = 1<<maskBitCount - 1

	// Border is either border flag.
	Border = VertFlagBorder | FaceFlagBorder

	// Topology is both adjacency structures.
	Topology = VertFaceTopo | FaceFaceTopo
)

var bitNames = [maskBitCount]string{
	"VertCoord", "VertNormal", "VertFlag", "VertColor", "VertQuality",
	"VertMark", "VertFaceTopo", "VertCurv", "VertCurvDir", "VertRadius",
	"VertTexCoord", "VertNumber", "FaceVert", "FaceNormal", "FaceFlag",
	"FaceColor", "FaceQuality", "FaceMark", "FaceFaceTopo", "FaceNumber",
	"WedgTexCoord", "WedgNormal", "WedgColor", "Unknown", "VertFlagSelect",
	"FaceFlagSelect", "VertFlagBorder", "FaceFlagBorder", "Camera",
	"TransfMatrix", "Color", "Polygonal",
}

// Union returns m | other.
func (m Mask) Union(other Mask) Mask { return m | other }

// Intersect returns m & other.
func (m Mask) Intersect(other Mask) Mask { return m & other }

// Without returns m with the bits of other cleared.
func (m Mask) Without(other Mask) Mask { return m &^ other }

// Complement returns every bit of All not set in m.
func (m Mask) Complement() Mask { return All &^ m }

// Has reports whether every bit of other is set in m.
// The empty mask is contained in every mask.
func (m Mask) Has(other Mask) bool { return m&other == other }

// HasAny reports whether at least one bit of other is set in m.
func (m Mask) HasAny(other Mask) bool { return m&other != 0 }

// IsEmpty reports whether no bit is set.
func (m Mask) IsEmpty() bool { return m == 0 }

// Valid reports whether m only uses bits of the closed enumeration.
func (m Mask) Valid() bool { return m&^All == 0 }

// Count returns the number of bits set.
func (m Mask) Count() int { return bits.OnesCount64(uint64(m)) }

// Bits decomposes m into its single-bit masks, lowest bit first.
func (m Mask) Bits() []Mask {
	out := make([]Mask, 0, m.Count())
	for rest := uint64(m); rest != 0; rest &= rest - 1 {
		out = append(out, Mask(rest&-rest))
	}
	return out
}

// String returns the attribute names joined by "|".
func (m Mask) String() string {
	if m == None {
		return "None"
	}
	var names []string
	for _, b := range m.Bits() {
		idx := bits.TrailingZeros64(uint64(b))
		if idx < maskBitCount {
			names = append(names, bitNames[idx])
		} else {
			names = append(names, "?")
		}
	}
	return strings.Join(names, "|")
}
