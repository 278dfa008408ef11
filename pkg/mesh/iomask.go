package mesh

import "fmt"

// IOMask is the capability mask a file loader reports: which attributes a
// file actually populated. It is a separate vocabulary from Mask and is only
// translated through FromIO.
type IOMask uint32

// Loader capability bits.
const (
	IONone         IOMask = 0
	IOVertCoord    IOMask = 1 << (iota - 1)
	IOVertFlags
	IOVertColor
	IOVertQuality
	IOVertNormal
	IOVertTexCoord
	IOVertRadius
	IOFaceIndex
	IOFaceFlags
	IOFaceColor
	IOFaceQuality
	IOFaceNormal
	IOWedgTexCoord
	IOWedgColor
	IOWedgNormal
	IOCamera
	IOBitPolygonal
)

var ioToMask = map[IOMask]Mask{
	IONone:         None,
	IOVertCoord:    VertCoord,
	IOVertFlags:    VertFlag,
	IOVertColor:    VertColor,
	IOVertQuality:  VertQuality,
	IOVertNormal:   VertNormal,
	IOVertTexCoord: VertTexCoord,
	IOVertRadius:   VertRadius,
	IOFaceIndex:    FaceVert,
	IOFaceFlags:    FaceFlag,
	IOFaceColor:    FaceColor,
	IOFaceQuality:  FaceQuality,
	IOFaceNormal:   FaceNormal,
	IOWedgTexCoord: WedgTexCoord,
	IOWedgColor:    WedgColor,
	IOWedgNormal:   WedgNormal,
	IOCamera:       Camera,
	IOBitPolygonal: Polygonal,
}

// FromIO translates a single loader capability bit into the attribute it
// populates. Passing a combination of bits or an unknown bit is a
// programming error.
func FromIO(single IOMask) Mask {
	m, ok := ioToMask[single]
	if !ok {
		panic(fmt.Sprintf("mesh: no attribute for loader capability %#x", uint32(single)))
	}
	return m
}

// TranslateIO translates every bit of a loader mask.
func TranslateIO(loaded IOMask) Mask {
	out := None
	for bit := IOVertCoord; bit != 0 && bit <= IOBitPolygonal; bit <<= 1 {
		if loaded&bit != 0 {
			out |= FromIO(bit)
		}
	}
	return out
}
