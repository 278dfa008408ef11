package mesh

import (
	"fmt"
	"regexp"
)

// maskNames maps the names used in filter descriptor files to mask bits.
var maskNames = map[string]Mask{
	"MM_NONE":           None,
	"MM_VERTCOORD":      VertCoord,
	"MM_VERTNORMAL":     VertNormal,
	"MM_VERTFLAG":       VertFlag,
	"MM_VERTCOLOR":      VertColor,
	"MM_VERTQUALITY":    VertQuality,
	"MM_VERTMARK":       VertMark,
	"MM_VERTFACETOPO":   VertFaceTopo,
	"MM_VERTCURV":       VertCurv,
	"MM_VERTCURVDIR":    VertCurvDir,
	"MM_VERTRADIUS":     VertRadius,
	"MM_VERTTEXCOORD":   VertTexCoord,
	"MM_VERTNUMBER":     VertNumber,
	"MM_FACEVERT":       FaceVert,
	"MM_FACENORMAL":     FaceNormal,
	"MM_FACEFLAG":       FaceFlag,
	"MM_FACECOLOR":      FaceColor,
	"MM_FACEQUALITY":    FaceQuality,
	"MM_FACEMARK":       FaceMark,
	"MM_FACEFACETOPO":   FaceFaceTopo,
	"MM_FACENUMBER":     FaceNumber,
	"MM_WEDGTEXCOORD":   WedgTexCoord,
	"MM_WEDGNORMAL":     WedgNormal,
	"MM_WEDGCOLOR":      WedgColor,
	"MM_UNKNOWN":        Unknown,
	"MM_VERTFLAGSELECT": VertFlagSelect,
	"MM_FACEFLAGSELECT": FaceFlagSelect,
	"MM_VERTFLAGBORDER": VertFlagBorder,
	"MM_FACEFLAGBORDER": FaceFlagBorder,
	"MM_CAMERA":         Camera,
	"MM_TRANSFMATRIX":   TransfMatrix,
	"MM_COLOR":          Color,
	"MM_POLYGONAL":      Polygonal,
	"MM_ALL":            All,
}

// shortNames maps Mask.String names (e.g. "VertColor") to their bit.
var shortNames = func() map[string]Mask {
	out := make(map[string]Mask, maskBitCount)
	for i, name := range bitNames {
		out[name] = Mask(1) << i
	}
	return out
}()

var nonWord = regexp.MustCompile(`\W+`)

// LookupMaskName resolves a single attribute name, accepting both the
// descriptor form ("MM_VERTCOLOR") and the short form ("VertColor").
func LookupMaskName(name string) (Mask, bool) {
	if m, ok := maskNames[name]; ok {
		return m, true
	}
	m, ok := shortNames[name]
	return m, ok
}

// ParseMaskNames ORs together the masks of all names.
func ParseMaskNames(names []string) (Mask, error) {
	var out Mask
	for _, name := range names {
		m, ok := LookupMaskName(name)
		if !ok {
			return None, fmt.Errorf("%w: %q", ErrUnknownMaskName, name)
		}
		out |= m
	}
	return out, nil
}

// ParseMaskExpression parses a post-condition style string such as
// "MM_VERTCOLOR | MM_FACECOLOR", splitting on any run of non-word characters.
func ParseMaskExpression(expr string) (Mask, error) {
	var names []string
	for _, part := range nonWord.Split(expr, -1) {
		if part != "" {
			names = append(names, part)
		}
	}
	return ParseMaskNames(names)
}
