package document

import (
	"path/filepath"
	"strconv"
	"strings"
	"unicode"
)

// disambiguate derives a label that taken does not report as used.
// The extension (everything after the first dot) is preserved; a trailing
// number >= 1 in the base name is incremented, otherwise "_1" is appended.
func disambiguate(label string, taken func(string) bool) string {
	name := filepath.Base(label)
	for taken(name) {
		base, ext := splitExt(name)
		digits := base[len(strings.TrimRightFunc(base, unicode.IsDigit)):]
		if n, err := strconv.Atoi(digits); err == nil && n >= 1 {
			base = base[:len(base)-len(digits)] + strconv.Itoa(n+1)
		} else {
			base += "_1"
		}
		name = base + ext
	}
	return name
}

func splitExt(name string) (base, ext string) {
	if i := strings.IndexByte(name, '.'); i > 0 {
		return name[:i], name[i:]
	}
	return name, ""
}
