package document

import "errors"

var (
	// ErrLastMesh is returned when removing the only mesh of a document.
	ErrLastMesh = errors.New("document: cannot remove the last mesh")
	// ErrUnknownMesh is returned for a mesh id the document never issued or already removed.
	ErrUnknownMesh = errors.New("document: unknown mesh")
	// ErrUnknownRaster is returned for a raster id the document does not hold.
	ErrUnknownRaster = errors.New("document: unknown raster")
)
