package document

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/h2non/filetype"
	"go.uber.org/zap"

	"github.com/Faultbox/meshlayer/pkg/mesh"
)

// headerSize is how much of a plane file is read to recognize its format.
const headerSize = 262

// Plane is one image of a raster layer.
type Plane struct {
	FullPath string
	Semantic string
	// MIME and Extension describe the format recognized from the file header,
	// empty when the format is unknown.
	MIME      string
	Extension string
	IsImage   bool
}

// RasterModel is a registered image layer: one or more planes sharing a
// camera.
type RasterModel struct {
	id     int
	label  string
	planes []*Plane

	Visible bool
	Shot    mesh.Shot

	doc *Document
}

// ID returns the id issued by the owning document.
func (r *RasterModel) ID() int { return r.id }

// Label returns the display name, unique among the document's rasters.
func (r *RasterModel) Label() string { return r.label }

// Planes returns the planes in insertion order.
func (r *RasterModel) Planes() []*Plane {
	return append([]*Plane(nil), r.planes...)
}

// AddPlane attaches another image file to the raster.
func (r *RasterModel) AddPlane(path, semantic string) (*Plane, error) {
	p, err := readPlane(path, semantic)
	if err != nil {
		return nil, err
	}
	if !p.IsImage && r.doc != nil {
		r.doc.log.Warn("raster plane is not a recognized image", zap.String("path", p.FullPath), zap.String("mime", p.MIME))
	}
	r.planes = append(r.planes, p)
	return p, nil
}

func readPlane(path, semantic string) (*Plane, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolving plane path: %w", err)
	}
	f, err := os.Open(abs)
	if err != nil {
		return nil, fmt.Errorf("opening plane: %w", err)
	}
	defer f.Close()

	head := make([]byte, headerSize)
	n, err := io.ReadFull(f, head)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("reading plane header: %w", err)
	}
	head = head[:n]

	p := &Plane{FullPath: abs, Semantic: semantic}
	if kind, err := filetype.Match(head); err == nil && kind != filetype.Unknown {
		p.MIME = kind.MIME.Value
		p.Extension = kind.Extension
		p.IsImage = filetype.IsImage(head)
	}
	return p, nil
}

// AddRaster registers an image file as a new raster layer with a single
// plane, and makes it current. The label is the file name, disambiguated
// against the existing rasters.
func (d *Document) AddRaster(path string) (*RasterModel, error) {
	r := &RasterModel{
		id:      d.nextRasterID,
		label:   disambiguate(filepath.Base(path), func(s string) bool { return d.rasterByLabel(s) != nil }),
		Visible: true,
		Shot:    mesh.DefaultShot(),
		doc:     d,
	}
	if _, err := r.AddPlane(path, ""); err != nil {
		return nil, fmt.Errorf("adding raster %s: %w", path, err)
	}
	d.nextRasterID++
	d.rasters = append(d.rasters, r)

	d.log.Debug("raster added", zap.Int("id", r.id), zap.String("label", r.label), zap.String("mime", r.planes[0].MIME))
	d.SetCurrentRaster(r.id)
	d.emit(RasterSetChanged, r.id)
	return r, nil
}

// RemoveRaster deletes a raster layer. When it was current, the first
// remaining raster becomes current, or none if it was the last one.
func (d *Document) RemoveRaster(id int) error {
	idx := d.rasterIndex(id)
	if idx < 0 {
		return fmt.Errorf("%w: %d", ErrUnknownRaster, id)
	}
	removed := d.rasters[idx]
	d.rasters = append(d.rasters[:idx], d.rasters[idx+1:]...)
	removed.doc = nil

	if d.currentRaster == removed {
		next := -1
		if len(d.rasters) > 0 {
			next = d.rasters[0].id
		}
		d.SetCurrentRaster(next)
	}
	d.emit(RasterSetChanged, id)
	return nil
}

// SetCurrentRaster makes id the current raster; a negative id clears it.
// Any other id the document does not hold is a programming error.
func (d *Document) SetCurrentRaster(id int) {
	if id < 0 {
		d.currentRaster = nil
		d.emit(CurrentRasterChanged, -1)
		return
	}
	idx := d.rasterIndex(id)
	if idx < 0 {
		panic(fmt.Sprintf("document: SetCurrentRaster(%d): no such raster", id))
	}
	d.currentRaster = d.rasters[idx]
	d.emit(CurrentRasterChanged, id)
}

// CurrentRaster returns the current raster, or nil.
func (d *Document) CurrentRaster() *RasterModel { return d.currentRaster }

// Raster returns the raster with the given id, or nil.
func (d *Document) Raster(id int) *RasterModel {
	if idx := d.rasterIndex(id); idx >= 0 {
		return d.rasters[idx]
	}
	return nil
}

// Rasters returns the rasters in display order.
func (d *Document) Rasters() []*RasterModel {
	return append([]*RasterModel(nil), d.rasters...)
}

func (d *Document) rasterByLabel(label string) *RasterModel {
	for _, r := range d.rasters {
		if r.label == label {
			return r
		}
	}
	return nil
}

func (d *Document) rasterIndex(id int) int {
	for i, r := range d.rasters {
		if r.id == id {
			return i
		}
	}
	return -1
}
