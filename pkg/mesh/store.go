package mesh

import "fmt"

// CallBack reports progress of a long operation. It returns false to ask
// the operation to stop; the request is honored between independent steps.
type CallBack func(percent int, msg string) bool

// enableOrder is the order in which buffer-backed bits are processed.
// Face-face adjacency comes first so border derivation can rely on it.
var enableOrder = []Mask{
	FaceFaceTopo,
	VertFaceTopo,
	WedgTexCoord,
	WedgColor,
	WedgNormal,
	FaceColor,
	FaceQuality,
	FaceMark,
	VertColor,
	VertQuality,
	VertMark,
	VertCurv,
	VertCurvDir,
	VertRadius,
	VertTexCoord,
}

// dependents lists the bits that must be torn down with a bit.
var dependents = map[Mask]Mask{
	FaceFaceTopo: Border,
}

// EnabledMask returns the currently enabled attributes.
func (m *Mesh) EnabledMask() Mask { return m.enabled }

// HasAttribute reports whether every bit of mask is enabled.
func (m *Mesh) HasAttribute(mask Mask) bool { return m.enabled.Has(mask) }

// Enable allocates and derives every attribute of req not yet enabled.
// Requesting a border flag also enables face-face adjacency. Enable never
// removes bits and is a no-op for bits already enabled.
func (m *Mesh) Enable(req Mask) {
	// A nil callback never cancels.
	_ = m.EnableWithProgress(req, nil)
}

// EnableWithProgress is Enable with a progress callback, invoked before each
// buffer-backed bit. If cb returns false the request stops with ErrCanceled;
// the bits processed so far stay enabled and fully derived.
func (m *Mesh) EnableWithProgress(req Mask, cb CallBack) error {
	mustBeValid("Enable", req)

	explicit := req
	if req.HasAny(Border) {
		req |= FaceFaceTopo
	}
	if explicit.Has(FaceFaceTopo) {
		m.implied &^= FaceFaceTopo
	}
	impliesFF := req.HasAny(Border) && !explicit.Has(FaceFaceTopo) && !m.enabled.Has(FaceFaceTopo)

	missing := req.Without(m.enabled)
	if missing == None {
		return nil
	}

	var steps []Mask
	for _, bit := range enableOrder {
		if missing.Has(bit) {
			steps = append(steps, bit)
		}
	}
	if missing.HasAny(Border) {
		steps = append(steps, missing&Border)
	}

	for i, bit := range steps {
		if cb != nil && !cb(i*100/len(steps), "Enabling "+bit.String()) {
			return ErrCanceled
		}
		m.enableStep(bit)
		m.enabled |= bit
		if bit == FaceFaceTopo && impliesFF {
			m.implied |= FaceFaceTopo
		}
	}

	// Bits without a buffer: selection flags, transform, camera, counts...
	m.enabled |= missing
	return nil
}

func (m *Mesh) enableStep(bit Mask) {
	switch bit {
	case VertFaceTopo:
		// Both halves of the vertex-face lists exist together or not at all.
		m.vVF.enable(len(m.vert))
		m.fVF.enable(len(m.face))
		m.computeVertexFace()
	case FaceFaceTopo:
		m.fFF.enable(len(m.face))
		m.computeFaceFace()
	default:
		if bit.HasAny(Border) {
			m.deriveBorders()
			return
		}
		if c, ok := m.vcols[bit]; ok {
			c.enable(len(m.vert))
		} else if c, ok := m.fcols[bit]; ok {
			c.enable(len(m.face))
		}
	}
}

// Disable releases the buffers of every bit of mask that is enabled and
// clears those bits. Baseline bits cannot be disabled and are ignored.
// Disabling face-face adjacency also clears the border bits that depend on
// it; disabling the last border bit releases face-face adjacency when it
// was only enabled on behalf of the border flags.
func (m *Mesh) Disable(mask Mask) {
	mustBeValid("Disable", mask)

	drop := mask.Without(Baseline).Intersect(m.enabled)
	for bit, deps := range dependents {
		if drop.Has(bit) {
			drop |= deps & m.enabled
		}
	}
	if drop == None {
		return
	}

	if drop.HasAny(Border) {
		remaining := m.enabled.Without(drop) & Border
		if remaining == None {
			m.clearBorders()
			if m.implied.Has(FaceFaceTopo) {
				drop |= FaceFaceTopo
			}
		}
	}

	for _, bit := range drop.Bits() {
		switch bit {
		case VertFaceTopo:
			m.fVF.disable()
			m.vVF.disable()
		case FaceFaceTopo:
			m.fFF.disable()
			m.implied &^= FaceFaceTopo
		default:
			if c, ok := m.vcols[bit]; ok {
				c.disable()
			} else if c, ok := m.fcols[bit]; ok {
				c.disable()
			}
		}
	}
	m.enabled &^= drop
}

// hintOrder is the order in which loader capabilities are turned into
// attribute requests.
var hintOrder = []IOMask{
	IOVertTexCoord,
	IOWedgTexCoord,
	IOVertColor,
	IOFaceColor,
	IOVertRadius,
	IOCamera,
	IOVertQuality,
	IOFaceQuality,
	IOBitPolygonal,
}

// ApplyOpenedFileHints enables, one attribute at a time, every optional
// attribute a file loader reported as populated.
func (m *Mesh) ApplyOpenedFileHints(loaded IOMask) {
	for _, io := range hintOrder {
		if loaded&io != 0 {
			m.Enable(FromIO(io))
		}
	}
}

func mustBeValid(op string, mask Mask) {
	if !mask.Valid() {
		panic(fmt.Sprintf("mesh: %s called with bits outside the attribute enumeration: %#x", op, uint64(mask&^All)))
	}
}
