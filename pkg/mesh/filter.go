package mesh

// Class describes what kind of change a filter makes.
type Class uint32

// Filter classes.
const (
	ClassGeneric      Class = 0
	ClassFaceColoring Class = 1 << (iota - 1)
	ClassVertexColoring
	ClassSelection
	ClassMeshCreation
	ClassSmoothing
	ClassQuality
	ClassLayer
	ClassCamera
)

// Has reports whether every bit of c2 is set.
func (c Class) Has(c2 Class) bool { return c&c2 == c2 }

// Capabilities is what a filter declares about the attributes it touches.
type Capabilities struct {
	// Requirements are enabled on the target mesh before the filter runs.
	Requirements Mask
	// PreConditions must already hold; they are never enabled implicitly.
	PreConditions Mask
	// PostConditions are the attributes the filter modifies.
	PostConditions Mask
	Class          Class
}

// Descriptor is implemented by anything that declares capabilities.
type Descriptor interface {
	Capabilities() Capabilities
}

// missingItemNames lists, in report order, the preconditions a filter can
// miss and how they are shown to a user.
var missingItemNames = []struct {
	bit  Mask
	name string
}{
	{VertColor, "Vertex Color"},
	{FaceColor, "Face Color"},
	{VertQuality, "Vertex Quality"},
	{FaceQuality, "Face Quality"},
	{WedgTexCoord, "Per Wedge Texture Coords"},
	{VertTexCoord, "Per Vertex Texture Coords"},
	{VertRadius, "Vertex Radius"},
}

// MissingItems returns the names of the preconditions of pre that m does
// not satisfy. FaceNumber requires at least one live face.
func (m *Mesh) MissingItems(pre Mask) []string {
	var missing []string
	if pre == None {
		return missing
	}
	for _, it := range missingItemNames {
		if pre.Has(it.bit) && !m.HasAttribute(it.bit) {
			missing = append(missing, it.name)
		}
	}
	if pre.Has(FaceNumber) && m.LiveFaceCount() == 0 {
		missing = append(missing, "Non empty Face Set")
	}
	return missing
}

// Prepare enables the requirements declared by d.
func (m *Mesh) Prepare(d Descriptor) {
	m.Enable(d.Capabilities().Requirements)
}

// IsDynamic reports whether a filter modifying post can be previewed by
// snapshot and restore: post must be known, not empty, and must not change
// the number of vertices or faces.
func IsDynamic(post Mask) bool {
	return post != Unknown && post != None && !post.HasAny(VertNumber|FaceNumber)
}
