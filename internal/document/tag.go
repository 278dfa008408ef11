package document

import "slices"

// Tag is an annotation attached to one or more meshes.
type Tag struct {
	id     int
	Type   string
	Meshes []int
}

// ID returns the id issued by the owning document.
func (t *Tag) ID() int { return t.id }

// AddTag creates a tag referring to the given meshes.
func (d *Document) AddTag(typ string, meshIDs ...int) *Tag {
	t := &Tag{id: d.nextTagID, Type: typ, Meshes: slices.Clone(meshIDs)}
	d.nextTagID++
	d.tags = append(d.tags, t)
	return t
}

// RemoveTag deletes the tag with the given id and reports whether it existed.
func (d *Document) RemoveTag(id int) bool {
	n := len(d.tags)
	d.tags = slices.DeleteFunc(d.tags, func(t *Tag) bool { return t.id == id })
	return len(d.tags) != n
}

// MeshTags returns the tags that refer to meshID.
func (d *Document) MeshTags(meshID int) []*Tag {
	var out []*Tag
	for _, t := range d.tags {
		if slices.Contains(t.Meshes, meshID) {
			out = append(out, t)
		}
	}
	return out
}

// Tags returns every tag in creation order.
func (d *Document) Tags() []*Tag {
	return slices.Clone(d.tags)
}
