package mesh

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type fixedCaps Capabilities

func (f fixedCaps) Capabilities() Capabilities { return Capabilities(f) }

func TestMissingItems(t *testing.T) {
	m := newQuad()
	m.Enable(VertColor)

	assert.Empty(t, m.MissingItems(None))
	assert.Empty(t, m.MissingItems(VertColor|FaceNumber))
	assert.Equal(t,
		[]string{"Face Color", "Vertex Quality", "Per Wedge Texture Coords", "Vertex Radius"},
		m.MissingItems(VertColor|FaceColor|VertQuality|WedgTexCoord|VertRadius),
	)

	empty := New()
	assert.Equal(t, []string{"Non empty Face Set"}, empty.MissingItems(FaceNumber))
}

func TestPrepareEnablesRequirements(t *testing.T) {
	m := newQuad()
	m.Prepare(fixedCaps{Requirements: VertFaceTopo | VertQuality, PostConditions: VertColor})

	assert.True(t, m.HasAttribute(VertFaceTopo|VertQuality))
	assert.False(t, m.HasAttribute(VertColor))
}

func TestIsDynamic(t *testing.T) {
	tests := []struct {
		post Mask
		want bool
	}{
		{None, false},
		{Unknown, false},
		{VertColor, true},
		{VertCoord | VertNormal, true},
		{VertCoord | VertNumber, false},
		{FaceNumber, false},
		{Unknown | VertColor, true},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, IsDynamic(tt.post), tt.post.String())
	}
}

func TestClassHas(t *testing.T) {
	c := ClassVertexColoring | ClassQuality
	assert.True(t, c.Has(ClassQuality))
	assert.False(t, c.Has(ClassSelection))
}
