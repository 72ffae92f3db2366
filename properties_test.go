package tilegrid

import (
	"testing"

	"github.com/go-yaml/yaml"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseProperties(t *testing.T) {
	p := ParseProperties(map[string]string{
		"level":  "3",
		"indoor": "false",
		"biome":  "forest",
	})

	i, ok := p.Int("level")
	assert.True(t, ok)
	assert.Equal(t, 3, i)

	b, ok := p.Bool("indoor")
	assert.True(t, ok)
	assert.False(t, b)

	s, ok := p.String("biome")
	assert.True(t, ok)
	assert.Equal(t, "forest", s)

	assert.Equal(t, 3, p.Len())
}

func TestPropertiesOneTypePerKey(t *testing.T) {
	p := NewProperties()
	p.SetInt("k", 1)
	p.SetString("k", "v")

	_, ok := p.Int("k")
	assert.False(t, ok)
	assert.Equal(t, 1, p.Len())

	other := NewProperties()
	other.SetBool("k", true)
	p.Merge(other).Merge(nil)

	_, ok = p.String("k")
	assert.False(t, ok)
	v, _ := p.Bool("k")
	assert.True(t, v)
}

func TestPropertiesYAML(t *testing.T) {
	p := NewProperties()
	p.SetInt("level", 3)
	p.SetString("biome", "forest")
	p.SetBool("indoor", true)

	data, err := yaml.Marshal(p)
	require.NoError(t, err)

	out := NewProperties()
	require.NoError(t, yaml.Unmarshal(data, out))
	assert.Equal(t, p, out)
}
