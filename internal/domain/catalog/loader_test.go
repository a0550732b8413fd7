package catalog

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleYAML = `
- id: 1
  name: Blue Jacket
  description: Warm waterproof jacket
  category: clothing
  price: 100
  bottom_price: 80
  rating: 4.5
  colors: [blue, navy]
- id: 2
  name: Leather Tote
  category: bags
  price: 59.999
  rating: 4
`

func TestLoad_YAML(t *testing.T) {
	c, err := Load(strings.NewReader(sampleYAML))
	require.NoError(t, err)
	require.Equal(t, 2, c.Len())

	jacket, ok := c.Get(1)
	require.True(t, ok)
	assert.Equal(t, "Blue Jacket", jacket.Name)
	assert.Equal(t, "80", jacket.BottomPrice.String())
	assert.Equal(t, []string{"blue", "navy"}, jacket.Colors)

	tote, ok := c.Get(2)
	require.True(t, ok)
	assert.Equal(t, "60", tote.Price.String())
	assert.True(t, tote.BottomPrice.IsZero())
}

func TestLoad_JSON(t *testing.T) {
	c, err := Load(strings.NewReader(`[{"id": 7, "name": "Scarf", "category": "accessories", "price": 25, "bottom_price": 20}]`))
	require.NoError(t, err)
	assert.True(t, c.Contains(7))
}

func TestLoad_Empty(t *testing.T) {
	c, err := Load(strings.NewReader(""))
	require.NoError(t, err)
	assert.Equal(t, 0, c.Len())
}

func TestLoad_InvalidFloor(t *testing.T) {
	_, err := Load(strings.NewReader("- {id: 1, name: A, price: 10, bottom_price: 12}"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "exceeds price")
}

func TestLoad_Malformed(t *testing.T) {
	_, err := Load(strings.NewReader("id: [unterminated"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse catalog")
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "products.yaml")
	require.NoError(t, os.WriteFile(path, []byte(sampleYAML), 0o600))

	c, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, 2, c.Len())

	_, err = LoadFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestLoadFile_DemoCatalog(t *testing.T) {
	c, err := LoadFile(filepath.Join("..", "..", "..", "data", "products.yaml"))
	require.NoError(t, err)
	assert.Equal(t, 12, c.Len())
	assert.Contains(t, c.Categories(), "bags")
}
