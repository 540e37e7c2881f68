package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadPrefs_YAMLThenAnswers(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prefs.yaml")
	require.NoError(t, os.WriteFile(path, []byte("city: Lagos\namenities: [WiFi]\npriceRange: moderate\n"), 0o600))

	p, err := loadPrefs(path, []string{"amenities=wifi, Security", "accommodationType=studio"})
	require.NoError(t, err)
	assert.Equal(t, "Lagos", p.City)
	assert.Equal(t, "moderate", p.PriceRange)
	assert.Equal(t, "studio", p.AccommodationType)
	assert.Equal(t, []string{"WiFi", "Security"}, p.Amenities)
}

func TestLoadPrefs_Errors(t *testing.T) {
	_, err := loadPrefs(filepath.Join(t.TempDir(), "missing.yaml"), nil)
	assert.Error(t, err)

	_, err = loadPrefs("", []string{"colour=blue"})
	assert.Error(t, err)

	_, err = loadPrefs("", []string{"novalue"})
	assert.Error(t, err)
}
