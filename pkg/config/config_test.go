package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, 100, cfg.Scan.TopN)
	assert.False(t, cfg.Scan.NoIgnore)
	assert.Equal(t, 4326, cfg.Stage.TargetSRID)
	assert.Equal(t, 1, cfg.Stage.Jobs)
	assert.Equal(t, []string{".tif", ".tiff"}, cfg.Stage.Extensions)
	assert.Len(t, cfg.Stage.Columns, 14)
	assert.Equal(t, "mosaic_id", cfg.Stage.Columns[0])
	assert.Equal(t, "created_at", cfg.Stage.Columns[13])
}

func TestLoadConfigEnvOverride(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("WHIRLWIND_SCAN_TOP_N", "25")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, 25, cfg.Scan.TopN)
}

func TestDefaultIsStable(t *testing.T) {
	d := Default()
	assert.Equal(t, 100, d.Scan.TopN)
	assert.Equal(t, 4326, d.Stage.TargetSRID)
}
