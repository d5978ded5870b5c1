package config

import (
	"math"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newViper() *viper.Viper {
	v := viper.New()
	SetDefaults(v)
	return v
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(newViper())
	require.NoError(t, err)

	assert.Equal(t, int64(100), cfg.SizeMB)
	assert.Equal(t, int64(100*1024*1024), cfg.TargetSizeBytes)
	assert.Equal(t, "large_sample_log.tsv", cfg.OutputPath)
	assert.False(t, cfg.SeedSet)
	assert.Equal(t, time.Date(2026, 1, 17, 0, 0, 0, 0, time.UTC), cfg.Start)
	assert.Equal(t, int64(50000), cfg.ProgressEvery)
	assert.Equal(t, FormatText, cfg.Format)
	assert.False(t, cfg.Quiet)
	assert.Empty(t, cfg.ManifestPath)
}

func TestLoadOverrides(t *testing.T) {
	v := newViper()
	v.Set(KeySize, "3") // strings are coerced
	v.Set(KeyOutput, "out.tsv")
	v.Set(KeySeed, 42)
	v.Set(KeyStart, "2025-12-31 23:59:59")
	v.Set(KeyFormat, "JSON")
	v.Set(KeyQuiet, "true")

	cfg, err := Load(v)
	require.NoError(t, err)

	assert.Equal(t, int64(3*1024*1024), cfg.TargetSizeBytes)
	assert.Equal(t, "out.tsv", cfg.OutputPath)
	assert.True(t, cfg.SeedSet)
	assert.Equal(t, int64(42), cfg.Seed)
	assert.Equal(t, 2025, cfg.Start.Year())
	assert.Equal(t, FormatJSON, cfg.Format)
	assert.True(t, cfg.Quiet)
}

func TestLoadAcceptsNonPositiveSize(t *testing.T) {
	for _, size := range []int{0, -1} {
		v := newViper()
		v.Set(KeySize, size)

		cfg, err := Load(v)
		require.NoError(t, err)
		assert.Equal(t, int64(size)*1024*1024, cfg.TargetSizeBytes)
	}
}

func TestLoadSaturatesAbsurdSize(t *testing.T) {
	v := newViper()
	v.Set(KeySize, int64(math.MaxInt64/1024))

	cfg, err := Load(v)
	require.NoError(t, err)
	assert.Equal(t, int64(math.MaxInt64), cfg.TargetSizeBytes)

	v.Set(KeySize, int64(math.MinInt64/1024))
	cfg, err = Load(v)
	require.NoError(t, err)
	assert.Equal(t, int64(math.MinInt64), cfg.TargetSizeBytes)
}

func TestLoadRejectsBadValues(t *testing.T) {
	cases := map[string]struct {
		key, value string
	}{
		"size":   {KeySize, "abc"},
		"start":  {KeyStart, "17/01/2026"},
		"format": {KeyFormat, "xml"},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			v := newViper()
			v.Set(tc.key, tc.value)

			_, err := Load(v)
			assert.Error(t, err)
		})
	}
}

func TestLoadFromEnvAndFile(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "cfg.yaml")
	require.NoError(t, os.WriteFile(file, []byte("size: 7\noutput: from-file.tsv\nprogress-every: 10\n"), 0644))

	v := newViper()
	v.SetConfigFile(file)
	require.NoError(t, v.ReadInConfig())

	t.Setenv("CFGTEST_OUTPUT", "from-env.tsv")
	v.SetEnvPrefix("CFGTEST")
	v.AutomaticEnv()

	cfg, err := Load(v)
	require.NoError(t, err)
	assert.Equal(t, int64(7), cfg.SizeMB)
	assert.Equal(t, "from-env.tsv", cfg.OutputPath, "environment beats config file")
	assert.Equal(t, int64(10), cfg.ProgressEvery)
}
