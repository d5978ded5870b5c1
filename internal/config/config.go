// Package config resolves generator settings from flags, environment and
// config files into a Config.
package config

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"
)

// Setting keys, shared by flags, environment variables and config files.
const (
	KeySize          = "size"
	KeyOutput        = "output"
	KeySeed          = "seed"
	KeyStart         = "start"
	KeyProgressEvery = "progress-every"
	KeyFormat        = "format"
	KeyQuiet         = "quiet"
	KeyManifest      = "manifest"
)

const (
	DefaultSizeMB        = 100
	DefaultOutput        = "large_sample_log.tsv"
	DefaultStart         = "2026-01-17 00:00:00"
	DefaultProgressEvery = 50000
	DefaultFormat        = FormatText

	FormatText = "text"
	FormatJSON = "json"

	// StartLayout is the accepted layout of the start setting.
	StartLayout = "2006-01-02 15:04:05"

	bytesPerMB = 1024 * 1024
)

// Config is the resolved configuration of one run.
type Config struct {
	SizeMB          int64
	TargetSizeBytes int64
	OutputPath      string
	Seed            int64
	SeedSet         bool
	Start           time.Time
	ProgressEvery   int64
	Format          string
	Quiet           bool
	ManifestPath    string
}

// settings mirrors the raw viper keys.
type settings struct {
	Size          int64  `mapstructure:"size"`
	Output        string `mapstructure:"output"`
	Seed          int64  `mapstructure:"seed"`
	Start         string `mapstructure:"start"`
	ProgressEvery int64  `mapstructure:"progress-every"`
	Format        string `mapstructure:"format"`
	Quiet         bool   `mapstructure:"quiet"`
	Manifest      string `mapstructure:"manifest"`
}

// SetDefaults registers the default value of every key on v. Seed has no
// default so that IsSet tells an explicit seed apart.
func SetDefaults(v *viper.Viper) {
	v.SetDefault(KeySize, DefaultSizeMB)
	v.SetDefault(KeyOutput, DefaultOutput)
	v.SetDefault(KeyStart, DefaultStart)
	v.SetDefault(KeyProgressEvery, DefaultProgressEvery)
	v.SetDefault(KeyFormat, DefaultFormat)
	v.SetDefault(KeyQuiet, false)
	v.SetDefault(KeyManifest, "")
}

// Load decodes the settings held by v. Size is not range-checked: zero or
// negative sizes produce an empty file.
func Load(v *viper.Viper) (Config, error) {
	var s settings
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		Result:           &s,
	})
	if err != nil {
		return Config{}, err
	}
	if err := dec.Decode(v.AllSettings()); err != nil {
		return Config{}, fmt.Errorf("invalid configuration: %w", err)
	}

	start, err := time.ParseInLocation(StartLayout, s.Start, time.UTC)
	if err != nil {
		return Config{}, fmt.Errorf("invalid %s %q: want %s", KeyStart, s.Start, StartLayout)
	}

	format := strings.ToLower(strings.TrimSpace(s.Format))
	switch format {
	case FormatText, FormatJSON:
	default:
		return Config{}, fmt.Errorf("invalid %s %q: want %s or %s", KeyFormat, s.Format, FormatText, FormatJSON)
	}

	return Config{
		SizeMB:          s.Size,
		TargetSizeBytes: targetBytes(s.Size),
		OutputPath:      s.Output,
		Seed:            s.Seed,
		SeedSet:         v.IsSet(KeySeed),
		Start:           start,
		ProgressEvery:   s.ProgressEvery,
		Format:          format,
		Quiet:           s.Quiet,
		ManifestPath:    s.Manifest,
	}, nil
}

// targetBytes converts megabytes to bytes, saturating at the int64 limits
// so an absurd size never wraps around.
func targetBytes(sizeMB int64) int64 {
	switch {
	case sizeMB > math.MaxInt64/bytesPerMB:
		return math.MaxInt64
	case sizeMB < math.MinInt64/bytesPerMB:
		return math.MinInt64
	}
	return sizeMB * bytesPerMB
}
