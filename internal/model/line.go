package model

import "time"

// Line is a single generated log record.
type Line struct {
	Timestamp time.Time `json:"timestamp"`
	Level     string    `json:"level"`   // DEBUG, INFO, WARN, ERROR, FATAL
	Service   string    `json:"service"` // component named by the template
	Text      string    `json:"text"`    // tab-separated record without the trailing newline
}

// Progress is a point-in-time view of a running generation.
type Progress struct {
	Lines       int64 `json:"lines"`
	Bytes       int64 `json:"bytes"`
	TargetBytes int64 `json:"target_bytes"`
}

// Summary describes a finished run.
type Summary struct {
	Path          string           `json:"path"`
	Lines         int64            `json:"lines"`
	Bytes         int64            `json:"bytes"`
	TargetBytes   int64            `json:"target_bytes"`
	Seed          int64            `json:"seed"`
	Checksum      string           `json:"checksum"` // xxh3-64 of the written bytes, hex
	Elapsed       string           `json:"elapsed"`
	LinesPerSec   float64          `json:"lines_per_sec"`
	LevelCounts   map[string]int64 `json:"level_counts"`
	ServiceCounts map[string]int64 `json:"service_counts"`
}
