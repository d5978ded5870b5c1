// Package synth builds complete log lines from the template catalog.
package synth

import (
	"fmt"
	"math/rand/v2"
	"strings"
	"time"

	"github.com/ksk1130/tsvloggen/internal/catalog"
	"github.com/ksk1130/tsvloggen/internal/fields"
	"github.com/ksk1130/tsvloggen/internal/model"
)

// TimestampLayout is the layout of the leading field of every line.
const TimestampLayout = "2006-01-02 15:04:05"

const timestampField = "timestamp"

// Offsets per line are index * uniform(minStep, maxStep) seconds.
const (
	minStep = 0.1
	maxStep = 2.0
)

// Generator produces one substituted line per call.
type Generator struct {
	catalog *catalog.Catalog
	fields  *fields.Generator
	rng     *rand.Rand
	base    time.Time
}

// New creates a Generator. It fails if any template references a
// placeholder the field generator cannot fill.
func New(c *catalog.Catalog, f *fields.Generator, rng *rand.Rand, base time.Time) (*Generator, error) {
	missing := c.Missing(func(name string) bool {
		return name == timestampField || f.Has(name)
	})
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: %s", fields.ErrUnknownPlaceholder, strings.Join(missing, ", "))
	}
	return &Generator{catalog: c, fields: f, rng: rng, base: base}, nil
}

// Generate returns the line at position index. The timestamp is the base
// time plus index * uniform(0.1, 2.0) seconds, truncated to whole seconds.
func (g *Generator) Generate(index int64) (model.Line, error) {
	step := minStep + g.rng.Float64()*(maxStep-minStep)
	offset := time.Duration(float64(index) * step * float64(time.Second))
	ts := g.base.Add(offset).Truncate(time.Second)
	stamp := ts.Format(TimestampLayout)

	tmpl := g.catalog.Pick(g.rng)
	text, err := tmpl.Expand(func(name string) (string, error) {
		if name == timestampField {
			return stamp, nil
		}
		return g.fields.Value(name)
	})
	if err != nil {
		return model.Line{}, fmt.Errorf("template %s: %w", tmpl, err)
	}

	return model.Line{
		Timestamp: ts,
		Level:     tmpl.Level,
		Service:   tmpl.Service,
		Text:      text,
	}, nil
}
