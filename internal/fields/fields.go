// Package fields produces randomized values for template placeholders.
package fields

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"strconv"
	"time"

	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// ErrUnknownPlaceholder is returned for a placeholder name with no rule.
var ErrUnknownPlaceholder = errors.New("unknown placeholder")

const sessionAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// Clock returns the wall-clock time used by date-derived fields.
type Clock func() time.Time

// Generator returns a fresh random value for each known placeholder name.
// Values are independent of each other; no cross-field consistency is kept.
type Generator struct {
	rng   *rand.Rand
	pools *Pools
	now   Clock
	rules map[string]func() string
}

// New creates a Generator drawing from rng and pools. A nil clock means time.Now.
func New(rng *rand.Rand, pools *Pools, now Clock) *Generator {
	if now == nil {
		now = time.Now
	}
	g := &Generator{rng: rng, pools: pools, now: now}
	g.rules = g.buildRules()
	return g
}

// Has reports whether name has a generation rule.
func (g *Generator) Has(name string) bool {
	_, ok := g.rules[name]
	return ok
}

// Names returns every placeholder name with a rule, sorted.
func (g *Generator) Names() []string {
	names := maps.Keys(g.rules)
	slices.Sort(names)
	return names
}

// Value generates a value for the named placeholder.
func (g *Generator) Value(name string) (string, error) {
	rule, ok := g.rules[name]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownPlaceholder, name)
	}
	return rule(), nil
}

func (g *Generator) buildRules() map[string]func() string {
	p := g.pools
	return map[string]func() string{
		"user_id":     g.intRange(10000, 99999),
		"ip":          g.pick(p.IPs),
		"pool_size":   g.intRange(5, 20),
		"thread":      g.intRange(1, 10),
		"order_id":    g.intRange(10000, 99999),
		"amount":      g.floatRange(100, 50000),
		"retry":       g.intRange(1, 5),
		"txn_id":      g.intRange(10000, 99999),
		"error":       g.pick(p.Errors),
		"email":       g.pick(p.Emails),
		"template":    g.pick(p.EmailTemplates),
		"cache_key":   g.prefixed("user:", g.intRange(10000, 99999)),
		"ttl":         g.pickInt(p.TTLs),
		"expires":     g.pickInt(p.Expiries),
		"requests":    g.intRange(50, 99),
		"product_id":  g.intRange(100, 999),
		"category":    g.pick(p.Categories),
		"wait_time":   g.intRange(1000, 10000),
		"duration":    g.intRange(60, 3600),
		"job_id":      g.padded(1, 999, 3),
		"report_id":   g.dated("20060102", g.padded(1, 999, 3)),
		"records":     g.intRange(100, 10000),
		"path":        g.pick(p.Paths),
		"usage":       g.intRange(70, 95),
		"backup_id":   g.dated("200601021504", g.padded(1, 99, 2)),
		"size":        g.intRange(100, 5000),
		"endpoint":    g.pick(p.Endpoints),
		"method":      g.pick(p.Methods),
		"status":      g.pickInt(p.Statuses),
		"duration_ms": g.intRange(50, 5000),
		"filename":    g.filename,
		"msg_type":    g.pick(p.MessageTypes),
		"attempts":    g.intRange(3, 10),
		"session_id":  g.prefixed("SES-", g.alnum(8)),
		"query":       g.pick(p.Queries),
		"results":     g.intRange(0, 100),
		"image_id":    g.intRange(100, 999),
		"tracking":    g.prefixed("TRK-", g.intRange(1000000000, 9999999999)),
		"avg_time":    g.intRange(1000, 5000),
		"namespace":   g.pick(p.Namespaces),
		"count":       g.intRange(10, 100),
		"error_code":  g.intRange(5000, 5999),
		"message":     constant("Critical error in core service"),
		"service":     g.pick(p.Services),
		"retry_sec":   g.intRange(30, 300),
	}
}

// between returns an integer in [lo, hi].
func (g *Generator) between(lo, hi int64) int64 {
	return lo + g.rng.Int64N(hi-lo+1)
}

func (g *Generator) intRange(lo, hi int64) func() string {
	return func() string {
		return strconv.FormatInt(g.between(lo, hi), 10)
	}
}

// floatRange formats a value in [lo, hi) with two decimals.
func (g *Generator) floatRange(lo, hi float64) func() string {
	return func() string {
		return strconv.FormatFloat(lo+g.rng.Float64()*(hi-lo), 'f', 2, 64)
	}
}

// padded zero-pads an integer in [lo, hi] to width digits.
func (g *Generator) padded(lo, hi int64, width int) func() string {
	return func() string {
		return fmt.Sprintf("%0*d", width, g.between(lo, hi))
	}
}

func (g *Generator) pick(values []string) func() string {
	return func() string {
		return values[g.rng.IntN(len(values))]
	}
}

func (g *Generator) pickInt(values []int) func() string {
	return func() string {
		return strconv.Itoa(values[g.rng.IntN(len(values))])
	}
}

func (g *Generator) alnum(n int) func() string {
	return func() string {
		b := make([]byte, n)
		for i := range b {
			b[i] = sessionAlphabet[g.rng.IntN(len(sessionAlphabet))]
		}
		return string(b)
	}
}

func (g *Generator) prefixed(prefix string, rest func() string) func() string {
	return func() string {
		return prefix + rest()
	}
}

// dated prefixes suffix with the current wall-clock time in layout. It reads
// the clock, not the synthetic line timestamp.
func (g *Generator) dated(layout string, suffix func() string) func() string {
	return func() string {
		return g.now().Format(layout) + suffix()
	}
}

func (g *Generator) filename() string {
	return "data_" + g.now().Format("20060102") + ".csv"
}

func constant(v string) func() string {
	return func() string { return v }
}
