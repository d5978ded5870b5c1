package catalog

import (
	"errors"
	"math/rand/v2"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultCatalog(t *testing.T) {
	c := Default()
	require.Equal(t, 30, c.Len())

	levels := map[string]bool{"DEBUG": true, "INFO": true, "WARN": true, "ERROR": true, "FATAL": true}
	for i, tmpl := range c.Templates() {
		assert.True(t, levels[tmpl.Level], "template %d: unexpected level %q", i, tmpl.Level)
		assert.NotEmpty(t, tmpl.Service, "template %d: missing service", i)
		require.NotEmpty(t, tmpl.Placeholders(), "template %d", i)
		assert.Equal(t, "timestamp", tmpl.Placeholders()[0], "template %d", i)
	}
}

func TestParse(t *testing.T) {
	tmpl := Parse("{timestamp}\tWARN\tPaymentGateway\tPayment retry attempt {retry}\ttransaction_id=TXN-{txn_id}\terror={error}")

	assert.Equal(t, "WARN", tmpl.Level)
	assert.Equal(t, "PaymentGateway", tmpl.Service)
	assert.Equal(t, []string{"timestamp", "retry", "txn_id", "error"}, tmpl.Placeholders())
	assert.Equal(t, 6, tmpl.FieldCount())
	assert.Equal(t, "WARN/PaymentGateway", tmpl.String())
}

func TestParseDuplicatePlaceholders(t *testing.T) {
	tmpl := Parse("{a}-{b}-{a}")
	assert.Equal(t, []string{"a", "b"}, tmpl.Placeholders())

	n := 0
	out, err := tmpl.Expand(func(name string) (string, error) {
		n++
		return name + strconv.Itoa(n), nil
	})
	require.NoError(t, err)
	assert.Equal(t, "a1-b2-a1", out, "a repeated name reuses its value")
	assert.Equal(t, 2, n, "one value per distinct name")
}

func TestTrailingTabCountsAsField(t *testing.T) {
	tmpl := Parse("{timestamp}\tDEBUG\tScheduledTask\tDaily report job started\tjob_id=DAILY-REPORT-{job_id}\t")
	assert.Equal(t, 6, tmpl.FieldCount())

	out, err := tmpl.Expand(func(name string) (string, error) { return "x", nil })
	require.NoError(t, err)
	assert.Equal(t, "x\tDEBUG\tScheduledTask\tDaily report job started\tjob_id=DAILY-REPORT-x\t", out)
}

func TestExpandStopsOnError(t *testing.T) {
	boom := errors.New("boom")
	tmpl := Parse("{timestamp}\tINFO\tX\t{bad}")

	_, err := tmpl.Expand(func(name string) (string, error) {
		if name == "bad" {
			return "", boom
		}
		return "ok", nil
	})
	assert.ErrorIs(t, err, boom)
}

func TestPickCoversCatalog(t *testing.T) {
	c := Default()
	rng := rand.New(rand.NewPCG(1, 1))

	seen := make(map[*Template]int)
	for i := 0; i < 30000; i++ {
		seen[c.Pick(rng)]++
	}
	assert.Len(t, seen, c.Len(), "every template should be picked")
	for tmpl, n := range seen {
		// Expected ~1000 each.
		assert.Greater(t, n, 700, "template %s picked too rarely", tmpl)
	}
}

func TestMissing(t *testing.T) {
	c := New(
		"{timestamp}\tINFO\tA\t{known}\t{unknown}",
		"{timestamp}\tINFO\tB\t{unknown}\t{other}",
	)
	has := func(name string) bool { return name == "timestamp" || name == "known" }

	assert.Equal(t, []string{"unknown", "other"}, c.Missing(has))
	assert.Empty(t, c.Missing(func(string) bool { return true }))
}

func TestTemplatesReturnsCopy(t *testing.T) {
	c := Default()
	ts := c.Templates()
	ts[0] = nil
	assert.NotNil(t, c.Templates()[0])
}
