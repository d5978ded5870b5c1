package catalog

import (
	"fmt"
	"math/rand/v2"
	"regexp"
	"strings"
)

// placeholderRe matches a named slot such as {user_id}.
var placeholderRe = regexp.MustCompile(`\{([a-z_]+)\}`)

// defaultTexts is the fixed, ordered template catalog. The second field of
// each template is its severity and the third its service name.
var defaultTexts = []string{
	"{timestamp}\tINFO\tUserService\tUser login successful\tuser_id={user_id}\t{ip}",
	"{timestamp}\tDEBUG\tDatabasePool\tConnection acquired from pool\tpool_size={pool_size}\tthread-{thread}",
	"{timestamp}\tINFO\tOrderService\tOrder created\torder_id=ORD-{order_id}\tamount={amount}",
	"{timestamp}\tWARN\tPaymentGateway\tPayment retry attempt {retry}\ttransaction_id=TXN-{txn_id}\terror={error}",
	"{timestamp}\tERROR\tPaymentGateway\tPayment failed after retries\ttransaction_id=TXN-{txn_id}\terror={error}",
	"{timestamp}\tINFO\tEmailService\tEmail sent successfully\trecipient={email}\ttemplate={template}",
	"{timestamp}\tDEBUG\tCacheManager\tCache hit\tkey={cache_key}\tttl={ttl}",
	"{timestamp}\tINFO\tAuthService\tToken refreshed\tuser_id={user_id}\texpires_in={expires}",
	"{timestamp}\tWARN\tRateLimiter\tRate limit warning\tuser_id={user_id}\trequests={requests}\tlimit=100",
	"{timestamp}\tINFO\tProductService\tProduct viewed\tproduct_id=PROD-{product_id}\tcategory={category}",
	"{timestamp}\tERROR\tDatabasePool\tConnection timeout\tpool_size={pool_size}\twait_time_ms={wait_time}",
	"{timestamp}\tINFO\tUserService\tUser logout\tuser_id={user_id}\tsession_duration_sec={duration}",
	"{timestamp}\tDEBUG\tScheduledTask\tDaily report job started\tjob_id=DAILY-REPORT-{job_id}\t",
	"{timestamp}\tINFO\tReportService\tReport generated\treport_id=RPT-{report_id}\trecords={records}",
	"{timestamp}\tWARN\tDiskMonitor\tDisk usage high\tpath={path}\tusage_percent={usage}",
	"{timestamp}\tINFO\tBackupService\tBackup completed\tbackup_id=BKP-{backup_id}\tsize_mb={size}",
	"{timestamp}\tDEBUG\tHttpClient\tAPI request sent\tendpoint={endpoint}\tmethod={method}",
	"{timestamp}\tDEBUG\tHttpClient\tAPI response received\tstatus={status}\tduration_ms={duration_ms}",
	"{timestamp}\tERROR\tFileProcessor\tFile processing failed\tfile={filename}\terror={error}",
	"{timestamp}\tINFO\tNotificationService\tPush notification sent\tuser_id={user_id}\tmessage_type={msg_type}",
	"{timestamp}\tWARN\tSecurityService\tMultiple failed login attempts\tip_address={ip}\tattempts={attempts}",
	"{timestamp}\tINFO\tCartService\tItem added to cart\tuser_id={user_id}\tproduct_id=PROD-{product_id}",
	"{timestamp}\tDEBUG\tSessionManager\tSession created\tsession_id={session_id}\tuser_id={user_id}",
	"{timestamp}\tINFO\tSearchService\tSearch executed\tquery={query}\tresults={results}",
	"{timestamp}\tERROR\tImageProcessor\tImage resize failed\timage_id=IMG-{image_id}\terror={error}",
	"{timestamp}\tINFO\tOrderService\tOrder shipped\torder_id=ORD-{order_id}\ttracking_number={tracking}",
	"{timestamp}\tWARN\tApiGateway\tResponse time degraded\tendpoint={endpoint}\tavg_time_ms={avg_time}",
	"{timestamp}\tDEBUG\tMetricsCollector\tMetrics collected\tnamespace={namespace}\tmetric_count={count}",
	"{timestamp}\tFATAL\tCoreService\tCritical system error\terror_code={error_code}\tmessage={message}\t",
	"{timestamp}\tERROR\tThirdPartyService\tExternal API unavailable\tservice={service}\tretry_in_sec={retry_sec}",
}

// segment is either a literal run of text or a placeholder reference.
type segment struct {
	literal     string
	placeholder string
}

// Template is an immutable log message pattern with named placeholders.
type Template struct {
	Text    string
	Level   string
	Service string

	placeholders []string
	segments     []segment
}

// Parse splits a template text into literal and placeholder segments.
func Parse(text string) *Template {
	t := &Template{Text: text}

	cols := strings.Split(text, "\t")
	if len(cols) > 1 {
		t.Level = cols[1]
	}
	if len(cols) > 2 {
		t.Service = cols[2]
	}

	seen := make(map[string]bool)
	last := 0
	for _, m := range placeholderRe.FindAllStringSubmatchIndex(text, -1) {
		if m[0] > last {
			t.segments = append(t.segments, segment{literal: text[last:m[0]]})
		}
		name := text[m[2]:m[3]]
		t.segments = append(t.segments, segment{placeholder: name})
		if !seen[name] {
			seen[name] = true
			t.placeholders = append(t.placeholders, name)
		}
		last = m[1]
	}
	if last < len(text) {
		t.segments = append(t.segments, segment{literal: text[last:]})
	}
	return t
}

// Placeholders returns the distinct placeholder names in order of first appearance.
func (t *Template) Placeholders() []string {
	out := make([]string, len(t.placeholders))
	copy(out, t.placeholders)
	return out
}

// FieldCount is the number of tab-separated fields an expanded line has.
// Placeholder values never contain tabs, so it is fixed per template.
func (t *Template) FieldCount() int {
	return strings.Count(t.Text, "\t") + 1
}

// Expand substitutes every placeholder using value and returns the line.
// value is called once per distinct name; a repeated placeholder gets the
// same value each time. The first error from value aborts the expansion.
func (t *Template) Expand(value func(name string) (string, error)) (string, error) {
	var b strings.Builder
	b.Grow(len(t.Text) + 64)
	var bound map[string]string
	for _, seg := range t.segments {
		if seg.placeholder == "" {
			b.WriteString(seg.literal)
			continue
		}
		v, ok := bound[seg.placeholder]
		if !ok {
			var err error
			if v, err = value(seg.placeholder); err != nil {
				return "", err
			}
			if bound == nil {
				bound = make(map[string]string, len(t.placeholders))
			}
			bound[seg.placeholder] = v
		}
		b.WriteString(v)
	}
	return b.String(), nil
}

func (t *Template) String() string {
	return fmt.Sprintf("%s/%s", t.Level, t.Service)
}

// Catalog is a fixed, ordered collection of templates.
type Catalog struct {
	templates []*Template
}

// Default returns the built-in catalog.
func Default() *Catalog {
	return New(defaultTexts...)
}

// New builds a catalog from template texts, keeping their order.
func New(texts ...string) *Catalog {
	c := &Catalog{templates: make([]*Template, 0, len(texts))}
	for _, text := range texts {
		c.templates = append(c.templates, Parse(text))
	}
	return c
}

// Len returns the number of templates.
func (c *Catalog) Len() int { return len(c.templates) }

// Templates returns the templates in catalog order.
func (c *Catalog) Templates() []*Template {
	out := make([]*Template, len(c.templates))
	copy(out, c.templates)
	return out
}

// Pick returns a template chosen uniformly at random, with replacement.
// It panics if the catalog is empty.
func (c *Catalog) Pick(rng *rand.Rand) *Template {
	return c.templates[rng.IntN(len(c.templates))]
}

// Missing lists placeholder names referenced by the catalog for which has
// returns false, in catalog order without duplicates.
func (c *Catalog) Missing(has func(name string) bool) []string {
	var missing []string
	seen := make(map[string]bool)
	for _, t := range c.templates {
		for _, name := range t.placeholders {
			if seen[name] || has(name) {
				continue
			}
			seen[name] = true
			missing = append(missing, name)
		}
	}
	return missing
}
