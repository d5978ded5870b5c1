package fields

import (
	"fmt"
	"math/rand/v2"
)

const (
	ipPoolSize    = 100
	emailPoolSize = 1000
)

// Pools holds the fixed candidate values that placeholders are drawn from.
// A Pools value is built once per run and must not be modified afterwards.
type Pools struct {
	IPs            []string
	Emails         []string
	Categories     []string
	Errors         []string
	Queries        []string
	EmailTemplates []string
	Endpoints      []string
	Methods        []string
	Paths          []string
	Namespaces     []string
	Services       []string
	MessageTypes   []string
	TTLs           []int
	Expiries       []int
	Statuses       []int
}

// NewPools builds the value pools. The IP pool is randomized from rng so a
// seeded run reproduces it.
func NewPools(rng *rand.Rand) *Pools {
	ips := make([]string, ipPoolSize)
	for i := range ips {
		ips[i] = fmt.Sprintf("192.168.%d.%d", 1+rng.IntN(255), 1+rng.IntN(255))
	}

	emails := make([]string, emailPoolSize)
	for i := range emails {
		emails[i] = fmt.Sprintf("user%d@example.com", i)
	}

	return &Pools{
		IPs:            ips,
		Emails:         emails,
		Categories:     []string{"electronics", "books", "clothing", "home", "sports", "toys", "food"},
		Errors:         []string{"timeout", "connection_refused", "invalid_format", "out_of_memory", "disk_full", "not_found"},
		Queries:        []string{"laptop", "wireless headphones", "smartphone", "tablet", "camera", "printer", "keyboard"},
		EmailTemplates: []string{"order_confirmation", "password_reset", "welcome", "newsletter", "promotion"},
		Endpoints:      []string{"/api/v1/users", "/api/v1/orders", "/api/v1/products", "/api/v2/search", "/api/v1/payments"},
		Methods:        []string{"GET", "POST", "PUT", "DELETE", "PATCH"},
		Paths:          []string{"/var/log", "/var/data", "/home/app", "/tmp", "/opt/application"},
		Namespaces:     []string{"application", "database", "cache", "network", "security"},
		Services:       []string{"payment_provider", "email_service", "sms_gateway", "analytics", "cdn"},
		MessageTypes:   []string{"promotion", "alert", "reminder", "update"},
		TTLs:           []int{300, 600, 1800, 3600, 7200},
		Expiries:       []int{1800, 3600, 7200, 14400},
		Statuses:       []int{200, 201, 400, 404, 500, 503},
	}
}
