// Package catalog holds the registry of condition codes a questionnaire can
// report: each code's display name, severity tier and suggested quick action.
package catalog

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Severity is the ordinal tier of a condition.
type Severity string

const (
	SeverityInfo     Severity = "Info"
	SeverityMed      Severity = "Med"
	SeverityHigh     Severity = "High"
	SeverityCritical Severity = "Critical"
)

// AllSeverities returns every severity from most to least severe.
func AllSeverities() []Severity {
	return []Severity{SeverityCritical, SeverityHigh, SeverityMed, SeverityInfo}
}

// Rank orders severities for tie-breaking: Critical=3, High=2, Med=1, Info=0.
// Unrecognised values rank as Info.
func (s Severity) Rank() int {
	switch s {
	case SeverityCritical:
		return 3
	case SeverityHigh:
		return 2
	case SeverityMed:
		return 1
	default:
		return 0
	}
}

// Valid reports whether s is one of the four known tiers.
func (s Severity) Valid() bool {
	switch s {
	case SeverityCritical, SeverityHigh, SeverityMed, SeverityInfo:
		return true
	}
	return false
}

// ParseSeverity parses a severity name case-insensitively. "medium" is
// accepted as an alias for Med.
func ParseSeverity(s string) (Severity, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "critical":
		return SeverityCritical, nil
	case "high":
		return SeverityHigh, nil
	case "med", "medium":
		return SeverityMed, nil
	case "info":
		return SeverityInfo, nil
	}
	return "", fmt.Errorf("unknown severity %q", s)
}

// Condition is one entry of the catalog.
type Condition struct {
	Code        string   `json:"code"`
	Name        string   `json:"name"`
	Severity    Severity `json:"severity"`
	QuickAction string   `json:"quick"`
	Benign      bool     `json:"benign,omitempty"`
	Domain      string   `json:"domain,omitempty"`
	Tags        []string `json:"tags,omitempty"`
}

// Label returns "CODE Name", the form used for chips and listings.
func (c Condition) Label() string {
	return c.Code + " " + c.Name
}

// Fallback metadata reported for codes the catalog does not know.
const (
	UnknownName        = "unknown"
	UnknownQuickAction = "Step back to a safe distance and set a scope."
)

// ErrEmptyCatalog is returned when a catalog is built with no conditions.
var ErrEmptyCatalog = errors.New("catalog has no conditions")

// Catalog is an immutable, ordered set of conditions with O(1) lookup by
// code. It is safe for concurrent use.
type Catalog struct {
	conditions []Condition
	byCode     map[string]int
	byDomain   map[string][]string
}

// New builds a catalog from conditions, preserving their order. Codes must
// be non-empty and unique and severities must be valid.
func New(conditions []Condition) (*Catalog, error) {
	if len(conditions) == 0 {
		return nil, ErrEmptyCatalog
	}

	var errs []string
	c := &Catalog{
		conditions: make([]Condition, 0, len(conditions)),
		byCode:     make(map[string]int, len(conditions)),
		byDomain:   make(map[string][]string),
	}
	for i, cond := range conditions {
		if cond.Code == "" {
			errs = append(errs, fmt.Sprintf("condition %d has an empty code", i))
			continue
		}
		if _, dup := c.byCode[cond.Code]; dup {
			errs = append(errs, fmt.Sprintf("duplicate code: %q", cond.Code))
			continue
		}
		if !cond.Severity.Valid() {
			errs = append(errs, fmt.Sprintf("code %q has invalid severity %q", cond.Code, cond.Severity))
			continue
		}
		cond.Tags = append([]string(nil), cond.Tags...)
		c.byCode[cond.Code] = len(c.conditions)
		c.conditions = append(c.conditions, cond)
		if cond.Domain != "" {
			c.byDomain[cond.Domain] = append(c.byDomain[cond.Domain], cond.Code)
		}
	}

	if len(errs) > 0 {
		return nil, fmt.Errorf("catalog validation failed:\n  %s", strings.Join(errs, "\n  "))
	}
	return c, nil
}

// Lookup returns the condition for code. It never fails: unknown codes get
// Info severity, the name "unknown" and a generic quick action.
func (c *Catalog) Lookup(code string) Condition {
	if cond, ok := c.Get(code); ok {
		return cond
	}
	return Condition{
		Code:        code,
		Name:        UnknownName,
		Severity:    SeverityInfo,
		QuickAction: UnknownQuickAction,
	}
}

// Get returns the condition for code and whether it exists.
func (c *Catalog) Get(code string) (Condition, bool) {
	if c == nil {
		return Condition{}, false
	}
	i, ok := c.byCode[code]
	if !ok {
		return Condition{}, false
	}
	return c.conditions[i], true
}

// Has reports whether code is in the catalog.
func (c *Catalog) Has(code string) bool {
	_, ok := c.Get(code)
	return ok
}

// IsBenign reports whether code denotes a normal or good state. Unknown
// codes are not benign.
func (c *Catalog) IsBenign(code string) bool {
	cond, ok := c.Get(code)
	return ok && cond.Benign
}

// Len returns the number of conditions.
func (c *Catalog) Len() int {
	return len(c.conditions)
}

// All returns every condition in catalog order.
func (c *Catalog) All() []Condition {
	out := make([]Condition, len(c.conditions))
	copy(out, c.conditions)
	return out
}

// Codes returns every code in catalog order.
func (c *Catalog) Codes() []string {
	out := make([]string, len(c.conditions))
	for i, cond := range c.conditions {
		out[i] = cond.Code
	}
	return out
}

// ByDomain returns the conditions tagged with domain, in catalog order.
func (c *Catalog) ByDomain(domain string) []Condition {
	codes := c.byDomain[domain]
	out := make([]Condition, 0, len(codes))
	for _, code := range codes {
		out = append(out, c.conditions[c.byCode[code]])
	}
	return out
}

// BySeverity returns the conditions of the given severity, in catalog order.
func (c *Catalog) BySeverity(sev Severity) []Condition {
	var out []Condition
	for _, cond := range c.conditions {
		if cond.Severity == sev {
			out = append(out, cond)
		}
	}
	return out
}

// Domains returns the distinct domains in sorted order.
func (c *Catalog) Domains() []string {
	out := make([]string, 0, len(c.byDomain))
	for d := range c.byDomain {
		out = append(out, d)
	}
	sort.Strings(out)
	return out
}
