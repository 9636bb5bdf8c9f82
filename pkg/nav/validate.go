package nav

import (
	"fmt"
	"strings"
)

// DefaultReservedPaths are the path fragments the documentation platform
// keeps for non-navigable routes.
var DefaultReservedPaths = []string{"/api", "/mcp"}

// Result is the outcome of validating a configuration.
type Result struct {
	IsValid bool     `json:"isValid"`
	Errors  []string `json:"errors"`
}

// Validator checks a configuration for reserved page paths.
//
// The scan is shallow: top-level pages and the direct string entries of each
// group, tab, anchor and dropdown. Pages inside nested groups, and everything
// under versions and languages, are not inspected.
type Validator struct {
	ReservedPaths []string
}

// NewValidator returns a validator using reserved, or the defaults when
// reserved is empty.
func NewValidator(reserved []string) *Validator {
	if len(reserved) == 0 {
		reserved = DefaultReservedPaths
	}
	return &Validator{ReservedPaths: reserved}
}

// Validate runs the default validator against cfg.
func Validate(cfg Config) Result {
	return NewValidator(nil).Validate(cfg)
}

// Validate collects every violation in cfg; it never stops early.
func (v *Validator) Validate(cfg Config) Result {
	errs := make([]string, 0)
	check := func(context string, paths []string) {
		for _, p := range paths {
			if v.isReserved(p) {
				errs = append(errs, fmt.Sprintf("%s: Path %q contains reserved path %s", context, p, v.describe()))
			}
		}
	}

	check("Pages", cfg.Pages)
	for _, g := range cfg.Groups {
		check(fmt.Sprintf("Group %q", g.Group), directPaths(g.Pages))
	}
	for _, t := range cfg.Tabs {
		check(fmt.Sprintf("Tab %q", t.Tab), directPaths(t.Pages))
	}
	for _, a := range cfg.Anchors {
		check(fmt.Sprintf("Anchor %q", a.Anchor), directPaths(a.Pages))
	}
	for _, d := range cfg.Dropdowns {
		check(fmt.Sprintf("Dropdown %q", d.Dropdown), directPaths(d.Pages))
	}

	return Result{IsValid: len(errs) == 0, Errors: errs}
}

func (v *Validator) isReserved(path string) bool {
	for _, r := range v.reserved() {
		if strings.Contains(path, r) {
			return true
		}
	}
	return false
}

func (v *Validator) reserved() []string {
	if v == nil || len(v.ReservedPaths) == 0 {
		return DefaultReservedPaths
	}
	return v.ReservedPaths
}

// describe renders the reserved set as `"/api" or "/mcp"`.
func (v *Validator) describe() string {
	quoted := make([]string, 0, len(v.reserved()))
	for _, r := range v.reserved() {
		quoted = append(quoted, fmt.Sprintf("%q", r))
	}
	return strings.Join(quoted, " or ")
}

func directPaths(entries []PageEntry) []string {
	paths := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.Group == nil {
			paths = append(paths, e.Path)
		}
	}
	return paths
}
