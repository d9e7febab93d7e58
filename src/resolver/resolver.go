// Package resolver picks the effective value for an optional tool
// parameter by fixed precedence: explicit call-time value, then
// environment variable, then configured default.
package resolver

import (
	"os"
	"strings"

	"github.com/spf13/cast"

	"github.com/gh-project-manager/gh-project-manager-mcp/src/config"
)

var truthy = map[string]bool{"true": true, "1": true, "yes": true, "y": true, "t": true}
var falsy = map[string]bool{"false": true, "0": true, "no": true, "n": true, "f": true}

// Resolver resolves parameters against an immutable spec table. It reads
// the process environment at call time and never mutates anything, so one
// instance is shared by all in-flight tool calls.
type Resolver struct {
	table  config.Table
	lookup config.LookupEnv
	logger func(format string, args ...interface{})
}

// New creates a Resolver over the given table. logger may be nil.
func New(table config.Table, logger func(format string, args ...interface{})) *Resolver {
	if logger == nil {
		logger = func(format string, args ...interface{}) {}
	}
	return &Resolver{table: table, lookup: os.LookupEnv, logger: logger}
}

// WithEnv replaces the environment lookup, for tests.
func (r *Resolver) WithEnv(lookup config.LookupEnv) *Resolver {
	r.lookup = lookup
	return r
}

// Resolve returns the value to use for (capability, name). A non-nil
// explicit value always wins, including an explicitly empty string or
// slice: absence is nil, not emptiness. With no explicit value the
// spec's environment variable is consulted (even when set to ""), decoded
// per the declared type, and finally the configured default is returned
// unchanged. An unknown parameter resolves to nil with a diagnostic.
func (r *Resolver) Resolve(capability, name string, explicit any) any {
	if explicit != nil {
		return explicit
	}

	spec, ok := r.table.Lookup(capability, name)
	if !ok {
		r.logger("resolver: no spec for %s.%s, resolving to nil", capability, name)
		return nil
	}

	if spec.EnvVar != "" {
		if raw, set := r.lookup(spec.EnvVar); set {
			if val, ok := r.decode(spec, raw, capability, name); ok {
				return val
			}
			// decode failed, fall through to the default
		}
	}

	return spec.Default
}

// decode converts the raw environment string per the declared type. The
// second return is false when the value is unusable and the default
// should apply instead; that path never panics or errors out.
func (r *Resolver) decode(spec config.ParamSpec, raw, capability, name string) (any, bool) {
	switch spec.Type {
	case config.TypeList:
		return splitList(raw), true
	case config.TypeInt:
		n, err := cast.ToIntE(raw)
		if err != nil {
			r.logger("resolver: %s=%q is not an integer for %s.%s, using default", spec.EnvVar, raw, capability, name)
			return nil, false
		}
		return n, true
	case config.TypeBool:
		lower := strings.ToLower(strings.TrimSpace(raw))
		if truthy[lower] {
			return true, true
		}
		if falsy[lower] {
			return false, true
		}
		r.logger("resolver: %s=%q is not a boolean for %s.%s, using default", spec.EnvVar, raw, capability, name)
		return nil, false
	default:
		return raw, true
	}
}

// splitList turns a comma-separated environment string into a slice of
// trimmed tokens. The empty string means an explicitly empty list.
func splitList(raw string) []string {
	if raw == "" {
		return []string{}
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
