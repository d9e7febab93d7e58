package resolver

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/gh-project-manager/gh-project-manager-mcp/src/config"
)

func newResolver(t *testing.T, env map[string]string) *Resolver {
	t.Helper()
	return New(config.Defaults(), t.Logf).WithEnv(func(key string) (string, bool) {
		v, ok := env[key]
		return v, ok
	})
}

func TestExplicitWins(t *testing.T) {
	r := newResolver(t, map[string]string{"DEFAULT_ISSUE_LIST_LIMIT": "99"})

	if got := r.Resolve("issue", "limit", 5); got != 5 {
		t.Fatalf("explicit value lost: got %v", got)
	}

	// explicitly empty values still win over env and default
	if got := r.Resolve("issue", "body", ""); got != "" {
		t.Fatalf("explicit empty string lost: got %v", got)
	}
	got := r.Resolve("issue", "labels", []string{})
	if !reflect.DeepEqual(got, []string{}) {
		t.Fatalf("explicit empty list lost: got %v", got)
	}
}

func TestEnvOverridesDefault(t *testing.T) {
	r := newResolver(t, map[string]string{"DEFAULT_ISSUE_LIST_STATE": "closed"})
	assert.Equal(t, "closed", r.Resolve("issue", "state", nil))
}

func TestEnvSetToEmptyStringCounts(t *testing.T) {
	r := newResolver(t, map[string]string{"GH_ISSUE_BODY": ""})
	assert.Equal(t, "", r.Resolve("issue", "body", nil))
}

func TestDefaultApplies(t *testing.T) {
	r := newResolver(t, nil)
	assert.Equal(t, 30, r.Resolve("issue", "limit", nil))
	assert.Equal(t, "main", r.Resolve("pull_request", "base", nil))
	assert.Nil(t, r.Resolve("issue", "project", nil))
}

func TestIntDecoding(t *testing.T) {
	r := newResolver(t, map[string]string{"DEFAULT_ISSUE_LIST_LIMIT": "50"})
	assert.Equal(t, 50, r.Resolve("issue", "limit", nil))
}

func TestIntDecodeFailureFallsBackToDefault(t *testing.T) {
	r := newResolver(t, map[string]string{"DEFAULT_ISSUE_LIST_LIMIT": "lots"})
	assert.Equal(t, 30, r.Resolve("issue", "limit", nil))
}

func TestListDecoding(t *testing.T) {
	cases := []struct {
		raw  string
		want []string
	}{
		{"", []string{}},
		{"bug", []string{"bug"}},
		{"a, b ,c", []string{"a", "b", "c"}},
		{"a,,b, ", []string{"a", "b"}},
	}
	for _, tc := range cases {
		r := newResolver(t, map[string]string{"DEFAULT_ISSUE_LABELS": tc.raw})
		got := r.Resolve("issue", "labels", nil)
		if !reflect.DeepEqual(got, tc.want) {
			t.Errorf("labels=%q: got %v, want %v", tc.raw, got, tc.want)
		}
	}
}

func TestBoolDecoding(t *testing.T) {
	for raw, want := range map[string]bool{
		"true": true, "1": true, "YES": true, "y": true, "T": true,
		"false": false, "0": false, "No": false, "n": false, "f": false,
	} {
		r := newResolver(t, map[string]string{"DEFAULT_PR_DRAFT": raw})
		if got := r.Resolve("pull_request", "draft", nil); got != want {
			t.Errorf("draft=%q: got %v, want %v", raw, got, want)
		}
	}

	// unrecognized token falls back to the default
	r := newResolver(t, map[string]string{"DEFAULT_PR_DELETE_BRANCH": "maybe"})
	assert.Equal(t, true, r.Resolve("pull_request", "delete_branch", nil))
}

func TestUnknownParameterResolvesToNil(t *testing.T) {
	var logged bool
	r := New(config.Defaults(), func(string, ...interface{}) { logged = true })
	assert.Nil(t, r.Resolve("issue", "no_such_param", nil))
	assert.True(t, logged, "expected a diagnostic for the unknown parameter")
}

func TestResolveIsIdempotent(t *testing.T) {
	r := newResolver(t, map[string]string{"DEFAULT_ISSUE_LABELS": "bug, urgent"})
	first := r.Resolve("issue", "labels", nil)
	second := r.Resolve("issue", "labels", nil)
	assert.Equal(t, first, second)
	assert.Equal(t, []string{"bug", "urgent"}, first)
}
