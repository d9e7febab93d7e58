// Package executor runs GitHub CLI invocations and normalizes every
// outcome into a single result shape: decoded JSON, plain text, or a
// typed failure descriptor. It never returns a Go error to its callers.
package executor

import (
	"bytes"
	"context"
	"errors"
	"os"
	"os/exec"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/gh-project-manager/gh-project-manager-mcp/src/config"
	"github.com/gh-project-manager/gh-project-manager-mcp/src/json"
)

// Failure kinds. Other layers match on these exact strings.
const (
	KindMissingCredential = "missing credential"
	KindToolNotFound      = "tool not found"
	KindExecutionError    = "execution error"
	KindUnexpectedOutput  = "unexpected output shape"
	KindUnexpectedError   = "unexpected execution error"
)

const defaultErrorMessage = "GitHub CLI command failed."

// Failure describes a classified command failure. Kind carries one of the
// Kind* constants; Raw holds untouched stdout on decode failures and
// Details the underlying message on execution errors.
type Failure struct {
	Kind    string `json:"error"`
	Details string `json:"details,omitempty"`
	Raw     string `json:"raw,omitempty"`
}

// Result is the uniform outcome of one invocation: exactly one of
// Structured, Text or Failure is meaningful.
type Result struct {
	Structured any
	Text       string
	Failure    *Failure
}

// Failed reports whether the invocation produced a failure descriptor.
func (r Result) Failed() bool { return r.Failure != nil }

// Value returns the payload a caller should relay: the decoded data, the
// text, or the failure descriptor itself.
func (r Result) Value() any {
	switch {
	case r.Failure != nil:
		return r.Failure
	case r.Structured != nil:
		return r.Structured
	default:
		return r.Text
	}
}

func structuredResult(v any) Result { return Result{Structured: v} }

func textResult(s string) Result { return Result{Text: s} }

func failResult(f *Failure) Result { return Result{Failure: f} }

func fail(kind, details string) Result { return failResult(&Failure{Kind: kind, Details: details}) }

// SpawnFunc runs one child process to completion and reports captured
// output, the exit code, and any spawn-level error. Injectable so tests
// can count invocations without touching a real binary.
type SpawnFunc func(ctx context.Context, name string, args, env []string) (stdout, stderr string, exitCode int, err error)

// Runner executes gh subcommands. The zero value is not usable; construct
// with New.
type Runner struct {
	binary  string
	timeout time.Duration
	lookup  config.LookupEnv
	spawn   SpawnFunc
	logger  func(format string, args ...interface{})
}

// Option configures a Runner.
type Option func(*Runner)

// WithBinary overrides the gh binary path.
func WithBinary(path string) Option { return func(r *Runner) { r.binary = path } }

// WithTimeout bounds each invocation. Zero disables the bound.
func WithTimeout(d time.Duration) Option { return func(r *Runner) { r.timeout = d } }

// WithEnv replaces the environment lookup, for tests.
func WithEnv(lookup config.LookupEnv) Option { return func(r *Runner) { r.lookup = lookup } }

// WithSpawn replaces the process spawner, for tests.
func WithSpawn(spawn SpawnFunc) Option { return func(r *Runner) { r.spawn = spawn } }

// DefaultTimeout bounds each gh invocation. The CLI itself has none, and
// an agent call should not hang on a stuck network.
const DefaultTimeout = 120 * time.Second

// New creates a Runner with the default gh binary and timeout. logger may
// be nil.
func New(logger func(format string, args ...interface{}), opts ...Option) *Runner {
	if logger == nil {
		logger = func(format string, args ...interface{}) {}
	}
	r := &Runner{
		binary:  "gh",
		timeout: DefaultTimeout,
		lookup:  os.LookupEnv,
		spawn:   spawnProcess,
		logger:  logger,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Execute runs one gh invocation with the given arguments and classifies
// the outcome. The credential precondition is checked before any process
// is spawned; with no token set, no subprocess ever starts.
func (r *Runner) Execute(ctx context.Context, args []string) Result {
	token, ok := config.Token(r.lookup)
	if !ok {
		return fail(KindMissingCredential,
			"GitHub token not found. Set GITHUB_TOKEN or GH_TOKEN.")
	}

	if r.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}

	env := append(os.Environ(), "GH_TOKEN="+token, "NO_COLOR=1")

	id := uuid.NewString()[:8]
	r.logger("[gh %s] running: %s %s", id, r.binary, strings.Join(args, " "))

	stdout, stderr, code, err := r.spawn(ctx, r.binary, args, env)
	if err != nil {
		if errors.Is(err, exec.ErrNotFound) {
			return fail(KindToolNotFound,
				"'"+r.binary+"' not found. Install the GitHub CLI and make sure it is in PATH.")
		}
		r.logger("[gh %s] spawn failed: %v", id, err)
		return fail(KindUnexpectedError, err.Error())
	}

	stdout = strings.TrimSpace(stdout)
	stderr = strings.TrimSpace(stderr)

	if code != 0 {
		msg := stderr
		if msg == "" {
			msg = stdout
		}
		if msg == "" {
			msg = defaultErrorMessage
		}
		r.logger("[gh %s] exit %d: %s", id, code, msg)
		return fail(KindExecutionError, msg)
	}

	if wantsJSON(args) {
		var decoded any
		if err := json.Unmarshal([]byte(stdout), &decoded); err != nil {
			r.logger("[gh %s] expected JSON output but got: %.200s", id, stdout)
			return failResult(&Failure{Kind: KindUnexpectedOutput, Raw: stdout})
		}
		return structuredResult(decoded)
	}

	return textResult(stdout)
}

// wantsJSON reports whether the argument vector asked gh for
// machine-readable output, via either --json or --format json.
func wantsJSON(args []string) bool {
	for i, a := range args {
		if a == "--json" {
			return true
		}
		if a == "--format" && i+1 < len(args) && args[i+1] == "json" {
			return true
		}
	}
	return false
}

// spawnProcess is the real SpawnFunc. A non-zero exit is reported through
// the exit code, not the error; the error is reserved for spawn-level
// faults such as a missing binary.
func spawnProcess(ctx context.Context, name string, args, env []string) (string, string, int, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Env = env

	var stdoutBuf, stderrBuf bytes.Buffer
	cmd.Stdout = &stdoutBuf
	cmd.Stderr = &stderrBuf

	err := cmd.Run()
	if ctxErr := ctx.Err(); ctxErr != nil {
		// the process was killed by the deadline; report that, not the
		// synthetic exit status of the kill
		return stdoutBuf.String(), stderrBuf.String(), 0, ctxErr
	}
	if exitErr, ok := err.(*exec.ExitError); ok {
		return stdoutBuf.String(), stderrBuf.String(), exitErr.ExitCode(), nil
	}
	return stdoutBuf.String(), stderrBuf.String(), 0, err
}
