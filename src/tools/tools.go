// Package tools registers the per-operation gh wrappers with the MCP
// server. Each wrapper resolves its optional parameters, assembles one
// argument vector, runs it through the executor, and relays the result
// unchanged.
package tools

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/spf13/cast"

	"github.com/gh-project-manager/gh-project-manager-mcp/src/executor"
	"github.com/gh-project-manager/gh-project-manager-mcp/src/json"
	"github.com/gh-project-manager/gh-project-manager-mcp/src/resolver"
)

// Deps carries the resolver and runner shared by every wrapper. Both are
// read-only after startup, so a single value serves all concurrent calls.
type Deps struct {
	Resolver *resolver.Resolver
	Runner   *executor.Runner
}

// RegisterAll wires every tool group into the server.
func RegisterAll(srv *server.MCPServer, d Deps) {
	RegisterIssueTools(srv, d)
	RegisterPullRequestTools(srv, d)
	RegisterProjectTools(srv, d)
}

// --- request argument extraction ---
//
// MCP arguments arrive as map[string]any. Absence must stay distinct from
// an explicitly empty value, so every extractor returns nil for a missing
// key and a typed value otherwise.

func stringArg(args map[string]any, key string) any {
	v, ok := args[key]
	if !ok || v == nil {
		return nil
	}
	return cast.ToString(v)
}

func intArg(args map[string]any, key string) any {
	v, ok := args[key]
	if !ok || v == nil {
		return nil
	}
	return cast.ToInt(v)
}

func boolArg(args map[string]any, key string) any {
	v, ok := args[key]
	if !ok || v == nil {
		return nil
	}
	return cast.ToBool(v)
}

func listArg(args map[string]any, key string) any {
	v, ok := args[key]
	if !ok || v == nil {
		return nil
	}
	out, err := cast.ToStringSliceE(v)
	if err != nil {
		return []string{cast.ToString(v)}
	}
	if out == nil {
		out = []string{}
	}
	return out
}

// --- resolved value coercion ---

func asString(v any) string { return cast.ToString(v) }

func asStringList(v any) []string {
	if v == nil {
		return nil
	}
	out, err := cast.ToStringSliceE(v)
	if err != nil {
		return []string{cast.ToString(v)}
	}
	return out
}

func asBool(v any) bool { return cast.ToBool(v) }

func asInt(v any) (int, bool) {
	if v == nil {
		return 0, false
	}
	n, err := cast.ToIntE(v)
	if err != nil {
		return 0, false
	}
	return n, true
}

// --- wrapper-layer validation errors ---
//
// These are caller mistakes, not command failures; they stay outside the
// executor's failure taxonomy.

func missingParam(name string) *mcp.CallToolResult {
	return mcp.NewToolResultError(fmt.Sprintf("required parameter %q is missing", name))
}

func invalidParam(name, requirement string) *mcp.CallToolResult {
	return mcp.NewToolResultError(fmt.Sprintf("invalid parameter %q: %s", name, requirement))
}

// repoSlug resolves owner and repo ("global" capability) and returns the
// owner/repo form every gh subcommand takes.
func (d Deps) repoSlug(args map[string]any) (string, *mcp.CallToolResult) {
	owner := asString(d.Resolver.Resolve("global", "owner", stringArg(args, "owner")))
	repo := asString(d.Resolver.Resolve("global", "repo", stringArg(args, "repo")))
	if owner == "" {
		return "", missingParam("owner")
	}
	if repo == "" {
		return "", missingParam("repo")
	}
	return owner + "/" + repo, nil
}

// appendJoined adds one flag with the comma-joined values, matching how
// gh issue edit takes its multi-value flags. Empty lists add nothing.
func appendJoined(cmd []string, flag string, values []string) []string {
	if len(values) == 0 {
		return cmd
	}
	return append(cmd, flag, strings.Join(values, ","))
}

// appendEach repeats the flag once per value, for subcommands that do not
// accept comma-joined lists.
func appendEach(cmd []string, flag string, values []string) []string {
	for _, v := range values {
		cmd = append(cmd, flag, v)
	}
	return cmd
}

func itoa(n int) string { return strconv.Itoa(n) }

func contains(set []string, v string) bool {
	for _, s := range set {
		if s == v {
			return true
		}
	}
	return false
}

// toolResult converts an executor result into the protocol envelope.
// Failure descriptors are serialized verbatim so the client sees the
// error/details/raw fields untouched.
func toolResult(res executor.Result) *mcp.CallToolResult {
	if res.Failed() {
		b, err := json.Marshal(res.Failure)
		if err != nil {
			return mcp.NewToolResultError(res.Failure.Kind)
		}
		return mcp.NewToolResultError(string(b))
	}
	if res.Structured != nil {
		b, err := json.Marshal(res.Structured)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("encode result: %v", err))
		}
		return mcp.NewToolResultText(string(b))
	}
	return mcp.NewToolResultText(res.Text)
}
