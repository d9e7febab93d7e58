package server

import (
	"context"
	"testing"

	mcpserver "github.com/mark3labs/mcp-go/server"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gh-project-manager/gh-project-manager-mcp/src/config"
	"github.com/gh-project-manager/gh-project-manager-mcp/src/executor"
	"github.com/gh-project-manager/gh-project-manager-mcp/src/json"
	"github.com/gh-project-manager/gh-project-manager-mcp/src/resolver"
	"github.com/gh-project-manager/gh-project-manager-mcp/src/tools"
)

func newTestServer(t *testing.T) *mcpserver.MCPServer {
	t.Helper()
	lookup := func(key string) (string, bool) { return "", false }
	return New(tools.Deps{
		Resolver: resolver.New(config.Defaults(), t.Logf).WithEnv(lookup),
		Runner:   executor.New(t.Logf, executor.WithEnv(lookup)),
	})
}

// roundTrip feeds one raw JSON-RPC message through the same path the
// stdio and HTTP transports use and returns the serialized response.
func roundTrip(t *testing.T, srv *mcpserver.MCPServer, request string) string {
	t.Helper()
	resp := srv.HandleMessage(context.Background(), []byte(request))
	require.NotNil(t, resp)
	out, err := json.Marshal(resp)
	require.NoError(t, err)
	return string(out)
}

const initializeRequest = `{"jsonrpc":"2.0","id":1,"method":"initialize","params":{"protocolVersion":"2025-03-26","capabilities":{},"clientInfo":{"name":"test","version":"0"}}}`

func TestServerListsEveryTool(t *testing.T) {
	srv := newTestServer(t)

	roundTrip(t, srv, initializeRequest)
	listing := roundTrip(t, srv, `{"jsonrpc":"2.0","id":2,"method":"tools/list"}`)

	for _, name := range []string{
		"create_issue", "get_issue", "list_issues", "close_issue",
		"comment_issue", "delete_issue", "edit_issue", "reopen_issue",
		"create_pull_request", "list_pull_requests", "checkout_pull_request",
		"close_pull_request", "comment_pull_request", "diff_pull_request",
		"edit_pull_request", "ready_pull_request", "reopen_pull_request",
		"review_pull_request", "status_pull_request", "view_pull_request",
		"update_branch_pull_request",
		"create_project_field", "delete_project_field", "list_project_fields",
		"add_project_item", "archive_project_item", "delete_project_item",
		"edit_project_item", "list_project_items", "view_project",
		"create_project_item",
	} {
		assert.Contains(t, listing, `"`+name+`"`, "tool %s not registered", name)
	}
}

func TestServerAdvertisesIdentity(t *testing.T) {
	srv := newTestServer(t)
	init := roundTrip(t, srv, initializeRequest)
	assert.Contains(t, init, Name)
	assert.Contains(t, init, Version)
}

func TestCallWithoutTokenReportsMissingCredential(t *testing.T) {
	srv := newTestServer(t)

	roundTrip(t, srv, initializeRequest)
	out := roundTrip(t, srv, `{"jsonrpc":"2.0","id":3,"method":"tools/call","params":{"name":"view_project","arguments":{"project_id":"1"}}}`)
	assert.Contains(t, out, "missing credential")
}
