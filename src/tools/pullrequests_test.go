package tools

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreatePullRequestAssemblesVector(t *testing.T) {
	c := &captureSpawn{stdout: "https://github.com/octo/hello/pull/5\n"}
	d := testDeps(t, c, repoEnv)

	res, err := d.createPullRequest(context.Background(), callReq(map[string]any{
		"base_branch": "main",
		"head":        "feature/login",
		"title":       "Add login",
		"draft":       true,
		"labels":      []any{"feature"},
		"reviewers":   []any{"alice", "bob"},
	}))
	require.NoError(t, err)
	require.False(t, res.IsError, resultText(t, res))

	assert.Equal(t, []string{
		"pr", "create",
		"--repo", "octo/hello",
		"--base", "main",
		"--head", "feature/login",
		"--title", "Add login",
		"--body", "Created via GitHub MCP Server",
		"--draft",
		"--label", "feature",
		"--assignee", "@me",
		"--reviewer", "alice",
		"--reviewer", "bob",
	}, c.args)
}

func TestCreatePullRequestRequiredParams(t *testing.T) {
	c := &captureSpawn{}
	d := testDeps(t, c, repoEnv)

	for _, missing := range []string{"base_branch", "head", "title"} {
		args := map[string]any{
			"base_branch": "main",
			"head":        "feature",
			"title":       "t",
		}
		delete(args, missing)
		res, err := d.createPullRequest(context.Background(), callReq(args))
		require.NoError(t, err)
		requireToolError(t, res, missing)
	}
	assert.Equal(t, 0, c.calls)
}

func TestListPullRequestsDefaults(t *testing.T) {
	c := &captureSpawn{stdout: "[]"}
	d := testDeps(t, c, repoEnv)

	res, err := d.listPullRequests(context.Background(), callReq(map[string]any{}))
	require.NoError(t, err)
	require.False(t, res.IsError, resultText(t, res))

	assert.Equal(t, []string{
		"pr", "list", "--repo", "octo/hello",
		"--limit", "30",
		"--json", prListFields,
		"--state", "open",
	}, c.args)
}

func TestCheckoutPullRequestFlags(t *testing.T) {
	c := &captureSpawn{}
	d := testDeps(t, c, repoEnv)

	res, err := d.checkoutPullRequest(context.Background(), callReq(map[string]any{
		"pr_identifier":        "42",
		"checkout_branch_name": "review-42",
		"force":                true,
	}))
	require.NoError(t, err)
	require.False(t, res.IsError, resultText(t, res))
	assert.Equal(t, []string{
		"pr", "checkout", "42", "--repo", "octo/hello",
		"--branch", "review-42",
		"--force",
	}, c.args)
}

func TestClosePullRequestDeleteBranch(t *testing.T) {
	c := &captureSpawn{}
	d := testDeps(t, c, repoEnv)

	res, err := d.closePullRequest(context.Background(), callReq(map[string]any{
		"pr_identifier": "10",
		"delete_branch": true,
	}))
	require.NoError(t, err)
	require.False(t, res.IsError, resultText(t, res))
	assert.Equal(t, []string{
		"pr", "close", "10", "--repo", "octo/hello", "--delete-branch",
	}, c.args)
}

func TestDiffPullRequestValidatesColor(t *testing.T) {
	c := &captureSpawn{}
	d := testDeps(t, c, repoEnv)

	res, _ := d.diffPullRequest(context.Background(), callReq(map[string]any{"color": "rainbow"}))
	requireToolError(t, res, "color")
	assert.Equal(t, 0, c.calls)

	// identifier is optional, gh defaults to the current branch
	res, _ = d.diffPullRequest(context.Background(), callReq(map[string]any{
		"color":     "never",
		"name_only": true,
	}))
	require.False(t, res.IsError, resultText(t, res))
	assert.Equal(t, []string{
		"pr", "diff", "--repo", "octo/hello", "--color", "never", "--name-only",
	}, c.args)
}

func TestEditPullRequestRequiresAChange(t *testing.T) {
	c := &captureSpawn{}
	d := testDeps(t, c, repoEnv)

	res, err := d.editPullRequest(context.Background(), callReq(map[string]any{
		"pr_identifier": "8",
	}))
	require.NoError(t, err)
	requireToolError(t, res, "change")
	assert.Equal(t, 0, c.calls)
}

func TestEditPullRequestInjectsDefaultAssignee(t *testing.T) {
	c := &captureSpawn{}
	d := testDeps(t, c, repoEnv)

	res, err := d.editPullRequest(context.Background(), callReq(map[string]any{
		"pr_identifier": "8",
		"title":         "Better title",
	}))
	require.NoError(t, err)
	require.False(t, res.IsError, resultText(t, res))
	assert.Equal(t, []string{
		"pr", "edit", "8", "--repo", "octo/hello",
		"--title", "Better title",
		"--add-assignee", "@me",
	}, c.args)
}

func TestEditPullRequestExplicitAssigneesSuppressDefault(t *testing.T) {
	c := &captureSpawn{}
	d := testDeps(t, c, repoEnv)

	res, err := d.editPullRequest(context.Background(), callReq(map[string]any{
		"pr_identifier":    "8",
		"remove_assignees": []any{"bob"},
	}))
	require.NoError(t, err)
	require.False(t, res.IsError, resultText(t, res))
	assert.NotContains(t, c.args, "--add-assignee")
	assert.Contains(t, c.args, "--remove-assignee")
}

func TestReviewPullRequestActionRules(t *testing.T) {
	c := &captureSpawn{}
	d := testDeps(t, c, repoEnv)

	res, _ := d.reviewPullRequest(context.Background(), callReq(map[string]any{
		"pr_identifier": "4", "action": "merge",
	}))
	requireToolError(t, res, "action")

	res, _ = d.reviewPullRequest(context.Background(), callReq(map[string]any{
		"pr_identifier": "4", "action": "approve", "body": "lgtm",
	}))
	requireToolError(t, res, "approve")

	res, _ = d.reviewPullRequest(context.Background(), callReq(map[string]any{
		"pr_identifier": "4", "action": "comment",
	}))
	requireToolError(t, res, "body")
	assert.Equal(t, 0, c.calls)

	res, _ = d.reviewPullRequest(context.Background(), callReq(map[string]any{
		"pr_identifier": "4", "action": "request_changes", "body": "needs tests",
	}))
	require.False(t, res.IsError, resultText(t, res))
	assert.Equal(t, []string{
		"pr", "review", "4", "--repo", "octo/hello",
		"--request-changes",
		"--body", "needs tests",
	}, c.args)
}

func TestStatusPullRequest(t *testing.T) {
	c := &captureSpawn{stdout: `{"createdBy": []}`}
	d := testDeps(t, c, repoEnv)

	res, err := d.statusPullRequest(context.Background(), callReq(nil))
	require.NoError(t, err)
	require.False(t, res.IsError, resultText(t, res))
	assert.Equal(t, []string{"pr", "status", "--json", prStatusFields}, c.args)
}

func TestViewPullRequestWithComments(t *testing.T) {
	c := &captureSpawn{stdout: `{"number": 6}`}
	d := testDeps(t, c, repoEnv)

	res, err := d.viewPullRequest(context.Background(), callReq(map[string]any{
		"pr_identifier": "6",
		"comments":      true,
	}))
	require.NoError(t, err)
	require.False(t, res.IsError, resultText(t, res))
	assert.Equal(t, []string{
		"pr", "view", "6", "--repo", "octo/hello",
		"--json", prViewFields,
		"--comments",
	}, c.args)
}

func TestUpdateBranchPullRequestRebase(t *testing.T) {
	c := &captureSpawn{}
	d := testDeps(t, c, repoEnv)

	res, err := d.updateBranchPullRequest(context.Background(), callReq(map[string]any{
		"pr_identifier": "15",
		"rebase":        true,
	}))
	require.NoError(t, err)
	require.False(t, res.IsError, resultText(t, res))
	assert.Equal(t, []string{
		"pr", "update-branch", "15", "--repo", "octo/hello", "--rebase",
	}, c.args)
}

func TestReadyPullRequest(t *testing.T) {
	c := &captureSpawn{}
	d := testDeps(t, c, repoEnv)

	res, err := d.readyPullRequest(context.Background(), callReq(map[string]any{
		"pr_identifier": "2",
	}))
	require.NoError(t, err)
	require.False(t, res.IsError, resultText(t, res))
	assert.Equal(t, []string{"pr", "ready", "2", "--repo", "octo/hello"}, c.args)
}
