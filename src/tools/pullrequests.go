package tools

import (
	"context"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

const prListFields = "number,title,state,url,labels,assignees,author,baseRefName,headRefName"
const prViewFields = "number,title,state,url,body,createdAt,updatedAt,labels,assignees,author,baseRefName,headRefName,comments,reviews"
const prStatusFields = "createdBy,mentioned,reviewRequested"

var diffColorOptions = []string{"auto", "always", "never"}

var reviewActions = map[string]string{
	"approve":         "--approve",
	"comment":         "--comment",
	"request_changes": "--request-changes",
}

// RegisterPullRequestTools registers the gh pr wrappers.
func RegisterPullRequestTools(srv *server.MCPServer, d Deps) {
	srv.AddTool(mcp.NewTool("create_pull_request",
		mcp.WithDescription("Create a GitHub pull request"),
		mcp.WithString("base_branch", mcp.Required(), mcp.Description("Base branch")),
		mcp.WithString("head", mcp.Required(), mcp.Description("Head branch with the changes")),
		mcp.WithString("title", mcp.Required(), mcp.Description("Pull request title")),
		mcp.WithString("owner", mcp.Description("Repository owner")),
		mcp.WithString("repo", mcp.Description("Repository name")),
		mcp.WithString("body", mcp.Description("Pull request description")),
		mcp.WithBoolean("draft", mcp.Description("Create as draft")),
		mcp.WithArray("labels", mcp.Items(map[string]any{"type": "string"})),
		mcp.WithString("project_title", mcp.Description("Project to add the PR to")),
		mcp.WithArray("reviewers", mcp.Items(map[string]any{"type": "string"})),
		mcp.WithString("assignee", mcp.Description("Username to assign")),
	), d.createPullRequest)

	srv.AddTool(mcp.NewTool("list_pull_requests",
		mcp.WithDescription("List pull requests in a repository"),
		mcp.WithString("owner", mcp.Description("Repository owner")),
		mcp.WithString("repo", mcp.Description("Repository name")),
		mcp.WithString("state", mcp.Description("Filter by state: open, closed, merged or all")),
		mcp.WithNumber("limit", mcp.Description("Maximum number of PRs to return")),
		mcp.WithArray("labels", mcp.Items(map[string]any{"type": "string"})),
		mcp.WithString("assignee", mcp.Description("Filter by assignee")),
		mcp.WithString("author", mcp.Description("Filter by author")),
		mcp.WithString("base_branch", mcp.Description("Filter by base branch")),
		mcp.WithString("head", mcp.Description("Filter by head branch")),
	), d.listPullRequests)

	srv.AddTool(mcp.NewTool("checkout_pull_request",
		mcp.WithDescription("Check out a pull request branch locally"),
		mcp.WithString("pr_identifier", mcp.Required(), mcp.Description("PR number or URL")),
		mcp.WithString("owner", mcp.Description("Repository owner")),
		mcp.WithString("repo", mcp.Description("Repository name")),
		mcp.WithString("checkout_branch_name", mcp.Description("Name for the local branch")),
		mcp.WithBoolean("detach", mcp.Description("Checkout in detached HEAD state")),
		mcp.WithBoolean("recurse_submodules", mcp.Description("Update all submodules")),
		mcp.WithBoolean("force", mcp.Description("Force checkout over local changes")),
	), d.checkoutPullRequest)

	srv.AddTool(mcp.NewTool("close_pull_request",
		mcp.WithDescription("Close a GitHub pull request"),
		mcp.WithString("pr_identifier", mcp.Required(), mcp.Description("PR number or URL")),
		mcp.WithString("owner", mcp.Description("Repository owner")),
		mcp.WithString("repo", mcp.Description("Repository name")),
		mcp.WithString("comment", mcp.Description("Comment to add when closing")),
		mcp.WithBoolean("delete_branch", mcp.Description("Delete the head branch")),
	), d.closePullRequest)

	srv.AddTool(mcp.NewTool("comment_pull_request",
		mcp.WithDescription("Add a comment to a pull request"),
		mcp.WithString("pr_identifier", mcp.Required(), mcp.Description("PR number or URL")),
		mcp.WithString("owner", mcp.Description("Repository owner")),
		mcp.WithString("repo", mcp.Description("Repository name")),
		mcp.WithString("body", mcp.Description("Comment text")),
		mcp.WithString("body_file", mcp.Description("Path to a file with the comment text")),
	), d.commentPullRequest)

	srv.AddTool(mcp.NewTool("diff_pull_request",
		mcp.WithDescription("View the diff of a pull request"),
		mcp.WithString("owner", mcp.Description("Repository owner")),
		mcp.WithString("repo", mcp.Description("Repository name")),
		mcp.WithString("pr_identifier", mcp.Description("PR number or URL; current branch when omitted")),
		mcp.WithString("color", mcp.Description("Color output: auto, always or never")),
		mcp.WithBoolean("patch", mcp.Description("Format as a patch")),
		mcp.WithBoolean("name_only", mcp.Description("Only list changed file names")),
	), d.diffPullRequest)

	srv.AddTool(mcp.NewTool("edit_pull_request",
		mcp.WithDescription("Edit fields of a pull request"),
		mcp.WithString("pr_identifier", mcp.Required(), mcp.Description("PR number or URL")),
		mcp.WithString("owner", mcp.Description("Repository owner")),
		mcp.WithString("repo", mcp.Description("Repository name")),
		mcp.WithString("title", mcp.Description("New title")),
		mcp.WithString("body", mcp.Description("New description")),
		mcp.WithString("base_branch", mcp.Description("New base branch")),
		mcp.WithArray("add_assignees", mcp.Items(map[string]any{"type": "string"})),
		mcp.WithArray("remove_assignees", mcp.Items(map[string]any{"type": "string"})),
		mcp.WithArray("add_reviewers", mcp.Items(map[string]any{"type": "string"})),
		mcp.WithArray("remove_reviewers", mcp.Items(map[string]any{"type": "string"})),
		mcp.WithArray("add_labels", mcp.Items(map[string]any{"type": "string"})),
		mcp.WithArray("remove_labels", mcp.Items(map[string]any{"type": "string"})),
		mcp.WithArray("add_projects", mcp.Items(map[string]any{"type": "string"})),
		mcp.WithArray("remove_projects", mcp.Items(map[string]any{"type": "string"})),
		mcp.WithString("milestone", mcp.Description("Milestone to set")),
	), d.editPullRequest)

	srv.AddTool(mcp.NewTool("ready_pull_request",
		mcp.WithDescription("Mark a draft pull request as ready for review"),
		mcp.WithString("pr_identifier", mcp.Required(), mcp.Description("PR number or URL")),
		mcp.WithString("owner", mcp.Description("Repository owner")),
		mcp.WithString("repo", mcp.Description("Repository name")),
	), d.readyPullRequest)

	srv.AddTool(mcp.NewTool("reopen_pull_request",
		mcp.WithDescription("Reopen a closed pull request"),
		mcp.WithString("pr_identifier", mcp.Required(), mcp.Description("PR number or URL")),
		mcp.WithString("owner", mcp.Description("Repository owner")),
		mcp.WithString("repo", mcp.Description("Repository name")),
		mcp.WithString("comment", mcp.Description("Comment to add when reopening")),
	), d.reopenPullRequest)

	srv.AddTool(mcp.NewTool("review_pull_request",
		mcp.WithDescription("Submit a review on a pull request"),
		mcp.WithString("pr_identifier", mcp.Required(), mcp.Description("PR number or URL")),
		mcp.WithString("action", mcp.Required(), mcp.Description("approve, request_changes or comment")),
		mcp.WithString("owner", mcp.Description("Repository owner")),
		mcp.WithString("repo", mcp.Description("Repository name")),
		mcp.WithString("body", mcp.Description("Review text")),
		mcp.WithString("body_file", mcp.Description("Path to a file with the review text")),
	), d.reviewPullRequest)

	srv.AddTool(mcp.NewTool("status_pull_request",
		mcp.WithDescription("Show pull request status for the current user"),
	), d.statusPullRequest)

	srv.AddTool(mcp.NewTool("view_pull_request",
		mcp.WithDescription("View details of a pull request"),
		mcp.WithString("pr_identifier", mcp.Required(), mcp.Description("PR number or URL")),
		mcp.WithString("owner", mcp.Description("Repository owner")),
		mcp.WithString("repo", mcp.Description("Repository name")),
		mcp.WithBoolean("comments", mcp.Description("Include comments")),
	), d.viewPullRequest)

	srv.AddTool(mcp.NewTool("update_branch_pull_request",
		mcp.WithDescription("Update a pull request branch from its base"),
		mcp.WithString("pr_identifier", mcp.Required(), mcp.Description("PR number or URL")),
		mcp.WithString("owner", mcp.Description("Repository owner")),
		mcp.WithString("repo", mcp.Description("Repository name")),
		mcp.WithBoolean("rebase", mcp.Description("Rebase instead of merge")),
	), d.updateBranchPullRequest)
}

func (d Deps) createPullRequest(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := req.GetArguments()
	base := asString(stringArg(args, "base_branch"))
	head := asString(stringArg(args, "head"))
	title := asString(stringArg(args, "title"))
	switch {
	case base == "":
		return missingParam("base_branch"), nil
	case head == "":
		return missingParam("head"), nil
	case title == "":
		return missingParam("title"), nil
	}
	slug, errRes := d.repoSlug(args)
	if errRes != nil {
		return errRes, nil
	}

	cmd := []string{
		"pr", "create",
		"--repo", slug,
		"--base", base,
		"--head", head,
		"--title", title,
	}
	body := asString(d.Resolver.Resolve("pull_request", "body", stringArg(args, "body")))
	if body == "" {
		body = "Created via GitHub MCP Server"
	}
	cmd = append(cmd, "--body", body)

	if asBool(boolArg(args, "draft")) {
		cmd = append(cmd, "--draft")
	}
	cmd = appendEach(cmd, "--label", asStringList(listArg(args, "labels")))
	if project := asString(stringArg(args, "project_title")); project != "" {
		cmd = append(cmd, "--project", project)
	}
	if assignee := asString(d.Resolver.Resolve("pull_request", "assignee", stringArg(args, "assignee"))); assignee != "" {
		cmd = append(cmd, "--assignee", assignee)
	}
	cmd = appendEach(cmd, "--reviewer", asStringList(listArg(args, "reviewers")))

	return toolResult(d.Runner.Execute(ctx, cmd)), nil
}

func (d Deps) listPullRequests(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := req.GetArguments()
	slug, errRes := d.repoSlug(args)
	if errRes != nil {
		return errRes, nil
	}

	cmd := []string{"pr", "list", "--repo", slug}
	if limit, ok := asInt(d.Resolver.Resolve("pull_request", "pr_limit", intArg(args, "limit"))); ok {
		cmd = append(cmd, "--limit", itoa(limit))
	}
	cmd = append(cmd, "--json", prListFields)

	if state := asString(d.Resolver.Resolve("pull_request", "pr_state", stringArg(args, "state"))); state != "" {
		cmd = append(cmd, "--state", state)
	}
	if assignee := asString(stringArg(args, "assignee")); assignee != "" {
		cmd = append(cmd, "--assignee", assignee)
	}
	if author := asString(stringArg(args, "author")); author != "" {
		cmd = append(cmd, "--author", author)
	}
	if base := asString(stringArg(args, "base_branch")); base != "" {
		cmd = append(cmd, "--base", base)
	}
	if head := asString(stringArg(args, "head")); head != "" {
		cmd = append(cmd, "--head", head)
	}
	cmd = appendJoined(cmd, "--label", asStringList(listArg(args, "labels")))

	return toolResult(d.Runner.Execute(ctx, cmd)), nil
}

func (d Deps) checkoutPullRequest(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := req.GetArguments()
	identifier := asString(stringArg(args, "pr_identifier"))
	if identifier == "" {
		return missingParam("pr_identifier"), nil
	}
	slug, errRes := d.repoSlug(args)
	if errRes != nil {
		return errRes, nil
	}

	cmd := []string{"pr", "checkout", identifier, "--repo", slug}
	if branch := asString(stringArg(args, "checkout_branch_name")); branch != "" {
		cmd = append(cmd, "--branch", branch)
	}
	if asBool(boolArg(args, "detach")) {
		cmd = append(cmd, "--detach")
	}
	if asBool(boolArg(args, "recurse_submodules")) {
		cmd = append(cmd, "--recurse-submodules")
	}
	if asBool(boolArg(args, "force")) {
		cmd = append(cmd, "--force")
	}

	return toolResult(d.Runner.Execute(ctx, cmd)), nil
}

func (d Deps) closePullRequest(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := req.GetArguments()
	identifier := asString(stringArg(args, "pr_identifier"))
	if identifier == "" {
		return missingParam("pr_identifier"), nil
	}
	slug, errRes := d.repoSlug(args)
	if errRes != nil {
		return errRes, nil
	}

	cmd := []string{"pr", "close", identifier, "--repo", slug}
	if comment := asString(stringArg(args, "comment")); comment != "" {
		cmd = append(cmd, "--comment", comment)
	}
	if asBool(boolArg(args, "delete_branch")) {
		cmd = append(cmd, "--delete-branch")
	}

	return toolResult(d.Runner.Execute(ctx, cmd)), nil
}

func (d Deps) commentPullRequest(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := req.GetArguments()
	identifier := asString(stringArg(args, "pr_identifier"))
	if identifier == "" {
		return missingParam("pr_identifier"), nil
	}
	slug, errRes := d.repoSlug(args)
	if errRes != nil {
		return errRes, nil
	}

	body := asString(stringArg(args, "body"))
	bodyFile := asString(stringArg(args, "body_file"))
	if body == "" && bodyFile == "" {
		return missingParam("body or body_file"), nil
	}
	if body != "" && bodyFile != "" {
		return invalidParam("body", "body and body_file are mutually exclusive"), nil
	}
	if bodyFile == "-" {
		return invalidParam("body_file", "reading from stdin is not supported"), nil
	}

	cmd := []string{"pr", "comment", identifier, "--repo", slug}
	if body != "" {
		cmd = append(cmd, "--body", body)
	} else {
		cmd = append(cmd, "--body-file", bodyFile)
	}

	return toolResult(d.Runner.Execute(ctx, cmd)), nil
}

func (d Deps) diffPullRequest(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := req.GetArguments()
	slug, errRes := d.repoSlug(args)
	if errRes != nil {
		return errRes, nil
	}

	color := strings.ToLower(asString(stringArg(args, "color")))
	if color != "" && !contains(diffColorOptions, color) {
		return invalidParam("color", "must be one of: "+strings.Join(diffColorOptions, ", ")), nil
	}

	cmd := []string{"pr", "diff"}
	if identifier := asString(stringArg(args, "pr_identifier")); identifier != "" {
		cmd = append(cmd, identifier)
	}
	cmd = append(cmd, "--repo", slug)
	if color != "" {
		cmd = append(cmd, "--color", color)
	}
	if asBool(boolArg(args, "patch")) {
		cmd = append(cmd, "--patch")
	}
	if asBool(boolArg(args, "name_only")) {
		cmd = append(cmd, "--name-only")
	}

	return toolResult(d.Runner.Execute(ctx, cmd)), nil
}

func (d Deps) editPullRequest(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := req.GetArguments()
	identifier := asString(stringArg(args, "pr_identifier"))
	if identifier == "" {
		return missingParam("pr_identifier"), nil
	}
	slug, errRes := d.repoSlug(args)
	if errRes != nil {
		return errRes, nil
	}

	// body and base are deliberately not resolved here: their configured
	// defaults describe creation, and an edit must only touch fields the
	// caller named.
	title := asString(stringArg(args, "title"))
	body := asString(stringArg(args, "body"))
	base := asString(stringArg(args, "base_branch"))
	milestone := asString(stringArg(args, "milestone"))
	addAssignees := asStringList(listArg(args, "add_assignees"))
	removeAssignees := asStringList(listArg(args, "remove_assignees"))
	addReviewers := asStringList(listArg(args, "add_reviewers"))
	removeReviewers := asStringList(listArg(args, "remove_reviewers"))
	addLabels := asStringList(listArg(args, "add_labels"))
	removeLabels := asStringList(listArg(args, "remove_labels"))
	addProjects := asStringList(listArg(args, "add_projects"))
	removeProjects := asStringList(listArg(args, "remove_projects"))

	hasChanges := title != "" || body != "" || base != "" || milestone != "" ||
		len(addAssignees) > 0 || len(removeAssignees) > 0 ||
		len(addReviewers) > 0 || len(removeReviewers) > 0 ||
		len(addLabels) > 0 || len(removeLabels) > 0 ||
		len(addProjects) > 0 || len(removeProjects) > 0
	if !hasChanges {
		return missingParam("at least one change parameter"), nil
	}

	// edits without an assignee change still get the default assignee
	if len(addAssignees) == 0 && len(removeAssignees) == 0 {
		if def := asString(d.Resolver.Resolve("pull_request", "assignee", nil)); def != "" {
			addAssignees = []string{def}
		}
	}

	cmd := []string{"pr", "edit", identifier, "--repo", slug}
	if title != "" {
		cmd = append(cmd, "--title", title)
	}
	if body != "" {
		cmd = append(cmd, "--body", body)
	}
	if base != "" {
		cmd = append(cmd, "--base", base)
	}
	if milestone != "" {
		cmd = append(cmd, "--milestone", milestone)
	}
	cmd = appendEach(cmd, "--add-assignee", addAssignees)
	cmd = appendEach(cmd, "--remove-assignee", removeAssignees)
	cmd = appendEach(cmd, "--add-reviewer", addReviewers)
	cmd = appendEach(cmd, "--remove-reviewer", removeReviewers)
	cmd = appendEach(cmd, "--add-label", addLabels)
	cmd = appendEach(cmd, "--remove-label", removeLabels)
	cmd = appendEach(cmd, "--add-project", addProjects)
	cmd = appendEach(cmd, "--remove-project", removeProjects)

	return toolResult(d.Runner.Execute(ctx, cmd)), nil
}

func (d Deps) readyPullRequest(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := req.GetArguments()
	identifier := asString(stringArg(args, "pr_identifier"))
	if identifier == "" {
		return missingParam("pr_identifier"), nil
	}
	slug, errRes := d.repoSlug(args)
	if errRes != nil {
		return errRes, nil
	}

	cmd := []string{"pr", "ready", identifier, "--repo", slug}
	return toolResult(d.Runner.Execute(ctx, cmd)), nil
}

func (d Deps) reopenPullRequest(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := req.GetArguments()
	identifier := asString(stringArg(args, "pr_identifier"))
	if identifier == "" {
		return missingParam("pr_identifier"), nil
	}
	slug, errRes := d.repoSlug(args)
	if errRes != nil {
		return errRes, nil
	}

	cmd := []string{"pr", "reopen", identifier, "--repo", slug}
	if comment := asString(stringArg(args, "comment")); comment != "" {
		cmd = append(cmd, "--comment", comment)
	}

	return toolResult(d.Runner.Execute(ctx, cmd)), nil
}

func (d Deps) reviewPullRequest(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := req.GetArguments()
	identifier := asString(stringArg(args, "pr_identifier"))
	if identifier == "" {
		return missingParam("pr_identifier"), nil
	}
	action := strings.ToLower(asString(stringArg(args, "action")))
	if action == "" {
		return missingParam("action"), nil
	}
	slug, errRes := d.repoSlug(args)
	if errRes != nil {
		return errRes, nil
	}

	flag, ok := reviewActions[action]
	if !ok {
		return invalidParam("action", "must be one of: approve, request_changes, comment"), nil
	}

	body := asString(stringArg(args, "body"))
	bodyFile := asString(stringArg(args, "body_file"))
	if (body != "" || bodyFile != "") && action == "approve" {
		return invalidParam("body", "cannot be used with the approve action"), nil
	}
	if body == "" && bodyFile == "" && action == "comment" {
		return missingParam("body or body_file"), nil
	}
	if body != "" && bodyFile != "" {
		return invalidParam("body", "body and body_file are mutually exclusive"), nil
	}
	if bodyFile == "-" {
		return invalidParam("body_file", "reading from stdin is not supported"), nil
	}

	cmd := []string{"pr", "review", identifier, "--repo", slug, flag}
	if body != "" {
		cmd = append(cmd, "--body", body)
	} else if bodyFile != "" {
		cmd = append(cmd, "--body-file", bodyFile)
	}

	return toolResult(d.Runner.Execute(ctx, cmd)), nil
}

func (d Deps) statusPullRequest(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cmd := []string{"pr", "status", "--json", prStatusFields}
	return toolResult(d.Runner.Execute(ctx, cmd)), nil
}

func (d Deps) viewPullRequest(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := req.GetArguments()
	identifier := asString(stringArg(args, "pr_identifier"))
	if identifier == "" {
		return missingParam("pr_identifier"), nil
	}
	slug, errRes := d.repoSlug(args)
	if errRes != nil {
		return errRes, nil
	}

	cmd := []string{"pr", "view", identifier, "--repo", slug, "--json", prViewFields}
	if asBool(boolArg(args, "comments")) {
		cmd = append(cmd, "--comments")
	}

	return toolResult(d.Runner.Execute(ctx, cmd)), nil
}

func (d Deps) updateBranchPullRequest(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := req.GetArguments()
	identifier := asString(stringArg(args, "pr_identifier"))
	if identifier == "" {
		return missingParam("pr_identifier"), nil
	}
	slug, errRes := d.repoSlug(args)
	if errRes != nil {
		return errRes, nil
	}

	cmd := []string{"pr", "update-branch", identifier, "--repo", slug}
	if asBool(boolArg(args, "rebase")) {
		cmd = append(cmd, "--rebase")
	}

	return toolResult(d.Runner.Execute(ctx, cmd)), nil
}
