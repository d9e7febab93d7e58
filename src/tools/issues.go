package tools

import (
	"context"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

const issueViewFields = "number,title,state,url,body,createdAt,updatedAt,labels,assignees,comments,author,closedAt"
const issueListFields = "number,title,state,url,createdAt,updatedAt,labels,assignees"

var closeReasons = []string{"completed", "not planned", "duplicate"}

// RegisterIssueTools registers the gh issue wrappers.
func RegisterIssueTools(srv *server.MCPServer, d Deps) {
	srv.AddTool(mcp.NewTool("create_issue",
		mcp.WithDescription("Create a GitHub issue"),
		mcp.WithString("title", mcp.Required(), mcp.Description("Issue title")),
		mcp.WithString("owner", mcp.Description("Repository owner")),
		mcp.WithString("repo", mcp.Description("Repository name")),
		mcp.WithString("body", mcp.Description("Issue body")),
		mcp.WithString("assignee", mcp.Description("Username to assign")),
		mcp.WithArray("labels", mcp.Description("Labels to apply"), mcp.Items(map[string]any{"type": "string"})),
		mcp.WithString("project", mcp.Description("Project to add the issue to")),
	), d.createIssue)

	srv.AddTool(mcp.NewTool("get_issue",
		mcp.WithDescription("Get details of a GitHub issue"),
		mcp.WithNumber("issue_number", mcp.Required(), mcp.Description("Issue number")),
		mcp.WithString("owner", mcp.Description("Repository owner")),
		mcp.WithString("repo", mcp.Description("Repository name")),
	), d.getIssue)

	srv.AddTool(mcp.NewTool("list_issues",
		mcp.WithDescription("List GitHub issues with optional filtering"),
		mcp.WithString("owner", mcp.Description("Repository owner")),
		mcp.WithString("repo", mcp.Description("Repository name")),
		mcp.WithString("state", mcp.Description("Issue state: open, closed or all")),
		mcp.WithNumber("limit", mcp.Description("Maximum number of issues to return")),
		mcp.WithString("assignee", mcp.Description("Filter by assignee")),
		mcp.WithString("creator", mcp.Description("Filter by creator")),
		mcp.WithString("mentioned", mcp.Description("Filter by mentioned user")),
		mcp.WithArray("labels", mcp.Description("Filter by labels"), mcp.Items(map[string]any{"type": "string"})),
		mcp.WithString("milestone", mcp.Description("Filter by milestone")),
	), d.listIssues)

	srv.AddTool(mcp.NewTool("close_issue",
		mcp.WithDescription("Close a GitHub issue"),
		mcp.WithString("issue_identifier", mcp.Required(), mcp.Description("Issue number or URL")),
		mcp.WithString("owner", mcp.Description("Repository owner")),
		mcp.WithString("repo", mcp.Description("Repository name")),
		mcp.WithString("comment", mcp.Description("Comment to add while closing")),
		mcp.WithString("reason", mcp.Description("Close reason: completed, not planned or duplicate")),
	), d.closeIssue)

	srv.AddTool(mcp.NewTool("comment_issue",
		mcp.WithDescription("Add a comment to a GitHub issue"),
		mcp.WithString("issue_identifier", mcp.Required(), mcp.Description("Issue number or URL")),
		mcp.WithString("owner", mcp.Description("Repository owner")),
		mcp.WithString("repo", mcp.Description("Repository name")),
		mcp.WithString("body", mcp.Description("Comment text")),
		mcp.WithString("body_file", mcp.Description("Path to a file with the comment text")),
	), d.commentIssue)

	srv.AddTool(mcp.NewTool("delete_issue",
		mcp.WithDescription("Delete a GitHub issue (requires admin rights)"),
		mcp.WithString("issue_identifier", mcp.Required(), mcp.Description("Issue number or URL")),
		mcp.WithString("owner", mcp.Description("Repository owner")),
		mcp.WithString("repo", mcp.Description("Repository name")),
		mcp.WithBoolean("skip_confirmation", mcp.Description("Skip the confirmation prompt")),
	), d.deleteIssue)

	srv.AddTool(mcp.NewTool("edit_issue",
		mcp.WithDescription("Edit issue metadata"),
		mcp.WithString("issue_identifier", mcp.Required(), mcp.Description("Issue number or URL")),
		mcp.WithString("owner", mcp.Description("Repository owner")),
		mcp.WithString("repo", mcp.Description("Repository name")),
		mcp.WithString("title", mcp.Description("New title")),
		mcp.WithString("body", mcp.Description("New body")),
		mcp.WithArray("add_assignees", mcp.Items(map[string]any{"type": "string"})),
		mcp.WithArray("remove_assignees", mcp.Items(map[string]any{"type": "string"})),
		mcp.WithArray("add_labels", mcp.Items(map[string]any{"type": "string"})),
		mcp.WithArray("remove_labels", mcp.Items(map[string]any{"type": "string"})),
		mcp.WithArray("add_projects", mcp.Items(map[string]any{"type": "string"})),
		mcp.WithArray("remove_projects", mcp.Items(map[string]any{"type": "string"})),
		mcp.WithString("milestone", mcp.Description("Milestone name or number")),
	), d.editIssue)

	srv.AddTool(mcp.NewTool("reopen_issue",
		mcp.WithDescription("Reopen a closed GitHub issue"),
		mcp.WithString("issue_identifier", mcp.Required(), mcp.Description("Issue number or URL")),
		mcp.WithString("owner", mcp.Description("Repository owner")),
		mcp.WithString("repo", mcp.Description("Repository name")),
		mcp.WithString("comment", mcp.Description("Comment to add when reopening")),
	), d.reopenIssue)
}

func (d Deps) createIssue(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := req.GetArguments()
	title := asString(stringArg(args, "title"))
	if title == "" {
		return missingParam("title"), nil
	}
	slug, errRes := d.repoSlug(args)
	if errRes != nil {
		return errRes, nil
	}

	cmd := []string{"issue", "create", "-R", slug, "--title", title}
	if body := asString(d.Resolver.Resolve("issue", "body", stringArg(args, "body"))); body != "" {
		cmd = append(cmd, "--body", body)
	}
	if assignee := asString(d.Resolver.Resolve("issue", "assignee", stringArg(args, "assignee"))); assignee != "" {
		cmd = append(cmd, "--assignee", assignee)
	}
	if labels := asStringList(d.Resolver.Resolve("issue", "labels", listArg(args, "labels"))); len(labels) > 0 {
		cmd = append(cmd, "--label", strings.Join(labels, ","))
	}
	if project := asString(d.Resolver.Resolve("issue", "project", stringArg(args, "project"))); project != "" {
		cmd = append(cmd, "--project", project)
	}

	return toolResult(d.Runner.Execute(ctx, cmd)), nil
}

func (d Deps) getIssue(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := req.GetArguments()
	number, ok := asInt(intArg(args, "issue_number"))
	if !ok {
		return missingParam("issue_number"), nil
	}
	slug, errRes := d.repoSlug(args)
	if errRes != nil {
		return errRes, nil
	}

	cmd := []string{
		"issue", "view", itoa(number),
		"--json", issueViewFields,
		"--repo", slug,
	}
	return toolResult(d.Runner.Execute(ctx, cmd)), nil
}

func (d Deps) listIssues(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := req.GetArguments()
	slug, errRes := d.repoSlug(args)
	if errRes != nil {
		return errRes, nil
	}

	cmd := []string{"issue", "list", "--json", issueListFields, "--repo", slug}
	if state := asString(d.Resolver.Resolve("issue", "state", stringArg(args, "state"))); state != "" {
		cmd = append(cmd, "--state", state)
	}
	if assignee := asString(stringArg(args, "assignee")); assignee != "" {
		cmd = append(cmd, "--assignee", assignee)
	}
	if creator := asString(stringArg(args, "creator")); creator != "" {
		cmd = append(cmd, "--author", creator)
	}
	if mentioned := asString(stringArg(args, "mentioned")); mentioned != "" {
		cmd = append(cmd, "--mention", mentioned)
	}
	if milestone := asString(stringArg(args, "milestone")); milestone != "" {
		cmd = append(cmd, "--milestone", milestone)
	}
	for _, label := range asStringList(listArg(args, "labels")) {
		cmd = append(cmd, "--label", label)
	}
	if limit, ok := asInt(d.Resolver.Resolve("issue", "limit", intArg(args, "limit"))); ok {
		cmd = append(cmd, "--limit", itoa(limit))
	}

	return toolResult(d.Runner.Execute(ctx, cmd)), nil
}

func (d Deps) closeIssue(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := req.GetArguments()
	identifier := asString(stringArg(args, "issue_identifier"))
	if identifier == "" {
		return missingParam("issue_identifier"), nil
	}
	slug, errRes := d.repoSlug(args)
	if errRes != nil {
		return errRes, nil
	}

	cmd := []string{"issue", "close", identifier, "--repo", slug}
	if comment := asString(stringArg(args, "comment")); comment != "" {
		cmd = append(cmd, "--comment", comment)
	}
	if reason := strings.ToLower(asString(stringArg(args, "reason"))); reason != "" {
		if !contains(closeReasons, reason) {
			return invalidParam("reason", "must be one of: "+strings.Join(closeReasons, ", ")), nil
		}
		cmd = append(cmd, "--reason", reason)
	}

	return toolResult(d.Runner.Execute(ctx, cmd)), nil
}

func (d Deps) commentIssue(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := req.GetArguments()
	identifier := asString(stringArg(args, "issue_identifier"))
	if identifier == "" {
		return missingParam("issue_identifier"), nil
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

	cmd := []string{"issue", "comment", identifier, "--repo", slug}
	if body != "" {
		cmd = append(cmd, "--body", body)
	} else {
		cmd = append(cmd, "--body-file", bodyFile)
	}

	return toolResult(d.Runner.Execute(ctx, cmd)), nil
}

func (d Deps) deleteIssue(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := req.GetArguments()
	identifier := asString(stringArg(args, "issue_identifier"))
	if identifier == "" {
		return missingParam("issue_identifier"), nil
	}
	slug, errRes := d.repoSlug(args)
	if errRes != nil {
		return errRes, nil
	}

	cmd := []string{"issue", "delete", identifier, "--repo", slug}
	if asBool(boolArg(args, "skip_confirmation")) {
		cmd = append(cmd, "--yes")
	}

	return toolResult(d.Runner.Execute(ctx, cmd)), nil
}

func (d Deps) editIssue(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := req.GetArguments()
	identifier := asString(stringArg(args, "issue_identifier"))
	if identifier == "" {
		return missingParam("issue_identifier"), nil
	}
	slug, errRes := d.repoSlug(args)
	if errRes != nil {
		return errRes, nil
	}

	cmd := []string{"issue", "edit", identifier, "--repo", slug}
	if title := asString(stringArg(args, "title")); title != "" {
		cmd = append(cmd, "--title", title)
	}
	if body := asString(stringArg(args, "body")); body != "" {
		cmd = append(cmd, "--body", body)
	}
	cmd = appendJoined(cmd, "--add-assignee", asStringList(listArg(args, "add_assignees")))
	cmd = appendJoined(cmd, "--remove-assignee", asStringList(listArg(args, "remove_assignees")))
	cmd = appendJoined(cmd, "--add-label", asStringList(listArg(args, "add_labels")))
	cmd = appendJoined(cmd, "--remove-label", asStringList(listArg(args, "remove_labels")))
	cmd = appendJoined(cmd, "--add-project", asStringList(listArg(args, "add_projects")))
	cmd = appendJoined(cmd, "--remove-project", asStringList(listArg(args, "remove_projects")))
	if milestone := asString(stringArg(args, "milestone")); milestone != "" {
		cmd = append(cmd, "--milestone", milestone)
	}

	return toolResult(d.Runner.Execute(ctx, cmd)), nil
}

func (d Deps) reopenIssue(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := req.GetArguments()
	identifier := asString(stringArg(args, "issue_identifier"))
	if identifier == "" {
		return missingParam("issue_identifier"), nil
	}
	slug, errRes := d.repoSlug(args)
	if errRes != nil {
		return errRes, nil
	}

	cmd := []string{"issue", "reopen", identifier, "--repo", slug}
	if comment := asString(stringArg(args, "comment")); comment != "" {
		cmd = append(cmd, "--comment", comment)
	}

	return toolResult(d.Runner.Execute(ctx, cmd)), nil
}
