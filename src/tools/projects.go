package tools

import (
	"context"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

var fieldDataTypes = []string{"TEXT", "SINGLE_SELECT", "DATE", "NUMBER", "ITERATION"}

// RegisterProjectTools registers the gh project wrappers.
func RegisterProjectTools(srv *server.MCPServer, d Deps) {
	srv.AddTool(mcp.NewTool("create_project_field",
		mcp.WithDescription("Create a custom field in a GitHub project"),
		mcp.WithString("project_id", mcp.Required(), mcp.Description("Project number")),
		mcp.WithString("name", mcp.Description("Field name")),
		mcp.WithString("data_type", mcp.Description("TEXT, SINGLE_SELECT, DATE, NUMBER or ITERATION")),
		mcp.WithString("owner", mcp.Description("Project owner")),
		mcp.WithArray("single_select_options", mcp.Items(map[string]any{"type": "string"})),
	), d.createProjectField)

	srv.AddTool(mcp.NewTool("delete_project_field",
		mcp.WithDescription("Delete a field from a GitHub project"),
		mcp.WithString("field_id", mcp.Required(), mcp.Description("Field id")),
	), d.deleteProjectField)

	srv.AddTool(mcp.NewTool("list_project_fields",
		mcp.WithDescription("List fields in a GitHub project"),
		mcp.WithString("project_id", mcp.Required(), mcp.Description("Project number")),
		mcp.WithString("owner", mcp.Description("Project owner")),
		mcp.WithNumber("limit", mcp.Description("Maximum number of fields to return")),
	), d.listProjectFields)

	srv.AddTool(mcp.NewTool("add_project_item",
		mcp.WithDescription("Add an existing issue or PR to a GitHub project"),
		mcp.WithString("project_id", mcp.Required(), mcp.Description("Project number")),
		mcp.WithString("owner", mcp.Description("Project owner")),
		mcp.WithString("issue_id", mcp.Description("Issue URL to add")),
		mcp.WithString("pull_request_id", mcp.Description("Pull request URL to add")),
	), d.addProjectItem)

	srv.AddTool(mcp.NewTool("archive_project_item",
		mcp.WithDescription("Archive or unarchive a project item"),
		mcp.WithString("item_id", mcp.Required(), mcp.Description("Item id")),
		mcp.WithString("project_id", mcp.Description("Project number")),
		mcp.WithString("owner", mcp.Description("Project owner")),
		mcp.WithBoolean("undo", mcp.Description("Unarchive instead of archive")),
	), d.archiveProjectItem)

	srv.AddTool(mcp.NewTool("delete_project_item",
		mcp.WithDescription("Delete an item from a GitHub project"),
		mcp.WithString("item_id", mcp.Required(), mcp.Description("Item id")),
		mcp.WithString("project_id", mcp.Description("Project number")),
		mcp.WithString("owner", mcp.Description("Project owner")),
	), d.deleteProjectItem)

	srv.AddTool(mcp.NewTool("edit_project_item",
		mcp.WithDescription("Edit a project item's field value"),
		mcp.WithString("item_id", mcp.Required(), mcp.Description("Item id")),
		mcp.WithString("field_id", mcp.Required(), mcp.Description("Field id")),
		mcp.WithString("project_node_id", mcp.Description("Project node id, e.g. PVT_kwHO...")),
		mcp.WithString("text_value", mcp.Description("Text value to set")),
		mcp.WithNumber("number_value", mcp.Description("Number value to set")),
		mcp.WithString("date_value", mcp.Description("Date value to set (YYYY-MM-DD)")),
		mcp.WithString("single_select_option_id", mcp.Description("Single-select option id to set")),
		mcp.WithString("iteration_id", mcp.Description("Iteration id to set")),
		mcp.WithBoolean("clear", mcp.Description("Clear the field value")),
	), d.editProjectItem)

	srv.AddTool(mcp.NewTool("list_project_items",
		mcp.WithDescription("List items in a GitHub project"),
		mcp.WithString("project_id", mcp.Required(), mcp.Description("Project number")),
		mcp.WithString("owner", mcp.Description("Project owner")),
		mcp.WithNumber("limit", mcp.Description("Maximum number of items to return")),
	), d.listProjectItems)

	srv.AddTool(mcp.NewTool("view_project",
		mcp.WithDescription("View details of a GitHub project"),
		mcp.WithString("project_id", mcp.Required(), mcp.Description("Project number")),
		mcp.WithString("owner", mcp.Description("Project owner")),
	), d.viewProject)

	srv.AddTool(mcp.NewTool("create_project_item",
		mcp.WithDescription("Create a draft issue item in a project"),
		mcp.WithString("project_id", mcp.Required(), mcp.Description("Project number")),
		mcp.WithString("title", mcp.Required(), mcp.Description("Draft issue title")),
		mcp.WithString("body", mcp.Description("Draft issue body")),
		mcp.WithString("owner", mcp.Description("Project owner")),
	), d.createProjectItem)
}

// projectOwner resolves the owner flag for project subcommands. Unlike
// repo wrappers, a missing owner is allowed: gh falls back to the
// authenticated user.
func (d Deps) projectOwner(args map[string]any) string {
	return asString(d.Resolver.Resolve("global", "owner", stringArg(args, "owner")))
}

func (d Deps) createProjectField(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := req.GetArguments()
	projectID := asString(stringArg(args, "project_id"))
	if projectID == "" {
		return missingParam("project_id"), nil
	}
	name := asString(stringArg(args, "name"))
	if name == "" {
		return missingParam("name"), nil
	}
	dataType := strings.ToUpper(asString(stringArg(args, "data_type")))
	if dataType == "" {
		return missingParam("data_type"), nil
	}
	if !contains(fieldDataTypes, dataType) {
		return invalidParam("data_type", "must be one of: "+strings.Join(fieldDataTypes, ", ")), nil
	}
	owner := d.projectOwner(args)
	if owner == "" {
		return missingParam("owner"), nil
	}

	options := asStringList(listArg(args, "single_select_options"))
	if dataType == "SINGLE_SELECT" && len(options) == 0 {
		return missingParam("single_select_options"), nil
	}

	cmd := []string{
		"project", "field-create", projectID,
		"--owner", owner,
		"--name", name,
		"--data-type", dataType,
	}
	if dataType == "SINGLE_SELECT" {
		cmd = append(cmd, "--single-select-options", strings.Join(options, ","))
	}

	return toolResult(d.Runner.Execute(ctx, cmd)), nil
}

func (d Deps) deleteProjectField(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := req.GetArguments()
	fieldID := asString(stringArg(args, "field_id"))
	if fieldID == "" {
		return missingParam("field_id"), nil
	}

	cmd := []string{"project", "field-delete", fieldID}
	return toolResult(d.Runner.Execute(ctx, cmd)), nil
}

func (d Deps) listProjectFields(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := req.GetArguments()
	projectID := asString(stringArg(args, "project_id"))
	if projectID == "" {
		return missingParam("project_id"), nil
	}

	cmd := []string{"project", "field-list", projectID, "--format", "json"}
	if owner := d.projectOwner(args); owner != "" {
		cmd = append(cmd, "--owner", owner)
	}
	if limit, ok := asInt(d.Resolver.Resolve("project", "field_list_limit", intArg(args, "limit"))); ok && limit > 0 {
		cmd = append(cmd, "--limit", itoa(limit))
	}

	return toolResult(d.Runner.Execute(ctx, cmd)), nil
}

func (d Deps) addProjectItem(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := req.GetArguments()
	projectID := asString(stringArg(args, "project_id"))
	if projectID == "" {
		return missingParam("project_id"), nil
	}

	issueID := asString(stringArg(args, "issue_id"))
	prID := asString(stringArg(args, "pull_request_id"))
	if issueID == "" && prID == "" {
		return missingParam("issue_id or pull_request_id"), nil
	}
	if issueID != "" && prID != "" {
		return invalidParam("issue_id", "issue_id and pull_request_id are mutually exclusive"), nil
	}

	cmd := []string{"project", "item-add", projectID, "--format", "json"}
	if owner := d.projectOwner(args); owner != "" {
		cmd = append(cmd, "--owner", owner)
	}
	if issueID != "" {
		cmd = append(cmd, "--url", issueID)
	} else {
		cmd = append(cmd, "--url", prID)
	}

	return toolResult(d.Runner.Execute(ctx, cmd)), nil
}

func (d Deps) archiveProjectItem(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := req.GetArguments()
	itemID := asString(stringArg(args, "item_id"))
	if itemID == "" {
		return missingParam("item_id"), nil
	}

	cmd := []string{"project", "item-archive", itemID, "--format", "json"}
	if owner := d.projectOwner(args); owner != "" {
		cmd = append(cmd, "--owner", owner)
	}
	if projectID := asString(d.Resolver.Resolve("project", "project_id", stringArg(args, "project_id"))); projectID != "" {
		cmd = append(cmd, "--project-id", projectID)
	}
	if asBool(boolArg(args, "undo")) {
		cmd = append(cmd, "--undo")
	}

	return toolResult(d.Runner.Execute(ctx, cmd)), nil
}

func (d Deps) deleteProjectItem(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := req.GetArguments()
	itemID := asString(stringArg(args, "item_id"))
	if itemID == "" {
		return missingParam("item_id"), nil
	}

	cmd := []string{"project", "item-delete", itemID, "--format", "json"}
	if owner := d.projectOwner(args); owner != "" {
		cmd = append(cmd, "--owner", owner)
	}
	if projectID := asString(d.Resolver.Resolve("project", "project_id", stringArg(args, "project_id"))); projectID != "" {
		cmd = append(cmd, "--project-id", projectID)
	}

	return toolResult(d.Runner.Execute(ctx, cmd)), nil
}

func (d Deps) editProjectItem(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := req.GetArguments()
	itemID := asString(stringArg(args, "item_id"))
	if itemID == "" {
		return missingParam("item_id"), nil
	}
	fieldID := asString(stringArg(args, "field_id"))
	if fieldID == "" {
		return missingParam("field_id"), nil
	}

	text := stringArg(args, "text_value")
	number := intArg(args, "number_value")
	date := stringArg(args, "date_value")
	option := stringArg(args, "single_select_option_id")
	iteration := stringArg(args, "iteration_id")
	clear := asBool(boolArg(args, "clear"))

	valueCount := 0
	for _, v := range []any{text, number, date, option, iteration} {
		if v != nil {
			valueCount++
		}
	}
	if clear && valueCount > 0 {
		return invalidParam("clear", "cannot be combined with a value parameter"), nil
	}
	if !clear && valueCount == 0 {
		return missingParam("a value parameter (text_value, number_value, ...)"), nil
	}
	if valueCount > 1 {
		return invalidParam("value", "only one value parameter may be provided"), nil
	}

	if date != nil {
		if _, err := time.Parse("2006-01-02", asString(date)); err != nil {
			return invalidParam("date_value", "expected YYYY-MM-DD"), nil
		}
	}

	cmd := []string{
		"project", "item-edit",
		"--id", itemID,
		"--format", "json",
		"--field-id", fieldID,
	}
	if nodeID := asString(d.Resolver.Resolve("project", "project_node_id", stringArg(args, "project_node_id"))); nodeID != "" {
		cmd = append(cmd, "--project-id", nodeID)
	}

	switch {
	case clear:
		cmd = append(cmd, "--clear")
	case text != nil:
		cmd = append(cmd, "--text", asString(text))
	case number != nil:
		n, _ := asInt(number)
		cmd = append(cmd, "--number", itoa(n))
	case date != nil:
		cmd = append(cmd, "--date", asString(date))
	case option != nil:
		cmd = append(cmd, "--single-select-option-id", asString(option))
	case iteration != nil:
		cmd = append(cmd, "--iteration-id", asString(iteration))
	}

	return toolResult(d.Runner.Execute(ctx, cmd)), nil
}

func (d Deps) listProjectItems(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := req.GetArguments()
	projectID := asString(stringArg(args, "project_id"))
	if projectID == "" {
		return missingParam("project_id"), nil
	}

	cmd := []string{"project", "item-list", projectID, "--format", "json"}
	if owner := d.projectOwner(args); owner != "" {
		cmd = append(cmd, "--owner", owner)
	}
	if limit, ok := asInt(d.Resolver.Resolve("project", "item_list_limit", intArg(args, "limit"))); ok && limit > 0 {
		cmd = append(cmd, "--limit", itoa(limit))
	}

	return toolResult(d.Runner.Execute(ctx, cmd)), nil
}

func (d Deps) viewProject(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := req.GetArguments()
	projectID := asString(stringArg(args, "project_id"))
	if projectID == "" {
		return missingParam("project_id"), nil
	}

	cmd := []string{"project", "view", projectID, "--format", "json"}
	if owner := d.projectOwner(args); owner != "" {
		cmd = append(cmd, "--owner", owner)
	}

	return toolResult(d.Runner.Execute(ctx, cmd)), nil
}

func (d Deps) createProjectItem(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := req.GetArguments()
	projectID := asString(stringArg(args, "project_id"))
	if projectID == "" {
		return missingParam("project_id"), nil
	}
	title := asString(stringArg(args, "title"))
	if title == "" {
		return missingParam("title"), nil
	}
	owner := d.projectOwner(args)
	if owner == "" {
		return missingParam("owner"), nil
	}

	cmd := []string{
		"project", "item-create", projectID,
		"--format", "json",
		"--owner", owner,
		"--title", title,
	}
	if body := asString(stringArg(args, "body")); body != "" {
		cmd = append(cmd, "--body", body)
	}

	return toolResult(d.Runner.Execute(ctx, cmd)), nil
}
