// Package config holds the static parameter specification table for the
// gh project manager tools. The table is built once at startup and is
// read-only afterwards; the resolver receives it by reference.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// ParamType declares how an environment-variable string is decoded.
type ParamType string

const (
	TypeString ParamType = "str"
	TypeInt    ParamType = "int"
	TypeList   ParamType = "list"
	TypeBool   ParamType = "bool"
)

// ParamSpec describes one optional tool parameter: the environment
// variable that may override it, the default used when nothing else is
// provided, and the declared type. EnvVar may be empty (no override) and
// Default may be nil (absent).
type ParamSpec struct {
	EnvVar  string    `yaml:"env_var"`
	Default any       `yaml:"default"`
	Type    ParamType `yaml:"type"`
}

// Table maps capability -> parameter name -> spec. It is never mutated
// after construction, so concurrent readers need no locking.
type Table map[string]map[string]ParamSpec

// Lookup returns the spec for (capability, name).
func (t Table) Lookup(capability, name string) (ParamSpec, bool) {
	params, ok := t[capability]
	if !ok {
		return ParamSpec{}, false
	}
	spec, ok := params[name]
	return spec, ok
}

// Defaults returns the built-in parameter table. Capabilities group
// parameters by resource type: global repo coordinates, issues, pull
// requests and project boards.
func Defaults() Table {
	return Table{
		"global": {
			"owner": {EnvVar: "GH_REPO_OWNER", Type: TypeString},
			"repo":  {EnvVar: "GH_REPO_NAME", Type: TypeString},
		},
		"issue": {
			"assignee":   {EnvVar: "DEFAULT_ISSUE_ASSIGNEE", Default: "@me", Type: TypeString},
			"project":    {EnvVar: "DEFAULT_ISSUE_PROJECT", Type: TypeString},
			"labels":     {EnvVar: "DEFAULT_ISSUE_LABELS", Type: TypeList},
			"issue_type": {EnvVar: "DEFAULT_ISSUE_TYPE", Type: TypeString},
			"body":       {EnvVar: "GH_ISSUE_BODY", Default: "Created via GH Project Manager MCP", Type: TypeString},
			"state":      {EnvVar: "DEFAULT_ISSUE_LIST_STATE", Default: "open", Type: TypeString},
			"limit":      {EnvVar: "DEFAULT_ISSUE_LIST_LIMIT", Default: 30, Type: TypeInt},

			"close_comment":       {Type: TypeString},
			"close_reason":        {Type: TypeString},
			"comment_body":        {Type: TypeString},
			"comment_body_file":   {Type: TypeString},
			"develop_base_branch": {EnvVar: "MCP_GITHUB_DEFAULT_BASE_BRANCH", Type: TypeString},
			"edit_milestone":      {EnvVar: "DEFAULT_ISSUE_EDIT_MILESTONE", Type: TypeString},
		},
		"pull_request": {
			"body":          {EnvVar: "GH_PR_BODY", Default: "Created via GH Project Manager MCP", Type: TypeString},
			"base":          {EnvVar: "GH_PR_BASE_BRANCH", Default: "main", Type: TypeString},
			"draft":         {EnvVar: "DEFAULT_PR_DRAFT", Default: false, Type: TypeBool},
			"assignee":      {EnvVar: "GH_PR_ASSIGNEE", Default: "@me", Type: TypeString},
			"assignees":     {EnvVar: "DEFAULT_PR_ASSIGNEES", Default: "@me", Type: TypeList},
			"reviewers":     {EnvVar: "DEFAULT_PR_REVIEWERS", Type: TypeList},
			"pr_labels":     {EnvVar: "DEFAULT_PR_LABELS", Type: TypeList},
			"pr_project":    {EnvVar: "DEFAULT_PR_PROJECT", Type: TypeString},
			"pr_state":      {EnvVar: "DEFAULT_PR_LIST_STATE", Default: "open", Type: TypeString},
			"pr_limit":      {EnvVar: "DEFAULT_PR_LIST_LIMIT", Default: 30, Type: TypeInt},
			"merge_method":  {EnvVar: "DEFAULT_PR_MERGE_METHOD", Default: "merge", Type: TypeString},
			"delete_branch": {EnvVar: "DEFAULT_PR_DELETE_BRANCH", Default: true, Type: TypeBool},
		},
		"project_item": {
			"project_owner": {EnvVar: "DEFAULT_PROJECT_OWNER", Type: TypeString},
			"project":       {EnvVar: "DEFAULT_PROJECT_TARGET", Type: TypeString},
			"priority":      {EnvVar: "DEFAULT_PROJECT_ITEM_PRIORITY", Default: "Medium", Type: TypeString},
			"status":        {EnvVar: "DEFAULT_PROJECT_ITEM_STATUS", Default: "to-do", Type: TypeString},
		},
		"project": {
			"project_id":       {EnvVar: "GH_PROJECT_ID", Type: TypeString},
			"project_node_id":  {EnvVar: "GH_PROJECT_NODE_ID", Type: TypeString},
			"field_list_limit": {EnvVar: "DEFAULT_PROJECT_FIELD_LIST_LIMIT", Default: 30, Type: TypeInt},
			"item_list_limit":  {EnvVar: "DEFAULT_PROJECT_ITEM_LIST_LIMIT", Default: 30, Type: TypeInt},
			"item_list_format": {EnvVar: "DEFAULT_PROJECT_ITEM_LIST_FORMAT", Default: "json", Type: TypeString},
			"list_limit":       {EnvVar: "DEFAULT_PROJECT_LIST_LIMIT", Default: 30, Type: TypeInt},
			"view_list_limit":  {EnvVar: "DEFAULT_PROJECT_VIEW_LIST_LIMIT", Default: 30, Type: TypeInt},
		},
	}
}

// Load merges a YAML overlay file over the built-in defaults. Entries in
// the file replace same-named entries wholesale; unknown capabilities and
// parameters are added as given. The returned table is a fresh value and
// safe to treat as immutable.
func Load(path string) (Table, error) {
	table := Defaults()
	if path == "" {
		return table, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config overlay: %w", err)
	}
	var overlay Table
	if err := yaml.Unmarshal(data, &overlay); err != nil {
		return nil, fmt.Errorf("parse config overlay %s: %w", path, err)
	}
	for capability, params := range overlay {
		if table[capability] == nil {
			table[capability] = map[string]ParamSpec{}
		}
		for name, spec := range params {
			table[capability][name] = spec
		}
	}
	return table, nil
}
