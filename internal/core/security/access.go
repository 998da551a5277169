// Package security holds authorization rules evaluated outside the report logic.
package security

import (
	"fmt"
	"reflect"

	"github.com/google/cel-go/cel"
)

// DefaultAccessRule admits every authenticated caller that passed the permission check.
const DefaultAccessRule = "true"

// AccessRequest is the input of an access rule.
//
// Inside the expression it is exposed as two maps:
//
//	user:    id, email, roles, permissions, org_ids, is_admin
//	request: company
//
// Example rule restricting reports to the caller's companies:
//
//	user.is_admin || request.company == "" || request.company in user.org_ids
type AccessRequest struct {
	UserID      string
	Email       string
	Roles       []string
	Permissions []string
	OrgIDs      []string
	IsAdmin     bool
	Company     string
}

// AccessPolicy is a compiled CEL access rule. Safe for concurrent use.
type AccessPolicy struct {
	expr    string
	program cel.Program
}

// NewAccessPolicy compiles expr. An empty expression means DefaultAccessRule.
func NewAccessPolicy(expr string) (*AccessPolicy, error) {
	if expr == "" {
		expr = DefaultAccessRule
	}

	env, err := cel.NewEnv(
		cel.Variable("user", cel.MapType(cel.StringType, cel.DynType)),
		cel.Variable("request", cel.MapType(cel.StringType, cel.DynType)),
	)
	if err != nil {
		return nil, fmt.Errorf("create cel env: %w", err)
	}

	ast, issues := env.Compile(expr)
	if issues != nil && issues.Err() != nil {
		return nil, fmt.Errorf("compile access rule %q: %w", expr, issues.Err())
	}

	out := ast.OutputType()
	if !reflect.DeepEqual(out, cel.BoolType) && !reflect.DeepEqual(out, cel.DynType) {
		return nil, fmt.Errorf("access rule %q must evaluate to bool, got %v", expr, out)
	}

	program, err := env.Program(ast)
	if err != nil {
		return nil, fmt.Errorf("build access rule program: %w", err)
	}

	return &AccessPolicy{expr: expr, program: program}, nil
}

// Expression returns the source of the rule.
func (p *AccessPolicy) Expression() string {
	return p.expr
}

// Allow evaluates the rule for req.
func (p *AccessPolicy) Allow(req AccessRequest) (bool, error) {
	out, _, err := p.program.Eval(map[string]any{
		"user": map[string]any{
			"id":          req.UserID,
			"email":       req.Email,
			"roles":       nonNil(req.Roles),
			"permissions": nonNil(req.Permissions),
			"org_ids":     nonNil(req.OrgIDs),
			"is_admin":    req.IsAdmin,
		},
		"request": map[string]any{
			"company": req.Company,
		},
	})
	if err != nil {
		return false, fmt.Errorf("evaluate access rule: %w", err)
	}

	allowed, ok := out.Value().(bool)
	if !ok {
		return false, fmt.Errorf("access rule returned %T, want bool", out.Value())
	}
	return allowed, nil
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
