// Copyright 2026 The Capgen Authors
// SPDX-License-Identifier: MIT

// Package spec defines the generation request model: the capability name,
// target surfaces, endpoint, and typed parameter list parsed from the command
// line. A Request is built once per invocation, validated, and never mutated
// afterwards.
package spec

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// ParamType enumerates the supported parameter types.
type ParamType string

// Supported parameter types for --param entries.
const (
	TypeInt   ParamType = "int"
	TypeStr   ParamType = "str"
	TypeFloat ParamType = "float"
	TypeBool  ParamType = "bool"
)

// supportedTypes lists the accepted type tokens in error-message order.
var supportedTypes = []ParamType{TypeBool, TypeFloat, TypeInt, TypeStr}

// Param is one typed parameter of a capability. Default is nil for required
// parameters; otherwise it holds an int64, float64, bool, or string matching
// Type. Bool parameters are always optional: absent defaults are treated as
// false so the parameter renders as a flag, not a value-accepting option.
type Param struct {
	Name    string
	Type    ParamType
	Default any
}

// Required reports whether the parameter has no default and must be supplied.
func (p Param) Required() bool {
	return p.Default == nil
}

// GoType returns the Go type used for this parameter in generated code.
func (p Param) GoType() string {
	switch p.Type {
	case TypeInt:
		return "int"
	case TypeFloat:
		return "float64"
	case TypeBool:
		return "bool"
	default:
		return "string"
	}
}

// DefaultLiteral returns the Go source literal for the parameter default.
// Required parameters render their type's zero value, which generated code
// pairs with a required-flag check.
func (p Param) DefaultLiteral() string {
	if p.Default == nil {
		switch p.Type {
		case TypeInt:
			return "0"
		case TypeFloat:
			return "0"
		case TypeBool:
			return "false"
		default:
			return `""`
		}
	}
	switch v := p.Default.(type) {
	case int64:
		return strconv.FormatInt(v, 10)
	case float64:
		return strconv.FormatFloat(v, 'g', -1, 64)
	case bool:
		return strconv.FormatBool(v)
	default:
		return strconv.Quote(fmt.Sprint(v))
	}
}

// Target selects which output file(s) a request produces.
type Target string

// Accepted --target values.
const (
	TargetCLI    Target = "cli"
	TargetScript Target = "script"
	TargetBoth   Target = "both"
)

// IncludesCLI reports whether the target requires a CLI subcommand output.
func (t Target) IncludesCLI() bool {
	return t == TargetCLI || t == TargetBoth
}

// IncludesScript reports whether the target requires a standalone script output.
func (t Target) IncludesScript() bool {
	return t == TargetScript || t == TargetBoth
}

// Request holds a fully parsed generation request. Construct it from command
// line input, run Validate, then hand it to the render and emit stages.
type Request struct {
	Capability  string // normalized snake_case identifier
	Target      Target
	Binary      string // display name for generated help text and user agents
	Endpoint    string // HTTP path, must start with "/"
	APIBaseURL  string // absolute http(s) URL embedded in generated code
	Description string // optional one-line description for doc comments
	Params      []Param

	OutCLI          string // destination for the CLI subcommand file
	OutScript       string // destination for the script file
	TestPlanPath    string // optional test-plan doc to create/update
	DocSnippetsPath string // optional usage-snippet doc to create/update

	Simulate bool // include a --simulate stub mode in the generated script
	Force    bool // overwrite existing destination files
}

// MalformedParamError reports a --param token that does not parse.
type MalformedParamError struct {
	Token  string
	Reason string
}

func (e *MalformedParamError) Error() string {
	return fmt.Sprintf("invalid --param %q: %s", e.Token, e.Reason)
}

// DuplicateParamError reports two --param tokens sharing a name.
type DuplicateParamError struct {
	Name string
}

func (e *DuplicateParamError) Error() string {
	return fmt.Sprintf("duplicate parameter name: %q", e.Name)
}

var (
	identRe     = regexp.MustCompile(`^[a-z_][a-z0-9_]*$`)
	nonWordRe   = regexp.MustCompile(`[^\w\s-]`)
	separatorRe = regexp.MustCompile(`[-\s]+`)
)

// reservedFlagNames are flags every generated artifact registers itself; a
// parameter with one of these names would collide at init time.
var reservedFlagNames = map[string]bool{
	"json":     true,
	"simulate": true,
	"help":     true,
}

// Snake normalizes s to a snake_case identifier: separators become
// underscores, other non-word characters are dropped, and the result is
// lowercased.
func Snake(s string) string {
	s = nonWordRe.ReplaceAllString(s, "")
	s = separatorRe.ReplaceAllString(s, "_")
	s = strings.Trim(s, "_")
	return strings.ToLower(s)
}

// ValidIdentifier reports whether s is a usable snake_case identifier.
func ValidIdentifier(s string) bool {
	return identRe.MatchString(s)
}

// ParseParam parses one name:type[:default] token into a Param.
func ParseParam(token string) (Param, error) {
	parts := strings.Split(token, ":")
	if len(parts) < 2 || len(parts) > 3 {
		return Param{}, &MalformedParamError{Token: token, Reason: "expected 'name:type[:default]'"}
	}

	name := Snake(strings.TrimSpace(parts[0]))
	if !ValidIdentifier(name) {
		return Param{}, &MalformedParamError{Token: token, Reason: fmt.Sprintf("invalid parameter name %q", parts[0])}
	}
	if reservedFlagNames[name] {
		return Param{}, &MalformedParamError{
			Token:  token,
			Reason: fmt.Sprintf("parameter name %q is reserved by generated artifacts", name),
		}
	}

	typ := ParamType(strings.TrimSpace(parts[1]))
	switch typ {
	case TypeInt, TypeStr, TypeFloat, TypeBool:
	default:
		return Param{}, &MalformedParamError{
			Token:  token,
			Reason: fmt.Sprintf("unsupported type %q (supported: %s)", parts[1], typeList()),
		}
	}

	p := Param{Name: name, Type: typ}

	if len(parts) == 3 {
		def, err := coerceDefault(typ, strings.TrimSpace(parts[2]))
		if err != nil {
			return Param{}, &MalformedParamError{Token: token, Reason: err.Error()}
		}
		p.Default = def
	} else if typ == TypeBool {
		// Bool parameters are flags: always optional, absent means false.
		p.Default = false
	}

	return p, nil
}

// ParseParams parses an ordered list of name:type[:default] tokens. Order is
// preserved; duplicate names are rejected.
func ParseParams(tokens []string) ([]Param, error) {
	seen := make(map[string]bool, len(tokens))
	params := make([]Param, 0, len(tokens))
	for _, token := range tokens {
		p, err := ParseParam(token)
		if err != nil {
			return nil, err
		}
		if seen[p.Name] {
			return nil, &DuplicateParamError{Name: p.Name}
		}
		seen[p.Name] = true
		params = append(params, p)
	}
	return params, nil
}

// coerceDefault converts a raw default string into the typed value for typ.
func coerceDefault(typ ParamType, raw string) (any, error) {
	switch typ {
	case TypeInt:
		v, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("default %q is not an int", raw)
		}
		return v, nil
	case TypeFloat:
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return nil, fmt.Errorf("default %q is not a float", raw)
		}
		return v, nil
	case TypeBool:
		switch strings.ToLower(raw) {
		case "1", "true", "yes", "y", "on":
			return true, nil
		case "0", "false", "no", "n", "off":
			return false, nil
		}
		return nil, fmt.Errorf("default %q is not a bool", raw)
	default:
		return raw, nil
	}
}

func typeList() string {
	names := make([]string, len(supportedTypes))
	for i, t := range supportedTypes {
		names[i] = string(t)
	}
	return strings.Join(names, ", ")
}
