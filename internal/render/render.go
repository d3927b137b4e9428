// Copyright 2026 The Capgen Authors
// SPDX-License-Identifier: MIT

// Package render turns a validated generation request into output file text.
// Rendering is pure and deterministic: the same request always produces
// byte-identical output. No timestamps or random identifiers are embedded.
package render

import (
	"bytes"
	"embed"
	"fmt"
	"strings"
	"sync"
	"text/template"

	"github.com/Masterminds/sprig/v3"

	"github.com/beyondmcp/capgen/internal/spec"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

var (
	tmplOnce sync.Once
	tmpls    *template.Template
)

func templates() *template.Template {
	tmplOnce.Do(func() {
		tmpls = template.Must(
			template.New("").Funcs(sprig.FuncMap()).ParseFS(templateFS, "templates/*.tmpl"))
	})
	return tmpls
}

// fileData is the template payload for both generated source files.
type fileData struct {
	Capability   string // snake_case capability name
	Command      string // kebab-case subcommand name
	GoName       string // UpperCamel identifier, e.g. Markets
	VarPrefix    string // lowerCamel identifier, e.g. markets
	Binary       string
	UserAgent    string
	BaseURL      string
	Endpoint     string
	Description  string
	Simulate     bool
	NeedsStrconv bool
	Params       []paramData
	FetchSig     string // typed parameter list for the script fetch function
	FetchArgs    string // dereferenced flag args passed to the fetch function
}

// paramData is the per-parameter template payload.
type paramData struct {
	Name            string // flag name (snake_case)
	CLIVar          string // package-level var in the CLI file, e.g. marketsLimit
	ScriptVar       string // local flag var in the script, e.g. limit
	GoType          string
	CLIFlagFunc     string // IntVar, StringVar, Float64Var, BoolVar
	ScriptFlagFunc  string // Int, String, Float64, Bool
	Default         string // Go literal
	Required        bool
	Help            string
	CLIQueryExpr    string // stringify expression using CLIVar
	ScriptQueryExpr string // stringify expression using ScriptVar
}

// CLI renders the cobra subcommand file for the request.
func CLI(req *spec.Request) (string, error) {
	return execute("cli.go.tmpl", buildData(req))
}

// Script renders the standalone script file for the request.
func Script(req *spec.Request) (string, error) {
	return execute("script.go.tmpl", buildData(req))
}

func execute(name string, data *fileData) (string, error) {
	var buf bytes.Buffer
	if err := templates().ExecuteTemplate(&buf, name, data); err != nil {
		return "", fmt.Errorf("render %s: %w", name, err)
	}
	return buf.String(), nil
}

func buildData(req *spec.Request) *fileData {
	d := &fileData{
		Capability:  req.Capability,
		Command:     strings.ReplaceAll(req.Capability, "_", "-"),
		GoName:      upperCamel(req.Capability),
		VarPrefix:   lowerCamel(req.Capability),
		Binary:      req.Binary,
		UserAgent:   req.Binary + "/1.0",
		BaseURL:     req.APIBaseURL,
		Endpoint:    req.Endpoint,
		Description: req.Description,
		Simulate:    req.Simulate,
	}
	if d.Binary == "" {
		// Script-only requests may omit --binary; fall back to the capability.
		d.Binary = d.Command
		d.UserAgent = d.Command + "/1.0"
	}
	if d.Description == "" {
		d.Description = strings.ReplaceAll(req.Capability, "_", " ") + " capability"
	}

	sig := make([]string, 0, len(req.Params))
	args := make([]string, 0, len(req.Params))
	for _, p := range req.Params {
		pd := paramData{
			Name:      p.Name,
			CLIVar:    d.VarPrefix + upperCamel(p.Name),
			ScriptVar: lowerCamel(p.Name),
			GoType:    p.GoType(),
			Default:   p.DefaultLiteral(),
			Required:  p.Required(),
		}
		switch p.Type {
		case spec.TypeInt:
			pd.CLIFlagFunc, pd.ScriptFlagFunc = "IntVar", "Int"
		case spec.TypeFloat:
			pd.CLIFlagFunc, pd.ScriptFlagFunc = "Float64Var", "Float64"
		case spec.TypeBool:
			pd.CLIFlagFunc, pd.ScriptFlagFunc = "BoolVar", "Bool"
		default:
			pd.CLIFlagFunc, pd.ScriptFlagFunc = "StringVar", "String"
		}
		switch {
		case p.Type == spec.TypeBool:
			pd.Help = "boolean flag parameter: " + p.Name
		case pd.Required:
			pd.Help = "required parameter: " + p.Name
		default:
			pd.Help = "optional parameter: " + p.Name
		}
		pd.CLIQueryExpr = queryExpr(p.Type, pd.CLIVar)
		pd.ScriptQueryExpr = queryExpr(p.Type, pd.ScriptVar)
		if p.Type != spec.TypeStr {
			d.NeedsStrconv = true
		}
		d.Params = append(d.Params, pd)
		sig = append(sig, pd.ScriptVar+" "+pd.GoType)
		args = append(args, "*"+pd.ScriptVar)
	}
	d.FetchSig = strings.Join(sig, ", ")
	d.FetchArgs = strings.Join(args, ", ")
	return d
}

// queryExpr returns the Go expression that stringifies a parameter value for
// the URL query in generated code.
func queryExpr(t spec.ParamType, ident string) string {
	switch t {
	case spec.TypeInt:
		return "strconv.Itoa(" + ident + ")"
	case spec.TypeFloat:
		return "strconv.FormatFloat(" + ident + ", 'f', -1, 64)"
	case spec.TypeBool:
		return "strconv.FormatBool(" + ident + ")"
	default:
		return ident
	}
}

// goKeywords guards generated identifiers against Go reserved words.
var goKeywords = map[string]bool{
	"break": true, "case": true, "chan": true, "const": true, "continue": true,
	"default": true, "defer": true, "else": true, "fallthrough": true,
	"for": true, "func": true, "go": true, "goto": true, "if": true,
	"import": true, "interface": true, "map": true, "package": true,
	"range": true, "return": true, "select": true, "struct": true,
	"switch": true, "type": true, "var": true,
}

func upperCamel(snake string) string {
	parts := strings.Split(snake, "_")
	var sb strings.Builder
	for _, part := range parts {
		if part == "" {
			continue
		}
		sb.WriteString(strings.ToUpper(part[:1]))
		sb.WriteString(part[1:])
	}
	return sb.String()
}

func lowerCamel(snake string) string {
	s := upperCamel(snake)
	if s == "" {
		return s
	}
	s = strings.ToLower(s[:1]) + s[1:]
	if goKeywords[s] {
		s += "Arg"
	}
	return s
}
