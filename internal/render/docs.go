// Copyright 2026 The Capgen Authors
// SPDX-License-Identifier: MIT

package render

import (
	"fmt"
	"strings"

	"github.com/beyondmcp/capgen/internal/spec"
)

// TestPlanHeader is the document header used when creating a fresh test-plan
// file.
const TestPlanHeader = `# End-to-End Test and Validation Plan

One section per generated capability. Validate parity, exit codes, and output
hygiene across every surface that wraps the capability (CLI, script, MCP).
`

// DocSnippetsHeader is the document header used when creating a fresh
// usage-snippet file.
const DocSnippetsHeader = `# Generator Usage

One section per generated capability, recording how it was scaffolded and how
to exercise the generated artifacts.
`

// TestPlanSection renders the per-capability test-plan stub.
func TestPlanSection(req *spec.Request) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "## %s\n\n", req.Capability)
	fmt.Fprintf(&sb, "Parity and hygiene checks for the `%s` capability.\n\n", command(req))

	if req.Target.IncludesCLI() {
		fmt.Fprintf(&sb, "- [ ] `%s %s --json` emits strict JSON on stdout and exits 0\n", req.Binary, command(req))
	}
	if req.Target.IncludesScript() {
		fmt.Fprintf(&sb, "- [ ] `go run %s --json` emits structurally equivalent JSON\n", req.OutScript)
	}

	var required, defaults []string
	for _, p := range req.Params {
		if p.Required() {
			required = append(required, "--"+p.Name)
		} else {
			defaults = append(defaults, fmt.Sprintf("%s=%s", p.Name, p.DefaultLiteral()))
		}
	}
	if len(required) > 0 {
		fmt.Fprintf(&sb, "- [ ] missing %s exits 1 with an error envelope under --json\n",
			strings.Join(required, ", "))
	}
	if len(defaults) > 0 {
		fmt.Fprintf(&sb, "- [ ] defaults applied identically on every surface: %s\n",
			strings.Join(defaults, ", "))
	}

	sb.WriteString("- [ ] no stdout noise in --json mode; diagnostics on stderr only\n")
	sb.WriteString("- [ ] MCP tool wrapping the CLI surfaces identical fields\n")
	return sb.String()
}

// DocSnippetsSection renders the per-capability usage snippet.
func DocSnippetsSection(req *spec.Request) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "## %s\n\n", req.Capability)
	sb.WriteString("Generated with:\n\n```bash\ncapgen generate " + req.Capability + " \\\n")
	fmt.Fprintf(&sb, "  --target %s \\\n", req.Target)
	if req.Binary != "" {
		fmt.Fprintf(&sb, "  --binary %s \\\n", req.Binary)
	}
	fmt.Fprintf(&sb, "  --endpoint %s \\\n", req.Endpoint)
	fmt.Fprintf(&sb, "  --api-base-url %s", req.APIBaseURL)
	for _, p := range req.Params {
		fmt.Fprintf(&sb, " \\\n  --param %s", paramToken(p))
	}
	if req.OutCLI != "" {
		fmt.Fprintf(&sb, " \\\n  --out-cli %s", req.OutCLI)
	}
	if req.OutScript != "" {
		fmt.Fprintf(&sb, " \\\n  --out-script %s", req.OutScript)
	}
	sb.WriteString("\n```\n\nTry it:\n\n```bash\n")
	if req.Target.IncludesCLI() {
		fmt.Fprintf(&sb, "%s %s --json\n", req.Binary, command(req))
	}
	if req.Target.IncludesScript() {
		fmt.Fprintf(&sb, "go run %s --json\n", req.OutScript)
	}
	sb.WriteString("```\n")
	return sb.String()
}

// capStartMarker returns the start marker wrapping a capability's section.
func capStartMarker(capability string) string {
	return fmt.Sprintf("<!-- capgen:capability:%s:start -->", capability)
}

// capEndMarker returns the end marker wrapping a capability's section.
func capEndMarker(capability string) string {
	return fmt.Sprintf("<!-- capgen:capability:%s:end -->", capability)
}

// MergeCapabilitySection merges a capability section into an existing
// document, de-duplicating by capability name via marker comments:
//   - empty document: header + wrapped section
//   - markers for this capability present: section replaced in place
//   - otherwise: wrapped section appended
func MergeCapabilitySection(existing []byte, header, capability, section string) []byte {
	start := capStartMarker(capability)
	end := capEndMarker(capability)
	wrapped := start + "\n" + section + end + "\n"

	doc := string(existing)
	if strings.TrimSpace(doc) == "" {
		return []byte(header + "\n" + wrapped)
	}

	if i := strings.Index(doc, start); i >= 0 {
		if j := strings.Index(doc[i:], end); j >= 0 {
			tail := doc[i+j+len(end):]
			tail = strings.TrimPrefix(tail, "\n")
			return []byte(doc[:i] + wrapped + tail)
		}
	}

	separator := "\n"
	if !strings.HasSuffix(doc, "\n") {
		separator = "\n\n"
	}
	return []byte(doc + separator + wrapped)
}

func command(req *spec.Request) string {
	return strings.ReplaceAll(req.Capability, "_", "-")
}

func paramToken(p spec.Param) string {
	token := p.Name + ":" + string(p.Type)
	if p.Default == nil {
		return token
	}
	if p.Type == spec.TypeBool && p.Default == false {
		// Implicit bool default; the original token had no default field.
		return token
	}
	return token + ":" + strings.Trim(p.DefaultLiteral(), `"`)
}
