// Copyright 2026 The Capgen Authors
// SPDX-License-Identifier: MIT

package spec

import (
	"fmt"
	"net/url"
	"strings"
)

// InvalidRequestError reports the first structural validation failure in a
// Request. Validation is fail-fast: only one violation is reported.
type InvalidRequestError struct {
	Reason string
}

func (e *InvalidRequestError) Error() string {
	return "invalid request: " + e.Reason
}

func invalidf(format string, args ...any) *InvalidRequestError {
	return &InvalidRequestError{Reason: fmt.Sprintf(format, args...)}
}

// Validate checks the structural invariants of a Request before any rendering
// or file-system mutation. It returns an *InvalidRequestError describing the
// first violated check, or nil when the request is well-formed.
func Validate(req *Request) error {
	if !ValidIdentifier(req.Capability) {
		return invalidf("capability name %q is not a valid identifier", req.Capability)
	}

	switch req.Target {
	case TargetCLI, TargetScript, TargetBoth:
	default:
		return invalidf("target must be one of cli, script, both (got %q)", req.Target)
	}

	if req.Target.IncludesCLI() {
		if req.Binary == "" {
			return invalidf("--binary is required when target includes cli")
		}
		if req.OutCLI == "" {
			return invalidf("--out-cli is required when target includes cli")
		}
	}
	if req.Target.IncludesScript() && req.OutScript == "" {
		return invalidf("--out-script is required when target includes script")
	}

	if !strings.HasPrefix(req.Endpoint, "/") {
		return invalidf("endpoint %q must start with '/'", req.Endpoint)
	}

	u, err := url.Parse(req.APIBaseURL)
	if err != nil || !u.IsAbs() || u.Host == "" {
		return invalidf("api base URL %q is not an absolute URL", req.APIBaseURL)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return invalidf("api base URL scheme must be http or https (got %q)", u.Scheme)
	}

	return nil
}
