// Copyright 2026 The Capgen Authors
// SPDX-License-Identifier: MIT

// Package index enumerates standalone capability scripts and extracts
// lightweight metadata, so an agent can load an index instead of every
// script's full contents (progressive disclosure).
package index

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io/fs"
	"sort"
	"strings"

	"github.com/beyondmcp/capgen/internal/testable"
)

// FS is the file system implementation used by this package.
// Override in tests with a testable.MockFileSystem.
var FS testable.FileSystem = testable.DefaultFS

// fingerprintBytes bounds how much of each script is hashed. Hashing a fixed
// prefix keeps the index cheap while still detecting most edits.
const fingerprintBytes = 2048

// Entry describes one capability script.
type Entry struct {
	Name        string   `json:"name"`
	Path        string   `json:"path"`
	Size        int64    `json:"size"`
	Fingerprint string   `json:"fingerprint"`
	Description string   `json:"description,omitempty"`
	Usage       []string `json:"usage,omitempty"`
}

// Scan enumerates Go capability scripts directly under dir, in name order.
// Subdirectories and _test.go files are ignored. An empty filter matches
// everything; otherwise the filter is a case-insensitive substring match on
// the script name.
func Scan(dir, filter string) ([]Entry, error) {
	var entries []Entry

	err := FS.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if path != dir {
				return fs.SkipDir
			}
			return nil
		}

		name := d.Name()
		if !strings.HasSuffix(name, ".go") || strings.HasSuffix(name, "_test.go") {
			return nil
		}
		base := strings.TrimSuffix(name, ".go")
		if filter != "" && !strings.Contains(strings.ToLower(base), strings.ToLower(filter)) {
			return nil
		}

		info, err := d.Info()
		if err != nil {
			return fmt.Errorf("stat %s: %w", path, err)
		}
		src, err := FS.ReadFile(path)
		if err != nil {
			return fmt.Errorf("read %s: %w", path, err)
		}

		desc, usage := describe(src)
		entries = append(entries, Entry{
			Name:        base,
			Path:        path,
			Size:        info.Size(),
			Fingerprint: fingerprint(src),
			Description: desc,
			Usage:       usage,
		})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scan %s: %w", dir, err)
	}

	sort.Slice(entries, func(i, j int) bool { return entries[i].Name < entries[j].Name })
	return entries, nil
}

// fingerprint hashes the first fingerprintBytes of src and returns a short
// hex digest, a cheap stability indicator for the index.
func fingerprint(src []byte) string {
	if len(src) > fingerprintBytes {
		src = src[:fingerprintBytes]
	}
	sum := sha256.Sum256(src)
	return hex.EncodeToString(sum[:])[:12]
}

// describe extracts a one-line description and up to three usage examples
// from the leading comment block of a script.
func describe(src []byte) (string, []string) {
	var desc string
	var usage []string

	for _, line := range strings.Split(string(src), "\n") {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "package ") {
			break
		}
		if !strings.HasPrefix(trimmed, "//") {
			if trimmed == "" {
				continue
			}
			break
		}

		text := strings.TrimSpace(strings.TrimPrefix(trimmed, "//"))
		switch {
		case text == "" || strings.HasPrefix(text, "Code generated"):
			continue
		case strings.HasPrefix(text, "go run ") && len(usage) < 3:
			usage = append(usage, text)
		case desc == "" && !strings.HasPrefix(text, "-") && !strings.HasSuffix(text, ":"):
			desc = text
		}
	}

	return desc, usage
}

// PrimePrompt renders an agent prime prompt for the scanned scripts. The
// prompt lists each script's one-line description and usage hints so an agent
// can pick scripts without reading their code.
func PrimePrompt(dir string, entries []Entry) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "You have %d standalone capability script(s) under %s.\n", len(entries), dir)
	sb.WriteString("Load a script's code only when you actually need it; prefer this index.\n")
	sb.WriteString("Always invoke scripts with --json for machine-readable output.\n\n")
	for _, e := range entries {
		fmt.Fprintf(&sb, "- %s (%s, %d bytes)", e.Name, e.Path, e.Size)
		if e.Description != "" {
			fmt.Fprintf(&sb, ": %s", e.Description)
		}
		sb.WriteString("\n")
		for _, u := range e.Usage {
			fmt.Fprintf(&sb, "    %s\n", u)
		}
	}
	return sb.String()
}
