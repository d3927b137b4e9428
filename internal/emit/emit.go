// Copyright 2026 The Capgen Authors
// SPDX-License-Identifier: MIT

// Package emit performs the effectful write phase of a generation run. All
// validation happens before this package is invoked; emit only turns rendered
// text into files and reports per-destination outcomes.
package emit

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/beyondmcp/capgen/internal/testable"
)

// Status classifies the outcome for one destination path.
type Status string

// Per-destination outcomes.
const (
	StatusWritten Status = "written"
	StatusSkipped Status = "skipped"
	StatusFailed  Status = "failed"
)

// Result records the outcome for one destination.
type Result struct {
	Path   string
	Status Status
	Reason string // e.g. "already-exists" for skips, error text for failures
}

// Report collects per-destination results for one invocation.
type Report struct {
	Results []Result
}

// Add appends a result to the report.
func (r *Report) Add(res Result) {
	r.Results = append(r.Results, res)
}

// AnySkipped reports whether any destination was skipped.
func (r *Report) AnySkipped() bool {
	return r.count(StatusSkipped) > 0
}

// AnyFailed reports whether any destination failed.
func (r *Report) AnyFailed() bool {
	return r.count(StatusFailed) > 0
}

func (r *Report) count(s Status) int {
	n := 0
	for _, res := range r.Results {
		if res.Status == s {
			n++
		}
	}
	return n
}

// Writer writes rendered output files. Force controls whether existing
// destinations are overwritten; without it they are recorded as skips.
type Writer struct {
	FS    testable.FileSystem
	Force bool
}

// NewWriter returns a Writer backed by the given file system.
func NewWriter(fs testable.FileSystem, force bool) *Writer {
	return &Writer{FS: fs, Force: force}
}

// Write writes content to path atomically: the full text is written to a
// temporary file next to the destination, then renamed into place, so a crash
// mid-write never leaves a truncated file. Parent directories are created for
// the supplied path only. Concurrent invocations targeting the same path race
// on the existence check; the last writer wins.
func (w *Writer) Write(path, content string) Result {
	if !w.Force {
		if _, err := w.FS.Stat(path); err == nil {
			return Result{Path: path, Status: StatusSkipped, Reason: "already-exists"}
		}
	}
	return w.put(path, []byte(content))
}

// Merge reads the existing file at path (absent files read as empty), applies
// merge to its contents, and writes the result atomically. Merge destinations
// are never skipped: they accumulate sections rather than being overwritten.
func (w *Writer) Merge(path string, merge func(existing []byte) []byte) Result {
	existing, err := w.FS.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return Result{Path: path, Status: StatusFailed, Reason: fmt.Sprintf("read existing: %v", err)}
	}
	res := w.put(path, merge(existing))
	if res.Status == StatusWritten && existing != nil {
		res.Reason = "merged"
	}
	return res
}

func (w *Writer) put(path string, content []byte) Result {
	if dir := filepath.Dir(path); dir != "." {
		if err := w.FS.MkdirAll(dir, 0o755); err != nil {
			return Result{Path: path, Status: StatusFailed, Reason: fmt.Sprintf("create parent: %v", err)}
		}
	}

	tmp := path + ".capgen.tmp"
	if err := w.FS.WriteFile(tmp, content, 0o644); err != nil {
		return Result{Path: path, Status: StatusFailed, Reason: fmt.Sprintf("write: %v", err)}
	}
	if err := w.FS.Rename(tmp, path); err != nil {
		_ = w.FS.Remove(tmp)
		return Result{Path: path, Status: StatusFailed, Reason: fmt.Sprintf("rename into place: %v", err)}
	}
	return Result{Path: path, Status: StatusWritten}
}
