// Copyright (c) 2025-2026 Avetra Media
// SPDX-License-Identifier: GPL-3.0-or-later

// Package version provides build-time version information.
package version

// Injected via ldflags at build time.
var (
	Version   = "dev"     // semantic version from git tags (e.g. "v1.2.3")
	GitCommit = "unknown" // short git commit hash
	BuildTime = "unknown" // build timestamp in RFC3339 format
)

// Info bundles the build-time fields for structured output.
type Info struct {
	Version   string `json:"version"`
	GitCommit string `json:"git_commit"`
	BuildTime string `json:"build_time"`
}

// Get returns the current build information.
func Get() Info {
	return Info{Version: Version, GitCommit: GitCommit, BuildTime: BuildTime}
}

// String renders the build information for -version output.
func (i Info) String() string {
	return i.Version + " (" + i.GitCommit + ", built " + i.BuildTime + ")"
}
