// Copyright (c) 2026, the nodegen contributors
//
// SPDX-License-Identifier: Apache-2.0

package nodegen

import (
	"path/filepath"
	"regexp"
	"strings"
)

// DefaultAppName is used when no usable package name can be derived from the
// destination path.
const DefaultAppName = "hello-world"

var (
	unsafeNameChars  = regexp.MustCompile(`[^A-Za-z0-9.-]+`)
	leadingNameJunk  = regexp.MustCompile(`^[-_.]+`)
	trailingNameJunk = regexp.MustCompile(`-+$`)
)

// NormalizeName derives a package name from a filesystem path. The final path
// segment is taken, every run of characters outside [A-Za-z0-9.-] becomes a
// single dash, leading dashes, underscores and dots as well as trailing dashes
// are stripped and the result is lowercased.
//
// The result can be empty, callers should substitute DefaultAppName.
func NormalizeName(path string) string {
	name := filepath.Base(filepath.Clean(path))

	name = unsafeNameChars.ReplaceAllString(name, "-")
	name = leadingNameJunk.ReplaceAllString(name, "")
	name = trailingNameJunk.ReplaceAllString(name, "")

	return strings.ToLower(name)
}
