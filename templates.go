// Copyright (c) 2026, the nodegen contributors
//
// SPDX-License-Identifier: Apache-2.0

package nodegen

import (
	"embed"
	"io/fs"
)

//go:embed templates
var templatesFS embed.FS

// builtinTemplates exposes the embedded template set rooted at its own top
// level, the way a template directory on disk would look
func builtinTemplates() (fs.FS, error) {
	return fs.Sub(templatesFS, "templates")
}
