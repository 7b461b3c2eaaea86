// Copyright (c) 2026, the nodegen contributors
//
// SPDX-License-Identifier: Apache-2.0

package nodegen

// Mount associates a URL path prefix with a router identifier in the
// generated application
type Mount struct {
	Path string
	Code string
}

// Binding carries the named values visible to a template while it renders.
//
// Registration order is significant: Mounts and Uses are emitted into the
// rendered output in the order they were registered, which determines router
// and middleware precedence in the generated application. LocalModules and
// Modules keep insertion order the same way.
type Binding struct {
	// LocalModules maps identifiers to relative module paths inside the application
	LocalModules *OrderedMap
	// Modules maps identifiers to external package names
	Modules *OrderedMap
	// Mounts are router registrations in registration order
	Mounts []Mount
	// Uses are middleware expressions injected verbatim, in registration order
	Uses []string
}

// NewBinding creates an empty binding
func NewBinding() *Binding {
	return &Binding{
		LocalModules: NewOrderedMap(),
		Modules:      NewOrderedMap(),
	}
}

// Module registers an external package under an identifier
func (b *Binding) Module(ident string, pkg string) *Binding {
	b.Modules.Set(ident, pkg)
	return b
}

// LocalModule registers an application-local module under an identifier
func (b *Binding) LocalModule(ident string, path string) *Binding {
	b.LocalModules.Set(ident, path)
	return b
}

// MountRouter registers a router identifier on a URL path prefix
func (b *Binding) MountRouter(path string, code string) *Binding {
	b.Mounts = append(b.Mounts, Mount{Path: path, Code: code})
	return b
}

// Use registers a middleware expression that is emitted verbatim
func (b *Binding) Use(expr string) *Binding {
	b.Uses = append(b.Uses, expr)
	return b
}
