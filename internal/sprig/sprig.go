// Copyright (c) 2026, the nodegen contributors
//
// SPDX-License-Identifier: Apache-2.0

// Package sprig wraps the sprig template function library, replacing the
// functions that produce random values with cryptographically secure
// implementations.
package sprig

import (
	"text/template"

	upstream "github.com/Masterminds/sprig/v3"
)

// FuncMap returns the sprig text template functions with secure overrides
func FuncMap() template.FuncMap {
	return TxtFuncMap()
}

// TxtFuncMap returns the sprig text template functions with secure overrides
func TxtFuncMap() template.FuncMap {
	funcs := upstream.TxtFuncMap()
	funcs["uuidv4"] = uuidv4
	funcs["randBytes"] = randBytes

	return funcs
}
