// Copyright (c) 2026, the nodegen contributors
//
// SPDX-License-Identifier: Apache-2.0

package nodegen

import (
	"bytes"
	"fmt"
	"io/fs"
	"reflect"
	"strings"
	"text/template"

	"github.com/CloudyKit/jet/v6"
	"github.com/nodegen/nodegen/internal/sprig"
)

type engineType int

const (
	engineGoTemplate engineType = iota
	engineJet
)

// The builtin templates interpolate with ${ ... } so that the generated
// JavaScript reads naturally next to its own template literals
const (
	defaultLeftDelimiter  = "${"
	defaultRightDelimiter = "}"
)

type renderer struct {
	source     fs.FS
	engine     engineType
	funcs      template.FuncMap
	jetFuncs   map[string]jet.Func
	leftDelim  string
	rightDelim string
}

// Template pairs template text with the live binding it renders against.
// Render reads the binding at call time, mutations between calls are
// reflected in the next render.
type Template struct {
	name     string
	text     string
	renderer *renderer
	Binding  *Binding
}

// Load reads a template from the source set and pairs it with a fresh binding
func (r *renderer) Load(name string) (*Template, error) {
	raw, err := fs.ReadFile(r.source, name)
	if err != nil {
		return nil, fmt.Errorf("cannot load template %s: %w", name, err)
	}

	return &Template{name: name, text: string(raw), renderer: r, Binding: NewBinding()}, nil
}

// Render evaluates the template against the current binding
func (t *Template) Render() ([]byte, error) {
	return t.renderer.renderBytes(t.name, []byte(t.text), t.Binding)
}

func (r *renderer) renderBytes(name string, tmpl []byte, data any) ([]byte, error) {
	switch r.engine {
	case engineJet:
		return r.renderBytesJet(name, tmpl, data)
	default:
		return r.renderBytesGoTempl(name, tmpl, data)
	}
}

func (r *renderer) templateFuncs() template.FuncMap {
	funcs := sprig.FuncMap()
	for k, v := range r.funcs {
		funcs[k] = v
	}

	funcs["js"] = jsLiteral

	return funcs
}

func (r *renderer) jetTemplateFuncs() map[string]jet.Func {
	funcs := make(map[string]jet.Func)
	for k, v := range r.jetFuncs {
		funcs[k] = v
	}

	funcs["js"] = func(args jet.Arguments) reflect.Value {
		args.RequireNumOfArguments("js", 1, 1)

		return reflect.ValueOf(jsLiteral(args.Get(0).Interface()))
	}

	return funcs
}

func (r *renderer) delims() (string, string) {
	if r.leftDelim != "" && r.rightDelim != "" {
		return r.leftDelim, r.rightDelim
	}

	return defaultLeftDelimiter, defaultRightDelimiter
}

func (r *renderer) renderBytesGoTempl(name string, tmpl []byte, data any) ([]byte, error) {
	left, right := r.delims()

	templ := template.New(name).Funcs(r.templateFuncs()).Delims(left, right)

	templ, err := templ.Parse(string(tmpl))
	if err != nil {
		return nil, fmt.Errorf("parsing template %v failed: %w", name, err)
	}

	buf := bytes.NewBuffer([]byte{})
	err = templ.Execute(buf, data)
	if err != nil {
		return nil, fmt.Errorf("rendering template %v failed: %w", name, err)
	}

	return buf.Bytes(), nil
}

func (r *renderer) renderBytesJet(name string, tmpl []byte, data any) ([]byte, error) {
	loader := jet.NewInMemLoader()
	loader.Set(name, string(tmpl))

	opts := []jet.Option{jet.WithSafeWriter(nil)}
	left, right := r.delims()
	opts = append(opts, jet.WithDelims(left, right))

	set := jet.NewSet(loader, opts...)

	for k, fn := range r.jetTemplateFuncs() {
		set.AddGlobalFunc(k, fn)
	}

	t, err := set.GetTemplate(name)
	if err != nil {
		return nil, fmt.Errorf("parsing template %v failed: %w", name, err)
	}

	buf := bytes.NewBuffer([]byte{})
	err = t.Execute(buf, nil, data)
	if err != nil {
		return nil, fmt.Errorf("rendering template %v failed: %w", name, err)
	}

	return buf.Bytes(), nil
}

// jsLiteral renders a value as a JavaScript source literal so that
// interpolated data cannot break the syntax of generated files
func jsLiteral(v any) string {
	switch val := v.(type) {
	case nil:
		return "null"
	case bool:
		if val {
			return "true"
		}
		return "false"
	case string:
		return jsString(val)
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64, float32, float64:
		return fmt.Sprint(val)
	default:
		return jsString(fmt.Sprint(val))
	}
}

func jsString(s string) string {
	var b strings.Builder
	b.WriteByte('\'')

	for _, r := range s {
		switch r {
		case '\\':
			b.WriteString(`\\`)
		case '\'':
			b.WriteString(`\'`)
		case '\n':
			b.WriteString(`\n`)
		case '\r':
			b.WriteString(`\r`)
		case '\t':
			b.WriteString(`\t`)
		default:
			// U+2028 and U+2029 are line terminators in JavaScript
			if r < 0x20 || r == 0x2028 || r == 0x2029 {
				fmt.Fprintf(&b, `\u%04x`, r)
			} else {
				b.WriteRune(r)
			}
		}
	}

	b.WriteByte('\'')

	return b.String()
}
