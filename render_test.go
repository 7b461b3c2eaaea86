// Copyright (c) 2026, the nodegen contributors
//
// SPDX-License-Identifier: Apache-2.0

package nodegen

import (
	"os"
	"path/filepath"
	"strings"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Renderer", func() {
	builtinRenderer := func() *renderer {
		source, err := builtinTemplates()
		Expect(err).ToNot(HaveOccurred())

		return &renderer{source: source}
	}

	Describe("Load", func() {
		It("Should fail for a missing template", func() {
			_, err := builtinRenderer().Load("no.such.tmpl")
			Expect(err).To(MatchError(ContainSubstring("cannot load template no.such.tmpl")))
		})

		It("Should pair the template with a fresh binding", func() {
			t, err := builtinRenderer().Load("app.js.tmpl")
			Expect(err).ToNot(HaveOccurred())
			Expect(t.Binding).ToNot(BeNil())
			Expect(t.Binding.Mounts).To(BeEmpty())
			Expect(t.Binding.Uses).To(BeEmpty())
		})
	})

	Describe("Render", func() {
		It("Should render a minimal application from an empty binding", func() {
			t, err := builtinRenderer().Load("app.js.tmpl")
			Expect(err).ToNot(HaveOccurred())

			out, err := t.Render()
			Expect(err).ToNot(HaveOccurred())
			Expect(string(out)).To(Equal(`const express = require('express');

const app = express();

module.exports = app;
`))
		})

		It("Should emit mounts exactly once in registration order", func() {
			t, err := builtinRenderer().Load("app.js.tmpl")
			Expect(err).ToNot(HaveOccurred())

			t.Binding.
				LocalModule("indexRouter", "./routers/index").
				LocalModule("userRouter", "./routers/user").
				MountRouter("/", "indexRouter").
				MountRouter("/user", "userRouter")

			out, err := t.Render()
			Expect(err).ToNot(HaveOccurred())

			rendered := string(out)
			Expect(rendered).To(ContainSubstring("app.use('/', indexRouter);\napp.use('/user', userRouter);\n"))
			Expect(strings.Count(rendered, "app.use('/', indexRouter);")).To(Equal(1))
			Expect(strings.Count(rendered, "app.use('/user', userRouter);")).To(Equal(1))
		})

		It("Should read the live binding on every render", func() {
			t, err := builtinRenderer().Load("app.js.tmpl")
			Expect(err).ToNot(HaveOccurred())

			before, err := t.Render()
			Expect(err).ToNot(HaveOccurred())
			Expect(string(before)).ToNot(ContainSubstring("app.use"))

			t.Binding.Use("express.json()")

			after, err := t.Render()
			Expect(err).ToNot(HaveOccurred())
			Expect(string(after)).To(ContainSubstring("app.use(express.json());"))
		})

		It("Should fail on malformed template syntax", func() {
			dir := GinkgoT().TempDir()
			Expect(os.WriteFile(filepath.Join(dir, "bad.tmpl"), []byte("${if .Uses}unterminated"), 0o644)).To(Succeed())

			r := &renderer{source: os.DirFS(dir)}
			t, err := r.Load("bad.tmpl")
			Expect(err).ToNot(HaveOccurred())

			_, err = t.Render()
			Expect(err).To(MatchError(ContainSubstring("parsing template bad.tmpl failed")))
		})

		It("Should support custom delimiters", func() {
			dir := GinkgoT().TempDir()
			Expect(os.WriteFile(filepath.Join(dir, "d.tmpl"), []byte("mounts: <% len .Mounts %>"), 0o644)).To(Succeed())

			r := &renderer{source: os.DirFS(dir), leftDelim: "<%", rightDelim: "%>"}
			t, err := r.Load("d.tmpl")
			Expect(err).ToNot(HaveOccurred())

			t.Binding.MountRouter("/", "indexRouter")

			out, err := t.Render()
			Expect(err).ToNot(HaveOccurred())
			Expect(string(out)).To(Equal("mounts: 1"))
		})

		It("Should render with the jet engine", func() {
			dir := GinkgoT().TempDir()
			Expect(os.WriteFile(filepath.Join(dir, "j.tmpl"), []byte("uses: {{ len(.Uses) }}"), 0o644)).To(Succeed())

			r := &renderer{source: os.DirFS(dir), engine: engineJet, leftDelim: "{{", rightDelim: "}}"}
			t, err := r.Load("j.tmpl")
			Expect(err).ToNot(HaveOccurred())

			t.Binding.Use("express.json()")

			out, err := t.Render()
			Expect(err).ToNot(HaveOccurred())
			Expect(string(out)).To(Equal("uses: 1"))
		})
	})

	DescribeTable("Safe interpolation",
		func(value any, expected string) {
			Expect(jsLiteral(value)).To(Equal(expected))
		},
		Entry("plain string", "morgan", "'morgan'"),
		Entry("single quote", "it's", `'it\'s'`),
		Entry("double quote and newline", "a\"b\nc", "'a\"b\\nc'"),
		Entry("backslash", `a\b`, `'a\\b'`),
		Entry("tab and return", "a\tb\rc", `'a\tb\rc'`),
		Entry("control character", "a\x01b", `'a\u0001b'`),
		Entry("line separator", "a b", `'a\u2028b'`),
		Entry("nil", nil, "null"),
		Entry("bool", true, "true"),
		Entry("int", 42, "42"),
	)

	It("Should keep interpolated values syntactically valid in rendered output", func() {
		dir := GinkgoT().TempDir()
		Expect(os.WriteFile(filepath.Join(dir, "m.tmpl"), []byte("${range .Mounts}app.use(${js .Path}, ${.Code});\n${end}"), 0o644)).To(Succeed())

		r := &renderer{source: os.DirFS(dir)}
		t, err := r.Load("m.tmpl")
		Expect(err).ToNot(HaveOccurred())

		t.Binding.MountRouter("/a\"b\nc", "router")

		out, err := t.Render()
		Expect(err).ToNot(HaveOccurred())
		Expect(string(out)).To(Equal("app.use('/a\"b\\nc', router);\n"))
	})
})
