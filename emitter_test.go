// Copyright (c) 2026, the nodegen contributors
//
// SPDX-License-Identifier: Apache-2.0

package nodegen

import (
	"bytes"
	"os"
	"path/filepath"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Emitter", func() {
	var base string
	var out *bytes.Buffer
	var em *emitter

	BeforeEach(func() {
		base = GinkgoT().TempDir()
		out = &bytes.Buffer{}
		em = &emitter{out: out, base: base}
	})

	Describe("ensureDir", func() {
		It("Should create nested directories with a single notice", func() {
			Expect(em.ensureDir(base, filepath.Join("a", "b", "c"))).To(Succeed())

			info, err := os.Stat(filepath.Join(base, "a", "b", "c"))
			Expect(err).ToNot(HaveOccurred())
			Expect(info.IsDir()).To(BeTrue())

			Expect(bytes.Count(out.Bytes(), []byte("create :"))).To(Equal(1))
			Expect(out.String()).To(HaveSuffix(string(filepath.Separator) + "\n"))
		})

		It("Should be idempotent", func() {
			Expect(em.ensureDir(base, "dir")).To(Succeed())
			Expect(em.ensureDir(base, "dir")).To(Succeed())
		})
	})

	Describe("write", func() {
		It("Should write content and track the file", func() {
			target := filepath.Join(base, "file.txt")
			Expect(em.write(target, []byte("hello"), 0)).To(Succeed())

			raw, err := os.ReadFile(target)
			Expect(err).ToNot(HaveOccurred())
			Expect(raw).To(Equal([]byte("hello")))

			Expect(em.created).To(Equal([]string{"file.txt"}))
			Expect(out.String()).To(Equal("create : " + target + "\n"))
		})

		It("Should overwrite existing files", func() {
			target := filepath.Join(base, "file.txt")
			Expect(os.WriteFile(target, []byte("old content that is longer"), 0o644)).To(Succeed())

			Expect(em.write(target, []byte("new"), 0)).To(Succeed())

			raw, err := os.ReadFile(target)
			Expect(err).ToNot(HaveOccurred())
			Expect(raw).To(Equal([]byte("new")))
		})
	})

	Describe("copyTemplateMulti", func() {
		It("Should copy only entries matching the pattern", func() {
			source := GinkgoT().TempDir()
			Expect(os.MkdirAll(filepath.Join(source, "sub"), 0o755)).To(Succeed())
			Expect(os.WriteFile(filepath.Join(source, "sub", "a.js"), []byte("a"), 0o644)).To(Succeed())
			Expect(os.WriteFile(filepath.Join(source, "sub", "b.js"), []byte("b"), 0o644)).To(Succeed())
			Expect(os.WriteFile(filepath.Join(source, "sub", "notes.txt"), []byte("n"), 0o644)).To(Succeed())

			dest := filepath.Join(base, "out")
			Expect(os.MkdirAll(dest, 0o755)).To(Succeed())

			Expect(em.copyTemplateMulti(os.DirFS(source), "sub", dest, "*.js")).To(Succeed())

			entries, err := os.ReadDir(dest)
			Expect(err).ToNot(HaveOccurred())

			var names []string
			for _, e := range entries {
				names = append(names, e.Name())
			}
			Expect(names).To(Equal([]string{"a.js", "b.js"}))
		})

		It("Should fail for a missing source directory", func() {
			err := em.copyTemplateMulti(os.DirFS(base), "nope", base, "*.js")
			Expect(err).To(MatchError(ContainSubstring("cannot read template directory nope")))
		})
	})

	Describe("post processing", func() {
		It("Should run matching hooks against written files", func() {
			em.post = []map[string]string{{"*.js": "touch {}.posted"}}

			target := filepath.Join(base, "app.js")
			Expect(em.write(target, []byte("x"), 0)).To(Succeed())

			_, err := os.Stat(target + ".posted")
			Expect(err).ToNot(HaveOccurred())
		})

		It("Should skip non-matching hooks", func() {
			em.post = []map[string]string{{"*.json": "false"}}

			target := filepath.Join(base, "app.js")
			Expect(em.write(target, []byte("x"), 0)).To(Succeed())
		})

		It("Should surface hook failures", func() {
			em.post = []map[string]string{{"*.js": "false"}}

			target := filepath.Join(base, "app.js")
			err := em.write(target, []byte("x"), 0)
			Expect(err).To(MatchError(ContainSubstring("failed to post process")))
		})
	})
})
