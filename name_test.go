// Copyright (c) 2026, the nodegen contributors
//
// SPDX-License-Identifier: Apache-2.0

package nodegen

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("NormalizeName", func() {
	DescribeTable("Normalization",
		func(path string, expected string) {
			Expect(NormalizeName(path)).To(Equal(expected))
		},
		Entry("spaces and punctuation", "/tmp/My App!!", "my-app"),
		Entry("underscores only", "___", ""),
		Entry("already clean", "my-app", "my-app"),
		Entry("relative path", "projects/Demo Site", "demo-site"),
		Entry("leading dot", "/home/u/.hidden", "hidden"),
		Entry("dots kept inside", "api.v2", "api.v2"),
		Entry("run of unsafe characters", "a   !!!   b", "a-b"),
		Entry("trailing dashes", "app--", "app"),
		Entry("uppercase", "/srv/WEB", "web"),
	)

	It("Should be idempotent", func() {
		for _, p := range []string{"/tmp/My App!!", "weird__name", "UPPER case", "a.b-c"} {
			once := NormalizeName(p)
			Expect(NormalizeName(once)).To(Equal(once))
		}
	})
})
