package vectorutils

import (
	"strings"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/ledgerlens/ledgerlens/pkg/vector/chroma"
)

var _ = Describe("sessionCollectionName", func() {
	It("keeps the configured name as a prefix", func() {
		Expect(sessionCollectionName("reports")).To(HavePrefix("reports-"))
	})

	It("falls back to the default prefix when unconfigured", func() {
		Expect(sessionCollectionName("")).To(HavePrefix(chroma.DefaultCollectionName + "-"))
	})

	It("yields a distinct name per retrieval session", func() {
		seen := make(map[string]bool)
		for i := 0; i < 100; i++ {
			name := sessionCollectionName("reports")
			Expect(seen[name]).To(BeFalse(), "collection name reused: %s", name)
			seen[name] = true
			Expect(strings.TrimPrefix(name, "reports-")).NotTo(BeEmpty())
		}
	})
})
