package memory_test

import (
	"fmt"
	"sync"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/ledgerlens/ledgerlens/pkg/memory"
)

var _ = Describe("Buffer", func() {
	var buf *memory.Buffer

	BeforeEach(func() {
		buf = memory.NewBuffer(3)
	})

	Describe("Append", func() {
		It("retains exchanges oldest first", func() {
			buf.Append("q1", "a1")
			buf.Append("q2", "a2")

			entries := buf.Entries()
			Expect(entries).To(HaveLen(2))
			Expect(entries[0].Query).To(Equal("q1"))
			Expect(entries[1].Query).To(Equal("q2"))
		})

		It("evicts the oldest exchange at capacity", func() {
			for i := 1; i <= 5; i++ {
				buf.Append(fmt.Sprintf("q%d", i), fmt.Sprintf("a%d", i))
			}

			entries := buf.Entries()
			Expect(entries).To(HaveLen(3))
			Expect(entries[0].Query).To(Equal("q3"))
			Expect(entries[2].Query).To(Equal("q5"))
		})

		It("never exceeds capacity regardless of append count", func() {
			for i := 0; i < 100; i++ {
				buf.Append("q", "a")
				Expect(buf.Len()).To(BeNumerically("<=", 3))
			}
		})

		It("is safe under concurrent appends", func() {
			var wg sync.WaitGroup
			for i := 0; i < 20; i++ {
				wg.Add(1)
				go func(n int) {
					defer wg.Done()
					buf.Append(fmt.Sprintf("q%d", n), "a")
				}(i)
			}
			wg.Wait()

			Expect(buf.Len()).To(Equal(3))
		})
	})

	Describe("Render", func() {
		It("renders the empty buffer as the empty string", func() {
			Expect(buf.Render()).To(Equal(""))
		})

		It("formats exchanges as User/AI lines, oldest first", func() {
			buf.Append("What was revenue?", "Revenue was $10M.")
			buf.Append("And net income?", "Net income was $2M.")

			Expect(buf.Render()).To(Equal(
				"User: What was revenue?\nAI: Revenue was $10M.\n" +
					"User: And net income?\nAI: Net income was $2M.",
			))
		})

		It("reflects evictions", func() {
			for i := 1; i <= 4; i++ {
				buf.Append(fmt.Sprintf("q%d", i), fmt.Sprintf("a%d", i))
			}

			rendered := buf.Render()
			Expect(rendered).NotTo(ContainSubstring("q1"))
			Expect(rendered).To(ContainSubstring("User: q2"))
		})
	})

	Describe("NewBuffer", func() {
		It("falls back to the default capacity for non-positive values", func() {
			b := memory.NewBuffer(0)
			for i := 0; i < 20; i++ {
				b.Append("q", "a")
			}
			Expect(b.Len()).To(Equal(memory.DefaultCapacity))
		})
	})
})

var _ = Describe("Store", func() {
	It("returns the same buffer for the same session", func() {
		store := memory.NewStore(3)

		store.Session("alpha").Append("q", "a")
		Expect(store.Session("alpha").Len()).To(Equal(1))
	})

	It("isolates sessions from each other", func() {
		store := memory.NewStore(3)

		store.Session("alpha").Append("q", "a")
		Expect(store.Session("beta").Len()).To(Equal(0))
	})

	It("forgets a session's buffer", func() {
		store := memory.NewStore(3)

		store.Session("alpha").Append("q", "a")
		store.Forget("alpha")
		Expect(store.Session("alpha").Len()).To(Equal(0))
	})
})
