package chroma_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"go.uber.org/zap"

	"github.com/ledgerlens/ledgerlens/pkg/vector"
	"github.com/ledgerlens/ledgerlens/pkg/vector/chroma"
)

// fakeChroma is a minimal in-process stand-in for the Chroma REST API.
type fakeChroma struct {
	count     int
	queryResp map[string]any
}

func (f *fakeChroma) handler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")

		switch {
		case strings.HasSuffix(r.URL.Path, "/count"):
			json.NewEncoder(w).Encode(f.count)
		case strings.HasSuffix(r.URL.Path, "/query"):
			json.NewEncoder(w).Encode(f.queryResp)
		case strings.HasSuffix(r.URL.Path, "/add"):
			f.count++
			w.WriteHeader(http.StatusCreated)
		case r.Method == http.MethodDelete:
			w.WriteHeader(http.StatusOK)
		default:
			// Collection lookup or creation.
			json.NewEncoder(w).Encode(map[string]string{
				"id":   "test-collection-id",
				"name": "ledgerlens",
			})
		}
	})
}

var _ = Describe("Driver", func() {
	var (
		logger *zap.Logger
		fake   *fakeChroma
		server *httptest.Server
	)

	BeforeEach(func() {
		logger = zap.NewNop()
		fake = &fakeChroma{}
		server = httptest.NewServer(fake.handler())
		DeferCleanup(server.Close)
	})

	Describe("NewDriver", func() {
		It("returns an error when URL is empty", func() {
			_, err := chroma.NewDriver(chroma.Config{URL: ""}, logger)
			Expect(err).To(HaveOccurred())
			Expect(err.Error()).To(ContainSubstring("chroma URL is required"))
		})

		It("resolves the collection ID on construction", func() {
			driver, err := chroma.NewDriver(chroma.Config{URL: server.URL}, logger)
			Expect(err).NotTo(HaveOccurred())
			Expect(driver).NotTo(BeNil())
		})
	})

	Describe("Query", func() {
		It("returns ErrEmptyIndex when the collection is empty", func() {
			driver, err := chroma.NewDriver(chroma.Config{URL: server.URL}, logger)
			Expect(err).NotTo(HaveOccurred())

			_, err = driver.Query(GinkgoT().Context(), []float32{1, 0}, 3)
			Expect(err).To(MatchError(vector.ErrEmptyIndex))
		})

		It("recovers cosine scores from squared L2 distances", func() {
			fake.count = 2
			fake.queryResp = map[string]any{
				"ids":       [][]string{{"c0", "c1"}},
				"distances": [][]float64{{0.0, 2.0}},
				"documents": [][]string{{"first chunk", "second chunk"}},
				"metadatas": [][]map[string]any{{
					{"chunk_index": float64(0)},
					{"chunk_index": float64(1)},
				}},
			}

			driver, err := chroma.NewDriver(chroma.Config{URL: server.URL}, logger)
			Expect(err).NotTo(HaveOccurred())

			results, err := driver.Query(GinkgoT().Context(), []float32{1, 0}, 2)
			Expect(err).NotTo(HaveOccurred())
			Expect(results).To(HaveLen(2))
			Expect(results[0].Score).To(BeNumerically("~", 1.0, 1e-6))
			Expect(results[1].Score).To(BeNumerically("~", 0.0, 1e-6))
			Expect(results[0].Text).To(Equal("first chunk"))
			Expect(results[1].ChunkIndex).To(Equal(1))
		})
	})
})
