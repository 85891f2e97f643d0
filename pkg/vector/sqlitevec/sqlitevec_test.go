package sqlitevec_test

import (
	"context"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"go.uber.org/zap"

	"github.com/ledgerlens/ledgerlens/pkg/vector"
	"github.com/ledgerlens/ledgerlens/pkg/vector/sqlitevec"
)

var _ = Describe("Driver", func() {
	var (
		logger *zap.Logger
		ctx    context.Context
	)

	BeforeEach(func() {
		logger = zap.NewNop()
		ctx = context.Background()
	})

	Describe("NewDriver", func() {
		It("returns an error when DBPath is empty", func() {
			_, err := sqlitevec.NewDriver(sqlitevec.Config{}, logger)
			Expect(err).To(HaveOccurred())
			Expect(err.Error()).To(ContainSubstring("database path is required"))
		})

		It("returns an error when dimensions are unset", func() {
			_, err := sqlitevec.NewDriver(sqlitevec.Config{DBPath: ":memory:"}, logger)
			Expect(err).To(HaveOccurred())
		})

		It("creates a driver with an in-memory database", func() {
			driver, err := sqlitevec.NewDriver(sqlitevec.Config{
				DBPath:     ":memory:",
				Dimensions: 4,
			}, logger)
			Expect(err).NotTo(HaveOccurred())
			Expect(driver.Close()).To(Succeed())
		})
	})

	Describe("Add and Query", func() {
		var driver *sqlitevec.Driver

		BeforeEach(func() {
			var err error
			driver, err = sqlitevec.NewDriver(sqlitevec.Config{
				DBPath:     ":memory:",
				Dimensions: 4,
			}, logger)
			Expect(err).NotTo(HaveOccurred())
		})

		AfterEach(func() {
			driver.Close()
		})

		It("returns ErrEmptyIndex before any document is added", func() {
			_, err := driver.Query(ctx, []float32{1, 0, 0, 0}, 2)
			Expect(err).To(MatchError(vector.ErrEmptyIndex))
		})

		It("returns a chunk as its own nearest neighbor", func() {
			docs := []vector.Document{
				{ID: "c0", ChunkIndex: 0, Text: "revenue", Embedding: []float32{1, 0, 0, 0}},
				{ID: "c1", ChunkIndex: 1, Text: "risk", Embedding: []float32{0, 1, 0, 0}},
			}
			Expect(driver.Add(ctx, docs)).To(Succeed())

			results, err := driver.Query(ctx, []float32{0, 1, 0, 0}, 1)
			Expect(err).NotTo(HaveOccurred())
			Expect(results).To(HaveLen(1))
			Expect(results[0].ID).To(Equal("c1"))
			Expect(results[0].Text).To(Equal("risk"))
			Expect(results[0].Score).To(BeNumerically("~", 1.0, 1e-4))
		})

		It("clamps topK to the number of stored documents", func() {
			Expect(driver.Add(ctx, []vector.Document{
				{ID: "c0", ChunkIndex: 0, Text: "only", Embedding: []float32{1, 0, 0, 0}},
			})).To(Succeed())

			results, err := driver.Query(ctx, []float32{1, 0, 0, 0}, 10)
			Expect(err).NotTo(HaveOccurred())
			Expect(results).To(HaveLen(1))
		})

		It("replaces a document with an existing ID", func() {
			Expect(driver.Add(ctx, []vector.Document{
				{ID: "c0", ChunkIndex: 0, Text: "v1", Embedding: []float32{1, 0, 0, 0}},
			})).To(Succeed())
			Expect(driver.Add(ctx, []vector.Document{
				{ID: "c0", ChunkIndex: 0, Text: "v2", Embedding: []float32{0, 0, 0, 1}},
			})).To(Succeed())

			count, err := driver.Count(ctx)
			Expect(err).NotTo(HaveOccurred())
			Expect(count).To(Equal(1))

			results, err := driver.Query(ctx, []float32{0, 0, 0, 1}, 1)
			Expect(err).NotTo(HaveOccurred())
			Expect(results[0].Text).To(Equal("v2"))
		})
	})
})
