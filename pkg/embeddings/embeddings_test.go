package embeddings_test

import (
	"context"
	"errors"
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/ledgerlens/ledgerlens/pkg/embeddings"
)

type stubEmbedder struct {
	byText map[string][]float32
	failOn string
}

func (s *stubEmbedder) Embed(_ context.Context, text string) ([]float32, error) {
	if text == s.failOn {
		return nil, errors.New("stub embedding failure")
	}
	if v, ok := s.byText[text]; ok {
		return v, nil
	}
	return []float32{1, 0, 0}, nil
}

func (s *stubEmbedder) Dimensions() int { return 3 }
func (s *stubEmbedder) Close() error    { return nil }

var _ = Describe("L2Normalize", func() {
	It("scales a vector to unit length", func() {
		v := []float32{3, 4}
		embeddings.L2Normalize(v)

		var norm float64
		for _, x := range v {
			norm += float64(x) * float64(x)
		}
		Expect(math.Sqrt(norm)).To(BeNumerically("~", 1.0, 1e-6))
	})

	It("leaves zero vectors untouched", func() {
		v := []float32{0, 0, 0}
		embeddings.L2Normalize(v)
		Expect(v).To(Equal([]float32{0, 0, 0}))
	})
})

var _ = Describe("EmbedAll", func() {
	It("embeds each text in order", func() {
		e := &stubEmbedder{byText: map[string][]float32{
			"a": {1, 0, 0},
			"b": {0, 1, 0},
		}}

		vectors, err := embeddings.EmbedAll(context.Background(), e, []string{"a", "b"})
		Expect(err).NotTo(HaveOccurred())
		Expect(vectors).To(HaveLen(2))
		Expect(vectors[0]).To(Equal([]float32{1, 0, 0}))
		Expect(vectors[1]).To(Equal([]float32{0, 1, 0}))
	})

	It("fails on the first embedding error", func() {
		e := &stubEmbedder{failOn: "bad"}

		_, err := embeddings.EmbedAll(context.Background(), e, []string{"ok", "bad"})
		Expect(err).To(HaveOccurred())
	})
})
