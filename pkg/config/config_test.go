package config_test

import (
	"os"
	"path/filepath"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/ledgerlens/ledgerlens/pkg/config"
)

var _ = Describe("Config", func() {
	Describe("InitViper", func() {
		It("serves defaults when no config file exists", func() {
			dir := GinkgoT().TempDir()

			v, err := config.InitViper(dir)
			Expect(err).NotTo(HaveOccurred())

			cfg, err := config.Load(v)
			Expect(err).NotTo(HaveOccurred())

			Expect(cfg.API.Listen).To(Equal(":8080"))
			Expect(cfg.Embedding.Provider).To(Equal("ollama"))
			Expect(cfg.Embedding.Model).To(Equal("nomic-embed-text"))
			Expect(cfg.Embedding.Dimensions).To(Equal(uint(768)))
			Expect(cfg.VectorStore.Provider).To(Equal("flat"))
			Expect(cfg.Storage.Provider).To(Equal("inmemory"))
			Expect(cfg.EventStream.Provider).To(Equal("nop"))
			Expect(cfg.Retrieval.ChunkSize).To(Equal(500))
			Expect(cfg.Retrieval.TopK).To(Equal(3))
			Expect(cfg.Retrieval.Threshold).To(BeNumerically("~", 0.5, 1e-6))
			Expect(cfg.Memory.Capacity).To(Equal(7))
		})

		It("lets config.toml override defaults", func() {
			dir := GinkgoT().TempDir()
			toml := `
[api]
listen = ":9090"

[retrieval]
top_k = 10
`
			Expect(os.WriteFile(filepath.Join(dir, "config.toml"), []byte(toml), 0o644)).To(Succeed())

			v, err := config.InitViper(dir)
			Expect(err).NotTo(HaveOccurred())

			cfg, err := config.Load(v)
			Expect(err).NotTo(HaveOccurred())

			Expect(cfg.API.Listen).To(Equal(":9090"))
			Expect(cfg.Retrieval.TopK).To(Equal(10))
			// Untouched sections keep their defaults.
			Expect(cfg.Embedding.Provider).To(Equal("ollama"))
		})

		It("lets environment variables override the file", func() {
			dir := GinkgoT().TempDir()
			toml := `
[api]
listen = ":9090"
`
			Expect(os.WriteFile(filepath.Join(dir, "config.toml"), []byte(toml), 0o644)).To(Succeed())
			GinkgoT().Setenv("LEDGERLENS_API_LISTEN", ":7070")

			v, err := config.InitViper(dir)
			Expect(err).NotTo(HaveOccurred())

			Expect(v.GetString("api.listen")).To(Equal(":7070"))
		})

		It("rejects a malformed config file", func() {
			dir := GinkgoT().TempDir()
			Expect(os.WriteFile(filepath.Join(dir, "config.toml"), []byte("not [valid toml"), 0o644)).To(Succeed())

			_, err := config.InitViper(dir)
			Expect(err).To(HaveOccurred())
		})
	})

	Describe("NewDefaultConfig", func() {
		It("populates every section", func() {
			cfg := config.NewDefaultConfig()

			Expect(cfg.Generation.Provider).To(Equal("ollama"))
			Expect(cfg.Generation.Model).To(Equal("llama3.2"))
			Expect(cfg.Generation.TimeoutSecs).To(Equal(120))
		})
	})
})
