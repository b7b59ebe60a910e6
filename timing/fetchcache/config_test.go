package fetchcache_test

import (
	"os"
	"path/filepath"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/rv5sim/timing/fetchcache"
)

var _ = Describe("Config", func() {
	It("should validate the default configuration", func() {
		Expect(fetchcache.DefaultConfig().Validate()).To(Succeed())
	})

	It("should reject a block size that is not a word multiple", func() {
		config := fetchcache.DefaultConfig()
		config.BlockSize = 10

		Expect(config.Validate()).ToNot(Succeed())
	})

	It("should reject a size that does not divide into sets", func() {
		config := fetchcache.DefaultConfig()
		config.Size = 100

		Expect(config.Validate()).ToNot(Succeed())
	})

	It("should reject non-positive geometry", func() {
		config := fetchcache.DefaultConfig()
		config.Associativity = 0

		Expect(config.Validate()).ToNot(Succeed())
	})

	It("should round-trip through a JSON file", func() {
		path := filepath.Join(GinkgoT().TempDir(), "cache.json")

		config := fetchcache.Config{
			Size:          2048,
			Associativity: 4,
			BlockSize:     32,
			HitLatency:    2,
			MissLatency:   20,
		}
		Expect(config.SaveConfig(path)).To(Succeed())

		loaded, err := fetchcache.LoadConfig(path)
		Expect(err).ToNot(HaveOccurred())
		Expect(loaded).To(Equal(config))
	})

	It("should keep defaults for fields absent from the file", func() {
		path := filepath.Join(GinkgoT().TempDir(), "cache.json")
		Expect(os.WriteFile(path, []byte(`{"size": 512}`), 0644)).To(Succeed())

		loaded, err := fetchcache.LoadConfig(path)
		Expect(err).ToNot(HaveOccurred())

		Expect(loaded.Size).To(Equal(512))
		Expect(loaded.Associativity).To(Equal(fetchcache.DefaultConfig().Associativity))
		Expect(loaded.MissLatency).To(Equal(fetchcache.DefaultConfig().MissLatency))
	})

	It("should fail to load a missing file", func() {
		_, err := fetchcache.LoadConfig(
			filepath.Join(GinkgoT().TempDir(), "missing.json"))

		Expect(err).To(HaveOccurred())
	})

	It("should fail to load malformed JSON", func() {
		path := filepath.Join(GinkgoT().TempDir(), "cache.json")
		Expect(os.WriteFile(path, []byte("{not json"), 0644)).To(Succeed())

		_, err := fetchcache.LoadConfig(path)

		Expect(err).To(HaveOccurred())
	})
})
