package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/lithictech/go-assay/config"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func TestConfig(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "config Suite")
}

var _ = Describe("config", func() {
	It("has defaults", func() {
		cfg, err := config.FromMap(map[string]string{})
		Expect(err).ToNot(HaveOccurred())
		Expect(cfg.Port).To(Equal(8080))
		Expect(cfg.Log.Level).To(Equal("info"))
		Expect(cfg.DatabaseDriver).To(Equal("sqlite3"))
		Expect(cfg.Parallelism).To(Equal(4))
		Expect(cfg.Debug.Enabled).To(BeFalse())
	})

	It("reads prefixed variables, including nested ones", func() {
		cfg, err := config.FromMap(map[string]string{
			"ASSAY_PORT":         "9000",
			"ASSAY_LOG_LEVEL":    "debug",
			"ASSAY_LOG_FORMAT":   "json",
			"ASSAY_CORS_ORIGINS": "https://a.test,https://b.test",
			"ASSAY_DEBUG_HTTP":   "true",
			"ASSAY_PROFILES":     "profiles.yaml",
			"PORT":               "1",
		})
		Expect(err).ToNot(HaveOccurred())
		Expect(cfg.Port).To(Equal(9000))
		Expect(cfg.Log.Level).To(Equal("debug"))
		Expect(cfg.Log.Format).To(Equal("json"))
		Expect(cfg.CorsOrigins).To(Equal([]string{"https://a.test", "https://b.test"}))
		Expect(cfg.Debug.Enabled).To(BeTrue())
		Expect(cfg.Profiles).To(Equal("profiles.yaml"))
	})

	It("errors for bad values", func() {
		_, err := config.FromMap(map[string]string{"ASSAY_PORT": "high"})
		Expect(err).To(MatchError(ContainSubstring("parsing environment")))
		_, err = config.FromMap(map[string]string{"ASSAY_PARALLELISM": "0"})
		Expect(err).To(MatchError(ContainSubstring("PARALLELISM")))
	})

	Describe("Load", func() {
		It("reads dotenv files without overriding the environment", func() {
			path := filepath.Join(GinkgoT().TempDir(), ".env")
			Expect(os.WriteFile(path, []byte("ASSAY_VERSION=from-file\nASSAY_PARALLELISM=2\n"), 0600)).To(Succeed())
			GinkgoT().Setenv("ASSAY_PARALLELISM", "7")
			DeferCleanup(os.Unsetenv, "ASSAY_VERSION")
			cfg, err := config.Load(path)
			Expect(err).ToNot(HaveOccurred())
			Expect(cfg.Version).To(Equal("from-file"))
			Expect(cfg.Parallelism).To(Equal(7))
		})

		It("is fine with missing dotenv files", func() {
			_, err := config.Load(filepath.Join(GinkgoT().TempDir(), "missing.env"))
			Expect(err).ToNot(HaveOccurred())
		})
	})
})
