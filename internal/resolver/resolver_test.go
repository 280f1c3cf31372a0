package resolver_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/smykla-labs/checkpatch/internal/resolver"
	"github.com/smykla-labs/checkpatch/pkg/config"
)

func intPtr(v int) *int {
	return &v
}

var _ = Describe("Resolver", func() {
	var res *resolver.Resolver

	BeforeEach(func() {
		res = resolver.New()
	})

	Describe("Resolve", func() {
		It("should expand the ERRORS_ENABLED placeholder in place", func() {
			doc := &config.Document{
				ErrorsEnabled: []string{"E1", "E2"},
				DirConfigs: map[string]*config.DirRule{
					"src": {
						ErrorsEnabled: []string{config.MagicErrorsEnabled, "E3"},
						MaxLineLength: intPtr(100),
					},
				},
			}

			rs, err := res.Resolve("src/foo.c", doc)

			Expect(err).ToNot(HaveOccurred())
			Expect(rs.Enabled).To(Equal([]string{"E1", "E2", "E3"}))
			Expect(rs.Ignored).To(BeEmpty())
			Expect(rs.MaxLineLength).To(Equal(100))
			Expect(rs.Dir).To(Equal("src"))
		})

		It("should preserve the placeholder position during expansion", func() {
			doc := &config.Document{
				ErrorsEnabled: []string{"E1", "E2"},
				DirConfigs: map[string]*config.DirRule{
					"src": {
						ErrorsEnabled: []string{"E0", config.MagicErrorsEnabled, "E3"},
					},
				},
			}

			rs, err := res.Resolve("src/foo.c", doc)

			Expect(err).ToNot(HaveOccurred())
			Expect(rs.Enabled).To(Equal([]string{"E0", "E1", "E2", "E3"}))
		})

		It("should expand an undefined placeholder to nothing", func() {
			doc := &config.Document{
				DirConfigs: map[string]*config.DirRule{
					"src": {
						ErrorsEnabled: []string{config.MagicErrorsEnabled, "E3"},
					},
				},
			}

			rs, err := res.Resolve("src/foo.c", doc)

			Expect(err).ToNot(HaveOccurred())
			Expect(rs.Enabled).To(Equal([]string{"E3"}))
		})

		It("should prefer the longest matching prefix", func() {
			doc := &config.Document{
				DirConfigs: map[string]*config.DirRule{
					"a":   {ErrorsEnabled: []string{"SHORT"}},
					"a/b": {ErrorsEnabled: []string{"LONG"}},
				},
			}

			rs, err := res.Resolve("a/b/c/file.c", doc)

			Expect(err).ToNot(HaveOccurred())
			Expect(rs.Enabled).To(Equal([]string{"LONG"}))
			Expect(rs.Dir).To(Equal("a/b"))
		})

		It("should match prefixes on segment boundaries only", func() {
			doc := &config.Document{
				DirConfigs: map[string]*config.DirRule{
					"a": {ErrorsEnabled: []string{"E1"}},
				},
			}

			rs, err := res.Resolve("ab/file.c", doc)

			Expect(err).ToNot(HaveOccurred())
			Expect(rs.Unrestricted()).To(BeTrue())
		})

		It("should use an exact directory match over __default__", func() {
			doc := &config.Document{
				DirConfigs: map[string]*config.DirRule{
					"src":                {ErrorsEnabled: []string{"E1"}},
					config.DefaultDirKey: {ErrorsIgnored: []string{"W1"}},
				},
			}

			rs, err := res.Resolve("src/foo.c", doc)

			Expect(err).ToNot(HaveOccurred())
			Expect(rs.Enabled).To(Equal([]string{"E1"}))
			Expect(rs.Ignored).To(BeEmpty())
		})

		It("should fall back to __default__ with placeholder expansion", func() {
			doc := &config.Document{
				IgnoresCommon: []string{"W2"},
				DirConfigs: map[string]*config.DirRule{
					config.DefaultDirKey: {
						ErrorsIgnored: []string{config.MagicIgnoresCommon, "W1"},
					},
				},
			}

			rs, err := res.Resolve("elsewhere/foo.c", doc)

			Expect(err).ToNot(HaveOccurred())
			Expect(rs.Ignored).To(Equal([]string{"W2", "W1"}))
			Expect(rs.Enabled).To(BeEmpty())
			Expect(rs.Dir).To(Equal(config.DefaultDirKey))
		})

		It("should resolve to the unrestricted rule set without a match or default", func() {
			doc := &config.Document{
				DirConfigs: map[string]*config.DirRule{
					"src": {ErrorsEnabled: []string{"E1"}},
				},
			}

			rs, err := res.Resolve("docs/readme.md", doc)

			Expect(err).ToNot(HaveOccurred())
			Expect(rs.Unrestricted()).To(BeTrue())
			Expect(rs.Dir).To(BeEmpty())
		})

		It("should not mutate the document across repeated resolution", func() {
			doc := &config.Document{
				ErrorsEnabled: []string{"E1", "E2"},
				DirConfigs: map[string]*config.DirRule{
					"src": {
						ErrorsEnabled: []string{config.MagicErrorsEnabled, "E3"},
					},
				},
			}

			first, err := res.Resolve("src/foo.c", doc)
			Expect(err).ToNot(HaveOccurred())

			second, err := res.Resolve("src/foo.c", doc)
			Expect(err).ToNot(HaveOccurred())

			Expect(second).To(Equal(first))
			Expect(doc.DirConfigs["src"].ErrorsEnabled).To(
				Equal([]string{config.MagicErrorsEnabled, "E3"}),
			)
		})

		It("should fail on a rule declaring both lists, naming the key", func() {
			doc := &config.Document{
				DirConfigs: map[string]*config.DirRule{
					"src": {
						ErrorsEnabled: []string{"E1"},
						ErrorsIgnored: []string{"W1"},
					},
				},
			}

			_, err := res.Resolve("src/foo.c", doc)

			Expect(err).To(HaveOccurred())
			Expect(err.Error()).To(ContainSubstring("DIR_CONFIGS[src]"))
		})

		It("should fail on a rule declaring neither list", func() {
			doc := &config.Document{
				DirConfigs: map[string]*config.DirRule{
					"src": {MaxLineLength: intPtr(80)},
				},
			}

			_, err := res.Resolve("src/foo.c", doc)

			Expect(err).To(HaveOccurred())
		})

		It("should match a file directly inside the configured directory", func() {
			doc := &config.Document{
				DirConfigs: map[string]*config.DirRule{
					"drivers/net": {ErrorsIgnored: []string{"W1"}},
				},
			}

			rs, err := res.Resolve("drivers/net/eth.c", doc)

			Expect(err).ToNot(HaveOccurred())
			Expect(rs.Ignored).To(Equal([]string{"W1"}))
		})

		It("should treat a dot key as matching every relative path", func() {
			doc := &config.Document{
				DirConfigs: map[string]*config.DirRule{
					".": {ErrorsIgnored: []string{"W1"}},
				},
			}

			rs, err := res.Resolve("any/where/file.c", doc)

			Expect(err).ToNot(HaveOccurred())
			Expect(rs.Ignored).To(Equal([]string{"W1"}))
		})

		It("should normalize trailing separators on configured keys", func() {
			doc := &config.Document{
				DirConfigs: map[string]*config.DirRule{
					"src/": {ErrorsEnabled: []string{"E1"}},
				},
			}

			rs, err := res.Resolve("src/sub/foo.c", doc)

			Expect(err).ToNot(HaveOccurred())
			Expect(rs.Enabled).To(Equal([]string{"E1"}))
		})
	})
})
