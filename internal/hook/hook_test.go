package hook_test

import (
	"context"
	"io"
	"os"
	"path/filepath"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/smykla-labs/checkpatch/internal/checker"
	execpkg "github.com/smykla-labs/checkpatch/internal/exec"
	"github.com/smykla-labs/checkpatch/internal/hook"
	"github.com/smykla-labs/checkpatch/pkg/config"
)

// call records one runner invocation.
type call struct {
	name  string
	args  []string
	stdin string
}

// scriptedRunner records calls and replays scripted results in order.
type scriptedRunner struct {
	calls   []call
	results []*execpkg.Result
}

func (s *scriptedRunner) Run(
	_ context.Context,
	name string,
	args ...string,
) (*execpkg.Result, error) {
	s.calls = append(s.calls, call{name: name, args: args})

	return s.nextResult(), nil
}

func (s *scriptedRunner) RunWithStdin(
	_ context.Context,
	stdin io.Reader,
	name string,
	args ...string,
) (*execpkg.Result, error) {
	recorded := call{name: name, args: args}

	if stdin != nil {
		data, _ := io.ReadAll(stdin)
		recorded.stdin = string(data)
	}

	s.calls = append(s.calls, recorded)

	return s.nextResult(), nil
}

func (s *scriptedRunner) nextResult() *execpkg.Result {
	if len(s.results) == 0 {
		return &execpkg.Result{}
	}

	result := s.results[0]
	s.results = s.results[1:]

	return result
}

// checkedFiles extracts the file list following --file from a call.
func checkedFiles(c call) []string {
	for i, arg := range c.args {
		if arg == "--file" {
			return c.args[i+1:]
		}
	}

	return nil
}

var _ = Describe("Hook", func() {
	var (
		runner *scriptedRunner
		h      *hook.Hook
	)

	BeforeEach(func() {
		runner = &scriptedRunner{}
		h = hook.New(checker.New(runner, "checkpatch.pl"))
	})

	Describe("PreCommit", func() {
		It("should batch files sharing a directory rule into one invocation", func() {
			doc := &config.Document{
				DirConfigs: map[string]*config.DirRule{
					"src":  {ErrorsEnabled: []string{"E1"}},
					"docs": {ErrorsIgnored: []string{"W1"}},
				},
			}

			result, err := h.PreCommit(
				context.Background(),
				doc,
				[]string{"src/a.c", "docs/b.md", "src/c.c"},
			)

			Expect(err).ToNot(HaveOccurred())
			Expect(result.Clean()).To(BeTrue())
			Expect(runner.calls).To(HaveLen(2))
			Expect(checkedFiles(runner.calls[0])).To(Equal([]string{"src/a.c", "src/c.c"}))
			Expect(checkedFiles(runner.calls[1])).To(Equal([]string{"docs/b.md"}))
			Expect(runner.calls[0].args).To(ContainElement("--types"))
			Expect(runner.calls[1].args).To(ContainElement("--ignore"))
		})

		It("should skip files listed in IGNORED_FILES", func() {
			doc := &config.Document{
				IgnoredFiles: []string{"src/generated.c"},
				DirConfigs: map[string]*config.DirRule{
					"src": {ErrorsEnabled: []string{"E1"}},
				},
			}

			_, err := h.PreCommit(
				context.Background(),
				doc,
				[]string{"src/a.c", "src/generated.c"},
			)

			Expect(err).ToNot(HaveOccurred())
			Expect(runner.calls).To(HaveLen(1))
			Expect(checkedFiles(runner.calls[0])).To(Equal([]string{"src/a.c"}))
		})

		It("should skip symlinks", func() {
			tmpDir := GinkgoT().TempDir()

			target := filepath.Join(tmpDir, "real.c")
			Expect(os.WriteFile(target, []byte("int x;\n"), 0o600)).To(Succeed())

			link := filepath.Join(tmpDir, "link.c")
			Expect(os.Symlink(target, link)).To(Succeed())

			doc := &config.Document{
				DirConfigs: map[string]*config.DirRule{
					config.DefaultDirKey: {ErrorsEnabled: []string{"E1"}},
				},
			}

			_, err := h.PreCommit(context.Background(), doc, []string{target, link})

			Expect(err).ToNot(HaveOccurred())
			Expect(runner.calls).To(HaveLen(1))
			Expect(checkedFiles(runner.calls[0])).To(Equal([]string{target}))
		})

		It("should run nothing when every file is skipped", func() {
			doc := &config.Document{
				IgnoredFiles: []string{"src/generated.c"},
				DirConfigs: map[string]*config.DirRule{
					"src": {ErrorsEnabled: []string{"E1"}},
				},
			}

			result, err := h.PreCommit(
				context.Background(),
				doc,
				[]string{"src/generated.c"},
			)

			Expect(err).ToNot(HaveOccurred())
			Expect(result.Clean()).To(BeTrue())
			Expect(runner.calls).To(BeEmpty())
		})

		It("should aggregate findings across batches", func() {
			runner.results = []*execpkg.Result{
				{Stdout: "src/a.c:1: ERROR: bad\n", ExitCode: 1},
				{Stdout: "docs/b.md:2: WARNING: meh\n", ExitCode: 1},
			}

			doc := &config.Document{
				DirConfigs: map[string]*config.DirRule{
					"src":  {ErrorsEnabled: []string{"E1"}},
					"docs": {ErrorsIgnored: []string{"W1"}},
				},
			}

			result, err := h.PreCommit(
				context.Background(),
				doc,
				[]string{"src/a.c", "docs/b.md"},
			)

			Expect(err).ToNot(HaveOccurred())
			Expect(result.Clean()).To(BeFalse())
			Expect(result.Findings).To(HaveLen(2))
			Expect(result.Findings[0].File).To(Equal("src/a.c"))
			Expect(result.Findings[1].File).To(Equal("docs/b.md"))
		})

		It("should propagate resolution failures before invoking the checker", func() {
			doc := &config.Document{
				DirConfigs: map[string]*config.DirRule{
					"src": {
						ErrorsEnabled: []string{"E1"},
						ErrorsIgnored: []string{"W1"},
					},
				},
			}

			_, err := h.PreCommit(context.Background(), doc, []string{"src/a.c"})

			Expect(err).To(HaveOccurred())
			Expect(runner.calls).To(BeEmpty())
		})
	})

	Describe("CommitMsg", func() {
		It("should wrap the message file in a synthetic patch", func() {
			tmpDir := GinkgoT().TempDir()

			msgFile := filepath.Join(tmpDir, "COMMIT_EDITMSG")
			Expect(os.WriteFile(
				msgFile,
				[]byte("fix: correct a typo\n"),
				0o600,
			)).To(Succeed())

			_, err := h.CommitMsg(context.Background(), []string{msgFile})

			Expect(err).ToNot(HaveOccurred())
			Expect(runner.calls).To(HaveLen(1))
			Expect(runner.calls[0].stdin).To(ContainSubstring(
				"Subject: [PATCH] fix: correct a typo",
			))
			Expect(runner.calls[0].stdin).To(ContainSubstring("diff --git a/dummy.txt"))
			Expect(runner.calls[0].args).To(ContainElement("--ignore"))
		})
	})
})
