// Package git reads commit messages via the go-git SDK.
package git

import (
	"io"
	"os"

	"github.com/cockroachdb/errors"
	"github.com/go-git/go-git/v6"
)

// gitEnvVarsToUnset lists git environment variables that must be cleared
// before using go-git inside a hook. A commit-msg hook inherits
// GIT_INDEX_FILE from the parent git process; letting go-git touch that
// shared index file while the parent still owns it corrupts the index.
//
// See: https://github.com/pre-commit/pre-commit/issues/1849
var gitEnvVarsToUnset = []string{
	"GIT_INDEX_FILE",
}

func init() {
	for _, envVar := range gitEnvVarsToUnset {
		_ = os.Unsetenv(envVar)
	}
}

var (
	// ErrNotARepository is returned when dir is not inside a git repository.
	ErrNotARepository = errors.New("not a git repository")

	// ErrNoCommits is returned when the repository has no non-merge commits.
	ErrNoCommits = errors.New("no non-merge commits found")
)

// HeadCommitMessage returns the message of the most recent non-merge
// commit reachable from HEAD of the repository containing dir. This
// mirrors `git log --no-merges --format=%B -n1`.
func HeadCommitMessage(dir string) (string, error) {
	repo, err := git.PlainOpenWithOptions(dir, &git.PlainOpenOptions{
		DetectDotGit: true,
	})
	if err != nil {
		if errors.Is(err, git.ErrRepositoryNotExists) {
			return "", errors.Wrapf(ErrNotARepository, "%s", dir)
		}

		return "", errors.Wrap(err, "opening repository")
	}

	head, err := repo.Head()
	if err != nil {
		return "", errors.Wrap(err, "resolving HEAD")
	}

	iter, err := repo.Log(&git.LogOptions{From: head.Hash()})
	if err != nil {
		return "", errors.Wrap(err, "walking commit log")
	}
	defer iter.Close()

	for {
		commit, err := iter.Next()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return "", ErrNoCommits
			}

			return "", errors.Wrap(err, "walking commit log")
		}

		// Merge commits are skipped, matching git log --no-merges.
		if commit.NumParents() <= 1 {
			return commit.Message, nil
		}
	}
}
