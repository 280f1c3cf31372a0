package hook

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/cockroachdb/errors"

	"github.com/smykla-labs/checkpatch/internal/checker"
	"github.com/smykla-labs/checkpatch/internal/git"
)

// patchTemplate wraps a commit message in a minimal patch so checkpatch
// applies its commit-log rules to it. The diff hunk is a throwaway;
// checkpatch only needs the message to sit in a patch header.
const patchTemplate = `From: A Non <a.non@somewhere.com>
Date: %s
Subject: [PATCH] %s
---
 dummy.txt | 2 +-
 1 file changed, 1 insertion(+), 1 deletion(-)

diff --git a/dummy.txt b/dummy.txt
index 0000000..1111111 100644
--- a/dummy.txt
+++ b/dummy.txt
@@ -0,0 +1 @@
+dummy
--
`

// CommitMsg checks a commit message. The message comes from the first
// file argument when it names a readable file (the commit-msg hook
// contract), otherwise from the last non-merge commit of the repository
// at the working directory.
func (h *Hook) CommitMsg(ctx context.Context, files []string) (*checker.Result, error) {
	message, err := h.readMessage(files)
	if err != nil {
		return nil, err
	}

	return h.checker.CheckPatch(ctx, messageToPatch(message, time.Now()))
}

// readMessage fetches the commit message to check.
func (h *Hook) readMessage(files []string) (string, error) {
	if len(files) > 0 {
		if info, err := os.Stat(files[0]); err == nil && info.Mode().IsRegular() {
			h.log.Debug("reading commit message", "file", files[0])

			data, err := os.ReadFile(files[0])
			if err != nil {
				return "", errors.Wrapf(err, "reading commit message from %s", files[0])
			}

			return string(data), nil
		}
	}

	h.log.Debug("reading commit message from log")

	return git.HeadCommitMessage(".")
}

// messageToPatch builds the synthetic patch fed to the checker.
func messageToPatch(message string, now time.Time) string {
	return fmt.Sprintf(
		patchTemplate,
		now.Format("Mon, 02 Jan 2006 15:04:05 -0700"),
		message,
	)
}
