package command

import (
	"strings"

	"github.com/smartyhall/meshbbs/pkg/frame"
	"github.com/smartyhall/meshbbs/pkg/session"
)

const maxTitleBytes = 32

func (p *Processor) handleComposeNewTitle(sess *session.Session, raw string) (string, error) {
	title := frame.TruncateEllipsis(strings.TrimSpace(raw), maxTitleBytes)
	if title == "" {
		return "Title cannot be empty. Try again:\n", nil
	}
	sess.PendingInput = title
	sess.State = session.ComposeNewBody
	return "[BBS] Message body (end with . on a line):\n", nil
}

func (p *Processor) handleComposeNewBody(sess *session.Session, raw string) (string, error) {
	line := strings.TrimRight(raw, "\r\n")
	if line != "." {
		if sess.ComposeBuffer != "" {
			sess.ComposeBuffer += "\n"
		}
		sess.ComposeBuffer += line
		return "", nil
	}

	body := sess.ComposeBuffer
	sess.ComposeBuffer = ""
	if strings.TrimSpace(body) == "" {
		sess.State = session.Threads
		return "Message content cannot be empty. Cancelled.\n" + mustRender(p.renderThreadsPage(sess)), nil
	}
	_, err := p.deps.Store.StoreMessage(sess.CurrentTopic, sess.DisplayName(), sess.PendingInput, body, sess.UserLevel)
	sess.PendingInput = ""
	sess.State = session.Threads
	if err != nil {
		return "Post failed: " + err.Error() + "\n", nil
	}
	return "Posted to " + sess.CurrentTopic + ".\n" + mustRender(p.renderThreadsPage(sess)), nil
}

func (p *Processor) handleComposeReply(sess *session.Session, raw string) (string, error) {
	content := strings.TrimSpace(raw)
	if content == "" {
		return "Reply cannot be empty.\n", nil
	}
	_, err := p.deps.Store.AppendReply(sess.CurrentTopic, sess.CurrentThreadID, sess.DisplayName(), content)
	sess.State = session.ThreadRead
	if err != nil {
		return "Reply failed: " + err.Error() + "\n", nil
	}
	return "Reply posted.\n" + mustRender(p.renderThreadRead(sess)), nil
}

func (p *Processor) handleConfirmDelete(sess *session.Session, raw string) (string, error) {
	answer := strings.ToUpper(strings.TrimSpace(raw))
	switch answer {
	case "Y", "YES":
		err := p.deps.Store.DeleteMessage(sess.CurrentTopic, sess.CurrentThreadID, sess.DisplayName())
		sess.CurrentThreadID = ""
		sess.State = session.Threads
		if err != nil {
			return "Delete failed: " + err.Error() + "\n", nil
		}
		return "Deleted.\n" + mustRender(p.renderThreadsPage(sess)), nil
	default:
		sess.State = session.ThreadRead
		return "Cancelled.\n" + mustRender(p.renderThreadRead(sess)), nil
	}
}

// mustRender folds a (string, error) render result into plain text for
// use inside a larger composed response, swallowing a render-step
// error into an inline notice rather than losing the preceding text the
// caller already committed to returning.
func mustRender(text string, err error) string {
	if err != nil {
		return "(" + err.Error() + ")\n"
	}
	return text
}
