package command

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/smartyhall/meshbbs/pkg/bbs"
	"github.com/smartyhall/meshbbs/pkg/frame"
	"github.com/smartyhall/meshbbs/pkg/session"
)

// renderTopicsPage lists every topic at the current page that the
// session's level can read.
func (p *Processor) renderTopicsPage(sess *session.Session) (string, error) {
	all := p.deps.Store.ListConfiguredTopics()
	var readable []bbs.TopicConfig
	for _, t := range all {
		if t.Parent == "" && sess.UserLevel >= t.ReadLevel {
			readable = append(readable, t)
		}
	}
	page, total := frame.Paginate(readable, sess.ListPage)

	var b strings.Builder
	b.WriteString("Topics:\n")
	for i, t := range page {
		fmt.Fprintf(&b, "%d. %s - %s\n", i+1, t.Name, t.Description)
	}
	if footer := frame.PageFooter(sess.ListPage, total); footer != "" {
		b.WriteString(footer + "\n")
	}
	b.WriteString("1-9 pick, L more, B back, M menu, X exit\n")
	return b.String(), nil
}

func (p *Processor) handleTopics(sess *session.Session, raw string) (string, error) {
	upper := strings.ToUpper(strings.TrimSpace(raw))
	switch upper {
	case "H", "HELP", "?":
		return "Topics: 1-9 pick, L more, B back, M menu, X exit\n", nil
	case "B", "M":
		sess.State = session.MainMenu
		return mainMenuText, nil
	case "X":
		sess.Logout(p.deps.Logger)
		return "Goodbye! 73s\n", nil
	case "L":
		sess.ListPage++
		return p.renderTopicsPage(sess)
	}

	if idx, ok := parsePick(upper); ok {
		all := p.deps.Store.ListConfiguredTopics()
		var readable []bbs.TopicConfig
		for _, t := range all {
			if t.Parent == "" && sess.UserLevel >= t.ReadLevel {
				readable = append(readable, t)
			}
		}
		page, _ := frame.Paginate(readable, sess.ListPage)
		if idx < 1 || idx > len(page) {
			return "Invalid selection.\n", nil
		}
		chosen := page[idx-1]
		sess.CurrentTopic = chosen.Name
		sess.ListPage = 1
		if subs := p.deps.Store.ListSubtopics(chosen.Name); len(subs) > 0 {
			sess.State = session.Subtopics
			return p.renderSubtopicsPage(sess)
		}
		sess.State = session.Threads
		return p.renderThreadsPage(sess)
	}
	return "Unrecognized. H for help.\n", nil
}

func (p *Processor) renderSubtopicsPage(sess *session.Session) (string, error) {
	subs := p.deps.Store.ListSubtopics(sess.CurrentTopic)
	page, total := frame.Paginate(subs, sess.ListPage)
	var b strings.Builder
	fmt.Fprintf(&b, "Subtopics of %s:\n", sess.CurrentTopic)
	for i, t := range page {
		fmt.Fprintf(&b, "%d. %s - %s\n", i+1, t.Name, t.Description)
	}
	if footer := frame.PageFooter(sess.ListPage, total); footer != "" {
		b.WriteString(footer + "\n")
	}
	b.WriteString("Subtopics: 1-9 pick, U up, L more, M topics, X exit\n")
	return b.String(), nil
}

func (p *Processor) handleSubtopics(sess *session.Session, raw string) (string, error) {
	upper := strings.ToUpper(strings.TrimSpace(raw))
	switch upper {
	case "H", "HELP", "?":
		return "Subtopics: 1-9 pick, U up, L more, M topics, X exit\n", nil
	case "M", "U", "UP", "B":
		sess.State = session.Topics
		sess.ListPage = 1
		return p.renderTopicsPage(sess)
	case "X":
		sess.Logout(p.deps.Logger)
		return "Goodbye! 73s\n", nil
	case "L":
		sess.ListPage++
		return p.renderSubtopicsPage(sess)
	}
	if idx, ok := parsePick(upper); ok {
		subs := p.deps.Store.ListSubtopics(sess.CurrentTopic)
		page, _ := frame.Paginate(subs, sess.ListPage)
		if idx < 1 || idx > len(page) {
			return "Invalid selection.\n", nil
		}
		sess.CurrentTopic = page[idx-1].Name
		sess.ListPage = 1
		sess.State = session.Threads
		return p.renderThreadsPage(sess)
	}
	return "Unrecognized. H for help.\n", nil
}

func (p *Processor) renderThreadsPage(sess *session.Session) (string, error) {
	msgs, err := p.deps.Store.GetMessages(sess.CurrentTopic, 200)
	if err != nil {
		return "", err
	}
	page, total := frame.Paginate(msgs, sess.ListPage)
	var b strings.Builder
	fmt.Fprintf(&b, "Threads in %s:\n", sess.CurrentTopic)
	for i, m := range page {
		mark := ""
		if m.Pinned {
			mark = "*"
		}
		title := m.Title
		if title == "" {
			title = frame.TruncateEllipsis(m.Content, 24)
		}
		fmt.Fprintf(&b, "%d.%s %s - %s\n", i+1, mark, m.Author, title)
	}
	if footer := frame.PageFooter(sess.ListPage, total); footer != "" {
		b.WriteString(footer + "\n")
	}
	b.WriteString("1-9 read, N new, M topics, L more, X exit\n")
	return b.String(), nil
}

func (p *Processor) handleThreads(sess *session.Session, raw string) (string, error) {
	upper := strings.ToUpper(strings.TrimSpace(raw))
	switch upper {
	case "H", "HELP", "?":
		return "Threads: 1-9 read, N new, M topics, L more, X exit\n", nil
	case "M":
		sess.State = session.Topics
		sess.ListPage = 1
		return p.renderTopicsPage(sess)
	case "X":
		sess.Logout(p.deps.Logger)
		return "Goodbye! 73s\n", nil
	case "L":
		sess.ListPage++
		return p.renderThreadsPage(sess)
	case "N":
		sess.State = session.ComposeNewTitle
		return "[BBS] New thread title (\u226432):\n", nil
	}
	if idx, ok := parsePick(upper); ok {
		msgs, err := p.deps.Store.GetMessages(sess.CurrentTopic, 200)
		if err != nil {
			return "", err
		}
		page, _ := frame.Paginate(msgs, sess.ListPage)
		if idx < 1 || idx > len(page) {
			return "Invalid selection.\n", nil
		}
		sess.CurrentThreadID = page[idx-1].ID
		sess.PostIndex = 1
		sess.State = session.ThreadRead
		return p.renderThreadRead(sess)
	}
	return "Unrecognized. H for help.\n", nil
}

func (p *Processor) renderThreadRead(sess *session.Session) (string, error) {
	msgs, err := p.deps.Store.GetMessages(sess.CurrentTopic, 200)
	if err != nil {
		return "", err
	}
	for _, m := range msgs {
		if m.ID == sess.CurrentThreadID {
			var b strings.Builder
			fmt.Fprintf(&b, "%s | %s\n%s\n", m.Author, m.Timestamp.Format("01/02 15:04"), m.Content)
			for _, r := range m.Replies {
				fmt.Fprintf(&b, "  > %s: %s\n", r.Author, r.Content)
			}
			b.WriteString("---\nB back, Y reply, D delete, X exit\n")
			return b.String(), nil
		}
	}
	sess.State = session.Threads
	return p.renderThreadsPage(sess)
}

func (p *Processor) handleThreadRead(sess *session.Session, raw string) (string, error) {
	upper := strings.ToUpper(strings.TrimSpace(raw))
	switch upper {
	case "B":
		sess.State = session.Threads
		return p.renderThreadsPage(sess)
	case "H", "HELP", "?":
		return "Thread: B back, Y reply, D delete, X exit\n", nil
	case "Y":
		sess.State = session.ComposeReply
		return "[BBS] Reply text (single message):\n", nil
	case "D":
		if sess.UserLevel < bbs.LevelModerator {
			return "Permission denied.\n", nil
		}
		sess.State = session.ConfirmDelete
		return "Delete this thread? Y/N\n", nil
	case "X":
		sess.Logout(p.deps.Logger)
		return "Goodbye! 73s\n", nil
	}
	return "Unrecognized. H for help.\n", nil
}

func parsePick(s string) (int, bool) {
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 || n > 9 {
		return 0, false
	}
	return n, true
}
