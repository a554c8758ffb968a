package command

import (
	"fmt"
	"strings"

	"github.com/smartyhall/meshbbs/pkg/session"
	"github.com/smartyhall/meshbbs/pkg/validate"
)

// The Legacy* handlers implement the original single-shot message flow
// (MessageTopics/ReadingMessages/PostingMessage) kept alongside the
// newer paginated Topics/Subtopics/Threads/ThreadRead flow: both are
// full session.State members, and a collaborator may route a session
// into either depending on client capability (a minimal client can ask
// for the simpler one-shot flow).

func (p *Processor) handleLegacyMessageTopics(sess *session.Session, raw string) (string, error) {
	cmd := strings.ToUpper(strings.TrimSpace(raw))
	switch cmd {
	case "R", "READ":
		sess.State = session.ReadingMessages
		return "Enter topic name:\n", nil
	case "P", "POST":
		sess.State = session.PostingMessage
		return "Enter topic name:\n", nil
	case "L", "LIST":
		topics, err := p.deps.Store.ListMessageTopics()
		if err != nil {
			return "", err
		}
		return "Topics:\n" + strings.Join(topics, "\n") + "\n", nil
	case "B", "BACK":
		sess.State = session.MainMenu
		return mainMenuText, nil
	default:
		return "Message Topics:\n[R]ead [P]ost [L]ist [B]ack\n", nil
	}
}

func (p *Processor) handleLegacyReadingMessages(sess *session.Session, raw string) (string, error) {
	topic, err := validate.ValidateTopicName(raw)
	if err != nil {
		return "Invalid topic name. Topic names must contain only letters, numbers, underscore, and hyphen.\n", nil
	}
	msgs, err := p.deps.Store.GetMessages(topic, 10)
	if err != nil {
		return "", err
	}
	var b strings.Builder
	fmt.Fprintf(&b, "Messages in %s:\n", topic)
	for _, m := range msgs {
		fmt.Fprintf(&b, "%s | %s\n%s\n---\n", m.Author, m.Timestamp.Format("01/02 15:04"), m.Content)
	}
	sess.State = session.MessageTopics
	return b.String(), nil
}

func (p *Processor) handleLegacyPostingMessage(sess *session.Session, raw string) (string, error) {
	if sess.CurrentTopic == "" {
		topic, err := validate.ValidateTopicName(raw)
		if err != nil {
			return "Invalid topic name.\n", nil
		}
		sess.CurrentTopic = topic
		return "Enter message text:\n", nil
	}

	sanitized, err := validate.SanitizeMessageContent(raw, 10000)
	if err != nil {
		return "Message content contains invalid characters or exceeds size limit.\n", nil
	}
	_, postErr := p.deps.Store.StoreMessage(sess.CurrentTopic, sess.DisplayName(), "", sanitized, sess.UserLevel)
	topic := sess.CurrentTopic
	sess.CurrentTopic = ""
	sess.State = session.MessageTopics
	if postErr != nil {
		return "Post failed: " + postErr.Error() + "\n", nil
	}
	return fmt.Sprintf("Posted to %s.\n", topic), nil
}
