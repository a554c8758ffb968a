package session

import "github.com/smartyhall/meshbbs/pkg/frame"

const maxPromptTopicChars = 20

// BuildPrompt renders the prompt shown in front of every reply, varying
// by authentication state and current menu location:
//
//	unauthenticated:        "unauth>"
//	composing:              "post@<topic>>" or "post>" with no topic
//	browsing/reading:       "<user>@<topic>>" or "<user> (lvl<N>)>" with no topic
//	confirming a delete:    "confirm@<topic>>"
//	in a game:              "" — games render their own context line
//	anything else, logged in: "<user> (lvl<N>)>"
//	disconnected:           ""
func (s *Session) BuildPrompt() string {
	if !s.IsLoggedIn() {
		return "unauth>"
	}

	switch s.State {
	case PostingMessage, ComposeNewTitle, ComposeNewBody, ComposeReply:
		if s.CurrentTopic != "" {
			return "post@" + truncateTopic(s.CurrentTopic) + ">"
		}
		return "post>"

	case ReadingMessages, MessageTopics, Topics, Subtopics, Threads, ThreadRead:
		if s.CurrentTopic != "" {
			return s.DisplayName() + "@" + truncateTopic(s.CurrentTopic) + ">"
		}
		return s.levelPrompt()

	case ConfirmDelete:
		topic := s.CurrentTopic
		if topic == "" {
			topic = "bbs"
		}
		return "confirm@" + topic + ">"

	case TinyHack, TinyMush:
		return ""

	case Disconnected:
		return ""

	default:
		return s.levelPrompt()
	}
}

func (s *Session) levelPrompt() string {
	return s.DisplayName() + " (lvl" + itoa(s.UserLevel) + ")>"
}

func truncateTopic(topic string) string {
	return frame.TruncateEllipsis(topic, maxPromptTopicChars)
}

func itoa(n int) string {
	if n == 0 {
		return "0"
	}
	neg := n < 0
	if neg {
		n = -n
	}
	var buf [20]byte
	i := len(buf)
	for n > 0 {
		i--
		buf[i] = byte('0' + n%10)
		n /= 10
	}
	if neg {
		i--
		buf[i] = '-'
	}
	return string(buf[i:])
}
