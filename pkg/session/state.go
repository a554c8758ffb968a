package session

// State is a single node within the session's menu/interaction state
// machine. Every value here corresponds to a distinct prompt and a
// distinct set of commands pkg/command will accept.
type State int

const (
	Connected State = iota
	LoggingIn
	MainMenu
	MessageTopics
	ReadingMessages
	PostingMessage
	Topics           // topics root list
	Subtopics        // subtopics under CurrentTopic as parent
	Threads          // threads (messages) list within CurrentTopic
	ThreadRead       // reading a single thread/post slice
	ComposeNewTitle  // two-step compose, step 1
	ComposeNewBody   // two-step compose, step 2
	ComposeReply     // reply compose to the current thread
	ConfirmDelete    // confirm delete of a selected entity
	UserMenu
	UserChangePassCurrent
	UserChangePassNew
	UserSetPassNew
	TinyHack // single-player mini-game loop
	TinyMush // shared multi-user world
	Disconnected
)

func (s State) String() string {
	switch s {
	case Connected:
		return "Connected"
	case LoggingIn:
		return "LoggingIn"
	case MainMenu:
		return "MainMenu"
	case MessageTopics:
		return "MessageTopics"
	case ReadingMessages:
		return "ReadingMessages"
	case PostingMessage:
		return "PostingMessage"
	case Topics:
		return "Topics"
	case Subtopics:
		return "Subtopics"
	case Threads:
		return "Threads"
	case ThreadRead:
		return "ThreadRead"
	case ComposeNewTitle:
		return "ComposeNewTitle"
	case ComposeNewBody:
		return "ComposeNewBody"
	case ComposeReply:
		return "ComposeReply"
	case ConfirmDelete:
		return "ConfirmDelete"
	case UserMenu:
		return "UserMenu"
	case UserChangePassCurrent:
		return "UserChangePassCurrent"
	case UserChangePassNew:
		return "UserChangePassNew"
	case UserSetPassNew:
		return "UserSetPassNew"
	case TinyHack:
		return "TinyHack"
	case TinyMush:
		return "TinyMush"
	case Disconnected:
		return "Disconnected"
	default:
		return "Unknown"
	}
}

// inlineShortcutSafeStates are the states where a bare single-letter
// shortcut (N/R/B/Q/…) is accepted without colliding with free-text
// input the state is otherwise expecting. Every other state —
// ComposeNewTitle, ComposeNewBody, ComposeReply, ConfirmDelete,
// UserChangePassCurrent, UserChangePassNew, UserSetPassNew, LoggingIn,
// and the game states — always treats input as data, never as a
// shortcut.
var inlineShortcutSafeStates = map[State]bool{
	MainMenu:      true,
	MessageTopics: true,
	Topics:        true,
	Subtopics:     true,
	Threads:       true,
	ThreadRead:    true,
	UserMenu:      true,
}

// InlineShortcutSafe reports whether s accepts bare navigation
// shortcuts (N/P/R/B/Q and similar) alongside full commands.
func InlineShortcutSafe(s State) bool {
	return inlineShortcutSafeStates[s]
}
