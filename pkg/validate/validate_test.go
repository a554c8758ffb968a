package validate

import "testing"

func TestSysopValidation(t *testing.T) {
	cases := []struct {
		name    string
		wantErr bool
	}{
		{"martin", false},
		{"admin123", false},
		{"sysop", false},
		{"SYSOP", false},
		{"Al Sayeed", true},
		{"admin", true},
		{"system", true},
	}
	for _, c := range cases {
		_, err := ValidateSysopName(c.name)
		if (err != nil) != c.wantErr {
			t.Errorf("ValidateSysopName(%q) err=%v, wantErr=%v", c.name, err, c.wantErr)
		}
	}
}

func TestUserValidation(t *testing.T) {
	cases := []struct {
		name    string
		wantErr bool
	}{
		{"martin", false},
		{"Al Sayeed Bin Ramen", false},
		{"José María", false},
		{"../etc/passwd", true},
		{"user/file", true},
		{"admin", true},
		{"sysop", true},
		{"system", true},
	}
	for _, c := range cases {
		_, err := ValidateUserName(c.name)
		if (err != nil) != c.wantErr {
			t.Errorf("ValidateUserName(%q) err=%v, wantErr=%v", c.name, err, c.wantErr)
		}
	}
}

func TestSafeFilename(t *testing.T) {
	if got := SafeFilename("martin"); got != "martin" {
		t.Errorf("SafeFilename(martin) = %q", got)
	}
	if got := SafeFilename("Al Sayeed"); got != "Al%20Sayeed" {
		t.Errorf("SafeFilename(Al Sayeed) = %q", got)
	}
	if SafeFilename("../etc/passwd") == "../etc/passwd" {
		t.Error("SafeFilename must not pass through path separators")
	}
}

func TestTopicNameValidation(t *testing.T) {
	valid := []string{"general", "tech-support", "topic_1"}
	for _, v := range valid {
		if _, err := ValidateTopicName(v); err != nil {
			t.Errorf("ValidateTopicName(%q) unexpected error: %v", v, err)
		}
	}
	invalid := []string{"../etc", "topic/../other", "", "topic with spaces", "topic/subtopic", "con", "admin"}
	for _, v := range invalid {
		if _, err := ValidateTopicName(v); err == nil {
			t.Errorf("ValidateTopicName(%q) expected error", v)
		}
	}
}

func TestMessageIDValidation(t *testing.T) {
	if _, err := ValidateMessageID("550e8400-e29b-41d4-a716-446655440000"); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	invalid := []string{"../secret", "message.txt", "../../etc/passwd", "not-a-uuid"}
	for _, v := range invalid {
		if _, err := ValidateMessageID(v); err == nil {
			t.Errorf("ValidateMessageID(%q) expected error", v)
		}
	}
}

func TestSanitizeMessageContent(t *testing.T) {
	got, err := SanitizeMessageContent("Hello world!", 100)
	if err != nil || got != "Hello world!" {
		t.Fatalf("got %q err %v", got, err)
	}
	withWhitespace := "Line 1\nLine 2\tTabbed"
	got, err = SanitizeMessageContent(withWhitespace, 100)
	if err != nil || got != withWhitespace {
		t.Fatalf("got %q err %v", got, err)
	}
	got, err = SanitizeMessageContent("Hello\x00\x01\x02World", 100)
	if err != nil || got != "HelloWorld" {
		t.Fatalf("got %q err %v", got, err)
	}
	longContent := make([]byte, 1000)
	for i := range longContent {
		longContent[i] = 'a'
	}
	if _, err := SanitizeMessageContent(string(longContent), 100); err == nil {
		t.Error("expected error for over-length content")
	}
}

func TestSecurePathConstruction(t *testing.T) {
	dataDir := "/tmp/bbs_data"
	path, err := SecureMessagePath(dataDir, "general", "550e8400-e29b-41d4-a716-446655440000")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if want := "/tmp/bbs_data/messages/general/"; !contains(path, want) {
		t.Errorf("path %q missing %q", path, want)
	}
	if _, err := SecureMessagePath(dataDir, "../etc", "550e8400-e29b-41d4-a716-446655440000"); err == nil {
		t.Error("expected error for traversal topic")
	}
	if _, err := SecureMessagePath(dataDir, "general", "../secret"); err == nil {
		t.Error("expected error for traversal message id")
	}
}

func contains(haystack, needle string) bool {
	return len(haystack) >= len(needle) && indexOf(haystack, needle) >= 0
}

func indexOf(haystack, needle string) int {
	for i := 0; i+len(needle) <= len(haystack); i++ {
		if haystack[i:i+len(needle)] == needle {
			return i
		}
	}
	return -1
}
