package utils

import "testing"

func TestExtractMeetingID(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "Meeting URL",
			input:    "https://tldv.io/app/meetings/64f1c2e9a1b2c3d4e5f60718",
			expected: "64f1c2e9a1b2c3d4e5f60718",
		},
		{
			name:     "Trailing slash",
			input:    "https://tldv.io/app/meetings/abc123/",
			expected: "abc123",
		},
		{
			name:     "Query parameters are ignored",
			input:    "https://tldv.io/app/meetings/abc123?tab=transcript",
			expected: "abc123",
		},
		{
			name:     "Bare ID",
			input:    "abc123",
			expected: "abc123",
		},
		{
			name:     "Bare ID with whitespace",
			input:    "  abc123\n",
			expected: "abc123",
		},
		{
			name:     "URL without path",
			input:    "https://tldv.io",
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ExtractMeetingID(tt.input); got != tt.expected {
				t.Errorf("ExtractMeetingID(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestIsMeetingURL(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"https://tldv.io/app/meetings/abc123", true},
		{"https://app.tldv.io/app/meetings/abc123/", true},
		{"https://example.com/app/meetings/abc123", false},
		{"https://tldv.io/pricing", false},
		{"https://tldv.io/app/meetings/", false},
		{"abc123", false},
		{"", false},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := IsMeetingURL(tt.input); got != tt.want {
				t.Errorf("IsMeetingURL(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestSanitizeFilename(t *testing.T) {
	tests := []struct {
		input, want string
	}{
		{"Weekly Sync", "Weekly Sync"},
		{`Q3: Plan/Review "final"`, "Q3- Plan-Review -final-"},
		{`a<b>c|d?e*f\g`, "a-b-c-d-e-f-g"},
		{"Réunion équipe", "Réunion équipe"},
	}
	for _, tt := range tests {
		if got := SanitizeFilename(tt.input); got != tt.want {
			t.Errorf("SanitizeFilename(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}
