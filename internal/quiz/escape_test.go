package quiz

import "testing"

func TestEscapeHTML(t *testing.T) {
	got := EscapeHTML(`<a href="x">Tom & Jerry's</a>`)
	want := "&lt;a href=&quot;x&quot;&gt;Tom &amp; Jerry&#39;s&lt;/a&gt;"
	if got != want {
		t.Fatalf("EscapeHTML = %q, want %q", got, want)
	}
}

func TestEscapeTerminal(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "plain text untouched", input: "2 < 3 & 'ok'", want: "2 < 3 & 'ok'"},
		{name: "ansi escape stripped", input: "\x1b[2Jhello\x1b[0m", want: "[2Jhello[0m"},
		{name: "newlines flattened", input: "line1\nline2\tend", want: "line1 line2 end"},
		{name: "bell removed", input: "ding\a", want: "ding"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := EscapeTerminal(tc.input); got != tc.want {
				t.Fatalf("EscapeTerminal(%q) = %q, want %q", tc.input, got, tc.want)
			}
		})
	}
}
