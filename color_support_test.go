package jot

import "testing"

func TestDetectColorSupport(t *testing.T) {
	cases := []struct {
		name string
		env  map[string]string
		want bool
	}{
		{"empty", nil, false},
		{"dumb", map[string]string{"TERM": "dumb"}, false},
		{"xterm", map[string]string{"TERM": "xterm-256color"}, true},
		{"no color wins", map[string]string{"TERM": "xterm", "NO_COLOR": "1", "CLICOLOR_FORCE": "1"}, false},
		{"forced", map[string]string{"TERM": "dumb", "CLICOLOR_FORCE": "1"}, true},
		{"clicolor off", map[string]string{"TERM": "xterm", "CLICOLOR": "0"}, false},
		{"truecolor", map[string]string{"COLORTERM": "truecolor"}, true},
		{"windows terminal", map[string]string{"WT_SESSION": "abc"}, true},
	}
	for _, tc := range cases {
		got := detectColorSupport(func(key string) string { return tc.env[key] })
		if got != tc.want {
			t.Fatalf("%s: got %v want %v", tc.name, got, tc.want)
		}
	}
}
