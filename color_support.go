package jot

import (
	"os"
	"strings"
)

// DetectColorSupport reports whether the environment likely renders ANSI
// colors. NO_COLOR always wins; CLICOLOR_FORCE forces colors on.
func DetectColorSupport() bool {
	return detectColorSupport(os.Getenv)
}

func detectColorSupport(getenv func(string) string) bool {
	if getenv("NO_COLOR") != "" {
		return false
	}
	if v := getenv("CLICOLOR_FORCE"); v != "" && v != "0" {
		return true
	}
	if getenv("CLICOLOR") == "0" {
		return false
	}
	switch strings.ToLower(getenv("COLORTERM")) {
	case "truecolor", "24bit":
		return true
	}
	if getenv("WT_SESSION") != "" {
		return true
	}
	switch getenv("TERM_PROGRAM") {
	case "iTerm.app", "WezTerm", "vscode", "Apple_Terminal":
		return true
	}
	term := strings.ToLower(getenv("TERM"))
	if term == "" || term == "dumb" {
		return false
	}
	return true
}
