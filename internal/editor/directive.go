package editor

import (
	"bufio"
	"bytes"
	"strings"
)

// Lines starting with these are search hits that do not select a colorscheme:
// plugin declarations, comments, function calls and line continuations.
var ignoredPrefixes = []string{"Plug", `"`, "call", `\`}

// LastDirective picks the active directive from line-search output.
// Each line is "location:content" where location is a path, a line number or
// "path:line"; lines without a colon are used whole. A line too long to scan
// is an error, since a later directive could be hidden behind it.
func LastDirective(output []byte) (string, bool, error) {
	var last string
	found := false

	scanner := bufio.NewScanner(bytes.NewReader(output))
	for scanner.Scan() {
		content := lineContent(scanner.Text())
		if content == "" || isIgnored(content) {
			continue
		}
		last = content
		found = true
	}
	if err := scanner.Err(); err != nil {
		return "", false, err
	}

	return last, found, nil
}

func lineContent(line string) string {
	line = strings.TrimRight(line, "\r")
	if _, content, ok := strings.Cut(line, ":"); ok {
		line = stripLineNumber(content)
	}
	return strings.TrimLeft(line, " \t")
}

// stripLineNumber removes a "<digits>:" prefix left over from "path:line:content".
func stripLineNumber(s string) string {
	i := 0
	for i < len(s) && s[i] >= '0' && s[i] <= '9' {
		i++
	}
	if i > 0 && i < len(s) && s[i] == ':' {
		return s[i+1:]
	}
	return s
}

func isIgnored(content string) bool {
	for _, prefix := range ignoredPrefixes {
		if strings.HasPrefix(content, prefix) {
			return true
		}
	}
	return false
}
