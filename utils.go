package main

import (
	"os/exec"
	"runtime"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"
)

func readClipboardText() (string, error) {
	if runtime.GOOS == "darwin" {
		if output, err := exec.Command("pbpaste", "-Prefer", "txt").Output(); err == nil {
			return string(output), nil
		}
	}
	return clipboard.ReadAll()
}

// writeClipboardText is best effort; callers only report failures.
func writeClipboardText(text string) error {
	return clipboard.WriteAll(text)
}

// htmlEntities covers what rich-text editors put in copied code.
var htmlEntities = strings.NewReplacer(
	"&lt;", "<",
	"&gt;", ">",
	"&quot;", "\"",
	"&#39;", "'",
	"&nbsp;", " ",
	"&amp;", "&",
)

func isHTML(text string) bool {
	trimmed := strings.TrimSpace(text)
	if !strings.HasPrefix(trimmed, "<") {
		return false
	}
	for _, tag := range []string{"<html", "<body", "<div", "<pre", "<span"} {
		if strings.Contains(trimmed, tag) {
			return true
		}
	}
	return false
}

// stripTags drops markup, keeping text and turning block ends into newlines.
func stripTags(markup string) string {
	var b strings.Builder
	b.Grow(len(markup))
	for len(markup) > 0 {
		open := strings.IndexByte(markup, '<')
		if open < 0 {
			b.WriteString(markup)
			break
		}
		b.WriteString(markup[:open])
		end := strings.IndexByte(markup[open:], '>')
		if end < 0 {
			break
		}
		tag := strings.ToLower(markup[open : open+end+1])
		if strings.HasPrefix(tag, "<br") || strings.HasPrefix(tag, "</div") || strings.HasPrefix(tag, "</p") {
			b.WriteByte('\n')
		}
		markup = markup[open+end+1:]
	}
	return htmlEntities.Replace(b.String())
}

// cleanClipboardText turns pasted content into plain code lines.
func cleanClipboardText(text string) string {
	if text == "" {
		return text
	}
	if isHTML(text) {
		text = stripTags(text)
	}
	var result strings.Builder
	result.Grow(len(text))
	for _, r := range text {
		if r == '\n' || r == '\r' || r == '\t' || r >= 32 {
			result.WriteRune(r)
		}
	}
	normalized := result.String()
	normalized = strings.ReplaceAll(normalized, "\r\n", "\n")
	normalized = strings.ReplaceAll(normalized, "\r", "\n")
	return normalized
}

func (m *model) setError(msg string) tea.Cmd {
	m.errorMessage = msg
	m.successMessage = ""
	return m.expireMessage()
}

func (m *model) setSuccess(msg string) tea.Cmd {
	m.successMessage = msg
	m.errorMessage = ""
	return m.expireMessage()
}

func (m *model) expireMessage() tea.Cmd {
	m.messageSeq++
	seq := m.messageSeq
	return tea.Tick(messageTTL, func(time.Time) tea.Msg {
		return clearMessageMsg{seq: seq}
	})
}
