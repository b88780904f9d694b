package main

import (
	"os/exec"
	"runtime"
	"strings"

	"github.com/atotto/clipboard"
)

// Swapped out in tests.
var (
	readClipboard  = readClipboardText
	writeClipboard = clipboard.WriteAll
)

func readClipboardText() (string, error) {
	if runtime.GOOS == "darwin" {
		if output, err := exec.Command("pbpaste", "-Prefer", "txt").Output(); err == nil {
			return string(output), nil
		}
	}
	return clipboard.ReadAll()
}

func isRTF(text string) bool {
	return strings.HasPrefix(text, "{\\rtf") || strings.Contains(text, "\\rtf1")
}

func isHTML(text string) bool {
	return strings.HasPrefix(strings.TrimSpace(text), "<") &&
		(strings.Contains(text, "<html") || strings.Contains(text, "<body") || strings.Contains(text, "<div") || strings.Contains(text, "<pre"))
}

// cleanClipboardText reduces rich clipboard payloads to plain lines.
func cleanClipboardText(text string) string {
	if text == "" {
		return text
	}
	switch {
	case isRTF(text):
		text = stripRTF(text)
	case isHTML(text):
		text = extractTextFromHTML(text)
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

func extractTextFromHTML(html string) string {
	html = strings.NewReplacer("<br>", "\n", "<br/>", "\n", "<br />", "\n", "</div>", "\n", "</p>", "\n").Replace(html)

	var result strings.Builder
	result.Grow(len(html))
	inTag := false
	for _, r := range html {
		if r == '<' {
			inTag = true
			continue
		}
		if r == '>' {
			inTag = false
			continue
		}
		if !inTag {
			result.WriteRune(r)
		}
	}
	return strings.NewReplacer(
		"&lt;", "<",
		"&gt;", ">",
		"&amp;", "&",
		"&quot;", "\"",
		"&#39;", "'",
		"&nbsp;", " ",
	).Replace(result.String())
}

// stripRTF drops control words and groups, keeping the text and \par breaks.
func stripRTF(text string) string {
	var result strings.Builder
	result.Grow(len(text))
	runes := []rune(text)
	for i := 0; i < len(runes); i++ {
		r := runes[i]
		if r == '{' || r == '}' {
			continue
		}
		if r != '\\' {
			result.WriteRune(r)
			continue
		}
		if i+1 >= len(runes) {
			break
		}
		next := runes[i+1]
		if next == '\\' || next == '{' || next == '}' {
			result.WriteRune(next)
			i++
			continue
		}
		if next == '\n' || next == '\r' {
			result.WriteRune('\n')
			i++
			continue
		}
		if !isASCIILetter(next) {
			i++
			continue
		}

		// Control word: letters, optional signed number, optional space.
		start := i + 1
		i++
		for i+1 < len(runes) && isASCIILetter(runes[i+1]) {
			i++
		}
		word := string(runes[start : i+1])
		for i+1 < len(runes) && (runes[i+1] == '-' || (runes[i+1] >= '0' && runes[i+1] <= '9')) {
			i++
		}
		if i+1 < len(runes) && runes[i+1] == ' ' {
			i++
		}
		switch word {
		case "par", "line":
			result.WriteRune('\n')
		case "tab":
			result.WriteRune('\t')
		}
	}
	return result.String()
}

func isASCIILetter(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}
