// Package sanitize turns database text that may carry HTML markup and stray
// control bytes into plain strings a spreadsheet cell can hold.
package sanitize

import (
	"regexp"
	"strconv"
	"strings"

	"golang.org/x/net/html"
)

// tagPattern is a naive markup matcher: no nesting, no attribute awareness.
// A '<' without a closing '>' never matches and is kept.
var tagPattern = regexp.MustCompile(`<[^>]+>`)

// charRef matches numeric character references, with or without the semicolon.
var charRef = regexp.MustCompile(`&#(?:[xX]([0-9a-fA-F]+)|([0-9]+));?`)

var lineBreaks = strings.NewReplacer("\r", " ", "\n", " ")

// Cell sanitizes v when it is textual and returns every other value unchanged.
func Cell(v any) any {
	switch s := v.(type) {
	case string:
		return Text(s)
	case []byte:
		return Text(string(s))
	default:
		return v
	}
}

// Text decodes entities, strips tags, flattens line breaks, then drops control
// characters other than tab, LF and CR. The order matters: entities may decode
// into markup or line breaks that the later steps must see.
func Text(s string) string {
	s = unescape(s)
	s = tagPattern.ReplaceAllString(s, "")
	s = lineBreaks.Replace(s)
	return stripControl(s)
}

// unescape decodes entities. Numeric references to code points that decode
// to nothing (C0/C1 controls without a cp1252 mapping, DEL, noncharacters)
// are removed, and the text on either side is decoded separately so the
// removal cannot join fragments into a new entity.
func unescape(s string) string {
	if !strings.Contains(s, "&#") {
		return html.UnescapeString(s)
	}
	var b strings.Builder
	last := 0
	for _, loc := range charRef.FindAllStringSubmatchIndex(s, -1) {
		digits, base := "", 10
		if loc[2] >= 0 {
			digits, base = s[loc[2]:loc[3]], 16
		} else {
			digits = s[loc[4]:loc[5]]
		}
		n, err := strconv.ParseUint(digits, base, 32)
		if err != nil || !isInvalidCodePoint(n) {
			continue
		}
		b.WriteString(html.UnescapeString(s[last:loc[0]]))
		last = loc[1]
	}
	b.WriteString(html.UnescapeString(s[last:]))
	return b.String()
}

func isInvalidCodePoint(n uint64) bool {
	switch {
	case n >= 0x01 && n <= 0x08, n == 0x0b, n >= 0x0e && n <= 0x1f:
		return true
	case n == 0x7f, n == 0x81, n == 0x8d, n == 0x8f, n == 0x90, n == 0x9d:
		return true
	case n >= 0xfdd0 && n <= 0xfdef:
		return true
	case n <= 0x10ffff && n&0xfffe == 0xfffe:
		return true
	}
	return false
}

func stripControl(s string) string {
	clean := true
	for _, r := range s {
		if isDropped(r) {
			clean = false
			break
		}
	}
	if clean {
		return s
	}

	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if !isDropped(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func isDropped(r rune) bool {
	return r < 0x20 && r != '\t' && r != '\n' && r != '\r'
}
