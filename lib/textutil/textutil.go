// Package textutil holds the text cleanup primitives shared by the
// calendar, claim and coupon extractors. The upstream service emits
// markdown-ish text whose newlines arrive escaped once or twice
// depending on how many serialization layers it passed through, so
// every extractor runs its input through Normalize before matching
// any structure.
package textutil

import (
	"regexp"
	"strings"
)

var blankLinesRegex = regexp.MustCompile(`\n(?:[ \t\r]*\n)+`)
var whitespaceRunRegex = regexp.MustCompile(`\s+`)

// imageCaptionLabels are presentation-only markers that leak out of the
// upstream text and should never reach a rendered title or description.
var imageCaptionLabels = []string{
	"**活动图片介绍**：",
	"**活动图片介绍**:",
}

// Normalize resolves escaped newlines and collapses blank-line runs so
// the structural patterns can match against real line breaks. The
// escape replacement runs in two passes: the first rewrites
// double-escaped newlines to single-escaped ones, the second rewrites
// those to actual newlines. Normalize is idempotent.
func Normalize(raw string) string {
	if raw == "" {
		return ""
	}
	raw = strings.ReplaceAll(raw, `\\n`, `\n`)
	raw = strings.ReplaceAll(raw, `\n`, "\n")
	raw = blankLinesRegex.ReplaceAllString(raw, "\n")
	return strings.TrimSpace(raw)
}

// CleanDisplay flattens text for rendering: escapes and newlines become
// single spaces and known caption labels are stripped. Not suitable
// before structural matching since it erases the line breaks the
// extractors split on.
func CleanDisplay(raw string) string {
	if raw == "" {
		return ""
	}
	raw = strings.ReplaceAll(raw, `\\n`, " ")
	raw = strings.ReplaceAll(raw, `\n`, " ")
	raw = strings.ReplaceAll(raw, `\\`, "")
	raw = strings.ReplaceAll(raw, `\ `, " ")
	for _, label := range imageCaptionLabels {
		raw = strings.ReplaceAll(raw, label, "")
	}
	raw = whitespaceRunRegex.ReplaceAllString(raw, " ")
	return strings.TrimSpace(raw)
}

// EscapeHTML escapes the four characters the report page cares about.
// Ampersand goes first so entities produced by the later replacements
// survive.
func EscapeHTML(raw string) string {
	if raw == "" {
		return ""
	}
	raw = strings.ReplaceAll(raw, "&", "&amp;")
	raw = strings.ReplaceAll(raw, "<", "&lt;")
	raw = strings.ReplaceAll(raw, ">", "&gt;")
	raw = strings.ReplaceAll(raw, `"`, "&quot;")
	return raw
}

// TruncateRunes shortens s to at most n runes, appending an ellipsis
// marker when anything was cut. Rune counting matters here: the source
// text is CJK and byte truncation would split characters.
func TruncateRunes(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n]) + "..."
}
