package render

import (
	"html"
	"regexp"
	"strings"
)

// Conversion rules for HTML problem statements: keep emphasis as lightweight
// markers, keep code blocks monospace, drop everything else.
var (
	reStrong   = regexp.MustCompile(`(?s)<(?:strong|b)>(.*?)</(?:strong|b)>`)
	reEmphasis = regexp.MustCompile(`(?s)<(?:em|i)>(.*?)</(?:em|i)>`)
	rePre      = regexp.MustCompile(`(?s)<pre>(.*?)</pre>`)
	reCode     = regexp.MustCompile(`(?s)<code>(.*?)</code>`)
	reTag      = regexp.MustCompile(`<[^>]+>`)
	reNewlines = regexp.MustCompile(`\n{3,}`)
)

// HTMLToText converts an HTML problem statement to display-ready plain text.
func HTMLToText(s string) string {
	s = reStrong.ReplaceAllString(s, "*$1*")
	s = reEmphasis.ReplaceAllString(s, "_$1_")
	s = rePre.ReplaceAllStringFunc(s, func(m string) string {
		inner := rePre.FindStringSubmatch(m)[1]
		return "```\n" + strings.TrimSpace(inner) + "\n```"
	})
	s = reCode.ReplaceAllString(s, "`$1`")
	s = reTag.ReplaceAllString(s, "")
	s = html.UnescapeString(s)
	s = reNewlines.ReplaceAllString(s, "\n\n")
	return strings.TrimSpace(s)
}
