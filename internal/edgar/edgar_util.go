package edgar

import (
	stdhtml "html"
	"regexp"
	"strings"

	"golang.org/x/net/html"
)

var whitespaceRe = regexp.MustCompile(`[\n\t\r\s\xA0]+`)

// summaryText flattens an entry's HTML-encoded summary to plain text. The
// feed double-encodes the markup, so the fragment is unescaped before the
// tags are stripped.
func summaryText(raw string) string {
	if raw == "" {
		return ""
	}

	unescaped := stdhtml.UnescapeString(raw)

	doc, err := html.Parse(strings.NewReader(unescaped))
	if err != nil {
		return strings.TrimSpace(whitespaceRe.ReplaceAllString(unescaped, " "))
	}

	text := extractText(doc)
	return strings.TrimSpace(whitespaceRe.ReplaceAllString(text, " "))
}

func extractText(n *html.Node) string {
	var extract func(*html.Node) string

	extract = func(n *html.Node) string {
		if n.Type == html.TextNode {
			return n.Data
		}
		var sb strings.Builder
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			sb.WriteString(extract(c))
		}
		return sb.String()
	}

	return extract(n)
}

func getSnippet(fullText string, keyword string) string {
	const contextSize = 50

	lowerText := strings.ToLower(fullText)
	lowerKeyword := strings.ToLower(keyword)

	index := strings.Index(lowerText, lowerKeyword)
	if index == -1 {
		return ""
	}

	start := index - contextSize
	if start < 0 {
		start = 0
	}

	end := index + len(lowerKeyword) + contextSize
	if end > len(fullText) {
		end = len(fullText)
	}

	snippet := fullText[start:end]

	if start > 0 {
		snippet = "... " + snippet
	}
	if end < len(fullText) {
		snippet = snippet + " ..."
	}

	return strings.ReplaceAll(snippet, "\n", " ")
}
