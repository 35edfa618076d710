// Package extract reduces raw HTML to readable text and an ordered,
// noise-filtered link list.
package extract

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	nethtml "golang.org/x/net/html"
)

// Selectors tried in order when locating the main content root.
var mainContentSelectors = []string{
	"main",
	"article",
	"[role='main']",
	".main-content",
	"#main-content",
	".content",
	"#content",
}

var textSkipTags = map[string]bool{
	"script":   true,
	"style":    true,
	"noscript": true,
	"nav":      true,
	"header":   true,
	"footer":   true,
	"aside":    true,
}

type TextExtractor struct{}

func NewTextExtractor() *TextExtractor {
	return &TextExtractor{}
}

// Extract reduces raw HTML to a single cleaned text line. The document title,
// when present, is prepended as a "# Title" heading before whitespace
// collapsing. Extraction never fails; unparseable or empty input yields "".
func (e *TextExtractor) Extract(htmlSrc string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(htmlSrc))
	if err != nil {
		return ""
	}
	doc.Find("script, style, noscript").Remove()

	title := strings.TrimSpace(doc.Find("title").First().Text())
	content := extractMainContent(doc)

	var b strings.Builder
	if title != "" {
		b.WriteString("# ")
		b.WriteString(title)
		b.WriteString("\n\n")
	}
	b.WriteString(content)

	return collapseWhitespace(b.String())
}

func extractMainContent(doc *goquery.Document) string {
	for _, selector := range mainContentSelectors {
		if sel := doc.Find(selector).First(); sel.Length() > 0 {
			return textFromSelection(sel)
		}
	}
	if body := doc.Find("body").First(); body.Length() > 0 {
		return textFromSelection(body)
	}
	return textFromSelection(doc.Selection)
}

func textFromSelection(sel *goquery.Selection) string {
	var parts []string
	for _, node := range sel.Nodes {
		collectText(node, textSkipTags, &parts)
	}
	return strings.Join(parts, " ")
}

// collectText appends the trimmed, non-empty text nodes under n, pruning
// subtrees whose element tag is in skip.
func collectText(n *nethtml.Node, skip map[string]bool, parts *[]string) {
	if n.Type == nethtml.ElementNode && skip[strings.ToLower(n.Data)] {
		return
	}
	if n.Type == nethtml.TextNode {
		if text := strings.TrimSpace(n.Data); text != "" {
			*parts = append(*parts, text)
		}
		return
	}
	for child := n.FirstChild; child != nil; child = child.NextSibling {
		collectText(child, skip, parts)
	}
}

// collapseWhitespace reduces every whitespace run, tabs and newlines
// included, to a single space.
func collapseWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// Title returns the trimmed document <title>, or "" when absent.
func Title(htmlSrc string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(htmlSrc))
	if err != nil {
		return ""
	}
	return strings.TrimSpace(doc.Find("title").First().Text())
}
