package extract

import (
	"fmt"
	"net/url"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
)

const (
	minLinkTextLen = 2
	maxURLLen      = 200
	maxLinkTextLen = 100

	noTextSentinel = "<no-text>"
)

// Link is one outbound page link. Ordinals are contiguous 1..k after
// deduplication and match the numbers shown to the user.
type Link struct {
	Text    string
	URL     string
	Ordinal int
}

var linkTextSkipTags = map[string]bool{
	"img":    true,
	"source": true,
	"video":  true,
	"audio":  true,
	"script": true,
	"style":  true,
}

var imageExtensions = []string{
	".jpg", ".jpeg", ".png", ".gif", ".svg", ".webp", ".bmp", ".ico",
}

// Navigation, legal and social boilerplate. Matched as case-insensitive
// substrings against short link texts.
var noisePhrases = []string{
	"skip to",
	"skip navigation",
	"accessibility",
	"terms of service",
	"privacy policy",
	"cookie policy",
	"subscribe",
	"newsletter",
	"rss",
	"atom",
	"print",
	"share",
	"tweet",
	"facebook",
	"linkedin",
	"advertisement",
	"sponsored",
	"ad",
	"ads",
	"close",
	"×",
	"✕",
	"menu",
	"toggle",
}

type LinkExtractor struct{}

func NewLinkExtractor() *LinkExtractor {
	return &LinkExtractor{}
}

// Extract resolves, filters and deduplicates the anchors of htmlSrc against
// baseURL. Duplicate detection is by resolved absolute URL and keeps the
// first occurrence in document order; a URL consumes its slot even when the
// anchor is later rejected as noise.
func (e *LinkExtractor) Extract(htmlSrc, baseURL string) ([]Link, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(htmlSrc))
	if err != nil {
		return nil, fmt.Errorf("parse document: %w", err)
	}
	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse base url %q: %w", baseURL, err)
	}

	seen := make(map[string]struct{})
	var links []Link
	ordinal := 1

	doc.Find("a[href]").Each(func(_ int, sel *goquery.Selection) {
		href, ok := sel.Attr("href")
		if !ok {
			return
		}
		resolved, err := base.Parse(href)
		if err != nil {
			return
		}
		if resolved.Scheme != "http" && resolved.Scheme != "https" {
			return
		}

		urlStr := resolved.String()
		if _, dup := seen[urlStr]; dup {
			return
		}
		seen[urlStr] = struct{}{}
		if len(urlStr) > maxURLLen {
			return
		}

		text := linkText(sel)
		if utf8.RuneCountInString(text) < minLinkTextLen || isNoiseLink(text, urlStr) {
			return
		}

		links = append(links, Link{
			Text:    cleanLinkText(text),
			URL:     urlStr,
			Ordinal: ordinal,
		})
		ordinal++
	})

	return links, nil
}

// linkText computes the display text for an anchor: visible descendant text,
// then the title attribute, then aria-label, then an image alt rendered as
// "[Image: alt]", then the no-text sentinel.
func linkText(sel *goquery.Selection) string {
	var parts []string
	for _, node := range sel.Nodes {
		collectText(node, linkTextSkipTags, &parts)
	}
	visible := parts[:0]
	for _, part := range parts {
		if !strings.HasPrefix(part, "<") {
			visible = append(visible, part)
		}
	}

	combined := strings.TrimSpace(strings.Join(visible, " "))
	if utf8.RuneCountInString(combined) > 1 {
		return combined
	}

	for _, attr := range []string{"title", "aria-label"} {
		if value := strings.TrimSpace(sel.AttrOr(attr, "")); value != "" && !strings.HasPrefix(value, "<") {
			return value
		}
	}

	if alt := strings.TrimSpace(sel.Find("img").AttrOr("alt", "")); utf8.RuneCountInString(alt) > minLinkTextLen {
		return fmt.Sprintf("[Image: %s]", alt)
	}

	return noTextSentinel
}

func isNoiseLink(text, urlStr string) bool {
	trimmed := strings.TrimSpace(text)
	if text == noTextSentinel || strings.HasPrefix(trimmed, "<") || utf8.RuneCountInString(trimmed) < minLinkTextLen {
		return true
	}

	if runes := []rune(text); len(runes) == 1 && !unicode.IsLetter(runes[0]) && !unicode.IsDigit(runes[0]) {
		return true
	}

	if isNoiseURL(strings.ToLower(urlStr)) {
		return true
	}

	// Boilerplate phrases only disqualify short texts; long texts that merely
	// mention them are real content.
	if utf8.RuneCountInString(text) < 20 {
		return containsNoisePhrase(strings.ToLower(text))
	}
	return false
}

func isNoiseURL(urlLower string) bool {
	for _, ext := range imageExtensions {
		if strings.HasSuffix(urlLower, ext) {
			return true
		}
	}
	if strings.HasPrefix(urlLower, "data:") || strings.HasPrefix(urlLower, "javascript:") {
		return true
	}
	// Same-page fragment without a host.
	return strings.Contains(urlLower, "#") && !strings.Contains(urlLower, "http")
}

func containsNoisePhrase(textLower string) bool {
	for _, phrase := range noisePhrases {
		if strings.Contains(textLower, phrase) {
			return true
		}
	}
	return false
}

// cleanLinkText truncates to the display limit and collapses embedded
// newlines to single spaces.
func cleanLinkText(text string) string {
	runes := []rune(strings.TrimSpace(text))
	if len(runes) > maxLinkTextLen {
		runes = runes[:maxLinkTextLen]
	}

	var parts []string
	for _, line := range strings.Split(string(runes), "\n") {
		if line = strings.TrimSpace(line); line != "" {
			parts = append(parts, line)
		}
	}
	return strings.Join(parts, " ")
}
