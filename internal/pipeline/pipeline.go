// Package pipeline runs the staged content flow for one navigation:
// fetch, extract text, extract title and links, summarize.
package pipeline

import (
	"context"
	"fmt"
	"strings"

	"skim/internal/extract"
)

const (
	// Placeholder summary when a page yields no readable text.
	noContentSummary = "No content found on this page."

	rawTextExcerptLen = 1000
)

// Fetcher retrieves the raw HTML of a page.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (string, error)
}

// Summarizer turns extracted page text into a markdown summary.
type Summarizer interface {
	Summarize(ctx context.Context, text, url string) (string, error)
}

// ProgressFunc receives one informational event per stage. Implementations
// must not block the pipeline on it.
type ProgressFunc func(percent int, stage string)

// PageContent is the pipeline's success output.
type PageContent struct {
	Title   string
	Summary string
	Links   []extract.Link
}

type Pipeline struct {
	fetcher    Fetcher
	summarizer Summarizer
	text       *extract.TextExtractor
	links      *extract.LinkExtractor
}

func New(fetcher Fetcher, summarizer Summarizer) *Pipeline {
	return &Pipeline{
		fetcher:    fetcher,
		summarizer: summarizer,
		text:       extract.NewTextExtractor(),
		links:      extract.NewLinkExtractor(),
	}
}

// Load runs all stages for url. Only the fetch stage can fail; a summarizer
// failure is recovered into a fallback summary carrying the raw text excerpt.
func (p *Pipeline) Load(ctx context.Context, url string, report ProgressFunc) (PageContent, error) {
	if report == nil {
		report = func(int, string) {}
	}

	report(25, "Fetching HTML content...")
	html, err := p.fetcher.Fetch(ctx, url)
	if err != nil {
		return PageContent{}, err
	}

	report(50, "Extracting text content...")
	text := p.text.Extract(html)

	report(75, "Processing page structure...")
	title := extract.Title(html)
	if title == "" {
		title = "Untitled"
	}
	links, err := p.links.Extract(html, url)
	if err != nil {
		// The URL was already normalized before fetching, so a base-URL parse
		// failure here means a programming error upstream.
		return PageContent{}, fmt.Errorf("extract links: %w", err)
	}

	report(90, "Generating AI summary...")
	summary := p.summarize(ctx, text, url)

	report(100, "Complete!")
	return PageContent{Title: title, Summary: summary, Links: links}, nil
}

func (p *Pipeline) summarize(ctx context.Context, text, url string) string {
	if strings.TrimSpace(text) == "" {
		return noContentSummary
	}

	summary, err := p.summarizer.Summarize(ctx, text, url)
	if err != nil {
		excerpt := []rune(text)
		if len(excerpt) > rawTextExcerptLen {
			excerpt = excerpt[:rawTextExcerptLen]
		}
		return fmt.Sprintf("Failed to generate summary: %v\n\nRaw text:\n%s", err, string(excerpt))
	}
	return summary
}
