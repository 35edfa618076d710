package browser

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

// URLSyntaxError reports input that cannot be turned into a fetchable URL.
// It is raised during normalization, before any network call.
type URLSyntaxError struct {
	Input string
	Err   error
}

func (e *URLSyntaxError) Error() string {
	return fmt.Sprintf("invalid URL %q: %v", e.Input, e.Err)
}

func (e *URLSyntaxError) Unwrap() error { return e.Err }

// NormalizeURL trims the input, defaults the scheme to https and
// canonicalizes the result. Bare hosts gain a trailing slash
// ("example.com" -> "https://example.com/").
func NormalizeURL(raw string) (string, error) {
	trimmed := strings.TrimSpace(raw)

	withScheme := trimmed
	if !strings.HasPrefix(trimmed, "http://") && !strings.HasPrefix(trimmed, "https://") {
		withScheme = "https://" + trimmed
	}

	parsed, err := url.Parse(withScheme)
	if err != nil {
		return "", &URLSyntaxError{Input: raw, Err: err}
	}
	if parsed.Host == "" {
		return "", &URLSyntaxError{Input: raw, Err: errors.New("missing host")}
	}
	if parsed.Path == "" {
		parsed.Path = "/"
	}
	return parsed.String(), nil
}

// FallbackSuggestions synthesizes likely intended URLs for a failed input,
// used when the suggestion collaborator errors or returns nothing. Candidates
// that do not look like real web addresses are dropped; at most 5 survive.
func FallbackSuggestions(failedURL string) []string {
	cleanInput := strings.TrimSpace(failedURL)
	urlLower := strings.ToLower(failedURL)
	var candidates []string

	switch {
	case strings.HasPrefix(urlLower, "http"):
		if !strings.Contains(urlLower, "www.") {
			if parsed, err := url.Parse(urlLower); err == nil && parsed.Host != "" {
				candidates = append(candidates,
					fmt.Sprintf("%s://www.%s%s", parsed.Scheme, parsed.Host, parsed.Path))
			}
		}
	case !strings.Contains(cleanInput, "."):
		for _, tld := range []string{"com", "org", "net", "io"} {
			candidates = append(candidates, fmt.Sprintf("https://www.%s.%s", cleanInput, tld))
			if tld == "com" || tld == "io" {
				candidates = append(candidates, fmt.Sprintf("https://%s.%s", cleanInput, tld))
			}
		}
	default:
		for _, prefix := range []string{"https://www.", "https://", "http://www.", "http://"} {
			candidates = append(candidates, prefix+cleanInput)
		}
	}

	suggestions := make([]string, 0, 5)
	for _, candidate := range candidates {
		if !isValidURLFormat(candidate) {
			continue
		}
		suggestions = append(suggestions, candidate)
		if len(suggestions) == 5 {
			break
		}
	}
	return suggestions
}

// isValidURLFormat accepts URLs that parse with a host containing a dot and
// at least 3 characters.
func isValidURLFormat(raw string) bool {
	parsed, err := url.Parse(raw)
	if err != nil {
		return false
	}
	host := parsed.Hostname()
	return len(host) >= 3 && strings.Contains(host, ".")
}
