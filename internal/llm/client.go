// Package llm talks to an OpenAI-compatible chat-completions API to summarize
// page text and to suggest corrected URLs after a failed navigation.
package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const (
	defaultModel = "gpt-4o-mini"

	summaryMaxTokens    = 500
	suggestionMaxTokens = 200
	temperature         = 0.3

	maxSuggestions = 5
)

const summarySystemPrompt = "You are a helpful assistant that summarizes web content. " +
	"Format your response as clean markdown with appropriate headers, bullet points, " +
	"**bold** text for emphasis, and *italic* text for quotes or special terms. " +
	"Use ## for main sections and - for bullet points. Keep it structured and readable."

const suggestionSystemPrompt = "You are a helpful URL suggestion assistant. " +
	"Always respond with valid JSON array of URL strings."

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	MaxTokens   int           `json:"max_tokens"`
	Temperature float32       `json:"temperature"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

type Client struct {
	baseURL string
	apiKey  string
	model   string
	http    *http.Client
}

func NewClient(baseURL, apiKey, model string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 60 * time.Second}
	}
	if model == "" {
		model = defaultModel
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		model:   model,
		http:    httpClient,
	}
}

// Summarize returns a markdown summary of text, the content of pageURL.
func (c *Client) Summarize(ctx context.Context, text, pageURL string) (string, error) {
	if strings.TrimSpace(text) == "" {
		return "No content to summarize.", nil
	}

	prompt := fmt.Sprintf(
		"Please provide a concise but comprehensive summary of the following web page content from %s:\n\n%s",
		pageURL, text,
	)
	return c.complete(ctx, summarySystemPrompt, prompt, summaryMaxTokens)
}

// SuggestURLs asks for likely intended URLs after failedURL could not be
// loaded. The model is instructed to answer with a JSON array of URL strings;
// candidates that do not look like real web addresses are dropped.
func (c *Client) SuggestURLs(ctx context.Context, failedURL, errorMessage string) ([]string, error) {
	prompt := fmt.Sprintf(
		"The user tried to access '%s' but got error: %s. "+
			"Please suggest 5 most likely COMPLETE URLs they probably meant to access. "+
			"Each URL must be a valid, complete URL with protocol and domain (e.g., https://www.example.com). "+
			"Consider common typos, missing protocols, popular websites, and logical alternatives. "+
			"For single words like 'wired', suggest the actual website like 'https://www.wired.com'. "+
			"Respond with ONLY a JSON array of complete URL strings, no other text or explanation.",
		failedURL, errorMessage,
	)

	raw, err := c.complete(ctx, suggestionSystemPrompt, prompt, suggestionMaxTokens)
	if err != nil {
		return nil, err
	}

	var candidates []string
	if err := json.Unmarshal([]byte(raw), &candidates); err != nil {
		return nil, fmt.Errorf("parse URL suggestions as JSON: %w", err)
	}

	suggestions := make([]string, 0, maxSuggestions)
	for _, candidate := range candidates {
		if !isValidSuggestion(candidate) {
			continue
		}
		suggestions = append(suggestions, candidate)
		if len(suggestions) == maxSuggestions {
			break
		}
	}
	return suggestions, nil
}

func (c *Client) complete(ctx context.Context, system, user string, maxTokens int) (string, error) {
	request := chatRequest{
		Model: c.model,
		Messages: []chatMessage{
			{Role: "system", Content: system},
			{Role: "user", Content: user},
		},
		MaxTokens:   maxTokens,
		Temperature: temperature,
	}

	payload, err := json.Marshal(request)
	if err != nil {
		return "", fmt.Errorf("marshal chat request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/completions", bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("chat completion request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return "", fmt.Errorf("chat completion failed with status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var parsed chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", fmt.Errorf("decode chat completion response: %w", err)
	}
	if len(parsed.Choices) == 0 {
		return "", fmt.Errorf("chat completion returned no choices")
	}
	return parsed.Choices[0].Message.Content, nil
}

// isValidSuggestion accepts absolute http(s) URLs whose host looks like a
// real domain (contains a dot, at least 3 chars).
func isValidSuggestion(raw string) bool {
	if !strings.HasPrefix(raw, "http://") && !strings.HasPrefix(raw, "https://") {
		return false
	}
	parsed, err := url.Parse(raw)
	if err != nil {
		return false
	}
	host := parsed.Hostname()
	return len(host) >= 3 && strings.Contains(host, ".")
}
