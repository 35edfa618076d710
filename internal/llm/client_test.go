package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"
)

func chatServer(t *testing.T, content string, capture *chatRequest) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/chat/completions" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer test-key" {
			t.Errorf("Authorization = %q", got)
		}
		if capture != nil {
			if err := json.NewDecoder(r.Body).Decode(capture); err != nil {
				t.Errorf("decode request: %v", err)
			}
		}
		resp := map[string]any{
			"choices": []map[string]any{
				{"message": map[string]any{"role": "assistant", "content": content}},
			},
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(resp)
	}))
}

func TestClientSummarize(t *testing.T) {
	var req chatRequest
	server := chatServer(t, "## Summary\n\n- point one", &req)
	defer server.Close()

	client := NewClient(server.URL, "test-key", "", nil)
	summary, err := client.Summarize(context.Background(), "page text", "https://example.com/")
	if err != nil {
		t.Fatalf("Summarize() error: %v", err)
	}
	if summary != "## Summary\n\n- point one" {
		t.Fatalf("summary = %q", summary)
	}
	if req.Model != "gpt-4o-mini" {
		t.Fatalf("model = %q, want gpt-4o-mini", req.Model)
	}
	if req.MaxTokens != 500 {
		t.Fatalf("max_tokens = %d, want 500", req.MaxTokens)
	}
	if len(req.Messages) != 2 || req.Messages[0].Role != "system" {
		t.Fatalf("unexpected messages: %+v", req.Messages)
	}
}

func TestClientSummarize_EmptyTextShortCircuits(t *testing.T) {
	client := NewClient("http://127.0.0.1:0", "test-key", "", nil)

	summary, err := client.Summarize(context.Background(), "   \n\t", "https://example.com/")
	if err != nil {
		t.Fatalf("Summarize() error: %v", err)
	}
	if summary != "No content to summarize." {
		t.Fatalf("summary = %q", summary)
	}
}

func TestClientSuggestURLs_FiltersInvalid(t *testing.T) {
	suggestions := `["https://www.wired.com", "not-a-url", "ftp://wired.com", "https://xy", "https://wired.com/latest"]`
	server := chatServer(t, suggestions, nil)
	defer server.Close()

	client := NewClient(server.URL, "test-key", "gpt-4o-mini", nil)
	got, err := client.SuggestURLs(context.Background(), "wired", "network error")
	if err != nil {
		t.Fatalf("SuggestURLs() error: %v", err)
	}
	want := []string{"https://www.wired.com", "https://wired.com/latest"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("SuggestURLs() = %v, want %v", got, want)
	}
}

func TestClientSuggestURLs_NonJSONResponse(t *testing.T) {
	server := chatServer(t, "sorry, I cannot help", nil)
	defer server.Close()

	client := NewClient(server.URL, "test-key", "", nil)
	if _, err := client.SuggestURLs(context.Background(), "wired", "boom"); err == nil {
		t.Fatal("expected error for non-JSON suggestion payload")
	}
}

func TestClientSuggestURLs_CapsAtFive(t *testing.T) {
	suggestions := `["https://a.com","https://b.com","https://c.com","https://d.com","https://e.com","https://f.com"]`
	server := chatServer(t, suggestions, nil)
	defer server.Close()

	client := NewClient(server.URL, "test-key", "", nil)
	got, err := client.SuggestURLs(context.Background(), "thing", "boom")
	if err != nil {
		t.Fatalf("SuggestURLs() error: %v", err)
	}
	if len(got) != 5 {
		t.Fatalf("len = %d, want 5", len(got))
	}
}

func TestClientComplete_ErrorStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "quota exceeded", http.StatusTooManyRequests)
	}))
	defer server.Close()

	client := NewClient(server.URL, "test-key", "", nil)
	if _, err := client.Summarize(context.Background(), "text", "https://example.com/"); err == nil {
		t.Fatal("expected error for non-200 status")
	}
}
