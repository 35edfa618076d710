package fetch

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestClientFetch_ReturnsHTMLBody(t *testing.T) {
	var gotUserAgent string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUserAgent = r.Header.Get("User-Agent")
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		fmt.Fprint(w, "<html><body>ok</body></html>")
	}))
	defer server.Close()

	body, err := NewClient(nil).Fetch(context.Background(), server.URL)
	if err != nil {
		t.Fatalf("Fetch() error: %v", err)
	}
	if body != "<html><body>ok</body></html>" {
		t.Fatalf("unexpected body: %q", body)
	}
	if gotUserAgent != "skim/0.1.0" {
		t.Fatalf("User-Agent = %q, want skim/0.1.0", gotUserAgent)
	}
}

func TestClientFetch_StatusError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusNotFound)
	}))
	defer server.Close()

	_, err := NewClient(nil).Fetch(context.Background(), server.URL)

	var statusErr *StatusError
	if !errors.As(err, &statusErr) {
		t.Fatalf("error = %v, want *StatusError", err)
	}
	if statusErr.StatusCode != http.StatusNotFound {
		t.Fatalf("StatusCode = %d, want 404", statusErr.StatusCode)
	}
}

func TestClientFetch_ContentTypeError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"not": "html"}`)
	}))
	defer server.Close()

	_, err := NewClient(nil).Fetch(context.Background(), server.URL)

	var ctErr *ContentTypeError
	if !errors.As(err, &ctErr) {
		t.Fatalf("error = %v, want *ContentTypeError", err)
	}
	if ctErr.ContentType != "application/json" {
		t.Fatalf("ContentType = %q", ctErr.ContentType)
	}
}

func TestClientFetch_NetworkError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close() // connection refused from here on

	_, err := NewClient(nil).Fetch(context.Background(), server.URL)

	var netErr *NetworkError
	if !errors.As(err, &netErr) {
		t.Fatalf("error = %v, want *NetworkError", err)
	}
}

func TestClientFetch_RedirectLimit(t *testing.T) {
	var server *httptest.Server
	server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, server.URL+r.URL.Path+"x", http.StatusFound)
	}))
	defer server.Close()

	_, err := NewClient(nil).Fetch(context.Background(), server.URL)

	var netErr *NetworkError
	if !errors.As(err, &netErr) {
		t.Fatalf("error = %v, want *NetworkError after redirect limit", err)
	}
}
