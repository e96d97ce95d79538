package chat

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestContextFromURL(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte(`<html><body><h1>Hello World</h1><p>This is a test.</p></body></html>`))
	}))
	defer server.Close()

	md, err := ContextFromURL(context.Background(), server.URL)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(md, "Hello World") {
		t.Errorf("expected 'Hello World' in result, got %q", md)
	}
	if !strings.Contains(md, "This is a test") {
		t.Errorf("expected 'This is a test' in result, got %q", md)
	}
}

func TestContextFromURLEmptyURL(t *testing.T) {
	if _, err := ContextFromURL(context.Background(), ""); err == nil {
		t.Fatal("expected error for empty URL")
	}
}

func TestContextFromURLHTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "not found", http.StatusNotFound)
	}))
	defer server.Close()

	if _, err := ContextFromURL(context.Background(), server.URL); err == nil {
		t.Fatal("expected error for non-200 status")
	}
}

func TestContextFromURLTruncation(t *testing.T) {
	long := strings.Repeat("x", 60000)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte("<html><body><p>" + long + "</p></body></html>"))
	}))
	defer server.Close()

	md, err := ContextFromURL(context.Background(), server.URL)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasSuffix(md, "[Content truncated]") {
		t.Error("expected truncation marker at end of result")
	}
	if len(md) > maxContextChars+len("\n\n[Content truncated]") {
		t.Errorf("result too long after truncation: %d chars", len(md))
	}
}
