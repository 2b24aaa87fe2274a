package standard

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestGet_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain")
		w.Write([]byte("hello"))
	}))
	defer server.Close()

	client := NewStandardHTTPClient(5 * time.Second)
	resp, err := client.Get(context.Background(), server.URL, nil)

	if err != nil {
		t.Fatalf("Get returned error: %v", err)
	}
	defer resp.Body().Close()

	if resp.StatusCode() != 200 {
		t.Errorf("StatusCode = %d, want 200", resp.StatusCode())
	}
	body, _ := io.ReadAll(resp.Body())
	if string(body) != "hello" {
		t.Errorf("body = %q, want hello", body)
	}
	if resp.Header("Content-Type") != "text/plain" {
		t.Errorf("Content-Type = %q", resp.Header("Content-Type"))
	}
}

func TestGet_SetsUserAgentAndHeaders(t *testing.T) {
	var gotUA, gotAuth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		gotAuth = r.Header.Get("Authorization")
	}))
	defer server.Close()

	client := NewStandardHTTPClient(5 * time.Second)
	resp, err := client.Get(context.Background(), server.URL, map[string]string{
		"Authorization": "Bearer token123",
	})
	if err != nil {
		t.Fatalf("Get returned error: %v", err)
	}
	resp.Body().Close()

	if gotUA != userAgent {
		t.Errorf("User-Agent = %q, want %q", gotUA, userAgent)
	}
	if gotAuth != "Bearer token123" {
		t.Errorf("Authorization = %q, want bearer token", gotAuth)
	}
}

func TestGet_NonOKStatusIsNotAnError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusServiceUnavailable)
	}))
	defer server.Close()

	client := NewStandardHTTPClient(5 * time.Second)
	resp, err := client.Get(context.Background(), server.URL, nil)

	if err != nil {
		t.Fatalf("Get returned error for non-200 status: %v", err)
	}
	defer resp.Body().Close()
	if resp.StatusCode() != 503 {
		t.Errorf("StatusCode = %d, want 503", resp.StatusCode())
	}
}

func TestGet_ContextCancelled(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(time.Second)
	}))
	defer server.Close()

	client := NewStandardHTTPClient(5 * time.Second)
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	if _, err := client.Get(ctx, server.URL, nil); err == nil {
		t.Error("Get should return error when context deadline passes")
	}
}

func TestGet_InvalidURL(t *testing.T) {
	client := NewStandardHTTPClient(time.Second)

	if _, err := client.Get(context.Background(), "://bad", nil); err == nil {
		t.Error("Get should return error for invalid URL")
	}
}
