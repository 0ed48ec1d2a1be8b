package fetch

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestFetch_Success(t *testing.T) {
	payload := []byte("image-bytes")
	var gotUA string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		w.Write(payload)
	}))
	defer srv.Close()

	f := New(time.Second, 1024, WithUserAgent("duplik8/test"))
	data, err := f.Fetch(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("Fetch failed: %v", err)
	}
	if !bytes.Equal(data, payload) {
		t.Errorf("body: got %q, want %q", data, payload)
	}
	if gotUA != "duplik8/test" {
		t.Errorf("User-Agent: got %q", gotUA)
	}
}

func TestFetch_Errors(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
		maxSize int64
		wantMsg string
	}{
		{
			"not found",
			func(w http.ResponseWriter, r *http.Request) { http.NotFound(w, r) },
			1024,
			"404",
		},
		{
			"server error",
			func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusInternalServerError) },
			1024,
			"500",
		},
		{
			"declared too large",
			func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Length", "2048")
				w.Write(make([]byte, 2048))
			},
			1024,
			"exceeds limit",
		},
		{
			"streamed too large",
			func(w http.ResponseWriter, r *http.Request) {
				// Flushing forces chunked encoding, so no Content-Length is sent.
				w.Write(make([]byte, 600))
				w.(http.Flusher).Flush()
				w.Write(make([]byte, 600))
			},
			1024,
			"exceeds limit",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(tt.handler)
			defer srv.Close()

			_, err := New(time.Second, tt.maxSize).Fetch(context.Background(), srv.URL)
			if !errors.Is(err, ErrDownload) {
				t.Fatalf("expected ErrDownload, got %v", err)
			}
			if !strings.Contains(err.Error(), tt.wantMsg) {
				t.Errorf("error %q does not mention %q", err, tt.wantMsg)
			}
		})
	}
}

func TestFetch_ExactlyAtLimit(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write(make([]byte, 1024))
	}))
	defer srv.Close()

	data, err := New(time.Second, 1024).Fetch(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("Fetch failed: %v", err)
	}
	if len(data) != 1024 {
		t.Errorf("length: got %d, want 1024", len(data))
	}
}

func TestFetch_Timeout(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()
	defer close(release)

	_, err := New(50*time.Millisecond, 1024).Fetch(context.Background(), srv.URL)
	if !errors.Is(err, ErrDownload) {
		t.Fatalf("expected ErrDownload, got %v", err)
	}
}

func TestFetch_BadURL(t *testing.T) {
	tests := []string{
		"http://127.0.0.1:1/unreachable",
		"ftp://example.com/image.png",
		"::not a url",
	}

	f := New(time.Second, 1024)
	for _, url := range tests {
		if _, err := f.Fetch(context.Background(), url); !errors.Is(err, ErrDownload) {
			t.Errorf("%q: expected ErrDownload, got %v", url, err)
		}
	}
}

func TestNew_DefaultTimeout(t *testing.T) {
	f := New(0, 0)
	if f.client.Timeout != DefaultTimeout {
		t.Errorf("timeout: got %s, want %s", f.client.Timeout, DefaultTimeout)
	}
}
