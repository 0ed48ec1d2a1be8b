package tesseract

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeModels(t *testing.T, dir string, names ...string) {
	t.Helper()
	for _, n := range names {
		path := filepath.Join(dir, n+".traineddata")
		if err := os.WriteFile(path, []byte("model"), 0644); err != nil {
			t.Fatalf("failed to write %s: %v", path, err)
		}
	}
}

func TestResolveTessdata_EmptyPrefix(t *testing.T) {
	got, err := resolveTessdata("", "eng", true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "" {
		t.Errorf("got %q, want empty", got)
	}
}

func TestResolveTessdata(t *testing.T) {
	tests := []struct {
		name     string
		models   []string
		language string
		osd      bool
		wantErr  string
	}{
		{"single language", []string{"eng"}, "eng", false, ""},
		{"with osd", []string{"eng", "osd"}, "eng", true, ""},
		{"missing osd", []string{"eng"}, "eng", true, "missing model osd"},
		{"combined languages", []string{"eng", "deu"}, "eng+deu", false, ""},
		{"missing second language", []string{"eng"}, "eng+deu", false, "missing model deu"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			writeModels(t, dir, tt.models...)

			got, err := resolveTessdata(dir, tt.language, tt.osd)
			if tt.wantErr != "" {
				if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
					t.Fatalf("expected error containing %q, got %v", tt.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !filepath.IsAbs(got) {
				t.Errorf("expected absolute path, got %q", got)
			}
		})
	}
}

func TestResolveTessdata_NotDirectory(t *testing.T) {
	f := filepath.Join(t.TempDir(), "file")
	if err := os.WriteFile(f, nil, 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := resolveTessdata(f, "eng", false); err == nil {
		t.Error("expected error for a file prefix")
	}
	if _, err := resolveTessdata("/nonexistent/tessdata", "eng", false); err == nil {
		t.Error("expected error for a missing prefix")
	}
}
