package tesseract

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// osdModel is required for orientation detection.
const osdModel = "osd"

// resolveTessdata checks that prefix holds a traineddata file for every
// language in language (joined with "+", as Tesseract accepts) and, when
// needOSD is set, the orientation model. An empty prefix defers to the
// library's built-in search path and is returned unchanged.
func resolveTessdata(prefix, language string, needOSD bool) (string, error) {
	if prefix == "" {
		return "", nil
	}

	info, err := os.Stat(prefix)
	if err != nil {
		return "", fmt.Errorf("tessdata directory: %w", err)
	}
	if !info.IsDir() {
		return "", fmt.Errorf("tessdata path %s is not a directory", prefix)
	}

	models := strings.Split(language, "+")
	if needOSD {
		models = append(models, osdModel)
	}
	for _, m := range models {
		path := filepath.Join(prefix, m+".traineddata")
		if _, err := os.Stat(path); err != nil {
			return "", fmt.Errorf("missing model %s: %w", m, err)
		}
	}

	abs, err := filepath.Abs(prefix)
	if err != nil {
		return "", fmt.Errorf("failed to resolve tessdata path: %w", err)
	}
	return abs, nil
}
