// Package screenshot captures the host window where the platform
// supports it. Capture is platform-specific and sits outside the
// command channel: it never touches the document.
package screenshot

import (
	"os"
	"path/filepath"
)

// DefaultPath is used when the caller does not name an output file.
func DefaultPath() string {
	return filepath.Join(os.TempDir(), "glimpse-screenshot.png")
}

// Capture writes a screenshot to outputPath (or DefaultPath when empty)
// and returns the path written. On platforms without capture support it
// returns domain.ErrPlatformUnsupported.
func Capture(outputPath string) (string, error) {
	if outputPath == "" {
		outputPath = DefaultPath()
	}
	if err := capture(outputPath); err != nil {
		return "", err
	}
	return outputPath, nil
}
