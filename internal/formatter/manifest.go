package formatter

import (
	"fmt"
	"os"

	"github.com/desertthunder/moodboard/internal/shared"
)

// ManifestEntry describes one file written by a bulk export.
type ManifestEntry struct {
	Category string `json:"category"`
	Items    int    `json:"items"`
	File     string `json:"file,omitempty"`
	Error    string `json:"error,omitempty"`
}

// Manifest summarizes a bulk export.
type Manifest struct {
	Format     string          `json:"format"`
	ExportedAt string          `json:"exported_at"`
	Successful int             `json:"successful"`
	Failed     int             `json:"failed"`
	Entries    []ManifestEntry `json:"entries"`
}

// WriteManifest writes m as indented JSON to path.
func WriteManifest(m *Manifest, path string) error {
	data, err := shared.MarshalJSON(m, true)
	if err != nil {
		return fmt.Errorf("failed to marshal manifest: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write manifest: %w", err)
	}
	return nil
}
