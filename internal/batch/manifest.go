package batch

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"spine-mesh-baker/internal/mesh"
)

// Manifest describes one batch run.
type Manifest struct {
	BuildID string          `json:"build_id"`
	Created time.Time       `json:"created"`
	Jobs    []ManifestEntry `json:"jobs"`
}

// ManifestEntry represents one job in the output manifest.
type ManifestEntry struct {
	Name     string             `json:"name"`
	Texture  string             `json:"texture,omitempty"`
	OBJ      string             `json:"obj,omitempty"`
	Preview  string             `json:"preview,omitempty"`
	Surfaces []mesh.SurfaceInfo `json:"surfaces,omitempty"`
	Skipped  []string           `json:"skipped,omitempty"`
	Error    string             `json:"error,omitempty"`
}

// NewManifest builds a manifest for results. Output paths are stored
// relative to outputDir.
func NewManifest(outputDir string, results []Result) Manifest {
	m := Manifest{
		BuildID: uuid.NewString(),
		Created: time.Now().UTC(),
		Jobs:    make([]ManifestEntry, len(results)),
	}
	for i, r := range results {
		e := ManifestEntry{
			Name:    r.Name,
			Texture: r.Texture,
			OBJ:     relTo(outputDir, r.OBJ),
			Preview: relTo(outputDir, r.Preview),
			Error:   r.Error,
		}
		if r.Report != nil {
			e.Surfaces = r.Report.Surfaces
			e.Skipped = r.Report.Skipped
		}
		m.Jobs[i] = e
	}
	return m
}

// WriteManifest writes m as indented JSON to path.
func WriteManifest(path string, m Manifest) error {
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return fmt.Errorf("batch: marshal manifest: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("batch: write %s: %w", path, err)
	}
	return nil
}

func relTo(dir, path string) string {
	if path == "" {
		return ""
	}
	if rel, err := filepath.Rel(dir, path); err == nil {
		return filepath.ToSlash(rel)
	}
	return filepath.ToSlash(path)
}
